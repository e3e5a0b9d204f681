package controller

import (
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/service"
	"edulearn_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// ListProgress godoc
// @Summary 当前用户的全部学习进度
// @Tags 学习进度
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.LessonProgress}
// @Router /api/progress [get]
func (c *ProgressController) ListProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	records, err := c.ProgressService.ForUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, records)
}

// GetLessonProgress godoc
// @Summary 查询单个课时的进度
// @Description 未记录过的课时返回 not_started
// @Tags 学习进度
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课时ID"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id}/progress [get]
func (c *ProgressController) GetLessonProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	lessonID := util.MustParseUint(ctx.Param("id"))

	status, err := c.ProgressService.StatusFor(claims.UserID, lessonID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"lessonId": lessonID, "status": status})
}

// swagger:model UpdateProgressRequest
type UpdateProgressRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateLessonProgress godoc
// @Summary 上报课时学习进度
// @Description 进度只向前推进，重复上报或回退不会覆盖更高状态
// @Tags 学习进度
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课时ID"
// @Param   body body UpdateProgressRequest true "进度状态"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "状态不合法"
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/lessons/{id}/progress [put]
func (c *ProgressController) UpdateLessonProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	lessonID := util.MustParseUint(ctx.Param("id"))

	var req UpdateProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	status := model.ProgressStatus(req.Status)
	if err := c.ProgressService.Record(claims.UserID, lessonID, status); err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidProgressState):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrLessonNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"lessonId": lessonID, "status": status})
}
