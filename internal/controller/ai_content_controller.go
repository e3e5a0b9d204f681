package controller

import (
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/service"
	"edulearn_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type AIContentController struct {
	AIContentService *service.AIContentService
}

func NewAIContentController(aiContentService *service.AIContentService) *AIContentController {
	return &AIContentController{AIContentService: aiContentService}
}

// swagger:model GenerateContentRequest
type GenerateContentRequest struct {
	SubjectID     uint   `json:"subjectId" binding:"required"`
	LessonID      uint   `json:"lessonId" binding:"required"`
	Type          string `json:"type" binding:"required,oneof=quiz flashcards"`
	Count         int    `json:"count" binding:"omitempty,min=1,max=20"`
	LessonContent string `json:"lessonContent"`
}

// Generate godoc
// @Summary 生成AI学习内容
// @Description 调用大模型生成测验题或闪卡，校验通过后落库并返回
// @Tags AI生成
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body GenerateContentRequest true "生成参数"
// @Success 201 {object} util.Response{data=model.AIGeneratedContent}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "学科或课时不存在"
// @Failure 502 {object} util.Response "模型服务不可用或输出不合法"
// @Router /api/teacher/ai-content [post]
func (c *AIContentController) Generate(ctx *gin.Context) {
	var req GenerateContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	content, err := c.AIContentService.Generate(
		ctx.Request.Context(),
		req.SubjectID,
		req.LessonID,
		model.AIContentType(req.Type),
		req.Count,
		req.LessonContent,
	)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSubjectNotFound), errors.Is(err, util.ErrLessonNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAIKeyMissing):
			util.Error(ctx, 503, "AI服务未配置")
		case errors.Is(err, util.ErrAIProviderFailure), errors.Is(err, util.ErrGeneratedContentInvalid):
			util.Error(ctx, 502, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, content)
}

// SubjectHistory godoc
// @Summary 学科维度的AI生成历史
// @Description 按创建时间倒序返回
// @Tags AI生成
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "学科ID"
// @Success 200 {object} util.Response{data=[]model.AIGeneratedContent}
// @Router /api/subjects/{id}/ai-content [get]
func (c *AIContentController) SubjectHistory(ctx *gin.Context) {
	subjectID := util.MustParseUint(ctx.Param("id"))

	history, err := c.AIContentService.HistoryForSubject(subjectID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, history)
}
