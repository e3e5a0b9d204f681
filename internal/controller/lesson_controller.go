package controller

import (
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/service"
	"edulearn_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonContentService *service.LessonContentService
	ProgressService      *service.ProgressService
	AIContentService     *service.AIContentService
}

func NewLessonController(lessonContentService *service.LessonContentService, progressService *service.ProgressService, aiContentService *service.AIContentService) *LessonController {
	return &LessonController{
		LessonContentService: lessonContentService,
		ProgressService:      progressService,
		AIContentService:     aiContentService,
	}
}

// ListMaterials godoc
// @Summary 课时下的学习材料列表
// @Description 按 order_index 升序返回材料
// @Tags 课时内容
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课时ID"
// @Success 200 {object} util.Response{data=[]model.Material}
// @Router /api/lessons/{id}/materials [get]
func (c *LessonController) ListMaterials(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("id"))

	materials, err := c.LessonContentService.MaterialsForLesson(lessonID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, materials)
}

// swagger:model CreateMaterialRequest
type CreateMaterialRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
	Type    string `json:"type" binding:"required"`
}

// CreateMaterial godoc
// @Summary 在课时下创建学习材料
// @Description 材料顺序号由服务端追加分配
// @Tags 课时内容
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课时ID"
// @Param   body body CreateMaterialRequest true "材料信息"
// @Success 201 {object} util.Response{data=model.Material}
// @Failure 400 {object} util.Response "材料类型不合法"
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/teacher/lessons/{id}/materials [post]
func (c *LessonController) CreateMaterial(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("id"))

	var req CreateMaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	material, err := c.LessonContentService.CreateMaterial(lessonID, req.Title, req.Content, model.MaterialType(req.Type))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLessonNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrTitleRequired), errors.Is(err, util.ErrInvalidMaterialType):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, material)
}

// UploadMaterialFile godoc
// @Summary 上传材料附件
// @Description 视频类型材料会探测时长并写回，文件保存到配置的存储后端
// @Tags 课时内容
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "材料ID"
// @Param   file formData file true "附件"
// @Success 200 {object} util.Response{data=model.Material}
// @Failure 400 {object} util.Response "文件内容与材料类型不符"
// @Failure 404 {object} util.Response "材料不存在"
// @Router /api/teacher/materials/{id}/file [post]
func (c *LessonController) UploadMaterialFile(ctx *gin.Context) {
	materialID := util.MustParseUint(ctx.Param("id"))

	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少上传文件")
		return
	}

	file, err := header.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	material, err := c.LessonContentService.AttachMaterialFile(
		ctx.Request.Context(),
		materialID,
		header.Filename,
		file,
		header.Size,
		header.Header.Get("Content-Type"),
	)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrMaterialNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidFileContent):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, material)
}

// ListQuizzes godoc
// @Summary 课时下的测验列表
// @Tags 课时内容
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课时ID"
// @Success 200 {object} util.Response{data=[]model.Quiz}
// @Router /api/lessons/{id}/quizzes [get]
func (c *LessonController) ListQuizzes(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("id"))

	quizzes, err := c.LessonContentService.QuizzesForLesson(lessonID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, quizzes)
}

// swagger:model CreateQuizRequest
type CreateQuizRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// CreateQuiz godoc
// @Summary 在课时下创建测验
// @Tags 课时内容
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课时ID"
// @Param   body body CreateQuizRequest true "测验信息"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/teacher/lessons/{id}/quizzes [post]
func (c *LessonController) CreateQuiz(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("id"))

	var req CreateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.LessonContentService.CreateQuiz(lessonID, req.Title, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLessonNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrTitleRequired):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, quiz)
}

// LessonAIHistory godoc
// @Summary 课时维度的AI生成历史
// @Description 按创建时间倒序返回
// @Tags AI生成
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课时ID"
// @Success 200 {object} util.Response{data=[]model.AIGeneratedContent}
// @Router /api/lessons/{id}/ai-content [get]
func (c *LessonController) LessonAIHistory(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("id"))

	history, err := c.AIContentService.HistoryForLesson(lessonID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, history)
}
