package controller

import (
	"edulearn_backend/internal/service"
	"edulearn_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	LessonContentService *service.LessonContentService
}

func NewQuizController(lessonContentService *service.LessonContentService) *QuizController {
	return &QuizController{LessonContentService: lessonContentService}
}

// ListQuestions godoc
// @Summary 测验题目列表
// @Description 按 order_index 升序返回题目
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response{data=[]model.QuizQuestion}
// @Router /api/quizzes/{id}/questions [get]
func (c *QuizController) ListQuestions(ctx *gin.Context) {
	quizID := util.MustParseUint(ctx.Param("id"))

	questions, err := c.LessonContentService.QuestionsForQuiz(quizID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}

// swagger:model CreateQuestionRequest
type CreateQuestionRequest struct {
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectAnswer string   `json:"correctAnswer" binding:"required"`
}

// CreateQuestion godoc
// @Summary 在测验下创建题目
// @Description 正确答案必须出现在选项列表中
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "测验ID"
// @Param   body body CreateQuestionRequest true "题目信息"
// @Success 201 {object} util.Response{data=model.QuizQuestion}
// @Failure 400 {object} util.Response "答案不在选项中"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/teacher/quizzes/{id}/questions [post]
func (c *QuizController) CreateQuestion(ctx *gin.Context) {
	quizID := util.MustParseUint(ctx.Param("id"))

	var req CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.LessonContentService.CreateQuestion(quizID, req.Question, req.Options, req.CorrectAnswer)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAnswerNotInOptions):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, question)
}

// swagger:model SubmitAttemptRequest
type SubmitAttemptRequest struct {
	Score int `json:"score" binding:"min=0"`
}

// SubmitAttempt godoc
// @Summary 提交测验成绩
// @Description 记录一次答题，同时把该测验所属课时的学习进度标记为已完成
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "测验ID"
// @Param   body body SubmitAttemptRequest true "成绩"
// @Success 201 {object} util.Response{data=model.QuizAttempt}
// @Failure 400 {object} util.Response "成绩不合法"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quizzes/{id}/attempts [post]
func (c *QuizController) SubmitAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID := util.MustParseUint(ctx.Param("id"))

	var req SubmitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, err := c.LessonContentService.SubmitAttempt(quizID, claims.UserID, req.Score)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrNegativeScore):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, attempt)
}

// ListAttempts godoc
// @Summary 当前用户的答题历史
// @Description 按完成时间倒序返回
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response{data=[]model.QuizAttempt}
// @Router /api/quizzes/{id}/attempts [get]
func (c *QuizController) ListAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID := util.MustParseUint(ctx.Param("id"))

	attempts, err := c.LessonContentService.AttemptsForUser(quizID, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, attempts)
}
