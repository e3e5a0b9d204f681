package controller

import (
	"edulearn_backend/internal/service"
	"edulearn_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type SubjectController struct {
	CurriculumService *service.CurriculumService
	AuthService       *service.AuthService
}

func NewSubjectController(curriculumService *service.CurriculumService, authService *service.AuthService) *SubjectController {
	return &SubjectController{
		CurriculumService: curriculumService,
		AuthService:       authService,
	}
}

// ListForStudent godoc
// @Summary 学生可见学科列表
// @Description 按当前学生年龄推算年级段，返回覆盖该年级的学科
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   grade query int false "指定年级段（默认按年龄推算）"
// @Success 200 {object} util.Response{data=[]model.Subject}
// @Failure 401 {object} util.Response "Unauthorized"
// @Router /api/subjects [get]
func (c *SubjectController) ListForStudent(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	grade := util.GradeLevel(user.Age)
	if raw := ctx.Query("grade"); raw != "" {
		if g, err := strconv.Atoi(raw); err == nil {
			grade = g
		}
	}

	subjects, err := c.CurriculumService.SubjectsForGrade(ctx.Request.Context(), grade)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"grade": grade, "subjects": subjects})
}

// ListForTeacher godoc
// @Summary 教师名下学科列表
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Subject}
// @Router /api/teacher/subjects [get]
func (c *SubjectController) ListForTeacher(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	subjects, err := c.CurriculumService.SubjectsForTeacher(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, subjects)
}

// swagger:model CreateSubjectRequest
type CreateSubjectRequest struct {
	Name   string `json:"name" binding:"required"`
	Grades []int  `json:"grades" binding:"required,min=1"`
}

// CreateSubject godoc
// @Summary 创建学科
// @Description 教师创建学科并指定覆盖年级，返回落库实体
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateSubjectRequest true "学科信息"
// @Success 201 {object} util.Response{data=model.Subject}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/teacher/subjects [post]
func (c *SubjectController) CreateSubject(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subject, err := c.CurriculumService.CreateSubject(ctx.Request.Context(), req.Name, req.Grades, claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrTitleRequired) || errors.Is(err, util.ErrGradesRequired) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, subject)
}

// ListLessons godoc
// @Summary 学科下的课时列表
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "学科ID"
// @Success 200 {object} util.Response{data=[]model.Lesson}
// @Failure 404 {object} util.Response "学科不存在"
// @Router /api/subjects/{id}/lessons [get]
func (c *SubjectController) ListLessons(ctx *gin.Context) {
	subjectID := util.MustParseUint(ctx.Param("id"))

	lessons, err := c.CurriculumService.LessonsForSubject(subjectID)
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, lessons)
}

// swagger:model CreateLessonRequest
type CreateLessonRequest struct {
	Title string `json:"title" binding:"required"`
}

// CreateLesson godoc
// @Summary 在学科下创建课时
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "学科ID"
// @Param   body body CreateLessonRequest true "课时信息"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Failure 403 {object} util.Response "非本人学科"
// @Failure 404 {object} util.Response "学科不存在"
// @Router /api/teacher/subjects/{id}/lessons [post]
func (c *SubjectController) CreateLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	subjectID := util.MustParseUint(ctx.Param("id"))

	var req CreateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.CurriculumService.CreateLesson(req.Title, subjectID, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSubjectNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrTitleRequired):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, lesson)
}
