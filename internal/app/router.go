package app

import (
	"edulearn_backend/internal/config"
	"edulearn_backend/internal/middleware"
	"edulearn_backend/internal/model"
	"edulearn_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Health)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		// 课程浏览
		authGroup.GET("/subjects", c.subject.ListForStudent)
		authGroup.GET("/subjects/:id/lessons", c.subject.ListLessons)
		authGroup.GET("/subjects/:id/ai-content", c.aiContent.SubjectHistory)

		// 课时内容
		authGroup.GET("/lessons/:id/materials", c.lesson.ListMaterials)
		authGroup.GET("/lessons/:id/quizzes", c.lesson.ListQuizzes)
		authGroup.GET("/lessons/:id/ai-content", c.lesson.LessonAIHistory)

		// 学习进度
		authGroup.GET("/progress", c.progress.ListProgress)
		authGroup.GET("/lessons/:id/progress", c.progress.GetLessonProgress)
		authGroup.PUT("/lessons/:id/progress", c.progress.UpdateLessonProgress)

		// 测验作答
		authGroup.GET("/quizzes/:id/questions", c.quiz.ListQuestions)
		authGroup.POST("/quizzes/:id/attempts", c.quiz.SubmitAttempt)
		authGroup.GET("/quizzes/:id/attempts", c.quiz.ListAttempts)
	}

	// 3. 教师相关接口
	teacherGroup := router.Group("/api/teacher")
	teacherGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Teacher))
	{
		teacherGroup.GET("/subjects", c.subject.ListForTeacher)
		teacherGroup.POST("/subjects", c.subject.CreateSubject)
		teacherGroup.POST("/subjects/:id/lessons", c.subject.CreateLesson)

		teacherGroup.POST("/lessons/:id/materials", c.lesson.CreateMaterial)
		teacherGroup.POST("/materials/:id/file", c.lesson.UploadMaterialFile)
		teacherGroup.POST("/lessons/:id/quizzes", c.lesson.CreateQuiz)
		teacherGroup.POST("/quizzes/:id/questions", c.quiz.CreateQuestion)

		teacherGroup.POST("/ai-content", c.aiContent.Generate)
	}
}
