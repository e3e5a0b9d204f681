package app

import (
	"context"
	"edulearn_backend/internal/config"
	"edulearn_backend/internal/controller"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/service"
	"edulearn_backend/pkg/configwatcher"
	"edulearn_backend/pkg/database"
	"edulearn_backend/pkg/logger"
	"edulearn_backend/pkg/monitoring"
	"edulearn_backend/pkg/security"
	"edulearn_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user      *repository.UserRepository
	subject   *repository.SubjectRepository
	lesson    *repository.LessonRepository
	material  *repository.MaterialRepository
	quiz      *repository.QuizRepository
	progress  *repository.ProgressRepository
	aiContent *repository.AIContentRepository
}

type services struct {
	auth          *service.AuthService
	storage       *service.StorageService
	curriculum    *service.CurriculumService
	lessonContent *service.LessonContentService
	progress      *service.ProgressService
	ai            *service.AIService
	aiContent     *service.AIContentService
}

type controllers struct {
	auth      *controller.AuthController
	subject   *controller.SubjectController
	lesson    *controller.LessonController
	quiz      *controller.QuizController
	progress  *controller.ProgressController
	aiContent *controller.AIContentController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		subject:   repository.NewSubjectRepository(db),
		lesson:    repository.NewLessonRepository(db),
		material:  repository.NewMaterialRepository(db),
		quiz:      repository.NewQuizRepository(db),
		progress:  repository.NewProgressRepository(db),
		aiContent: repository.NewAIContentRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.curriculum = service.NewCurriculumService(repos.subject, repos.lesson, rdb)
	s.lessonContent = service.NewLessonContentService(
		repos.material,
		repos.quiz,
		repos.lesson,
		repos.progress,
		s.storage,
		db,
	)
	s.progress = service.NewProgressService(repos.progress, repos.lesson)
	s.ai = service.NewAIService(cfg.AI)
	s.aiContent = service.NewAIContentService(s.ai, repos.aiContent, repos.subject, repos.lesson, repos.material)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		subject:   controller.NewSubjectController(s.curriculum, s.auth),
		lesson:    controller.NewLessonController(s.lessonContent, s.progress, s.aiContent),
		quiz:      controller.NewQuizController(s.lessonContent),
		progress:  controller.NewProgressController(s.progress),
		aiContent: controller.NewAIContentController(s.aiContent),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.ForceMigrate || cfg.MigrateOnly {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Log.Info("Database migration completed")
		if cfg.MigrateOnly {
			os.Exit(0)
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("edulearn-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	// 配置热加载：目前只刷新 JWT 密钥之外的可容忍项，记录变更即可
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		logger.Log.Info("Configuration reloaded",
			zap.String("server_mode", newCfg.Server.Mode),
			zap.Int("rate_limit", newCfg.RateLimit.MaxRequests))
		app.Config.RateLimit = newCfg.RateLimit
		app.Config.CORS = newCfg.CORS
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
