package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/controller"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/service"
	"learnhub_backend/pkg/configwatcher"
	"learnhub_backend/pkg/database"
	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"
	"learnhub_backend/pkg/security"
	"learnhub_backend/pkg/tracing"

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
	user        *repository.UserRepository
	course      *repository.CourseRepository
	progress    *repository.ProgressRepository
	session     *repository.SessionRepository
	assignment  *repository.AssignmentRepository
	submission  *repository.SubmissionRepository
	achievement *repository.AchievementRepository
	task        *repository.TaskRepository
}

type services struct {
	auth        *service.AuthService
	user        *service.UserService
	course      *service.CourseService
	progress    *service.ProgressService
	assignment  *service.AssignmentService
	achievement *service.AchievementService
	analytics   *service.AnalyticsService
	task        *service.TaskService
	storage     *service.StorageService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	course      *controller.CourseController
	progress    *controller.ProgressController
	assignment  *controller.AssignmentController
	achievement *controller.AchievementController
	analytics   *controller.AnalyticsController
	task        *controller.TaskController
	health      *controller.HealthController
}

func initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		course:      repository.NewCourseRepository(db),
		progress:    repository.NewProgressRepository(db),
		session:     repository.NewSessionRepository(db),
		assignment:  repository.NewAssignmentRepository(db),
		submission:  repository.NewSubmissionRepository(db),
		achievement: repository.NewAchievementRepository(db),
		task:        repository.NewTaskRepository(db),
	}
}

func initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg.Storage)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, repos.session, repos.progress)
	s.achievement = service.NewAchievementService(repos.achievement, repos.progress, repos.user, s.storage, rdb)
	s.course = service.NewCourseService(repos.course, repos.progress, repos.user)
	s.progress = service.NewProgressService(repos.progress, repos.session, repos.course, s.user, s.achievement)
	s.assignment = service.NewAssignmentService(repos.assignment, repos.submission, repos.progress, repos.course, s.achievement)
	s.analytics = service.NewAnalyticsService(repos.user, repos.course, repos.progress, repos.session, repos.assignment, repos.submission, repos.achievement)
	s.task = service.NewTaskService(repos.task, s.achievement)

	return s, nil
}

func initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		user:        controller.NewUserController(s.user),
		course:      controller.NewCourseController(s.course, s.progress),
		progress:    controller.NewProgressController(s.progress),
		assignment:  controller.NewAssignmentController(s.assignment),
		achievement: controller.NewAchievementController(s.achievement),
		analytics:   controller.NewAnalyticsController(s.analytics),
		task:        controller.NewTaskController(s.task),
		health:      controller.NewHealthController(db),
	}
}

func setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db, false); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}
	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := initRepositories(db)
	svcs, err := initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	ctrls := initControllers(svcs, db)

	monitoring.Init()

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("learnhub-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	setupMiddlewares(router, cfg)
	app.registerRoutes(router, ctrls, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/certificates", cfg.Storage.LocalPath+"/certificates")
	}

	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		logger.Log.Info("configuration reloaded")
		app.Config.CORS = newCfg.CORS
		app.Config.RateLimit = newCfg.RateLimit
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

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
