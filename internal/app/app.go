package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ortprep_backend/internal/config"
	"ortprep_backend/internal/controller"
	"ortprep_backend/internal/repository"
	"ortprep_backend/internal/service"
	"ortprep_backend/pkg/database"
	"ortprep_backend/pkg/logger"
	"ortprep_backend/pkg/monitoring"
	"ortprep_backend/pkg/security"
	"ortprep_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user       *repository.UserRepository
	topic      *repository.TopicRepository
	ortSample  *repository.OrtSampleRepository
	test       *repository.TestRepository
	progress   *repository.TestProgressRepository
	history    *repository.TestHistoryRepository
	advice     *repository.AdviceRepository
	aiQuestion *repository.AiQuestionRepository
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	ai         *service.AIService
	test       *service.TestService
	progress   *service.TestProgressService
	history    *service.TestHistoryService
	advice     *service.AdviceService
	ortSample  *service.OrtSampleService
	aiQuestion *service.AiQuestionService
}

type controllers struct {
	auth       *controller.AuthController
	test       *controller.TestController
	progress   *controller.TestProgressController
	history    *controller.TestHistoryController
	advice     *controller.AdviceController
	ortSample  *controller.OrtSampleController
	aiQuestion *controller.AiQuestionController
	health     *controller.HealthController
}

// ApplyConfig fans a freshly loaded config out to the running services.
// Only the AI endpoint is hot-swappable; server, database and middleware
// settings need a restart.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	a.services.ai.UpdateConfig(cfg.AI)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		topic:      repository.NewTopicRepository(db),
		ortSample:  repository.NewOrtSampleRepository(db),
		test:       repository.NewTestRepository(db),
		progress:   repository.NewTestProgressRepository(db),
		history:    repository.NewTestHistoryRepository(db),
		advice:     repository.NewAdviceRepository(db),
		aiQuestion: repository.NewAiQuestionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.ai = service.NewAIService(cfg.AI)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.test = service.NewTestService(repos.test, repos.topic, repos.ortSample, repos.history, repos.progress, s.ai, rdb)
	s.progress = service.NewTestProgressService(repos.progress, repos.test)
	s.history = service.NewTestHistoryService(repos.history)
	s.advice = service.NewAdviceService(repos.advice, repos.history, repos.test, repos.topic, s.ai)
	s.ortSample = service.NewOrtSampleService(repos.ortSample, repos.topic, s.storage)
	s.aiQuestion = service.NewAiQuestionService(repos.aiQuestion, s.ai)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		test:       controller.NewTestController(s.test),
		progress:   controller.NewTestProgressController(s.progress),
		history:    controller.NewTestHistoryController(s.history),
		advice:     controller.NewAdviceController(s.advice),
		ortSample:  controller.NewOrtSampleController(s.ortSample),
		aiQuestion: controller.NewAiQuestionController(s.aiQuestion),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
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
	logger.Log.Info("Logger initialized")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("ortprep-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

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
