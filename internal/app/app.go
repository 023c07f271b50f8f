package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"french_assessment_backend/internal/config"
	"french_assessment_backend/internal/controller"
	"french_assessment_backend/internal/repository"
	"french_assessment_backend/internal/service"
	"french_assessment_backend/pkg/configwatcher"
	"french_assessment_backend/pkg/database"
	"french_assessment_backend/pkg/logger"
	"french_assessment_backend/pkg/monitoring"
	"french_assessment_backend/pkg/security"
	"french_assessment_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	ConfigPath      string
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	limiter         *security.RateLimiter
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
	configMu        sync.RWMutex
}

type repositories struct {
	statement  *repository.StatementRepository
	card       *repository.CardRepository
	submission *repository.SubmissionRepository
}

type services struct {
	auth        *service.AuthService
	storage     *service.StorageService
	scoring     *service.ScoringService
	catalog     *service.CatalogService
	submission  *service.SubmissionService
	report      *service.ReportService
	respondents service.RespondentStore
	httpClient  *http.Client
}

type controllers struct {
	health     *controller.HealthController
	framework  *controller.FrameworkController
	assessment *controller.AssessmentController
	catalog    *controller.CatalogController
	admin      *controller.AdminController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configMu.Lock()
	defer a.configMu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	return &repositories{
		statement:  repository.NewStatementRepository(db),
		card:       repository.NewCardRepository(db, rdb, cfg.Catalog.CacheTTL),
		submission: repository.NewSubmissionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(cfg)
	s.scoring = service.NewScoringService(repos.statement)
	s.catalog = service.NewCatalogService(repos.card)

	if rdb != nil {
		s.respondents = service.NewRedisRespondentStore(rdb)
	} else {
		s.respondents = service.NewMemoryRespondentStore()
	}

	s.httpClient = &http.Client{Timeout: cfg.Submission.Timeout}

	targets := []service.SubmissionTarget{
		service.NewLocalAPITarget(repos.submission, service.NewCSVSink(cfg.Submission.CSVPath)),
	}
	if cfg.Submission.ScriptURL != "" {
		targets = append(targets, service.NewSpreadsheetTarget(cfg.Submission.ScriptURL, s.httpClient))
	}
	kind, _ := service.ParseTargetKind(cfg.Submission.Target)
	s.submission = service.NewSubmissionService(s.scoring, s.respondents, cfg.Submission.Timeout, kind, targets...)

	s.report = service.NewReportService(s.scoring, s.storage, cfg.Report.Store)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		health:     controller.NewHealthController(db, rdb),
		framework:  controller.NewFrameworkController(s.scoring),
		assessment: controller.NewAssessmentController(s.scoring, s.submission, s.report),
		catalog:    controller.NewCatalogController(s.catalog),
		admin:      controller.NewAdminController(s.auth, s.submission),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	a.limiter = security.NewRateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute)
	router.Use(a.limiter.Middleware())

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// registerReloaders applies the settings that can change without a restart.
func (a *App) registerReloaders(s *services) {
	a.RegisterConfigCallback(func(cfg *config.Config) {
		a.limiter.SetLimit(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute)
	})
	a.RegisterConfigCallback(func(cfg *config.Config) {
		if cfg.Submission.ScriptURL != "" {
			s.submission.SetTarget(service.NewSpreadsheetTarget(cfg.Submission.ScriptURL, s.httpClient))
		}
		if kind, ok := service.ParseTargetKind(cfg.Submission.Target); ok {
			s.submission.SetDefaultTarget(kind)
		}
	})
	a.RegisterConfigCallback(s.auth.Update)
}

// applyConfig runs on the watcher goroutine; readers go through CurrentConfig.
func (a *App) applyConfig(cfg *config.Config) {
	a.configMu.Lock()
	defer a.configMu.Unlock()
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
	a.Config = cfg
}

func (a *App) CurrentConfig() *config.Config {
	a.configMu.RLock()
	defer a.configMu.RUnlock()
	return a.Config
}

func NewApp(cfg *config.Config, configPath string) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.ForceMigrate || cfg.Server.Mode != "release" {
		if err := database.Migrate(db, cfg.Catalog.Path); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	app := &App{
		Config:     cfg,
		ConfigPath: configPath,
		DB:         db,
	}

	if cfg.MigrateOnly {
		return app
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
	} else {
		logger.Log.Info("Redis disabled, using in-process respondent store")
	}
	app.Redis = rdb

	repos := app.initRepositories(db, rdb, cfg)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerReloaders(services)
	app.registerRoutes(router, controllers, services, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	port := a.CurrentConfig().Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: a.Router,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	go func() {
		configFile := filepath.Join(a.ConfigPath, "config.yaml")
		if err := configwatcher.WatchConfig(ctx, configFile, a.applyConfig); err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()

	go func() {
		log.Printf("Server running on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	log.Println("Server exiting")
}
