package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/johnquangdev/minutemind/docs"
	pkgvalidator "github.com/johnquangdev/minutemind/pkg/validator"

	"github.com/johnquangdev/minutemind/internal/adapter/handler"
	"github.com/johnquangdev/minutemind/internal/adapter/repository"
	"github.com/johnquangdev/minutemind/internal/infrastructure/cache"
	"github.com/johnquangdev/minutemind/internal/infrastructure/database"
	httpmw "github.com/johnquangdev/minutemind/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/minutemind/internal/infrastructure/storage"
	aiuse "github.com/johnquangdev/minutemind/internal/usecase/ai"
	"github.com/johnquangdev/minutemind/internal/usecase/auth"
	"github.com/johnquangdev/minutemind/internal/usecase/conflict"
	"github.com/johnquangdev/minutemind/internal/usecase/meeting"
	"github.com/johnquangdev/minutemind/internal/usecase/submission"
	"github.com/johnquangdev/minutemind/internal/usecase/task"
	pkgai "github.com/johnquangdev/minutemind/pkg/ai"
	"github.com/johnquangdev/minutemind/pkg/config"
	"github.com/johnquangdev/minutemind/pkg/jwt"
)

// @title           MinuteMind API
// @version         1.0
// @description     Minutes-of-meeting service: meetings, analysis ingestion, tasks, conflicts and AI transcription.

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

const guardPrefix = "minutemind:submission:"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Cookie"},
		AllowCredentials: true,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("🔧 Initializing dependencies...")
	checks := map[string]handler.HealthCheck{}

	// Database
	logger.Info("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db, cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	checks["database"] = pingDB(db)

	// Submission guard: Redis when configured, in-process otherwise
	var guard submission.Guard
	if addr := cfg.GetRedisAddr(); addr != "" {
		logger.Info("📦 Connecting to Redis...", zap.String("addr", addr))
		redisClient, err := cache.NewRedisClient(ctx, addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		guard = cache.NewRedisGuard(redisClient, guardPrefix, cfg.Submission.GuardTTL)
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	} else {
		logger.Warn("⚠️  REDIS_HOST not set, submission guard is in memory and resets on restart")
		memoryGuard := cache.NewMemoryStore(cfg.Submission.GuardTTL)
		defer memoryGuard.Close()
		guard = memoryGuard
	}

	// Object storage
	var (
		objectStore    meeting.ObjectStore
		recordingStore aiuse.RecordingStore
	)
	if cfg.Storage.Enabled {
		logger.Info("🗄️  Connecting to object storage...", zap.String("endpoint", cfg.Storage.Endpoint))
		minioClient, err := storage.NewMinIOClient(ctx, &cfg.Storage)
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
		objectStore = minioClient
		recordingStore = minioClient
		checks["storage"] = minioClient.Ping
	} else {
		logger.Warn("⚠️  Storage disabled, recordings and analysis snapshots are not kept")
	}

	// Repositories
	logger.Info("⚙️  Initializing repositories...")
	meetingRepo := repository.NewMeetingRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	conflictRepo := repository.NewConflictRepository(db)
	aiJobRepo := repository.NewAIJobRepository(db)
	transcriptRepo := repository.NewTranscriptRepository(db)

	// Services
	taskService := task.NewTaskService(taskRepo, meetingRepo, logger)
	conflictService := conflict.NewConflictService(conflictRepo, meetingRepo, logger)
	submitter := submission.NewSubmitter(taskService, conflictService, submission.Options{
		Concurrency: cfg.Submission.Concurrency,
		MaxAttempts: cfg.Submission.MaxAttempts,
	}, logger)
	meetingService := meeting.NewMeetingService(meetingRepo, taskRepo, conflictRepo, submitter, guard, objectStore, logger)

	// AI components
	logger.Info("🤖 Initializing AI components...")
	var (
		transcriber aiuse.Transcriber
		analyzer    aiuse.Analyzer
	)
	if cfg.Assembly.APIKey != "" {
		webhookURL := strings.TrimRight(cfg.Server.PublicURL, "/") + "/v1/webhooks/assemblyai"
		transcriber = pkgai.NewAssemblyAIClient(&cfg.Assembly, webhookURL, "")
	} else {
		logger.Warn("⚠️  ASSEMBLYAI_API_KEY not set, recording uploads are disabled")
	}
	if cfg.Groq.APIKey != "" {
		analyzer = pkgai.NewGroqClient(&cfg.Groq)
	} else {
		logger.Warn("⚠️  GROQ_API_KEY not set, transcript analysis is disabled")
	}
	aiService := aiuse.NewAIService(
		meetingRepo,
		aiJobRepo,
		transcriptRepo,
		transcriber,
		analyzer,
		recordingStore,
		meetingService,
		aiuse.OptionsFromConfig(cfg),
		logger,
	)
	if err := aiService.StartWorkerPool(ctx); err != nil {
		logger.Fatal("Failed to start AI worker pool", zap.Error(err))
	}

	// Auth
	logger.Info("🔑 Initializing auth...")
	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry)
	authService := auth.NewLoginService(cfg.Auth, jwtManager, logger)
	var authMW echo.MiddlewareFunc
	if cfg.Auth.Enabled {
		authMW = httpmw.EchoAuth(authService)
	} else {
		logger.Warn("⚠️  AUTH_ENABLED=false, the API is open")
	}

	// Routes
	logger.Info("🛣️  Setting up routes...")
	router := handler.NewRouter(handler.RouterConfig{
		Environment:    cfg.Server.Environment,
		Auth:           handler.NewAuth(authService, cfg.Server.Environment == "production", logger),
		Meeting:        handler.NewMeetingHandler(meetingService, aiService, cfg.Server.MaxUploadMB, logger),
		Task:           handler.NewTaskHandler(taskService, logger),
		Conflict:       handler.NewConflictHandler(conflictService, logger),
		Webhook:        handler.NewWebhookHandler(aiService, logger),
		AuthMiddleware: authMW,
		HealthChecks:   checks,
		Logger:         logger,
	})
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
		)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("🛑 Shutting down server...")

	if err := aiService.StopWorkerPool(); err != nil {
		logger.Warn("Failed to stop AI worker pool", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("❌ Server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("✅ Server stopped gracefully")
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func pingDB(db *gorm.DB) handler.HealthCheck {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
