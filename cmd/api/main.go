package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/johnquangdev/meeting-scribe/pkg/validator"

	"github.com/johnquangdev/meeting-scribe/internal/adapter/handler"
	"github.com/johnquangdev/meeting-scribe/internal/adapter/repository"
	"github.com/johnquangdev/meeting-scribe/internal/domain/repositories"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/extract"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/housekeeping"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/language"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/pipeline"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/report"
	pkgai "github.com/johnquangdev/meeting-scribe/pkg/ai"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
	"github.com/johnquangdev/meeting-scribe/pkg/retry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// Reject oversized uploads before reading the body
	e.Use(middleware.BodyLimit(strconv.FormatInt(cfg.Upload.MaxBytes, 10)))

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize AI clients
	log.Println("🤖 Initializing AI clients...")
	asmClient := pkgai.NewAssemblyAIClient(&cfg.Assembly)
	groqClient := pkgai.NewGroqClient(&cfg.Groq)

	// Initialize artifact store
	log.Println("📦 Initializing artifact store...")
	var artifactRepo repositories.ArtifactRepository
	switch cfg.Storage.Type {
	case "minio":
		artifactRepo, err = repository.NewMinIOArtifactRepository(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize MinIO artifact store: %v", err)
		}
		log.Printf("✅ Artifact store: MinIO bucket %q", cfg.Storage.BucketName)
	default:
		artifactRepo, err = repository.NewFilesystemArtifactRepository(cfg.Folders.ArtifactDir)
		if err != nil {
			log.Fatalf("Failed to initialize filesystem artifact store: %v", err)
		}
		log.Printf("✅ Artifact store: local directory %q", cfg.Folders.ArtifactDir)
	}

	// Initialize pipeline services
	log.Println("⚙️  Initializing pipeline services...")
	policy := retry.Policy{
		MaxAttempts:     cfg.Retry.MaxAttempts,
		InitialInterval: cfg.Retry.InitialInterval,
	}
	normalizer := language.NewNormalizer(groqClient, policy, logger)
	extractor := extract.NewExtractor(groqClient, policy, logger)
	sweeper := housekeeping.NewSweeper(
		[]string{cfg.Folders.UploadDir, cfg.Folders.TranscriptDir},
		cfg.Retention.MaxFileAge,
		logger,
	)
	pipelineService := pipeline.NewService(
		asmClient,
		normalizer,
		extractor,
		artifactRepo,
		sweeper,
		policy,
		cfg.Folders.TranscriptDir,
		logger,
	)

	// Initialize meeting handler
	log.Println("🚀 Initializing meeting handler...")
	renderer := report.NewRenderer()
	meetingHandler := handler.NewMeeting(pipelineService, artifactRepo, renderer, cfg, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, meetingHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
