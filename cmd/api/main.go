// @title           Bizcare Dummy Server
// @version         1.0
// @description     사내 복지 게시판/정책 콘텐츠 API

// @host      localhost:8300
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dahun428-fx/bizcare-dummy-server/internal/config"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/filestore"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/handler"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/job"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/metrics"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/repository"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/router"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/service"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	logger.Info("Starting bizcare dummy server",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("board_file", cfg.Store.BoardFile),
		zap.String("policy_file", cfg.Store.PolicyFile),
		zap.String("upload_backend", cfg.Uploads.Backend),
	)

	// Initialize metrics
	m := metrics.NewWithLogger(logger)

	// Locked file store over the JSON documents
	store := storage.New(storage.Options{
		Retries:        cfg.Lock.Retries,
		MinBackoff:     cfg.Lock.MinBackoff,
		MaxBackoff:     cfg.Lock.MaxBackoff,
		StaleThreshold: cfg.Lock.StaleThreshold,
	}, logger, m)

	boardRepo := repository.NewBoardRepository(store, cfg.Store.BoardFile)
	policyRepo := repository.NewPolicyRepository(store, cfg.Store.PolicyFile)

	// Uploaded binaries: local disk by default, S3 when configured
	fileStore, err := newFileStore(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize file store", zap.Error(err))
	}

	fileService := service.NewFileService(fileStore, boardRepo, cfg.Uploads.FetchTimeout, cfg.Uploads.MaxAttachments, m, logger)
	boardService := service.NewBoardService(boardRepo, fileService, m, logger)
	policyService := service.NewPolicyService(policyRepo, fileService, m, logger)

	r := router.New(cfg, logger, m, router.Handlers{
		Auth:    handler.NewAuthHandler(cfg.Auth.User),
		Board:   handler.NewBoardHandler(boardService, fileService),
		Admin:   handler.NewAdminHandler(boardService, fileService),
		Comment: handler.NewCommentHandler(boardService),
		Policy:  handler.NewPolicyHandler(policyService),
		File:    handler.NewFileHandler(fileService),
	})

	// Scheduled cleanup of orphaned uploads and stale lock files
	c := cron.New()
	if cfg.Uploads.Backend == "local" {
		cleanup := job.NewCleanupJob(
			boardRepo,
			policyRepo,
			cfg.Uploads.Dir,
			[]string{cfg.Store.BoardFile, cfg.Store.PolicyFile},
			cfg.Cleanup.MinAge,
			cfg.Lock.StaleThreshold,
			logger,
		)
		if _, err := c.AddJob(cfg.Cleanup.Schedule, cleanup); err != nil {
			logger.Warn("Failed to schedule cleanup job", zap.Error(err))
		} else {
			logger.Info("Cleanup job scheduled", zap.String("schedule", cfg.Cleanup.Schedule))
		}
	}
	c.Start()
	defer c.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("Server started successfully", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

func newFileStore(cfg *config.Config, logger *zap.Logger) (filestore.FileStore, error) {
	if cfg.Uploads.Backend == "s3" && cfg.S3.Bucket != "" {
		logger.Info("Using S3 file store",
			zap.String("bucket", cfg.S3.Bucket),
			zap.String("region", cfg.S3.Region))
		return filestore.NewS3(&cfg.S3)
	}
	return filestore.NewLocal(cfg.Uploads.Dir)
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
