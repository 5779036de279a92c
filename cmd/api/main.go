package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"maid-recruitment-backend/config"
	v1 "maid-recruitment-backend/internal/delivery/http/v1"
	"maid-recruitment-backend/internal/messaging"
	"maid-recruitment-backend/internal/repository/cache"
	"maid-recruitment-backend/internal/repository/postgres"
	"maid-recruitment-backend/internal/usecase"
	"maid-recruitment-backend/pkg/audit"
	"maid-recruitment-backend/pkg/database"
	"maid-recruitment-backend/pkg/logger"
	"maid-recruitment-backend/pkg/redis"
	"maid-recruitment-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting maid recruitment backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (view counters degrade to no-op without it)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, job view counters disabled", "error", err)
	}
	defer redis.Close()

	// 5. Setup Event Bus
	eventBus, err := messaging.NewNATSEventBus(cfg.NATSURL, logger.Log)
	if err != nil {
		logger.Log.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	// 6. Setup Audit Logger
	auditLogger, err := audit.NewLogger("maid-recruitment-backend", cfg.Environment)
	if err != nil {
		logger.Log.Error("Failed to build audit logger", "error", err)
		os.Exit(1)
	}
	defer auditLogger.Sync()

	// 7. Setup Repositories
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	maidProfileRepo := postgres.NewMaidProfileRepository(dbPool)
	viewCounter := cache.NewJobViewCounter(redis.Client())

	// 8. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)

	jobUC := usecase.NewJobUsecase(jobRepo, viewCounter, eventBus, auditLogger, validate, usecase.JobUsecaseConfig{
		DefaultMaxApplications: cfg.DefaultMaxApplications,
		PostingTTL:             time.Duration(cfg.PostingTTLDays) * 24 * time.Hour,
	})
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, maidProfileRepo, eventBus, auditLogger, validate)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		JobUC:         jobUC,
		ApplicationUC: applicationUC,
		Config:        cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exited gracefully")
}
