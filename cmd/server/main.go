package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/studioforma/atelier/internal/config"
	"github.com/studioforma/atelier/internal/infrastructure/database"
	"github.com/studioforma/atelier/internal/infrastructure/email"
	httpServer "github.com/studioforma/atelier/internal/infrastructure/http"
	"github.com/studioforma/atelier/internal/infrastructure/messaging"
	"github.com/studioforma/atelier/internal/infrastructure/storage"
	"github.com/studioforma/atelier/internal/logger"
	"github.com/studioforma/atelier/internal/usecase"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.NewZapLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	repos := database.NewRepositories(db, zapLogger)

	emailClient := email.NewClient(&cfg.Email, zapLogger)

	storageClient, err := storage.NewClient(context.Background(), &cfg.Storage, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize storage client", zap.Error(err))
	}

	// Realtime publishing is optional: without Redis the app still works,
	// notifications just arrive on the next poll.
	var publisher usecase.EventPublisher
	if cfg.Redis.Addr != "" {
		redisClient, err := messaging.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			zapLogger.Warn("Redis unavailable, realtime notifications disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			publisher = messaging.NewNotificationPublisher(redisClient, cfg.Redis.Channel)
		}
	}

	srv := httpServer.NewServer(cfg, zapLogger, repos, emailClient, publisher, storageClient)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	zapLogger.Info("Server shut down successfully")
}
