// Command remind runs one deadline scan and exits. It is meant to be
// invoked from cron; the API exposes the same scan for the chief architect.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/studioforma/atelier/internal/config"
	"github.com/studioforma/atelier/internal/infrastructure/database"
	"github.com/studioforma/atelier/internal/infrastructure/email"
	"github.com/studioforma/atelier/internal/infrastructure/messaging"
	"github.com/studioforma/atelier/internal/logger"
	"github.com/studioforma/atelier/internal/usecase"
)

func main() {
	timeout := flag.Duration("timeout", 5*time.Minute, "overall scan deadline")
	dryRun := flag.Bool("dry-run", false, "report matching tasks without sending anything")
	flag.Parse()

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

	repos := database.NewRepositories(db, zapLogger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if *dryRun {
		if err := reportOnly(ctx, repos, cfg.Notify.DueSoonDays); err != nil {
			zapLogger.Fatal("Dry run failed", zap.Error(err))
		}
		return
	}

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

	dispatcher := usecase.NewNotificationDispatcher(
		repos.Notification,
		repos.Task,
		repos.Member,
		email.NewClient(&cfg.Email, zapLogger),
		publisher,
		zapLogger,
		cfg.Notify.DueSoonDays,
		cfg.Notify.MaxConcurrent,
	)

	report, err := dispatcher.RunDeadlineScan(ctx)
	if err != nil {
		zapLogger.Fatal("Deadline scan failed", zap.Error(err))
	}

	zapLogger.Info("Deadline scan finished",
		zap.Int("attempted", report.Attempted),
		zap.Int("sent", report.Sent),
		zap.Int("failed", report.Failed))
}

func reportOnly(ctx context.Context, repos *database.Repositories, dueSoonDays int) error {
	now := time.Now()

	overdue, err := repos.Task.ListOverdue(ctx, now)
	if err != nil {
		return err
	}
	dueSoon, err := repos.Task.ListDueBetween(ctx, now, now.AddDate(0, 0, dueSoonDays))
	if err != nil {
		return err
	}

	fmt.Printf("overdue: %d task(s)\n", len(overdue))
	for _, task := range overdue {
		fmt.Printf("  #%d %s (due %s)\n", task.ID, task.Title, task.DueDate.Format("2006-01-02"))
	}
	fmt.Printf("due within %d day(s): %d task(s)\n", dueSoonDays, len(dueSoon))
	for _, task := range dueSoon {
		fmt.Printf("  #%d %s (due %s)\n", task.ID, task.Title, task.DueDate.Format("2006-01-02"))
	}
	return nil
}
