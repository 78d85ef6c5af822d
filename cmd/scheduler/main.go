package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmlabs-hris/hris-compensation-go/internal/config"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/events"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/logging"
	"github.com/cmlabs-hris/hris-compensation-go/internal/repository/postgresql"
	contributionService "github.com/cmlabs-hris/hris-compensation-go/internal/service/contribution"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.App.LogLevel, cfg.App.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		logger.Error("failed to connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	repo := postgresql.NewRepository(db)

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.TopicPrefix)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	contributionSvc := contributionService.NewContributionService(repo, cfg.Policy.Contributions, publisher, logger)

	scheduler := cron.NewScheduler(logger)
	cron.NewContributionJobs(contributionSvc, repo, cfg.Scheduler.BatchDay, logger).
		RegisterJobs(scheduler, cfg.Scheduler.Interval)

	scheduler.Start()
	logger.Info("scheduler running",
		slog.Int("batch_day", cfg.Scheduler.BatchDay),
		slog.Duration("interval", cfg.Scheduler.Interval),
	)

	<-ctx.Done()
	logger.Info("shutting down scheduler")
	scheduler.Stop()
}
