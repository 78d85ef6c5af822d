package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-compensation-go/internal/config"
	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
	appHTTP "github.com/cmlabs-hris/hris-compensation-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/events"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/logging"
	"github.com/cmlabs-hris/hris-compensation-go/internal/repository/cache"
	"github.com/cmlabs-hris/hris-compensation-go/internal/repository/postgresql"
	compensationService "github.com/cmlabs-hris/hris-compensation-go/internal/service/compensation"
	contributionService "github.com/cmlabs-hris/hris-compensation-go/internal/service/contribution"
	dashboardService "github.com/cmlabs-hris/hris-compensation-go/internal/service/dashboard"
	loanService "github.com/cmlabs-hris/hris-compensation-go/internal/service/loan"
	promotionService "github.com/cmlabs-hris/hris-compensation-go/internal/service/promotion"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.App.LogLevel, cfg.App.Env)
	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	repo := postgresql.NewRepository(db)

	var loanTypes record.LoanTypeReader = repo
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, loan types will be read from the database", slog.Any("error", err))
		}
		loanTypes = cache.NewLoanTypeCache(repo, rdb, cfg.Redis.LoanTypesTTL, logger)
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.TopicPrefix)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	compensationSvc := compensationService.NewCompensationService(repo, cfg.Policy.Compensation, publisher, logger)
	contributionSvc := contributionService.NewContributionService(repo, cfg.Policy.Contributions, publisher, logger)
	loanSvc := loanService.NewLoanService(repo, repo, loanTypes, cfg.Policy.Loan, publisher, logger)
	dashboardSvc := dashboardService.NewDashboardService(repo, dashboardService.Options{
		Timeout:     cfg.Reporter.Timeout,
		RecentLimit: cfg.Reporter.RecentLimit,
	}, logger)
	promotionSvc := promotionService.NewPromotionService(repo, cfg.Policy.Promotion)

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		JWTAuth:        jwtauth.New("HS256", []byte(cfg.JWT.Secret), nil, jwt.WithAcceptableSkew(30*time.Second)),
		Logger:         logger,
		AllowedOrigins: cfg.App.CORSOrigins,
		RateLimit:      rate.Limit(cfg.RateLimit.RPS),
		RateBurst:      cfg.RateLimit.Burst,
	}, appHTTP.Handlers{
		Compensation: appHTTP.NewCompensationHandler(compensationSvc),
		Contribution: appHTTP.NewContributionHandler(contributionSvc),
		Loan:         appHTTP.NewLoanHandler(loanSvc),
		Dashboard:    appHTTP.NewDashboardHandler(dashboardSvc),
		Promotion:    appHTTP.NewPromotionHandler(promotionSvc),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server running", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
