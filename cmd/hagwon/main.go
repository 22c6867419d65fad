package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/hagwonhq/hagwon/internal/app"
	"github.com/hagwonhq/hagwon/internal/billing"
	"github.com/hagwonhq/hagwon/internal/catalog"
	"github.com/hagwonhq/hagwon/internal/notify"
	"github.com/hagwonhq/hagwon/internal/observability"
	"github.com/hagwonhq/hagwon/internal/plans"
	"github.com/hagwonhq/hagwon/internal/platform/cache"
	"github.com/hagwonhq/hagwon/internal/platform/db"
	"github.com/hagwonhq/hagwon/internal/study"
	"github.com/hagwonhq/hagwon/internal/users"
	"github.com/hagwonhq/hagwon/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	notifier := notify.NewPublisher(redisClient, cfg.NotifyChannel)

	plansRepo := plans.NewRepository(dbpool)
	plansCache := plans.NewCache(redisClient, cfg.PlansCacheTTL)
	plansService := plans.NewService(plansRepo, plansCache, notifier, logger)
	plansHandler := plans.NewHandler(logger, plansService)

	usersRepo := users.NewRepository(dbpool)
	usersService := users.NewService(usersRepo, logger)
	usersHandler := users.NewHandler(logger, usersService)

	catalogRepo := catalog.NewRepository(dbpool)
	catalogService := catalog.NewService(catalogRepo, usersService)
	catalogHandler := catalog.NewHandler(logger, catalogService)

	emitter, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := emitter.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()

	billingRepo := billing.NewRepository(dbpool)
	billingService := billing.NewService(billingRepo, plansService, emitter, logger)
	billingHandler := billing.NewHandler(logger, billingService)

	studyStore := study.NewStore(redisClient, logger)
	studyHandler := study.NewHandler(logger, studyStore)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		PlansHandler:   plansHandler,
		BillingHandler: billingHandler,
		CatalogHandler: catalogHandler,
		StudyHandler:   studyHandler,
		UsersHandler:   usersHandler,
		JobHandler:     jobHandler,
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
