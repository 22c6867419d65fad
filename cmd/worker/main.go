package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/hagwonhq/hagwon/internal/app"
	jobmetrics "github.com/hagwonhq/hagwon/internal/jobs"
	"github.com/hagwonhq/hagwon/internal/notify"
	"github.com/hagwonhq/hagwon/internal/plans"
	"github.com/hagwonhq/hagwon/internal/platform/cache"
	"github.com/hagwonhq/hagwon/internal/platform/db"
	"github.com/hagwonhq/hagwon/internal/users"
	"github.com/hagwonhq/hagwon/internal/workflow"
	"github.com/hagwonhq/hagwon/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

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

	plansRepo := plans.NewRepository(pool)
	plansCache := plans.NewCache(redisClient, cfg.PlansCacheTTL)
	plansService := plans.NewService(plansRepo, plansCache, notifier, logger)

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo, logger)

	rulesRepo := workflow.NewRepository(pool)
	dispatcher := workflow.NewDispatcher(rulesRepo, usersService, notifier, logger)

	jobMetrics := jobmetrics.NewMetrics(nil)
	dispatchJob := jobs.NewWorkflowDispatchJob(dispatcher, jobMetrics)
	warmupJob := jobs.NewPlansWarmupJob(plansService, jobMetrics)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskWorkflowDispatch, Handler: dispatchJob.Handle},
			{Type: jobs.TaskPlansWarmup, Handler: warmupJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 * * * *", Task: jobs.NewPlansWarmupTask(), Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
