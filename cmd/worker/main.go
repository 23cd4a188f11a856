package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/vaulta/vaulta/internal/activities"
	"github.com/vaulta/vaulta/internal/app"
	jobmetrics "github.com/vaulta/vaulta/internal/jobs"
	"github.com/vaulta/vaulta/internal/platform/db"
	"github.com/vaulta/vaulta/jobs"
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

	metrics := jobmetrics.NewMetrics(nil)
	activityRepo := activities.NewRepository(pool)
	activityJob := jobs.NewActivityLogJob(activityRepo, logger, metrics)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTypeActivityLog, Handler: activityJob.Handle},
		},
		// The warmup task is consumed by the web process, where the
		// list caches live; this process only schedules it.
		Cron: []jobs.CronRegistration{
			{
				Spec:    "*/10 * * * *",
				Task:    jobs.NewCacheWarmupTask(),
				Options: []asynq.Option{asynq.Queue(jobs.QueueWarmup)},
			},
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
