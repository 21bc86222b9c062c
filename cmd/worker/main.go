package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/DigitariaWebs/puneet-sub015/internal/app"
	"github.com/DigitariaWebs/puneet-sub015/internal/booking"
	"github.com/DigitariaWebs/puneet-sub015/internal/platform/cache"
	"github.com/DigitariaWebs/puneet-sub015/internal/platform/db"
	"github.com/DigitariaWebs/puneet-sub015/jobs"
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

	store, cleanup, err := newStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("open ledger store", slog.Any("error", err))
		os.Exit(1)
	}
	defer cleanup()

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskBookingSnapshot, Handler: jobs.NewBookingSnapshotHandler(store, logger)},
			{Type: jobs.TaskBookingIntegrity, Handler: jobs.NewBookingIntegrityHandler(store, logger)},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.SnapshotCron, Task: jobs.NewBookingSnapshotTask()},
			{Spec: cfg.IntegrityCron, Task: jobs.NewBookingIntegrityTask()},
		},
	})
	if err != nil {
		logger.Error("build worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

// newStore mirrors the console's backend selection so both processes
// share one persisted document.
func newStore(ctx context.Context, cfg *app.Config, logger *slog.Logger) (booking.Store, func(), error) {
	switch cfg.LedgerStore {
	case "redis":
		client, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}
		return booking.NewRedisStore(client, cfg.LedgerRedisKey), cleanup, nil
	case "postgres":
		pool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			return nil, nil, err
		}
		return booking.NewPostgresStore(pool), pool.Close, nil
	default:
		return booking.NewFileStore(cfg.LedgerStorePath), func() {}, nil
	}
}
