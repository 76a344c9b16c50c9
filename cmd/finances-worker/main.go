package main

import (
	"context"
	"os"
	"time"

	"github.com/tzoee/personal-finance-manager-sub001/internal/amqp"
	"github.com/tzoee/personal-finance-manager-sub001/internal/app"
	"github.com/tzoee/personal-finance-manager-sub001/internal/cli"
	"github.com/tzoee/personal-finance-manager-sub001/internal/log"
	"github.com/tzoee/personal-finance-manager-sub001/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	logger.Info("Starting finances-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.CloudBackend == "none" {
		logger.Error("Worker requires a cloud backend, set CLOUD_BACKEND to drive or memory")
		os.Exit(1)
	}

	a, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to build application", "error", err)
		os.Exit(1)
	}
	if err := a.Initialize(context.Background()); err != nil {
		logger.Error("Failed to load stores", "error", err)
		a.Close()
		os.Exit(1)
	}

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		if err := a.Close(); err != nil {
			logger.Error("Close failed", "error", err)
		}
	})

	pusher := worker.NewPushWorker(a.Cloud, a.Initialize, a.Snapshots.Export,
		cfg.SyncDebounce, cfg.SyncInterval, cfg.SyncTimeout)

	if cfg.AMQPURL != "" {
		go func() {
			err := amqp.ConsumeWithReconnect(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, pusher.HandleChange)
			if err != nil && ctx.Err() == nil {
				logger.Error("Message consumption stopped", "error", err)
			}
		}()
	} else {
		logger.Info("No AMQP URL configured, relying on periodic sync only")
	}

	go pusher.Run(ctx)

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped")
}
