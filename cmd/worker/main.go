package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"smartgov_backend/internal/scheduler"
	"smartgov_backend/platform/config"
	"smartgov_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting alert worker", "env", cfg.Env, "queue", cfg.AsynqQueueName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sender := scheduler.NewLoggingSMSSender(log)
	worker, err := scheduler.NewWorker(cfg, sender, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(worker.Run)
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, stopping worker")
		worker.Shutdown()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("worker error", "error", err)
		panic("worker error: " + err.Error())
	}
}
