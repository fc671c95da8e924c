package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartgov_backend/internal/alerts"
	"smartgov_backend/internal/events"
	"smartgov_backend/internal/fixtures"
	apphttp "smartgov_backend/internal/http"
	"smartgov_backend/internal/http/router"
	"smartgov_backend/internal/recommend"
	"smartgov_backend/internal/scheduler"
	"smartgov_backend/platform/config"
	"smartgov_backend/platform/logger"
	"smartgov_backend/platform/validator"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// Alert dispatch queue (optional: the API works without Redis)
	dispatcher, closeDispatcher := initAlertDispatcher(cfg, log)
	if closeDispatcher != nil {
		defer closeDispatcher()
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Alerts module subscribes to domain events (not HTTP-facing)
	alertsModule := alerts.New(dispatcher, cfg, log)
	alertsModule.RegisterHandlers(eventBus)

	recommendModule := recommend.NewModule(cfg, eventBus, val, log)

	fixtureStore, err := fixtures.Load()
	if err != nil {
		log.Error("failed to load fixture data", "error", err)
		panic("failed to load fixture data: " + err.Error())
	}
	demoModule := fixtures.NewModule(fixtureStore, recommendModule.Service(), cfg)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			recommendModule,
			demoModule,
		},
	}

	engine := router.New(app)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
}

func initAlertDispatcher(cfg *config.Config, log *logger.Logger) (scheduler.AlertDispatcher, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; SMS alert dispatch disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize alert dispatch client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}
