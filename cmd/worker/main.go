package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghuser/barstock/pkg/app"
	"github.com/ghuser/barstock/pkg/cache"
	"github.com/ghuser/barstock/pkg/config"
	"github.com/ghuser/barstock/pkg/database"
	"github.com/ghuser/barstock/pkg/events"
	"github.com/ghuser/barstock/pkg/logger"
	"github.com/ghuser/barstock/pkg/telemetry"
	appsvcs "github.com/ghuser/barstock/services/inventory/application/services"
	"github.com/ghuser/barstock/services/inventory/application/subscribers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	if !cfg.UsesSQL() || !cfg.EventsEnabled {
		log.Error("worker requires a SQL storage driver with EVENTS_ENABLED=true",
			"storage_driver", cfg.StorageDriver, "events_enabled", cfg.EventsEnabled)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.StorageDriver, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected", "storage_driver", cfg.StorageDriver)

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	appConfig := &app.Application{
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
	}

	// Only a shared cache can be invalidated from here. LOCAL_CACHE is for
	// single-instance APIs, which invalidate their own LRU in process.
	if cfg.RedisURL != "" {
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer redisClient.Close() //nolint:errcheck
		log.Info("redis connected")
		appConfig.Cache = cache.NewRedisItemCache(redisClient, cfg.CacheTTL)
	}

	svcs := appsvcs.New(appConfig)
	if err := subscribers.Register(ctx, eventBus, svcs.Inventory, log); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}
