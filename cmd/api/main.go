package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/ghuser/barstock/docs/swagger"
	"github.com/ghuser/barstock/migrations"
	"github.com/ghuser/barstock/pkg/app"
	"github.com/ghuser/barstock/pkg/cache"
	"github.com/ghuser/barstock/pkg/config"
	"github.com/ghuser/barstock/pkg/database"
	"github.com/ghuser/barstock/pkg/events"
	"github.com/ghuser/barstock/pkg/httpx"
	"github.com/ghuser/barstock/pkg/logger"
	"github.com/ghuser/barstock/pkg/migrator"
	"github.com/ghuser/barstock/pkg/telemetry"
	inventoryApi "github.com/ghuser/barstock/services/inventory/application/api"
)

// @title			Barstock API
// @version		1.0
// @description	Bar inventory tracking: items, stock adjustments and low-stock summary.
// @contact.name	API Support
// @license.name	MIT
// @license.url	https://opensource.org/licenses/MIT
// @host			localhost:8080
// @BasePath		/api
// @schemes		http https
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

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Crash reporting: Sentry (optional, log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	appConfig := &app.Application{
		Config: cfg,
		Logger: log,
	}
	checks := httpx.HealthChecks{}

	if cfg.UsesSQL() {
		pool, err := database.NewPool(ctx, cfg.StorageDriver, cfg.DatabaseURL, log)
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
		}
		defer pool.Close()
		log.Info("database pool connected", "storage_driver", cfg.StorageDriver)
		appConfig.Db = pool
		checks["database"] = pool

		if cfg.AutoMigrate {
			files, err := migrations.ForDriver(cfg.StorageDriver)
			if err != nil {
				log.Error("no migrations for storage driver", "error", err)
				os.Exit(1) //nolint:gocritic
			}
			if err := migrator.Up(pool.DB(), cfg.StorageDriver, files); err != nil {
				log.Error("failed to apply migrations", "error", err)
				os.Exit(1) //nolint:gocritic
			}
			log.Info("migrations applied")
		}

		if cfg.EventsEnabled {
			eventBus, err := events.NewEventBusWithForwarder(cfg, log)
			if err != nil {
				log.Error("failed to setup event bus", "error", err)
				os.Exit(1) //nolint:gocritic
			}
			defer eventBus.Close() //nolint:errcheck

			if err := eventBus.StartForwarder(ctx); err != nil {
				log.Error("failed to start event forwarder", "error", err)
				os.Exit(1) //nolint:gocritic
			}
			appConfig.EventBus = eventBus
			checks["event_bus"] = eventBus
		}
	} else {
		log.Warn("using in-memory storage, inventory is lost on restart", "seeded", cfg.SeedSampleData)
	}

	switch {
	case cfg.RedisURL != "":
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1) //nolint:gocritic // intentional: startup failure
		}
		defer redisClient.Close() //nolint:errcheck
		log.Info("redis connected")
		appConfig.Cache = cache.NewRedisItemCache(redisClient, cfg.CacheTTL)
		checks["redis"] = redisClient
	case cfg.LocalCache && cfg.UsesSQL():
		// Other API instances never see this process's invalidations.
		log.Warn("using in-process item cache, run a single API instance", "size", cfg.LocalCacheSize, "ttl", cfg.CacheTTL)
		appConfig.Cache = cache.NewLocalItemCache(cfg.LocalCacheSize, cfg.CacheTTL)
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		},
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	r.Get("/health", httpx.HealthHandler(checks))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Route("/api", func(r chi.Router) {
		registerRoutes(r, appConfig)
	})

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// registerRoutes mounts all service routes under /api.
// Add each new service's route function here.
func registerRoutes(r chi.Router, a *app.Application) {
	inventoryApi.InventoryRoutes(r, a)
}
