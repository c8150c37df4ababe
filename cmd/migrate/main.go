package main

import (
	"log/slog"
	"os"

	"github.com/ghuser/barstock/migrations"
	"github.com/ghuser/barstock/pkg/config"
	"github.com/ghuser/barstock/pkg/migrator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	files, err := migrations.ForDriver(cfg.StorageDriver)
	if err != nil {
		slog.Error("nothing to migrate", "storage_driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}

	if err := migrator.RunMigrations(cfg.StorageDriver, cfg.DatabaseURL, files); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied", "storage_driver", cfg.StorageDriver)
}
