package app

import (
	"github.com/ghuser/barstock/pkg/cache"
	"github.com/ghuser/barstock/pkg/config"
	"github.com/ghuser/barstock/pkg/database"
	"github.com/ghuser/barstock/pkg/events"
	"github.com/ghuser/barstock/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to every service's Routes function during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler. Use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "adjusting stock", "item_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
//
// Db is nil for STORAGE_DRIVER=memory. EventBus and Cache are nil when disabled.
type Application struct {
	Config   *config.Config
	Db       *database.Database
	Logger   logger.Logger
	EventBus *events.EventBus
	Cache    cache.ItemCache
}
