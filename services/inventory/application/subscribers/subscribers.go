// Package subscribers reacts to inventory domain events delivered by the
// event bus. Handlers are idempotent: a redelivered event invalidates an
// already-missing cache entry and repeats a log line, nothing more.
package subscribers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/barstock/pkg/events"
	"github.com/ghuser/barstock/pkg/logger"
	inventoryevents "github.com/ghuser/barstock/services/inventory/domain/events"
	"github.com/ghuser/barstock/services/inventory/domain/models"
)

// CacheInvalidator drops cached copies of an item.
type CacheInvalidator interface {
	InvalidateCache(ctx context.Context, id models.ItemID) error
}

// Subscriber is the part of the event bus the worker needs.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, handler events.Handler) (<-chan error, error)
}

// Register subscribes a handler to every inventory topic and drains the
// subscriber error channels in the background.
func Register(ctx context.Context, bus Subscriber, inv CacheInvalidator, log logger.Logger) error {
	for _, topic := range inventoryevents.Topics() {
		errCh, err := bus.Subscribe(ctx, topic, HandlerFor(topic, inv, log))
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				log.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}(topic)
	}

	log.Info("event subscribers registered", "topics", inventoryevents.Topics())
	return nil
}

// HandlerFor returns the handler for topic. Every topic invalidates the
// item's cache entry; stock adjustments also raise a low-stock warning.
func HandlerFor(topic string, inv CacheInvalidator, log logger.Logger) events.Handler {
	if topic == inventoryevents.TopicStockAdjusted {
		return handleStockAdjusted(inv, log)
	}
	return handleItemChanged(topic, inv, log)
}

func handleItemChanged(topic string, inv CacheInvalidator, log logger.Logger) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		var env inventoryevents.Envelope
		if err := json.Unmarshal(msg.Payload, &env); err != nil {
			return fmt.Errorf("decode %s: %w", topic, err)
		}
		if err := inv.InvalidateCache(ctx, models.ItemID(env.ItemID)); err != nil {
			return err
		}
		log.DebugContext(ctx, "item cache invalidated", "topic", topic, "item_id", env.ItemID, "event_id", env.EventID)
		return nil
	}
}

func handleStockAdjusted(inv CacheInvalidator, log logger.Logger) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		var evt inventoryevents.StockAdjustedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return fmt.Errorf("decode %s: %w", inventoryevents.TopicStockAdjusted, err)
		}
		if err := inv.InvalidateCache(ctx, models.ItemID(evt.ItemID)); err != nil {
			return err
		}

		if evt.LowStock {
			log.WarnContext(ctx, "low stock",
				"item_id", evt.ItemID,
				"name", evt.Name,
				"quantity", evt.Quantity,
				"low_stock_threshold", evt.LowStockThreshold,
				"delta", evt.Delta,
			)
		}
		return nil
	}
}
