// Package outbox writes inventory domain events into the Watermill SQL
// tables inside the repository's own transaction, so an event exists if and
// only if the row change it describes was committed.
package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/barstock/pkg/events"
	domainevents "github.com/ghuser/barstock/services/inventory/domain/events"
	"github.com/ghuser/barstock/services/inventory/domain/models"
)

// Publisher publishes inventory events through bus. A nil *Publisher, or one
// built with a nil bus, publishes nothing.
type Publisher struct {
	bus *events.EventBus
}

// NewPublisher returns a Publisher for bus. bus may be nil when events are disabled.
func NewPublisher(bus *events.EventBus) *Publisher {
	return &Publisher{bus: bus}
}

// Enabled reports whether events are actually written.
func (p *Publisher) Enabled() bool {
	return p != nil && p.bus != nil
}

// ItemCreated records an ItemCreatedEvent for item.
func (p *Publisher) ItemCreated(ctx context.Context, tx *sql.Tx, item *models.Item) error {
	env := domainevents.NewEnvelope(item.ID.String())
	return p.publish(ctx, tx, domainevents.TopicItemCreated, env, domainevents.ItemCreatedEvent{
		Envelope: env,
		Item:     Snapshot(item),
	})
}

// ItemUpdated records an ItemUpdatedEvent carrying the replacement state.
func (p *Publisher) ItemUpdated(ctx context.Context, tx *sql.Tx, item *models.Item) error {
	env := domainevents.NewEnvelope(item.ID.String())
	return p.publish(ctx, tx, domainevents.TopicItemUpdated, env, domainevents.ItemUpdatedEvent{
		Envelope: env,
		Item:     Snapshot(item),
	})
}

// ItemDeleted records an ItemDeletedEvent for id.
func (p *Publisher) ItemDeleted(ctx context.Context, tx *sql.Tx, id models.ItemID) error {
	env := domainevents.NewEnvelope(id.String())
	return p.publish(ctx, tx, domainevents.TopicItemDeleted, env, domainevents.ItemDeletedEvent{
		Envelope: env,
	})
}

// StockAdjusted records a StockAdjustedEvent with the post-clamp quantity.
func (p *Publisher) StockAdjusted(ctx context.Context, tx *sql.Tx, item *models.Item, delta int64) error {
	env := domainevents.NewEnvelope(item.ID.String())
	return p.publish(ctx, tx, domainevents.TopicStockAdjusted, env, domainevents.StockAdjustedEvent{
		Envelope:          env,
		Name:              item.Name,
		Delta:             delta,
		Quantity:          item.Quantity,
		LowStockThreshold: item.LowStockThreshold,
		LowStock:          item.IsLowStock(),
	})
}

// Snapshot converts item into its event representation.
func Snapshot(item *models.Item) domainevents.ItemSnapshot {
	return domainevents.ItemSnapshot{
		Name:              item.Name,
		Category:          string(item.Category),
		Quantity:          item.Quantity,
		Unit:              string(item.Unit),
		LowStockThreshold: item.LowStockThreshold,
	}
}

func (p *Publisher) publish(ctx context.Context, tx *sql.Tx, topic string, env domainevents.Envelope, event any) error {
	if !p.Enabled() {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", topic, err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", env.EventID.String())
	msg.Metadata.Set("event_version", strconv.Itoa(env.Version))
	msg.Metadata.Set("item_id", env.ItemID)

	if err := p.bus.PublishTx(ctx, tx, topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}
