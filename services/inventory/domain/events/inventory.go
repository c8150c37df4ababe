package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the relational inventory repositories.
const (
	TopicItemCreated   = "inventory.item_created"
	TopicItemUpdated   = "inventory.item_updated"
	TopicItemDeleted   = "inventory.item_deleted"
	TopicStockAdjusted = "inventory.stock_adjusted"
)

// SchemaVersion is stamped on every event; increment on breaking changes.
const SchemaVersion = 1

// Topics lists every inventory topic.
func Topics() []string {
	return []string{TopicItemCreated, TopicItemUpdated, TopicItemDeleted, TopicStockAdjusted}
}

// Envelope carries the metadata shared by all inventory events.
type Envelope struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`
	ItemID     string    `json:"item_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEnvelope stamps a fresh event id and the current time.
func NewEnvelope(itemID string) Envelope {
	return Envelope{
		EventID:    uuid.New(),
		Version:    SchemaVersion,
		ItemID:     itemID,
		OccurredAt: time.Now().UTC(),
	}
}

// ItemSnapshot is the item state carried in created/updated events.
type ItemSnapshot struct {
	Name              string `json:"name"`
	Category          string `json:"category"`
	Quantity          int64  `json:"quantity"`
	Unit              string `json:"unit"`
	LowStockThreshold int64  `json:"low_stock_threshold"`
}

// ItemCreatedEvent is published after a new item is persisted.
type ItemCreatedEvent struct {
	Envelope
	Item ItemSnapshot `json:"item"`
}

// ItemUpdatedEvent is published after a full replacement update.
type ItemUpdatedEvent struct {
	Envelope
	Item ItemSnapshot `json:"item"`
}

// ItemDeletedEvent is published after an item row is removed.
type ItemDeletedEvent struct {
	Envelope
}

// StockAdjustedEvent is published after an adjustment. Quantity is the
// post-clamp value; LowStock is quantity <= threshold at that moment.
type StockAdjustedEvent struct {
	Envelope
	Name              string `json:"name"`
	Delta             int64  `json:"delta"`
	Quantity          int64  `json:"quantity"`
	LowStockThreshold int64  `json:"low_stock_threshold"`
	LowStock          bool   `json:"low_stock"`
}
