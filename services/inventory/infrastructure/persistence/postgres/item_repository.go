// Package postgres is the PostgreSQL inventory backing. Queries live in
// queries.sql and are compiled by sqlc into the db package.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/barstock/pkg/database"
	"github.com/ghuser/barstock/pkg/events"
	inventorydomain "github.com/ghuser/barstock/services/inventory/domain"
	"github.com/ghuser/barstock/services/inventory/domain/models"
	"github.com/ghuser/barstock/services/inventory/infrastructure/persistence/outbox"
	"github.com/ghuser/barstock/services/inventory/infrastructure/persistence/postgres/db"
	"github.com/ghuser/barstock/services/inventory/infrastructure/persistence/rowid"
)

// checkViolation is the SQLSTATE for a failed CHECK constraint.
const checkViolation = "23514"

// ItemRepository implements repositories.InventoryRepository against PostgreSQL.
type ItemRepository struct {
	db     *database.Database
	events *outbox.Publisher
}

// NewItemRepository returns an ItemRepository backed by the given connection pool
// and event bus. bus may be nil, in which case no events are recorded.
func NewItemRepository(database *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: database, events: outbox.NewPublisher(bus)}
}

// List returns every item ordered by primary key, which is insertion order.
func (r *ItemRepository) List(ctx context.Context) ([]*models.Item, error) {
	rows, err := db.New(r.db.DB()).ListInventoryItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	items := make([]*models.Item, len(rows))
	for i, row := range rows {
		items[i] = rowToItem(row)
	}
	return items, nil
}

// Get retrieves an item by id. Returns ErrItemNotFound if absent.
func (r *ItemRepository) Get(ctx context.Context, id models.ItemID) (*models.Item, error) {
	key, ok := rowid.Parse(id)
	if !ok {
		return nil, inventorydomain.ErrItemNotFound
	}
	row, err := db.New(r.db.DB()).GetInventoryItem(ctx, key)
	if err != nil {
		return nil, mapError("get inventory item", err)
	}
	return rowToItem(row), nil
}

// Create inserts a row and records an ItemCreatedEvent in the same transaction.
func (r *ItemRepository) Create(ctx context.Context, fields models.ItemFields) (*models.Item, error) {
	var item *models.Item
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := db.New(tx).InsertInventoryItem(ctx, db.InsertInventoryItemParams{
			Name:              fields.Name,
			Category:          string(fields.Category),
			Quantity:          fields.Quantity,
			Unit:              string(fields.Unit),
			LowStockThreshold: fields.LowStockThreshold,
		})
		if err != nil {
			return mapError("insert inventory item", err)
		}
		item = rowToItem(row)
		return r.events.ItemCreated(ctx, tx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Update replaces every column but id. Returns ErrItemNotFound if absent.
func (r *ItemRepository) Update(ctx context.Context, id models.ItemID, fields models.ItemFields) (*models.Item, error) {
	key, ok := rowid.Parse(id)
	if !ok {
		return nil, inventorydomain.ErrItemNotFound
	}

	var item *models.Item
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := db.New(tx).UpdateInventoryItem(ctx, db.UpdateInventoryItemParams{
			ID:                key,
			Name:              fields.Name,
			Category:          string(fields.Category),
			Quantity:          fields.Quantity,
			Unit:              string(fields.Unit),
			LowStockThreshold: fields.LowStockThreshold,
		})
		if err != nil {
			return mapError("update inventory item", err)
		}
		item = rowToItem(row)
		return r.events.ItemUpdated(ctx, tx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes the row and reports whether one existed.
func (r *ItemRepository) Delete(ctx context.Context, id models.ItemID) (bool, error) {
	key, ok := rowid.Parse(id)
	if !ok {
		return false, nil
	}

	var deleted bool
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		n, err := db.New(tx).DeleteInventoryItem(ctx, key)
		if err != nil {
			return fmt.Errorf("delete inventory item: %w", err)
		}
		if deleted = n > 0; !deleted {
			return nil
		}
		return r.events.ItemDeleted(ctx, tx, id)
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// AdjustStock applies quantity = max(0, quantity + delta) as one UPDATE, so
// concurrent adjustments serialize on the row lock instead of racing.
func (r *ItemRepository) AdjustStock(ctx context.Context, id models.ItemID, delta int64) (*models.Item, error) {
	key, ok := rowid.Parse(id)
	if !ok {
		return nil, inventorydomain.ErrItemNotFound
	}

	var item *models.Item
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := db.New(tx).AdjustInventoryItemStock(ctx, db.AdjustInventoryItemStockParams{
			Delta: delta,
			ID:    key,
		})
		if err != nil {
			return mapError("adjust inventory stock", err)
		}
		item = rowToItem(row)
		return r.events.StockAdjusted(ctx, tx, item, delta)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func mapError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return inventorydomain.ErrItemNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == checkViolation {
		return fmt.Errorf("%s: %w: %s", op, inventorydomain.ErrInvalidItem, pgErr.ConstraintName)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// rowToItem maps a db.InventoryItem to a domain models.Item.
func rowToItem(row db.InventoryItem) *models.Item {
	return models.NewItem(rowid.Format(row.ID), models.ItemFields{
		Name:              row.Name,
		Category:          models.Category(row.Category),
		Quantity:          row.Quantity,
		Unit:              models.Unit(row.Unit),
		LowStockThreshold: row.LowStockThreshold,
	})
}
