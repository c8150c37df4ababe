// Package mysql is the MySQL inventory backing.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	mysqldriver "github.com/go-sql-driver/mysql"

	"github.com/ghuser/barstock/pkg/database"
	"github.com/ghuser/barstock/pkg/events"
	inventorydomain "github.com/ghuser/barstock/services/inventory/domain"
	"github.com/ghuser/barstock/services/inventory/domain/models"
	"github.com/ghuser/barstock/services/inventory/infrastructure/persistence/outbox"
	"github.com/ghuser/barstock/services/inventory/infrastructure/persistence/rowid"
)

// errCheckConstraintViolated is ER_CHECK_CONSTRAINT_VIOLATED.
const errCheckConstraintViolated = 3819

const (
	itemColumns = "id, name, category, quantity, unit, low_stock_threshold"

	listItemsQuery = "SELECT " + itemColumns + " FROM inventory_items ORDER BY id"
	getItemQuery   = "SELECT " + itemColumns + " FROM inventory_items WHERE id = ?"
	lockItemQuery  = "SELECT id FROM inventory_items WHERE id = ? FOR UPDATE"

	insertItemQuery = `INSERT INTO inventory_items (name, category, quantity, unit, low_stock_threshold)
VALUES (?, ?, ?, ?, ?)`

	updateItemQuery = `UPDATE inventory_items
SET name = ?, category = ?, quantity = ?, unit = ?, low_stock_threshold = ?
WHERE id = ?`

	deleteItemQuery = "DELETE FROM inventory_items WHERE id = ?"

	// The sum is computed in DECIMAL so that extreme deltas saturate
	// instead of overflowing BIGINT.
	adjustStockQuery = `UPDATE inventory_items
SET quantity = CAST(LEAST(GREATEST(0, CAST(quantity AS DECIMAL(20,0)) + ?), 9223372036854775807) AS SIGNED)
WHERE id = ?`
)

// ItemRepository implements repositories.InventoryRepository against MySQL.
type ItemRepository struct {
	db     *database.Database
	events *outbox.Publisher
}

// NewItemRepository returns an ItemRepository backed by the given connection pool
// and event bus. bus may be nil, in which case no events are recorded.
func NewItemRepository(database *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: database, events: outbox.NewPublisher(bus)}
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// List returns every item ordered by primary key, which is insertion order.
func (r *ItemRepository) List(ctx context.Context) ([]*models.Item, error) {
	rows, err := r.db.DB().QueryContext(ctx, listItemsQuery)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	items := []*models.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	return items, nil
}

// Get retrieves an item by id. Returns ErrItemNotFound if absent.
func (r *ItemRepository) Get(ctx context.Context, id models.ItemID) (*models.Item, error) {
	key, ok := rowid.Parse(id)
	if !ok {
		return nil, inventorydomain.ErrItemNotFound
	}
	return getItem(ctx, r.db.DB(), key)
}

// Create inserts a row and records an ItemCreatedEvent in the same transaction.
func (r *ItemRepository) Create(ctx context.Context, fields models.ItemFields) (*models.Item, error) {
	var item *models.Item
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, insertItemQuery,
			fields.Name, string(fields.Category), fields.Quantity, string(fields.Unit), fields.LowStockThreshold)
		if err != nil {
			return mapError("insert inventory item", err)
		}
		key, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert inventory item: last insert id: %w", err)
		}
		item = models.NewItem(rowid.Format(key), fields)
		return r.events.ItemCreated(ctx, tx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Update replaces every column but id. Returns ErrItemNotFound if absent.
// The row is locked first because MySQL reports zero affected rows for an
// update that changes nothing, which would be indistinguishable from a miss.
func (r *ItemRepository) Update(ctx context.Context, id models.ItemID, fields models.ItemFields) (*models.Item, error) {
	key, ok := rowid.Parse(id)
	if !ok {
		return nil, inventorydomain.ErrItemNotFound
	}

	var item *models.Item
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		var locked int64
		if err := tx.QueryRowContext(ctx, lockItemQuery, key).Scan(&locked); err != nil {
			return mapError("lock inventory item", err)
		}
		if _, err := tx.ExecContext(ctx, updateItemQuery,
			fields.Name, string(fields.Category), fields.Quantity, string(fields.Unit), fields.LowStockThreshold, key); err != nil {
			return mapError("update inventory item", err)
		}
		item = models.NewItem(id, fields)
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
		res, err := tx.ExecContext(ctx, deleteItemQuery, key)
		if err != nil {
			return fmt.Errorf("delete inventory item: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete inventory item: rows affected: %w", err)
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

// AdjustStock applies quantity = max(0, quantity + delta) as one UPDATE and
// reads the row back in the same transaction. The UPDATE holds the row lock
// until commit, so concurrent adjustments serialize instead of racing.
func (r *ItemRepository) AdjustStock(ctx context.Context, id models.ItemID, delta int64) (*models.Item, error) {
	key, ok := rowid.Parse(id)
	if !ok {
		return nil, inventorydomain.ErrItemNotFound
	}

	var item *models.Item
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, adjustStockQuery, delta, key); err != nil {
			return mapError("adjust inventory stock", err)
		}
		// Existence comes from the read: affected rows is zero both for a
		// missing id and for a zero-effect adjustment.
		var err error
		if item, err = getItem(ctx, tx, key); err != nil {
			return err
		}
		return r.events.StockAdjusted(ctx, tx, item, delta)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func getItem(ctx context.Context, q queryer, key int64) (*models.Item, error) {
	item, err := scanItem(q.QueryRowContext(ctx, getItemQuery, key))
	if err != nil {
		return nil, mapError("get inventory item", err)
	}
	return item, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*models.Item, error) {
	var (
		key    int64
		fields models.ItemFields
	)
	if err := s.Scan(&key, &fields.Name, &fields.Category, &fields.Quantity, &fields.Unit, &fields.LowStockThreshold); err != nil {
		return nil, err
	}
	return models.NewItem(rowid.Format(key), fields), nil
}

func mapError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return inventorydomain.ErrItemNotFound
	}
	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) && myErr.Number == errCheckConstraintViolated {
		return fmt.Errorf("%s: %w: %s", op, inventorydomain.ErrInvalidItem, myErr.Message)
	}
	return fmt.Errorf("%s: %w", op, err)
}
