package db

import (
	"context"
)

const adjustInventoryItemStock = `-- name: AdjustInventoryItemStock :one
UPDATE inventory_items
SET quantity = LEAST(GREATEST(0, quantity::numeric + $1::bigint::numeric), 9223372036854775807)::bigint
WHERE id = $2
RETURNING id, name, category, quantity, unit, low_stock_threshold
`

type AdjustInventoryItemStockParams struct {
	Delta int64
	ID    int64
}

// The sum is computed in numeric so that extreme deltas saturate instead of
// overflowing bigint.
func (q *Queries) AdjustInventoryItemStock(ctx context.Context, arg AdjustInventoryItemStockParams) (InventoryItem, error) {
	row := q.db.QueryRowContext(ctx, adjustInventoryItemStock, arg.Delta, arg.ID)
	var i InventoryItem
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Category,
		&i.Quantity,
		&i.Unit,
		&i.LowStockThreshold,
	)
	return i, err
}

const deleteInventoryItem = `-- name: DeleteInventoryItem :execrows
DELETE FROM inventory_items
WHERE id = $1
`

func (q *Queries) DeleteInventoryItem(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteInventoryItem, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getInventoryItem = `-- name: GetInventoryItem :one
SELECT id, name, category, quantity, unit, low_stock_threshold
FROM inventory_items
WHERE id = $1
`

func (q *Queries) GetInventoryItem(ctx context.Context, id int64) (InventoryItem, error) {
	row := q.db.QueryRowContext(ctx, getInventoryItem, id)
	var i InventoryItem
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Category,
		&i.Quantity,
		&i.Unit,
		&i.LowStockThreshold,
	)
	return i, err
}

const insertInventoryItem = `-- name: InsertInventoryItem :one
INSERT INTO inventory_items (name, category, quantity, unit, low_stock_threshold)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, name, category, quantity, unit, low_stock_threshold
`

type InsertInventoryItemParams struct {
	Name              string
	Category          string
	Quantity          int64
	Unit              string
	LowStockThreshold int64
}

func (q *Queries) InsertInventoryItem(ctx context.Context, arg InsertInventoryItemParams) (InventoryItem, error) {
	row := q.db.QueryRowContext(ctx, insertInventoryItem,
		arg.Name,
		arg.Category,
		arg.Quantity,
		arg.Unit,
		arg.LowStockThreshold,
	)
	var i InventoryItem
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Category,
		&i.Quantity,
		&i.Unit,
		&i.LowStockThreshold,
	)
	return i, err
}

const listInventoryItems = `-- name: ListInventoryItems :many
SELECT id, name, category, quantity, unit, low_stock_threshold
FROM inventory_items
ORDER BY id
`

func (q *Queries) ListInventoryItems(ctx context.Context) ([]InventoryItem, error) {
	rows, err := q.db.QueryContext(ctx, listInventoryItems)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []InventoryItem
	for rows.Next() {
		var i InventoryItem
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Category,
			&i.Quantity,
			&i.Unit,
			&i.LowStockThreshold,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateInventoryItem = `-- name: UpdateInventoryItem :one
UPDATE inventory_items
SET name = $2, category = $3, quantity = $4, unit = $5, low_stock_threshold = $6
WHERE id = $1
RETURNING id, name, category, quantity, unit, low_stock_threshold
`

type UpdateInventoryItemParams struct {
	ID                int64
	Name              string
	Category          string
	Quantity          int64
	Unit              string
	LowStockThreshold int64
}

func (q *Queries) UpdateInventoryItem(ctx context.Context, arg UpdateInventoryItemParams) (InventoryItem, error) {
	row := q.db.QueryRowContext(ctx, updateInventoryItem,
		arg.ID,
		arg.Name,
		arg.Category,
		arg.Quantity,
		arg.Unit,
		arg.LowStockThreshold,
	)
	var i InventoryItem
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Category,
		&i.Quantity,
		&i.Unit,
		&i.LowStockThreshold,
	)
	return i, err
}
