// Package memory is the ephemeral inventory backing: a keyed in-process
// collection that is lost on restart.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	inventorydomain "github.com/ghuser/barstock/services/inventory/domain"
	"github.com/ghuser/barstock/services/inventory/domain/models"
)

// ItemRepository implements repositories.InventoryRepository in memory.
// Ids are random UUIDs. Each adjustment runs under the write lock so
// concurrent adjustments on one item are applied one after another.
type ItemRepository struct {
	mu    sync.RWMutex
	items map[models.ItemID]*models.Item
	order []models.ItemID
}

// NewItemRepository returns an empty repository.
func NewItemRepository() *ItemRepository {
	return &ItemRepository{items: make(map[models.ItemID]*models.Item)}
}

// NewSeededItemRepository returns a repository pre-populated with SeedItems.
func NewSeededItemRepository() *ItemRepository {
	r := NewItemRepository()
	for _, fields := range SeedItems() {
		r.insert(fields)
	}
	return r
}

// List returns copies of all items in insertion order.
func (r *ItemRepository) List(_ context.Context) ([]*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*models.Item, 0, len(r.order))
	for _, id := range r.order {
		items = append(items, r.items[id].Clone())
	}
	return items, nil
}

// Get returns the item with id or ErrItemNotFound.
func (r *ItemRepository) Get(_ context.Context, id models.ItemID) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, inventorydomain.ErrItemNotFound
	}
	return item.Clone(), nil
}

// Create stores fields under a fresh id.
func (r *ItemRepository) Create(_ context.Context, fields models.ItemFields) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.insert(fields).Clone(), nil
}

// Update replaces every field of an existing item.
func (r *ItemRepository) Update(_ context.Context, id models.ItemID, fields models.ItemFields) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, inventorydomain.ErrItemNotFound
	}
	item.ItemFields = fields
	return item.Clone(), nil
}

// Delete removes the item and reports whether it existed.
func (r *ItemRepository) Delete(_ context.Context, id models.ItemID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return true, nil
}

// AdjustStock sets quantity to max(0, quantity+delta).
func (r *ItemRepository) AdjustStock(_ context.Context, id models.ItemID, delta int64) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, inventorydomain.ErrItemNotFound
	}
	item.Quantity = models.ApplyAdjustment(item.Quantity, delta)
	return item.Clone(), nil
}

// insert must be called with the write lock held (or before the repository is shared).
func (r *ItemRepository) insert(fields models.ItemFields) *models.Item {
	id := models.ItemID(uuid.NewString())
	item := models.NewItem(id, fields)
	r.items[id] = item
	r.order = append(r.order, id)
	return item
}
