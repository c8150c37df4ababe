package repositories

import (
	"context"

	"github.com/ghuser/barstock/services/inventory/domain/models"
)

// InventoryRepository is the single seam between validated data and
// persistence. The domain layer owns this interface; infrastructure
// implements it once per backing store. Every operation touches one item.
//
// Implementations never re-validate their input and report unknown ids with
// domain.ErrItemNotFound (Delete reports them with false).
type InventoryRepository interface {
	// List returns every item in insertion order.
	List(ctx context.Context) ([]*models.Item, error)

	Get(ctx context.Context, id models.ItemID) (*models.Item, error)

	// Create stores fields under a freshly assigned id and returns the new item.
	Create(ctx context.Context, fields models.ItemFields) (*models.Item, error)

	// Update replaces every field except the id of an existing item.
	Update(ctx context.Context, id models.ItemID, fields models.ItemFields) (*models.Item, error)

	// Delete hard-removes an item and reports whether a row was removed.
	Delete(ctx context.Context, id models.ItemID) (bool, error)

	// AdjustStock sets quantity to max(0, quantity+delta) atomically with
	// respect to other adjustments of the same item.
	AdjustStock(ctx context.Context, id models.ItemID, delta int64) (*models.Item, error)
}
