// Package contract is the shared behavioural test suite for every
// repositories.InventoryRepository backing. Each backing calls Run from its
// own tests so the memory, PostgreSQL and MySQL stores are held to the same
// rules.
package contract

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	inventorydomain "github.com/ghuser/barstock/services/inventory/domain"
	"github.com/ghuser/barstock/services/inventory/domain/models"
	"github.com/ghuser/barstock/services/inventory/domain/repositories"
)

// Factory returns an empty repository. It is called once per subtest.
type Factory func(t *testing.T) repositories.InventoryRepository

// Fields returns a valid payload; n makes names distinct.
func Fields(n int) models.ItemFields {
	return models.ItemFields{
		Name:              fmt.Sprintf("Item %d", n),
		Category:          models.CategorySpirits,
		Quantity:          int64(10 + n),
		Unit:              models.UnitBottles,
		LowStockThreshold: 5,
	}
}

// Run executes the full storage contract against repositories from newRepo.
func Run(t *testing.T, newRepo Factory) {
	t.Helper()

	t.Run("create then get round-trips", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		in := models.ItemFields{
			Name:              "Bombay Sapphire",
			Category:          models.CategorySpirits,
			Quantity:          15,
			Unit:              models.UnitBottles,
			LowStockThreshold: 8,
		}

		created, err := repo.Create(ctx, in)
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		require.Equal(t, in, created.ItemFields)

		got, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, created, got)
	})

	t.Run("create assigns fresh ids and allows duplicate names", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		seen := map[models.ItemID]bool{}
		for range 5 {
			item, err := repo.Create(ctx, Fields(1))
			require.NoError(t, err)
			require.False(t, seen[item.ID], "id %s reused", item.ID)
			seen[item.ID] = true
		}
	})

	t.Run("list is empty for a new store", func(t *testing.T) {
		items, err := newRepo(t).List(context.Background())
		require.NoError(t, err)
		require.Empty(t, items)
	})

	t.Run("list returns items in insertion order", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		var want []models.ItemID
		for i := range 4 {
			item, err := repo.Create(ctx, Fields(i))
			require.NoError(t, err)
			want = append(want, item.ID)
		}

		items, err := repo.List(ctx)
		require.NoError(t, err)
		got := make([]models.ItemID, len(items))
		for i, item := range items {
			got[i] = item.ID
		}
		require.Equal(t, want, got)
	})

	t.Run("get unknown id is not found", func(t *testing.T) {
		repo := newRepo(t)
		for _, id := range unknownIDs() {
			_, err := repo.Get(context.Background(), id)
			require.ErrorIs(t, err, inventorydomain.ErrItemNotFound, "id %q", id)
		}
	})

	t.Run("update replaces every field but the id", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		created, err := repo.Create(ctx, Fields(1))
		require.NoError(t, err)

		replacement := models.ItemFields{
			Name:              "Guinness",
			Category:          models.CategoryBeer,
			Quantity:          0,
			Unit:              models.UnitCases,
			LowStockThreshold: 20,
		}
		updated, err := repo.Update(ctx, created.ID, replacement)
		require.NoError(t, err)
		require.Equal(t, created.ID, updated.ID)
		require.Equal(t, replacement, updated.ItemFields)

		got, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, updated, got)
	})

	t.Run("update unknown id is not found and creates nothing", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		_, err := repo.Create(ctx, Fields(1))
		require.NoError(t, err)
		before, err := repo.List(ctx)
		require.NoError(t, err)

		for _, id := range unknownIDs() {
			_, err := repo.Update(ctx, id, Fields(2))
			require.ErrorIs(t, err, inventorydomain.ErrItemNotFound, "id %q", id)
		}

		after, err := repo.List(ctx)
		require.NoError(t, err)
		require.Equal(t, before, after)
	})

	t.Run("delete then get is not found", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		keep, err := repo.Create(ctx, Fields(1))
		require.NoError(t, err)
		gone, err := repo.Create(ctx, Fields(2))
		require.NoError(t, err)

		deleted, err := repo.Delete(ctx, gone.ID)
		require.NoError(t, err)
		require.True(t, deleted)

		_, err = repo.Get(ctx, gone.ID)
		require.ErrorIs(t, err, inventorydomain.ErrItemNotFound)

		items, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		require.Equal(t, keep.ID, items[0].ID)

		deleted, err = repo.Delete(ctx, gone.ID)
		require.NoError(t, err)
		require.False(t, deleted, "second delete should report false")
	})

	t.Run("delete unknown id returns false", func(t *testing.T) {
		repo := newRepo(t)
		for _, id := range unknownIDs() {
			deleted, err := repo.Delete(context.Background(), id)
			require.NoError(t, err)
			require.False(t, deleted, "id %q", id)
		}
	})

	t.Run("adjust stock clamps at zero", func(t *testing.T) {
		tests := []struct {
			name     string
			start    int64
			delta    int64
			expected int64
		}{
			{"increase", 3, 5, 8},
			{"decrease", 10, -4, 6},
			{"to exactly zero", 4, -4, 0},
			{"clamped", 3, -10, 0},
			{"huge negative", 3, -1_000_000_000, 0},
			{"zero delta", 7, 0, 7},
			{"from zero", 0, 2, 2},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				ctx := context.Background()
				repo := newRepo(t)
				fields := Fields(1)
				fields.Quantity = tt.start
				created, err := repo.Create(ctx, fields)
				require.NoError(t, err)

				adjusted, err := repo.AdjustStock(ctx, created.ID, tt.delta)
				require.NoError(t, err)
				require.Equal(t, tt.expected, adjusted.Quantity)
				require.Equal(t, created.ID, adjusted.ID)
				require.Equal(t, fields.Name, adjusted.Name)
				require.Equal(t, fields.LowStockThreshold, adjusted.LowStockThreshold)

				got, err := repo.Get(ctx, created.ID)
				require.NoError(t, err)
				require.Equal(t, tt.expected, got.Quantity)
			})
		}
	})

	t.Run("adjust unknown id is not found", func(t *testing.T) {
		repo := newRepo(t)
		for _, id := range unknownIDs() {
			_, err := repo.AdjustStock(context.Background(), id, 1)
			require.ErrorIs(t, err, inventorydomain.ErrItemNotFound, "id %q", id)
		}
	})

	t.Run("adjust only touches the target item", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		a, err := repo.Create(ctx, Fields(1))
		require.NoError(t, err)
		b, err := repo.Create(ctx, Fields(2))
		require.NoError(t, err)

		_, err = repo.AdjustStock(ctx, a.ID, -100)
		require.NoError(t, err)

		got, err := repo.Get(ctx, b.ID)
		require.NoError(t, err)
		require.Equal(t, b.Quantity, got.Quantity)
	})

	t.Run("concurrent adjustments are not lost", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		fields := Fields(1)
		fields.Quantity = 5
		created, err := repo.Create(ctx, fields)
		require.NoError(t, err)

		const workers = 20
		var wg sync.WaitGroup
		errs := make(chan error, workers)
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := repo.AdjustStock(ctx, created.ID, 1); err != nil {
					errs <- err
				}
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		got, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, int64(5+workers), got.Quantity)
	})
}

// unknownIDs covers ids that were never issued by any backing, including
// ones with the wrong shape for that backing.
func unknownIDs() []models.ItemID {
	return []models.ItemID{
		"999999999",
		"00000000-0000-0000-0000-000000000000",
		"not-an-id",
		"",
	}
}
