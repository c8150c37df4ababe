package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	pkgcache "github.com/ghuser/barstock/pkg/cache"
	"github.com/ghuser/barstock/pkg/logger"
	inventorydomain "github.com/ghuser/barstock/services/inventory/domain"
	"github.com/ghuser/barstock/services/inventory/domain/models"
	"github.com/ghuser/barstock/services/inventory/infrastructure/persistence/memory"
)

func gin() models.ItemFields {
	return models.ItemFields{
		Name:              "Gin Tanqueray",
		Category:          models.CategorySpirits,
		Quantity:          12,
		Unit:              models.UnitBottles,
		LowStockThreshold: 4,
	}
}

func newService(t *testing.T) (*InventoryService, *pkgcache.LocalItemCache) {
	t.Helper()
	c := pkgcache.NewLocalItemCache(16, time.Minute)
	return NewInventoryService(memory.NewItemRepository(), c, logger.Nop()), c
}

func TestInventoryService_CreateAndGet(t *testing.T) {
	svc, c := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, gin())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected an assigned id")
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if *got != *created {
		t.Errorf("Get: got %+v, want %+v", got, created)
	}
	if c.Len() != 1 {
		t.Errorf("expected Get to populate the cache, len=%d", c.Len())
	}

	// Served from cache on the second read.
	again, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get (cached): %v", err)
	}
	if *again != *created {
		t.Errorf("cached Get: got %+v, want %+v", again, created)
	}
}

func TestInventoryService_MutationsInvalidateCache(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(svc *InventoryService, id models.ItemID) error
	}{
		{"update", func(svc *InventoryService, id models.ItemID) error {
			f := gin()
			f.Quantity = 1
			_, err := svc.Update(ctx, id, f)
			return err
		}},
		{"adjust", func(svc *InventoryService, id models.ItemID) error {
			_, err := svc.AdjustStock(ctx, id, -3)
			return err
		}},
		{"delete", func(svc *InventoryService, id models.ItemID) error {
			return svc.Delete(ctx, id)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, c := newService(t)
			item, err := svc.Create(ctx, gin())
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if _, err := svc.Get(ctx, item.ID); err != nil {
				t.Fatalf("Get: %v", err)
			}
			if c.Len() != 1 {
				t.Fatalf("expected a cached entry, len=%d", c.Len())
			}

			if err := tt.mutate(svc, item.ID); err != nil {
				t.Fatalf("mutate: %v", err)
			}
			if _, err := c.Get(ctx, item.ID.String()); !errors.Is(err, pkgcache.ErrCacheMiss) {
				t.Errorf("expected cache miss after %s, got %v", tt.name, err)
			}
		})
	}
}

func TestInventoryService_GetAfterAdjustSeesNewQuantity(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	item, _ := svc.Create(ctx, gin())
	if _, err := svc.Get(ctx, item.ID); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err := svc.AdjustStock(ctx, item.ID, 5); err != nil {
		t.Fatalf("AdjustStock: %v", err)
	}

	got, err := svc.Get(ctx, item.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Quantity != 17 {
		t.Errorf("Quantity: got %d, want 17", got.Quantity)
	}
}

func TestInventoryService_AdjustStockClampsAtZero(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	item, _ := svc.Create(ctx, gin())
	got, err := svc.AdjustStock(ctx, item.ID, -100)
	if err != nil {
		t.Fatalf("AdjustStock: %v", err)
	}
	if got.Quantity != 0 {
		t.Errorf("Quantity: got %d, want 0", got.Quantity)
	}
}

func TestInventoryService_UnknownID(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	const id = models.ItemID("missing")

	checks := map[string]error{}
	_, checks["get"] = svc.Get(ctx, id)
	_, checks["update"] = svc.Update(ctx, id, gin())
	_, checks["adjust"] = svc.AdjustStock(ctx, id, 1)
	checks["delete"] = svc.Delete(ctx, id)

	for op, err := range checks {
		if !errors.Is(err, inventorydomain.ErrItemNotFound) {
			t.Errorf("%s: expected ErrItemNotFound, got %v", op, err)
		}
	}
}

func TestInventoryService_WithoutCache(t *testing.T) {
	svc := NewInventoryService(memory.NewItemRepository(), nil, logger.Nop())
	ctx := context.Background()

	item, err := svc.Create(ctx, gin())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Get(ctx, item.ID); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if err := svc.InvalidateCache(ctx, item.ID); err != nil {
		t.Errorf("InvalidateCache without cache: %v", err)
	}
	if err := svc.Delete(ctx, item.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestInventoryService_Summary(t *testing.T) {
	svc := NewInventoryService(memory.NewSeededItemRepository(), nil, logger.Nop())

	s, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if s.TotalItems != len(memory.SeedItems()) {
		t.Errorf("TotalItems: got %d, want %d", s.TotalItems, len(memory.SeedItems()))
	}
	if s.CategoryCount != len(models.Categories()) {
		t.Errorf("CategoryCount: got %d, want %d", s.CategoryCount, len(models.Categories()))
	}
}

// pausingRepo blocks the first Get after it has read storage until release
// is closed, so a mutation can run between the read and the cache fill.
type pausingRepo struct {
	*memory.ItemRepository
	paused  chan struct{}
	release chan struct{}
	once    sync.Once
}

func newPausingRepo() *pausingRepo {
	return &pausingRepo{
		ItemRepository: memory.NewItemRepository(),
		paused:         make(chan struct{}),
		release:        make(chan struct{}),
	}
}

func (r *pausingRepo) Get(ctx context.Context, id models.ItemID) (*models.Item, error) {
	item, err := r.ItemRepository.Get(ctx, id)
	first := false
	r.once.Do(func() { first = true })
	if first {
		close(r.paused)
		<-r.release
	}
	return item, err
}

func TestInventoryService_StaleReadDoesNotRefillCache(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(svc *InventoryService, id models.ItemID) error
		check  func(t *testing.T, got *models.Item, err error)
	}{
		{
			name: "delete",
			mutate: func(svc *InventoryService, id models.ItemID) error {
				return svc.Delete(ctx, id)
			},
			check: func(t *testing.T, got *models.Item, err error) {
				if !errors.Is(err, inventorydomain.ErrItemNotFound) {
					t.Errorf("get after delete: got item=%+v err=%v, want not found", got, err)
				}
			},
		},
		{
			name: "adjust",
			mutate: func(svc *InventoryService, id models.ItemID) error {
				_, err := svc.AdjustStock(ctx, id, 5)
				return err
			},
			check: func(t *testing.T, got *models.Item, err error) {
				if err != nil {
					t.Fatalf("get after adjust: %v", err)
				}
				if got.Quantity != 17 {
					t.Errorf("get after adjust: quantity %d, want 17", got.Quantity)
				}
			},
		},
		{
			name: "update",
			mutate: func(svc *InventoryService, id models.ItemID) error {
				f := gin()
				f.Name = "Gin Hendrick's"
				_, err := svc.Update(ctx, id, f)
				return err
			},
			check: func(t *testing.T, got *models.Item, err error) {
				if err != nil {
					t.Fatalf("get after update: %v", err)
				}
				if got.Name != "Gin Hendrick's" {
					t.Errorf("get after update: name %q, want %q", got.Name, "Gin Hendrick's")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newPausingRepo()
			c := pkgcache.NewLocalItemCache(16, time.Minute)
			svc := NewInventoryService(repo, c, logger.Nop())

			item, err := svc.Create(ctx, gin())
			if err != nil {
				t.Fatalf("Create: %v", err)
			}

			done := make(chan error, 1)
			go func() {
				_, err := svc.Get(ctx, item.ID)
				done <- err
			}()

			<-repo.paused
			if err := tt.mutate(svc, item.ID); err != nil {
				t.Fatalf("mutate: %v", err)
			}
			close(repo.release)
			if err := <-done; err != nil {
				t.Fatalf("in-flight Get: %v", err)
			}

			if c.Len() != 0 {
				t.Errorf("stale copy was cached, len=%d", c.Len())
			}
			got, err := svc.Get(ctx, item.ID)
			tt.check(t, got, err)
		})
	}
}

func TestInventoryService_ConcurrentReadsAndAdjustments(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, gin())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	const adjustments = 50
	stop := make(chan struct{})
	var readers sync.WaitGroup
	for i := 0; i < 8; i++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				if _, err := svc.Get(ctx, item.ID); err != nil {
					t.Errorf("Get: %v", err)
					return
				}
			}
		}()
	}

	var writers sync.WaitGroup
	for i := 0; i < adjustments; i++ {
		writers.Add(1)
		go func() {
			defer writers.Done()
			if _, err := svc.AdjustStock(ctx, item.ID, 1); err != nil {
				t.Errorf("AdjustStock: %v", err)
			}
		}()
	}
	writers.Wait()
	close(stop)
	readers.Wait()

	got, err := svc.Get(ctx, item.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if want := gin().Quantity + adjustments; got.Quantity != want {
		t.Errorf("Quantity: got %d, want %d", got.Quantity, want)
	}
}

func TestInventoryService_ConcurrentReadsAndDelete(t *testing.T) {
	svc, c := newService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, gin())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, err := svc.Get(ctx, item.ID)
				if err != nil && !errors.Is(err, inventorydomain.ErrItemNotFound) {
					t.Errorf("Get: %v", err)
					return
				}
			}
		}()
	}
	if err := svc.Delete(ctx, item.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	wg.Wait()

	if _, err := svc.Get(ctx, item.ID); !errors.Is(err, inventorydomain.ErrItemNotFound) {
		t.Errorf("get after delete: %v, want not found", err)
	}
	if c.Len() != 0 {
		t.Errorf("deleted item still cached, len=%d", c.Len())
	}
}
