package services

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	pkgcache "github.com/ghuser/barstock/pkg/cache"
	"github.com/ghuser/barstock/pkg/logger"
	inventorydomain "github.com/ghuser/barstock/services/inventory/domain"
	"github.com/ghuser/barstock/services/inventory/domain/models"
	"github.com/ghuser/barstock/services/inventory/domain/repositories"
	domainsvcs "github.com/ghuser/barstock/services/inventory/domain/services"
)

const instrumentationName = "github.com/ghuser/barstock/services/inventory"

// InventoryService orchestrates the inventory use cases.
// Input arrives already validated by the schema package; the service never
// re-validates. Event publishing is handled by the SQL repositories (outbox
// pattern). Single-item reads go through the optional cache, and every
// mutation invalidates the item's entry after storage commits. A read that
// raced an invalidation never writes its copy back (see cacheGuard).
type InventoryService struct {
	repo    repositories.InventoryRepository
	cache   pkgcache.ItemCache
	guard   cacheGuard
	log     logger.Logger
	tracer  trace.Tracer
	metrics serviceMetrics
}

type serviceMetrics struct {
	created      metric.Int64Counter
	updated      metric.Int64Counter
	deleted      metric.Int64Counter
	adjustments  metric.Int64Counter
	cacheLookups metric.Int64Counter
}

// NewInventoryService returns an InventoryService wired with the given
// repository. itemCache may be nil to disable caching.
func NewInventoryService(repo repositories.InventoryRepository, itemCache pkgcache.ItemCache, log logger.Logger) *InventoryService {
	meter := otel.Meter(instrumentationName)
	return &InventoryService{
		repo:   repo,
		cache:  itemCache,
		log:    log,
		tracer: otel.Tracer(instrumentationName),
		metrics: serviceMetrics{
			created:      counter(meter, "inventory.items.created", "Items created"),
			updated:      counter(meter, "inventory.items.updated", "Items replaced by a full update"),
			deleted:      counter(meter, "inventory.items.deleted", "Items deleted"),
			adjustments:  counter(meter, "inventory.stock.adjustments", "Stock adjustments by direction"),
			cacheLookups: counter(meter, "inventory.cache.lookups", "Item cache lookups by result"),
		},
	}
}

func counter(meter metric.Meter, name, desc string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(desc))
	if err != nil {
		c, _ = noop.NewMeterProvider().Meter(instrumentationName).Int64Counter(name)
	}
	return c
}

// List returns every item in insertion order.
func (s *InventoryService) List(ctx context.Context) ([]*models.Item, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, "list items", err)
	}
	span.SetAttributes(attribute.Int("inventory.items", len(items)))
	return items, nil
}

// Get retrieves an item using a read-through cache:
//  1. Check the cache first.
//  2. On a miss (or cache error), query the repository.
//  3. Store the repository result in the cache, unless the item was
//     invalidated while the repository read was in flight.
func (s *InventoryService) Get(ctx context.Context, id models.ItemID) (*models.Item, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.Get", trace.WithAttributes(
		attribute.String("inventory.item_id", id.String()),
	))
	defer span.End()

	var gen uint64
	if s.cache != nil {
		gen = s.guard.generation(id)
		cached, err := s.cache.Get(ctx, id.String())
		switch {
		case err == nil:
			s.metrics.cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", "hit")))
			return fromCached(cached), nil
		case errors.Is(err, pkgcache.ErrCacheMiss):
			s.metrics.cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", "miss")))
		default:
			s.metrics.cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", "error")))
			s.log.WarnContext(ctx, "item cache read failed", "item_id", id, "error", err)
		}
	}

	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, span, "get item", err)
	}

	if s.cache != nil {
		filled := s.guard.fill(id, gen, func() {
			if err := s.cache.Set(ctx, toCached(item)); err != nil {
				s.log.WarnContext(ctx, "item cache write failed", "item_id", id, "error", err)
			}
		})
		if !filled {
			s.log.DebugContext(ctx, "item cache fill skipped after concurrent invalidation", "item_id", id)
		}
	}
	return item, nil
}

// Create persists a new item. The SQL repositories publish ItemCreatedEvent.
func (s *InventoryService) Create(ctx context.Context, fields models.ItemFields) (*models.Item, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.Create")
	defer span.End()

	item, err := s.repo.Create(ctx, fields)
	if err != nil {
		return nil, s.fail(ctx, span, "create item", err)
	}
	span.SetAttributes(attribute.String("inventory.item_id", item.ID.String()))
	s.metrics.created.Add(ctx, 1, metric.WithAttributes(attribute.String("category", string(item.Category))))
	return item, nil
}

// Update replaces every field of an existing item.
func (s *InventoryService) Update(ctx context.Context, id models.ItemID, fields models.ItemFields) (*models.Item, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.Update", trace.WithAttributes(
		attribute.String("inventory.item_id", id.String()),
	))
	defer span.End()

	item, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, s.fail(ctx, span, "update item", err)
	}
	s.invalidate(ctx, id)
	s.metrics.updated.Add(ctx, 1)
	return item, nil
}

// Delete removes an item. Returns ErrItemNotFound if no item has id.
func (s *InventoryService) Delete(ctx context.Context, id models.ItemID) error {
	ctx, span := s.tracer.Start(ctx, "InventoryService.Delete", trace.WithAttributes(
		attribute.String("inventory.item_id", id.String()),
	))
	defer span.End()

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return s.fail(ctx, span, "delete item", err)
	}
	if !deleted {
		return inventorydomain.ErrItemNotFound
	}
	s.invalidate(ctx, id)
	s.metrics.deleted.Add(ctx, 1)
	return nil
}

// AdjustStock applies a signed delta, clamping the quantity at zero.
// Adjustments below zero succeed; they are never rejected.
func (s *InventoryService) AdjustStock(ctx context.Context, id models.ItemID, delta int64) (*models.Item, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.AdjustStock", trace.WithAttributes(
		attribute.String("inventory.item_id", id.String()),
		attribute.Int64("inventory.delta", delta),
	))
	defer span.End()

	item, err := s.repo.AdjustStock(ctx, id, delta)
	if err != nil {
		return nil, s.fail(ctx, span, "adjust stock", err)
	}
	s.invalidate(ctx, id)

	s.metrics.adjustments.Add(ctx, 1, metric.WithAttributes(attribute.String("direction", direction(delta))))
	if item.IsLowStock() {
		s.log.InfoContext(ctx, "item at or below low stock threshold",
			"item_id", item.ID,
			"quantity", item.Quantity,
			"low_stock_threshold", item.LowStockThreshold,
		)
	}
	return item, nil
}

// Summary computes the dashboard figures over the full listing.
func (s *InventoryService) Summary(ctx context.Context) (domainsvcs.Summary, error) {
	items, err := s.List(ctx)
	if err != nil {
		return domainsvcs.Summary{}, err
	}
	return domainsvcs.Summarize(items), nil
}

// InvalidateCache drops any cached copy of id. Used by the event worker.
func (s *InventoryService) InvalidateCache(ctx context.Context, id models.ItemID) error {
	if s.cache == nil {
		return nil
	}
	return s.guard.invalidate(id, func() error {
		if err := s.cache.Delete(ctx, id.String()); err != nil {
			return fmt.Errorf("invalidate item %s: %w", id, err)
		}
		return nil
	})
}

func (s *InventoryService) invalidate(ctx context.Context, id models.ItemID) {
	if err := s.InvalidateCache(ctx, id); err != nil {
		s.log.WarnContext(ctx, "item cache invalidation failed", "item_id", id, "error", err)
	}
}

// fail wraps err with op. Not-found and validation outcomes are expected
// results; anything else is a storage failure and is logged and recorded on
// the span.
func (s *InventoryService) fail(ctx context.Context, span trace.Span, op string, err error) error {
	if errors.Is(err, inventorydomain.ErrItemNotFound) || errors.Is(err, inventorydomain.ErrInvalidItem) {
		return fmt.Errorf("%s: %w", op, err)
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, op)
	s.log.ErrorContext(ctx, "inventory storage failure", "op", op, "error", err)
	return fmt.Errorf("%s: %w", op, err)
}

func direction(delta int64) string {
	switch {
	case delta > 0:
		return "increase"
	case delta < 0:
		return "decrease"
	default:
		return "none"
	}
}

func toCached(item *models.Item) *pkgcache.CachedItem {
	return &pkgcache.CachedItem{
		ID:                item.ID.String(),
		Name:              item.Name,
		Category:          string(item.Category),
		Quantity:          item.Quantity,
		Unit:              string(item.Unit),
		LowStockThreshold: item.LowStockThreshold,
	}
}

func fromCached(c *pkgcache.CachedItem) *models.Item {
	return models.NewItem(models.ItemID(c.ID), models.ItemFields{
		Name:              c.Name,
		Category:          models.Category(c.Category),
		Quantity:          c.Quantity,
		Unit:              models.Unit(c.Unit),
		LowStockThreshold: c.LowStockThreshold,
	})
}
