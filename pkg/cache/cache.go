// Package cache holds the read-through item caches: a Redis hash cache shared
// by every API instance and an in-process expirable LRU used when Redis is
// not configured.
package cache

import (
	"context"
	"errors"
)

// ErrCacheMiss is returned by Get when the key does not exist or has expired.
var ErrCacheMiss = errors.New("cache miss")

// CachedItem is the denormalized read model stored in the cache.
type CachedItem struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Category          string `json:"category"`
	Quantity          int64  `json:"quantity"`
	Unit              string `json:"unit"`
	LowStockThreshold int64  `json:"low_stock_threshold"`
}

// ItemCache is implemented by RedisItemCache and LocalItemCache.
type ItemCache interface {
	// Get returns ErrCacheMiss when id is not cached.
	Get(ctx context.Context, id string) (*CachedItem, error)
	Set(ctx context.Context, item *CachedItem) error
	Delete(ctx context.Context, id string) error
}
