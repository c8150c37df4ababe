package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// LocalItemCache is a per-process LRU with a TTL on every entry. Entries
// invalidated by another process are only dropped when they expire.
type LocalItemCache struct {
	lru *expirable.LRU[string, CachedItem]
}

// NewLocalItemCache returns a cache holding at most size entries for ttl each.
func NewLocalItemCache(size int, ttl time.Duration) *LocalItemCache {
	return &LocalItemCache{lru: expirable.NewLRU[string, CachedItem](size, nil, ttl)}
}

// Get returns a copy of the cached item or ErrCacheMiss.
func (c *LocalItemCache) Get(_ context.Context, id string) (*CachedItem, error) {
	item, ok := c.lru.Get(id)
	if !ok {
		return nil, ErrCacheMiss
	}
	return &item, nil
}

// Set stores a copy of item.
func (c *LocalItemCache) Set(_ context.Context, item *CachedItem) error {
	c.lru.Add(item.ID, *item)
	return nil
}

// Delete evicts id if present.
func (c *LocalItemCache) Delete(_ context.Context, id string) error {
	c.lru.Remove(id)
	return nil
}

// Len returns the number of live entries.
func (c *LocalItemCache) Len() int {
	return c.lru.Len()
}
