package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

const itemCacheKeyPrefix = "inventory:item"

// RedisItemCache stores items as Redis hashes.
// Key format: "inventory:item:{itemID}"
type RedisItemCache struct {
	client *RedisClient
	ttl    time.Duration
}

// NewRedisItemCache creates a RedisItemCache backed by the given RedisClient.
// Entries expire after ttl.
func NewRedisItemCache(r *RedisClient, ttl time.Duration) *RedisItemCache {
	return &RedisItemCache{client: r, ttl: ttl}
}

// Get retrieves a cached item by id.
// Returns ErrCacheMiss when the key does not exist or has expired.
func (c *RedisItemCache) Get(ctx context.Context, id string) (*CachedItem, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, ErrCacheMiss
	}

	quantity, err := strconv.ParseInt(vals["quantity"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse quantity: %w", err)
	}
	threshold, err := strconv.ParseInt(vals["low_stock_threshold"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse low_stock_threshold: %w", err)
	}

	return &CachedItem{
		ID:                vals["id"],
		Name:              vals["name"],
		Category:          vals["category"],
		Quantity:          quantity,
		Unit:              vals["unit"],
		LowStockThreshold: threshold,
	}, nil
}

// Set writes a cached item as a Redis hash with the configured TTL.
// Uses a transactional pipeline so the fields and the TTL land together.
func (c *RedisItemCache) Set(ctx context.Context, item *CachedItem) error {
	key := c.key(item.ID)
	pipe := c.client.Client().TxPipeline()
	pipe.HSet(ctx, key,
		"id", item.ID,
		"name", item.Name,
		"category", item.Category,
		"quantity", strconv.FormatInt(item.Quantity, 10),
		"unit", item.Unit,
		"low_stock_threshold", strconv.FormatInt(item.LowStockThreshold, 10),
	)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached item. Deleting a missing key is not an error.
func (c *RedisItemCache) Delete(ctx context.Context, id string) error {
	if err := c.client.Client().Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *RedisItemCache) key(id string) string {
	return fmt.Sprintf("%s:%s", itemCacheKeyPrefix, id)
}
