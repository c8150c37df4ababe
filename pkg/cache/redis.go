package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ghuser/barstock/pkg/config"
)

// RedisClient is the shared item cache connection used by the API and the
// worker. Both processes must reach the same server for worker-side
// invalidation to have any effect.
type RedisClient struct {
	client *redis.Client
}

// Fallbacks for pool settings left at zero (e.g. a hand-built Config in tests).
const (
	defaultRedisPoolSize     = 10
	defaultRedisMinIdleConns = 2
	defaultRedisTimeout      = 3 * time.Second
)

// NewRedisClient connects to REDIS_URL and fails fast if the server does not
// answer a ping within two seconds.
func NewRedisClient(cfg *config.Config) (*RedisClient, error) {
	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisClient{client: rdb}, nil
}

// redisOptions parses REDIS_URL and applies the REDIS_* pool settings.
// Cache calls are single-key and short, so one timeout bounds dialing,
// reads and writes; waiting for a pooled connection gets one second more.
func redisOptions(cfg *config.Config) (*redis.Options, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	timeout := cfg.RedisTimeout
	if timeout <= 0 {
		timeout = defaultRedisTimeout
	}
	opts.PoolSize = cfg.RedisPoolSize
	if opts.PoolSize <= 0 {
		opts.PoolSize = defaultRedisPoolSize
	}
	opts.MinIdleConns = cfg.RedisMinIdleConns
	if opts.MinIdleConns <= 0 {
		opts.MinIdleConns = defaultRedisMinIdleConns
	}
	opts.MaxRetries = 3
	opts.DialTimeout = timeout
	opts.ReadTimeout = timeout
	opts.WriteTimeout = timeout
	opts.PoolTimeout = timeout + time.Second
	return opts, nil
}

// Ping checks the Redis connection health.
func (r *RedisClient) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close gracefully shuts down the Redis connection pool.
func (r *RedisClient) Close() error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("redis close: %w", err)
	}
	return nil
}

// Client returns the underlying redis.Client for direct use.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}
