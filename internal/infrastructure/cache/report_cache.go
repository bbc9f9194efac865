package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when the requested key is not cached
var ErrCacheMiss = errors.New("cache miss")

// ReportCache caches derived report payloads. Reports are recomputed by
// full replay, so every record mutation must invalidate the whole cache.
type ReportCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
	InvalidateAll(ctx context.Context) error
	Close() error
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

// RedisReportCache implements ReportCache using Redis. Entries share one
// key prefix so invalidation can sweep them all with a single scan.
type RedisReportCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisReportCache creates a new Redis-backed report cache
func NewRedisReportCache(cfg RedisConfig) (*RedisReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Minute
	}

	return &RedisReportCache{
		client:    client,
		keyPrefix: "report:",
		ttl:       ttl,
	}, nil
}

// NewRedisReportCacheWithClient creates a cache with an existing Redis client
func NewRedisReportCacheWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisReportCache {
	if keyPrefix == "" {
		keyPrefix = "report:"
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisReportCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// Get retrieves and unmarshals a cached report
func (c *RedisReportCache) Get(ctx context.Context, key string, dest interface{}) error {
	payload, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("failed to read cached report: %w", err)
	}
	return json.Unmarshal(payload, dest)
}

// Set marshals and stores a report with the configured TTL
func (c *RedisReportCache) Set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal report for caching: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}
	return nil
}

// InvalidateAll removes every cached report
func (c *RedisReportCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to invalidate cached report: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cached reports: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisReportCache) Close() error {
	return c.client.Close()
}

// NoopReportCache is used when caching is disabled. Get always misses.
type NoopReportCache struct{}

// NewNoopReportCache creates a no-op report cache
func NewNoopReportCache() *NoopReportCache {
	return &NoopReportCache{}
}

// Get always reports a miss
func (*NoopReportCache) Get(context.Context, string, interface{}) error {
	return ErrCacheMiss
}

// Set does nothing
func (*NoopReportCache) Set(context.Context, string, interface{}) error {
	return nil
}

// InvalidateAll does nothing
func (*NoopReportCache) InvalidateAll(context.Context) error {
	return nil
}

// Close does nothing
func (*NoopReportCache) Close() error {
	return nil
}

var (
	_ ReportCache = (*RedisReportCache)(nil)
	_ ReportCache = (*NoopReportCache)(nil)
)
