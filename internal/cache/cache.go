// Package cache implements munin's response cache: a thin Redis-backed
// TTL store for serialized autocomplete/reverse responses, adapted from
// search-service's internal/cache.Cache (in-memory map + sha256 key
// hashing) onto redis/go-redis/v9 so the cache survives process restarts
// and is shared across munin-api replicas. Per spec.md §5 this is
// strictly a response cache: no place document or index data is ever
// cached here, so a stale entry can only ever serve a stale *answer*,
// never diverge from what the store would return for a fresh query.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config mirrors the teacher's cache.Config (TTL/MaxSize), MaxSize
// dropped since Redis bounds memory with its own eviction policy rather
// than munin tracking an entry count itself.
type Config struct {
	TTL time.Duration
}

// DefaultConfig matches the teacher's DefaultConfig TTL for search
// results: short-lived, since autocomplete results go stale the moment
// upstream data changes.
func DefaultConfig() Config {
	return Config{TTL: 30 * time.Second}
}

// Cache wraps a redis.Client with the Get/Set/Delete surface munin's
// handlers need.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New builds a Cache from a Redis connection URL (redis://host:port/db),
// the same connection-string shape the teacher's config.RedisURL uses.
func New(redisURL string, cfg Config) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	if cfg.TTL == 0 {
		cfg.TTL = DefaultConfig().TTL
	}
	return &Cache{client: redis.NewClient(opts), ttl: cfg.TTL}, nil
}

// GenerateKey hashes collection/dataset and the request params into one
// cache key, the same sha256-of-JSON approach as the teacher's
// cache.GenerateKey, generalized from (collection, tenantID) to
// (route, dataset) since munin has no tenant concept.
func GenerateKey(route, dataset string, params interface{}) string {
	data, _ := json.Marshal(params)
	hash := sha256.Sum256(append([]byte(route+":"+dataset+":"), data...))
	return hex.EncodeToString(hash[:])
}

// Get fetches and JSON-decodes a cached response into dest. Returns
// (false, nil) on a cache miss.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set JSON-encodes value and stores it under key with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

// Delete removes a single cached entry, e.g. after an ingest publish
// invalidates anything cached against the dataset's prior alias.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Close releases the underlying Redis connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Ping verifies connectivity, used by the /status handler's readiness
// check.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
