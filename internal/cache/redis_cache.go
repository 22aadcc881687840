package cache

import (
	"context"
	"fmt"
	"time"

	"contentsmith/internal/config"

	"github.com/redis/go-redis/v9"
)

// FetchCache is an optional redis-backed cache for raw source payloads.
// It exists so repeated pipeline runs inside one TTL window do not hammer
// the upstream feeds. A nil *FetchCache is a valid no-op cache.
type FetchCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New returns nil (cache disabled) when no redis address is configured.
func New(cfg config.RedisConfig) *FetchCache {
	if cfg.Addr == "" {
		return nil
	}
	ttl, err := time.ParseDuration(cfg.CacheTTL)
	if err != nil || ttl <= 0 {
		ttl = 30 * time.Minute
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &FetchCache{rdb: rdb, ttl: ttl}
}

func fetchKey(source, u string) string {
	return fmt.Sprintf("contentsmith:fetch:%s:%s", source, u)
}

// Get returns the cached payload for a source URL, or ok=false on miss,
// disabled cache, or any redis error (misses and errors are equivalent to
// the caller: fetch upstream).
func (c *FetchCache) Get(ctx context.Context, source, u string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	b, err := c.rdb.Get(ctx, fetchKey(source, u)).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

// Set stores a payload with the configured TTL. Best-effort.
func (c *FetchCache) Set(ctx context.Context, source, u string, payload []byte) {
	if c == nil {
		return
	}
	_ = c.rdb.Set(ctx, fetchKey(source, u), payload, c.ttl).Err()
}

// Close releases the underlying connection.
func (c *FetchCache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
