// Package cache provides a small read-through JSON cache over redis for the
// dashboard and settlement summary reads. It degrades to a no-op when no
// redis address is configured, so a bare deployment needs no redis at all.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/modan/fas/internal/config"
	"github.com/modan/fas/internal/logger"
	"github.com/redis/go-redis/v9"
)

const (
	KeySettlementSummary = "fas:settlement:summary"
	KeyDashboard         = "fas:stats:dashboard"
)

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New builds a cache from config. A blank addr yields a disabled cache.
func New(cfg config.RedisConfig) *Cache {
	if cfg.Addr == "" {
		return &Cache{}
	}

	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}

	return &Cache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		ttl: ttl,
	}
}

// Enabled reports whether a redis backend is configured.
func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// GetJSON loads key into dest, reporting whether it was a hit. Redis errors
// count as misses; a cache failure must never fail the read path.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if !c.Enabled() {
		return false
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("cache get %s failed: %v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Warn("cache decode %s failed: %v", key, err)
		return false
	}
	return true
}

// SetJSON stores v under key with the configured TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, v interface{}) {
	if !c.Enabled() {
		return
	}

	raw, err := json.Marshal(v)
	if err != nil {
		logger.Warn("cache encode %s failed: %v", key, err)
		return
	}

	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logger.Warn("cache set %s failed: %v", key, err)
	}
}

// Invalidate drops keys after a mutation.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.Warn("cache invalidate failed: %v", err)
	}
}
