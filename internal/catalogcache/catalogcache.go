// Package catalogcache is the read-through cache shared by the department and
// product use cases. A nil cache disables caching.
package catalogcache

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-storefront/pkg/cache"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"go.uber.org/zap"
)

const (
	keyPattern     = "catalog:*"
	DepartmentsKey = "catalog:departments"
)

func ProductsKey(departmentID *int64) string {
	if departmentID == nil {
		return "catalog:products:all"
	}
	return fmt.Sprintf("catalog:products:department:%d", *departmentID)
}

type Catalog struct {
	cache  cache.Cache
	ttl    time.Duration
	logger logger.ZapLogger
}

func New(c cache.Cache, ttl time.Duration, log logger.ZapLogger) *Catalog {
	return &Catalog{cache: c, ttl: ttl, logger: log}
}

// Load returns the cached value under key, or calls fetch and caches its
// result. Cache errors are logged and fall through to fetch.
func Load[T any](ctx context.Context, c *Catalog, key string, fetch func() (T, error)) (T, error) {
	if c == nil || c.cache == nil {
		return fetch()
	}

	var cached T
	found, err := c.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		c.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
	}
	if found {
		return cached, nil
	}

	value, err := fetch()
	if err != nil {
		return value, err
	}
	if err := c.cache.SetJSON(ctx, key, value, c.ttl); err != nil {
		c.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
	return value, nil
}

// Invalidate drops every cached catalog list. It runs synchronously so the
// next read after a committed write sees fresh data.
func (c *Catalog) Invalidate(ctx context.Context) {
	if c == nil || c.cache == nil {
		return
	}
	if err := c.cache.DeletePattern(ctx, keyPattern); err != nil {
		c.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}
