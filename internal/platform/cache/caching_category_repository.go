// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"auction_backend/internal/feature/auction/domain/entity"
	"auction_backend/internal/feature/auction/usecase"
)

// CachingCategoryRepository decorates a CategoryRepository with Redis caching.
// Reads by list and by name go through the cache; any newly created category
// drops every cached entry in the namespace.
type CachingCategoryRepository struct {
	inner     usecase.CategoryRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	observe   func(hit bool)
}

var _ usecase.CategoryRepository = (*CachingCategoryRepository)(nil)

// NewCachingCategoryRepository decorates a CategoryRepository with Redis caching.
// If ttl is 0, it defaults to 10 minutes. If namespace is empty, it uses "categories".
// A nil rdb disables caching.
func NewCachingCategoryRepository(rdb *redis.Client, ttl time.Duration, inner usecase.CategoryRepository, namespace string) *CachingCategoryRepository {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if namespace == "" {
		namespace = "categories"
	}
	return &CachingCategoryRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// WithLookupObserver registers fn to be told whether each cached read was a hit.
func (c *CachingCategoryRepository) WithLookupObserver(fn func(hit bool)) *CachingCategoryRepository {
	c.observe = fn
	return c
}

func (c *CachingCategoryRepository) record(hit bool) {
	if c.observe != nil {
		c.observe(hit)
	}
}

// List returns all categories, from cache when possible.
func (c *CachingCategoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	var out []entity.Category
	err := c.readThrough(ctx, c.listKey(), &out, func() (any, error) {
		list, err := c.inner.List(ctx)
		out = list
		return list, err
	})
	return out, err
}

// FindByName returns a category by name, from cache when possible.
// Misses are not cached.
func (c *CachingCategoryRepository) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	var out *entity.Category
	err := c.readThrough(ctx, c.nameKey(name), &out, func() (any, error) {
		cat, err := c.inner.FindByName(ctx, name)
		out = cat
		return cat, err
	})
	return out, err
}

// FindByID is not cached.
func (c *CachingCategoryRepository) FindByID(ctx context.Context, id uint) (*entity.Category, error) {
	return c.inner.FindByID(ctx, id)
}

// Ensure delegates to the inner repository and invalidates the namespace when
// a category was created.
func (c *CachingCategoryRepository) Ensure(ctx context.Context, name string) (*entity.Category, bool, error) {
	cat, created, err := c.inner.Ensure(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if created && c.rdb != nil {
		if err := deleteByPattern(ctx, c.rdb, c.namespace+":*"); err != nil {
			slog.Warn("category cache invalidation failed", "error", err)
		}
	}
	return cat, created, nil
}

// readThrough fills dst from key, or calls load and caches its result.
// load is expected to also assign dst.
func (c *CachingCategoryRepository) readThrough(ctx context.Context, key string, dst any, load func() (any, error)) error {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		_, err := load()
		return err
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		if err := json.Unmarshal(b, dst); err == nil {
			c.record(true)
			return nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	c.record(false)
	v, err := load()
	if err != nil {
		return err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(v); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return nil
}

func (c *CachingCategoryRepository) listKey() string {
	return fmt.Sprintf("%s:all", c.namespace)
}

func (c *CachingCategoryRepository) nameKey(name string) string {
	return fmt.Sprintf("%s:name:%s", c.namespace, keyPart(name))
}
