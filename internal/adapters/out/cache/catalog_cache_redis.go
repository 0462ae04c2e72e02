// internal/adapters/out/cache/catalog_cache_redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"gamestore/internal/domain/catalog"
)

// DefaultTTL bounds how stale a cached catalog page can get.
const DefaultTTL = 10 * time.Minute

// CatalogCacheRedis is a read-through Redis cache in front of a
// catalog.Source. Cache failures are best-effort: a miss, a broken
// payload, or a failed write all fall back to the underlying source.
type CatalogCacheRedis struct {
	next catalog.Source
	rdb  *redis.Client
	ttl  time.Duration
}

func NewCatalogCacheRedis(next catalog.Source, rdb *redis.Client, ttl time.Duration) *CatalogCacheRedis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CatalogCacheRedis{next: next, rdb: rdb, ttl: ttl}
}

func (c *CatalogCacheRedis) List(ctx context.Context, page, pageSize int, ordering string) (*catalog.Page, error) {
	key := fmt.Sprintf("catalog:list:p%d:s%d:%s", page, pageSize, ordering)
	out := &catalog.Page{}
	if c.lookup(ctx, key, out) {
		return out, nil
	}

	fresh, err := c.next.List(ctx, page, pageSize, ordering)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, fresh)
	return fresh, nil
}

func (c *CatalogCacheRedis) Search(ctx context.Context, query string, page, pageSize int) (*catalog.Page, error) {
	key := fmt.Sprintf("catalog:search:%s:p%d:s%d", query, page, pageSize)
	out := &catalog.Page{}
	if c.lookup(ctx, key, out) {
		return out, nil
	}

	fresh, err := c.next.Search(ctx, query, page, pageSize)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, fresh)
	return fresh, nil
}

func (c *CatalogCacheRedis) BySlug(ctx context.Context, slug string) (*catalog.GameDetails, error) {
	key := "catalog:game:" + slug
	out := &catalog.GameDetails{}
	if c.lookup(ctx, key, out) {
		return out, nil
	}

	fresh, err := c.next.BySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, fresh)
	return fresh, nil
}

func (c *CatalogCacheRedis) Screenshots(ctx context.Context, slug string) ([]catalog.Screenshot, error) {
	key := "catalog:shots:" + slug
	var out []catalog.Screenshot
	if c.lookup(ctx, key, &out) {
		return out, nil
	}

	fresh, err := c.next.Screenshots(ctx, slug)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, fresh)
	return fresh, nil
}

// lookup reports whether key was present and decoded into v.
func (c *CatalogCacheRedis) lookup(ctx context.Context, key string, v any) bool {
	if c == nil || c.rdb == nil {
		return false
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.Printf("[catalog_cache] get failed key=%s err=%v", key, err)
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		log.Printf("[catalog_cache] stale payload key=%s err=%v", key, err)
		return false
	}
	return true
}

func (c *CatalogCacheRedis) store(ctx context.Context, key string, v any) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Printf("[catalog_cache] set failed key=%s err=%v", key, err)
	}
}
