package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	pageCachePrefix = "linktree:slug:"
	pageCacheTTL    = 60 * time.Second
)

// PageCache keeps rendered public linktree pages in Redis for a short TTL.
// Every owner-side mutation invalidates the slug's entry; a nil client
// degrades to pass-through.
type PageCache struct {
	rdb *redis.Client
}

// NewPageCache wraps the redis client. rdb may be nil.
func NewPageCache(rdb *redis.Client) *PageCache {
	return &PageCache{rdb: rdb}
}

// Get returns the cached page for slug, or false on miss or any Redis error.
func (c *PageCache) Get(ctx context.Context, slug string, out interface{}) bool {
	if c == nil || c.rdb == nil {
		return false
	}

	data, err := c.rdb.Get(ctx, pageCachePrefix+slug).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

// Set stores the page for slug. Failures are ignored; the cache is an
// optimization, not a source of truth.
func (c *PageCache) Set(ctx context.Context, slug string, page interface{}) {
	if c == nil || c.rdb == nil {
		return
	}

	data, err := json.Marshal(page)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, pageCachePrefix+slug, data, pageCacheTTL)
}

// Invalidate drops the cached page for slug.
func (c *PageCache) Invalidate(ctx context.Context, slug string) {
	if c == nil || c.rdb == nil || slug == "" {
		return
	}
	c.rdb.Del(ctx, pageCachePrefix+slug)
}
