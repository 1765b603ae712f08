package repository

import (
	"context"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/redis/go-redis/v9"
)

// DocumentCache is a best-effort byte cache in front of the database. A miss
// and a backend failure look the same to callers; the database remains the
// source of truth.
type DocumentCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Invalidate(ctx context.Context, key string)
}

const cacheTTL = 5 * time.Minute

type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return value, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte) {
	c.rdb.Set(ctx, key, value, cacheTTL)
}

func (c *RedisCache) Invalidate(ctx context.Context, key string) {
	c.rdb.Del(ctx, key)
}

type MemcachedCache struct {
	mc *memcache.Client
}

func NewMemcachedCache(mc *memcache.Client) *MemcachedCache {
	return &MemcachedCache{mc: mc}
}

func (c *MemcachedCache) Get(ctx context.Context, key string) ([]byte, bool) {
	item, err := c.mc.Get(key)
	if err != nil {
		return nil, false
	}
	return item.Value, true
}

func (c *MemcachedCache) Set(ctx context.Context, key string, value []byte) {
	c.mc.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: int32(cacheTTL / time.Second),
	})
}

func (c *MemcachedCache) Invalidate(ctx context.Context, key string) {
	c.mc.Delete(key)
}
