package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, val string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// InMemoryCache is a process-local expirable LRU. Entries expire at the
// cache-wide TTL passed to NewInMemory; the per-call ttl on Set is honored
// only by backends that support it (see ValkeyClient).
type InMemoryCache struct {
	lru *expirable.LRU[string, string]
}

func NewInMemory(size int, ttl time.Duration) *InMemoryCache {
	if size <= 0 {
		size = 512
	}
	return &InMemoryCache{lru: expirable.NewLRU[string, string](size, nil, ttl)}
}

func (c *InMemoryCache) Get(_ context.Context, key string) (string, bool) {
	return c.lru.Get(key)
}

func (c *InMemoryCache) Set(_ context.Context, key string, val string, _ time.Duration) error {
	c.lru.Add(key, val)
	return nil
}

func (c *InMemoryCache) Delete(_ context.Context, key string) error {
	c.lru.Remove(key)
	return nil
}
