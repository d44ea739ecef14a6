package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a cache whose entries default to ttl and which
// purges expired items every cleanup interval.
func NewMemoryCache(ttl, cleanup time.Duration) *MemoryCache {
	return &MemoryCache{cache: gocache.New(ttl, cleanup)}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if x, found := m.cache.Get(key); found {
		return x.([]byte), true, nil
	}
	return nil, false, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.cache.Set(key, value, ttl)
	return nil
}
