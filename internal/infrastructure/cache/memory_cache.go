package cache

import (
	"context"
	"time"

	"token_analyzer/internal/app/port"
	domainentity "token_analyzer/internal/domain/entity"

	gocache "github.com/patrickmn/go-cache"
)

// memoryAnalysisCache is the in-process TTL implementation of
// port.AnalysisCache.
type memoryAnalysisCache struct {
	store *gocache.Cache
}

// NewMemoryAnalysisCache creates an in-memory analysis cache with the given
// default TTL and cleanup interval.
func NewMemoryAnalysisCache(defaultTTL, cleanupInterval time.Duration) port.AnalysisCache {
	return &memoryAnalysisCache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

func (c *memoryAnalysisCache) Get(_ context.Context, key string) (*domainentity.TokenAnalysis, bool) {
	value, found := c.store.Get(key)
	if !found {
		return nil, false
	}
	analysis, ok := value.(*domainentity.TokenAnalysis)
	if !ok {
		return nil, false
	}
	return analysis, true
}

func (c *memoryAnalysisCache) Set(_ context.Context, key string, analysis *domainentity.TokenAnalysis, ttl time.Duration) {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	c.store.Set(key, analysis, ttl)
}

func (c *memoryAnalysisCache) Delete(_ context.Context, key string) {
	c.store.Delete(key)
}
