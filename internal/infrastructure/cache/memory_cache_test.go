package cache_test

import (
	"context"
	"testing"
	"time"

	domainentity "token_analyzer/internal/domain/entity"
	"token_analyzer/internal/infrastructure/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAnalysisCacheSetGet(t *testing.T) {
	c := cache.NewMemoryAnalysisCache(time.Minute, time.Minute)
	ctx := context.Background()

	analysis := &domainentity.TokenAnalysis{Symbol: "WETH", PriceUsd: 3100}
	c.Set(ctx, "ethereum:0xweth", analysis, time.Minute)

	got, ok := c.Get(ctx, "ethereum:0xweth")
	require.True(t, ok)
	assert.Equal(t, analysis, got)

	_, ok = c.Get(ctx, "ethereum:0xother")
	assert.False(t, ok)
}

func TestMemoryAnalysisCacheExpiry(t *testing.T) {
	c := cache.NewMemoryAnalysisCache(time.Minute, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "key", &domainentity.TokenAnalysis{Symbol: "WETH"}, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get(ctx, "key")
	assert.False(t, ok)
}

func TestMemoryAnalysisCacheDelete(t *testing.T) {
	c := cache.NewMemoryAnalysisCache(time.Minute, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "key", &domainentity.TokenAnalysis{Symbol: "WETH"}, time.Minute)
	c.Delete(ctx, "key")

	_, ok := c.Get(ctx, "key")
	assert.False(t, ok)
}
