package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"token_analyzer/internal/app/port"
	domainentity "token_analyzer/internal/domain/entity"
	"token_analyzer/internal/entity"
	"token_analyzer/internal/infrastructure/chains"
	"token_analyzer/internal/pkg/logger"
	"token_analyzer/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMarketData struct {
	pairs []entity.PairData
	err   error
	calls int
}

func (f *fakeMarketData) GetTokenPairs(context.Context, string) ([]entity.PairData, error) {
	f.calls++
	return f.pairs, f.err
}

type fakeHistorical struct {
	candles []entity.Candle
	err     error
}

func (f *fakeHistorical) GetCandles(context.Context, domainentity.ChainDefinition, string) ([]entity.Candle, error) {
	return f.candles, f.err
}

type fakeCache struct {
	store map[string]*domainentity.TokenAnalysis
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string]*domainentity.TokenAnalysis{}}
}

func (f *fakeCache) Get(_ context.Context, key string) (*domainentity.TokenAnalysis, bool) {
	a, ok := f.store[key]
	return a, ok
}

func (f *fakeCache) Set(_ context.Context, key string, a *domainentity.TokenAnalysis, _ time.Duration) {
	f.store[key] = a
}

func (f *fakeCache) Delete(_ context.Context, key string) {
	delete(f.store, key)
}

func newAnalysisService(md *fakeMarketData, hist *fakeHistorical, c *fakeCache) *service.TokenAnalysisServiceImpl {
	log := zap.NewNop()
	resolver := chains.NewChainDefinitionProvider(logger.NewSlogAdapter())
	var historical port.HistoricalDataSource
	if hist != nil {
		historical = hist
	}
	return service.NewTokenAnalysisService(md, historical, c, resolver,
		service.NewPairValidator(log), service.NewPairSelector(log), 5*time.Minute, log)
}

func wethPair(dexID, price string, liquidity, volume float64, createdAtMs int64) entity.PairData {
	p := pairWith("ethereum", dexID, "WETH", price, liquidity)
	vol := volume
	p.Volume = &entity.PairVolume{H24: &vol}
	p.PairCreatedAt = createdAtMs
	return p
}

func TestBuildAnalysisNoData(t *testing.T) {
	svc := newAnalysisService(&fakeMarketData{}, nil, newFakeCache())

	analysis, err := svc.BuildAnalysis(context.Background(), "0xtoken", chains.Ethereum)
	require.NoError(t, err)
	assert.Nil(t, analysis)
}

func TestBuildAnalysisUpstreamError(t *testing.T) {
	svc := newAnalysisService(&fakeMarketData{err: errors.New("boom")}, nil, newFakeCache())

	_, err := svc.BuildAnalysis(context.Background(), "0xtoken", chains.Ethereum)
	assert.Error(t, err)
}

func TestBuildAnalysisNothingSurvivesValidation(t *testing.T) {
	md := &fakeMarketData{pairs: []entity.PairData{
		pairWith("bsc", "pancakeswap", "WETH", "3100", 500000),
	}}
	svc := newAnalysisService(md, nil, newFakeCache())

	analysis, err := svc.BuildAnalysis(context.Background(), "0xtoken", chains.Ethereum)
	require.NoError(t, err)
	assert.Nil(t, analysis)
}

func TestBuildAnalysisHappyPath(t *testing.T) {
	created := time.Now().Add(-10 * 24 * time.Hour).UnixMilli()
	md := &fakeMarketData{pairs: []entity.PairData{
		wethPair("uniswap", "3100", 500_000, 100_000, created),
		wethPair("sushiswap", "3095", 100_000, 10_000, created),
	}}
	hist := &fakeHistorical{candles: []entity.Candle{
		{Timestamp: time.Now().Add(-30 * 24 * time.Hour).Unix(), High: 4800},
		{Timestamp: time.Now().Add(-5 * 24 * time.Hour).Unix(), High: 3500},
	}}
	c := newFakeCache()
	svc := newAnalysisService(md, hist, c)

	analysis, err := svc.BuildAnalysis(context.Background(), "0xToken", chains.Ethereum)
	require.NoError(t, err)
	require.NotNil(t, analysis)

	assert.Equal(t, "ethereum", analysis.ChainID)
	assert.Equal(t, "WETH", analysis.Symbol)
	assert.Equal(t, "uniswap", analysis.DexID, "highest liquidity+volume wins")
	assert.InDelta(t, 3100, analysis.PriceUsd, 1e-9)

	require.NotNil(t, analysis.AllTimeHigh)
	assert.InDelta(t, 4800, *analysis.AllTimeHigh, 1e-9)
	assert.Contains(t, analysis.AllTimeHighAgo, "ago")

	assert.Contains(t, analysis.Age, "(Recent)")

	require.NotNil(t, analysis.Differential)
	assert.Equal(t, "uniswap", analysis.Differential.MaxDex)

	// Cached under the lowercased chain:contract key.
	_, ok := c.store["ethereum:0xtoken"]
	assert.True(t, ok)
}

func TestBuildAnalysisCacheHitSkipsUpstream(t *testing.T) {
	md := &fakeMarketData{}
	c := newFakeCache()
	cached := &domainentity.TokenAnalysis{Symbol: "WETH", PriceUsd: 3000}
	c.store["ethereum:0xtoken"] = cached

	svc := newAnalysisService(md, nil, c)
	analysis, err := svc.BuildAnalysis(context.Background(), "0xToken", chains.Ethereum)
	require.NoError(t, err)
	assert.Same(t, cached, analysis)
	assert.Zero(t, md.calls)
}

func TestBuildAnalysisLivePriceBeatsHistory(t *testing.T) {
	created := time.Now().Add(-200 * 24 * time.Hour).UnixMilli()
	md := &fakeMarketData{pairs: []entity.PairData{
		wethPair("uniswap", "3100", 500_000, 100_000, created),
	}}
	hist := &fakeHistorical{candles: []entity.Candle{
		{Timestamp: time.Now().Add(-100 * 24 * time.Hour).Unix(), High: 2900},
	}}
	svc := newAnalysisService(md, hist, newFakeCache())

	analysis, err := svc.BuildAnalysis(context.Background(), "0xtoken", chains.Ethereum)
	require.NoError(t, err)
	require.NotNil(t, analysis)
	require.NotNil(t, analysis.AllTimeHigh)
	assert.InDelta(t, 3100, *analysis.AllTimeHigh, 1e-9)
	assert.Equal(t, "just now", analysis.AllTimeHighAgo)
	assert.Contains(t, analysis.Age, "(Established)")
}

func TestBuildAnalysisCandleFailureDegradesGracefully(t *testing.T) {
	md := &fakeMarketData{pairs: []entity.PairData{
		wethPair("uniswap", "3100", 500_000, 100_000, 0),
	}}
	hist := &fakeHistorical{err: errors.New("rate limited")}
	svc := newAnalysisService(md, hist, newFakeCache())

	analysis, err := svc.BuildAnalysis(context.Background(), "0xtoken", chains.Ethereum)
	require.NoError(t, err)
	require.NotNil(t, analysis)
	assert.Nil(t, analysis.AllTimeHigh)
	assert.Equal(t, "unknown", analysis.AllTimeHighAgo)
	assert.Equal(t, "unknown", analysis.Age)
}

func TestBuildAnalysisSuspiciousVolumeWarning(t *testing.T) {
	p := wethPair("uniswap", "3100", 10_000, 600_000, 0) // 60x volume/liquidity
	md := &fakeMarketData{pairs: []entity.PairData{p}}
	svc := newAnalysisService(md, nil, newFakeCache())

	analysis, err := svc.BuildAnalysis(context.Background(), "0xtoken", chains.Ethereum)
	require.NoError(t, err)
	require.NotNil(t, analysis)

	found := false
	for _, w := range analysis.Warnings {
		if strings.Contains(w, "wash trading") {
			found = true
		}
	}
	assert.True(t, found, "expected a wash-trading warning, got %v", analysis.Warnings)
}

func TestDetectChain(t *testing.T) {
	md := &fakeMarketData{pairs: []entity.PairData{
		pairWith("pulsechain", "pulsex", "MEME", "0.002", 900_000),
		pairWith("base", "aerodrome", "MEME", "0.002", 50_000),
		pairWith("ethereum", "uniswap", "MEME", "0.002", 300_000),
	}}
	svc := newAnalysisService(md, nil, newFakeCache())

	chain, ok, err := svc.DetectChain(context.Background(), "0xtoken")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ethereum", chain.ID, "unsupported chains are skipped, then highest score wins")
}

func TestDetectChainUnsupportedOnly(t *testing.T) {
	md := &fakeMarketData{pairs: []entity.PairData{
		pairWith("pulsechain", "pulsex", "MEME", "0.002", 900_000),
	}}
	svc := newAnalysisService(md, nil, newFakeCache())

	_, ok, err := svc.DetectChain(context.Background(), "0xtoken")
	require.NoError(t, err)
	assert.False(t, ok)
}
