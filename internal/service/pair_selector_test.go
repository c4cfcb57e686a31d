package service_test

import (
	"testing"

	"token_analyzer/internal/entity"
	"token_analyzer/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validatedPair(dexID string, price, liquidityUsd, volume24h float64) service.ValidatedPair {
	liq := liquidityUsd
	vol := volume24h
	return service.ValidatedPair{
		PairData: entity.PairData{
			ChainID:     "ethereum",
			DexID:       dexID,
			PairAddress: "0xpair-" + dexID,
			Liquidity:   &entity.DEXLiquidity{Usd: &liq},
			Volume:      &entity.PairVolume{H24: &vol},
		},
		NormalizedPriceUsd: price,
	}
}

func TestSelectBestPairEmpty(t *testing.T) {
	s := service.NewPairSelector(zap.NewNop())
	_, ok := s.SelectBestPair(nil)
	assert.False(t, ok)
}

func TestSelectBestPairHighestScoreWins(t *testing.T) {
	s := service.NewPairSelector(zap.NewNop())

	pairs := []service.ValidatedPair{
		validatedPair("uniswap", 1.00, 100_000, 20_000),
		validatedPair("sushiswap", 1.01, 90_000, 50_000), // score 140k, highest
		validatedPair("shibaswap", 0.99, 80_000, 10_000),
	}

	result, ok := s.SelectBestPair(pairs)
	require.True(t, ok)
	assert.Equal(t, "sushiswap", result.Best.DexID)
}

func TestSelectBestPairTieKeepsFirstEncountered(t *testing.T) {
	s := service.NewPairSelector(zap.NewNop())

	pairs := []service.ValidatedPair{
		validatedPair("uniswap", 1.00, 100_000, 20_000),
		validatedPair("sushiswap", 1.01, 20_000, 100_000),
	}

	result, ok := s.SelectBestPair(pairs)
	require.True(t, ok)
	assert.Equal(t, "uniswap", result.Best.DexID)

	// Re-running on the same slice keeps the result stable.
	again, _ := s.SelectBestPair(pairs)
	assert.Equal(t, result.Best.DexID, again.Best.DexID)
}

func TestSelectBestPairSinglePairHasNoDifferential(t *testing.T) {
	s := service.NewPairSelector(zap.NewNop())

	result, ok := s.SelectBestPair([]service.ValidatedPair{
		validatedPair("uniswap", 1.00, 100_000, 20_000),
	})
	require.True(t, ok)
	assert.Nil(t, result.Differential)
}

func TestSelectBestPairDifferential(t *testing.T) {
	s := service.NewPairSelector(zap.NewNop())

	pairs := []service.ValidatedPair{
		validatedPair("uniswap", 1.00, 100_000, 20_000),
		validatedPair("sushiswap", 1.25, 10_000, 5_000),
		validatedPair("shibaswap", 0.80, 15_000, 2_000),
	}

	result, ok := s.SelectBestPair(pairs)
	require.True(t, ok)
	require.NotNil(t, result.Differential)
	assert.Equal(t, "sushiswap", result.Differential.MaxDex)
	assert.Equal(t, "shibaswap", result.Differential.MinDex)
	assert.InDelta(t, 1.25, result.Differential.MaxPrice, 1e-9)
	assert.InDelta(t, 0.80, result.Differential.MinPrice, 1e-9)
	// (1.25 - 0.80) / 0.80 * 100
	assert.InDelta(t, 56.25, result.Differential.SpreadPercent, 1e-9)
}
