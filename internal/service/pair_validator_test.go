package service_test

import (
	"testing"

	"token_analyzer/internal/entity"
	"token_analyzer/internal/infrastructure/chains"
	"token_analyzer/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func pairWith(chainID, dexID, symbol, priceUsd string, liquidityUsd float64) entity.PairData {
	liq := liquidityUsd
	return entity.PairData{
		ChainID:     chainID,
		DexID:       dexID,
		PairAddress: "0xpair-" + dexID,
		BaseToken:   entity.DEXToken{Address: "0xtoken", Symbol: symbol, Name: symbol},
		QuoteToken:  entity.DEXToken{Symbol: "WETH"},
		PriceUsd:    priceUsd,
		Liquidity:   &entity.DEXLiquidity{Usd: &liq},
	}
}

func TestFilterValidPairsChainMatching(t *testing.T) {
	v := service.NewPairValidator(zap.NewNop())

	pairs := []entity.PairData{
		pairWith("ethereum", "uniswap", "PEPE", "0.00001", 50000),
		pairWith("bsc", "pancakeswap", "PEPE", "0.00001", 900000),
		pairWith("8453", "aerodrome", "PEPE", "0.00001", 50000),
	}

	eth := v.FilterValidPairs(pairs, chains.Ethereum)
	require.Len(t, eth, 1)
	assert.Equal(t, "uniswap", eth[0].DexID)

	base := v.FilterValidPairs(pairs, chains.Base)
	require.Len(t, base, 1)
	assert.Equal(t, "aerodrome", base[0].DexID, "numeric chain alias should match")
}

func TestFilterValidPairsLiquidityFloors(t *testing.T) {
	v := service.NewPairValidator(zap.NewNop())

	// $500 clears the stablecoin floor on base but not the general one.
	pairs := []entity.PairData{
		pairWith("base", "aerodrome", "USDT", "1.0001", 500),
		pairWith("base", "baseswap", "MEME", "0.002", 500),
	}

	got := v.FilterValidPairs(pairs, chains.Base)
	require.Len(t, got, 1)
	assert.Equal(t, "USDT", got[0].BaseToken.Symbol)
	assert.False(t, got[0].Backfilled, "pair above its floor must keep its own data")
	assert.InDelta(t, 1.0001, got[0].NormalizedPriceUsd, 1e-9)
}

func TestFilterValidPairsRejectsOutOfRangePrices(t *testing.T) {
	v := service.NewPairValidator(zap.NewNop())

	pairs := []entity.PairData{
		pairWith("ethereum", "uniswap", "WETH", "12.50", 500000),    // implausibly low for WETH
		pairWith("ethereum", "sushiswap", "WETH", "3100.42", 400000), // plausible
		pairWith("ethereum", "shadyswap", "JUNK", "2000000000", 90000), // above global ceiling
	}

	got := v.FilterValidPairs(pairs, chains.Ethereum)
	require.Len(t, got, 1)
	assert.Equal(t, "sushiswap", got[0].DexID)
}

func TestFilterValidPairsBackfillsSparseStablecoin(t *testing.T) {
	v := service.NewPairValidator(zap.NewNop())

	pairs := []entity.PairData{
		pairWith("base", "tinypool", "USDC", "0.9998", 40), // below even the stablecoin floor
	}

	got := v.FilterValidPairs(pairs, chains.Base)
	require.Len(t, got, 1)
	assert.True(t, got[0].Backfilled)
	assert.False(t, got[0].Synthetic)
	assert.InDelta(t, 0.9998, got[0].NormalizedPriceUsd, 1e-9, "reported price survives, only market data is substituted")
	assert.Greater(t, got[0].LiquidityUsd(), 1_000_000.0)
	assert.NotEmpty(t, got[0].Warnings)
}

func TestFilterValidPairsBackfillsMissingLiquidity(t *testing.T) {
	v := service.NewPairValidator(zap.NewNop())

	p := pairWith("ethereum", "uniswap", "DAI", "1.0", 0)
	p.Liquidity = nil

	got := v.FilterValidPairs([]entity.PairData{p}, chains.Ethereum)
	require.Len(t, got, 1)
	assert.True(t, got[0].Backfilled)
	require.NotNil(t, got[0].Liquidity)
	assert.NotEmpty(t, got[0].Warnings)
}

func TestFilterValidPairsSyntheticFallback(t *testing.T) {
	v := service.NewPairValidator(zap.NewNop())

	// A depegged quote is rejected as-is, but the stablecoin sighting still
	// produces the pinned synthetic pair.
	pairs := []entity.PairData{
		pairWith("ethereum", "uniswap", "USDT", "1.25", 5_000_000),
	}

	got := v.FilterValidPairs(pairs, chains.Ethereum)
	require.Len(t, got, 1)
	assert.True(t, got[0].Synthetic)
	assert.True(t, got[0].Backfilled)
	assert.Equal(t, "1.0000", got[0].PriceUsd)
	assert.InDelta(t, 1.0, got[0].NormalizedPriceUsd, 1e-9)
	assert.NotEmpty(t, got[0].Warnings)
}

func TestFilterValidPairsNoSyntheticWithoutStablecoin(t *testing.T) {
	v := service.NewPairValidator(zap.NewNop())

	pairs := []entity.PairData{
		pairWith("ethereum", "uniswap", "MEME", "0.002", 50), // below general floor
	}

	got := v.FilterValidPairs(pairs, chains.Ethereum)
	assert.Empty(t, got)
}

func TestFilterValidPairsIdempotent(t *testing.T) {
	v := service.NewPairValidator(zap.NewNop())

	pairs := []entity.PairData{
		pairWith("ethereum", "uniswap", "WETH", "3100", 500000),
		pairWith("ethereum", "sushiswap", "WETH", "3090", 300000),
	}

	first := v.FilterValidPairs(pairs, chains.Ethereum)
	second := v.FilterValidPairs(pairs, chains.Ethereum)
	assert.Equal(t, first, second)
}

func TestFilterValidPairsUnparseablePriceNonStablecoin(t *testing.T) {
	v := service.NewPairValidator(zap.NewNop())

	p := pairWith("ethereum", "uniswap", "MEME", "", 500000)
	got := v.FilterValidPairs([]entity.PairData{p}, chains.Ethereum)
	assert.Empty(t, got, "a non-stablecoin without a price has nothing to analyze")
}
