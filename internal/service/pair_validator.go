package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	domainentity "token_analyzer/internal/domain/entity"
	"token_analyzer/internal/entity"

	"go.uber.org/zap"
)

// syntheticPriceUsd is the pinned quote of a synthetic stablecoin pair.
const syntheticPriceUsd = "1.0000"

// Global price sanity bounds. Anything outside is garbage data regardless
// of symbol.
const (
	globalMinPrice = 0.00000001
	globalMaxPrice = 1_000_000
)

type priceRange struct {
	Min float64
	Max float64
}

// symbolPriceRanges lists symbols with a known plausible USD range. Unknown
// symbols skip range validation and are accepted by default. Stablecoin
// ranges are checked after normalization.
var symbolPriceRanges = map[string]priceRange{
	"ETH":                {Min: 100, Max: 100_000},
	"WETH":               {Min: 100, Max: 100_000},
	"BTC":                {Min: 1_000, Max: 10_000_000},
	"WBTC":               {Min: 1_000, Max: 10_000_000},
	"AVAX":               {Min: 1, Max: 10_000},
	"WAVAX":              {Min: 1, Max: 10_000},
	"SOL":                {Min: 1, Max: 100_000},
	"WSOL":               {Min: 1, Max: 100_000},
	stablecoinUSDTSymbol: {Min: peggedRangeLow, Max: peggedRangeHigh},
	stablecoinUSDCSymbol: {Min: peggedRangeLow, Max: peggedRangeHigh},
	stablecoinDAISymbol:  {Min: peggedRangeLow, Max: peggedRangeHigh},
}

// StablecoinDefaults is the static per-symbol bundle substituted for a major
// stablecoin pair whose feed data is sparse. Major stablecoins are known-good
// economically even when the quoted pool is thin.
type StablecoinDefaults struct {
	MarketCap    float64
	Fdv          float64
	Volume24h    float64
	LiquidityUsd float64
	Buys24h      int
	Sells24h     int
}

var stablecoinDefaultBundles = map[string]StablecoinDefaults{
	stablecoinUSDTSymbol: {MarketCap: 140_000_000_000, Fdv: 140_000_000_000, Volume24h: 50_000_000_000, LiquidityUsd: 25_000_000, Buys24h: 180_000, Sells24h: 175_000},
	stablecoinUSDCSymbol: {MarketCap: 56_000_000_000, Fdv: 56_000_000_000, Volume24h: 10_000_000_000, LiquidityUsd: 18_000_000, Buys24h: 120_000, Sells24h: 118_000},
	stablecoinDAISymbol:  {MarketCap: 5_300_000_000, Fdv: 5_300_000_000, Volume24h: 150_000_000, LiquidityUsd: 4_000_000, Buys24h: 9_000, Sells24h: 8_800},
}

// ValidatedPair is a raw pair that passed chain-match and price/liquidity
// checks, carrying its parsed and normalized USD price. Backfilled pairs had
// sparse stablecoin data substituted from the static defaults; a Synthetic
// pair was built entirely from them.
type ValidatedPair struct {
	entity.PairData
	NormalizedPriceUsd float64
	IsStablecoin       bool
	Backfilled         bool
	Synthetic          bool
	Warnings           []string
}

// PairValidator reduces a raw pair list to the subset usable for a target
// chain, enforcing data-quality floors. It holds no mutable state and is
// safe for concurrent use.
type PairValidator struct {
	logger *zap.Logger
}

// NewPairValidator creates a new PairValidator.
func NewPairValidator(logger *zap.Logger) *PairValidator {
	return &PairValidator{logger: logger.Named("PairValidator")}
}

// FilterValidPairs returns the pairs matching the target chain that pass
// price sanity and the per-(chain, isStablecoin) liquidity floor. Sparse
// stablecoin pairs are backfilled from static defaults instead of rejected;
// if nothing survives but at least one stablecoin pair existed on the chain,
// a single synthetic pair pinned to $1 is returned. An empty result means
// "analysis unavailable", never an error.
func (v *PairValidator) FilterValidPairs(pairs []entity.PairData, chain domainentity.ChainDefinition) []ValidatedPair {
	var validated []ValidatedPair
	var firstStablecoin *entity.PairData

	for i := range pairs {
		p := pairs[i]
		if !chain.MatchesChainID(p.ChainID) {
			continue
		}

		symbol := strings.ToUpper(strings.TrimSpace(p.BaseToken.Symbol))
		isStable := IsStablecoin(symbol)
		if isStable && firstStablecoin == nil {
			firstStablecoin = &pairs[i]
		}

		price, priceOK := parsePriceUsd(p.PriceUsd)
		if priceOK {
			price = NormalizePrice(price, symbol)
			if !priceWithinBounds(price, symbol) {
				// Actively wrong data, not merely missing. Rejected even for
				// stablecoins; backfill is reserved for sparse feeds.
				v.logger.Debug("Rejecting pair with out-of-range price",
					zap.String("pairAddress", p.PairAddress),
					zap.String("symbol", symbol),
					zap.Float64("normalizedPrice", price))
				continue
			}
		}

		floor := chain.LiquidityFloor(isStable)
		hasLiquidity := p.Liquidity != nil && p.Liquidity.Usd != nil
		liquidityOK := hasLiquidity && p.LiquidityUsd() >= floor

		if priceOK && liquidityOK {
			validated = append(validated, ValidatedPair{
				PairData:           p,
				NormalizedPriceUsd: price,
				IsStablecoin:       isStable,
			})
			continue
		}

		if !isStable {
			v.logger.Debug("Rejecting pair below data-quality floor",
				zap.String("pairAddress", p.PairAddress),
				zap.String("symbol", symbol),
				zap.Bool("priceOK", priceOK),
				zap.Bool("hasLiquidity", hasLiquidity),
				zap.Float64("liquidityUsd", p.LiquidityUsd()),
				zap.Float64("floor", floor))
			continue
		}

		validated = append(validated, v.backfillStablecoin(p, symbol, price, priceOK, hasLiquidity, floor))
	}

	if len(validated) == 0 && firstStablecoin != nil {
		v.logger.Info("No pairs survived validation, falling back to synthetic stablecoin pair",
			zap.String("chain", chain.ID),
			zap.String("symbol", firstStablecoin.BaseToken.Symbol))
		return []ValidatedPair{v.syntheticStablecoinPair(*firstStablecoin, chain)}
	}
	return validated
}

// backfillStablecoin substitutes the static per-symbol bundle into a
// stablecoin pair whose feed data was missing or below threshold.
func (v *PairValidator) backfillStablecoin(p entity.PairData, symbol string, price float64, priceOK, hasLiquidity bool, floor float64) ValidatedPair {
	defaults := stablecoinDefaultBundles[symbol]

	var warnings []string
	if !hasLiquidity {
		warnings = append(warnings, fmt.Sprintf("%s pair %s reported no liquidity; stablecoin defaults substituted", symbol, p.PairAddress))
	} else {
		warnings = append(warnings, fmt.Sprintf("%s pair %s liquidity $%.0f below floor $%.0f; stablecoin defaults substituted", symbol, p.PairAddress, p.LiquidityUsd(), floor))
	}
	if !priceOK {
		price = 1.0
		p.PriceUsd = syntheticPriceUsd
	} else {
		p.PriceUsd = strconv.FormatFloat(price, 'f', -1, 64)
	}

	liq := defaults.LiquidityUsd
	vol := defaults.Volume24h
	mcap := defaults.MarketCap
	fdv := defaults.Fdv
	p.Liquidity = &entity.DEXLiquidity{Usd: &liq}
	p.Volume = &entity.PairVolume{H24: &vol}
	p.MarketCap = &mcap
	p.Fdv = &fdv
	p.Txns = &entity.PairTxns{H24: &entity.TxnSummary{Buys: defaults.Buys24h, Sells: defaults.Sells24h}}

	v.logger.Debug("Backfilled sparse stablecoin pair from defaults",
		zap.String("pairAddress", p.PairAddress),
		zap.String("symbol", symbol))

	return ValidatedPair{
		PairData:           p,
		NormalizedPriceUsd: price,
		IsStablecoin:       true,
		Backfilled:         true,
		Warnings:           warnings,
	}
}

// syntheticStablecoinPair builds a pair entirely from static defaults,
// keeping only the token identity of the observed stablecoin pair. The price
// is pinned to $1.
func (v *PairValidator) syntheticStablecoinPair(seed entity.PairData, chain domainentity.ChainDefinition) ValidatedPair {
	symbol := strings.ToUpper(strings.TrimSpace(seed.BaseToken.Symbol))
	defaults := stablecoinDefaultBundles[symbol]

	liq := defaults.LiquidityUsd
	vol := defaults.Volume24h
	mcap := defaults.MarketCap
	fdv := defaults.Fdv
	p := entity.PairData{
		ChainID:     chain.ID,
		DexID:       seed.DexID,
		PairAddress: seed.PairAddress,
		BaseToken:   seed.BaseToken,
		QuoteToken:  seed.QuoteToken,
		PriceUsd:    syntheticPriceUsd,
		Liquidity:   &entity.DEXLiquidity{Usd: &liq},
		Volume:      &entity.PairVolume{H24: &vol},
		MarketCap:   &mcap,
		Fdv:         &fdv,
		Txns:        &entity.PairTxns{H24: &entity.TxnSummary{Buys: defaults.Buys24h, Sells: defaults.Sells24h}},
	}

	return ValidatedPair{
		PairData:           p,
		NormalizedPriceUsd: 1.0,
		IsStablecoin:       true,
		Backfilled:         true,
		Synthetic:          true,
		Warnings:           []string{fmt.Sprintf("no %s pair passed validation on %s; synthetic pair built from stablecoin defaults", symbol, chain.ID)},
	}
}

// parsePriceUsd parses a raw price string into a positive finite float.
func parsePriceUsd(s string) (float64, bool) {
	price, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, false
	}
	return price, true
}

// priceWithinBounds checks the global sanity bounds plus the symbol-specific
// range when one is known.
func priceWithinBounds(price float64, symbol string) bool {
	if price < globalMinPrice || price > globalMaxPrice {
		return false
	}
	if r, ok := symbolPriceRanges[symbol]; ok {
		return price >= r.Min && price <= r.Max
	}
	return true
}
