package service

import (
	domainentity "token_analyzer/internal/domain/entity"

	"go.uber.org/zap"
)

// BestPairResult is the outcome of ranking validated pairs.
type BestPairResult struct {
	Best ValidatedPair
	// Differential is present only when more than one validated pair
	// exists; the spread of a single-pair set is undefined, not zero.
	Differential *domainentity.PriceDifferential
}

// PairSelector ranks validated pairs and computes the cross-exchange price
// spread. Stateless and safe for concurrent use.
type PairSelector struct {
	logger *zap.Logger
}

// NewPairSelector creates a new PairSelector.
func NewPairSelector(logger *zap.Logger) *PairSelector {
	return &PairSelector{logger: logger.Named("PairSelector")}
}

// SelectBestPair picks the pair with the highest liquidity+volume score.
// Ties keep the first-encountered pair, so re-running on the same input
// yields the same result. ok is false for an empty input.
func (s *PairSelector) SelectBestPair(pairs []ValidatedPair) (result BestPairResult, ok bool) {
	if len(pairs) == 0 {
		return BestPairResult{}, false
	}

	best := 0
	bestScore := pairScore(&pairs[0])
	for i := 1; i < len(pairs); i++ {
		if score := pairScore(&pairs[i]); score > bestScore {
			best = i
			bestScore = score
		}
	}
	result.Best = pairs[best]

	if len(pairs) > 1 {
		result.Differential = s.priceDifferential(pairs)
	}

	s.logger.Debug("Selected best pair",
		zap.String("pairAddress", result.Best.PairAddress),
		zap.String("dexId", result.Best.DexID),
		zap.Float64("score", bestScore))
	return result, true
}

// pairScore is the composite ranking: pool liquidity plus 24h volume, with
// absent figures counted as 0 for comparison only.
func pairScore(p *ValidatedPair) float64 {
	return p.LiquidityUsd() + p.Volume24h()
}

// priceDifferential computes the max/min normalized price over all validated
// pairs and which exchange produced each extreme.
func (s *PairSelector) priceDifferential(pairs []ValidatedPair) *domainentity.PriceDifferential {
	diff := &domainentity.PriceDifferential{
		MaxPrice: pairs[0].NormalizedPriceUsd,
		MinPrice: pairs[0].NormalizedPriceUsd,
		MaxDex:   pairs[0].DexID,
		MinDex:   pairs[0].DexID,
	}
	for i := 1; i < len(pairs); i++ {
		price := pairs[i].NormalizedPriceUsd
		if price > diff.MaxPrice {
			diff.MaxPrice = price
			diff.MaxDex = pairs[i].DexID
		}
		if price < diff.MinPrice {
			diff.MinPrice = price
			diff.MinDex = pairs[i].DexID
		}
	}
	if diff.MinPrice > 0 {
		diff.SpreadPercent = (diff.MaxPrice - diff.MinPrice) / diff.MinPrice * 100
	}
	return diff
}
