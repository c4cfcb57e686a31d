package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"token_analyzer/internal/app/port"
	domainentity "token_analyzer/internal/domain/entity"
	"token_analyzer/internal/pkg/utils"
	"token_analyzer/pkg/metrics"

	"go.uber.org/zap"
)

// Advisory thresholds for trading-quality warnings. Crossing one adds a
// warning to the analysis; it never rejects the pair.
const (
	suspiciousSpreadPercent = 25.0
	suspiciousVolLiqRatio   = 50.0
	suspiciousTxnImbalance  = 5.0
	unknownLabel            = "unknown"
	allTimeHighJustNowLabel = "just now"
)

// ChainResolver maps raw upstream chain identifiers to supported chain
// definitions.
type ChainResolver interface {
	Resolve(raw string) (domainentity.ChainDefinition, bool)
}

// TokenAnalysisServiceImpl assembles a TokenAnalysis from raw upstream pairs:
// validate, pick the best pair, enrich with history and age, cache the result.
type TokenAnalysisServiceImpl struct {
	marketData port.MarketDataSource
	historical port.HistoricalDataSource
	cache      port.AnalysisCache
	chains     ChainResolver
	validator  *PairValidator
	selector   *PairSelector
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewTokenAnalysisService creates a TokenAnalysisServiceImpl. historical may
// be nil, which disables the all-time-high lookup.
func NewTokenAnalysisService(
	marketData port.MarketDataSource,
	historical port.HistoricalDataSource,
	cache port.AnalysisCache,
	chains ChainResolver,
	validator *PairValidator,
	selector *PairSelector,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *TokenAnalysisServiceImpl {
	return &TokenAnalysisServiceImpl{
		marketData: marketData,
		historical: historical,
		cache:      cache,
		chains:     chains,
		validator:  validator,
		selector:   selector,
		cacheTTL:   cacheTTL,
		logger:     logger.Named("TokenAnalysisService"),
	}
}

var _ port.TokenAnalysisService = (*TokenAnalysisServiceImpl)(nil)

// BuildAnalysis implements port.TokenAnalysisService.
func (s *TokenAnalysisServiceImpl) BuildAnalysis(ctx context.Context, tokenAddress string, chain domainentity.ChainDefinition) (*domainentity.TokenAnalysis, error) {
	cacheKey := strings.ToLower(chain.ID + ":" + tokenAddress)
	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		metrics.CacheEventsTotal.WithLabelValues("hit").Inc()
		s.logger.Debug("Returning cached analysis", zap.String("cacheKey", cacheKey))
		return cached, nil
	}
	metrics.CacheEventsTotal.WithLabelValues("miss").Inc()

	started := time.Now()
	defer func() {
		metrics.AnalysisDurationSeconds.Observe(time.Since(started).Seconds())
	}()

	pairs, err := s.marketData.GetTokenPairs(ctx, tokenAddress)
	if err != nil {
		metrics.AnalysisRequestsTotal.WithLabelValues(chain.ID, "error").Inc()
		return nil, fmt.Errorf("fetching pairs for %s: %w", tokenAddress, err)
	}
	if len(pairs) == 0 {
		metrics.AnalysisRequestsTotal.WithLabelValues(chain.ID, "no_data").Inc()
		s.logger.Info("Token has no pairs upstream",
			zap.String("tokenAddress", tokenAddress),
			zap.String("chain", chain.ID))
		return nil, nil
	}

	validated := s.validator.FilterValidPairs(pairs, chain)
	if len(validated) == 0 {
		metrics.AnalysisRequestsTotal.WithLabelValues(chain.ID, "no_data").Inc()
		s.logger.Info("No pairs survived validation",
			zap.String("tokenAddress", tokenAddress),
			zap.String("chain", chain.ID),
			zap.Int("rawPairs", len(pairs)))
		return nil, nil
	}

	selection, _ := s.selector.SelectBestPair(validated)
	analysis := s.assembleAnalysis(ctx, tokenAddress, chain, selection, validated)

	s.cache.Set(ctx, cacheKey, analysis, s.cacheTTL)
	metrics.AnalysisRequestsTotal.WithLabelValues(chain.ID, "ok").Inc()
	return analysis, nil
}

// DetectChain implements port.TokenAnalysisService. The contract's pairs are
// ranked by score and the first one whose chain identifier resolves to a
// supported chain wins.
func (s *TokenAnalysisServiceImpl) DetectChain(ctx context.Context, tokenAddress string) (domainentity.ChainDefinition, bool, error) {
	pairs, err := s.marketData.GetTokenPairs(ctx, tokenAddress)
	if err != nil {
		return domainentity.ChainDefinition{}, false, fmt.Errorf("fetching pairs for %s: %w", tokenAddress, err)
	}

	var (
		best      domainentity.ChainDefinition
		bestScore = -1.0
	)
	for i := range pairs {
		chain, ok := s.chains.Resolve(pairs[i].ChainID)
		if !ok {
			continue
		}
		if score := pairs[i].LiquidityUsd() + pairs[i].Volume24h(); score > bestScore {
			best = chain
			bestScore = score
		}
	}
	if bestScore < 0 {
		s.logger.Info("Token trades on no supported chain",
			zap.String("tokenAddress", tokenAddress),
			zap.Int("rawPairs", len(pairs)))
		return domainentity.ChainDefinition{}, false, nil
	}
	s.logger.Debug("Detected chain for token",
		zap.String("tokenAddress", tokenAddress),
		zap.String("chain", best.ID))
	return best, true, nil
}

func (s *TokenAnalysisServiceImpl) assembleAnalysis(
	ctx context.Context,
	tokenAddress string,
	chain domainentity.ChainDefinition,
	selection BestPairResult,
	validated []ValidatedPair,
) *domainentity.TokenAnalysis {
	best := selection.Best

	analysis := &domainentity.TokenAnalysis{
		ChainID:        chain.ID,
		Symbol:         best.BaseToken.Symbol,
		Name:           best.BaseToken.Name,
		TokenAddress:   tokenAddress,
		PairAddress:    best.PairAddress,
		DexID:          best.DexID,
		PriceUsd:       best.NormalizedPriceUsd,
		AllTimeHighAgo: unknownLabel,
		Age:            unknownLabel,
		Differential:   selection.Differential,
		FetchedAt:      time.Now().UTC(),
	}

	if best.PriceChange != nil {
		if best.PriceChange.H1 != nil {
			analysis.PriceChange1h = *best.PriceChange.H1
		}
		if best.PriceChange.H24 != nil {
			analysis.PriceChange24h = *best.PriceChange.H24
		}
	}
	if best.Liquidity != nil {
		analysis.Liquidity = domainentity.LiquidityInfo{
			Usd:       best.Liquidity.Usd,
			Change24h: best.Liquidity.H24,
		}
	}
	if best.Volume != nil {
		analysis.Volume = domainentity.VolumeInfo{
			H1:  best.Volume.H1,
			H6:  best.Volume.H6,
			H24: best.Volume.H24,
		}
	}
	if best.Txns != nil && best.Txns.H24 != nil {
		analysis.Transactions = &domainentity.TxnCounts{
			Buys24h:  best.Txns.H24.Buys,
			Sells24h: best.Txns.H24.Sells,
		}
	}
	analysis.Fdv = best.Fdv
	analysis.MarketCap = best.MarketCap

	for i := range validated {
		analysis.Warnings = append(analysis.Warnings, validated[i].Warnings...)
	}
	analysis.Warnings = append(analysis.Warnings, s.tradingQualityWarnings(analysis)...)

	s.attachAllTimeHigh(ctx, chain, analysis, best)
	s.attachAge(analysis, best)
	return analysis
}

// tradingQualityWarnings flags market conditions that often accompany
// manipulated or dying tokens.
func (s *TokenAnalysisServiceImpl) tradingQualityWarnings(a *domainentity.TokenAnalysis) []string {
	var warnings []string

	if a.Differential != nil && a.Differential.SpreadPercent > suspiciousSpreadPercent {
		warnings = append(warnings, fmt.Sprintf(
			"cross-exchange spread %.1f%% (%s vs %s) exceeds %.0f%%; price discovery may be unreliable",
			a.Differential.SpreadPercent, a.Differential.MinDex, a.Differential.MaxDex, suspiciousSpreadPercent))
	}

	if a.Liquidity.Usd != nil && *a.Liquidity.Usd > 0 && a.Volume.H24 != nil {
		if ratio := *a.Volume.H24 / *a.Liquidity.Usd; ratio > suspiciousVolLiqRatio {
			warnings = append(warnings, fmt.Sprintf(
				"24h volume is %.0fx pool liquidity; possible wash trading", ratio))
		}
	}

	if a.Transactions != nil && a.Transactions.Buys24h > 0 && a.Transactions.Sells24h > 0 {
		buys := float64(a.Transactions.Buys24h)
		sells := float64(a.Transactions.Sells24h)
		switch {
		case buys/sells > suspiciousTxnImbalance:
			warnings = append(warnings, fmt.Sprintf(
				"buy/sell ratio %.1f:1 over 24h; one-sided flow", buys/sells))
		case sells/buys > suspiciousTxnImbalance:
			warnings = append(warnings, fmt.Sprintf(
				"sell/buy ratio %.1f:1 over 24h; one-sided flow", sells/buys))
		}
	}
	return warnings
}

// attachAllTimeHigh fills the ATH fields from daily candles, best effort.
// When the live price tops the history the live price is the ATH.
func (s *TokenAnalysisServiceImpl) attachAllTimeHigh(ctx context.Context, chain domainentity.ChainDefinition, a *domainentity.TokenAnalysis, best ValidatedPair) {
	if s.historical == nil || best.Synthetic {
		return
	}

	candles, err := s.historical.GetCandles(ctx, chain, best.PairAddress)
	if err != nil {
		s.logger.Warn("Candle lookup failed, leaving all-time high unknown",
			zap.String("pairAddress", best.PairAddress),
			zap.Error(err))
		return
	}
	if len(candles) == 0 {
		return
	}

	maxHigh := candles[0].High
	maxAt := candles[0].Timestamp
	for _, c := range candles[1:] {
		if c.High > maxHigh {
			maxHigh = c.High
			maxAt = c.Timestamp
		}
	}

	if a.PriceUsd >= maxHigh {
		ath := a.PriceUsd
		a.AllTimeHigh = &ath
		a.AllTimeHighAgo = allTimeHighJustNowLabel
		return
	}
	a.AllTimeHigh = &maxHigh
	a.AllTimeHighAgo = utils.FormatTimeAgo(time.Unix(maxAt, 0), time.Now())
}

// attachAge derives the token age from the earliest creation signal the feed
// reported for the selected pair.
func (s *TokenAnalysisServiceImpl) attachAge(a *domainentity.TokenAnalysis, best ValidatedPair) {
	earliest := int64(0)
	for _, ms := range []int64{best.BaseToken.CreatedAt, best.PairCreatedAt, best.ListedAt} {
		if ms > 0 && (earliest == 0 || ms < earliest) {
			earliest = ms
		}
	}
	if earliest == 0 {
		return
	}
	a.Age = utils.AgeDescriptor(time.Since(time.UnixMilli(earliest)))
}
