package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"token_analyzer/internal/app/port"
	domainentity "token_analyzer/internal/domain/entity"
	"token_analyzer/pkg/metrics"

	"go.uber.org/zap"
)

// PnLServiceImpl computes wallet profit/loss reports by combining the fill
// history from the transaction source with the live price from the analysis
// service.
type PnLServiceImpl struct {
	txSource port.TransactionSource
	analysis port.TokenAnalysisService
	logger   *zap.Logger
}

// NewPnLService creates a PnLServiceImpl.
func NewPnLService(txSource port.TransactionSource, analysis port.TokenAnalysisService, logger *zap.Logger) *PnLServiceImpl {
	return &PnLServiceImpl{
		txSource: txSource,
		analysis: analysis,
		logger:   logger.Named("PnLService"),
	}
}

var _ port.PnLService = (*PnLServiceImpl)(nil)

// AnalyzeWallet implements port.PnLService.
func (s *PnLServiceImpl) AnalyzeWallet(ctx context.Context, walletAddress, tokenAddress string, chain domainentity.ChainDefinition) (*domainentity.PnLResult, error) {
	txs, err := s.txSource.GetTransactions(ctx, walletAddress, tokenAddress, chain.ID)
	if err != nil {
		metrics.PnLComputationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("fetching transactions for wallet %s: %w", walletAddress, err)
	}
	if len(txs) == 0 {
		metrics.PnLComputationsTotal.WithLabelValues("no_data").Inc()
		s.logger.Info("Wallet has no fill history for token",
			zap.String("walletAddress", walletAddress),
			zap.String("tokenAddress", tokenAddress))
		return nil, nil
	}

	tokenAnalysis, err := s.analysis.BuildAnalysis(ctx, tokenAddress, chain)
	if err != nil {
		metrics.PnLComputationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("pricing token %s: %w", tokenAddress, err)
	}
	if tokenAnalysis == nil {
		metrics.PnLComputationsTotal.WithLabelValues("no_data").Inc()
		s.logger.Info("No current price obtainable, skipping P&L",
			zap.String("tokenAddress", tokenAddress),
			zap.String("chain", chain.ID))
		return nil, nil
	}

	result := ComputePnL(txs, tokenAnalysis.PriceUsd)
	if result == nil {
		metrics.PnLComputationsTotal.WithLabelValues("no_data").Inc()
		s.logger.Warn("Every fill in the wallet history was malformed",
			zap.String("walletAddress", walletAddress),
			zap.Int("fills", len(txs)))
		return nil, nil
	}
	metrics.PnLComputationsTotal.WithLabelValues("ok").Inc()
	return result, nil
}

// ComputePnL aggregates a fill history into a blended-cost P&L report against
// the given current price. Malformed fills (unparseable or negative amount or
// price) are dropped and counted, never zero-filled. Returns nil when there
// are no fills, no parseable fills, or the current price is not positive.
func ComputePnL(txs []domainentity.Transaction, currentPrice float64) *domainentity.PnLResult {
	if len(txs) == 0 || currentPrice <= 0 || math.IsNaN(currentPrice) || math.IsInf(currentPrice, 0) {
		return nil
	}

	result := &domainentity.PnLResult{CurrentPrice: currentPrice}
	var totalBoughtValue, totalSoldValue float64

	for i := range txs {
		amount, amountOK := parseFillNumber(txs[i].Amount)
		price, priceOK := parseFillNumber(txs[i].PriceUsd)
		if !amountOK || !priceOK {
			result.DroppedFills++
			continue
		}

		switch txs[i].Direction {
		case domainentity.TradeBuy:
			result.TotalBought += amount
			totalBoughtValue += amount * price
			result.BuyCount++
		case domainentity.TradeSell:
			result.TotalSold += amount
			totalSoldValue += amount * price
			result.SellCount++
		default:
			result.DroppedFills++
		}
	}

	if result.BuyCount == 0 && result.SellCount == 0 {
		return nil
	}
	if result.DroppedFills > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"%d of %d fills were malformed and excluded", result.DroppedFills, len(txs)))
	}

	if result.TotalBought > 0 {
		result.AverageBuyPrice = totalBoughtValue / result.TotalBought
	}
	if result.TotalSold > 0 {
		result.AverageSellPrice = totalSoldValue / result.TotalSold
	}

	result.CurrentHoldings = result.TotalBought - result.TotalSold
	result.RealizedPnL = totalSoldValue - result.TotalSold*result.AverageBuyPrice
	result.UnrealizedPnL = result.CurrentHoldings * (currentPrice - result.AverageBuyPrice)

	if result.CurrentHoldings < 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"sold %.6f more tokens than recorded bought; history is likely incomplete",
			-result.CurrentHoldings))
	}
	return result
}

// parseFillNumber parses a decimal string into a non-negative finite float.
func parseFillNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}
