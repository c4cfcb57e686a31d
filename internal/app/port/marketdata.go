package port

import (
	"context"

	domainentity "token_analyzer/internal/domain/entity"
	"token_analyzer/internal/entity"
)

// MarketDataSource is the external aggregator that returns raw trading-pair
// records for a token contract. An empty slice with a nil error is a valid
// "no data" response; implementations must not turn it into an error.
type MarketDataSource interface {
	GetTokenPairs(ctx context.Context, tokenAddress string) ([]entity.PairData, error)
}

// HistoricalDataSource supplies OHLCV candles for a pair. The analysis
// builder treats this lookup as best-effort: failures degrade the all-time
// high fields to "unknown" instead of failing the whole analysis.
type HistoricalDataSource interface {
	GetCandles(ctx context.Context, chain domainentity.ChainDefinition, pairAddress string) ([]entity.Candle, error)
}

// TransactionSource returns the chronological fill history for a wallet and
// token. The shipped implementation is simulated; a real deployment swaps in
// an on-chain indexer behind the same interface.
type TransactionSource interface {
	GetTransactions(ctx context.Context, walletAddress, tokenAddress, chainID string) ([]domainentity.Transaction, error)
}
