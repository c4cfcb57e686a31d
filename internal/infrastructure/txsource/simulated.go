package txsource

import (
	"context"
	"encoding/binary"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"token_analyzer/internal/app/port"
	domainentity "token_analyzer/internal/domain/entity"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SimulatedSource generates a plausible fill history for a wallet/token
// pair. It stands in for a real on-chain indexer behind the
// port.TransactionSource interface; histories are deterministic per
// (wallet, token) because the RNG is seeded from a keccak hash of both
// addresses, so repeated queries for the same wallet return the same
// trades.
type SimulatedSource struct {
	logger   *zap.Logger
	minFills int
	maxFills int
}

// NewSimulatedSource creates a simulated transaction source producing
// between minFills and maxFills trades per wallet/token pair.
func NewSimulatedSource(logger *zap.Logger, minFills, maxFills int) *SimulatedSource {
	if minFills <= 0 {
		minFills = 4
	}
	if maxFills < minFills {
		maxFills = minFills + 12
	}
	return &SimulatedSource{
		logger:   logger.Named("SimulatedTransactionSource"),
		minFills: minFills,
		maxFills: maxFills,
	}
}

var _ port.TransactionSource = (*SimulatedSource)(nil)

// GetTransactions implements port.TransactionSource. Roughly one in eight
// wallet/token pairs comes back empty so the "no transaction history" path
// stays exercised end to end.
func (s *SimulatedSource) GetTransactions(_ context.Context, walletAddress, tokenAddress, chainID string) ([]domainentity.Transaction, error) {
	seed := crypto.Keccak256([]byte(strings.ToLower(walletAddress) + ":" + strings.ToLower(tokenAddress)))
	rng := rand.New(rand.NewSource(int64(binary.BigEndian.Uint64(seed[:8])))) //nolint:gosec // simulated data, not security sensitive

	if rng.Intn(8) == 0 {
		s.logger.Debug("Simulated wallet has no history for token",
			zap.String("walletAddress", walletAddress),
			zap.String("tokenAddress", tokenAddress))
		return nil, nil
	}

	fills := s.minFills + rng.Intn(s.maxFills-s.minFills+1)
	basePrice := 0.0005 * (1 + rng.Float64()*200) // entry price somewhere between ~$0.0005 and ~$0.1
	price := basePrice
	holdings := 0.0
	start := time.Now().Add(-time.Duration(30+rng.Intn(300)) * 24 * time.Hour)
	step := time.Duration(6+rng.Intn(72)) * time.Hour

	txs := make([]domainentity.Transaction, 0, fills)
	for i := 0; i < fills; i++ {
		// Random walk with mild upward drift: ±15% per step.
		price *= 1 + (rng.Float64()-0.45)*0.3

		direction := domainentity.TradeBuy
		// Sells only once something is held, and less often than buys.
		if holdings > 0 && rng.Float64() < 0.4 {
			direction = domainentity.TradeSell
		}

		amount := 100 + rng.Float64()*5000
		if direction == domainentity.TradeSell && amount > holdings {
			amount = holdings * (0.3 + rng.Float64()*0.7)
		}
		if direction == domainentity.TradeBuy {
			holdings += amount
		} else {
			holdings -= amount
		}

		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return nil, err
		}

		txs = append(txs, domainentity.Transaction{
			ID:            id.String(),
			WalletAddress: walletAddress,
			TokenAddress:  tokenAddress,
			ChainID:       chainID,
			Direction:     direction,
			Amount:        strconv.FormatFloat(amount, 'f', 6, 64),
			PriceUsd:      strconv.FormatFloat(price, 'f', -1, 64),
			Timestamp:     start.Add(time.Duration(i) * step),
		})
	}

	s.logger.Debug("Generated simulated transaction history",
		zap.String("walletAddress", walletAddress),
		zap.String("tokenAddress", tokenAddress),
		zap.Int("fills", len(txs)))
	return txs, nil
}
