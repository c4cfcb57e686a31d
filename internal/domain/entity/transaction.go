package entity

import "time"

// TradeDirection is the signed direction of a fill.
type TradeDirection string

const (
	// TradeBuy marks a fill that acquired tokens.
	TradeBuy TradeDirection = "buy"
	// TradeSell marks a fill that disposed of tokens.
	TradeSell TradeDirection = "sell"
)

// Transaction is one fill for a wallet/token pair as delivered by the
// transaction source. Amount and PriceUsd are decimal strings so that a
// malformed record can be dropped during aggregation instead of corrupting
// the whole computation.
type Transaction struct {
	ID            string         `json:"id"`
	WalletAddress string         `json:"walletAddress"`
	TokenAddress  string         `json:"tokenAddress"`
	ChainID       string         `json:"chainId"`
	Direction     TradeDirection `json:"direction"`
	Amount        string         `json:"amount"`   // token quantity, non-negative decimal
	PriceUsd      string         `json:"priceUsd"` // unit price at execution time
	Timestamp     time.Time      `json:"timestamp"`
}
