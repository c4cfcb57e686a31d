package entity

import "time"

// TokenAnalysis is the assembled market snapshot for one token on one chain.
// It is built from the best validated pair; all monetary fields have already
// passed price normalization. PriceUsd is always > 0 when the analysis is
// non-nil.
type TokenAnalysis struct {
	ChainID        string             `json:"chainId"`
	Symbol         string             `json:"symbol"`
	Name           string             `json:"name"`
	TokenAddress   string             `json:"tokenAddress"`
	PairAddress    string             `json:"pairAddress,omitempty"`
	DexID          string             `json:"dexId,omitempty"`
	PriceUsd       float64            `json:"priceUsd"`
	PriceChange1h  float64            `json:"priceChange1h"`
	PriceChange24h float64            `json:"priceChange24h"`
	Liquidity      LiquidityInfo      `json:"liquidity"`
	Volume         VolumeInfo         `json:"volume"`
	Transactions   *TxnCounts         `json:"transactions,omitempty"`
	Fdv            *float64           `json:"fdv,omitempty"`
	MarketCap      *float64           `json:"marketCap,omitempty"`
	AllTimeHigh    *float64           `json:"allTimeHigh,omitempty"`
	AllTimeHighAgo string             `json:"allTimeHighAgo"` // recency label, "unknown" when no history
	Age            string             `json:"age"`            // descriptor, "unknown" when no creation data
	Differential   *PriceDifferential `json:"priceDifferential,omitempty"`
	Warnings       []string           `json:"warnings,omitempty"` // advisory data-quality signals, never fatal
	FetchedAt      time.Time          `json:"fetchedAt"`
}

// LiquidityInfo carries the pool liquidity of the selected pair. Nil fields
// mean the upstream feed did not report the figure.
type LiquidityInfo struct {
	Usd       *float64 `json:"usd,omitempty"`
	Change24h *float64 `json:"change24h,omitempty"`
}

// VolumeInfo carries trading volume over the reported windows.
type VolumeInfo struct {
	H1  *float64 `json:"h1,omitempty"`
	H6  *float64 `json:"h6,omitempty"`
	H24 *float64 `json:"h24,omitempty"`
}

// TxnCounts carries 24h fill counts for the selected pair.
type TxnCounts struct {
	Buys24h  int `json:"buys24h"`
	Sells24h int `json:"sells24h"`
}

// PriceDifferential is the cross-exchange spread over all validated pairs.
// It is only present when more than one pair survived validation; the spread
// of a single-pair set is undefined, not zero.
type PriceDifferential struct {
	MaxPrice      float64 `json:"maxPrice"`
	MinPrice      float64 `json:"minPrice"`
	MaxDex        string  `json:"maxDex"`
	MinDex        string  `json:"minDex"`
	SpreadPercent float64 `json:"spreadPercent"`
}

// KnownToken is a well-known contract loaded from the token registry file,
// used by the status board and symbol lookups.
type KnownToken struct {
	ChainID string `json:"chainId"`
	Address string `json:"address"`
	Symbol  string `json:"symbol"`
	Name    string `json:"name"`
}
