package entity

// TokenPairsResponse is the wrapped form of a DEX Screener token lookup.
// Some endpoints return {"pairs": [...]}, others return a bare array; the
// client handles both.
type TokenPairsResponse struct {
	SchemaVersion string     `json:"schemaVersion"`
	Pair          *PairData  `json:"pair"`
	Pairs         []PairData `json:"pairs"`
}

// PairData contains detailed information about a single trading pair.
// Optional numeric fields are pointers: a nil value means the feed did not
// report the figure, which is not the same as the figure being zero.
type PairData struct {
	ChainID       string           `json:"chainId"`
	DexID         string           `json:"dexId"`
	URL           string           `json:"url"`
	PairAddress   string           `json:"pairAddress"`
	BaseToken     DEXToken         `json:"baseToken"`
	QuoteToken    DEXToken         `json:"quoteToken"`
	PriceNative   string           `json:"priceNative"`
	PriceUsd      string           `json:"priceUsd"`
	Txns          *PairTxns        `json:"txns,omitempty"`
	Volume        *PairVolume      `json:"volume,omitempty"`
	PriceChange   *PairPriceChange `json:"priceChange,omitempty"`
	Liquidity     *DEXLiquidity    `json:"liquidity,omitempty"`
	Fdv           *float64         `json:"fdv,omitempty"`
	MarketCap     *float64         `json:"marketCap,omitempty"`
	PairCreatedAt int64            `json:"pairCreatedAt,omitempty"` // unix ms
	ListedAt      int64            `json:"listedAt,omitempty"`      // unix ms
}

// DEXToken represents one side of a trading pair.
type DEXToken struct {
	Address   string `json:"address"`
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	CreatedAt int64  `json:"createdAt,omitempty"` // unix ms
}

// DEXLiquidity represents the liquidity information for a pair.
type DEXLiquidity struct {
	Usd   *float64 `json:"usd,omitempty"`
	H24   *float64 `json:"h24,omitempty"` // 24h change percent, when reported
	Base  float64  `json:"base"`
	Quote float64  `json:"quote"`
}

// PairTxns represents transaction counts for a pair over several windows.
type PairTxns struct {
	M5  *TxnSummary `json:"m5,omitempty"`
	H1  *TxnSummary `json:"h1,omitempty"`
	H6  *TxnSummary `json:"h6,omitempty"`
	H24 *TxnSummary `json:"h24,omitempty"`
}

// TxnSummary contains buy and sell counts.
type TxnSummary struct {
	Buys  int `json:"buys"`
	Sells int `json:"sells"`
}

// PairVolume represents trading volume over different periods.
type PairVolume struct {
	M5  *float64 `json:"m5,omitempty"`
	H1  *float64 `json:"h1,omitempty"`
	H6  *float64 `json:"h6,omitempty"`
	H24 *float64 `json:"h24,omitempty"`
}

// PairPriceChange represents price change percentage over different periods.
type PairPriceChange struct {
	M5  *float64 `json:"m5,omitempty"`
	H1  *float64 `json:"h1,omitempty"`
	H6  *float64 `json:"h6,omitempty"`
	H24 *float64 `json:"h24,omitempty"`
}

// LiquidityUsd returns the reported pool liquidity, defaulting to 0 for
// comparison purposes when the feed omitted it.
func (p *PairData) LiquidityUsd() float64 {
	if p.Liquidity == nil || p.Liquidity.Usd == nil {
		return 0
	}
	return *p.Liquidity.Usd
}

// Volume24h returns the reported 24h volume, defaulting to 0 for comparison
// purposes when the feed omitted it.
func (p *PairData) Volume24h() float64 {
	if p.Volume == nil || p.Volume.H24 == nil {
		return 0
	}
	return *p.Volume.H24
}

// Candle is one OHLCV record from the historical-data source.
type Candle struct {
	Timestamp int64 // unix seconds
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}
