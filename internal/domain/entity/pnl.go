package entity

// PnLResult aggregates a wallet's fill history for one token into cost-basis
// and profit/loss metrics using blended-cost accounting: sold units are
// valued at the overall volume-weighted average buy price, not FIFO lots.
//
// AverageBuyPrice and AverageSellPrice are 0 when no fills exist on that
// side; callers must treat 0 as "undefined", not as a real price.
// CurrentHoldings can go negative when the upstream feed is inconsistent
// (more sold than bought); it is surfaced as-is with a warning because
// clamping would hide the feed bug.
type PnLResult struct {
	TotalBought      float64  `json:"totalBought"`
	TotalSold        float64  `json:"totalSold"`
	AverageBuyPrice  float64  `json:"averageBuyPrice"`
	AverageSellPrice float64  `json:"averageSellPrice"`
	CurrentHoldings  float64  `json:"currentHoldings"`
	RealizedPnL      float64  `json:"realizedPnL"`
	UnrealizedPnL    float64  `json:"unrealizedPnL"`
	CurrentPrice     float64  `json:"currentPrice"`
	BuyCount         int      `json:"buyCount"`
	SellCount        int      `json:"sellCount"`
	DroppedFills     int      `json:"droppedFills,omitempty"` // malformed records excluded from aggregation
	Warnings         []string `json:"warnings,omitempty"`
}

// TotalPnL is the combined realized and mark-to-market result.
func (r *PnLResult) TotalPnL() float64 {
	return r.RealizedPnL + r.UnrealizedPnL
}

// TotalPnLPercent expresses TotalPnL against the total invested amount.
// Returns 0 when nothing was bought.
func (r *PnLResult) TotalPnLPercent() float64 {
	invested := r.TotalBought * r.AverageBuyPrice
	if invested <= 0 {
		return 0
	}
	return r.TotalPnL() / invested * 100
}
