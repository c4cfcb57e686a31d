package service

import (
	"math"
	"strings"
)

const (
	stablecoinUSDCSymbol = "USDC"
	stablecoinUSDTSymbol = "USDT"
	stablecoinDAISymbol  = "DAI"
	// Add other stablecoin symbols if needed, ensure they are uppercase
)

var stablecoinSymbols = map[string]struct{}{
	stablecoinUSDCSymbol: {},
	stablecoinUSDTSymbol: {},
	stablecoinDAISymbol:  {},
}

// Observed upstream failure mode: stablecoin quotes arrive off by a power of
// ten (or the feed's own odd 24000x factor). A quote below scaleSuspectBelow
// is rescaled by the first factor that lands it back on the peg.
var stablecoinScaleFactors = []float64{24000, 1_000_000, 100_000_000}

const (
	scaleSuspectBelow = 0.1
	peggedRangeLow    = 0.98
	peggedRangeHigh   = 1.02
)

// IsStablecoin reports whether symbol belongs to the recognized stablecoin
// set. Matching is case-insensitive.
func IsStablecoin(symbol string) bool {
	_, ok := stablecoinSymbols[strings.ToUpper(strings.TrimSpace(symbol))]
	return ok
}

// NormalizePrice corrects decimal-scaling errors in stablecoin quotes.
// Non-stablecoin prices pass through untouched. A stablecoin quote below
// scaleSuspectBelow is multiplied by successive scale factors until one
// lands in the pegged range; if none does, the peg value 1.0 is returned.
// A NaN input comes back as NaN so the caller's price-validity check
// rejects it instead of this function silently coercing it.
func NormalizePrice(rawPrice float64, symbol string) float64 {
	if !IsStablecoin(symbol) {
		return rawPrice
	}
	if math.IsNaN(rawPrice) || rawPrice >= scaleSuspectBelow {
		return rawPrice
	}
	for _, factor := range stablecoinScaleFactors {
		scaled := rawPrice * factor
		if scaled >= peggedRangeLow && scaled <= peggedRangeHigh {
			return scaled
		}
	}
	return 1.0
}
