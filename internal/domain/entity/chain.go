package entity

import "strings"

// ChainDefinition holds the configuration for a supported chain.
// This structure is defined at the domain level to be used across application
// and infrastructure layers.
type ChainDefinition struct {
	ID                        string   `json:"id" yaml:"id"` // canonical identifier, e.g. "ethereum"
	Name                      string   `json:"name" yaml:"name"`
	Aliases                   []string `json:"aliases" yaml:"aliases"` // substrings accepted in upstream chainId values
	NativeSymbol              string   `json:"nativeSymbol" yaml:"nativeSymbol"`
	MinLiquidityUsd           float64  `json:"minLiquidityUsd" yaml:"minLiquidityUsd"`
	MinStablecoinLiquidityUsd float64  `json:"minStablecoinLiquidityUsd" yaml:"minStablecoinLiquidityUsd"`
	GeckoTerminalID           string   `json:"geckoTerminalId,omitempty" yaml:"geckoTerminalId,omitempty"`
}

// MatchesChainID reports whether a raw upstream chain identifier refers to
// this chain. Upstream values are noisy ("eth", "ethereum", numeric L2 ids),
// so matching is a case-insensitive substring test against each alias.
func (c ChainDefinition) MatchesChainID(raw string) bool {
	lowered := strings.ToLower(raw)
	for _, alias := range c.Aliases {
		if strings.Contains(lowered, alias) {
			return true
		}
	}
	return false
}

// LiquidityFloor returns the minimum pool liquidity accepted on this chain.
// Stablecoins get the lower tier: major stablecoins legitimately trade with
// thinner quoted liquidity per pool because depth sits elsewhere.
func (c ChainDefinition) LiquidityFloor(isStablecoin bool) float64 {
	if isStablecoin {
		return c.MinStablecoinLiquidityUsd
	}
	return c.MinLiquidityUsd
}
