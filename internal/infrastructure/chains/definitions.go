package chains

import (
	"strings"

	"token_analyzer/internal/app/port"
	"token_analyzer/internal/domain/entity"
)

// ChainDefinitionProvider provides the supported chain definitions and
// resolves noisy upstream chain identifiers to them.
type ChainDefinitionProvider struct {
	logger       port.Logger
	allChainDefs []entity.ChainDefinition
	byID         map[string]entity.ChainDefinition
}

// Predefined chain definitions. Liquidity floors are the two-tier
// (chain, isStablecoin) table; aliases include the chain-specific numeric
// ids upstream feeds sometimes report.
var ( //nolint:gochecknoglobals // Global for definitions
	Ethereum = entity.ChainDefinition{
		ID:                        "ethereum",
		Name:                      "Ethereum Mainnet",
		Aliases:                   []string{"ethereum", "eth"},
		NativeSymbol:              "ETH",
		MinLiquidityUsd:           10000,
		MinStablecoinLiquidityUsd: 1000,
		GeckoTerminalID:           "eth",
	}
	Base = entity.ChainDefinition{
		ID:                        "base",
		Name:                      "Base Mainnet",
		Aliases:                   []string{"base", "8453"},
		NativeSymbol:              "ETH",
		MinLiquidityUsd:           5000,
		MinStablecoinLiquidityUsd: 250,
		GeckoTerminalID:           "base",
	}
	Avalanche = entity.ChainDefinition{
		ID:                        "avalanche",
		Name:                      "Avalanche C-Chain",
		Aliases:                   []string{"avalanche", "avax", "43114"},
		NativeSymbol:              "AVAX",
		MinLiquidityUsd:           2500,
		MinStablecoinLiquidityUsd: 500,
		GeckoTerminalID:           "avax",
	}
	Solana = entity.ChainDefinition{
		ID:                        "solana",
		Name:                      "Solana Mainnet",
		Aliases:                   []string{"solana", "sol"},
		NativeSymbol:              "SOL",
		MinLiquidityUsd:           5000,
		MinStablecoinLiquidityUsd: 500,
		GeckoTerminalID:           "solana",
	}
)

// unsupportedChainHints are upstream identifiers we recognize but refuse to
// serve ("pulse" is PulseChain, ignored on purpose).
var unsupportedChainHints = []string{"pulse"} //nolint:gochecknoglobals // Global for definitions

// NewChainDefinitionProvider creates a provider over the built-in chain set.
func NewChainDefinitionProvider(log port.Logger) *ChainDefinitionProvider {
	all := []entity.ChainDefinition{Ethereum, Base, Avalanche, Solana}
	byID := make(map[string]entity.ChainDefinition, len(all))
	for _, def := range all {
		byID[def.ID] = def
	}
	log.Info("ChainDefinitionProvider initialized", "supportedChains", len(all))
	return &ChainDefinitionProvider{
		logger:       log,
		allChainDefs: all,
		byID:         byID,
	}
}

// All returns a copy of the supported chain definitions.
func (p *ChainDefinitionProvider) All() []entity.ChainDefinition {
	defsCopy := make([]entity.ChainDefinition, len(p.allChainDefs))
	copy(defsCopy, p.allChainDefs)
	return defsCopy
}

// GetByID returns a chain definition by its canonical identifier.
func (p *ChainDefinitionProvider) GetByID(id string) (entity.ChainDefinition, bool) {
	def, ok := p.byID[strings.ToLower(id)]
	return def, ok
}

// Resolve maps a raw upstream chain identifier (e.g. "eth", "8453",
// "base-mainnet") to a supported chain definition. Identifiers matching an
// explicitly unsupported chain resolve to nothing.
func (p *ChainDefinitionProvider) Resolve(raw string) (entity.ChainDefinition, bool) {
	lowered := strings.ToLower(raw)
	for _, hint := range unsupportedChainHints {
		if strings.Contains(lowered, hint) {
			p.logger.Debug("Skipping unsupported chain", "chainId", raw)
			return entity.ChainDefinition{}, false
		}
	}
	for _, def := range p.allChainDefs {
		if def.MatchesChainID(raw) {
			return def, true
		}
	}
	return entity.ChainDefinition{}, false
}
