package chains_test

import (
	"testing"

	"token_analyzer/internal/infrastructure/chains"
	"token_analyzer/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderGetByID(t *testing.T) {
	p := chains.NewChainDefinitionProvider(logger.NewSlogAdapter())

	def, ok := p.GetByID("ethereum")
	require.True(t, ok)
	assert.Equal(t, "Ethereum Mainnet", def.Name)

	def, ok = p.GetByID("SOLANA")
	require.True(t, ok)
	assert.Equal(t, "solana", def.ID)

	_, ok = p.GetByID("bsc")
	assert.False(t, ok)
}

func TestProviderResolve(t *testing.T) {
	p := chains.NewChainDefinitionProvider(logger.NewSlogAdapter())

	tests := []struct {
		raw      string
		expected string
		ok       bool
	}{
		{"ethereum", "ethereum", true},
		{"eth", "ethereum", true},
		{"8453", "base", true},
		{"base-mainnet", "base", true},
		{"avax", "avalanche", true},
		{"43114", "avalanche", true},
		{"sol", "solana", true},
		{"pulsechain", "", false}, // explicitly unsupported
		{"bsc", "", false},
	}
	for _, tt := range tests {
		def, ok := p.Resolve(tt.raw)
		assert.Equal(t, tt.ok, ok, "raw=%s", tt.raw)
		if tt.ok {
			assert.Equal(t, tt.expected, def.ID, "raw=%s", tt.raw)
		}
	}
}

func TestLiquidityFloors(t *testing.T) {
	assert.Equal(t, 10000.0, chains.Ethereum.LiquidityFloor(false))
	assert.Equal(t, 1000.0, chains.Ethereum.LiquidityFloor(true))
	assert.Equal(t, 250.0, chains.Base.LiquidityFloor(true))
	assert.Equal(t, 2500.0, chains.Avalanche.LiquidityFloor(false))
}
