package tokenregistry_test

import (
	"os"
	"path/filepath"
	"testing"

	"token_analyzer/internal/infrastructure/chains"
	"token_analyzer/internal/infrastructure/tokenregistry"
	"token_analyzer/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const registryFixture = `[
  {"chainId": "ethereum", "address": "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", "symbol": "WETH", "name": "Wrapped Ether"},
  {"chainId": "bsc", "address": "0xbb4CdB9CBd36B01bD1cBaEBF2De08d9173bc095c", "symbol": "WBNB", "name": "Wrapped BNB"},
  {"chainId": "solana", "address": "So11111111111111111111111111111111111111112", "symbol": "WSOL", "name": "Wrapped SOL"},
  {"chainId": "ethereum", "address": "", "symbol": "BAD", "name": "Missing address"}
]`

func writeRegistryFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRegistryLoad(t *testing.T) {
	provider := chains.NewChainDefinitionProvider(logger.NewSlogAdapter())
	registry := tokenregistry.NewRegistry(logger.NewSlogAdapter())

	require.NoError(t, registry.Load(writeRegistryFile(t, registryFixture), provider))

	all := registry.All()
	assert.Len(t, all, 2, "unsupported chains and incomplete entries are skipped")

	token, ok := registry.BySymbol("ethereum", "weth")
	require.True(t, ok)
	assert.Equal(t, "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", token.Address)

	_, ok = registry.BySymbol("ethereum", "WBNB")
	assert.False(t, ok)
}

func TestRegistryLoadMissingFile(t *testing.T) {
	provider := chains.NewChainDefinitionProvider(logger.NewSlogAdapter())
	registry := tokenregistry.NewRegistry(logger.NewSlogAdapter())

	require.NoError(t, registry.Load(filepath.Join(t.TempDir(), "absent.json"), provider))
	assert.Empty(t, registry.All())
}

func TestRegistryLoadMalformedJSON(t *testing.T) {
	provider := chains.NewChainDefinitionProvider(logger.NewSlogAdapter())
	registry := tokenregistry.NewRegistry(logger.NewSlogAdapter())

	assert.Error(t, registry.Load(writeRegistryFile(t, "{not json"), provider))
}
