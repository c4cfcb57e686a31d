package tokenregistry

import (
	"fmt"
	"os"
	"strings"

	"token_analyzer/internal/app/port"
	domainentity "token_analyzer/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ChainChecker reports whether a chain identifier names a supported chain.
type ChainChecker interface {
	GetByID(id string) (domainentity.ChainDefinition, bool)
}

// Registry is the in-memory index of well-known token contracts loaded from a
// JSON file. It backs the status board and symbol-to-contract lookups.
// Immutable after Load, safe for concurrent reads.
type Registry struct {
	logger   port.Logger
	tokens   []domainentity.KnownToken
	bySymbol map[string]domainentity.KnownToken // "chain:SYMBOL"
}

// NewRegistry creates an empty registry.
func NewRegistry(logger port.Logger) *Registry {
	return &Registry{
		logger:   logger,
		bySymbol: make(map[string]domainentity.KnownToken),
	}
}

// Load reads the token file and indexes entries whose chain is supported.
// Entries on unknown chains are skipped with a warning, not fatal; a missing
// file yields an empty registry so the service can still start.
func (r *Registry) Load(path string, chains ChainChecker) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			r.logger.Warn("Token registry file not found, starting with empty registry", "path", path)
			return nil
		}
		return fmt.Errorf("reading token registry %s: %w", path, err)
	}

	var entries []domainentity.KnownToken
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parsing token registry %s: %w", path, err)
	}

	skipped := 0
	for _, entry := range entries {
		if entry.Address == "" || entry.Symbol == "" {
			skipped++
			continue
		}
		chain, ok := chains.GetByID(entry.ChainID)
		if !ok {
			r.logger.Warn("Token registry entry references unsupported chain, skipping",
				"chainId", entry.ChainID, "symbol", entry.Symbol)
			skipped++
			continue
		}
		entry.ChainID = chain.ID
		r.tokens = append(r.tokens, entry)
		r.bySymbol[symbolKey(entry.ChainID, entry.Symbol)] = entry
	}

	r.logger.Info("Token registry loaded", "path", path, "tokens", len(r.tokens), "skipped", skipped)
	return nil
}

// All returns a copy of every registered token.
func (r *Registry) All() []domainentity.KnownToken {
	out := make([]domainentity.KnownToken, len(r.tokens))
	copy(out, r.tokens)
	return out
}

// BySymbol resolves a symbol on a chain to its known contract.
func (r *Registry) BySymbol(chainID, symbol string) (domainentity.KnownToken, bool) {
	token, ok := r.bySymbol[symbolKey(chainID, symbol)]
	return token, ok
}

func symbolKey(chainID, symbol string) string {
	return strings.ToLower(chainID) + ":" + strings.ToUpper(strings.TrimSpace(symbol))
}
