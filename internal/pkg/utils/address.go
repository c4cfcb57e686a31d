package utils

import (
	"regexp"

	"github.com/ethereum/go-ethereum/common"
)

// solanaAddressPattern matches base58-encoded Solana account addresses.
var solanaAddressPattern = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)

// IsEVMAddress reports whether s is a well-formed 0x-prefixed EVM address.
func IsEVMAddress(s string) bool {
	return common.IsHexAddress(s)
}

// IsSolanaAddress reports whether s looks like a Solana account address.
func IsSolanaAddress(s string) bool {
	return solanaAddressPattern.MatchString(s)
}

// IsLikelyAddress reports whether s is plausible as a wallet or contract
// address on any supported chain. This is a format check only, never an
// on-chain existence check.
func IsLikelyAddress(s string) bool {
	return IsEVMAddress(s) || IsSolanaAddress(s)
}
