package port

import (
	"context"

	domainentity "token_analyzer/internal/domain/entity"
)

// TokenAnalysisService builds market snapshots for tokens.
//
// BuildAnalysis returns (nil, nil) when the upstream source has no pairs for
// the contract or when no pair survives validation for the target chain;
// only collaborator failures surface as errors.
type TokenAnalysisService interface {
	BuildAnalysis(ctx context.Context, tokenAddress string, chain domainentity.ChainDefinition) (*domainentity.TokenAnalysis, error)

	// DetectChain finds which supported chain a contract trades on by
	// inspecting the token's pairs, preferring the highest-scored pair.
	// ok is false when the token is unknown or only trades on
	// unsupported chains.
	DetectChain(ctx context.Context, tokenAddress string) (chain domainentity.ChainDefinition, ok bool, err error)
}

// PnLService produces wallet profit/loss reports.
//
// AnalyzeWallet returns (nil, nil) when the wallet has no fill history for
// the token or when no current price is obtainable.
type PnLService interface {
	AnalyzeWallet(ctx context.Context, walletAddress, tokenAddress string, chain domainentity.ChainDefinition) (*domainentity.PnLResult, error)
}
