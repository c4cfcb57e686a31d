package port

import (
	"context"
	"time"

	domainentity "token_analyzer/internal/domain/entity"
)

// AnalysisCache is the injected TTL cache for finished token analyses, keyed
// by "chain:contract". A cache hit is equivalent to a fresh computation:
// consumers must not re-run validation or normalization on cached data.
type AnalysisCache interface {
	Get(ctx context.Context, key string) (*domainentity.TokenAnalysis, bool)
	Set(ctx context.Context, key string, analysis *domainentity.TokenAnalysis, ttl time.Duration)
	Delete(ctx context.Context, key string)
}
