package restapi

import (
	"net/http"
	"strings"
	"sync"

	"token_analyzer/internal/app/port"
	domainentity "token_analyzer/internal/domain/entity"
	"token_analyzer/internal/infrastructure/tokenregistry"
	"token_analyzer/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// statusBoardConcurrency bounds parallel upstream fetches during a status
// sweep so one request cannot saturate the rate limiter.
const statusBoardConcurrency = 4

// ChainDirectory resolves chain identifiers for request parameters.
type ChainDirectory interface {
	GetByID(id string) (domainentity.ChainDefinition, bool)
}

// APIAnalysisResponse is the envelope for single-token analysis responses.
type APIAnalysisResponse struct {
	Data struct {
		Analysis *domainentity.TokenAnalysis `json:"analysis"`
	} `json:"data"`
	StatusMessage string `json:"status_message"`
}

// APIPnLResponse is the envelope for wallet P&L responses. The percent and
// total are precomputed so clients do not have to re-derive them.
type APIPnLResponse struct {
	Data struct {
		PnL             *domainentity.PnLResult `json:"pnl"`
		TotalPnL        float64                 `json:"totalPnL"`
		TotalPnLPercent float64                 `json:"totalPnLPercent"`
	} `json:"data"`
	StatusMessage string `json:"status_message"`
}

// StatusEntry is one token's row on the status board.
type StatusEntry struct {
	Symbol   string                      `json:"symbol"`
	ChainID  string                      `json:"chainId"`
	Address  string                      `json:"address"`
	Analysis *domainentity.TokenAnalysis `json:"analysis,omitempty"`
	Error    string                      `json:"error,omitempty"`
}

// APIStatusResponse is the envelope for the status board.
type APIStatusResponse struct {
	Data struct {
		Entries []StatusEntry `json:"entries"`
	} `json:"data"`
	StatusMessage string `json:"status_message"`
}

type apiError struct {
	Error string `json:"error"`
}

// AnalysisHandler serves the token analysis, wallet P&L and status board
// endpoints.
type AnalysisHandler struct {
	analysisService port.TokenAnalysisService
	pnlService      port.PnLService
	chains          ChainDirectory
	registry        *tokenregistry.Registry
	logger          *zap.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(
	analysisService port.TokenAnalysisService,
	pnlService port.PnLService,
	chains ChainDirectory,
	registry *tokenregistry.Registry,
	logger *zap.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		pnlService:      pnlService,
		chains:          chains,
		registry:        registry,
		logger:          logger.Named("AnalysisHandler"),
	}
}

// GetAnalysisHandler handles GET /api/v1/analysis/:token. The chain query
// parameter is optional; without it the chain is auto-detected from the
// token's pairs.
func (h *AnalysisHandler) GetAnalysisHandler(c *gin.Context) {
	ctx := c.Request.Context()

	token := strings.TrimSpace(c.Param("token"))
	if !utils.IsLikelyAddress(token) {
		c.JSON(http.StatusBadRequest, apiError{Error: "token is not a recognizable contract address"})
		return
	}

	chain, ok, err := h.resolveChain(c, token)
	if err != nil {
		h.logger.Error("Chain detection failed", zap.String("token", token), zap.Error(err))
		c.JSON(http.StatusBadGateway, apiError{Error: "upstream data source unavailable"})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, apiError{Error: "chain is unknown and could not be auto-detected"})
		return
	}

	analysis, err := h.analysisService.BuildAnalysis(ctx, token, chain)
	if err != nil {
		h.logger.Error("Analysis build failed",
			zap.String("token", token),
			zap.String("chain", chain.ID),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, apiError{Error: "upstream data source unavailable"})
		return
	}
	if analysis == nil {
		c.JSON(http.StatusNotFound, apiError{Error: "no tradable pairs found for token on " + chain.ID})
		return
	}

	response := APIAnalysisResponse{StatusMessage: "Analysis retrieved successfully."}
	response.Data.Analysis = analysis
	if len(analysis.Warnings) > 0 {
		response.StatusMessage = "Analysis retrieved with data-quality warnings."
	}
	c.JSON(http.StatusOK, response)
}

// GetWalletPnLHandler handles GET /api/v1/wallet-pnl?wallet=&token=&chain=.
func (h *AnalysisHandler) GetWalletPnLHandler(c *gin.Context) {
	ctx := c.Request.Context()

	wallet := strings.TrimSpace(c.Query("wallet"))
	token := strings.TrimSpace(c.Query("token"))
	if !utils.IsLikelyAddress(wallet) {
		c.JSON(http.StatusBadRequest, apiError{Error: "wallet is not a recognizable address"})
		return
	}
	if !utils.IsLikelyAddress(token) {
		c.JSON(http.StatusBadRequest, apiError{Error: "token is not a recognizable contract address"})
		return
	}

	chain, ok, err := h.resolveChain(c, token)
	if err != nil {
		h.logger.Error("Chain detection failed", zap.String("token", token), zap.Error(err))
		c.JSON(http.StatusBadGateway, apiError{Error: "upstream data source unavailable"})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, apiError{Error: "chain is unknown and could not be auto-detected"})
		return
	}

	pnl, err := h.pnlService.AnalyzeWallet(ctx, wallet, token, chain)
	if err != nil {
		h.logger.Error("Wallet P&L failed",
			zap.String("wallet", wallet),
			zap.String("token", token),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, apiError{Error: "upstream data source unavailable"})
		return
	}
	if pnl == nil {
		c.JSON(http.StatusNotFound, apiError{Error: "no fill history or no current price for this wallet/token"})
		return
	}

	response := APIPnLResponse{StatusMessage: "P&L computed successfully."}
	response.Data.PnL = pnl
	response.Data.TotalPnL = pnl.TotalPnL()
	response.Data.TotalPnLPercent = pnl.TotalPnLPercent()
	if len(pnl.Warnings) > 0 {
		response.StatusMessage = "P&L computed with warnings."
	}
	c.JSON(http.StatusOK, response)
}

// GetStatusHandler handles GET /api/v1/status: it analyzes every registry
// token concurrently and reports per-token results. Individual failures do
// not fail the sweep.
func (h *AnalysisHandler) GetStatusHandler(c *gin.Context) {
	ctx := c.Request.Context()

	tokens := h.registry.All()
	entries := make([]StatusEntry, len(tokens))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(statusBoardConcurrency)

	for i, known := range tokens {
		g.Go(func() error {
			entry := StatusEntry{Symbol: known.Symbol, ChainID: known.ChainID, Address: known.Address}

			chain, ok := h.chains.GetByID(known.ChainID)
			if !ok {
				entry.Error = "unsupported chain"
			} else if analysis, err := h.analysisService.BuildAnalysis(gctx, known.Address, chain); err != nil {
				entry.Error = err.Error()
			} else if analysis == nil {
				entry.Error = "no tradable pairs"
			} else {
				entry.Analysis = analysis
			}

			mu.Lock()
			entries[i] = entry
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i := range entries {
		if entries[i].Error != "" {
			failed++
		}
	}

	response := APIStatusResponse{}
	response.Data.Entries = entries
	switch {
	case len(entries) == 0:
		response.StatusMessage = "Token registry is empty; nothing to report."
	case failed == 0:
		response.StatusMessage = "All registry tokens analyzed successfully."
	case failed == len(entries):
		response.StatusMessage = "Every registry token failed to analyze; upstream may be down."
	default:
		response.StatusMessage = "Registry tokens analyzed; some entries reported errors."
	}
	c.JSON(http.StatusOK, response)
}

// resolveChain reads the chain query parameter when present, otherwise
// auto-detects the chain from the token's pairs.
func (h *AnalysisHandler) resolveChain(c *gin.Context, token string) (domainentity.ChainDefinition, bool, error) {
	if raw := strings.TrimSpace(c.Query("chain")); raw != "" {
		chain, ok := h.chains.GetByID(raw)
		return chain, ok, nil
	}
	return h.analysisService.DetectChain(c.Request.Context(), token)
}
