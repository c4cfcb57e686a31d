package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	domainentity "token_analyzer/internal/domain/entity"
	"token_analyzer/internal/entity"
	"token_analyzer/pkg/metrics"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// GeckoTerminalClient fetches historical OHLCV candles for a pool. It is the
// best-effort historical-data collaborator: the analysis builder survives
// its failures.
type GeckoTerminalClient interface {
	GetCandles(ctx context.Context, chain domainentity.ChainDefinition, pairAddress string) ([]entity.Candle, error)
}

type geckoTerminalClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
	limit   int
}

// ohlcvResponse mirrors GeckoTerminal's json:api envelope. Each ohlcv_list
// entry is [timestamp, open, high, low, close, volume].
type ohlcvResponse struct {
	Data struct {
		Attributes struct {
			OhlcvList [][]float64 `json:"ohlcv_list"`
		} `json:"attributes"`
	} `json:"data"`
}

// NewGeckoTerminalClient creates a new instance of geckoTerminalClientImpl.
// limit caps how many daily candles are requested per lookup.
func NewGeckoTerminalClient(baseURL string, timeout time.Duration, logger *zap.Logger, limit int) GeckoTerminalClient {
	if limit <= 0 {
		limit = 365
	}
	return &geckoTerminalClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.Named("GeckoTerminalClient"),
		limit:   limit,
	}
}

// GetCandles implements the GeckoTerminalClient interface using daily
// candles for the pool.
func (c *geckoTerminalClientImpl) GetCandles(ctx context.Context, chain domainentity.ChainDefinition, pairAddress string) ([]entity.Candle, error) {
	if pairAddress == "" {
		return nil, fmt.Errorf("pairAddress cannot be empty")
	}
	network := chain.GeckoTerminalID
	if network == "" {
		network = chain.ID
	}
	requestURL := fmt.Sprintf("%s/networks/%s/pools/%s/ohlcv/day?limit=%d", c.baseURL, network, pairAddress, c.limit)

	c.logger.Debug("Requesting OHLCV candles from GeckoTerminal", zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			metrics.UpstreamRequestsTotal.WithLabelValues("geckoterminal", "transport_error").Inc()
			return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			metrics.UpstreamRequestsTotal.WithLabelValues("geckoterminal", "transport_error").Inc()
			return nil, fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	rawBody := resp.Body()
	metrics.UpstreamRequestsTotal.WithLabelValues("geckoterminal", fmt.Sprintf("%d", resp.StatusCode())).Inc()

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Warn("GeckoTerminal API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()))
		return nil, fmt.Errorf("GeckoTerminal API request to %s failed with status %d", requestURL, resp.StatusCode())
	}

	var parsed ohlcvResponse
	if err := json.Unmarshal(rawBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal GeckoTerminal response from %s: %w", requestURL, err)
	}

	candles := make([]entity.Candle, 0, len(parsed.Data.Attributes.OhlcvList))
	for _, row := range parsed.Data.Attributes.OhlcvList {
		if len(row) < 6 {
			continue
		}
		candles = append(candles, entity.Candle{
			Timestamp: int64(row[0]),
			Open:      row[1],
			High:      row[2],
			Low:       row[3],
			Close:     row[4],
			Volume:    row[5],
		})
	}
	c.logger.Debug("Fetched OHLCV candles", zap.String("pairAddress", pairAddress), zap.Int("candleCount", len(candles)))
	return candles, nil
}
