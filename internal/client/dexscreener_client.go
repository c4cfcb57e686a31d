package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"token_analyzer/internal/entity"
	"token_analyzer/pkg/metrics"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DEXScreenerClient defines the interface for interacting with the DEX Screener API.
type DEXScreenerClient interface {
	// GetTokenPairs returns all trading pairs known for a token contract
	// across chains. An empty slice with nil error is a valid "no data"
	// response.
	GetTokenPairs(ctx context.Context, tokenAddress string) ([]entity.PairData, error)
}

// dexScreenerClientImpl is the implementation of DEXScreenerClient.
type dexScreenerClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
	limiter *rate.Limiter
}

// NewDEXScreenerClient creates a new instance of dexScreenerClientImpl.
// requestsPerSecond bounds the call rate against the public API; retries and
// backoff are deliberately not implemented here, callers decide their own
// retry policy.
func NewDEXScreenerClient(baseURL string, timeout time.Duration, logger *zap.Logger, requestsPerSecond float64, burst int) DEXScreenerClient {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 5
	}
	if burst <= 0 {
		burst = 1
	}
	return &dexScreenerClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.Named("DEXScreenerClient"),
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// GetTokenPairs implements the DEXScreenerClient interface. The token lookup
// endpoint is tried first; when it returns nothing the search endpoint is
// used as a fallback, since some freshly listed tokens only appear there.
func (c *dexScreenerClientImpl) GetTokenPairs(ctx context.Context, tokenAddress string) ([]entity.PairData, error) {
	if tokenAddress == "" {
		return nil, fmt.Errorf("tokenAddress cannot be empty")
	}

	pairs, err := c.fetchPairs(ctx, fmt.Sprintf("%s/dex/tokens/%s", c.baseURL, tokenAddress))
	if err != nil {
		return nil, err
	}
	if len(pairs) > 0 {
		return pairs, nil
	}

	c.logger.Debug("Token endpoint returned no pairs, falling back to search",
		zap.String("tokenAddress", tokenAddress))
	return c.fetchPairs(ctx, fmt.Sprintf("%s/dex/search?q=%s", c.baseURL, url.QueryEscape(tokenAddress)))
}

func (c *dexScreenerClientImpl) fetchPairs(ctx context.Context, requestURL string) ([]entity.PairData, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait interrupted: %w", err)
	}

	c.logger.Debug("Requesting token pairs from DEX Screener", zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetContentTypeBytes([]byte("application/json"))

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			metrics.UpstreamRequestsTotal.WithLabelValues("dexscreener", "transport_error").Inc()
			c.logger.Error("Failed to execute request to DEX Screener", zap.String("url", requestURL), zap.Error(err))
			return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			metrics.UpstreamRequestsTotal.WithLabelValues("dexscreener", "transport_error").Inc()
			c.logger.Error("Failed to execute request to DEX Screener (with default timeout)", zap.String("url", requestURL), zap.Error(err))
			return nil, fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	rawBody := resp.Body()
	metrics.UpstreamRequestsTotal.WithLabelValues("dexscreener", fmt.Sprintf("%d", resp.StatusCode())).Inc()

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("DEX Screener API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", rawBody),
		)
		return nil, fmt.Errorf("DEX Screener API request to %s failed with status %d: %s", requestURL, resp.StatusCode(), string(rawBody))
	}

	var wrapper entity.TokenPairsResponse
	if err := json.Unmarshal(rawBody, &wrapper); err == nil && (wrapper.Pairs != nil || wrapper.Pair != nil) {
		pairs := wrapper.Pairs
		if len(pairs) == 0 && wrapper.Pair != nil {
			pairs = []entity.PairData{*wrapper.Pair}
		}
		c.logger.Debug("Successfully unmarshalled DEX Screener response (wrapped object)",
			zap.String("url", requestURL),
			zap.Int("pairCount", len(pairs)))
		return pairs, nil
	}

	var directPairs []entity.PairData
	if err := json.Unmarshal(rawBody, &directPairs); err != nil {
		c.logger.Error("Failed to unmarshal DEX Screener response into []PairData (also failed as wrapped object).",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", rawBody),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to unmarshal DEX Screener response from %s: %w", requestURL, err)
	}

	c.logger.Debug("Successfully unmarshalled DEX Screener response (direct array)",
		zap.String("url", requestURL),
		zap.Int("pairCount", len(directPairs)))
	return directPairs, nil
}
