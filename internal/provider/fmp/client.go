// Package fmp adapts the Financial Modeling Prep REST API to the shared
// market data model. FMP is the only configured vendor with direct index
// and commodity quotes, so nothing in this adapter is approximated.
package fmp

import (
	"context"
	"fmt"
	"net/url"

	"github.com/quantive/marketcore/pkg/cache"
	"github.com/quantive/marketcore/pkg/config"
	"github.com/quantive/marketcore/pkg/httputil"
	"github.com/quantive/marketcore/pkg/logger"
	"github.com/quantive/marketcore/pkg/ratelimit"
)

// Deps bundles the shared services the adapter is constructed with.
type Deps struct {
	Config *config.Config
	Logger *logger.Logger
	HTTP   *httputil.Client
	Cache  *cache.Cache
}

// Client is the FMP adapter. It owns its rate limiter; the cache and
// HTTP client are shared process-wide.
type Client struct {
	cfg     config.ProviderConfig
	ttl     config.TTLConfig
	logger  *logger.Logger
	http    *httputil.Client
	cache   *cache.Cache
	limiter *ratelimit.Limiter
}

// NewClient creates a new FMP adapter.
func NewClient(deps Deps) *Client {
	pc := deps.Config.FMP
	c := &Client{
		cfg:     pc,
		ttl:     deps.Config.TTL,
		logger:  deps.Logger.WithField("provider", "fmp"),
		http:    deps.HTTP,
		cache:   deps.Cache,
		limiter: ratelimit.New(pc.RateLimit, pc.RateWindow),
	}
	if pc.APIKey == "" {
		c.logger.Warn("FMP API key not configured; all calls will return empty results")
	}
	return c
}

// Name returns the provider's configuration name.
func (c *Client) Name() string { return "fmp" }

// Connected reports whether the adapter holds usable credentials.
func (c *Client) Connected() bool { return c.cfg.APIKey != "" }

// fetch acquires a rate limit slot and decodes one authenticated GET.
// path must begin with "/"; the API key travels as a query parameter.
func (c *Client) fetch(ctx context.Context, path string, query url.Values, dest interface{}) error {
	if c.cfg.APIKey == "" {
		return fmt.Errorf("fmp: API key not configured")
	}

	if err := c.limiter.Acquire(ctx); err != nil {
		return fmt.Errorf("fmp: rate limit wait aborted: %w", err)
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("apikey", c.cfg.APIKey)

	fullURL := fmt.Sprintf("%s%s?%s", c.cfg.BaseURL, path, query.Encode())
	return c.http.GetJSON(ctx, fullURL, dest)
}

// cacheKey namespaces cache entries per provider and data kind.
func cacheKey(kind, symbol string) string {
	return fmt.Sprintf("fmp:%s:%s", kind, symbol)
}

// swallow logs an upstream failure at the adapter boundary. Callers
// return a nil or empty result afterwards; no error propagates upward.
func (c *Client) swallow(op, symbol string, err error) {
	c.logger.WithFields(map[string]interface{}{
		"op":     op,
		"symbol": symbol,
	}).WithError(err).Warn("FMP request failed; returning empty result")
}
