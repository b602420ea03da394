// Package finnhub adapts the Finnhub REST API to the shared market data
// model. Finnhub's free tier has no index or commodity feed, so index,
// indicator and commodity values are approximated from tracking ETF
// quotes through fixed calibration factors and tagged Approximate.
package finnhub

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

// Client is the Finnhub adapter.
type Client struct {
	cfg     config.ProviderConfig
	ttl     config.TTLConfig
	logger  *logger.Logger
	http    *httputil.Client
	cache   *cache.Cache
	limiter *ratelimit.Limiter
}

// NewClient creates a new Finnhub adapter.
func NewClient(deps Deps) *Client {
	pc := deps.Config.Finnhub
	c := &Client{
		cfg:     pc,
		ttl:     deps.Config.TTL,
		logger:  deps.Logger.WithField("provider", "finnhub"),
		http:    deps.HTTP,
		cache:   deps.Cache,
		limiter: ratelimit.New(pc.RateLimit, pc.RateWindow),
	}
	if pc.APIKey == "" {
		c.logger.Warn("Finnhub API key not configured; all calls will return empty results")
	}
	return c
}

// Name returns the provider's configuration name.
func (c *Client) Name() string { return "finnhub" }

// Connected reports whether the adapter holds usable credentials.
func (c *Client) Connected() bool { return c.cfg.APIKey != "" }

// fetch acquires a rate limit slot and decodes one authenticated GET.
// Finnhub takes its key as the token query parameter.
func (c *Client) fetch(ctx context.Context, path string, query url.Values, dest interface{}) error {
	if c.cfg.APIKey == "" {
		return fmt.Errorf("finnhub: API key not configured")
	}

	if err := c.limiter.Acquire(ctx); err != nil {
		return fmt.Errorf("finnhub: rate limit wait aborted: %w", err)
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("token", c.cfg.APIKey)

	fullURL := fmt.Sprintf("%s%s?%s", c.cfg.BaseURL, path, query.Encode())
	return c.http.GetJSON(ctx, fullURL, dest)
}

func cacheKey(kind, symbol string) string {
	return fmt.Sprintf("finnhub:%s:%s", kind, symbol)
}

// swallow logs an upstream failure at the adapter boundary.
func (c *Client) swallow(op, symbol string, err error) {
	c.logger.WithFields(map[string]interface{}{
		"op":     op,
		"symbol": symbol,
	}).WithError(err).Warn("Finnhub request failed; returning empty result")
}
