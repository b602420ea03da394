// Package yahoo adapts Yahoo Finance's public chart endpoints to the
// shared market data model. It needs no API key, which makes it the
// fallback of last resort, but the unofficial surface is narrow: quotes
// and index levels come from the chart API, the company profile is
// scraped from the quote page, and fundamentals are limited to what the
// chart metadata carries.
package yahoo

import (
	"context"
	"fmt"
	"net/http"

	"github.com/quantive/marketcore/pkg/cache"
	"github.com/quantive/marketcore/pkg/config"
	"github.com/quantive/marketcore/pkg/httputil"
	"github.com/quantive/marketcore/pkg/logger"
	"github.com/quantive/marketcore/pkg/ratelimit"
)

// Yahoo blocks default Go user agents; requests present a browser UA.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// Deps bundles the shared services the adapter is constructed with.
type Deps struct {
	Config *config.Config
	Logger *logger.Logger
	HTTP   *httputil.Client
	Cache  *cache.Cache
}

// Client is the Yahoo Finance adapter.
type Client struct {
	cfg     config.ProviderConfig
	ttl     config.TTLConfig
	logger  *logger.Logger
	http    *httputil.Client
	cache   *cache.Cache
	limiter *ratelimit.Limiter
}

// NewClient creates a new Yahoo adapter.
func NewClient(deps Deps) *Client {
	pc := deps.Config.Yahoo
	return &Client{
		cfg:     pc,
		ttl:     deps.Config.TTL,
		logger:  deps.Logger.WithField("provider", "yahoo"),
		http:    deps.HTTP,
		cache:   deps.Cache,
		limiter: ratelimit.New(pc.RateLimit, pc.RateWindow),
	}
}

// Name returns the provider's configuration name.
func (c *Client) Name() string { return "yahoo" }

// Connected always reports true; the adapter is keyless.
func (c *Client) Connected() bool { return true }

// get acquires a rate limit slot and issues one GET with the browser UA.
func (c *Client) get(ctx context.Context, fullURL string) (*http.Response, error) {
	if err := c.limiter.Acquire(ctx); err != nil {
		return nil, fmt.Errorf("yahoo: rate limit wait aborted: %w", err)
	}

	return c.http.GetWithHeaders(ctx, fullURL, map[string]string{
		"User-Agent": userAgent,
	})
}

func cacheKey(kind, symbol string) string {
	return fmt.Sprintf("yahoo:%s:%s", kind, symbol)
}

// swallow logs an upstream failure at the adapter boundary.
func (c *Client) swallow(op, symbol string, err error) {
	c.logger.WithFields(map[string]interface{}{
		"op":     op,
		"symbol": symbol,
	}).WithError(err).Warn("Yahoo request failed; returning empty result")
}
