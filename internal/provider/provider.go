// Package provider defines the capability interface every upstream data
// vendor adapter implements, and the factory that selects the active one.
//
// Adapters translate vendor-specific JSON shapes into the shared model.
// Ordinary upstream failures (missing key, transport, non-2xx, schema
// mismatch) never escape an adapter: they are logged and surfaced as a
// nil or empty result so the aggregator stays responsive.
package provider

import (
	"context"

	"github.com/quantive/marketcore/internal/model"
	"github.com/quantive/marketcore/pkg/cache"
	"github.com/quantive/marketcore/pkg/config"
	"github.com/quantive/marketcore/pkg/httputil"
	"github.com/quantive/marketcore/pkg/logger"
)

// MarketDataProvider is the shared operation set across all vendors.
// A nil or empty return means the data is unavailable right now; the
// caller decides whether to fall back to defaults.
type MarketDataProvider interface {
	// Name returns the provider's configuration name (fmp, finnhub, yahoo).
	Name() string

	// Connected reports whether the adapter holds usable credentials.
	// Keyless providers always report true.
	Connected() bool

	ListTickers(ctx context.Context) []model.Ticker
	GetQuote(ctx context.Context, symbol string) *model.Quote
	GetMetrics(ctx context.Context, symbol string) *model.Metrics
	GetIndices(ctx context.Context) []model.MarketIndex
	GetIndicators(ctx context.Context) []model.MarketIndicator
	GetCommodities(ctx context.Context) []model.Commodity
	GetCompanyProfile(ctx context.Context, symbol string) *model.CompanyProfile
}

// Deps bundles the shared services every adapter is constructed with.
// Cache and HTTP client are process-wide; each adapter owns its limiter.
type Deps struct {
	Config *config.Config
	Logger *logger.Logger
	HTTP   *httputil.Client
	Cache  *cache.Cache
}
