// Package aggregator presents one stable read API over whichever
// provider adapter is active. Every call path is wrapped in a failure
// boundary: adapter errors and empty results degrade to named default
// values, never to a hard failure.
package aggregator

import (
	"context"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/quantive/marketcore/internal/model"
	"github.com/quantive/marketcore/internal/provider"
	"github.com/quantive/marketcore/pkg/logger"
	"github.com/quantive/marketcore/pkg/redis"
)

const (
	// Batch fetches pace deliberately: provider quotas make this a
	// correctness requirement, not a performance knob.
	batchSize  = 5
	batchDelay = 500 * time.Millisecond
	batchPace  = rate.Limit(4) // per second, inside a batch

	// Shared snapshot key in the optional L2 cache.
	snapshotKey = "market:snapshot"
)

// Service is the stable read API over the active provider.
type Service struct {
	provider  provider.MarketDataProvider
	l2        *redis.Cache
	logger    *logger.Logger
	pacer     *rate.Limiter
	marketTTL time.Duration
}

// New creates an aggregator over the given provider. l2 may be built on
// a disabled Redis client; it then degrades to a no-op.
func New(p provider.MarketDataProvider, l2 *redis.Cache, marketTTL time.Duration, log *logger.Logger) *Service {
	return &Service{
		provider:  p,
		l2:        l2,
		logger:    log.WithField("component", "aggregator"),
		pacer:     rate.NewLimiter(batchPace, 1),
		marketTTL: marketTTL,
	}
}

// Provider returns the active provider's name.
func (s *Service) Provider() string {
	return s.provider.Name()
}

// GetMarketData returns the market snapshot. Sections the provider
// cannot serve are filled from defaults; Connected is true only when
// every section came back live.
func (s *Service) GetMarketData(ctx context.Context) model.MarketData {
	if s.l2 != nil {
		var cached model.MarketData
		if found, err := s.l2.Get(ctx, snapshotKey, &cached); err == nil && found {
			return cached
		}
	}

	if !s.provider.Connected() {
		s.logger.Warn("Provider not configured; serving default snapshot")
		return defaultSnapshot(s.provider.Name())
	}

	data := model.MarketData{
		Source:     s.provider.Name(),
		LastUpdate: time.Now(),
		Connected:  true,
	}

	if data.Indices = s.provider.GetIndices(ctx); data.Indices == nil {
		data.Indices = defaultIndices()
		data.Connected = false
	}
	if data.Indicators = s.provider.GetIndicators(ctx); data.Indicators == nil {
		data.Indicators = defaultIndicators()
		data.Connected = false
	}
	if data.Commodities = s.provider.GetCommodities(ctx); data.Commodities == nil {
		data.Commodities = defaultCommodities()
		data.Connected = false
	}

	data.FearGreed = FearGreedFromVolatility(volatilityFrom(data.Indicators))

	if !data.Connected {
		s.logger.WithField("source", data.Source).Warn("Partial provider outage; snapshot contains default sections")
	}

	if s.l2 != nil && data.Connected {
		if err := s.l2.Set(ctx, snapshotKey, data, s.marketTTL); err != nil {
			s.logger.WithError(err).Warn("Failed to store snapshot in shared cache")
		}
	}

	return data
}

// volatilityFrom picks the volatility reading out of the indicator
// section, falling back to the default level when absent.
func volatilityFrom(indicators []model.MarketIndicator) float64 {
	for _, ind := range indicators {
		if strings.Contains(ind.Symbol, "VIX") && ind.Value > 0 {
			return ind.Value
		}
	}
	return defaultVIX
}

// GetStockQuote returns the quote for symbol, or nil when the provider
// cannot serve it. A missing single quote is data the caller can
// reasonably see, unlike a missing market snapshot.
func (s *Service) GetStockQuote(ctx context.Context, symbol string) *model.Quote {
	return s.provider.GetQuote(ctx, symbol)
}

// GetStockQuotes fetches many symbols sequentially in small paced
// batches. Symbols that fail are skipped; order of results follows the
// input order of the symbols that succeeded.
func (s *Service) GetStockQuotes(ctx context.Context, symbols []string) []model.Quote {
	quotes := make([]model.Quote, 0, len(symbols))

	for i, symbol := range symbols {
		if i > 0 && i%batchSize == 0 {
			select {
			case <-ctx.Done():
				return quotes
			case <-time.After(batchDelay):
			}
		}
		if err := s.pacer.Wait(ctx); err != nil {
			return quotes
		}

		if q := s.provider.GetQuote(ctx, symbol); q != nil {
			quotes = append(quotes, *q)
		}
	}

	return quotes
}

// GetMetrics returns fundamentals for symbol, or nil.
func (s *Service) GetMetrics(ctx context.Context, symbol string) *model.Metrics {
	return s.provider.GetMetrics(ctx, symbol)
}

// ListTickers returns the provider's symbol listing, or an empty slice.
func (s *Service) ListTickers(ctx context.Context) []model.Ticker {
	tickers := s.provider.ListTickers(ctx)
	if tickers == nil {
		return []model.Ticker{}
	}
	return tickers
}

// GetCompanyProfile returns static company data, or nil.
func (s *Service) GetCompanyProfile(ctx context.Context, symbol string) *model.CompanyProfile {
	return s.provider.GetCompanyProfile(ctx, symbol)
}
