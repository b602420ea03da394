package aggregator

import (
	"time"

	"github.com/quantive/marketcore/internal/model"
)

// Last-known-reasonable values served when the active provider is down
// or returns nothing. Deliberately plain numbers in one place so the
// fallback data is auditable and easy to refresh; callers can detect it
// through Connected == false.
const (
	defaultSP500  = 5400.0
	defaultDow    = 39000.0
	defaultNasdaq = 17500.0
	defaultVIX    = 18.0
	defaultTNX    = 4.3
	defaultGold   = 2350.0
	defaultOil    = 78.0
)

// defaultIndices returns the fallback index section.
func defaultIndices() []model.MarketIndex {
	return []model.MarketIndex{
		{Symbol: "^GSPC", Name: "S&P 500", Value: defaultSP500, Approximate: true},
		{Symbol: "^DJI", Name: "Dow Jones Industrial Average", Value: defaultDow, Approximate: true},
		{Symbol: "^IXIC", Name: "Nasdaq Composite", Value: defaultNasdaq, Approximate: true},
	}
}

// defaultIndicators returns the fallback indicator section.
func defaultIndicators() []model.MarketIndicator {
	return []model.MarketIndicator{
		{
			Symbol:      "^VIX",
			Name:        "CBOE Volatility Index",
			Value:       defaultVIX,
			Status:      model.ClassifyVolatility(defaultVIX),
			Approximate: true,
		},
		{
			Symbol:      "^TNX",
			Name:        "10-Year Treasury Yield",
			Value:       defaultTNX,
			Approximate: true,
		},
	}
}

// defaultCommodities returns the fallback commodity section.
func defaultCommodities() []model.Commodity {
	return []model.Commodity{
		{Symbol: "XAU", Name: "Gold", Price: defaultGold, Approximate: true},
		{Symbol: "WTI", Name: "Crude Oil (WTI)", Price: defaultOil, Approximate: true},
	}
}

// defaultSnapshot returns a structurally complete market snapshot built
// entirely from fallback values.
func defaultSnapshot(source string) model.MarketData {
	return model.MarketData{
		Indices:     defaultIndices(),
		Indicators:  defaultIndicators(),
		Commodities: defaultCommodities(),
		FearGreed:   FearGreedFromVolatility(defaultVIX),
		LastUpdate:  time.Now(),
		Source:      source,
		Connected:   false,
	}
}
