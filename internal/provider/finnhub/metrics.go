package finnhub

import (
	"context"
	"fmt"
	"net/url"

	"github.com/quantive/marketcore/internal/model"
	"github.com/quantive/marketcore/pkg/cache"
)

// metricResponse is Finnhub's /stock/metric payload. The vendor packs
// every fundamental into one flat "metric" object; unreported values are
// simply absent, which the pointer fields preserve.
type metricResponse struct {
	Metric struct {
		PETTM              *float64 `json:"peBasicExclExtraTTM"`
		PSTTM              *float64 `json:"psTTM"`
		PB                 *float64 `json:"pb"`
		ROETTM             *float64 `json:"roeTTM"`
		ROATTM             *float64 `json:"roaTTM"`
		GrossMarginTTM     *float64 `json:"grossMarginTTM"`
		OperatingMarginTTM *float64 `json:"operatingMarginTTM"`
		NetMarginTTM       *float64 `json:"netProfitMarginTTM"`
		RevenueGrowthYoY   *float64 `json:"revenueGrowthTTMYoy"`
		EPSGrowthYoY       *float64 `json:"epsGrowthTTMYoy"`
		DebtToEquity       *float64 `json:"totalDebt/totalEquityQuarterly"`
		CurrentRatio       *float64 `json:"currentRatioQuarterly"`
		QuickRatio         *float64 `json:"quickRatioQuarterly"`
		Beta               *float64 `json:"beta"`
		DividendYield      *float64 `json:"dividendYieldIndicatedAnnual"`
		Week52High         *float64 `json:"52WeekHigh"`
		Week52Low          *float64 `json:"52WeekLow"`
	} `json:"metric"`
}

// GetMetrics returns fundamentals for symbol, or nil on failure.
// Finnhub reports percentages on a 0-100 scale; growth, margins and
// returns are rescaled to fractions to match the shared model.
func (c *Client) GetMetrics(ctx context.Context, symbol string) *model.Metrics {
	key := cacheKey("metrics", symbol)
	if m, ok := cache.GetTyped[*model.Metrics](c.cache, key); ok {
		return m
	}

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("metric", "all")

	var raw metricResponse
	if err := c.fetch(ctx, "/stock/metric", q, &raw); err != nil {
		c.swallow("metrics", symbol, err)
		return nil
	}

	m := mapMetrics(symbol, &raw)
	if m == nil {
		c.swallow("metrics", symbol, fmt.Errorf("empty metric payload"))
		return nil
	}

	// PEG is not part of the flat payload; derive it when both inputs
	// are present and growth is meaningfully positive.
	if m.PE != nil && m.EPSGrowthYoY != nil && *m.EPSGrowthYoY > 0.01 {
		peg := *m.PE / (*m.EPSGrowthYoY * 100)
		m.PEG = &peg
	}

	c.cache.Set(key, m, c.ttl.Metrics)
	return m
}

func mapMetrics(symbol string, raw *metricResponse) *model.Metrics {
	mm := raw.Metric
	if mm.PETTM == nil && mm.ROETTM == nil && mm.Week52High == nil && mm.PB == nil {
		return nil
	}

	return &model.Metrics{
		Symbol:           symbol,
		PE:               mm.PETTM,
		PS:               mm.PSTTM,
		PB:               mm.PB,
		ROE:              percentToFraction(mm.ROETTM),
		ROA:              percentToFraction(mm.ROATTM),
		GrossMargin:      percentToFraction(mm.GrossMarginTTM),
		OperatingMargin:  percentToFraction(mm.OperatingMarginTTM),
		NetMargin:        percentToFraction(mm.NetMarginTTM),
		RevenueGrowthYoY: percentToFraction(mm.RevenueGrowthYoY),
		EPSGrowthYoY:     percentToFraction(mm.EPSGrowthYoY),
		DebtToEquity:     mm.DebtToEquity,
		CurrentRatio:     mm.CurrentRatio,
		QuickRatio:       mm.QuickRatio,
		Beta:             mm.Beta,
		DividendYield:    percentToFraction(mm.DividendYield),
		Week52High:       mm.Week52High,
		Week52Low:        mm.Week52Low,
	}
}

// percentToFraction rescales a 0-100 vendor percentage to a fraction,
// preserving nil.
func percentToFraction(v *float64) *float64 {
	if v == nil {
		return nil
	}
	f := *v / 100
	return &f
}
