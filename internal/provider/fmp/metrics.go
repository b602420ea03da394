package fmp

import (
	"context"
	"fmt"
	"net/url"

	"github.com/quantive/marketcore/internal/model"
	"github.com/quantive/marketcore/pkg/cache"
)

// keyMetricsResponse is one element of /key-metrics-ttm.
type keyMetricsResponse struct {
	PERatioTTM           *float64 `json:"peRatioTTM"`
	PEGRatioTTM          *float64 `json:"pegRatioTTM"`
	PriceToSalesRatioTTM *float64 `json:"priceToSalesRatioTTM"`
	PBRatioTTM           *float64 `json:"pbRatioTTM"`
	EVToEBITDATTM        *float64 `json:"enterpriseValueOverEBITDATTM"`
	EarningsYieldTTM     *float64 `json:"earningsYieldTTM"`
	ROETTM               *float64 `json:"roeTTM"`
	ROATTM               *float64 `json:"returnOnTangibleAssetsTTM"`
	DebtToEquityTTM      *float64 `json:"debtToEquityTTM"`
	CurrentRatioTTM      *float64 `json:"currentRatioTTM"`
	DividendYieldTTM     *float64 `json:"dividendYieldTTM"`
	FreeCashFlowTTM      *float64 `json:"freeCashFlowPerShareTTM"`
}

// ratiosResponse is one element of /ratios-ttm.
type ratiosResponse struct {
	GrossProfitMarginTTM     *float64 `json:"grossProfitMarginTTM"`
	OperatingProfitMarginTTM *float64 `json:"operatingProfitMarginTTM"`
	NetProfitMarginTTM       *float64 `json:"netProfitMarginTTM"`
	QuickRatioTTM            *float64 `json:"quickRatioTTM"`
}

// growthResponse is one element of /financial-growth.
type growthResponse struct {
	RevenueGrowth *float64 `json:"revenueGrowth"`
	EPSGrowth     *float64 `json:"epsgrowth"`
}

// GetMetrics assembles fundamentals from three FMP endpoints. Any of the
// three may fail independently; fields it would have contributed stay
// nil. Only a fully failed assembly returns nil.
func (c *Client) GetMetrics(ctx context.Context, symbol string) *model.Metrics {
	key := cacheKey("metrics", symbol)
	if m, ok := cache.GetTyped[*model.Metrics](c.cache, key); ok {
		return m
	}

	m := &model.Metrics{Symbol: symbol}
	got := 0

	var km []keyMetricsResponse
	if err := c.fetch(ctx, "/key-metrics-ttm/"+url.PathEscape(symbol), nil, &km); err != nil {
		c.swallow("key-metrics", symbol, err)
	} else if len(km) > 0 {
		applyKeyMetrics(m, &km[0])
		got++
	}

	var ratios []ratiosResponse
	if err := c.fetch(ctx, "/ratios-ttm/"+url.PathEscape(symbol), nil, &ratios); err != nil {
		c.swallow("ratios", symbol, err)
	} else if len(ratios) > 0 {
		applyRatios(m, &ratios[0])
		got++
	}

	q := url.Values{}
	q.Set("limit", "1")
	var growth []growthResponse
	if err := c.fetch(ctx, "/financial-growth/"+url.PathEscape(symbol), q, &growth); err != nil {
		c.swallow("financial-growth", symbol, err)
	} else if len(growth) > 0 {
		m.RevenueGrowthYoY = growth[0].RevenueGrowth
		m.EPSGrowthYoY = growth[0].EPSGrowth
		got++
	}

	// 52-week range rides on the quote endpoint; beta on the profile.
	if raw, err := c.fetchQuote(ctx, symbol); err == nil {
		m.Week52High = raw.YearHigh
		m.Week52Low = raw.YearLow
		got++
	}
	if p := c.profileRaw(ctx, symbol); p != nil {
		m.Beta = p.Beta
	}

	if got == 0 {
		c.swallow("metrics", symbol, fmt.Errorf("all metric sources failed"))
		return nil
	}

	c.cache.Set(key, m, c.ttl.Metrics)
	return m
}

func applyKeyMetrics(m *model.Metrics, raw *keyMetricsResponse) {
	m.PE = raw.PERatioTTM
	m.PEG = raw.PEGRatioTTM
	m.PS = raw.PriceToSalesRatioTTM
	m.PB = raw.PBRatioTTM
	m.EVToEBITDA = raw.EVToEBITDATTM
	m.EarningsYield = raw.EarningsYieldTTM
	m.ROE = raw.ROETTM
	m.ROA = raw.ROATTM
	m.DebtToEquity = raw.DebtToEquityTTM
	m.CurrentRatio = raw.CurrentRatioTTM
	m.DividendYield = raw.DividendYieldTTM
	m.FreeCashFlow = raw.FreeCashFlowTTM
}

func applyRatios(m *model.Metrics, raw *ratiosResponse) {
	m.GrossMargin = raw.GrossProfitMarginTTM
	m.OperatingMargin = raw.OperatingProfitMarginTTM
	m.NetMargin = raw.NetProfitMarginTTM
	m.QuickRatio = raw.QuickRatioTTM
}
