package model

import "time"

// Quote is a point-in-time price snapshot for one symbol.
// Quotes are ephemeral: each refresh replaces the previous one wholesale.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	PrevClose     float64   `json:"prev_close"`
	Volume        int64     `json:"volume"`
	Timestamp     time.Time `json:"timestamp"`
}

// Metrics holds fundamental ratios for one symbol.
// Every field is independently optional: a nil pointer means the upstream
// vendor did not report the value. Consumers must treat nil as unknown,
// never as zero.
type Metrics struct {
	Symbol string `json:"symbol"`

	// Valuation
	PE            *float64 `json:"pe,omitempty"`
	PEG           *float64 `json:"peg,omitempty"`
	PS            *float64 `json:"ps,omitempty"`
	PB            *float64 `json:"pb,omitempty"`
	EVToEBITDA    *float64 `json:"ev_to_ebitda,omitempty"`
	EarningsYield *float64 `json:"earnings_yield,omitempty"`

	// Profitability
	ROE             *float64 `json:"roe,omitempty"`
	ROA             *float64 `json:"roa,omitempty"`
	GrossMargin     *float64 `json:"gross_margin,omitempty"`
	OperatingMargin *float64 `json:"operating_margin,omitempty"`
	NetMargin       *float64 `json:"net_margin,omitempty"`
	FreeCashFlow    *float64 `json:"free_cash_flow,omitempty"`

	// Growth (YoY fractions, 0.25 == 25%)
	RevenueGrowthYoY *float64 `json:"revenue_growth_yoy,omitempty"`
	EPSGrowthYoY     *float64 `json:"eps_growth_yoy,omitempty"`

	// Leverage / liquidity / volatility
	DebtToEquity *float64 `json:"debt_to_equity,omitempty"`
	CurrentRatio *float64 `json:"current_ratio,omitempty"`
	QuickRatio   *float64 `json:"quick_ratio,omitempty"`
	Beta         *float64 `json:"beta,omitempty"`

	// Income / range
	DividendYield *float64 `json:"dividend_yield,omitempty"`
	Week52High    *float64 `json:"week52_high,omitempty"`
	Week52Low     *float64 `json:"week52_low,omitempty"`
}

// Ticker identifies one tradable symbol.
type Ticker struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange,omitempty"`
}

// CompanyProfile is mostly-static descriptive data, cached on the long tier.
type CompanyProfile struct {
	Symbol      string   `json:"symbol"`
	Name        string   `json:"name"`
	Sector      string   `json:"sector,omitempty"`
	Industry    string   `json:"industry,omitempty"`
	Description string   `json:"description,omitempty"`
	Website     string   `json:"website,omitempty"`
	MarketCap   *float64 `json:"market_cap,omitempty"`
	Employees   *int64   `json:"employees,omitempty"`
}

// MarketIndex is a broad market index level (S&P 500, Dow, Nasdaq).
// When the active provider has no direct index feed the level is
// approximated from a tracking ETF; Approximate is set in that case.
type MarketIndex struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Value         float64 `json:"value"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Approximate   bool    `json:"approximate,omitempty"`
}

// IndicatorStatus classifies an indicator value against its usual range.
type IndicatorStatus string

const (
	StatusLow    IndicatorStatus = "low"
	StatusNormal IndicatorStatus = "normal"
	StatusHigh   IndicatorStatus = "high"
)

// ClassifyVolatility buckets a volatility index level against its usual
// trading range.
func ClassifyVolatility(v float64) IndicatorStatus {
	switch {
	case v < 15:
		return StatusLow
	case v <= 25:
		return StatusNormal
	default:
		return StatusHigh
	}
}

// MarketIndicator is a market-wide gauge such as the volatility index.
type MarketIndicator struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Value         float64         `json:"value"`
	Change        float64         `json:"change"`
	ChangePercent float64         `json:"change_percent"`
	Status        IndicatorStatus `json:"status,omitempty"`
	Approximate   bool            `json:"approximate,omitempty"`
}

// Commodity is a spot-ish commodity price (gold, oil), possibly proxied
// through a tradable fund.
type Commodity struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Approximate   bool    `json:"approximate,omitempty"`
}

// FearGreed is the composite sentiment reading derived from volatility.
type FearGreed struct {
	Score int    `json:"score"` // 0 (extreme fear) .. 100 (extreme greed)
	Label string `json:"label"`
}

// MarketData is the envelope the aggregator hands to callers. It is always
// structurally complete: on provider failure the fields carry default
// snapshot values and Connected is false.
type MarketData struct {
	Indices     []MarketIndex     `json:"indices"`
	Indicators  []MarketIndicator `json:"indicators"`
	Commodities []Commodity       `json:"commodities"`
	FearGreed   FearGreed         `json:"fear_greed"`
	LastUpdate  time.Time         `json:"last_update"`
	Source      string            `json:"source"`
	Connected   bool              `json:"connected"`
}

// Float returns a pointer to v. Convenience for building Metrics values.
func Float(v float64) *float64 { return &v }
