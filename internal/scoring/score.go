// Package scoring converts fundamentals into bounded, comparable scores.
// Everything here is a pure function: no I/O, no caching, deterministic
// for identical input.
package scoring

import (
	"strings"

	"github.com/quantive/marketcore/internal/model"
)

// Result carries the four sub-scores and the weighted total, all in
// [0,100], plus a short explanation of the most notable factors.
type Result struct {
	Quality     float64 `json:"quality"`
	Growth      float64 `json:"growth"`
	Value       float64 `json:"value"`
	Risk        float64 `json:"risk"` // higher = lower risk
	Total       float64 `json:"total"`
	Explanation string  `json:"explanation"`
}

// Canonical sub-score weights. Two schemes circulated historically
// (40/30/20/10 and 30/25/25/20); 40/30/20/10 is the documented choice
// and changing it is a product decision, not a refactor.
const (
	weightQuality = 0.40
	weightGrowth  = 0.30
	weightValue   = 0.20
	weightRisk    = 0.10
)

// neutral is the score substituted for an absent metric. Excluding
// absent metrics instead would bias the mean toward whichever fields a
// vendor happens to populate.
const neutral = 50.0

// Reasonable ranges, as fractions where the metric is a ratio of values
// (ROE 0.20 == 20%).
var (
	rangeROE             = bounds{0, 0.30}
	rangeROA             = bounds{0, 0.15}
	rangeGrossMargin     = bounds{0.20, 0.60}
	rangeOperatingMargin = bounds{0, 0.25}
	rangeNetMargin       = bounds{0, 0.20}

	rangeRevenueGrowth = bounds{-0.10, 0.40}
	rangeEPSGrowth     = bounds{-0.10, 0.40}

	rangePE  = bounds{5, 40}
	rangePEG = bounds{0.5, 3}
	rangePS  = bounds{0.5, 10}
	rangePB  = bounds{0.5, 10}

	rangeDebtToEquity = bounds{0, 2}
	rangeCurrentRatio = bounds{0.5, 2.5}
	rangeQuickRatio   = bounds{0.25, 2}
	rangeBetaDistance = bounds{0, 1} // |beta - 1|
)

type bounds struct{ min, max float64 }

// Normalize maps value onto [0,100] linearly across [min,max], clamped.
func Normalize(value, min, max float64) float64 {
	if max == min {
		return neutral
	}
	f := (value - min) / (max - min)
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return 100 * f
}

// NormalizeInverted is Normalize for metrics where lower is better.
func NormalizeInverted(value, min, max float64) float64 {
	return 100 - Normalize(value, min, max)
}

// norm normalizes an optional metric, substituting neutral when absent.
func norm(v *float64, b bounds) float64 {
	if v == nil {
		return neutral
	}
	return Normalize(*v, b.min, b.max)
}

// normInv is norm for metrics where lower is better.
func normInv(v *float64, b bounds) float64 {
	if v == nil {
		return neutral
	}
	return NormalizeInverted(*v, b.min, b.max)
}

// Score converts metrics into a Result using the canonical weighting.
func Score(m *model.Metrics) Result {
	quality := qualityScore(m)
	growth := growthScore(m)
	value := valueScore(m)
	risk := riskScore(m)

	total := quality*weightQuality +
		growth*weightGrowth +
		value*weightValue +
		risk*weightRisk

	return Result{
		Quality:     quality,
		Growth:      growth,
		Value:       value,
		Risk:        risk,
		Total:       total,
		Explanation: explain(m),
	}
}

// qualityScore averages profitability and cash-generation signals.
func qualityScore(m *model.Metrics) float64 {
	components := []float64{
		norm(m.ROE, rangeROE),
		norm(m.ROA, rangeROA),
		norm(m.GrossMargin, rangeGrossMargin),
		norm(m.OperatingMargin, rangeOperatingMargin),
		norm(m.NetMargin, rangeNetMargin),
		fcfScore(m.FreeCashFlow),
	}
	return mean(components)
}

// fcfScore treats free cash flow by sign: magnitudes are not comparable
// across companies without scaling by size, but the sign is.
func fcfScore(fcf *float64) float64 {
	switch {
	case fcf == nil:
		return neutral
	case *fcf > 0:
		return 100
	default:
		return 0
	}
}

// growthScore averages year-over-year revenue and EPS growth.
func growthScore(m *model.Metrics) float64 {
	components := []float64{
		norm(m.RevenueGrowthYoY, rangeRevenueGrowth),
		norm(m.EPSGrowthYoY, rangeEPSGrowth),
	}
	return mean(components)
}

// valueScore averages inverted valuation multiples. PEG is growth-
// adjusted, so it gets double the weight of the plain multiples.
func valueScore(m *model.Metrics) float64 {
	peg := normInv(m.PEG, rangePEG)
	components := []float64{
		peg,
		peg, // PEG counted twice
		normInv(m.PE, rangePE),
		normInv(m.PS, rangePS),
		normInv(m.PB, rangePB),
	}
	return mean(components)
}

// riskScore averages leverage, liquidity and beta stability. Higher
// output means lower risk.
func riskScore(m *model.Metrics) float64 {
	components := []float64{
		normInv(m.DebtToEquity, rangeDebtToEquity),
		norm(m.CurrentRatio, rangeCurrentRatio),
		norm(m.QuickRatio, rangeQuickRatio),
		betaScore(m.Beta),
	}
	return mean(components)
}

// betaScore rewards proximity to the market beta of 1.
func betaScore(beta *float64) float64 {
	if beta == nil {
		return neutral
	}
	dist := *beta - 1
	if dist < 0 {
		dist = -dist
	}
	return NormalizeInverted(dist, rangeBetaDistance.min, rangeBetaDistance.max)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return neutral
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Notable-factor thresholds for the explanation text.
const (
	notableROE           = 0.15
	notableRevenueGrowth = 0.10
	notableEPSGrowth     = 0.10
	notablePEG           = 1.5
	notableDebtToEquity  = 1.0
)

// explain builds up to three phrases, at most one per sub-score, walked
// in the fixed order quality, growth, value, risk so identical input
// always yields identical text.
func explain(m *model.Metrics) string {
	var phrases []string

	// Quality
	switch {
	case m.ROE != nil && *m.ROE >= notableROE:
		phrases = append(phrases, "ROE at or above 15%")
	case m.FreeCashFlow != nil && *m.FreeCashFlow > 0:
		phrases = append(phrases, "positive free cash flow")
	}

	// Growth
	switch {
	case m.RevenueGrowthYoY != nil && *m.RevenueGrowthYoY >= notableRevenueGrowth:
		phrases = append(phrases, "double-digit revenue growth")
	case m.EPSGrowthYoY != nil && *m.EPSGrowthYoY >= notableEPSGrowth:
		phrases = append(phrases, "double-digit EPS growth")
	}

	// Value
	if m.PEG != nil && *m.PEG <= notablePEG && *m.PEG > 0 {
		phrases = append(phrases, "PEG at or below 1.5")
	}

	// Risk
	if m.DebtToEquity != nil && *m.DebtToEquity <= notableDebtToEquity && len(phrases) < 3 {
		phrases = append(phrases, "moderate leverage")
	}

	if len(phrases) == 0 {
		return "insufficient data for notable factors"
	}
	if len(phrases) > 3 {
		phrases = phrases[:3]
	}
	return strings.Join(phrases, "; ")
}
