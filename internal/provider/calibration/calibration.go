// Package calibration holds the scale factors used to approximate index,
// indicator and commodity levels from tradable proxy instruments when the
// active provider has no direct feed for them.
//
// Each factor is the ratio index_level / proxy_price observed on the
// reference date below. The ratios drift as funds accrue fees, roll
// futures, or pay distributions, so every value derived through them is
// an estimate and is tagged Approximate in the shared model.
//
// Recalibration procedure: on a trading day close, take the official
// index level and the proxy's closing price from any direct source,
// divide, and replace the constant together with ReferenceDate. The
// volatility proxy (VIXY) drifts fastest because it rolls VIX futures
// monthly; recalibrate it at least quarterly.
package calibration

// ReferenceDate is the close against which all factors below were computed.
const ReferenceDate = "2025-06-13"

// Index levels from tracking ETFs.
const (
	SP500FromSPY  = 10.04 // S&P 500 ≈ SPY x 10.04
	DowFromDIA    = 100.3 // Dow Jones Industrial ≈ DIA x 100.3
	NasdaqFromQQQ = 36.4  // Nasdaq Composite ≈ QQQ x 36.4
)

// Volatility index from a short-term VIX futures ETF. The weakest
// approximation in this file; see the package comment.
const VIXFromVIXY = 0.79

// Commodity spot prices from commodity funds.
const (
	GoldFromGLD = 10.77 // gold spot (USD/oz) ≈ GLD x 10.77
	OilFromUSO  = 0.92  // WTI spot (USD/bbl) ≈ USO x 0.92
)

// Scale applies a calibration factor to a proxy price.
func Scale(factor, proxyPrice float64) float64 {
	return factor * proxyPrice
}
