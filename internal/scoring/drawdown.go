package scoring

// Drawdown returns the percentage decline of price from the 52-week
// high, or nil when either input is missing or the high is zero. Shared
// by scoring-adjacent features and external alerting.
func Drawdown(price, week52High *float64) *float64 {
	if price == nil || week52High == nil || *week52High == 0 {
		return nil
	}
	dd := (*week52High - *price) / *week52High * 100
	return &dd
}
