package finnhub

import (
	"context"

	"github.com/quantive/marketcore/internal/model"
	"github.com/quantive/marketcore/internal/provider/calibration"
	"github.com/quantive/marketcore/pkg/cache"
)

// Proxy instruments for data Finnhub's free tier does not expose
// directly. Levels are scaled through the calibration constants; percent
// change carries over from the proxy unscaled.
var (
	indexProxies = []struct {
		proxy, symbol, name string
		factor              float64
	}{
		{"SPY", "^GSPC", "S&P 500", calibration.SP500FromSPY},
		{"DIA", "^DJI", "Dow Jones Industrial Average", calibration.DowFromDIA},
		{"QQQ", "^IXIC", "Nasdaq Composite", calibration.NasdaqFromQQQ},
	}

	commodityProxies = []struct {
		proxy, symbol, name string
		factor              float64
	}{
		{"GLD", "XAU", "Gold", calibration.GoldFromGLD},
		{"USO", "WTI", "Crude Oil (WTI)", calibration.OilFromUSO},
	}
)

// GetIndices approximates the major index levels from tracking ETFs.
func (c *Client) GetIndices(ctx context.Context) []model.MarketIndex {
	key := cacheKey("indices", "all")
	if v, ok := cache.GetTyped[[]model.MarketIndex](c.cache, key); ok {
		return v
	}

	var out []model.MarketIndex
	for _, p := range indexProxies {
		raw, err := c.fetchQuote(ctx, p.proxy)
		if err != nil {
			c.swallow("indices", p.proxy, err)
			continue
		}
		q := mapQuote(p.proxy, raw)
		c.logApproximation(p.symbol, p.proxy)
		out = append(out, model.MarketIndex{
			Symbol:        p.symbol,
			Name:          p.name,
			Value:         calibration.Scale(p.factor, q.Price),
			Change:        calibration.Scale(p.factor, q.Change),
			ChangePercent: q.ChangePercent,
			Approximate:   true,
		})
	}
	if len(out) == 0 {
		return nil
	}

	c.cache.Set(key, out, c.ttl.Market)
	return out
}

// GetIndicators approximates the volatility index from a short-term VIX
// futures ETF. The weakest estimate the adapter produces; its drift is
// documented in the calibration package.
func (c *Client) GetIndicators(ctx context.Context) []model.MarketIndicator {
	key := cacheKey("indicators", "all")
	if v, ok := cache.GetTyped[[]model.MarketIndicator](c.cache, key); ok {
		return v
	}

	raw, err := c.fetchQuote(ctx, "VIXY")
	if err != nil {
		c.swallow("indicators", "VIXY", err)
		return nil
	}
	q := mapQuote("VIXY", raw)
	c.logApproximation("^VIX", "VIXY")

	level := calibration.Scale(calibration.VIXFromVIXY, q.Price)
	out := []model.MarketIndicator{{
		Symbol:        "^VIX",
		Name:          "CBOE Volatility Index",
		Value:         level,
		Change:        calibration.Scale(calibration.VIXFromVIXY, q.Change),
		ChangePercent: q.ChangePercent,
		Status:        model.ClassifyVolatility(level),
		Approximate:   true,
	}}

	c.cache.Set(key, out, c.ttl.Market)
	return out
}

// GetCommodities approximates spot prices from commodity funds.
func (c *Client) GetCommodities(ctx context.Context) []model.Commodity {
	key := cacheKey("commodities", "all")
	if v, ok := cache.GetTyped[[]model.Commodity](c.cache, key); ok {
		return v
	}

	var out []model.Commodity
	for _, p := range commodityProxies {
		raw, err := c.fetchQuote(ctx, p.proxy)
		if err != nil {
			c.swallow("commodities", p.proxy, err)
			continue
		}
		q := mapQuote(p.proxy, raw)
		c.logApproximation(p.symbol, p.proxy)
		out = append(out, model.Commodity{
			Symbol:        p.symbol,
			Name:          p.name,
			Price:         calibration.Scale(p.factor, q.Price),
			Change:        calibration.Scale(p.factor, q.Change),
			ChangePercent: q.ChangePercent,
			Approximate:   true,
		})
	}
	if len(out) == 0 {
		return nil
	}

	c.cache.Set(key, out, c.ttl.Market)
	return out
}

// logApproximation flags a proxy-derived value. Once per fetch, not per
// read, since reads come from cache.
func (c *Client) logApproximation(target, proxy string) {
	c.logger.WithFields(map[string]interface{}{
		"target":        target,
		"proxy":         proxy,
		"calibrated_at": calibration.ReferenceDate,
	}).Debug("Approximating level from proxy instrument")
}
