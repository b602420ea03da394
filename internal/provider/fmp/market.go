package fmp

import (
	"context"
	"net/url"
	"strings"

	"github.com/quantive/marketcore/internal/model"
	"github.com/quantive/marketcore/pkg/cache"
)

// FMP quotes indices and commodities directly, so none of these values
// go through the proxy calibration path.
var (
	indexSymbols = []struct{ symbol, name string }{
		{"^GSPC", "S&P 500"},
		{"^DJI", "Dow Jones Industrial Average"},
		{"^IXIC", "Nasdaq Composite"},
	}
	indicatorSymbols = []struct{ symbol, name string }{
		{"^VIX", "CBOE Volatility Index"},
		{"^TNX", "10-Year Treasury Yield"},
	}
	commoditySymbols = []struct{ symbol, name string }{
		{"GCUSD", "Gold"},
		{"CLUSD", "Crude Oil (WTI)"},
	}
)

// GetIndices returns the major index levels, or nil on failure.
func (c *Client) GetIndices(ctx context.Context) []model.MarketIndex {
	key := cacheKey("indices", "all")
	if v, ok := cache.GetTyped[[]model.MarketIndex](c.cache, key); ok {
		return v
	}

	var out []model.MarketIndex
	for _, idx := range indexSymbols {
		raw, err := c.fetchQuote(ctx, idx.symbol)
		if err != nil {
			c.swallow("indices", idx.symbol, err)
			continue
		}
		q := mapQuote(raw)
		out = append(out, model.MarketIndex{
			Symbol:        idx.symbol,
			Name:          idx.name,
			Value:         q.Price,
			Change:        q.Change,
			ChangePercent: q.ChangePercent,
		})
	}
	if len(out) == 0 {
		return nil
	}

	c.cache.Set(key, out, c.ttl.Market)
	return out
}

// GetIndicators returns market-wide gauges, or nil on failure. The
// volatility index carries a low/normal/high classification.
func (c *Client) GetIndicators(ctx context.Context) []model.MarketIndicator {
	key := cacheKey("indicators", "all")
	if v, ok := cache.GetTyped[[]model.MarketIndicator](c.cache, key); ok {
		return v
	}

	var out []model.MarketIndicator
	for _, ind := range indicatorSymbols {
		raw, err := c.fetchQuote(ctx, ind.symbol)
		if err != nil {
			c.swallow("indicators", ind.symbol, err)
			continue
		}
		q := mapQuote(raw)
		mi := model.MarketIndicator{
			Symbol:        ind.symbol,
			Name:          ind.name,
			Value:         q.Price,
			Change:        q.Change,
			ChangePercent: q.ChangePercent,
		}
		if strings.Contains(ind.symbol, "VIX") {
			mi.Status = model.ClassifyVolatility(q.Price)
		}
		out = append(out, mi)
	}
	if len(out) == 0 {
		return nil
	}

	c.cache.Set(key, out, c.ttl.Market)
	return out
}

// GetCommodities returns commodity prices, or nil on failure.
func (c *Client) GetCommodities(ctx context.Context) []model.Commodity {
	key := cacheKey("commodities", "all")
	if v, ok := cache.GetTyped[[]model.Commodity](c.cache, key); ok {
		return v
	}

	var out []model.Commodity
	for _, cm := range commoditySymbols {
		raw, err := c.fetchQuote(ctx, cm.symbol)
		if err != nil {
			c.swallow("commodities", cm.symbol, err)
			continue
		}
		q := mapQuote(raw)
		out = append(out, model.Commodity{
			Symbol:        cm.symbol,
			Name:          cm.name,
			Price:         q.Price,
			Change:        q.Change,
			ChangePercent: q.ChangePercent,
		})
	}
	if len(out) == 0 {
		return nil
	}

	c.cache.Set(key, out, c.ttl.Market)
	return out
}

// tickerResponse is one element of /stock/list.
type tickerResponse struct {
	Symbol            string `json:"symbol"`
	Name              string `json:"name"`
	ExchangeShortName string `json:"exchangeShortName"`
	Type              string `json:"type"`
}

// ListTickers returns the tradable symbol list, or nil on failure.
// The full listing is tens of thousands of rows, so it lives on the
// profile TTL tier.
func (c *Client) ListTickers(ctx context.Context) []model.Ticker {
	key := cacheKey("tickers", "all")
	if v, ok := cache.GetTyped[[]model.Ticker](c.cache, key); ok {
		return v
	}

	var payload []tickerResponse
	if err := c.fetch(ctx, "/stock/list", url.Values{}, &payload); err != nil {
		c.swallow("tickers", "", err)
		return nil
	}

	out := make([]model.Ticker, 0, len(payload))
	for _, t := range payload {
		if t.Symbol == "" || t.Type != "stock" {
			continue
		}
		out = append(out, model.Ticker{
			Symbol:   t.Symbol,
			Name:     t.Name,
			Exchange: t.ExchangeShortName,
		})
	}
	if len(out) == 0 {
		return nil
	}

	c.cache.Set(key, out, c.ttl.Profile)
	return out
}
