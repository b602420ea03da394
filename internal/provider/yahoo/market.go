package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/quantive/marketcore/internal/model"
	"github.com/quantive/marketcore/pkg/cache"
)

// Yahoo quotes index and futures symbols directly through the chart API.
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
		{"GC=F", "Gold"},
		{"CL=F", "Crude Oil (WTI)"},
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
		meta, err := c.fetchChartMeta(ctx, idx.symbol)
		if err != nil {
			c.swallow("indices", idx.symbol, err)
			continue
		}
		q := mapQuote(idx.symbol, meta)
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

// GetIndicators returns market-wide gauges, or nil on failure.
func (c *Client) GetIndicators(ctx context.Context) []model.MarketIndicator {
	key := cacheKey("indicators", "all")
	if v, ok := cache.GetTyped[[]model.MarketIndicator](c.cache, key); ok {
		return v
	}

	var out []model.MarketIndicator
	for _, ind := range indicatorSymbols {
		meta, err := c.fetchChartMeta(ctx, ind.symbol)
		if err != nil {
			c.swallow("indicators", ind.symbol, err)
			continue
		}
		q := mapQuote(ind.symbol, meta)
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

// GetCommodities returns front-month futures prices, or nil on failure.
func (c *Client) GetCommodities(ctx context.Context) []model.Commodity {
	key := cacheKey("commodities", "all")
	if v, ok := cache.GetTyped[[]model.Commodity](c.cache, key); ok {
		return v
	}

	var out []model.Commodity
	for _, cm := range commoditySymbols {
		meta, err := c.fetchChartMeta(ctx, cm.symbol)
		if err != nil {
			c.swallow("commodities", cm.symbol, err)
			continue
		}
		q := mapQuote(cm.symbol, meta)
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

// trendingResponse is the /v1/finance/trending envelope.
type trendingResponse struct {
	Finance struct {
		Result []struct {
			Quotes []struct {
				Symbol string `json:"symbol"`
			} `json:"quotes"`
		} `json:"result"`
	} `json:"finance"`
}

// ListTickers returns the current US trending symbols. Yahoo has no
// full-listing endpoint, so trending is the closest available surface.
func (c *Client) ListTickers(ctx context.Context) []model.Ticker {
	key := cacheKey("tickers", "trending")
	if v, ok := cache.GetTyped[[]model.Ticker](c.cache, key); ok {
		return v
	}

	fullURL := c.cfg.BaseURL + "/v1/finance/trending/US"
	resp, err := c.get(ctx, fullURL)
	if err != nil {
		c.swallow("tickers", "", err)
		return nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.swallow("tickers", "", err)
		return nil
	}

	var payload trendingResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		c.swallow("tickers", "", fmt.Errorf("parse trending response failed: %w", err))
		return nil
	}
	if len(payload.Finance.Result) == 0 {
		return nil
	}

	var out []model.Ticker
	for _, q := range payload.Finance.Result[0].Quotes {
		if q.Symbol == "" {
			continue
		}
		out = append(out, model.Ticker{Symbol: q.Symbol})
	}
	if len(out) == 0 {
		return nil
	}

	c.cache.Set(key, out, c.ttl.Market)
	return out
}
