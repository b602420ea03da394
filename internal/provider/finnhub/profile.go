package finnhub

import (
	"context"
	"fmt"
	"net/url"

	"github.com/quantive/marketcore/internal/model"
	"github.com/quantive/marketcore/pkg/cache"
)

// profileResponse is Finnhub's /stock/profile2 payload.
type profileResponse struct {
	Name                 string   `json:"name"`
	Ticker               string   `json:"ticker"`
	FinnhubIndustry      string   `json:"finnhubIndustry"`
	WebURL               string   `json:"weburl"`
	MarketCapitalization *float64 `json:"marketCapitalization"` // millions USD
}

// GetCompanyProfile returns static company data, or nil on failure.
// Finnhub has no sector taxonomy on the free tier; Industry doubles for
// both fields downstream.
func (c *Client) GetCompanyProfile(ctx context.Context, symbol string) *model.CompanyProfile {
	key := cacheKey("profile", symbol)
	if p, ok := cache.GetTyped[*model.CompanyProfile](c.cache, key); ok {
		return p
	}

	q := url.Values{}
	q.Set("symbol", symbol)

	var raw profileResponse
	if err := c.fetch(ctx, "/stock/profile2", q, &raw); err != nil {
		c.swallow("profile", symbol, err)
		return nil
	}
	if raw.Ticker == "" {
		c.swallow("profile", symbol, fmt.Errorf("empty profile payload"))
		return nil
	}

	p := &model.CompanyProfile{
		Symbol:   raw.Ticker,
		Name:     raw.Name,
		Industry: raw.FinnhubIndustry,
		Website:  raw.WebURL,
	}
	if raw.MarketCapitalization != nil {
		cap := *raw.MarketCapitalization * 1e6 // vendor reports millions
		p.MarketCap = &cap
	}

	c.cache.Set(key, p, c.ttl.Profile)
	return p
}

// symbolResponse is one element of /stock/symbol.
type symbolResponse struct {
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
	Type        string `json:"type"`
	MIC         string `json:"mic"`
}

// ListTickers returns the US common stock listing, or nil on failure.
func (c *Client) ListTickers(ctx context.Context) []model.Ticker {
	key := cacheKey("tickers", "US")
	if v, ok := cache.GetTyped[[]model.Ticker](c.cache, key); ok {
		return v
	}

	q := url.Values{}
	q.Set("exchange", "US")

	var payload []symbolResponse
	if err := c.fetch(ctx, "/stock/symbol", q, &payload); err != nil {
		c.swallow("tickers", "", err)
		return nil
	}

	out := make([]model.Ticker, 0, len(payload))
	for _, t := range payload {
		if t.Symbol == "" || t.Type != "Common Stock" {
			continue
		}
		out = append(out, model.Ticker{
			Symbol:   t.Symbol,
			Name:     t.Description,
			Exchange: t.MIC,
		})
	}
	if len(out) == 0 {
		return nil
	}

	c.cache.Set(key, out, c.ttl.Profile)
	return out
}
