package fmp

import (
	"context"
	"fmt"
	"net/url"

	"github.com/quantive/marketcore/internal/model"
	"github.com/quantive/marketcore/pkg/cache"
)

// profileResponse is one element of /profile.
type profileResponse struct {
	Symbol            string   `json:"symbol"`
	CompanyName       string   `json:"companyName"`
	Sector            string   `json:"sector"`
	Industry          string   `json:"industry"`
	Description       string   `json:"description"`
	Website           string   `json:"website"`
	MktCap            *float64 `json:"mktCap"`
	FullTimeEmployees string   `json:"fullTimeEmployees"`
	Beta              *float64 `json:"beta"`
}

// GetCompanyProfile returns static company data, or nil on failure.
func (c *Client) GetCompanyProfile(ctx context.Context, symbol string) *model.CompanyProfile {
	raw := c.profileRaw(ctx, symbol)
	if raw == nil {
		return nil
	}

	p := &model.CompanyProfile{
		Symbol:      raw.Symbol,
		Name:        raw.CompanyName,
		Sector:      raw.Sector,
		Industry:    raw.Industry,
		Description: raw.Description,
		Website:     raw.Website,
		MarketCap:   raw.MktCap,
	}
	if n, err := parseEmployees(raw.FullTimeEmployees); err == nil {
		p.Employees = &n
	}
	return p
}

// profileRaw returns the cached vendor profile payload. Metrics assembly
// also reads it for beta, so it caches the raw shape, not the mapped one.
func (c *Client) profileRaw(ctx context.Context, symbol string) *profileResponse {
	key := cacheKey("profile", symbol)
	if p, ok := cache.GetTyped[*profileResponse](c.cache, key); ok {
		return p
	}

	var payload []profileResponse
	if err := c.fetch(ctx, "/profile/"+url.PathEscape(symbol), nil, &payload); err != nil {
		c.swallow("profile", symbol, err)
		return nil
	}
	if len(payload) == 0 || payload[0].Symbol == "" {
		c.swallow("profile", symbol, fmt.Errorf("empty profile payload"))
		return nil
	}

	raw := &payload[0]
	c.cache.Set(key, raw, c.ttl.Profile)
	return raw
}

func parseEmployees(s string) (int64, error) {
	var n int64
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}
