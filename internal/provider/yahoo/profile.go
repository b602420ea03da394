package yahoo

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/quantive/marketcore/internal/model"
	"github.com/quantive/marketcore/pkg/cache"
)

// GetCompanyProfile scrapes the quote profile page, since Yahoo's JSON
// profile endpoints sit behind authenticated crumbs. Scraped markup is
// brittle; any parse shortfall degrades to nil like every other adapter
// failure.
func (c *Client) GetCompanyProfile(ctx context.Context, symbol string) *model.CompanyProfile {
	key := cacheKey("profile", symbol)
	if p, ok := cache.GetTyped[*model.CompanyProfile](c.cache, key); ok {
		return p
	}

	fullURL := fmt.Sprintf("https://finance.yahoo.com/quote/%s/profile", symbol)
	resp, err := c.get(ctx, fullURL)
	if err != nil {
		c.swallow("profile", symbol, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		c.swallow("profile", symbol, fmt.Errorf("unexpected status %d", resp.StatusCode))
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		c.swallow("profile", symbol, fmt.Errorf("parse profile page failed: %w", err))
		return nil
	}

	p := parseProfileDocument(symbol, doc)
	if p == nil {
		c.swallow("profile", symbol, fmt.Errorf("profile markup not recognized"))
		return nil
	}

	c.cache.Set(key, p, c.ttl.Profile)
	return p
}

// parseProfileDocument extracts name, sector, industry and description
// from the profile page markup.
func parseProfileDocument(symbol string, doc *goquery.Document) *model.CompanyProfile {
	p := &model.CompanyProfile{Symbol: symbol}

	if title := strings.TrimSpace(doc.Find("h1").First().Text()); title != "" {
		// "Apple Inc. (AAPL)" -> "Apple Inc."
		if i := strings.LastIndex(title, " ("); i > 0 {
			title = title[:i]
		}
		p.Name = title
	}

	// The profile stats render as dt/dd pairs.
	doc.Find("dt").EachWithBreak(func(_ int, dt *goquery.Selection) bool {
		label := strings.ToLower(strings.TrimSpace(dt.Text()))
		value := strings.TrimSpace(dt.Next().Text())
		switch {
		case strings.HasPrefix(label, "sector"):
			p.Sector = value
		case strings.HasPrefix(label, "industry"):
			p.Industry = value
		}
		return true
	})

	// Older markup uses span pairs inside the asset-profile section.
	if p.Sector == "" {
		doc.Find(`span:contains("Sector")`).Each(func(_ int, s *goquery.Selection) {
			if v := strings.TrimSpace(s.Parent().Find("a").First().Text()); v != "" && p.Sector == "" {
				p.Sector = v
			}
		})
	}

	if desc := strings.TrimSpace(doc.Find(`section[data-testid="description"] p`).First().Text()); desc != "" {
		p.Description = desc
	}

	if p.Name == "" && p.Sector == "" {
		return nil
	}
	return p
}
