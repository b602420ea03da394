package finnhub

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/quantive/marketcore/internal/model"
	"github.com/quantive/marketcore/pkg/cache"
)

// quoteResponse is Finnhub's /quote payload. Field names follow the
// vendor's single-letter convention.
type quoteResponse struct {
	Current       *float64 `json:"c"`
	Change        *float64 `json:"d"`
	ChangePercent *float64 `json:"dp"`
	High          *float64 `json:"h"`
	Low           *float64 `json:"l"`
	Open          *float64 `json:"o"`
	PrevClose     *float64 `json:"pc"`
	Timestamp     int64    `json:"t"`
}

// GetQuote returns the current quote for symbol, or nil on failure.
func (c *Client) GetQuote(ctx context.Context, symbol string) *model.Quote {
	key := cacheKey("quote", symbol)
	if q, ok := cache.GetTyped[*model.Quote](c.cache, key); ok {
		return q
	}

	raw, err := c.fetchQuote(ctx, symbol)
	if err != nil {
		c.swallow("quote", symbol, err)
		return nil
	}

	q := mapQuote(symbol, raw)
	c.cache.Set(key, q, c.ttl.Quote)
	return q
}

// fetchQuote retrieves and validates the raw quote payload. Finnhub
// answers unknown symbols with an all-zero object rather than an error,
// so a zero price is treated as a schema failure.
func (c *Client) fetchQuote(ctx context.Context, symbol string) (*quoteResponse, error) {
	q := url.Values{}
	q.Set("symbol", symbol)

	var raw quoteResponse
	if err := c.fetch(ctx, "/quote", q, &raw); err != nil {
		return nil, err
	}
	if raw.Current == nil || *raw.Current == 0 {
		return nil, fmt.Errorf("no quote data for %s", symbol)
	}
	return &raw, nil
}

func mapQuote(symbol string, raw *quoteResponse) *model.Quote {
	q := &model.Quote{
		Symbol:    symbol,
		Price:     *raw.Current,
		Timestamp: time.Now(),
	}
	if raw.Timestamp > 0 {
		q.Timestamp = time.Unix(raw.Timestamp, 0)
	}
	if raw.Change != nil {
		q.Change = *raw.Change
	}
	if raw.ChangePercent != nil {
		q.ChangePercent = *raw.ChangePercent
	}
	if raw.Open != nil {
		q.Open = *raw.Open
	}
	if raw.High != nil {
		q.High = *raw.High
	}
	if raw.Low != nil {
		q.Low = *raw.Low
	}
	if raw.PrevClose != nil {
		q.PrevClose = *raw.PrevClose
	}
	return q
}
