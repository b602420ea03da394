package fmp

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/quantive/marketcore/internal/model"
	"github.com/quantive/marketcore/pkg/cache"
)

// quoteResponse is one element of FMP's /quote payload.
type quoteResponse struct {
	Symbol            string   `json:"symbol"`
	Price             *float64 `json:"price"`
	Change            *float64 `json:"change"`
	ChangesPercentage *float64 `json:"changesPercentage"`
	Open              *float64 `json:"open"`
	DayHigh           *float64 `json:"dayHigh"`
	DayLow            *float64 `json:"dayLow"`
	PreviousClose     *float64 `json:"previousClose"`
	YearHigh          *float64 `json:"yearHigh"`
	YearLow           *float64 `json:"yearLow"`
	Volume            *int64   `json:"volume"`
	Timestamp         int64    `json:"timestamp"`
}

// GetQuote returns the current quote for symbol, or nil when the
// upstream call fails or the payload cannot be validated.
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

	q := mapQuote(raw)
	c.cache.Set(key, q, c.ttl.Quote)
	return q
}

// fetchQuote retrieves and validates the raw quote payload.
func (c *Client) fetchQuote(ctx context.Context, symbol string) (*quoteResponse, error) {
	var payload []quoteResponse
	if err := c.fetch(ctx, "/quote/"+url.PathEscape(symbol), nil, &payload); err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("empty quote payload for %s", symbol)
	}
	raw := payload[0]
	if raw.Price == nil {
		// A quote without a price is unusable; discard wholesale rather
		// than partially trust the payload.
		return nil, fmt.Errorf("quote for %s missing price", symbol)
	}
	return &raw, nil
}

// mapQuote converts the vendor shape into the shared model. Missing
// numeric fields become zero values on Quote, which is ephemeral data;
// only Metrics carries the nil-means-unknown contract.
func mapQuote(raw *quoteResponse) *model.Quote {
	q := &model.Quote{
		Symbol:    raw.Symbol,
		Price:     *raw.Price,
		Timestamp: time.Now(),
	}
	if raw.Timestamp > 0 {
		q.Timestamp = time.Unix(raw.Timestamp, 0)
	}
	if raw.Change != nil {
		q.Change = *raw.Change
	}
	if raw.ChangesPercentage != nil {
		q.ChangePercent = *raw.ChangesPercentage
	}
	if raw.Open != nil {
		q.Open = *raw.Open
	}
	if raw.DayHigh != nil {
		q.High = *raw.DayHigh
	}
	if raw.DayLow != nil {
		q.Low = *raw.DayLow
	}
	if raw.PreviousClose != nil {
		q.PrevClose = *raw.PreviousClose
	}
	if raw.Volume != nil {
		q.Volume = *raw.Volume
	}
	return q
}
