package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/quantive/marketcore/internal/model"
	"github.com/quantive/marketcore/pkg/cache"
)

// chartResponse mirrors the /v8/finance/chart payload down to the parts
// this adapter reads. Everything needed for a snapshot quote lives in
// the result metadata.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta chartMeta `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartMeta struct {
	Symbol               string   `json:"symbol"`
	RegularMarketPrice   *float64 `json:"regularMarketPrice"`
	ChartPreviousClose   *float64 `json:"chartPreviousClose"`
	PreviousClose        *float64 `json:"previousClose"`
	RegularMarketDayHigh *float64 `json:"regularMarketDayHigh"`
	RegularMarketDayLow  *float64 `json:"regularMarketDayLow"`
	RegularMarketVolume  *int64   `json:"regularMarketVolume"`
	FiftyTwoWeekHigh     *float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow      *float64 `json:"fiftyTwoWeekLow"`
	RegularMarketTime    int64    `json:"regularMarketTime"`
}

// GetQuote returns the current quote for symbol, or nil on failure.
func (c *Client) GetQuote(ctx context.Context, symbol string) *model.Quote {
	key := cacheKey("quote", symbol)
	if q, ok := cache.GetTyped[*model.Quote](c.cache, key); ok {
		return q
	}

	meta, err := c.fetchChartMeta(ctx, symbol)
	if err != nil {
		c.swallow("quote", symbol, err)
		return nil
	}

	q := mapQuote(symbol, meta)
	c.cache.Set(key, q, c.ttl.Quote)
	return q
}

// fetchChartMeta retrieves and validates one chart metadata block.
func (c *Client) fetchChartMeta(ctx context.Context, symbol string) (*chartMeta, error) {
	fullURL := fmt.Sprintf("%s/v8/finance/chart/%s?range=1d&interval=1d", c.cfg.BaseURL, url.PathEscape(symbol))

	resp, err := c.get(ctx, fullURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body failed: %w", err)
	}

	return parseChartMeta(body)
}

// parseChartMeta validates the vendor envelope. Unvalidatable payloads
// are rejected wholesale rather than partially trusted.
func parseChartMeta(body []byte) (*chartMeta, error) {
	var payload chartResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse chart response failed: %w", err)
	}
	if payload.Chart.Error != nil {
		return nil, fmt.Errorf("chart error: %s", payload.Chart.Error.Code)
	}
	if len(payload.Chart.Result) == 0 {
		return nil, fmt.Errorf("empty chart result")
	}

	meta := payload.Chart.Result[0].Meta
	if meta.RegularMarketPrice == nil {
		return nil, fmt.Errorf("chart meta missing price")
	}
	return &meta, nil
}

func mapQuote(symbol string, meta *chartMeta) *model.Quote {
	q := &model.Quote{
		Symbol:    symbol,
		Price:     *meta.RegularMarketPrice,
		Timestamp: time.Now(),
	}
	if meta.RegularMarketTime > 0 {
		q.Timestamp = time.Unix(meta.RegularMarketTime, 0)
	}

	prev := meta.PreviousClose
	if prev == nil {
		prev = meta.ChartPreviousClose
	}
	if prev != nil && *prev != 0 {
		q.PrevClose = *prev
		q.Change = q.Price - *prev
		q.ChangePercent = q.Change / *prev * 100
	}
	if meta.RegularMarketDayHigh != nil {
		q.High = *meta.RegularMarketDayHigh
	}
	if meta.RegularMarketDayLow != nil {
		q.Low = *meta.RegularMarketDayLow
	}
	if meta.RegularMarketVolume != nil {
		q.Volume = *meta.RegularMarketVolume
	}
	return q
}
