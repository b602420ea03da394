package yahoo

import (
	"context"

	"github.com/quantive/marketcore/internal/model"
	"github.com/quantive/marketcore/pkg/cache"
)

// GetMetrics returns the thin set of fundamentals the chart metadata
// carries: the 52-week range. Everything else stays nil, which the
// scoring layer treats as insufficient information, not zero.
func (c *Client) GetMetrics(ctx context.Context, symbol string) *model.Metrics {
	key := cacheKey("metrics", symbol)
	if m, ok := cache.GetTyped[*model.Metrics](c.cache, key); ok {
		return m
	}

	meta, err := c.fetchChartMeta(ctx, symbol)
	if err != nil {
		c.swallow("metrics", symbol, err)
		return nil
	}

	m := &model.Metrics{
		Symbol:     symbol,
		Week52High: meta.FiftyTwoWeekHigh,
		Week52Low:  meta.FiftyTwoWeekLow,
	}

	c.cache.Set(key, m, c.ttl.Metrics)
	return m
}
