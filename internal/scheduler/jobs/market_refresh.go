package jobs

import (
	"context"

	"github.com/quantive/marketcore/internal/aggregator"
	"github.com/quantive/marketcore/internal/model"
	"github.com/quantive/marketcore/pkg/logger"
)

// Broadcaster pushes a refreshed snapshot to connected consumers.
// Implemented by the websocket hub; nil means nobody is listening.
type Broadcaster interface {
	BroadcastMarketData(data model.MarketData)
}

// MarketRefreshJob refreshes the market snapshot on the market TTL
// cadence and pushes it to websocket subscribers.
type MarketRefreshJob struct {
	service     *aggregator.Service
	broadcaster Broadcaster
	logger      *logger.Logger
	schedule    string
}

// NewMarketRefreshJob creates a new market refresh job.
func NewMarketRefreshJob(svc *aggregator.Service, b Broadcaster, log *logger.Logger) *MarketRefreshJob {
	return &MarketRefreshJob{
		service:     svc,
		broadcaster: b,
		logger:      log,
		schedule:    "@every 5m",
	}
}

// Name returns the job name.
func (j *MarketRefreshJob) Name() string {
	return "market_refresh"
}

// Schedule returns the cron schedule expression.
func (j *MarketRefreshJob) Schedule() string {
	return j.schedule
}

// Run executes the refresh. A disconnected snapshot is still a valid
// result: fallback data reached the subscribers, which is the contract.
func (j *MarketRefreshJob) Run(ctx context.Context) error {
	data := j.service.GetMarketData(ctx)

	j.logger.WithFields(map[string]interface{}{
		"source":    data.Source,
		"connected": data.Connected,
		"indices":   len(data.Indices),
	}).Debug("Market snapshot refreshed")

	if j.broadcaster != nil {
		j.broadcaster.BroadcastMarketData(data)
	}
	return nil
}
