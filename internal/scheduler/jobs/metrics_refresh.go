package jobs

import (
	"context"
	"fmt"

	"github.com/quantive/marketcore/internal/aggregator"
	"github.com/quantive/marketcore/internal/scoring"
	"github.com/quantive/marketcore/internal/store"
	"github.com/quantive/marketcore/pkg/logger"
)

// MetricsRefreshJob re-fetches fundamentals for the tracked symbols once
// per metrics TTL and persists metrics plus derived scores. Symbols run
// strictly sequentially; the adapters' rate limiters set the pace.
type MetricsRefreshJob struct {
	service *aggregator.Service
	store   *store.MetricsStore // nil when no database is configured
	symbols []string
	logger  *logger.Logger
}

// NewMetricsRefreshJob creates a new metrics refresh job.
func NewMetricsRefreshJob(svc *aggregator.Service, st *store.MetricsStore, symbols []string, log *logger.Logger) *MetricsRefreshJob {
	return &MetricsRefreshJob{
		service: svc,
		store:   st,
		symbols: symbols,
		logger:  log,
	}
}

// Name returns the job name.
func (j *MetricsRefreshJob) Name() string {
	return "metrics_refresh"
}

// Schedule returns the cron schedule expression.
func (j *MetricsRefreshJob) Schedule() string {
	return "@every 1h"
}

// Run refreshes each tracked symbol. Per-symbol failures are counted,
// not fatal; the job fails only when every symbol failed.
func (j *MetricsRefreshJob) Run(ctx context.Context) error {
	if len(j.symbols) == 0 {
		j.logger.Debug("No tracked symbols configured; skipping metrics refresh")
		return nil
	}

	refreshed, failed := 0, 0
	for _, symbol := range j.symbols {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		m := j.service.GetMetrics(ctx, symbol)
		if m == nil {
			failed++
			continue
		}
		refreshed++

		if j.store == nil {
			continue
		}
		if err := j.store.SaveMetrics(ctx, j.service.Provider(), m); err != nil {
			j.logger.WithField("symbol", symbol).WithError(err).Warn("Failed to persist metrics snapshot")
			continue
		}
		if err := j.store.SaveScore(ctx, symbol, scoring.Score(m)); err != nil {
			j.logger.WithField("symbol", symbol).WithError(err).Warn("Failed to persist score snapshot")
		}
	}

	j.logger.WithFields(map[string]interface{}{
		"refreshed": refreshed,
		"failed":    failed,
	}).Info("Metrics refresh finished")

	if refreshed == 0 {
		return fmt.Errorf("all %d tracked symbols failed to refresh", failed)
	}
	return nil
}
