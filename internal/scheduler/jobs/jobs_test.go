package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/quantive/marketcore/internal/aggregator"
	"github.com/quantive/marketcore/internal/model"
	"github.com/quantive/marketcore/pkg/logger"
)

type stubProvider struct {
	metrics map[string]*model.Metrics
}

func (p *stubProvider) Name() string    { return "stub" }
func (p *stubProvider) Connected() bool { return true }

func (p *stubProvider) ListTickers(ctx context.Context) []model.Ticker { return nil }

func (p *stubProvider) GetQuote(ctx context.Context, symbol string) *model.Quote { return nil }

func (p *stubProvider) GetMetrics(ctx context.Context, symbol string) *model.Metrics {
	return p.metrics[symbol]
}

func (p *stubProvider) GetIndices(ctx context.Context) []model.MarketIndex {
	return []model.MarketIndex{{Symbol: "^GSPC", Name: "S&P 500", Value: 5500}}
}

func (p *stubProvider) GetIndicators(ctx context.Context) []model.MarketIndicator {
	return []model.MarketIndicator{{Symbol: "^VIX", Value: 16}}
}

func (p *stubProvider) GetCommodities(ctx context.Context) []model.Commodity {
	return []model.Commodity{{Symbol: "XAU", Name: "Gold", Price: 2400}}
}

func (p *stubProvider) GetCompanyProfile(ctx context.Context, symbol string) *model.CompanyProfile {
	return nil
}

type recordingBroadcaster struct {
	sent []model.MarketData
}

func (b *recordingBroadcaster) BroadcastMarketData(data model.MarketData) {
	b.sent = append(b.sent, data)
}

func stubService(p *stubProvider) *aggregator.Service {
	return aggregator.New(p, nil, time.Minute, logger.NewNop())
}

func TestMarketRefreshJob_BroadcastsSnapshot(t *testing.T) {
	b := &recordingBroadcaster{}
	job := NewMarketRefreshJob(stubService(&stubProvider{}), b, logger.NewNop())

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(b.sent) != 1 {
		t.Fatalf("broadcast %d snapshots, want 1", len(b.sent))
	}
	if b.sent[0].Source != "stub" || !b.sent[0].Connected {
		t.Errorf("broadcast snapshot = %+v, want live stub snapshot", b.sent[0])
	}
}

func TestMarketRefreshJob_NilBroadcaster(t *testing.T) {
	job := NewMarketRefreshJob(stubService(&stubProvider{}), nil, logger.NewNop())

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func TestMetricsRefreshJob_PartialFailureSucceeds(t *testing.T) {
	p := &stubProvider{
		metrics: map[string]*model.Metrics{
			"AAPL": {Symbol: "AAPL", PE: model.Float(28.5)},
		},
	}
	job := NewMetricsRefreshJob(stubService(p), nil, []string{"AAPL", "GHOST"}, logger.NewNop())

	if err := job.Run(context.Background()); err != nil {
		t.Errorf("Run() error = %v, want nil when at least one symbol refreshed", err)
	}
}

func TestMetricsRefreshJob_AllSymbolsFail(t *testing.T) {
	job := NewMetricsRefreshJob(stubService(&stubProvider{}), nil, []string{"A", "B"}, logger.NewNop())

	if err := job.Run(context.Background()); err == nil {
		t.Error("Run() = nil when every symbol failed, want error")
	}
}

func TestMetricsRefreshJob_NoSymbols(t *testing.T) {
	job := NewMetricsRefreshJob(stubService(&stubProvider{}), nil, nil, logger.NewNop())

	if err := job.Run(context.Background()); err != nil {
		t.Errorf("Run() error = %v for empty symbol list, want nil", err)
	}
}

func TestMetricsRefreshJob_ContextCancelled(t *testing.T) {
	p := &stubProvider{
		metrics: map[string]*model.Metrics{"AAPL": {Symbol: "AAPL"}},
	}
	job := NewMetricsRefreshJob(stubService(p), nil, []string{"AAPL"}, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := job.Run(ctx); err != context.Canceled {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
