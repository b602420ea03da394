package yahoo

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/quantive/marketcore/pkg/cache"
	"github.com/quantive/marketcore/pkg/config"
	"github.com/quantive/marketcore/pkg/httputil"
	"github.com/quantive/marketcore/pkg/logger"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		HTTPTimeout: 5 * time.Second,
		Yahoo: config.ProviderConfig{
			BaseURL:    srv.URL,
			RateLimit:  1000,
			RateWindow: time.Second,
		},
		TTL: config.TTLConfig{
			Quote:   time.Minute,
			Metrics: time.Hour,
			Profile: 24 * time.Hour,
			Market:  5 * time.Minute,
		},
	}
	log := logger.NewNop()

	return NewClient(Deps{
		Config: cfg,
		Logger: log,
		HTTP:   httputil.New(cfg, log).DisableRetry(),
		Cache:  cache.New(),
	})
}

func TestGetQuote(t *testing.T) {
	var gotUA, gotPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotPath = r.URL.Path
		w.Write([]byte(`{"chart": {"result": [{"meta": {
			"symbol": "AAPL",
			"regularMarketPrice": 231.5,
			"previousClose": 230.0,
			"regularMarketDayHigh": 232.1,
			"regularMarketDayLow": 229.4,
			"regularMarketVolume": 51234000,
			"regularMarketTime": 1756600000
		}}], "error": null}}`))
	}))

	q := c.GetQuote(context.Background(), "AAPL")

	if q == nil {
		t.Fatal("GetQuote() = nil for valid payload")
	}
	if gotPath != "/v8/finance/chart/AAPL" {
		t.Errorf("request path = %q, want /v8/finance/chart/AAPL", gotPath)
	}
	if !strings.HasPrefix(gotUA, "Mozilla/") {
		t.Errorf("User-Agent = %q, want a browser UA", gotUA)
	}
	if q.Price != 231.5 {
		t.Errorf("Price = %v, want 231.5", q.Price)
	}
	// Change is derived from the previous close.
	if math.Abs(q.Change-1.5) > 1e-9 {
		t.Errorf("Change = %v, want 1.5", q.Change)
	}
	if math.Abs(q.ChangePercent-1.5/230.0*100) > 1e-9 {
		t.Errorf("ChangePercent = %v, want %v", q.ChangePercent, 1.5/230.0*100)
	}
	if q.Volume != 51234000 {
		t.Errorf("Volume = %d, want 51234000", q.Volume)
	}
	if q.Timestamp != time.Unix(1756600000, 0) {
		t.Errorf("Timestamp = %v, want unix 1756600000", q.Timestamp)
	}
}

func TestParseChartMeta(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name: "valid payload",
			body: `{"chart": {"result": [{"meta": {"symbol": "AAPL", "regularMarketPrice": 231.5}}], "error": null}}`,
		},
		{
			name:    "vendor error envelope",
			body:    `{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found"}}}`,
			wantErr: true,
		},
		{
			name:    "empty result",
			body:    `{"chart": {"result": [], "error": null}}`,
			wantErr: true,
		},
		{
			name:    "missing price",
			body:    `{"chart": {"result": [{"meta": {"symbol": "AAPL"}}], "error": null}}`,
			wantErr: true,
		},
		{
			name:    "not json",
			body:    `<html>rate limited</html>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := parseChartMeta([]byte(tt.body))
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseChartMeta() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && meta.Symbol != "AAPL" {
				t.Errorf("meta.Symbol = %q, want AAPL", meta.Symbol)
			}
		})
	}
}

func TestMapQuote_FallsBackToChartPreviousClose(t *testing.T) {
	price := 100.0
	chartPrev := 95.0
	q := mapQuote("T", &chartMeta{
		RegularMarketPrice: &price,
		ChartPreviousClose: &chartPrev,
	})

	if q.PrevClose != 95.0 {
		t.Errorf("PrevClose = %v, want 95.0", q.PrevClose)
	}
	if math.Abs(q.Change-5.0) > 1e-9 {
		t.Errorf("Change = %v, want 5.0", q.Change)
	}
}

func TestGetMetrics_CarriesOnlyRange(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart": {"result": [{"meta": {
			"symbol": "AAPL",
			"regularMarketPrice": 231.5,
			"fiftyTwoWeekHigh": 260.1,
			"fiftyTwoWeekLow": 164.1
		}}], "error": null}}`))
	}))

	m := c.GetMetrics(context.Background(), "AAPL")

	if m == nil {
		t.Fatal("GetMetrics() = nil")
	}
	if m.Week52High == nil || *m.Week52High != 260.1 {
		t.Errorf("Week52High = %v, want 260.1", m.Week52High)
	}
	if m.Week52Low == nil || *m.Week52Low != 164.1 {
		t.Errorf("Week52Low = %v, want 164.1", m.Week52Low)
	}
	// Fundamentals the chart surface cannot carry stay nil.
	if m.PE != nil || m.ROE != nil {
		t.Errorf("PE/ROE = %v/%v, want nil/nil", m.PE, m.ROE)
	}
}

func TestConnected_Keyless(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	if !c.Connected() {
		t.Error("Connected() = false for keyless adapter")
	}
}

func TestListTickers_Trending(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/finance/trending/US" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"finance": {"result": [{"quotes": [
			{"symbol": "NVDA"},
			{"symbol": ""},
			{"symbol": "TSLA"}
		]}]}}`))
	}))

	tickers := c.ListTickers(context.Background())

	if len(tickers) != 2 {
		t.Fatalf("ListTickers() returned %d tickers, want 2", len(tickers))
	}
	if tickers[0].Symbol != "NVDA" || tickers[1].Symbol != "TSLA" {
		t.Errorf("tickers = %+v, want NVDA then TSLA", tickers)
	}
}

const sampleProfileHTML = `<!DOCTYPE html>
<html><body>
<h1>Apple Inc. (AAPL)</h1>
<div class="company-stats">
  <dl>
    <dt>Sector:</dt><dd>Technology</dd>
    <dt>Industry:</dt><dd>Consumer Electronics</dd>
    <dt>Full Time Employees:</dt><dd>161,000</dd>
  </dl>
</div>
<section data-testid="description">
  <h3>Description</h3>
  <p>Apple Inc. designs, manufactures, and markets smartphones worldwide.</p>
</section>
</body></html>`

func TestParseProfileDocument(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sampleProfileHTML))
	if err != nil {
		t.Fatalf("parse sample markup: %v", err)
	}

	p := parseProfileDocument("AAPL", doc)

	if p == nil {
		t.Fatal("parseProfileDocument() = nil for recognizable markup")
	}
	if p.Name != "Apple Inc." {
		t.Errorf("Name = %q, want Apple Inc.", p.Name)
	}
	if p.Sector != "Technology" {
		t.Errorf("Sector = %q, want Technology", p.Sector)
	}
	if p.Industry != "Consumer Electronics" {
		t.Errorf("Industry = %q, want Consumer Electronics", p.Industry)
	}
	if !strings.Contains(p.Description, "designs, manufactures") {
		t.Errorf("Description = %q, want the scraped paragraph", p.Description)
	}
}

func TestParseProfileDocument_UnrecognizedMarkup(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><body><div>captcha</div></body></html>`))
	if err != nil {
		t.Fatalf("parse sample markup: %v", err)
	}

	if p := parseProfileDocument("AAPL", doc); p != nil {
		t.Errorf("parseProfileDocument() = %+v for unrecognizable markup, want nil", p)
	}
}
