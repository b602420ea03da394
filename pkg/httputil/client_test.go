package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quantive/marketcore/pkg/config"
	"github.com/quantive/marketcore/pkg/logger"
)

func testClient() *Client {
	cfg := &config.Config{HTTPTimeout: 5 * time.Second}
	return New(cfg, logger.NewNop())
}

func TestNew(t *testing.T) {
	client := testClient()
	if client == nil {
		t.Fatal("Expected client to be created")
	}
	if client.httpClient == nil {
		t.Error("Expected http.Client to be initialized")
	}
	if client.httpClient.Timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %v", client.httpClient.Timeout)
	}
	if client.retryConfig.MaxRetries != 2 {
		t.Errorf("Expected MaxRetries=2, got %d", client.retryConfig.MaxRetries)
	}
}

func TestNew_DefaultTimeout(t *testing.T) {
	client := New(&config.Config{}, logger.NewNop())
	if client.httpClient.Timeout != 10*time.Second {
		t.Errorf("Expected default timeout 10s, got %v", client.httpClient.Timeout)
	}
}

func TestGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	resp, err := testClient().Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestGetWithHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "test-agent" {
			t.Errorf("User-Agent = %q, want test-agent", got)
		}
		if got := r.Header.Get("X-Custom"); got != "value" {
			t.Errorf("X-Custom = %q, want value", got)
		}
	}))
	defer server.Close()

	resp, err := testClient().GetWithHeaders(context.Background(), server.URL, map[string]string{
		"User-Agent": "test-agent",
		"X-Custom":   "value",
	})
	if err != nil {
		t.Fatalf("GetWithHeaders() failed: %v", err)
	}
	resp.Body.Close()
}

func TestGetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"symbol": "AAPL", "price": 231.5}`))
	}))
	defer server.Close()

	var dest struct {
		Symbol string  `json:"symbol"`
		Price  float64 `json:"price"`
	}
	if err := testClient().GetJSON(context.Background(), server.URL, &dest); err != nil {
		t.Fatalf("GetJSON() failed: %v", err)
	}
	if dest.Symbol != "AAPL" || dest.Price != 231.5 {
		t.Errorf("decoded = %+v, want AAPL/231.5", dest)
	}
}

func TestGetJSON_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	var dest map[string]interface{}
	err := testClient().GetJSON(context.Background(), server.URL, &dest)
	if err == nil {
		t.Fatal("GetJSON() succeeded on a 404 response")
	}
}

func TestGetJSON_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	var dest map[string]interface{}
	if err := testClient().GetJSON(context.Background(), server.URL, &dest); err == nil {
		t.Fatal("GetJSON() succeeded on a non-JSON body")
	}
}

func TestDoWithRetry_RecoversAfterServerError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := testClient().WithRetry(2, 10*time.Millisecond)

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200 after retry", resp.StatusCode)
	}
	if attempts != 2 {
		t.Errorf("server saw %d attempts, want 2", attempts)
	}
}

func TestDoWithRetry_NoRetryOnClientError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := testClient().WithRetry(2, 10*time.Millisecond)

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	resp.Body.Close()

	if attempts != 1 {
		t.Errorf("server saw %d attempts for a 400, want 1", attempts)
	}
}

func TestDisableRetry(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := testClient().DisableRetry()

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	resp.Body.Close()

	if attempts != 1 {
		t.Errorf("server saw %d attempts with retry disabled, want 1", attempts)
	}
}

func TestIsRetryableStatus(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{http.StatusOK, false},
		{http.StatusBadRequest, false},
		{http.StatusNotFound, false},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusBadGateway, true},
		{http.StatusServiceUnavailable, true},
	}

	for _, tt := range tests {
		if got := IsRetryableStatus(tt.code); got != tt.want {
			t.Errorf("IsRetryableStatus(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
