package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/quantive/marketcore/internal/aggregator"
	"github.com/quantive/marketcore/internal/scoring"
	"github.com/quantive/marketcore/pkg/logger"
)

// StockHandler handles per-symbol API endpoints.
type StockHandler struct {
	service *aggregator.Service
	logger  *logger.Logger
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(svc *aggregator.Service, log *logger.Logger) *StockHandler {
	return &StockHandler{
		service: svc,
		logger:  log,
	}
}

// GetQuote returns the current quote for one symbol.
// GET /api/quote/{symbol}
func (h *StockHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	symbol := symbolFrom(r)
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	quote := h.service.GetStockQuote(r.Context(), symbol)
	if quote == nil {
		respondError(w, http.StatusNotFound, "no quote available for "+symbol)
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// GetQuotes returns quotes for a comma-separated symbol list.
// GET /api/quotes?symbols=AAPL,MSFT
func (h *StockHandler) GetQuotes(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("symbols")
	if raw == "" {
		respondError(w, http.StatusBadRequest, "symbols query parameter is required")
		return
	}

	var symbols []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			symbols = append(symbols, s)
		}
	}

	quotes := h.service.GetStockQuotes(r.Context(), symbols)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"requested": len(symbols),
		"quotes":    quotes,
	})
}

// ListTickers returns the provider's symbol listing.
// GET /api/tickers
func (h *StockHandler) ListTickers(w http.ResponseWriter, r *http.Request) {
	tickers := h.service.ListTickers(r.Context())
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(tickers),
		"tickers": tickers,
	})
}

// GetMetrics returns fundamentals for one symbol.
// GET /api/metrics/{symbol}
func (h *StockHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	symbol := symbolFrom(r)
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	metrics := h.service.GetMetrics(r.Context(), symbol)
	if metrics == nil {
		respondError(w, http.StatusNotFound, "no metrics available for "+symbol)
		return
	}

	respondJSON(w, http.StatusOK, metrics)
}

// GetProfile returns static company data for one symbol.
// GET /api/profile/{symbol}
func (h *StockHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	symbol := symbolFrom(r)
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	profile := h.service.GetCompanyProfile(r.Context(), symbol)
	if profile == nil {
		respondError(w, http.StatusNotFound, "no profile available for "+symbol)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// GetScore fetches fresh metrics for the symbol and scores them.
// GET /api/score/{symbol}
func (h *StockHandler) GetScore(w http.ResponseWriter, r *http.Request) {
	symbol := symbolFrom(r)
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	metrics := h.service.GetMetrics(r.Context(), symbol)
	if metrics == nil {
		respondError(w, http.StatusNotFound, "no metrics available for "+symbol)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"symbol": symbol,
		"score":  scoring.Score(metrics),
	})
}

func symbolFrom(r *http.Request) string {
	return strings.ToUpper(strings.TrimSpace(mux.Vars(r)["symbol"]))
}
