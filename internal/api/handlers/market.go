package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/quantive/marketcore/internal/aggregator"
	"github.com/quantive/marketcore/pkg/logger"
)

// MarketHandler handles market snapshot API endpoints.
type MarketHandler struct {
	service *aggregator.Service
	logger  *logger.Logger
}

// NewMarketHandler creates a new market handler.
func NewMarketHandler(svc *aggregator.Service, log *logger.Logger) *MarketHandler {
	return &MarketHandler{
		service: svc,
		logger:  log,
	}
}

// GetMarketData returns the market snapshot.
// GET /api/market
//
// The aggregator never hard-fails: on provider outage the response
// carries default data with connected=false, so this endpoint has no
// error path beyond the recovery middleware.
func (h *MarketHandler) GetMarketData(w http.ResponseWriter, r *http.Request) {
	data := h.service.GetMarketData(r.Context())
	respondJSON(w, http.StatusOK, data)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
