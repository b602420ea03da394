package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/quantive/marketcore/internal/api/handlers"
	"github.com/quantive/marketcore/pkg/logger"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(marketHandler *handlers.MarketHandler, stockHandler *handlers.StockHandler, hub *Hub, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// API
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/market", marketHandler.GetMarketData).Methods("GET")
	api.HandleFunc("/quote/{symbol}", stockHandler.GetQuote).Methods("GET")
	api.HandleFunc("/quotes", stockHandler.GetQuotes).Methods("GET")
	api.HandleFunc("/tickers", stockHandler.ListTickers).Methods("GET")
	api.HandleFunc("/metrics/{symbol}", stockHandler.GetMetrics).Methods("GET")
	api.HandleFunc("/profile/{symbol}", stockHandler.GetProfile).Methods("GET")
	api.HandleFunc("/score/{symbol}", stockHandler.GetScore).Methods("GET")

	// Snapshot push
	if hub != nil {
		r.HandleFunc("/ws", hub.ServeWS)
	}

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status.
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "marketcore-api",
	})
}

// loggingMiddleware logs HTTP requests.
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics.
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
