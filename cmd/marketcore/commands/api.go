package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantive/marketcore/internal/api"
	"github.com/quantive/marketcore/internal/api/handlers"
	"github.com/quantive/marketcore/internal/scheduler"
	"github.com/quantive/marketcore/internal/scheduler/jobs"
	"github.com/quantive/marketcore/internal/store"
	"github.com/quantive/marketcore/pkg/database"
)

// apiCmd represents the api command.
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the REST API server",
	Long: `Start the REST API server with the background refresh scheduler.

Endpoints:
  GET  /health               - Health check
  GET  /api/market           - Market snapshot (indices, indicators, commodities, fear/greed)
  GET  /api/quote/{symbol}   - Single quote
  GET  /api/quotes?symbols=  - Batch quotes
  GET  /api/tickers          - Symbol listing
  GET  /api/metrics/{symbol} - Fundamentals
  GET  /api/profile/{symbol} - Company profile
  GET  /api/score/{symbol}   - Investment score
  WS   /ws                   - Snapshot push on each refresh

Example:
  go run ./cmd/marketcore api
  go run ./cmd/marketcore api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	a.log.WithFields(map[string]interface{}{
		"port":     a.cfg.Port,
		"provider": a.cfg.Provider,
	}).Info("Initializing API server")

	// Optional persistence sink
	var metricsStore *store.MetricsStore
	if a.cfg.Database.Enabled {
		db, err := database.New(a.cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		metricsStore = store.NewMetricsStore(db.Pool)
		if err := metricsStore.EnsureSchema(cmd.Context()); err != nil {
			return err
		}
		a.log.Info("Connected to database")
	}

	// Websocket hub + refresh scheduler
	hub := api.NewHub(a.log)

	sched := scheduler.New(a.log)
	if err := sched.AddJob(jobs.NewMarketRefreshJob(a.service, hub, a.log)); err != nil {
		return err
	}
	if err := sched.AddJob(jobs.NewMetricsRefreshJob(a.service, metricsStore, a.cfg.TrackedSymbols, a.log)); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	// HTTP server
	marketHandler := handlers.NewMarketHandler(a.service, a.log)
	stockHandler := handlers.NewStockHandler(a.service, a.log)
	router := api.NewRouter(marketHandler, stockHandler, hub, a.log)
	server := api.New(a.cfg, a.log, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		a.log.WithField("signal", sig.String()).Info("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
