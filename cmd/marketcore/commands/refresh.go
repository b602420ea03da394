package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quantive/marketcore/internal/scheduler/jobs"
	"github.com/quantive/marketcore/internal/store"
	"github.com/quantive/marketcore/pkg/database"
)

// refreshCmd represents the refresh command.
var refreshCmd = &cobra.Command{
	Use:   "refresh [symbols...]",
	Short: "Refresh metrics for symbols and persist snapshots",
	Long: `Fetch fundamentals for the given symbols (or TRACKED_SYMBOLS when
none are given), score them, and persist both snapshots when a database
is configured. Symbols are processed sequentially; the provider's rate
limiter sets the pace, so large lists take a while.

Example:
  go run ./cmd/marketcore refresh AAPL MSFT NVDA`,
	RunE: runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	symbols := a.cfg.TrackedSymbols
	if len(args) > 0 {
		symbols = make([]string, 0, len(args))
		for _, s := range args {
			symbols = append(symbols, strings.ToUpper(strings.TrimSpace(s)))
		}
	}
	if len(symbols) == 0 {
		return fmt.Errorf("no symbols given and TRACKED_SYMBOLS is empty")
	}

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
	} else {
		a.log.Warn("DATABASE_URL not set; refreshing without persistence")
	}

	job := jobs.NewMetricsRefreshJob(a.service, metricsStore, symbols, a.log)
	return job.Run(cmd.Context())
}
