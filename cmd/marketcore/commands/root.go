package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	providerOverride string
	verbose          bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "marketcore",
	Short: "Market data aggregation and scoring service",
	Long: `marketcore aggregates quotes and fundamentals from rate-limited
market data providers, caches them, and derives normalized investment
scores.

Usage:
  go run ./cmd/marketcore [command]

Examples:
  go run ./cmd/marketcore api
  go run ./cmd/marketcore market
  go run ./cmd/marketcore refresh AAPL MSFT
  go run ./cmd/marketcore score AAPL`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&providerOverride, "provider", "", "override active provider (fmp|finnhub|yahoo)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
