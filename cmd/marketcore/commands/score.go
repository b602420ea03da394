package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quantive/marketcore/internal/scoring"
)

// scoreCmd represents the score command.
var scoreCmd = &cobra.Command{
	Use:   "score <symbol>",
	Short: "Fetch fundamentals for a symbol and print its score",
	Args:  cobra.ExactArgs(1),
	RunE:  runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	symbol := strings.ToUpper(strings.TrimSpace(args[0]))

	metrics := a.service.GetMetrics(cmd.Context(), symbol)
	if metrics == nil {
		return fmt.Errorf("no metrics available for %s from provider %s", symbol, a.cfg.Provider)
	}

	result := scoring.Score(metrics)

	// Drawdown rides along when the inputs are available.
	var drawdown *float64
	if q := a.service.GetStockQuote(cmd.Context(), symbol); q != nil {
		drawdown = scoring.Drawdown(&q.Price, metrics.Week52High)
	}

	out, err := json.MarshalIndent(map[string]interface{}{
		"symbol":   symbol,
		"score":    result,
		"drawdown": drawdown,
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
