package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show provider, cache and connection status",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	// One cheap snapshot call exercises the whole pipeline.
	data := a.service.GetMarketData(cmd.Context())
	stats := a.cache.Stats()

	out, err := json.MarshalIndent(map[string]interface{}{
		"provider":      a.cfg.Provider,
		"connected":     data.Connected,
		"last_update":   data.LastUpdate,
		"redis_enabled": a.redis.Enabled(),
		"cache_entries": stats.Size,
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
