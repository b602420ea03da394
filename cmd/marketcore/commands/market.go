package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// marketCmd represents the market command.
var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "Print the current market snapshot",
	Long: `Fetch the market snapshot (indices, indicators, commodities,
fear/greed) from the active provider and print it as JSON. On provider
outage the snapshot contains default values and "connected": false.`,
	RunE: runMarket,
}

func init() {
	rootCmd.AddCommand(marketCmd)
}

func runMarket(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	data := a.service.GetMarketData(cmd.Context())

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
