package main

import (
	"os"

	"github.com/quantive/marketcore/cmd/marketcore/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
