package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stocktrainer",
	Short: "A stock trading trainer: ATR risk sizing and historical replay",
	Long: `Stocktrainer is a retail stock-trading assistant core.

It provides tools for:
  - ATR (Average True Range) volatility estimation
  - Risk-based position sizing with round-lot (100 share) constraints
  - Profit/risk ratio evaluation for entry/stop/target plans
  - Replaying historical bars against a virtual trading account
  - Journaling simulated trades and session performance`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
