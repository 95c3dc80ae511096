package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scalper",
	Short: "A bar-by-bar scalping backtester and parameter optimizer",
	Long: `Scalper is a minute-bar scalping research tool written in Go.

It provides tools for:
  - Backtesting a volume-spike scalping strategy on minute bars
  - Generating synthetic regime-switching price data
  - Grid-searching strategy parameters across thousands of combinations
  - Journaling trades and equity curves to CSV or SQLite

Complete documentation is available at https://github.com/rustyeddy/scalper`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
