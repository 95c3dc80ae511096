package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("scalper version %s\n", version)
		fmt.Println("A bar-by-bar scalping backtester and parameter optimizer")
		fmt.Println("https://github.com/rustyeddy/scalper")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
