package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rustyeddy/scalper/backtest"
	"github.com/rustyeddy/scalper/config"
	"github.com/rustyeddy/scalper/feed"
	"github.com/rustyeddy/scalper/internal/id"
	"github.com/rustyeddy/scalper/journal"
	"github.com/spf13/cobra"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run a single backtest",
	Long: `Backtest runs the scalping strategy over one bar series and prints a
performance report.

Bars come from a CSV file (time,open,high,low,close,volume) when -bars is
given, otherwise from the seeded synthetic generator.

Example:
  scalper backtest -config run.yaml
  scalper backtest -bars data/005930.csv -seed 7`,
	RunE: runBacktestCmd,
}

var (
	btConfigPath string
	btBarsPath   string
	btSeed       int64
	btBalance    float64
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btConfigPath, "config", "c", "", "path to config file (YAML or JSON)")
	backtestCmd.Flags().StringVarP(&btBarsPath, "bars", "b", "", "path to minute-bar CSV (overrides synthetic data)")
	backtestCmd.Flags().Int64Var(&btSeed, "seed", 0, "override generator seed")
	backtestCmd.Flags().Float64Var(&btBalance, "balance", 0, "override starting balance")
}

func runBacktestCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(btConfigPath)
	if err != nil {
		return err
	}
	if btSeed != 0 {
		cfg.Run.Seed = btSeed
	}
	if btBalance != 0 {
		cfg.Run.Balance = btBalance
	}

	bars, err := loadBars(cfg, btBarsPath)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}

	pred, err := buildPredictor(cfg)
	if err != nil {
		return fmt.Errorf("predictor: %w", err)
	}

	engine, err := backtest.NewEngine(backtest.Config{
		Instrument:     cfg.Run.Instrument,
		InitialBalance: cfg.Run.Balance,
		Params:         cfg.Strategy,
		Predictor:      pred,
		OnProgress: func(pct int) {
			fmt.Fprintf(os.Stderr, "\rbacktest: %3d%%", pct)
		},
	})
	if err != nil {
		return err
	}

	result, err := engine.Run(context.Background(), feed.FromBars(bars))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	printResult(result)

	j, err := buildJournal(cfg)
	if err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	if j != nil {
		defer j.Close()
		runID := id.New()
		if err := journal.Record(j, runID, cfg.Run.Balance, cfg.Strategy, result); err != nil {
			return fmt.Errorf("journal: %w", err)
		}
		fmt.Printf("\nJournaled run %s\n", runID)
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(path)
}
