package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rustyeddy/scalper/backtest"
	"github.com/rustyeddy/scalper/optimize"
	"github.com/spf13/cobra"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Grid-search strategy parameters",
	Long: `Optimize runs the backtest across every combination of the parameter
grid and ranks the results by score (profit percent minus half the max
drawdown). Ctrl-C stops the search and reports the combinations finished
so far.

Example:
  scalper optimize -config run.yaml -workers 4 -top 10`,
	RunE: runOptimizeCmd,
}

var (
	optConfigPath string
	optBarsPath   string
	optWorkers    int
	optTop        int
)

func init() {
	rootCmd.AddCommand(optimizeCmd)

	optimizeCmd.Flags().StringVarP(&optConfigPath, "config", "c", "", "path to config file (YAML or JSON)")
	optimizeCmd.Flags().StringVarP(&optBarsPath, "bars", "b", "", "path to minute-bar CSV (overrides synthetic data)")
	optimizeCmd.Flags().IntVarP(&optWorkers, "workers", "w", 1, "parallel workers (1 = sequential)")
	optimizeCmd.Flags().IntVarP(&optTop, "top", "n", 10, "number of top results to print")
}

func runOptimizeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(optConfigPath)
	if err != nil {
		return err
	}

	bars, err := loadBars(cfg, optBarsPath)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}

	pred, err := buildPredictor(cfg)
	if err != nil {
		return fmt.Errorf("predictor: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opt := &optimize.Optimizer{
		Grid: optimize.DefaultGrid(),
		Engine: backtest.Config{
			Instrument:     cfg.Run.Instrument,
			InitialBalance: cfg.Run.Balance,
			Predictor:      pred,
		},
		Bars:    bars,
		Workers: optWorkers,
		OnProgress: func(pct int) {
			fmt.Fprintf(os.Stderr, "\roptimize: %3d%%", pct)
		},
	}

	fmt.Printf("Searching %d combinations over %d bars (workers=%d)\n",
		opt.Grid.Size(), len(bars), optWorkers)

	results, err := opt.Run(ctx)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fmt.Printf("search stopped early: %v\n", err)
	}

	top := optimize.TopN(results, optTop)
	if len(top) == 0 {
		fmt.Println("no completed combinations")
		return nil
	}

	fmt.Printf("\n%-5s %-8s %-8s %-8s %-6s %-6s %-5s %-5s %9s %9s %8s\n",
		"rank", "vol", "ai", "rsi", "tp%", "sl%", "time", "cool",
		"profit%", "mdd%", "score")
	for i, r := range top {
		p := r.Params
		fmt.Printf("%-5d %-8.1f %-8.2f %-8.0f %-6.1f %-6.1f %-5d %-5d %9.2f %9.2f %8.2f\n",
			i+1, p.VolMult, p.AIThreshold, p.RSIThreshold,
			p.TakeProfitPct, p.StopLossPct, p.TimeExitMin, p.CooldownMin,
			r.Run.ProfitPct, r.Run.MaxDrawdown, r.Score)
	}
	return nil
}
