package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rustyeddy/scalper/backtest"
	"github.com/rustyeddy/scalper/config"
	"github.com/rustyeddy/scalper/feed"
	"github.com/rustyeddy/scalper/journal"
	"github.com/rustyeddy/scalper/market"
	"github.com/rustyeddy/scalper/predict"
)

// loadBars builds the bar series for a run: a CSV feed when a path is
// given, otherwise the seeded synthetic generator.
func loadBars(cfg *config.Config, csvPath string) ([]market.Bar, error) {
	start, err := cfg.Run.StartTime()
	if err != nil {
		return nil, fmt.Errorf("run.start: %w", err)
	}
	end, err := cfg.Run.EndTime()
	if err != nil {
		return nil, fmt.Errorf("run.end: %w", err)
	}

	var f feed.BarFeed
	if csvPath != "" {
		f, err = feed.NewCSVFeed(csvPath, start, end)
		if err != nil {
			return nil, err
		}
	} else {
		rng := rand.New(rand.NewSource(cfg.Run.Seed))
		f = feed.NewGenerator(start, end, cfg.Run.StartPrice, rng)
	}
	return feed.ReadAll(f)
}

func buildPredictor(cfg *config.Config) (predict.Predictor, error) {
	switch cfg.Predictor.Type {
	case "ensemble":
		return predict.NewEnsemble(cfg.Predictor.ModelPath)
	default:
		return predict.Mock{}, nil
	}
}

// buildJournal returns nil when journaling is disabled.
func buildJournal(cfg *config.Config) (journal.Journal, error) {
	switch cfg.Journal.Type {
	case "csv":
		return journal.NewCSV(cfg.Journal.TradesFile, cfg.Journal.EquityFile)
	case "sqlite":
		return journal.NewSQLite(cfg.Journal.DBPath)
	default:
		return nil, nil
	}
}

func printResult(r backtest.Result) {
	fmt.Printf("\nBacktest Complete!\n")
	fmt.Printf("  Instrument:    %s\n", r.Instrument)
	fmt.Printf("  Period:        %s .. %s\n",
		r.Start.Format(time.DateOnly), r.End.Format(time.DateOnly))
	fmt.Printf("  Final Balance: %.2f\n", r.FinalBalance)
	fmt.Printf("  Profit:        %.2f (%.2f%%)\n", r.TotalProfit, r.ProfitPct)
	fmt.Printf("  Trades:        %d\n", r.TradeCount)
	fmt.Printf("  Win Rate:      %.1f%%\n", r.WinRate)
	fmt.Printf("  Profit Factor: %.2f\n", r.ProfitFactor)
	fmt.Printf("  Max Drawdown:  %.2f%%\n", r.MaxDrawdown)
	fmt.Printf("  Total Fees:    %.2f\n", r.TotalFees)
}
