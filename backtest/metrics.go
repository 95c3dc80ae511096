package backtest

import (
	"time"

	"github.com/rustyeddy/scalper/market"
)

// ProfitFactorCap is reported instead of infinity when a run has no losing
// trades, keeping downstream score comparisons finite.
const ProfitFactorCap = 99.99

// Result is the read-only outcome of one backtest run.
type Result struct {
	Instrument string
	Start      time.Time
	End        time.Time

	FinalBalance float64
	TotalProfit  float64
	ProfitPct    float64
	TradeCount   int
	WinRate      float64 // percent of winning SELL legs, 0 if none completed
	ProfitFactor float64
	MaxDrawdown  float64 // negative percent, 0 if no trades
	TotalFees    float64

	Trades []Trade
	Equity []EquityPoint
}

// finalize rolls trades and the equity curve up into a Result.
func finalize(cfg Config, bars []market.Bar, trades []Trade, equity []EquityPoint, balance, totalFees float64) Result {
	r := Result{
		Instrument:   cfg.Instrument,
		FinalBalance: balance,
		TotalProfit:  balance - cfg.InitialBalance,
		TradeCount:   len(trades),
		TotalFees:    totalFees,
		Trades:       trades,
		Equity:       equity,
	}
	if len(bars) > 0 {
		r.Start = bars[0].Time
		r.End = bars[len(bars)-1].Time
	}
	if cfg.InitialBalance > 0 {
		r.ProfitPct = r.TotalProfit / cfg.InitialBalance * 100
	}

	// A run that ends with an open position still values it in FinalBalance
	// via the last equity point; metrics below look at completed legs only.
	if len(equity) > 0 {
		last := equity[len(equity)-1]
		r.FinalBalance = last.Equity
		r.TotalProfit = r.FinalBalance - cfg.InitialBalance
		if cfg.InitialBalance > 0 {
			r.ProfitPct = r.TotalProfit / cfg.InitialBalance * 100
		}
	}

	var wins, losses int
	var grossProfit, grossLoss float64
	for _, t := range trades {
		if t.Side != Sell {
			continue
		}
		if t.Profit > 0 {
			wins++
			grossProfit += t.Profit
		} else if t.Profit < 0 {
			losses++
			grossLoss += -t.Profit
		}
	}

	if wins+losses > 0 {
		r.WinRate = 100 * float64(wins) / float64(wins+losses)
	}

	if grossLoss == 0 {
		r.ProfitFactor = ProfitFactorCap
	} else {
		r.ProfitFactor = grossProfit / grossLoss
		if r.ProfitFactor > ProfitFactorCap {
			r.ProfitFactor = ProfitFactorCap
		}
	}

	if len(trades) > 0 {
		r.MaxDrawdown = maxDrawdown(equity)
	}

	return r
}

// maxDrawdown is the largest peak-to-trough decline of the equity curve,
// as a negative percent.
func maxDrawdown(equity []EquityPoint) float64 {
	var peak, mdd float64
	for _, ep := range equity {
		if ep.Equity > peak {
			peak = ep.Equity
		}
		if peak <= 0 {
			continue
		}
		dd := (ep.Equity - peak) / peak * 100
		if dd < mdd {
			mdd = dd
		}
	}
	return mdd
}
