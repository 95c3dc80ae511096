// Package journal persists completed backtest runs: the run summary, the
// trade legs, and the equity curve. The engine itself never touches a
// journal; callers record a finished Result if they want it kept.
package journal

import (
	"time"

	"github.com/rustyeddy/scalper/backtest"
)

// RunRecord summarizes one backtest run.
type RunRecord struct {
	RunID      string
	Created    time.Time
	Instrument string
	Start      time.Time
	End        time.Time

	Params backtest.Params

	StartBalance float64
	FinalBalance float64
	TotalProfit  float64
	ProfitPct    float64
	TradeCount   int
	WinRate      float64
	ProfitFactor float64
	MaxDrawdown  float64
	TotalFees    float64
}

// TradeRecord is one executed leg of a run.
type TradeRecord struct {
	RunID     string
	Time      time.Time
	Side      string
	Price     float64
	Qty       int64
	Fee       float64
	Score     float64
	Profit    float64
	ProfitPct float64
	Reason    string
}

// EquitySnapshot is one point of a run's equity curve.
type EquitySnapshot struct {
	RunID   string
	Time    time.Time
	Balance float64
	Equity  float64
}

type Journal interface {
	RecordRun(RunRecord) error
	RecordTrade(TradeRecord) error
	RecordEquity(EquitySnapshot) error
	Close() error
}

// Record flattens a backtest result into the journal under runID.
func Record(j Journal, runID string, startBalance float64, p backtest.Params, r backtest.Result) error {
	err := j.RecordRun(RunRecord{
		RunID:        runID,
		Created:      time.Now().UTC(),
		Instrument:   r.Instrument,
		Start:        r.Start,
		End:          r.End,
		Params:       p,
		StartBalance: startBalance,
		FinalBalance: r.FinalBalance,
		TotalProfit:  r.TotalProfit,
		ProfitPct:    r.ProfitPct,
		TradeCount:   r.TradeCount,
		WinRate:      r.WinRate,
		ProfitFactor: r.ProfitFactor,
		MaxDrawdown:  r.MaxDrawdown,
		TotalFees:    r.TotalFees,
	})
	if err != nil {
		return err
	}

	for _, t := range r.Trades {
		err := j.RecordTrade(TradeRecord{
			RunID:     runID,
			Time:      t.Time,
			Side:      string(t.Side),
			Price:     t.Price,
			Qty:       t.Qty,
			Fee:       t.Fee,
			Score:     t.Score,
			Profit:    t.Profit,
			ProfitPct: t.ProfitPct,
			Reason:    string(t.Reason),
		})
		if err != nil {
			return err
		}
	}

	for _, ep := range r.Equity {
		err := j.RecordEquity(EquitySnapshot{
			RunID:   runID,
			Time:    ep.Time,
			Balance: ep.Balance,
			Equity:  ep.Equity,
		})
		if err != nil {
			return err
		}
	}

	return nil
}
