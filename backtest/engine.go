// Package backtest replays a minute-bar series through the scalping strategy
// state machine and produces performance metrics.
package backtest

import (
	"context"
	"fmt"
	"math"

	"github.com/rustyeddy/scalper/feed"
	"github.com/rustyeddy/scalper/indicators"
	"github.com/rustyeddy/scalper/market"
	"github.com/rustyeddy/scalper/predict"
)

// Execution cost model. Slippage is applied symmetrically to both legs; fees
// are asymmetric (the sell side carries transaction tax).
const (
	Slippage = 0.0005 // 0.05%
	FeeBuy   = 0.00015
	FeeSell  = 0.0023
)

// WarmupBars is the number of leading bars consumed only by the indicators
// before the first entry/exit evaluation.
const WarmupBars = 60

// Config describes one backtest run.
type Config struct {
	Instrument     string
	InitialBalance float64

	// Params defaults to Default() when left zero.
	Params Params

	// Predictor defaults to predict.Mock when nil. A predictor error never
	// fails the run; the engine substitutes predict.FallbackScore.
	Predictor predict.Predictor

	// OnProgress, if set, receives an integer percent in [0,100]. It is
	// invoked only when the percent changes, monotonically non-decreasing.
	OnProgress func(pct int)
}

// Engine drives one deterministic pass over a bar sequence.
type Engine struct {
	cfg Config
}

// NewEngine validates cfg and returns an engine ready to run.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.InitialBalance <= 0 {
		return nil, fmt.Errorf("backtest: initial balance must be positive, got %g", cfg.InitialBalance)
	}
	if cfg.Params == (Params{}) {
		cfg.Params = Default()
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, fmt.Errorf("backtest: invalid params: %w", err)
	}
	if cfg.Predictor == nil {
		cfg.Predictor = predict.Mock{}
	}
	return &Engine{cfg: cfg}, nil
}

// Run drains the feed, keeps the market-session bars, and replays them
// through the state machine. An empty bar sequence yields a zero-metric
// Result, not an error.
func (e *Engine) Run(ctx context.Context, f feed.BarFeed) (Result, error) {
	_ = ctx // reserved; cancellation is handled between optimizer combinations

	if f == nil {
		return Result{}, fmt.Errorf("backtest: feed is required")
	}
	defer f.Close()

	var bars []market.Bar
	for {
		b, ok, err := f.Next()
		if err != nil {
			return Result{}, err
		}
		if !ok {
			break
		}
		if !market.IsMarketMinute(b.Time) {
			continue
		}
		bars = append(bars, b)
	}

	return e.run(bars), nil
}

func (e *Engine) run(bars []market.Bar) Result {
	p := e.cfg.Params

	// Indicators are streaming: one frame per bar, trailing windows only.
	tracker := indicators.NewTracker()
	frames := make([]indicators.Frame, len(bars))
	for i, b := range bars {
		frames[i] = tracker.Update(b)
	}

	balance := e.cfg.InitialBalance
	totalFees := 0.0
	var pos position
	var trades []Trade
	var equity []EquityPoint
	cooldown := 0

	prog := newProgress(e.cfg.OnProgress, len(bars)-WarmupBars)

	for i := WarmupBars; i < len(bars); i++ {
		b := bars[i]
		fr := frames[i]

		// Cooldown bars decrement the counter and skip everything else,
		// including the equity point.
		if cooldown > 0 {
			cooldown--
			prog.step(i - WarmupBars + 1)
			continue
		}

		if pos.open() {
			// Exit evaluation runs before any new entry check. Priority:
			// take-profit, stop-loss, time-exit.
			exec := float64(b.Close) * (1 - Slippage)
			pct := (exec - pos.avgEntry) / pos.avgEntry * 100

			var reason ExitReason
			switch {
			case pct >= p.TakeProfitPct:
				reason = ExitTakeProfit
			case pct <= -p.StopLossPct:
				reason = ExitStopLoss
			case i-pos.entryIdx >= p.TimeExitMin:
				reason = ExitTime
			}

			if reason != "" {
				proceeds := exec * float64(pos.qty)
				fee := proceeds * FeeSell
				costBasis := pos.avgEntry * float64(pos.qty)
				profit := proceeds - fee - costBasis

				balance += proceeds - fee
				totalFees += fee

				trades = append(trades, Trade{
					Time:      b.Time,
					Side:      Sell,
					Price:     exec,
					Qty:       pos.qty,
					Fee:       fee,
					Score:     pos.score,
					Profit:    profit,
					ProfitPct: profit / costBasis * 100,
					Reason:    reason,
				})

				if profit < 0 {
					cooldown = p.CooldownMin
				}
				pos = position{}
			}
		} else if fr.VolumeMA > 0 && float64(b.Volume) > fr.VolumeMA*p.VolMult && fr.RSI < p.RSIThreshold {
			// Volume and RSI gates passed; ask the predictor last.
			score := e.score(bars[:i+1], fr)
			if score >= p.AIThreshold {
				exec := float64(b.Close) * (1 + Slippage)
				qty := int64(math.Floor(balance / (exec * (1 + FeeBuy))))
				if qty > 0 {
					cost := exec * float64(qty)
					fee := cost * FeeBuy

					balance -= cost + fee
					totalFees += fee

					pos = position{
						qty:       qty,
						avgEntry:  exec,
						entryIdx:  i,
						entryTime: b.Time,
						score:     score,
					}
					trades = append(trades, Trade{
						Time:  b.Time,
						Side:  Buy,
						Price: exec,
						Qty:   qty,
						Fee:   fee,
						Score: score,
					})
				}
			}
		}

		equity = append(equity, EquityPoint{
			Time:    b.Time,
			Close:   b.Close,
			Qty:     pos.qty,
			Balance: balance,
			Equity:  balance + float64(pos.qty)*float64(b.Close),
		})
		prog.step(i - WarmupBars + 1)
	}

	return finalize(e.cfg, bars, trades, equity, balance, totalFees)
}

func (e *Engine) score(bars []market.Bar, fr indicators.Frame) float64 {
	window := bars
	if len(window) > WarmupBars {
		window = window[len(window)-WarmupBars:]
	}
	snap := predict.Snapshot{Bars: window, Frame: fr}

	score, err := e.cfg.Predictor.Predict(snap)
	if err != nil {
		return predict.FallbackScore(snap)
	}
	return score
}

// progress emits integer percents, only on change.
type progress struct {
	fn    func(int)
	total int
	last  int
}

func newProgress(fn func(int), total int) *progress {
	return &progress{fn: fn, total: total, last: -1}
}

func (p *progress) step(done int) {
	if p.fn == nil || p.total <= 0 {
		return
	}
	pct := done * 100 / p.total
	if pct != p.last {
		p.last = pct
		p.fn(pct)
	}
}
