// Package optimize searches the strategy parameter space by running one
// independent backtest per grid combination and ranking the results.
package optimize

import "github.com/rustyeddy/scalper/backtest"

// Grid spans the seven strategy parameter dimensions. Combos enumerates the
// Cartesian product in fixed dimension order, so two runs over the same grid
// always see the same combination sequence.
type Grid struct {
	VolMult       []float64 `json:"vol_multiplier" yaml:"vol_multiplier"`
	AIThreshold   []float64 `json:"ai_threshold" yaml:"ai_threshold"`
	RSIThreshold  []float64 `json:"rsi_threshold" yaml:"rsi_threshold"`
	TakeProfitPct []float64 `json:"take_profit" yaml:"take_profit"`
	StopLossPct   []float64 `json:"stop_loss" yaml:"stop_loss"`
	TimeExitMin   []int     `json:"time_exit" yaml:"time_exit"`
	CooldownMin   []int     `json:"cooldown" yaml:"cooldown"`
}

// DefaultGrid returns the reference search grid: 3*3*3*4*3*3*3 = 2916
// combinations.
func DefaultGrid() Grid {
	return Grid{
		VolMult:       []float64{2.0, 3.0, 5.0},
		AIThreshold:   []float64{0.7, 0.8, 0.9},
		RSIThreshold:  []float64{50, 60, 70},
		TakeProfitPct: []float64{0.5, 1.0, 2.0, 3.0},
		StopLossPct:   []float64{0.5, 1.0, 2.0},
		TimeExitMin:   []int{5, 10, 30},
		CooldownMin:   []int{10, 30, 60},
	}
}

// Size returns the number of combinations in the grid.
func (g Grid) Size() int {
	return len(g.VolMult) * len(g.AIThreshold) * len(g.RSIThreshold) *
		len(g.TakeProfitPct) * len(g.StopLossPct) * len(g.TimeExitMin) * len(g.CooldownMin)
}

// Combos enumerates every parameter combination in fixed dimension order.
func (g Grid) Combos() []backtest.Params {
	out := make([]backtest.Params, 0, g.Size())
	for _, vm := range g.VolMult {
		for _, ai := range g.AIThreshold {
			for _, rsi := range g.RSIThreshold {
				for _, tp := range g.TakeProfitPct {
					for _, sl := range g.StopLossPct {
						for _, te := range g.TimeExitMin {
							for _, cd := range g.CooldownMin {
								out = append(out, backtest.Params{
									VolMult:       vm,
									AIThreshold:   ai,
									RSIThreshold:  rsi,
									TakeProfitPct: tp,
									StopLossPct:   sl,
									TimeExitMin:   te,
									CooldownMin:   cd,
								})
							}
						}
					}
				}
			}
		}
	}
	return out
}
