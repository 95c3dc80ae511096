package backtest

import "fmt"

// Params is one strategy configuration: the entry gates and exit rules of the
// scalping state machine. Combinations are independent and stateless; the
// optimizer enumerates them freely.
type Params struct {
	// VolMult gates entries on volume > VolumeMA * VolMult.
	VolMult float64 `json:"vol_multiplier" yaml:"vol_multiplier"`

	// AIThreshold gates entries on the predictor score, in [0,1].
	AIThreshold float64 `json:"ai_threshold" yaml:"ai_threshold"`

	// RSIThreshold gates entries on RSI < RSIThreshold, in [0,100].
	RSIThreshold float64 `json:"rsi_threshold" yaml:"rsi_threshold"`

	// TakeProfitPct exits when unrealized percent reaches this value.
	TakeProfitPct float64 `json:"take_profit" yaml:"take_profit"`

	// StopLossPct exits when unrealized percent falls to -StopLossPct.
	StopLossPct float64 `json:"stop_loss" yaml:"stop_loss"`

	// TimeExitMin exits after this many bars in position.
	TimeExitMin int `json:"time_exit" yaml:"time_exit"`

	// CooldownMin blocks new entries for this many bars after a losing exit.
	CooldownMin int `json:"cooldown" yaml:"cooldown"`
}

// Default returns the reference parameter set.
func Default() Params {
	return Params{
		VolMult:       3.0,
		AIThreshold:   0.7,
		RSIThreshold:  70,
		TakeProfitPct: 1.0,
		StopLossPct:   0.5,
		TimeExitMin:   10,
		CooldownMin:   10,
	}
}

// Validate checks the parameter ranges.
func (p Params) Validate() error {
	if p.VolMult <= 0 {
		return fmt.Errorf("vol_multiplier must be positive, got %g", p.VolMult)
	}
	if p.AIThreshold < 0 || p.AIThreshold > 1 {
		return fmt.Errorf("ai_threshold must be in [0,1], got %g", p.AIThreshold)
	}
	if p.RSIThreshold < 0 || p.RSIThreshold > 100 {
		return fmt.Errorf("rsi_threshold must be in [0,100], got %g", p.RSIThreshold)
	}
	if p.TakeProfitPct <= 0 {
		return fmt.Errorf("take_profit must be positive, got %g", p.TakeProfitPct)
	}
	if p.StopLossPct <= 0 {
		return fmt.Errorf("stop_loss must be positive, got %g", p.StopLossPct)
	}
	if p.TimeExitMin < 0 {
		return fmt.Errorf("time_exit must be >= 0, got %d", p.TimeExitMin)
	}
	if p.CooldownMin < 0 {
		return fmt.Errorf("cooldown must be >= 0, got %d", p.CooldownMin)
	}
	return nil
}
