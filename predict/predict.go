// Package predict defines the up-probability oracle consumed by the backtest
// engine and its concrete variants: a trained ONNX ensemble, a model-free
// fallback, and a fixed stub for tests.
package predict

import (
	"github.com/rustyeddy/scalper/indicators"
	"github.com/rustyeddy/scalper/market"
)

// Snapshot is the market state handed to a predictor: the trailing bar window
// (oldest first, newest last) and the indicator frame for the newest bar.
type Snapshot struct {
	Bars  []market.Bar
	Frame indicators.Frame
}

// Predictor scores a snapshot with the probability of an upward move.
// Scores are in [0, 1]. The engine treats predictors as opaque: a failing
// predictor never fails a run, the engine substitutes FallbackScore instead.
type Predictor interface {
	Predict(s Snapshot) (float64, error)
}

// Stub is a predictor that always returns a fixed score. Test helper.
type Stub float64

func (s Stub) Predict(Snapshot) (float64, error) { return float64(s), nil }
