package predict

// Mock is the model-free predictor: a neutral baseline nudged by the sign of
// the last close-to-close change. It keeps backtests runnable when no trained
// model is available and is also what the engine substitutes when an injected
// predictor returns an error.
type Mock struct{}

func (Mock) Predict(s Snapshot) (float64, error) {
	return FallbackScore(s), nil
}

// FallbackScore is the neutral score used when no model output is available:
// 0.5, plus 0.05 if the last bar closed up, minus 0.05 if it closed down.
func FallbackScore(s Snapshot) float64 {
	n := len(s.Bars)
	if n < 2 {
		return 0.5
	}

	last := s.Bars[n-1].Close
	prev := s.Bars[n-2].Close
	switch {
	case last > prev:
		return 0.55
	case last < prev:
		return 0.45
	}
	return 0.5
}
