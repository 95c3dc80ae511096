// Package feed supplies ordered bar sequences to the backtest engine, either
// from historical CSV datasets or from the synthetic regime generator.
package feed

import "github.com/rustyeddy/scalper/market"

// BarFeed yields market.Bar rows one at a time.
// Implementations should be deterministic and return (ok=false, err=nil) at EOF.
type BarFeed interface {
	Next() (b market.Bar, ok bool, err error)
	Close() error
}

// SliceFeed replays an in-memory bar slice. Useful in tests and when the same
// dataset is shared across many runs.
type SliceFeed struct {
	bars []market.Bar
	i    int
}

// FromBars wraps bars in a SliceFeed. The slice is not copied; callers must
// not mutate it while the feed is in use.
func FromBars(bars []market.Bar) *SliceFeed {
	return &SliceFeed{bars: bars}
}

func (f *SliceFeed) Next() (market.Bar, bool, error) {
	if f.i >= len(f.bars) {
		return market.Bar{}, false, nil
	}
	b := f.bars[f.i]
	f.i++
	return b, true, nil
}

func (f *SliceFeed) Close() error { return nil }

// ReadAll drains a feed into a slice and closes it.
func ReadAll(f BarFeed) ([]market.Bar, error) {
	defer f.Close()

	var out []market.Bar
	for {
		b, ok, err := f.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, b)
	}
}
