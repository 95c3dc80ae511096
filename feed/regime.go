package feed

import (
	"math"
	"math/rand"
	"time"

	"github.com/rustyeddy/scalper/market"
)

// Regime is a latent market state governing the drift and volatility of the
// synthetic price path.
type Regime int8

const (
	Range Regime = iota
	Bull
	Bear
)

func (r Regime) String() string {
	switch r {
	case Range:
		return "Range"
	case Bull:
		return "Bull"
	case Bear:
		return "Bear"
	}
	return "Unknown"
}

// drift and volatility per regime, per minute.
func (r Regime) params() (mu, sigma float64) {
	switch r {
	case Bull:
		return 0.0002, 0.001
	case Bear:
		return -0.0002, 0.0015
	default:
		return 0, 0.0005
	}
}

// Regime switching: duration is uniform in [minRegimeMinutes, maxRegimeMinutes).
const (
	minRegimeMinutes = 60
	maxRegimeMinutes = 300
)

// Generator synthesizes one bar per market minute over a date range using a
// regime-switching geometric process. It implements BarFeed.
//
// The random source is a constructor parameter: two generators built with
// identically seeded sources produce identical bar sequences, which is the
// determinism contract the backtest tests rely on.
type Generator struct {
	rng     *rand.Rand
	minutes []time.Time
	i       int

	price     float64
	prevClose int64
	regime    Regime
	remaining int
}

// NewGenerator builds a generator for every market minute in [start, end),
// starting the price path at startPrice.
func NewGenerator(start, end time.Time, startPrice int64, rng *rand.Rand) *Generator {
	if startPrice < 1 {
		startPrice = 1
	}
	return &Generator{
		rng:       rng,
		minutes:   market.Minutes(start, end),
		price:     float64(startPrice),
		prevClose: startPrice,
	}
}

func (g *Generator) Next() (market.Bar, bool, error) {
	if g.i >= len(g.minutes) {
		return market.Bar{}, false, nil
	}
	t := g.minutes[g.i]
	g.i++

	if g.remaining <= 0 {
		g.switchRegime()
	}
	g.remaining--

	mu, sigma := g.regime.params()
	z := g.rng.NormFloat64()
	g.price *= math.Exp(mu - 0.5*sigma*sigma + sigma*z)

	close := int64(g.price)
	if close < 1 {
		close = 1
	}

	open := g.prevClose
	high, low := open, open
	if close > high {
		high = close
	}
	if close < low {
		low = close
	}
	g.prevClose = close

	return market.Bar{
		Time:   t,
		Open:   open,
		High:   high,
		Low:    low,
		Close:  close,
		Volume: 1000 + g.rng.Int63n(99000),
	}, true, nil
}

func (g *Generator) Close() error { return nil }

// Regime returns the regime in effect for the most recently generated bar.
func (g *Generator) Regime() Regime { return g.regime }

func (g *Generator) switchRegime() {
	u := g.rng.Float64()
	switch {
	case u < 0.4:
		g.regime = Range
	case u < 0.8:
		g.regime = Bull
	default:
		g.regime = Bear
	}
	g.remaining = minRegimeMinutes + g.rng.Intn(maxRegimeMinutes-minRegimeMinutes)
}
