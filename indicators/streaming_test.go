package indicators

import (
	"testing"
	"time"

	"github.com/rustyeddy/scalper/market"
	"github.com/stretchr/testify/assert"
)

func barsFromCloses(closes ...int64) []market.Bar {
	baseTime := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	bars := make([]market.Bar, len(closes))
	for i, c := range closes {
		bars[i] = market.Bar{
			Time:   baseTime.Add(time.Duration(i) * time.Minute),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func TestSimpleMA(t *testing.T) {
	t.Parallel()

	bars := barsFromCloses(102, 105, 106, 108, 110)

	t.Run("basic functionality", func(t *testing.T) {
		ma := NewMA(3)
		assert.Equal(t, "MA(3)", ma.Name())
		assert.Equal(t, 3, ma.Warmup())
		assert.False(t, ma.Ready())
		assert.Equal(t, 0.0, ma.Value())

		ma.Update(bars[0])
		ma.Update(bars[1])
		assert.False(t, ma.Ready())

		ma.Update(bars[2])
		assert.True(t, ma.Ready())
		assert.InDelta(t, (102.0+105.0+106.0)/3.0, ma.Value(), 0.001)

		// Fourth bar slides the window.
		ma.Update(bars[3])
		assert.InDelta(t, (105.0+106.0+108.0)/3.0, ma.Value(), 0.001)
	})

	t.Run("reset functionality", func(t *testing.T) {
		ma := NewMA(2)
		ma.Update(bars[0])
		ma.Update(bars[1])
		assert.True(t, ma.Ready())

		ma.Reset()
		assert.False(t, ma.Ready())
		assert.Equal(t, 0.0, ma.Value())
	})
}

func TestStdDev(t *testing.T) {
	t.Parallel()

	sd := NewStdDev(8)
	assert.Equal(t, "StdDev(8)", sd.Name())

	// Classic population-stddev fixture: stddev of 2,4,4,4,5,5,7,9 is 2.
	for _, b := range barsFromCloses(2, 4, 4, 4, 5, 5, 7, 9) {
		sd.Update(b)
	}
	assert.True(t, sd.Ready())
	assert.InDelta(t, 2.0, sd.Value(), 0.001)
}

func TestRSI(t *testing.T) {
	t.Parallel()

	t.Run("neutral before warmup", func(t *testing.T) {
		rsi := NewRSI(14)
		assert.Equal(t, 15, rsi.Warmup())
		assert.Equal(t, 50.0, rsi.Value())

		rsi.Update(barsFromCloses(100)[0])
		assert.Equal(t, 50.0, rsi.Value())
	})

	t.Run("neutral when no losses", func(t *testing.T) {
		rsi := NewRSI(3)
		for _, b := range barsFromCloses(100, 101, 102, 103) {
			rsi.Update(b)
		}
		assert.True(t, rsi.Ready())
		assert.Equal(t, 50.0, rsi.Value())
	})

	t.Run("mixed gains and losses", func(t *testing.T) {
		rsi := NewRSI(3)
		// Deltas: +1, -1, +2 => meanGain=1, meanLoss=1/3, RS=3, RSI=75.
		for _, b := range barsFromCloses(10, 11, 10, 12) {
			rsi.Update(b)
		}
		assert.InDelta(t, 75.0, rsi.Value(), 0.001)
	})

	t.Run("all losses", func(t *testing.T) {
		rsi := NewRSI(3)
		for _, b := range barsFromCloses(103, 102, 101, 100) {
			rsi.Update(b)
		}
		assert.InDelta(t, 0.0, rsi.Value(), 0.001)
	})
}

func TestVolumeMA(t *testing.T) {
	t.Parallel()

	bars := barsFromCloses(1, 1, 1)
	bars[0].Volume = 1000
	bars[1].Volume = 2000
	bars[2].Volume = 6000

	vm := NewVolumeMA(3)
	assert.False(t, vm.Ready())
	for _, b := range bars {
		vm.Update(b)
	}
	assert.True(t, vm.Ready())
	assert.InDelta(t, 3000.0, vm.Value(), 0.001)
}

func TestTracker(t *testing.T) {
	t.Parallel()

	tr := NewTracker()

	var f Frame
	for _, b := range barsFromCloses(sequence(100, 40)...) {
		f = tr.Update(b)
	}

	assert.Greater(t, f.MA, 0.0)
	assert.InDelta(t, f.MA+BollWidth*f.StdDev, f.BollUpper, 1e-9)
	assert.InDelta(t, f.MA-BollWidth*f.StdDev, f.BollLower, 1e-9)
	assert.InDelta(t, 1000.0, f.VolumeMA, 0.001)
	// Strictly rising closes: no losses in the window, RSI stays neutral.
	assert.Equal(t, 50.0, f.RSI)

	tr.Reset()
	f = tr.Update(barsFromCloses(100)[0])
	assert.Equal(t, 0.0, f.MA)
	assert.Equal(t, 0.0, f.BollUpper)
	assert.Equal(t, 50.0, f.RSI)
}

func sequence(start int64, n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = start + int64(i)
	}
	return out
}
