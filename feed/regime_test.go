package feed

import (
	"math/rand"
	"testing"
	"time"

	"github.com/rustyeddy/scalper/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateDay(t *testing.T, seed int64) []market.Bar {
	t.Helper()

	start := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	g := NewGenerator(start, start.AddDate(0, 0, 1), 70000, rand.New(rand.NewSource(seed)))
	bars, err := ReadAll(g)
	require.NoError(t, err)
	return bars
}

func TestGeneratorDeterminism(t *testing.T) {
	t.Parallel()

	a := generateDay(t, 42)
	b := generateDay(t, 42)
	assert.Equal(t, a, b, "same seed must reproduce the same bar sequence")

	c := generateDay(t, 43)
	assert.NotEqual(t, a, c, "different seeds should diverge")
}

func TestGeneratorBars(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)
	bars := func() []market.Bar {
		g := NewGenerator(start, end, 70000, rand.New(rand.NewSource(7)))
		bars, err := ReadAll(g)
		require.NoError(t, err)
		return bars
	}()

	require.Len(t, bars, len(market.Minutes(start, end)))

	for _, b := range bars {
		assert.True(t, market.IsMarketMinute(b.Time), "bar at %s outside session", b.Time)
		assert.GreaterOrEqual(t, b.Close, int64(1))
		assert.GreaterOrEqual(t, b.Volume, int64(1000))
		assert.Less(t, b.Volume, int64(100000))
		assert.LessOrEqual(t, b.Low, b.High)
	}

	for i := 1; i < len(bars); i++ {
		assert.True(t, bars[i].Time.After(bars[i-1].Time))
		assert.Equal(t, bars[i-1].Close, bars[i].Open, "open must carry the previous close")
	}
}

func TestGeneratorEmptyRange(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	g := NewGenerator(start, start, 70000, rand.New(rand.NewSource(1)))
	bars, err := ReadAll(g)
	require.NoError(t, err)
	assert.Empty(t, bars)
}
