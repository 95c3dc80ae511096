package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMarketMinute(t *testing.T) {
	t.Parallel()

	// 2024-01-08 is a Monday.
	monday := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"open", monday.Add(9 * time.Hour), true},
		{"before_open", monday.Add(8*time.Hour + 59*time.Minute), false},
		{"midday", monday.Add(12 * time.Hour), true},
		{"close", monday.Add(15*time.Hour + 30*time.Minute), true},
		{"after_close", monday.Add(15*time.Hour + 31*time.Minute), false},
		{"saturday", monday.AddDate(0, 0, 5).Add(10 * time.Hour), false},
		{"sunday", monday.AddDate(0, 0, 6).Add(10 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMarketMinute(tt.t))
		})
	}
}

func TestSessionMinutes(t *testing.T) {
	t.Parallel()

	monday := time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)
	mins := SessionMinutes(monday)
	require.Len(t, mins, 391)
	assert.Equal(t, time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC), mins[0])
	assert.Equal(t, time.Date(2024, 1, 8, 15, 30, 0, 0, time.UTC), mins[len(mins)-1])

	saturday := time.Date(2024, 1, 13, 12, 0, 0, 0, time.UTC)
	assert.Nil(t, SessionMinutes(saturday))
}

func TestMinutes(t *testing.T) {
	t.Parallel()

	t.Run("single day", func(t *testing.T) {
		start := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
		mins := Minutes(start, start.AddDate(0, 0, 1))
		assert.Len(t, mins, 391)
	})

	t.Run("skips weekend", func(t *testing.T) {
		// Friday through Monday: two trading days.
		start := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)
		mins := Minutes(start, start.AddDate(0, 0, 4))
		require.Len(t, mins, 2*391)
		for _, m := range mins {
			assert.True(t, IsMarketMinute(m), "minute %s outside session", m)
		}
	})

	t.Run("chronological", func(t *testing.T) {
		start := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
		mins := Minutes(start, start.AddDate(0, 0, 3))
		for i := 1; i < len(mins); i++ {
			assert.True(t, mins[i].After(mins[i-1]))
		}
	})

	t.Run("empty range", func(t *testing.T) {
		start := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
		assert.Nil(t, Minutes(start, start))
		assert.Nil(t, Minutes(start, start.AddDate(0, 0, -1)))
	})
}
