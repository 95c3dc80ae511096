package predict

import (
	"testing"

	"github.com/rustyeddy/scalper/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotWithCloses(closes ...int64) Snapshot {
	bars := make([]market.Bar, len(closes))
	for i, c := range closes {
		bars[i] = market.Bar{Open: c, High: c, Low: c, Close: c, Volume: 1000}
	}
	return Snapshot{Bars: bars}
}

func TestStub(t *testing.T) {
	t.Parallel()

	score, err := Stub(0.9).Predict(Snapshot{})
	require.NoError(t, err)
	assert.Equal(t, 0.9, score)
}

func TestMock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		snap Snapshot
		want float64
	}{
		{"last bar up", snapshotWithCloses(100, 101), 0.55},
		{"last bar down", snapshotWithCloses(101, 100), 0.45},
		{"flat", snapshotWithCloses(100, 100), 0.5},
		{"single bar", snapshotWithCloses(100), 0.5},
		{"no bars", Snapshot{}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := Mock{}.Predict(tt.snap)
			require.NoError(t, err)
			assert.Equal(t, tt.want, score)
		})
	}
}

func TestBuildFeatures(t *testing.T) {
	t.Parallel()

	out := make([]float32, windowBars*featureSize)

	t.Run("short history is front padded", func(t *testing.T) {
		buildFeatures(snapshotWithCloses(100, 110), out)

		// Rows before the history start stay zero.
		assert.Equal(t, float32(0), out[0])

		lastRow := (windowBars - 1) * featureSize
		assert.InDelta(t, 1.1, float64(out[lastRow+3]), 0.001)       // close / base
		assert.InDelta(t, 0.1, float64(out[lastRow+5]), 0.001)       // delta / base
		assert.InDelta(t, 1.0, float64(out[lastRow+4]), 0.001)       // volume / max
		assert.InDelta(t, 1.0, float64(out[lastRow-featureSize+3]), 0.001) // first close
	})

	t.Run("empty snapshot zeroes the tensor", func(t *testing.T) {
		buildFeatures(Snapshot{}, out)
		for _, v := range out {
			assert.Equal(t, float32(0), v)
		}
	})
}
