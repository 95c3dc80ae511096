package feed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bars.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCSVFeed(t *testing.T) {
	t.Parallel()

	t.Run("reads rows with header", func(t *testing.T) {
		t.Parallel()

		path := writeCSV(t, "time,open,high,low,close,volume\n"+
			"2024-01-08T09:00:00Z,70000,70100,69900,70050,1500\n"+
			"2024-01-08T09:01:00Z,70050,70200,70000,70100,2500\n")

		f, err := NewCSVFeed(path, time.Time{}, time.Time{})
		require.NoError(t, err)

		bars, err := ReadAll(f)
		require.NoError(t, err)
		require.Len(t, bars, 2)
		assert.Equal(t, int64(70050), bars[0].Close)
		assert.Equal(t, int64(2500), bars[1].Volume)
	})

	t.Run("range filter", func(t *testing.T) {
		t.Parallel()

		path := writeCSV(t, "2024-01-08T09:00:00Z,1,1,1,1,10\n"+
			"2024-01-08T09:01:00Z,2,2,2,2,20\n"+
			"2024-01-08T09:02:00Z,3,3,3,3,30\n")

		from := time.Date(2024, 1, 8, 9, 1, 0, 0, time.UTC)
		to := time.Date(2024, 1, 8, 9, 2, 0, 0, time.UTC)

		f, err := NewCSVFeed(path, from, to)
		require.NoError(t, err)

		bars, err := ReadAll(f)
		require.NoError(t, err)
		require.Len(t, bars, 1)
		assert.Equal(t, int64(2), bars[0].Close)
	})

	t.Run("bad price", func(t *testing.T) {
		t.Parallel()

		path := writeCSV(t, "2024-01-08T09:00:00Z,1,1,1,oops,10\n")

		f, err := NewCSVFeed(path, time.Time{}, time.Time{})
		require.NoError(t, err)

		_, err = ReadAll(f)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := NewCSVFeed(filepath.Join(t.TempDir(), "nope.csv"), time.Time{}, time.Time{})
		assert.Error(t, err)
	})
}
