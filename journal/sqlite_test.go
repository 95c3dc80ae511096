package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rustyeddy/scalper/backtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResult() backtest.Result {
	base := time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC)
	return backtest.Result{
		Instrument:   "005930",
		Start:        base,
		End:          base.Add(2 * time.Hour),
		FinalBalance: 10_050_000,
		TotalProfit:  50_000,
		ProfitPct:    0.5,
		TradeCount:   2,
		WinRate:      100,
		ProfitFactor: backtest.ProfitFactorCap,
		MaxDrawdown:  -0.1,
		TotalFees:    24_500,
		Trades: []backtest.Trade{
			{Time: base, Side: backtest.Buy, Price: 70035, Qty: 142, Fee: 1491.7, Score: 0.82},
			{Time: base.Add(5 * time.Minute), Side: backtest.Sell, Price: 70800, Qty: 142,
				Fee: 23123.3, Score: 0.82, Profit: 75000, ProfitPct: 0.75, Reason: backtest.ExitTakeProfit},
		},
		Equity: []backtest.EquityPoint{
			{Time: base, Close: 70000, Qty: 142, Balance: 55_000, Equity: 9_995_000},
			{Time: base.Add(5 * time.Minute), Close: 70800, Qty: 0, Balance: 10_050_000, Equity: 10_050_000},
		},
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "runs.sqlite")
	j, err := NewSQLite(path)
	require.NoError(t, err)
	defer j.Close()

	res := testResult()
	require.NoError(t, Record(j, "RUN-1", 10_000_000, backtest.Default(), res))

	run, err := j.GetRun("RUN-1")
	require.NoError(t, err)
	assert.Equal(t, "005930", run.Instrument)
	assert.Equal(t, backtest.Default(), run.Params)
	assert.InDelta(t, 0.5, run.ProfitPct, 1e-9)
	assert.InDelta(t, -0.1, run.MaxDrawdown, 1e-9)
	assert.Equal(t, 2, run.TradeCount)

	trades, err := j.ListTradesByRun("RUN-1")
	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.Equal(t, "BUY", trades[0].Side)
	assert.Equal(t, "SELL", trades[1].Side)
	assert.Equal(t, "TP", trades[1].Reason)
	assert.Equal(t, int64(142), trades[0].Qty)

	runs, err := j.ListRuns()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestSQLiteGetRunMissing(t *testing.T) {
	t.Parallel()

	j, err := NewSQLite(filepath.Join(t.TempDir(), "runs.sqlite"))
	require.NoError(t, err)
	defer j.Close()

	_, err = j.GetRun("nope")
	assert.ErrorContains(t, err, "not found")
}

func TestSQLiteMultipleRuns(t *testing.T) {
	t.Parallel()

	j, err := NewSQLite(filepath.Join(t.TempDir(), "runs.sqlite"))
	require.NoError(t, err)
	defer j.Close()

	res := testResult()
	require.NoError(t, Record(j, "RUN-A", 10_000_000, backtest.Default(), res))
	require.NoError(t, Record(j, "RUN-B", 10_000_000, backtest.Default(), res))

	trades, err := j.ListTradesByRun("RUN-B")
	require.NoError(t, err)
	assert.Len(t, trades, 2)
	for _, tr := range trades {
		assert.Equal(t, "RUN-B", tr.RunID)
	}
}
