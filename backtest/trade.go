package backtest

import "time"

// Side of an executed trade leg.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// ExitReason explains why a SELL leg was executed.
type ExitReason string

const (
	ExitTakeProfit ExitReason = "TP"
	ExitStopLoss   ExitReason = "SL"
	ExitTime       ExitReason = "TimeExit"
)

// Trade is an immutable record of one executed leg. BUY/SELL legs strictly
// alternate starting with BUY; Profit, ProfitPct and Reason are set on SELL
// legs only. Score carries the prediction score seen at entry-signal time.
type Trade struct {
	Time  time.Time
	Side  Side
	Price float64 // execution price after slippage
	Qty   int64
	Fee   float64
	Score float64

	Profit    float64
	ProfitPct float64
	Reason    ExitReason
}

// EquityPoint records balance plus the mark-to-market value of any open
// position, once per evaluated bar after warm-up.
type EquityPoint struct {
	Time    time.Time
	Close   int64
	Qty     int64
	Balance float64
	Equity  float64
}

// position is the single open position; zero value means FLAT.
type position struct {
	qty       int64
	avgEntry  float64
	entryIdx  int
	entryTime time.Time
	score     float64
}

func (p position) open() bool { return p.qty > 0 }
