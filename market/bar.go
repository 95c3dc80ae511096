package market

import "time"

// Bar represents one market minute's OHLCV snapshot.
//
// Prices are whole currency units (no fractional ticks); Volume is the number
// of units traded during the minute. Bars are immutable once produced and are
// always handed around in chronological order, one per market minute.
type Bar struct {
	Time   time.Time
	Open   int64
	High   int64
	Low    int64
	Close  int64
	Volume int64
}
