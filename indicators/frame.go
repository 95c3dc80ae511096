package indicators

import "github.com/rustyeddy/scalper/market"

// Periods and band width used by the scalping strategy. The entry gates are
// defined against these exact windows.
const (
	MAPeriod  = 20
	RSIPeriod = 14
	BollWidth = 2.0
)

// Frame holds the per-bar derived values consumed by the signal gates.
type Frame struct {
	MA        float64
	StdDev    float64
	BollUpper float64
	BollLower float64
	RSI       float64
	VolumeMA  float64
}

// Tracker updates the full indicator set incrementally, one bar at a time,
// and yields a Frame per bar. Values are zero until the corresponding
// indicator's warmup completes (RSI reports its neutral 50 instead).
type Tracker struct {
	ma    *SimpleMA
	sd    *StdDev
	rsi   *RSI
	volMA *VolumeMA
}

// NewTracker creates a Tracker with the strategy's fixed periods.
func NewTracker() *Tracker {
	return &Tracker{
		ma:    NewMA(MAPeriod),
		sd:    NewStdDev(MAPeriod),
		rsi:   NewRSI(RSIPeriod),
		volMA: NewVolumeMA(MAPeriod),
	}
}

func (t *Tracker) Reset() {
	t.ma.Reset()
	t.sd.Reset()
	t.rsi.Reset()
	t.volMA.Reset()
}

// Update consumes the next bar and returns the frame for it.
func (t *Tracker) Update(b market.Bar) Frame {
	t.ma.Update(b)
	t.sd.Update(b)
	t.rsi.Update(b)
	t.volMA.Update(b)

	ma := t.ma.Value()
	sd := t.sd.Value()

	f := Frame{
		MA:       ma,
		StdDev:   sd,
		RSI:      t.rsi.Value(),
		VolumeMA: t.volMA.Value(),
	}
	if t.ma.Ready() {
		f.BollUpper = ma + BollWidth*sd
		f.BollLower = ma - BollWidth*sd
	}
	return f
}
