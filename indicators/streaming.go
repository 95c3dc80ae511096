package indicators

import (
	"fmt"
	"math"

	"github.com/rustyeddy/scalper/market"
)

// SimpleMA is a streaming Simple Moving Average over closes
type SimpleMA struct {
	period int
	closes []float64
}

// NewMA creates a new Simple Moving Average indicator with the given period
func NewMA(period int) *SimpleMA {
	return &SimpleMA{
		period: period,
		closes: make([]float64, 0, period),
	}
}

func (m *SimpleMA) Name() string {
	return fmt.Sprintf("MA(%d)", m.period)
}

func (m *SimpleMA) Warmup() int {
	return m.period
}

func (m *SimpleMA) Reset() {
	m.closes = m.closes[:0]
}

func (m *SimpleMA) Update(b market.Bar) {
	m.closes = append(m.closes, float64(b.Close))
	// Keep only the last 'period' closes
	if len(m.closes) > m.period {
		m.closes = m.closes[1:]
	}
}

func (m *SimpleMA) Ready() bool {
	return len(m.closes) >= m.period
}

func (m *SimpleMA) Value() float64 {
	if !m.Ready() {
		return 0
	}

	sum := 0.0
	for _, c := range m.closes {
		sum += c
	}
	return sum / float64(len(m.closes))
}

// StdDev is a streaming population standard deviation over closes.
// Paired with SimpleMA of the same period it yields the Bollinger bands.
type StdDev struct {
	period int
	closes []float64
}

// NewStdDev creates a new standard deviation indicator with the given period
func NewStdDev(period int) *StdDev {
	return &StdDev{
		period: period,
		closes: make([]float64, 0, period),
	}
}

func (s *StdDev) Name() string {
	return fmt.Sprintf("StdDev(%d)", s.period)
}

func (s *StdDev) Warmup() int {
	return s.period
}

func (s *StdDev) Reset() {
	s.closes = s.closes[:0]
}

func (s *StdDev) Update(b market.Bar) {
	s.closes = append(s.closes, float64(b.Close))
	if len(s.closes) > s.period {
		s.closes = s.closes[1:]
	}
}

func (s *StdDev) Ready() bool {
	return len(s.closes) >= s.period
}

func (s *StdDev) Value() float64 {
	if !s.Ready() {
		return 0
	}

	mean := 0.0
	for _, c := range s.closes {
		mean += c
	}
	mean /= float64(len(s.closes))

	varSum := 0.0
	for _, c := range s.closes {
		d := c - mean
		varSum += d * d
	}
	return math.Sqrt(varSum / float64(len(s.closes)))
}

// RSI is a streaming Relative Strength Index over close-to-close deltas.
//
// RS = meanGain / meanLoss over the trailing period; RSI = 100 - 100/(1+RS).
// Wherever the value is undefined (insufficient history, or a window with no
// losses) Value() returns the neutral 50 instead of propagating NaN.
type RSI struct {
	period int
	closes []float64
}

// NewRSI creates a new RSI indicator with the given period
func NewRSI(period int) *RSI {
	return &RSI{
		period: period,
		closes: make([]float64, 0, period+1),
	}
}

func (r *RSI) Name() string {
	return fmt.Sprintf("RSI(%d)", r.period)
}

func (r *RSI) Warmup() int {
	// One extra close is needed to form the first delta.
	return r.period + 1
}

func (r *RSI) Reset() {
	r.closes = r.closes[:0]
}

func (r *RSI) Update(b market.Bar) {
	r.closes = append(r.closes, float64(b.Close))
	if len(r.closes) > r.period+1 {
		r.closes = r.closes[1:]
	}
}

func (r *RSI) Ready() bool {
	return len(r.closes) >= r.period+1
}

func (r *RSI) Value() float64 {
	if !r.Ready() {
		return 50
	}

	var gain, loss float64
	for i := 1; i < len(r.closes); i++ {
		d := r.closes[i] - r.closes[i-1]
		if d > 0 {
			gain += d
		} else {
			loss += -d
		}
	}

	meanGain := gain / float64(r.period)
	meanLoss := loss / float64(r.period)
	if meanLoss == 0 {
		return 50
	}

	rs := meanGain / meanLoss
	return 100 - 100/(1+rs)
}

// VolumeMA is a streaming Simple Moving Average over volume
type VolumeMA struct {
	period  int
	volumes []float64
}

// NewVolumeMA creates a new volume moving average with the given period
func NewVolumeMA(period int) *VolumeMA {
	return &VolumeMA{
		period:  period,
		volumes: make([]float64, 0, period),
	}
}

func (m *VolumeMA) Name() string {
	return fmt.Sprintf("VolMA(%d)", m.period)
}

func (m *VolumeMA) Warmup() int {
	return m.period
}

func (m *VolumeMA) Reset() {
	m.volumes = m.volumes[:0]
}

func (m *VolumeMA) Update(b market.Bar) {
	m.volumes = append(m.volumes, float64(b.Volume))
	if len(m.volumes) > m.period {
		m.volumes = m.volumes[1:]
	}
}

func (m *VolumeMA) Ready() bool {
	return len(m.volumes) >= m.period
}

func (m *VolumeMA) Value() float64 {
	if !m.Ready() {
		return 0
	}

	sum := 0.0
	for _, v := range m.volumes {
		sum += v
	}
	return sum / float64(len(m.volumes))
}
