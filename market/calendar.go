// Package market defines the bar data model and the trading-session calendar.
package market

import "time"

// Session boundaries in minutes since midnight. The session runs 09:00 to
// 15:30 inclusive, so a full trading day has 391 bars.
const (
	sessionOpenMin  = 9 * 60
	sessionCloseMin = 15*60 + 30
)

// IsTradingDay reports whether t falls on a weekday.
func IsTradingDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// IsMarketMinute reports whether t is a minute inside the trading session:
// a weekday between 09:00 and 15:30 inclusive.
func IsMarketMinute(t time.Time) bool {
	if !IsTradingDay(t) {
		return false
	}
	mod := t.Hour()*60 + t.Minute()
	return mod >= sessionOpenMin && mod <= sessionCloseMin
}

// SessionMinutes returns every market minute of the day containing t, in
// chronological order. It returns nil for weekends.
func SessionMinutes(t time.Time) []time.Time {
	if !IsTradingDay(t) {
		return nil
	}
	y, m, d := t.Date()
	open := time.Date(y, m, d, 0, 0, 0, 0, t.Location()).Add(time.Duration(sessionOpenMin) * time.Minute)

	out := make([]time.Time, 0, sessionCloseMin-sessionOpenMin+1)
	for i := 0; i <= sessionCloseMin-sessionOpenMin; i++ {
		out = append(out, open.Add(time.Duration(i)*time.Minute))
	}
	return out
}

// Minutes returns every market minute in [start, end), in chronological order.
// Weekends and out-of-session minutes are skipped. An inverted or empty range
// yields nil.
func Minutes(start, end time.Time) []time.Time {
	if !start.Before(end) {
		return nil
	}

	var out []time.Time
	day := start
	for day.Before(end) {
		for _, t := range SessionMinutes(day) {
			if t.Before(start) || !t.Before(end) {
				continue
			}
			out = append(out, t)
		}
		// Advance to the next calendar day at midnight.
		y, m, d := day.Date()
		day = time.Date(y, m, d, 0, 0, 0, 0, day.Location()).AddDate(0, 0, 1)
	}
	return out
}
