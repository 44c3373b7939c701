// Package stopwatch measures elapsed time and converts durations into
// human-friendly units. A running Stopwatch can be attached to a log event
// under the "ms" key and is rendered as elapsed milliseconds.
package stopwatch

import (
	"log/slog"
	"time"
)

// Stopwatch measures time since Start.
type Stopwatch struct {
	start time.Time
	now   func() time.Time
}

// Start returns a running stopwatch.
func Start() *Stopwatch {
	return StartWithClock(time.Now)
}

// StartWithClock returns a running stopwatch reading time from now.
func StartWithClock(now func() time.Time) *Stopwatch {
	return &Stopwatch{start: now(), now: now}
}

// Duration returns the raw elapsed duration.
func (s *Stopwatch) Duration() time.Duration {
	return s.now().Sub(s.start)
}

// Elapsed returns the elapsed time as a whole number in the optimal unit.
func (s *Stopwatch) Elapsed() Value {
	return Convert(s.Duration())
}

// ElapsedIn returns the elapsed time as a whole number of unit.
func (s *Stopwatch) ElapsedIn(unit Unit) Value {
	return In(s.Duration(), unit)
}

// ElapsedFloat returns the elapsed time in the optimal unit rounded to
// precision decimals.
func (s *Stopwatch) ElapsedFloat(precision int) Value {
	return ConvertFloat(s.Duration(), precision)
}

// ElapsedMS returns the elapsed milliseconds rounded to DefaultPrecision.
func (s *Stopwatch) ElapsedMS() float64 {
	return InFloat(s.Duration(), Milliseconds, DefaultPrecision).Float
}

// Restart resets the start time to now.
func (s *Stopwatch) Restart() {
	s.start = s.now()
}

// LogValue implements slog.LogValuer.
func (s *Stopwatch) LogValue() slog.Value {
	return slog.Float64Value(s.ElapsedMS())
}
