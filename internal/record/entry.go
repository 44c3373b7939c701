// Package record defines the structured log entry shared by the dispatcher,
// the buffer and the file sink, and the extraction of its typed fields from
// slog attributes.
package record

import (
	"time"

	"github.com/tungetti/daylog/internal/level"
)

// DayLayout is the layout of a UTC day bucket, e.g. "20240131".
const DayLayout = "20060102"

// Entry is one structured log record. Optional fields are nil when absent
// and encode as null.
type Entry struct {
	Timestamp int64       `json:"timestamp"` // milliseconds since the Unix epoch
	Level     level.Level `json:"level"`
	Category  *string     `json:"category"`
	Message   *string     `json:"message"`
	Error     *string     `json:"error"`
	Elapsed   *float64    `json:"ms"` // milliseconds
}

// NewEntry builds an entry stamped with t from extracted fields.
func NewEntry(t time.Time, l level.Level, f Fields) Entry {
	return Entry{
		Timestamp: t.UnixMilli(),
		Level:     l,
		Category:  f.Category,
		Message:   f.Message,
		Error:     f.Error,
		Elapsed:   f.Elapsed,
	}
}

// Time returns the entry timestamp in UTC.
func (e Entry) Time() time.Time {
	return time.UnixMilli(e.Timestamp).UTC()
}

// Day returns the UTC day bucket the entry belongs to.
func (e Entry) Day() string {
	return DayOf(e.Time())
}

// DayOf returns the UTC day bucket of t.
func DayOf(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// ParseDay parses a day bucket into midnight UTC of that day.
func ParseDay(day string) (time.Time, error) {
	return time.ParseInLocation(DayLayout, day, time.UTC)
}

// String returns a pointer to s, for building entries.
func String(s string) *string {
	return &s
}

// Float returns a pointer to f, for building entries.
func Float(f float64) *float64 {
	return &f
}

// Deref returns *p, or "" when p is nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
