// Package level defines daylog's severity levels and the level filter that
// decides, per module, which events reach the console and the file sink.
package level

import (
	"fmt"
	"log/slog"
	"strings"
)

// Level represents logging severity. Larger values are more verbose, so a
// threshold t accepts every event e with e <= t.
type Level int

const (
	// Off disables logging.
	Off Level = iota
	// Error is for failures.
	Error
	// Warn is for potential issues.
	Warn
	// Info is for general informational messages.
	Info
	// Debug is for detailed debugging information.
	Debug
	// Trace is for the most verbose diagnostics.
	Trace
)

// SlogTrace is the slog level used for Trace, one step below slog.LevelDebug.
const SlogTrace slog.Level = slog.LevelDebug - 4

// String returns the lowercase name used in configuration and day files.
func (l Level) String() string {
	switch l {
	case Off:
		return "off"
	case Error:
		return "error"
	case Warn:
		return "warn"
	case Info:
		return "info"
	case Debug:
		return "debug"
	case Trace:
		return "trace"
	default:
		return "unknown"
	}
}

// Label returns the fixed five-character console label, or "" for Off.
func (l Level) Label() string {
	switch l {
	case Error:
		return "ERROR"
	case Warn:
		return "WARN "
	case Info:
		return "INFO "
	case Debug:
		return "DEBUG"
	case Trace:
		return "TRACE"
	default:
		return ""
	}
}

// IsValid reports whether l is one of the defined levels.
func (l Level) IsValid() bool {
	return l >= Off && l <= Trace
}

// Parse converts a level name to a Level, case-insensitively. ok is false
// for unrecognized names. "off" parses, since configuration may disable the
// logger; environment overrides go through ParseEvent instead.
func Parse(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off":
		return Off, true
	case "error":
		return Error, true
	case "warn", "warning":
		return Warn, true
	case "info":
		return Info, true
	case "debug":
		return Debug, true
	case "trace":
		return Trace, true
	default:
		return Off, false
	}
}

// ParseEvent is Parse restricted to the five event severities.
func ParseEvent(s string) (Level, bool) {
	l, ok := Parse(s)
	if !ok || l == Off {
		return Off, false
	}
	return l, true
}

// MustParse is Parse with a fallback for unrecognized names.
func MustParse(s string, fallback Level) Level {
	if l, ok := Parse(s); ok {
		return l
	}
	return fallback
}

// FromSlog maps a slog level onto the nearest daylog level at or above it in
// severity.
func FromSlog(l slog.Level) Level {
	switch {
	case l >= slog.LevelError:
		return Error
	case l >= slog.LevelWarn:
		return Warn
	case l >= slog.LevelInfo:
		return Info
	case l >= slog.LevelDebug:
		return Debug
	default:
		return Trace
	}
}

// Slog returns the slog level for l. Off maps above every severity so that
// nothing compares enabled against it.
func (l Level) Slog() slog.Level {
	switch l {
	case Error:
		return slog.LevelError
	case Warn:
		return slog.LevelWarn
	case Info:
		return slog.LevelInfo
	case Debug:
		return slog.LevelDebug
	case Trace:
		return SlogTrace
	default:
		return slog.LevelError + 4
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, ok := Parse(string(text))
	if !ok {
		return fmt.Errorf("unknown level %q", string(text))
	}
	*l = parsed
	return nil
}
