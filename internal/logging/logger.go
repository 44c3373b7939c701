// Package logging provides daylog's own diagnostics logger: sink failures,
// recoveries and lifecycle events. It writes through charmbracelet/log and
// never goes through the dispatcher, so a failing sink cannot feed back into
// itself.
package logging

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/tungetti/daylog/internal/level"
)

// Logger defines the interface for logging operations.
// This interface is designed for easy mocking in tests.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, keyvals ...interface{})
	// Info logs an info message with optional key-value pairs.
	Info(msg string, keyvals ...interface{})
	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, keyvals ...interface{})
	// Error logs an error message with optional key-value pairs.
	Error(msg string, keyvals ...interface{})
	// WithPrefix returns a new Logger with the given prefix.
	WithPrefix(prefix string) Logger
	// WithFields returns a new Logger with the given fields added to all messages.
	WithFields(keyvals ...interface{}) Logger
	// SetLevel sets the threshold. Off silences the logger entirely.
	SetLevel(l level.Level)
	// GetLevel returns the current threshold.
	GetLevel() level.Level
}

// Options configures the logger.
type Options struct {
	// Level is the most verbose level written.
	Level level.Level
	// Output is the destination for log messages.
	Output io.Writer
	// TimeFormat is the format string for timestamps.
	TimeFormat string
	// Prefix is an optional prefix for all log messages.
	Prefix string
	// NoColor disables colorized output.
	NoColor bool
	// ReportTimestamp enables timestamp output.
	ReportTimestamp bool
}

// DefaultOptions returns the diagnostics defaults: warnings and errors to
// standard error.
func DefaultOptions() Options {
	return Options{
		Level:           level.Warn,
		Output:          os.Stderr,
		TimeFormat:      "15:04:05",
		Prefix:          "daylog",
		NoColor:         false,
		ReportTimestamp: true,
	}
}

// logger is the concrete implementation of Logger.
type logger struct {
	mu     sync.RWMutex
	impl   *log.Logger
	level  level.Level
	fields []interface{}
	prefix string
	output io.Writer
}

// New creates a new logger with the given options.
func New(opts Options) Logger {
	return &logger{
		impl:   newCharm(opts),
		level:  opts.Level,
		prefix: opts.Prefix,
		output: opts.Output,
	}
}

// NewHandler returns a charmbracelet/log logger usable as a slog.Handler,
// e.g. as the handler the dispatcher forwards records to.
func NewHandler(opts Options) slog.Handler {
	return newCharm(opts)
}

func newCharm(opts Options) *log.Logger {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	l := log.NewWithOptions(opts.Output, log.Options{
		TimeFormat:      opts.TimeFormat,
		Level:           toCharmLevel(opts.Level),
		Prefix:          opts.Prefix,
		ReportTimestamp: opts.ReportTimestamp,
	})
	if opts.NoColor {
		l.SetColorProfile(termenv.Ascii)
	}
	return l
}

// NewNop returns a no-op logger that discards all output.
// Useful for testing or when logging should be completely disabled.
func NewNop() Logger {
	return &nopLogger{}
}

// NewMultiLogger creates a logger that writes to multiple loggers.
// All loggers receive all log messages at their respective levels.
func NewMultiLogger(loggers ...Logger) Logger {
	return &multiLogger{loggers: loggers}
}

func (l *logger) enabled(at level.Level) bool {
	return l.level != level.Off && at <= l.level
}

func (l *logger) Debug(msg string, keyvals ...interface{}) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.enabled(level.Debug) {
		l.impl.Debug(msg, l.with(keyvals)...)
	}
}

func (l *logger) Info(msg string, keyvals ...interface{}) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.enabled(level.Info) {
		l.impl.Info(msg, l.with(keyvals)...)
	}
}

func (l *logger) Warn(msg string, keyvals ...interface{}) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.enabled(level.Warn) {
		l.impl.Warn(msg, l.with(keyvals)...)
	}
}

func (l *logger) Error(msg string, keyvals ...interface{}) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.enabled(level.Error) {
		l.impl.Error(msg, l.with(keyvals)...)
	}
}

// with appends keyvals to the bound fields without aliasing l.fields.
func (l *logger) with(keyvals []interface{}) []interface{} {
	all := make([]interface{}, 0, len(l.fields)+len(keyvals))
	all = append(all, l.fields...)
	return append(all, keyvals...)
}

func (l *logger) WithPrefix(prefix string) Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return &logger{
		impl:   l.impl.WithPrefix(prefix),
		level:  l.level,
		fields: l.fields,
		prefix: prefix,
		output: l.output,
	}
}

func (l *logger) WithFields(keyvals ...interface{}) Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return &logger{
		impl:   l.impl,
		level:  l.level,
		fields: l.with(keyvals),
		prefix: l.prefix,
		output: l.output,
	}
}

func (l *logger) SetLevel(lv level.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = lv
	l.impl.SetLevel(toCharmLevel(lv))
}

func (l *logger) GetLevel() level.Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// toCharmLevel converts a daylog level to a charmbracelet/log level. Trace
// has no charm equivalent and shares Debug; Off maps above Fatal.
func toCharmLevel(l level.Level) log.Level {
	switch l {
	case level.Trace, level.Debug:
		return log.DebugLevel
	case level.Info:
		return log.InfoLevel
	case level.Warn:
		return log.WarnLevel
	case level.Error:
		return log.ErrorLevel
	case level.Off:
		return log.FatalLevel + 1
	default:
		return log.InfoLevel
	}
}

// nopLogger discards all log output.
type nopLogger struct{}

func (n *nopLogger) Debug(msg string, keyvals ...interface{}) {}
func (n *nopLogger) Info(msg string, keyvals ...interface{})  {}
func (n *nopLogger) Warn(msg string, keyvals ...interface{})  {}
func (n *nopLogger) Error(msg string, keyvals ...interface{}) {}
func (n *nopLogger) WithPrefix(prefix string) Logger          { return n }
func (n *nopLogger) WithFields(keyvals ...interface{}) Logger { return n }
func (n *nopLogger) SetLevel(l level.Level)                   {}
func (n *nopLogger) GetLevel() level.Level                    { return level.Off }

// multiLogger writes to multiple loggers.
type multiLogger struct {
	loggers []Logger
}

func (m *multiLogger) Debug(msg string, keyvals ...interface{}) {
	for _, l := range m.loggers {
		l.Debug(msg, keyvals...)
	}
}

func (m *multiLogger) Info(msg string, keyvals ...interface{}) {
	for _, l := range m.loggers {
		l.Info(msg, keyvals...)
	}
}

func (m *multiLogger) Warn(msg string, keyvals ...interface{}) {
	for _, l := range m.loggers {
		l.Warn(msg, keyvals...)
	}
}

func (m *multiLogger) Error(msg string, keyvals ...interface{}) {
	for _, l := range m.loggers {
		l.Error(msg, keyvals...)
	}
}

func (m *multiLogger) WithPrefix(prefix string) Logger {
	newLoggers := make([]Logger, len(m.loggers))
	for i, l := range m.loggers {
		newLoggers[i] = l.WithPrefix(prefix)
	}
	return &multiLogger{loggers: newLoggers}
}

func (m *multiLogger) WithFields(keyvals ...interface{}) Logger {
	newLoggers := make([]Logger, len(m.loggers))
	for i, l := range m.loggers {
		newLoggers[i] = l.WithFields(keyvals...)
	}
	return &multiLogger{loggers: newLoggers}
}

func (m *multiLogger) SetLevel(l level.Level) {
	for _, lg := range m.loggers {
		lg.SetLevel(l)
	}
}

func (m *multiLogger) GetLevel() level.Level {
	if len(m.loggers) > 0 {
		return m.loggers[0].GetLevel()
	}
	return level.Off
}
