// Package testing provides shared test infrastructure for daylog: a
// recording logger, a testify mock of the day-file store, a controllable
// clock, day-file fixtures and assertions.
package testing

import (
	"errors"
	"strings"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/tungetti/daylog/internal/level"
	"github.com/tungetti/daylog/internal/logging"
	"github.com/tungetti/daylog/internal/record"
)

// ============================================================================
// MockLogger - Implements logging.Logger for testing
// ============================================================================

// LogMessage represents a recorded log message.
type LogMessage struct {
	Level   level.Level
	Message string
	Fields  []interface{}
}

// Field returns the value bound to key, or nil.
func (m LogMessage) Field(key string) interface{} {
	for i := 0; i+1 < len(m.Fields); i += 2 {
		if k, ok := m.Fields[i].(string); ok && k == key {
			return m.Fields[i+1]
		}
	}
	return nil
}

// MockLogger implements logging.Logger for testing purposes.
// It records all log messages for later inspection. Derived loggers record
// into the same store.
type MockLogger struct {
	store  *logStore
	prefix string
	fields []interface{}
}

type logStore struct {
	mu       sync.Mutex
	messages []LogMessage
	level    level.Level
}

// NewMockLogger creates a MockLogger recording every level.
func NewMockLogger() *MockLogger {
	return &MockLogger{store: &logStore{level: level.Trace}}
}

// Debug logs a debug message.
func (m *MockLogger) Debug(msg string, keyvals ...interface{}) {
	m.record(level.Debug, msg, keyvals)
}

// Info logs an info message.
func (m *MockLogger) Info(msg string, keyvals ...interface{}) {
	m.record(level.Info, msg, keyvals)
}

// Warn logs a warning message.
func (m *MockLogger) Warn(msg string, keyvals ...interface{}) {
	m.record(level.Warn, msg, keyvals)
}

// Error logs an error message.
func (m *MockLogger) Error(msg string, keyvals ...interface{}) {
	m.record(level.Error, msg, keyvals)
}

// WithPrefix returns a logger recording into the same store with prefix.
func (m *MockLogger) WithPrefix(prefix string) logging.Logger {
	return &MockLogger{store: m.store, prefix: prefix, fields: m.fields}
}

// WithFields returns a logger recording into the same store with fields.
func (m *MockLogger) WithFields(keyvals ...interface{}) logging.Logger {
	fields := append(append([]interface{}{}, m.fields...), keyvals...)
	return &MockLogger{store: m.store, prefix: m.prefix, fields: fields}
}

// SetLevel sets the threshold.
func (m *MockLogger) SetLevel(l level.Level) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.level = l
}

// GetLevel returns the current threshold.
func (m *MockLogger) GetLevel() level.Level {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return m.store.level
}

func (m *MockLogger) record(l level.Level, msg string, keyvals []interface{}) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if m.store.level == level.Off || l > m.store.level {
		return
	}

	allFields := append([]interface{}{}, m.fields...)
	allFields = append(allFields, keyvals...)

	fullMsg := msg
	if m.prefix != "" {
		fullMsg = m.prefix + ": " + msg
	}

	m.store.messages = append(m.store.messages, LogMessage{
		Level:   l,
		Message: fullMsg,
		Fields:  allFields,
	})
}

// Messages returns all recorded log messages.
func (m *MockLogger) Messages() []LogMessage {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return append([]LogMessage{}, m.store.messages...)
}

// MessagesAtLevel returns all messages at a specific log level.
func (m *MockLogger) MessagesAtLevel(l level.Level) []LogMessage {
	var filtered []LogMessage
	for _, msg := range m.Messages() {
		if msg.Level == l {
			filtered = append(filtered, msg)
		}
	}
	return filtered
}

// Clear removes all recorded messages.
func (m *MockLogger) Clear() {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.messages = nil
}

// ContainsMessage checks if any recorded message contains the given substring.
func (m *MockLogger) ContainsMessage(substring string) bool {
	for _, msg := range m.Messages() {
		if strings.Contains(msg.Message, substring) {
			return true
		}
	}
	return false
}

// ContainsMessageAtLevel checks if any message at the given level contains the substring.
func (m *MockLogger) ContainsMessageAtLevel(l level.Level, substring string) bool {
	for _, msg := range m.MessagesAtLevel(l) {
		if strings.Contains(msg.Message, substring) {
			return true
		}
	}
	return false
}

// MessageCount returns the total number of recorded messages.
func (m *MockLogger) MessageCount() int {
	return len(m.Messages())
}

// Ensure MockLogger implements logging.Logger.
var _ logging.Logger = (*MockLogger)(nil)

// ============================================================================
// MockStore - testify mock of the sink's day-file store
// ============================================================================

// MockStore satisfies the sink Store interface. Saved slices are copied
// before being recorded so later appends do not rewrite expectations.
type MockStore struct {
	mock.Mock
}

// Load records the call and returns the configured entries and error.
func (m *MockStore) Load(day string) ([]record.Entry, error) {
	args := m.Called(day)
	entries, _ := args.Get(0).([]record.Entry)
	return entries, args.Error(1)
}

// Save records the call with a copy of entries.
func (m *MockStore) Save(day string, entries []record.Entry) error {
	snapshot := append([]record.Entry{}, entries...)
	return m.Called(day, snapshot).Error(0)
}

// SavedDays returns the day argument of every Save call in order.
func (m *MockStore) SavedDays() []string {
	var days []string
	for _, c := range m.Calls {
		if c.Method == "Save" {
			days = append(days, c.Arguments.String(0))
		}
	}
	return days
}

// LastSaved returns the entries of the most recent Save of day.
func (m *MockStore) LastSaved(day string) []record.Entry {
	var last []record.Entry
	for _, c := range m.Calls {
		if c.Method == "Save" && c.Arguments.String(0) == day {
			last, _ = c.Arguments.Get(1).([]record.Entry)
		}
	}
	return last
}

// ============================================================================
// FailingWriter - io.Writer that fails on demand
// ============================================================================

// ErrWriteFailed is returned by FailingWriter.
var ErrWriteFailed = errors.New("write failed")

// FailingWriter discards writes and fails every one of them.
type FailingWriter struct{}

// Write implements io.Writer.
func (FailingWriter) Write(p []byte) (int, error) {
	return 0, ErrWriteFailed
}
