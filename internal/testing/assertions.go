package testing

import (
	"os"
	"strings"
	"testing"

	"github.com/tungetti/daylog/internal/errors"
	"github.com/tungetti/daylog/internal/level"
)

// ============================================================================
// Error Assertions
// ============================================================================

// AssertErrorCode checks if an error has a specific error code.
func AssertErrorCode(t testing.TB, err error, expectedCode errors.Code) {
	t.Helper()

	if err == nil {
		t.Errorf("expected error with code %s, but got nil", expectedCode)
		return
	}

	actualCode := errors.GetCode(err)
	if actualCode != expectedCode {
		t.Errorf("expected error code %s, but got %s (error: %v)", expectedCode, actualCode, err)
	}
}

// AssertErrorContains checks if error message contains a substring.
func AssertErrorContains(t testing.TB, err error, substring string) {
	t.Helper()

	if err == nil {
		t.Errorf("expected error containing %q, but got nil", substring)
		return
	}

	if !strings.Contains(err.Error(), substring) {
		t.Errorf("expected error to contain %q, but got %q", substring, err.Error())
	}
}

// ============================================================================
// Logger Assertions
// ============================================================================

// AssertLogContains checks if the mock logger contains a message.
func AssertLogContains(t testing.TB, logger *MockLogger, substring string) {
	t.Helper()

	if !logger.ContainsMessage(substring) {
		t.Errorf("expected log to contain %q, but it doesn't (messages: %v)", substring, messageTexts(logger.Messages()))
	}
}

// AssertLogNotContains checks if the mock logger does NOT contain a message.
func AssertLogNotContains(t testing.TB, logger *MockLogger, substring string) {
	t.Helper()

	if logger.ContainsMessage(substring) {
		t.Errorf("expected log to NOT contain %q, but it does", substring)
	}
}

// AssertLogLevel checks if a message was logged at a specific level.
func AssertLogLevel(t testing.TB, logger *MockLogger, l level.Level, substring string) {
	t.Helper()

	if !logger.ContainsMessageAtLevel(l, substring) {
		t.Errorf("expected log at level %s to contain %q, but it doesn't (messages: %v)",
			l, substring, messageTexts(logger.MessagesAtLevel(l)))
	}
}

// AssertLogEmpty checks if the mock logger has no messages.
func AssertLogEmpty(t testing.TB, logger *MockLogger, msgAndArgs ...interface{}) {
	t.Helper()

	if n := logger.MessageCount(); n > 0 {
		prefix := formatMessage(msgAndArgs...)
		if prefix != "" {
			prefix += ": "
		}
		t.Errorf("%sexpected log to be empty, but it has %d messages: %v",
			prefix, n, messageTexts(logger.Messages()))
	}
}

func messageTexts(messages []LogMessage) []string {
	texts := make([]string, 0, len(messages))
	for _, m := range messages {
		texts = append(texts, m.Message)
	}
	return texts
}

// ============================================================================
// File System Assertions
// ============================================================================

// AssertFileExists checks if a file exists.
func AssertFileExists(t testing.TB, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("expected file %q to exist, but it doesn't", path)
	}
}

// AssertFileNotExists checks if a file does NOT exist.
func AssertFileNotExists(t testing.TB, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file %q to NOT exist, but it does", path)
	} else if !os.IsNotExist(err) {
		t.Errorf("unexpected error checking file %q: %v", path, err)
	}
}

// AssertFileContains checks if a file contains a substring.
func AssertFileContains(t testing.TB, path, substring string) {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("failed to read file %q: %v", path, err)
		return
	}

	if !strings.Contains(string(content), substring) {
		t.Errorf("expected file %q to contain %q, but it doesn't", path, substring)
	}
}

// AssertDirExists checks if a directory exists.
func AssertDirExists(t testing.TB, path string) {
	t.Helper()

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("expected directory %q to exist, but it doesn't", path)
		return
	}
	if err != nil {
		t.Errorf("error checking directory %q: %v", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %q to be a directory, but it's a file", path)
	}
}
