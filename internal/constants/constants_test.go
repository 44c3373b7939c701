package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode_Int(t *testing.T) {
	tests := []struct {
		name     string
		code     ExitCode
		expected int
	}{
		{"ExitSuccess", ExitSuccess, 0},
		{"ExitError", ExitError, 1},
		{"ExitValidation", ExitValidation, 2},
		{"ExitNotFound", ExitNotFound, 3},
		{"ExitSink", ExitSink, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.code.Int())
		})
	}
}

func TestAppMetadata(t *testing.T) {
	assert.Equal(t, "daylog", AppName)
	assert.NotEmpty(t, AppDescription)
	assert.Equal(t, "config.yaml", ConfigFileName)
}
