// Package cli provides command-line argument parsing for daylog. It supports
// subcommands, global flags, and command-specific flags with both short and
// long variants.
package cli

import (
	"github.com/tungetti/daylog/internal/config"
	"github.com/tungetti/daylog/internal/level"
	"github.com/tungetti/daylog/internal/record"
	"github.com/tungetti/daylog/internal/sink"
)

// GlobalFlags holds flags common to all commands.
type GlobalFlags struct {
	// ConfigFile specifies a custom configuration file path.
	ConfigFile string

	// Dir overrides the day-file directory.
	Dir string

	// Level overrides the global threshold.
	Level string

	// Format overrides the day-file format (json, csv).
	Format string

	// NoColor disables colored terminal output.
	NoColor bool
}

// PipeFlags holds pipe command specific flags.
type PipeFlags struct {
	// Level is the event level of every line.
	Level string

	// Category is attached to every line.
	Category string

	// NoFile disables day files for this run.
	NoFile bool
}

// Validate checks GlobalFlags values that can be checked without a config.
func (f *GlobalFlags) Validate() error {
	if f.Level != "" {
		if _, ok := level.Parse(f.Level); !ok {
			return &FlagError{Flag: "level", Message: "unknown level " + f.Level}
		}
	}
	if f.Format != "" {
		if _, err := sink.ParseFormat(f.Format); err != nil {
			return &FlagError{Flag: "format", Message: "must be json or csv"}
		}
	}
	return nil
}

// Apply writes the flags that were set over cfg. Flags take precedence over
// the file and the environment.
func (f *GlobalFlags) Apply(cfg *config.Config) {
	if f.Dir != "" {
		cfg.File.Dir = f.Dir
	}
	if f.Level != "" {
		cfg.Level = f.Level
	}
	if f.Format != "" {
		cfg.File.Format = f.Format
	}
	if f.NoColor {
		cfg.Color = "never"
	}
}

// Validate checks PipeFlags.
func (f *PipeFlags) Validate() error {
	if _, ok := level.ParseEvent(f.Level); !ok {
		return &FlagError{Flag: "level", Message: "unknown event level " + f.Level}
	}
	return nil
}

// ValidateDay checks a YYYYMMDD day argument.
func ValidateDay(day string) error {
	if _, err := record.ParseDay(day); err != nil {
		return &FlagError{Flag: "day", Message: "expected YYYYMMDD, got " + day}
	}
	return nil
}

// FlagError represents an error with a command-line flag.
type FlagError struct {
	Flag    string
	Message string
}

// Error implements the error interface.
func (e *FlagError) Error() string {
	return "flag error: " + e.Flag + ": " + e.Message
}
