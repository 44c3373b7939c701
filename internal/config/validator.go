package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tungetti/daylog/internal/errors"
	"github.com/tungetti/daylog/internal/level"
	"github.com/tungetti/daylog/internal/render"
	"github.com/tungetti/daylog/internal/sink"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation: %s: %s", e.Field, e.Message)
}

// Validator validates configuration.
type Validator struct{}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates the configuration and returns all errors.
func (v *Validator) Validate(cfg *Config) []error {
	var errs []error
	add := func(field, format string, args ...interface{}) {
		errs = append(errs, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if _, ok := level.Parse(cfg.Level); !ok {
		add("level", "invalid level %q: must be one of: off, error, warn, info, debug, trace", cfg.Level)
	}

	modules := make([]string, 0, len(cfg.Modules))
	for module := range cfg.Modules {
		modules = append(modules, module)
	}
	sort.Strings(modules)
	for _, module := range modules {
		if module == "" {
			add("modules", "module path cannot be empty")
			continue
		}
		if _, ok := level.ParseEvent(cfg.Modules[module]); !ok {
			add("modules."+module, "invalid level %q", cfg.Modules[module])
		}
	}

	if _, ok := level.Parse(cfg.DiagnosticsLevel); !ok {
		add("diagnostics_level", "invalid level %q", cfg.DiagnosticsLevel)
	}

	if _, err := render.ParseColorMode(cfg.Color); err != nil {
		add("color", "invalid color mode %q: must be one of: auto, always, never", cfg.Color)
	}

	if cfg.ShutdownTimeout <= 0 {
		add("shutdown_timeout", "shutdown timeout must be positive")
	}

	errs = append(errs, v.validateFile(&cfg.File)...)
	return errs
}

func (v *Validator) validateFile(f *FileConfig) []error {
	var errs []error
	add := func(field, message string) {
		errs = append(errs, &ValidationError{Field: "file." + field, Message: message})
	}

	if strings.TrimSpace(f.Dir) == "" {
		add("dir", "directory cannot be empty")
	}
	if _, err := sink.ParseFormat(f.Format); err != nil {
		add("format", fmt.Sprintf("invalid format %q: must be one of: json, csv", f.Format))
	}
	if _, err := sink.ParseFailurePolicy(f.FailurePolicy); err != nil {
		add("failure_policy", fmt.Sprintf("invalid failure policy %q: must be one of: retry, fail-fast", f.FailurePolicy))
	}
	if f.Interval <= 0 {
		add("interval", "interval must be positive")
	}
	if f.MaxBackoff <= 0 {
		add("max_backoff", "max backoff must be positive")
	}
	return errs
}

// ValidateOrError validates and returns a single Configuration error
// listing every problem, or nil.
func (v *Validator) ValidateOrError(cfg *Config) error {
	errs := v.Validate(cfg)
	if len(errs) == 0 {
		return nil
	}

	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}

	return errors.New(errors.Configuration, strings.Join(msgs, "; ")).
		WithOp("config.Validate")
}

// IsValid returns true if the configuration is valid.
func (v *Validator) IsValid(cfg *Config) bool {
	return len(v.Validate(cfg)) == 0
}
