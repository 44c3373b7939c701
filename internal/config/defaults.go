package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/tungetti/daylog/internal/constants"
	"github.com/tungetti/daylog/internal/level"
)

const (
	// DefaultLevel is the default global threshold.
	DefaultLevel = "info"

	// DefaultDiagnosticsLevel is the default threshold of the internal logger.
	DefaultDiagnosticsLevel = "warn"

	// DefaultDir is the default day-file directory, relative to the
	// executable.
	DefaultDir = "./logs"

	// DefaultFormat is the default day-file encoding.
	DefaultFormat = "json"

	// DefaultInterval is the default flush interval.
	DefaultInterval = time.Second

	// DefaultFailurePolicy is the default sink failure policy.
	DefaultFailurePolicy = "retry"

	// DefaultMaxBackoff caps the retry delay.
	DefaultMaxBackoff = 30 * time.Second

	// DefaultColor is the default color mode.
	DefaultColor = "auto"

	// DefaultShutdownTimeout bounds the final flush on shutdown.
	DefaultShutdownTimeout = 5 * time.Second
)

// DefaultConfig returns a Config with the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		Level:       DefaultLevel,
		Modules:     map[string]string{},
		LevelEnv:    level.DefaultLevelEnv,
		ForceEnv:    level.DefaultForceEnv,
		ForceGlobal: true,
		File: FileConfig{
			Enabled:       false,
			Dir:           DefaultDir,
			Format:        DefaultFormat,
			Interval:      DefaultInterval,
			FailurePolicy: DefaultFailurePolicy,
			MaxBackoff:    DefaultMaxBackoff,
		},
		Color:            DefaultColor,
		DiagnosticsLevel: DefaultDiagnosticsLevel,
		ShutdownTimeout:  DefaultShutdownTimeout,
		ConfigDir:        defaultConfigDir(),
	}
}

// defaultConfigDir returns the XDG config directory for daylog.
// Falls back to ~/.config/daylog if XDG_CONFIG_HOME is not set.
func defaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, constants.AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", constants.AppName)
	}
	return filepath.Join(home, ".config", constants.AppName)
}

// GetConfigDir returns the configuration directory, respecting XDG.
func GetConfigDir() string {
	return defaultConfigDir()
}
