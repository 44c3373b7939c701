// Package config provides configuration management for daylog.
// Configuration is layered: defaults, then an optional YAML file, then
// DAYLOG_* environment variables. The default file location follows the
// XDG Base Directory specification.
package config

import (
	"path/filepath"
	"time"

	"github.com/tungetti/daylog/internal/constants"
	"github.com/tungetti/daylog/internal/level"
)

// Config represents the logger configuration.
type Config struct {
	// Level is the global threshold name, "off" included.
	Level string `yaml:"level"`
	// Modules maps a Go package path to its own threshold name.
	Modules map[string]string `yaml:"modules"`

	// Environment variables consulted by the level filter.
	LevelEnv    string `yaml:"level_env"`
	ForceEnv    string `yaml:"force_env"`
	ForceGlobal bool   `yaml:"force_global"`

	File FileConfig `yaml:"file"`

	// Color is one of auto, always, never.
	Color string `yaml:"color"`

	// DiagnosticsLevel is the threshold of daylog's own logger.
	DiagnosticsLevel string `yaml:"diagnostics_level"`

	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// ConfigDir is where the default config file lives. Not read from files.
	ConfigDir string `yaml:"-"`
}

// FileConfig configures the rotating file sink.
type FileConfig struct {
	Enabled bool `yaml:"enabled"`
	// Dir is the day-file directory. Relative paths resolve against the
	// executable's directory.
	Dir string `yaml:"dir"`
	// Format is json or csv.
	Format   string        `yaml:"format"`
	Interval time.Duration `yaml:"interval"`
	// FailurePolicy is retry or fail-fast.
	FailurePolicy string        `yaml:"failure_policy"`
	MaxBackoff    time.Duration `yaml:"max_backoff"`
}

// ConfigPath returns the path to the default config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.ConfigDir, constants.ConfigFileName)
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Modules != nil {
		clone.Modules = make(map[string]string, len(c.Modules))
		for k, v := range c.Modules {
			clone.Modules[k] = v
		}
	}
	return &clone
}

// FilterConfig converts the level settings into a level.FilterConfig.
// Unparseable names fall back to Info; validate first to reject them.
func (c *Config) FilterConfig() level.FilterConfig {
	cfg := level.FilterConfig{
		Global:      level.MustParse(c.Level, level.Info),
		LevelEnv:    c.LevelEnv,
		ForceEnv:    c.ForceEnv,
		ForceGlobal: c.ForceGlobal,
	}
	if len(c.Modules) > 0 {
		cfg.Modules = make(map[string]level.Level, len(c.Modules))
		for module, name := range c.Modules {
			cfg.Modules[module] = level.MustParse(name, level.Info)
		}
	}
	return cfg
}

// Diagnostics returns the threshold of daylog's own logger.
func (c *Config) Diagnostics() level.Level {
	return level.MustParse(c.DiagnosticsLevel, level.Warn)
}
