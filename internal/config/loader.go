package config

import (
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tungetti/daylog/internal/errors"
)

const (
	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "DAYLOG_"
)

// Loader handles configuration loading from multiple sources.
// It loads configuration in order: defaults -> file -> environment variables,
// with later sources overriding earlier ones.
type Loader struct {
	configPath string
	envPrefix  string
}

// NewLoader creates a new configuration loader.
// If configPath is empty, only defaults and environment variables are used.
func NewLoader(configPath string) *Loader {
	return &Loader{
		configPath: configPath,
		envPrefix:  EnvPrefix,
	}
}

// NewLoaderWithPrefix creates a new loader with a custom environment variable prefix.
func NewLoaderWithPrefix(configPath, envPrefix string) *Loader {
	return &Loader{
		configPath: configPath,
		envPrefix:  envPrefix,
	}
}

// Load loads configuration from file and environment.
// Returns an error if the file exists but cannot be parsed.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if l.configPath != "" {
		if err := l.loadFromFile(cfg); err != nil {
			return nil, err
		}
	}

	l.loadFromEnv(cfg)

	return cfg, nil
}

// LoadAndValidate loads configuration and validates it.
func (l *Loader) LoadAndValidate() (*Config, error) {
	cfg, err := l.Load()
	if err != nil {
		return nil, err
	}

	if err := NewValidator().ValidateOrError(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile loads config from YAML file. A missing file is not an error.
func (l *Loader) loadFromFile(cfg *Config) error {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(errors.Configuration, "failed to read config file", err).
			WithOp("config.loadFromFile")
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrap(errors.Configuration, "failed to parse config file", err).
			WithOp("config.loadFromFile")
	}

	return nil
}

// loadFromEnv loads config from environment variables.
func (l *Loader) loadFromEnv(cfg *Config) {
	l.str("LEVEL", &cfg.Level)
	if v := l.getenv("MODULES"); v != "" {
		for module, name := range parseModules(v) {
			if cfg.Modules == nil {
				cfg.Modules = map[string]string{}
			}
			cfg.Modules[module] = name
		}
	}
	l.str("LEVEL_ENV", &cfg.LevelEnv)
	l.str("FORCE_ENV", &cfg.ForceEnv)
	l.boolean("FORCE_GLOBAL", &cfg.ForceGlobal)

	l.boolean("FILE_ENABLED", &cfg.File.Enabled)
	l.str("FILE_DIR", &cfg.File.Dir)
	l.str("FILE_FORMAT", &cfg.File.Format)
	l.duration("FILE_INTERVAL", &cfg.File.Interval)
	l.str("FILE_FAILURE_POLICY", &cfg.File.FailurePolicy)
	l.duration("FILE_MAX_BACKOFF", &cfg.File.MaxBackoff)

	l.str("COLOR", &cfg.Color)
	l.str("DIAGNOSTICS_LEVEL", &cfg.DiagnosticsLevel)
	l.duration("SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout)
}

func (l *Loader) getenv(name string) string {
	return os.Getenv(l.envPrefix + name)
}

func (l *Loader) str(name string, dst *string) {
	if v := l.getenv(name); v != "" {
		*dst = v
	}
}

func (l *Loader) boolean(name string, dst *bool) {
	if v := l.getenv(name); v != "" {
		*dst = parseBool(v)
	}
}

// duration ignores values time.ParseDuration rejects.
func (l *Loader) duration(name string, dst *time.Duration) {
	if v := l.getenv(name); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

// parseBool parses a string as a boolean value.
// Accepts: true, 1, yes, on (case-insensitive) as true.
// All other values are treated as false.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// parseModules parses "pkg/a=debug,pkg/b=warn". Malformed pairs are skipped.
func parseModules(s string) map[string]string {
	modules := map[string]string{}
	for _, pair := range strings.Split(s, ",") {
		module, name, ok := strings.Cut(pair, "=")
		module, name = strings.TrimSpace(module), strings.TrimSpace(name)
		if !ok || module == "" || name == "" {
			continue
		}
		modules[module] = name
	}
	return modules
}

// LoadDefaultConfig loads configuration from the default location.
func LoadDefaultConfig() (*Config, error) {
	return NewLoader(DefaultConfig().ConfigPath()).Load()
}
