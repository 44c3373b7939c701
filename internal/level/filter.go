package level

import (
	"os"
)

// Default environment variable names consulted by the filter.
const (
	DefaultLevelEnv = "LOG_LEVEL"
	DefaultForceEnv = "LOG_LEVEL_FORCE"
)

// FilterConfig configures a Filter. It is copied at construction; later
// changes to the caller's map have no effect.
type FilterConfig struct {
	// Global is the configured default threshold.
	Global Level
	// Modules maps a module (Go package path) to its own threshold.
	Modules map[string]Level
	// LevelEnv names the variable that overrides Global by level name.
	LevelEnv string
	// ForceEnv names the variable controlling whether the effective global
	// threshold also caps modules with a more permissive override. The
	// value "0" disables the cap; any other value enables it.
	ForceEnv string
	// ForceGlobal is used when ForceEnv is unset.
	ForceGlobal bool
	// LookupEnv looks up environment variables. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// DefaultFilterConfig returns an Info threshold with the standard variable
// names and the global cap enabled.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		Global:      Info,
		LevelEnv:    DefaultLevelEnv,
		ForceEnv:    DefaultForceEnv,
		ForceGlobal: true,
	}
}

// Filter decides whether an event at a given level from a given module is
// emitted. It is safe for concurrent use and immutable after NewFilter.
type Filter struct {
	global      Level
	modules     map[string]Level
	levelEnv    string
	forceEnv    string
	forceGlobal bool
	lookupEnv   func(string) (string, bool)
	maxModule   Level
}

// NewFilter creates a filter from cfg.
func NewFilter(cfg FilterConfig) *Filter {
	f := &Filter{
		global:      cfg.Global,
		modules:     make(map[string]Level, len(cfg.Modules)),
		levelEnv:    cfg.LevelEnv,
		forceEnv:    cfg.ForceEnv,
		forceGlobal: cfg.ForceGlobal,
		lookupEnv:   cfg.LookupEnv,
	}
	if f.lookupEnv == nil {
		f.lookupEnv = os.LookupEnv
	}
	for module, l := range cfg.Modules {
		f.modules[module] = l
		if l > f.maxModule {
			f.maxModule = l
		}
	}
	return f
}

// Global returns the configured default threshold.
func (f *Filter) Global() Level {
	return f.global
}

// Effective returns the global threshold after the environment override.
func (f *Filter) Effective() Level {
	if f.levelEnv != "" {
		if v, set := f.lookupEnv(f.levelEnv); set {
			if l, ok := ParseEvent(v); ok {
				return l
			}
		}
	}
	return f.global
}

// Enabled reports whether an event at event from module is emitted.
func (f *Filter) Enabled(module string, event Level) bool {
	if f.global == Off || event == Off {
		return false
	}

	effective := f.Effective()

	moduleLevel, ok := f.modules[module]
	if !ok {
		return event <= effective
	}

	if event > moduleLevel {
		return false
	}
	if event > effective && f.forced() {
		return false
	}
	return true
}

// MayEnable reports whether any module could emit an event at event. It is
// the cheap pre-check used before the caller's module is known.
func (f *Filter) MayEnable(event Level) bool {
	if f.global == Off || event == Off {
		return false
	}
	if event <= f.Effective() {
		return true
	}
	return event <= f.maxModule && !f.forced()
}

// HasModules reports whether any per-module override is configured.
func (f *Filter) HasModules() bool {
	return len(f.modules) > 0
}

func (f *Filter) forced() bool {
	if f.forceEnv != "" {
		if v, set := f.lookupEnv(f.forceEnv); set {
			return v != "0"
		}
	}
	return f.forceGlobal
}
