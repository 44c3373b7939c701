package level

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// envMap returns a LookupEnv backed by vars.
func envMap(vars map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func newTestFilter(global Level, modules map[string]Level, env map[string]string) *Filter {
	cfg := DefaultFilterConfig()
	cfg.Global = global
	cfg.Modules = modules
	cfg.LookupEnv = envMap(env)
	return NewFilter(cfg)
}

func TestFilter_GlobalOnly(t *testing.T) {
	f := newTestFilter(Info, nil, nil)

	assert.True(t, f.Enabled("any", Error))
	assert.True(t, f.Enabled("any", Warn))
	assert.True(t, f.Enabled("any", Info))
	assert.False(t, f.Enabled("any", Debug))
	assert.False(t, f.Enabled("any", Trace))
}

func TestFilter_GlobalOffRejectsEverything(t *testing.T) {
	f := newTestFilter(Off, map[string]Level{"mod.x": Trace}, map[string]string{
		DefaultLevelEnv: "trace",
		DefaultForceEnv: "0",
	})

	for _, l := range []Level{Error, Warn, Info, Debug, Trace} {
		assert.False(t, f.Enabled("any", l))
		assert.False(t, f.Enabled("mod.x", l))
		assert.False(t, f.MayEnable(l))
	}
}

func TestFilter_OffEventNeverEnabled(t *testing.T) {
	f := newTestFilter(Trace, nil, nil)
	assert.False(t, f.Enabled("any", Off))
}

func TestFilter_EnvOverride(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		expected Level
	}{
		{"debug", "debug", Debug},
		{"upper case", "ERROR", Error},
		{"unparseable falls back", "loud", Info},
		{"empty falls back", "", Info},
		{"off is not an override", "off", Info},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFilter(Info, nil, map[string]string{DefaultLevelEnv: tt.env})
			assert.Equal(t, tt.expected, f.Effective())
		})
	}
}

func TestFilter_EnvOverrideApplies(t *testing.T) {
	f := newTestFilter(Info, nil, map[string]string{DefaultLevelEnv: "debug"})

	assert.True(t, f.Enabled("any", Debug))
	assert.False(t, f.Enabled("any", Trace))
}

func TestFilter_RealEnvironment(t *testing.T) {
	t.Setenv("DAYLOG_TEST_LEVEL", "warn")

	cfg := DefaultFilterConfig()
	cfg.LevelEnv = "DAYLOG_TEST_LEVEL"
	f := NewFilter(cfg)

	assert.Equal(t, Warn, f.Effective())
	assert.False(t, f.Enabled("any", Info))
}

func TestFilter_ModuleStricterThanGlobal(t *testing.T) {
	f := newTestFilter(Debug, map[string]Level{"mod.quiet": Warn}, nil)

	assert.True(t, f.Enabled("mod.quiet", Error))
	assert.True(t, f.Enabled("mod.quiet", Warn))
	assert.False(t, f.Enabled("mod.quiet", Info))
	assert.True(t, f.Enabled("other", Debug))
}

func TestFilter_ModuleMorePermissive(t *testing.T) {
	modules := map[string]Level{"mod.x": Debug}

	tests := []struct {
		name     string
		env      map[string]string
		force    bool
		expected bool
	}{
		{"force env 0 lets module through", map[string]string{DefaultForceEnv: "0"}, true, true},
		{"force env 1 caps module", map[string]string{DefaultForceEnv: "1"}, false, false},
		{"force env empty caps module", map[string]string{DefaultForceEnv: ""}, false, false},
		// Under the defaults a more permissive module override is capped by
		// the global level. The usage example with a global of info and a
		// debug module expecting debug output only holds with ForceGlobal=false
		// or LOG_LEVEL_FORCE=0.
		{"unset uses ForceGlobal=true", nil, true, false},
		{"unset uses ForceGlobal=false", nil, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultFilterConfig()
			cfg.Global = Info
			cfg.Modules = modules
			cfg.ForceGlobal = tt.force
			cfg.LookupEnv = envMap(tt.env)
			f := NewFilter(cfg)

			assert.Equal(t, tt.expected, f.Enabled("mod.x", Debug))
			// Modules never go beyond their own override.
			assert.False(t, f.Enabled("mod.x", Trace))
			// Events the global level accepts are unaffected by the flag.
			assert.True(t, f.Enabled("mod.x", Info))
		})
	}
}

func TestFilter_ModuleMapIsCopied(t *testing.T) {
	modules := map[string]Level{"mod.x": Warn}
	f := newTestFilter(Info, modules, nil)
	modules["mod.x"] = Trace

	assert.False(t, f.Enabled("mod.x", Info))
}

func TestFilter_MayEnable(t *testing.T) {
	f := newTestFilter(Warn, map[string]Level{"mod.x": Debug}, map[string]string{DefaultForceEnv: "0"})

	assert.True(t, f.MayEnable(Error))
	assert.True(t, f.MayEnable(Debug))
	assert.False(t, f.MayEnable(Trace))
	assert.True(t, f.HasModules())

	forced := newTestFilter(Warn, map[string]Level{"mod.x": Debug}, nil)
	assert.False(t, forced.MayEnable(Debug))
}

func TestFilter_CustomVariableNames(t *testing.T) {
	cfg := DefaultFilterConfig()
	cfg.LevelEnv = "APP_LEVEL"
	cfg.ForceEnv = "APP_FORCE"
	cfg.Modules = map[string]Level{"mod.x": Trace}
	cfg.LookupEnv = envMap(map[string]string{
		"APP_LEVEL":     "error",
		"APP_FORCE":     "0",
		DefaultLevelEnv: "trace",
	})
	f := NewFilter(cfg)

	assert.Equal(t, Error, f.Effective())
	assert.True(t, f.Enabled("mod.x", Trace))
	assert.False(t, f.Enabled("other", Warn))
}
