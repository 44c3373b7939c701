package app

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tungetti/daylog/internal/config"
	"github.com/tungetti/daylog/internal/errors"
	"github.com/tungetti/daylog/internal/logging"
	"github.com/tungetti/daylog/internal/record"
	"github.com/tungetti/daylog/internal/render"
	testutil "github.com/tungetti/daylog/internal/testing"
)

type harness struct {
	app    *App
	stdout *testutil.SyncBuffer
	stderr *testutil.SyncBuffer
	diag   *testutil.SyncBuffer
}

func newHarness(noInstall bool) *harness {
	h := &harness{
		stdout: &testutil.SyncBuffer{},
		stderr: &testutil.SyncBuffer{},
		diag:   &testutil.SyncBuffer{},
	}
	h.app = New(Options{
		Version:     "1.2.3",
		Console:     &render.Console{Stdout: h.stdout, Stderr: h.stderr},
		Diagnostics: h.diag,
		DetectColor: func() bool { return false },
		NoInstall:   noInstall,
	})
	return h
}

func fileConfig(t *testing.T) *config.Config {
	cfg := config.DefaultConfig()
	cfg.File.Enabled = true
	cfg.File.Dir = filepath.Join(t.TempDir(), "logs")
	cfg.File.Interval = 10 * time.Millisecond
	return cfg
}

// =============================================================================
// Container Tests
// =============================================================================

func TestNewContainer(t *testing.T) {
	c := NewContainer()
	assert.Nil(t, c.Config)
	assert.Nil(t, c.Logger)
	assert.Nil(t, c.Handler)
	assert.Nil(t, c.Sink)
}

func TestContainer_SetGet(t *testing.T) {
	c := NewContainer()
	cfg := config.DefaultConfig()
	logger := logging.NewNop()

	c.SetConfig(cfg)
	c.SetLogger(logger)

	assert.Same(t, cfg, c.GetConfig())
	assert.Equal(t, logger, c.GetLogger())
	assert.Nil(t, c.GetSink())
	assert.Nil(t, c.GetStore())
}

func TestContainer_Validate(t *testing.T) {
	c := NewContainer()
	testutil.AssertErrorContains(t, c.Validate(), "config not initialized")

	c.SetConfig(config.DefaultConfig())
	testutil.AssertErrorContains(t, c.Validate(), "logger not initialized")

	c.SetLogger(logging.NewNop())
	err := c.Validate()
	testutil.AssertErrorCode(t, err, errors.Configuration)
	testutil.AssertErrorContains(t, err, "dispatcher not initialized")
}

func TestContainer_ConcurrentAccess(t *testing.T) {
	c := NewContainer()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.SetLogger(logging.NewNop())
		}()
		go func() {
			defer wg.Done()
			_ = c.GetLogger()
		}()
	}
	wg.Wait()
}

// =============================================================================
// Lifecycle Tests
// =============================================================================

func TestLifecycle_ShutdownOrder(t *testing.T) {
	l := NewLifecycle(time.Second)
	var order []int

	for i := 1; i <= 3; i++ {
		i := i
		l.OnShutdown(func(ctx context.Context) error {
			order = append(order, i)
			return nil
		})
	}

	require.NoError(t, l.Shutdown())
	assert.Equal(t, []int{3, 2, 1}, order)
}

func TestLifecycle_ShutdownJoinsErrors(t *testing.T) {
	l := NewLifecycle(time.Second)
	first := stderrors.New("first")
	second := stderrors.New("second")

	l.OnShutdown(func(ctx context.Context) error { return first })
	l.OnShutdown(func(ctx context.Context) error { return nil })
	l.OnShutdown(func(ctx context.Context) error { return second })

	err := l.Shutdown()
	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
}

func TestLifecycle_ShutdownIdempotent(t *testing.T) {
	l := NewLifecycle(time.Second)
	var calls atomic.Int32
	l.OnShutdown(func(ctx context.Context) error {
		calls.Add(1)
		return stderrors.New("once")
	})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Error(t, l.Shutdown())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, l.IsShuttingDown())
	testutil.WaitDone(t, l.Done(), time.Second)
}

func TestLifecycle_ShutdownTimeout(t *testing.T) {
	l := NewLifecycle(20 * time.Millisecond)
	assert.Equal(t, 20*time.Millisecond, l.Timeout())

	l.OnShutdown(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	assert.ErrorIs(t, l.Shutdown(), context.DeadlineExceeded)
}

func TestLifecycle_WaitForSignal(t *testing.T) {
	l := NewLifecycle(time.Second)
	done := make(chan bool, 1)
	go func() { done <- l.WaitForSignal(context.Background()) == nil }()

	require.NoError(t, l.Shutdown())
	assert.True(t, testutil.WaitDone(t, done, time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Nil(t, NewLifecycle(time.Second).WaitForSignal(ctx))
}

// =============================================================================
// App Tests
// =============================================================================

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, "unknown", opts.Version)
	assert.Equal(t, "unknown", opts.BuildTime)
	assert.Equal(t, "unknown", opts.GitCommit)
}

func TestApp_Accessors(t *testing.T) {
	a := New(Options{Version: "1.0.0", BuildTime: "2024-01-15", GitCommit: "abc123"})

	assert.Equal(t, "1.0.0", a.Version())
	assert.Equal(t, "2024-01-15", a.BuildTime())
	assert.Equal(t, "abc123", a.GitCommit())
	assert.NotNil(t, a.Container())
	assert.NotNil(t, a.Lifecycle())
	assert.Nil(t, a.SinkDone())
}

func TestApp_Initialize_InvalidConfig(t *testing.T) {
	h := newHarness(true)
	cfg := config.DefaultConfig()
	cfg.Level = "loud"
	cfg.File.Format = "xml"

	err := h.app.Initialize(context.Background(), cfg)
	testutil.AssertErrorCode(t, err, errors.Configuration)
	testutil.AssertErrorContains(t, err, "file.format")
}

func TestApp_Initialize_LevelOff(t *testing.T) {
	tests := []struct {
		name    string
		file    bool
		wantErr bool
	}{
		{"with file logging", true, true},
		{"console only", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(true)
			cfg := fileConfig(t)
			cfg.File.Enabled = tt.file
			cfg.Level = "off"

			err := h.app.Initialize(context.Background(), cfg)
			if !tt.wantErr {
				require.NoError(t, err)
				require.NoError(t, h.app.Shutdown())
				return
			}
			testutil.AssertErrorCode(t, err, errors.Configuration)
			testutil.AssertErrorContains(t, err, "level other than off")
			assert.Nil(t, h.app.Container().GetSink())
			assert.NoDirExists(t, cfg.File.Dir)
		})
	}
}

func TestApp_Initialize_ConsoleOnly(t *testing.T) {
	h := newHarness(true)
	cfg := config.DefaultConfig()
	cfg.Level = "warn"

	require.NoError(t, h.app.Initialize(context.Background(), cfg))
	assert.Nil(t, h.app.Container().GetSink())
	assert.False(t, h.app.Container().GetHandler().FileLogging())

	logger := h.app.Logger()
	logger.Info("dropped")
	logger.Error("conn failed", "cat", "db")

	assert.Empty(t, h.stdout.String())
	assert.Contains(t, h.stderr.String(), "ERROR")
	assert.Contains(t, h.stderr.String(), "DB")
	assert.Contains(t, h.stderr.String(), "conn failed")

	// Start is a no-op without a sink.
	h.app.Start(context.Background())
	assert.Nil(t, h.app.SinkDone())
	require.NoError(t, h.app.Shutdown())
}

func TestApp_Initialize_CreatesDirAndTodayFile(t *testing.T) {
	h := newHarness(true)
	h.app.opts.Now = testutil.NewMockTime(testutil.Day1).Now
	cfg := fileConfig(t)

	require.NoError(t, h.app.Initialize(context.Background(), cfg))

	testutil.AssertDirExists(t, cfg.File.Dir)
	store := h.app.Container().GetStore()
	require.NotNil(t, store)
	testutil.AssertFileExists(t, store.Path(testutil.Day1Bucket))
	assert.Equal(t, testutil.Day1Bucket, h.app.Container().GetSink().Day())
}

func TestApp_Initialize_DirFailure(t *testing.T) {
	h := newHarness(true)
	cfg := config.DefaultConfig()
	cfg.File.Enabled = true
	blocker := testutil.WriteFile(t, t.TempDir(), "file", "x")
	cfg.File.Dir = filepath.Join(blocker, "logs")

	err := h.app.Initialize(context.Background(), cfg)
	testutil.AssertErrorCode(t, err, errors.CreateDir)
}

func TestApp_FileLoggingEndToEnd(t *testing.T) {
	h := newHarness(true)
	cfg := fileConfig(t)
	cfg.File.Format = "csv"
	require.NoError(t, h.app.Initialize(context.Background(), cfg))

	h.app.Start(context.Background())
	h.app.Logger().Warn("disk nearly full", "cat", "fs", "ms", 1.5)

	require.NoError(t, h.app.Shutdown())
	testutil.WaitDone(t, h.app.SinkDone(), time.Second)

	path := h.app.Container().GetStore().Path(h.app.Container().GetSink().Day())
	assert.Equal(t, ".csv", filepath.Ext(path))
	content := testutil.ReadFile(t, path)
	assert.Contains(t, content, "timestamp,level,category,message,error,ms")
	assert.Contains(t, content, "warn,FS,disk nearly full,,1.5")
	assert.Contains(t, h.stdout.String(), "disk nearly full")
}

func TestApp_FailFastSurfacesError(t *testing.T) {
	h := newHarness(true)
	cfg := fileConfig(t)
	cfg.File.FailurePolicy = "fail-fast"
	cfg.DiagnosticsLevel = "error"
	require.NoError(t, h.app.Initialize(context.Background(), cfg))

	// Replacing today's file with a directory fails every save.
	today := h.app.Container().GetStore().Path(h.app.Container().GetSink().Day())
	require.NoError(t, os.Remove(today))
	require.NoError(t, os.Mkdir(today, 0o755))

	h.app.Start(context.Background())
	testutil.WaitDone(t, h.app.SinkDone(), 2*time.Second)

	assert.True(t, errors.GetCode(h.app.SinkErr()).IsIO())
	assert.Contains(t, h.diag.String(), "file sink stopped")
	assert.Error(t, h.app.Shutdown())
}

func TestApp_InstallOnce(t *testing.T) {
	before := slog.Default()

	first := newHarness(false)
	require.NoError(t, first.app.Initialize(context.Background(), config.DefaultConfig()))
	assert.Same(t, first.app.Logger(), slog.Default())

	slog.Info("through the default")
	assert.Contains(t, first.stdout.String(), "through the default")

	second := newHarness(false)
	err := second.app.Initialize(context.Background(), config.DefaultConfig())
	testutil.AssertErrorCode(t, err, errors.AlreadyInstalled)
	assert.ErrorIs(t, err, errors.ErrAlreadyInstalled)

	require.NoError(t, first.app.Shutdown())
	assert.Same(t, before, slog.Default())

	// After shutdown the default may be installed again.
	third := newHarness(false)
	require.NoError(t, third.app.Initialize(context.Background(), config.DefaultConfig()))
	require.NoError(t, third.app.Shutdown())
	assert.Same(t, before, slog.Default())
}

func TestApp_Run_PanicRecovery(t *testing.T) {
	h := newHarness(true)
	require.NoError(t, h.app.Initialize(context.Background(), config.DefaultConfig()))

	err := h.app.Run(context.Background(), func(context.Context) error {
		panic("boom")
	})
	testutil.AssertErrorCode(t, err, errors.Unknown)
	testutil.AssertErrorContains(t, err, "panic: boom")
	assert.Contains(t, h.diag.String(), "panic recovered")
}

func TestApp_HandlePanic_WithoutLogger(t *testing.T) {
	a := New(DefaultOptions())
	_, stderr := testutil.CaptureOutput(t, func() {
		err := a.handlePanic("no logger")
		testutil.AssertErrorContains(t, err, "no logger")
	})
	assert.Contains(t, stderr, "PANIC: no logger")
}

func TestApp_RunWithLifecycle(t *testing.T) {
	h := newHarness(true)
	cfg := fileConfig(t)
	require.NoError(t, h.app.Initialize(context.Background(), cfg))

	err := h.app.RunWithLifecycle(context.Background(), func(ctx context.Context) error {
		h.app.Logger().Info("inside run")
		return nil
	})
	require.NoError(t, err)
	assert.True(t, h.app.Lifecycle().IsShuttingDown())

	entries, err := h.app.Container().GetStore().ReadDay(h.app.Container().GetSink().Day())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "inside run", record.Deref(entries[0].Message))
}

func TestApp_RunWithLifecycle_Error(t *testing.T) {
	h := newHarness(true)
	require.NoError(t, h.app.Initialize(context.Background(), config.DefaultConfig()))

	runErr := stderrors.New("failed")
	err := h.app.RunWithLifecycle(context.Background(), func(context.Context) error {
		return runErr
	})
	assert.ErrorIs(t, err, runErr)
	assert.True(t, h.app.Lifecycle().IsShuttingDown())
}
