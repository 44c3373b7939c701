package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tungetti/daylog/internal/buffer"
	"github.com/tungetti/daylog/internal/config"
	"github.com/tungetti/daylog/internal/dispatch"
	"github.com/tungetti/daylog/internal/errors"
	"github.com/tungetti/daylog/internal/level"
	"github.com/tungetti/daylog/internal/logging"
	"github.com/tungetti/daylog/internal/render"
	"github.com/tungetti/daylog/internal/sink"
)

// installed guards the process-wide slog default.
var installed atomic.Bool

// App represents the logger runtime with its dependencies and lifecycle.
type App struct {
	container *Container
	lifecycle *Lifecycle
	opts      Options

	logger   *slog.Logger
	previous *slog.Logger

	startOnce sync.Once
	sinkDone  chan struct{}
	sinkErr   error
}

// Options configures the application.
type Options struct {
	Version   string
	BuildTime string
	GitCommit string

	// Console receives rendered lines. Defaults to the standard streams.
	Console *render.Console
	// Diagnostics receives daylog's own log output. Defaults to stderr.
	Diagnostics io.Writer
	// Next receives every record after the dispatcher.
	Next slog.Handler
	// DetectColor reports terminal color support for the auto mode.
	// Defaults to render.DetectColor.
	DetectColor func() bool
	// Now is the sink clock. Defaults to time.Now.
	Now func() time.Time
	// NoInstall leaves the process slog default untouched.
	NoInstall bool
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		Version:   "unknown",
		BuildTime: "unknown",
		GitCommit: "unknown",
	}
}

// New creates a new application with the given options.
func New(opts Options) *App {
	if opts.Console == nil {
		opts.Console = render.StdConsole()
	}
	if opts.Diagnostics == nil {
		opts.Diagnostics = os.Stderr
	}
	if opts.DetectColor == nil {
		opts.DetectColor = render.DetectColor
	}
	return &App{
		container: NewContainer(),
		lifecycle: NewLifecycle(config.DefaultShutdownTimeout),
		opts:      opts,
	}
}

// Initialize validates cfg and builds every component. The order is:
// 1. Validation
// 2. Diagnostics logger
// 3. Filter, renderer, buffer and dispatcher
// 4. File store and sink (directory created, today's file loaded)
// 5. Installation as the slog default
func (a *App) Initialize(ctx context.Context, cfg *config.Config) error {
	if err := config.NewValidator().ValidateOrError(cfg); err != nil {
		return err
	}
	// A global level of off emits nothing, so the sink would never get an entry.
	if cfg.File.Enabled && cfg.FilterConfig().Global == level.Off {
		return errors.New(errors.Configuration, "file logging requires a level other than off").
			WithOp("app.Initialize")
	}
	a.container.SetConfig(cfg)
	a.lifecycle = NewLifecycle(cfg.ShutdownTimeout)

	mode, _ := render.ParseColorMode(cfg.Color)
	color := mode.Resolve(a.opts.DetectColor)

	diagOpts := logging.DefaultOptions()
	diagOpts.Level = cfg.Diagnostics()
	diagOpts.Output = a.opts.Diagnostics
	diagOpts.NoColor = !color
	diag := logging.New(diagOpts)
	a.container.SetLogger(diag)

	buf := buffer.New()
	filter := level.NewFilter(cfg.FilterConfig())
	renderer := render.New(render.Options{Color: color})

	dispatchOpts := dispatch.Options{
		Filter:   filter,
		Renderer: renderer,
		Console:  a.opts.Console,
		Next:     a.opts.Next,
	}
	if cfg.File.Enabled {
		dispatchOpts.Buffer = buf
	}
	handler := dispatch.New(dispatchOpts)
	a.container.SetPipeline(buf, filter, renderer, handler)
	a.logger = slog.New(handler)

	if cfg.File.Enabled {
		if err := a.initSink(cfg, buf, diag); err != nil {
			return err
		}
	}

	if err := a.container.Validate(); err != nil {
		return err
	}

	if !a.opts.NoInstall {
		if err := a.install(); err != nil {
			return err
		}
	}

	diag.Debug("logger initialized",
		"version", a.opts.Version,
		"level", filter.Global().String(),
		"modules", len(cfg.Modules),
		"file", cfg.File.Enabled,
		"color", color,
	)
	return nil
}

func (a *App) initSink(cfg *config.Config, buf *buffer.Buffer, diag logging.Logger) error {
	format, _ := sink.ParseFormat(cfg.File.Format)
	codec, err := sink.CodecFor(format)
	if err != nil {
		return errors.Wrap(errors.Configuration, "failed to select the file codec", err).WithOp("app.Initialize")
	}
	policy, _ := sink.ParseFailurePolicy(cfg.File.FailurePolicy)

	dir, err := sink.ResolveDir(cfg.File.Dir)
	if err != nil {
		return err
	}
	if err := sink.EnsureDir(dir); err != nil {
		return err
	}

	store := sink.NewFileStore(dir, codec)
	s := sink.New(store, buf, sink.Options{
		Interval:   cfg.File.Interval,
		Policy:     policy,
		MaxBackoff: cfg.File.MaxBackoff,
		Logger:     diag.WithPrefix("sink"),
		Now:        a.opts.Now,
	})
	if err := s.Open(); err != nil {
		return err
	}
	a.container.SetSink(store, s)
	return nil
}

// install makes the dispatcher the process slog default. It succeeds once
// per process.
func (a *App) install() error {
	if !installed.CompareAndSwap(false, true) {
		return errors.Wrap(errors.AlreadyInstalled, "a dispatcher is already the slog default", errors.ErrAlreadyInstalled).
			WithOp("app.Initialize")
	}
	a.previous = slog.Default()
	slog.SetDefault(a.logger)

	a.lifecycle.OnShutdown(func(context.Context) error {
		slog.SetDefault(a.previous)
		installed.Store(false)
		return nil
	})
	return nil
}

// Start runs the file sink on its own goroutine until shutdown. It is a
// no-op when file logging is disabled or the app is already started.
func (a *App) Start(ctx context.Context) {
	s := a.container.GetSink()
	if s == nil {
		return
	}

	a.startOnce.Do(func() {
		sinkCtx, cancel := context.WithCancel(ctx)
		a.sinkDone = make(chan struct{})

		go func() {
			defer close(a.sinkDone)
			a.sinkErr = s.Run(sinkCtx)
		}()

		a.lifecycle.OnShutdown(func(ctx context.Context) error {
			cancel()
			select {
			case <-a.sinkDone:
				return a.sinkErr
			case <-ctx.Done():
				return errors.Wrap(errors.WriteFile, "timed out waiting for the final flush", ctx.Err()).
					WithOp("app.Shutdown")
			}
		})
	})
}

// SinkDone returns a channel closed when the sink stops, or nil if it was
// never started. Under the fail-fast policy it may close before shutdown.
func (a *App) SinkDone() <-chan struct{} {
	return a.sinkDone
}

// SinkErr returns the error the sink stopped with. Valid after SinkDone
// is closed.
func (a *App) SinkErr() error {
	return a.sinkErr
}

// Logger returns a slog logger bound to the dispatcher.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Shutdown stops the sink after a final flush and restores the previous
// slog default.
func (a *App) Shutdown() error {
	return a.lifecycle.Shutdown()
}

// Container returns the dependency container.
func (a *App) Container() *Container {
	return a.container
}

// Lifecycle returns the lifecycle manager.
func (a *App) Lifecycle() *Lifecycle {
	return a.lifecycle
}

// Version returns the application version.
func (a *App) Version() string {
	return a.opts.Version
}

// BuildTime returns the application build time.
func (a *App) BuildTime() string {
	return a.opts.BuildTime
}

// GitCommit returns the application git commit.
func (a *App) GitCommit() string {
	return a.opts.GitCommit
}

// handlePanic handles a recovered panic and returns an error.
// It logs the panic with a stack trace if a logger is available.
func (a *App) handlePanic(r interface{}) error {
	stack := debug.Stack()
	logger := a.container.GetLogger()

	if logger != nil {
		logger.Error("panic recovered",
			"panic", fmt.Sprintf("%v", r),
			"stack", string(stack),
		)
	} else {
		fmt.Fprintf(os.Stderr, "PANIC: %v\n%s\n", r, stack)
	}

	return errors.Newf(errors.Unknown, "panic: %v", r)
}

// Run calls fn with panic recovery; a panic becomes an Unknown error.
func (a *App) Run(ctx context.Context, fn func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = a.handlePanic(r)
		}
	}()
	return fn(ctx)
}

// RunWithLifecycle starts the sink, runs fn, and shuts down when fn
// returns or a signal arrives, whichever comes first.
func (a *App) RunWithLifecycle(ctx context.Context, fn func(context.Context) error) error {
	a.Start(ctx)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if sig := a.lifecycle.WaitForSignal(runCtx); sig != nil {
			if logger := a.container.GetLogger(); logger != nil {
				logger.Info("received signal", "signal", sig.String())
			}
			cancel()
		}
	}()

	runErr := a.Run(runCtx, fn)
	cancel()

	shutdownErr := a.Shutdown()
	if runErr != nil {
		return runErr
	}
	return shutdownErr
}
