package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tungetti/daylog/internal/app"
	"github.com/tungetti/daylog/internal/cli"
	"github.com/tungetti/daylog/internal/config"
	"github.com/tungetti/daylog/internal/constants"
	"github.com/tungetti/daylog/internal/dispatch"
	"github.com/tungetti/daylog/internal/errors"
	"github.com/tungetti/daylog/internal/level"
	"github.com/tungetti/daylog/internal/record"
	"github.com/tungetti/daylog/internal/render"
	"github.com/tungetti/daylog/internal/sink"
	"github.com/tungetti/daylog/internal/ui"
)

// pipeModule is the module lines read by the pipe command are logged under.
const pipeModule = "daylog/pipe"

// CLI encapsulates the command-line interface for daylog.
type CLI struct {
	parser *cli.Parser
	config *config.Config

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	detectColor func() bool
	now         func() time.Time
}

// NewCLI creates a new CLI instance bound to the process streams.
func NewCLI() *CLI {
	return &CLI{
		parser:      cli.NewParser(constants.AppName, Version, BuildTime, GitCommit),
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		detectColor: render.DetectColor,
		now:         time.Now,
	}
}

// Run parses arguments and executes the appropriate command.
// It returns an exit code suitable for os.Exit().
func (c *CLI) Run(args []string) int {
	result, err := c.parser.Parse(args)
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		fmt.Fprintf(c.stderr, "Run '%s help' for usage.\n", constants.AppName)
		return constants.ExitValidation.Int()
	}

	if result.ShowHelp {
		return c.showHelp(result)
	}

	if err := c.loadConfig(result); err != nil {
		fmt.Fprintf(c.stderr, "Error loading config: %v\n", err)
		return exitCodeFor(err)
	}

	return c.executeCommand(result)
}

// loadConfig loads configuration from file and environment, then applies
// the global flags over it.
func (c *CLI) loadConfig(result *cli.ParseResult) error {
	configPath := result.GlobalFlags.ConfigFile
	if configPath == "" {
		configPath = config.DefaultConfig().ConfigPath()
	}

	cfg, err := config.NewLoader(configPath).Load()
	if err != nil {
		return err
	}
	result.GlobalFlags.Apply(cfg)

	if err := config.NewValidator().ValidateOrError(cfg); err != nil {
		return err
	}

	c.config = cfg
	return nil
}

// showHelp displays help information and returns an exit code.
func (c *CLI) showHelp(result *cli.ParseResult) int {
	if result.HelpCommand != "" {
		fmt.Fprint(c.stdout, c.parser.CommandUsage(result.HelpCommand))
	} else {
		fmt.Fprint(c.stdout, c.parser.Usage())
	}
	return constants.ExitSuccess.Int()
}

// executeCommand runs the appropriate command handler.
func (c *CLI) executeCommand(result *cli.ParseResult) int {
	switch result.Command {
	case cli.CommandVersion:
		return c.cmdVersion()
	case cli.CommandPipe:
		return c.cmdPipe(result)
	case cli.CommandCat:
		return c.cmdCat(result)
	case cli.CommandView:
		return c.cmdView(result)
	default:
		fmt.Fprint(c.stdout, c.parser.Usage())
		return constants.ExitSuccess.Int()
	}
}

// cmdVersion displays version information.
func (c *CLI) cmdVersion() int {
	fmt.Fprint(c.stdout, c.parser.VersionString())
	return constants.ExitSuccess.Int()
}

// cmdPipe logs every line of stdin through the full pipeline until stdin
// closes or a signal arrives.
func (c *CLI) cmdPipe(result *cli.ParseResult) int {
	cfg := c.config.Clone()
	cfg.File.Enabled = !result.PipeFlags.NoFile
	lvl, _ := level.ParseEvent(result.PipeFlags.Level)

	application := app.New(app.Options{
		Version:     Version,
		BuildTime:   BuildTime,
		GitCommit:   GitCommit,
		Console:     &render.Console{Stdout: c.stdout, Stderr: c.stderr},
		Diagnostics: c.stderr,
		DetectColor: c.detectColor,
	})

	ctx := context.Background()
	if err := application.Initialize(ctx, cfg); err != nil {
		fmt.Fprintf(c.stderr, "Failed to initialize: %v\n", err)
		return exitCodeFor(err)
	}

	logger := application.Logger().With(dispatch.ModuleKey, pipeModule)
	if result.PipeFlags.Category != "" {
		logger = logger.With("cat", result.PipeFlags.Category)
	}

	err := application.RunWithLifecycle(ctx, func(ctx context.Context) error {
		lines := make(chan string)
		scanErr := make(chan error, 1)
		go func() {
			defer close(lines)
			scanner := bufio.NewScanner(c.stdin)
			for scanner.Scan() {
				select {
				case lines <- scanner.Text():
				case <-ctx.Done():
					return
				}
			}
			scanErr <- scanner.Err()
		}()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-application.SinkDone():
				return application.SinkErr()
			case line, ok := <-lines:
				if !ok {
					select {
					case err := <-scanErr:
						return err
					default:
						return nil
					}
				}
				logger.Log(ctx, lvl.Slog(), line)
			}
		}
	})
	if err == nil {
		err = application.SinkErr()
	}
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return exitCodeFor(err)
	}
	return constants.ExitSuccess.Int()
}

// cmdCat prints one day file to stdout.
func (c *CLI) cmdCat(result *cli.ParseResult) int {
	store, err := c.openStore()
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return exitCodeFor(err)
	}

	entries, err := store.ReadDay(c.day(result))
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return exitCodeFor(err)
	}

	r := c.renderer()
	for _, e := range entries {
		if line := r.Render(e); line != "" {
			fmt.Fprintln(c.stdout, line)
		}
	}
	return constants.ExitSuccess.Int()
}

// cmdView opens one day file in the interactive viewer.
func (c *CLI) cmdView(result *cli.ParseResult) int {
	store, err := c.openStore()
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return exitCodeFor(err)
	}

	model := ui.New(c.day(result), store.ReadDay, c.renderer())
	program := tea.NewProgram(model,
		tea.WithInput(c.stdin),
		tea.WithOutput(c.stdout),
		tea.WithMouseCellMotion(),
	)
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return constants.ExitError.Int()
	}
	return constants.ExitSuccess.Int()
}

// openStore returns the store of the configured directory and format. The
// directory is not created.
func (c *CLI) openStore() (*sink.FileStore, error) {
	dir, err := sink.ResolveDir(c.config.File.Dir)
	if err != nil {
		return nil, err
	}
	format, err := sink.ParseFormat(c.config.File.Format)
	if err != nil {
		return nil, err
	}
	codec, err := sink.CodecFor(format)
	if err != nil {
		return nil, err
	}
	return sink.NewFileStore(dir, codec), nil
}

// renderer resolves the configured color mode against stdout.
func (c *CLI) renderer() *render.Renderer {
	mode, err := render.ParseColorMode(c.config.Color)
	if err != nil {
		mode = render.ColorAuto
	}
	return render.New(render.Options{Color: mode.Resolve(c.detectColor)})
}

// day returns the requested day, or today in UTC.
func (c *CLI) day(result *cli.ParseResult) string {
	if result.Day != "" {
		return result.Day
	}
	return record.DayOf(c.now())
}

// exitCodeFor maps an error to the process exit code.
func exitCodeFor(err error) int {
	code := errors.GetCode(err)
	switch {
	case code == errors.NotFound:
		return constants.ExitNotFound.Int()
	case code == errors.Configuration || code == errors.Validation:
		return constants.ExitValidation.Int()
	case code.IsIO():
		return constants.ExitSink.Int()
	default:
		return constants.ExitError.Int()
	}
}
