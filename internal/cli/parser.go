package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/tungetti/daylog/internal/constants"
)

// ParseResult holds the result of parsing command line arguments.
type ParseResult struct {
	// Command is the parsed command.
	Command Command

	// GlobalFlags contains the global flag values.
	GlobalFlags GlobalFlags

	// PipeFlags contains pipe command flag values.
	PipeFlags PipeFlags

	// Day is the YYYYMMDD argument of cat and view, or "" for today.
	Day string

	// Args contains any remaining positional arguments.
	Args []string

	// ShowHelp indicates that help should be displayed.
	ShowHelp bool

	// HelpCommand is the command to show help for (when using "help <command>").
	HelpCommand string
}

// Parser handles command line argument parsing.
type Parser struct {
	programName string
	version     string
	buildTime   string
	gitCommit   string
}

// NewParser creates a new CLI parser with build information.
func NewParser(programName, version, buildTime, gitCommit string) *Parser {
	return &Parser{
		programName: programName,
		version:     version,
		buildTime:   buildTime,
		gitCommit:   gitCommit,
	}
}

// Parse parses command line arguments and returns a ParseResult.
// The args parameter should not include the program name (typically os.Args[1:]).
func (p *Parser) Parse(args []string) (*ParseResult, error) {
	result := &ParseResult{}

	if len(args) == 0 {
		result.ShowHelp = true
		return result, nil
	}

	for _, arg := range args {
		if arg == "-h" || arg == "--help" || arg == "-help" {
			result.ShowHelp = true
			return result, nil
		}
	}

	// The flag package stops at the first non-flag argument, the command.
	globalFs := p.createGlobalFlagSet(&result.GlobalFlags)
	globalFs.SetOutput(io.Discard)

	if err := globalFs.Parse(args); err != nil {
		return nil, fmt.Errorf("invalid global flags: %w", err)
	}

	remaining := globalFs.Args()
	if len(remaining) == 0 {
		result.ShowHelp = true
		return result, nil
	}

	if err := result.GlobalFlags.Validate(); err != nil {
		return nil, err
	}

	cmdStr := remaining[0]
	result.Command = ParseCommand(cmdStr)
	if result.Command == CommandNone {
		return nil, fmt.Errorf("unknown command: %s", cmdStr)
	}

	if err := p.parseCommandFlags(result, remaining[1:]); err != nil {
		return nil, err
	}

	return result, nil
}

// createGlobalFlagSet creates a FlagSet with global flag definitions.
func (p *Parser) createGlobalFlagSet(flags *GlobalFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("global", flag.ContinueOnError)

	fs.StringVar(&flags.ConfigFile, "config", "", "Path to config file")
	fs.StringVar(&flags.ConfigFile, "c", "", "Path to config file (shorthand)")

	fs.StringVar(&flags.Dir, "dir", "", "Day-file directory")
	fs.StringVar(&flags.Dir, "d", "", "Day-file directory (shorthand)")

	fs.StringVar(&flags.Level, "level", "", "Global level (off, error, warn, info, debug, trace)")
	fs.StringVar(&flags.Level, "l", "", "Global level (shorthand)")

	fs.StringVar(&flags.Format, "format", "", "Day-file format (json, csv)")

	fs.BoolVar(&flags.NoColor, "no-color", false, "Disable colored output")

	return fs
}

// parseCommandFlags parses flags specific to each command.
func (p *Parser) parseCommandFlags(result *ParseResult, args []string) error {
	switch result.Command {
	case CommandPipe:
		return p.parsePipeFlags(result, args)
	case CommandCat, CommandView:
		return p.parseDayArgs(result, args)
	case CommandHelp:
		return p.parseHelpFlags(result, args)
	case CommandVersion:
		result.Args = args
		return nil
	}
	return nil
}

func (p *Parser) parsePipeFlags(result *ParseResult, args []string) error {
	fs := flag.NewFlagSet("pipe", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&result.PipeFlags.Level, "level", "info", "Event level of every line")
	fs.StringVar(&result.PipeFlags.Category, "category", "", "Category of every line")
	fs.StringVar(&result.PipeFlags.Category, "cat", "", "Category of every line (shorthand)")
	fs.BoolVar(&result.PipeFlags.NoFile, "no-file", false, "Do not write day files")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid pipe flags: %w", err)
	}
	if err := result.PipeFlags.Validate(); err != nil {
		return err
	}
	result.Args = fs.Args()
	return nil
}

func (p *Parser) parseDayArgs(result *ParseResult, args []string) error {
	fs := flag.NewFlagSet(result.Command.String(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid %s flags: %w", result.Command, err)
	}

	rest := fs.Args()
	switch len(rest) {
	case 0:
	case 1:
		if err := ValidateDay(rest[0]); err != nil {
			return err
		}
		result.Day = rest[0]
	default:
		return fmt.Errorf("%s takes at most one day argument", result.Command)
	}
	return nil
}

func (p *Parser) parseHelpFlags(result *ParseResult, args []string) error {
	result.ShowHelp = true
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		result.HelpCommand = args[0]
	}
	return nil
}

// Usage returns the main usage string.
func (p *Parser) Usage() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s - %s\n\n", p.programName, constants.AppDescription))
	b.WriteString("Usage:\n")
	b.WriteString(fmt.Sprintf("  %s [global flags] <command> [command flags]\n\n", p.programName))

	b.WriteString("Commands:\n")
	for _, cmd := range Commands() {
		b.WriteString(fmt.Sprintf("  %-12s %s\n", cmd.Name, cmd.Description))
	}

	b.WriteString("\nGlobal Flags:\n")
	b.WriteString("  -c, --config      Path to config file\n")
	b.WriteString("  -d, --dir         Day-file directory\n")
	b.WriteString("  -l, --level       Global level (off, error, warn, info, debug, trace)\n")
	b.WriteString("      --format      Day-file format (json, csv)\n")
	b.WriteString("      --no-color    Disable colored output\n")

	b.WriteString(fmt.Sprintf("\nUse \"%s help <command>\" for more information about a command.\n", p.programName))

	return b.String()
}

// CommandUsage returns the usage string for a specific command.
func (p *Parser) CommandUsage(cmd string) string {
	parsedCmd := ParseCommand(cmd)
	if parsedCmd == CommandNone {
		return fmt.Sprintf("Unknown command: %s\n\nRun '%s help' for usage.\n", cmd, p.programName)
	}

	info := GetCommandInfo(parsedCmd)
	if info == nil {
		return fmt.Sprintf("No help available for: %s\n", cmd)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s\n\n", info.Description))
	b.WriteString(fmt.Sprintf("Usage:\n  %s\n\n", info.Usage))

	if info.LongDescription != "" {
		b.WriteString(info.LongDescription)
		b.WriteString("\n")
	}

	return b.String()
}

// VersionString returns formatted version information.
func (p *Parser) VersionString() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s version %s\n", p.programName, p.version))

	if p.buildTime != "" && p.buildTime != "unknown" {
		b.WriteString(fmt.Sprintf("Build time: %s\n", p.buildTime))
	}

	if p.gitCommit != "" && p.gitCommit != "unknown" {
		commit := p.gitCommit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		b.WriteString(fmt.Sprintf("Git commit: %s\n", commit))
	}

	return b.String()
}
