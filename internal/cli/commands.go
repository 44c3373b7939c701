package cli

// Command represents a CLI command type.
type Command int

const (
	// CommandNone represents no command or an unrecognized command.
	CommandNone Command = iota

	// CommandPipe reads standard input and logs every line.
	CommandPipe

	// CommandCat prints a day file through the console renderer.
	CommandCat

	// CommandView browses a day file in an interactive viewer.
	CommandView

	// CommandVersion represents the version command for displaying build information.
	CommandVersion

	// CommandHelp represents the help command for showing usage information.
	CommandHelp
)

// String returns the command name as a string.
func (c Command) String() string {
	switch c {
	case CommandPipe:
		return "pipe"
	case CommandCat:
		return "cat"
	case CommandView:
		return "view"
	case CommandVersion:
		return "version"
	case CommandHelp:
		return "help"
	default:
		return ""
	}
}

// IsValid returns true if the command is a recognized command.
func (c Command) IsValid() bool {
	return c > CommandNone && c <= CommandHelp
}

// CommandInfo holds metadata about a command.
type CommandInfo struct {
	// Name is the primary command name.
	Name string

	// Aliases are alternative names for the command.
	Aliases []string

	// Description is a brief description of what the command does.
	Description string

	// Usage shows how to invoke the command.
	Usage string

	// LongDescription provides detailed help text for the command.
	LongDescription string
}

// Commands returns all available commands with their metadata.
func Commands() []CommandInfo {
	return []CommandInfo{
		{
			Name:        "pipe",
			Aliases:     []string{"p"},
			Description: "Log every line read from standard input",
			Usage:       "daylog pipe [flags]",
			LongDescription: `Read standard input line by line and emit each line as an event.

Lines are rendered to the console and, unless --no-file is given, appended
to today's day file. The day file is flushed when input ends or on SIGINT.

Flags:
  --level LEVEL       Event level for every line (default info)
  --category NAME     Category attached to every line
  --no-file           Do not write day files

Examples:
  make 2>&1 | daylog pipe --category BUILD
  tail -f app.out | daylog --dir /var/log/app pipe --level debug`,
		},
		{
			Name:        "cat",
			Aliases:     []string{"show"},
			Description: "Print a day file",
			Usage:       "daylog cat [YYYYMMDD]",
			LongDescription: `Print the entries of one day file through the console renderer.

The day defaults to today (UTC). The file is looked up in --dir with the
configured --format.

Examples:
  daylog cat
  daylog --format csv cat 20240115`,
		},
		{
			Name:        "view",
			Aliases:     []string{"browse"},
			Description: "Browse a day file interactively",
			Usage:       "daylog view [YYYYMMDD]",
			LongDescription: `Open one day file in a scrollable terminal viewer.

The day defaults to today (UTC). Use the arrow keys or j/k to scroll, e, w,
i and d to show that level and above, a to show everything, and q to quit.

Examples:
  daylog view 20240115`,
		},
		{
			Name:        "version",
			Aliases:     []string{"v"},
			Description: "Show version information",
			Usage:       "daylog version",
			LongDescription: `Display version information about daylog.

Shows the version number, build time, and git commit hash.`,
		},
		{
			Name:        "help",
			Aliases:     []string{"h"},
			Description: "Show help for a command",
			Usage:       "daylog help [command]",
			LongDescription: `Display help information.

When called without arguments, shows general help and available commands.
When called with a command name, shows detailed help for that command.

Examples:
  daylog help
  daylog help pipe`,
		},
	}
}

// GetCommandInfo returns the CommandInfo for a given command.
// Returns nil if the command is not found.
func GetCommandInfo(cmd Command) *CommandInfo {
	if !cmd.IsValid() {
		return nil
	}

	cmds := Commands()
	for i := range cmds {
		if cmds[i].Name == cmd.String() {
			return &cmds[i]
		}
	}
	return nil
}

// ParseCommand parses a string into a Command.
// It recognizes both primary command names and aliases.
func ParseCommand(s string) Command {
	for _, info := range Commands() {
		if s == info.Name {
			return commandFromName(info.Name)
		}
		for _, alias := range info.Aliases {
			if s == alias {
				return commandFromName(info.Name)
			}
		}
	}
	return CommandNone
}

// commandFromName converts a command name string to a Command type.
func commandFromName(name string) Command {
	switch name {
	case "pipe":
		return CommandPipe
	case "cat":
		return CommandCat
	case "view":
		return CommandView
	case "version":
		return CommandVersion
	case "help":
		return CommandHelp
	default:
		return CommandNone
	}
}
