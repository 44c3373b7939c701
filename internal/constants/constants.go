// Package constants defines application-wide constants for daylog.
package constants

// Application metadata
const (
	// AppName is the application name used in logs, configs, and user messages.
	AppName string = "daylog"
	// AppDescription is a short description of the application.
	AppDescription string = "Structured console and day-file logger"
)

// ExitCode represents process exit codes for different termination scenarios.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = iota
	// ExitError indicates a general error occurred.
	ExitError
	// ExitValidation indicates invalid arguments or configuration.
	ExitValidation
	// ExitNotFound indicates the requested day file does not exist.
	ExitNotFound
	// ExitSink indicates the file sink failed to persist entries.
	ExitSink
)

// Int returns the exit code as an int for use with os.Exit().
func (e ExitCode) Int() int {
	return int(e)
}

// Day file naming
const (
	// DayFileSuffix separates the day bucket from the extension.
	DayFileSuffix string = "-log"
	// ConfigFileName is the configuration file name.
	ConfigFileName string = "config.yaml"
)
