package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tungetti/daylog/internal/record"
)

// Loader reads the entries of one day.
type Loader func(day string) ([]record.Entry, error)

// QuitMsg signals the application should quit.
type QuitMsg struct{}

// ErrorMsg carries an error to be displayed.
type ErrorMsg struct {
	Err error
}

// EntriesLoadedMsg carries the entries read for a day.
type EntriesLoadedMsg struct {
	Day     string
	Entries []record.Entry
}

// LoadEntries returns a command that reads day through load.
func LoadEntries(day string, load Loader) tea.Cmd {
	return func() tea.Msg {
		entries, err := load(day)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return EntriesLoadedMsg{Day: day, Entries: entries}
	}
}

// ReportError returns a command that reports an error.
func ReportError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}

// Quit returns a command that quits the application.
func Quit() tea.Cmd {
	return func() tea.Msg {
		return QuitMsg{}
	}
}
