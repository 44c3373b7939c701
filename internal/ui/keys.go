package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/tungetti/daylog/internal/level"
)

// KeyMap defines the key bindings of the day viewer.
type KeyMap struct {
	Quit     key.Binding
	Help     key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Reload   key.Binding

	// Level filters show the bound level and everything more severe.
	Errors   key.Binding
	Warnings key.Binding
	Info     key.Binding
	Debug    key.Binding
	All      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", " ", "f"),
			key.WithHelp("pgdn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home", "go to start"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end", "go to end"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Errors: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "errors"),
		),
		Warnings: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "warnings"),
		),
		Info: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "info"),
		),
		Debug: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "debug"),
		),
		All: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "all"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
// This implements the help.KeyMap interface.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Errors, k.Warnings, k.Info, k.All, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
// This implements the help.KeyMap interface.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Home, k.End, k.Reload},
		{k.Errors, k.Warnings, k.Info, k.Debug, k.All},
		{k.Help, k.Quit},
	}
}

// LevelBindings pairs each level filter key with its threshold.
func (k KeyMap) LevelBindings() []LevelBinding {
	return []LevelBinding{
		{Binding: k.Errors, Threshold: level.Error},
		{Binding: k.Warnings, Threshold: level.Warn},
		{Binding: k.Info, Threshold: level.Info},
		{Binding: k.Debug, Threshold: level.Debug},
		{Binding: k.All, Threshold: level.Trace},
	}
}

// LevelBinding is a key that sets the viewer's level threshold.
type LevelBinding struct {
	Binding   key.Binding
	Threshold level.Level
}
