// Package ui provides the interactive day-file viewer built on Bubble Tea.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tungetti/daylog/internal/level"
	"github.com/tungetti/daylog/internal/record"
	"github.com/tungetti/daylog/internal/render"
	"github.com/tungetti/daylog/internal/ui/theme"
)

// Model is the Bubble Tea model of the day viewer.
type Model struct {
	// Day is the YYYYMMDD day being shown.
	Day string
	// Threshold hides entries more verbose than it.
	Threshold level.Level

	Width    int
	Height   int
	Ready    bool
	Loaded   bool
	Quitting bool
	Error    error

	entries  []record.Entry
	visible  int
	load     Loader
	renderer *render.Renderer
	theme    *theme.Theme
	keyMap   KeyMap
	help     help.Model
	viewport viewport.Model
}

// New creates a viewer for day. Entries are read through load and formatted
// with r; a nil r renders plain lines.
func New(day string, load Loader, r *render.Renderer) Model {
	if r == nil {
		r = render.New(render.Options{})
	}
	if load == nil {
		load = func(string) ([]record.Entry, error) { return nil, nil }
	}
	return Model{
		Day:       day,
		Threshold: level.Trace,
		load:      load,
		renderer:  r,
		theme:     theme.DefaultTheme(),
		keyMap:    DefaultKeyMap(),
		help:      help.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, LoadEntries(m.Day, m.load))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
		if !m.Ready {
			m.viewport = viewport.New(msg.Width, 0)
			m.Ready = true
		}
		m.resize()
		m.refresh()
		return m, nil

	case EntriesLoadedMsg:
		m.Day = msg.Day
		m.entries = msg.Entries
		m.Loaded = true
		m.Error = nil
		m.refresh()
		return m, nil

	case ErrorMsg:
		m.Error = msg.Err
		return m, nil

	case QuitMsg:
		m.Quitting = true
		return m, tea.Quit

	case tea.MouseMsg:
		if m.Ready {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	if !m.Ready {
		return "Loading..."
	}
	if m.Error != nil {
		return m.renderError()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.header(), m.viewport.View(), m.footer())
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, Quit()
	case key.Matches(msg, m.keyMap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	case key.Matches(msg, m.keyMap.Reload):
		return m, LoadEntries(m.Day, m.load)
	}

	for _, lb := range m.keyMap.LevelBindings() {
		if key.Matches(msg, lb.Binding) {
			m.SetThreshold(lb.Threshold)
			return m, nil
		}
	}

	if !m.Ready {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keyMap.Up):
		m.viewport.LineUp(1)
	case key.Matches(msg, m.keyMap.Down):
		m.viewport.LineDown(1)
	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.ViewUp()
	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.ViewDown()
	case key.Matches(msg, m.keyMap.Home):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keyMap.End):
		m.viewport.GotoBottom()
	}
	return m, nil
}

// SetThreshold changes the level filter and re-renders the entries.
func (m *Model) SetThreshold(l level.Level) {
	if l == level.Off || !l.IsValid() {
		return
	}
	m.Threshold = l
	m.refresh()
	if m.Ready {
		m.viewport.GotoTop()
	}
}

// Entries returns every loaded entry, filtered or not.
func (m Model) Entries() []record.Entry {
	return m.entries
}

// Visible returns the number of entries passing the level filter.
func (m Model) Visible() int {
	return m.visible
}

// KeyMap returns the current key bindings.
func (m Model) KeyMap() KeyMap {
	return m.keyMap
}

// SetKeyMap sets custom key bindings.
func (m *Model) SetKeyMap(km KeyMap) {
	m.keyMap = km
}

// SetTheme sets the viewer theme.
func (m *Model) SetTheme(t *theme.Theme) {
	if t != nil {
		m.theme = t
	}
}

// Content returns the rendered, filtered entries.
func (m Model) Content() string {
	lines := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		if e.Level > m.Threshold {
			continue
		}
		if line := m.renderer.Render(e); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// refresh re-filters the entries into the viewport.
func (m *Model) refresh() {
	m.visible = 0
	for _, e := range m.entries {
		if e.Level <= m.Threshold && e.Level != level.Off {
			m.visible++
		}
	}
	if !m.Ready {
		return
	}

	content := m.Content()
	switch {
	case !m.Loaded:
		content = m.theme.Styles.Empty.Render("Reading " + m.Day + "...")
	case m.visible == 0:
		content = m.theme.Styles.Empty.Render("No entries at this level")
	}
	m.viewport.SetContent(content)
}

// resize fits the viewport between the header and the footer.
func (m *Model) resize() {
	if !m.Ready {
		return
	}
	height := m.Height - lipgloss.Height(m.header()) - lipgloss.Height(m.footer())
	if height < 1 {
		height = 1
	}
	m.viewport.Width = m.Width
	m.viewport.Height = height
}

func (m Model) header() string {
	s := m.theme.Styles
	title := s.Title.Render("daylog " + m.Day)
	filter := s.Filter.Render(filterLabel(m.Threshold))
	status := s.Status.Render(fmt.Sprintf("%d/%d entries", m.visible, len(m.entries)))
	return s.Header.Render(lipgloss.JoinHorizontal(lipgloss.Top, title, " ", filter, " ", status))
}

func (m Model) footer() string {
	return m.theme.Styles.Help.Render(m.help.View(m.keyMap))
}

func (m Model) renderError() string {
	s := m.theme.Styles
	content := s.Error.Render("Error: "+m.Error.Error()) + "\n\n" +
		s.Help.Render("Press 'r' to retry, 'q' to quit")

	return lipgloss.NewStyle().
		Width(m.Width).
		Height(m.Height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// filterLabel names the levels a threshold shows.
func filterLabel(l level.Level) string {
	if l == level.Trace {
		return "[all]"
	}
	return "[" + l.String() + "+]"
}
