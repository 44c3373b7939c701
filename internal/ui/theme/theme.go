// Package theme holds the colors and lipgloss styles of the day viewer.
package theme

import "github.com/charmbracelet/lipgloss"

// ThemeName identifies a theme variant.
type ThemeName string

const (
	// ThemeDefault adapts to light and dark terminal backgrounds.
	ThemeDefault ThemeName = "default"

	// ThemeHighContrast uses maximum contrast colors.
	ThemeHighContrast ThemeName = "high-contrast"
)

// Viewer colors with adaptive support for light and dark terminals.
var (
	ColorAccent = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	ColorMuted  = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	ColorError  = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}
	ColorBorder = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"}
)

// Theme is the visual theme of the viewer.
type Theme struct {
	Name ThemeName

	Accent lipgloss.TerminalColor
	Muted  lipgloss.TerminalColor
	Error  lipgloss.TerminalColor
	Border lipgloss.TerminalColor

	// Styles contains pre-built styles using the theme colors.
	Styles Styles
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	// Title renders the day in the header.
	Title lipgloss.Style
	// Filter renders the active level filter badge.
	Filter lipgloss.Style
	// Status renders the entry count.
	Status lipgloss.Style
	// Header wraps the whole header line.
	Header lipgloss.Style
	// Empty renders the placeholder shown when no entry matches.
	Empty lipgloss.Style
	// Error renders load failures.
	Error lipgloss.Style
	// Help renders the footer hint lines.
	Help lipgloss.Style
}

// NewStyles builds the styles of t.
func NewStyles(t *Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent),
		Filter: lipgloss.NewStyle().
			Foreground(t.Accent).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Foreground(t.Muted),
		Header: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Border),
		Empty: lipgloss.NewStyle().
			Italic(true).
			Foreground(t.Muted),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Error),
		Help: lipgloss.NewStyle().
			Foreground(t.Muted),
	}
}

// DefaultTheme returns the adaptive default theme.
func DefaultTheme() *Theme {
	t := &Theme{
		Name:   ThemeDefault,
		Accent: ColorAccent,
		Muted:  ColorMuted,
		Error:  ColorError,
		Border: ColorBorder,
	}
	t.Styles = NewStyles(t)
	return t
}

// HighContrastTheme returns a high-contrast accessible theme.
func HighContrastTheme() *Theme {
	t := &Theme{
		Name:   ThemeHighContrast,
		Accent: lipgloss.AdaptiveColor{Light: "#0000FF", Dark: "#00FFFF"},
		Muted:  lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"},
		Error:  lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF0000"},
		Border: lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"},
	}
	t.Styles = NewStyles(t)
	return t
}

// GetTheme returns a theme by name. Returns DefaultTheme if name is not recognized.
func GetTheme(name ThemeName) *Theme {
	switch name {
	case ThemeHighContrast:
		return HighContrastTheme()
	default:
		return DefaultTheme()
	}
}

// AvailableThemes returns a list of all available theme names.
func AvailableThemes() []ThemeName {
	return []ThemeName{ThemeDefault, ThemeHighContrast}
}

// WithAccent returns a copy of the theme with a custom accent color.
func (t *Theme) WithAccent(accent lipgloss.TerminalColor) *Theme {
	c := *t
	c.Accent = accent
	c.Styles = NewStyles(&c)
	return &c
}
