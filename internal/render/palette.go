package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tungetti/daylog/internal/level"
)

// Standard ANSI colors used by the console palette.
var (
	ColorRed         = lipgloss.Color("1")
	ColorYellow      = lipgloss.Color("3")
	ColorBlue        = lipgloss.Color("4")
	ColorMagenta     = lipgloss.Color("5")
	ColorWhite       = lipgloss.Color("7")
	ColorBrightBlack = lipgloss.Color("8")
)

// Swatch is the background and foreground pair of one level.
type Swatch struct {
	Background lipgloss.TerminalColor
	Foreground lipgloss.TerminalColor
}

// Palette assigns colors to each event level.
type Palette struct {
	Levels map[level.Level]Swatch
	// Muted colors the timestamp background and the elapsed text.
	Muted lipgloss.TerminalColor
}

// DefaultPalette returns the standard level colors. Info messages keep the
// terminal's default foreground.
func DefaultPalette() Palette {
	return Palette{
		Levels: map[level.Level]Swatch{
			level.Error: {Background: ColorRed, Foreground: ColorRed},
			level.Warn:  {Background: ColorYellow, Foreground: ColorYellow},
			level.Info:  {Background: ColorBlue, Foreground: lipgloss.NoColor{}},
			level.Debug: {Background: ColorMagenta, Foreground: ColorMagenta},
			level.Trace: {Background: ColorWhite, Foreground: ColorWhite},
		},
		Muted: ColorBrightBlack,
	}
}

// levelStyles are the lipgloss styles derived from a swatch.
type levelStyles struct {
	bg lipgloss.Style
	fg lipgloss.Style
}

func newLevelStyles(r *lipgloss.Renderer, s Swatch) levelStyles {
	return levelStyles{
		bg: r.NewStyle().Background(s.Background),
		fg: r.NewStyle().Foreground(s.Foreground),
	}
}
