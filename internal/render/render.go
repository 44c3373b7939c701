// Package render formats log entries as aligned console lines, plain or
// colorized with lipgloss, and routes them to the standard streams.
package render

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/tungetti/daylog/internal/level"
	"github.com/tungetti/daylog/internal/record"
	"github.com/tungetti/daylog/internal/strutil"
)

// TimestampLayout is the console timestamp layout. Timestamps are UTC.
const TimestampLayout = "2006-01-02 15:04:05"

const (
	categoryWidth = 10
	// categoryColumn is the width of the category segment, including the
	// "· " prefix and trailing space.
	categoryColumn = categoryWidth + 3
)

// Options configures a Renderer.
type Options struct {
	// Color selects the colorized layout.
	Color bool
	// Palette overrides the default colors.
	Palette *Palette
}

// Renderer formats entries. It is immutable and safe for concurrent use.
type Renderer struct {
	color  bool
	levels map[level.Level]levelStyles
	stamp  lipgloss.Style
	muted  lipgloss.Style
}

// New creates a renderer.
func New(opts Options) *Renderer {
	palette := DefaultPalette()
	if opts.Palette != nil {
		palette = *opts.Palette
	}

	// Styles are bound to a fixed profile; the color decision was already
	// made from the real streams.
	lr := lipgloss.NewRenderer(io.Discard)
	lr.SetColorProfile(termenv.ANSI256)

	r := &Renderer{
		color:  opts.Color,
		levels: make(map[level.Level]levelStyles, len(palette.Levels)),
		stamp:  lr.NewStyle().Background(palette.Muted),
		muted:  lr.NewStyle().Foreground(palette.Muted),
	}
	for l, s := range palette.Levels {
		r.levels[l] = newLevelStyles(lr, s)
	}
	return r
}

// Color reports whether the renderer produces colorized lines.
func (r *Renderer) Color() bool {
	return r.color
}

// Render formats e as one console line, with an error on the following
// line. It returns "" for Off or an unknown level.
func (r *Renderer) Render(e record.Entry) string {
	if e.Level == level.Off || !e.Level.IsValid() {
		return ""
	}
	if r.color {
		if styles, ok := r.levels[e.Level]; ok {
			return r.colorized(e, styles)
		}
	}
	return r.plain(e)
}

func (r *Renderer) plain(e record.Entry) string {
	var b strings.Builder
	b.WriteString(e.Level.Label())
	b.WriteString(" ")
	b.WriteString(category(e.Category))
	b.WriteString("· ")
	b.WriteString(timestamp(e))
	b.WriteString(" ")
	if msg := record.Deref(e.Message); msg != "" {
		b.WriteString("· ")
		b.WriteString(msg)
	}
	if e.Elapsed != nil {
		b.WriteString(" ")
		b.WriteString(elapsed(*e.Elapsed))
	}
	writeError(&b, e.Error)
	return b.String()
}

func (r *Renderer) colorized(e record.Entry, s levelStyles) string {
	var b strings.Builder
	b.WriteString(s.bg.Render(" | " + e.Level.Label() + " "))
	b.WriteString(s.bg.Render(category(e.Category)))
	b.WriteString(r.stamp.Render(" " + timestamp(e) + " "))
	b.WriteString(s.bg.Render(" "))
	if msg := record.Deref(e.Message); msg != "" {
		b.WriteString(" ")
		b.WriteString(s.fg.Render(msg))
	}
	if e.Elapsed != nil {
		b.WriteString(" ")
		b.WriteString(r.muted.Render(elapsed(*e.Elapsed)))
	}
	writeError(&b, e.Error)
	return b.String()
}

func category(cat *string) string {
	if cat == nil || *cat == "" {
		return strings.Repeat(" ", categoryColumn)
	}
	return "· " + strutil.PadLen(*cat, categoryWidth) + " "
}

func timestamp(e record.Entry) string {
	return e.Time().Format(TimestampLayout)
}

func elapsed(ms float64) string {
	return strconv.FormatFloat(ms, 'f', -1, 64) + " ms"
}

func writeError(b *strings.Builder, err *string) {
	if err != nil && *err != "" {
		b.WriteString("\n")
		b.WriteString(*err)
	}
}
