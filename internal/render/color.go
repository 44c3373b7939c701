package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// ColorMode selects whether console lines are colorized.
type ColorMode string

const (
	// ColorAuto colorizes when both standard streams support 256 colors.
	ColorAuto ColorMode = "auto"
	// ColorAlways forces colorized output.
	ColorAlways ColorMode = "always"
	// ColorNever forces plain output.
	ColorNever ColorMode = "never"
)

// ParseColorMode parses a color mode name, case-insensitively.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	case "":
		return ColorAuto, nil
	default:
		return ColorAuto, fmt.Errorf("unknown color mode %q", s)
	}
}

// Supports256 reports whether w supports at least a 256-color palette,
// honoring NO_COLOR and CLICOLOR_FORCE.
func Supports256(w io.Writer) bool {
	return termenv.NewOutput(w).EnvColorProfile() <= termenv.ANSI256
}

// DetectColor reports whether both standard output and standard error
// support a 256-color palette.
func DetectColor() bool {
	return Supports256(os.Stdout) && Supports256(os.Stderr)
}

// Resolve turns a mode into a color decision, detecting on ColorAuto.
func (m ColorMode) Resolve(detect func() bool) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if detect == nil {
			detect = DetectColor
		}
		return detect()
	}
}
