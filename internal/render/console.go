package render

import (
	"io"
	"os"

	"github.com/tungetti/daylog/internal/level"
)

// Console writes rendered lines, Error level to Stderr and every other
// level to Stdout.
type Console struct {
	Stdout io.Writer
	Stderr io.Writer
}

// StdConsole returns a console bound to the process standard streams.
func StdConsole() *Console {
	return &Console{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Writer returns the stream used for l.
func (c *Console) Writer(l level.Level) io.Writer {
	if l == level.Error {
		return c.Stderr
	}
	return c.Stdout
}

// WriteLine writes line plus a newline in a single call. Empty lines are
// skipped.
func (c *Console) WriteLine(l level.Level, line string) error {
	if line == "" {
		return nil
	}
	w := c.Writer(l)
	if w == nil {
		return nil
	}
	_, err := io.WriteString(w, line+"\n")
	return err
}
