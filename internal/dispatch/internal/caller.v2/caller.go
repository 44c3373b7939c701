// Package caller logs from a package whose last path element contains a dot.
package caller

import "log/slog"

// Debug logs msg at debug level from this package.
func Debug(l *slog.Logger, msg string) {
	l.Debug(msg)
}
