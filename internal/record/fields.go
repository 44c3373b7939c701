package record

import (
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// Kind identifies which typed field an attribute feeds.
type Kind int

const (
	// KindNone marks an attribute that is not extracted.
	KindNone Kind = iota
	// KindCategory is the short uppercased label.
	KindCategory
	// KindMessage overrides the record message.
	KindMessage
	// KindElapsed carries elapsed milliseconds.
	KindElapsed
	// KindError carries pre-rendered error text.
	KindError
)

// KindOf maps a recognized attribute key to its field kind. Both the long
// and the short spelling are accepted.
func KindOf(key string) Kind {
	switch key {
	case "category", "cat":
		return KindCategory
	case "message", "msg":
		return KindMessage
	case "ms", "stopwatch":
		return KindElapsed
	case "error", "err":
		return KindError
	default:
		return KindNone
	}
}

// Fields holds the typed values extracted from a record's attributes.
type Fields struct {
	Category *string
	Message  *string
	Elapsed  *float64
	Error    *string
}

// Set extracts a into f if its key is recognized. It reports whether the
// attribute was consumed. Later attributes overwrite earlier ones.
func (f *Fields) Set(a slog.Attr) bool {
	kind := KindOf(a.Key)
	if kind == KindNone {
		return false
	}
	v := a.Value.Resolve()

	switch kind {
	case KindCategory:
		f.Category = String(strings.ToUpper(v.String()))
	case KindMessage:
		f.Message = String(v.String())
	case KindError:
		f.Error = String(errorText(v))
	case KindElapsed:
		ms, ok := millis(v)
		if !ok {
			return false
		}
		f.Elapsed = Float(ms)
	}
	return true
}

// Merge copies every field set in other over f.
func (f *Fields) Merge(other Fields) {
	if other.Category != nil {
		f.Category = other.Category
	}
	if other.Message != nil {
		f.Message = other.Message
	}
	if other.Elapsed != nil {
		f.Elapsed = other.Elapsed
	}
	if other.Error != nil {
		f.Error = other.Error
	}
}

func errorText(v slog.Value) string {
	if v.Kind() == slog.KindAny {
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
	}
	return v.String()
}

// millis interprets v as elapsed milliseconds. Durations are converted;
// plain numbers and numeric strings (optionally suffixed "ms") are taken
// as milliseconds already.
func millis(v slog.Value) (float64, bool) {
	switch v.Kind() {
	case slog.KindFloat64:
		return v.Float64(), true
	case slog.KindInt64:
		return float64(v.Int64()), true
	case slog.KindUint64:
		return float64(v.Uint64()), true
	case slog.KindDuration:
		return float64(v.Duration()) / float64(time.Millisecond), true
	case slog.KindString:
		s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v.String()), "ms"))
		ms, err := strconv.ParseFloat(s, 64)
		return ms, err == nil
	default:
		return 0, false
	}
}
