// Package dispatch provides the slog.Handler that filters events by level
// and module, renders them to the console and hands a copy to the file
// sink's buffer.
package dispatch

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/tungetti/daylog/internal/buffer"
	"github.com/tungetti/daylog/internal/level"
	"github.com/tungetti/daylog/internal/record"
	"github.com/tungetti/daylog/internal/render"
)

// ModuleKey is the attribute key that binds a logger to a module, as in
// logger.With(dispatch.ModuleKey, "example.com/app/db").
const ModuleKey = "module"

// Options configures a Handler.
type Options struct {
	// Filter decides which events are emitted. Required.
	Filter *level.Filter
	// Renderer formats console lines. Defaults to a plain renderer.
	Renderer *render.Renderer
	// Console receives rendered lines. Defaults to the standard streams.
	Console *render.Console
	// Buffer receives an entry per emitted event. Nil disables file logging.
	Buffer *buffer.Buffer
	// Next, if set, receives every record it is enabled for, regardless of
	// the filter's decision.
	Next slog.Handler
	// Now stamps records that carry no time. Defaults to time.Now.
	Now func() time.Time
}

// shared is the state common to a handler and every handler derived from it.
type shared struct {
	filter   *level.Filter
	renderer *render.Renderer
	buf      *buffer.Buffer
	now      func() time.Time

	mu      sync.Mutex
	console *render.Console

	modules sync.Map // pc -> package path
}

// Handler is a slog.Handler. Handlers derived with WithAttrs and WithGroup
// share the filter, renderer, console and buffer.
type Handler struct {
	s *shared

	module string
	fields record.Fields
	// groups counts open groups; attributes inside a group are forwarded
	// but not extracted.
	groups int
	next   slog.Handler
}

var _ slog.Handler = (*Handler)(nil)

// New creates a dispatcher handler.
func New(opts Options) *Handler {
	s := &shared{
		filter:   opts.Filter,
		renderer: opts.Renderer,
		buf:      opts.Buffer,
		console:  opts.Console,
		now:      opts.Now,
	}
	if s.filter == nil {
		s.filter = level.NewFilter(level.DefaultFilterConfig())
	}
	if s.renderer == nil {
		s.renderer = render.New(render.Options{})
	}
	if s.console == nil {
		s.console = render.StdConsole()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return &Handler{s: s, next: opts.Next}
}

// Module returns the module bound with ModuleKey, or "".
func (h *Handler) Module() string {
	return h.module
}

// FileLogging reports whether emitted events are buffered for the sink.
func (h *Handler) FileLogging() bool {
	return h.s.buf != nil
}

// Enabled reports whether a record at l may be emitted or forwarded. When
// no module is bound, the caller's package is not known yet, so any module
// override that could accept l is enough; Handle decides for certain.
func (h *Handler) Enabled(ctx context.Context, l slog.Level) bool {
	if h.enabled(level.FromSlog(l)) {
		return true
	}
	return h.next != nil && h.next.Enabled(ctx, l)
}

func (h *Handler) enabled(event level.Level) bool {
	if h.module != "" {
		return h.s.filter.Enabled(h.module, event)
	}
	return h.s.filter.MayEnable(event)
}

// Handle emits r if the filter accepts it for the resolved module, then
// forwards it to the next handler.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	var err error

	event := level.FromSlog(r.Level)
	if h.s.filter.Enabled(h.resolveModule(r.PC), event) {
		err = h.emit(event, r)
	}

	if h.next != nil && h.next.Enabled(ctx, r.Level) {
		if nerr := h.next.Handle(ctx, r.Clone()); err == nil {
			err = nerr
		}
	}
	return err
}

func (h *Handler) emit(event level.Level, r slog.Record) error {
	var fields record.Fields
	if r.Message != "" {
		fields.Message = record.String(r.Message)
	}
	fields.Merge(h.fields)
	if h.groups == 0 {
		r.Attrs(func(a slog.Attr) bool {
			fields.Set(a)
			return true
		})
	}

	t := r.Time
	if t.IsZero() {
		t = h.s.now()
	}
	entry := record.NewEntry(t, event, fields)

	line := h.s.renderer.Render(entry)
	h.s.mu.Lock()
	err := h.s.console.WriteLine(event, line)
	h.s.mu.Unlock()

	if h.s.buf != nil {
		h.s.buf.Append(entry)
	}
	return err
}

func (h *Handler) resolveModule(pc uintptr) string {
	if h.module != "" {
		return h.module
	}
	return h.s.moduleOf(pc)
}

// moduleOf returns the Go package path of the function containing pc.
func (s *shared) moduleOf(pc uintptr) string {
	if pc == 0 {
		return ""
	}
	if m, ok := s.modules.Load(pc); ok {
		return m.(string)
	}
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	m := PackagePath(frame.Function)
	s.modules.Store(pc, m)
	return m
}

// PackagePath extracts the package path from a fully qualified function
// name such as "example.com/app/db.(*Pool).Get". The runtime escapes dots in
// the last path element as "%2e", so "gopkg.in/yaml%2ev3.Marshal" yields
// "gopkg.in/yaml.v3".
func PackagePath(function string) string {
	slash := strings.LastIndex(function, "/")
	dot := strings.Index(function[slash+1:], ".")
	if dot >= 0 {
		function = function[:slash+1+dot]
	}
	return strings.ReplaceAll(function, "%2e", ".")
}

// WithAttrs returns a handler whose records carry attrs. A string ModuleKey
// attribute binds the module; recognized field attributes become defaults
// for every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := h.clone()
	if h2.groups == 0 {
		for _, a := range attrs {
			if a.Key == ModuleKey {
				if v := a.Value.Resolve(); v.Kind() == slog.KindString {
					h2.module = v.String()
					continue
				}
			}
			h2.fields.Set(a)
		}
	}
	if h2.next != nil {
		h2.next = h2.next.WithAttrs(attrs)
	}
	return h2
}

// WithGroup returns a handler that nests subsequent attributes under name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := h.clone()
	h2.groups++
	if h2.next != nil {
		h2.next = h2.next.WithGroup(name)
	}
	return h2
}

func (h *Handler) clone() *Handler {
	h2 := *h
	return &h2
}
