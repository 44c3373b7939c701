// Package app wires daylog's components into one unit: it validates the
// configuration, builds the buffer, filter, renderer, dispatcher and file
// sink, installs the dispatcher as the process slog default, and runs the
// sink until shutdown.
package app

import (
	"sync"

	"github.com/tungetti/daylog/internal/buffer"
	"github.com/tungetti/daylog/internal/config"
	"github.com/tungetti/daylog/internal/dispatch"
	"github.com/tungetti/daylog/internal/errors"
	"github.com/tungetti/daylog/internal/level"
	"github.com/tungetti/daylog/internal/logging"
	"github.com/tungetti/daylog/internal/render"
	"github.com/tungetti/daylog/internal/sink"
)

// Container holds all application dependencies.
// It provides thread-safe access to shared components.
type Container struct {
	mu       sync.RWMutex
	Config   *config.Config
	Logger   logging.Logger
	Buffer   *buffer.Buffer
	Filter   *level.Filter
	Renderer *render.Renderer
	Handler  *dispatch.Handler
	// Store and Sink are nil when file logging is disabled.
	Store *sink.FileStore
	Sink  *sink.Sink
}

// NewContainer creates a new dependency container.
func NewContainer() *Container {
	return &Container{}
}

// SetConfig sets the configuration.
func (c *Container) SetConfig(cfg *config.Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Config = cfg
}

// SetLogger sets the diagnostics logger.
func (c *Container) SetLogger(l logging.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Logger = l
}

// SetPipeline sets the components shared by the dispatcher and the sink.
func (c *Container) SetPipeline(buf *buffer.Buffer, f *level.Filter, r *render.Renderer, h *dispatch.Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Buffer, c.Filter, c.Renderer, c.Handler = buf, f, r, h
}

// SetSink sets the file store and sink.
func (c *Container) SetSink(store *sink.FileStore, s *sink.Sink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Store, c.Sink = store, s
}

// GetConfig returns the configuration.
func (c *Container) GetConfig() *config.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Config
}

// GetLogger returns the diagnostics logger.
func (c *Container) GetLogger() logging.Logger {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Logger
}

// GetHandler returns the dispatcher.
func (c *Container) GetHandler() *dispatch.Handler {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Handler
}

// GetRenderer returns the renderer.
func (c *Container) GetRenderer() *render.Renderer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Renderer
}

// GetSink returns the file sink, or nil when file logging is disabled.
func (c *Container) GetSink() *sink.Sink {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Sink
}

// GetStore returns the file store, or nil when file logging is disabled.
func (c *Container) GetStore() *sink.FileStore {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Store
}

// Validate checks that all required dependencies are set.
// The sink is optional.
func (c *Container) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.Config == nil {
		return errors.New(errors.Configuration, "config not initialized")
	}
	if c.Logger == nil {
		return errors.New(errors.Configuration, "logger not initialized")
	}
	if c.Handler == nil || c.Buffer == nil || c.Filter == nil || c.Renderer == nil {
		return errors.New(errors.Configuration, "dispatcher not initialized")
	}
	if (c.Sink == nil) != (c.Store == nil) {
		return errors.New(errors.Configuration, "file sink partially initialized")
	}
	return nil
}
