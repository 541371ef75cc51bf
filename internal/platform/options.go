package platform

import (
	"log/slog"

	"github.com/nlindley/annostore/pkg/adapters/httpstore"
	"github.com/nlindley/annostore/pkg/core"
)

// options holds the internal configuration for building an adapter.
type options struct {
	store       core.Store
	hooks       core.HookRunner
	logger      *slog.Logger
	eventBuffer int
	httpConfig  *httpstore.Config
}

// Option defines a functional option for configuring the adapter.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{}
}

// WithStore injects a custom store (e.g. a mock, or an application's
// own backend). Takes precedence over WithHTTP.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithHTTP backs the adapter with an HTTP store built from cfg.
func WithHTTP(cfg httpstore.Config) Option {
	return func(o *options) {
		o.httpConfig = &cfg
	}
}

// WithHookRunner sets the hook runner. Pass a *core.Registry you keep
// a reference to so listeners can be registered; defaults to an empty
// registry (no listeners).
func WithHookRunner(hooks core.HookRunner) Option {
	return func(o *options) {
		o.hooks = hooks
	}
}

// WithLogger sets the logger for the adapter and any store it builds.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEventBuffer sets the capacity of each watcher's event channel.
// Zero means the default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}
