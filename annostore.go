package annostore

import (
	"log/slog"

	"github.com/nlindley/annostore/internal/platform"
	"github.com/nlindley/annostore/pkg/adapters/httpstore"
	"github.com/nlindley/annostore/pkg/core"
	"github.com/nlindley/annostore/pkg/typed"
)

// --- Types ---

// Annotation is a public alias for the open-ended annotation record.
type Annotation = core.Annotation

// Query is a public alias for the open-ended query object.
type Query = core.Query

// ResultSet is a public alias for a query's outcome.
type ResultSet = core.ResultSet

// Store is a public alias for the persistence backend contract.
type Store = core.Store

// Adapter is a public alias for the hook-cycling adapter.
type Adapter = core.Adapter

// Hook is a public alias for the hook identifier type.
type Hook = core.Hook

// Registry is a public alias for the default hook runner.
type Registry = core.Registry

// Event is a public alias for a persistence event.
type Event = core.Event

// TypedAdapter is a public alias for the type-safe adapter wrapper.
type TypedAdapter[T any] = typed.Adapter[T]

// TypedModel is a public alias for the typed annotation model.
type TypedModel[T any] = typed.Model[T]

// HTTPConfig is a public alias for the HTTP store configuration.
type HTTPConfig = httpstore.Config

// The hooks fired around persistence cycles.
const (
	BeforeAnnotationCreated = core.BeforeAnnotationCreated
	AnnotationCreated       = core.AnnotationCreated
	BeforeAnnotationUpdated = core.BeforeAnnotationUpdated
	AnnotationUpdated       = core.AnnotationUpdated
	BeforeAnnotationDeleted = core.BeforeAnnotationDeleted
	AnnotationDeleted       = core.AnnotationDeleted
	AnnotationsLoaded       = core.AnnotationsLoaded
)

// --- Configuration ---

// Option defines a functional option for configuring the adapter.
type Option = platform.Option

// WithStore injects a custom store backend.
func WithStore(store core.Store) Option {
	return platform.WithStore(store)
}

// WithHTTP backs the adapter with an HTTP store built from cfg.
func WithHTTP(cfg httpstore.Config) Option {
	return platform.WithHTTP(cfg)
}

// WithHookRunner sets the hook runner for the adapter.
func WithHookRunner(hooks core.HookRunner) Option {
	return platform.WithHookRunner(hooks)
}

// WithLogger sets the logger for the adapter and any store it builds.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithEventBuffer sets the capacity of each watcher's event channel.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// --- Factories ---

// New builds an Adapter. A store must be configured through WithStore
// or WithHTTP.
func New(opts ...Option) (*core.Adapter, error) {
	return platform.New(opts...)
}

// NewRegistry creates an empty hook registry.
func NewRegistry() *core.Registry {
	return core.NewRegistry()
}

// NewTyped creates a type-safe wrapper around an existing adapter.
func NewTyped[T any](adapter *core.Adapter) *typed.Adapter[T] {
	return typed.NewAdapter[T](adapter)
}

// Veto builds the conventional cancellation error a before-hook
// listener returns to abort a cycle.
func Veto(reason string) error {
	return &core.Veto{Reason: reason}
}
