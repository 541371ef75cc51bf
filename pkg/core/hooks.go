package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Hook identifies an extension point around the persistence cycle.
// The set is closed: listeners register for one of the constants below
// rather than for arbitrary strings.
type Hook string

// The hooks fired by the adapter.
const (
	BeforeAnnotationCreated Hook = "beforeAnnotationCreated"
	AnnotationCreated       Hook = "annotationCreated"
	BeforeAnnotationUpdated Hook = "beforeAnnotationUpdated"
	AnnotationUpdated       Hook = "annotationUpdated"
	BeforeAnnotationDeleted Hook = "beforeAnnotationDeleted"
	AnnotationDeleted       Hook = "annotationDeleted"
	AnnotationsLoaded       Hook = "annotationsLoaded"
)

// ListenerFunc is a hook listener. Create/update/delete hooks receive
// the live Annotation as the single argument and may mutate it in
// place; AnnotationsLoaded receives the loaded []Annotation. Returning
// an error from a before-hook listener vetoes the in-progress cycle.
type ListenerFunc func(ctx context.Context, args ...any) error

// HookRunner invokes every listener registered for a hook. A nil
// return means all listeners completed; an error aborts the
// in-progress cycle.
type HookRunner interface {
	RunHook(ctx context.Context, h Hook, args ...any) error
}

// Veto is the conventional error a before-hook listener returns to
// cancel a cycle. Any listener error aborts the cycle; Veto marks the
// abort as an intentional cancellation rather than a failure.
type Veto struct {
	Reason string
}

func (v *Veto) Error() string {
	if v.Reason == "" {
		return "cycle vetoed"
	}
	return "cycle vetoed: " + v.Reason
}

// IsVeto reports whether err is (or wraps) a listener veto.
func IsVeto(err error) bool {
	var v *Veto
	return errors.As(err, &v)
}

// Registry is the default HookRunner. Listeners run sequentially in
// registration order: before-hook listeners are allowed to mutate the
// record in place, so running them in parallel would race on the
// shared map. The first error stops the run; later listeners are not
// invoked.
type Registry struct {
	mu        sync.RWMutex
	listeners map[Hook][]ListenerFunc
}

// NewRegistry creates an empty hook registry.
func NewRegistry() *Registry {
	return &Registry{listeners: make(map[Hook][]ListenerFunc)}
}

// Subscribe registers fn for hook h. Registration order is invocation
// order.
func (r *Registry) Subscribe(h Hook, fn ListenerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners[h] = append(r.listeners[h], fn)
}

// RunHook implements HookRunner.
func (r *Registry) RunHook(ctx context.Context, h Hook, args ...any) error {
	r.mu.RLock()
	fns := make([]ListenerFunc, len(r.listeners[h]))
	copy(fns, r.listeners[h])
	r.mu.RUnlock()

	for _, fn := range fns {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(ctx, args...); err != nil {
			return fmt.Errorf("%s: %w", h, err)
		}
	}
	return nil
}
