package storetest

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/aretw0/introspection"
	"gopkg.in/yaml.v3"

	"github.com/nlindley/annostore/pkg/core"
)

// TraceStore behaves like NullStore but writes each action and a deep
// copy of its payload to a diagnostic sink before acting. It is meant
// for observing adapter traffic during development. It never fails:
// sink write errors are swallowed, tracing must not break persistence.
type TraceStore struct {
	null *NullStore

	mu   sync.Mutex
	sink io.Writer
}

// NewTraceStore creates a TraceStore writing to sink.
func NewTraceStore(sink io.Writer) *TraceStore {
	return &TraceStore{null: NewNullStore(), sink: sink}
}

// Create implements core.Store.
func (s *TraceStore) Create(ctx context.Context, ann core.Annotation) (core.Annotation, error) {
	s.trace("create", map[string]any(ann))
	return s.null.Create(ctx, ann)
}

// Update implements core.Store.
func (s *TraceStore) Update(ctx context.Context, ann core.Annotation) (core.Annotation, error) {
	s.trace("update", map[string]any(ann))
	return s.null.Update(ctx, ann)
}

// Delete implements core.Store.
func (s *TraceStore) Delete(ctx context.Context, ann core.Annotation) (core.Annotation, error) {
	s.trace("delete", map[string]any(ann))
	return s.null.Delete(ctx, ann)
}

// Query implements core.Store.
func (s *TraceStore) Query(ctx context.Context, q core.Query) (core.ResultSet, error) {
	s.trace("query", map[string]any(q))
	return s.null.Query(ctx, q)
}

// trace renders a deep copy of the payload as YAML. The copy is taken
// before the store acts, so the sink sees the payload as it arrived.
func (s *TraceStore) trace(act string, payload map[string]any) {
	snapshot := core.Annotation(payload).Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.sink, "--- %s\n", act)
	out, err := yaml.Marshal(map[string]any(snapshot))
	if err != nil {
		fmt.Fprintf(s.sink, "# unrenderable payload: %v\n", err)
		return
	}
	s.sink.Write(out)
}

// ComponentType implements introspection.Component.
func (s *TraceStore) ComponentType() string {
	return "trace-store"
}

var (
	_ core.Store              = (*TraceStore)(nil)
	_ introspection.Component = (*TraceStore)(nil)
)
