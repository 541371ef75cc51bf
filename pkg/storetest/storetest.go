// Package storetest provides store stand-ins for development and
// testing. NullStore and TraceStore implement the full core.Store
// contract without any real persistence; they are test doubles, not
// production backends.
package storetest

import (
	"context"
	"sync/atomic"

	"github.com/aretw0/introspection"

	"github.com/nlindley/annostore/pkg/core"
)

// NullStore is a no-op store. Create assigns a locally unique id when
// the record has none; Update and Delete return their input unchanged;
// Query always returns an empty result set. It never fails.
type NullStore struct {
	nextID atomic.Int64
}

// NewNullStore creates a NullStore whose ids count up from 0.
func NewNullStore() *NullStore {
	return &NullStore{}
}

// Create implements core.Store. An existing id is preserved.
func (s *NullStore) Create(_ context.Context, ann core.Annotation) (core.Annotation, error) {
	if ann == nil {
		ann = core.Annotation{}
	}
	if !ann.HasID() {
		ann[core.FieldID] = int(s.nextID.Add(1) - 1)
	}
	return ann, nil
}

// Update implements core.Store as an identity function.
func (s *NullStore) Update(_ context.Context, ann core.Annotation) (core.Annotation, error) {
	return ann, nil
}

// Delete implements core.Store as an identity function.
func (s *NullStore) Delete(_ context.Context, ann core.Annotation) (core.Annotation, error) {
	return ann, nil
}

// Query implements core.Store and always returns empty results.
func (s *NullStore) Query(_ context.Context, _ core.Query) (core.ResultSet, error) {
	return core.ResultSet{
		Results: []core.Annotation{},
		Meta:    map[string]any{"total": 0},
	}, nil
}

// ComponentType implements introspection.Component.
func (s *NullStore) ComponentType() string {
	return "null-store"
}

var (
	_ core.Store              = (*NullStore)(nil)
	_ introspection.Component = (*NullStore)(nil)
)
