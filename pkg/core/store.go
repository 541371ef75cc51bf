package core

import "context"

// Query is an open-ended query object. Its interpretation is entirely
// up to the store implementation; this layer imposes no schema.
type Query map[string]any

// ResultSet is the outcome of a store query.
type ResultSet struct {
	// Results holds the matching records in store order.
	Results []Annotation

	// Meta carries store-defined metadata about the query, such as a
	// total count.
	Meta map[string]any
}

// Store is the contract every persistence backend implements.
// Adhering to this interface keeps the adapter independent of the
// storage mechanism (remote HTTP API, tracing sink, in-memory).
//
// Operations receive a sanitized copy of the caller's record (the
// _local field already stripped) and return the store's representation
// of it. A store never mutates the caller's record directly; the
// adapter owns that protocol.
type Store interface {
	// Create persists a new record and returns it with a store-assigned
	// identity.
	Create(ctx context.Context, ann Annotation) (Annotation, error)

	// Update replaces the stored field set of an existing record.
	Update(ctx context.Context, ann Annotation) (Annotation, error)

	// Delete discards the store's copy of a record. The returned record
	// is the store's final representation of it.
	Delete(ctx context.Context, ann Annotation) (Annotation, error)

	// Query returns the records matching q.
	Query(ctx context.Context, q Query) (ResultSet, error)
}
