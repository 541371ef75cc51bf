// Package core defines the domain of the annotation store: records,
// queries, the store contract, and the hook-cycling adapter.
package core

// Field names with reserved meaning on an annotation record.
const (
	// FieldID is the store-assigned identity of a record. It is absent
	// (or nil) before the record's first create cycle.
	FieldID = "id"

	// FieldLocal holds adapter/UI-private data. It is never sent to a
	// store and survives every persistence cycle untouched.
	FieldLocal = "_local"
)

// Annotation is an open-ended annotation record. It is a plain map so
// hooks and stores can attach arbitrary fields. The map value itself
// carries record identity across a persistence cycle: the adapter
// mutates the record in place and never replaces it, so every holder
// of the map sees the store's representation after a cycle.
type Annotation map[string]any

// ID returns the record identity, or nil when the record has not been
// created yet. Stores assign identities; callers never do.
func (a Annotation) ID() any {
	if a == nil {
		return nil
	}
	return a[FieldID]
}

// HasID reports whether the record carries a non-nil identity.
func (a Annotation) HasID() bool {
	return a.ID() != nil
}

// Local returns the adapter-private data attached to the record, if any.
func (a Annotation) Local() any {
	if a == nil {
		return nil
	}
	return a[FieldLocal]
}

// Clone returns a deep, independent copy of the record. Nested maps
// and slices are copied; other values are carried over as-is.
func (a Annotation) Clone() Annotation {
	if a == nil {
		return nil
	}
	return Annotation(copyMap(a))
}

// Sanitized returns a deep copy with the _local field stripped. This
// is the only form of a record a store is allowed to see.
func (a Annotation) Sanitized() Annotation {
	c := a.Clone()
	delete(c, FieldLocal)
	return c
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return copyMap(val)
	case Annotation:
		return Annotation(copyMap(val))
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = copyValue(e)
		}
		return out
	default:
		return v
	}
}
