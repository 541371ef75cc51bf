// Package typed provides a type-safe view over an Adapter. It converts
// between raw annotation maps and user struct types, so applications
// can work with their own annotation shape while the persistence layer
// keeps its open-ended records.
package typed

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/nlindley/annostore/pkg/core"
)

// Model pairs a typed annotation body with the raw record that backs
// it. The raw record is the value the adapter mutates in place, so it
// stays valid across cycles; Body is a decoded snapshot of it.
type Model[T any] struct {
	Body T

	raw core.Annotation
}

// ID returns the backing record's identity.
func (m *Model[T]) ID() any {
	return m.raw.ID()
}

// Raw returns the backing record. Mutating it bypasses the typed view.
func (m *Model[T]) Raw() core.Annotation {
	return m.raw
}

// Adapter wraps a core.Adapter to provide type-safe access.
type Adapter[T any] struct {
	adapter *core.Adapter
}

// NewAdapter creates a typed wrapper around an existing adapter.
func NewAdapter[T any](adapter *core.Adapter) *Adapter[T] {
	return &Adapter[T]{adapter: adapter}
}

// Create runs a create cycle for body and returns the typed model of
// the store's result.
func (a *Adapter[T]) Create(ctx context.Context, body T) (*Model[T], error) {
	raw, err := toRecord(body)
	if err != nil {
		return nil, err
	}
	if _, err := a.adapter.Create(ctx, raw); err != nil {
		return nil, err
	}
	return fromRecord[T](raw)
}

// Update re-encodes the model's body into its backing record and runs
// an update cycle. The model's Body is refreshed from the store's
// result.
func (a *Adapter[T]) Update(ctx context.Context, m *Model[T]) error {
	fields, err := toRecord(m.Body)
	if err != nil {
		return err
	}
	// Carry the typed fields into the live record without touching its
	// identity or private data.
	for k, v := range fields {
		if k == core.FieldID || k == core.FieldLocal {
			continue
		}
		m.raw[k] = v
	}
	if _, err := a.adapter.Update(ctx, m.raw); err != nil {
		return err
	}
	return decode(m.raw, &m.Body)
}

// Delete runs a delete cycle for the model's backing record.
func (a *Adapter[T]) Delete(ctx context.Context, m *Model[T]) error {
	_, err := a.adapter.Delete(ctx, m.raw)
	return err
}

// Load queries the store and returns typed models of the results.
func (a *Adapter[T]) Load(ctx context.Context, q core.Query) ([]*Model[T], error) {
	res, err := a.adapter.Load(ctx, q)
	if err != nil {
		return nil, err
	}
	models := make([]*Model[T], 0, len(res.Results))
	for i, raw := range res.Results {
		m, err := fromRecord[T](raw)
		if err != nil {
			return nil, fmt.Errorf("typed: result %d: %w", i, err)
		}
		models = append(models, m)
	}
	return models, nil
}

// toRecord converts a typed body into a raw annotation record.
func toRecord(body any) (core.Annotation, error) {
	raw := core.Annotation{}
	if err := decodeInto(body, (*map[string]any)(&raw)); err != nil {
		return nil, fmt.Errorf("typed: encode body: %w", err)
	}
	return raw, nil
}

// fromRecord decodes a raw record into a typed model.
func fromRecord[T any](raw core.Annotation) (*Model[T], error) {
	m := &Model[T]{raw: raw}
	if err := decode(raw, &m.Body); err != nil {
		return nil, err
	}
	return m, nil
}

func decode(raw core.Annotation, out any) error {
	if err := decodeInto(map[string]any(raw), out); err != nil {
		return fmt.Errorf("typed: decode record: %w", err)
	}
	return nil
}

// decodeInto runs a mapstructure conversion honoring json tags, so the
// same struct tags drive both the wire format and the typed view.
func decodeInto(in, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}
