package core

import (
	"github.com/aretw0/introspection"
)

// AdapterState exposes internal state for observability.
type AdapterState struct {
	StoreType   string `json:"store_type"`
	Watchers    int    `json:"watchers"`
	EventBuffer int    `json:"event_buffer"`
}

// State implements introspection.Introspectable.
func (a *Adapter) State() any {
	a.mu.Lock()
	defer a.mu.Unlock()

	storeType := "store"
	if comp, ok := a.store.(introspection.Component); ok {
		storeType = comp.ComponentType()
	}

	return AdapterState{
		StoreType:   storeType,
		Watchers:    len(a.watchers),
		EventBuffer: a.eventBuffer,
	}
}

// ComponentType implements introspection.Component.
func (a *Adapter) ComponentType() string {
	return "adapter"
}

var _ introspection.Introspectable = (*Adapter)(nil)
var _ introspection.Component = (*Adapter)(nil)
