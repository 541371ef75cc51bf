// Package lifecycle bridges adapter persistence events to the generic
// aretw0/lifecycle event interface, so an application's lifecycle
// supervisor can observe annotation traffic alongside its other
// components.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/nlindley/annostore/pkg/core"
)

type annotationSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source emitting the adapter's
// persistence events. Pass it the channel returned by Adapter.Watch.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &annotationSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *annotationSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *annotationSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				// core.Event implements lifecycle.Event (has String())
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
