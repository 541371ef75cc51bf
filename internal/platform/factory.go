package platform

import (
	"errors"

	"github.com/nlindley/annostore/pkg/adapters/httpstore"
	"github.com/nlindley/annostore/pkg/core"
)

// New builds an Adapter from the given options. A store must be
// configured, either directly (WithStore) or as an HTTP store
// (WithHTTP); the null and trace stand-ins live in pkg/storetest and
// are injected through WithStore when wanted.
func New(opts ...Option) (*core.Adapter, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	store := o.store
	if store == nil && o.httpConfig != nil {
		cfg := *o.httpConfig
		if cfg.Logger == nil {
			cfg.Logger = o.logger
		}
		s, err := httpstore.New(cfg)
		if err != nil {
			return nil, err
		}
		store = s
	}
	if store == nil {
		return nil, errors.New("annostore: no store configured, use WithStore or WithHTTP")
	}

	return core.NewAdapter(core.AdapterConfig{
		Store:       store,
		Hooks:       o.hooks,
		Logger:      o.logger,
		EventBuffer: o.eventBuffer,
	})
}
