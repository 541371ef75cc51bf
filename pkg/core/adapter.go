package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultEventBuffer is the per-watcher event channel capacity used
// when AdapterConfig.EventBuffer is zero.
const DefaultEventBuffer = 100

// batchLimit bounds the number of create cycles CreateBatch runs at
// once.
const batchLimit = 4

// AdapterConfig holds the configuration for an Adapter.
type AdapterConfig struct {
	// Store is the persistence backend. Required.
	Store Store

	// Hooks runs the lifecycle hooks around each cycle. Defaults to an
	// empty Registry.
	Hooks HookRunner

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// EventBuffer is the capacity of each watcher's event channel.
	// Zero means DefaultEventBuffer.
	EventBuffer int
}

// Adapter sequences hook invocation around every store call and owns
// the identity-preserving mutation protocol for annotation records.
//
// Each create/update/delete runs a cycle: before-hook, store call on a
// sanitized copy, in-place replacement of the record's fields with the
// store's result, after-hook. A before-hook error (veto) aborts the
// cycle before the store is touched; a store error aborts it before
// the record is mutated.
//
// Cycles on distinct records are independent and may run concurrently.
// Cycles on the same record value are not synchronized here; callers
// must serialize per-record operations themselves.
type Adapter struct {
	store  Store
	hooks  HookRunner
	logger *slog.Logger

	eventBuffer int
	mu          sync.Mutex
	watchers    []chan Event
}

// NewAdapter creates an Adapter from cfg, filling in defaults.
func NewAdapter(cfg AdapterConfig) (*Adapter, error) {
	if cfg.Store == nil {
		return nil, errors.New("core: adapter requires a store")
	}
	if cfg.Hooks == nil {
		cfg.Hooks = NewRegistry()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = DefaultEventBuffer
	}
	return &Adapter{
		store:       cfg.Store,
		hooks:       cfg.Hooks,
		logger:      cfg.Logger,
		eventBuffer: cfg.EventBuffer,
	}, nil
}

// Create persists a new record through a full hook cycle. A nil record
// is treated as an empty one. On success the returned map is the same
// value the caller passed in, refilled with the store's representation.
func (a *Adapter) Create(ctx context.Context, ann Annotation) (Annotation, error) {
	if ann == nil {
		ann = Annotation{}
	}
	out, err := a.cycle(ctx, a.store.Create, BeforeAnnotationCreated, AnnotationCreated, ann)
	if err != nil {
		return nil, err
	}
	a.publish(Event{Type: EventCreate, ID: out.ID(), Timestamp: time.Now().Unix()})
	return out, nil
}

// Update replaces a record's stored field set through a full hook
// cycle. The record must already carry an id.
func (a *Adapter) Update(ctx context.Context, ann Annotation) (Annotation, error) {
	if !ann.HasID() {
		return nil, fmt.Errorf("update: %w", ErrMissingID)
	}
	out, err := a.cycle(ctx, a.store.Update, BeforeAnnotationUpdated, AnnotationUpdated, ann)
	if err != nil {
		return nil, err
	}
	a.publish(Event{Type: EventUpdate, ID: out.ID(), Timestamp: time.Now().Unix()})
	return out, nil
}

// Delete discards the store's copy of a record through a full hook
// cycle. The record must already carry an id. The caller's record is
// still refilled with the store's final representation; afterwards it
// is logically dead.
func (a *Adapter) Delete(ctx context.Context, ann Annotation) (Annotation, error) {
	if !ann.HasID() {
		return nil, fmt.Errorf("delete: %w", ErrMissingID)
	}
	id := ann.ID()
	out, err := a.cycle(ctx, a.store.Delete, BeforeAnnotationDeleted, AnnotationDeleted, ann)
	if err != nil {
		return nil, err
	}
	a.publish(Event{Type: EventDelete, ID: id, Timestamp: time.Now().Unix()})
	return out, nil
}

// cycle is the shared before-hook -> store -> mutate -> after-hook
// sequence behind Create, Update and Delete.
func (a *Adapter) cycle(ctx context.Context, op func(context.Context, Annotation) (Annotation, error), before, after Hook, ann Annotation) (Annotation, error) {
	// 1. Before-hook. Listeners may mutate the record in place or veto
	// the cycle; on veto the store is never called.
	if err := a.hooks.RunHook(ctx, before, ann); err != nil {
		return nil, err
	}

	// 2. Store call on a deep copy with _local stripped. The store
	// must never see adapter-private data.
	result, err := op(ctx, ann.Sanitized())
	if err != nil {
		return nil, err
	}

	// 3. Replace the record's fields in place so every holder of the
	// map sees the store's representation. _local stays untouched.
	local, hasLocal := ann[FieldLocal]
	for k := range ann {
		delete(ann, k)
	}
	if hasLocal {
		ann[FieldLocal] = local
	}
	for k, v := range result {
		if k == FieldLocal {
			continue
		}
		ann[k] = v
	}

	// 4. After-hook on the updated record. A listener error propagates
	// to the caller; the record keeps the store's field set.
	if err := a.hooks.RunHook(ctx, after, ann); err != nil {
		return nil, err
	}
	return ann, nil
}

// Query asks the store directly. No hooks fire.
func (a *Adapter) Query(ctx context.Context, q Query) (ResultSet, error) {
	return a.store.Query(ctx, q)
}

// Load queries the store and, on success, runs the AnnotationsLoaded
// hook with the result set's Results. Load waits for the hook run to
// complete; a listener error is returned with the (still valid) result
// set. On query failure no hook fires.
func (a *Adapter) Load(ctx context.Context, q Query) (ResultSet, error) {
	res, err := a.store.Query(ctx, q)
	if err != nil {
		return ResultSet{}, err
	}
	if err := a.hooks.RunHook(ctx, AnnotationsLoaded, res.Results); err != nil {
		return res, err
	}
	return res, nil
}

// CreateBatch runs an independent create cycle for every record.
// Cycles on distinct records share no state, so they run concurrently;
// the first failure cancels the remaining cycles.
func (a *Adapter) CreateBatch(ctx context.Context, anns []Annotation) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchLimit)
	for _, ann := range anns {
		g.Go(func() error {
			_, err := a.Create(ctx, ann)
			return err
		})
	}
	return g.Wait()
}

// Watch returns a stream of persistence events. The channel is closed
// when ctx is cancelled. Slow watchers never block a cycle: events
// beyond the channel's buffer are dropped with a warning.
func (a *Adapter) Watch(ctx context.Context) <-chan Event {
	ch := make(chan Event, a.eventBuffer)
	a.mu.Lock()
	a.watchers = append(a.watchers, ch)
	a.mu.Unlock()

	go func() {
		<-ctx.Done()
		a.mu.Lock()
		defer a.mu.Unlock()
		for i, w := range a.watchers {
			if w == ch {
				a.watchers = append(a.watchers[:i], a.watchers[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch
}

func (a *Adapter) publish(e Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, w := range a.watchers {
		select {
		case w <- e:
		default:
			a.logger.Warn("event dropped, watcher buffer full",
				"type", string(e.Type), "id", e.ID)
		}
	}
}
