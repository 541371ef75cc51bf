package httpstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/aretw0/introspection"

	"github.com/nlindley/annostore/pkg/core"
)

// Store implements core.Store against a remote annotation API.
type Store struct {
	cfg     Config
	builder builder

	mu      sync.RWMutex
	headers http.Header
}

// New creates a Store from cfg, filling defaults and validating the
// result.
func New(cfg Config) (*Store, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("httpstore: invalid config: %w", err)
	}

	headers := make(http.Header, len(cfg.Headers))
	for name, values := range cfg.Headers {
		for _, v := range values {
			headers.Add(name, v)
		}
	}
	return &Store{
		cfg:     cfg,
		builder: builder{cfg: cfg},
		headers: headers,
	}, nil
}

// SetHeader sets a persistent custom header sent with every future
// request, e.g. an auth token.
func (s *Store) SetHeader(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.headers.Set(name, value)
}

// Create implements core.Store.
func (s *Store) Create(ctx context.Context, ann core.Annotation) (core.Annotation, error) {
	body, err := s.roundTrip(ctx, actionCreate, map[string]any(ann))
	if err != nil {
		return nil, err
	}
	return core.Annotation(body), nil
}

// Update implements core.Store.
func (s *Store) Update(ctx context.Context, ann core.Annotation) (core.Annotation, error) {
	body, err := s.roundTrip(ctx, actionUpdate, map[string]any(ann))
	if err != nil {
		return nil, err
	}
	return core.Annotation(body), nil
}

// Delete implements core.Store.
func (s *Store) Delete(ctx context.Context, ann core.Annotation) (core.Annotation, error) {
	body, err := s.roundTrip(ctx, actionDestroy, map[string]any(ann))
	if err != nil {
		return nil, err
	}
	// Many servers answer a delete with an empty body; fall back to the
	// payload we sent so the adapter still has a final representation.
	if len(body) == 0 {
		return ann, nil
	}
	return core.Annotation(body), nil
}

// Query implements core.Store. The raw response is reshaped: its
// "rows" field becomes Results and the remainder of the body becomes
// Meta.
func (s *Store) Query(ctx context.Context, q core.Query) (core.ResultSet, error) {
	body, err := s.roundTrip(ctx, actionSearch, map[string]any(q))
	if err != nil {
		return core.ResultSet{}, err
	}

	raw, ok := body["rows"]
	if !ok {
		return core.ResultSet{}, fmt.Errorf("httpstore: search response has no rows field")
	}
	items, ok := raw.([]any)
	if !ok {
		return core.ResultSet{}, fmt.Errorf("httpstore: search response rows is %T, want array", raw)
	}

	results := make([]core.Annotation, 0, len(items))
	for i, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			return core.ResultSet{}, fmt.Errorf("httpstore: search row %d is %T, want object", i, item)
		}
		results = append(results, core.Annotation(fields))
	}

	meta := make(map[string]any, len(body)-1)
	for k, v := range body {
		if k != "rows" {
			meta[k] = v
		}
	}
	return core.ResultSet{Results: results, Meta: meta}, nil
}

// roundTrip builds, sends and decodes one request. Failures are
// translated into a StatusError and reported through OnError before
// being returned.
func (s *Store) roundTrip(ctx context.Context, act action, payload map[string]any) (map[string]any, error) {
	req, err := s.builder.build(ctx, act, payload, s.headerSnapshot())
	if err != nil {
		return nil, err
	}
	s.cfg.Logger.Debug("annotation store request",
		"action", string(act), "method", req.Method, "url", req.URL.String())

	resp, err := s.cfg.Client.Do(req)
	if err != nil {
		return nil, s.fail(act, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, s.fail(act, resp.StatusCode, nil)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, s.fail(act, 0, err)
	}
	if len(data) == 0 {
		return map[string]any{}, nil
	}
	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, s.fail(act, 0, fmt.Errorf("decode response: %w", err))
	}
	return body, nil
}

// fail translates a transport failure into a StatusError and notifies
// the configured error callback.
func (s *Store) fail(act action, code int, cause error) error {
	serr := &StatusError{
		Action:  verb(act),
		Code:    code,
		Message: messageFor(act, code),
		Err:     cause,
	}
	if s.cfg.OnError != nil {
		s.cfg.OnError(serr.Message, serr)
	}
	return serr
}

func (s *Store) headerSnapshot() http.Header {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make(http.Header, len(s.headers))
	for name, values := range s.headers {
		snapshot[name] = append([]string(nil), values...)
	}
	return snapshot
}

// StoreState exposes internal state for observability.
type StoreState struct {
	Prefix      string `json:"prefix"`
	EmulateHTTP bool   `json:"emulate_http"`
	EmulateJSON bool   `json:"emulate_json"`
	Headers     int    `json:"headers"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StoreState{
		Prefix:      s.cfg.Prefix,
		EmulateHTTP: s.cfg.EmulateHTTP,
		EmulateJSON: s.cfg.EmulateJSON,
		Headers:     len(s.headers),
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "http-store"
}

var (
	_ core.Store                   = (*Store)(nil)
	_ introspection.Introspectable = (*Store)(nil)
	_ introspection.Component      = (*Store)(nil)
)
