package httpstore

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlindley/annostore/pkg/core"
)

// rawConfig builds a builder from the config as given, without the
// defaults New would apply.
func rawConfig(cfg Config) builder {
	return builder{cfg: cfg}
}

func TestMethodMapping(t *testing.T) {
	b := rawConfig(Config{URLs: DefaultURLs()})
	cases := map[action]string{
		actionCreate:  http.MethodPost,
		actionUpdate:  http.MethodPut,
		actionDestroy: http.MethodDelete,
		actionSearch:  http.MethodGet,
	}
	for act, method := range cases {
		req, err := b.build(context.Background(), act, map[string]any{}, nil)
		require.NoError(t, err)
		assert.Equal(t, method, req.Method, "action %s", act)
	}
}

func TestURLTemplating(t *testing.T) {
	t.Run("Substitutes ID", func(t *testing.T) {
		b := rawConfig(Config{
			Prefix: "",
			URLs:   URLSet{Update: "/annotations/{id}"},
		})
		req, err := b.build(context.Background(), actionUpdate, map[string]any{"id": "42"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "/annotations/42", req.URL.Path)
		assert.Equal(t, http.MethodPut, req.Method)
	})

	t.Run("Missing ID Becomes Empty", func(t *testing.T) {
		b := rawConfig(Config{URLs: URLSet{Destroy: "/annotations/{id}"}})
		req, err := b.build(context.Background(), actionDestroy, map[string]any{}, nil)
		require.NoError(t, err)
		assert.Equal(t, "/annotations/", req.URL.Path)
	})

	t.Run("Numeric ID", func(t *testing.T) {
		b := rawConfig(Config{URLs: URLSet{Update: "/annotations/{id}"}})
		req, err := b.build(context.Background(), actionUpdate, map[string]any{"id": 7}, nil)
		require.NoError(t, err)
		assert.Equal(t, "/annotations/7", req.URL.Path)
	})

	t.Run("Prefix Is Prepended", func(t *testing.T) {
		b := rawConfig(Config{
			Prefix: "http://example.com/api",
			URLs:   URLSet{Create: "/annotations"},
		})
		req, err := b.build(context.Background(), actionCreate, map[string]any{}, nil)
		require.NoError(t, err)
		assert.Equal(t, "http://example.com/api/annotations", req.URL.String())
	})
}

func TestEmulateHTTP(t *testing.T) {
	b := rawConfig(Config{URLs: DefaultURLs(), EmulateHTTP: true})

	t.Run("PUT Becomes POST With Override", func(t *testing.T) {
		req, err := b.build(context.Background(), actionUpdate, map[string]any{"id": "42"}, nil)
		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, http.MethodPut, req.Header.Get(headerMethodOverride))
	})

	t.Run("DELETE Becomes POST With Override", func(t *testing.T) {
		req, err := b.build(context.Background(), actionDestroy, map[string]any{"id": "42"}, nil)
		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, http.MethodDelete, req.Header.Get(headerMethodOverride))
	})

	t.Run("POST And GET Are Untouched", func(t *testing.T) {
		req, err := b.build(context.Background(), actionCreate, map[string]any{}, nil)
		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Empty(t, req.Header.Get(headerMethodOverride))

		req, err = b.build(context.Background(), actionSearch, map[string]any{}, nil)
		require.NoError(t, err)
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Empty(t, req.Header.Get(headerMethodOverride))
	})
}

func TestBodyEncoding(t *testing.T) {
	payload := map[string]any{"text": "hi"}

	t.Run("Raw JSON By Default", func(t *testing.T) {
		b := rawConfig(Config{URLs: DefaultURLs()})
		req, err := b.build(context.Background(), actionCreate, payload, nil)
		require.NoError(t, err)
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

		body, _ := io.ReadAll(req.Body)
		assert.JSONEq(t, `{"text":"hi"}`, string(body))
	})

	t.Run("EmulateJSON Wraps In Form Field", func(t *testing.T) {
		b := rawConfig(Config{URLs: DefaultURLs(), EmulateJSON: true})
		req, err := b.build(context.Background(), actionCreate, payload, nil)
		require.NoError(t, err)
		assert.Equal(t, "application/x-www-form-urlencoded", req.Header.Get("Content-Type"))

		body, _ := io.ReadAll(req.Body)
		form, err := url.ParseQuery(string(body))
		require.NoError(t, err)
		assert.JSONEq(t, `{"text":"hi"}`, form.Get("json"))
		assert.Empty(t, form.Get("_method"))
	})

	t.Run("EmulateJSON Plus EmulateHTTP Adds Method Field", func(t *testing.T) {
		b := rawConfig(Config{URLs: DefaultURLs(), EmulateJSON: true, EmulateHTTP: true})
		req, err := b.build(context.Background(), actionUpdate, map[string]any{"id": "1"}, nil)
		require.NoError(t, err)

		body, _ := io.ReadAll(req.Body)
		form, err := url.ParseQuery(string(body))
		require.NoError(t, err)
		assert.Equal(t, http.MethodPut, form.Get("_method"))
		assert.Equal(t, http.MethodPut, req.Header.Get(headerMethodOverride))
	})

	t.Run("Search Uses Query Parameters", func(t *testing.T) {
		b := rawConfig(Config{URLs: DefaultURLs()})
		q := map[string]any{"uri": "http://example.com", "limit": 10, "tags": []any{"a", "b"}}
		req, err := b.build(context.Background(), actionSearch, q, nil)
		require.NoError(t, err)

		assert.Nil(t, req.Body, "search never carries a body")
		params := req.URL.Query()
		assert.Equal(t, "http://example.com", params.Get("uri"))
		assert.Equal(t, "10", params.Get("limit"))
		assert.Equal(t, []string{"a", "b"}, params["tags"])
	})
}

func TestCustomHeaders(t *testing.T) {
	b := rawConfig(Config{URLs: DefaultURLs()})
	extra := http.Header{}
	extra.Set("X-Annotator-Auth-Token", "tok")

	req, err := b.build(context.Background(), actionCreate, map[string]any{}, extra)
	require.NoError(t, err)
	assert.Equal(t, "tok", req.Header.Get("X-Annotator-Auth-Token"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
}

func TestConfigDefaultsAndValidation(t *testing.T) {
	t.Run("Defaults Fill Zero Values", func(t *testing.T) {
		cfg := Config{}.withDefaults()
		assert.Equal(t, DefaultPrefix, cfg.Prefix)
		assert.Equal(t, DefaultURLs(), cfg.URLs)
		assert.NotNil(t, cfg.Client)
		assert.NotNil(t, cfg.Logger)
	})

	t.Run("Trailing Slash Prefix Is Rejected", func(t *testing.T) {
		_, err := New(Config{Prefix: "http://example.com/"})
		require.Error(t, err)
	})

	t.Run("ID From Sanitized Copy", func(t *testing.T) {
		// The adapter hands the store a record without _local; the
		// builder must not rely on it.
		b := rawConfig(Config{URLs: DefaultURLs()})
		ann := core.Annotation{"id": "a1"}
		req, err := b.build(context.Background(), actionUpdate, map[string]any(ann.Sanitized()), nil)
		require.NoError(t, err)
		assert.Contains(t, req.URL.Path, "a1")
	})
}
