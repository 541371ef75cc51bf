package typed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlindley/annostore/pkg/core"
	"github.com/nlindley/annostore/pkg/storetest"
	"github.com/nlindley/annostore/pkg/typed"
)

type note struct {
	Text   string   `json:"text"`
	Author string   `json:"author,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

func newTyped(t *testing.T, hooks core.HookRunner) *typed.Adapter[note] {
	t.Helper()
	adapter, err := core.NewAdapter(core.AdapterConfig{
		Store: storetest.NewNullStore(),
		Hooks: hooks,
	})
	require.NoError(t, err)
	return typed.NewAdapter[note](adapter)
}

func TestTypedCreate(t *testing.T) {
	ta := newTyped(t, nil)

	m, err := ta.Create(context.Background(), note{Text: "hi", Tags: []string{"a"}})
	require.NoError(t, err)

	assert.Equal(t, 0, m.ID())
	assert.Equal(t, "hi", m.Body.Text)
	assert.Equal(t, []string{"a"}, m.Body.Tags)
	assert.Equal(t, "hi", m.Raw()["text"], "raw record mirrors the typed body")
}

func TestTypedCreateSeesHookMutations(t *testing.T) {
	hooks := core.NewRegistry()
	hooks.Subscribe(core.BeforeAnnotationCreated, func(ctx context.Context, args ...any) error {
		args[0].(core.Annotation)["author"] = "x"
		return nil
	})
	ta := newTyped(t, hooks)

	m, err := ta.Create(context.Background(), note{Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "x", m.Body.Author, "hook-added fields surface in the typed body")
}

func TestTypedUpdate(t *testing.T) {
	ta := newTyped(t, nil)
	ctx := context.Background()

	m, err := ta.Create(ctx, note{Text: "hi"})
	require.NoError(t, err)

	m.Body.Text = "bye"
	require.NoError(t, ta.Update(ctx, m))

	assert.Equal(t, "bye", m.Body.Text)
	assert.Equal(t, "bye", m.Raw()["text"])
	assert.Equal(t, 0, m.ID(), "identity survives the update")
}

func TestTypedDelete(t *testing.T) {
	ta := newTyped(t, nil)
	ctx := context.Background()

	m, err := ta.Create(ctx, note{Text: "hi"})
	require.NoError(t, err)
	assert.NoError(t, ta.Delete(ctx, m))
}

func TestTypedLoad(t *testing.T) {
	rows := []core.Annotation{
		{"id": "a1", "text": "first"},
		{"id": "a2", "text": "second", "tags": []any{"x"}},
	}
	store := &fixedStore{result: core.ResultSet{Results: rows}}
	adapter, err := core.NewAdapter(core.AdapterConfig{Store: store})
	require.NoError(t, err)
	ta := typed.NewAdapter[note](adapter)

	models, err := ta.Load(context.Background(), core.Query{})
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "first", models[0].Body.Text)
	assert.Equal(t, "a2", models[1].ID())
	assert.Equal(t, []string{"x"}, models[1].Body.Tags)
}

// fixedStore returns a canned query result; writes are identity ops.
type fixedStore struct {
	result core.ResultSet
}

func (s *fixedStore) Create(_ context.Context, ann core.Annotation) (core.Annotation, error) {
	return ann, nil
}

func (s *fixedStore) Update(_ context.Context, ann core.Annotation) (core.Annotation, error) {
	return ann, nil
}

func (s *fixedStore) Delete(_ context.Context, ann core.Annotation) (core.Annotation, error) {
	return ann, nil
}

func (s *fixedStore) Query(_ context.Context, _ core.Query) (core.ResultSet, error) {
	return s.result, nil
}
