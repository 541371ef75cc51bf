package annostore_test

import (
	"context"
	"fmt"

	"github.com/nlindley/annostore"
	"github.com/nlindley/annostore/pkg/storetest"
)

// Demonstrates the full hook cycle over an in-memory store: a
// before-hook enriches every new annotation, and the caller's record
// is updated in place with the store's representation.
func Example() {
	hooks := annostore.NewRegistry()
	hooks.Subscribe(annostore.BeforeAnnotationCreated, func(ctx context.Context, args ...any) error {
		args[0].(annostore.Annotation)["author"] = "alice"
		return nil
	})

	adapter, err := annostore.New(
		annostore.WithStore(storetest.NewNullStore()),
		annostore.WithHookRunner(hooks),
	)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	ann := annostore.Annotation{"text": "hi"}
	if _, err := adapter.Create(ctx, ann); err != nil {
		panic(err)
	}

	fmt.Println(ann["id"], ann["text"], ann["author"])
	// Output: 0 hi alice
}

// Demonstrates vetoing a cycle from a before-hook.
func Example_veto() {
	hooks := annostore.NewRegistry()
	hooks.Subscribe(annostore.BeforeAnnotationDeleted, func(ctx context.Context, args ...any) error {
		return annostore.Veto("annotations are immutable here")
	})

	adapter, err := annostore.New(
		annostore.WithStore(storetest.NewNullStore()),
		annostore.WithHookRunner(hooks),
	)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	ann, _ := adapter.Create(ctx, annostore.Annotation{"text": "hi"})
	if _, err := adapter.Delete(ctx, ann); err != nil {
		fmt.Println("delete refused:", err)
	}
	// Output: delete refused: beforeAnnotationDeleted: cycle vetoed: annotations are immutable here
}
