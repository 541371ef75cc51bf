// Package annostore is the composition root for the annostore library.
//
// It connects the hook-cycling adapter (domain layer) with the
// persistence backends (adapter layer) using the Hexagonal
// Architecture pattern.
//
// Philosophy:
//
// annostore is a pluggable persistence layer for annotation systems.
// It moves open-ended annotation records between an in-memory
// application and a backing store, firing lifecycle hooks before and
// after each operation so other parts of the application can observe
// or veto changes. The store is a dumb persistence surface; all
// intelligence lives in the adapter's cycling protocol.
//
// Features:
//
//   - **Hook cycle**: before-hook -> store call -> in-place record
//     mutation -> after-hook, with veto support.
//   - **Identity preservation**: the caller's record is refilled with
//     the store's representation, never replaced; the private _local
//     field survives untouched.
//   - **HTTP backend**: configurable URL templates, legacy HTTP/JSON
//     emulation modes, status-derived user-facing error messages.
//   - **Typed view**: generic wrapper (`NewTyped[T]`) for type-safe
//     access to raw records.
//   - **Extensible**: any backend implementing `core.Store` plugs in.
//
// Usage:
//
//	hooks := annostore.NewRegistry()
//	adapter, err := annostore.New(
//		annostore.WithHTTP(annostore.HTTPConfig{Prefix: "https://example.com/api"}),
//		annostore.WithHookRunner(hooks),
//	)
//
//	// Persist an annotation
//	ann := annostore.Annotation{"text": "hi"}
//	_, err = adapter.Create(ctx, ann)
package annostore
