package core

import "errors"

// Common errors.
var (
	// ErrMissingID reports an update or delete on a record that was
	// never created. This is a caller programming error; the adapter
	// fails before any hook or store method runs.
	ErrMissingID = errors.New("annotation has no id")
)
