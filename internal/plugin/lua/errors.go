package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrCapabilityDenied is returned when a script calls a function it
	// was not granted.
	ErrCapabilityDenied = errors.New("lua capability denied")
)
