package indent

import "errors"

// Errors returned by indent operations.
var (
	// ErrNegativeIndentWidth indicates a negative indent width was requested.
	ErrNegativeIndentWidth = errors.New("indent width must not be negative")

	// ErrIncompleteTree indicates a question is missing a child.
	ErrIncompleteTree = errors.New("question rule has a nil branch")

	// ErrCyclicTree indicates a rule is reachable from itself.
	ErrCyclicTree = errors.New("rule tree contains a cycle")
)
