package formatter

import "errors"

var (
	// ErrLineOutOfRange is returned for a line number outside the document.
	ErrLineOutOfRange = errors.New("line out of range")

	// ErrNilDocument is returned when no document is supplied.
	ErrNilDocument = errors.New("nil document")
)
