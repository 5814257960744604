package indent

import "github.com/dshills/indentree/internal/engine/document"

// Document is the text an Indenter queries and edits.
//
// Offsets are byte offsets. Queries return document.NoOffset when no anchor
// exists. *document.Document satisfies this interface.
type Document interface {
	Len() int
	Cursor() int
	SetCursor(offset int) error

	LineStart(offset int) int
	LineEnd(offset int) int
	LineText(offset int) string
	Slice(start, end int) string
	ByteAt(offset int) byte

	LexicalState(offset int) document.LexicalState
	IsCode(offset int) bool
	ScanBackward(offset int, pred func(byte) bool) int
	ScanForward(offset int, pred func(byte) bool) int
	EnclosingBrace(offset int) int
	MatchingOpen(offset int) int

	ReplacePrefix(lineOffset int, prefix string) bool
	ReplaceSpan(start, end int, text string) error
}

var _ Document = (*document.Document)(nil)
