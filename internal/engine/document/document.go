package document

import (
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// NoOffset is returned by queries that find no anchor.
const NoOffset = -1

// Document is an editable text with a cursor and a lexical model.
type Document struct {
	mu sync.Mutex

	id       uuid.UUID
	text     []byte
	lines    []int // start offset of every line
	cursor   int
	revision uint64

	lex      lexModel
	lexValid bool
}

// Option configures a Document.
type Option func(*Document)

// WithCursor places the cursor at offset. Out-of-range offsets are clamped.
func WithCursor(offset int) Option {
	return func(d *Document) {
		d.cursor = offset
	}
}

// WithID sets the document identifier.
func WithID(id uuid.UUID) Option {
	return func(d *Document) {
		d.id = id
	}
}

// New creates a document holding text. CRLF and CR line endings are
// normalized to LF.
func New(text string, opts ...Option) *Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	d := &Document{
		id:   uuid.New(),
		text: []byte(text),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.cursor = d.clamp(d.cursor)
	d.indexLines()
	return d
}

// NewFromReader creates a document from the contents of r.
func NewFromReader(r io.Reader, opts ...Option) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return New(string(data), opts...), nil
}

// Lock acquires the document's exclusive lock.
func (d *Document) Lock() { d.mu.Lock() }

// Unlock releases the document's exclusive lock.
func (d *Document) Unlock() { d.mu.Unlock() }

// ID returns the document identifier.
func (d *Document) ID() uuid.UUID { return d.id }

// Revision returns a counter incremented by every edit that changed text.
func (d *Document) Revision() uint64 { return d.revision }

// Len returns the length of the document in bytes.
func (d *Document) Len() int { return len(d.text) }

// Text returns the full document text.
func (d *Document) Text() string { return string(d.text) }

// Slice returns the text in [start, end), clamped to the document.
func (d *Document) Slice(start, end int) string {
	start, end = d.clamp(start), d.clamp(end)
	if end <= start {
		return ""
	}
	return string(d.text[start:end])
}

// ByteAt returns the byte at offset, or 0 outside the document.
func (d *Document) ByteAt(offset int) byte {
	if offset < 0 || offset >= len(d.text) {
		return 0
	}
	return d.text[offset]
}

// Cursor returns the cursor offset.
func (d *Document) Cursor() int { return d.cursor }

// SetCursor moves the cursor.
func (d *Document) SetCursor(offset int) error {
	if offset < 0 || offset > len(d.text) {
		return ErrOffsetOutOfRange
	}
	d.cursor = offset
	return nil
}

// Line queries

// LineCount returns the number of lines. An empty document has one line.
func (d *Document) LineCount() int { return len(d.lines) }

// LineNumber returns the 0-based line containing offset.
func (d *Document) LineNumber(offset int) int {
	offset = d.clamp(offset)
	return sort.Search(len(d.lines), func(i int) bool { return d.lines[i] > offset }) - 1
}

// LineOffset returns the start offset of 0-based line n, clamped to the
// first and last line.
func (d *Document) LineOffset(n int) int {
	if n < 0 {
		n = 0
	}
	if n >= len(d.lines) {
		n = len(d.lines) - 1
	}
	return d.lines[n]
}

// LineStart returns the start offset of the line containing offset.
func (d *Document) LineStart(offset int) int {
	return d.lines[d.LineNumber(offset)]
}

// LineEnd returns the offset of the newline ending the line containing
// offset, or Len() for the last line.
func (d *Document) LineEnd(offset int) int {
	n := d.LineNumber(offset)
	if n+1 < len(d.lines) {
		return d.lines[n+1] - 1
	}
	return len(d.text)
}

// LineText returns the text of the line containing offset without its
// newline.
func (d *Document) LineText(offset int) string {
	n := d.LineNumber(offset)
	return string(d.text[d.lines[n]:d.LineEnd(d.lines[n])])
}

// Edits

// ReplacePrefix replaces the leading blanks (spaces and tabs) of the line
// containing lineOffset with prefix. It reports whether the text changed.
func (d *Document) ReplacePrefix(lineOffset int, prefix string) bool {
	start := d.LineStart(lineOffset)
	end := start
	for end < len(d.text) && (d.text[end] == ' ' || d.text[end] == '\t') {
		end++
	}
	if string(d.text[start:end]) == prefix {
		return false
	}
	d.splice(start, end, prefix)
	return true
}

// ReplaceSpan replaces the text in [start, end) with text.
func (d *Document) ReplaceSpan(start, end int, text string) error {
	if start < 0 || end > len(d.text) {
		return ErrOffsetOutOfRange
	}
	if end < start {
		return ErrRangeInvalid
	}
	if string(d.text[start:end]) == text {
		return nil
	}
	d.splice(start, end, text)
	return nil
}

// splice performs an edit and keeps the line index, lexical model and
// cursor consistent with it.
func (d *Document) splice(start, end int, repl string) {
	old := d.text[start:end]
	delta := len(repl) - (end - start)

	// Blank-only edits at a line start cannot change the lexical class of
	// any other byte, so the model is spliced instead of rebuilt.
	neutral := d.lexValid && isBlank(old) && isBlank([]byte(repl)) &&
		(start == 0 || d.text[start-1] == '\n')
	newlines := strings.IndexByte(string(old), '\n') >= 0 || strings.IndexByte(repl, '\n') >= 0

	if neutral {
		s := d.lex.before[start]
		fill := make([]LexicalState, len(repl))
		for i := range fill {
			fill[i] = s
		}
		d.lex.class = spliceStates(d.lex.class, start, end, fill)
		d.lex.before = spliceStates(d.lex.before, start, end, fill)
	} else {
		d.lexValid = false
	}

	text := make([]byte, 0, len(d.text)+delta)
	text = append(text, d.text[:start]...)
	text = append(text, repl...)
	text = append(text, d.text[end:]...)
	d.text = text

	if newlines {
		d.indexLines()
	} else {
		for i := len(d.lines) - 1; i >= 0 && d.lines[i] > start; i-- {
			d.lines[i] += delta
		}
	}

	switch {
	case d.cursor >= end:
		d.cursor += delta
	case d.cursor >= start:
		d.cursor = start + len(repl)
	}
	d.revision++
}

func (d *Document) indexLines() {
	d.lines = d.lines[:0]
	d.lines = append(d.lines, 0)
	for i, c := range d.text {
		if c == '\n' {
			d.lines = append(d.lines, i+1)
		}
	}
}

func (d *Document) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(d.text) {
		return len(d.text)
	}
	return offset
}

func spliceStates(s []LexicalState, start, end int, fill []LexicalState) []LexicalState {
	out := make([]LexicalState, 0, len(s)-(end-start)+len(fill))
	out = append(out, s[:start]...)
	out = append(out, fill...)
	return append(out, s[end:]...)
}

func isBlank(b []byte) bool {
	for _, c := range b {
		if c != ' ' && c != '\t' {
			return false
		}
	}
	return true
}
