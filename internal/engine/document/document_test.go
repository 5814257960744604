package document

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmpty(t *testing.T) {
	d := New("")

	assert.Equal(t, 0, d.Len())
	assert.Equal(t, 1, d.LineCount())
	assert.Equal(t, 0, d.LineStart(0))
	assert.Equal(t, 0, d.LineEnd(0))
	assert.Equal(t, "", d.LineText(0))
	assert.Equal(t, StateCode, d.LexicalState(0))
	assert.Equal(t, NoOffset, d.EnclosingBrace(0))
	assert.Equal(t, NoOffset, d.PrevCode(0))
}

func TestNormalizesLineEndings(t *testing.T) {
	d := New("a\r\nb\rc")
	assert.Equal(t, "a\nb\nc", d.Text())
	assert.Equal(t, 3, d.LineCount())
}

func TestLineQueries(t *testing.T) {
	d := New("line1\nline2\n\nline4")

	tests := []struct {
		offset int
		start  int
		end    int
		number int
		text   string
	}{
		{0, 0, 5, 0, "line1"},
		{5, 0, 5, 0, "line1"},
		{6, 6, 11, 1, "line2"},
		{12, 12, 12, 2, ""},
		{13, 13, 18, 3, "line4"},
		{18, 13, 18, 3, "line4"},
		{100, 13, 18, 3, "line4"},
		{-4, 0, 5, 0, "line1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.start, d.LineStart(tt.offset), "LineStart(%d)", tt.offset)
		assert.Equal(t, tt.end, d.LineEnd(tt.offset), "LineEnd(%d)", tt.offset)
		assert.Equal(t, tt.number, d.LineNumber(tt.offset), "LineNumber(%d)", tt.offset)
		assert.Equal(t, tt.text, d.LineText(tt.offset), "LineText(%d)", tt.offset)
	}

	assert.Equal(t, 0, d.LineOffset(-1))
	assert.Equal(t, 12, d.LineOffset(2))
	assert.Equal(t, 13, d.LineOffset(99))
}

func TestReplacePrefix(t *testing.T) {
	d := New("a\n\t  b\nc", WithCursor(8))

	changed := d.ReplacePrefix(3, "  ")
	require.True(t, changed)
	assert.Equal(t, "a\n  b\nc", d.Text())
	assert.Equal(t, uint64(1), d.Revision())
	assert.Equal(t, 7, d.Cursor(), "cursor after the edit shifts left")
	assert.Equal(t, 6, d.LineOffset(2))

	changed = d.ReplacePrefix(3, "  ")
	assert.False(t, changed)
	assert.Equal(t, uint64(1), d.Revision())
}

func TestReplacePrefixMovesCursorOutOfWhitespace(t *testing.T) {
	d := New("x\n    y", WithCursor(3))

	d.ReplacePrefix(2, "  ")
	assert.Equal(t, "x\n  y", d.Text())
	assert.Equal(t, 4, d.Cursor())
}

func TestReplaceSpan(t *testing.T) {
	d := New("hello\nworld")

	require.NoError(t, d.ReplaceSpan(5, 6, "\n\n"))
	assert.Equal(t, "hello\n\nworld", d.Text())
	assert.Equal(t, 3, d.LineCount())

	assert.ErrorIs(t, d.ReplaceSpan(-1, 2, "x"), ErrOffsetOutOfRange)
	assert.ErrorIs(t, d.ReplaceSpan(0, 100, "x"), ErrOffsetOutOfRange)
	assert.ErrorIs(t, d.ReplaceSpan(4, 2, "x"), ErrRangeInvalid)
}

func TestSetCursor(t *testing.T) {
	d := New("abc")
	require.NoError(t, d.SetCursor(3))
	assert.ErrorIs(t, d.SetCursor(4), ErrOffsetOutOfRange)
	assert.ErrorIs(t, d.SetCursor(-1), ErrOffsetOutOfRange)
}

func TestNewFromReader(t *testing.T) {
	d, err := NewFromReader(strings.NewReader("x\ny"))
	require.NoError(t, err)
	assert.Equal(t, 2, d.LineCount())
	assert.NotEqual(t, d.ID(), New("").ID())
}

func TestNeutralEditKeepsLexicalModel(t *testing.T) {
	text := "/*\ncomment\n*/\nint x;\n  \"s\";"
	d := New(text)

	// force the model, then edit only whitespace at line starts
	_ = d.LexicalState(0)
	d.ReplacePrefix(d.LineOffset(1), "   ")
	d.ReplacePrefix(d.LineOffset(3), "\t")
	d.ReplacePrefix(d.LineOffset(4), "")

	fresh := New(d.Text())
	for i := 0; i <= d.Len(); i++ {
		require.Equal(t, fresh.LexicalState(i), d.LexicalState(i), "offset %d", i)
		require.Equal(t, fresh.IsCode(i), d.IsCode(i), "offset %d", i)
	}
}

func TestDocumentID(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, id, New("x", WithID(id)).ID())

	a, b := New("x"), New("x")
	assert.NotEqual(t, uuid.Nil, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}
