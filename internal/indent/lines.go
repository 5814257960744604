package indent

import (
	"strings"

	"github.com/dshills/indentree/internal/engine/document"
)

// leadingBlanks returns the run of spaces and tabs that starts s.
func leadingBlanks(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[:i]
}

func isBlankLine(s string) bool {
	return strings.TrimLeft(s, " \t") == ""
}

// lineIndent returns the leading blanks of the line containing offset.
func lineIndent(doc Document, offset int) string {
	return leadingBlanks(doc.LineText(offset))
}

// prevLine returns the start of the nearest line above the line starting
// at line that holds anything but blanks, or NoOffset.
func prevLine(doc Document, line int) int {
	for line > 0 {
		line = doc.LineStart(line - 1)
		if !isBlankLine(doc.LineText(line)) {
			return line
		}
	}
	return document.NoOffset
}

// prevLineText returns the text of the previous non-blank line with its
// leading blanks removed, and whether such a line exists.
func prevLineText(doc Document, line int) (string, bool) {
	p := prevLine(doc, line)
	if p == document.NoOffset {
		return "", false
	}
	return strings.TrimLeft(doc.LineText(p), " \t"), true
}

// prevLineIndent returns the leading blanks of the previous non-blank line,
// or "" at the top of the document.
func prevLineIndent(doc Document, line int) string {
	p := prevLine(doc, line)
	if p == document.NoOffset {
		return ""
	}
	return lineIndent(doc, p)
}

// firstCode returns the first code byte on the line starting at line, or
// NoOffset if the line holds only blanks and comments.
func firstCode(doc Document, line int) int {
	c := doc.ScanForward(line, nil)
	if c == document.NoOffset || c >= doc.LineEnd(line) {
		return document.NoOffset
	}
	return c
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c >= 0x80 ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// firstWord returns the identifier that starts s, or "".
func firstWord(s string) string {
	i := 0
	for i < len(s) && isIdentByte(s[i]) {
		i++
	}
	return s[:i]
}

// wordAt returns the identifier starting at offset.
func wordAt(doc Document, offset int) string {
	if offset == document.NoOffset {
		return ""
	}
	end := offset
	for end < doc.Len() && isIdentByte(doc.ByteAt(end)) {
		end++
	}
	text := doc.LineText(offset)
	col := offset - doc.LineStart(offset)
	return text[col : col+(end-offset)]
}
