package formatter

import (
	"strings"

	"github.com/dshills/indentree/internal/engine/document"
)

// leadingBlanks returns the run of spaces and tabs starting line.
func leadingBlanks(line string) string {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[:i]
}

// columns measures a blank run, advancing tabs to the next multiple of
// width.
func columns(blanks string, width int) int {
	col := 0
	for i := 0; i < len(blanks); i++ {
		if blanks[i] == '\t' && width > 0 {
			col += width - col%width
		} else {
			col++
		}
	}
	return col
}

// tabbed renders col columns as tabs followed by the remaining spaces.
func tabbed(col, width int) string {
	if width <= 0 {
		return strings.Repeat(" ", col)
	}
	return strings.Repeat("\t", col/width) + strings.Repeat(" ", col%width)
}

// expandLines rewrites the indentation of lines from through to with
// spaces and returns the leading blanks each line had before. Lines
// starting inside a string are left alone.
func expandLines(doc *document.Document, from, to, width int) []string {
	saved := make([]string, 0, to-from+1)
	for n := from; n <= to; n++ {
		start := doc.LineOffset(n)
		blanks := leadingBlanks(doc.LineText(start))
		saved = append(saved, blanks)
		if doc.LexicalState(start) == document.StateString {
			continue
		}
		if strings.IndexByte(blanks, '\t') >= 0 {
			doc.ReplacePrefix(start, strings.Repeat(" ", columns(blanks, width)))
		}
	}
	return saved
}

// restoreLines puts back leading blanks saved by expandLines, the first
// of them on line from.
func restoreLines(doc *document.Document, from int, saved []string) {
	for i, blanks := range saved {
		doc.ReplacePrefix(doc.LineOffset(from+i), blanks)
	}
}

// collapseLines rewrites the indentation of lines from through to with
// tabs for whole indent levels. With clearBlank set, blank lines keep no
// indentation.
func collapseLines(doc *document.Document, from, to, width int, clearBlank bool) {
	for n := from; n <= to; n++ {
		start := doc.LineOffset(n)
		if doc.LexicalState(start) == document.StateString {
			continue
		}
		line := doc.LineText(start)
		blanks := leadingBlanks(line)
		if blanks == "" {
			continue
		}
		if len(blanks) == len(line) && clearBlank {
			doc.ReplacePrefix(start, "")
			continue
		}
		doc.ReplacePrefix(start, tabbed(columns(blanks, width), width))
	}
}
