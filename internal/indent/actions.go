package indent

import (
	"fmt"
	"strings"

	"github.com/dshills/indentree/internal/engine/document"
)

var doNothing = DoNothing()

// DoNothing leaves the line untouched.
func DoNothing() *Action {
	return NewAction("DoNothing", func(Document, int, Reason) bool { return false })
}

// StartPrevLinePlus indents the line with the previous non-blank line's
// leading blanks followed by suffix. The top line of a document gets just
// the suffix.
//
// A suffix carrying a comment star (" * ") also replaces a star the line
// already starts with, so repeating the action does not stack stars. A
// star that is part of a closing "*/" is left alone.
func StartPrevLinePlus(suffix string) *Action {
	return NewAction(fmt.Sprintf("StartPrevLinePlus(%q)", suffix), func(doc Document, line int, _ Reason) bool {
		prefix := prevLineIndent(doc, line) + suffix
		marker := strings.TrimSpace(suffix)
		if marker == "" {
			return doc.ReplacePrefix(line, prefix)
		}
		text := doc.LineText(line)
		end := len(leadingBlanks(text))
		if strings.HasPrefix(text[end:], marker) && !strings.HasPrefix(text[end:], marker+"/") {
			end += len(marker)
			end += len(leadingBlanks(text[end:]))
		}
		return replaceSpan(doc, line, line+end, prefix)
	})
}

// StartPrevLinePlusMultilinePreserve replaces the line with one line per
// fragment, each prefixed with the previous line's leading blanks.
// Fragments are separated by the "\n" that ends each of them. The text the
// line held after its blanks is kept and re-inserted at column
// preservePos of fragment line preserveLine; the cursor is left at column
// cursorPos of fragment line cursorLine. Columns count from the end of the
// copied blanks.
//
// This closes a freshly opened block comment. When the comment already has
// a closing marker further down, only the first fragment line is written.
func StartPrevLinePlusMultilinePreserve(fragments []string, cursorLine, cursorPos, preserveLine, preservePos int) *Action {
	name := fmt.Sprintf("StartPrevLinePlusMultilinePreserve(%q, %d, %d, %d, %d)",
		fragments, cursorLine, cursorPos, preserveLine, preservePos)
	return NewAction(name, func(doc Document, line int, _ Reason) bool {
		ws := prevLineIndent(doc, line)
		lines := strings.SplitAfter(strings.Join(fragments, ""), "\n")
		if commentClosed(doc, line) && len(lines) > 1 {
			lines = lines[:1]
		}

		kept := strings.TrimLeft(doc.LineText(line), " \t")
		var b strings.Builder
		starts := make([]int, len(lines))
		for i, l := range lines {
			l = strings.TrimSuffix(l, "\n")
			if i == preserveLine {
				pos := clampInt(preservePos, 0, len(l))
				l = l[:pos] + kept + l[pos:]
			}
			if i > 0 {
				b.WriteByte('\n')
			}
			starts[i] = b.Len()
			b.WriteString(ws)
			b.WriteString(l)
		}

		changed := replaceSpan(doc, line, doc.LineEnd(line), b.String())

		cl := clampInt(cursorLine, 0, len(lines)-1)
		lineStart := line + starts[cl]
		_ = doc.SetCursor(clampInt(lineStart+len(ws)+cursorPos, lineStart, doc.LineEnd(lineStart)))
		return changed
	})
}

// commentClosed reports whether the block comment containing the line
// starting at line is terminated before the end of the document.
func commentClosed(doc Document, line int) bool {
	for i := line; i < doc.Len(); i++ {
		if doc.LexicalState(i) != document.StateBlockComment {
			return true
		}
	}
	return doc.LexicalState(doc.Len()) != document.StateBlockComment
}

// StartPrevStmtPlus aligns the line with the start of the previous
// statement plus extra columns.
//
// When the nearest code above the line is an open bracket there is no
// previous statement in the block, and the line is indented indentLevel
// columns past the statement owning the bracket. With requireNewStmt set, a
// previous statement that is not terminated by ';' or '}' is treated as
// still running and the line aligns with its start. The top of a document
// yields extra columns.
func StartPrevStmtPlus(extra int, requireNewStmt bool, indentLevel int) *Action {
	name := fmt.Sprintf("StartPrevStmtPlus(%d, %t, %d)", extra, requireNewStmt, indentLevel)
	return NewAction(name, func(doc Document, line int, _ Reason) bool {
		return doc.ReplacePrefix(line, prevStmtIndent(doc, line, requireNewStmt, indentLevel)+spaces(extra))
	})
}

func prevStmtIndent(doc Document, line int, requireNewStmt bool, indentLevel int) string {
	t := doc.ScanBackward(line, nil)
	if t == document.NoOffset {
		return ""
	}
	c := doc.ByteAt(t)
	if document.IsOpenBrace(c) {
		return braceStmtIndent(doc, t) + spaces(indentLevel)
	}
	from := prevStmtFrom(doc, t)
	if requireNewStmt && c != ';' && c != '}' {
		from = line
	}
	s := stmtStart(doc, from)
	if s == document.NoOffset || s >= line {
		return ""
	}
	return lineIndent(doc, s)
}

// StartCurrStmtPlus aligns the line with the start of the statement it
// continues plus extra columns.
func StartCurrStmtPlus(extra int) *Action {
	return NewAction(fmt.Sprintf("StartCurrStmtPlus(%d)", extra), func(doc Document, line int, _ Reason) bool {
		// A line continuing a case label belongs to the label's statement.
		base := ""
		if s := scanStmtStart(doc, line, false); s != document.NoOffset && s < line {
			base = lineIndent(doc, s)
		}
		return doc.ReplacePrefix(line, base+spaces(extra))
	})
}

// StartStmtOfBracePlus indents the line extra columns past the statement
// that owns the line's enclosing bracket. With includeArrowBraces set, a
// "=>" or "=" ending the code above the line counts as the opener. Outside
// any bracket the line gets no indentation.
func StartStmtOfBracePlus(extra int, includeArrowBraces bool) *Action {
	name := fmt.Sprintf("StartStmtOfBracePlus(%d, %t)", extra, includeArrowBraces)
	return NewAction(name, func(doc Document, line int, _ Reason) bool {
		opener := document.NoOffset
		if includeArrowBraces {
			if a, ok := arrowOpener(doc, doc.ScanBackward(line, nil)); ok {
				opener = a
			}
		}
		if opener == document.NoOffset {
			opener = doc.EnclosingBrace(line)
		}
		if opener == document.NoOffset {
			return doc.ReplacePrefix(line, "")
		}
		return doc.ReplacePrefix(line, braceStmtIndent(doc, opener)+spaces(extra))
	})
}

// BracePlus aligns the line extra columns past the column of its
// enclosing bracket; with extra 1 the line starts right under the first
// character after the bracket. Outside any bracket the line gets no
// indentation.
func BracePlus(extra int) *Action {
	return NewAction(fmt.Sprintf("BracePlus(%d)", extra), func(doc Document, line int, _ Reason) bool {
		b := doc.EnclosingBrace(line)
		if b == document.NoOffset {
			return doc.ReplacePrefix(line, "")
		}
		ws := lineIndent(doc, b)
		col := b - doc.LineStart(b)
		return doc.ReplacePrefix(line, ws+spaces(col-len(ws)+extra))
	})
}

// StartLineOf aligns the line with the line of the statement beginning
// with keyword that it corresponds to, walking back over statements that
// begin with "else". It is used to line an else up with its if. Without a
// matching statement the line aligns with the previous statement.
func StartLineOf(keyword string) *Action {
	return NewAction(fmt.Sprintf("StartLineOf(%q)", keyword), func(doc Document, line int, _ Reason) bool {
		pos := line
		for {
			t := doc.ScanBackward(pos, nil)
			if t == document.NoOffset || document.IsOpenBrace(doc.ByteAt(t)) {
				break
			}
			s := stmtStart(doc, prevStmtFrom(doc, t))
			if s == document.NoOffset || s >= pos {
				break
			}
			w := wordAt(doc, s)
			if w == keyword {
				return doc.ReplacePrefix(line, lineIndent(doc, s))
			}
			if w != "else" {
				break
			}
			pos = s
		}
		return doc.ReplacePrefix(line, prevStmtIndent(doc, line, false, 0))
	})
}

func replaceSpan(doc Document, start, end int, text string) bool {
	if doc.Slice(start, end) == text {
		return false
	}
	return doc.ReplaceSpan(start, end, text) == nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
