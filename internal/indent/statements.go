package indent

import "github.com/dshills/indentree/internal/engine/document"

// Statements are found lexically. A statement ends at ';' or '}' and
// begins after the previous ';', '}', unmatched '{', or case/default
// label colon at the same nesting depth. Balanced (), [] and {} groups are
// skipped as a unit, and an unmatched '(' or '[' is scanned past so an
// argument list spanning lines stays part of its statement.

func isStmtScanByte(c byte) bool {
	switch c {
	case ';', '{', '}', '(', ')', '[', ']', ':':
		return true
	}
	return false
}

// stmtStart returns the first code byte of the statement that contains
// the position just before from, or NoOffset if the document holds no code
// before from.
func stmtStart(doc Document, from int) int {
	return scanStmtStart(doc, from, true)
}

func scanStmtStart(doc Document, from int, labels bool) int {
	pos := from
	for {
		q := doc.ScanBackward(pos, isStmtScanByte)
		if q == document.NoOffset {
			return doc.ScanForward(0, nil)
		}
		switch doc.ByteAt(q) {
		case ')', ']':
			if m := doc.MatchingOpen(q); m != document.NoOffset {
				pos = m
				continue
			}
			pos = q
			continue
		case '(', '[':
			pos = q
			continue
		case ':':
			if !labels || !isLabelColon(doc, q) {
				pos = q
				continue
			}
		}
		// ';', '}', an unmatched '{', or a label colon
		return doc.ScanForward(q+1, nil)
	}
}

// isLabelColon reports whether the colon at q ends a case or default label.
func isLabelColon(doc Document, q int) bool {
	if doc.ByteAt(q-1) == ':' || doc.ByteAt(q+1) == ':' {
		return false
	}
	w := wordAt(doc, scanStmtStart(doc, q, false))
	return w == "case" || w == "default"
}

// prevStmtFrom returns the position to start a statement scan from for the
// statement ended by the code byte at t. A '}' terminator hands the scan
// to its matching open brace so the block is skipped as a unit.
func prevStmtFrom(doc Document, t int) int {
	switch doc.ByteAt(t) {
	case ';':
		return t
	case '}':
		if m := doc.MatchingOpen(t); m != document.NoOffset {
			return m
		}
		return t
	}
	return t + 1
}

// braceStmtIndent returns the indentation of the line on which the
// statement owning the opener at brace begins.
func braceStmtIndent(doc Document, brace int) string {
	s := stmtStart(doc, brace)
	if s == document.NoOffset || s > brace {
		return lineIndent(doc, brace)
	}
	return lineIndent(doc, s)
}

// arrowOpener reports whether the code byte at p ends a "=>" or a plain
// "=" that opens an indented body on the following lines, and returns the
// offset of the token's first byte.
func arrowOpener(doc Document, p int) (int, bool) {
	if p == document.NoOffset {
		return document.NoOffset, false
	}
	switch doc.ByteAt(p) {
	case '>':
		if p > 0 && doc.ByteAt(p-1) == '=' && doc.IsCode(p-1) {
			return p - 1, true
		}
	case '=':
		switch doc.ByteAt(p - 1) {
		case '=', '!', '<', '>', '+', '-', '*', '/', '%', '&', '|', '^', ':':
			return document.NoOffset, false
		}
		return p, true
	}
	return document.NoOffset, false
}
