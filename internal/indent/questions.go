package indent

import (
	"fmt"
	"strings"

	"github.com/dshills/indentree/internal/engine/document"
)

// InsideComment holds when the line starts inside a block comment.
func InsideComment(yes, no Rule) *Question {
	return NewQuestion("InsideComment", func(doc Document, line int, _ Reason) bool {
		return doc.LexicalState(line) == document.StateBlockComment
	}, yes, no)
}

// PrevLineStartsComment holds when the previous line opened the block
// comment the current line is in. The current line is known to be inside
// a comment, so the previous line opened it exactly when that line itself
// starts outside a comment.
func PrevLineStartsComment(yes, no Rule) *Question {
	return NewQuestion("PrevLineStartsComment", func(doc Document, line int, _ Reason) bool {
		p := prevLine(doc, line)
		if p == document.NoOffset {
			return false
		}
		return doc.LexicalState(p) != document.StateBlockComment
	}, yes, no)
}

// PrevLineStartsWith holds when the previous non-blank line begins with
// prefix after its leading blanks. The comparison is case-sensitive.
func PrevLineStartsWith(prefix string, yes, no Rule) *Question {
	return NewQuestion(fmt.Sprintf("PrevLineStartsWith(%q)", prefix), func(doc Document, line int, _ Reason) bool {
		text, ok := prevLineText(doc, line)
		return ok && strings.HasPrefix(text, prefix)
	}, yes, no)
}

// PrevLineStartsJavaDocWithText holds when the previous line opens a
// documentation comment and carries text after the opening marker, as in
// "/** Returns x." but not a bare "/**".
func PrevLineStartsJavaDocWithText(yes, no Rule) *Question {
	return NewQuestion("PrevLineStartsJavaDocWithText", func(doc Document, line int, _ Reason) bool {
		text, ok := prevLineText(doc, line)
		if !ok || !strings.HasPrefix(text, "/**") || strings.HasPrefix(text, "/**/") {
			return false
		}
		return strings.Trim(text[3:], " \t*") != ""
	}, yes, no)
}

// CurrLineEmptyOrEnterPress holds when the line is blank or indentation
// was triggered by an enter key press.
func CurrLineEmptyOrEnterPress(yes, no Rule) *Question {
	return NewQuestion("CurrLineEmptyOrEnterPress", func(doc Document, line int, reason Reason) bool {
		return reason == ReasonEnterKeyPress || isBlankLine(doc.LineText(line))
	}, yes, no)
}

// CurrLineEmpty holds when the line contains only blanks.
func CurrLineEmpty(yes, no Rule) *Question {
	return NewQuestion("CurrLineEmpty", func(doc Document, line int, _ Reason) bool {
		return isBlankLine(doc.LineText(line))
	}, yes, no)
}

// CurrLineIsWingComment holds when the line is a // comment that continues
// the trailing comment of a code line above it, aligned in the same column:
//
//	int x = 1;  // counts widgets
//	            // not gadgets
func CurrLineIsWingComment(yes, no Rule) *Question {
	return NewQuestion("CurrLineIsWingComment", func(doc Document, line int, _ Reason) bool {
		return isWingComment(doc, line)
	}, yes, no)
}

func isWingComment(doc Document, line int) bool {
	text := doc.LineText(line)
	col := len(leadingBlanks(text))
	if !strings.HasPrefix(text[col:], "//") || doc.LexicalState(line+col) != document.StateCode {
		return false
	}
	for p := line; p > 0; {
		p = doc.LineStart(p - 1)
		above := doc.LineText(p)
		if len(above) < col+2 || above[col:col+2] != "//" || doc.LexicalState(p+col) != document.StateCode {
			return false
		}
		if !isBlankLine(above[:col]) {
			return true
		}
	}
	return false
}

// CurrLineStartsWith holds when the first token of the line is keyword. A
// keyword ending in an identifier character must be followed by a
// non-identifier character, so "case" does not match "caseSensitive". When
// excluded words are given, the token after the keyword must not be one of
// them, which tells a pattern-match "case" from "case class".
func CurrLineStartsWith(keyword string, excluded []string, yes, no Rule) *Question {
	name := fmt.Sprintf("CurrLineStartsWith(%q)", keyword)
	if len(excluded) > 0 {
		name = fmt.Sprintf("CurrLineStartsWith(%q, not %s)", keyword, strings.Join(excluded, "|"))
	}
	return NewQuestion(name, func(doc Document, line int, _ Reason) bool {
		return startsWithKeyword(strings.TrimLeft(doc.LineText(line), " \t"), keyword, excluded)
	}, yes, no)
}

func startsWithKeyword(text, keyword string, excluded []string) bool {
	if keyword == "" || !strings.HasPrefix(text, keyword) {
		return false
	}
	rest := text[len(keyword):]
	if isIdentByte(keyword[len(keyword)-1]) && rest != "" && isIdentByte(rest[0]) {
		return false
	}
	next := firstWord(strings.TrimLeft(rest, " \t"))
	for _, x := range excluded {
		if next == x {
			return false
		}
	}
	return true
}

// CurrLineStartsWithChar holds when the first code character of the line,
// skipping blanks and comments, is one of chars.
func CurrLineStartsWithChar(chars string, yes, no Rule) *Question {
	return NewQuestion(fmt.Sprintf("CurrLineStartsWithChar(%q)", chars), func(doc Document, line int, _ Reason) bool {
		c := firstCode(doc, line)
		return c != document.NoOffset && strings.IndexByte(chars, doc.ByteAt(c)) >= 0
	}, yes, no)
}

// StartingNewStmt holds when the line begins a new statement: the nearest
// code character above it ends a statement or opens a block, or there is
// no code above it at all.
func StartingNewStmt(yes, no Rule) *Question {
	return NewQuestion("StartingNewStmt", func(doc Document, line int, _ Reason) bool {
		t := doc.ScanBackward(line, nil)
		if t == document.NoOffset {
			return true
		}
		switch doc.ByteAt(t) {
		case ';', '{', '}':
			return true
		}
		return false
	}, yes, no)
}

// StartAfterOpenBrace holds when the line starts inside an unmatched
// bracket that is followed by code on its own line, as the argument list in
// "foo(a,\n    b)". The line then aligns after the bracket.
func StartAfterOpenBrace(yes, no Rule) *Question {
	return NewQuestion("StartAfterOpenBrace", func(doc Document, line int, _ Reason) bool {
		b := doc.EnclosingBrace(line)
		if b == document.NoOffset {
			return false
		}
		n := doc.ScanForward(b+1, nil)
		return n != document.NoOffset && n < doc.LineEnd(b)
	}, yes, no)
}

// StartImmedAfterOpenBrace holds when the last code token above the line
// is the line's enclosing open bracket, or a "=>" or "=" that opens an
// indented body.
func StartImmedAfterOpenBrace(yes, no Rule) *Question {
	return NewQuestion("StartImmedAfterOpenBrace", func(doc Document, line int, _ Reason) bool {
		p := doc.ScanBackward(line, nil)
		if p == document.NoOffset {
			return false
		}
		if document.IsOpenBrace(doc.ByteAt(p)) {
			return doc.EnclosingBrace(line) == p
		}
		_, ok := arrowOpener(doc, p)
		return ok
	}, yes, no)
}
