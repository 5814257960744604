package document

import "unicode/utf8"

// LexicalState is the lexical context in effect at a document offset.
type LexicalState uint8

const (
	// StateCode is ordinary program text.
	StateCode LexicalState = iota

	// StateLineComment is the interior of a // comment.
	StateLineComment

	// StateBlockComment is the interior of a /* */ comment.
	StateBlockComment

	// StateString is the interior of a string or character literal.
	StateString
)

// String returns the state name.
func (s LexicalState) String() string {
	switch s {
	case StateCode:
		return "code"
	case StateLineComment:
		return "lineComment"
	case StateBlockComment:
		return "blockComment"
	case StateString:
		return "string"
	default:
		return "unknown"
	}
}

// lexModel is the classification of a text.
//
// class[i] is the class of byte i. before[i] is the state in effect before
// byte i is consumed, so before[i] of the '/' opening a comment is StateCode
// while class[i] is the comment state. before has one extra entry for the
// end of the text.
type lexModel struct {
	class  []LexicalState
	before []LexicalState
}

// lex classifies text. It never fails: unterminated strings end at the end
// of their line, unterminated block comments and triple-quoted strings run
// to the end of the text.
func lex(text []byte) lexModel {
	n := len(text)
	m := lexModel{
		class:  make([]LexicalState, n),
		before: make([]LexicalState, n+1),
	}

	state := StateCode
	triple := false

	// mark assigns class s to bytes [i, i+k) and records that the state
	// before each interior byte is s.
	mark := func(i, k int, s LexicalState) {
		for j := i; j < i+k && j < n; j++ {
			m.class[j] = s
			if j > i {
				m.before[j] = s
			}
		}
	}

	i := 0
	for i < n {
		m.before[i] = state
		c := text[i]

		switch state {
		case StateCode:
			switch {
			case c == '/' && i+1 < n && text[i+1] == '/':
				mark(i, 2, StateLineComment)
				state = StateLineComment
				i += 2
				continue
			case c == '/' && i+1 < n && text[i+1] == '*':
				mark(i, 2, StateBlockComment)
				state = StateBlockComment
				i += 2
				continue
			case c == '"':
				if i+2 < n && text[i+1] == '"' && text[i+2] == '"' {
					mark(i, 3, StateString)
					state = StateString
					triple = true
					i += 3
					continue
				}
				m.class[i] = StateString
				state = StateString
				triple = false
			case c == '\'':
				if k := charLiteralLen(text, i); k > 0 {
					mark(i, k, StateString)
					i += k
					continue
				}
				m.class[i] = StateCode
			default:
				m.class[i] = StateCode
			}
			i++

		case StateLineComment:
			if c == '\n' {
				m.class[i] = StateCode
				state = StateCode
			} else {
				m.class[i] = StateLineComment
			}
			i++

		case StateBlockComment:
			if c == '*' && i+1 < n && text[i+1] == '/' {
				mark(i, 2, StateBlockComment)
				state = StateCode
				i += 2
				continue
			}
			m.class[i] = StateBlockComment
			i++

		case StateString:
			if triple {
				if c == '"' && i+2 < n && text[i+1] == '"' && text[i+2] == '"' {
					mark(i, 3, StateString)
					state = StateCode
					triple = false
					i += 3
					continue
				}
				m.class[i] = StateString
				i++
				continue
			}
			switch c {
			case '\\':
				if i+1 < n && text[i+1] != '\n' {
					mark(i, 2, StateString)
					i += 2
					continue
				}
				m.class[i] = StateString
			case '"':
				m.class[i] = StateString
				state = StateCode
			case '\n':
				m.class[i] = StateCode
				state = StateCode
			default:
				m.class[i] = StateString
			}
			i++
		}
	}
	m.before[n] = state
	return m
}

// charLiteralLen returns the length of the character literal starting at
// the quote at i, or 0 if the quote does not open one (a Scala symbol such
// as 'foo, or a stray quote).
func charLiteralLen(text []byte, i int) int {
	n := len(text)
	if i+2 >= n {
		return 0
	}
	if text[i+1] == '\\' {
		// '\n', '\'', 'A'
		for j := i + 3; j < n && j <= i+8; j++ {
			switch text[j] {
			case '\'':
				return j - i + 1
			case '\n':
				return 0
			}
		}
		return 0
	}
	if text[i+1] == '\n' || text[i+1] == '\'' {
		return 0
	}
	_, w := utf8.DecodeRune(text[i+1:])
	if i+1+w < n && text[i+1+w] == '\'' {
		return w + 2
	}
	return 0
}
