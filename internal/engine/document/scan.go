package document

// ensureLex rebuilds the lexical model if an edit invalidated it.
func (d *Document) ensureLex() {
	if !d.lexValid {
		d.lex = lex(d.text)
		d.lexValid = true
	}
}

// LexicalState returns the state in effect before the byte at offset.
// Offsets are clamped, so the end of the document reports the state an
// unterminated comment or string leaves behind.
func (d *Document) LexicalState(offset int) LexicalState {
	d.ensureLex()
	return d.lex.before[d.clamp(offset)]
}

// IsCode reports whether the byte at offset is program text rather than
// comment or literal text.
func (d *Document) IsCode(offset int) bool {
	if offset < 0 || offset >= len(d.text) {
		return false
	}
	d.ensureLex()
	return d.lex.class[offset] == StateCode
}

// ScanBackward returns the nearest offset before offset holding a
// non-blank code byte for which pred returns true, or NoOffset.
// Comments and literals are skipped. A nil pred accepts any byte.
func (d *Document) ScanBackward(offset int, pred func(byte) bool) int {
	d.ensureLex()
	for i := d.clamp(offset) - 1; i >= 0; i-- {
		if d.lex.class[i] != StateCode || isSpace(d.text[i]) {
			continue
		}
		if pred == nil || pred(d.text[i]) {
			return i
		}
	}
	return NoOffset
}

// ScanForward returns the nearest offset at or after offset holding a
// non-blank code byte for which pred returns true, or NoOffset.
func (d *Document) ScanForward(offset int, pred func(byte) bool) int {
	d.ensureLex()
	for i := d.clamp(offset); i < len(d.text); i++ {
		if d.lex.class[i] != StateCode || isSpace(d.text[i]) {
			continue
		}
		if pred == nil || pred(d.text[i]) {
			return i
		}
	}
	return NoOffset
}

// PrevCode returns the nearest non-blank code byte before offset.
func (d *Document) PrevCode(offset int) int { return d.ScanBackward(offset, nil) }

// NextCode returns the nearest non-blank code byte at or after offset.
func (d *Document) NextCode(offset int) int { return d.ScanForward(offset, nil) }

// EnclosingBrace returns the offset of the nearest unmatched '{', '(' or
// '[' before offset, or NoOffset when offset is at top level. Nesting is
// counted across all bracket kinds, so mismatched pairs still balance.
func (d *Document) EnclosingBrace(offset int) int {
	return d.scanOpen(d.clamp(offset) - 1)
}

// MatchingOpen returns the open bracket matching the close bracket at
// offset, or NoOffset if offset is not a code close bracket or the bracket
// is unmatched.
func (d *Document) MatchingOpen(offset int) int {
	if !d.IsCode(offset) || !IsCloseBrace(d.text[offset]) {
		return NoOffset
	}
	return d.scanOpen(offset - 1)
}

func (d *Document) scanOpen(from int) int {
	d.ensureLex()
	depth := 0
	for i := from; i >= 0; i-- {
		if d.lex.class[i] != StateCode {
			continue
		}
		switch c := d.text[i]; {
		case IsCloseBrace(c):
			depth++
		case IsOpenBrace(c):
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return NoOffset
}

// IsOpenBrace reports whether c opens a bracket pair.
func IsOpenBrace(c byte) bool { return c == '{' || c == '(' || c == '[' }

// IsCloseBrace reports whether c closes a bracket pair.
func IsCloseBrace(c byte) bool { return c == '}' || c == ')' || c == ']' }

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
