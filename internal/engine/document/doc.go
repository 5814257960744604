// Package document provides the text document that the indentation engine
// queries and edits.
//
// A Document stores UTF-8 text together with a cursor offset and a lazily
// maintained lexical model. The lexical model classifies every byte as code,
// line comment, block comment or string literal using Java/Scala lexical
// rules, which is enough to answer the questions an indenter asks without
// building a syntax tree:
//
//   - Which lexical state is in effect at an offset?
//   - What is the nearest code token before or after an offset?
//   - Which unmatched bracket encloses an offset?
//
// Basic usage:
//
//	doc := document.New("class Foo {\nint x;\n}")
//	doc.Lock()
//	defer doc.Unlock()
//
//	ls := doc.LineOffset(1)
//	brace := doc.EnclosingBrace(ls) // offset of '{'
//	doc.ReplacePrefix(ls, "  ")
//
// Offsets are byte offsets. Queries that cannot find an anchor return
// NoOffset instead of failing, so malformed or unbalanced text is always
// answerable.
//
// Thread Safety:
//
// Document methods do not synchronize. Callers that share a document across
// goroutines hold the document's exclusive lock (Lock/Unlock) for the
// duration of a query or edit sequence.
package document
