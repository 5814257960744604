// Package indent implements the indentation decision tree.
//
// An Indenter owns one tree of rules built for a fixed indent width. A rule
// is either a Question, which tests the document and continues with its Yes
// or No child, or an Action, which rewrites the whitespace prefix of the
// current line and ends the walk. Exactly one action runs per Indent call.
//
// The root question asks whether the current line starts inside a block
// comment. Its Yes child is the comment subtree, which handles comment
// continuation stars and documentation-comment padding; its No child is the
// code subtree, which handles closing brackets, block openers, statement
// continuation and the else/case keywords.
//
// Basic usage:
//
//	in, err := indent.New(2)
//	if err != nil {
//	    return err
//	}
//
//	doc := document.New("class Foo {\nint x = 1;", document.WithCursor(12))
//	res := in.Indent(doc, indent.ReasonOther)
//	// doc.Text() == "class Foo {\n  int x = 1;"
//
// The tree keeps no per-call state, so one Indenter can serve any number of
// documents. Callers hold the document lock while Indent runs; Reconfigure
// must not overlap an Indent call.
package indent
