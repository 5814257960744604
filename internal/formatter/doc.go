// Package formatter indents whole documents, line ranges and single lines
// with a shared decision tree.
//
// A Service owns one indenter built from a *config.Config. Indentation
// calls share the tree under a read lock; Reconfigure builds a replacement
// and swaps it in under the write lock, so a rebuild never overlaps an
// in-flight call. Every call also holds the document's own lock.
package formatter
