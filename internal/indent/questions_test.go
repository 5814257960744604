package indent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/indentree/internal/engine/document"
)

var (
	yes = NewAction("yes", func(Document, int, Reason) bool { return false })
	no  = NewAction("no", func(Document, int, Reason) bool { return false })
)

// ask evaluates q for line n of a document built from lines.
func ask(q *Question, lines []string, n int, reason Reason) bool {
	doc := document.New(strings.Join(lines, "\n"))
	return q.Test(doc, doc.LineOffset(n), reason)
}

func TestStartsWithKeyword(t *testing.T) {
	tests := []struct {
		text     string
		keyword  string
		excluded []string
		want     bool
	}{
		{"case 1 =>", "case", caseNotPattern, true},
		{"case(x) =>", "case", caseNotPattern, true},
		{"case", "case", caseNotPattern, true},
		{"case class Foo(x: Int)", "case", caseNotPattern, false},
		{"case  object Bar", "case", caseNotPattern, false},
		{"case classy =>", "case", caseNotPattern, true},
		{"caseSensitive = true;", "case", caseNotPattern, false},
		{"else {", "else", nil, true},
		{"else", "else", nil, true},
		{"elsewhere();", "else", nil, false},
		{"* text", "*", nil, true},
		{"*/", "*", nil, true},
		{"", "else", nil, false},
		{"x", "", nil, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, startsWithKeyword(tt.text, tt.keyword, tt.excluded), "%q starts with %q", tt.text, tt.keyword)
	}
}

func TestPrevLineQuestions(t *testing.T) {
	javadoc := PrevLineStartsJavaDocWithText(yes, no)
	assert.True(t, ask(javadoc, []string{"  /** text", ""}, 1, ReasonOther))
	assert.True(t, ask(javadoc, []string{"/** text", "", "  "}, 2, ReasonOther), "blank lines are skipped")
	assert.False(t, ask(javadoc, []string{"/**", ""}, 1, ReasonOther))
	assert.False(t, ask(javadoc, []string{"/*****", ""}, 1, ReasonOther))
	assert.False(t, ask(javadoc, []string{"/* text", ""}, 1, ReasonOther))
	assert.False(t, ask(javadoc, []string{""}, 0, ReasonOther))

	at := PrevLineStartsWith("@", yes, no)
	assert.True(t, ask(at, []string{"  @Test", "void f()"}, 1, ReasonOther))
	assert.False(t, ask(at, []string{"x @Test", "void f()"}, 1, ReasonOther))
	assert.False(t, ask(at, []string{"void f()"}, 0, ReasonOther))

	opened := PrevLineStartsComment(yes, no)
	assert.True(t, ask(opened, []string{"x; /*", "a"}, 1, ReasonOther))
	assert.False(t, ask(opened, []string{"/*", " a", "b"}, 2, ReasonOther))
	assert.False(t, ask(opened, []string{"a"}, 0, ReasonOther))
}

func TestCurrLineQuestions(t *testing.T) {
	emptyOrEnter := CurrLineEmptyOrEnterPress(yes, no)
	assert.True(t, ask(emptyOrEnter, []string{"x", "  "}, 1, ReasonOther))
	assert.True(t, ask(emptyOrEnter, []string{"x", "y"}, 1, ReasonEnterKeyPress))
	assert.False(t, ask(emptyOrEnter, []string{"x", "y"}, 1, ReasonOther))

	empty := CurrLineEmpty(yes, no)
	assert.True(t, ask(empty, []string{"\t "}, 0, ReasonEnterKeyPress))
	assert.False(t, ask(empty, []string{" y"}, 0, ReasonEnterKeyPress))

	closing := CurrLineStartsWithChar(")}", yes, no)
	assert.True(t, ask(closing, []string{"  }"}, 0, ReasonOther))
	assert.True(t, ask(closing, []string{"/* c */ )"}, 0, ReasonOther))
	assert.False(t, ask(closing, []string{"// }"}, 0, ReasonOther))
	assert.False(t, ask(closing, []string{"x }"}, 0, ReasonOther))
	assert.False(t, ask(closing, []string{""}, 0, ReasonOther))
}

func TestWingComment(t *testing.T) {
	q := CurrLineIsWingComment(yes, no)

	assert.True(t, ask(q, []string{"x = 1; // a", "       // b"}, 1, ReasonOther))
	assert.True(t, ask(q, []string{"x = 1; // a", "       // b", "       // c"}, 2, ReasonOther))
	assert.False(t, ask(q, []string{"x = 1; // a", "    // b"}, 1, ReasonOther), "misaligned")
	assert.False(t, ask(q, []string{"// a", "// b"}, 1, ReasonOther), "standalone block of comments")
	assert.False(t, ask(q, []string{"x = 1; // a", "       y"}, 1, ReasonOther))
	assert.False(t, ask(q, []string{"// a"}, 0, ReasonOther))
}

func TestStatementQuestions(t *testing.T) {
	newStmt := StartingNewStmt(yes, no)
	assert.True(t, ask(newStmt, []string{"x"}, 0, ReasonOther))
	assert.True(t, ask(newStmt, []string{"a;", "b"}, 1, ReasonOther))
	assert.True(t, ask(newStmt, []string{"a; // c", "/* d */", "b"}, 2, ReasonOther))
	assert.True(t, ask(newStmt, []string{"}", "b"}, 1, ReasonOther))
	assert.False(t, ask(newStmt, []string{"a +", "b"}, 1, ReasonOther))
	assert.False(t, ask(newStmt, []string{"s = \";\"", "b"}, 1, ReasonOther))

	after := StartAfterOpenBrace(yes, no)
	assert.True(t, ask(after, []string{"f(a,", "b"}, 1, ReasonOther))
	assert.False(t, ask(after, []string{"f(", "b"}, 1, ReasonOther))
	assert.False(t, ask(after, []string{"f( // a", "b"}, 1, ReasonOther))
	assert.False(t, ask(after, []string{"f(a)", "b"}, 1, ReasonOther))

	immed := StartImmedAfterOpenBrace(yes, no)
	assert.True(t, ask(immed, []string{"class A {", "x"}, 1, ReasonOther))
	assert.True(t, ask(immed, []string{"class A { // c", "", "x"}, 2, ReasonOther))
	assert.True(t, ask(immed, []string{"case 1 =>", "x"}, 1, ReasonOther))
	assert.True(t, ask(immed, []string{"val a =", "x"}, 1, ReasonOther))
	assert.False(t, ask(immed, []string{"a <=", "x"}, 1, ReasonOther))
	assert.False(t, ask(immed, []string{"a != ", "x"}, 1, ReasonOther))
	assert.False(t, ask(immed, []string{"{ }", "x"}, 1, ReasonOther))
	assert.False(t, ask(immed, []string{"x"}, 0, ReasonOther))
}

func TestInsideComment(t *testing.T) {
	q := InsideComment(yes, no)
	assert.False(t, ask(q, []string{"/* a", "b */"}, 0, ReasonOther))
	assert.True(t, ask(q, []string{"/* a", "b */"}, 1, ReasonOther))
	assert.False(t, ask(q, []string{"/* a */", "b"}, 1, ReasonOther))
	assert.False(t, ask(q, []string{"// /*", "b"}, 1, ReasonOther))
	assert.False(t, ask(q, []string{"s = \"/*\";", "b"}, 1, ReasonOther))
	assert.False(t, ask(q, []string{""}, 0, ReasonOther))
}
