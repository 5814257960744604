package formatter

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/indentree/internal/config"
	"github.com/dshills/indentree/internal/engine/document"
	"github.com/dshills/indentree/internal/indent"
	"github.com/dshills/indentree/internal/logging"
)

func newService(t *testing.T, mutate func(*config.Config)) *Service {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	s, err := New(cfg, WithLogger(logging.Discard()))
	require.NoError(t, err)
	return s
}

func join(lines ...string) string { return strings.Join(lines, "\n") }

func TestFormat(t *testing.T) {
	s := newService(t, nil)

	in := join(
		"class A {",
		"void f(int a,",
		"int b) {",
		"switch (a) {",
		"case 1:",
		"b++;",
		"break;",
		"case 2:",
		"b--;",
		"}",
		"}",
		"}",
	)
	want := join(
		"class A {",
		"  void f(int a,",
		"         int b) {",
		"    switch (a) {",
		"      case 1:",
		"        b++;",
		"        break;",
		"      case 2:",
		"        b--;",
		"    }",
		"  }",
		"}",
	)

	got, stats := s.Format(in)
	assert.Equal(t, want, got)
	assert.Equal(t, 12, stats.Lines)
	assert.Equal(t, 10, stats.Changed)

	again, stats := s.Format(got)
	assert.Equal(t, want, again)
	assert.Zero(t, stats.Changed)
}

func TestFormat_CommentsAndBlankLines(t *testing.T) {
	s := newService(t, nil)

	got, stats := s.Format(join(
		"class A {",
		"/**",
		"* Doc.",
		"*/",
		"   ",
		"int x;",
		"}",
	))
	assert.Equal(t, join(
		"class A {",
		"  /**",
		"   * Doc.",
		"   */",
		"",
		"  int x;",
		"}",
	), got)
	assert.Equal(t, 2, stats.CommentLines)
}

func TestFormat_SkipsLinesInsideStrings(t *testing.T) {
	s := newService(t, nil)

	in := join(
		"class A {",
		`String s = """`,
		"   keep",
		`""";`,
		"}",
	)
	got, stats := s.Format(in)

	assert.Contains(t, got, "\n   keep\n")
	assert.Equal(t, 2, stats.Skipped)
}

func TestFormat_Tabs(t *testing.T) {
	s := newService(t, func(c *config.Config) {
		c.Indent.Width = 4
		c.Indent.Tabs = true
	})

	in := join("class A {", "void f() {", "\t\t  x();", "}", "}")
	got, _ := s.Format(in)
	assert.Equal(t, join("class A {", "\tvoid f() {", "\t\tx();", "\t}", "}"), got)

	again, stats := s.Format(got)
	assert.Equal(t, got, again)
	assert.Zero(t, stats.Changed)
}

func TestFormat_ArgumentsAfterDanglingParen(t *testing.T) {
	s := newService(t, nil)

	got, stats := s.Format(join("foo(", "a,", "b,", "c);"))
	assert.Equal(t, join("foo(", "  a,", "  b,", "  c);"), got)
	assert.Equal(t, 3, stats.Changed)
}

func TestIndentLine_TabsLeavesOtherLines(t *testing.T) {
	s := newService(t, func(c *config.Config) {
		c.Indent.Width = 4
		c.Indent.Tabs = true
	})

	doc := document.New(join("class A {", "int x;", "    int y;", "}"))
	res, err := s.IndentLine(doc, 1, indent.ReasonOther)
	require.NoError(t, err)
	assert.True(t, res.EditApplied)
	assert.Equal(t, join("class A {", "\tint x;", "    int y;", "}"), doc.Text())

	// Lines above the target are expanded while the rules run and must
	// come back unchanged.
	doc = document.New(join("class A {", "    int x;", "int y;", "  }"))
	res, err = s.IndentLine(doc, 2, indent.ReasonOther)
	require.NoError(t, err)
	assert.True(t, res.EditApplied)
	assert.Equal(t, join("class A {", "    int x;", "\tint y;", "  }"), doc.Text())

	res, err = s.IndentLine(doc, 2, indent.ReasonOther)
	require.NoError(t, err)
	assert.False(t, res.EditApplied)
	assert.Equal(t, join("class A {", "    int x;", "\tint y;", "  }"), doc.Text())
}

func TestIndentLine(t *testing.T) {
	s := newService(t, nil)
	doc := document.New(join("if (a) {", "b();", "}"))

	res, err := s.IndentLine(doc, 1, indent.ReasonOther)
	require.NoError(t, err)
	assert.True(t, res.EditApplied)
	assert.Equal(t, join("if (a) {", "  b();", "}"), doc.Text())

	_, err = s.IndentLine(doc, 3, indent.ReasonOther)
	assert.ErrorIs(t, err, ErrLineOutOfRange)

	_, err = s.IndentLine(nil, 0, indent.ReasonOther)
	assert.ErrorIs(t, err, ErrNilDocument)
}

func TestIndentRange(t *testing.T) {
	s := newService(t, nil)
	doc := document.New(join("if (a) {", "b();", "c();", "}"))

	stats, err := s.IndentRange(doc, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, Stats{Lines: 1, Changed: 1}, stats)
	assert.Equal(t, join("if (a) {", "  b();", "c();", "}"), doc.Text())

	_, err = s.IndentRange(doc, 2, 1)
	assert.ErrorIs(t, err, ErrLineOutOfRange)
	_, err = s.IndentRange(doc, 0, 4)
	assert.ErrorIs(t, err, ErrLineOutOfRange)
}

func TestIndentRange_KeepsCursorOnItsText(t *testing.T) {
	s := newService(t, nil)
	text := join("if (a) {", "b();", "}")
	doc := document.New(text, document.WithCursor(strings.Index(text, "();")))

	_, err := s.IndentRange(doc, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, "();", doc.Slice(doc.Cursor(), doc.Cursor()+3))
}

func TestReconfigure(t *testing.T) {
	s := newService(t, nil)
	assert.Equal(t, 2, s.IndentWidth())

	cfg := config.Default()
	cfg.Indent.Width = 4
	require.NoError(t, s.Reconfigure(cfg))
	assert.Equal(t, 4, s.IndentWidth())
	assert.Same(t, cfg, s.Config())

	bad := config.Default()
	bad.Indent.Width = -1
	err := s.Reconfigure(bad)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Equal(t, 4, s.IndentWidth())

	got, _ := s.Format(join("{", "x;", "}"))
	assert.Equal(t, join("{", "    x;", "}"), got)
}

func TestReconfigure_AutoCloseComments(t *testing.T) {
	s := newService(t, func(c *config.Config) { c.Indent.AutoCloseComments = true })
	doc := document.New(join("/**", ""), document.WithCursor(4))

	_, err := s.IndentLine(doc, 1, indent.ReasonEnterKeyPress)
	require.NoError(t, err)
	assert.Equal(t, join("/**", " * ", " */"), doc.Text())
	assert.Equal(t, 7, doc.Cursor())
}

func TestConcurrentFormatAndReconfigure(t *testing.T) {
	s := newService(t, nil)
	in := join("{", "x;", "}")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				cfg := config.Default()
				cfg.Indent.Width = 2 + i%4
				assert.NoError(t, s.Reconfigure(cfg))
				return
			}
			got, _ := s.Format(in)
			assert.True(t, strings.HasPrefix(got, "{\n  "), got)
		}()
	}
	wg.Wait()
}
