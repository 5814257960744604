package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

// decodeFunc parses one settings document. Failures are *ParseError
// values whose Path is filled in by the caller.
type decodeFunc func(data []byte) (map[string]any, error)

// loadSections reads path through fsys, decodes it and checks that every
// top-level value is a section. A missing file yields nil, nil; an empty
// one yields an empty map.
func loadSections(fsys FileSystem, path string, decode decodeFunc) (map[string]any, error) {
	data, err := fsys.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	m, err := decode(data)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, err
	}
	if m == nil {
		m = map[string]any{}
	}

	for _, name := range Sections(m) {
		if _, ok := m[name].(map[string]any); !ok {
			return nil, &ParseError{
				Path:    path,
				Section: name,
				Message: fmt.Sprintf("expected a section, got %T", m[name]),
			}
		}
	}
	return m, nil
}

// Sections returns the top-level keys of a settings map, sorted.
func Sections(m map[string]any) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// UnknownSections returns the top-level keys of m missing from known,
// sorted.
func UnknownSections(m map[string]any, known []string) []string {
	var unknown []string
	for _, name := range Sections(m) {
		if !slices.Contains(known, name) {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// ParseError reports a settings file that could not be decoded, or whose
// shape is wrong.
type ParseError struct {
	Path string
	// Line and Column are 1-based; zero when the decoder gave no position.
	Line   int
	Column int
	// Section names the offending top-level key for shape errors.
	Section string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("config ")
	b.WriteString(e.Path)
	switch {
	case e.Section != "":
		fmt.Fprintf(&b, " section %q", e.Section)
	case e.Line > 0 && e.Column > 0:
		fmt.Fprintf(&b, ":%d:%d", e.Line, e.Column)
	case e.Line > 0:
		fmt.Fprintf(&b, ":%d", e.Line)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
