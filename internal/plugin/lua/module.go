package lua

import (
	"context"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/indentree/internal/engine/document"
	"github.com/dshills/indentree/internal/formatter"
	"github.com/dshills/indentree/internal/indent"
)

// ModuleName is the global the indent module is installed as.
const ModuleName = "indent"

// RegisterIndent installs the indent module backed by svc.
func RegisterIndent(s *State, svc *formatter.Service) {
	m := &module{svc: svc, sandbox: s.Sandbox()}
	s.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"format": m.format,
		"line":   m.line,
		"width":  m.width,
		"read":   m.read,
		"write":  m.write,
	})
}

type module struct {
	svc     *formatter.Service
	sandbox *Sandbox
}

// format(text) -> text, number of lines changed
func (m *module) format(L *lua.LState) int {
	text := L.CheckString(1)
	out, stats := m.svc.Format(text)
	L.Push(lua.LString(out))
	L.Push(lua.LNumber(stats.Changed))
	return 2
}

// line(text, n, reason) -> text, prefix
func (m *module) line(L *lua.LState) int {
	text := L.CheckString(1)
	n := L.CheckInt(2)
	reason := indent.ReasonOther
	switch r := L.OptString(3, "other"); r {
	case "enter":
		reason = indent.ReasonEnterKeyPress
	case "other":
	default:
		L.ArgError(3, `reason must be "enter" or "other"`)
		return 0
	}

	doc := document.New(text)
	if _, err := m.svc.IndentLine(doc, n-1, reason); err != nil {
		L.ArgError(2, err.Error())
		return 0
	}

	doc.Lock()
	lineText := doc.LineText(doc.LineOffset(n - 1))
	out := doc.Text()
	doc.Unlock()

	prefix := lineText[:len(lineText)-len(trimBlanks(lineText))]
	L.Push(lua.LString(out))
	L.Push(lua.LString(prefix))
	return 2
}

func trimBlanks(s string) string {
	for len(s) > 0 && (s[0] == ' ' || s[0] == '\t') {
		s = s[1:]
	}
	return s
}

// width() -> n
func (m *module) width(L *lua.LState) int {
	L.Push(lua.LNumber(m.svc.IndentWidth()))
	return 1
}

// read(path) -> text
func (m *module) read(L *lua.LState) int {
	path := L.CheckString(1)
	if err := m.sandbox.CheckCapability(CapabilityFileRead); err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	data, err := os.ReadFile(path)
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	L.Push(lua.LString(data))
	return 1
}

// write(path, text)
func (m *module) write(L *lua.LState) int {
	path := L.CheckString(1)
	text := L.CheckString(2)
	if err := m.sandbox.CheckCapability(CapabilityFileWrite); err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

// RunScript runs the script at path with the indent module installed.
func RunScript(ctx context.Context, svc *formatter.Service, path string, opts ...StateOption) error {
	s := NewState(opts...)
	defer s.Close()

	RegisterIndent(s, svc)
	return s.DoFile(ctx, path)
}
