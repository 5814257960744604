package lua

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"

	"github.com/dshills/indentree/internal/config"
	"github.com/dshills/indentree/internal/formatter"
	"github.com/dshills/indentree/internal/logging"
)

func newService(t *testing.T) *formatter.Service {
	t.Helper()
	svc, err := formatter.New(config.Default(), formatter.WithLogger(logging.Discard()))
	if err != nil {
		t.Fatalf("formatter.New() error = %v", err)
	}
	return svc
}

func newState(t *testing.T, opts ...StateOption) *State {
	t.Helper()
	opts = append([]StateOption{WithLogger(logging.Discard())}, opts...)
	s := NewState(opts...)
	t.Cleanup(s.Close)
	RegisterIndent(s, newService(t))
	return s
}

func TestSandboxRemovesLoaders(t *testing.T) {
	s := newState(t)

	for _, fn := range []string{"dofile", "loadfile", "load", "loadstring"} {
		if v := s.GetGlobal(fn); v != glua.LNil {
			t.Errorf("%s should be removed, got %T", fn, v)
		}
	}
	for _, lib := range []string{"io", "os", "debug"} {
		if v := s.GetGlobal(lib); v != glua.LNil {
			t.Errorf("%s library should not be opened", lib)
		}
	}
}

func TestPrintGoesToLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Options{Format: logging.FormatJSON, Writer: &buf})
	s := NewState(WithLogger(logger))
	defer s.Close()

	if err := s.DoString(context.Background(), `print("hello", 42)`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"msg":"hello\t42"`) {
		t.Errorf("log output = %q", buf.String())
	}
}

func TestIndentFormat(t *testing.T) {
	s := newState(t)

	err := s.DoString(context.Background(), `
		out, changed = indent.format("if (a) {\nb();\n}")
		w = indent.width()
	`)
	if err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	if got := s.GetGlobal("out").String(); got != "if (a) {\n  b();\n}" {
		t.Errorf("out = %q", got)
	}
	if got := s.GetGlobal("changed"); got != glua.LNumber(1) {
		t.Errorf("changed = %v, want 1", got)
	}
	if got := s.GetGlobal("w"); got != glua.LNumber(2) {
		t.Errorf("width = %v, want 2", got)
	}
}

func TestIndentLine(t *testing.T) {
	s := newState(t)

	err := s.DoString(context.Background(), `
		out, prefix = indent.line("class A {\nint x;\n}", 2)
		enter_out = indent.line("/**\n", 2, "enter")
	`)
	if err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	if got := s.GetGlobal("out").String(); got != "class A {\n  int x;\n}" {
		t.Errorf("out = %q", got)
	}
	if got := s.GetGlobal("prefix").String(); got != "  " {
		t.Errorf("prefix = %q", got)
	}
	if got := s.GetGlobal("enter_out").String(); got != "/**\n * " {
		t.Errorf("enter_out = %q", got)
	}
}

func TestIndentLineErrors(t *testing.T) {
	s := newState(t)

	tests := []string{
		`indent.line("x", 5)`,
		`indent.line("x", 1, "sideways")`,
		`indent.format()`,
	}
	for _, code := range tests {
		if err := s.DoString(context.Background(), code); err == nil {
			t.Errorf("DoString(%q) expected error", code)
		}
	}
}

func TestFileCapabilities(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "A.java")
	if err := os.WriteFile(path, []byte("{\nx;\n}"), 0o644); err != nil {
		t.Fatal(err)
	}
	script := `indent.write(path, (indent.format(indent.read(path))))`

	denied := newState(t)
	denied.L.SetGlobal("path", glua.LString(path))
	err := denied.DoString(context.Background(), script)
	if err == nil || !strings.Contains(err.Error(), string(CapabilityFileRead)) {
		t.Fatalf("expected capability error, got %v", err)
	}

	granted := newState(t, WithCapabilities(CapabilityFileRead, CapabilityFileWrite))
	granted.L.SetGlobal("path", glua.LString(path))
	if err := granted.DoString(context.Background(), script); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "{\n  x;\n}" {
		t.Errorf("file = %q", data)
	}
}

func TestCapabilityError(t *testing.T) {
	err := error(&CapabilityError{Capability: CapabilityFileWrite})
	if !errors.Is(err, ErrCapabilityDenied) {
		t.Error("CapabilityError should match ErrCapabilityDenied")
	}
}

func TestRunScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "check.lua")
	code := `assert(indent.format("{\nx;\n}") == "{\n  x;\n}")`
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := RunScript(context.Background(), newService(t), path, WithLogger(logging.Discard())); err != nil {
		t.Fatalf("RunScript() error = %v", err)
	}
}

func TestRunScriptCancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loop.lua")
	if err := os.WriteFile(path, []byte(`while true do end`), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := RunScript(ctx, newService(t), path, WithLogger(logging.Discard()))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("RunScript() error = %v, want deadline exceeded", err)
	}
}

func TestClosedState(t *testing.T) {
	s := NewState(WithLogger(logging.Discard()))
	s.Close()
	s.Close()

	if err := s.DoString(context.Background(), "x = 1"); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() on closed state error = %v", err)
	}
}
