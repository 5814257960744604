package lua

import (
	"fmt"
	"log/slog"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// Capability represents a permission that can be granted to scripts.
type Capability string

// Available capabilities.
const (
	CapabilityFileRead  Capability = "filesystem.read"
	CapabilityFileWrite Capability = "filesystem.write"
)

// Sandbox restricts Lua execution to safe operations.
type Sandbox struct {
	L      *lua.LState
	logger *slog.Logger

	capabilities map[Capability]bool
}

// NewSandbox creates a new sandbox for the Lua state.
func NewSandbox(L *lua.LState, logger *slog.Logger) *Sandbox {
	return &Sandbox{
		L:            L,
		logger:       logger,
		capabilities: make(map[Capability]bool),
	}
}

// Install sets up the sandbox restrictions.
func (s *Sandbox) Install() {
	// Remove functions that load code from outside the script.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.installSafePrint()
}

// installSafePrint sends print output to the logger instead of stdout.
func (s *Sandbox) installSafePrint() {
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		s.logger.Info(strings.Join(parts, "\t"), "source", "lua")
		return 0
	}))
}

// Grant enables a capability.
func (s *Sandbox) Grant(c Capability) {
	s.capabilities[c] = true
}

// HasCapability reports whether c was granted.
func (s *Sandbox) HasCapability(c Capability) bool {
	return s.capabilities[c]
}

// CheckCapability returns a *CapabilityError unless c was granted.
func (s *Sandbox) CheckCapability(c Capability) error {
	if !s.HasCapability(c) {
		return &CapabilityError{Capability: c}
	}
	return nil
}

// CapabilityError names the capability a script lacked.
type CapabilityError struct {
	Capability Capability
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("capability %q not granted", e.Capability)
}

func (e *CapabilityError) Unwrap() error {
	return ErrCapabilityDenied
}
