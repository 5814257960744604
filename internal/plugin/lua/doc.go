// Package lua exposes the indenter to Lua scripts.
//
// This package wraps the gopher-lua library to provide:
//   - Sandboxed Lua state management
//   - An "indent" module backed by a formatter.Service
//   - Cancellable script execution
//
// # State
//
// The State type manages a Lua runtime with sandboxing:
//
//	state := lua.NewState(lua.WithLogger(logger))
//	defer state.Close()
//
//	if err := state.DoFile(ctx, "reindent.lua"); err != nil {
//	    return err
//	}
//
// # Sandbox
//
// The Sandbox restricts Lua code execution by:
//   - Opening only the base, table, string and math libraries
//   - Removing dofile, loadfile, load and loadstring
//   - Routing print to the structured logger
//
// # The indent module
//
//	indent.format(text)          -> formatted text, changed line count
//	indent.line(text, n, reason) -> new text, indentation of line n
//	indent.width()               -> current indent width
//	indent.read(path)            -> file contents (read capability)
//	indent.write(path, text)     -> nil (write capability)
//
// Line numbers are 1-based. reason is "enter" or "other" (the default).
package lua
