// Package script runs the user's Lua extension file.
//
// A script registers custom actions at load time with
// grapnel.action(name, fn); the registered functions are later invoked
// by binding a chord to the action name. The Lua state is owned by the
// processing goroutine and must not be shared.
package script

import (
	"errors"
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"
)

// Script errors.
var (
	// ErrClosed indicates the engine has been closed.
	ErrClosed = errors.New("script: engine closed")

	// ErrUnknownAction indicates no script registered the action.
	ErrUnknownAction = errors.New("script: unknown action")
)

// LoadError wraps a Lua load failure with the script path.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("script: load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Engine hosts the sandboxed Lua state.
//
// Not safe for concurrent use; all calls must come from the goroutine
// that created it.
type Engine struct {
	L       *lua.LState
	actions map[string]*lua.LFunction
	printer func(string)
	closed  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithPrinter redirects the script's print output. The default writes
// to stderr.
func WithPrinter(fn func(string)) Option {
	return func(e *Engine) {
		e.printer = fn
	}
}

// New creates a sandboxed engine. Only the base, table, string, and
// math libraries are opened; file and OS access is unavailable to
// scripts.
func New(opts ...Option) *Engine {
	e := &Engine{
		actions: make(map[string]*lua.LFunction),
		printer: func(s string) { fmt.Fprintln(os.Stderr, s) },
	}
	for _, opt := range opts {
		opt(e)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Base opens loaders that would reach the filesystem.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	L.SetGlobal("print", L.NewFunction(e.luaPrint))
	L.SetGlobal("grapnel", e.buildModule(L))

	e.L = L
	return e
}

// buildModule constructs the grapnel table exposed to scripts.
func (e *Engine) buildModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "action", L.NewFunction(e.luaAction))
	L.SetField(mod, "log", L.NewFunction(e.luaPrint))
	return mod
}

// luaAction implements grapnel.action(name, fn).
func (e *Engine) luaAction(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	if name == "" {
		L.ArgError(1, "action name must not be empty")
		return 0
	}
	e.actions[name] = fn
	return 0
}

// luaPrint concatenates arguments tab-separated and hands them to the
// printer, mirroring Lua's print.
func (e *Engine) luaPrint(L *lua.LState) int {
	top := L.GetTop()
	out := ""
	for i := 1; i <= top; i++ {
		if i > 1 {
			out += "\t"
		}
		out += L.ToStringMeta(L.Get(i)).String()
	}
	e.printer(out)
	return 0
}

// LoadFile executes the script at path, collecting its action
// registrations.
func (e *Engine) LoadFile(path string) error {
	if e.closed {
		return ErrClosed
	}
	if err := e.L.DoFile(path); err != nil {
		return &LoadError{Path: path, Err: err}
	}
	return nil
}

// LoadString executes inline Lua source. Used by tests.
func (e *Engine) LoadString(src string) error {
	if e.closed {
		return ErrClosed
	}
	if err := e.L.DoString(src); err != nil {
		return &LoadError{Path: "(inline)", Err: err}
	}
	return nil
}

// Actions returns the names of every registered action.
func (e *Engine) Actions() []string {
	names := make([]string, 0, len(e.actions))
	for name := range e.actions {
		names = append(names, name)
	}
	return names
}

// Has reports whether an action is registered.
func (e *Engine) Has(name string) bool {
	_, ok := e.actions[name]
	return ok
}

// Call invokes a registered action. A Lua runtime error is returned,
// not propagated as a panic.
func (e *Engine) Call(name string) error {
	if e.closed {
		return ErrClosed
	}
	fn, ok := e.actions[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
	if err := e.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}); err != nil {
		return fmt.Errorf("script: action %s: %w", name, err)
	}
	return nil
}

// Close releases the Lua state. Safe to call more than once.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.L.Close()
}
