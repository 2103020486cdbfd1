// Package luatask loads task-definition files written in Lua. Each
// file runs in an isolated interpreter state and registers its tasks
// through the task and group globals; the declared functions become
// invocable callables.
package luatask

import (
	"errors"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/pablasso/trowel/internal/discover"
	"github.com/pablasso/trowel/internal/task"
)

// Loader runs task files in isolated Lua states. Each loaded file keeps
// its state open so the functions it declared stay invocable for the
// rest of the run; Close releases them all. A Loader is not safe for
// concurrent use.
type Loader struct {
	states []*lua.LState
}

// NewLoader returns an empty loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Close shuts down every state the loader opened. Tasks loaded by this
// loader must not be invoked afterwards.
func (l *Loader) Close() {
	for _, L := range l.states {
		L.Close()
	}
	l.states = nil
}

// Load executes one task file and reports the tasks it registered, in
// registration order.
func (l *Loader) Load(path string) ([]discover.Declared, error) {
	L := newState()
	c := &collector{state: L}
	L.SetGlobal("task", L.NewFunction(c.registerTask))
	L.SetGlobal("group", L.NewFunction(c.enterGroup))

	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, err
	}
	l.states = append(l.states, L)
	return c.decls, nil
}

// newState opens a state with a restricted library set.
func newState() *lua.LState {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true, // opened selectively below
	})

	// Base library (print, type, pairs, ipairs, etc.) plus safe helpers.
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Intentionally not opened:
	// - io (file system access)
	// - os (system calls, execute)
	// - debug (breaks signature inspection guarantees)
	// - package (can load arbitrary modules)
	return L
}

// collector accumulates the registrations made while one file executes.
type collector struct {
	state  *lua.LState
	groups []string
	decls  []discover.Declared
}

// registerTask implements the task(name, [opts,] fn) global.
func (c *collector) registerTask(L *lua.LState) int {
	name := L.CheckString(1)
	var opts *lua.LTable
	var fn *lua.LFunction
	switch L.GetTop() {
	case 2:
		fn = L.CheckFunction(2)
	case 3:
		opts = L.CheckTable(2)
		fn = L.CheckFunction(3)
	default:
		L.RaiseError("task expects (name, fn) or (name, opts, fn)")
	}
	if name == "" {
		L.ArgError(1, "task name must not be empty")
	}

	doc := ""
	defaults := map[string]any{}
	kwargs := false
	if opts != nil {
		doc, defaults, kwargs = parseOptions(L, opts)
	}

	callable := &Function{state: c.state, fn: fn}
	params, err := inspectProto(fn, defaults, kwargs)
	var uerr *task.UninspectableError
	switch {
	case err == nil:
		callable.params = params
	case errors.As(err, &uerr):
		// A signature that cannot be read is not a declaration
		// mistake; it surfaces when the walker builds the task.
		callable.inspectErr = err
	default:
		L.RaiseError("task %s: %s", name, err)
	}

	c.decls = append(c.decls, discover.Declared{
		Name: c.qualified(name),
		Doc:  doc,
		Fn:   callable,
	})
	return 0
}

// enterGroup implements the group(name, fn) global. Tasks registered
// inside fn carry the group name as a namespace segment; groups nest.
func (c *collector) enterGroup(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	if name == "" {
		L.ArgError(1, "group name must not be empty")
	}

	c.groups = append(c.groups, name)
	defer func() {
		c.groups = c.groups[:len(c.groups)-1]
	}()

	if err := L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}); err != nil {
		L.RaiseError("%s", err)
	}
	return 0
}

func (c *collector) qualified(name string) string {
	if len(c.groups) == 0 {
		return name
	}
	return strings.Join(c.groups, ".") + "." + name
}

// parseOptions reads doc, defaults, and kwargs from the declaration
// options table, raising on malformed values.
func parseOptions(L *lua.LState, opts *lua.LTable) (string, map[string]any, bool) {
	doc := ""
	if v := L.GetField(opts, "doc"); v != lua.LNil {
		s, ok := v.(lua.LString)
		if !ok {
			L.RaiseError("doc must be a string")
		}
		doc = string(s)
	}

	defaults := map[string]any{}
	if v := L.GetField(opts, "defaults"); v != lua.LNil {
		tbl, ok := v.(*lua.LTable)
		if !ok {
			L.RaiseError("defaults must be a table")
		}
		tbl.ForEach(func(k, val lua.LValue) {
			key, ok := k.(lua.LString)
			if !ok {
				L.RaiseError("defaults keys must be parameter names")
			}
			defaults[string(key)] = defaultValue(L, string(key), val)
		})
	}

	kwargs := false
	if v := L.GetField(opts, "kwargs"); v != lua.LNil {
		b, ok := v.(lua.LBool)
		if !ok {
			L.RaiseError("kwargs must be a boolean")
		}
		kwargs = bool(b)
	}
	return doc, defaults, kwargs
}

// defaultValue converts a declared default. Strings and numbers become
// the string the binder hands back; booleans enable the flag shorthand.
func defaultValue(L *lua.LState, name string, v lua.LValue) any {
	switch val := v.(type) {
	case lua.LString:
		return string(val)
	case lua.LNumber:
		return val.String()
	case lua.LBool:
		return bool(val)
	default:
		L.RaiseError("default for %s must be a string, number, or boolean", name)
		return nil
	}
}
