package luatask

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/pablasso/trowel/internal/task"
)

// Function adapts one registered Lua function to task.Callable. It
// keeps a reference to the state that compiled the function; the state
// outlives discovery so the function stays invocable. Lua states are
// not goroutine safe, so neither is Function.
type Function struct {
	state      *lua.LState
	fn         *lua.LFunction
	params     []task.ParamSpec
	inspectErr error
}

// Params reports the parameter descriptors read from the function's
// compiled prototype.
func (f *Function) Params() ([]task.ParamSpec, error) {
	if f.inspectErr != nil {
		return nil, f.inspectErr
	}
	return f.params, nil
}

// Invoke pushes the bound arguments and calls the Lua function. Formal
// parameters are filled from the positional values in declaration
// order, the keyword parameter receives a table of the keyword values,
// and variadic overflow is passed as Lua varargs.
func (f *Function) Invoke(ctx context.Context, call task.BoundCall) error {
	L := f.state
	L.SetContext(ctx)

	args := make([]lua.LValue, 0, len(call.Positional)+1)
	pos := 0
	for _, p := range f.params {
		switch p.Kind {
		case task.Keyword:
			args = append(args, keywordTable(L, call.Keyword))
		case task.Variadic:
			for ; pos < len(call.Positional); pos++ {
				args = append(args, goToLua(call.Positional[pos]))
			}
		default:
			if pos >= len(call.Positional) {
				return fmt.Errorf("no value bound for parameter %s", p.Name)
			}
			args = append(args, goToLua(call.Positional[pos]))
			pos++
		}
	}

	L.Push(f.fn)
	for _, a := range args {
		L.Push(a)
	}
	if err := L.PCall(len(args), 0, nil); err != nil {
		return fmt.Errorf("task raised an error: %w", err)
	}
	return nil
}

// inspectProto derives parameter descriptors from a compiled prototype
// plus the declaration options. It returns an UninspectableError when
// the function carries no readable signature, and a plain error when
// the declaration options contradict the signature.
func inspectProto(fn *lua.LFunction, defaults map[string]any, kwargs bool) ([]task.ParamSpec, error) {
	if fn.IsG || fn.Proto == nil {
		return nil, &task.UninspectableError{Reason: "built-in function has no prototype"}
	}
	proto := fn.Proto
	n := int(proto.NumParameters)
	if len(proto.DbgLocals) < n {
		return nil, &task.UninspectableError{Reason: "prototype is missing parameter names"}
	}

	names := make([]string, n)
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		name := proto.DbgLocals[i].Name
		if seen[name] {
			return nil, fmt.Errorf("duplicate parameter name %s", name)
		}
		seen[name] = true
		names[i] = name
	}

	kwName := ""
	if kwargs {
		if n == 0 {
			return nil, fmt.Errorf("kwargs requires at least one parameter")
		}
		kwName = names[n-1]
		if _, ok := defaults[kwName]; ok {
			return nil, fmt.Errorf("kwargs parameter %s cannot have a default", kwName)
		}
	}
	for name := range defaults {
		if !seen[name] || name == kwName {
			return nil, fmt.Errorf("default given for unknown parameter %s", name)
		}
	}

	params := make([]task.ParamSpec, 0, n+1)
	optionalSeen := false
	for i, name := range names {
		if name == kwName && i == n-1 {
			params = append(params, task.ParamSpec{Name: name, Kind: task.Keyword})
			continue
		}
		if def, ok := defaults[name]; ok {
			optionalSeen = true
			params = append(params, task.ParamSpec{Name: name, Kind: task.Optional, Default: def})
			continue
		}
		if optionalSeen {
			return nil, fmt.Errorf("required parameter %s follows a defaulted one", name)
		}
		params = append(params, task.ParamSpec{Name: name, Kind: task.Required})
	}
	if proto.IsVarArg != 0 {
		params = append(params, task.ParamSpec{Name: "...", Kind: task.Variadic})
	}
	return params, nil
}

// keywordTable builds the table handed to the keyword parameter.
func keywordTable(L *lua.LState, kw map[string]any) *lua.LTable {
	tbl := L.NewTable()
	for k, v := range kw {
		tbl.RawSetString(k, goToLua(v))
	}
	return tbl
}

// goToLua converts a bound argument value. Binding produces strings and
// booleans only.
func goToLua(v any) lua.LValue {
	switch val := v.(type) {
	case string:
		return lua.LString(val)
	case bool:
		return lua.LBool(val)
	case nil:
		return lua.LNil
	default:
		return lua.LString(fmt.Sprintf("%v", val))
	}
}
