// Package script runs user supplied Lua snippets over extracted table rows.
package script

import (
	"context"
	"errors"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

const (
	sandboxTimeoutViolation = "sandbox timeout"
	defaultTimeoutMs        = 200
)

// newSandboxState opens only the base, string, table and math libraries and
// removes file loading from base.
func newSandboxState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openLib := func(name string, f lua.LGFunction) {
		L.Push(L.NewFunction(f))
		L.Push(lua.LString(name))
		L.Call(1, 0)
	}
	openLib(lua.BaseLibName, lua.OpenBase)
	openLib(lua.StringLibName, lua.OpenString)
	openLib(lua.TabLibName, lua.OpenTable)
	openLib(lua.MathLibName, lua.OpenMath)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

// compileSnippet compiles code as a bare expression when it is one and as a
// chunk otherwise. The chunk error is reported when neither compiles.
func compileSnippet(L *lua.LState, code string) (*lua.LFunction, error) {
	if fn, err := L.LoadString("return (" + code + ")"); err == nil {
		return fn, nil
	}
	return L.LoadString(code)
}

func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadline") || strings.Contains(msg, "context canceled")
}

func toLValue(L *lua.LState, v any) lua.LValue {
	switch x := v.(type) {
	case nil:
		return lua.LNil
	case string:
		return lua.LString(x)
	case int:
		return lua.LNumber(float64(x))
	case []string:
		tbl := L.NewTable()
		for i, s := range x {
			tbl.RawSetInt(i+1, lua.LString(s))
		}
		return tbl
	case map[string]string:
		tbl := L.NewTable()
		for k, s := range x {
			tbl.RawSetString(k, lua.LString(s))
		}
		return tbl
	default:
		return lua.LNil
	}
}

// cellString renders a scalar Lua value the way tostring would; nil and
// tables become "".
func cellString(v lua.LValue) string {
	switch v.Type() {
	case lua.LTString, lua.LTNumber, lua.LTBool:
		return v.String()
	default:
		return ""
	}
}
