package script

import (
	lua "github.com/yuin/gopher-lua"
)

// sandbox restricts a Lua state to safe operations and meters the host
// calls made by one top-level call.
type sandbox struct {
	L *lua.LState

	callLimit int
	calls     int
}

func newSandbox(L *lua.LState, callLimit int) *sandbox {
	return &sandbox{L: L, callLimit: callLimit}
}

// openSafeLibraries opens the base, table, string and math libraries.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// install removes the loaders of the base library and replaces require
// with one serving only the libraries already open and the ui module.
func (s *sandbox) install() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "module"} {
		s.L.SetGlobal(name, lua.LNil)
	}

	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		switch name {
		case "string", "table", "math", uiModule:
			L.Push(L.GetGlobal(name))
			return 1
		}
		L.RaiseError("module %q is not available", name)
		return 0
	}))
}

// reset starts a new metering period.
func (s *sandbox) reset() {
	s.calls = 0
}

// charge counts one host call and reports whether the limit is exceeded.
func (s *sandbox) charge() bool {
	if s.callLimit <= 0 {
		return false
	}
	s.calls++
	return s.calls > s.callLimit
}

// exceeded reports whether the current period went over the limit.
func (s *sandbox) exceeded() bool {
	return s.callLimit > 0 && s.calls > s.callLimit
}
