package script

import (
	"fmt"
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// ModuleName is the name scripts use to reach the composer.
const ModuleName = "wysiwyg"

// safeModules may be required besides the composer module.
var safeModules = map[string]bool{
	"string": true,
	"table":  true,
	"math":   true,
}

// installSandbox removes loaders that reach the file system, limits
// require to known modules and sends print to out.
func installSandbox(L *lua.LState, out io.Writer) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	if pkg, ok := L.GetGlobal("package").(*lua.LTable); ok {
		L.SetField(pkg, "path", lua.LString(""))
		L.SetField(pkg, "cpath", lua.LString(""))
	}

	originalRequire := L.GetGlobal("require")
	L.SetGlobal("require", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if safeModules[name] {
			// Standard libraries are opened as globals, not preloaded.
			L.Push(L.GetGlobal(name))
			return 1
		}
		if name != ModuleName {
			L.RaiseError("module %q is not available", name)
			return 0
		}
		L.Push(originalRequire)
		L.Push(lua.LString(name))
		L.Call(1, 1)
		return 1
	}))

	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, n)
		for i := 1; i <= n; i++ {
			parts[i-1] = L.ToStringMeta(L.Get(i)).String()
		}
		fmt.Fprintln(out, strings.Join(parts, "\t"))
		return 0
	}))
}
