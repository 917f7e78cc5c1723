package js

import (
	"fmt"
	"io"
	"strings"

	"github.com/dop251/goja"

	"tabula/pkg/layout"
)

// consoleAPI backs the script console. Items are printed as a short
// description instead of "[object Object]".
type consoleAPI struct {
	stdout, stderr io.Writer
	scene          *sceneContext
}

func (c *consoleAPI) register(vm *goja.Runtime) {
	console := vm.NewObject()
	console.Set("log", c.printer(c.stdout, ""))
	console.Set("warn", c.printer(c.stderr, "WARN:"))
	console.Set("error", c.printer(c.stderr, "ERROR:"))
	vm.Set("console", console)
}

func (c *consoleAPI) printer(w io.Writer, prefix string) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		parts := make([]string, 0, len(call.Arguments)+1)
		if prefix != "" {
			parts = append(parts, prefix)
		}
		for _, arg := range call.Arguments {
			parts = append(parts, c.describe(arg))
		}
		fmt.Fprintln(w, strings.Join(parts, " "))
		return goja.Undefined()
	}
}

func (c *consoleAPI) describe(v goja.Value) string {
	var node layout.Node
	if c.scene != nil {
		node = c.scene.unwrap(v)
	}
	switch n := node.(type) {
	case nil:
		return v.String()
	case *layout.Table:
		return fmt.Sprintf("table(%d children, %dx%d)", n.Len(), n.Columns(), n.Rows())
	default:
		b := n.Bounds()
		return fmt.Sprintf("%s(%g,%g %gx%g)", kindOf(n), b.X, b.Y, b.Width, b.Height)
	}
}
