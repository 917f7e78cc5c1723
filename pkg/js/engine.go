package js

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dop251/goja"

	"tabula/pkg/layout"
)

// ErrNoRoot is returned when a script creates no table.
var ErrNoRoot = errors.New("script created no table")

// Engine executes scene scripts.
type Engine struct {
	vm      *goja.Runtime
	console *consoleAPI
	scene   *sceneContext
}

// New creates a new JS engine with a fresh goja runtime. Console output
// goes to stdout and stderr.
func New() *Engine {
	return NewWithOutput(os.Stdout, os.Stderr)
}

// NewWithOutput creates an engine whose console writes to stdout and stderr.
func NewWithOutput(stdout, stderr io.Writer) *Engine {
	vm := goja.New()
	e := &Engine{vm: vm}

	e.scene = registerScene(vm)
	e.console = &consoleAPI{stdout: stdout, stderr: stderr, scene: e.scene}
	e.console.register(vm)

	return e
}

// Run executes src and returns the root table it built. name is used in
// error messages and stack traces. Items and globals created by earlier
// runs stay visible, but the root is chosen among this run's tables.
func (e *Engine) Run(name, src string) (*layout.Table, error) {
	scene := e.scene
	scene.root, scene.first = nil, nil
	if _, err := e.vm.RunScript(name, src); err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}
	root := scene.root
	if root == nil {
		root = scene.first
	}
	if root == nil {
		return nil, fmt.Errorf("script %s: %w", name, ErrNoRoot)
	}
	tracer().Debugf("script %s: root table with %d children", name, root.Len())
	return root, nil
}
