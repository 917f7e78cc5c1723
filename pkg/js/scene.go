package js

import (
	"math"
	"strings"
	"unicode"

	"github.com/dop251/goja"

	"tabula/pkg/layout"
)

// sceneContext holds the state of one script run. It keeps a node-to-proxy
// cache so the same JS object is returned for the same item.
type sceneContext struct {
	vm    *goja.Runtime
	cache map[layout.Node]*goja.Object
	nodes map[*goja.Object]layout.Node
	root  *layout.Table
	first *layout.Table
}

// registerScene installs the item factories and setRoot as globals.
func registerScene(vm *goja.Runtime) *sceneContext {
	ctx := &sceneContext{
		vm:    vm,
		cache: make(map[layout.Node]*goja.Object),
		nodes: make(map[*goja.Object]layout.Node),
	}
	vm.Set("table", func(call goja.FunctionCall) goja.Value {
		t := layout.NewTable()
		if ctx.first == nil {
			ctx.first = t
		}
		return ctx.create(t, call.Argument(0))
	})
	vm.Set("rect", func(call goja.FunctionCall) goja.Value {
		return ctx.create(layout.NewBox(0, 0, 0, 0), call.Argument(0))
	})
	vm.Set("text", func(call goja.FunctionCall) goja.Value {
		arg := call.Argument(0)
		t := layout.NewText("", 0, 0, -1)
		if s, ok := arg.Export().(string); ok {
			t.Content = s
			arg = call.Argument(1)
		}
		return ctx.create(t, arg)
	})
	vm.Set("image", func(call goja.FunctionCall) goja.Value {
		arg := call.Argument(0)
		img := layout.NewImage("", 0, 0)
		if s, ok := arg.Export().(string); ok {
			img.Path = s
			arg = call.Argument(1)
		}
		return ctx.create(img, arg)
	})
	vm.Set("setRoot", func(call goja.FunctionCall) goja.Value {
		t, ok := ctx.unwrap(call.Argument(0)).(*layout.Table)
		if !ok {
			panic(vm.NewTypeError("setRoot: argument is not a table"))
		}
		ctx.root = t
		return goja.Undefined()
	})
	return ctx
}

// create applies the properties in props to node and returns its proxy.
func (ctx *sceneContext) create(node layout.Node, props goja.Value) goja.Value {
	ctx.apply(props, func(name string, v any) error {
		return node.(layout.Configurable).SetProperty(name, v)
	})
	return ctx.proxy(node)
}

// apply calls set for every own property of obj, with the key in kebab-case.
func (ctx *sceneContext) apply(obj goja.Value, set func(name string, v any) error) {
	if obj == nil || goja.IsUndefined(obj) || goja.IsNull(obj) {
		return
	}
	o := obj.ToObject(ctx.vm)
	for _, key := range o.Keys() {
		if err := set(propertyName(key), o.Get(key).Export()); err != nil {
			panic(ctx.vm.NewGoError(err))
		}
	}
}

func (ctx *sceneContext) proxy(node layout.Node) *goja.Object {
	if obj, ok := ctx.cache[node]; ok {
		return obj
	}
	obj := ctx.vm.NewDynamicObject(&itemAccessor{ctx: ctx, node: node})
	ctx.cache[node] = obj
	ctx.nodes[obj] = node
	return obj
}

// unwrap returns the node behind a proxy, or nil.
func (ctx *sceneContext) unwrap(v goja.Value) layout.Node {
	obj, ok := v.(*goja.Object)
	if !ok {
		return nil
	}
	return ctx.nodes[obj]
}

// propertyName converts camelCase and snake_case keys to the kebab-case
// names items use.
func propertyName(key string) string {
	var sb strings.Builder
	for i, r := range key {
		switch {
		case r == '_':
			sb.WriteByte('-')
		case unicode.IsUpper(r):
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// itemAccessor implements goja.DynamicObject for item proxies: methods are
// looked up first, anything else is an item property.
type itemAccessor struct {
	ctx  *sceneContext
	node layout.Node
}

func (a *itemAccessor) Get(key string) goja.Value {
	vm := a.ctx.vm
	if m := a.method(key); m != nil {
		return vm.ToValue(m)
	}
	switch key {
	case "kind":
		return vm.ToValue(kindOf(a.node))
	case "length":
		if t, ok := a.node.(*layout.Table); ok {
			return vm.ToValue(t.Len())
		}
	case "bounds":
		b := a.node.Bounds()
		return vm.ToValue(map[string]float64{"x": b.X, "y": b.Y, "width": b.Width, "height": b.Height})
	}
	v, err := a.configurable().Property(propertyName(key))
	if err != nil {
		return goja.Undefined()
	}
	return vm.ToValue(v)
}

func (a *itemAccessor) Set(key string, val goja.Value) bool {
	if err := a.configurable().SetProperty(propertyName(key), val.Export()); err != nil {
		panic(a.ctx.vm.NewGoError(err))
	}
	tracer().Debugf("%s.%s = %v", kindOf(a.node), key, val)
	return true
}

func (a *itemAccessor) Has(key string) bool {
	if a.method(key) != nil {
		return true
	}
	_, err := a.configurable().Property(propertyName(key))
	return err == nil
}

func (a *itemAccessor) Delete(string) bool { return false }

func (a *itemAccessor) Keys() []string {
	if _, ok := a.node.(*layout.Table); ok {
		return layout.PropertyNames()
	}
	return nil
}

func (a *itemAccessor) configurable() layout.Configurable {
	return a.node.(layout.Configurable)
}

type transformer interface {
	Transform() layout.Transform
	SetTransform(layout.Transform)
}

// method returns the JS method named key, or nil.
func (a *itemAccessor) method(key string) func(goja.FunctionCall) goja.Value {
	vm := a.ctx.vm
	self := a.ctx.proxy(a.node)
	compose := func(m func(call goja.FunctionCall) layout.Transform) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			t := a.node.(transformer)
			t.SetTransform(layout.Mul(t.Transform(), m(call)))
			return self
		}
	}
	switch key {
	case "set":
		return func(call goja.FunctionCall) goja.Value {
			a.Set(call.Argument(0).String(), call.Argument(1))
			return self
		}
	case "get":
		return func(call goja.FunctionCall) goja.Value {
			return a.Get(call.Argument(0).String())
		}
	case "rotate":
		return compose(func(call goja.FunctionCall) layout.Transform {
			return layout.Rotation(call.Argument(0).ToFloat() * math.Pi / 180)
		})
	case "scale":
		return compose(func(call goja.FunctionCall) layout.Transform {
			sx := call.Argument(0).ToFloat()
			sy := sx
			if len(call.Arguments) > 1 {
				sy = call.Argument(1).ToFloat()
			}
			return layout.Scaling(sx, sy)
		})
	case "translate":
		return compose(func(call goja.FunctionCall) layout.Transform {
			return layout.Translation(call.Argument(0).ToFloat(), call.Argument(1).ToFloat())
		})
	case "shear":
		return compose(func(call goja.FunctionCall) layout.Transform {
			return layout.Shear(call.Argument(0).ToFloat(), call.Argument(1).ToFloat())
		})
	}
	t, ok := a.node.(*layout.Table)
	if !ok {
		return nil
	}
	index := func(call goja.FunctionCall, i int) int {
		n := int(call.Argument(i).ToInteger())
		if n < 0 || n >= t.Len() {
			panic(vm.NewTypeError("child index %d out of range [0, %d)", n, t.Len()))
		}
		return n
	}
	switch key {
	case "add":
		return func(call goja.FunctionCall) goja.Value {
			child := a.ctx.unwrap(call.Argument(0))
			if child == nil {
				panic(vm.NewTypeError("add: argument is not an item"))
			}
			if child == layout.Node(t) {
				panic(vm.NewTypeError("add: a table cannot contain itself"))
			}
			t.AddChild(child, -1, layout.DefaultPlacement())
			i := t.Len() - 1
			a.ctx.apply(call.Argument(1), func(name string, v any) error {
				return t.SetChildProperty(i, name, v)
			})
			return a.ctx.proxy(child)
		}
	case "child":
		return func(call goja.FunctionCall) goja.Value {
			n, ok := t.Child(index(call, 0)).(layout.Node)
			if !ok {
				return goja.Null()
			}
			return a.ctx.proxy(n)
		}
	case "setChild":
		return func(call goja.FunctionCall) goja.Value {
			i := index(call, 0)
			if err := t.SetChildProperty(i, propertyName(call.Argument(1).String()), call.Argument(2).Export()); err != nil {
				panic(vm.NewGoError(err))
			}
			return self
		}
	case "childProperty":
		return func(call goja.FunctionCall) goja.Value {
			v, err := t.ChildProperty(index(call, 0), propertyName(call.Argument(1).String()))
			if err != nil {
				panic(vm.NewGoError(err))
			}
			return vm.ToValue(v)
		}
	case "move":
		return func(call goja.FunctionCall) goja.Value {
			t.MoveChild(index(call, 0), int(call.Argument(1).ToInteger()))
			return self
		}
	case "remove":
		return func(call goja.FunctionCall) goja.Value {
			t.RemoveChild(index(call, 0))
			return self
		}
	}
	return nil
}

func kindOf(node layout.Node) string {
	switch node.(type) {
	case *layout.Table:
		return "table"
	case *layout.Box:
		return "rect"
	case *layout.Text:
		return "text"
	case *layout.Image:
		return "image"
	}
	return "item"
}
