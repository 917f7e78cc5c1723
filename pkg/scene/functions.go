package scene

import (
	"fmt"
	"math"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"

	"tabula/pkg/layout"
)

// evalContext is shared by all expressions of a scene file.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"min":    stdlib.MinFunc,
			"max":    stdlib.MaxFunc,
			"format": stdlib.FormatFunc,
			"upper":  stdlib.UpperFunc,
			"lower":  stdlib.LowerFunc,
			"concat": stdlib.ConcatFunc,

			"rgb":       rgbFunc,
			"translate": transformFunc("tx", "ty", layout.Translation),
			"scale":     transformFunc("sx", "sy", layout.Scaling),
			"shear":     transformFunc("shx", "shy", layout.Shear),
			"rotate":    rotateFunc,
			"compose":   composeFunc,
		},
	}
}

// transformType is how transforms travel through expressions: the six
// coefficients A B C D E F.
var transformType = cty.List(cty.Number)

func transformVal(t layout.Transform) cty.Value {
	return cty.ListVal([]cty.Value{
		cty.NumberFloatVal(t.A), cty.NumberFloatVal(t.B),
		cty.NumberFloatVal(t.C), cty.NumberFloatVal(t.D),
		cty.NumberFloatVal(t.E), cty.NumberFloatVal(t.F),
	})
}

func transformOf(v cty.Value) (layout.Transform, error) {
	var f []float64
	if err := gocty.FromCtyValue(v, &f); err != nil {
		return layout.Transform{}, err
	}
	if len(f) != 6 {
		return layout.Transform{}, fmt.Errorf("transform needs 6 coefficients, got %d", len(f))
	}
	return layout.Transform{A: f[0], B: f[1], C: f[2], D: f[3], E: f[4], F: f[5]}, nil
}

func floatArg(v cty.Value) float64 {
	f, _ := v.AsBigFloat().Float64()
	return f
}

func transformFunc(x, y string, build func(x, y float64) layout.Transform) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: x, Type: cty.Number},
			{Name: y, Type: cty.Number},
		},
		Type: function.StaticReturnType(transformType),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			return transformVal(build(floatArg(args[0]), floatArg(args[1]))), nil
		},
	})
}

var rotateFunc = function.New(&function.Spec{
	Params: []function.Parameter{{Name: "degrees", Type: cty.Number}},
	Type:   function.StaticReturnType(transformType),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		return transformVal(layout.Rotation(floatArg(args[0]) * math.Pi / 180)), nil
	},
})

// composeFunc multiplies its arguments left to right, so the last one is
// applied first.
var composeFunc = function.New(&function.Spec{
	VarParam: &function.Parameter{Name: "transforms", Type: transformType},
	Type:     function.StaticReturnType(transformType),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		m := layout.Identity()
		for i, arg := range args {
			t, err := transformOf(arg)
			if err != nil {
				return cty.NilVal, function.NewArgError(i, err)
			}
			m = layout.Mul(m, t)
		}
		return transformVal(m), nil
	},
})

var rgbFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "r", Type: cty.Number},
		{Name: "g", Type: cty.Number},
		{Name: "b", Type: cty.Number},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		var c [3]uint8
		for i, arg := range args {
			if err := gocty.FromCtyValue(arg, &c[i]); err != nil {
				return cty.NilVal, function.NewArgError(i, err)
			}
		}
		return cty.StringVal(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])), nil
	},
})

// toNative converts an attribute value to the Go values item properties
// accept: float64, bool, string and []any.
func toNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, err
		}
		return f, nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty.IsListType() || ty.IsTupleType():
		list := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, e := it.Element()
			n, err := toNative(e)
			if err != nil {
				return nil, err
			}
			list = append(list, n)
		}
		return list, nil
	}
	return nil, fmt.Errorf("unsupported value of type %s", ty.FriendlyName())
}
