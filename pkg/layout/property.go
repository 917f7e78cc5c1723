package layout

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrNoSuchProperty is returned for property names an item does not know.
	ErrNoSuchProperty = errors.New("no such property")

	// ErrPropertyType is returned when a value has the wrong type for a property.
	ErrPropertyType = errors.New("invalid property value")
)

// property reads and writes one named field of a T.
type property[T any] struct {
	get func(T) any
	set func(T, any) bool
}

// Property tables, built once when the package is initialized.
var (
	childProperties = newChildProperties()
	tableProperties = newTableProperties()
	boxProperties   = newBoxProperties()
	textProperties  = newTextProperties()
	imageProperties = newImageProperties()
)

func newChildProperties() map[string]property[*ChildPlacement] {
	props := map[string]property[*ChildPlacement]{
		"column":  intProperty(func(p *ChildPlacement) *int { return &p.Start[Horizontal] }),
		"row":     intProperty(func(p *ChildPlacement) *int { return &p.Start[Vertical] }),
		"columns": intProperty(func(p *ChildPlacement) *int { return &p.Span[Horizontal] }),
		"rows":    intProperty(func(p *ChildPlacement) *int { return &p.Span[Vertical] }),

		"left-padding":   floatProperty(func(p *ChildPlacement) *float64 { return &p.PadBefore[Horizontal] }, true),
		"right-padding":  floatProperty(func(p *ChildPlacement) *float64 { return &p.PadAfter[Horizontal] }, true),
		"top-padding":    floatProperty(func(p *ChildPlacement) *float64 { return &p.PadBefore[Vertical] }, true),
		"bottom-padding": floatProperty(func(p *ChildPlacement) *float64 { return &p.PadAfter[Vertical] }, true),
	}
	for _, axis := range axes {
		prefix := "x-"
		if axis == Vertical {
			prefix = "y-"
		}
		props[prefix+"align"] = floatProperty(func(p *ChildPlacement) *float64 { return &p.Align[axis] }, false)
		props[prefix+"expand"] = boolProperty(func(p *ChildPlacement) *bool { return &p.Expand[axis] })
		props[prefix+"fill"] = boolProperty(func(p *ChildPlacement) *bool { return &p.Fill[axis] })
		props[prefix+"shrink"] = boolProperty(func(p *ChildPlacement) *bool { return &p.Shrink[axis] })
	}
	return props
}

func newTableProperties() map[string]property[*Table] {
	return map[string]property[*Table]{
		"x":      floatProperty(func(t *Table) *float64 { return &t.X }, false),
		"y":      floatProperty(func(t *Table) *float64 { return &t.Y }, false),
		"width":  floatProperty(func(t *Table) *float64 { return &t.width }, false),
		"height": floatProperty(func(t *Table) *float64 { return &t.height }, false),

		"border-width":   floatProperty(func(t *Table) *float64 { return &t.border }, true),
		"row-spacing":    floatProperty(func(t *Table) *float64 { return &t.dims[Vertical].spacing }, true),
		"column-spacing": floatProperty(func(t *Table) *float64 { return &t.dims[Horizontal].spacing }, true),

		"homogeneous-rows":    boolProperty(func(t *Table) *bool { return &t.dims[Vertical].homogeneous }),
		"homogeneous-columns": boolProperty(func(t *Table) *bool { return &t.dims[Horizontal].homogeneous }),

		"visible":   visibleProperty(func(t *Table) *bool { return &t.Hidden }),
		"transform": transformProperty[*Table](),
	}
}

func newBoxProperties() map[string]property[*Box] {
	return map[string]property[*Box]{
		"x":          floatProperty(func(b *Box) *float64 { return &b.X }, false),
		"y":          floatProperty(func(b *Box) *float64 { return &b.Y }, false),
		"width":      floatProperty(func(b *Box) *float64 { return &b.Width }, true),
		"height":     floatProperty(func(b *Box) *float64 { return &b.Height }, true),
		"fill":       stringProperty(func(b *Box) *string { return &b.Fill }),
		"stroke":     stringProperty(func(b *Box) *string { return &b.Stroke }),
		"line-width": floatProperty(func(b *Box) *float64 { return &b.LineWidth }, true),
		"visible":    visibleProperty(func(b *Box) *bool { return &b.Hidden }),
		"transform":  transformProperty[*Box](),
	}
}

func newTextProperties() map[string]property[*Text] {
	return map[string]property[*Text]{
		"text":      stringProperty(func(t *Text) *string { return &t.Content }),
		"x":         floatProperty(func(t *Text) *float64 { return &t.X }, false),
		"y":         floatProperty(func(t *Text) *float64 { return &t.Y }, false),
		"width":     floatProperty(func(t *Text) *float64 { return &t.Width }, false),
		"wrap":      boolProperty(func(t *Text) *bool { return &t.Wrap }),
		"color":     stringProperty(func(t *Text) *string { return &t.Color }),
		"visible":   visibleProperty(func(t *Text) *bool { return &t.Hidden }),
		"transform": transformProperty[*Text](),
	}
}

func newImageProperties() map[string]property[*Image] {
	return map[string]property[*Image]{
		"path": {
			get: func(i *Image) any { return i.Path },
			set: func(i *Image, v any) bool {
				s, ok := v.(string)
				if ok && s != i.Path {
					i.Path, i.Source = s, nil
				}
				return ok
			},
		},
		"x":         floatProperty(func(i *Image) *float64 { return &i.X }, false),
		"y":         floatProperty(func(i *Image) *float64 { return &i.Y }, false),
		"width":     floatProperty(func(i *Image) *float64 { return &i.Width }, false),
		"height":    floatProperty(func(i *Image) *float64 { return &i.Height }, false),
		"visible":   visibleProperty(func(i *Image) *bool { return &i.Hidden }),
		"transform": transformProperty[*Image](),
	}
}

func intProperty[T any](field func(T) *int) property[T] {
	return property[T]{
		get: func(x T) any { return *field(x) },
		set: func(x T, v any) bool {
			n, ok := toInt(v)
			if ok {
				*field(x) = n
			}
			return ok
		},
	}
}

func floatProperty[T any](field func(T) *float64, nonNegative bool) property[T] {
	return property[T]{
		get: func(x T) any { return *field(x) },
		set: func(x T, v any) bool {
			f, ok := toFloat(v)
			if !ok {
				return false
			}
			if nonNegative && f < 0 {
				f = 0
			}
			*field(x) = f
			return true
		},
	}
}

func boolProperty[T any](field func(T) *bool) property[T] {
	return property[T]{
		get: func(x T) any { return *field(x) },
		set: func(x T, v any) bool {
			b, ok := toBool(v)
			if ok {
				*field(x) = b
			}
			return ok
		},
	}
}

func stringProperty[T any](field func(T) *string) property[T] {
	return property[T]{
		get: func(x T) any { return *field(x) },
		set: func(x T, v any) bool {
			s, ok := v.(string)
			if ok {
				*field(x) = s
			}
			return ok
		},
	}
}

// visibleProperty exposes a Hidden flag under its positive name.
func visibleProperty[T any](hidden func(T) *bool) property[T] {
	return property[T]{
		get: func(x T) any { return !*hidden(x) },
		set: func(x T, v any) bool {
			b, ok := toBool(v)
			if ok {
				*hidden(x) = !b
			}
			return ok
		},
	}
}

type transformer interface {
	Transform() Transform
	SetTransform(Transform)
}

// transformProperty takes the six coefficients A B C D E F.
func transformProperty[T transformer]() property[T] {
	return property[T]{
		get: func(x T) any {
			m := x.Transform()
			return []float64{m.A, m.B, m.C, m.D, m.E, m.F}
		},
		set: func(x T, v any) bool {
			f, ok := toFloats(v)
			if !ok || len(f) != 6 {
				return false
			}
			x.SetTransform(Transform{A: f[0], B: f[1], C: f[2], D: f[3], E: f[4], F: f[5]})
			return true
		},
	}
}

func setProperty[T any](props map[string]property[T], target T, name string, value any) error {
	prop, ok := props[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoSuchProperty, name)
	}
	if !prop.set(target, value) {
		return fmt.Errorf("%w for %q: %v (%T)", ErrPropertyType, name, value, value)
	}
	return nil
}

func getProperty[T any](props map[string]property[T], target T, name string) (any, error) {
	prop, ok := props[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchProperty, name)
	}
	return prop.get(target), nil
}

// SetChildProperty sets one placement field of the child at index by name,
// e.g. "row", "columns", "x-expand" or "left-padding". Rows and columns the
// new placement refers to are created as needed.
func (t *Table) SetChildProperty(index int, name string, value any) error {
	if _, ok := childProperties[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNoSuchProperty, name)
	}
	if index < 0 || index >= len(t.placements) {
		return fmt.Errorf("child %d out of range [0, %d)", index, len(t.placements))
	}
	p := t.placements[index]
	if err := setProperty(childProperties, &p, name, value); err != nil {
		return err
	}
	t.SetPlacement(index, p)
	return nil
}

// ChildProperty returns one placement field of the child at index by name.
func (t *Table) ChildProperty(index int, name string) (any, error) {
	if _, ok := childProperties[name]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchProperty, name)
	}
	if index < 0 || index >= len(t.placements) {
		return nil, fmt.Errorf("child %d out of range [0, %d)", index, len(t.placements))
	}
	return getProperty(childProperties, &t.placements[index], name)
}

// SetProperty sets a table property by name: "width", "height" (negative
// for automatic), "row-spacing", "column-spacing", "homogeneous-rows",
// "homogeneous-columns", "border-width", "x", "y", "visible" or
// "transform".
func (t *Table) SetProperty(name string, value any) error {
	if err := setProperty(tableProperties, t, name, value); err != nil {
		return err
	}
	t.MarkNeedsLayout()
	return nil
}

// Property returns a table property by name.
func (t *Table) Property(name string) (any, error) {
	return getProperty(tableProperties, t, name)
}

// SetProperty sets "x", "y", "width", "height", "fill", "stroke",
// "line-width", "visible" or "transform".
func (b *Box) SetProperty(name string, value any) error {
	if err := setProperty(boxProperties, b, name, value); err != nil {
		return err
	}
	b.changed()
	return nil
}

func (b *Box) Property(name string) (any, error) {
	return getProperty(boxProperties, b, name)
}

// SetProperty sets "text", "x", "y", "width", "wrap", "color", "visible"
// or "transform".
func (t *Text) SetProperty(name string, value any) error {
	if err := setProperty(textProperties, t, name, value); err != nil {
		return err
	}
	t.changed()
	return nil
}

func (t *Text) Property(name string) (any, error) {
	return getProperty(textProperties, t, name)
}

// SetProperty sets "path", "x", "y", "width", "height", "visible" or
// "transform".
func (i *Image) SetProperty(name string, value any) error {
	if err := setProperty(imageProperties, i, name, value); err != nil {
		return err
	}
	i.changed()
	return nil
}

func (i *Image) Property(name string) (any, error) {
	return getProperty(imageProperties, i, name)
}

// Configurable is implemented by every node: its settings can be read and
// written by name.
type Configurable interface {
	SetProperty(name string, value any) error
	Property(name string) (any, error)
}

// IsChildProperty reports whether name is a placement property.
func IsChildProperty(name string) bool {
	_, ok := childProperties[name]
	return ok
}

// ChildPropertyNames lists the names accepted by SetChildProperty.
func ChildPropertyNames() []string {
	return sortedKeys(childProperties)
}

// PropertyNames lists the names accepted by Table.SetProperty.
func PropertyNames() []string {
	return sortedKeys(tableProperties)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
