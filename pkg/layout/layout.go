package layout

// Item is the content-negotiation capability every scene item provides to
// the container that holds it. Rectangles exchanged through Item are in the
// coordinate space of the container (the item's parent space), with the
// item's own transform already applied.
type Item interface {
	// RequestedArea reports whether the item wants space at all and, if so,
	// its natural bounding rectangle.
	RequestedArea(ctx *Context) (bool, Rect)

	// RequestedHeightForWidth returns the item's height when given width,
	// or -1 if its height does not depend on its width.
	RequestedHeightForWidth(ctx *Context, width float64) float64

	// AllocateArea delivers the final placement. offset is the cumulative
	// device-space displacement of the item caused by this pass.
	AllocateArea(ctx *Context, requested, allocated Rect, offset Point)
}

// Node is an Item that can be painted and picked. The closed set of nodes
// is *Table, *Box, *Text and *Image.
type Node interface {
	Item

	// Bounds returns the device-space bounds computed by the last pass.
	Bounds() Rect

	// Visible reports whether the item takes part in layout and painting.
	Visible() bool

	// Transform returns the item-to-parent transformation.
	Transform() Transform
}

// TextMeasurer measures and wraps text for text leaves.
type TextMeasurer interface {
	// Measure returns the extent of a single line.
	Measure(s string) (width, height float64)

	// Wrap splits s into lines no wider than width, breaking at spaces.
	Wrap(s string, width float64) []string

	// LineHeight returns the distance between consecutive baselines.
	LineHeight() float64
}

// Context carries the state shared by all items during a layout pass.
type Context struct {
	// Transform maps the current parent space to device space.
	Transform Transform

	// Measurer is used by text leaves. It may be nil when the scene has no text.
	Measurer TextMeasurer
}

// NewContext creates a context with the identity device transform.
func NewContext(m TextMeasurer) *Context {
	return &Context{Transform: Identity(), Measurer: m}
}

// Push returns a context for the children of an item with transform t.
func (c *Context) Push(t Transform) *Context {
	return &Context{Transform: Mul(c.Transform, t), Measurer: c.Measurer}
}

func (c *Context) measurer() TextMeasurer {
	if c.Measurer == nil {
		return defaultMeasurer
	}
	return c.Measurer
}
