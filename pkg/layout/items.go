package layout

// simple holds what every leaf item shares: visibility, its own transform
// and the extent and device-space bounds of the last pass.
type simple struct {
	// Hidden items decline allocation and are not painted.
	Hidden bool

	transform Transform
	local     Rect
	bounds    Rect
	parent    *Table
}

// Transform returns the item-to-parent transformation.
func (s *simple) Transform() Transform {
	if s.transform == (Transform{}) {
		return Identity()
	}
	return s.transform
}

// SetTransform replaces the item-to-parent transformation.
func (s *simple) SetTransform(m Transform) {
	s.transform = m
	s.changed()
}

func (s *simple) attach(parent *Table) { s.parent = parent }

func (s *simple) detach(parent *Table) {
	if s.parent == parent {
		s.parent = nil
	}
}

// changed flags the table holding the item for a new pass.
func (s *simple) changed() {
	if s.parent != nil {
		s.parent.MarkNeedsLayout()
	}
}

// Visible reports whether the item takes part in layout and painting.
func (s *simple) Visible() bool { return !s.Hidden }

// Bounds returns the device-space bounds computed by the last pass.
func (s *simple) Bounds() Rect { return s.bounds }

// requestArea records local and its device bounds and returns local in the
// parent's space.
func (s *simple) requestArea(ctx *Context, local Rect) Rect {
	m := s.Transform()
	s.local = local
	s.bounds = Mul(ctx.Transform, m).BoundingBox(local)
	return m.BoundingBox(local)
}

// allocate moves the item by the difference between allocated and
// requested position. Bounds are recomputed from ctx, which carries the
// final placement of every ancestor.
func (s *simple) allocate(ctx *Context, requested, allocated Rect) {
	dx, dy := allocated.X-requested.X, allocated.Y-requested.Y
	s.transform = Mul(Translation(dx, dy), s.Transform())
	s.bounds = Mul(ctx.Transform, s.transform).BoundingBox(s.local)
}

// Box is a rectangle primitive.
type Box struct {
	simple

	X, Y, Width, Height float64

	// Fill and Stroke are colour names or hex strings; empty means none.
	Fill, Stroke string
	LineWidth    float64
}

// NewBox creates a box with identity transform and a 1 unit outline width.
func NewBox(x, y, width, height float64) *Box {
	return &Box{
		simple:    simple{transform: Identity()},
		X:         x,
		Y:         y,
		Width:     width,
		Height:    height,
		LineWidth: 1,
	}
}

// Local returns the box in its own space, including half the outline.
func (b *Box) Local() Rect {
	r := Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
	if b.Stroke != "" && b.LineWidth > 0 {
		hw := b.LineWidth / 2
		r = Rect{X: r.X - hw, Y: r.Y - hw, Width: r.Width + b.LineWidth, Height: r.Height + b.LineWidth}
	}
	return r
}

func (b *Box) RequestedArea(ctx *Context) (bool, Rect) {
	if b.Hidden {
		return false, Rect{}
	}
	return true, b.requestArea(ctx, b.Local())
}

func (b *Box) RequestedHeightForWidth(*Context, float64) float64 { return -1 }

func (b *Box) AllocateArea(ctx *Context, requested, allocated Rect, _ Point) {
	b.allocate(ctx, requested, allocated)
}
