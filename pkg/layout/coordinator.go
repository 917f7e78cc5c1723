package layout

import "math"

// RequestedArea queries every child, solves both axes and returns the
// table's natural (or fixed) area in the parent's space.
func (t *Table) RequestedArea(ctx *Context) (bool, Rect) {
	t.enter()
	defer t.leave()
	return t.request(ctx)
}

func (t *Table) request(ctx *Context) (bool, Rect) {
	if t.Hidden {
		t.session = nil
		t.cells = nil
		return false, Rect{}
	}
	content := t.ContentTransform()
	cctx := ctx.Push(content)

	s := newSession(t)
	for i, child := range t.children {
		ok, area := child.RequestedArea(cctx)
		if !ok {
			s.children[i].exclude()
			continue
		}
		s.children[i] = childRequest{
			pos:  [2]float64{area.X, area.Y},
			size: [2]float64{area.Width, area.Height},
		}
	}
	t.session = s
	t.lastWidth = -1

	for _, axis := range axes {
		t.solveAxis(axis)
	}

	w, h := t.requestedSize()
	local := Rect{Width: w, Height: h}
	t.bounds = cctx.Transform.BoundingBox(local)
	return true, content.BoundingBox(local)
}

// RequestedHeightForWidth resolves the columns at width and returns the
// height the rows need then. It returns -1 if the table is rotated or
// sheared, or if no child's height depends on its width.
func (t *Table) RequestedHeightForWidth(ctx *Context, width float64) float64 {
	t.enter()
	defer t.leave()

	if t.Hidden {
		return -1
	}
	if !t.sessionCurrent() {
		if ok, _ := t.request(ctx); !ok {
			return -1
		}
	}
	content := t.ContentTransform()
	if !content.IsAxisAligned() || content.A == 0 {
		return -1
	}
	target := width / math.Abs(content.A)
	if t.width >= 0 {
		target = t.width
	}

	t.allocateAxis(Horizontal, target)
	if !t.updateRequestedHeights(ctx.Push(content)) {
		t.lastWidth = target
		return -1
	}
	t.lastWidth = target
	t.solveAxis(Vertical)

	_, h := t.requestedSize()
	return h * math.Abs(content.D)
}

// AllocateArea scales the table into allocated, resolves columns, then
// renegotiates width-dependent heights, resolves rows and finally places
// the children.
func (t *Table) AllocateArea(ctx *Context, requested, allocated Rect, offset Point) {
	t.enter()
	defer t.leave()

	if !t.sessionCurrent() {
		if ok, _ := t.request(ctx); !ok {
			return
		}
	}

	// Move the table itself; its own coordinate space is left untouched.
	dx, dy := allocated.X-requested.X, allocated.Y-requested.Y
	t.transform = Mul(Translation(dx, dy), t.transform)

	content := t.ContentTransform()
	aligned := content.IsAxisAligned()
	rx := proportion(allocated.Width, requested.Width)
	ry := proportion(allocated.Height, requested.Height)
	if !aligned {
		rx = math.Min(rx, ry)
		ry = rx
	}

	cctx := ctx.Push(content)
	w, _ := t.requestedSize()
	width := w * rx
	t.allocateAxis(Horizontal, width)

	if aligned && width != t.lastWidth {
		if t.updateRequestedHeights(cctx) {
			t.solveAxis(Vertical)
		}
		t.lastWidth = width
	}

	_, h := t.requestedSize()
	height := h * ry
	t.allocateAxis(Vertical, height)

	t.checkClip = width < t.natural[Horizontal] || height < t.natural[Vertical]
	t.allocateChildren(cctx, offset)

	t.bounds = cctx.Transform.BoundingBox(Rect{Width: width, Height: height})
	t.session.children = nil
	t.needsLayout = false

	tracer().Debugf("table allocated %.2f x %.2f (natural %.2f x %.2f), clip=%v",
		width, height, t.natural[Horizontal], t.natural[Vertical], t.checkClip)
}

// sessionCurrent reports whether the child requests of this pass are still
// usable, i.e. the children were queried and the table was not changed since.
func (t *Table) sessionCurrent() bool {
	s := t.session
	if s == nil || s.children == nil || len(s.children) != len(t.children) {
		return false
	}
	for _, axis := range axes {
		if len(s.slots[axis]) != t.dims[axis].count() {
			return false
		}
	}
	return true
}

// proportion returns the share of the requested size that was allocated.
func proportion(allocated, requested float64) float64 {
	if requested <= 0 {
		return 1
	}
	return allocated / requested
}

// updateRequestedHeights asks every child how tall it is at the width of
// the columns it spans. It reports whether any child's height depends on
// its width.
func (t *Table) updateRequestedHeights(cctx *Context) bool {
	s := t.session
	changed := false
	for i, child := range t.children {
		c := &s.children[i]
		if c.excluded() {
			continue
		}
		p := &t.placements[i]
		width := t.cellExtent(Horizontal, p)
		if !p.Fill[Horizontal] {
			width = math.Min(width, c.size[Horizontal])
		}
		h := child.RequestedHeightForWidth(cctx, width)
		if h < 0 {
			continue
		}
		c.size[Vertical] = h
		changed = true
	}
	return changed
}

// cellExtent returns the allocated size available to a child on one axis,
// inside its padding.
func (t *Table) cellExtent(axis Axis, p *ChildPlacement) float64 {
	slots := t.session.slots[axis]
	start := slots[p.Start[axis]].start + p.PadBefore[axis]
	end := slots[p.last(axis)].end - p.PadAfter[axis]
	return math.Max(end-start, 0)
}
