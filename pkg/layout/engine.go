package layout

// Layout runs one full pass on root: it asks root for its requested area and
// allocates exactly that area back. It returns the allocated area, or an
// empty rectangle when root declines allocation.
func Layout(root Item, ctx *Context) Rect {
	ok, requested := root.RequestedArea(ctx)
	if !ok {
		return Rect{}
	}
	root.AllocateArea(ctx, requested, requested, Point{})
	return requested
}

// LayoutInto runs one full pass on root, allocating area instead of the
// requested area. Width-dependent content is renegotiated against the
// allocated width before the vertical axis is resolved.
func LayoutInto(root Item, ctx *Context, area Rect) {
	ok, requested := root.RequestedArea(ctx)
	if !ok {
		return
	}
	if h := root.RequestedHeightForWidth(ctx, area.Width); h >= 0 {
		requested.Height = h
	}
	offset := ctx.Transform.ApplyDistance(area.X-requested.X, area.Y-requested.Y)
	root.AllocateArea(ctx, requested, area, offset)
}
