package render

import (
	"slices"

	"tabula/pkg/layout"
)

// ItemsAt returns the visible items whose device bounds contain (x, y),
// top-most first. A child clipped to its cell is only found inside the cell.
func ItemsAt(root layout.Node, x, y float64) []layout.Node {
	var hits []layout.Node
	collect(root, layout.Identity(), x, y, &hits)
	slices.Reverse(hits)
	return hits
}

func collect(node layout.Node, parent layout.Transform, x, y float64, hits *[]layout.Node) {
	if node == nil || !node.Visible() {
		return
	}
	if node.Bounds().Contains(x, y) {
		*hits = append(*hits, node)
	}
	t, ok := node.(*layout.Table)
	if !ok {
		return
	}
	device := layout.Mul(parent, t.ContentTransform())
	for i, child := range t.Children() {
		n, ok := child.(layout.Node)
		if !ok {
			continue
		}
		if _, ok := t.Cell(i); !ok {
			continue
		}
		if clip, ok := t.ChildClip(i); ok && !inside(device, clip, x, y) {
			continue
		}
		collect(n, device, x, y, hits)
	}
}

// inside reports whether the device point (x, y) lies in r, given in the
// space m maps to the device.
func inside(m layout.Transform, r layout.Rect, x, y float64) bool {
	if err := m.Invert(); err != nil {
		return false
	}
	return r.Contains(m.Apply(x, y))
}
