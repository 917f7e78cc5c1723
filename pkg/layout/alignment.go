package layout

import "math"

// allocateChildren gives every child that took part in the pass its final
// rectangle. Children keep their own coordinate space: they are only told
// how far to move and how much room they have.
func (t *Table) allocateChildren(cctx *Context, offset Point) {
	s := t.session
	t.cells = make([]Rect, len(t.children))
	for i, child := range t.children {
		c := &s.children[i]
		if c.excluded() {
			t.cells[i] = Rect{Width: -1, Height: -1}
			continue
		}
		p := &t.placements[i]

		var cellPos, cellSize, pos, size [2]float64
		for _, axis := range axes {
			cellPos[axis] = s.slots[axis][p.Start[axis]].start + p.PadBefore[axis]
			cellSize[axis] = t.cellExtent(axis, p)
			pos[axis], size[axis] = alignInCell(cellPos[axis], cellSize[axis], c.size[axis], p.Align[axis], p.Fill[axis])
		}
		t.cells[i] = Rect{X: cellPos[Horizontal], Y: cellPos[Vertical], Width: cellSize[Horizontal], Height: cellSize[Vertical]}

		requested := c.rect()
		allocated := Rect{X: pos[Horizontal], Y: pos[Vertical], Width: size[Horizontal], Height: size[Vertical]}
		d := cctx.Transform.ApplyDistance(allocated.X-requested.X, allocated.Y-requested.Y)
		child.AllocateArea(cctx, requested, allocated, Point{X: offset.X + d.X, Y: offset.Y + d.Y})
	}
}

// alignInCell returns the position and size a child occupies inside a cell.
// A filling child takes the whole cell; otherwise it keeps its requested
// size, capped by the cell, and is placed according to align.
func alignInCell(cellPos, cellSize, requested, align float64, fill bool) (float64, float64) {
	if fill {
		return cellPos, cellSize
	}
	occupied := math.Min(cellSize, requested)
	return cellPos + (cellSize-occupied)*align, occupied
}
