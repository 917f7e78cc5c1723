package layout

// CheckClip reports whether the last pass gave the table less than its
// natural size on either axis.
func (t *Table) CheckClip() bool { return t.checkClip }

// ChildClip returns the cell the child at index must be clipped to when
// painting or picking. Clipping is only needed when the table was shrunk
// and at least one of the rows or columns the child spans could shrink.
func (t *Table) ChildClip(index int) (Rect, bool) {
	if !t.checkClip || t.session == nil {
		return Rect{}, false
	}
	cell, ok := t.Cell(index)
	if !ok || index >= len(t.placements) {
		return Rect{}, false
	}
	p := &t.placements[index]
	for _, axis := range axes {
		slots := t.session.slots[axis]
		for j := p.Start[axis]; j <= p.last(axis) && j < len(slots); j++ {
			if slots[j].shrink {
				return cell, true
			}
		}
	}
	return Rect{}, false
}
