package layout

// dimension holds the persistent configuration of one table axis: how many
// slots it has, the spacing after each slot and whether all slots share a
// single size.
type dimension struct {
	spacing     float64   // default spacing after each slot
	homogeneous bool      // force equal slot sizes
	overrides   []float64 // per-slot spacing, < 0 means use the default
}

// count returns the number of slots.
func (d *dimension) count() int { return len(d.overrides) }

// grow makes sure the axis has at least n slots. New slots use the default
// spacing.
func (d *dimension) grow(n int) {
	for len(d.overrides) < n {
		d.overrides = append(d.overrides, -1)
	}
}

// spacingAfter returns the spacing between slot i and slot i+1. There is no
// spacing after the last slot.
func (d *dimension) spacingAfter(i int) float64 {
	if i < 0 || i >= len(d.overrides)-1 {
		return 0
	}
	if s := d.overrides[i]; s >= 0 {
		return s
	}
	return d.spacing
}

// spacingWithin returns the total spacing between slots first..last.
func (d *dimension) spacingWithin(first, last int) float64 {
	total := 0.0
	for i := first; i < last; i++ {
		total += d.spacingAfter(i)
	}
	return total
}

// totalSpacing returns the spacing between all slots of the axis.
func (d *dimension) totalSpacing() float64 {
	return d.spacingWithin(0, d.count()-1)
}

// ChildPlacement describes where and how one child sits in its table.
// Arrays are indexed by Axis.
type ChildPlacement struct {
	Start     [2]int     // first column / row
	Span      [2]int     // number of columns / rows, at least 1
	PadBefore [2]float64 // left / top padding
	PadAfter  [2]float64 // right / bottom padding
	Align     [2]float64 // position inside the cell, 0 = start, 1 = end
	Expand    [2]bool    // slots take a share of extra space
	Fill      [2]bool    // the child takes the whole cell
	Shrink    [2]bool    // slots may get less than their natural size
}

// DefaultPlacement returns a placement in the first cell, spanning one slot
// per axis, centered, without padding or flags.
func DefaultPlacement() ChildPlacement {
	return ChildPlacement{
		Span:  [2]int{1, 1},
		Align: [2]float64{0.5, 0.5},
	}
}

// At returns a default placement in the given cell.
func At(row, column int) ChildPlacement {
	p := DefaultPlacement()
	p.Start = [2]int{column, row}
	return p
}

// normalize clamps starts and spans to at least 0 and 1, align to [0, 1].
func (p *ChildPlacement) normalize() {
	for _, axis := range axes {
		if p.Start[axis] < 0 {
			p.Start[axis] = 0
		}
		if p.Span[axis] < 1 {
			p.Span[axis] = 1
		}
		p.Align[axis] = clamp(p.Align[axis], 0, 1)
	}
}

// last returns the index of the last spanned slot on an axis.
func (p *ChildPlacement) last(axis Axis) int {
	return p.Start[axis] + p.Span[axis] - 1
}
