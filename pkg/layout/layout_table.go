package layout

import "slices"

// Table is a container that lays its children out on a grid of rows and
// columns. Children are painted in insertion order, bottom to top.
//
// The zero value is not usable; create tables with NewTable.
type Table struct {
	// X and Y position the table's origin in its parent's space.
	X, Y float64

	// Hidden tables decline allocation.
	Hidden bool

	width, height float64 // fixed size overrides, < 0 = automatic
	border        float64
	dims          [2]dimension

	children   []Item
	placements []ChildPlacement // parallel to children
	transform  Transform
	parent     *Table

	session   *session
	cells     []Rect // cell rectangles from the last allocation, table space
	natural   [2]float64
	allocated [2]float64
	checkClip bool
	bounds    Rect
	lastWidth float64 // width of the last height-for-width renegotiation

	needsLayout bool
	inLayout    bool
}

// NewTable creates an empty table with automatic size and no spacing.
func NewTable() *Table {
	return &Table{
		width:       -1,
		height:      -1,
		transform:   Identity(),
		lastWidth:   -1,
		needsLayout: true,
	}
}

// AddChild inserts item with placement p at position in the child list.
// A negative or out-of-range position appends. The table grows to hold
// the cells p refers to.
func (t *Table) AddChild(item Item, position int, p ChildPlacement) {
	p.normalize()
	if position < 0 || position > len(t.children) {
		position = len(t.children)
	}
	t.children = slices.Insert(t.children, position, item)
	t.placements = slices.Insert(t.placements, position, p)
	if child, ok := item.(attachable); ok {
		child.attach(t)
	}
	t.ensureSlots(&t.placements[position])
	t.MarkNeedsLayout()
}

// Add appends item at the given cell with default placement options.
func (t *Table) Add(item Item, row, column int) {
	t.AddChild(item, -1, At(row, column))
}

// MoveChild moves the child at from to position to, keeping its placement.
func (t *Table) MoveChild(from, to int) {
	if from < 0 || from >= len(t.children) || from == to {
		return
	}
	item, p := t.children[from], t.placements[from]
	t.children = slices.Delete(t.children, from, from+1)
	t.placements = slices.Delete(t.placements, from, from+1)
	to = max(0, min(to, len(t.children)))
	t.children = slices.Insert(t.children, to, item)
	t.placements = slices.Insert(t.placements, to, p)
	t.MarkNeedsLayout()
}

// RemoveChild removes the child at index. Rows and columns are kept.
func (t *Table) RemoveChild(index int) {
	if index < 0 || index >= len(t.children) {
		return
	}
	if child, ok := t.children[index].(attachable); ok {
		child.detach(t)
	}
	t.children = slices.Delete(t.children, index, index+1)
	t.placements = slices.Delete(t.placements, index, index+1)
	t.MarkNeedsLayout()
}

// FindChild returns the index of item, or -1.
func (t *Table) FindChild(item Item) int {
	return slices.Index(t.children, item)
}

// ensureSlots grows both axes so that p fits.
func (t *Table) ensureSlots(p *ChildPlacement) {
	for _, axis := range axes {
		t.dims[axis].grow(p.Start[axis] + p.Span[axis])
	}
}

// MarkNeedsLayout flags this table and its ancestors for a new pass.
func (t *Table) MarkNeedsLayout() {
	for node := t; node != nil; node = node.parent {
		node.needsLayout = true
	}
}

// attachable is implemented by the nodes that remember the table holding
// them, so that their own edits reach it.
type attachable interface {
	attach(parent *Table)
	detach(parent *Table)
}

func (t *Table) attach(parent *Table) { t.parent = parent }

func (t *Table) detach(parent *Table) {
	if t.parent == parent {
		t.parent = nil
	}
}

// NeedsLayout reports whether the table changed since its last pass.
func (t *Table) NeedsLayout() bool { return t.needsLayout }

// Len returns the number of children.
func (t *Table) Len() int { return len(t.children) }

// Child returns the child at index.
func (t *Table) Child(index int) Item { return t.children[index] }

// Children returns the children in paint order. The slice must not be modified.
func (t *Table) Children() []Item { return t.children }

// Placement returns the placement of the child at index.
func (t *Table) Placement(index int) ChildPlacement { return t.placements[index] }

// SetPlacement replaces the placement of the child at index.
func (t *Table) SetPlacement(index int, p ChildPlacement) {
	p.normalize()
	t.placements[index] = p
	t.ensureSlots(&t.placements[index])
	t.MarkNeedsLayout()
}

// Rows returns the number of rows.
func (t *Table) Rows() int { return t.dims[Vertical].count() }

// Columns returns the number of columns.
func (t *Table) Columns() int { return t.dims[Horizontal].count() }

// SetRowSpacing overrides the spacing after one row. A negative value
// restores the table default.
func (t *Table) SetRowSpacing(row int, spacing float64) {
	t.setSlotSpacing(Vertical, row, spacing)
}

// SetColumnSpacing overrides the spacing after one column. A negative value
// restores the table default.
func (t *Table) SetColumnSpacing(column int, spacing float64) {
	t.setSlotSpacing(Horizontal, column, spacing)
}

func (t *Table) setSlotSpacing(axis Axis, index int, spacing float64) {
	if index < 0 {
		return
	}
	d := &t.dims[axis]
	d.grow(index + 1)
	if spacing < 0 {
		spacing = -1
	}
	d.overrides[index] = spacing
	t.MarkNeedsLayout()
}

// SetTransform replaces the table-to-parent transformation.
func (t *Table) SetTransform(m Transform) {
	t.transform = m
	t.MarkNeedsLayout()
}

// Transform returns the table-to-parent transformation. It does not include
// the X, Y position.
func (t *Table) Transform() Transform { return t.transform }

// ContentTransform maps the space children are laid out in to the parent's
// space: the table transform followed by the X, Y position.
func (t *Table) ContentTransform() Transform {
	return Mul(t.transform, Translation(t.X, t.Y))
}

// Visible reports whether the table takes part in layout.
func (t *Table) Visible() bool { return !t.Hidden }

// Bounds returns the device-space bounds computed by the last pass.
func (t *Table) Bounds() Rect { return t.bounds }

// Natural returns the natural size of an axis from the last pass,
// including the border.
func (t *Table) Natural(axis Axis) float64 { return t.natural[axis] }

// Allocated returns the size an axis was allocated in the last pass.
func (t *Table) Allocated(axis Axis) float64 { return t.allocated[axis] }

// Slots returns a copy of the slot state of one axis after the last pass.
func (t *Table) Slots(axis Axis) []SlotInfo {
	if t.session == nil {
		return nil
	}
	slots := t.session.slots[axis]
	out := make([]SlotInfo, len(slots))
	for i, s := range slots {
		out[i] = SlotInfo{
			Requisition: s.requisition,
			Allocation:  s.allocation,
			Start:       s.start,
			End:         s.end,
			Expand:      s.expand,
			Shrink:      s.shrink,
		}
	}
	return out
}

// Cell returns the cell rectangle, inside padding, that the child at index
// was given by the last pass, in the table's content space. ok is false if
// the child was excluded.
func (t *Table) Cell(index int) (Rect, bool) {
	if index < 0 || index >= len(t.cells) {
		return Rect{}, false
	}
	r := t.cells[index]
	return r, r.Width >= 0
}

// requestedSize returns the table's size in its own space: the fixed
// override where set, the natural size otherwise.
func (t *Table) requestedSize() (float64, float64) {
	w, h := t.natural[Horizontal], t.natural[Vertical]
	if t.width >= 0 {
		w = t.width
	}
	if t.height >= 0 {
		h = t.height
	}
	return w, h
}

// enter guards against a child callback laying out this table again while
// a pass is running.
func (t *Table) enter() {
	if t.inLayout {
		panic("layout: re-entrant layout of a table during its own layout pass")
	}
	t.inLayout = true
}

func (t *Table) leave() { t.inLayout = false }

// SetSize fixes the table size in its own space. Negative values restore
// automatic sizing on that axis.
func (t *Table) SetSize(width, height float64) {
	t.width, t.height = width, height
	t.MarkNeedsLayout()
}

// SetSpacing sets the default spacing between rows and between columns.
func (t *Table) SetSpacing(rowSpacing, columnSpacing float64) {
	t.dims[Vertical].spacing = max(rowSpacing, 0)
	t.dims[Horizontal].spacing = max(columnSpacing, 0)
	t.MarkNeedsLayout()
}

// SetHomogeneous forces all rows, or all columns, to the same size.
func (t *Table) SetHomogeneous(rows, columns bool) {
	t.dims[Vertical].homogeneous = rows
	t.dims[Horizontal].homogeneous = columns
	t.MarkNeedsLayout()
}

// SetBorderWidth sets the space kept free around all cells.
func (t *Table) SetBorderWidth(width float64) {
	t.border = max(width, 0)
	t.MarkNeedsLayout()
}

// BorderWidth returns the space kept free around all cells.
func (t *Table) BorderWidth() float64 { return t.border }
