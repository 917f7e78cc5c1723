package layout

// slot is the per-pass working state of one row or column.
type slot struct {
	requisition float64 // natural size
	allocation  float64 // final size
	start, end  float64 // offsets inside the table

	expand, shrink, empty  bool
	needExpand, needShrink bool
}

// childRequest is what a child asked for during the current pass, in the
// table's coordinate space. A negative size on an axis excludes the child
// from that axis.
type childRequest struct {
	pos  [2]float64
	size [2]float64
}

func (c *childRequest) exclude() {
	c.size = [2]float64{-1, -1}
}

func (c *childRequest) excluded() bool {
	return c.size[Horizontal] < 0 || c.size[Vertical] < 0
}

func (c *childRequest) rect() Rect {
	return Rect{X: c.pos[Horizontal], Y: c.pos[Vertical], Width: c.size[Horizontal], Height: c.size[Vertical]}
}

// session is rebuilt at the start of every layout pass. The child requests
// are dropped once the children have been allocated; the slots stay around
// for clipping until the next pass.
type session struct {
	slots    [2][]slot
	children []childRequest
}

func newSession(t *Table) *session {
	s := &session{children: make([]childRequest, len(t.children))}
	for _, axis := range axes {
		s.slots[axis] = make([]slot, t.dims[axis].count())
	}
	return s
}

// SlotInfo is a read-only view of one row or column after a pass.
type SlotInfo struct {
	Requisition float64
	Allocation  float64
	Start, End  float64
	Expand      bool
	Shrink      bool
}
