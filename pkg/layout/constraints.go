package layout

import "math"

// shrinkEpsilon ends the shrink rounds once the remaining deficit is below
// anything a renderer could show.
const shrinkEpsilon = 1e-9

// solveAxis computes slot requisitions and the natural size of one axis
// from the sizes negotiated with the children.
func (t *Table) solveAxis(axis Axis) {
	s := t.session
	slots := s.slots[axis]

	t.resetSlots(slots)
	t.aggregateSingleSpans(axis, slots)
	t.normalizeHomogeneous(axis, slots)
	t.reconcileSpans(axis, slots)
	t.finalizeFlags(slots)
	t.normalizeHomogeneous(axis, slots)

	natural := 2 * t.border
	for i := range slots {
		natural += slots[i].requisition
	}
	natural += t.dims[axis].totalSpacing()
	t.natural[axis] = natural

	tracer().Debugf("table %s: %d slots, natural size %.2f", axis, len(slots), natural)
}

// resetSlots is phase A.
func (t *Table) resetSlots(slots []slot) {
	for i := range slots {
		slots[i] = slot{shrink: true, empty: true, needShrink: true}
	}
}

// aggregateSingleSpans is phase B: every child spanning exactly one slot
// raises that slot's requisition to what it needs.
func (t *Table) aggregateSingleSpans(axis Axis, slots []slot) {
	for i := range t.placements {
		p := &t.placements[i]
		c := &t.session.children[i]
		if c.size[axis] < 0 || p.Span[axis] != 1 {
			continue
		}
		sl := &slots[p.Start[axis]]
		need := c.size[axis] + p.PadBefore[axis] + p.PadAfter[axis]
		sl.requisition = math.Max(sl.requisition, need)
		sl.empty = false
		if p.Expand[axis] {
			sl.expand = true
		}
		if !p.Shrink[axis] {
			sl.shrink = false
		}
	}
}

// normalizeHomogeneous is phase C.
func (t *Table) normalizeHomogeneous(axis Axis, slots []slot) {
	if !t.dims[axis].homogeneous {
		return
	}
	m := 0.0
	for i := range slots {
		m = math.Max(m, slots[i].requisition)
	}
	for i := range slots {
		slots[i].requisition = m
	}
}

// reconcileSpans is phase D: children spanning several slots grow those
// slots when the slots together are too small for them.
func (t *Table) reconcileSpans(axis Axis, slots []slot) {
	d := &t.dims[axis]
	for i := range t.placements {
		p := &t.placements[i]
		c := &t.session.children[i]
		if c.size[axis] < 0 || p.Span[axis] <= 1 {
			continue
		}
		first, last := p.Start[axis], p.last(axis)

		available := d.spacingWithin(first, last)
		nExpand := 0
		allShrink := true
		for j := first; j <= last; j++ {
			available += slots[j].requisition
			slots[j].empty = false
			if slots[j].expand {
				nExpand++
			}
			if !slots[j].shrink {
				allShrink = false
			}
		}

		needed := c.size[axis] + p.PadBefore[axis] + p.PadAfter[axis]
		if needed > available {
			force := nExpand == 0
			n := nExpand
			if force {
				n = p.Span[axis]
			}
			share := (needed - available) / float64(n)
			for j := first; j <= last; j++ {
				if force {
					slots[j].needExpand = true
					slots[j].requisition += share
				} else if slots[j].expand {
					slots[j].requisition += share
				}
			}
		}

		if !p.Shrink[axis] && allShrink {
			for j := first; j <= last; j++ {
				slots[j].needShrink = false
			}
		}
	}
}

// finalizeFlags is phase E, without the second homogeneous pass.
func (t *Table) finalizeFlags(slots []slot) {
	for i := range slots {
		sl := &slots[i]
		if sl.empty {
			sl.expand = false
			sl.shrink = false
			continue
		}
		if sl.needExpand {
			sl.expand = true
		}
		if !sl.needShrink {
			sl.shrink = false
		}
	}
}

// allocateAxis distributes target over the slots of one axis and computes
// the slot offsets. target is in table space and includes the border.
func (t *Table) allocateAxis(axis Axis, target float64) {
	d := &t.dims[axis]
	slots := t.session.slots[axis]
	natural := t.natural[axis]

	nExpand, nShrink := 0, 0
	for i := range slots {
		slots[i].allocation = slots[i].requisition
		if slots[i].expand {
			nExpand++
		}
		if slots[i].shrink {
			nShrink++
		}
	}

	switch {
	case len(slots) == 0:
	case d.homogeneous && (nExpand > 0 || len(t.children) == 0 || (target < natural && nShrink > 0)):
		size := (target - 2*t.border - d.totalSpacing()) / float64(len(slots))
		size = math.Max(size, 0)
		for i := range slots {
			slots[i].allocation = size
		}
	case target > natural && nExpand > 0:
		extra := (target - natural) / float64(nExpand)
		for i := range slots {
			if slots[i].expand {
				slots[i].allocation += extra
			}
		}
	case target < natural:
		if residual := shrinkSlots(slots, natural-target); residual > shrinkEpsilon {
			tracer().Infof("table %s: %.2f could not be taken from shrinkable slots", axis, residual)
		}
	}

	pos := t.border
	for i := range slots {
		slots[i].start = pos
		slots[i].end = pos + slots[i].allocation
		pos = slots[i].end + d.spacingAfter(i)
	}
	t.allocated[axis] = target
}

// shrinkSlots takes deficit away from the shrinkable slots in rounds. Each
// round removes an equal share of what is left from every slot that can
// still give something; slots never go below zero. It returns the part of
// the deficit nobody could absorb.
func shrinkSlots(slots []slot, deficit float64) float64 {
	eligible := make([]bool, len(slots))
	n := 0
	for i := range slots {
		if slots[i].shrink && slots[i].allocation > 0 {
			eligible[i] = true
			n++
		}
	}
	for deficit > shrinkEpsilon && n > 0 {
		share := deficit / float64(n)
		for i := range slots {
			if !eligible[i] {
				continue
			}
			take := math.Min(share, slots[i].allocation)
			slots[i].allocation -= take
			deficit -= take
			if slots[i].allocation <= 0 {
				slots[i].allocation = 0
				eligible[i] = false
				n--
			}
		}
	}
	return math.Max(deficit, 0)
}
