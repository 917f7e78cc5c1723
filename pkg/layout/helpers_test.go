package layout

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

// probe is an Item with a fixed requested area that records what the
// table tells it.
type probe struct {
	area     Rect
	decline  bool
	heightAt func(width float64) float64

	heightQueries []float64
	requested     Rect
	allocated     Rect
	offset        Point
	allocations   int
}

func newProbe(width, height float64) *probe {
	return &probe{area: Rect{Width: width, Height: height}}
}

func (p *probe) RequestedArea(*Context) (bool, Rect) {
	if p.decline {
		return false, Rect{}
	}
	return true, p.area
}

func (p *probe) RequestedHeightForWidth(_ *Context, width float64) float64 {
	if p.heightAt == nil {
		return -1
	}
	p.heightQueries = append(p.heightQueries, width)
	return p.heightAt(width)
}

func (p *probe) AllocateArea(_ *Context, requested, allocated Rect, offset Point) {
	p.requested = requested
	p.allocated = allocated
	p.offset = offset
	p.allocations++
}

// rowOf builds a one-row table with one probe per width.
func rowOf(spacing float64, widths ...float64) (*Table, []*probe) {
	table := NewTable()
	table.SetSpacing(0, spacing)
	probes := make([]*probe, len(widths))
	for i, w := range widths {
		probes[i] = newProbe(w, 10)
		table.Add(probes[i], 0, i)
	}
	return table, probes
}

func checkSlots(t *testing.T, label string, got []SlotInfo, field func(SlotInfo) float64, want ...float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: expected %d slots, got %d", label, len(want), len(got))
	}
	for i := range want {
		if !near(field(got[i]), want[i]) {
			t.Errorf("%s[%d]: expected %.4f, got %.4f", label, i, want[i], field(got[i]))
		}
	}
}

func requisition(s SlotInfo) float64 { return s.Requisition }
func allocation(s SlotInfo) float64  { return s.Allocation }
func slotStart(s SlotInfo) float64   { return s.Start }
func slotEnd(s SlotInfo) float64     { return s.End }
