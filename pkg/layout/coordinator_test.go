package layout

import (
	"math"
	"reflect"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestTextReflowsToColumnWidth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.layout")
	defer teardown()

	text := NewText("aaaa bbbb cccc", 0, 0, -1)
	text.Wrap = true
	table := NewTable()
	p := At(0, 0)
	p.Shrink[Horizontal] = true
	table.AddChild(text, -1, p)
	table.SetSize(100, -1)

	Layout(table, NewContext(MonospaceMeasurer{CharWidth: 10, Height: 10}))

	if got := len(text.Lines()); got != 2 {
		t.Fatalf("Expected text to wrap onto 2 lines, got %d: %q", got, text.Lines())
	}
	if !near(text.LayoutWidth(), 100) {
		t.Errorf("Expected text laid out at width 100, got %f", text.LayoutWidth())
	}
	if !near(table.Natural(Vertical), 20) || !near(table.Allocated(Vertical), 20) {
		t.Errorf("Expected row height 20 after reflow, got natural %f allocated %f",
			table.Natural(Vertical), table.Allocated(Vertical))
	}
}

func TestHeightForWidthIsNegotiatedOnce(t *testing.T) {
	table := NewTable()
	child := newProbe(50, 10)
	child.heightAt = func(w float64) float64 { return 1000 / w }
	table.Add(child, 0, 0)

	LayoutInto(table, NewContext(nil), Rect{Width: 200, Height: 50})

	if len(child.heightQueries) != 1 {
		t.Fatalf("Expected one height-for-width query, got %v", child.heightQueries)
	}
	if !near(child.heightQueries[0], 50) {
		t.Errorf("Expected the child to be asked at its column width 50, got %f", child.heightQueries[0])
	}
	if !near(table.Allocated(Horizontal), 200) || !near(table.Allocated(Vertical), 50) {
		t.Errorf("Expected allocation 200 x 50, got %f x %f", table.Allocated(Horizontal), table.Allocated(Vertical))
	}
}

func TestHeightForWidthDuringAllocation(t *testing.T) {
	table := NewTable()
	child := newProbe(50, 10)
	child.heightAt = func(w float64) float64 { return 30 }
	table.Add(child, 0, 0)

	Layout(table, NewContext(nil))

	if len(child.heightQueries) != 1 {
		t.Fatalf("Expected one height-for-width query, got %v", child.heightQueries)
	}
	if !near(table.Natural(Vertical), 30) {
		t.Errorf("Expected natural height 30 after renegotiation, got %f", table.Natural(Vertical))
	}
	if !near(child.allocated.Height, 30) {
		t.Errorf("Expected child to get height 30, got %f", child.allocated.Height)
	}
}

func TestHeightForWidthOfScaledTable(t *testing.T) {
	table := NewTable()
	table.SetTransform(Scaling(2, 3))
	child := newProbe(50, 10)
	child.heightAt = func(w float64) float64 { return 200 / w }
	table.Add(child, 0, 0)

	ctx := NewContext(nil)
	_, requested := table.RequestedArea(ctx)
	if !near(requested.Width, 100) || !near(requested.Height, 30) {
		t.Fatalf("Expected scaled request 100 x 30, got %f x %f", requested.Width, requested.Height)
	}
	if h := table.RequestedHeightForWidth(ctx, 200); !near(h, 12) {
		t.Errorf("Expected height 12 for width 200, got %f", h)
	}
}

func TestNoDependentChildReturnsMinusOne(t *testing.T) {
	table, _ := rowOf(0, 50)
	ctx := NewContext(nil)
	table.RequestedArea(ctx)
	if h := table.RequestedHeightForWidth(ctx, 80); h != -1 {
		t.Errorf("Expected -1 without width-dependent children, got %f", h)
	}
}

func TestShearSkipsRenegotiation(t *testing.T) {
	table := NewTable()
	table.SetTransform(Shear(0.5, 0))
	child := newProbe(50, 10)
	child.heightAt = func(w float64) float64 { return 99 }
	table.Add(child, 0, 0)

	ctx := NewContext(nil)
	ok, requested := table.RequestedArea(ctx)
	if !ok || !near(requested.Width, 55) || !near(requested.Height, 10) {
		t.Fatalf("Expected sheared request 55 x 10, got %v %v", ok, requested)
	}
	if h := table.RequestedHeightForWidth(ctx, 100); h != -1 {
		t.Errorf("Expected -1 for a sheared table, got %f", h)
	}

	tests := []struct {
		name          string
		area          Rect
		width, height float64
	}{
		{"wider", Rect{Width: 110, Height: 10}, 50, 10},
		{"both larger", Rect{Width: 110, Height: 40}, 100, 20},
		{"shorter", Rect{Width: 55, Height: 5}, 25, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			LayoutInto(table, ctx, tt.area)
			if !near(table.Allocated(Horizontal), tt.width) || !near(table.Allocated(Vertical), tt.height) {
				t.Errorf("Expected uniform scaling to %f x %f, got %f x %f", tt.width, tt.height,
					table.Allocated(Horizontal), table.Allocated(Vertical))
			}
		})
	}
	if len(child.heightQueries) != 0 {
		t.Errorf("Expected no height-for-width queries under shear, got %v", child.heightQueries)
	}
}

func TestAxisAlignedScalingIsPerAxis(t *testing.T) {
	table, _ := rowOf(0, 50)
	LayoutInto(table, NewContext(nil), Rect{Width: 100, Height: 30})
	if !near(table.Allocated(Horizontal), 100) || !near(table.Allocated(Vertical), 30) {
		t.Errorf("Expected 100 x 30, got %f x %f", table.Allocated(Horizontal), table.Allocated(Vertical))
	}
	if table.CheckClip() {
		t.Error("Expected no clipping when growing")
	}
}

func TestChildAlignment(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *ChildPlacement)
		dx     float64
		cell   Rect
		width  float64
	}{
		{"centered", func(p *ChildPlacement) {}, 15, Rect{X: 0, Y: 10, Width: 50, Height: 10}, 20},
		{"end", func(p *ChildPlacement) { p.Align[Horizontal] = 1 }, 30, Rect{X: 0, Y: 10, Width: 50, Height: 10}, 20},
		{"fill", func(p *ChildPlacement) { p.Fill[Horizontal] = true }, 0, Rect{X: 0, Y: 10, Width: 50, Height: 10}, 50},
		{"padded", func(p *ChildPlacement) {
			p.PadBefore[Horizontal] = 4
			p.PadAfter[Horizontal] = 6
		}, 14, Rect{X: 4, Y: 10, Width: 40, Height: 10}, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTable()
			table.Add(NewBox(0, 0, 50, 10), 0, 0)
			b := NewBox(0, 0, 20, 10)
			p := At(1, 0)
			tt.modify(&p)
			table.AddChild(b, -1, p)

			Layout(table, NewContext(nil))

			if want := Translation(tt.dx, 10); b.Transform() != want {
				t.Errorf("Expected transform %v, got %v", want, b.Transform())
			}
			if want := (Rect{X: tt.dx, Y: 10, Width: 20, Height: 10}); b.Bounds() != want {
				t.Errorf("Expected bounds %v, got %v", want, b.Bounds())
			}
			cell, ok := table.Cell(1)
			if !ok || cell != tt.cell {
				t.Errorf("Expected cell %v, got %v (%v)", tt.cell, cell, ok)
			}
			probe := newProbe(20, 10)
			table.AddChild(probe, -1, p)
			Layout(table, NewContext(nil))
			if !near(probe.allocated.Width, tt.width) {
				t.Errorf("Expected allocated width %f, got %f", tt.width, probe.allocated.Width)
			}
		})
	}
}

func TestNestedTables(t *testing.T) {
	outer := NewTable()
	outer.SetSpacing(5, 5)
	a := NewBox(0, 0, 30, 10)
	outer.Add(a, 0, 0)

	inner := NewTable()
	inner.SetSpacing(0, 2)
	b1, b2 := NewBox(0, 0, 20, 5), NewBox(0, 0, 20, 5)
	inner.Add(b1, 0, 0)
	inner.Add(b2, 0, 1)
	outer.Add(inner, 1, 1)

	area := Layout(outer, NewContext(nil))

	if want := (Rect{Width: 77, Height: 20}); area != want {
		t.Errorf("Expected outer area %v, got %v", want, area)
	}
	if inner.Transform() != Translation(35, 15) {
		t.Errorf("Expected inner table moved by (35,15), got %v", inner.Transform())
	}
	if want := (Rect{X: 35, Y: 15, Width: 42, Height: 5}); inner.Bounds() != want {
		t.Errorf("Expected inner bounds %v, got %v", want, inner.Bounds())
	}
	if want := (Rect{X: 35, Y: 15, Width: 20, Height: 5}); b1.Bounds() != want {
		t.Errorf("Expected first inner box at %v, got %v", want, b1.Bounds())
	}
	if want := (Rect{X: 57, Y: 15, Width: 20, Height: 5}); b2.Bounds() != want {
		t.Errorf("Expected second inner box at %v, got %v", want, b2.Bounds())
	}
	if b2.Transform() != Translation(22, 0) {
		t.Errorf("Expected second inner box moved by (22,0) in table space, got %v", b2.Transform())
	}

	if outer.NeedsLayout() || inner.NeedsLayout() {
		t.Error("Expected layout flags cleared after a pass")
	}
	inner.SetBorderWidth(1)
	if !outer.NeedsLayout() {
		t.Error("Expected a change in the inner table to mark the outer table")
	}
}

func TestPositionedTable(t *testing.T) {
	table, probes := rowOf(0, 40)
	table.X, table.Y = 100, 50
	ok, requested := table.RequestedArea(NewContext(nil))
	if !ok || requested != (Rect{X: 100, Y: 50, Width: 40, Height: 10}) {
		t.Fatalf("Expected request at the table position, got %v", requested)
	}
	table.AllocateArea(NewContext(nil), requested, requested, Point{})
	if probes[0].allocated != (Rect{Width: 40, Height: 10}) {
		t.Errorf("Expected child area in table space, got %v", probes[0].allocated)
	}
	if table.Bounds() != requested {
		t.Errorf("Expected bounds %v, got %v", requested, table.Bounds())
	}
}

func TestLayoutIntoMovesTable(t *testing.T) {
	table, probes := rowOf(0, 40)
	LayoutInto(table, NewContext(nil), Rect{X: 10, Y: 20, Width: 40, Height: 10})
	if table.Transform() != Translation(10, 20) {
		t.Errorf("Expected table moved by (10,20), got %v", table.Transform())
	}
	if probes[0].offset != (Point{X: 10, Y: 20}) {
		t.Errorf("Expected device offset (10,20) for the child, got %v", probes[0].offset)
	}
}

func TestHiddenTable(t *testing.T) {
	table, _ := rowOf(0, 40)
	table.Hidden = true
	if area := Layout(table, NewContext(nil)); area != (Rect{}) {
		t.Errorf("Expected hidden table to decline allocation, got %v", area)
	}

	outer := NewTable()
	outer.Add(table, 0, 0)
	outer.Add(newProbe(10, 10), 0, 1)
	Layout(outer, NewContext(nil))
	if _, ok := outer.Cell(0); ok {
		t.Error("Expected hidden child table to be excluded")
	}
	checkSlots(t, "requisition", outer.Slots(Horizontal), requisition, 0, 10)
}

func TestDeterminism(t *testing.T) {
	build := func() *Table {
		table := NewTable()
		table.SetSpacing(2, 3)
		table.SetBorderWidth(1)
		for i, w := range []float64{12, 40, 7, 25} {
			p := At(i/2, i%3)
			p.Span[Horizontal] = 1 + i%2
			p.Expand[Horizontal] = i == 1
			p.Shrink[Vertical] = true
			table.AddChild(newProbe(w, float64(4+i)), -1, p)
		}
		table.SetSize(90, 8)
		return table
	}
	one, two := build(), build()
	Layout(one, NewContext(nil))
	Layout(two, NewContext(nil))
	Layout(two, NewContext(nil))

	for _, axis := range axes {
		if !reflect.DeepEqual(one.Slots(axis), two.Slots(axis)) {
			t.Errorf("%s slots differ:\n%v\n%v", axis, one.Slots(axis), two.Slots(axis))
		}
	}
	if !reflect.DeepEqual(one.cells, two.cells) {
		t.Errorf("cells differ:\n%v\n%v", one.cells, two.cells)
	}
}

func TestSpanContainment(t *testing.T) {
	table := NewTable()
	table.SetSpacing(4, 4)
	placements := []ChildPlacement{At(0, 0), At(0, 1), At(1, 0), At(2, 2)}
	placements[2].Span = [2]int{3, 2}
	placements[2].PadBefore = [2]float64{3, 1}
	placements[2].PadAfter = [2]float64{2, 2}
	placements[3].Fill = [2]bool{true, true}
	for i, p := range placements {
		table.AddChild(newProbe(float64(10+15*i), float64(5+i)), -1, p)
	}

	for _, width := range []float64{-1, 40, 200} {
		table.SetSize(width, -1)
		Layout(table, NewContext(nil))
		cols, rows := table.Slots(Horizontal), table.Slots(Vertical)
		for i, p := range placements {
			cell, ok := table.Cell(i)
			if !ok {
				t.Fatalf("width %.0f: expected cell for child %d", width, i)
			}
			left := cols[p.Start[Horizontal]].Start
			right := cols[p.last(Horizontal)].End
			top := rows[p.Start[Vertical]].Start
			bottom := rows[p.last(Vertical)].End
			if cell.X < left-tolerance || cell.Right() > right+tolerance ||
				cell.Y < top-tolerance || cell.Bottom() > bottom+tolerance {
				t.Errorf("width %.0f: child %d cell %v outside [%f,%f]x[%f,%f]",
					width, i, cell, left, right, top, bottom)
			}
		}
	}
}

type reentrant struct {
	*probe
	table *Table
}

func (r reentrant) RequestedArea(ctx *Context) (bool, Rect) {
	return r.table.RequestedArea(ctx)
}

func TestReentrantLayoutPanics(t *testing.T) {
	table := NewTable()
	table.Add(reentrant{probe: newProbe(10, 10), table: table}, 0, 0)

	defer func() {
		if recover() == nil {
			t.Error("Expected re-entrant layout to panic")
		}
	}()
	Layout(table, NewContext(nil))
}

// contains reports whether inner lies inside outer, up to rounding.
func contains(outer, inner Rect) bool {
	const slack = 1e-6
	return inner.X >= outer.X-slack && inner.Y >= outer.Y-slack &&
		inner.Right() <= outer.Right()+slack && inner.Bottom() <= outer.Bottom()+slack
}

func nearRect(a, b Rect) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Width, b.Width) && near(a.Height, b.Height)
}

func TestReflowedTextBoundsInMovedTable(t *testing.T) {
	text := NewText("aaaa bbbb cccc", 0, 0, -1)
	text.Wrap = true
	table := NewTable()
	table.SetSize(100, -1)
	p := At(0, 0)
	p.Fill = [2]bool{true, true}
	table.AddChild(text, -1, p)

	LayoutInto(table, NewContext(MonospaceMeasurer{CharWidth: 10, Height: 10}), Rect{X: 50, Width: 200, Height: 100})

	if table.Bounds().X != 50 {
		t.Fatalf("Expected table moved to x 50, got %v", table.Bounds())
	}
	if want := (Rect{X: 50, Width: 200, Height: 10}); text.Bounds() != want {
		t.Errorf("Expected text bounds %v, got %v", want, text.Bounds())
	}
	if !contains(table.Bounds(), text.Bounds()) {
		t.Errorf("Expected text %v inside its table %v", text.Bounds(), table.Bounds())
	}
}

func TestReflowedTextBoundsUnderRotation(t *testing.T) {
	outer := NewTable()
	outer.SetTransform(Rotation(math.Pi / 6))
	outer.Add(NewBox(0, 0, 30, 10), 0, 0)
	inner := NewTable()
	text := NewText("aaaa bbbb cccc", 0, 0, -1)
	text.Wrap = true
	inner.Add(text, 0, 0)
	outer.Add(inner, 0, 1)

	Layout(outer, NewContext(MonospaceMeasurer{CharWidth: 10, Height: 10}))

	device := Mul(Mul(outer.ContentTransform(), inner.ContentTransform()), text.Transform())
	local := Rect{Width: text.LayoutWidth(), Height: float64(len(text.Lines())) * text.LineHeight()}
	if want := device.BoundingBox(local); !nearRect(text.Bounds(), want) {
		t.Errorf("Expected text bounds %v, got %v", want, text.Bounds())
	}
	if !contains(inner.Bounds(), text.Bounds()) {
		t.Errorf("Expected text %v inside its table %v", text.Bounds(), inner.Bounds())
	}
	if !contains(outer.Bounds(), inner.Bounds()) {
		t.Errorf("Expected inner table %v inside outer table %v", inner.Bounds(), outer.Bounds())
	}
}

func TestLeafEditsMarkTable(t *testing.T) {
	outer := NewTable()
	inner := NewTable()
	b := NewBox(0, 0, 20, 10)
	inner.Add(b, 0, 0)
	outer.Add(inner, 0, 0)
	Layout(outer, NewContext(nil))

	if err := b.SetProperty("width", 90.0); err != nil {
		t.Fatalf("SetProperty failed: %v", err)
	}
	if !inner.NeedsLayout() || !outer.NeedsLayout() {
		t.Error("Expected a box edit to mark every enclosing table")
	}

	Layout(outer, NewContext(nil))
	b.SetTransform(Scaling(2, 2))
	if !outer.NeedsLayout() {
		t.Error("Expected a transform change to mark the tables")
	}

	inner.RemoveChild(0)
	Layout(outer, NewContext(nil))
	if err := b.SetProperty("height", 5.0); err != nil {
		t.Fatalf("SetProperty failed: %v", err)
	}
	if inner.NeedsLayout() {
		t.Error("Expected a removed box to leave its former table alone")
	}
}
