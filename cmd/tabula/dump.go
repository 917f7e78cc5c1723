package main

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"tabula/pkg/layout"
	"tabula/pkg/scene"
)

// dump prints the slots and child cells of every table in s.
func dump(w io.Writer, s *scene.Scene) error {
	names := make(map[*layout.Table]string, len(s.Tables))
	for name, t := range s.Tables {
		names[t] = name
	}
	for i, t := range collectTables(s.Root, nil) {
		name, ok := names[t]
		if !ok {
			name = fmt.Sprintf("table %d", i)
		}
		fmt.Fprintf(w, "%s\n\n", name)
		for _, data := range [][][]string{slotData(t), childData(t)} {
			out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\n\n", out)
		}
	}
	return nil
}

// collectTables lists t and its nested tables, depth first.
func collectTables(t *layout.Table, list []*layout.Table) []*layout.Table {
	list = append(list, t)
	for _, c := range t.Children() {
		if nested, ok := c.(*layout.Table); ok {
			list = collectTables(nested, list)
		}
	}
	return list
}

func slotData(t *layout.Table) [][]string {
	data := [][]string{
		{"Axis", "Slot", "Requisition", "Allocation", "Start", "End", "Flags"},
	}
	for _, axis := range []layout.Axis{layout.Horizontal, layout.Vertical} {
		for i, slot := range t.Slots(axis) {
			data = append(data, []string{
				axis.String(),
				fmt.Sprintf("%d", i),
				fmt.Sprintf("%.2f", slot.Requisition),
				fmt.Sprintf("%.2f", slot.Allocation),
				fmt.Sprintf("%.2f", slot.Start),
				fmt.Sprintf("%.2f", slot.End),
				slotFlags(slot),
			})
		}
	}
	return data
}

func slotFlags(slot layout.SlotInfo) string {
	switch {
	case slot.Expand && slot.Shrink:
		return "expand shrink"
	case slot.Expand:
		return "expand"
	case slot.Shrink:
		return "shrink"
	}
	return ""
}

func childData(t *layout.Table) [][]string {
	data := [][]string{
		{"Child", "Kind", "Columns", "Rows", "Cell"},
	}
	for i, c := range t.Children() {
		p := t.Placement(i)
		cell := "excluded"
		if r, ok := t.Cell(i); ok {
			cell = fmt.Sprintf("%.1f,%.1f %.1fx%.1f", r.X, r.Y, r.Width, r.Height)
		}
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			kind(c),
			span(p.Start[layout.Horizontal], p.Span[layout.Horizontal]),
			span(p.Start[layout.Vertical], p.Span[layout.Vertical]),
			cell,
		})
	}
	return data
}

func span(start, n int) string {
	if n == 1 {
		return fmt.Sprintf("%d", start)
	}
	return fmt.Sprintf("%d-%d", start, start+n-1)
}

func kind(item layout.Item) string {
	switch item.(type) {
	case *layout.Table:
		return "table"
	case *layout.Box:
		return "rect"
	case *layout.Text:
		return "text"
	case *layout.Image:
		return "image"
	}
	return fmt.Sprintf("%T", item)
}
