package scene

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"

	"tabula/pkg/layout"
)

const rowScene = `
width      = 200
height     = 100
background = "#eeeeee"

table "root" {
  column_spacing = 5

  rect {
    column = 0
    width  = 50
    height = 20
    fill   = "red"
  }
  rect {
    column   = 1
    width    = 30
    height   = 10
    x_expand = true
  }
}
`

func TestLoadRow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.scene")
	defer teardown()

	s, err := Load("row.hcl", []byte(rowScene))
	require.NoError(t, err)
	require.Equal(t, 200, s.Width)
	require.Equal(t, 100, s.Height)
	require.Equal(t, "#eeeeee", s.Background)
	require.Same(t, s.Root, s.Tables["root"])
	require.Equal(t, 2, s.Root.Len())

	box, ok := s.Root.Child(0).(*layout.Box)
	require.True(t, ok)
	require.Equal(t, "red", box.Fill)
	require.True(t, s.Root.Placement(1).Expand[layout.Horizontal])

	layout.Layout(s.Root, layout.NewContext(nil))
	cols := s.Root.Slots(layout.Horizontal)
	require.Len(t, cols, 2)
	require.InDelta(t, 55, cols[1].Start, 1e-9)
	require.InDelta(t, 85, s.Root.Bounds().Width, 1e-9)
}

func TestCanvasDefaults(t *testing.T) {
	s, err := Load("min.hcl", []byte(`table "t" {}`))
	require.NoError(t, err)
	require.Zero(t, s.Width)
	require.Zero(t, s.Height)
	require.Empty(t, s.Background)
	require.Zero(t, s.Root.Len())
}

func TestNestedTables(t *testing.T) {
	s, err := Load("nested.hcl", []byte(`
table "outer" {
  row_spacing = 2
  text {
    text = "title"
  }
  table "inner" {
    row          = 1
    top_padding  = 3
    border_width = 1
    image {
      path   = "logo.png"
      width  = 16
      height = 16
    }
  }
}
`))
	require.NoError(t, err)
	require.Len(t, s.Tables, 2)

	inner := s.Tables["inner"]
	require.Equal(t, 1, s.Root.FindChild(inner))
	p := s.Root.Placement(1)
	require.Equal(t, 1, p.Start[layout.Vertical])
	require.InDelta(t, 3, p.PadBefore[layout.Vertical], 1e-9)
	require.InDelta(t, 1, inner.BorderWidth(), 1e-9)

	txt, ok := s.Root.Child(0).(*layout.Text)
	require.True(t, ok)
	require.Equal(t, "title", txt.Content)

	img, ok := inner.Child(0).(*layout.Image)
	require.True(t, ok)
	require.Equal(t, "logo.png", img.Path)
	require.InDelta(t, 16, img.Width, 1e-9)
}

func TestFunctions(t *testing.T) {
	s, err := Load("funcs.hcl", []byte(`
table "root" {
  transform = compose(translate(10, 0), scale(2, 2))
  rect {
    fill      = rgb(255, 128, 0)
    width     = max(3, 7)
    stroke    = upper("blue")
    transform = rotate(90)
  }
}
`))
	require.NoError(t, err)

	m := s.Root.Transform()
	require.InDelta(t, 2, m.A, 1e-9)
	require.InDelta(t, 2, m.D, 1e-9)
	require.InDelta(t, 10, m.E, 1e-9)
	require.InDelta(t, 0, m.F, 1e-9)

	box := s.Root.Child(0).(*layout.Box)
	require.Equal(t, "#ff8000", box.Fill)
	require.Equal(t, "BLUE", box.Stroke)
	require.InDelta(t, 7, box.Width, 1e-9)
	r := box.Transform()
	require.InDelta(t, 0, r.A, 1e-9)
	require.InDelta(t, 1, r.B, 1e-9)
	require.InDelta(t, -1, r.C, 1e-9)
	require.InDelta(t, math.Cos(math.Pi/2), r.D, 1e-9)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"syntax", `table "t" {`, "failed to parse"},
		{"no table", `width = 10`, "failed to decode"},
		{"two tables", "table \"a\" {}\ntable \"b\" {}\n", "failed to decode"},
		{"unknown property", "table \"t\" {\n  rect {\n    colour = \"red\"\n  }\n}\n", "no such property"},
		{"bad value", "table \"t\" {\n  border_width = \"wide\"\n}\n", "invalid property value"},
		{"placement on root", "table \"t\" {\n  row = 1\n}\n", "root table"},
		{"duplicate label", "table \"t\" {\n  table \"t\" {}\n}\n", "duplicate table"},
		{"block in leaf", "table \"t\" {\n  rect {\n    rect {}\n  }\n}\n", "Unexpected"},
		{"unknown block", "table \"t\" {\n  circle {}\n}\n", "Unexpected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load("bad.hcl", []byte(tt.src))
			require.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestPropertyErrorsWrap(t *testing.T) {
	_, err := Load("bad.hcl", []byte("table \"t\" {\n  nope = 1\n}\n"))
	require.ErrorIs(t, err, layout.ErrNoSuchProperty)
	require.ErrorContains(t, err, "bad.hcl:2")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "row.hcl")
	require.NoError(t, os.WriteFile(path, []byte(rowScene), 0o644))
	s, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 2, s.Root.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.hcl"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestImagePathsRelativeToScene(t *testing.T) {
	src := []byte("table \"t\" {\n  image {\n    path = \"logo.png\"\n  }\n  image {\n    path = \"/abs/logo.png\"\n  }\n}\n")
	s, err := Load(filepath.Join("scenes", "logo.hcl"), src)
	require.NoError(t, err)
	require.Equal(t, filepath.Join("scenes", "logo.png"), s.Root.Child(0).(*layout.Image).Path)
	require.Equal(t, "/abs/logo.png", s.Root.Child(1).(*layout.Image).Path)
}
