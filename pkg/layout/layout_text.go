package layout

import (
	"math"
	"strings"
)

// Text is a block of text. With Wrap set its height depends on the width it
// is given, which makes tables renegotiate its height once its columns are
// known.
type Text struct {
	simple

	Content string
	X, Y    float64

	// Width is the initial wrap width; negative lays the text out on its
	// natural, unwrapped lines.
	Width float64

	// Wrap lets the text reflow to the width its container allocates.
	Wrap bool

	// Color is a colour name or hex string; empty means black.
	Color string

	lines       []string
	lineHeight  float64
	layoutWidth float64
}

// NewText creates a text item with identity transform.
func NewText(content string, x, y, width float64) *Text {
	return &Text{
		simple:  simple{transform: Identity()},
		Content: content,
		X:       x,
		Y:       y,
		Width:   width,
	}
}

// Lines returns the lines computed by the last pass.
func (t *Text) Lines() []string { return t.lines }

// LineHeight returns the line height used by the last pass.
func (t *Text) LineHeight() float64 { return t.lineHeight }

// LayoutWidth returns the width the text was last laid out at.
func (t *Text) LayoutWidth() float64 { return t.layoutWidth }

// layout breaks the text at width (or at newlines only if width < 0) and
// returns its extent in its own space.
func (t *Text) layout(m TextMeasurer, width float64) Rect {
	t.lineHeight = m.LineHeight()
	if width >= 0 {
		t.lines = m.Wrap(t.Content, width)
		t.layoutWidth = width
	} else {
		t.lines = strings.Split(t.Content, "\n")
		t.layoutWidth = 0
		for _, line := range t.lines {
			w, _ := m.Measure(line)
			t.layoutWidth = math.Max(t.layoutWidth, w)
		}
	}
	return Rect{
		X:      t.X,
		Y:      t.Y,
		Width:  t.layoutWidth,
		Height: float64(len(t.lines)) * t.lineHeight,
	}
}

func (t *Text) RequestedArea(ctx *Context) (bool, Rect) {
	if t.Hidden {
		return false, Rect{}
	}
	return true, t.requestArea(ctx, t.layout(ctx.measurer(), t.Width))
}

// RequestedHeightForWidth reflows wrapping text at width. Text under
// rotation or shear keeps its height.
func (t *Text) RequestedHeightForWidth(ctx *Context, width float64) float64 {
	if t.Hidden || !t.Wrap {
		return -1
	}
	m := t.Transform()
	if !m.IsAxisAligned() || m.A == 0 {
		return -1
	}
	t.local = t.layout(ctx.measurer(), width/math.Abs(m.A))
	return t.local.Height * math.Abs(m.D)
}

func (t *Text) AllocateArea(ctx *Context, requested, allocated Rect, _ Point) {
	t.allocate(ctx, requested, allocated)
}
