package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"tabula/pkg/layout"
)

// Renderer paints a laid out item tree onto a gg context.
type Renderer struct {
	context    *gg.Context
	face       font.Face
	background color.Color

	// DebugOverlay outlines the cells of every table.
	DebugOverlay bool

	// gg keeps the clip mask across Pop, so the current clip is tracked
	// here and restored by hand.
	mask *image.Alpha
}

// NewRenderer creates a renderer with a new canvas.
func NewRenderer(width, height int) *Renderer {
	return newRenderer(gg.NewContext(width, height))
}

// NewRendererForRGBA creates a renderer that paints onto img.
func NewRendererForRGBA(img *image.RGBA) *Renderer {
	return newRenderer(gg.NewContextForRGBA(img))
}

func newRenderer(dc *gg.Context) *Renderer {
	dc.SetFontFace(basicfont.Face7x13)
	return &Renderer{context: dc, face: basicfont.Face7x13, background: color.White}
}

// SetBackground sets the colour the canvas is cleared to. nil keeps the
// canvas content.
func (r *Renderer) SetBackground(c color.Color) { r.background = c }

// SetFontFace sets the face text is drawn with. It should match the face
// the scene was measured with.
func (r *Renderer) SetFontFace(face font.Face) {
	r.face = face
	r.context.SetFontFace(face)
}

// Render paints root and its descendants, bottom to top.
func (r *Renderer) Render(root layout.Node) {
	if r.background != nil {
		r.context.SetColor(r.background)
		r.context.Clear()
	}
	r.restoreClip(nil)
	r.drawNode(root, layout.Identity())
}

// Image returns the canvas.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}

func (r *Renderer) drawNode(node layout.Node, parent layout.Transform) {
	if node == nil || !node.Visible() {
		return
	}
	m := node.Transform()
	if t, ok := node.(*layout.Table); ok {
		m = t.ContentTransform()
	}

	r.context.Push()
	defer r.context.Pop()
	applyTransform(r.context, m)

	switch n := node.(type) {
	case *layout.Table:
		r.drawTable(n, layout.Mul(parent, m))
	case *layout.Box:
		r.drawBox(n)
	case *layout.Text:
		r.drawText(n)
	case *layout.Image:
		r.drawImage(n)
	}
}

// applyTransform reproduces m with gg's elementary operations.
func applyTransform(dc *gg.Context, m layout.Transform) {
	if m.IsIdentity() {
		return
	}
	d := m.Decompose()
	dc.Translate(d.TranslateX, d.TranslateY)
	dc.Rotate(d.Rotation)
	dc.Shear(d.Shear, 0)
	dc.Scale(d.ScaleX, d.ScaleY)
}

// drawTable paints the children of t. device maps the table's content space
// to the canvas.
func (r *Renderer) drawTable(t *layout.Table, device layout.Transform) {
	for i, child := range t.Children() {
		node, ok := child.(layout.Node)
		if !ok {
			continue
		}
		if _, ok := t.Cell(i); !ok {
			continue
		}
		clip, clipped := t.ChildClip(i)
		if !clipped {
			r.drawNode(node, device)
			continue
		}
		saved := r.mask
		r.clipTo(device, clip)
		r.drawNode(node, device)
		r.restoreClip(saved)
	}
	if r.DebugOverlay {
		r.drawGrid(t)
	}
}

// clipTo narrows the current clip to cell, given in the space device maps
// to the canvas.
func (r *Renderer) clipTo(device layout.Transform, cell layout.Rect) {
	mc := gg.NewContext(r.context.Width(), r.context.Height())
	corners := [4][2]float64{
		{cell.X, cell.Y},
		{cell.Right(), cell.Y},
		{cell.Right(), cell.Bottom()},
		{cell.X, cell.Bottom()},
	}
	for i, p := range corners {
		x, y := device.Apply(p[0], p[1])
		if i == 0 {
			mc.MoveTo(x, y)
		} else {
			mc.LineTo(x, y)
		}
	}
	mc.ClosePath()
	mc.SetRGB(0, 0, 0)
	mc.Fill()

	mask := mc.AsMask()
	if r.mask != nil {
		for i := range mask.Pix {
			mask.Pix[i] = min(mask.Pix[i], r.mask.Pix[i])
		}
	}
	r.restoreClip(mask)
}

func (r *Renderer) restoreClip(mask *image.Alpha) {
	r.mask = mask
	if mask == nil {
		r.context.ResetClip()
		return
	}
	if err := r.context.SetMask(mask); err != nil {
		tracer().Errorf("clip: %v", err)
	}
}

func (r *Renderer) drawBox(b *layout.Box) {
	if c, ok := parseItemColor(b.Fill); ok {
		r.context.SetColor(c)
		r.context.DrawRectangle(b.X, b.Y, b.Width, b.Height)
		r.context.Fill()
	}
	if b.LineWidth <= 0 {
		return
	}
	if c, ok := parseItemColor(b.Stroke); ok {
		r.context.SetColor(c)
		r.context.SetLineWidth(b.LineWidth)
		r.context.DrawRectangle(b.X, b.Y, b.Width, b.Height)
		r.context.Stroke()
	}
}

func (r *Renderer) drawText(t *layout.Text) {
	c := color.NRGBA{A: 255}
	if t.Color != "" {
		var ok bool
		if c, ok = parseItemColor(t.Color); !ok {
			return
		}
	}
	r.context.SetColor(c)
	ascent := float64(r.face.Metrics().Ascent) / 64
	for i, line := range t.Lines() {
		r.context.DrawString(line, t.X, t.Y+ascent+float64(i)*t.LineHeight())
	}
}

func (r *Renderer) drawImage(i *layout.Image) {
	img, err := i.Bitmap()
	if err != nil {
		tracer().Errorf("image %q: %v", i.Path, err)
		return
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	local := i.Local()
	r.context.Push()
	r.context.Translate(local.X, local.Y)
	r.context.Scale(local.Width/float64(b.Dx()), local.Height/float64(b.Dy()))
	r.context.DrawImage(img, 0, 0)
	r.context.Pop()
}

// drawGrid outlines every cell of t in its content space.
func (r *Renderer) drawGrid(t *layout.Table) {
	cols, rows := t.Slots(layout.Horizontal), t.Slots(layout.Vertical)
	if len(cols) == 0 || len(rows) == 0 {
		return
	}
	for _, row := range rows {
		for _, col := range cols {
			r.context.DrawRectangle(col.Start, row.Start, col.Allocation, row.Allocation)
		}
	}
	r.context.SetRGBA(1, 0, 1, 0.6)
	r.context.SetLineWidth(1)
	r.context.Stroke()
}

// parseItemColor parses an item colour; empty means none.
func parseItemColor(s string) (color.NRGBA, bool) {
	if s == "" {
		return color.NRGBA{}, false
	}
	c, ok := ParseColor(s)
	if !ok {
		tracer().Infof("unknown colour %q", s)
	}
	return c, ok
}
