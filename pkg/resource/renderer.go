package resource

import (
	"errors"
	"fmt"
	"image"
	"math"
	"path/filepath"
	"strings"

	"tabula/pkg/js"
	"tabula/pkg/layout"
	"tabula/pkg/render"
	"tabula/pkg/scene"
	"tabula/pkg/text"
)

// ErrUnknownSceneFormat is returned for scene names whose format cannot be
// told from the extension.
var ErrUnknownSceneFormat = errors.New("unknown scene format")

// Format selects the scene loader.
type Format string

const (
	FormatAuto Format = ""
	FormatHCL  Format = "hcl"
	FormatJS   Format = "js"
)

// FormatFor returns the format of a scene file by its extension.
func FormatFor(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".hcl":
		return FormatHCL, nil
	case ".js":
		return FormatJS, nil
	}
	return FormatAuto, fmt.Errorf("%w: %s", ErrUnknownSceneFormat, name)
}

// Renderer renders scene sources onto an image.
type Renderer interface {
	Render(name string, src []byte, target *image.RGBA) error
}

// SceneRenderer loads HCL and JS scenes, lays them out into the target and
// paints them.
type SceneRenderer struct {
	fonts    text.FontConfig
	format   Format
	jsEngine *js.Engine // nil = a fresh engine per script
	measurer *text.Measurer

	// DebugOverlay outlines table cells.
	DebugOverlay bool
}

// NewSceneRenderer creates a SceneRenderer. If fonts is omitted or has no
// path, text is measured and drawn with the builtin face.
func NewSceneRenderer(fonts ...text.FontConfig) *SceneRenderer {
	var fc text.FontConfig
	if len(fonts) > 0 {
		fc = fonts[0]
	}
	return &SceneRenderer{fonts: fc}
}

// SetFormat forces a format instead of going by the scene name.
func (r *SceneRenderer) SetFormat(f Format) { r.format = f }

// SetJSEngine makes scripts run on engine, sharing its globals.
func (r *SceneRenderer) SetJSEngine(engine *js.Engine) { r.jsEngine = engine }

// Measurer returns the text measurer, loading the font on first use.
func (r *SceneRenderer) Measurer() (*text.Measurer, error) {
	if r.measurer == nil {
		m, err := text.NewMeasurer(r.fonts)
		if err != nil {
			return nil, err
		}
		r.measurer = m
	}
	return r.measurer, nil
}

// Load parses src. Scripts come back as a scene with just a root.
func (r *SceneRenderer) Load(name string, src []byte) (*scene.Scene, error) {
	format := r.format
	if format == FormatAuto {
		var err error
		if format, err = FormatFor(name); err != nil {
			return nil, err
		}
	}
	switch format {
	case FormatHCL:
		return scene.Load(name, src)
	case FormatJS:
		engine := r.jsEngine
		if engine == nil {
			engine = js.New()
		}
		root, err := engine.Run(name, string(src))
		if err != nil {
			return nil, err
		}
		return &scene.Scene{Root: root}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSceneFormat, format)
}

// CanvasSize returns the scene's canvas size, falling back to the root
// table's natural size for dimensions the scene leaves open.
func (r *SceneRenderer) CanvasSize(s *scene.Scene) (int, int, error) {
	w, h := s.Width, s.Height
	if w > 0 && h > 0 {
		return w, h, nil
	}
	m, err := r.Measurer()
	if err != nil {
		return 0, 0, err
	}
	area := layout.Layout(s.Root, layout.NewContext(m))
	if w <= 0 {
		w = int(math.Ceil(area.X + area.Width))
	}
	if h <= 0 {
		h = int(math.Ceil(area.Y + area.Height))
	}
	return max(w, 1), max(h, 1), nil
}

// Render loads the scene, lays it out into the target bounds and paints it.
func (r *SceneRenderer) Render(name string, src []byte, target *image.RGBA) error {
	s, err := r.Load(name, src)
	if err != nil {
		return err
	}
	return r.Paint(s, target)
}

// Paint lays s out into the target bounds and paints it.
func (r *SceneRenderer) Paint(s *scene.Scene, target *image.RGBA) error {
	m, err := r.Measurer()
	if err != nil {
		return err
	}
	b := target.Bounds()
	layout.LayoutInto(s.Root, layout.NewContext(m), layout.Rect{
		Width:  float64(b.Dx()),
		Height: float64(b.Dy()),
	})

	renderer := render.NewRendererForRGBA(target)
	renderer.SetFontFace(m.Face())
	renderer.DebugOverlay = r.DebugOverlay
	if s.Background != "" {
		c, ok := render.ParseColor(s.Background)
		if !ok {
			return fmt.Errorf("unknown background colour %q", s.Background)
		}
		renderer.SetBackground(c)
	}
	renderer.Render(s.Root)
	return nil
}
