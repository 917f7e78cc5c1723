// Package text measures and wraps text for text items, using gg font faces.
package text

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// DefaultSize is the font size in points used when a FontConfig has none.
const DefaultSize = 13

// FontConfig selects the font used for text measurement and rendering.
type FontConfig struct {
	Regular string  // path to a TTF file; empty selects the built-in face
	Size    float64 // points
}

// FontConfigFromPath returns a FontConfig for path. A bare file name is
// looked up in a fonts directory next to the executable.
func FontConfigFromPath(path string, size float64) FontConfig {
	if path != "" && filepath.Base(path) == path {
		if exe, err := os.Executable(); err == nil {
			candidate := filepath.Join(filepath.Dir(exe), "..", "fonts", path)
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
			}
		}
	}
	return FontConfig{Regular: path, Size: size}
}

// Measurer measures text with one font face. It is not safe for concurrent
// use; layout passes are single threaded.
type Measurer struct {
	dc   *gg.Context
	face font.Face
}

// NewMeasurer loads the font selected by fc.
func NewMeasurer(fc FontConfig) (*Measurer, error) {
	if fc.Regular == "" {
		return Builtin(), nil
	}
	size := fc.Size
	if size <= 0 {
		size = DefaultSize
	}
	face, err := gg.LoadFontFace(fc.Regular, size)
	if err != nil {
		return nil, fmt.Errorf("loading font %s: %w", fc.Regular, err)
	}
	return newMeasurer(face), nil
}

// Builtin returns a measurer for the built-in 7x13 pixel face.
func Builtin() *Measurer {
	return newMeasurer(basicfont.Face7x13)
}

func newMeasurer(face font.Face) *Measurer {
	// Measurement only, the context never gets drawn on.
	dc := gg.NewContext(1, 1)
	dc.SetFontFace(face)
	return &Measurer{dc: dc, face: face}
}

// Face returns the font face, so that painting uses the same metrics.
func (m *Measurer) Face() font.Face { return m.face }

// Measure returns the extent of a single line.
func (m *Measurer) Measure(s string) (float64, float64) {
	return m.dc.MeasureString(s)
}

// LineHeight returns the font height.
func (m *Measurer) LineHeight() float64 {
	return m.dc.FontHeight()
}

// Wrap breaks s at spaces into lines no wider than width. Newlines always
// break. A word wider than width gets a line of its own.
func (m *Measurer) Wrap(s string, width float64) []string {
	if strings.TrimSpace(s) == "" {
		return []string{""}
	}
	return m.dc.WordWrap(s, width)
}
