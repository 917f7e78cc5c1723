package layout

import (
	"image"

	"tabula/pkg/images"
)

// Image is a bitmap primitive. Its natural size is the size of the bitmap
// unless Width or Height are set.
type Image struct {
	simple

	// Path is loaded through the image cache when Source is nil.
	Path   string
	Source image.Image

	X, Y float64

	// Width and Height scale the bitmap; negative means natural size.
	Width, Height float64
}

// NewImage creates an image item for the file at path.
func NewImage(path string, x, y float64) *Image {
	return &Image{
		simple: simple{transform: Identity()},
		Path:   path,
		X:      x,
		Y:      y,
		Width:  -1,
		Height: -1,
	}
}

// Bitmap returns the decoded image, loading it on first use.
func (i *Image) Bitmap() (image.Image, error) {
	if i.Source == nil {
		img, err := images.LoadImage(i.Path)
		if err != nil {
			return nil, err
		}
		i.Source = img
	}
	return i.Source, nil
}

// Local returns the image rectangle in its own space.
func (i *Image) Local() Rect {
	r := Rect{X: i.X, Y: i.Y, Width: i.Width, Height: i.Height}
	if i.Source != nil {
		b := i.Source.Bounds()
		if r.Width < 0 {
			r.Width = float64(b.Dx())
		}
		if r.Height < 0 {
			r.Height = float64(b.Dy())
		}
	}
	r.Width = max(r.Width, 0)
	r.Height = max(r.Height, 0)
	return r
}

// RequestedArea declines allocation if the bitmap cannot be loaded.
func (i *Image) RequestedArea(ctx *Context) (bool, Rect) {
	if i.Hidden {
		return false, Rect{}
	}
	if _, err := i.Bitmap(); err != nil {
		tracer().Errorf("image %q: %v", i.Path, err)
		return false, Rect{}
	}
	return true, i.requestArea(ctx, i.Local())
}

func (i *Image) RequestedHeightForWidth(*Context, float64) float64 { return -1 }

func (i *Image) AllocateArea(ctx *Context, requested, allocated Rect, _ Point) {
	i.allocate(ctx, requested, allocated)
}
