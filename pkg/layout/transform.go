package layout

import (
	"errors"
	"math"
)

// Transform encodes a 2D affine transformation.
//
// The encoded transformation is given by:
//
//	x_new = A * x + C * y + E
//	y_new = B * x + D * y + F
type Transform struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transformation.
func Identity() Transform {
	return Transform{A: 1, D: 1}
}

// Translation returns the translation by (tx, ty).
func Translation(tx, ty float64) Transform {
	return Transform{A: 1, D: 1, E: tx, F: ty}
}

// Scaling returns the scaling by (sx, sy).
func Scaling(sx, sy float64) Transform {
	return Transform{A: sx, D: sy}
}

// Rotation returns a rotation by radians. Positive angles rotate from the
// positive X axis toward the positive Y axis.
func Rotation(radians float64) Transform {
	cos, sin := math.Cos(radians), math.Sin(radians)
	return Transform{A: cos, B: sin, C: -sin, D: cos}
}

// Shear returns a shear where x_new = x + shx*y and y_new = shy*x + y.
func Shear(shx, shy float64) Transform {
	return Transform{A: 1, B: shy, C: shx, D: 1}
}

// Mul returns the transform t * u, which applies u then t.
func Mul(t, u Transform) Transform {
	return Transform{
		A: t.A*u.A + t.C*u.B,
		B: t.B*u.A + t.D*u.B,
		C: t.A*u.C + t.C*u.D,
		D: t.B*u.C + t.D*u.D,
		E: t.A*u.E + t.C*u.F + t.E,
		F: t.B*u.E + t.D*u.F + t.F,
	}
}

// Determinant returns the determinant of the linear part, which is non zero
// if and only if the transformation is reversible.
func (t Transform) Determinant() float64 {
	return t.A*t.D - t.B*t.C
}

// Invert modifies the transform in place. It returns an error if the
// transformation is not bijective.
func (t *Transform) Invert() error {
	det := t.Determinant()
	if det == 0 {
		return errors.New("transformation is not invertible")
	}
	t.A, t.D = t.D/det, t.A/det
	t.B = -t.B / det
	t.C = -t.C / det
	e := -(t.A*t.E + t.C*t.F)
	f := -(t.B*t.E + t.D*t.F)
	t.E, t.F = e, f
	return nil
}

// Apply transforms the point (x, y).
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.A*x + t.C*y + t.E, t.B*x + t.D*y + t.F
}

// ApplyDistance transforms the vector (dx, dy), ignoring the translation.
func (t Transform) ApplyDistance(dx, dy float64) Point {
	return Point{X: t.A*dx + t.C*dy, Y: t.B*dx + t.D*dy}
}

// IsIdentity reports whether t leaves every point in place.
func (t Transform) IsIdentity() bool {
	return t == Identity()
}

// IsAxisAligned reports whether t maps horizontal and vertical lines onto
// horizontal and vertical lines in the same orientation, i.e. it carries no
// rotation or shear.
func (t Transform) IsAxisAligned() bool {
	return t.B == 0 && t.C == 0
}

// BoundingBox returns the axis-aligned bounds of r after transformation.
func (t Transform) BoundingBox(r Rect) Rect {
	if t.IsAxisAligned() {
		x1, y1 := t.Apply(r.X, r.Y)
		x2, y2 := t.Apply(r.Right(), r.Bottom())
		return Rect{
			X:      math.Min(x1, x2),
			Y:      math.Min(y1, y2),
			Width:  math.Abs(x2 - x1),
			Height: math.Abs(y2 - y1),
		}
	}
	xs := [4]float64{}
	ys := [4]float64{}
	xs[0], ys[0] = t.Apply(r.X, r.Y)
	xs[1], ys[1] = t.Apply(r.Right(), r.Y)
	xs[2], ys[2] = t.Apply(r.X, r.Bottom())
	xs[3], ys[3] = t.Apply(r.Right(), r.Bottom())
	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := 1; i < 4; i++ {
		minX = math.Min(minX, xs[i])
		maxX = math.Max(maxX, xs[i])
		minY = math.Min(minY, ys[i])
		maxY = math.Max(maxY, ys[i])
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Decomposition splits a transform into elementary operations, applied to a
// point in the order Scale, Shear (x += Shear*y), Rotate, Translate.
type Decomposition struct {
	TranslateX, TranslateY float64
	Rotation               float64 // radians
	Shear                  float64
	ScaleX, ScaleY         float64
}

// Decompose factors the linear part as Rotation * Shear * Scale.
// Degenerate transforms (zero determinant) decompose with a zero scale.
func (t Transform) Decompose() Decomposition {
	d := Decomposition{TranslateX: t.E, TranslateY: t.F}
	d.ScaleX = math.Hypot(t.A, t.B)
	if d.ScaleX == 0 {
		return d
	}
	d.Rotation = math.Atan2(t.B, t.A)
	cos, sin := t.A/d.ScaleX, t.B/d.ScaleX
	k := t.C*cos + t.D*sin
	d.ScaleY = -t.C*sin + t.D*cos
	if d.ScaleY != 0 {
		d.Shear = k / d.ScaleY
	}
	return d
}

// Compose rebuilds the transform described by d.
func (d Decomposition) Compose() Transform {
	m := Scaling(d.ScaleX, d.ScaleY)
	m = Mul(Shear(d.Shear, 0), m)
	m = Mul(Rotation(d.Rotation), m)
	return Mul(Translation(d.TranslateX, d.TranslateY), m)
}
