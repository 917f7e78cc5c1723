package layout

// Rect represents a rectangular region
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether (x, y) lies inside r. The right and bottom edges
// are inclusive so that zero-size items can still be picked on their origin.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

// Point represents a 2D coordinate or displacement
type Point struct {
	X float64
	Y float64
}

// Axis selects one dimension of a table.
type Axis int

const (
	Horizontal Axis = iota // columns
	Vertical               // rows
)

var axes = [2]Axis{Horizontal, Vertical}

func (a Axis) String() string {
	if a == Horizontal {
		return "columns"
	}
	return "rows"
}
