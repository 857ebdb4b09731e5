package geom

import "math"

// Point is an (X, Y) coordinate in pixels.
type Point struct {
	X, Y float64
}

// Size is a width/height pair in pixels.
type Size struct {
	W, H float64
}

// Rect is an axis aligned rectangle in pixels.
type Rect struct {
	X, Y, W, H float64
}

// NewRect creates a Rect with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Size returns the dimensions of r.
func (r Rect) Size() Size {
	return Size{W: r.W, H: r.H}
}

// Offset returns r translated by p.
func (r Rect) Offset(p Point) Rect {
	return Rect{X: r.X + p.X, Y: r.Y + p.Y, W: r.W, H: r.H}
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// ContainsRect reports whether o lies completely inside r. A tolerance of
// eps absorbs float rounding from percentage arithmetic.
func (r Rect) ContainsRect(o Rect, eps float64) bool {
	return o.X >= r.X-eps && o.Y >= r.Y-eps &&
		o.Right() <= r.Right()+eps && o.Bottom() <= r.Bottom()+eps
}

// ClampInto shrinks and then shifts r so that it fits inside a box of the
// given size anchored at the origin. Negative sizes collapse to zero.
func (r Rect) ClampInto(bounds Size) Rect {
	bw := math.Max(0, bounds.W)
	bh := math.Max(0, bounds.H)
	r.W = clamp(r.W, 0, bw)
	r.H = clamp(r.H, 0, bh)
	r.X = clamp(r.X, 0, bw-r.W)
	r.Y = clamp(r.Y, 0, bh-r.H)
	return r
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
