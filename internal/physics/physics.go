// Package physics provides axis-aligned bounding-box collision utilities.
package physics

// Rect is an axis-aligned box with its origin at the top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Center returns the center point of the box.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Inset shrinks the box around its center. frac is the share of each
// extent removed (0.3 removes 15% from every side). Values outside [0, 1]
// are clamped, so the result never has a negative size.
func (r Rect) Inset(frac float64) Rect {
	if frac <= 0 {
		return r
	}
	if frac > 1 {
		frac = 1
	}
	dx := r.W * frac / 2
	dy := r.H * frac / 2
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
}

// Overlaps reports whether two closed boxes intersect. Touching edges count.
func Overlaps(a, b Rect) bool {
	return a.X <= b.Right() && b.X <= a.Right() &&
		a.Y <= b.Bottom() && b.Y <= a.Bottom()
}
