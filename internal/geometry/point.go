package geometry

import "math"

// Point is a position in percentage space: each coordinate is a float in
// [0,100] relative to the rendered image's width or height. Keeping shapes
// in percentage space makes stored geometry independent of the pixel
// resolution or aspect ratio the image happens to be displayed at.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between two points in
// percentage units.
func Distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// ClampPercent forces v into the [0,100] percentage range.
func ClampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Clamp returns the point with both coordinates clamped to [0,100].
func (p Point) Clamp() Point {
	return Point{X: ClampPercent(p.X), Y: ClampPercent(p.Y)}
}
