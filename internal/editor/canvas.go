package editor

import "github.com/estatehq/sales-service/internal/geometry"

// Canvas maps pointer positions in client pixels to percentage space using
// the element's rendered bounding box. Build one per interaction from the
// box measured at that moment; zoom, scroll and responsive resizing all
// move the box, so a cached Canvas goes stale.
type Canvas struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// ToPercent converts a client-pixel pointer position into a clamped
// percentage-space point. A degenerate (zero-size) box maps everything to
// the origin rather than dividing by zero.
func (c Canvas) ToPercent(clientX, clientY float64) geometry.Point {
	if c.Width <= 0 || c.Height <= 0 {
		return geometry.Point{}
	}
	p := geometry.Point{
		X: (clientX - c.Left) / c.Width * 100,
		Y: (clientY - c.Top) / c.Height * 100,
	}
	return p.Clamp()
}
