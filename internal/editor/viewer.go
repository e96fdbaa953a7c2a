package editor

import "github.com/estatehq/sales-service/internal/geometry"

// HitTest returns the id of the topmost shape containing p. Shapes later in
// the slice paint over earlier ones, so the scan runs back to front. The
// public building/floor viewers use this directly; the authoring editor
// uses it for click-to-select, which keeps admin and public hit areas
// identical.
func HitTest(shapes []Shape, p geometry.Point) (string, bool) {
	for i := len(shapes) - 1; i >= 0; i-- {
		if shapes[i].Points.ContainsPoint(p) {
			return shapes[i].ID, true
		}
	}
	return "", false
}
