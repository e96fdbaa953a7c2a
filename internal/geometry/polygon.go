package geometry

import (
	"encoding/json"
	"strconv"
	"strings"
)

// MinPolygonPoints is the smallest point count a polygon may be persisted
// with. Shorter sequences are legal while drawing but never stored.
const MinPolygonPoints = 3

// Polygon is an ordered boundary traversal of percentage-space points. It is
// implicitly closed (renderers connect the last point back to the first) and
// is not required to be convex or even simple.
type Polygon []Point

// LegacyRect is the old stored shape format: an axis-aligned rectangle given
// as top-left corner plus dimensions, all in percentage space. Older rows
// still carry this form inside their geometry columns.
type LegacyRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectToPolygon converts a legacy rectangle into an explicit 4-point polygon,
// clockwise from the top-left corner.
func RectToPolygon(r LegacyRect) Polygon {
	return Polygon{
		{X: r.X, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y + r.Height},
		{X: r.X, Y: r.Y + r.Height},
	}
}

// ParsePolygon normalizes a serialized geometry blob into a Polygon. It
// accepts either a JSON point array or the legacy rect object, so callers
// past this boundary only ever see point lists. Malformed input, a missing
// value, or fewer than MinPolygonPoints points all yield nil ("no shape");
// parsing never fails a request.
func ParsePolygon(raw *string) Polygon {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var pts []Point
		if err := json.Unmarshal([]byte(trimmed), &pts); err != nil {
			return nil
		}
		if len(pts) < MinPolygonPoints {
			return nil
		}
		return Polygon(pts)
	}

	// Legacy rect object. All four fields must be present to count.
	var rect struct {
		X      *float64 `json:"x"`
		Y      *float64 `json:"y"`
		Width  *float64 `json:"width"`
		Height *float64 `json:"height"`
	}
	if err := json.Unmarshal([]byte(trimmed), &rect); err != nil {
		return nil
	}
	if rect.X == nil || rect.Y == nil || rect.Width == nil || rect.Height == nil {
		return nil
	}
	return RectToPolygon(LegacyRect{X: *rect.X, Y: *rect.Y, Width: *rect.Width, Height: *rect.Height})
}

// MarshalPolygon serializes a polygon for storage in the owning entity's
// geometry column.
func MarshalPolygon(p Polygon) (string, error) {
	b, err := json.Marshal([]Point(p))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Valid reports whether the polygon may be persisted.
func (p Polygon) Valid() bool {
	return len(p) >= MinPolygonPoints
}

// Centroid is the arithmetic mean of the vertices. Used for label placement
// fallback and tooltip anchoring. An empty polygon yields the origin.
func (p Polygon) Centroid() Point {
	if len(p) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, pt := range p {
		sx += pt.X
		sy += pt.Y
	}
	n := float64(len(p))
	return Point{X: sx / n, Y: sy / n}
}

// PathString renders a moveto/lineto/closepath sequence in percentage-space
// coordinates. The drawing surface's viewBox is fixed at 0 0 100 100, so no
// pixel conversion happens here; that is the rendering boundary's job.
// Fewer than two points produce an empty path.
func (p Polygon) PathString() string {
	if len(p) < 2 {
		return ""
	}
	var sb strings.Builder
	for i, pt := range p {
		if i == 0 {
			sb.WriteString("M ")
		} else {
			sb.WriteString(" L ")
		}
		sb.WriteString(formatCoord(pt.X))
		sb.WriteByte(' ')
		sb.WriteString(formatCoord(pt.Y))
	}
	sb.WriteString(" Z")
	return sb.String()
}

// ContainsPoint reports whether pt falls inside the polygon, using even-odd
// ray casting. Self-intersecting polygons are handled the same way the
// rendering fill rule handles them.
func (p Polygon) ContainsPoint(pt Point) bool {
	if len(p) < MinPolygonPoints {
		return false
	}
	inside := false
	j := len(p) - 1
	for i := 0; i < len(p); i++ {
		pi, pj := p[i], p[j]
		if (pi.Y > pt.Y) != (pj.Y > pt.Y) {
			xCross := (pj.X-pi.X)*(pt.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if pt.X < xCross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// Clamp returns a copy with every vertex clamped to [0,100]. Applied to
// externally supplied geometry (e.g. AI suggestions) before acceptance.
func (p Polygon) Clamp() Polygon {
	out := make(Polygon, len(p))
	for i, pt := range p {
		out[i] = pt.Clamp()
	}
	return out
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
