package geometry

import (
	"encoding/json"
	"strings"
)

// FloorBand is the vertical extent of one floor on a building facade image,
// a degenerate 1-D polygon in percentage space.
type FloorBand struct {
	YStart float64 `json:"yStart"`
	YEnd   float64 `json:"yEnd"`
}

// Auto-distribute layout constants: the top 10% of the facade is reserved
// for the roof and the bottom 5% for the ground line, leaving 85% of the
// image height for floors. Adjacent bands are separated by a 1-point gap.
const (
	bandTopMargin    = 10.0
	bandUsableHeight = 85.0
	bandGap          = 1.0
)

// Valid reports whether the band describes a usable extent.
func (b FloorBand) Valid() bool {
	return b.YEnd > b.YStart
}

// Clamp returns the band with both bounds clamped to [0,100].
func (b FloorBand) Clamp() FloorBand {
	return FloorBand{YStart: ClampPercent(b.YStart), YEnd: ClampPercent(b.YEnd)}
}

// NormalizeBand orders a drag's start and end positions into a band,
// clamping both into percentage range. The admin may drag upward or
// downward; either direction yields the same band.
func NormalizeBand(a, c float64) FloorBand {
	if a > c {
		a, c = c, a
	}
	return FloorBand{YStart: ClampPercent(a), YEnd: ClampPercent(c)}
}

// ParseFloorBand reads a stored band blob. Malformed JSON or a band that is
// not strictly increasing counts as absent.
func ParseFloorBand(raw *string) (FloorBand, bool) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return FloorBand{}, false
	}
	var b FloorBand
	if err := json.Unmarshal([]byte(*raw), &b); err != nil {
		return FloorBand{}, false
	}
	if !b.Valid() {
		return FloorBand{}, false
	}
	return b, true
}

// MarshalFloorBand serializes a band for the floor's position column.
func MarshalFloorBand(b FloorBand) (string, error) {
	out, err := json.Marshal(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// DistributeBands partitions the usable facade height into n equal bands,
// index 0 being the top physical floor. Each band is shrunk by a small gap
// so adjacent floors stay visually separated. Used both by the authoring
// tool's auto-distribute action and as the render-time fallback for floors
// with no stored position.
func DistributeBands(n int) []FloorBand {
	if n <= 0 {
		return nil
	}
	h := bandUsableHeight / float64(n)
	bands := make([]FloorBand, n)
	for i := 0; i < n; i++ {
		bands[i] = FloorBand{
			YStart: bandTopMargin + float64(i)*h,
			YEnd:   bandTopMargin + float64(i+1)*h - bandGap,
		}
	}
	return bands
}
