package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestParsePolygonRoundTrip(t *testing.T) {
	p := Polygon{{X: 10, Y: 20}, {X: 30, Y: 20}, {X: 30, Y: 40}, {X: 10, Y: 40}}

	blob, err := MarshalPolygon(p)
	require.NoError(t, err)

	got := ParsePolygon(&blob)
	require.Equal(t, p, got)
}

func TestParsePolygonRejectsShortAndMalformed(t *testing.T) {
	require.Nil(t, ParsePolygon(nil))
	require.Nil(t, ParsePolygon(strPtr("")))
	require.Nil(t, ParsePolygon(strPtr("   ")))
	require.Nil(t, ParsePolygon(strPtr("not json")))
	require.Nil(t, ParsePolygon(strPtr(`{"x":1}`)))

	// two points draw fine but never persist
	require.Nil(t, ParsePolygon(strPtr(`[{"x":1,"y":2},{"x":3,"y":4}]`)))
}

func TestParsePolygonLegacyRect(t *testing.T) {
	got := ParsePolygon(strPtr(`{"x":10,"y":20,"width":30,"height":15}`))

	want := Polygon{
		{X: 10, Y: 20},
		{X: 40, Y: 20},
		{X: 40, Y: 35},
		{X: 10, Y: 35},
	}
	require.Equal(t, want, got)
}

func TestParsePolygonLegacyRectMissingField(t *testing.T) {
	// height missing: not a rect, not a polygon
	require.Nil(t, ParsePolygon(strPtr(`{"x":10,"y":20,"width":30}`)))
}

func TestPathString(t *testing.T) {
	p := Polygon{{X: 10, Y: 20}, {X: 30, Y: 20}, {X: 20, Y: 40}}
	require.Equal(t, "M 10 20 L 30 20 L 20 40 Z", p.PathString())

	require.Equal(t, "", Polygon{}.PathString())
	require.Equal(t, "", Polygon{{X: 5, Y: 5}}.PathString())
}

func TestCentroid(t *testing.T) {
	p := Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	require.Equal(t, Point{X: 5, Y: 5}, p.Centroid())

	require.Equal(t, Point{}, Polygon{}.Centroid())
}

func TestContainsPoint(t *testing.T) {
	square := Polygon{{X: 10, Y: 10}, {X: 50, Y: 10}, {X: 50, Y: 50}, {X: 10, Y: 50}}

	require.True(t, square.ContainsPoint(Point{X: 30, Y: 30}))
	require.False(t, square.ContainsPoint(Point{X: 5, Y: 30}))
	require.False(t, square.ContainsPoint(Point{X: 60, Y: 60}))

	// fewer than 3 points can never contain anything
	require.False(t, Polygon{{X: 0, Y: 0}, {X: 10, Y: 10}}.ContainsPoint(Point{X: 5, Y: 5}))
}

func TestContainsPointConcave(t *testing.T) {
	// L-shaped: the notch at top-right is outside
	l := Polygon{
		{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 50},
		{X: 100, Y: 50}, {X: 100, Y: 100}, {X: 0, Y: 100},
	}
	require.True(t, l.ContainsPoint(Point{X: 25, Y: 25}))
	require.True(t, l.ContainsPoint(Point{X: 75, Y: 75}))
	require.False(t, l.ContainsPoint(Point{X: 75, Y: 25}))
}

func TestClamp(t *testing.T) {
	p := Polygon{{X: -5, Y: 50}, {X: 120, Y: 101}, {X: 50, Y: -0.1}}
	got := p.Clamp()
	require.Equal(t, Polygon{{X: 0, Y: 50}, {X: 100, Y: 100}, {X: 50, Y: 0}}, got)
}
