package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDistributeBandsNineFloors(t *testing.T) {
	bands := DistributeBands(9)
	require.Len(t, bands, 9)

	h := 85.0 / 9.0
	for i, b := range bands {
		require.InDelta(t, 10.0+float64(i)*h, b.YStart, 1e-9)
		require.InDelta(t, 10.0+float64(i+1)*h-1.0, b.YEnd, 1e-9)
		require.True(t, b.Valid())
	}

	// bands never overlap: each starts after the previous one ends
	for i := 1; i < len(bands); i++ {
		require.Greater(t, bands[i].YStart, bands[i-1].YEnd)
	}

	require.InDelta(t, 10.0, bands[0].YStart, 1e-9)
	require.InDelta(t, 94.0, bands[8].YEnd, 1e-9)
}

func TestDistributeBandsDegenerate(t *testing.T) {
	require.Nil(t, DistributeBands(0))
	require.Nil(t, DistributeBands(-3))

	one := DistributeBands(1)
	require.Len(t, one, 1)
	require.InDelta(t, 10.0, one[0].YStart, 1e-9)
	require.InDelta(t, 94.0, one[0].YEnd, 1e-9)
}

func TestNormalizeBandOrdersAndClamps(t *testing.T) {
	b := NormalizeBand(62.5, 40.0)
	require.Equal(t, FloorBand{YStart: 40.0, YEnd: 62.5}, b)

	b = NormalizeBand(120, -8)
	require.Equal(t, FloorBand{YStart: 0, YEnd: 100}, b)
}

func TestParseFloorBand(t *testing.T) {
	blob, err := MarshalFloorBand(FloorBand{YStart: 12.5, YEnd: 20})
	require.NoError(t, err)

	got, ok := ParseFloorBand(&blob)
	require.True(t, ok)
	require.Equal(t, FloorBand{YStart: 12.5, YEnd: 20}, got)

	_, ok = ParseFloorBand(nil)
	require.False(t, ok)

	empty := ""
	_, ok = ParseFloorBand(&empty)
	require.False(t, ok)

	garbage := "{{"
	_, ok = ParseFloorBand(&garbage)
	require.False(t, ok)

	// yEnd must be strictly greater
	flat := `{"yStart":30,"yEnd":30}`
	_, ok = ParseFloorBand(&flat)
	require.False(t, ok)

	inverted := `{"yStart":60,"yEnd":20}`
	_, ok = ParseFloorBand(&inverted)
	require.False(t, ok)
}
