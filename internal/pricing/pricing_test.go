package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestResolveOverrideWins(t *testing.T) {
	got := Resolve(Inputs{
		TotalPrice:          f(95000),
		PricePerM2:          f(1500),
		FloorBasePricePerM2: f(1400),
		Area:                50,
	})
	require.Equal(t, 95000.0, got)
}

func TestResolveZeroOverrideFallsThrough(t *testing.T) {
	// a stored 0 means "not set", not "free"
	got := Resolve(Inputs{
		TotalPrice: f(0),
		PricePerM2: f(1500),
		Area:       50,
	})
	require.Equal(t, 75000.0, got)
}

func TestResolveRateChain(t *testing.T) {
	// unit rate beats floor rate
	got := Resolve(Inputs{
		PricePerM2:          f(1500),
		FloorBasePricePerM2: f(1400),
		Area:                40,
	})
	require.Equal(t, 60000.0, got)

	// floor rate when unit rate absent
	got = Resolve(Inputs{
		FloorBasePricePerM2: f(1400),
		Area:                40,
	})
	require.Equal(t, 56000.0, got)

	// zero unit rate falls through to the floor rate
	got = Resolve(Inputs{
		PricePerM2:          f(0),
		FloorBasePricePerM2: f(1400),
		Area:                40,
	})
	require.Equal(t, 56000.0, got)
}

func TestResolveAllAbsent(t *testing.T) {
	require.Equal(t, 0.0, Resolve(Inputs{Area: 55}))
	require.Equal(t, 0.0, RatePerM2(Inputs{}))
}

func TestFilterByRange(t *testing.T) {
	prices := []float64{10, 20, 30, 40}
	id := func(v float64) float64 { return v }

	require.Equal(t, []float64{20, 30}, FilterByRange(prices, id, f(20), f(30)))
	require.Equal(t, []float64{30, 40}, FilterByRange(prices, id, f(30), nil))
	require.Equal(t, []float64{10, 20}, FilterByRange(prices, id, nil, f(20)))
	require.Equal(t, prices, FilterByRange(prices, id, nil, nil))
	require.Empty(t, FilterByRange(prices, id, f(100), nil))
}

func TestSortByPriceStable(t *testing.T) {
	type unit struct {
		name  string
		price float64
	}
	units := []unit{
		{"c", 30}, {"a1", 10}, {"b", 20}, {"a2", 10},
	}
	price := func(u unit) float64 { return u.price }

	SortByPrice(units, price, false)
	require.Equal(t, []unit{{"a1", 10}, {"a2", 10}, {"b", 20}, {"c", 30}}, units)

	SortByPrice(units, price, true)
	require.Equal(t, []unit{{"c", 30}, {"b", 20}, {"a1", 10}, {"a2", 10}}, units)
}
