// Package pricing is the single authority for turning a unit's possibly
// absent price inputs into one displayable figure. Listing cards, detail
// views, floor-plan overlays and admin tables must all go through Resolve;
// filtering and sorting reuse the same resolution so boundaries stay
// consistent with displayed prices.
package pricing

import "sort"

// Inputs carries the three possibly-absent price sources plus the unit area.
type Inputs struct {
	TotalPrice          *float64 // explicit override, wins when set and non-zero
	PricePerM2          *float64 // unit-level rate
	FloorBasePricePerM2 *float64 // floor-level fallback rate
	Area                float64
}

// Resolve derives the unit's total price. The explicit override takes
// precedence over any computed value; otherwise the first set, non-zero rate
// in the fallback chain is multiplied by area. With every source absent the
// result is 0, not NaN and not an error.
func Resolve(in Inputs) float64 {
	if in.TotalPrice != nil && *in.TotalPrice != 0 {
		return *in.TotalPrice
	}
	return RatePerM2(in) * in.Area
}

// RatePerM2 returns the effective per-square-meter rate from the fallback
// chain, ignoring the total-price override.
func RatePerM2(in Inputs) float64 {
	if in.PricePerM2 != nil && *in.PricePerM2 != 0 {
		return *in.PricePerM2
	}
	if in.FloorBasePricePerM2 != nil && *in.FloorBasePricePerM2 != 0 {
		return *in.FloorBasePricePerM2
	}
	return 0
}

// FilterByRange keeps items whose resolved price falls inside [min, max].
// A nil bound is open. The caller supplies the same resolver used for
// display, which keeps filter boundaries aligned with what users see.
func FilterByRange[T any](items []T, price func(T) float64, min, max *float64) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		p := price(it)
		if min != nil && p < *min {
			continue
		}
		if max != nil && p > *max {
			continue
		}
		out = append(out, it)
	}
	return out
}

// SortByPrice orders items by resolved price, ascending unless desc is set.
// The sort is stable so equal-priced units keep their incoming order.
func SortByPrice[T any](items []T, price func(T) float64, desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return price(items[i]) > price(items[j])
		}
		return price(items[i]) < price(items[j])
	})
}
