package cloud

import (
	"math"
	"slices"
)

// visual pairs an item with its derived visual attributes, in rank order.
type visual struct {
	item       Item
	normalized float64
	fontSize   float64
	opacity    float64
	scale      float64
}

// normalize sorts items by descending weight and maps each weight to visual
// attributes. The sort is stable so equal-weight items keep input order, which
// fixes both rank and placement order.
func normalize(items []Item, cfg Config) []visual {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b Item) int {
		switch {
		case a.Weight > b.Weight:
			return -1
		case a.Weight < b.Weight:
			return 1
		default:
			return 0
		}
	})

	minW, maxW := sorted[len(sorted)-1].Weight, sorted[0].Weight
	weightRange := maxW - minW
	if weightRange == 0 {
		// All weights equal (including the single-item case): treat the
		// range as 1 so every item lands on the minimum-weight treatment.
		weightRange = 1
	}

	out := make([]visual, len(sorted))
	for i, it := range sorted {
		n := (it.Weight - minW) / weightRange
		scaled := math.Pow(n, cfg.SizeExponent)
		out[i] = visual{
			item:       it,
			normalized: n,
			fontSize:   cfg.MinFontSize + scaled*(cfg.MaxFontSize-cfg.MinFontSize),
			opacity:    cfg.Opacity.Base + n*cfg.Opacity.Spread,
			scale:      cfg.Scale.Base + n*cfg.Scale.Spread,
		}
	}
	return out
}
