package cloud

// Item is a single weighted entry in the cloud.
type Item struct {
	// ID uniquely identifies the item within one Compute call.
	ID string

	// Label is the display string. Its length drives the estimated
	// bounding-box width during placement.
	Label string

	// Weight is the metric driving visual prominence (usage count, views,
	// likes). Weights are compared only against each other, so any
	// consistent scale works; negative values are allowed.
	Weight float64

	// Meta is an opaque payload (color, description, flags) echoed on the
	// resulting Placement without interpretation.
	Meta map[string]any
}

// Placement is the computed layout record for one item.
type Placement struct {
	// ID echoes Item.ID.
	ID string

	// Label echoes Item.Label.
	Label string

	// X, Y position the item's center relative to the cloud origin. The
	// rank-0 item is always at (0, 0).
	X float64
	Y float64

	// FontSize lies within [Config.MinFontSize, Config.MaxFontSize].
	FontSize float64

	// Opacity and Scale are secondary emphasis attributes derived linearly
	// from the normalized weight.
	Opacity float64
	Scale   float64

	// Rank is the 0-based position in weight-sorted order (0 = heaviest).
	Rank int

	// NormalizedWeight is the item's weight rescaled to [0, 1] relative to
	// the set's min/max.
	NormalizedWeight float64

	// Degraded is true when the placement attempt budget was exhausted and
	// the last candidate was accepted anyway; the item may overlap a
	// neighbor.
	Degraded bool

	// Meta echoes Item.Meta.
	Meta map[string]any
}
