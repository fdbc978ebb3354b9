package cloud

import (
	"math"
	"math/rand/v2"
	"unicode/utf8"
)

// Spiral tuning constants. The angle step is a little under a quarter turn so
// consecutive probes sweep the full circle before the radius grows much, and
// the vertical compression flattens the spiral for a more horizontal fan-out.
const (
	angleStep           = 0.75
	verticalCompression = 0.75
	radiusStepFactor    = 0.55

	// Bounding-box estimation: width grows with label length and font
	// size, height with font size alone.
	widthPerRune  = 0.58
	widthPadding  = 12.0
	heightPadding = 8.0
)

// box is an axis-aligned bounding box identified by its center.
type box struct {
	x, y float64
	w, h float64
}

// overlaps reports whether two boxes are closer than padding on both axes.
// This is a padded AABB test, not a tight polygon test: the center distance
// on each axis must be at least the sum of half-extents plus padding for the
// boxes to be clear of each other.
func (b box) overlaps(o box, padding float64) bool {
	return math.Abs(b.x-o.x) < (b.w+o.w)/2+padding &&
		math.Abs(b.y-o.y) < (b.h+o.h)/2+padding
}

// estimateBox returns the bounding box for a label rendered at fontSize,
// centered at the origin. Bigger fonts reserve proportionally more space.
func estimateBox(label string, fontSize float64) box {
	runes := float64(utf8.RuneCountInString(label))
	return box{
		w: runes*fontSize*widthPerRune + widthPadding,
		h: fontSize + heightPadding,
	}
}

// placer assigns collision-free positions along an expanding spiral,
// tracking every accepted box for collision testing. It is working state for
// a single Compute call and is not safe for concurrent use.
type placer struct {
	cfg    Config
	rng    *rand.Rand
	placed []box

	// extentSum accumulates (w+h)/2 over every box seen, so the spiral's
	// radial growth can track the mean item footprint.
	extentSum float64
}

func newPlacer(cfg Config, rng *rand.Rand) *placer {
	return &placer{cfg: cfg, rng: rng}
}

// radiusStep scales the spiral's radial growth to the mean padded footprint
// of all boxes seen so far, including the candidate. Font size alone is not
// enough: wide labels need the spiral to expand with their actual width or
// dense clouds run out of reachable radius before the attempt budget does.
func (p *placer) radiusStep(b box) float64 {
	mean := (p.extentSum + (b.w+b.h)/2) / float64(len(p.placed)+1)
	return (mean + p.cfg.Padding) * radiusStepFactor
}

// place finds a position for the given label. The first item overall anchors
// the layout at the origin unconditionally. Every later item probes up to
// cfg.MaxAttempts spiral candidates; if none is collision-free the last
// candidate is accepted anyway and degraded is true.
func (p *placer) place(label string, fontSize float64, rank int) (x, y float64, degraded bool) {
	b := estimateBox(label, fontSize)
	defer func() { p.extentSum += (b.w + b.h) / 2 }()

	if len(p.placed) == 0 {
		p.placed = append(p.placed, b)
		return 0, 0, false
	}

	step := p.radiusStep(b)
	for attempt := 0; attempt < p.cfg.MaxAttempts; attempt++ {
		// Offset each item's spiral start by its rank so equal-weight
		// items don't all probe the same angles.
		idx := float64(attempt + rank*3)
		angle := idx * angleStep
		radius := math.Sqrt(idx+1) * step

		b.x = math.Cos(angle)*radius + p.jitter()
		b.y = math.Sin(angle)*radius*verticalCompression + p.jitter()

		if !p.collides(b) {
			p.placed = append(p.placed, b)
			return b.x, b.y, false
		}
	}

	// Budget exhausted: keep the last candidate rather than dropping the
	// item. The overlap is reported via the degraded flag.
	p.placed = append(p.placed, b)
	return b.x, b.y, true
}

// collides tests b against every previously accepted box.
func (p *placer) collides(b box) bool {
	for _, o := range p.placed {
		if b.overlaps(o, p.cfg.Padding) {
			return true
		}
	}
	return false
}

// jitter draws a uniform offset from [-Jitter/2, Jitter/2].
func (p *placer) jitter() float64 {
	if p.cfg.Jitter == 0 {
		return 0
	}
	return (p.rng.Float64() - 0.5) * p.cfg.Jitter
}
