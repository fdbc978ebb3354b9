package cloud

import (
	"fmt"
	"math/rand/v2"
	"testing"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestEstimateBox(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		fontSize float64
	}{
		{"short label", "go", 14},
		{"long label", "supercalifragilistic", 32},
		{"empty label", "", 20},
		{"multibyte runes", "日本語", 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := estimateBox(tt.label, tt.fontSize)
			if b.w < widthPadding {
				t.Errorf("width = %g, want at least padding %g", b.w, widthPadding)
			}
			if b.h != tt.fontSize+heightPadding {
				t.Errorf("height = %g, want %g", b.h, tt.fontSize+heightPadding)
			}
		})
	}

	// Width scales with rune count, not byte count.
	ascii := estimateBox("abc", 20)
	multi := estimateBox("日本語", 20)
	if ascii.w != multi.w {
		t.Errorf("3-rune widths differ: %g vs %g", ascii.w, multi.w)
	}
}

func TestBoxOverlaps(t *testing.T) {
	base := box{x: 0, y: 0, w: 10, h: 10}

	tests := []struct {
		name    string
		other   box
		padding float64
		want    bool
	}{
		{"identical", box{w: 10, h: 10}, 0, true},
		{"clear on x", box{x: 11, w: 10, h: 10}, 0, false},
		{"clear on y", box{y: 11, w: 10, h: 10}, 0, false},
		{"touching within padding", box{x: 11, w: 10, h: 10}, 5, true},
		{"diagonal clear", box{x: 11, y: 11, w: 10, h: 10}, 0, false},
		{"overlapping", box{x: 5, y: 5, w: 10, h: 10}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.overlaps(tt.other, tt.padding); got != tt.want {
				t.Errorf("overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlacerAnchorsFirstItem(t *testing.T) {
	p := newPlacer(DefaultConfig(), testRand())

	x, y, degraded := p.place("anchor", 32, 0)
	if x != 0 || y != 0 {
		t.Errorf("first placement = (%g, %g), want origin", x, y)
	}
	if degraded {
		t.Error("anchor placement should never degrade")
	}
}

func TestPlacerAvoidsCollisions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Jitter = 0
	p := newPlacer(cfg, testRand())

	labels := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
	var boxes []box
	for rank, label := range labels {
		x, y, degraded := p.place(label, 20, rank)
		if degraded {
			t.Fatalf("%s: unexpected degraded placement", label)
		}
		b := estimateBox(label, 20)
		b.x, b.y = x, y
		boxes = append(boxes, b)
	}

	for i := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			if boxes[i].overlaps(boxes[j], cfg.Padding) {
				t.Errorf("boxes %d and %d overlap within padding", i, j)
			}
		}
	}
}

func TestPlacerSpreadsWideLabels(t *testing.T) {
	// Wide labels need the spiral to expand with box width, not font size:
	// a font-scaled step caps the reachable radius well below what a dozen
	// 15-rune boxes plus padding occupy, exhausting every budget.
	cfg := DefaultConfig()
	cfg.Jitter = 0
	p := newPlacer(cfg, testRand())

	var boxes []box
	for rank := 0; rank < 12; rank++ {
		label := fmt.Sprintf("wide-label-%04d", rank)
		x, y, degraded := p.place(label, 24, rank)
		if degraded {
			t.Fatalf("%s: degraded placement below safe density", label)
		}
		b := estimateBox(label, 24)
		b.x, b.y = x, y
		boxes = append(boxes, b)
	}

	for i := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			if boxes[i].overlaps(boxes[j], cfg.Padding) {
				t.Errorf("boxes %d and %d overlap within padding", i, j)
			}
		}
	}
}

func TestPlacerRadiusStepTracksFootprint(t *testing.T) {
	cfg := DefaultConfig()
	p := newPlacer(cfg, testRand())

	narrow := estimateBox("go", 14)
	wide := estimateBox("supercalifragilistic", 32)
	if p.radiusStep(wide) <= p.radiusStep(narrow) {
		t.Errorf("radiusStep(wide) = %g, want greater than radiusStep(narrow) = %g",
			p.radiusStep(wide), p.radiusStep(narrow))
	}

	// Placing wide items raises the step for everything that follows.
	before := p.radiusStep(narrow)
	p.place("supercalifragilistic", 32, 0)
	p.place("another-long-label-here", 32, 1)
	if after := p.radiusStep(narrow); after <= before {
		t.Errorf("radiusStep = %g after wide placements, want greater than %g", after, before)
	}
}

func TestPlacerDegradesWhenBudgetExhausted(t *testing.T) {
	// One attempt and huge padding make any second placement impossible.
	cfg := DefaultConfig()
	cfg.MaxAttempts = 1
	cfg.Padding = 1e6
	p := newPlacer(cfg, testRand())

	p.place("first", 20, 0)
	_, _, degraded := p.place("second", 20, 1)

	if !degraded {
		t.Error("second placement should be degraded under an exhausted budget")
	}
	if len(p.placed) != 2 {
		t.Errorf("placed count = %d, want 2 (degraded items are never dropped)", len(p.placed))
	}
}

func TestPlacerJitterDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Jitter = 0
	p := newPlacer(cfg, testRand())

	if got := p.jitter(); got != 0 {
		t.Errorf("jitter() = %g, want 0 when disabled", got)
	}
}

func TestPlacerJitterRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Jitter = 8
	p := newPlacer(cfg, testRand())

	for i := 0; i < 1000; i++ {
		j := p.jitter()
		if j < -4 || j > 4 {
			t.Fatalf("jitter() = %g, want within [-4, 4]", j)
		}
	}
}
