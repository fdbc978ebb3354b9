package cloud

import (
	"fmt"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/matzehuels/cumulus/pkg/errors"
)

func TestComputeCardinality(t *testing.T) {
	items := []Item{
		{ID: "a", Weight: 3},
		{ID: "b", Weight: 1},
		{ID: "c", Weight: 2},
	}

	placements, err := Compute(items, Config{})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if len(placements) != len(items) {
		t.Fatalf("len(placements) = %d, want %d", len(placements), len(items))
	}

	seen := make(map[string]int)
	for _, p := range placements {
		seen[p.ID]++
	}
	for _, it := range items {
		if seen[it.ID] != 1 {
			t.Errorf("item %q appears %d times, want exactly once", it.ID, seen[it.ID])
		}
	}
}

func TestComputeEmpty(t *testing.T) {
	placements, err := Compute(nil, Config{})
	if err != nil {
		t.Fatalf("Compute(nil) error: %v", err)
	}
	if placements == nil || len(placements) != 0 {
		t.Errorf("Compute(nil) = %v, want empty non-nil slice", placements)
	}
}

func TestComputeSingleItem(t *testing.T) {
	cfg := DefaultConfig()
	placements, err := Compute([]Item{{ID: "x", Weight: 10}}, cfg)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if len(placements) != 1 {
		t.Fatalf("len(placements) = %d, want 1", len(placements))
	}

	p := placements[0]
	if p.X != 0 || p.Y != 0 {
		t.Errorf("position = (%g, %g), want origin", p.X, p.Y)
	}
	// Degenerate range: a lone item sits at the minimum treatment.
	if p.NormalizedWeight != 0 {
		t.Errorf("NormalizedWeight = %g, want 0", p.NormalizedWeight)
	}
	if p.FontSize != cfg.MinFontSize {
		t.Errorf("FontSize = %g, want min %g", p.FontSize, cfg.MinFontSize)
	}
}

func TestComputeInvalidConfig(t *testing.T) {
	items := []Item{{ID: "a", Weight: 1}}

	tests := []struct {
		name string
		cfg  Config
	}{
		{"inverted font range", Config{MinFontSize: 40, MaxFontSize: 20}},
		{"negative min font", Config{MinFontSize: -1}},
		{"negative padding", Config{Padding: -1}},
		{"negative attempts", Config{MaxAttempts: -5}},
		{"negative jitter", Config{Jitter: -2}},
		{"negative exponent", Config{SizeExponent: -0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(items, tt.cfg)
			if err == nil {
				t.Fatal("Compute() should fail")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error code = %q, want INVALID_CONFIG", errors.GetCode(err))
			}
		})
	}
}

func TestComputeMonotonicity(t *testing.T) {
	items := []Item{
		{ID: "w10", Weight: 10},
		{ID: "w20", Weight: 20},
		{ID: "w30", Weight: 30},
		{ID: "w40", Weight: 40},
	}

	placements, err := Compute(items, Config{})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	// Rank order is descending weight, so font size must not increase.
	for i := 1; i < len(placements); i++ {
		if placements[i].FontSize > placements[i-1].FontSize {
			t.Errorf("fontSize increased from rank %d (%g) to rank %d (%g)",
				i-1, placements[i-1].FontSize, i, placements[i].FontSize)
		}
	}
}

func TestComputeSoftCollisionGuarantee(t *testing.T) {
	// Below the safe density threshold no placement may degrade and all
	// padded bounding boxes stay disjoint.
	items := make([]Item, 20)
	for i := range items {
		items[i] = Item{
			ID:     fmt.Sprintf("item-%02d", i),
			Label:  fmt.Sprintf("item-%02d", i),
			Weight: float64(i + 1),
		}
	}

	cfg := DefaultConfig()
	cfg.Jitter = 0
	placements, err := Compute(items, cfg)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	boxes := make([]box, len(placements))
	for i, p := range placements {
		if p.Degraded {
			t.Errorf("%s: degraded placement below safe density", p.ID)
		}
		b := estimateBox(p.Label, p.FontSize)
		b.x, b.y = p.X, p.Y
		boxes[i] = b
	}

	for i := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			if boxes[i].overlaps(boxes[j], cfg.Padding) {
				t.Errorf("placements %s and %s overlap within padding",
					placements[i].ID, placements[j].ID)
			}
		}
	}
}

func TestComputeDeterministicWithoutJitter(t *testing.T) {
	items := []Item{
		{ID: "a", Label: "alpha", Weight: 10},
		{ID: "b", Label: "beta", Weight: 5},
		{ID: "c", Label: "gamma", Weight: 1},
	}
	cfg := Config{Jitter: 0}

	first, err := Compute(items, cfg)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	second, err := Compute(items, cfg)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("jitter-free layouts should be bit-identical across runs")
	}
}

func TestComputeDeterministicWithSeed(t *testing.T) {
	items := []Item{
		{ID: "a", Label: "alpha", Weight: 10},
		{ID: "b", Label: "beta", Weight: 5},
		{ID: "c", Label: "gamma", Weight: 1},
	}
	cfg := Config{Jitter: 8, Seed: 42}

	first, err := Compute(items, cfg)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	second, err := Compute(items, cfg)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("seeded layouts should be bit-identical across runs")
	}
}

func TestComputeWithRand(t *testing.T) {
	items := []Item{
		{ID: "a", Label: "alpha", Weight: 10},
		{ID: "b", Label: "beta", Weight: 5},
	}
	cfg := Config{Jitter: 8}

	first, err := Compute(items, cfg, WithRand(rand.New(rand.NewPCG(7, 7))))
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	second, err := Compute(items, cfg, WithRand(rand.New(rand.NewPCG(7, 7))))
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("identical injected sources should yield identical layouts")
	}
}

func TestComputeScenario(t *testing.T) {
	items := []Item{
		{ID: "a", Weight: 100, Label: "alpha"},
		{ID: "b", Weight: 50, Label: "b"},
		{ID: "c", Weight: 1, Label: "charlie"},
	}
	cfg := Config{MinFontSize: 14, MaxFontSize: 32, Jitter: 0}

	placements, err := Compute(items, cfg)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	for i, want := range []string{"a", "b", "c"} {
		if placements[i].ID != want {
			t.Errorf("rank %d = %q, want %q", i, placements[i].ID, want)
		}
		if placements[i].Rank != i {
			t.Errorf("%s: Rank = %d, want %d", placements[i].ID, placements[i].Rank, i)
		}
	}

	if placements[0].FontSize != 32 {
		t.Errorf("a.FontSize = %g, want 32", placements[0].FontSize)
	}
	if placements[2].FontSize != 14 {
		t.Errorf("c.FontSize = %g, want 14", placements[2].FontSize)
	}
	if placements[0].X != 0 || placements[0].Y != 0 {
		t.Errorf("a at (%g, %g), want origin", placements[0].X, placements[0].Y)
	}

	// b and c are on spiral offsets away from the anchor.
	for _, p := range placements[1:] {
		if p.X == 0 && p.Y == 0 {
			t.Errorf("%s placed on the anchor", p.ID)
		}
		if p.Degraded {
			t.Errorf("%s: unexpected degraded placement", p.ID)
		}
	}
}

func TestComputeMetaEcho(t *testing.T) {
	items := []Item{
		{ID: "a", Weight: 2, Meta: map[string]any{"color": "#ff0000"}},
		{ID: "b", Weight: 1},
	}

	placements, err := Compute(items, Config{})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	if placements[0].Meta["color"] != "#ff0000" {
		t.Errorf("Meta = %v, want color echoed", placements[0].Meta)
	}
	if placements[1].Meta != nil {
		t.Errorf("Meta = %v, want nil", placements[1].Meta)
	}
}
