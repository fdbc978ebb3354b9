// Package layout defines the canonical serialization formats for Cumulus.
//
// Two document types cross the library boundary: ItemSet (the weighted input
// set) and Layout (the computed arrangement). Both are human-readable JSON
// designed for round-trip fidelity: compute → export → re-import produces
// identical results. The bson tags support document storage in pkg/store.
package layout

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/cumulus/pkg/cloud"
	"github.com/matzehuels/cumulus/pkg/errors"
)

// =============================================================================
// ItemSet - Weighted Input Document
// =============================================================================

// ItemSet is the canonical input format: a named collection of weighted items.
// Used for CLI input files, API requests, storage, and caching.
type ItemSet struct {
	Name  string `json:"name,omitempty" bson:"name,omitempty"`
	Items []Item `json:"items" bson:"items"`
}

// Item is the wire form of a weighted entry.
type Item struct {
	ID     string         `json:"id" bson:"id"`
	Label  string         `json:"label,omitempty" bson:"label,omitempty"` // Display label (defaults to ID)
	Weight float64        `json:"weight" bson:"weight"`
	Meta   map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (i *Item) DisplayLabel() string {
	if i.Label != "" {
		return i.Label
	}
	return i.ID
}

// Validate checks structural soundness: every item carries a well-formed,
// unique ID. Weights are unconstrained (negative values normalize toward 0).
func (s *ItemSet) Validate() error {
	seen := make(map[string]struct{}, len(s.Items))
	for _, it := range s.Items {
		if err := errors.ValidateItemID(it.ID); err != nil {
			return err
		}
		if _, dup := seen[it.ID]; dup {
			return errors.New(errors.ErrCodeInvalidItems, "duplicate item id: %q", it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return nil
}

// ToCloud converts the set to engine input. Labels default to the item ID.
func (s *ItemSet) ToCloud() []cloud.Item {
	out := make([]cloud.Item, len(s.Items))
	for i := range s.Items {
		it := &s.Items[i]
		out[i] = cloud.Item{
			ID:     it.ID,
			Label:  it.DisplayLabel(),
			Weight: it.Weight,
			Meta:   it.Meta,
		}
	}
	return out
}

// =============================================================================
// Layout - Computed Arrangement Document
// =============================================================================

// Layout is the serialization format for a computed cloud arrangement.
//
// Results are stored in rank order (heaviest first), matching the engine's
// output contract. Config echoes the effective configuration after defaults
// so a layout can be recomputed bit-identically from its own document when
// the seed is non-zero.
type Layout struct {
	Name      string       `json:"name,omitempty" bson:"name,omitempty"`
	Config    cloud.Config `json:"config" bson:"config"`
	ItemCount int          `json:"item_count" bson:"item_count"`
	Degraded  int          `json:"degraded,omitempty" bson:"degraded,omitempty"` // Count of best-effort placements
	Results   []Result     `json:"results" bson:"results"`
}

// Result is the wire form of one placed item.
type Result struct {
	ID               string         `json:"id" bson:"id"`
	Label            string         `json:"label,omitempty" bson:"label,omitempty"`
	X                float64        `json:"x" bson:"x"`
	Y                float64        `json:"y" bson:"y"`
	FontSize         float64        `json:"font_size" bson:"font_size"`
	Opacity          float64        `json:"opacity" bson:"opacity"`
	Scale            float64        `json:"scale" bson:"scale"`
	Rank             int            `json:"rank" bson:"rank"`
	NormalizedWeight float64        `json:"normalized_weight" bson:"normalized_weight"`
	Degraded         bool           `json:"degraded,omitempty" bson:"degraded,omitempty"`
	Meta             map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// FromPlacements assembles a Layout document from engine output.
// The effective config (after defaults) should be passed so the document is
// self-describing.
func FromPlacements(name string, cfg cloud.Config, placements []cloud.Placement) Layout {
	l := Layout{
		Name:      name,
		Config:    cfg,
		ItemCount: len(placements),
		Results:   make([]Result, len(placements)),
	}
	for i, p := range placements {
		if p.Degraded {
			l.Degraded++
		}
		l.Results[i] = Result{
			ID:               p.ID,
			Label:            p.Label,
			X:                p.X,
			Y:                p.Y,
			FontSize:         p.FontSize,
			Opacity:          p.Opacity,
			Scale:            p.Scale,
			Rank:             p.Rank,
			NormalizedWeight: p.NormalizedWeight,
			Degraded:         p.Degraded,
			Meta:             p.Meta,
		}
	}
	return l
}

// =============================================================================
// ItemSet Serialization API
// =============================================================================

// MarshalItemSet serializes an ItemSet to pretty-printed JSON bytes.
func MarshalItemSet(s ItemSet) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// UnmarshalItemSet deserializes JSON bytes into an ItemSet and validates it.
func UnmarshalItemSet(data []byte) (ItemSet, error) {
	var s ItemSet
	if err := json.Unmarshal(data, &s); err != nil {
		return ItemSet{}, fmt.Errorf("unmarshal item set: %w", err)
	}
	if err := s.Validate(); err != nil {
		return ItemSet{}, err
	}
	return s, nil
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that the result list matches the recorded item count.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	if l.ItemCount != len(l.Results) {
		return Layout{}, fmt.Errorf("layout item count %d does not match %d results", l.ItemCount, len(l.Results))
	}

	return l, nil
}
