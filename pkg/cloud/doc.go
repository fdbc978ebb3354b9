// Package cloud computes weighted tag-cloud layouts.
//
// Given a set of labeled items with numeric weights, the engine produces a
// non-overlapping 2D arrangement centered on the origin where visual size
// correlates with weight. The computation runs in three stages:
//
//  1. Normalize: rank items by weight and map each weight to visual
//     attributes (font size, opacity, scale) using a sub-linear curve so
//     outliers don't dwarf the rest of the cloud.
//  2. Place: probe candidate positions along an outward spiral, testing each
//     candidate's estimated bounding box against everything placed so far.
//  3. Assemble: return one Placement per input item, in rank order.
//
// The engine is a pure function of (items, config): it holds no state between
// calls and performs no I/O. The only source of non-determinism is positional
// jitter, which is driven by a seeded PCG stream — a fixed Config.Seed makes
// the output fully reproducible, and tests can inject their own source with
// WithRand.
//
// # Usage
//
//	placements, err := cloud.Compute(items, cloud.Config{Seed: 42})
//	if err != nil {
//	    return err
//	}
//	for _, p := range placements {
//	    // p.X, p.Y are relative to the cloud center; the caller maps them
//	    // to screen coordinates and draws the label at p.FontSize.
//	}
//
// Placement is best-effort by design: when the attempt budget for an item is
// exhausted without finding a free slot, the last candidate is accepted and
// the result is marked Degraded rather than dropping the item.
package cloud
