package cloud

import (
	"math/rand/v2"
)

// Option configures a single Compute call.
type Option func(*engine)

// WithRand injects the random source used for jitter, overriding the seeded
// stream derived from Config.Seed. Intended for tests that need full control
// over the jitter sequence.
func WithRand(rng *rand.Rand) Option {
	return func(e *engine) { e.rng = rng }
}

type engine struct {
	rng *rand.Rand
}

// Compute lays out the given items and returns one Placement per item, in
// rank order (heaviest first). Callers needing input order must re-sort by ID
// themselves.
//
// Zero config fields fall back to defaults; contradictory config returns an
// INVALID_CONFIG error. An empty item slice returns an empty result, not an
// error. The call is pure: concurrent Compute calls are safe as long as they
// don't share an injected random source.
func Compute(items []Item, cfg Config, opts ...Option) ([]Placement, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return []Placement{}, nil
	}

	var e engine
	for _, opt := range opts {
		opt(&e)
	}
	if e.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		e.rng = rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	}

	visuals := normalize(items, cfg)
	p := newPlacer(cfg, e.rng)

	out := make([]Placement, len(visuals))
	for rank, v := range visuals {
		x, y, degraded := p.place(v.item.Label, v.fontSize, rank)
		out[rank] = Placement{
			ID:               v.item.ID,
			Label:            v.item.Label,
			X:                x,
			Y:                y,
			FontSize:         v.fontSize,
			Opacity:          v.opacity,
			Scale:            v.scale,
			Rank:             rank,
			NormalizedWeight: v.normalized,
			Degraded:         degraded,
			Meta:             v.item.Meta,
		}
	}
	return out, nil
}
