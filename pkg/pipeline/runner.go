package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cumulus/pkg/cache"
	"github.com/matzehuels/cumulus/pkg/cloud"
	"github.com/matzehuels/cumulus/pkg/layout"
	"github.com/matzehuels/cumulus/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	set, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.ItemCount = len(set.Items)

	// Compute item-set hash for cache keys and API responses
	if setData, err := layout.MarshalItemSet(set); err == nil {
		result.ItemsHash = cache.Hash(setData)
	}

	r.Logger.Info("loaded item set",
		"name", set.Name,
		"items", len(set.Items),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, set, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Degraded = l.Degraded
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"items", l.ItemCount,
		"degraded", l.Degraded,
		"duration", result.Stats.LayoutTime)

	return result, nil
}

// Load reads and validates the item set named by opts.Input.
func (r *Runner) Load(ctx context.Context, opts Options) (layout.ItemSet, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return layout.ItemSet{}, err
	}

	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.Input)

	set, err := layout.ReadItemSetFile(opts.Input)
	observability.Pipeline().OnLoadComplete(ctx, opts.Input, len(set.Items), time.Since(start), err)
	if err != nil {
		return layout.ItemSet{}, err
	}

	if opts.Name != "" {
		set.Name = opts.Name
	}
	return set, nil
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns
// cache hit info. Non-reproducible runs (jitter with no seed) bypass the
// cache entirely since two runs would legitimately differ.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, set layout.ItemSet, opts Options) (layout.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, false, err
	}
	r.applyLogger(&opts)

	cacheable := opts.Reproducible()

	// Compute cache key
	setData, _ := layout.MarshalItemSet(set)
	setHash := cache.Hash(setData)
	cacheKey := r.Keyer.LayoutKey(setHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if cacheable && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := layout.UnmarshalLayout(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	// Compute
	l, err := r.computeLayout(ctx, set, opts)
	if err != nil {
		return layout.Layout{}, false, err
	}

	// Cache the result
	if cacheable {
		if data, err := layout.MarshalLayout(l); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return l, false, nil // Cache miss
}

// ComputeLayout is a convenience wrapper that calls
// ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, set layout.ItemSet, opts Options) (layout.Layout, error) {
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, set, opts)
	return l, err
}

// computeLayout runs the engine and assembles the serialization document.
func (r *Runner) computeLayout(ctx context.Context, set layout.ItemSet, opts Options) (layout.Layout, error) {
	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, len(set.Items))

	placements, err := cloud.Compute(set.ToCloud(), opts.Layout)

	l := layout.Layout{}
	if err == nil {
		l = layout.FromPlacements(set.Name, opts.Layout, placements)
	}
	observability.Pipeline().OnLayoutComplete(ctx, len(set.Items), l.Degraded, time.Since(start), err)
	if err != nil {
		return layout.Layout{}, err
	}
	return l, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
