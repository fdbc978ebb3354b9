// Package pipeline provides the core layout pipeline for Cumulus.
//
// This package implements the load → layout flow shared by the CLI and the
// HTTP API. Centralizing it keeps caching and default handling consistent
// across every entry point.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Load: read and validate a weighted item set (file, reader, or request)
//  2. Layout: compute the spiral cloud arrangement for the set
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Input: "items.json"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	doc := result.Layout
//
// Run individual stages:
//
//	// Load only
//	set, err := runner.Load(ctx, opts)
//
//	// Layout with an existing set
//	l, err := runner.ComputeLayout(ctx, set, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cumulus/pkg/cache"
	"github.com/matzehuels/cumulus/pkg/cloud"
	"github.com/matzehuels/cumulus/pkg/layout"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Input string `json:"input,omitempty"` // Item set file path
	Name  string `json:"name,omitempty"`  // Overrides the set's own name

	// Layout options. Zero fields fall back to cloud defaults.
	Layout cloud.Config `json:"layout,omitempty"`

	// Refresh bypasses the cache read (the result is still written back).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ItemsHash is the content hash of the loaded item set.
	ItemsHash string

	// Layout is the computed arrangement document.
	Layout layout.Layout

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount  int
	Degraded   int // Placements accepted after exhausting the attempt budget
	LoadTime   time.Duration
	LayoutTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if o.Input == "" {
		return fmt.Errorf("input is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults fills unset layout fields with the engine defaults.
func (o *Options) SetLayoutDefaults() {
	o.Layout.ApplyDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return o.Layout.Validate()
}

// Reproducible reports whether the configured layout is a pure function of
// its inputs. Jitter with a zero seed draws fresh entropy per call, so such
// runs must not be served from (or written to) the cache.
func (o *Options) Reproducible() bool {
	return o.Layout.Jitter == 0 || o.Layout.Seed != 0
}

// LayoutKeyOpts returns cache key options for layout computation.
// Every field that affects output is included.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		MinFontSize:  o.Layout.MinFontSize,
		MaxFontSize:  o.Layout.MaxFontSize,
		MaxAttempts:  o.Layout.MaxAttempts,
		Padding:      o.Layout.Padding,
		SizeExponent: o.Layout.SizeExponent,
		OpacityBase:  o.Layout.Opacity.Base,
		OpacitySprd:  o.Layout.Opacity.Spread,
		ScaleBase:    o.Layout.Scale.Base,
		ScaleSprd:    o.Layout.Scale.Spread,
		Jitter:       o.Layout.Jitter,
		Seed:         o.Layout.Seed,
	}
}
