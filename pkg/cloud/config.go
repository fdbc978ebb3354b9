package cloud

import (
	"github.com/matzehuels/cumulus/pkg/errors"
)

// Default configuration values. The two call sites of the original cloud
// components used slightly different constants (max font 28 vs 32, padding 25
// vs 30, attempts 100 vs 120); the engine takes the more generous of each and
// callers override per use.
const (
	DefaultMinFontSize  = 14.0
	DefaultMaxFontSize  = 32.0
	DefaultMaxAttempts  = 120
	DefaultPadding      = 28.0
	DefaultSizeExponent = 0.6
	DefaultJitter       = 8.0
)

// DefaultOpacity and DefaultScale are the default [base, spread] pairs for
// secondary visual emphasis.
var (
	DefaultOpacity = Range{Base: 0.6, Spread: 0.4}
	DefaultScale   = Range{Base: 0.9, Spread: 0.35}
)

// Range is a [base, spread] pair: an attribute is computed as
// base + normalizedWeight*spread.
type Range struct {
	Base   float64 `json:"base" bson:"base"`
	Spread float64 `json:"spread" bson:"spread"`
}

// Config controls the layout computation. The zero value is usable: zero
// fields fall back to the documented defaults, except Jitter, where zero is
// meaningful and disables jitter entirely (DefaultConfig carries the default).
type Config struct {
	// MinFontSize and MaxFontSize bound the weight → size mapping.
	MinFontSize float64 `json:"min_font_size,omitempty" bson:"min_font_size,omitempty"`
	MaxFontSize float64 `json:"max_font_size,omitempty" bson:"max_font_size,omitempty"`

	// MaxAttempts caps the spiral search per item.
	MaxAttempts int `json:"max_attempts,omitempty" bson:"max_attempts,omitempty"`

	// Padding is the minimum clearance required between two items'
	// bounding boxes, in layout units.
	Padding float64 `json:"padding,omitempty" bson:"padding,omitempty"`

	// SizeExponent is applied to the normalized weight before the size
	// mapping. Values below 1 grow sub-linearly so heavy outliers don't
	// flatten everything else.
	SizeExponent float64 `json:"size_exponent,omitempty" bson:"size_exponent,omitempty"`

	// Opacity and Scale control secondary emphasis.
	Opacity Range `json:"opacity,omitempty" bson:"opacity,omitempty"`
	Scale   Range `json:"scale,omitempty" bson:"scale,omitempty"`

	// Jitter is the maximum random offset added to spiral candidates for a
	// less mechanical look. Zero disables jitter.
	Jitter float64 `json:"jitter,omitempty" bson:"jitter,omitempty"`

	// Seed drives the jitter stream. A non-zero seed makes the layout
	// reproducible; zero draws a fresh seed from entropy per call.
	Seed uint64 `json:"seed,omitempty" bson:"seed,omitempty"`
}

// DefaultConfig returns a fully populated configuration.
func DefaultConfig() Config {
	return Config{
		MinFontSize:  DefaultMinFontSize,
		MaxFontSize:  DefaultMaxFontSize,
		MaxAttempts:  DefaultMaxAttempts,
		Padding:      DefaultPadding,
		SizeExponent: DefaultSizeExponent,
		Opacity:      DefaultOpacity,
		Scale:        DefaultScale,
		Jitter:       DefaultJitter,
	}
}

// ApplyDefaults fills unset fields with their defaults. Jitter is left
// untouched: zero means "no jitter", not "unset".
func (c *Config) ApplyDefaults() {
	if c.MinFontSize == 0 {
		c.MinFontSize = DefaultMinFontSize
	}
	if c.MaxFontSize == 0 {
		c.MaxFontSize = DefaultMaxFontSize
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.Padding == 0 {
		c.Padding = DefaultPadding
	}
	if c.SizeExponent == 0 {
		c.SizeExponent = DefaultSizeExponent
	}
	if c.Opacity == (Range{}) {
		c.Opacity = DefaultOpacity
	}
	if c.Scale == (Range{}) {
		c.Scale = DefaultScale
	}
}

// Validate checks the configuration for contradictions. It assumes defaults
// have been applied and fails fast rather than silently inverting ranges.
func (c Config) Validate() error {
	if c.MinFontSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "min font size must be positive, got %g", c.MinFontSize)
	}
	if c.MaxFontSize < c.MinFontSize {
		return errors.New(errors.ErrCodeInvalidConfig, "max font size %g is smaller than min font size %g", c.MaxFontSize, c.MinFontSize)
	}
	if c.MaxAttempts <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max attempts must be positive, got %d", c.MaxAttempts)
	}
	if c.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "padding cannot be negative, got %g", c.Padding)
	}
	if c.SizeExponent <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "size exponent must be positive, got %g", c.SizeExponent)
	}
	if c.Jitter < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "jitter cannot be negative, got %g", c.Jitter)
	}
	return nil
}
