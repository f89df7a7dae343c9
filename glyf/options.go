package glyf

import (
	"github.com/npillmayer/schuko"
)

// Default limits for the resolution of composite glyphs.
const (
	MaxComponentDepth = 16      // nesting of composite glyphs
	MaxComponentCount = 4096    // components resolved for a single glyph
	MaxOutlinePoints  = 1 << 20 // points of all simple glyphs resolved for a single glyph
)

// Configuration keys read by OptionsFrom.
const (
	ConfigStrict        = "glyf.strict"        // bool
	ConfigMaxDepth      = "glyf.maxdepth"      // int
	ConfigMaxComponents = "glyf.maxcomponents" // int
	ConfigMaxPoints     = "glyf.maxpoints"     // int
)

// Options control the resolution of glyphs.
type Options struct {
	// Strict makes truncated point data fail without a path. Otherwise the
	// partial outline is kept and returned together with an error of kind
	// ot.ErrIncomplete.
	Strict bool
	// MaxDepth limits the nesting of composite glyphs.
	MaxDepth int
	// MaxComponents limits the total number of components resolved for a glyph.
	// Components referenced repeatedly count every time.
	MaxComponents int
	// MaxPoints limits the total number of outline points resolved for a glyph.
	MaxPoints int
}

// DefaultOptions returns lenient options with limits MaxComponentDepth,
// MaxComponentCount and MaxOutlinePoints.
func DefaultOptions() Options {
	return Options{
		MaxDepth:      MaxComponentDepth,
		MaxComponents: MaxComponentCount,
		MaxPoints:     MaxOutlinePoints,
	}
}

// OptionsFrom reads options from a configuration, falling back to the defaults
// for keys not set.
func OptionsFrom(conf schuko.Configuration) Options {
	opts := DefaultOptions()
	if conf == nil {
		return opts
	}
	if conf.IsSet(ConfigStrict) {
		opts.Strict = conf.GetBool(ConfigStrict)
	}
	opts.MaxDepth = positiveInt(conf, ConfigMaxDepth, opts.MaxDepth)
	opts.MaxComponents = positiveInt(conf, ConfigMaxComponents, opts.MaxComponents)
	opts.MaxPoints = positiveInt(conf, ConfigMaxPoints, opts.MaxPoints)
	return opts
}

func positiveInt(conf schuko.Configuration, key string, dflt int) int {
	if !conf.IsSet(key) {
		return dflt
	}
	if n := conf.GetInt(key); n > 0 {
		return n
	}
	tracer().Infof("ignoring invalid %s = %d", key, conf.GetInt(key))
	return dflt
}

func (opts Options) maxDepth() int {
	if opts.MaxDepth <= 0 {
		return MaxComponentDepth
	}
	return opts.MaxDepth
}

func (opts Options) maxComponents() int {
	if opts.MaxComponents <= 0 {
		return MaxComponentCount
	}
	return opts.MaxComponents
}

func (opts Options) maxPoints() int {
	if opts.MaxPoints <= 0 {
		return MaxOutlinePoints
	}
	return opts.MaxPoints
}
