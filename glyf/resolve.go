package glyf

import (
	"errors"
	"image"
	"math"
	"slices"

	"github.com/npillmayer/ttoutline/ot"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Resolver gives access to the glyphs of a font and resolves composite glyphs
// into a single path. A Resolver holds no mutable state and may be used
// concurrently.
type Resolver struct {
	loca    *OffsetTable
	outline []byte
	opts    Options
}

// NewResolver creates a resolver for glyphs located by loca within outline, the
// binary data of table 'glyf'.
func NewResolver(loca *OffsetTable, outline []byte, opts Options) *Resolver {
	return &Resolver{loca: loca, outline: outline, opts: opts}
}

// FromFont creates a resolver for the glyphs of a parsed font. It fails with an
// error of kind ot.ErrMalformed for fonts without TrueType outlines.
func FromFont(otf *ot.Font, opts Options) (*Resolver, error) {
	if !otf.HasOutlines() {
		return nil, ot.NewFontError(ot.ErrMalformed, tagGlyf, "Missing", 0,
			"font has no TrueType outlines")
	}
	format := ShortOffsets
	if otf.Loca.LongFormat {
		format = LongOffsets
	}
	loca, err := NewOffsetTable(otf.Loca.Binary(), otf.Loca.NumGlyphs, format)
	if err != nil {
		return nil, err
	}
	if otf.MaxP != nil && otf.MaxP.MaxComponentDepth > opts.maxDepth() {
		tracer().Infof("font declares component depth %d, limit is %d",
			otf.MaxP.MaxComponentDepth, opts.maxDepth())
	}
	return NewResolver(loca, otf.Glyf.Binary(), opts), nil
}

// Options returns the options the resolver has been created with.
func (r *Resolver) Options() Options {
	return r.opts
}

// NumGlyphs returns the number of glyphs addressable by the resolver.
func (r *Resolver) NumGlyphs() int {
	return r.loca.Count()
}

// Glyph locates and decodes the header of glyph gid. Glyphs without outline,
// such as the space character, are reported as empty (see Glyph.IsEmpty).
func (r *Resolver) Glyph(gid ot.GlyphIndex) (Glyph, error) {
	start, end, err := r.loca.Range(gid)
	if err != nil {
		return Glyph{}, err
	}
	if start == end {
		return Glyph{empty: true, offset: start}, nil
	}
	outline := r.outline
	if end != math.MaxUint32 {
		if uint64(end) > uint64(len(outline)) {
			tracer().Infof("record of glyph %d exceeds table glyf", gid)
		} else {
			outline = outline[:end]
		}
	}
	return Decode(outline, start)
}

// Path resolves glyph gid into a path, mapping every point by m. Composite
// glyphs are resolved recursively, with the transform of each component
// applied before m.
//
// Nesting deeper than the options' MaxDepth, components referencing a glyph
// currently being resolved, or a glyph expanding to more than MaxComponents
// components or MaxPoints points result in an error of kind ot.ErrRecursion.
// Truncated point data is handled according to the options' Strict flag,
// see BuildPath.
func (r *Resolver) Path(gid ot.GlyphIndex, m matrix.Matrix) (*path.Data, error) {
	outline := &path.Data{}
	b := &budget{components: r.opts.maxComponents(), points: r.opts.maxPoints()}
	err := r.resolve(gid, m, outline, nil, b)
	if err != nil && (r.opts.Strict || !errors.Is(err, ot.ErrIncomplete)) {
		return nil, err
	}
	return outline, err
}

// budget holds the number of components and points a single call to Path may
// still resolve. Components referenced more than once are charged every time.
type budget struct {
	components int
	points     int
}

// resolve appends the outline of glyph gid to outline. chain holds the composite
// glyphs currently being resolved.
func (r *Resolver) resolve(gid ot.GlyphIndex, m matrix.Matrix, outline *path.Data,
	chain []ot.GlyphIndex, b *budget) error {
	//
	g, err := r.Glyph(gid)
	if err != nil {
		return err
	}
	if g.IsEmpty() {
		return nil
	}
	if !g.IsComposite() {
		sg, err := g.Simple()
		if err != nil {
			return err
		}
		if b.points -= sg.NumPoints(); b.points < 0 {
			return ot.NewFontError(ot.ErrRecursion, tagGlyf, "Components", g.offset,
				"glyph expands to more than %d points", r.opts.maxPoints())
		}
		p, err := BuildPath(sg, m, r.opts.Strict)
		appendPath(outline, p)
		return err
	}
	if len(chain) >= r.opts.maxDepth() {
		return ot.NewFontError(ot.ErrRecursion, tagGlyf, "Components", g.offset,
			"composite glyph %d nested deeper than %d levels", gid, r.opts.maxDepth())
	}
	if slices.Contains(chain, gid) {
		return ot.NewFontError(ot.ErrRecursion, tagGlyf, "Components", g.offset,
			"composite glyph %d references itself via %v", gid, chain)
	}
	chain = append(chain, gid)
	it, err := g.Components()
	if err != nil {
		return err
	}
	var incomplete error
	for {
		step := it.Next()
		switch step.Kind {
		case StepEnd:
			return incomplete
		case StepError:
			return step.Err
		}
		if b.components--; b.components < 0 {
			return ot.NewFontError(ot.ErrRecursion, tagGlyf, "Components", g.offset,
				"glyph expands to more than %d components", r.opts.maxComponents())
		}
		c := step.Component
		err := r.resolve(c.GlyphIndex, c.Transform.Mul(m), outline, chain, b)
		if err != nil {
			if r.opts.Strict || !errors.Is(err, ot.ErrIncomplete) {
				return err
			}
			incomplete = err
		}
	}
}

// Rasterize renders glyph gid, which may be simple or composite, to a coverage
// bitmap. Parameters are interpreted as for Glyph.Rasterize. The bitmap is sized
// by the bounding box stated in the glyph's header.
func (r *Resolver) Rasterize(gid ot.GlyphIndex, ascender, descender, xscale, yscale float64,
	sub vec.Vec2, newRasterizer RasterizerFactory) (*image.Alpha, error) {
	//
	g, err := r.Glyph(gid)
	if err != nil {
		return nil, err
	}
	m := RasterTransform(g.BBox, ascender, xscale, yscale, sub)
	outline, err := r.Path(gid, m)
	if outline == nil {
		return nil, err
	}
	return rasterize(outline, g.BBox, ascender, descender, xscale, yscale, newRasterizer), err
}
