package ttoutline

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/ttoutline/glyf"
	"github.com/npillmayer/ttoutline/internal/fontload"
	"github.com/npillmayer/ttoutline/ot"
	"github.com/npillmayer/ttoutline/otquery"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/sync/errgroup"
	"seehuhn.de/go/geom/vec"
)

// Font is a parsed TrueType font, ready to render glyphs.
//
// The font data is borrowed, not copied: clients must not modify it after loading.
// A Font holds no mutable state and may be used concurrently.
type Font struct {
	OT       *ot.Font
	resolver *glyf.Resolver
	metrics  otquery.FontMetricsInfo
}

// FromBinary parses raw font bytes and returns a font ready for rendering.
//
// The input is expected to contain a complete single-font SFNT stream with
// TrueType outlines. conf may be nil; otherwise the keys of glyf.OptionsFrom
// are honored. opts are handed to ot.Parse.
func FromBinary(data []byte, conf schuko.Configuration, opts ...ot.ParseOption) (*Font, error) {
	return fromScalableFont(fontload.WrapBinary(data), conf, opts)
}

// LoadFont loads a TrueType font from a file. See FromBinary.
func LoadFont(path string, conf schuko.Configuration, opts ...ot.ParseOption) (*Font, error) {
	sf, err := fontload.LoadOpenTypeFont(path)
	if err != nil {
		return nil, err
	}
	return fromScalableFont(sf, conf, opts)
}

func fromScalableFont(sf *fontload.ScalableFont, conf schuko.Configuration, opts []ot.ParseOption) (*Font, error) {
	otf, err := ot.Parse(sf.Binary, opts...)
	if err != nil {
		return nil, err
	}
	otf.F = sf
	resolver, err := glyf.FromFont(otf, glyf.OptionsFrom(conf))
	if err != nil {
		return nil, err
	}
	f := &Font{OT: otf, resolver: resolver, metrics: otquery.FontMetrics(otf)}
	if f.metrics.UnitsPerEm <= 0 {
		return nil, ot.NewFontError(ot.ErrMalformed, ot.T("head"), "UnitsPerEm", 0,
			"invalid units per em: %d", f.metrics.UnitsPerEm)
	}
	tracer().Debugf("loaded font %q with %d glyphs", sf.Fontname, resolver.NumGlyphs())
	return f, nil
}

// Resolver returns the glyph resolver of the font.
func (f *Font) Resolver() *glyf.Resolver {
	return f.resolver
}

// WithOptions returns a copy of f, resolving glyphs with options opts.
func (f *Font) WithOptions(opts glyf.Options) (*Font, error) {
	resolver, err := glyf.FromFont(f.OT, opts)
	if err != nil {
		return nil, err
	}
	return &Font{OT: f.OT, resolver: resolver, metrics: f.metrics}, nil
}

// Metrics returns selected font-wide metrics.
func (f *Font) Metrics() otquery.FontMetricsInfo {
	return f.metrics
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return f.resolver.NumGlyphs()
}

// Scale returns the factor converting font units to pixels for a size of ppem
// pixels per em.
func (f *Font) Scale(ppem fixed.Int26_6) float64 {
	return float64(ppem) / 64 / float64(f.metrics.UnitsPerEm)
}

// RasterizeGlyph renders glyph gid at a size of ppem pixels per em, shifted by
// the sub-pixel offset sub. The bitmap spans the glyph's horizontal extent and
// the font's full height from ascender to descender, see glyf.BitmapSize.
//
// With lenient options, glyphs with truncated point data are rendered partially
// and returned together with an error of kind ot.ErrIncomplete.
func (f *Font) RasterizeGlyph(gid ot.GlyphIndex, ppem fixed.Int26_6, sub vec.Vec2) (*image.Alpha, error) {
	if ppem <= 0 {
		return nil, fmt.Errorf("invalid size %v ppem", ppem)
	}
	scale := f.Scale(ppem)
	return f.resolver.Rasterize(gid, float64(f.metrics.Ascent), float64(f.metrics.Descent),
		scale, scale, sub, nil)
}

// RasterizeRune renders the glyph mapped to code-point r, see RasterizeGlyph.
// Code-points missing from the font render as glyph 0 ('.notdef').
func (f *Font) RasterizeRune(r rune, ppem fixed.Int26_6) (*image.Alpha, error) {
	return f.RasterizeGlyph(otquery.GlyphIndex(f.OT, r), ppem, vec.Vec2{})
}

// RasterizeGlyphs renders a list of glyphs concurrently, using up to workers
// goroutines. Every glyph is rendered to a bitmap of its own; bitmaps are
// returned in the order of gids.
//
// Glyphs which are rendered partially (see RasterizeGlyph) are kept. Any other
// error stops the batch. Cancelling ctx stops the batch as well.
func RasterizeGlyphs(ctx context.Context, f *Font, gids []ot.GlyphIndex, ppem fixed.Int26_6,
	workers int) ([]*image.Alpha, error) {
	//
	bitmaps := make([]*image.Alpha, len(gids))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, gid := range gids {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			bitmap, err := f.RasterizeGlyph(gid, ppem, vec.Vec2{})
			if err != nil && (bitmap == nil || !errors.Is(err, ot.ErrIncomplete)) {
				return fmt.Errorf("glyph %d: %w", gid, err)
			} else if err != nil {
				tracer().Infof("glyph %d rendered partially: %v", gid, err)
			}
			bitmaps[i] = bitmap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bitmaps, nil
}

// FamilyName extracts family and subfamily names from a font's 'name' table.
//
// Returned values are empty if no matching records exist or if records cannot be
// decoded by the name-table reader.
func FamilyName(f *Font) (family, subfamily string) {
	for nameID, value := range otquery.NamesRange(f.OT) {
		switch nameID {
		case sfnt.NameIDFamily:
			if family == "" {
				family = value
			}
		case sfnt.NameIDSubfamily:
			if subfamily == "" {
				subfamily = value
			}
		}
	}
	return
}
