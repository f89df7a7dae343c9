/*
Package glyf decodes TrueType glyph outlines from tables 'loca' and 'glyf' and
converts them into paths of quadratic Bézier segments (path.Data of
seehuhn.de/go/geom), ready to be rasterized into a coverage bitmap.

The decoding pipeline is

	glyph index → OffsetTable → offset → Decode → Glyph
	  simple:    Glyph.Simple → PointStream → path builder → Path
	  composite: Glyph.Components → Resolver (recursive, transformed, budgeted) → Path
	Path → Rasterizer → *image.Alpha

All decoders are lightweight cursors over the font's binary data, which is
borrowed, not copied. Clients must not modify the font data while glyph views
derived from it are in use. Decoders hold no shared mutable state, so glyphs may
be decoded and rasterized concurrently.

Glyph data originates from untrusted font files: every read is bounds-checked
and errors wrap one of the error kinds of package ot (ot.ErrMalformed,
ot.ErrTruncated, ot.ErrIncomplete, ot.ErrGlyphRange, ot.ErrRecursion).
Resolving a composite glyph is limited in nesting depth and in the total number
of components and points it expands to, see Options.

Hinting instructions are skipped, not executed. Variable font deltas are not
applied.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package glyf

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/ttoutline/ot"
)

// tracer writes to trace with key 'font.glyf'
func tracer() tracing.Trace {
	return tracing.Select("font.glyf")
}

var (
	tagGlyf = ot.T("glyf")
	tagLoca = ot.T("loca")
)
