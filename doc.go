/*
Package ttoutline renders glyphs of TrueType fonts into coverage bitmaps.

There is a certain confusion with the nomenclature of typesetting. We will
stick to the following definitions:

▪︎ A "font" is a variant of a typeface with a certain weight, slant, etc.
An example is "Roboto bold italic". Fonts are loaded with LoadFont or FromBinary.

▪︎ A "glyph" is an outline in a font, addressed by a glyph index. Glyphs are
described in table 'glyf' either by contours of points or by references to
other glyphs (composite glyphs).

▪︎ A "bitmap" is the rendering of a glyph for a given size in pixels per em (ppem),
holding an 8-bit coverage value per pixel.

Decoding of glyph outlines is done by package glyf, with container parsing
by package ot. This package bundles both for the common use case:

	font, err := ttoutline.LoadFont("Roboto-Regular.ttf", nil)
	...
	bitmap, err := font.RasterizeRune('A', fixed.I(32))

# Status

Does not contain methods for font collections (*.ttc). Hinting instructions
are not executed. Fonts with CFF outlines are not supported.

# Links

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ttoutline

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'ttoutline'
func tracer() tracing.Trace {
	return tracing.Select("ttoutline")
}
