package otquery

import (
	"github.com/npillmayer/ttoutline/glyf"
	"github.com/npillmayer/ttoutline/ot"
	"golang.org/x/image/font/sfnt"
)

// --- Font Information -------------------------------------------------

// FontMetrics retrieves selected metrics of a font. Ascender and descender are
// taken from table 'hhea', with table 'OS/2' as a fallback.
func FontMetrics(otf *ot.Font) FontMetricsInfo {
	metrics := FontMetricsInfo{}
	if otf == nil {
		return metrics
	}
	if hhea := otf.HHea; hhea != nil {
		metrics.Ascent = sfnt.Units(hhea.Ascender)
		metrics.Descent = sfnt.Units(hhea.Descender)
		metrics.LineGap = sfnt.Units(hhea.LineGap)
		metrics.MaxAdvance = sfnt.Units(hhea.AdvanceWidthMax)
	}
	if metrics.Ascent == 0 && metrics.Descent == 0 {
		if os2 := otf.OS2; os2 != nil {
			tracer().Debugf("hhea has no ascender, using OS/2")
			if a := sfnt.Units(os2.TypoAscender); a > metrics.Ascent {
				metrics.Ascent = a
			}
			if d := sfnt.Units(os2.TypoDescender); d < metrics.Descent {
				metrics.Descent = d
			}
			if metrics.LineGap == 0 {
				metrics.LineGap = sfnt.Units(os2.TypoLineGap)
			}
		}
	}
	if otf.Head != nil { // head is a required table
		metrics.UnitsPerEm = sfnt.Units(otf.Head.UnitsPerEm)
	}
	return metrics
}

// --- Glyph Routines --------------------------------------------------------

// GlyphIndex returns the glyph index for a given code-point.
// If the code-point cannot be found, 0 is returned.
//
// From the OpenType specification: character codes that do not correspond to any glyph in
// the font should be mapped to glyph index 0. The glyph at this location must be a special
// glyph representing a missing character, commonly known as '.notdef'.
func GlyphIndex(otf *ot.Font, codepoint rune) ot.GlyphIndex {
	if otf == nil || otf.F == nil || otf.F.SFNT == nil {
		tracer().Debugf("font has no character map")
		return 0
	}
	var buf sfnt.Buffer
	gid, err := otf.F.SFNT.GlyphIndex(&buf, codepoint)
	if err != nil {
		tracer().Infof("cannot map %#U: %v", codepoint, err)
		return 0
	}
	return ot.GlyphIndex(gid)
}

// GlyphMetrics retrieves metrics for a given glyph. The bounding box is the one
// stated in the glyph's header in table 'glyf'.
func GlyphMetrics(otf *ot.Font, gid ot.GlyphIndex) GlyphMetricsInfo {
	metrics := GlyphMetricsInfo{}
	if otf == nil {
		return metrics
	}
	// table hmtx: advance width and left side bearing
	if otf.HMtx != nil {
		if aw, lsb, ok := otf.HMtx.HMetrics(gid); ok {
			metrics.Advance = sfnt.Units(aw)
			metrics.LSB = sfnt.Units(lsb)
		}
	}
	// table glyf: bounding box
	if r, err := glyf.FromFont(otf, glyf.DefaultOptions()); err == nil {
		if g, err := r.Glyph(gid); err == nil && !g.IsEmpty() {
			metrics.BBox = boundingBox(g.BBox)
		} else if err != nil {
			tracer().Infof("no bounding box for glyph %d: %v", gid, err)
		}
	}
	// rsb = aw - (lsb + xMax - xMin)
	// If a glyph has no contours, xMax/xMin are not defined. The left side bearing indicated
	// in the 'hmtx' table for such glyphs should be zero.
	if !metrics.BBox.IsEmpty() {
		metrics.RSB = metrics.Advance - (metrics.LSB + metrics.BBox.Dx())
	}
	return metrics
}

func boundingBox(b glyf.BBox) BoundingBox {
	return BoundingBox{
		MinX: sfnt.Units(b.XMin),
		MinY: sfnt.Units(b.YMin),
		MaxX: sfnt.Units(b.XMax),
		MaxY: sfnt.Units(b.YMax),
	}
}
