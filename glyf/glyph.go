package glyf

import (
	"github.com/npillmayer/ttoutline/ot"
)

// BBox is the bounding box of a glyph in font design units, as stated by the
// glyph's header. It is not checked against the glyph's points.
type BBox struct {
	XMin, YMin, XMax, YMax int16
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() int {
	return int(b.XMax) - int(b.XMin)
}

// Height returns the vertical extent of the box.
func (b BBox) Height() int {
	return int(b.YMax) - int(b.YMin)
}

// headerSize is the size of a glyph header: numberOfContours and the bounding box.
const headerSize = 10

// Glyph is a read-only view of a glyph record within table 'glyf'.
// It does not copy the underlying font data.
//
// A glyph with NumContours ≥ 0 is a simple glyph, consisting of contours
// (see Simple). A glyph with NumContours < 0 is a composite glyph, made up from
// transformed references to other glyphs (see Components).
type Glyph struct {
	NumContours int16
	BBox        BBox
	data        []byte // glyph description following the header
	offset      uint32 // of the header within table 'glyf'
	empty       bool   // glyph without outline, i.e. without record in 'glyf'
}

// Decode reads the header of the glyph record at offset within outline, which
// usually is the binary data of table 'glyf'. The resulting glyph is a view
// starting immediately after the header. Decode fails with an error of kind
// ot.ErrTruncated if fewer than 10 bytes remain at offset.
func Decode(outline []byte, offset uint32) (Glyph, error) {
	if uint64(offset) > uint64(len(outline)) {
		return Glyph{}, ot.NewFontError(ot.ErrTruncated, tagGlyf, "Header", offset,
			"glyph offset beyond end of table (size %d)", len(outline))
	}
	r := newReader(outline[offset:], offset, "Header")
	var g Glyph
	var err error
	if r.remaining() < headerSize {
		return Glyph{}, r.truncated(headerSize)
	}
	g.NumContours, _ = r.i16()
	g.BBox.XMin, _ = r.i16()
	g.BBox.YMin, _ = r.i16()
	g.BBox.XMax, _ = r.i16()
	g.BBox.YMax, err = r.i16()
	if err != nil {
		return Glyph{}, err
	}
	g.data = outline[offset+headerSize:]
	g.offset = offset
	tracer().Debugf("glyph at offset %d: %d contours, bbox %v", offset, g.NumContours, g.BBox)
	return g, nil
}

// IsComposite returns true for glyphs consisting of components.
func (g Glyph) IsComposite() bool {
	return g.NumContours < 0
}

// IsEmpty returns true for glyphs without a glyph record, such as spaces.
// Empty glyphs are produced by Resolver.Glyph.
func (g Glyph) IsEmpty() bool {
	return g.empty
}

// Offset returns the offset of the glyph's record within table 'glyf'.
func (g Glyph) Offset() uint32 {
	return g.offset
}

// Data returns the glyph description following the header. Should be treated
// as read-only by clients, as it is a view into the original font data.
func (g Glyph) Data() []byte {
	return g.data
}
