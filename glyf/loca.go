package glyf

import (
	"math"

	"github.com/npillmayer/ttoutline/ot"
)

// LocaFormat is the width of the entries of an offset table, as stated by
// field indexToLocFormat of table 'head'.
type LocaFormat int

const (
	ShortOffsets LocaFormat = iota // 16-bit entries, holding the offset divided by 2
	LongOffsets                    // 32-bit entries, holding the offset
)

// EntrySize returns the size of a single offset entry in bytes.
func (f LocaFormat) EntrySize() int {
	if f == LongOffsets {
		return 4
	}
	return 2
}

func (f LocaFormat) String() string {
	if f == LongOffsets {
		return "long"
	}
	return "short"
}

// OffsetTable maps glyph indices to the offsets of glyph records within table 'glyf'.
// It is an immutable view over the binary data of table 'loca'.
type OffsetTable struct {
	data   []byte
	count  int
	format LocaFormat
}

// NewOffsetTable creates an offset table for count glyphs. It fails with an
// error of kind ot.ErrMalformed if b is too short to hold count entries.
//
// Table 'loca' of a font holds count+1 entries, the last one marking the end
// of the last glyph record. Clients wanting to detect empty glyphs (see Range)
// should pass in the complete table binary.
func NewOffsetTable(b []byte, count int, format LocaFormat) (*OffsetTable, error) {
	if count < 0 || count > math.MaxUint16+1 {
		return nil, ot.NewFontError(ot.ErrMalformed, tagLoca, "Count", 0,
			"invalid glyph count %d", count)
	}
	if format != ShortOffsets && format != LongOffsets {
		return nil, ot.NewFontError(ot.ErrMalformed, tagLoca, "Format", 0,
			"invalid offset format %d", format)
	}
	if need := count * format.EntrySize(); len(b) < need {
		return nil, ot.NewFontError(ot.ErrMalformed, tagLoca, "Size", 0,
			"table of %d bytes too small for %d %s offsets (need %d)", len(b), count, format, need)
	}
	return &OffsetTable{data: b, count: count, format: format}, nil
}

// Count returns the number of glyphs addressed by the table.
func (t *OffsetTable) Count() int {
	return t.count
}

// Format returns the width of the table's entries.
func (t *OffsetTable) Format() LocaFormat {
	return t.format
}

// Offset returns the offset of the record for glyph gid within table 'glyf'.
// For gid beyond the glyph count, an error of kind ot.ErrGlyphRange is returned.
func (t *OffsetTable) Offset(gid ot.GlyphIndex) (uint32, error) {
	if int(gid) >= t.count {
		return 0, ot.NewFontError(ot.ErrGlyphRange, tagLoca, "Offset", 0,
			"glyph %d out of range [0…%d)", gid, t.count)
	}
	return t.entry(int(gid)), nil
}

// entry reads entry i, which has to be within the bounds of the table data.
func (t *OffsetTable) entry(i int) uint32 {
	if t.format == LongOffsets {
		b := t.data[4*i:]
		return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	}
	b := t.data[2*i:]
	return 2 * (uint32(b[0])<<8 | uint32(b[1]))
}

// Range returns the extent [start, end) of the record for glyph gid within
// table 'glyf'. If the table data does not contain the entry following gid,
// end is returned as math.MaxUint32, i.e. the record is bounded by the
// end of table 'glyf' only. A glyph with start == end has no outline.
func (t *OffsetTable) Range(gid ot.GlyphIndex) (start, end uint32, err error) {
	if start, err = t.Offset(gid); err != nil {
		return 0, 0, err
	}
	next := int(gid) + 1
	if len(t.data) < (next+1)*t.format.EntrySize() {
		return start, math.MaxUint32, nil
	}
	if end = t.entry(next); end < start {
		return 0, 0, ot.NewFontError(ot.ErrMalformed, tagLoca, "Range", uint32(next*t.format.EntrySize()),
			"offsets for glyph %d not ascending: %d > %d", gid, start, end)
	}
	return start, end, nil
}
