package ot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Code comment often will cite passage from the
// OpenType specification version 1.8.4;
// see https://docs.microsoft.com/en-us/typography/opentype/spec/.

// ---------------------------------------------------------------------------

// Maximum reasonable counts for OpenType table structures.
// These limits prevent malicious fonts from claiming unreasonably large counts
// that could lead to excessive memory allocation or out-of-bounds reads.
const (
	MaxTableCount = 256   // Table records in the font header
	MaxGlyphCount = 65536 // Maximum glyph index (uint16)
)

// ---------------------------------------------------------------------------

// Checked arithmetic operations to prevent integer overflow

// checkedMulInt checks for overflow in multiplication of two integers
func checkedMulInt(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > 0 && b > 0 && a > math.MaxInt/b {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	if a < 0 && b < 0 && a < math.MaxInt/b {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	if (a < 0 && b > 0 && a < math.MinInt/b) || (a > 0 && b < 0 && b < math.MinInt/a) {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	return a * b, nil
}

// checkedAddInt checks for overflow in addition of two integers
func checkedAddInt(a, b int) (int, error) {
	if b > 0 && a > math.MaxInt-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	if b < 0 && a < math.MinInt-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	return a + b, nil
}

// checkedAddUint32 checks for overflow in addition of two uint32 values
func checkedAddUint32(a, b uint32) (uint32, error) {
	if a > math.MaxUint32-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	return a + b, nil
}

// ---------------------------------------------------------------------------

// Parse parses an OpenType font from a byte slice.
// An ot.Font needs ongoing access to the fonts byte-data after the Parse function returns.
// Its elements are assumed immutable while the ot.Font remains in use.
func Parse(font []byte, opts ...ParseOption) (*Font, error) {
	// https://www.microsoft.com/typography/otspec/otff.htm: Offset Table is 12 bytes.
	r := bytes.NewReader(font)
	h := FontHeader{}
	if err := binary.Read(r, binary.BigEndian, &h); err != nil {
		return nil, err
	}
	tracer().Debugf("header = %v, tag = %x|%s", h, h.FontType, Tag(h.FontType).String())

	// Create error collector for accumulating errors during parsing
	ec := &errorCollector{}

	if !(h.FontType == 0x4f54544f || // OTTO
		h.FontType == 0x00010000 || // TrueType
		h.FontType == 0x74727565) { // true
		return nil, ec.fail(ErrMalformed, T(""), "Header", 0,
			fmt.Sprintf("font type not supported: %x", h.FontType))
	}
	if h.TableCount > MaxTableCount {
		return nil, ec.fail(ErrMalformed, T(""), "Header", 4,
			fmt.Sprintf("table count %d exceeds limit %d", h.TableCount, MaxTableCount))
	}
	otf := &Font{Header: &h, tables: make(map[Tag]Table), parseOptions: opts}
	src := binarySegm(font)
	// "The Offset Table is followed immediately by the Table Record entries …
	// sorted in ascending order by tag", 16 bytes each.

	// Check for arithmetic overflow in table record size calculation
	tableRecordsSize, err := checkedMulInt(16, int(h.TableCount))
	if err != nil {
		return nil, ec.fail(ErrMalformed, T(""), "TableRecords", 12,
			fmt.Sprintf("table count too large: %v", err))
	}

	buf, err := src.view(12, tableRecordsSize)
	if err != nil {
		return nil, ec.fail(ErrTruncated, T(""), "TableRecords", 12, "table record entries")
	}
	for b, prevTag := buf, Tag(0); len(b) > 0; b = b[16:] {
		tag := MakeTag(b)
		if tag < prevTag {
			return nil, ec.fail(ErrMalformed, T(""), "TableRecords", 12, "table order")
		}
		prevTag = tag
		off, size := u32(b[8:12]), u32(b[12:16])
		if off&3 != 0 { // ignore checksums, but "all tables must begin on four byte boundries".
			return nil, ec.fail(ErrMalformed, tag, "Offset", off, "invalid table offset")
		}

		// Validate table bounds before slicing to prevent panic
		tableEnd, err := checkedAddUint32(off, size)
		if err != nil {
			return nil, ec.fail(ErrMalformed, tag, "Size", off,
				fmt.Sprintf("size calculation overflow: %v", err))
		}
		if off > uint32(len(src)) || tableEnd > uint32(len(src)) {
			return nil, ec.fail(ErrTruncated, tag, "Bounds", off,
				fmt.Sprintf("bounds [%d:%d] exceed font size %d", off, tableEnd, len(src)))
		}

		otf.tables[tag], err = parseTable(tag, src[off:tableEnd], off, size, ec)
		if err != nil {
			return nil, err
		}
	}
	if err := linkTables(otf, ec); err != nil {
		return nil, err
	}

	// Transfer accumulated errors and warnings to the Font
	otf.parseErrors = ec.errors
	otf.parseWarnings = ec.warnings

	return otf, nil
}

// According to the OpenType spec, the following tables are
// required for the font to function correctly.
var RequiredTables = []string{
	"cmap", "head", "hhea", "hmtx", "maxp", "name", "OS/2", "post",
}

// These tables are needed to render glyphs even for relaxed test fonts.
var essentialTables = []string{"head", "maxp"}

// Consistency check and shortcuts to essential tables.
func linkTables(otf *Font, ec *errorCollector) error {
	required := RequiredTables
	if otf.hasOption(relaxCompleteness) {
		required = essentialTables
	}
	for _, tag := range required {
		if otf.tables[T(tag)] == nil {
			return ec.fail(ErrMalformed, T(tag), "Missing", 0, "missing required table "+tag)
		}
	}
	otf.Head = otf.tables[T("head")].Self().AsHead()
	otf.MaxP = otf.tables[T("maxp")].Self().AsMaxP()
	if otf.Head == nil || otf.MaxP == nil {
		return ec.fail(ErrMalformed, T("head"), "Missing", 0, "head or maxp table not interpretable")
	}
	if t := otf.Table(T("hhea")); t != nil {
		otf.HHea = t.Self().AsHHea()
	}
	if t := otf.Table(T("hmtx")); t != nil {
		otf.HMtx = t.Self().AsHMtx()
	}
	if t := otf.Table(T("OS/2")); t != nil {
		otf.OS2 = t.Self().AsOS2()
	}
	if t := otf.Table(T("loca")); t != nil {
		otf.Loca = t.Self().AsLoca()
	}
	if t := otf.Table(T("glyf")); t != nil {
		otf.Glyf = t.Self().AsGlyf()
	}
	//
	// Collect and centralize font information:
	// The number of glyphs in the font is restricted only by the value stated in the 'maxp' table.
	if otf.Loca != nil {
		otf.Loca.LongFormat = otf.Head.IndexToLocFormat == 1
		otf.Loca.NumGlyphs = otf.MaxP.NumGlyphs
	}
	if err := validateCrossTableConsistency(otf, ec); err != nil {
		return err
	}
	if otf.HHea != nil && otf.HMtx != nil {
		if err := otf.HMtx.parseAll(otf.MaxP.NumGlyphs, otf.HHea.NumberOfHMetrics); err != nil {
			return ec.fail(ErrMalformed, T("hmtx"), "Metrics", otf.HMtx.offset, err.Error())
		}
	}
	return nil
}

// validateCrossTableConsistency performs cross-table validation to ensure
// internal consistency between related tables.
func validateCrossTableConsistency(otf *Font, ec *errorCollector) error {
	numGlyphs := otf.MaxP.NumGlyphs

	// Validate hhea.NumberOfHMetrics against hmtx table capacity
	if otf.HHea != nil && otf.HMtx != nil {
		if otf.HHea.NumberOfHMetrics > numGlyphs {
			return ec.fail(ErrMalformed, T("hhea"), "NumberOfHMetrics", otf.HHea.offset,
				fmt.Sprintf("value %d exceeds maxp.NumGlyphs %d", otf.HHea.NumberOfHMetrics, numGlyphs))
		}
		// hmtx contains NumberOfHMetrics longHorMetrics (4 bytes each) +
		// (numGlyphs - NumberOfHMetrics) leftSideBearings (2 bytes each)
		longMetricsSize, err := checkedMulInt(otf.HHea.NumberOfHMetrics, 4)
		if err != nil {
			return ec.fail(ErrMalformed, T("hmtx"), "Size", otf.HMtx.offset, err.Error())
		}
		lsbSize, err := checkedMulInt(numGlyphs-otf.HHea.NumberOfHMetrics, 2)
		if err != nil {
			return ec.fail(ErrMalformed, T("hmtx"), "Size", otf.HMtx.offset, err.Error())
		}
		requiredSize, err := checkedAddInt(longMetricsSize, lsbSize)
		if err != nil {
			return ec.fail(ErrMalformed, T("hmtx"), "Size", otf.HMtx.offset, err.Error())
		}
		if int(otf.HMtx.length) < requiredSize {
			return ec.fail(ErrTruncated, T("hmtx"), "Size", otf.HMtx.offset,
				fmt.Sprintf("table size %d insufficient for %d glyphs (need %d)",
					otf.HMtx.length, numGlyphs, requiredSize))
		}
	}

	// Tables loca and glyf come in pairs
	if (otf.Loca == nil) != (otf.Glyf == nil) {
		return ec.fail(ErrMalformed, T("loca"), "Missing", 0, "tables loca and glyf must occur together")
	}
	if otf.Loca == nil {
		if otf.Header.FontType != 0x4f54544f {
			ec.addWarning(T("glyf"), "TrueType font without glyph outlines", 0)
		}
		return nil
	}
	// Validate head.IndexToLocFormat consistency with loca table
	if f := otf.Head.IndexToLocFormat; f > 1 {
		return ec.fail(ErrMalformed, T("head"), "IndexToLocFormat", otf.Head.offset,
			fmt.Sprintf("invalid value: %d (must be 0 or 1)", f))
	}
	expectedLocaSize, err := checkedMulInt(numGlyphs+1, otf.Loca.EntrySize())
	if err != nil {
		return ec.fail(ErrMalformed, T("loca"), "Size", otf.Loca.offset,
			fmt.Sprintf("size calculation overflow: %v", err))
	}
	if int(otf.Loca.length) < expectedLocaSize {
		return ec.fail(ErrMalformed, T("loca"), "Size", otf.Loca.offset,
			fmt.Sprintf("table size (%d) insufficient for %d glyphs (need %d)",
				otf.Loca.length, numGlyphs, expectedLocaSize))
	}
	tracer().Debugf("cross-table validation: maxp.NumGlyphs = %d, loca is long = %v",
		numGlyphs, otf.Loca.LongFormat)
	return nil
}

func parseTable(t Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	switch t {
	case T("glyf"):
		// glyph records are decoded lazily by package glyf
		return newGlyfTable(t, b, offset, size), nil
	case T("head"):
		return parseHead(t, b, offset, size, ec)
	case T("hhea"):
		return parseHHea(t, b, offset, size, ec)
	case T("hmtx"):
		return parseHMtx(t, b, offset, size, ec)
	case T("loca"):
		return parseLoca(t, b, offset, size, ec)
	case T("maxp"):
		return parseMaxP(t, b, offset, size, ec)
	case T("OS/2"):
		return parseOS2(t, b, offset, size, ec)
	}
	tracer().Debugf("font contains table (%s), will not be interpreted", t)
	return newTable(t, b, offset, size), nil
}

// --- Head table ------------------------------------------------------------

func parseHead(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < 54 {
		return nil, ec.fail(ErrTruncated, tag, "Size", offset,
			fmt.Sprintf("head table too small: %d bytes (need 54)", size))
	}
	t := newHeadTable(tag, b, offset, size)
	t.Flags, _ = b.u16(16)      // flags
	t.UnitsPerEm, _ = b.u16(18) // units per em
	t.XMin, _ = b.i16(36)
	t.YMin, _ = b.i16(38)
	t.XMax, _ = b.i16(40)
	t.YMax, _ = b.i16(42)
	// IndexToLocFormat is needed to interpret the loca table:
	// 0 for short offsets, 1 for long
	t.IndexToLocFormat, _ = b.u16(50)
	if t.UnitsPerEm < 16 || t.UnitsPerEm > 16384 {
		ec.addWarning(tag, fmt.Sprintf("units per em out of range: %d", t.UnitsPerEm), offset+18)
	}
	return t, nil
}

// --- Loca table ------------------------------------------------------------

// Dependencies (taken from Apple Developer page about TrueType):
// The size of entries in the 'loca' table must be appropriate for the value of the
// indexToLocFormat field of the 'head' table. The number of entries must be the same
// as the numGlyphs field of the 'maxp' table.
// The 'loca' table is most intimately dependent upon the contents of the 'glyf' table
// and vice versa.
func parseLoca(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	return newLocaTable(tag, b, offset, size), nil
}

// --- MaxP table ------------------------------------------------------------

// This table establishes the memory requirements for this font. Fonts with CFF data
// must use Version 0.5 of this table, specifying only the numGlyphs field. Fonts
// with TrueType outlines must use Version 1.0 of this table, where all data is required.
func parseMaxP(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < 6 {
		return nil, ec.fail(ErrTruncated, tag, "Size", offset,
			fmt.Sprintf("maxp table too small: %d bytes (need 6)", size))
	}
	t := newMaxPTable(tag, b, offset, size)
	n, _ := b.u16(4)
	t.NumGlyphs = int(n)
	if version, _ := b.u32(0); version == 0x00010000 && size >= 32 {
		depth, _ := b.u16(30)
		t.MaxComponentDepth = int(depth)
	}
	return t, nil
}

// --- HHea table ------------------------------------------------------------

// This table contains information for horizontal layout.
func parseHHea(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	tracer().Debugf("HHea table has size %d", size)
	if size < 36 {
		return nil, ec.fail(ErrTruncated, tag, "Size", offset,
			fmt.Sprintf("hhea table too small: %d bytes (need 36)", size))
	}
	t := newHHeaTable(tag, b, offset, size)
	t.Ascender, _ = b.i16(4)
	t.Descender, _ = b.i16(6)
	t.LineGap, _ = b.i16(8)
	t.AdvanceWidthMax, _ = b.u16(10)
	t.MinLeftSideBearing, _ = b.i16(12)
	t.MinRightSideBearing, _ = b.i16(14)
	t.XMaxExtent, _ = b.i16(16)
	t.CaretSlopeRise, _ = b.i16(18)
	t.CaretSlopeRun, _ = b.i16(20)
	t.CaretOffset, _ = b.i16(22)
	n, _ := b.u16(34)
	t.NumberOfHMetrics = int(n)
	return t, nil
}

// --- HMtx table ------------------------------------------------------------

// Dependencies (taken from Apple Developer page about TrueType):
// The value of the numOfLongHorMetrics field is found in the 'hhea' (Horizontal Header)
// table. Fonts that lack an 'hhea' table must not have an 'hmtx' table.
func parseHMtx(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	return newHMtxTable(tag, b, offset, size), nil
}

// --- OS/2 table ------------------------------------------------------------

// The OS/2 table consists of a set of metrics and other data that are required in
// OpenType fonts. We only interpret the typographic vertical metrics.
func parseOS2(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	t := newOS2Table(tag, b, offset, size)
	if size < 78 {
		ec.addWarning(tag, fmt.Sprintf("OS/2 table too small for metrics: %d bytes", size), offset)
		return t, nil
	}
	t.Version, _ = b.u16(0)
	t.XAvgCharWidth, _ = b.i16(2)
	t.TypoAscender, _ = b.i16(68)
	t.TypoDescender, _ = b.i16(70)
	t.TypoLineGap, _ = b.i16(72)
	t.WinAscent, _ = b.u16(74)
	t.WinDescent, _ = b.u16(76)
	return t, nil
}
