/*
Package glyftest builds binary TrueType glyph records, offset tables and minimal
fonts for testing. It does not depend on the decoding packages, so their internal
tests may use it freely.
*/
package glyftest

import (
	"math"
	"sort"
)

// Point is a glyph point in font units.
type Point struct {
	X, Y    int16
	OnCurve bool
}

// On returns an on-curve point.
func On(x, y int16) Point {
	return Point{X: x, Y: y, OnCurve: true}
}

// Off returns an off-curve (quadratic control) point.
func Off(x, y int16) Point {
	return Point{X: x, Y: y}
}

const (
	flagOnCurve    = 0x01
	flagXShort     = 0x02
	flagYShort     = 0x04
	flagRepeat     = 0x08
	flagXSameOrPos = 0x10
	flagYSameOrPos = 0x20
)

// BBox returns the bounding box of a set of contours.
func BBox(contours [][]Point) (xmin, ymin, xmax, ymax int16) {
	first := true
	for _, c := range contours {
		for _, p := range c {
			if first {
				xmin, ymin, xmax, ymax = p.X, p.Y, p.X, p.Y
				first = false
				continue
			}
			xmin, xmax = min(xmin, p.X), max(xmax, p.X)
			ymin, ymax = min(ymin, p.Y), max(ymax, p.Y)
		}
	}
	return
}

// Simple encodes a simple glyph record from a list of contours. Coordinates
// are delta-encoded using short vectors where possible, and runs of identical
// flags are compressed with the repeat flag.
func Simple(contours ...[]Point) []byte {
	return SimpleWithInstructions(nil, contours...)
}

// SimpleWithInstructions encodes a simple glyph record carrying hinting instructions.
func SimpleWithInstructions(instructions []byte, contours ...[]Point) []byte {
	xmin, ymin, xmax, ymax := BBox(contours)
	buf := header(int16(len(contours)), xmin, ymin, xmax, ymax)
	var points []Point
	for _, c := range contours {
		points = append(points, c...)
		buf = appendU16(buf, uint16(len(points)-1))
	}
	buf = appendU16(buf, uint16(len(instructions)))
	buf = append(buf, instructions...)
	//
	n := len(points)
	flags := make([]byte, n)
	dx := make([]int, n)
	dy := make([]int, n)
	var px, py int
	for i, p := range points {
		dx[i], dy[i] = int(p.X)-px, int(p.Y)-py
		px, py = int(p.X), int(p.Y)
		if p.OnCurve {
			flags[i] |= flagOnCurve
		}
		flags[i] |= coordFlag(dx[i], flagXShort, flagXSameOrPos)
		flags[i] |= coordFlag(dy[i], flagYShort, flagYSameOrPos)
	}
	for i := 0; i < n; {
		run := 1
		for j := i + 1; j < n && flags[j] == flags[i] && run < 256; j++ {
			run++
		}
		if run > 1 {
			buf = append(buf, flags[i]|flagRepeat, byte(run-1))
		} else {
			buf = append(buf, flags[i])
		}
		i += run
	}
	buf = appendCoords(buf, flags, dx, flagXShort, flagXSameOrPos)
	buf = appendCoords(buf, flags, dy, flagYShort, flagYSameOrPos)
	return buf
}

func coordFlag(d int, short, sameOrPos byte) byte {
	switch {
	case d == 0:
		return sameOrPos
	case d > 0 && d <= 255:
		return short | sameOrPos
	case d < 0 && d >= -255:
		return short
	}
	return 0
}

func appendCoords(buf []byte, flags []byte, deltas []int, short, sameOrPos byte) []byte {
	for i, f := range flags {
		switch {
		case f&short != 0 && f&sameOrPos != 0:
			buf = append(buf, byte(deltas[i]))
		case f&short != 0:
			buf = append(buf, byte(-deltas[i]))
		case f&sameOrPos == 0:
			buf = appendU16(buf, uint16(int16(deltas[i])))
		}
	}
	return buf
}

// Component describes one reference of a composite glyph.
type Component struct {
	Glyph         uint16
	Dx, Dy        int16     // translation, or point numbers if PointMatching is set
	Words         bool      // force 16-bit arguments
	PointMatching bool      // arguments are point numbers rather than offsets
	Scale         []float64 // 1 (uniform), 2 (x and y) or 4 (2×2 matrix) values
	Flags         uint16    // additional flags, e.g. ROUND_XY_TO_GRID or USE_MY_METRICS
}

// Composite component flags.
const (
	ArgsAreWords    = 0x0001
	ArgsAreXY       = 0x0002
	RoundXYToGrid   = 0x0004
	WeHaveAScale    = 0x0008
	MoreComponents  = 0x0020
	XAndYScale      = 0x0040
	TwoByTwo        = 0x0080
	WeHaveInstr     = 0x0100
	UseMyMetrics    = 0x0200
	OverlapCompound = 0x0400
	ScaledOffset    = 0x0800
	UnscaledOffset  = 0x1000

	structuralFlags = ArgsAreWords | ArgsAreXY | WeHaveAScale | MoreComponents | XAndYScale | TwoByTwo | WeHaveInstr
)

// Composite encodes a composite glyph record. The bounding box has to be
// given explicitly, as its computation would require decoding the referenced
// glyphs. If instructions is non-nil, the last component carries the
// WE_HAVE_INSTRUCTIONS flag and the instructions are appended.
func Composite(bbox [4]int16, components []Component, instructions []byte) []byte {
	buf := header(-1, bbox[0], bbox[1], bbox[2], bbox[3])
	for i, c := range components {
		flags := c.Flags &^ structuralFlags
		if !c.PointMatching {
			flags |= ArgsAreXY
		}
		words := c.Words || !fitsByte(c.Dx, c.PointMatching) || !fitsByte(c.Dy, c.PointMatching)
		if words {
			flags |= ArgsAreWords
		}
		switch len(c.Scale) {
		case 1:
			flags |= WeHaveAScale
		case 2:
			flags |= XAndYScale
		case 4:
			flags |= TwoByTwo
		}
		if i < len(components)-1 {
			flags |= MoreComponents
		} else if instructions != nil {
			flags |= WeHaveInstr
		}
		buf = appendU16(buf, flags)
		buf = appendU16(buf, c.Glyph)
		if words {
			buf = appendU16(buf, uint16(c.Dx))
			buf = appendU16(buf, uint16(c.Dy))
		} else {
			buf = append(buf, byte(c.Dx), byte(c.Dy))
		}
		for _, s := range c.Scale {
			buf = appendU16(buf, uint16(F2Dot14(s)))
		}
	}
	if instructions != nil {
		buf = appendU16(buf, uint16(len(instructions)))
		buf = append(buf, instructions...)
	}
	return buf
}

func fitsByte(v int16, unsigned bool) bool {
	if unsigned {
		return v >= 0 && v <= 255
	}
	return v >= -128 && v <= 127
}

// F2Dot14 converts a float to the 2.14 fixed-point format, rounding to nearest.
func F2Dot14(f float64) int16 {
	return int16(math.Round(f * 16384))
}

// Loca lays out glyph records one after another and returns the matching
// offset table together with the glyph data. Records are padded to even length,
// as required by the short offset format.
func Loca(glyphs [][]byte, long bool) (loca, glyf []byte) {
	offsets := make([]int, 0, len(glyphs)+1)
	for _, g := range glyphs {
		offsets = append(offsets, len(glyf))
		glyf = append(glyf, g...)
		if len(glyf)%2 == 1 {
			glyf = append(glyf, 0)
		}
	}
	offsets = append(offsets, len(glyf))
	for _, o := range offsets {
		if long {
			loca = appendU32(loca, uint32(o))
		} else {
			loca = appendU16(loca, uint16(o/2))
		}
	}
	return loca, glyf
}

// FontSpec describes a minimal TrueType font.
type FontSpec struct {
	UnitsPerEm uint16
	Ascender   int16
	Descender  int16
	Advance    uint16   // advance width for every glyph
	LongLoca   bool     // use 32-bit loca offsets
	Glyphs     [][]byte // glyph records, glyph 0 first

	// Tables replaces or adds tables by tag. A nil entry removes a table.
	Tables map[string][]byte
}

// Font builds a font binary with tables head, hhea, hmtx, maxp, loca, glyf and OS/2.
// It lacks tables cmap, name and post and has to be parsed as a test font.
func Font(spec FontSpec) []byte {
	if spec.UnitsPerEm == 0 {
		spec.UnitsPerEm = 1000
	}
	n := len(spec.Glyphs)
	loca, glyf := Loca(spec.Glyphs, spec.LongLoca)
	//
	var xmin, ymin, xmax, ymax int16
	for _, g := range spec.Glyphs {
		if len(g) < 10 {
			continue
		}
		xmin = min(xmin, int16(u16(g[2:])))
		ymin = min(ymin, int16(u16(g[4:])))
		xmax = max(xmax, int16(u16(g[6:])))
		ymax = max(ymax, int16(u16(g[8:])))
	}
	head := make([]byte, 54)
	putU32(head, 0, 0x00010000)
	putU32(head, 12, 0x5F0F3CF5)
	putU16(head, 18, spec.UnitsPerEm)
	putU16(head, 36, uint16(xmin))
	putU16(head, 38, uint16(ymin))
	putU16(head, 40, uint16(xmax))
	putU16(head, 42, uint16(ymax))
	if spec.LongLoca {
		putU16(head, 50, 1)
	}
	hhea := make([]byte, 36)
	putU32(hhea, 0, 0x00010000)
	putU16(hhea, 4, uint16(spec.Ascender))
	putU16(hhea, 6, uint16(spec.Descender))
	putU16(hhea, 10, spec.Advance)
	putU16(hhea, 34, uint16(n))
	hmtx := make([]byte, 4*n)
	for i := 0; i < n; i++ {
		putU16(hmtx, 4*i, spec.Advance)
	}
	maxp := make([]byte, 32)
	putU32(maxp, 0, 0x00010000)
	putU16(maxp, 4, uint16(n))
	putU16(maxp, 30, 1)
	os2 := make([]byte, 78)
	putU16(os2, 0, 4)
	putU16(os2, 68, uint16(spec.Ascender))
	putU16(os2, 70, uint16(spec.Descender))
	putU16(os2, 74, uint16(spec.Ascender))
	putU16(os2, 76, uint16(-spec.Descender))
	tables := map[string][]byte{
		"head": head, "hhea": hhea, "hmtx": hmtx, "maxp": maxp,
		"loca": loca, "glyf": glyf, "OS/2": os2,
	}
	for tag, t := range spec.Tables {
		if t == nil {
			delete(tables, tag)
		} else {
			tables[tag] = t
		}
	}
	return SFNT(tables)
}

// SFNT assembles a font binary from a set of tables. Tables are written in
// ascending tag order, each starting on a 4-byte boundary.
func SFNT(tables map[string][]byte) []byte {
	tags := make([]string, 0, len(tables))
	for tag := range tables {
		tags = append(tags, (tag + "    ")[:4])
	}
	sort.Strings(tags)
	headerSize := 12 + 16*len(tags)
	buf := make([]byte, headerSize)
	putU32(buf, 0, 0x00010000)
	putU16(buf, 4, uint16(len(tags)))
	for i, tag := range tags {
		data := tables[tag]
		if data == nil {
			data = tables[trimTag(tag)]
		}
		rec := 12 + 16*i
		copy(buf[rec:], tag)
		putU32(buf, rec+8, uint32(len(buf)))
		putU32(buf, rec+12, uint32(len(data)))
		buf = append(buf, data...)
		for len(buf)%4 != 0 {
			buf = append(buf, 0)
		}
	}
	return buf
}

func trimTag(tag string) string {
	for len(tag) > 0 && tag[len(tag)-1] == ' ' {
		tag = tag[:len(tag)-1]
	}
	return tag
}

// --- Byte helpers ----------------------------------------------------------

func u16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}

func putU16(b []byte, off int, v uint16) {
	b[off] = byte(v >> 8)
	b[off+1] = byte(v)
}

func putU32(b []byte, off int, v uint32) {
	b[off] = byte(v >> 24)
	b[off+1] = byte(v >> 16)
	b[off+2] = byte(v >> 8)
	b[off+3] = byte(v)
}

func appendU16(b []byte, v uint16) []byte {
	return append(b, byte(v>>8), byte(v))
}

func appendU32(b []byte, v uint32) []byte {
	return append(b, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func header(numContours, xmin, ymin, xmax, ymax int16) []byte {
	buf := make([]byte, 0, 64)
	buf = appendU16(buf, uint16(numContours))
	buf = appendU16(buf, uint16(xmin))
	buf = appendU16(buf, uint16(ymin))
	buf = appendU16(buf, uint16(xmax))
	buf = appendU16(buf, uint16(ymax))
	return buf
}
