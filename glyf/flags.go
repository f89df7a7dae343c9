package glyf

import "strings"

// PointFlag is the flag byte of a point of a simple glyph.
type PointFlag uint8

// Flag bits of simple glyphs.
const (
	FlagOnCurve       PointFlag = 0x01 // point is on the curve, otherwise a quadratic control point
	FlagXShort        PointFlag = 0x02 // x delta is a single byte
	FlagYShort        PointFlag = 0x04 // y delta is a single byte
	FlagRepeat        PointFlag = 0x08 // next byte holds the number of additional repetitions of this flag
	FlagXSameOrPos    PointFlag = 0x10 // short: x delta is positive; else: x is unchanged
	FlagYSameOrPos    PointFlag = 0x20 // short: y delta is positive; else: y is unchanged
	FlagOverlapSimple PointFlag = 0x40 // contours may overlap; first flag only
)

// OnCurve returns true for points on the curve.
func (f PointFlag) OnCurve() bool {
	return f&FlagOnCurve != 0
}

// XMode returns the encoding of a point's x delta.
func (f PointFlag) XMode() CoordMode {
	return coordMode(f, FlagXShort, FlagXSameOrPos)
}

// YMode returns the encoding of a point's y delta.
func (f PointFlag) YMode() CoordMode {
	return coordMode(f, FlagYShort, FlagYSameOrPos)
}

func (f PointFlag) String() string {
	var sb strings.Builder
	if f.OnCurve() {
		sb.WriteString("on")
	} else {
		sb.WriteString("off")
	}
	sb.WriteString(" x:" + f.XMode().String())
	sb.WriteString(" y:" + f.YMode().String())
	if f&FlagRepeat != 0 {
		sb.WriteString(" repeat")
	}
	return sb.String()
}

// CoordMode is the encoding of a single coordinate delta, selected by two
// bits of a point's flag.
type CoordMode uint8

const (
	CoordWord         CoordMode = iota // signed 16-bit delta follows
	CoordPositiveByte                  // unsigned byte follows, added
	CoordNegativeByte                  // unsigned byte follows, subtracted
	CoordSame                          // no delta stored, coordinate is unchanged
)

func coordMode(f, short, sameOrPos PointFlag) CoordMode {
	switch {
	case f&short != 0 && f&sameOrPos != 0:
		return CoordPositiveByte
	case f&short != 0:
		return CoordNegativeByte
	case f&sameOrPos != 0:
		return CoordSame
	}
	return CoordWord
}

// Size returns the number of bytes a delta occupies in the coordinate array.
func (m CoordMode) Size() int {
	switch m {
	case CoordWord:
		return 2
	case CoordPositiveByte, CoordNegativeByte:
		return 1
	}
	return 0
}

func (m CoordMode) String() string {
	switch m {
	case CoordWord:
		return "word"
	case CoordPositiveByte:
		return "+byte"
	case CoordNegativeByte:
		return "-byte"
	case CoordSame:
		return "same"
	}
	return "?"
}

// readDelta reads a delta encoded in mode m from r.
func readDelta(r *reader, m CoordMode) (int, error) {
	switch m {
	case CoordWord:
		d, err := r.i16()
		return int(d), err
	case CoordPositiveByte:
		d, err := r.u8()
		return int(d), err
	case CoordNegativeByte:
		d, err := r.u8()
		return -int(d), err
	}
	return 0, nil
}
