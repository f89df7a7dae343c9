package otquery

import (
	"github.com/npillmayer/ttoutline/ot"
)

// HeadTableInfo is a typed query view over table 'head'.
type HeadTableInfo struct {
	MajorVersion       uint16
	MinorVersion       uint16
	FontRevision       uint32
	CheckSumAdjustment uint32
	MagicNumber        uint32
	Flags              uint16
	UnitsPerEm         uint16
	Created            int64 // seconds since 1904-01-01
	Modified           int64 // seconds since 1904-01-01
	XMin               int16
	YMin               int16
	XMax               int16
	YMax               int16
	MacStyle           uint16
	LowestRecPPEM      uint16
	FontDirectionHint  int16
	IndexToLocFormat   int16 // 0 for short, 1 for long offsets in table 'loca'
	GlyphDataFormat    int16
}

const headTableSize = 54

// HeadInfo decodes table 'head' from the raw table bytes.
// Returns (info, true) on success, or (zero, false) if the table is missing or too short.
func HeadInfo(otf *ot.Font) (HeadTableInfo, bool) {
	var info HeadTableInfo
	if otf == nil || otf.Head == nil {
		return info, false
	}
	b := otf.Head.Binary()
	if len(b) < headTableSize {
		return info, false
	}
	info.MajorVersion = u16(b[0:])
	info.MinorVersion = u16(b[2:])
	info.FontRevision = u32(b[4:])
	info.CheckSumAdjustment = u32(b[8:])
	info.MagicNumber = u32(b[12:])
	info.Flags = u16(b[16:])
	info.UnitsPerEm = u16(b[18:])
	info.Created = i64(b[20:])
	info.Modified = i64(b[28:])
	info.XMin = i16(b[36:])
	info.YMin = i16(b[38:])
	info.XMax = i16(b[40:])
	info.YMax = i16(b[42:])
	info.MacStyle = u16(b[44:])
	info.LowestRecPPEM = u16(b[46:])
	info.FontDirectionHint = i16(b[48:])
	info.IndexToLocFormat = i16(b[50:])
	info.GlyphDataFormat = i16(b[52:])
	return info, true
}

// FontType returns a short description of the outline format of a font:
// "TrueType" for fonts with glyph outlines in table 'glyf', "CFF" for
// fonts with PostScript outlines and "unknown" otherwise.
func FontType(otf *ot.Font) string {
	if otf == nil || otf.Header == nil {
		return "unknown"
	}
	switch otf.Header.FontType {
	case 0x00010000, 0x74727565: // 'true'
		return "TrueType"
	case 0x4f54544f: // 'OTTO'
		return "CFF"
	}
	return "unknown"
}
