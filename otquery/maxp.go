package otquery

import (
	"github.com/npillmayer/ttoutline/ot"
)

// MaxPTableInfo is a typed query view over table 'maxp'.
// For version 1.0 tables, the TrueType profile fields are decoded as well.
// They are upper limits for the glyphs in table 'glyf', as stated by the font.
type MaxPTableInfo struct {
	VersionFixed uint32
	NumGlyphs    uint16

	// TrueType profile (version 1.0 only)
	HasExtendedProfile    bool
	MaxPoints             uint16 // points in a simple glyph
	MaxContours           uint16 // contours in a simple glyph
	MaxCompositePoints    uint16 // points in a composite glyph
	MaxCompositeContours  uint16 // contours in a composite glyph
	MaxZones              uint16
	MaxTwilightPoints     uint16
	MaxStorage            uint16
	MaxFunctionDefs       uint16
	MaxInstructionDefs    uint16
	MaxStackElements      uint16
	MaxSizeOfInstructions uint16
	MaxComponentElements  uint16 // components of a composite glyph, top level only
	MaxComponentDepth     uint16 // levels of nesting of composite glyphs
}

const (
	maxpMinSize = 6
	maxpV10Size = 32
)

// MaxPInfo decodes table 'maxp' from the raw table bytes.
// Returns (info, true) on success, or (zero, false) if the table is missing or too short.
func MaxPInfo(otf *ot.Font) (MaxPTableInfo, bool) {
	var info MaxPTableInfo
	if otf == nil || otf.MaxP == nil {
		return info, false
	}
	b := otf.MaxP.Binary()
	if len(b) < maxpMinSize {
		return info, false
	}
	info.VersionFixed = u32(b[0:])
	info.NumGlyphs = u16(b[4:])
	if info.VersionFixed != 0x00010000 || len(b) < maxpV10Size {
		return info, true
	}
	info.HasExtendedProfile = true
	profile := []*uint16{
		&info.MaxPoints, &info.MaxContours, &info.MaxCompositePoints, &info.MaxCompositeContours,
		&info.MaxZones, &info.MaxTwilightPoints, &info.MaxStorage, &info.MaxFunctionDefs,
		&info.MaxInstructionDefs, &info.MaxStackElements, &info.MaxSizeOfInstructions,
		&info.MaxComponentElements, &info.MaxComponentDepth,
	}
	for i, field := range profile {
		*field = u16(b[6+2*i:])
	}
	return info, true
}
