package otquery

import (
	"github.com/npillmayer/ttoutline/glyf"
	"github.com/npillmayer/ttoutline/ot"
)

// GlyphInfo reports the outline structure of glyph gid. For glyphs with broken
// point or component data, the information gathered so far is returned together
// with the decoding error.
func GlyphInfo(otf *ot.Font, gid ot.GlyphIndex) (GlyphOutlineInfo, error) {
	info := GlyphOutlineInfo{Glyph: gid}
	r, err := glyf.FromFont(otf, glyf.DefaultOptions())
	if err != nil {
		return info, err
	}
	g, err := r.Glyph(gid)
	if err != nil {
		return info, err
	}
	if g.IsEmpty() {
		info.Empty, info.Complete = true, true
		return info, nil
	}
	info.BBox = boundingBox(g.BBox)
	if g.IsComposite() {
		info.Composite = true
		return compositeInfo(g, info)
	}
	sg, err := g.Simple()
	if err != nil {
		return info, err
	}
	info.Contours = len(sg.EndPoints)
	info.Points = sg.NumPoints()
	info.Instructions = len(sg.Instructions)
	info.Complete = sg.Complete()
	return info, nil
}

func compositeInfo(g glyf.Glyph, info GlyphOutlineInfo) (GlyphOutlineInfo, error) {
	it, err := g.Components()
	if err != nil {
		return info, err
	}
	for {
		step := it.Next()
		switch step.Kind {
		case glyf.StepError:
			info.Components = it.Count()
			return info, step.Err
		case glyf.StepEnd:
			info.Components = it.Count()
			instr, err := it.Instructions()
			info.Instructions = len(instr)
			info.Complete = err == nil
			return info, err
		}
		info.Unsupported |= step.Component.Unsupported()
	}
}
