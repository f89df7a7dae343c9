package glyf

import (
	"image"
	"image/draw"
	"math"

	"github.com/npillmayer/ttoutline/ot"
	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Rasterizer accumulates paths into a coverage bitmap, using the nonzero fill rule.
type Rasterizer interface {
	DrawPath(p *path.Data)    // adds the contours of p
	Accumulate() *image.Alpha // returns the coverage of all paths drawn
}

// RasterizerFactory creates a rasterizer for a bitmap of a given size.
type RasterizerFactory func(width, height int) Rasterizer

// VectorRasterizer is a Rasterizer backed by golang.org/x/image/vector.
type VectorRasterizer struct {
	z *vector.Rasterizer
}

var _ Rasterizer = (*VectorRasterizer)(nil)

// NewVectorRasterizer creates a rasterizer for a bitmap of width × height pixels.
// It is the default RasterizerFactory.
func NewVectorRasterizer(width, height int) Rasterizer {
	z := vector.NewRasterizer(width, height)
	z.DrawOp = draw.Src
	return &VectorRasterizer{z: z}
}

// DrawPath adds the contours of p. Contours left open are closed implicitly.
func (vr *VectorRasterizer) DrawPath(p *path.Data) {
	if p == nil {
		return
	}
	open := false
	for cmd, pts := range p.Iter() {
		switch cmd {
		case path.CmdMoveTo:
			if open {
				vr.z.ClosePath()
			}
			vr.z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
			open = true
		case path.CmdLineTo:
			vr.z.LineTo(float32(pts[0].X), float32(pts[0].Y))
		case path.CmdQuadTo:
			vr.z.QuadTo(float32(pts[0].X), float32(pts[0].Y), float32(pts[1].X), float32(pts[1].Y))
		case path.CmdCubeTo:
			vr.z.CubeTo(float32(pts[0].X), float32(pts[0].Y), float32(pts[1].X), float32(pts[1].Y),
				float32(pts[2].X), float32(pts[2].Y))
		case path.CmdClose:
			vr.z.ClosePath()
			open = false
		}
	}
	if open {
		vr.z.ClosePath()
	}
}

// Accumulate returns the coverage of all paths drawn.
func (vr *VectorRasterizer) Accumulate() *image.Alpha {
	dst := image.NewAlpha(vr.z.Bounds())
	vr.z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

// BitmapSize returns the size of the bitmap for a glyph with bounding box bbox,
// given the font's ascender and descender in font units and the scale factors
// from font units to pixels. Both dimensions are padded by 2 pixels to
// account for antialiasing and rounding.
func BitmapSize(bbox BBox, ascender, descender float64, xscale, yscale float64) (width, height int) {
	width = int(math.Ceil(float64(bbox.Width())*xscale)) + 2
	height = int(math.Ceil((ascender-descender)*yscale)) + 2
	return max(width, 0), max(height, 0)
}

// RasterTransform returns the transform from font units to bitmap pixels:
// the glyph is shifted to have (xmin, ascender) at the origin, scaled by
// (xscale, -yscale), flipping the y-axis, and finally shifted by the sub-pixel offset.
func RasterTransform(bbox BBox, ascender, xscale, yscale float64, sub vec.Vec2) matrix.Matrix {
	return matrix.Translate(-float64(bbox.XMin), -ascender).
		Mul(matrix.Scale(xscale, -yscale)).
		Mul(matrix.Translate(sub.X, sub.Y))
}

// Rasterize renders a simple glyph to a coverage bitmap, sized by BitmapSize.
// ascender and descender are in font units, xscale and yscale convert font units
// to pixels, and sub is a sub-pixel offset applied after scaling.
// If newRasterizer is nil, NewVectorRasterizer is used.
//
// Truncated point data is handled leniently: the partial glyph is rendered and
// returned together with an error of kind ot.ErrIncomplete.
// Composite glyphs have to be rasterized using Resolver.Rasterize; for them,
// Rasterize fails with an error of kind ot.ErrMalformed.
func (g Glyph) Rasterize(ascender, descender, xscale, yscale float64, sub vec.Vec2,
	newRasterizer RasterizerFactory) (*image.Alpha, error) {
	//
	if g.IsComposite() {
		return nil, ot.NewFontError(ot.ErrMalformed, tagGlyf, "Components", g.offset,
			"composite glyph has to be rasterized by a resolver")
	}
	m := RasterTransform(g.BBox, ascender, xscale, yscale, sub)
	outline, err := g.Path(m)
	if outline == nil {
		return nil, err
	}
	return rasterize(outline, g.BBox, ascender, descender, xscale, yscale, newRasterizer), err
}

func rasterize(outline *path.Data, bbox BBox, ascender, descender, xscale, yscale float64,
	newRasterizer RasterizerFactory) *image.Alpha {
	//
	if newRasterizer == nil {
		newRasterizer = NewVectorRasterizer
	}
	w, h := BitmapSize(bbox, ascender, descender, xscale, yscale)
	tracer().Debugf("rasterize %d commands to %d×%d bitmap", len(outline.Cmds), w, h)
	r := newRasterizer(w, h)
	r.DrawPath(outline)
	return r.Accumulate()
}
