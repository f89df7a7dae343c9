package glyf

import (
	"image"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/ttoutline/internal/glyftest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

func TestBitmapSize(t *testing.T) {
	w, h := BitmapSize(BBox{XMin: 0, YMin: -200, XMax: 100, YMax: 800}, 800, -200, 1, 1)
	if w != 102 || h != 1002 {
		t.Errorf("expected bitmap of 102×1002, have %d×%d", w, h)
	}
	w, h = BitmapSize(BBox{XMin: 10, XMax: 111}, 800, -200, 0.25, 0.25)
	assert.Equal(t, 28, w)
	assert.Equal(t, 252, h)
}

func TestRasterizeSimpleGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	g, err := Decode(glyftest.Simple(square(0, 0, 100, 100)), 0)
	require.NoError(t, err)
	bitmap, err := g.Rasterize(100, 0, 1, 1, vec.Vec2{}, nil)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 102, 102), bitmap.Bounds())
	if a := bitmap.AlphaAt(50, 50).A; a < 0xf0 {
		t.Errorf("expected pixel (50,50) to be covered, have alpha %#x", a)
	}
	assert.Equal(t, uint8(0), bitmap.AlphaAt(101, 50).A)
	assert.Equal(t, uint8(0), bitmap.AlphaAt(50, 101).A)
	//
	// half a pixel to the right, the left column is half covered
	bitmap, err = g.Rasterize(100, 0, 1, 1, vec.Vec2{X: 0.5}, nil)
	require.NoError(t, err)
	a := bitmap.AlphaAt(0, 50).A
	assert.True(t, a > 0x70 && a < 0x90, "alpha of half covered pixel is %#x", a)
}

func TestRasterizeFlipsYAxis(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	// a bar at the bottom of the em box
	g, err := Decode(glyftest.Simple(square(0, 0, 100, 10)), 0)
	require.NoError(t, err)
	bitmap, err := g.Rasterize(100, 0, 1, 1, vec.Vec2{}, nil)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), bitmap.AlphaAt(50, 5).A, "top of the bitmap should be empty")
	assert.Greater(t, bitmap.AlphaAt(50, 95).A, uint8(0xf0))
}

type recordingRasterizer struct {
	width, height int
	paths         []*path.Data
}

func (rr *recordingRasterizer) DrawPath(p *path.Data) {
	rr.paths = append(rr.paths, p)
}

func (rr *recordingRasterizer) Accumulate() *image.Alpha {
	return image.NewAlpha(image.Rect(0, 0, rr.width, rr.height))
}

func TestRasterizeCustomRasterizer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	g, err := Decode(glyftest.Simple(square(100, 0, 500, 400)), 0)
	require.NoError(t, err)
	var rec *recordingRasterizer
	factory := func(w, h int) Rasterizer {
		rec = &recordingRasterizer{width: w, height: h}
		return rec
	}
	bitmap, err := g.Rasterize(800, -200, 0.125, 0.125, vec.Vec2{}, factory)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 52, rec.width)
	assert.Equal(t, 127, rec.height)
	assert.Equal(t, image.Rect(0, 0, 52, 127), bitmap.Bounds())
	require.Len(t, rec.paths, 1)
	// xmin is moved to the left edge, the ascender to the top edge
	bounds, ok := Bounds(rec.paths[0])
	require.True(t, ok)
	assert.InDelta(t, 0, bounds.LLx, 1e-9)
	assert.InDelta(t, 50, bounds.URx, 1e-9)
	assert.InDelta(t, 50, bounds.LLy, 1e-9)
	assert.InDelta(t, 100, bounds.URy, 1e-9)
}

func TestRasterizeTruncatedGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	b := glyftest.Simple(square(100, 0, 500, 400))
	g, err := Decode(b[:23], 0)
	require.NoError(t, err)
	bitmap, err := g.Rasterize(800, -200, 0.1, 0.1, vec.Vec2{}, nil)
	assert.Error(t, err)
	assert.NotNil(t, bitmap, "partial glyph should be rendered")
}
