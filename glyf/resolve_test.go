package glyf

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/ttoutline/internal/glyftest"
	"github.com/npillmayer/ttoutline/ot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Glyphs of the resolver test font.
const (
	gEmpty       ot.GlyphIndex = iota
	gSquare                    // (0,0)–(100,100)
	gTwoSquares                // composite: gSquare twice, translated
	gTwoContours               // simple glyph, outline equal to gTwoSquares
	gSelf                      // composite referencing itself
	gNested                    // composite: gTwoSquares, scaled and translated
	gTruncated                 // simple glyph with truncated point data
	gPartial                   // composite: gTruncated and gSquare
	testGlyphCount
)

func testGlyphs() [][]byte {
	twoSquares := glyftest.Composite([4]int16{0, 0, 300, 100}, []glyftest.Component{
		{Glyph: uint16(gSquare)},
		{Glyph: uint16(gSquare), Dx: 200},
	}, nil)
	self := glyftest.Composite([4]int16{0, 0, 100, 100}, []glyftest.Component{
		{Glyph: uint16(gSquare)},
		{Glyph: uint16(gSelf), Dx: 10},
	}, nil)
	nested := glyftest.Composite([4]int16{10, 20, 160, 70}, []glyftest.Component{
		{Glyph: uint16(gTwoSquares), Dx: 10, Dy: 20, Scale: []float64{0.5}},
	}, nil)
	partial := glyftest.Composite([4]int16{0, 0, 500, 400}, []glyftest.Component{
		{Glyph: uint16(gTruncated)},
		{Glyph: uint16(gSquare)},
	}, nil)
	return [][]byte{
		{},
		glyftest.Simple(square(0, 0, 100, 100)),
		twoSquares,
		glyftest.Simple(square(0, 0, 100, 100), square(200, 0, 300, 100)),
		self,
		nested,
		glyftest.Simple(square(100, 0, 500, 400))[:23],
		partial,
	}
}

func testResolver(t *testing.T, opts Options) *Resolver {
	t.Helper()
	loca, outline := glyftest.Loca(testGlyphs(), false)
	offsets, err := NewOffsetTable(loca, int(testGlyphCount), ShortOffsets)
	require.NoError(t, err)
	return NewResolver(offsets, outline, opts)
}

func TestResolveSimpleGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	r := testResolver(t, DefaultOptions())
	assert.Equal(t, int(testGlyphCount), r.NumGlyphs())
	outline, err := r.Path(gSquare, matrix.Identity)
	require.NoError(t, err)
	assert.Equal(t, "M 0,0 L 100,0 L 100,100 L 0,100 L 0,0 Z", FormatPath(outline))
}

func TestResolveEmptyGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	r := testResolver(t, DefaultOptions())
	g, err := r.Glyph(gEmpty)
	require.NoError(t, err)
	assert.True(t, g.IsEmpty())
	sg, err := g.Simple()
	require.NoError(t, err)
	assert.Equal(t, 0, sg.NumPoints())
	outline, err := r.Path(gEmpty, matrix.Identity)
	require.NoError(t, err)
	assert.Empty(t, outline.Cmds)
}

func TestResolveGlyphRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	r := testResolver(t, DefaultOptions())
	_, err := r.Path(testGlyphCount, matrix.Identity)
	if !errors.Is(err, ot.ErrGlyphRange) {
		t.Errorf("expected glyph %d to be out of range, have %v", testGlyphCount, err)
	}
}

func TestResolveComposite(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	r := testResolver(t, DefaultOptions())
	composite, err := r.Path(gTwoSquares, matrix.Identity)
	require.NoError(t, err)
	simple, err := r.Path(gTwoContours, matrix.Identity)
	require.NoError(t, err)
	if diff := cmp.Diff(simple, composite); diff != "" {
		t.Errorf("composite resolves to a different path (-simple +composite):\n%s", diff)
	}
	assert.Equal(t, 2, Contours(composite))
}

func TestResolveNestedTransforms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	r := testResolver(t, DefaultOptions())
	outline, err := r.Path(gNested, matrix.Identity)
	require.NoError(t, err)
	bounds, ok := Bounds(outline)
	require.True(t, ok)
	// inner translation first, then the outer scale and translation
	assert.Equal(t, rect.Rect{LLx: 10, LLy: 20, URx: 160, URy: 70}, bounds)
	assert.Equal(t, vec.Vec2{X: 110, Y: 20}, outline.Coords[5])
	//
	outline, err = r.Path(gNested, matrix.Scale(2, 2))
	require.NoError(t, err)
	bounds, _ = Bounds(outline)
	assert.Equal(t, rect.Rect{LLx: 20, LLy: 40, URx: 320, URy: 140}, bounds)
}

func TestResolveRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	r := testResolver(t, DefaultOptions())
	outline, err := r.Path(gSelf, matrix.Identity)
	if !errors.Is(err, ot.ErrRecursion) {
		t.Errorf("expected self-referencing glyph to fail, have %v", err)
	}
	assert.Nil(t, outline)
	//
	r = testResolver(t, Options{MaxDepth: 1})
	_, err = r.Path(gNested, matrix.Identity)
	assert.ErrorIs(t, err, ot.ErrRecursion)
	_, err = r.Path(gTwoSquares, matrix.Identity)
	assert.NoError(t, err)
}

func TestResolveIncomplete(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	r := testResolver(t, DefaultOptions())
	outline, err := r.Path(gTruncated, matrix.Identity)
	assert.ErrorIs(t, err, ot.ErrIncomplete)
	require.NotNil(t, outline)
	assert.Equal(t, "M 100,0 L 500,0", FormatPath(outline))
	outline, err = r.Path(gPartial, matrix.Identity)
	assert.ErrorIs(t, err, ot.ErrIncomplete)
	require.NotNil(t, outline)
	assert.Equal(t, 2, Contours(outline), "resolution should continue after an incomplete component")
	//
	r = testResolver(t, Options{Strict: true})
	outline, err = r.Path(gTruncated, matrix.Identity)
	assert.ErrorIs(t, err, ot.ErrIncomplete)
	assert.Nil(t, outline)
	outline, err = r.Path(gPartial, matrix.Identity)
	assert.ErrorIs(t, err, ot.ErrIncomplete)
	assert.Nil(t, outline)
}

func TestResolverFromFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	for _, long := range []bool{false, true} {
		otf, err := ot.Parse(glyftest.Font(glyftest.FontSpec{
			Ascender:  800,
			Descender: -200,
			Advance:   600,
			LongLoca:  long,
			Glyphs:    testGlyphs(),
		}), ot.IsTestfont)
		require.NoError(t, err)
		r, err := FromFont(otf, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, int(testGlyphCount), r.NumGlyphs())
		composite, err := r.Path(gTwoSquares, matrix.Identity)
		require.NoError(t, err)
		simple, err := r.Path(gTwoContours, matrix.Identity)
		require.NoError(t, err)
		assert.Equal(t, FormatPath(simple), FormatPath(composite), "long loca = %v", long)
	}
	//
	otf, err := ot.Parse(glyftest.Font(glyftest.FontSpec{
		Glyphs: testGlyphs(),
		Tables: map[string][]byte{"loca": nil, "glyf": nil},
	}), ot.IsTestfont)
	require.NoError(t, err)
	_, err = FromFont(otf, DefaultOptions())
	assert.ErrorIs(t, err, ot.ErrMalformed)
}

func TestResolverRasterizeComposite(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	r := testResolver(t, DefaultOptions())
	composite, err := r.Rasterize(gTwoSquares, 100, 0, 0.25, 0.25, vec.Vec2{}, nil)
	require.NoError(t, err)
	simple, err := r.Rasterize(gTwoContours, 100, 0, 0.25, 0.25, vec.Vec2{}, nil)
	require.NoError(t, err)
	assert.Equal(t, simple.Bounds(), composite.Bounds())
	assert.Equal(t, simple.Pix, composite.Pix)
	assert.GreaterOrEqual(t, composite.AlphaAt(10, 10).A, uint8(0xf0))
	assert.Equal(t, uint8(0), composite.AlphaAt(37, 10).A, "gap between the squares")
	//
	g, err := r.Glyph(gTwoSquares)
	require.NoError(t, err)
	_, err = g.Rasterize(100, 0, 1, 1, vec.Vec2{}, nil)
	assert.ErrorIs(t, err, ot.ErrMalformed)
	var fontErr ot.FontError
	require.ErrorAs(t, err, &fontErr)
	assert.Equal(t, "Components", fontErr.Section)
}

// fanOutResolver creates a resolver for a square (glyph 0) and levels of
// composites, each referencing the glyph one level below fanOut times.
func fanOutResolver(t *testing.T, levels, fanOut int, opts Options) *Resolver {
	t.Helper()
	glyphs := [][]byte{glyftest.Simple(square(0, 0, 10, 10))}
	for level := 1; level <= levels; level++ {
		components := make([]glyftest.Component, fanOut)
		for i := range components {
			components[i] = glyftest.Component{Glyph: uint16(level - 1), Dx: int16(i)}
		}
		glyphs = append(glyphs, glyftest.Composite([4]int16{0, 0, 100, 10}, components, nil))
	}
	loca, outline := glyftest.Loca(glyphs, false)
	offsets, err := NewOffsetTable(loca, len(glyphs), ShortOffsets)
	require.NoError(t, err)
	return NewResolver(offsets, outline, opts)
}

func TestResolveComponentBudget(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	// 8 levels of 8 references would expand to 8^8 squares
	r := fanOutResolver(t, 8, 8, DefaultOptions())
	outline, err := r.Path(8, matrix.Identity)
	assert.ErrorIs(t, err, ot.ErrRecursion)
	assert.Nil(t, outline)
	//
	r = fanOutResolver(t, 2, 8, Options{MaxComponents: 8 + 64})
	outline, err = r.Path(2, matrix.Identity)
	require.NoError(t, err)
	assert.Equal(t, 64, Contours(outline))
	r = fanOutResolver(t, 2, 8, Options{MaxComponents: 8 + 63})
	_, err = r.Path(2, matrix.Identity)
	assert.ErrorIs(t, err, ot.ErrRecursion)
	_, err = r.Path(1, matrix.Identity)
	assert.NoError(t, err, "budget is per call to Path")
}

func TestResolvePointBudget(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	r := fanOutResolver(t, 1, 8, Options{MaxPoints: 32})
	outline, err := r.Path(1, matrix.Identity)
	require.NoError(t, err)
	assert.Equal(t, 8, Contours(outline))
	r = fanOutResolver(t, 1, 8, Options{MaxPoints: 31})
	_, err = r.Path(1, matrix.Identity)
	assert.ErrorIs(t, err, ot.ErrRecursion)
	_, err = r.Path(0, matrix.Identity)
	assert.NoError(t, err)
}
