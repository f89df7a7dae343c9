package glyf

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/ttoutline/internal/glyftest"
	"github.com/npillmayer/ttoutline/ot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

func simplePath(t *testing.T, contours ...[]glyftest.Point) *path.Data {
	t.Helper()
	g, err := Decode(glyftest.Simple(contours...), 0)
	require.NoError(t, err)
	p, err := g.Path(matrix.Identity)
	require.NoError(t, err)
	return p
}

func TestPathContours(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	tests := []struct {
		name    string
		contour []glyftest.Point
		path    string
	}{
		{"triangle",
			[]glyftest.Point{glyftest.On(0, 0), glyftest.Off(50, 100), glyftest.On(100, 0)},
			"M 0,0 Q 50,100 100,0 L 0,0 Z"},
		{"implied on-curve point",
			[]glyftest.Point{glyftest.On(0, 0), glyftest.Off(1, 2), glyftest.Off(2, 0), glyftest.On(3, 0)},
			"M 0,0 Q 1,2 1.5,1 Q 2,0 3,0 L 0,0 Z"},
		{"closing control point",
			[]glyftest.Point{glyftest.On(0, 0), glyftest.On(10, 0), glyftest.Off(10, 10)},
			"M 0,0 L 10,0 Q 10,10 0,0 Z"},
		{"single point",
			[]glyftest.Point{glyftest.On(5, 5)},
			"M 5,5 L 5,5 Z"},
		{"off-curve start",
			[]glyftest.Point{glyftest.Off(0, 0), glyftest.On(10, 0), glyftest.On(10, 10)},
			"M 0,0 L 10,0 L 10,10 L 0,0 Z"},
	}
	for _, tc := range tests {
		p := simplePath(t, tc.contour)
		if s := FormatPath(p); s != tc.path {
			t.Errorf("%s: expected path %q, have %q", tc.name, tc.path, s)
		}
		assert.Equal(t, 1, Contours(p), tc.name)
	}
}

func TestPathMultipleContours(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	p := simplePath(t, square(0, 0, 100, 100), square(20, 20, 80, 80))
	assert.Equal(t, 2, Contours(p))
	assert.Len(t, p.Cmds, 12)
	bounds, ok := Bounds(p)
	require.True(t, ok)
	assert.Equal(t, rect.Rect{LLx: 0, LLy: 0, URx: 100, URy: 100}, bounds)
	// M L L L L Z of the first contour use 5 points
	assert.Equal(t, path.CmdMoveTo, p.Cmds[6])
	assert.Equal(t, vec.Vec2{X: 20, Y: 20}, p.Coords[5])
	//
	var empty *path.Data
	assert.Equal(t, 0, Contours(empty))
	_, ok = Bounds(&path.Data{})
	assert.False(t, ok)
}

func TestBuildPathTruncated(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	b := glyftest.Simple(square(100, 0, 500, 400))
	sg := decodeSimple(t, b[:23])
	p, err := BuildPath(sg, matrix.Identity, false)
	if !errors.Is(err, ot.ErrIncomplete) {
		t.Fatalf("expected incomplete glyph, have %v", err)
	}
	require.NotNil(t, p, "lenient mode should keep the partial path")
	assert.Equal(t, "M 100,0 L 500,0", FormatPath(p))
	//
	p, err = BuildPath(sg, matrix.Identity, true)
	assert.ErrorIs(t, err, ot.ErrIncomplete)
	assert.Nil(t, p, "strict mode should drop the partial path")
}

func TestBuildPathEmptyContour(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	b := glyftest.Simple(square(0, 0, 100, 100), []glyftest.Point{}, square(200, 0, 300, 100))
	sg := decodeSimple(t, b)
	assert.Equal(t, []uint16{3, 3, 7}, sg.EndPoints)
	assert.Equal(t, 0, sg.ContourSize(1))
	p, err := BuildPath(sg, matrix.Identity, false)
	require.NoError(t, err)
	assert.Equal(t, 2, Contours(p), "empty contour should be skipped")
	assert.Equal(t, vec.Vec2{X: 200, Y: 0}, p.Coords[5])
	//
	p, err = BuildPath(sg, matrix.Identity, true)
	assert.ErrorIs(t, err, ot.ErrMalformed)
	assert.Nil(t, p)
}

func TestPathOfCompositeGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	c := glyftest.Composite([4]int16{0, 0, 10, 10}, []glyftest.Component{{Glyph: 1}}, nil)
	g, err := Decode(c, 0)
	require.NoError(t, err)
	_, err = g.Path(matrix.Identity)
	assert.ErrorIs(t, err, ot.ErrMalformed)
}
