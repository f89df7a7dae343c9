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
)

func decodeComposite(t *testing.T, comps []glyftest.Component, instructions []byte) Glyph {
	t.Helper()
	g, err := Decode(glyftest.Composite([4]int16{0, 0, 1000, 1000}, comps, instructions), 0)
	require.NoError(t, err)
	require.True(t, g.IsComposite())
	return g
}

func TestComponentTransforms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	g := decodeComposite(t, []glyftest.Component{
		{Glyph: 1, Dx: 10, Dy: -20},
		{Glyph: 2, Dx: 1000, Scale: []float64{0.5}},
		{Glyph: 1, Scale: []float64{1.5, 0.5}},
		{Glyph: 2, Dx: -5, Dy: 7, Scale: []float64{0, 1, -1, 0}},
	}, nil)
	comps, err := g.AllComponents()
	require.NoError(t, err)
	require.Len(t, comps, 4)
	expected := []struct {
		gid   ot.GlyphIndex
		words bool
		m     matrix.Matrix
	}{
		{1, false, matrix.Matrix{1, 0, 0, 1, 10, -20}},
		{2, true, matrix.Matrix{0.5, 0, 0, 0.5, 1000, 0}},
		{1, false, matrix.Matrix{1.5, 0, 0, 0.5, 0, 0}},
		{2, false, matrix.Matrix{0, 1, -1, 0, -5, 7}},
	}
	for i, exp := range expected {
		c := comps[i]
		if c.GlyphIndex != exp.gid {
			t.Errorf("component %d: expected glyph %d, have %d", i, exp.gid, c.GlyphIndex)
		}
		if c.Transform != exp.m {
			t.Errorf("component %d: expected transform %v, have %v", i, exp.m, c.Transform)
		}
		assert.Equal(t, exp.words, c.Flags&ArgsAreWords != 0, "component %d", i)
		assert.False(t, c.PointMatching(), "component %d", i)
		assert.Equal(t, i < 3, c.Flags&MoreComponents != 0, "component %d", i)
	}
	assert.Equal(t, 10, comps[0].Arg1)
	assert.Equal(t, -20, comps[0].Arg2)
}

func TestComponentPointMatching(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	g := decodeComposite(t, []glyftest.Component{
		{Glyph: 3, Dx: 200, Dy: 3, PointMatching: true},
		{Glyph: 4, Dx: 40000 - 65536, Dy: 1, PointMatching: true, Words: true},
	}, nil)
	comps, err := g.AllComponents()
	require.NoError(t, err)
	require.Len(t, comps, 2)
	c := comps[0]
	assert.True(t, c.PointMatching())
	if c.Arg1 != 200 || c.Arg2 != 3 {
		t.Errorf("expected point numbers 200 and 3, have %d and %d", c.Arg1, c.Arg2)
	}
	assert.Equal(t, matrix.Identity, c.Transform, "point matching places components without offset")
	assert.Equal(t, ArgsAreXYValues, c.Unsupported())
	assert.Equal(t, 40000, comps[1].Arg1)
}

func TestComponentUnsupportedFlags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	g := decodeComposite(t, []glyftest.Component{
		{Glyph: 1, Flags: glyftest.UseMyMetrics | glyftest.RoundXYToGrid},
		{Glyph: 1, Flags: glyftest.ScaledOffset},
		{Glyph: 1, Flags: glyftest.UnscaledOffset | glyftest.OverlapCompound},
	}, nil)
	comps, err := g.AllComponents()
	require.NoError(t, err)
	require.Len(t, comps, 3)
	assert.True(t, comps[0].UseMyMetrics())
	assert.Equal(t, UseMyMetrics, comps[0].Unsupported())
	assert.True(t, comps[1].ScaledOffset())
	assert.Equal(t, ScaledComponentOffset, comps[1].Unsupported())
	assert.True(t, comps[2].UnscaledOffset())
	assert.Equal(t, UnscaledComponentOffset, comps[2].Unsupported())
}

func TestComponentIteration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	g := decodeComposite(t, []glyftest.Component{{Glyph: 1}, {Glyph: 2}}, []byte{0xb0, 0x02, 0x01})
	it, err := g.Components()
	require.NoError(t, err)
	n := 0
	for {
		step := it.Next()
		if step.Kind == StepEnd {
			break
		}
		require.Equal(t, StepComponent, step.Kind)
		n++
	}
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, it.Count())
	assert.Equal(t, StepEnd, it.Next().Kind, "iteration should stay finished")
	instr, err := it.Instructions()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xb0, 0x02, 0x01}, instr)
	//
	g = decodeComposite(t, []glyftest.Component{{Glyph: 1}}, nil)
	it, _ = g.Components()
	it.Next()
	instr, err = it.Instructions()
	assert.NoError(t, err)
	assert.Nil(t, instr)
}

func TestComponentTruncated(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	b := glyftest.Composite([4]int16{0, 0, 10, 10}, []glyftest.Component{
		{Glyph: 1, Dx: 1, Dy: 1},
		{Glyph: 2, Dx: 1, Dy: 1, Scale: []float64{0.5, 0.5}},
	}, nil)
	g, err := Decode(b[:len(b)-1], 0)
	require.NoError(t, err)
	comps, err := g.AllComponents()
	if !errors.Is(err, ot.ErrTruncated) {
		t.Errorf("expected truncated component, have %v", err)
	}
	assert.Len(t, comps, 1)
	//
	g = decodeSimpleHeader(t)
	_, err = g.Components()
	assert.ErrorIs(t, err, ot.ErrMalformed)
}

func decodeSimpleHeader(t *testing.T) Glyph {
	t.Helper()
	g, err := Decode(glyftest.Simple(square(0, 0, 10, 10)), 0)
	require.NoError(t, err)
	return g
}

func TestComponentFlagString(t *testing.T) {
	assert.Equal(t, "0", ComponentFlag(0).String())
	assert.Equal(t, "ARG_1_AND_2_ARE_WORDS|MORE_COMPONENTS", (ArgsAreWords | MoreComponents).String())
	assert.Equal(t, "WE_HAVE_A_TWO_BY_TWO|USE_MY_METRICS", (UseMyMetrics | WeHaveATwoByTwo).String())
}
