package glyf

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/ttoutline/ot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffsetTableShort(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	loca, err := NewOffsetTable([]byte{0, 50, 0, 100}, 2, ShortOffsets)
	require.NoError(t, err)
	offset, err := loca.Offset(1)
	require.NoError(t, err)
	if offset != 200 {
		t.Errorf("expected short entry 100 to map to offset 200, have %d", offset)
	}
	offset, _ = loca.Offset(0)
	assert.Equal(t, uint32(100), offset)
	assert.Equal(t, ShortOffsets, loca.Format())
	assert.Equal(t, 2, loca.Count())
}

func TestOffsetTableLong(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	loca, err := NewOffsetTable([]byte{0, 0, 0, 0, 0, 0, 1, 0xf4}, 2, LongOffsets)
	require.NoError(t, err)
	offset, err := loca.Offset(1)
	require.NoError(t, err)
	if offset != 500 {
		t.Errorf("expected long entry 500 to map to offset 500, have %d", offset)
	}
	assert.Equal(t, 4, loca.Format().EntrySize())
	assert.Equal(t, "long", loca.Format().String())
}

func TestOffsetTableTooSmall(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	_, err := NewOffsetTable(make([]byte, 15), 10, ShortOffsets)
	if !errors.Is(err, ot.ErrMalformed) {
		t.Errorf("expected 15 bytes to be too small for 10 short offsets, have %v", err)
	}
	_, err = NewOffsetTable(make([]byte, 20), 10, ShortOffsets)
	assert.NoError(t, err)
	_, err = NewOffsetTable(make([]byte, 20), 10, LongOffsets)
	assert.ErrorIs(t, err, ot.ErrMalformed)
	_, err = NewOffsetTable(make([]byte, 20), 10, LocaFormat(7))
	assert.ErrorIs(t, err, ot.ErrMalformed)
	_, err = NewOffsetTable(nil, -1, ShortOffsets)
	assert.ErrorIs(t, err, ot.ErrMalformed)
}

func TestOffsetTableGlyphRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	loca, err := NewOffsetTable([]byte{0, 0, 0, 5, 0, 5}, 3, ShortOffsets)
	require.NoError(t, err)
	_, err = loca.Offset(3)
	if !errors.Is(err, ot.ErrGlyphRange) {
		t.Errorf("expected glyph 3 to be out of range, have %v", err)
	}
	_, _, err = loca.Range(100)
	assert.ErrorIs(t, err, ot.ErrGlyphRange)
}

func TestOffsetTableRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	// 3 glyphs + end marker: glyph 1 is empty
	loca, err := NewOffsetTable([]byte{0, 0, 0, 10, 0, 10, 0, 20}, 3, ShortOffsets)
	require.NoError(t, err)
	tests := []struct {
		gid        ot.GlyphIndex
		start, end uint32
	}{
		{0, 0, 20},
		{1, 20, 20},
		{2, 20, 40},
	}
	for _, tc := range tests {
		start, end, err := loca.Range(tc.gid)
		require.NoError(t, err)
		if start != tc.start || end != tc.end {
			t.Errorf("glyph %d: expected [%d,%d), have [%d,%d)", tc.gid, tc.start, tc.end, start, end)
		}
	}
	// without end marker, the last glyph extends to the end of glyf
	loca, err = NewOffsetTable([]byte{0, 0, 0, 10}, 2, ShortOffsets)
	require.NoError(t, err)
	start, end, err := loca.Range(1)
	require.NoError(t, err)
	assert.Equal(t, uint32(20), start)
	assert.Equal(t, uint32(math.MaxUint32), end)
}

func TestOffsetTableNotAscending(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	loca, err := NewOffsetTable([]byte{0, 10, 0, 5}, 1, ShortOffsets)
	require.NoError(t, err)
	_, _, err = loca.Range(0)
	if !errors.Is(err, ot.ErrMalformed) {
		t.Errorf("expected descending offsets to be malformed, have %v", err)
	}
}
