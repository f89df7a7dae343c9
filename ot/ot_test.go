package ot

import (
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/ttoutline/internal/fontload"

	td "github.com/go-text/typesetting-utils/opentype"
)

func TestTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	tag := Tag(0x676c7966)
	if tag.String() != "glyf" {
		t.Errorf("expected tag 0x676c7966 to be 'glyf', is %s", tag.String())
	}
	tag = MakeTag([]byte("glyf"))
	if tag.String() != "glyf" {
		t.Errorf("expected tag MakeTag(glyf) to be 'glyf', is %s", tag.String())
	}
	tag = T("glyf")
	if tag.String() != "glyf" {
		t.Errorf("expected tag T(glyf) to be 'glyf', is %s", tag.String())
	}
	if MakeTag([]byte("cvt")) != T("\x00cvt") {
		t.Errorf("expected short tag to be padded at the front")
	}
}

func TestTableName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	tb := tableBase{}
	tb.name = 0x6c6f6361
	s := tb.Self().NameTag().String()
	if s != "loca" {
		t.Errorf("expected table name to be loca, is %v", s)
	}
}

func TestTableConversion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	loca := newLocaTable(T("loca"), binarySegm{0, 0, 0, 4}, 0, 4)
	if loca.Self().AsLoca() != loca {
		t.Errorf("expected loca table to convert to itself")
	}
	if loca.Self().AsGlyf() != nil {
		t.Errorf("expected loca table not to convert to a glyf table")
	}
	var tself TableSelf
	if tself.AsHead() != nil {
		t.Errorf("expected empty table reference to convert to nil")
	}
	generic := newTable(T("cvt "), binarySegm{1, 2}, 0, 2)
	if generic.Self().AsMaxP() != nil {
		t.Errorf("expected generic table not to convert to maxp")
	}
	if off, size := generic.Extent(); off != 0 || size != 2 {
		t.Errorf("expected extent (0,2), have (%d,%d)", off, size)
	}
}

// ---------------------------------------------------------------------------

// loadTestFont reads one of the fonts shipped with go-text/typesetting-utils.
func loadTestFont(t *testing.T, name string) *Font {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	defer tracer().SetTraceLevel(level)
	b, err := td.Files.ReadFile(name)
	if err != nil {
		t.Skipf("test font %s not available: %v", name, err)
	}
	f, err := fontload.ParseOpenTypeFont(b)
	if err != nil {
		t.Fatalf("cannot load font %s: %v", name, err)
	}
	otf, err := Parse(f.Binary)
	if err != nil {
		t.Fatalf("cannot parse font %s: %v", name, err)
	}
	otf.F = f
	t.Logf("loaded font = %s", f.Fontname)
	return otf
}

func TestOption(t *testing.T) {
	if v, ok := Some(42).Unwrap(); !ok || v != 42 {
		t.Errorf("expected Some(42) to unwrap to 42, have %d (%v)", v, ok)
	}
	if _, ok := None[string]().Unwrap(); ok {
		t.Errorf("expected None to be empty")
	}
	var zero Option[int]
	if _, ok := zero.Unwrap(); ok {
		t.Errorf("expected zero Option to be empty")
	}
}
