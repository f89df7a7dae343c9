package otquery

import (
	"testing"

	td "github.com/go-text/typesetting-utils/opentype"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/ttoutline/internal/fontload"
	"github.com/npillmayer/ttoutline/ot"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/sfnt"
)

// --- Test Suite Preparation ------------------------------------------------

type InfoTestEnviron struct {
	suite.Suite
	otf *ot.Font
}

// listen for 'go test' command --> run test methods
func TestInfoFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.query")
	defer teardown()
	otf := loadTestFont(t, "common/Roboto-BoldItalic.ttf")
	suite.Run(t, &InfoTestEnviron{otf: otf})
}

// run once, before test suite methods
func (env *InfoTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("font.query").SetTraceLevel(tracing.LevelInfo)
}

// run once, after test suite methods
func (env *InfoTestEnviron) TearDownSuite() {
	env.T().Log("Tearing down test suite")
}

// --- Tests -----------------------------------------------------------------

func (env *InfoTestEnviron) TestFontTypeInfo() {
	fti := FontType(env.otf)
	env.Equal("TrueType", fti, "expected font type of test font to be TrueType")
}

func (env *InfoTestEnviron) TestNames() {
	fam, ok := Name(env.otf, sfnt.NameIDFamily)
	env.Require().True(ok, "font family name not found in font info")
	env.Contains(fam, "Roboto", "expected font family name 'Roboto'")
	n := 0
	for _, value := range NamesRange(env.otf) {
		env.NotEmpty(value)
		n++
	}
	env.Greater(n, 2, "expected a number of names")
}

func (env *InfoTestEnviron) TestHeadInfo() {
	h, ok := HeadInfo(env.otf)
	env.Require().True(ok, "expected to decode table 'head'")
	env.Require().NotNil(env.otf.Head, "expected parsed HeadTable")
	env.Equal(env.otf.Head.Flags, h.Flags, "expected matching Flags")
	env.Equal(env.otf.Head.UnitsPerEm, h.UnitsPerEm, "expected matching UnitsPerEm")
	env.Equal(int16(env.otf.Head.IndexToLocFormat), h.IndexToLocFormat, "expected matching IndexToLocFormat")
	env.Equal(uint32(0x5F0F3CF5), h.MagicNumber, "expected OpenType head magic number")
}

func (env *InfoTestEnviron) TestMaxPInfo() {
	m, ok := MaxPInfo(env.otf)
	env.Require().True(ok, "expected to decode table 'maxp'")
	env.Require().NotNil(env.otf.MaxP, "expected parsed MaxPTable")
	env.Equal(uint16(env.otf.MaxP.NumGlyphs), m.NumGlyphs, "expected matching numGlyphs")
	env.True(m.HasExtendedProfile, "expected TrueType profile")
	env.Equal(env.otf.MaxP.MaxComponentDepth, int(m.MaxComponentDepth))
}

func (env *InfoTestEnviron) TestFontMetrics() {
	m := FontMetrics(env.otf)
	env.Equal(sfnt.Units(env.otf.Head.UnitsPerEm), m.UnitsPerEm)
	env.Greater(int(m.Ascent), 0)
	env.Less(int(m.Descent), 0)
}

func (env *InfoTestEnviron) TestGlyphOfRune() {
	gid := GlyphIndex(env.otf, 'A')
	env.NotZero(gid, "expected 'A' to be mapped")
	metrics := GlyphMetrics(env.otf, gid)
	env.Greater(int(metrics.Advance), 0)
	env.False(metrics.BBox.IsEmpty())
	info, err := GlyphInfo(env.otf, gid)
	env.Require().NoError(err)
	env.False(info.Composite)
	env.Greater(info.Points, 2)
	env.Equal(metrics.BBox, info.BBox)
	env.True(info.Complete)
}

func (env *InfoTestEnviron) TestAccentedGlyph() {
	gid := GlyphIndex(env.otf, 'Ä')
	env.Require().NotZero(gid)
	info, err := GlyphInfo(env.otf, gid)
	env.Require().NoError(err)
	env.T().Logf("glyph info of 'Ä' = %+v", info)
	if info.Composite {
		env.Greater(info.Components, 1)
	} else {
		env.Greater(info.Contours, 1)
	}
}

func (env *InfoTestEnviron) TestSpaceGlyph() {
	gid := GlyphIndex(env.otf, ' ')
	env.Require().NotZero(gid)
	info, err := GlyphInfo(env.otf, gid)
	env.Require().NoError(err)
	env.True(info.Empty)
	env.True(GlyphMetrics(env.otf, gid).BBox.IsEmpty())
}

// --- Helpers ----------------------------------------------------------

func loadTestFont(t *testing.T, name string) *ot.Font {
	t.Helper()
	b, err := td.Files.ReadFile(name)
	if err != nil {
		t.Skipf("test font %s not available: %v", name, err)
	}
	sf, err := fontload.ParseOpenTypeFont(b)
	if err != nil {
		t.Fatal(err)
	}
	otf, err := ot.Parse(b)
	if err != nil {
		t.Fatal(err)
	}
	otf.F = sf
	t.Logf("loaded font = %s", sf.Fontname)
	return otf
}
