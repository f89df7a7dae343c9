package main

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/ttoutline"
	"github.com/npillmayer/ttoutline/glyf"
	"github.com/npillmayer/ttoutline/ot"
	"github.com/npillmayer/ttoutline/otquery"
	"github.com/thatisuday/commando"
)

func main() {
	commando.
		SetExecutableName("ot-tools").
		SetVersion("v0.0.1").
		SetDescription("CLI for decoding and rendering TrueType glyph outlines.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("render").
		SetDescription("Render a single glyph to a PNG image.").
		SetShortDescription("glyph to image").
		AddArgument("font", "TrueType font file path", "").
		AddArgument("glyph", "glyph index, or a code-point with prefix U+", "").
		AddFlag("testfont,t", "parse font as relaxed test font fixture", commando.Bool, nil).
		AddFlag("strict,S", "reject glyphs with truncated point data", commando.Bool, nil).
		AddFlag("output,o", "output PNG file", commando.String, "ot-tools-render.png").
		AddFlag("ppem,p", "render size in pixels-per-em", commando.Int, 96).
		AddFlag("subpixel,x", "horizontal sub-pixel offset in 1/64 pixel", commando.Int, 0).
		AddFlag("color,c", "glyph color (hex, e.g. #000000)", commando.String, "#000000").
		AddFlag("background,b", "background color (hex), or 'none' for a coverage map", commando.String, "#ffffff").
		SetAction(runRenderCommand)

	commando.
		Register("sheet").
		SetDescription("Render a range of glyphs into a contact sheet PNG image.").
		SetShortDescription("glyph range to image").
		AddArgument("font", "TrueType font file path", "").
		AddArgument("glyphs...", "glyph indices or ranges (e.g. 0-99,120,U+0041-U+005A); default all", "").
		AddFlag("testfont,t", "parse font as relaxed test font fixture", commando.Bool, nil).
		AddFlag("strict,S", "reject glyphs with truncated point data", commando.Bool, nil).
		AddFlag("output,o", "output PNG file", commando.String, "ot-tools-sheet.png").
		AddFlag("ppem,p", "render size in pixels-per-em", commando.Int, 32).
		AddFlag("columns,C", "number of glyphs per row", commando.Int, 16).
		AddFlag("workers,w", "number of concurrent rasterizers (0 for no limit)", commando.Int, 4).
		AddFlag("color,c", "glyph color (hex, e.g. #000000)", commando.String, "#000000").
		AddFlag("background,b", "background color (hex)", commando.String, "#ffffff").
		AddFlag("show-bboxes,B", "draw cell outlines", commando.Bool, nil).
		SetAction(runSheetCommand)

	commando.
		Register("outline").
		SetDescription("Print the resolved outline of glyphs as path segments.").
		SetShortDescription("glyph outlines").
		AddArgument("font", "TrueType font file path", "").
		AddArgument("glyphs...", "glyph indices or ranges (e.g. 0-9,36,U+0041)", "").
		AddFlag("testfont,t", "parse font as relaxed test font fixture", commando.Bool, nil).
		AddFlag("strict,S", "reject glyphs with truncated point data", commando.Bool, nil).
		AddFlag("points,P", "print decoded points of simple glyphs", commando.Bool, nil).
		SetAction(runOutlineCommand)

	commando.
		Register("compare").
		SetDescription("Compare outlines against the glyf decoder of go-text/typesetting.").
		SetShortDescription("cross-check outlines").
		AddArgument("font", "TrueType font file path", "").
		AddArgument("glyphs...", "glyph indices or ranges; default all", "").
		AddFlag("tolerance", "tolerance for bounds in font units", commando.Int, 1).
		SetAction(runCompareCommand)

	commando.
		Register("font").
		SetDescription("Print diagnostics and table information for a TrueType font.").
		SetShortDescription("font diagnostics").
		AddArgument("font", "TrueType font file path", "").
		AddArgument("tables...", "optional list of table tags (e.g. glyf,loca,head)", "").
		AddFlag("testfont,t", "parse font as relaxed test font fixture", commando.Bool, nil).
		AddFlag("errors,e", "print parse errors and warnings", commando.Bool, nil).
		AddFlag("glyphs,g", "print a summary of the glyph outlines", commando.Bool, nil).
		SetAction(runFontCommand)

	commando.Parse(nil)
}

// --- Font loading ---------------------------------------------------------

func mustLoadFont(path string, flags map[string]commando.FlagValue) *ttoutline.Font {
	conf := testconfig.Conf{}
	if flag, ok := flags["strict"]; ok {
		conf[glyf.ConfigStrict] = mustFlagBool(flag, "strict")
	}
	var opts []ot.ParseOption
	if flag, ok := flags["testfont"]; ok && mustFlagBool(flag, "testfont") {
		opts = append(opts, ot.IsTestfont)
	}
	f, err := ttoutline.LoadFont(path, conf, opts...)
	if err != nil {
		fatalf("cannot load font %s: %v", path, err)
	}
	return f
}

func fontPathArg(args map[string]commando.ArgValue) string {
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	return fontPath
}

// --- Argument parsing -----------------------------------------------------

// parseGlyphList parses a list of glyph indices, code-points and ranges of
// either. An empty spec selects all glyphs of the font.
func parseGlyphList(f *ttoutline.Font, spec string) ([]ot.GlyphIndex, error) {
	n := f.NumGlyphs()
	parts := splitCSVSpace(spec)
	if len(parts) == 0 {
		gids := make([]ot.GlyphIndex, n)
		for i := range gids {
			gids[i] = ot.GlyphIndex(i)
		}
		return gids, nil
	}
	var gids []ot.GlyphIndex
	for _, p := range parts {
		from, to, isRange := strings.Cut(p, "-")
		if !isRange {
			gid, err := parseGlyphToken(f, p)
			if err != nil {
				return nil, err
			}
			gids = append(gids, gid)
			continue
		}
		if isCodepointToken(from) {
			lo, err1 := parseCodepointToken(from)
			hi, err2 := parseCodepointToken(to)
			if err := errors.Join(err1, err2); err != nil {
				return nil, err
			}
			for r := lo; r <= hi; r++ {
				gids = append(gids, otquery.GlyphIndex(f.OT, r))
			}
			continue
		}
		lo, err1 := parseGlyphToken(f, from)
		hi, err2 := parseGlyphToken(f, to)
		if err := errors.Join(err1, err2); err != nil {
			return nil, err
		}
		for gid := lo; gid <= hi; gid++ {
			gids = append(gids, gid)
		}
	}
	return gids, nil
}

func parseGlyphToken(f *ttoutline.Font, token string) (ot.GlyphIndex, error) {
	token = strings.TrimSpace(token)
	if isCodepointToken(token) {
		r, err := parseCodepointToken(token)
		if err != nil {
			return 0, err
		}
		return otquery.GlyphIndex(f.OT, r), nil
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("invalid glyph index %q: %w", token, err)
	}
	if n < 0 || n >= f.NumGlyphs() {
		return 0, fmt.Errorf("glyph index %d out of range (glyphs: %d)", n, f.NumGlyphs())
	}
	return ot.GlyphIndex(n), nil
}

func isCodepointToken(token string) bool {
	return strings.HasPrefix(token, "U+") || strings.HasPrefix(token, "u+")
}

func parseCodepointToken(token string) (rune, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, errors.New("empty codepoint token")
	}
	hex := token
	switch {
	case strings.HasPrefix(hex, "U+"), strings.HasPrefix(hex, "u+"):
		hex = hex[2:]
	case strings.HasPrefix(hex, "0x"), strings.HasPrefix(hex, "0X"):
		hex = hex[2:]
	}
	u, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid codepoint %q: %w", token, err)
	}
	return rune(u), nil
}

func splitCSVSpace(spec string) []string {
	return strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

// parseColor parses a hex color flag. With allowNone set, "none" yields nil.
func parseColor(flag commando.FlagValue, name string, allowNone bool) color.Color {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	s = strings.TrimSpace(s)
	if allowNone && strings.EqualFold(s, "none") {
		return nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return c.Clamped()
}

// --- Flag helpers ---------------------------------------------------------

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return strings.TrimSpace(s)
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "ot-tools: "+format+"\n", args...)
	os.Exit(1)
}
