package main

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
	"github.com/npillmayer/ttoutline"
	"github.com/npillmayer/ttoutline/glyf"
	"github.com/npillmayer/ttoutline/ot"
	"github.com/thatisuday/commando"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
)

func runOutlineCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := fontPathArg(args)
	f := mustLoadFont(fontPath, flags)
	if args["glyphs"].Value == "" {
		fatalf("no glyphs given")
	}
	gids, err := parseGlyphList(f, args["glyphs"].Value)
	if err != nil {
		fatalf("%v", err)
	}
	withPoints := mustFlagBool(flags["points"], "points")
	for _, gid := range gids {
		outline, err := f.Resolver().Path(gid, matrix.Identity)
		if outline == nil {
			fmt.Printf("glyph %d: %v\n", gid, err)
			continue
		}
		if bounds, ok := glyf.Bounds(outline); ok {
			fmt.Printf("glyph %d: %d contours, bounds %s\n", gid, glyf.Contours(outline), formatBounds(bounds))
		} else {
			fmt.Printf("glyph %d: empty\n", gid)
		}
		if err != nil {
			fmt.Printf("  incomplete: %v\n", err)
		}
		if withPoints {
			printPoints(f, gid)
		}
		for cmd, pts := range outline.Iter() {
			fmt.Printf("  %s\n", glyf.FormatCommand(cmd, pts))
		}
	}
}

func printPoints(f *ttoutline.Font, gid ot.GlyphIndex) {
	g, err := f.Resolver().Glyph(gid)
	if err != nil || g.IsComposite() || g.IsEmpty() {
		return
	}
	sg, err := g.Simple()
	if err != nil {
		fmt.Printf("  points: %v\n", err)
		return
	}
	ps := sg.Points(matrix.Identity)
	for {
		step := ps.Next()
		switch step.Kind {
		case glyf.StepEnd:
			return
		case glyf.StepError:
			fmt.Printf("  points: %v\n", step.Err)
			return
		}
		fmt.Printf("  #%-4d %6g %6g  %s\n", ps.Index()-1, step.Point.X, step.Point.Y, step.Flag)
	}
}

func formatBounds(r rect.Rect) string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", r.LLx, r.LLy, r.URx, r.URy)
}

// --- Cross-check ----------------------------------------------------------

// runCompareCommand decodes glyphs with both our decoder and the one of
// go-text/typesetting and compares the bounds of the control polygons and
// the number of contours.
func runCompareCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := fontPathArg(args)
	f := mustLoadFont(fontPath, flags)
	gids, err := parseGlyphList(f, args["glyphs"].Value)
	if err != nil {
		fatalf("%v", err)
	}
	tolerance := float64(mustFlagInt(flags["tolerance"], "tolerance"))
	data, err := os.ReadFile(fontPath)
	if err != nil {
		fatalf("cannot read font %s: %v", fontPath, err)
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		fatalf("go-text cannot parse font %s: %v", fontPath, err)
	}
	differing := 0
	for _, gid := range gids {
		if err := compareGlyph(f, face, gid, tolerance); err != nil {
			fmt.Printf("glyph %d: %v\n", gid, err)
			differing++
		}
	}
	fmt.Printf("compared %d glyphs, %d differ\n", len(gids), differing)
	if differing > 0 {
		os.Exit(2)
	}
}

var errNoOutline = errors.New("no glyf outline")

func compareGlyph(f *ttoutline.Font, face *font.Face, gid ot.GlyphIndex, tolerance float64) error {
	outline, err := f.Resolver().Path(gid, matrix.Identity)
	if outline == nil {
		return err
	}
	ref, ok := face.GlyphData(font.GID(gid)).(font.GlyphOutline)
	if !ok {
		return errNoOutline
	}
	contours, refBounds, haveRef := segmentBounds(ref.Segments)
	bounds, have := glyf.Bounds(outline)
	switch {
	case have != haveRef:
		return fmt.Errorf("outline is empty for one decoder only (ours: %v)", !have)
	case !have:
		return nil
	case contours != glyf.Contours(outline):
		return fmt.Errorf("%d contours, go-text has %d", glyf.Contours(outline), contours)
	}
	if !nearRect(bounds, refBounds, tolerance) {
		return fmt.Errorf("bounds %s, go-text has %s", formatBounds(bounds), formatBounds(refBounds))
	}
	return nil
}

func segmentBounds(segs []opentype.Segment) (int, rect.Rect, bool) {
	var r rect.Rect
	contours, have := 0, false
	for _, seg := range segs {
		n := 1
		switch seg.Op {
		case opentype.SegmentOpMoveTo:
			contours++
		case opentype.SegmentOpQuadTo:
			n = 2
		case opentype.SegmentOpCubeTo:
			n = 3
		}
		for _, p := range seg.Args[:n] {
			x, y := float64(p.X), float64(p.Y)
			if !have {
				r = rect.Rect{LLx: x, LLy: y, URx: x, URy: y}
				have = true
				continue
			}
			r.Add(x, y)
		}
	}
	return contours, r, have
}

func nearRect(a, b rect.Rect, tolerance float64) bool {
	return math.Abs(a.LLx-b.LLx) <= tolerance && math.Abs(a.LLy-b.LLy) <= tolerance &&
		math.Abs(a.URx-b.URx) <= tolerance && math.Abs(a.URy-b.URy) <= tolerance
}
