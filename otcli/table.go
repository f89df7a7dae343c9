package main

import (
	"fmt"
	"image/png"
	"os"
	"strconv"

	"github.com/npillmayer/ttoutline"
	"github.com/npillmayer/ttoutline/ot"
	"github.com/npillmayer/ttoutline/otquery"
	"github.com/pterm/pterm"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/vec"
)

func infoOp(intp *Intp, op *Op) (error, bool) {
	otf := intp.font.OT
	family, subfamily := ttoutline.FamilyName(intp.font)
	m := intp.font.Metrics()
	data := [][]string{
		{"Property", "Value"},
		{"Family", family},
		{"Subfamily", subfamily},
		{"Outlines", otquery.FontType(otf)},
		{"Tables", fmt.Sprintf("%v", otf.TableTags())},
		{"Glyphs", strconv.Itoa(intp.font.NumGlyphs())},
		{"Units per em", strconv.Itoa(int(m.UnitsPerEm))},
		{"Ascent / Descent", fmt.Sprintf("%d / %d", m.Ascent, m.Descent)},
		{"Line gap", strconv.Itoa(int(m.LineGap))},
	}
	if maxp, ok := otquery.MaxPInfo(otf); ok && maxp.HasExtendedProfile {
		data = append(data, []string{"Max component depth", strconv.Itoa(int(maxp.MaxComponentDepth))})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	for _, err := range otf.Errors() {
		pterm.Error.Println(err.Error())
	}
	for _, w := range otf.Warnings() {
		pterm.Warning.Println(w.String())
	}
	return nil, false
}

func glyphOp(intp *Intp, op *Op) (err error, stop bool) {
	var gid ot.GlyphIndex
	if gid, err = intp.glyphArg(op); err != nil {
		return
	}
	return printGlyphHeader(intp, gid)
}

func printGlyphHeader(intp *Intp, gid ot.GlyphIndex) (error, bool) {
	info, err := otquery.GlyphInfo(intp.font.OT, gid)
	if err != nil && info.BBox.IsEmpty() && !info.Empty {
		return err, false
	}
	metrics := otquery.GlyphMetrics(intp.font.OT, gid)
	kind := "simple"
	if info.Empty {
		kind = "empty"
	} else if info.Composite {
		kind = "composite"
	}
	data := [][]string{
		{"Glyph", "Kind", "BBox", "Contours", "Points", "Components", "Instr", "Advance", "LSB", "RSB"},
		{
			strconv.Itoa(int(gid)),
			kind,
			fmt.Sprintf("(%d,%d)-(%d,%d)", info.BBox.MinX, info.BBox.MinY, info.BBox.MaxX, info.BBox.MaxY),
			strconv.Itoa(info.Contours),
			strconv.Itoa(info.Points),
			strconv.Itoa(info.Components),
			strconv.Itoa(info.Instructions),
			strconv.Itoa(int(metrics.Advance)),
			strconv.Itoa(int(metrics.LSB)),
			strconv.Itoa(int(metrics.RSB)),
		},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	if info.Unsupported != 0 {
		pterm.Warning.Printf("unsupported component flags: %s\n", info.Unsupported)
	}
	if !info.Complete {
		pterm.Warning.Println("glyph data is incomplete")
	}
	if err != nil {
		pterm.Error.Println(err)
	}
	return nil, false
}

// pngOp renders the current glyph. op.arg is the size in ppem,
// op.format an optional file name.
func pngOp(intp *Intp, op *Op) (err error, stop bool) {
	if intp.gid < 0 {
		return ErrNoGlyph, false
	}
	ppem := 64
	if !op.noArg() {
		if ppem, err = strconv.Atoi(op.arg); err != nil || ppem <= 0 {
			return fmt.Errorf("size must be a positive number of ppem: %v", op.arg), false
		}
	}
	filename := op.format
	if filename == "" {
		filename = fmt.Sprintf("glyph-%d.png", intp.gid)
	}
	bitmap, err := intp.font.RasterizeGlyph(ot.GlyphIndex(intp.gid), fixed.I(ppem), vec.Vec2{})
	if bitmap == nil {
		return err, false
	} else if err != nil {
		pterm.Warning.Printf("glyph rendered partially: %v\n", err)
	}
	out, err := os.Create(filename)
	if err != nil {
		return err, false
	}
	defer out.Close()
	if err = png.Encode(out, bitmap); err != nil {
		return err, false
	}
	pterm.Printf("wrote %s (%d×%d)\n", filename, bitmap.Bounds().Dx(), bitmap.Bounds().Dy())
	return nil, false
}
