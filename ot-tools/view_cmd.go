package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/npillmayer/ttoutline"
	"github.com/thatisuday/commando"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/vec"
)

func runRenderCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := fontPathArg(args)
	f := mustLoadFont(fontPath, flags)
	gid, err := parseGlyphToken(f, args["glyph"].Value)
	if err != nil {
		fatalf("%v", err)
	}
	outPath := mustFlagString(flags["output"], "output")
	if outPath == "" {
		fatalf("output path is empty")
	}
	ppem := mustFlagInt(flags["ppem"], "ppem")
	if ppem <= 0 {
		fatalf("--ppem must be > 0")
	}
	sub := vec.Vec2{X: float64(mustFlagInt(flags["subpixel"], "subpixel")) / 64}
	fg := parseColor(flags["color"], "color", false)
	bg := parseColor(flags["background"], "background", true)

	bitmap, err := f.RasterizeGlyph(gid, fixed.I(ppem), sub)
	if bitmap == nil {
		fatalf("render failed: %v", err)
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "ot-tools: glyph %d rendered partially: %v\n", gid, err)
	}
	var img image.Image = bitmap
	if bg != nil {
		rgba := image.NewRGBA(bitmap.Bounds())
		draw.Draw(rgba, rgba.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
		draw.DrawMask(rgba, rgba.Bounds(), image.NewUniform(fg), image.Point{}, bitmap, image.Point{}, draw.Over)
		img = rgba
	}
	if err := writePNG(outPath, img); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("wrote %s (glyph=%d, %d×%d)\n", outPath, gid, bitmap.Bounds().Dx(), bitmap.Bounds().Dy())
}

func runSheetCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := fontPathArg(args)
	f := mustLoadFont(fontPath, flags)
	gids, err := parseGlyphList(f, args["glyphs"].Value)
	if err != nil {
		fatalf("%v", err)
	}
	if len(gids) == 0 {
		fatalf("no glyphs selected")
	}
	outPath := mustFlagString(flags["output"], "output")
	ppem := mustFlagInt(flags["ppem"], "ppem")
	columns := mustFlagInt(flags["columns"], "columns")
	workers := mustFlagInt(flags["workers"], "workers")
	if ppem <= 0 || columns <= 0 {
		fatalf("--ppem and --columns must be > 0")
	}
	sheet := sheetParams{
		fg:         parseColor(flags["color"], "color", false),
		bg:         parseColor(flags["background"], "background", false),
		columns:    columns,
		showBBoxes: mustFlagBool(flags["show-bboxes"], "show-bboxes"),
	}
	bitmaps, err := ttoutline.RasterizeGlyphs(context.Background(), f, gids, fixed.I(ppem), workers)
	if err != nil {
		fatalf("render failed: %v", err)
	}
	img, err := sheet.compose(bitmaps)
	if err != nil {
		fatalf("%v", err)
	}
	if err := writePNG(outPath, img); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("wrote %s (glyphs=%d)\n", outPath, len(gids))
}

type sheetParams struct {
	fg, bg     color.Color
	columns    int
	showBBoxes bool
}

const sheetGap = 4 // pixels between cells

// compose lays out bitmaps in a grid of cells of equal size. Bitmaps are
// aligned at the top left corner of their cell; as all bitmaps of a font
// span from ascender to descender, baselines line up within a row.
func (sheet sheetParams) compose(bitmaps []*image.Alpha) (*image.RGBA, error) {
	cellW, cellH := 0, 0
	for _, b := range bitmaps {
		if b == nil {
			continue
		}
		cellW = max(cellW, b.Bounds().Dx())
		cellH = max(cellH, b.Bounds().Dy())
	}
	if cellW == 0 || cellH == 0 {
		return nil, errors.New("no drawable glyphs")
	}
	rows := (len(bitmaps) + sheet.columns - 1) / sheet.columns
	cols := min(sheet.columns, len(bitmaps))
	width := cols*(cellW+sheetGap) + sheetGap
	height := rows*(cellH+sheetGap) + sheetGap
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(sheet.bg), image.Point{}, draw.Src)
	fg := image.NewUniform(sheet.fg)
	for i, b := range bitmaps {
		x := sheetGap + (i%sheet.columns)*(cellW+sheetGap)
		y := sheetGap + (i/sheet.columns)*(cellH+sheetGap)
		if sheet.showBBoxes {
			drawRectOutline(img, x-1, y-1, x+cellW+1, y+cellH+1, color.RGBA{255, 0, 0, 255})
		}
		if b == nil {
			continue
		}
		r := b.Bounds().Add(image.Pt(x, y))
		draw.DrawMask(img, r, fg, image.Point{}, b, b.Bounds().Min, draw.Over)
	}
	return img, nil
}

func drawRectOutline(img *image.RGBA, minX int, minY int, maxX int, maxY int, c color.RGBA) {
	if img == nil {
		return
	}
	b := img.Bounds()
	minX, minY = max(minX, b.Min.X), max(minY, b.Min.Y)
	maxX, maxY = min(maxX, b.Max.X), min(maxY, b.Max.Y)
	if minX >= maxX || minY >= maxY {
		return
	}
	// top and bottom
	for x := minX; x < maxX; x++ {
		img.SetRGBA(x, minY, c)
		img.SetRGBA(x, maxY-1, c)
	}
	// left and right
	for y := minY; y < maxY; y++ {
		img.SetRGBA(minX, y, c)
		img.SetRGBA(maxX-1, y, c)
	}
}

func writePNG(outPath string, img image.Image) error {
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("cannot encode png: %w", err)
	}
	return nil
}
