package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/ttoutline"
	"github.com/npillmayer/ttoutline/glyf"
	"github.com/npillmayer/ttoutline/ot"
	"github.com/npillmayer/ttoutline/otquery"
	"github.com/thatisuday/commando"
	"golang.org/x/image/font/sfnt"
)

func runFontCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := fontPathArg(args)
	f := mustLoadFont(fontPath, flags)
	otf := f.OT

	fmt.Printf("Path: %s\n", fontPath)
	fmt.Printf("Type: %s\n", otquery.FontType(otf))
	family, subfamily := ttoutline.FamilyName(f)
	if family != "" {
		fmt.Printf("Family: %s\n", family)
	}
	if subfamily != "" {
		fmt.Printf("Subfamily: %s\n", subfamily)
	}
	if version, ok := otquery.Name(otf, sfnt.NameIDVersion); ok {
		fmt.Printf("Version: %s\n", version)
	}

	tags := otf.TableTags()
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	fmt.Printf("Tables (%d):", len(tags))
	for _, tag := range tags {
		fmt.Printf(" %s", tag.String())
	}
	fmt.Println()

	m := f.Metrics()
	fmt.Printf("Metrics: upem=%d ascent=%d descent=%d linegap=%d\n", m.UnitsPerEm, m.Ascent, m.Descent, m.LineGap)
	if head, ok := otquery.HeadInfo(otf); ok {
		fmt.Printf("Bounds: (%d,%d)-(%d,%d) loca=%s\n", head.XMin, head.YMin, head.XMax, head.YMax,
			glyf.LocaFormat(head.IndexToLocFormat))
	}
	if maxp, ok := otquery.MaxPInfo(otf); ok {
		fmt.Printf("Glyphs: %d", maxp.NumGlyphs)
		if maxp.HasExtendedProfile {
			fmt.Printf(" (max points=%d contours=%d component depth=%d)",
				maxp.MaxPoints, maxp.MaxContours, maxp.MaxComponentDepth)
		}
		fmt.Println()
	}

	errs := otf.Errors()
	warns := otf.Warnings()
	crit := otf.CriticalErrors()
	fmt.Printf("Issues: errors=%d warnings=%d critical=%d\n", len(errs), len(warns), len(crit))

	if len(args["tables"].Value) > 0 {
		printSelectedTables(otf, args["tables"].Value)
	}
	if mustFlagBool(flags["glyphs"], "glyphs") {
		printGlyphSummary(f)
	}
	if mustFlagBool(flags["errors"], "errors") {
		for _, e := range errs {
			fmt.Printf("error: %s\n", e.Error())
		}
		for _, w := range warns {
			fmt.Printf("warning: %s\n", w.String())
		}
	}
}

func printSelectedTables(otf *ot.Font, raw string) {
	requested := splitCSVSpace(raw)
	for _, t := range requested {
		tagName := strings.TrimSpace(t)
		if tagName == "" {
			continue
		}
		tag := ot.T(tagName)
		table := otf.Table(tag)
		if table == nil {
			fmt.Printf("table %s: missing\n", tagName)
			continue
		}
		off, size := table.Extent()
		fmt.Printf("table %s: offset=%d size=%d\n", tagName, off, size)
	}
}

// printGlyphSummary decodes every glyph header and counts outline kinds and
// decoding problems.
func printGlyphSummary(f *ttoutline.Font) {
	var empty, simple, composite, incomplete, broken int
	var unsupported glyf.ComponentFlag
	maxContours, maxPoints := 0, 0
	for gid := range f.NumGlyphs() {
		info, err := otquery.GlyphInfo(f.OT, ot.GlyphIndex(gid))
		switch {
		case err != nil && !errors.Is(err, ot.ErrIncomplete) && !errors.Is(err, ot.ErrTruncated):
			broken++
			fmt.Printf("glyph %d: %v\n", gid, err)
			continue
		case info.Empty:
			empty++
		case info.Composite:
			composite++
			unsupported |= info.Unsupported
		default:
			simple++
			maxContours = max(maxContours, info.Contours)
			maxPoints = max(maxPoints, info.Points)
		}
		if !info.Complete {
			incomplete++
		}
	}
	fmt.Printf("Outlines: simple=%d composite=%d empty=%d incomplete=%d broken=%d\n",
		simple, composite, empty, incomplete, broken)
	fmt.Printf("Largest simple glyph: contours=%d points=%d\n", maxContours, maxPoints)
	if unsupported != 0 {
		fmt.Printf("Component flags not acted upon: %s\n", unsupported)
	}
}
