package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/ttoutline/glyf"
	"github.com/npillmayer/ttoutline/ot"
	"github.com/pterm/pterm"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
)

// formats for op-code PATH
const (
	formatSVG = "svg"
	formatRaw = "raw"
)

func pointsOp(intp *Intp, op *Op) (err error, stop bool) {
	var g glyf.Glyph
	if g, err = intp.selectGlyph(op); err != nil {
		return
	}
	if g.IsComposite() {
		return errors.New("composite glyph has no points, try 'components'"), false
	}
	sg, err := g.Simple()
	if err != nil {
		return
	}
	pterm.Printf("%d points in %d contours, %d bytes of instructions\n",
		sg.NumPoints(), len(sg.EndPoints), len(sg.Instructions))
	printPoints(sg)
	return nil, false
}

func printPoints(sg *glyf.SimpleGlyph) {
	data := [][]string{
		{"Index", "Contour", "X", "Y", "Flags"},
	}
	contour := 0
	ps := sg.Points(matrix.Identity)
	for {
		step := ps.Next()
		if step.Kind == glyf.StepEnd {
			break
		} else if step.Kind == glyf.StepError {
			pterm.DefaultTable.WithHasHeader().WithData(data).Render()
			pterm.Error.Println(step.Err)
			return
		}
		i := ps.Index() - 1
		for contour < len(sg.EndPoints) && i > int(sg.EndPoints[contour]) {
			contour++
		}
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%d", contour),
			fmt.Sprintf("%g", step.Point.X),
			fmt.Sprintf("%g", step.Point.Y),
			step.Flag.String(),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func componentsOp(intp *Intp, op *Op) (err error, stop bool) {
	var g glyf.Glyph
	if g, err = intp.selectGlyph(op); err != nil {
		return
	}
	if !g.IsComposite() {
		return errors.New("simple glyph has no components, try 'points'"), false
	}
	it, err := g.Components()
	if err != nil {
		return
	}
	data := [][]string{
		{"Index", "Glyph", "Args", "Transform", "Flags"},
	}
	for {
		step := it.Next()
		if step.Kind == glyf.StepEnd {
			break
		} else if step.Kind == glyf.StepError {
			pterm.DefaultTable.WithHasHeader().WithData(data).Render()
			return step.Err, false
		}
		c := step.Component
		args := fmt.Sprintf("offset %d,%d", c.Arg1, c.Arg2)
		if c.PointMatching() {
			args = fmt.Sprintf("points %d→%d", c.Arg2, c.Arg1)
		}
		data = append(data, []string{
			fmt.Sprintf("%d", it.Count()-1),
			fmt.Sprintf("%d", c.GlyphIndex),
			args,
			formatTransform(c.Transform),
			c.Flags.String(),
		})
		if u := c.Unsupported(); u != 0 {
			tracer().Infof("component %d: flags %s are not acted upon", it.Count()-1, u)
		}
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	if instr, err := it.Instructions(); err != nil {
		pterm.Error.Println(err)
	} else if len(instr) > 0 {
		pterm.Printf("%d bytes of instructions\n", len(instr))
	}
	return nil, false
}

func formatTransform(m matrix.Matrix) string {
	parts := make([]string, len(m))
	for i, v := range m {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// pathOp prints the resolved outline of a glyph. With format "svg", the path
// is printed as SVG path data, y-axis pointing down.
func pathOp(intp *Intp, op *Op) (err error, stop bool) {
	var gid ot.GlyphIndex
	if gid, err = intp.glyphArg(op); err != nil {
		return
	}
	m := matrix.Identity
	if strings.ToLower(op.format) == formatSVG {
		m = matrix.Scale(1, -1)
	}
	outline, err := intp.font.Resolver().Path(gid, m)
	if outline == nil {
		return err, false
	}
	if err != nil {
		pterm.Warning.Printf("path is incomplete: %v\n", err)
	}
	if bounds, ok := glyf.Bounds(outline); ok {
		pterm.Printf("%d segments in %d contours, bounds (%g,%g)-(%g,%g)\n",
			len(outline.Cmds), glyf.Contours(outline), bounds.LLx, bounds.LLy, bounds.URx, bounds.URy)
	} else {
		pterm.Println("empty path")
		return nil, false
	}
	switch strings.ToLower(op.format) {
	case formatSVG, formatRaw:
		pterm.Println(glyf.FormatPath(outline))
	default:
		for cmd, pts := range outline.Iter() {
			if cmd == path.CmdMoveTo {
				pterm.Println()
			}
			pterm.Printf("  %s", glyf.FormatCommand(cmd, pts))
		}
		pterm.Println()
	}
	return nil, false
}

// selectGlyph decodes the header of the glyph addressed by op.
func (intp *Intp) selectGlyph(op *Op) (glyf.Glyph, error) {
	gid, err := intp.glyphArg(op)
	if err != nil {
		return glyf.Glyph{}, err
	}
	g, err := intp.font.Resolver().Glyph(gid)
	if err != nil {
		return g, err
	}
	if g.IsEmpty() {
		return g, fmt.Errorf("glyph %d has no outline", gid)
	}
	return g, nil
}
