package glyf

import (
	"fmt"
	"strings"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Outlines are represented as *path.Data of seehuhn.de/go/geom. A glyph outline
// only uses the commands MoveTo, LineTo, QuadTo and Close.

// Contours returns the number of contours of p, i.e. its MoveTo commands.
func Contours(p *path.Data) int {
	if p == nil {
		return 0
	}
	n := 0
	for _, cmd := range p.Cmds {
		if cmd == path.CmdMoveTo {
			n++
		}
	}
	return n
}

// Bounds returns the bounding box of all points of p, including control points.
// The second return value is false for paths without points.
func Bounds(p *path.Data) (rect.Rect, bool) {
	if p == nil || len(p.Coords) == 0 {
		return rect.Rect{}, false
	}
	return p.Iter().BBox(), true
}

// appendPath appends the commands of q to p.
func appendPath(p, q *path.Data) {
	if q == nil {
		return
	}
	p.Cmds = append(p.Cmds, q.Cmds...)
	p.Coords = append(p.Coords, q.Coords...)
}

// FormatCommand formats a single path command in SVG notation.
func FormatCommand(cmd path.Command, pts []vec.Vec2) string {
	switch cmd {
	case path.CmdMoveTo:
		return fmt.Sprintf("M %g,%g", pts[0].X, pts[0].Y)
	case path.CmdLineTo:
		return fmt.Sprintf("L %g,%g", pts[0].X, pts[0].Y)
	case path.CmdQuadTo:
		return fmt.Sprintf("Q %g,%g %g,%g", pts[0].X, pts[0].Y, pts[1].X, pts[1].Y)
	case path.CmdCubeTo:
		return fmt.Sprintf("C %g,%g %g,%g %g,%g", pts[0].X, pts[0].Y, pts[1].X, pts[1].Y,
			pts[2].X, pts[2].Y)
	case path.CmdClose:
		return "Z"
	}
	return "?"
}

// FormatPath formats p in SVG path notation.
func FormatPath(p *path.Data) string {
	if p == nil {
		return ""
	}
	var sb strings.Builder
	for cmd, pts := range p.Iter() {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(FormatCommand(cmd, pts))
	}
	return sb.String()
}
