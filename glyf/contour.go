package glyf

import (
	"github.com/npillmayer/ttoutline/ot"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// builderState is the state of the contour-to-path state machine.
type builderState uint8

const (
	seekingContour builderState = iota // before the first point of a contour
	onContour                          // within a contour, no control point pending
	pendingControl                     // within a contour, an off-curve point is pending
)

// pathBuilder converts a sequence of on-curve and off-curve points into path
// segments. Between two consecutive off-curve points, an on-curve point at
// their midpoint is implied.
type pathBuilder struct {
	out     *path.Data
	state   builderState
	start   vec.Vec2
	pending ot.Option[vec.Vec2]
}

func newPathBuilder() *pathBuilder {
	return &pathBuilder{out: &path.Data{}}
}

// startContour starts a contour at p. An off-curve first point is used as the
// start point as well.
func (b *pathBuilder) startContour(p Point) {
	b.start = p.Vec()
	b.pending = ot.None[vec.Vec2]()
	b.out.MoveTo(b.start)
	b.state = onContour
}

func (b *pathBuilder) add(p Point) {
	if b.state == seekingContour {
		b.startContour(p)
		return
	}
	ctrl, hasCtrl := b.pending.Unwrap()
	switch {
	case p.OnCurve && hasCtrl:
		b.out.QuadTo(ctrl, p.Vec())
		b.pending = ot.None[vec.Vec2]()
		b.state = onContour
	case p.OnCurve:
		b.out.LineTo(p.Vec())
	case hasCtrl:
		b.out.QuadTo(ctrl, vec.Middle(ctrl, p.Vec()))
		b.pending = ot.Some(p.Vec())
	default:
		b.pending = ot.Some(p.Vec())
		b.state = pendingControl
	}
}

// closeContour leads the contour back to its start point and closes it.
func (b *pathBuilder) closeContour() {
	if b.state == seekingContour {
		return
	}
	if ctrl, ok := b.pending.Unwrap(); ok {
		b.out.QuadTo(ctrl, b.start)
	} else {
		b.out.LineTo(b.start)
	}
	b.out.Close()
	b.pending = ot.None[vec.Vec2]()
	b.state = seekingContour
}

// BuildPath converts the contours of a simple glyph into a path, mapping every
// point by m.
//
// If the point data ends before all contours are complete, BuildPath returns an
// error of kind ot.ErrIncomplete. In lenient mode (strict = false) it returns the
// path built so far alongside the error, with the current contour left open;
// in strict mode, no path is returned.
//
// Contours without points are skipped in lenient mode and reported as
// ot.ErrMalformed in strict mode.
func BuildPath(sg *SimpleGlyph, m matrix.Matrix, strict bool) (*path.Data, error) {
	b := newPathBuilder()
	ps := sg.Points(m)
	for c := range sg.EndPoints {
		size := sg.ContourSize(c)
		if size == 0 {
			if strict {
				return nil, ot.NewFontError(ot.ErrMalformed, tagGlyf, "EndPoints", sg.offset,
					"contour %d has no points", c)
			}
			tracer().Debugf("glyph at offset %d: skipping empty contour %d", sg.offset, c)
			continue
		}
		for k := 0; k < size; k++ {
			step := ps.Next()
			if step.Kind != StepPoint {
				err := step.Err
				if err == nil {
					err = ot.NewFontError(ot.ErrIncomplete, tagGlyf, "Contours", sg.offset,
						"point stream ended in contour %d", c)
				}
				if strict {
					return nil, err
				}
				tracer().Infof("glyph at offset %d incomplete, keeping %d path segments",
					sg.offset, len(b.out.Cmds))
				return b.out, err
			}
			b.add(step.Point)
		}
		b.closeContour()
	}
	return b.out, nil
}

// Path decodes a simple glyph and converts it into a path, mapping every point by m.
// Truncated point data is handled leniently, see BuildPath. Composite glyphs
// have to be resolved with a Resolver.
func (g Glyph) Path(m matrix.Matrix) (*path.Data, error) {
	sg, err := g.Simple()
	if err != nil {
		return nil, err
	}
	return BuildPath(sg, m, false)
}
