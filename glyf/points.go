package glyf

import (
	"github.com/npillmayer/ttoutline/ot"
	"seehuhn.de/go/geom/matrix"
)

// SimpleGlyph is a glyph described by contours of points. The point data is
// decoded on demand by a PointStream.
type SimpleGlyph struct {
	Glyph
	EndPoints    []uint16 // index of the last point of each contour
	Instructions []byte   // hinting instructions, not interpreted
	numPoints    int
	flagsStart   int // start of the flags array within the glyph data
	xStart       int // start of the x coordinates
	yStart       int // start of the y coordinates
	yEnd         int // end of the y coordinates, possibly beyond the data for broken glyphs
}

// Simple decodes the contour structure of a simple glyph and locates its flags
// and coordinate arrays. A point stream created by Points will deliver the
// glyph's points.
//
// Simple fails if the end points or instructions are truncated, or if the
// end points are descending. Repeated end points denote contours without
// points (see ContourSize), which BuildPath rejects in strict mode only.
// Truncated point data is not detected here, but surfaces when iterating over
// the points.
func (g Glyph) Simple() (*SimpleGlyph, error) {
	if g.IsComposite() {
		return nil, ot.NewFontError(ot.ErrMalformed, tagGlyf, "Header", g.offset,
			"composite glyph has no contours")
	}
	sg := &SimpleGlyph{Glyph: g}
	if g.empty {
		return sg, nil
	}
	r := newReader(g.data, g.offset+headerSize, "EndPoints")
	n := int(g.NumContours)
	if r.remaining() < 2*n {
		return nil, r.truncated(2 * n)
	}
	sg.EndPoints = make([]uint16, n)
	for i := range n {
		sg.EndPoints[i], _ = r.u16()
		if i > 0 && sg.EndPoints[i] < sg.EndPoints[i-1] {
			return nil, ot.NewFontError(ot.ErrMalformed, tagGlyf, "EndPoints", g.offset,
				"contour end points descending: %d after %d", sg.EndPoints[i], sg.EndPoints[i-1])
		}
	}
	if n > 0 {
		sg.numPoints = int(sg.EndPoints[n-1]) + 1
	}
	r.section = "Instructions"
	ilen, err := r.u16()
	if err != nil {
		return nil, err
	}
	if sg.Instructions, err = r.bytes(int(ilen)); err != nil {
		return nil, err
	}
	sg.flagsStart = r.pos
	sg.prescan(r)
	return sg, nil
}

// prescan replays the run-length encoded flags to find the start of the
// x and y coordinate arrays, as the size of the x array depends on how many
// points use 1-byte or 2-byte deltas.
func (sg *SimpleGlyph) prescan(r reader) {
	r.section = "Flags"
	var xsize, ysize int
	for i := 0; i < sg.numPoints; {
		b, err := r.u8()
		if err != nil {
			tracer().Debugf("flags of glyph at offset %d truncated after %d of %d points",
				sg.offset, i, sg.numPoints)
			break
		}
		f, count := PointFlag(b), 1
		if f&FlagRepeat != 0 {
			k, err := r.u8()
			if err != nil {
				break
			}
			count += int(k)
		}
		if count > sg.numPoints-i {
			tracer().Infof("flag run of glyph at offset %d exceeds point count", sg.offset)
			count = sg.numPoints - i
		}
		xsize += count * f.XMode().Size()
		ysize += count * f.YMode().Size()
		i += count
	}
	sg.xStart = r.pos
	sg.yStart = sg.xStart + xsize
	sg.yEnd = sg.yStart + ysize
}

// NumPoints returns the number of points of the glyph, which is the last
// contour end point + 1.
func (sg *SimpleGlyph) NumPoints() int {
	return sg.numPoints
}

// ContourSize returns the number of points of contour i.
func (sg *SimpleGlyph) ContourSize(i int) int {
	if i < 0 || i >= len(sg.EndPoints) {
		return 0
	}
	if i == 0 {
		return int(sg.EndPoints[0]) + 1
	}
	return int(sg.EndPoints[i]) - int(sg.EndPoints[i-1])
}

// Complete reports whether the glyph data is long enough to hold all points
// the contours call for.
func (sg *SimpleGlyph) Complete() bool {
	return sg.yEnd <= len(sg.data)
}

// Points returns a stream of the glyph's points, each mapped by m.
func (sg *SimpleGlyph) Points(m matrix.Matrix) *PointStream {
	base := sg.offset + headerSize
	xEnd := min(sg.yStart, len(sg.data))
	return &PointStream{
		sg:    sg,
		m:     m,
		flags: reader{data: sg.data[:sg.xStart], pos: sg.flagsStart, base: base, section: "Flags"},
		xs:    reader{data: sg.data[:xEnd], pos: sg.xStart, base: base, section: "XCoordinates"},
		ys:    reader{data: sg.data, pos: sg.yStart, base: base, section: "YCoordinates"},
	}
}

// AllPoints collects the glyph's points, each mapped by m. If the point data is
// truncated, the points decoded so far are returned together with an error of
// kind ot.ErrIncomplete.
func (sg *SimpleGlyph) AllPoints(m matrix.Matrix) ([]Point, error) {
	points := make([]Point, 0, sg.numPoints)
	ps := sg.Points(m)
	for {
		step := ps.Next()
		switch step.Kind {
		case StepEnd:
			return points, nil
		case StepError:
			return points, step.Err
		}
		points = append(points, step.Point)
	}
}

// --- Point stream ----------------------------------------------------------

// StepKind tags the result of a single step of a stream.
type StepKind uint8

const (
	StepPoint StepKind = iota // an element has been produced
	StepEnd                   // the stream is exhausted
	StepError                 // the stream has failed

	StepComponent = StepPoint // a component has been produced
)

func (k StepKind) String() string {
	switch k {
	case StepPoint:
		return "point"
	case StepEnd:
		return "end"
	}
	return "error"
}

// Step is the result of PointStream.Next.
type Step struct {
	Kind  StepKind
	Point Point
	Flag  PointFlag
	Err   error
}

// PointStream is a forward-only, single-pass cursor over the points of a
// simple glyph. Points are decoded from the run-length encoded flags and
// the delta-encoded coordinates, accumulated from (0, 0), and mapped by the
// stream's transform.
//
// Once a stream has failed, it will keep returning the error.
type PointStream struct {
	sg     *SimpleGlyph
	m      matrix.Matrix
	flags  reader
	xs, ys reader
	flag   PointFlag // flag of the current run
	repeat int       // remaining repetitions of flag
	x, y   int       // accumulated coordinates, unscaled
	index  int       // number of points produced
	err    error
}

// Next decodes the next point.
func (ps *PointStream) Next() Step {
	if ps.err != nil {
		return Step{Kind: StepError, Err: ps.err}
	}
	if ps.index >= ps.sg.numPoints {
		return Step{Kind: StepEnd}
	}
	if ps.repeat > 0 {
		ps.repeat--
	} else {
		b, err := ps.flags.u8()
		if err != nil {
			return ps.fail(err)
		}
		ps.flag = PointFlag(b)
		if ps.flag&FlagRepeat != 0 {
			k, err := ps.flags.u8()
			if err != nil {
				return ps.fail(err)
			}
			ps.repeat = int(k)
		}
	}
	dx, err := readDelta(&ps.xs, ps.flag.XMode())
	if err != nil {
		return ps.fail(err)
	}
	dy, err := readDelta(&ps.ys, ps.flag.YMode())
	if err != nil {
		return ps.fail(err)
	}
	ps.x += dx
	ps.y += dy
	ps.index++
	x, y := ps.m.Apply(float64(ps.x), float64(ps.y))
	return Step{
		Kind:  StepPoint,
		Point: Point{X: x, Y: y, OnCurve: ps.flag.OnCurve()},
		Flag:  ps.flag,
	}
}

// Index returns the number of points produced so far.
func (ps *PointStream) Index() int {
	return ps.index
}

func (ps *PointStream) fail(cause error) Step {
	ps.err = ot.NewFontError(ot.ErrIncomplete, tagGlyf, "Points", ps.sg.offset,
		"point data ends after %d of %d points: %v", ps.index, ps.sg.numPoints, cause)
	return Step{Kind: StepError, Err: ps.err}
}
