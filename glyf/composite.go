package glyf

import (
	"strings"

	"github.com/npillmayer/ttoutline/ot"
	"seehuhn.de/go/geom/matrix"
)

// ComponentFlag holds the flags of a component of a composite glyph.
type ComponentFlag uint16

// Component flags, see
// https://docs.microsoft.com/en-us/typography/opentype/spec/glyf#composite-glyph-description
const (
	ArgsAreWords            ComponentFlag = 0x0001 // arguments are 16-bit, otherwise 8-bit
	ArgsAreXYValues         ComponentFlag = 0x0002 // arguments are offsets, otherwise point numbers
	RoundXYToGrid           ComponentFlag = 0x0004
	WeHaveAScale            ComponentFlag = 0x0008 // uniform scale follows
	MoreComponents          ComponentFlag = 0x0020
	WeHaveXAndYScale        ComponentFlag = 0x0040 // separate x and y scale follow
	WeHaveATwoByTwo         ComponentFlag = 0x0080 // 2×2 matrix follows
	WeHaveInstrs            ComponentFlag = 0x0100 // instructions follow the last component
	UseMyMetrics            ComponentFlag = 0x0200
	OverlapCompound         ComponentFlag = 0x0400
	ScaledComponentOffset   ComponentFlag = 0x0800
	UnscaledComponentOffset ComponentFlag = 0x1000
)

var componentFlagNames = []struct {
	flag ComponentFlag
	name string
}{
	{ArgsAreWords, "ARG_1_AND_2_ARE_WORDS"},
	{ArgsAreXYValues, "ARGS_ARE_XY_VALUES"},
	{RoundXYToGrid, "ROUND_XY_TO_GRID"},
	{WeHaveAScale, "WE_HAVE_A_SCALE"},
	{MoreComponents, "MORE_COMPONENTS"},
	{WeHaveXAndYScale, "WE_HAVE_AN_X_AND_Y_SCALE"},
	{WeHaveATwoByTwo, "WE_HAVE_A_TWO_BY_TWO"},
	{WeHaveInstrs, "WE_HAVE_INSTRUCTIONS"},
	{UseMyMetrics, "USE_MY_METRICS"},
	{OverlapCompound, "OVERLAP_COMPOUND"},
	{ScaledComponentOffset, "SCALED_COMPONENT_OFFSET"},
	{UnscaledComponentOffset, "UNSCALED_COMPONENT_OFFSET"},
}

func (f ComponentFlag) String() string {
	var names []string
	for _, fn := range componentFlagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}
	if len(names) == 0 {
		return "0"
	}
	return strings.Join(names, "|")
}

// Component is a reference from a composite glyph to another glyph, to be placed
// with an affine transform. Transformations of a component are local to it and
// have to be composed with any outer transform before resolving the referenced glyph.
type Component struct {
	Flags      ComponentFlag
	GlyphIndex ot.GlyphIndex
	Arg1, Arg2 int           // offsets in font units, or point numbers (see PointMatching)
	Transform  matrix.Matrix // [a b c d e f]; scale from the flags, translation from the args
}

// PointMatching returns true if the component is to be placed by matching
// a point of the component to a point of the glyph built so far. Point matching is not
// supported: the component is placed with a translation of zero.
func (c Component) PointMatching() bool {
	return c.Flags&ArgsAreXYValues == 0
}

// UseMyMetrics returns true if the composite glyph should use the metrics of this
// component. Recognized, but not acted upon.
func (c Component) UseMyMetrics() bool {
	return c.Flags&UseMyMetrics != 0
}

// ScaledOffset returns true if the component's offset is to be scaled by the
// component's transform (Apple convention). Recognized, but not acted upon.
func (c Component) ScaledOffset() bool {
	return c.Flags&ScaledComponentOffset != 0
}

// UnscaledOffset returns true if the component's offset must not be scaled
// (Microsoft convention). Recognized, but not acted upon.
func (c Component) UnscaledOffset() bool {
	return c.Flags&UnscaledComponentOffset != 0
}

// Unsupported returns the flags of c which are recognized but not acted upon.
func (c Component) Unsupported() ComponentFlag {
	unsupported := c.Flags & (UseMyMetrics | ScaledComponentOffset | UnscaledComponentOffset)
	if c.PointMatching() {
		unsupported |= ArgsAreXYValues
	}
	return unsupported
}

// ComponentStep is the result of ComponentIterator.Next.
type ComponentStep struct {
	Kind      StepKind
	Component Component
	Err       error
}

// ComponentIterator is a forward-only cursor over the components of a composite glyph.
type ComponentIterator struct {
	r         reader
	offset    uint32
	done      bool
	lastFlags ComponentFlag
	count     int
	err       error
}

// Components returns an iterator over the components of a composite glyph.
func (g Glyph) Components() (*ComponentIterator, error) {
	if !g.IsComposite() {
		return nil, ot.NewFontError(ot.ErrMalformed, tagGlyf, "Header", g.offset,
			"simple glyph has no components")
	}
	return &ComponentIterator{
		r:      newReader(g.data, g.offset+headerSize, "Components"),
		offset: g.offset,
	}, nil
}

// Next decodes the next component record. The iteration ends after the first
// record without flag MORE_COMPONENTS.
func (it *ComponentIterator) Next() ComponentStep {
	if it.err != nil {
		return ComponentStep{Kind: StepError, Err: it.err}
	}
	if it.done {
		return ComponentStep{Kind: StepEnd}
	}
	c, err := it.decode()
	if err != nil {
		it.err = err
		return ComponentStep{Kind: StepError, Err: err}
	}
	it.count++
	it.lastFlags = c.Flags
	it.done = c.Flags&MoreComponents == 0
	if u := c.Unsupported(); u != 0 {
		tracer().Infof("component %d of glyph at offset %d: unsupported flags %s",
			it.count-1, it.offset, u)
	}
	return ComponentStep{Kind: StepComponent, Component: c}
}

func (it *ComponentIterator) decode() (Component, error) {
	r := &it.r
	var c Component
	flags, err := r.u16()
	if err != nil {
		return c, err
	}
	c.Flags = ComponentFlag(flags)
	gid, err := r.u16()
	if err != nil {
		return c, err
	}
	c.GlyphIndex = ot.GlyphIndex(gid)
	if c.Flags&ArgsAreWords != 0 {
		a1, err := r.i16()
		if err != nil {
			return c, err
		}
		a2, err := r.i16()
		if err != nil {
			return c, err
		}
		c.Arg1, c.Arg2 = int(a1), int(a2)
	} else {
		a1, err := r.i8()
		if err != nil {
			return c, err
		}
		a2, err := r.i8()
		if err != nil {
			return c, err
		}
		c.Arg1, c.Arg2 = int(a1), int(a2)
	}
	if c.PointMatching() {
		// point numbers are unsigned
		if c.Flags&ArgsAreWords != 0 {
			c.Arg1, c.Arg2 = int(uint16(c.Arg1)), int(uint16(c.Arg2))
		} else {
			c.Arg1, c.Arg2 = int(uint8(c.Arg1)), int(uint8(c.Arg2))
		}
	}
	c.Transform = matrix.Identity
	switch {
	case c.Flags&WeHaveATwoByTwo != 0:
		var s [4]int16
		for i := range s {
			if s[i], err = r.i16(); err != nil {
				return c, err
			}
		}
		c.Transform[0], c.Transform[1] = F2Dot14(s[0]), F2Dot14(s[1])
		c.Transform[2], c.Transform[3] = F2Dot14(s[2]), F2Dot14(s[3])
	case c.Flags&WeHaveXAndYScale != 0:
		sx, err := r.i16()
		if err != nil {
			return c, err
		}
		sy, err := r.i16()
		if err != nil {
			return c, err
		}
		c.Transform[0], c.Transform[3] = F2Dot14(sx), F2Dot14(sy)
	case c.Flags&WeHaveAScale != 0:
		s, err := r.i16()
		if err != nil {
			return c, err
		}
		c.Transform[0], c.Transform[3] = F2Dot14(s), F2Dot14(s)
	}
	if !c.PointMatching() {
		c.Transform[4], c.Transform[5] = float64(c.Arg1), float64(c.Arg2)
	}
	return c, nil
}

// Count returns the number of components decoded so far.
func (it *ComponentIterator) Count() int {
	return it.count
}

// Instructions returns the hinting instructions following the last component,
// if any. It is valid only after the iteration has ended.
func (it *ComponentIterator) Instructions() ([]byte, error) {
	if !it.done || it.lastFlags&WeHaveInstrs == 0 {
		return nil, nil
	}
	r := it.r
	r.section = "Instructions"
	n, err := r.u16()
	if err != nil {
		return nil, err
	}
	return r.bytes(int(n))
}

// AllComponents collects the components of a composite glyph.
func (g Glyph) AllComponents() ([]Component, error) {
	it, err := g.Components()
	if err != nil {
		return nil, err
	}
	var comps []Component
	for {
		step := it.Next()
		switch step.Kind {
		case StepEnd:
			return comps, nil
		case StepError:
			return comps, step.Err
		}
		comps = append(comps, step.Component)
	}
}
