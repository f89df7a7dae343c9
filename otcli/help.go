package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "flags", "flag", "point", "points":
		pterm.Info.Println("Simple glyphs / point flags")
		pterm.Println(`
	A simple glyph consists of contours of points, stored as
	+-------------------+--------------+---------+-------------+-------------+
	| endPtsOfContours  | instructions | flags   | x-deltas    | y-deltas    |
	+-------------------+--------------+---------+-------------+-------------+
	Flags are run-length encoded (flag "repeat" plus a count byte).
	Every coordinate is a delta to the previous point, stored as
	  word   signed 16 bit
	  +byte  unsigned 8 bit, positive
	  -byte  unsigned 8 bit, negative
	  same   no data, delta is 0
	Points flagged "off" are quadratic control points. Between two
	consecutive control points, an on-curve point is implied at the midpoint.
	`)
	case "component", "components", "composite":
		pterm.Info.Println("Composite glyphs")
		pterm.Println(`
	A composite glyph (numberOfContours < 0) is a list of component records:
	+-------+------------+------------+------------------------+
	| flags | glyphIndex | arg1, arg2 | scale / x,y / 2x2      |
	+-------+------------+------------+------------------------+
	Args are offsets if ARGS_ARE_XY_VALUES is set, point numbers otherwise.
	Point matching is not supported, such components are placed unshifted.
	Components are resolved recursively, up to a nesting depth limit.
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	Commands have the form op[:arg[:format]]; several commands may be given on one line.
	  info                   font-wide information
	  glyph:<gid>            select a glyph and print its header
	  rune:<char|U+hex>      select the glyph mapped to a character
	  points[:<gid>]         decoded points of a simple glyph
	  components[:<gid>]     component records of a composite glyph
	  path[:<gid>]           resolved outline as a path
	  png:<ppem>[:<file>]    render the current glyph to a PNG file
	  strict[:on|off]        query or set strict decoding
	  help[:points|components]
	  quit
	`)
	}
}
