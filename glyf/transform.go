package glyf

import "seehuhn.de/go/geom/vec"

// Point is a point of a glyph outline, mapped by the transform the point stream
// has been created with.
type Point struct {
	X, Y    float64
	OnCurve bool
}

// Vec returns the position of p.
func (p Point) Vec() vec.Vec2 {
	return vec.Vec2{X: p.X, Y: p.Y}
}

// F2Dot14 converts a signed 2.14 fixed-point number to float.
func F2Dot14(v int16) float64 {
	return float64(v) / 16384
}
