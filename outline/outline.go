// Package outline manages the unpacked, render-ready glyph outline and its
// on-disk packed form used by the vector and combine file codecs.
package outline

import (
	"golang.org/x/image/math/fixed"

	"github.com/raulmrio28-git/GreyBitType/gbtype"
)

// MaxPoints and MaxContours are the structural limits the packed on-disk
// form imposes: a contour end index and a point count each fit in a
// single byte.
const (
	MaxPoints   = 255
	MaxContours = 255
	// MaxCoord is the largest coordinate value (in raw font units, before
	// the <<6 scale to 26.6 sub-pixel units) the packed point form can
	// carry in its 7 coordinate bits.
	MaxCoord = 127
)

// New allocates an outline with nContours contours and nPoints points, all
// zero-valued.
func New(nContours, nPoints int) *gbtype.Outline {
	return &gbtype.Outline{
		Contours: make([]int16, nContours),
		Points:   make([]gbtype.Point, nPoints),
		Tags:     make([]gbtype.PointTag, nPoints),
	}
}

// Validate checks the structural invariants an outline must satisfy
// before it can be rasterized or re-encoded: contour end indices must be
// non-decreasing, in range, and the last one must equal the final point
// index.
func Validate(o *gbtype.Outline) error {
	n := o.NPoints()
	prev := -1
	for _, end := range o.Contours {
		if int(end) <= prev || int(end) >= n {
			return &gbtype.InvalidOutlineError{Reason: "contour end index out of order or out of range"}
		}
		prev = int(end)
	}
	if len(o.Contours) > 0 && int(o.Contours[len(o.Contours)-1]) != n-1 {
		return &gbtype.InvalidOutlineError{Reason: "final contour does not end at the last point"}
	}
	return nil
}

// PackedPoint is one point in the on-disk form: a byte pair whose low bit
// each carries one tag bit and whose upper 7 bits carry the coordinate.
type PackedPoint struct {
	X, Y byte
}

// Pack converts one unpacked (26.6 sub-pixel) point and tag to its packed
// on-disk form, using the canonical bit convention: the x byte's low bit
// is the ON_CURVE/CONIC_OFF tag bit, the y byte's low bit is the other.
// Coordinates are scaled from 26.6 units down to raw font units (>>6)
// before packing and must fit in 7 bits (0..MaxCoord).
func Pack(p gbtype.Point, tag gbtype.PointTag) PackedPoint {
	x := byte(p.X>>6) & MaxCoord
	y := byte(p.Y>>6) & MaxCoord
	tagX := byte(tag) & 1
	tagY := (byte(tag) >> 1) & 1
	return PackedPoint{
		X: (x << 1) | tagX,
		Y: (y << 1) | tagY,
	}
}

// Unpack is the inverse of Pack: it recovers the 26.6 point and tag from a
// packed on-disk point.
func Unpack(p PackedPoint) (gbtype.Point, gbtype.PointTag) {
	x := fixed.Int26_6(p.X>>1) << 6
	y := fixed.Int26_6(p.Y>>1) << 6
	tag := gbtype.PointTag((p.Y&1)<<1 | (p.X & 1))
	return gbtype.Point{X: x, Y: y}, tag
}

// Translate shifts every point of o by (dx, dy), in 26.6 units.
func Translate(o *gbtype.Outline, dx, dy fixed.Int26_6) {
	for i := range o.Points {
		o.Points[i].X += dx
		o.Points[i].Y += dy
	}
}

// Scale multiplies every coordinate of o by the ratio numer/denom, as an
// int64 multiply followed by an integer divide.
func Scale(o *gbtype.Outline, numer, denom int32) {
	for i := range o.Points {
		o.Points[i].X = fixed.Int26_6(int64(o.Points[i].X) * int64(numer) / int64(denom))
		o.Points[i].Y = fixed.Int26_6(int64(o.Points[i].Y) * int64(numer) / int64(denom))
	}
}
