// Package arcmath resolves arc travel direction and G-code I/J center
// offsets from absolute coordinates, matching Mach3's relative-center
// convention.
package arcmath

import "github.com/metafin/gpro/internal/model"

// Direction returns the G-code word for the arc direction from current to
// dest around center: "G03" for counter-clockwise, "G02" for clockwise.
//
// The sign of the cross product of (current-center) and (dest-center)
// decides it: positive is counter-clockwise. A zero cross product (a
// semicircle, where both vectors are anti-parallel) defaults to clockwise.
func Direction(current, dest, center model.Point2D) string {
	cross := crossFromCenter(current, dest, center)
	if cross > 0 {
		return "G03"
	}
	return "G02"
}

// IsCCW reports whether the arc from current to dest around center turns
// counter-clockwise, using the same rule as Direction.
func IsCCW(current, dest, center model.Point2D) bool {
	return crossFromCenter(current, dest, center) > 0
}

func crossFromCenter(current, dest, center model.Point2D) float64 {
	v1 := current.Sub(center)
	v2 := dest.Sub(center)
	return v1.X*v2.Y - v1.Y*v2.X
}

// IJOffsets returns the I and J words for an arc move: the offset from
// the current position to the arc center.
func IJOffsets(current, center model.Point2D) (i, j float64) {
	return center.X - current.X, center.Y - current.Y
}

// ResolveDirection returns the direction word to use for an arc segment:
// the explicit hint if one is given, otherwise the geometric default from
// Direction.
func ResolveDirection(current, dest, center model.Point2D, hint model.ArcDirectionHint) string {
	switch hint {
	case model.ArcDirectionCW:
		return "G02"
	case model.ArcDirectionCCW:
		return "G03"
	default:
		return Direction(current, dest, center)
	}
}
