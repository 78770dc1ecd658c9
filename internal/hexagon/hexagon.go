// Package hexagon computes the vertex geometry for hexagonal pocket and
// through-cut operations: the uncompensated wrench-size hexagon and its
// tool-radius-compensated toolpath.
package hexagon

import (
	"math"

	"github.com/metafin/gpro/internal/model"
)

// sqrt3 is used throughout for the apothem-to-circumradius relationship of
// a regular hexagon.
var sqrt3 = math.Sqrt(3)

// Vertices returns the six vertices of a regular hexagon centered at
// (centerX, centerY) with the given flat-to-flat (wrench size) distance.
// The hexagon is point-up: flats parallel to the Y axis. Vertices are
// ordered clockwise starting at the top (12 o'clock).
func Vertices(centerX, centerY, flatToFlat float64) [6]model.Point2D {
	circumradius := flatToFlat / sqrt3

	var verts [6]model.Point2D
	for i := 0; i < 6; i++ {
		angle := math.Pi/2 - float64(i)*math.Pi/3
		verts[i] = model.Point2D{
			X: centerX + circumradius*math.Cos(angle),
			Y: centerY + circumradius*math.Sin(angle),
		}
	}
	return verts
}

// CompensatedVertices returns the hexagon's vertices offset for tool-radius
// compensation: each vertex moves along its bisector toward (interior) or
// away from (exterior) the center. "none" returns the uncompensated
// vertices unchanged.
func CompensatedVertices(centerX, centerY, flatToFlat, toolDiameter float64, compensation model.CompensationMode) [6]model.Point2D {
	verts := Vertices(centerX, centerY, flatToFlat)
	if compensation == model.CompensationNone {
		return verts
	}

	toolRadius := toolDiameter / 2
	// For a regular hexagon, the offset along the vertex bisector needed to
	// move the flat-to-flat distance by 2*tool_radius is tool_radius / sin(60deg).
	baseOffset := toolRadius * 2 / sqrt3

	offsetDistance := baseOffset
	if compensation == model.CompensationExterior {
		offsetDistance = -baseOffset
	}

	center := model.Point2D{X: centerX, Y: centerY}
	for i, v := range verts {
		verts[i] = offsetPointToward(v, center, offsetDistance)
	}
	return verts
}

// offsetPointToward moves point by distance along the unit vector from
// point to center. A zero-length vector (point coincides with center)
// leaves the point unchanged.
func offsetPointToward(point, center model.Point2D, distance float64) model.Point2D {
	delta := center.Sub(point)
	length := math.Hypot(delta.X, delta.Y)
	if length == 0 {
		return point
	}
	return model.Point2D{
		X: point.X + delta.X/length*distance,
		Y: point.Y + delta.Y/length*distance,
	}
}

// StartVertex returns the first vertex (the top, 12 o'clock position) used
// to position the tool before cutting begins.
func StartVertex(verts [6]model.Point2D) model.Point2D {
	return verts[0]
}

// Bounds returns the axis-aligned bounding box of an uncompensated hexagon
// with the given center and flat-to-flat distance.
func Bounds(centerX, centerY, flatToFlat float64) (minX, minY, maxX, maxY float64) {
	apothem := flatToFlat / 2
	circumradius := flatToFlat / sqrt3
	return centerX - apothem, centerY - circumradius, centerX + apothem, centerY + circumradius
}
