// Package corner detects sharp direction changes in a cutting path and
// assigns each one a feed-rate severity factor, so the safety chain can
// slow the tool through tight turns without tool deflection.
package corner

import (
	"math"

	"github.com/metafin/gpro/internal/model"
)

// DefaultAngleThreshold is the interior angle, in degrees, below which a
// vertex is treated as a corner rather than a gentle bend. 180 is a
// straight line; smaller angles are sharper turns.
const DefaultAngleThreshold = 120.0

// Corner describes one sharp direction change found along a path.
type Corner struct {
	Index int // index of the corner point within the path
	Point model.Point2D
	Angle float64 // degrees; 180 = straight, 0 = full reversal
}

// vec2 is a plain 2D vector used for direction/tangent math, distinct from
// model.Point2D which represents a position.
type vec2 struct{ X, Y float64 }

func direction(p1, p2 model.Point2D) vec2 {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	mag := math.Hypot(dx, dy)
	if mag < 1e-4 {
		return vec2{1, 0}
	}
	return vec2{dx / mag, dy / mag}
}

// arcTangent returns the unit tangent direction at point on a circle
// centered at center, for the given travel direction ("G02" clockwise,
// "G03" counter-clockwise).
func arcTangent(center, point model.Point2D, direction string) vec2 {
	rx, ry := point.X-center.X, point.Y-center.Y
	var tx, ty float64
	if direction == "G03" {
		tx, ty = -ry, rx
	} else {
		tx, ty = ry, -rx
	}
	mag := math.Hypot(tx, ty)
	if mag < 1e-4 {
		return vec2{1, 0}
	}
	return vec2{tx / mag, ty / mag}
}

func angleBetween(a, b vec2) float64 {
	dot := a.X*b.X + a.Y*b.Y
	if dot > 1 {
		dot = 1
	}
	if dot < -1 {
		dot = -1
	}
	return math.Acos(dot) * 180 / math.Pi
}

// arcDirectionWord resolves a point's arc direction hint to the "G02"/"G03"
// word used for tangent calculation, defaulting to clockwise as the
// resolver does when a direction is left unspecified.
func arcDirectionWord(hint model.ArcDirectionHint) string {
	switch hint {
	case model.ArcDirectionCCW:
		return "G03"
	default:
		return "G02"
	}
}

// incomingDirection returns the unit tangent a path arrives at point p2
// with, given the segment type carried by p2 itself (it describes the
// segment from the previous point to p2).
func incomingDirection(p1, p2 model.Point2D, curr model.LinePoint) vec2 {
	if curr.Segment == model.SegmentArc {
		center := model.Point2D{X: curr.ArcCenterX, Y: curr.ArcCenterY}
		return arcTangent(center, p2, arcDirectionWord(curr.ArcDirection))
	}
	return direction(p1, p2)
}

// outgoingDirection returns the unit tangent a path leaves point p2 with,
// given the segment type carried by the next point (it describes the
// segment from p2 to the next point).
func outgoingDirection(p2, p3 model.Point2D, next model.LinePoint) vec2 {
	if next.Segment == model.SegmentArc {
		center := model.Point2D{X: next.ArcCenterX, Y: next.ArcCenterY}
		return arcTangent(center, p2, arcDirectionWord(next.ArcDirection))
	}
	return direction(p2, p3)
}

// Identify finds every interior point of path whose interior angle is
// below angleThreshold (i.e. whose direction change exceeds 180 minus
// it), returning the index, location, and severity angle of each.
func Identify(path []model.LinePoint, angleThreshold float64) []Corner {
	if len(path) < 3 {
		return nil
	}

	var corners []Corner
	for i := 1; i < len(path)-1; i++ {
		p1 := model.Point2D{X: path[i-1].X, Y: path[i-1].Y}
		p2 := model.Point2D{X: path[i].X, Y: path[i].Y}
		p3 := model.Point2D{X: path[i+1].X, Y: path[i+1].Y}

		incoming := incomingDirection(p1, p2, path[i])
		outgoing := outgoingDirection(p2, p3, path[i+1])
		angle := 180 - angleBetween(incoming, outgoing)

		if angle < angleThreshold {
			corners = append(corners, Corner{Index: i, Point: p2, Angle: angle})
		}
	}
	return corners
}

// FeedFactor returns the feed-rate severity factor for a corner angle:
// 1.0 (no slowdown) at or above 120 degrees, tapering down to 0.30 for
// very sharp turns below 30 degrees. This is the angle-severity factor
// alone; the safety chain separately applies the process-wide corner
// feed factor on top of it.
func FeedFactor(angle float64) float64 {
	switch {
	case angle >= 120:
		return 1.0
	case angle >= 90:
		return 0.75
	case angle >= 60:
		return 0.50
	case angle >= 30:
		return 0.40
	default:
		return 0.30
	}
}

// FeedFactorsByIndex identifies corners in path and returns a map from
// path index to feed-rate severity factor, for callers (the planner) that
// build moves from the same path and need to annotate each move's
// CornerFeedFactor by matching indices.
func FeedFactorsByIndex(path []model.LinePoint, angleThreshold float64) map[int]float64 {
	if angleThreshold <= 0 {
		angleThreshold = DefaultAngleThreshold
	}
	corners := Identify(path, angleThreshold)
	factors := make(map[int]float64, len(corners))
	for _, c := range corners {
		factors[c.Index] = FeedFactor(c.Angle)
	}
	return factors
}
