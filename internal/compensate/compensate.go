// Package compensate offsets a closed or open tool path from the feature
// edge to the tool-center toolpath, by tool radius, winding direction, and
// compensation mode. Straight segments get a parallel offset; arc segments
// get a radius change; adjacent offset segments are re-stitched at their
// new intersection (or joined by a short connector, for arc-to-arc
// corners, since two circles do not generally meet at a single point).
package compensate

import (
	"fmt"
	"math"

	"github.com/metafin/gpro/internal/model"
)

const closedTolerance = 1e-4

// CircleRadius returns the toolpath (tool-center) radius for a circular
// cut of the given feature diameter: the feature radius shrunk by tool
// radius for interior compensation, grown by tool radius for exterior,
// or left as-is for none.
func CircleRadius(featureDiameter, toolDiameter float64, compensation model.CompensationMode) float64 {
	featureRadius := featureDiameter / 2
	toolRadius := toolDiameter / 2
	switch compensation {
	case model.CompensationInterior:
		return featureRadius - toolRadius
	case model.CompensationExterior:
		return featureRadius + toolRadius
	default:
		return featureRadius
	}
}

// segmentKind distinguishes a straight offset segment from an arc one.
type segmentKind int

const (
	segStraight segmentKind = iota
	segArc
)

type offsetSegment struct {
	kind   segmentKind
	start  model.Point2D
	end    model.Point2D
	center model.Point2D // arc only
	source model.LinePoint
}

// Line applies tool compensation to an open or closed line-cut path,
// returning a new path of the same point count (plus one extra point per
// arc-to-arc corner, where a short connecting segment is inserted).
// "none" compensation returns path unchanged.
func Line(path []model.LinePoint, toolDiameter float64, compensation model.CompensationMode) ([]model.LinePoint, error) {
	if compensation == model.CompensationNone || len(path) < 2 {
		return path, nil
	}

	toolRadius := toolDiameter / 2.0
	closed := isClosed(path)

	// The original last point's segment data describes the closing
	// segment into point 0 for a closed path; it must be preserved since
	// it is about to be dropped from the active point count.
	var closingSource model.LinePoint
	if closed {
		closingSource = path[len(path)-1]
	}

	winding := winding(path)
	offset := resolveOffset(toolRadius, compensation, winding)

	n := len(path)
	if closed {
		n--
	}

	segments := make([]offsetSegment, 0, n)
	for i := 0; i < segmentCount(n, closed); i++ {
		j := (i + 1) % n
		p1 := model.Point2D{X: path[i].X, Y: path[i].Y}
		p2 := model.Point2D{X: path[j].X, Y: path[j].Y}

		source := path[j]
		if closed && j == 0 {
			source = closingSource
		}

		if source.Segment == model.SegmentArc {
			seg, err := offsetArcSegment(p1, p2, source, offset, toolRadius)
			if err != nil {
				return nil, err
			}
			segments = append(segments, seg)
		} else {
			newP1, newP2 := offsetLineSegment(p1, p2, offset)
			segments = append(segments, offsetSegment{kind: segStraight, start: newP1, end: newP2, source: source})
		}
	}

	if len(segments) == 0 {
		return path, nil
	}

	return stitch(path, segments, closed)
}

func segmentCount(n int, closed bool) int {
	if closed {
		return n
	}
	return n - 1
}

// isClosed reports whether the first and last points of path coincide.
func isClosed(path []model.LinePoint) bool {
	if len(path) < 2 {
		return false
	}
	first, last := path[0], path[len(path)-1]
	return math.Abs(first.X-last.X) < closedTolerance && math.Abs(first.Y-last.Y) < closedTolerance
}

// winding returns the signed area of path (positive = counter-clockwise).
func winding(path []model.LinePoint) float64 {
	n := len(path)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += path[i].X*path[j].Y - path[j].X*path[i].Y
	}
	return area / 2
}

// resolveOffset picks the signed perpendicular offset (positive = left of
// travel direction) that achieves the requested compensation, given the
// path's winding. The normal always points left of the direction of
// travel; for a CCW path left is inside, for a CW path left is outside.
func resolveOffset(toolRadius float64, compensation model.CompensationMode, winding float64) float64 {
	ccw := winding >= 0
	switch compensation {
	case model.CompensationExterior:
		if ccw {
			return -toolRadius
		}
		return toolRadius
	default: // interior
		if ccw {
			return toolRadius
		}
		return -toolRadius
	}
}

func lineNormal(p1, p2 model.Point2D) model.Point2D {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return model.Point2D{}
	}
	return model.Point2D{X: -dy / length, Y: dx / length}
}

func offsetLineSegment(p1, p2 model.Point2D, offset float64) (model.Point2D, model.Point2D) {
	n := lineNormal(p1, p2)
	return model.Point2D{X: p1.X + n.X*offset, Y: p1.Y + n.Y*offset},
		model.Point2D{X: p2.X + n.X*offset, Y: p2.Y + n.Y*offset}
}

// offsetArcSegment changes an arc's radius rather than translating it:
// a single radius_change (positive or negative tool radius, depending on
// whether the arc bulges toward or away from the requested offset side)
// is added to each endpoint's own center-distance, and each endpoint is
// scaled independently back onto the new radius. Both endpoints use the
// same radius_change, so for a true circular arc (equal start/end radii)
// this reduces to a single uniform scale. The planner skips any line cut
// whose arcs fail validate.ArcGeometry (endpoints not equidistant from
// center) before compensating it; validate.Operations reports such arcs
// as warnings and still compensates the path for its bounds check.
func offsetArcSegment(p1, p2 model.Point2D, source model.LinePoint, offset, toolRadius float64) (offsetSegment, error) {
	center := model.Point2D{X: source.ArcCenterX, Y: source.ArcCenterY}

	startAngle := math.Atan2(p1.Y-center.Y, p1.X-center.X)
	endAngle := math.Atan2(p2.Y-center.Y, p2.X-center.X)

	cw := source.ArcDirection != model.ArcDirectionCCW
	if cw {
		if startAngle < endAngle {
			startAngle += 2 * math.Pi
		}
	} else {
		if endAngle < startAngle {
			endAngle += 2 * math.Pi
		}
	}
	midAngle := (startAngle + endAngle) / 2

	radius := math.Hypot(p1.X-center.X, p1.Y-center.Y)
	midX := center.X + radius*math.Cos(midAngle)
	midY := center.Y + radius*math.Sin(midAngle)

	chordDX, chordDY := p2.X-p1.X, p2.Y-p1.Y
	toMidDX, toMidDY := midX-p1.X, midY-p1.Y
	cross := chordDX*toMidDY - chordDY*toMidDX
	bulgesLeft := cross > 0
	wantsLeft := offset > 0

	var radiusChange float64
	if bulgesLeft == wantsLeft {
		radiusChange = math.Abs(toolRadius)
	} else {
		radiusChange = -math.Abs(toolRadius)
	}

	dx1, dy1 := p1.X-center.X, p1.Y-center.Y
	dx2, dy2 := p2.X-center.X, p2.Y-center.Y
	radius1 := math.Hypot(dx1, dy1)
	radius2 := math.Hypot(dx2, dy2)

	newRadius1 := radius1 + radiusChange
	newRadius2 := radius2 + radiusChange
	if newRadius1 <= 0 || newRadius2 <= 0 {
		return offsetSegment{}, fmt.Errorf("compensate: arc radius too small for tool radius %.4f", toolRadius)
	}

	scale1, scale2 := 1.0, 1.0
	if radius1 > 0 {
		scale1 = newRadius1 / radius1
	}
	if radius2 > 0 {
		scale2 = newRadius2 / radius2
	}

	newP1 := model.Point2D{X: center.X + dx1*scale1, Y: center.Y + dy1*scale1}
	newP2 := model.Point2D{X: center.X + dx2*scale2, Y: center.Y + dy2*scale2}

	return offsetSegment{kind: segArc, start: newP1, end: newP2, center: center, source: source}, nil
}

// stitch joins consecutive offset segments at their new intersection (or
// a short straight connector, for arc-to-arc corners) to produce the
// final compensated path.
func stitch(original []model.LinePoint, segments []offsetSegment, closed bool) ([]model.LinePoint, error) {
	var out []model.LinePoint

	for i, seg := range segments {
		if i == 0 {
			first := seg.start
			if closed {
				prev := segments[len(segments)-1]
				if p, ok := jointPoint(prev, seg, true); ok {
					first = p
				}
			}
			p := original[0]
			p.X, p.Y = first.X, first.Y
			out = append(out, p)
		}

		if i < len(segments)-1 || closed {
			nextIdx := (i + 1) % len(segments)
			next := segments[nextIdx]

			if seg.kind == segArc && next.kind == segArc {
				arc1End := seg.source
				arc1End.X, arc1End.Y = seg.end.X, seg.end.Y
				out = append(out, arc1End)

				connector := model.LinePoint{X: next.start.X, Y: next.start.Y, Segment: model.SegmentStraight}
				out = append(out, connector)
				continue
			}

			corner, ok := jointPoint(seg, next, false)
			if !ok {
				corner = seg.end
			}
			p := seg.source
			p.X, p.Y = corner.X, corner.Y
			out = append(out, p)
		} else {
			p := seg.source
			p.X, p.Y = seg.end.X, seg.end.Y
			out = append(out, p)
		}
	}

	return out, nil
}

// jointPoint computes where segment a meets segment b, whichever
// combination of straight/arc they are. preferStart biases a line/circle
// intersection toward the start of b rather than its end, for the
// wrap-around joint of a closed path.
func jointPoint(a, b offsetSegment, preferStart bool) (model.Point2D, bool) {
	switch {
	case a.kind == segStraight && b.kind == segStraight:
		return lineIntersection(a.start, a.end, b.start, b.end)
	case a.kind == segArc && b.kind == segStraight:
		radius := math.Hypot(a.end.X-a.center.X, a.end.Y-a.center.Y)
		prefer := a.end
		if preferStart {
			prefer = b.start
		}
		return lineCircleIntersection(b.start, b.end, a.center, radius, prefer)
	case a.kind == segStraight && b.kind == segArc:
		radius := math.Hypot(b.start.X-b.center.X, b.start.Y-b.center.Y)
		return lineCircleIntersection(a.start, a.end, b.center, radius, b.start)
	default:
		return model.Point2D{}, false
	}
}

func lineIntersection(p1, p2, p3, p4 model.Point2D) (model.Point2D, bool) {
	denom := (p1.X-p2.X)*(p3.Y-p4.Y) - (p1.Y-p2.Y)*(p3.X-p4.X)
	if math.Abs(denom) < 1e-10 {
		return model.Point2D{}, false
	}
	t := ((p1.X-p3.X)*(p3.Y-p4.Y) - (p1.Y-p3.Y)*(p3.X-p4.X)) / denom
	return model.Point2D{X: p1.X + t*(p2.X-p1.X), Y: p1.Y + t*(p2.Y-p1.Y)}, true
}

func lineCircleIntersection(p1, p2, center model.Point2D, radius float64, preferNear model.Point2D) (model.Point2D, bool) {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	ax, ay := p1.X-center.X, p1.Y-center.Y

	a := dx*dx + dy*dy
	b := 2 * (ax*dx + ay*dy)
	c := ax*ax + ay*ay - radius*radius

	if math.Abs(a) < 1e-10 {
		return model.Point2D{}, false
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return model.Point2D{}, false
	}
	sqrtDisc := math.Sqrt(disc)
	t1 := (-b - sqrtDisc) / (2 * a)
	t2 := (-b + sqrtDisc) / (2 * a)

	cand1 := model.Point2D{X: p1.X + t1*dx, Y: p1.Y + t1*dy}
	cand2 := model.Point2D{X: p1.X + t2*dx, Y: p1.Y + t2*dy}

	d1 := cand1.Dist(preferNear)
	d2 := cand2.Dist(preferNear)
	if d1 <= d2 {
		return cand1, true
	}
	return cand2, true
}
