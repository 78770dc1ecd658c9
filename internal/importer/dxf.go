package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/metafin/gpro/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// DXFResult holds the operations recovered from a DXF drawing: standalone
// CIRCLE entities become circular cuts, everything else (LWPOLYLINE,
// chained LINE/ARC entities) becomes line-cut paths carrying native arc
// segments — the arcs are kept as arcs rather than flattened to polylines,
// since the planner compensates and emits them directly.
type DXFResult struct {
	Circles  []model.SingleCircle
	Lines    []model.LineCut
	Errors   []string
	Warnings []string
}

// segment is an intermediate straight-or-arc edge used to chain loose
// LINE/ARC entities into a single ordered path before it becomes a LineCut.
type segment struct {
	start, end model.Point2D
	arc        bool
	centerX    float64
	centerY    float64
	direction  model.ArcDirectionHint
}

// ImportDXF reads path and recovers circular cuts and line-cut paths from
// its entities. LWPOLYLINE vertices with a nonzero bulge become arc
// segments; standalone LINE and ARC entities are chained end-to-end into
// closed or open paths by shared endpoints.
func ImportDXF(path string) DXFResult {
	result := DXFResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var segments []segment
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			points, ok := lwPolylineToLineCut(e)
			if !ok {
				result.Warnings = append(result.Warnings, "skipped LWPOLYLINE with fewer than 2 vertices")
				continue
			}
			result.Lines = append(result.Lines, model.LineCut{Points: points, Compensation: model.CompensationNone})

		case *entity.Circle:
			result.Circles = append(result.Circles, model.SingleCircle{
				CenterX: e.Center[0], CenterY: e.Center[1],
				Diameter: 2 * e.Radius, Compensation: model.CompensationNone,
			})

		case *entity.Arc:
			cx, cy, r := e.Circle.Center[0], e.Circle.Center[1], e.Circle.Radius
			startRad := e.Angle[0] * math.Pi / 180
			endRad := e.Angle[1] * math.Pi / 180
			segments = append(segments, segment{
				start: model.Point2D{X: cx + r*math.Cos(startRad), Y: cy + r*math.Sin(startRad)},
				end:   model.Point2D{X: cx + r*math.Cos(endRad), Y: cy + r*math.Sin(endRad)},
				arc:   true, centerX: cx, centerY: cy, direction: model.ArcDirectionCCW,
			})

		case *entity.Line:
			segments = append(segments, segment{
				start: model.Point2D{X: e.Start[0], Y: e.Start[1]},
				end:   model.Point2D{X: e.End[0], Y: e.End[1]},
			})

		default:
			// unsupported entity types are silently skipped
		}
	}

	for _, path := range chainSegments(segments, 1e-3) {
		result.Lines = append(result.Lines, model.LineCut{Points: path, Compensation: model.CompensationNone})
	}

	if len(result.Circles) == 0 && len(result.Lines) == 0 {
		result.Errors = append(result.Errors, "no drillable or cuttable geometry found in DXF file")
	}

	return result
}

// lwPolylineToLineCut converts a DXF LWPOLYLINE's vertices into a LineCut
// point sequence. A nonzero bulge on vertex i marks the edge from vertex i
// to vertex i+1 as an arc, computing its center from the bulge the way a
// DXF consumer must: bulge is the tangent of one quarter of the included
// angle, signed by sweep direction.
func lwPolylineToLineCut(lw *entity.LwPolyline) ([]model.LinePoint, bool) {
	n := len(lw.Vertices)
	if n < 2 {
		return nil, false
	}

	points := make([]model.LinePoint, 0, n)
	for i, v := range lw.Vertices {
		p := model.LinePoint{X: v[0], Y: v[1], Segment: model.SegmentStraight}
		if i > 0 {
			bulge := 0.0
			if i-1 < len(lw.Bulges) {
				bulge = lw.Bulges[i-1]
			}
			if math.Abs(bulge) > 1e-9 {
				prev := lw.Vertices[i-1]
				cx, cy, dir, ok := bulgeCenter(
					model.Point2D{X: prev[0], Y: prev[1]},
					model.Point2D{X: v[0], Y: v[1]}, bulge)
				if ok {
					p.Segment = model.SegmentArc
					p.ArcCenterX, p.ArcCenterY, p.ArcDirection = cx, cy, dir
				}
			}
		}
		points = append(points, p)
	}
	return points, true
}

// bulgeCenter computes the arc center and sweep direction for a DXF bulge
// value between two known endpoints. Bulge is tan(includedAngle/4); its
// sign gives the turn direction (positive = CCW).
func bulgeCenter(p1, p2 model.Point2D, bulge float64) (cx, cy float64, dir model.ArcDirectionHint, ok bool) {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	chordLen := math.Sqrt(dx*dx + dy*dy)
	if chordLen < 1e-9 {
		return 0, 0, "", false
	}
	mx, my := (p1.X+p2.X)/2, (p1.Y+p2.Y)/2
	sagitta := math.Abs(bulge) * chordLen / 2
	radius := (chordLen*chordLen/(4*sagitta) + sagitta) / 2

	perpX, perpY := -dy/chordLen, dx/chordLen
	dist := radius - sagitta
	if bulge < 0 {
		perpX, perpY = -perpX, -perpY
	}
	dir = model.ArcDirectionCCW
	if bulge < 0 {
		dir = model.ArcDirectionCW
	}
	return mx + perpX*dist, my + perpY*dist, dir, true
}

// chainSegments connects individual straight/arc segments into ordered
// paths by shared endpoints, within tolerance. Each returned path is a
// LineCut point sequence starting at the chain's first segment's start.
func chainSegments(segs []segment, tolerance float64) [][]model.LinePoint {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var paths [][]model.LinePoint

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []model.LinePoint{segToStartPoint(segs[startIdx])}
		chain = append(chain, segToEndPoint(segs[startIdx]))
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := model.Point2D{X: chain[len(chain)-1].X, Y: chain[len(chain)-1].Y}

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, segToEndPoint(seg))
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, segToEndPoint(reverseSegment(seg)))
					used[i] = true
					changed = true
					break
				}
			}
		}

		if len(chain) >= 2 {
			paths = append(paths, chain)
		}
	}

	sort.Slice(paths, func(i, j int) bool { return len(paths[i]) > len(paths[j]) })
	return paths
}

func reverseSegment(s segment) segment {
	s.start, s.end = s.end, s.start
	if s.arc {
		if s.direction == model.ArcDirectionCW {
			s.direction = model.ArcDirectionCCW
		} else {
			s.direction = model.ArcDirectionCW
		}
	}
	return s
}

func segToStartPoint(s segment) model.LinePoint {
	return model.LinePoint{X: s.start.X, Y: s.start.Y, Segment: model.SegmentStraight}
}

func segToEndPoint(s segment) model.LinePoint {
	p := model.LinePoint{X: s.end.X, Y: s.end.Y, Segment: model.SegmentStraight}
	if s.arc {
		p.Segment = model.SegmentArc
		p.ArcCenterX, p.ArcCenterY, p.ArcDirection = s.centerX, s.centerY, s.direction
	}
	return p
}

func pointsClose(a, b model.Point2D, tolerance float64) bool {
	return a.Dist(b) <= tolerance
}
