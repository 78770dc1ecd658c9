// Package pattern expands a project's drill, circular-cut, and
// hexagonal-cut operations (single features or linear/grid patterns) into
// flat per-feature coordinate lists that downstream stages operate on
// without having to special-case pattern shapes again.
package pattern

import (
	"fmt"
	"strings"

	"github.com/metafin/gpro/internal/model"
)

// Linear expands a linear pattern starting at (startX, startY) into count
// points spaced along axis ("x" or "y", case-insensitive; anything else is
// treated as "y").
func Linear(startX, startY float64, axis string, spacing float64, count int) []model.Point2D {
	points := make([]model.Point2D, 0, count)
	onX := strings.EqualFold(axis, "x")
	for i := 0; i < count; i++ {
		if onX {
			points = append(points, model.Point2D{X: startX + float64(i)*spacing, Y: startY})
		} else {
			points = append(points, model.Point2D{X: startX, Y: startY + float64(i)*spacing})
		}
	}
	return points
}

// Grid expands a grid pattern into xCount*yCount points, generated row by
// row (Y-major order) starting at (startX, startY).
func Grid(startX, startY, xSpacing, ySpacing float64, xCount, yCount int) []model.Point2D {
	points := make([]model.Point2D, 0, xCount*yCount)
	for row := 0; row < yCount; row++ {
		for col := 0; col < xCount; col++ {
			points = append(points, model.Point2D{
				X: startX + float64(col)*xSpacing,
				Y: startY + float64(row)*ySpacing,
			})
		}
	}
	return points
}

// GridRows is like Grid but preserves row boundaries, needed by the
// subroutine factoring that emits one subroutine per drill-grid row.
func GridRows(startX, startY, xSpacing, ySpacing float64, xCount, yCount int) [][]model.Point2D {
	rows := make([][]model.Point2D, yCount)
	for row := 0; row < yCount; row++ {
		points := make([]model.Point2D, xCount)
		for col := 0; col < xCount; col++ {
			points[col] = model.Point2D{
				X: startX + float64(col)*xSpacing,
				Y: startY + float64(row)*ySpacing,
			}
		}
		rows[row] = points
	}
	return rows
}

// Drills expands every drill operation into a flat list of drill points.
func Drills(ops []model.DrillOperation) []model.Point2D {
	var points []model.Point2D
	for _, op := range ops {
		switch d := op.(type) {
		case model.SingleDrill:
			points = append(points, model.Point2D{X: d.X, Y: d.Y})
		case model.LinearDrillPattern:
			points = append(points, Linear(d.StartX, d.StartY, d.Axis, d.Spacing, d.Count)...)
		case model.GridDrillPattern:
			points = append(points, Grid(d.StartX, d.StartY, d.XSpacing, d.YSpacing, d.XCount, d.YCount)...)
		default:
			panic(fmt.Sprintf("pattern: unhandled drill operation %T", op))
		}
	}
	return points
}

// Circles expands every circular-cut operation into a flat list of
// individual circles, each carrying its own compensation and lead-in
// settings forward from the pattern that produced it.
func Circles(ops []model.CircularCutOperation) []model.ExpandedCircle {
	var out []model.ExpandedCircle
	for _, op := range ops {
		switch c := op.(type) {
		case model.SingleCircle:
			out = append(out, model.ExpandedCircle{
				CenterX: c.CenterX, CenterY: c.CenterY,
				Diameter:     c.Diameter,
				Compensation: c.Compensation,
				LeadIn:       c.LeadIn,
				HoldTimeMillis: c.LeadIn.HoldTimeMillis,
			})
		case model.LinearCirclePattern:
			centers := Linear(c.StartCenterX, c.StartCenterY, c.Axis, c.Spacing, c.Count)
			for _, center := range centers {
				out = append(out, model.ExpandedCircle{
					CenterX: center.X, CenterY: center.Y,
					Diameter:       c.Diameter,
					Compensation:   c.Compensation,
					LeadIn:         c.LeadIn,
					HoldTimeMillis: c.LeadIn.HoldTimeMillis,
				})
			}
		default:
			panic(fmt.Sprintf("pattern: unhandled circular cut operation %T", op))
		}
	}
	return out
}

// Hexagons expands every hexagonal-cut operation into a flat list of
// individual hexagons.
func Hexagons(ops []model.HexagonalCutOperation) []model.ExpandedHexagon {
	var out []model.ExpandedHexagon
	for _, op := range ops {
		switch h := op.(type) {
		case model.SingleHexagon:
			out = append(out, model.ExpandedHexagon{
				CenterX: h.CenterX, CenterY: h.CenterY,
				FlatToFlat:     h.FlatToFlat,
				Compensation:   h.Compensation,
				LeadIn:         h.LeadIn,
				HoldTimeMillis: h.LeadIn.HoldTimeMillis,
			})
		case model.LinearHexagonPattern:
			centers := Linear(h.StartCenterX, h.StartCenterY, h.Axis, h.Spacing, h.Count)
			for _, center := range centers {
				out = append(out, model.ExpandedHexagon{
					CenterX: center.X, CenterY: center.Y,
					FlatToFlat:     h.FlatToFlat,
					Compensation:   h.Compensation,
					LeadIn:         h.LeadIn,
					HoldTimeMillis: h.LeadIn.HoldTimeMillis,
				})
			}
		default:
			panic(fmt.Sprintf("pattern: unhandled hexagonal cut operation %T", op))
		}
	}
	return out
}

// All expands a project's full operation set. Line cuts pass through
// unchanged; they carry no pattern type to expand.
func All(ops model.Operations) model.ExpandedOperations {
	return model.ExpandedOperations{
		DrillPoints:   Drills(ops.DrillHoles),
		CircularCuts:  Circles(ops.CircularCuts),
		HexagonalCuts: Hexagons(ops.HexagonalCuts),
		LineCuts:      ops.LineCuts,
	}
}
