// Package tubevoid filters operations that fall entirely inside the
// hollow center of tube stock laid flat. Drilling or cutting into the
// void wastes a move (and on some fixtures, crashes the tool into open
// air); those operations are silently dropped rather than attempted.
package tubevoid

import "github.com/metafin/gpro/internal/model"

// hexagonCircumradiusFactor converts a point-up hexagon's flat-to-flat
// distance to its circumradius, the distance from center to the farthest
// vertex.
const hexagonCircumradiusFactor = 1.7320508075688772 // sqrt(3)

// Bounds is the void's rectangle, in the working face's coordinate space.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// BoundsOf computes the void rectangle for tube stock laid flat over a
// working rectangle of workingLength x faceDimension. Only meaningful
// when stock.Kind == model.StockTube.
func BoundsOf(stock model.Stock, workingLength, faceDimension float64) Bounds {
	minX, minY, maxX, maxY := stock.VoidBounds(workingLength, faceDimension)
	return Bounds{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// pointInVoid reports whether a point, inflated by toolRadius in every
// direction, falls entirely inside the void.
func pointInVoid(x, y float64, b Bounds, toolRadius float64) bool {
	return x-toolRadius > b.MinX &&
		x+toolRadius < b.MaxX &&
		y-toolRadius > b.MinY &&
		y+toolRadius < b.MaxY
}

// FilterDrillPoints splits drill points into those on material and those
// that fall entirely in the void.
func FilterDrillPoints(points []model.Point2D, b Bounds, toolDiameter float64) (valid, skipped []model.Point2D) {
	toolRadius := toolDiameter / 2
	for _, p := range points {
		if pointInVoid(p.X, p.Y, b, toolRadius) {
			skipped = append(skipped, p)
		} else {
			valid = append(valid, p)
		}
	}
	return valid, skipped
}

// FilterCircles splits circular cuts into those on material and those
// whose full outer diameter lies entirely in the void.
func FilterCircles(cuts []model.ExpandedCircle, b Bounds, toolDiameter float64) (valid, skipped []model.ExpandedCircle) {
	for _, c := range cuts {
		cutOuterRadius := c.Diameter / 2
		if pointInVoid(c.CenterX, c.CenterY, b, cutOuterRadius) {
			skipped = append(skipped, c)
		} else {
			valid = append(valid, c)
		}
	}
	return valid, skipped
}

// FilterHexagons splits hexagonal cuts into those on material and those
// whose circumscribed circle lies entirely in the void.
func FilterHexagons(cuts []model.ExpandedHexagon, b Bounds, toolDiameter float64) (valid, skipped []model.ExpandedHexagon) {
	for _, c := range cuts {
		circumradius := c.FlatToFlat / hexagonCircumradiusFactor
		if pointInVoid(c.CenterX, c.CenterY, b, circumradius) {
			skipped = append(skipped, c)
		} else {
			valid = append(valid, c)
		}
	}
	return valid, skipped
}

// Result is an ExpandedOperations set with void-filtered operations
// removed, plus the operations that were dropped for reporting.
type Result struct {
	Operations      model.ExpandedOperations
	SkippedDrills   []model.Point2D
	SkippedCircles  []model.ExpandedCircle
	SkippedHexagons []model.ExpandedHexagon
}

// Filter removes void-only operations from ops for tube stock. Sheet
// stock is returned unfiltered: voids only exist in tube material. Line
// cuts are never filtered; a line cut that wanders into the void is a
// design error the operator needs to see, not silently drop.
func Filter(ops model.ExpandedOperations, stock model.Stock, workingLength, faceDimension, drillDiameter, endMillDiameter float64) Result {
	if stock.Kind != model.StockTube {
		return Result{Operations: ops}
	}

	b := BoundsOf(stock, workingLength, faceDimension)
	result := Result{Operations: model.ExpandedOperations{LineCuts: ops.LineCuts}}

	if drillDiameter > 0 {
		valid, skipped := FilterDrillPoints(ops.DrillPoints, b, drillDiameter)
		result.Operations.DrillPoints = valid
		result.SkippedDrills = skipped
	} else {
		result.Operations.DrillPoints = ops.DrillPoints
	}

	if endMillDiameter > 0 {
		validCircles, skippedCircles := FilterCircles(ops.CircularCuts, b, endMillDiameter)
		result.Operations.CircularCuts = validCircles
		result.SkippedCircles = skippedCircles

		validHexes, skippedHexes := FilterHexagons(ops.HexagonalCuts, b, endMillDiameter)
		result.Operations.HexagonalCuts = validHexes
		result.SkippedHexagons = skippedHexes
	} else {
		result.Operations.CircularCuts = ops.CircularCuts
		result.Operations.HexagonalCuts = ops.HexagonalCuts
	}

	return result
}
