// Package validate checks a project's operations against machine travel
// limits and tool physics before generation runs, and checks arc geometry
// that later stages (internal/compensate in particular) assume holds.
// Problems are split into Errors, which block generation, and Warnings,
// which are surfaced to the operator but do not stop it.
package validate

import (
	"fmt"
	"math"

	"github.com/metafin/gpro/internal/compensate"
	"github.com/metafin/gpro/internal/model"
)

// Result collects everything found while validating one project.
type Result struct {
	Errors   []string
	Warnings []string
}

// OK reports whether no blocking errors were found.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// InBounds reports whether (x, y) is within machine travel.
func InBounds(x, y, maxX, maxY float64) bool {
	return x >= 0 && x <= maxX && y >= 0 && y <= maxY
}

// Points appends one error per coordinate that falls outside machine
// travel. allowNegative suppresses the negative-coordinate checks (spec.md
// §4.3's toggle for exterior cuts that straddle the origin); the max-travel
// checks still apply unconditionally.
func Points(points []model.Point2D, maxX, maxY float64, allowNegative bool) []string {
	var errs []string
	for _, p := range points {
		if p.X < 0 && !allowNegative {
			errs = append(errs, fmt.Sprintf("point (%.4f, %.4f) has negative X coordinate", p.X, p.Y))
		} else if p.X > maxX {
			errs = append(errs, fmt.Sprintf("point (%.4f, %.4f) exceeds max X (%.4f)", p.X, p.Y, maxX))
		}
		if p.Y < 0 && !allowNegative {
			errs = append(errs, fmt.Sprintf("point (%.4f, %.4f) has negative Y coordinate", p.X, p.Y))
		} else if p.Y > maxY {
			errs = append(errs, fmt.Sprintf("point (%.4f, %.4f) exceeds max Y (%.4f)", p.X, p.Y, maxY))
		}
	}
	return errs
}

// CircleBounds appends one error per edge of a circular cut that falls
// outside machine travel. allowNegative suppresses the below-origin checks;
// see Points.
func CircleBounds(center model.Point2D, diameter, maxX, maxY float64, allowNegative bool) []string {
	var errs []string
	radius := diameter / 2
	if center.X-radius < 0 && !allowNegative {
		errs = append(errs, fmt.Sprintf("circle at (%.4f, %.4f) extends past X=0", center.X, center.Y))
	}
	if center.X+radius > maxX {
		errs = append(errs, fmt.Sprintf("circle at (%.4f, %.4f) extends past X=%.4f", center.X, center.Y, maxX))
	}
	if center.Y-radius < 0 && !allowNegative {
		errs = append(errs, fmt.Sprintf("circle at (%.4f, %.4f) extends past Y=0", center.X, center.Y))
	}
	if center.Y+radius > maxY {
		errs = append(errs, fmt.Sprintf("circle at (%.4f, %.4f) extends past Y=%.4f", center.X, center.Y, maxY))
	}
	return errs
}

// HexagonBounds appends one error per edge of a hexagonal cut that falls
// outside machine travel. A point-up hexagon's X extent is its apothem;
// its Y extent is the farther-reaching circumradius. allowNegative
// suppresses the below-origin checks; see Points.
func HexagonBounds(center model.Point2D, flatToFlat, maxX, maxY float64, allowNegative bool) []string {
	var errs []string
	apothem := flatToFlat / 2
	circumradius := flatToFlat / math.Sqrt(3)

	if center.X-apothem < 0 && !allowNegative {
		errs = append(errs, fmt.Sprintf("hexagon at (%.4f, %.4f) extends past X=0", center.X, center.Y))
	}
	if center.X+apothem > maxX {
		errs = append(errs, fmt.Sprintf("hexagon at (%.4f, %.4f) extends past X=%.4f", center.X, center.Y, maxX))
	}
	if center.Y-circumradius < 0 && !allowNegative {
		errs = append(errs, fmt.Sprintf("hexagon at (%.4f, %.4f) extends past Y=0", center.X, center.Y))
	}
	if center.Y+circumradius > maxY {
		errs = append(errs, fmt.Sprintf("hexagon at (%.4f, %.4f) extends past Y=%.4f", center.X, center.Y, maxY))
	}
	return errs
}

// DefaultArcTolerance is the maximum allowed difference between an arc's
// start and end radii before its geometry is considered invalid.
const DefaultArcTolerance = 0.001

// ArcGeometry warns about any arc segment whose endpoints are not
// equidistant from the declared center. internal/compensate's
// single-radius-change offset method is only correct for a true circular
// arc; an inconsistent arc silently produces a discontinuous compensated
// path, so this check runs ahead of compensation rather than after it.
func ArcGeometry(path []model.LinePoint, tolerance float64) []string {
	var warnings []string
	for i, point := range path {
		if point.Segment != model.SegmentArc {
			continue
		}
		if i == 0 {
			warnings = append(warnings, fmt.Sprintf("arc at point %d cannot be the first point in a path", i))
			continue
		}
		start := path[i-1]
		center := model.Point2D{X: point.ArcCenterX, Y: point.ArcCenterY}
		startRadius := model.Point2D{X: start.X, Y: start.Y}.Dist(center)
		endRadius := model.Point2D{X: point.X, Y: point.Y}.Dist(center)

		diff := math.Abs(startRadius - endRadius)
		if diff > tolerance {
			warnings = append(warnings, fmt.Sprintf(
				"arc from (%.4f, %.4f) to (%.4f, %.4f) has invalid geometry: start is %.4f from center (%.4f, %.4f), end is %.4f; difference of %.4f exceeds tolerance %.4f and will cause a discontinuity in the compensated path",
				start.X, start.Y, point.X, point.Y, startRadius, center.X, center.Y, endRadius, diff, tolerance,
			))
		}
	}
	return warnings
}

// Stepdown checks a pass depth against tool diameter: exceeding the tool
// diameter is an error (it will almost certainly break the tool);
// exceeding maxStepdownFactor of the diameter is a warning.
func Stepdown(passDepth, toolDiameter, maxStepdownFactor float64) (errs, warnings []string) {
	if passDepth <= 0 || toolDiameter <= 0 {
		return nil, nil
	}
	ratio := passDepth / toolDiameter
	switch {
	case ratio > 1.0:
		errs = append(errs, fmt.Sprintf(
			"pass depth (%.4f) exceeds tool diameter (%.4f); this will almost certainly break the end mill",
			passDepth, toolDiameter))
	case ratio > maxStepdownFactor:
		warnings = append(warnings, fmt.Sprintf(
			"pass depth (%.4f) is %.0f%% of tool diameter (%.4f); recommended maximum is %.0f%%",
			passDepth, ratio*100, toolDiameter, maxStepdownFactor*100))
	}
	return errs, warnings
}

// FeedRates warns when plunge rate exceeds cutting feed rate, which is
// usually unintentional.
func FeedRates(feedRate, plungeRate float64) []string {
	if plungeRate > feedRate {
		return []string{fmt.Sprintf(
			"plunge rate (%.1f) exceeds feed rate (%.1f); verify this is intentional", plungeRate, feedRate)}
	}
	return nil
}

// Operations runs every bounds and geometry check across a project's
// expanded operations. toolDiameter is used to compensate each line cut's
// path before checking its bounds: spec.md §4.3 defines a line cut's
// travel extent as the bounding box of the compensated path, not the
// drawn one, since compensation can push the actual toolpath outside the
// drawn geometry's bounds.
func Operations(ops model.ExpandedOperations, settings model.GenerationSettings, toolDiameter float64) Result {
	var r Result
	allowNegative := settings.AllowNegativeCoordinates

	r.Errors = append(r.Errors, Points(ops.DrillPoints, settings.MaxX, settings.MaxY, allowNegative)...)

	for _, c := range ops.CircularCuts {
		r.Errors = append(r.Errors, CircleBounds(model.Point2D{X: c.CenterX, Y: c.CenterY}, c.Diameter, settings.MaxX, settings.MaxY, allowNegative)...)
	}
	for _, h := range ops.HexagonalCuts {
		r.Errors = append(r.Errors, HexagonBounds(model.Point2D{X: h.CenterX, Y: h.CenterY}, h.FlatToFlat, settings.MaxX, settings.MaxY, allowNegative)...)
	}
	for _, lc := range ops.LineCuts {
		r.Warnings = append(r.Warnings, ArcGeometry(lc.Points, DefaultArcTolerance)...)

		path := lc.Points
		if compensated, err := compensate.Line(lc.Points, toolDiameter, lc.Compensation); err == nil && len(compensated) > 0 {
			path = compensated
		}
		r.Errors = append(r.Errors, Points(pathPoints(path), settings.MaxX, settings.MaxY, allowNegative)...)
	}

	return r
}

func pathPoints(path []model.LinePoint) []model.Point2D {
	points := make([]model.Point2D, len(path))
	for i, p := range path {
		points[i] = model.Point2D{X: p.X, Y: p.Y}
	}
	return points
}
