// Package leadin resolves the entry strategy for a closed or open cut:
// how far from the profile the tool starts, whether it ramps in on a
// straight plunge or spirals down with a helix, and where the helix (if
// any) joins the profile. It decides geometric feasibility; the G-code
// text for whichever strategy is chosen is built by internal/gcode.
package leadin

import (
	"math"

	"github.com/metafin/gpro/internal/model"
)

// MinHelixRadius is the smallest helix radius considered safe: below it
// the tool cannot complete a stable spiral, so helical entry is rejected
// and the resolver falls back to a ramp.
const MinHelixRadius = 0.05

// DefaultClearance is the gap kept between a helix and the profile it
// spirals inside of.
const DefaultClearance = 0.025

// fallbackLeadInDistance is used when the ramp angle or pass depth make
// the tangent calculation degenerate.
const fallbackLeadInDistance = 0.25

// Distance returns how far from the profile start the tool begins its
// ramped descent, given the ramp angle and the depth of the pass being
// entered. A shallower angle produces a longer, gentler approach.
func Distance(rampAngleDegrees, passDepth float64) float64 {
	if rampAngleDegrees <= 0 || passDepth <= 0 {
		return fallbackLeadInDistance
	}
	return passDepth / math.Tan(rampAngleDegrees*math.Pi/180)
}

// CirclePoint returns the lead-in start point for a circular cut: radially
// outward from the profile start (itself on the toolpath circle at
// approach) by leadInDistance.
func CirclePoint(center model.Point2D, cutRadius, leadInDistance float64, approach model.UserAngle) model.Point2D {
	rad := approach.Radians()
	r := cutRadius + leadInDistance
	return model.Point2D{X: center.X + r*math.Cos(rad), Y: center.Y + r*math.Sin(rad)}
}

// ProfileStart returns the point on a toolpath circle of radius cutRadius
// at the given approach angle, where cutting actually begins.
func ProfileStart(center model.Point2D, cutRadius float64, approach model.UserAngle) model.Point2D {
	rad := approach.Radians()
	return model.Point2D{X: center.X + cutRadius*math.Cos(rad), Y: center.Y + cutRadius*math.Sin(rad)}
}

// HexagonPoint returns the lead-in start point for a hexagon cut: the
// line from vertex 0 to vertex 1 extended backward by leadInDistance.
func HexagonPoint(vertices [6]model.Point2D, leadInDistance float64) model.Point2D {
	v0, v1 := vertices[0], vertices[1]
	dx, dy := v1.X-v0.X, v1.Y-v0.Y
	length := math.Hypot(dx, dy)
	if length < 1e-4 {
		return v0
	}
	dx, dy = dx/length, dy/length
	return model.Point2D{X: v0.X - dx*leadInDistance, Y: v0.Y - dy*leadInDistance}
}

// LinePoint returns the lead-in start point for a line cut. Open paths
// (or paths with no compensation) extend backward along the first
// segment's direction. Closed, compensated paths offset perpendicular
// toward the waste side instead, so the entry scar lands on scrap.
func LinePoint(path []model.LinePoint, leadInDistance float64, compensation model.CompensationMode) model.Point2D {
	if len(path) == 0 {
		return model.Point2D{}
	}
	p0 := model.Point2D{X: path[0].X, Y: path[0].Y}
	if len(path) < 2 {
		return p0
	}
	p1 := model.Point2D{X: path[1].X, Y: path[1].Y}
	dx, dy := p1.X-p0.X, p1.Y-p0.Y
	length := math.Hypot(dx, dy)
	if length < 1e-4 {
		return p0
	}
	dx, dy = dx/length, dy/length

	closed := isClosed(path)
	if closed && (compensation == model.CompensationInterior || compensation == model.CompensationExterior) {
		nx, ny := -dy, dx // left of travel direction
		w := pathWinding(path)
		ccw := w >= 0

		inside := (ccw && compensation == model.CompensationInterior) ||
			(!ccw && compensation == model.CompensationExterior)
		if !inside {
			nx, ny = -nx, -ny
		}
		return model.Point2D{X: p0.X + nx*leadInDistance, Y: p0.Y + ny*leadInDistance}
	}

	return model.Point2D{X: p0.X - dx*leadInDistance, Y: p0.Y - dy*leadInDistance}
}

func isClosed(path []model.LinePoint) bool {
	if len(path) < 2 {
		return false
	}
	first, last := path[0], path[len(path)-1]
	return math.Abs(first.X-last.X) < 1e-4 && math.Abs(first.Y-last.Y) < 1e-4
}

func pathWinding(path []model.LinePoint) float64 {
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

// HelixRadiusForCircle returns the radius of a spiral entry that fits
// inside a circular toolpath of radius cutRadius, or ok=false if the
// feature is too small for a safe helical entry.
func HelixRadiusForCircle(cutRadius, toolDiameter float64) (radius float64, ok bool) {
	toolRadius := toolDiameter / 2
	maxRadius := cutRadius - DefaultClearance
	if maxRadius < MinHelixRadius {
		return 0, false
	}
	radius = math.Min(maxRadius, toolRadius+DefaultClearance)
	if radius < MinHelixRadius {
		return 0, false
	}
	return radius, true
}

// HelixRadiusForHexagon mirrors HelixRadiusForCircle, using the hexagon's
// apothem as the inscribed-circle radius the helix must fit inside.
func HelixRadiusForHexagon(flatToFlat, toolDiameter float64, compensation model.CompensationMode) (radius float64, ok bool) {
	toolRadius := toolDiameter / 2
	apothem := flatToFlat / 2

	var available float64
	if compensation == model.CompensationInterior {
		available = apothem - toolRadius - DefaultClearance
	} else {
		available = apothem - DefaultClearance
	}
	if available < MinHelixRadius {
		return 0, false
	}
	radius = math.Min(available, toolRadius+DefaultClearance)
	if radius < MinHelixRadius {
		return 0, false
	}
	return radius, true
}

// HelixStartPoint returns the point the spiral starts at: the approach
// angle position on the helix's own (smaller) radius.
func HelixStartPoint(center model.Point2D, helixRadius float64, approach model.UserAngle) model.Point2D {
	rad := approach.Radians()
	return model.Point2D{X: center.X + helixRadius*math.Cos(rad), Y: center.Y + helixRadius*math.Sin(rad)}
}

// Revolutions returns the number of full spiral turns needed to descend
// targetDepth at helixPitch per turn (at least 1).
func Revolutions(targetDepth, helixPitch float64) int {
	if helixPitch <= 0 {
		return 1
	}
	n := int(math.Ceil(targetDepth / helixPitch))
	if n < 1 {
		return 1
	}
	return n
}

// effectiveRequest resolves the lead-in type an operation should use,
// given the process default and any per-operation override.
func effectiveRequest(settings model.LeadInRequestType, override model.LeadInSettings) model.LeadInRequestType {
	if override.Mode == model.LeadInModeManual && override.Type != "" {
		return override.Type
	}
	return settings
}

// Circle resolves the lead-in strategy for a circular cut. A helical
// request that doesn't geometrically fit falls back to a ramp.
func Circle(settings model.GenerationSettings, center model.Point2D, cutRadius, toolDiameter, passDepth float64, override model.LeadInSettings) model.LeadIn {
	approach := override.Angle()
	requested := effectiveRequest(settings.CircleLeadInType, override)

	switch requested {
	case model.LeadInRequestNone:
		return model.LeadIn{Kind: model.LeadInNone}
	case model.LeadInRequestHelical:
		if radius, ok := HelixRadiusForCircle(cutRadius, toolDiameter); ok {
			return model.LeadIn{
				Kind:                    model.LeadInHelical,
				ApproachAngle:           approach,
				HelixCenter:             center,
				HelixRadius:             radius,
				HelixPitch:              settings.HelixPitch,
				ProfileTransition:       model.TransitionArc,
				ProfileTransitionTarget: ProfileStart(center, cutRadius, approach),
			}
		}
	}

	// Ramp, or helical that didn't fit.
	dist := Distance(settings.RampAngleDegrees, passDepth)
	return model.LeadIn{
		Kind:          model.LeadInRamp,
		ApproachAngle: approach,
		LeadInPoint:   CirclePoint(center, cutRadius, dist, approach),
		Distance:      dist,
	}
}

// Hexagon resolves the lead-in strategy for a hexagonal cut. Ramp's
// default extends backward along the first edge direction; a user-
// supplied approach angle overrides this with a radial approach from the
// hexagon center instead (spec.md §4.6).
func Hexagon(settings model.GenerationSettings, vertices [6]model.Point2D, center model.Point2D, flatToFlat, toolDiameter, passDepth float64, compensation model.CompensationMode, override model.LeadInSettings) model.LeadIn {
	approach := override.Angle()
	requested := effectiveRequest(settings.HexagonLeadInType, override)

	switch requested {
	case model.LeadInRequestNone:
		return model.LeadIn{Kind: model.LeadInNone}
	case model.LeadInRequestHelical:
		if radius, ok := HelixRadiusForHexagon(flatToFlat, toolDiameter, compensation); ok {
			return model.LeadIn{
				Kind:                    model.LeadInHelical,
				ApproachAngle:           approach,
				HelixCenter:             center,
				HelixRadius:             radius,
				HelixPitch:              settings.HelixPitch,
				ProfileTransition:       model.TransitionLinear,
				ProfileTransitionTarget: vertices[0],
			}
		}
	}

	dist := Distance(settings.RampAngleDegrees, passDepth)
	var leadInPoint model.Point2D
	if override.HasAngle() {
		leadInPoint = CirclePoint(center, vertices[0].Dist(center), dist, approach)
	} else {
		leadInPoint = HexagonPoint(vertices, dist)
	}
	return model.LeadIn{
		Kind:          model.LeadInRamp,
		ApproachAngle: approach,
		LeadInPoint:   leadInPoint,
		Distance:      dist,
	}
}

// Line resolves the lead-in strategy for a line cut. Line cuts have no
// helical option: a helical request is downgraded to a ramp, since a
// helix has nowhere to center itself on an open or arbitrary profile. A
// user-supplied approach angle overrides both of LinePoint's default
// directions (edge-backward and waste-side-perpendicular) with a straight
// approach from that angle (spec.md §4.6).
func Line(settings model.GenerationSettings, path []model.LinePoint, passDepth float64, compensation model.CompensationMode, override model.LeadInSettings) model.LeadIn {
	requested := effectiveRequest(settings.LineLeadInType, override)
	if requested == model.LeadInRequestNone {
		return model.LeadIn{Kind: model.LeadInNone}
	}

	dist := Distance(settings.RampAngleDegrees, passDepth)
	approach := override.Angle()

	var leadInPoint model.Point2D
	if override.HasAngle() && len(path) > 0 {
		profileStart := model.Point2D{X: path[0].X, Y: path[0].Y}
		leadInPoint = CirclePoint(profileStart, 0, dist, approach)
	} else {
		leadInPoint = LinePoint(path, dist, compensation)
	}

	return model.LeadIn{
		Kind:          model.LeadInRamp,
		ApproachAngle: approach,
		LeadInPoint:   leadInPoint,
		Distance:      dist,
	}
}
