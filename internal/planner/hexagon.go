package planner

import (
	"fmt"

	"github.com/metafin/gpro/internal/gcode"
	"github.com/metafin/gpro/internal/hexagon"
	"github.com/metafin/gpro/internal/leadin"
	"github.com/metafin/gpro/internal/model"
	"github.com/metafin/gpro/internal/multipass"
)

// planHexagons emits one subroutine per hexagon instance: unlike circles,
// a hexagon's profile moves are absolute vertex coordinates, so two
// instances at different centers can never share a body (spec.md §4.10).
func planHexagons(cuts []model.ExpandedHexagon, proj model.Project, settings model.GenerationSettings, params model.CutParameters, totalDepth float64, alloc *gcode.Allocator, subs map[int]string) ([]string, []string) {
	var lines []string
	var warnings []string
	if len(cuts) == 0 {
		return lines, warnings
	}

	passes := multipass.Plan(totalDepth, passDepthOf(params))
	nPasses := len(passes)
	passDepth := passes[0].Increment
	feed := baseCuttingFeed(settings, params.FeedRate)
	name := gcode.SanitizeProjectName(proj.Name)

	for _, h := range cuts {
		center := model.Point2D{X: h.CenterX, Y: h.CenterY}
		verts := hexagon.CompensatedVertices(h.CenterX, h.CenterY, h.FlatToFlat, proj.Tool.Diameter, h.Compensation)

		li := leadin.Hexagon(settings, verts, center, h.FlatToFlat, proj.Tool.Diameter, passDepth, h.Compensation, h.LeadIn)
		requestedLeadIn := settings.HexagonLeadInType
		if h.LeadIn.Mode == model.LeadInModeManual && h.LeadIn.Type != "" {
			requestedLeadIn = h.LeadIn.Type
		}
		if li.Kind == model.LeadInRamp && requestedLeadIn == model.LeadInRequestHelical {
			warnings = append(warnings, fmt.Sprintf(
				"hexagon at (%.4f, %.4f) is too small for helical lead-in; downgraded to ramp", center.X, center.Y))
		}

		var entryPoint model.Point2D
		switch li.Kind {
		case model.LeadInHelical:
			entryPoint = leadin.HelixStartPoint(li.HelixCenter, li.HelixRadius, li.ApproachAngle)
		case model.LeadInRamp:
			entryPoint = li.LeadInPoint
		default:
			entryPoint = verts[0]
		}

		number := alloc.Next("hexagonal")
		subs[number] = gcode.HexagonPassSubroutine(verts, passDepth, params.PlungeRate, feed, li, h.HoldTimeMillis, arcFeedFactorOf(settings))

		lines = append(lines, gcode.RapidMove(&entryPoint.X, &entryPoint.Y, nil))
		lines = append(lines, zeroZRapid())
		path := gcode.BuildSubroutinePath(settings.GCodeBasePath, name, number)
		lines = append(lines, gcode.SubroutineCall(path, nPasses))
		lines = append(lines, safetyZRapid(settings.SafetyHeight))
	}

	return lines, warnings
}
