package planner

import (
	"fmt"

	"github.com/metafin/gpro/internal/compensate"
	"github.com/metafin/gpro/internal/corner"
	"github.com/metafin/gpro/internal/gcode"
	"github.com/metafin/gpro/internal/leadin"
	"github.com/metafin/gpro/internal/model"
	"github.com/metafin/gpro/internal/multipass"
	"github.com/metafin/gpro/internal/safety"
	"github.com/metafin/gpro/internal/validate"
)

// planLines emits one subroutine per line cut, invoked once with
// L=nPasses — every pass shares the same compensated geometry, corner
// annotations, and feed schedule.
func planLines(cuts []model.LineCut, proj model.Project, settings model.GenerationSettings, params model.CutParameters, totalDepth float64, alloc *gcode.Allocator, subs map[int]string) ([]string, []string) {
	var lines []string
	var warnings []string
	if len(cuts) == 0 {
		return lines, warnings
	}

	passes := multipass.Plan(totalDepth, passDepthOf(params))
	nPasses := len(passes)
	passDepth := passes[0].Increment
	name := gcode.SanitizeProjectName(proj.Name)
	coord := safety.NewCoordinator(settings)

	for idx, cut := range cuts {
		if arcWarnings := validate.ArcGeometry(cut.Points, validate.DefaultArcTolerance); len(arcWarnings) > 0 {
			warnings = append(warnings, arcWarnings...)
			warnings = append(warnings, fmt.Sprintf("line cut #%d skipped: invalid arc geometry", idx))
			continue
		}

		compensated, err := compensate.Line(cut.Points, proj.Tool.Diameter, cut.Compensation)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line cut #%d skipped: %v", idx, err))
			continue
		}
		if len(compensated) == 0 {
			continue
		}

		li := leadin.Line(settings, compensated, passDepth, cut.Compensation, cut.LeadIn)
		requestedLeadIn := settings.LineLeadInType
		if cut.LeadIn.Mode == model.LeadInModeManual && cut.LeadIn.Type != "" {
			requestedLeadIn = cut.LeadIn.Type
		}
		if li.Kind == model.LeadInRamp && requestedLeadIn == model.LeadInRequestHelical {
			warnings = append(warnings, fmt.Sprintf("line cut #%d requested helical lead-in, which lines do not support; downgraded to ramp", idx))
		}

		var entryPoint model.Point2D
		if li.Kind == model.LeadInRamp {
			entryPoint = li.LeadInPoint
		} else {
			entryPoint = model.Point2D{X: compensated[0].X, Y: compensated[0].Y}
		}

		feeds := lineMoveFeeds(compensated, settings, params.FeedRate, coord)

		number := alloc.Next("line")
		subs[number] = gcode.LinePassSubroutineVariableFeed(compensated, feeds, passDepth, params.PlungeRate, li, cut.LeadIn.HoldTimeMillis)

		lines = append(lines, gcode.RapidMove(&entryPoint.X, &entryPoint.Y, nil))
		lines = append(lines, zeroZRapid())
		path := gcode.BuildSubroutinePath(settings.GCodeBasePath, name, number)
		lines = append(lines, gcode.SubroutineCall(path, nPasses))
		lines = append(lines, safetyZRapid(settings.SafetyHeight))
	}

	return lines, warnings
}

// lineMoveFeeds computes the safety-chain-adjusted feed rate for the
// segment arriving at each point of a compensated path: corner severity
// from internal/corner, arc slowdown for arc segments, and the
// conservative first-pass factor applied uniformly (see baseCuttingFeed).
func lineMoveFeeds(path []model.LinePoint, settings model.GenerationSettings, baseFeed float64, coord *safety.Coordinator) []float64 {
	cornerFactors := corner.FeedFactorsByIndex(path, corner.DefaultAngleThreshold)

	feeds := make([]float64, len(path))
	for i := 1; i < len(path); i++ {
		factor := cornerFactors[i]
		if factor == 0 {
			factor = 1.0
		}
		ctx := safety.FeedContext{
			PassNum:      0,
			IsArc:        path[i].Segment == model.SegmentArc,
			CornerFactor: factor,
		}
		feeds[i] = coord.GetAdjustedFeed(baseFeed, ctx)
	}
	return feeds
}
