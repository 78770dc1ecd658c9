package planner

import (
	"fmt"

	"github.com/metafin/gpro/internal/compensate"
	"github.com/metafin/gpro/internal/gcode"
	"github.com/metafin/gpro/internal/leadin"
	"github.com/metafin/gpro/internal/model"
	"github.com/metafin/gpro/internal/multipass"
	"github.com/metafin/gpro/internal/safety"
)

// baseCuttingFeed runs the safety chain against a pass-0, non-arc,
// non-corner context to get the conservative feed rate shared by every
// repeated invocation of a factored subroutine (every pass replays the
// same body through M98 ... L<n>, so feed cannot vary by pass number).
func baseCuttingFeed(settings model.GenerationSettings, baseFeed float64) float64 {
	coord := safety.NewCoordinator(settings)
	return coord.GetAdjustedFeed(baseFeed, safety.FeedContext{PassNum: 0, IsArc: false, CornerFactor: 1})
}

func arcFeedFactorOf(settings model.GenerationSettings) float64 {
	if settings.ArcSlowdownEnabled {
		return settings.ArcFeedFactor
	}
	return 1.0
}

// zeroZRapid and safetyZRapid bracket every cut-feature subroutine
// invocation (or inlined manual-lead-in body): every cut preamble
// (CutPreamble/RampPreamble*/HelicalPreamble*) descends in relative mode
// on the assumption that Z is at 0 when it starts, and nothing retracts
// Z afterward, so the main program must do both explicitly around the
// call (spec §6 scenario B).
func zeroZRapid() string {
	z := 0.0
	return gcode.RapidMove(nil, nil, &z)
}

func safetyZRapid(safetyHeight float64) string {
	return gcode.RapidMove(nil, nil, &safetyHeight)
}

// circleGroupKey identifies a set of auto-lead-in circles that can share
// one subroutine: the body references no absolute position (only I/J
// offsets relative to the tool's current location), so it is reusable as
// long as every geometry- and lead-in-relevant field matches.
type circleGroupKey struct {
	diameter       float64
	compensation   model.CompensationMode
	holdTimeMillis int
	approachAngle  model.UserAngle
}

func planCircles(cuts []model.ExpandedCircle, proj model.Project, settings model.GenerationSettings, params model.CutParameters, totalDepth float64, alloc *gcode.Allocator, subs map[int]string) ([]string, []string) {
	var lines []string
	var warnings []string
	if len(cuts) == 0 {
		return lines, warnings
	}

	passes := multipass.Plan(totalDepth, passDepthOf(params))
	nPasses := len(passes)
	passDepth := passes[0].Increment
	feed := baseCuttingFeed(settings, params.FeedRate)
	arcFactor := arcFeedFactorOf(settings)
	name := gcode.SanitizeProjectName(proj.Name)

	groups := map[circleGroupKey]int{} // key -> subroutine number

	for _, c := range cuts {
		center := model.Point2D{X: c.CenterX, Y: c.CenterY}
		cutRadius := compensate.CircleRadius(c.Diameter, proj.Tool.Diameter, c.Compensation)
		if cutRadius <= 0 {
			warnings = append(warnings, fmt.Sprintf(
				"circle at (%.4f, %.4f) has non-positive compensated radius; skipped", center.X, center.Y))
			continue
		}

		li := leadin.Circle(settings, center, cutRadius, proj.Tool.Diameter, passDepth, c.LeadIn)
		requestedLeadIn := settings.CircleLeadInType
		if c.LeadIn.Mode == model.LeadInModeManual && c.LeadIn.Type != "" {
			requestedLeadIn = c.LeadIn.Type
		}
		if li.Kind == model.LeadInRamp && requestedLeadIn == model.LeadInRequestHelical {
			warnings = append(warnings, fmt.Sprintf(
				"circle at (%.4f, %.4f) is too small for helical lead-in; downgraded to ramp", center.X, center.Y))
		}

		var entryPoint model.Point2D
		switch li.Kind {
		case model.LeadInHelical:
			entryPoint = leadin.HelixStartPoint(li.HelixCenter, li.HelixRadius, li.ApproachAngle)
		case model.LeadInRamp:
			entryPoint = li.LeadInPoint
		default:
			entryPoint = leadin.ProfileStart(center, cutRadius, c.LeadIn.Angle())
		}

		manual := c.LeadIn.Mode == model.LeadInModeManual
		if manual {
			lines = append(lines, gcode.RapidMove(&entryPoint.X, &entryPoint.Y, nil))
			lines = append(lines, zeroZRapid())
			body := gcode.CirclePassSubroutine(cutRadius, passDepth, params.PlungeRate, feed, li, c.HoldTimeMillis, arcFactor)
			inlineBody := stripWrap(body)
			for pass := 0; pass < nPasses; pass++ {
				lines = append(lines, inlineBody...)
			}
			lines = append(lines, safetyZRapid(settings.SafetyHeight))
			continue
		}

		key := circleGroupKey{diameter: c.Diameter, compensation: c.Compensation, holdTimeMillis: c.HoldTimeMillis, approachAngle: c.LeadIn.Angle()}
		number, ok := groups[key]
		if !ok {
			number = alloc.Next("circular")
			groups[key] = number
			subs[number] = gcode.CirclePassSubroutine(cutRadius, passDepth, params.PlungeRate, feed, li, c.HoldTimeMillis, arcFactor)
		}

		lines = append(lines, gcode.RapidMove(&entryPoint.X, &entryPoint.Y, nil))
		lines = append(lines, zeroZRapid())
		path := gcode.BuildSubroutinePath(settings.GCodeBasePath, name, number)
		lines = append(lines, gcode.SubroutineCall(path, nPasses))
		lines = append(lines, safetyZRapid(settings.SafetyHeight))
	}

	return lines, warnings
}

// stripWrap removes the trailing M99/% lines a subroutine body carries,
// for the rare case (manual lead-in) where the body is inlined directly
// into the main program rather than called by reference.
func stripWrap(body string) []string {
	lines := splitLines(body)
	if n := len(lines); n >= 2 && lines[n-1] == "%" && lines[n-2] == "M99" {
		return lines[:n-2]
	}
	return lines
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}
