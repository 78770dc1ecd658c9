// Package planner orchestrates the full toolpath pipeline of spec.md §2:
// pattern expansion, tube-void filtering, validation, tool-radius
// compensation, lead-in resolution, multi-pass sequencing, and code
// emission. Generate is the single entry point; it is synchronous and
// touches no filesystem, matching the teacher's gcode.Generator shape
// (internal/gcode/generator.go's GenerateSheet/GenerateAll) generalized
// from one sheet-layout pass to the four operation families this domain
// cuts.
package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/metafin/gpro/internal/gcode"
	"github.com/metafin/gpro/internal/model"
	"github.com/metafin/gpro/internal/pattern"
	"github.com/metafin/gpro/internal/tubevoid"
	"github.com/metafin/gpro/internal/validate"
)

// Generate runs one complete generation for proj under settings, using
// cutParams to resolve spindle speed, feed rates, and stepdown for the
// project's tool. It returns the blocking errors found during validation
// (in which case GenerationResult is zero-valued) or, on success, the
// assembled main program and subroutines plus any non-blocking warnings.
func Generate(ctx context.Context, proj model.Project, settings model.GenerationSettings, cutParams model.CutParameterTable) (model.GenerationResult, []error) {
	if err := ctx.Err(); err != nil {
		return model.GenerationResult{}, []error{err}
	}

	params, errs := resolveParams(proj, cutParams)
	if len(errs) > 0 {
		return model.GenerationResult{}, errs
	}

	expanded := pattern.All(proj.Operations)
	tv := filterVoid(proj, expanded)

	vres := validate.Operations(tv.Operations, settings, proj.Tool.Diameter)
	if e := validateEmptyOperations(proj); e != nil {
		vres.Errors = append(vres.Errors, e.Error())
	}
	if proj.Type == model.ProjectCut {
		if stepErrs, stepWarns := validate.Stepdown(passDepthOf(params), proj.Tool.Diameter, settings.MaxStepdownFactor); len(stepErrs) > 0 || len(stepWarns) > 0 {
			vres.Errors = append(vres.Errors, stepErrs...)
			vres.Warnings = append(vres.Warnings, stepWarns...)
		}
		vres.Warnings = append(vres.Warnings, validate.FeedRates(params.FeedRate, params.PlungeRate)...)
		vres.Warnings = append(vres.Warnings, leadInDisabledWarnings(proj, settings)...)
	}

	if len(vres.Errors) > 0 {
		for _, e := range vres.Errors {
			errs = append(errs, fmt.Errorf("%s", e))
		}
		return model.GenerationResult{}, errs
	}

	warnings := append([]string{}, vres.Warnings...)
	warnings = append(warnings, reportSkips(tv)...)

	alloc := gcode.NewAllocator()
	var main []string
	subs := map[int]string{}

	main = append(main, gcode.Header(params.SpindleSpeed, settings.SpindleWarmupSeconds, settings.SafetyHeight)...)

	switch proj.Type {
	case model.ProjectDrill:
		lines, drillWarnings := planDrills(proj, settings, params, alloc, subs)
		main = append(main, lines...)
		warnings = append(warnings, drillWarnings...)
	case model.ProjectCut:
		totalDepth := TotalDepth(proj, settings)

		circleLines, circleWarnings := planCircles(tv.Operations.CircularCuts, proj, settings, params, totalDepth, alloc, subs)
		main = append(main, circleLines...)
		warnings = append(warnings, circleWarnings...)

		hexLines, hexWarnings := planHexagons(tv.Operations.HexagonalCuts, proj, settings, params, totalDepth, alloc, subs)
		main = append(main, hexLines...)
		warnings = append(warnings, hexWarnings...)

		lineLines, lineWarnings := planLines(tv.Operations.LineCuts, proj, settings, params, totalDepth, alloc, subs)
		main = append(main, lineLines...)
		warnings = append(warnings, lineWarnings...)
	}

	main = append(main, gcode.Footer(settings.SafetyHeight)...)

	return model.GenerationResult{
		MainProgram:          strings.Join(main, "\n"),
		Subroutines:          subs,
		SanitizedProjectName: gcode.SanitizeProjectName(proj.Name),
		Warnings:             warnings,
	}, nil
}

// resolveParams looks up the cut parameters for proj's tool and reports
// the missing-material/tool/parameter conditions that block generation
// outright, before any geometry work runs.
func resolveParams(proj model.Project, cutParams model.CutParameterTable) (model.CutParameters, []error) {
	var errs []error

	if proj.Material.Kind == "" {
		errs = append(errs, fmt.Errorf("project has no material"))
	}
	if proj.Tool.Diameter <= 0 {
		errs = append(errs, fmt.Errorf("project has no tool"))
	}
	if proj.Type == model.ProjectCut {
		if proj.Tool.Kind != model.ToolEndMill1Flute && proj.Tool.Kind != model.ToolEndMill2Flute {
			errs = append(errs, fmt.Errorf("cut project requires an end mill tool, got %q", proj.Tool.Kind))
		}
	} else if proj.Tool.Kind != model.ToolDrill {
		errs = append(errs, fmt.Errorf("drill project requires a drill tool, got %q", proj.Tool.Kind))
	}
	if len(errs) > 0 {
		return model.CutParameters{}, errs
	}

	key := model.CutParameterKey{MaterialID: proj.MaterialID, ToolKind: proj.Tool.Kind, Diameter: proj.Tool.Diameter}
	params, ok := cutParams.Lookup(key)
	if !ok {
		return model.CutParameters{}, []error{fmt.Errorf(
			"no cut parameters for material %q, tool %s, diameter %.4f", proj.MaterialID, proj.Tool.Kind, proj.Tool.Diameter)}
	}
	return params, nil
}

func validateEmptyOperations(proj model.Project) error {
	switch proj.Type {
	case model.ProjectDrill:
		if len(proj.Operations.DrillHoles) == 0 {
			return fmt.Errorf("drill project has no drill operations")
		}
	case model.ProjectCut:
		if len(proj.Operations.CircularCuts) == 0 && len(proj.Operations.HexagonalCuts) == 0 && len(proj.Operations.LineCuts) == 0 {
			return fmt.Errorf("cut project has no cut operations")
		}
	}
	return nil
}

// TotalDepth returns the total axial depth to remove: material thickness
// (or tube wall) plus whichever per-project-type allowance applies —
// drill tip compensation for drilling, the cut-through buffer for cuts.
func TotalDepth(proj model.Project, settings model.GenerationSettings) float64 {
	depth := proj.Material.MaterialDepth(proj.TubeOrientation)
	if proj.Type == model.ProjectDrill {
		return depth + proj.Tool.TipCompensation
	}
	return depth + settings.CutThroughBuffer
}

// passDepthOf dereferences a cut-parameter pass depth, defaulting to 0
// (a single pass) when unset.
func passDepthOf(params model.CutParameters) float64 {
	if params.PassDepth == nil {
		return 0
	}
	return *params.PassDepth
}

// peckingDepthOf dereferences a cut-parameter pecking depth, defaulting
// to 0 (a single peck) when unset.
func peckingDepthOf(params model.CutParameters) float64 {
	if params.PeckingDepth == nil {
		return 0
	}
	return *params.PeckingDepth
}

func filterVoid(proj model.Project, expanded model.ExpandedOperations) tubevoid.Result {
	if !proj.TubeVoidSkip || proj.Material.Kind != model.StockTube {
		return tubevoid.Result{Operations: expanded}
	}
	faceDimension := proj.Material.WorkingFaceDimension(proj.TubeOrientation)

	drillDiameter := 0.0
	endMillDiameter := 0.0
	switch proj.Type {
	case model.ProjectDrill:
		drillDiameter = proj.Tool.Diameter
	case model.ProjectCut:
		endMillDiameter = proj.Tool.Diameter
	}
	return tubevoid.Filter(expanded, proj.Material, proj.WorkingLength, faceDimension, drillDiameter, endMillDiameter)
}

// reportSkips surfaces the circles and hexagons filterVoid dropped.
// Drill skips are deliberately excluded: planDrills re-derives points from
// the raw (unexpanded) operations so it can skip a whole linear/grid
// pattern as one group, and reports those skips itself at that grain.
func reportSkips(tv tubevoid.Result) []string {
	var warnings []string
	for _, c := range tv.SkippedCircles {
		warnings = append(warnings, fmt.Sprintf("circle at (%.4f, %.4f) falls entirely inside the tube void; skipped", c.CenterX, c.CenterY))
	}
	for _, h := range tv.SkippedHexagons {
		warnings = append(warnings, fmt.Sprintf("hexagon at (%.4f, %.4f) falls entirely inside the tube void; skipped", h.CenterX, h.CenterY))
	}
	return warnings
}

func leadInDisabledWarnings(proj model.Project, settings model.GenerationSettings) []string {
	var warnings []string
	if len(proj.Operations.CircularCuts) > 0 && settings.CircleLeadInType == model.LeadInRequestNone {
		warnings = append(warnings, "lead-in is disabled for circular cuts; entries will plunge straight down")
	}
	if len(proj.Operations.HexagonalCuts) > 0 && settings.HexagonLeadInType == model.LeadInRequestNone {
		warnings = append(warnings, "lead-in is disabled for hexagonal cuts; entries will plunge straight down")
	}
	if len(proj.Operations.LineCuts) > 0 && settings.LineLeadInType == model.LeadInRequestNone {
		warnings = append(warnings, "lead-in is disabled for line cuts; entries will plunge straight down")
	}
	return warnings
}
