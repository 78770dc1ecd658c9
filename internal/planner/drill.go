package planner

import (
	"fmt"

	"github.com/metafin/gpro/internal/gcode"
	"github.com/metafin/gpro/internal/model"
	"github.com/metafin/gpro/internal/multipass"
	"github.com/metafin/gpro/internal/pattern"
	"github.com/metafin/gpro/internal/tubevoid"
)

// pecksFor returns the cumulative peck depths for a drill's total depth,
// per the multi-pass rule of spec.md §4.7: equal increments, the last one
// landing exactly on totalDepth.
func pecksFor(totalDepth, peckDepth float64) []float64 {
	passes := multipass.Plan(totalDepth, peckDepth)
	pecks := make([]float64, len(passes))
	for i, p := range passes {
		pecks[i] = p.CumulativeDepth
	}
	return pecks
}

// planDrills emits every drill operation of proj: Single points inline,
// Linear and Grid patterns factored into one shared subroutine each (a
// grid's subroutine is its row's x-axis pattern, invoked once per row).
func planDrills(proj model.Project, settings model.GenerationSettings, params model.CutParameters, alloc *gcode.Allocator, subs map[int]string) ([]string, []string) {
	totalDepth := TotalDepth(proj, settings)
	pecks := pecksFor(totalDepth, peckingDepthOf(params))
	name := gcode.SanitizeProjectName(proj.Name)

	voidActive := proj.TubeVoidSkip && proj.Material.Kind == model.StockTube
	var bounds tubevoid.Bounds
	if voidActive {
		faceDimension := proj.Material.WorkingFaceDimension(proj.TubeOrientation)
		bounds = tubevoid.BoundsOf(proj.Material, proj.WorkingLength, faceDimension)
	}
	inVoid := func(p model.Point2D) bool {
		if !voidActive {
			return false
		}
		_, skipped := tubevoid.FilterDrillPoints([]model.Point2D{p}, bounds, proj.Tool.Diameter)
		return len(skipped) > 0
	}

	var lines []string
	var warnings []string

	for _, op := range proj.Operations.DrillHoles {
		switch d := op.(type) {
		case model.SingleDrill:
			p := model.Point2D{X: d.X, Y: d.Y}
			if inVoid(p) {
				warnings = append(warnings, fmt.Sprintf("drill point (%.4f, %.4f) falls entirely inside the tube void; skipped", p.X, p.Y))
				continue
			}
			lines = append(lines, gcode.RapidMove(&p.X, &p.Y, nil))
			lines = append(lines, gcode.DrillCycleLines(pecks, params.PlungeRate, settings.TravelHeight)...)

		case model.LinearDrillPattern:
			if d.Count == 0 {
				continue
			}
			points := pattern.Linear(d.StartX, d.StartY, d.Axis, d.Spacing, d.Count)
			if allPointsInVoid(points, inVoid) {
				warnings = append(warnings, fmt.Sprintf("linear drill pattern at (%.4f, %.4f) falls entirely inside the tube void; skipped", d.StartX, d.StartY))
				continue
			}

			number := alloc.Next("drill")
			subs[number] = gcode.PeckDrillSubroutine(pecks, params.PlungeRate, settings.TravelHeight, d.Axis, d.Spacing)

			start := points[0]
			lines = append(lines, gcode.RapidMove(&start.X, &start.Y, nil))
			path := gcode.BuildSubroutinePath(settings.GCodeBasePath, name, number)
			lines = append(lines, gcode.SubroutineCall(path, d.Count))

		case model.GridDrillPattern:
			if d.XCount == 0 || d.YCount == 0 {
				continue
			}
			rows := pattern.GridRows(d.StartX, d.StartY, d.XSpacing, d.YSpacing, d.XCount, d.YCount)
			if allRowsInVoid(rows, inVoid) {
				warnings = append(warnings, fmt.Sprintf("drill grid at (%.4f, %.4f) falls entirely inside the tube void; skipped", d.StartX, d.StartY))
				continue
			}

			number := alloc.Next("drill")
			subs[number] = gcode.PeckDrillSubroutine(pecks, params.PlungeRate, settings.TravelHeight, "x", d.XSpacing)
			path := gcode.BuildSubroutinePath(settings.GCodeBasePath, name, number)

			for _, row := range rows {
				start := row[0]
				lines = append(lines, gcode.RapidMove(&start.X, &start.Y, nil))
				lines = append(lines, gcode.SubroutineCall(path, d.XCount))
			}
		}
	}

	return lines, warnings
}

func allPointsInVoid(points []model.Point2D, inVoid func(model.Point2D) bool) bool {
	for _, p := range points {
		if !inVoid(p) {
			return false
		}
	}
	return len(points) > 0
}

func allRowsInVoid(rows [][]model.Point2D, inVoid func(model.Point2D) bool) bool {
	for _, row := range rows {
		if !allPointsInVoid(row, inVoid) {
			return false
		}
	}
	return len(rows) > 0
}
