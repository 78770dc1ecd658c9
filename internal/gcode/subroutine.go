package gcode

import (
	"fmt"
	"math"
	"strings"

	"github.com/metafin/gpro/internal/arcmath"
	"github.com/metafin/gpro/internal/leadin"
	"github.com/metafin/gpro/internal/model"
)

// subroutineRanges is the file-number range reserved for each operation
// family, so a program's subroutines sort together by kind.
var subroutineRanges = map[string][2]int{
	"drill":     {1000, 1099},
	"circular":  {1100, 1199},
	"hexagonal": {1200, 1299},
	"line":      {1300, 1399},
}

// Allocator hands out subroutine numbers, one incrementing counter per
// operation family, starting at that family's reserved range.
type Allocator struct {
	next map[string]int
}

// NewAllocator returns an Allocator with every family's counter reset to
// the start of its reserved range.
func NewAllocator() *Allocator {
	a := &Allocator{next: make(map[string]int, len(subroutineRanges))}
	for family, r := range subroutineRanges {
		a.next[family] = r[0]
	}
	return a
}

// Next returns the next unused subroutine number for family, an unknown
// family defaulting to the drill range.
func (a *Allocator) Next(family string) int {
	n, ok := a.next[family]
	if !ok {
		n = subroutineRanges["drill"][0]
	}
	a.next[family] = n + 1
	return n
}

// Wrap joins commands into a complete subroutine file body, terminated by
// M99 and the bare % Mach3 requires for the L repeat parameter to work.
func Wrap(commands []string) string {
	lines := append(append([]string{}, commands...), SubroutineEnd()...)
	return strings.Join(lines, "\n")
}

// CutPreamble is the vertical-plunge entry: descend one pass depth in
// relative mode, so repeated M98 L-calls accumulate depth correctly.
func CutPreamble(passDepth, plungeRate float64) []string {
	return []string{
		"G91",
		fmt.Sprintf("G01 Z%s F%s", FormatCoordinate(-passDepth), FormatFeed(plungeRate)),
		"G90",
	}
}

// withHoldTime inserts a dwell (in milliseconds) right after the leading
// G91 of a preamble, before the plunge move.
func withHoldTime(lines []string, holdTimeMillis int) []string {
	if holdTimeMillis <= 0 {
		return lines
	}
	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[0])
	out = append(out, fmt.Sprintf("G04 P%d", holdTimeMillis))
	out = append(out, lines[1:]...)
	return out
}

// RampPreambleCircle ramps from a circle's lead-in point to its profile
// start while descending one pass depth, using the approach angle to
// resolve the XY offset (Y is omitted when the approach angle makes it
// negligible, keeping a purely-X ramp as compact G-code).
func RampPreambleCircle(leadInDistance, passDepth, plungeRate float64, approach model.UserAngle) []string {
	mathAngle := approach.Radians()
	dx := -leadInDistance * math.Cos(mathAngle)
	dy := -leadInDistance * math.Sin(mathAngle)

	if math.Abs(dy) < 0.0001 {
		return []string{
			"G91",
			fmt.Sprintf("G01 X%s Z%s F%s", FormatCoordinate(dx), FormatCoordinate(-passDepth), FormatFeed(plungeRate)),
			"G90",
		}
	}
	return []string{
		"G91",
		fmt.Sprintf("G01 X%s Y%s Z%s F%s", FormatCoordinate(dx), FormatCoordinate(dy), FormatCoordinate(-passDepth), FormatFeed(plungeRate)),
		"G90",
	}
}

// RampPreambleAbsolute ramps from an arbitrary lead-in point to an
// arbitrary profile start (used by hexagon and line cuts, whose entry
// direction isn't a single approach angle).
func RampPreambleAbsolute(leadIn, profileStart model.Point2D, passDepth, plungeRate float64) []string {
	dx := profileStart.X - leadIn.X
	dy := profileStart.Y - leadIn.Y
	return []string{
		"G91",
		fmt.Sprintf("G01 X%s Y%s Z%s F%s", FormatCoordinate(dx), FormatCoordinate(dy), FormatCoordinate(-passDepth), FormatFeed(plungeRate)),
		"G90",
	}
}

// HelicalPreambleCircle spirals down at the helix radius, then transitions
// with an arc out to the circle's cut radius.
func HelicalPreambleCircle(helixRadius, cutRadius, passDepth, helixPitch, plungeRate, feedRate float64, approach model.UserAngle, arcFeedFactor float64) []string {
	arcFeed := feedRate * arcFeedFactor
	mathAngle := approach.Radians()
	iOffset := -helixRadius * math.Cos(mathAngle)
	jOffset := -helixRadius * math.Sin(mathAngle)

	revolutions := leadin.Revolutions(passDepth, helixPitch)
	depthPerRev := passDepth / float64(revolutions)

	lines := []string{"G91"}
	for rev := 0; rev < revolutions; rev++ {
		feed := RampedHelixFeed(rev, revolutions, plungeRate, arcFeed)
		lines = append(lines, fmt.Sprintf("G02 Z%s I%s J%s F%s",
			FormatCoordinate(-depthPerRev), FormatCoordinate(iOffset), FormatCoordinate(jOffset), FormatFeed(feed)))
	}
	lines = append(lines, "G90")

	if math.Abs(helixRadius-cutRadius) > 0.001 {
		deltaX := (cutRadius - helixRadius) * math.Cos(mathAngle)
		deltaY := (cutRadius - helixRadius) * math.Sin(mathAngle)
		lines = append(lines, "G91")
		lines = append(lines, fmt.Sprintf("G02 X%s Y%s I%s J%s F%s",
			FormatCoordinate(deltaX), FormatCoordinate(deltaY), FormatCoordinate(iOffset), FormatCoordinate(jOffset), FormatFeed(arcFeed)))
		lines = append(lines, "G90")
	}

	return lines
}

// HelicalPreambleHexagon spirals down at the hexagon's center, then moves
// in a straight line out to the hexagon's first vertex.
func HelicalPreambleHexagon(center model.Point2D, helixRadius float64, firstVertex model.Point2D, passDepth, helixPitch, plungeRate, feedRate float64, approach model.UserAngle, arcFeedFactor float64) []string {
	arcFeed := feedRate * arcFeedFactor
	mathAngle := approach.Radians()
	iOffset := -helixRadius * math.Cos(mathAngle)
	jOffset := -helixRadius * math.Sin(mathAngle)

	revolutions := leadin.Revolutions(passDepth, helixPitch)
	depthPerRev := passDepth / float64(revolutions)

	lines := []string{"G91"}
	for rev := 0; rev < revolutions; rev++ {
		feed := RampedHelixFeed(rev, revolutions, plungeRate, arcFeed)
		lines = append(lines, fmt.Sprintf("G02 Z%s I%s J%s F%s",
			FormatCoordinate(-depthPerRev), FormatCoordinate(iOffset), FormatCoordinate(jOffset), FormatFeed(feed)))
	}
	lines = append(lines, "G90")

	helixEnd := leadin.HelixStartPoint(center, helixRadius, approach)
	if !helixEnd.Near(firstVertex, 1e-4) {
		lines = append(lines, fmt.Sprintf("G01 X%s Y%s F%s",
			FormatCoordinate(firstVertex.X), FormatCoordinate(firstVertex.Y), FormatFeed(feedRate)))
	}

	return lines
}

// CirclePassSubroutine builds one depth pass of a circular cut: entry
// (plunge, ramp, or helix), the full-circle profile, and a matching
// lead-out back to the entry point so the next pass starts from the same
// place. approach is the angle the profile-start position sits at on the
// circle.
func CirclePassSubroutine(cutRadius, passDepth, plungeRate, feedRate float64, li model.LeadIn, holdTimeMillis int, arcFeedFactor float64) string {
	var lines []string
	arcFeed := feedRate * arcFeedFactor
	mathAngle := li.ApproachAngle.Radians()

	switch li.Kind {
	case model.LeadInHelical:
		lines = HelicalPreambleCircle(li.HelixRadius, cutRadius, passDepth, li.HelixPitch, plungeRate, feedRate, li.ApproachAngle, arcFeedFactor)
	case model.LeadInRamp:
		lines = RampPreambleCircle(li.Distance, passDepth, plungeRate, li.ApproachAngle)
	default:
		lines = CutPreamble(passDepth, plungeRate)
	}
	lines = withHoldTime(lines, holdTimeMillis)

	iOffset := -cutRadius * math.Cos(mathAngle)
	jOffset := -cutRadius * math.Sin(mathAngle)
	lines = append(lines, fmt.Sprintf("G02 I%s J%s F%s", FormatCoordinate(iOffset), FormatCoordinate(jOffset), FormatFeed(arcFeed)))

	switch li.Kind {
	case model.LeadInHelical:
		if math.Abs(li.HelixRadius-cutRadius) > 0.001 {
			deltaX := (li.HelixRadius - cutRadius) * math.Cos(mathAngle)
			deltaY := (li.HelixRadius - cutRadius) * math.Sin(mathAngle)
			lines = append(lines, "G91")
			lines = append(lines, fmt.Sprintf("G02 X%s Y%s I%s J%s F%s",
				FormatCoordinate(deltaX), FormatCoordinate(deltaY), FormatCoordinate(iOffset), FormatCoordinate(jOffset), FormatFeed(arcFeed)))
			lines = append(lines, "G90")
		}
	case model.LeadInRamp:
		deltaX := li.Distance * math.Cos(mathAngle)
		deltaY := li.Distance * math.Sin(mathAngle)
		lines = append(lines, "G91")
		if math.Abs(deltaY) < 0.0001 {
			lines = append(lines, fmt.Sprintf("G01 X%s F%s", FormatCoordinate(deltaX), FormatFeed(feedRate)))
		} else {
			lines = append(lines, fmt.Sprintf("G01 X%s Y%s F%s", FormatCoordinate(deltaX), FormatCoordinate(deltaY), FormatFeed(feedRate)))
		}
		lines = append(lines, "G90")
	}

	return Wrap(lines)
}

// HexagonPassSubroutine builds one depth pass of a hexagonal cut: entry,
// a straight cut around all six vertices back to the first, and a
// lead-out matching the entry type.
func HexagonPassSubroutine(vertices [6]model.Point2D, passDepth, plungeRate, feedRate float64, li model.LeadIn, holdTimeMillis int, arcFeedFactor float64) string {
	var lines []string
	var helixEnd model.Point2D
	helical := false

	switch li.Kind {
	case model.LeadInHelical:
		lines = HelicalPreambleHexagon(li.HelixCenter, li.HelixRadius, vertices[0], passDepth, li.HelixPitch, plungeRate, feedRate, li.ApproachAngle, arcFeedFactor)
		helixEnd = leadin.HelixStartPoint(li.HelixCenter, li.HelixRadius, li.ApproachAngle)
		helical = true
	case model.LeadInRamp:
		lines = RampPreambleAbsolute(li.LeadInPoint, vertices[0], passDepth, plungeRate)
	default:
		lines = CutPreamble(passDepth, plungeRate)
	}
	lines = withHoldTime(lines, holdTimeMillis)

	for i := 1; i < len(vertices); i++ {
		v := vertices[i]
		lines = append(lines, fmt.Sprintf("G01 X%s Y%s F%s", FormatCoordinate(v.X), FormatCoordinate(v.Y), FormatFeed(feedRate)))
	}
	lines = append(lines, fmt.Sprintf("G01 X%s Y%s", FormatCoordinate(vertices[0].X), FormatCoordinate(vertices[0].Y)))

	switch {
	case helical:
		lines = append(lines, fmt.Sprintf("G01 X%s Y%s", FormatCoordinate(helixEnd.X), FormatCoordinate(helixEnd.Y)))
	case li.Kind == model.LeadInRamp:
		lines = append(lines, fmt.Sprintf("G01 X%s Y%s", FormatCoordinate(li.LeadInPoint.X), FormatCoordinate(li.LeadInPoint.Y)))
	}

	return Wrap(lines)
}

// LinePassSubroutine builds one depth pass of a line cut, following
// straight and arc segments in order, with an optional ramped entry.
func LinePassSubroutine(path []model.LinePoint, passDepth, plungeRate, feedRate float64, li model.LeadIn, holdTimeMillis int) string {
	if len(path) == 0 {
		return Wrap(nil)
	}

	profileStart := model.Point2D{X: path[0].X, Y: path[0].Y}

	var lines []string
	if li.Kind != model.LeadInNone {
		lines = RampPreambleAbsolute(li.LeadInPoint, profileStart, passDepth, plungeRate)
	} else {
		lines = CutPreamble(passDepth, plungeRate)
	}
	lines = withHoldTime(lines, holdTimeMillis)

	current := profileStart
	for _, point := range path[1:] {
		dest := model.Point2D{X: point.X, Y: point.Y}

		if point.Segment == model.SegmentArc {
			center := model.Point2D{X: point.ArcCenterX, Y: point.ArcCenterY}
			i, j := arcmath.IJOffsets(current, center)
			direction := arcmath.ResolveDirection(current, dest, center, point.ArcDirection)
			lines = append(lines, fmt.Sprintf("%s X%s Y%s I%s J%s F%s",
				direction, FormatCoordinate(dest.X), FormatCoordinate(dest.Y), FormatCoordinate(i), FormatCoordinate(j), FormatFeed(feedRate)))
		} else {
			lines = append(lines, fmt.Sprintf("G01 X%s Y%s F%s", FormatCoordinate(dest.X), FormatCoordinate(dest.Y), FormatFeed(feedRate)))
		}
		current = dest
	}

	if li.Kind != model.LeadInNone && profileStart.Near(current, 1e-4) {
		lines = append(lines, fmt.Sprintf("G01 X%s Y%s", FormatCoordinate(li.LeadInPoint.X), FormatCoordinate(li.LeadInPoint.Y)))
	}

	return Wrap(lines)
}

// peckCycleLines builds the plunge/full-retract chip-clearing cycle
// shared by every peck-drilling emission: descend (in relative mode) to
// each cumulative peck depth in turn, retracting fully to Z0 between
// pecks so chips clear before the next, deeper pass.
func peckCycleLines(pecks []float64, plungeRate float64) []string {
	lines := []string{"G00 Z0", "G91"}
	for _, peckDepth := range pecks {
		lines = append(lines, fmt.Sprintf("G01 Z%s F%s", FormatCoordinate(-peckDepth), FormatFeed(plungeRate)))
		lines = append(lines, "G00 Z"+FormatCoordinate(peckDepth))
	}
	return lines
}

// LinePassSubroutineVariableFeed is LinePassSubroutine with a per-point
// feed rate instead of one flat rate, so the caller can apply the safety
// chain's corner and arc slowdowns move by move. feeds must be the same
// length as path; feeds[i] is the rate used for the segment arriving at
// path[i] (feeds[0] is unused, since the first point has no incoming
// segment).
func LinePassSubroutineVariableFeed(path []model.LinePoint, feeds []float64, passDepth, plungeRate float64, li model.LeadIn, holdTimeMillis int) string {
	if len(path) == 0 {
		return Wrap(nil)
	}

	profileStart := model.Point2D{X: path[0].X, Y: path[0].Y}

	var lines []string
	if li.Kind != model.LeadInNone {
		lines = RampPreambleAbsolute(li.LeadInPoint, profileStart, passDepth, plungeRate)
	} else {
		lines = CutPreamble(passDepth, plungeRate)
	}
	lines = withHoldTime(lines, holdTimeMillis)

	current := profileStart
	for idx, point := range path[1:] {
		i := idx + 1
		dest := model.Point2D{X: point.X, Y: point.Y}
		feed := plungeRate
		if i < len(feeds) {
			feed = feeds[i]
		}

		if point.Segment == model.SegmentArc {
			center := model.Point2D{X: point.ArcCenterX, Y: point.ArcCenterY}
			ioff, joff := arcmath.IJOffsets(current, center)
			direction := arcmath.ResolveDirection(current, dest, center, point.ArcDirection)
			lines = append(lines, fmt.Sprintf("%s X%s Y%s I%s J%s F%s",
				direction, FormatCoordinate(dest.X), FormatCoordinate(dest.Y), FormatCoordinate(ioff), FormatCoordinate(joff), FormatFeed(feed)))
		} else {
			lines = append(lines, fmt.Sprintf("G01 X%s Y%s F%s", FormatCoordinate(dest.X), FormatCoordinate(dest.Y), FormatFeed(feed)))
		}
		current = dest
	}

	if li.Kind != model.LeadInNone && profileStart.Near(current, 1e-4) {
		lines = append(lines, fmt.Sprintf("G01 X%s Y%s", FormatCoordinate(li.LeadInPoint.X), FormatCoordinate(li.LeadInPoint.Y)))
	}

	return Wrap(lines)
}

// PeckDrillSubroutine builds a peck-drilling subroutine: the chip-clearing
// cycle, then a relative move to the next hole position along axis so
// repeated L=count invocation steps through an entire linear or grid-row
// pattern.
func PeckDrillSubroutine(pecks []float64, plungeRate, travelHeight float64, axis string, spacing float64) string {
	lines := peckCycleLines(pecks, plungeRate)
	lines = append(lines, "G00 Z"+FormatCoordinate(travelHeight))
	if strings.EqualFold(axis, "x") {
		lines = append(lines, "G00 X"+FormatCoordinate(spacing))
	} else {
		lines = append(lines, "G00 Y"+FormatCoordinate(spacing))
	}
	lines = append(lines, "G90")

	return Wrap(lines)
}

// DrillCycleLines builds the peck cycle for a single, ungrouped drill
// point emitted directly into the main program: no subroutine wrap, no
// axis translate, just the plunge/retract sequence followed by a retract
// to travel height.
func DrillCycleLines(pecks []float64, plungeRate, travelHeight float64) []string {
	lines := peckCycleLines(pecks, plungeRate)
	lines = append(lines, "G00 Z"+FormatCoordinate(travelHeight))
	lines = append(lines, "G90")
	return lines
}
