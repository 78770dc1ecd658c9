// Package gcode renders the Mach3 dialect of G-code: coordinate and move
// formatting, program headers/footers, and the M98/M99 subroutine
// machinery used to factor repeated cuts into callable subprograms. No
// function in this package emits comments; output is pure G-code.
package gcode

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FormatCoordinate formats a coordinate to 4 decimal places. A value that
// rounds to zero is written as 0.0000, never with a minus sign.
func FormatCoordinate(v float64) string {
	s := fmt.Sprintf("%.4f", v)
	if s == "-0.0000" {
		return "0.0000"
	}
	return s
}

// FormatFeed formats a feed rate to 1 decimal place.
func FormatFeed(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// Header returns the standard program opening: inch units, absolute
// mode, home, rapid to safety height, spindle start, and a warmup dwell.
func Header(spindleSpeed, warmupSeconds int, safetyHeight float64) []string {
	return []string{
		"G20 G90",
		"G00 X0 Y0 Z0",
		"G00 Z" + FormatCoordinate(safetyHeight),
		fmt.Sprintf("M03 S%d", spindleSpeed),
		fmt.Sprintf("G04 P%d", warmupSeconds),
	}
}

// Footer returns the standard program close: spindle stop, retract, home,
// and program end.
func Footer(safetyHeight float64) []string {
	return []string{
		"M05",
		"G00 Z" + FormatCoordinate(safetyHeight),
		"G00 X0 Y0",
		"M30",
	}
}

// RapidMove renders a G00 move. Any of x, y, z may be omitted by passing
// nil.
func RapidMove(x, y, z *float64) string {
	parts := []string{"G00"}
	if x != nil {
		parts = append(parts, "X"+FormatCoordinate(*x))
	}
	if y != nil {
		parts = append(parts, "Y"+FormatCoordinate(*y))
	}
	if z != nil {
		parts = append(parts, "Z"+FormatCoordinate(*z))
	}
	return strings.Join(parts, " ")
}

// LinearMove renders a G01 move, with an optional feed rate.
func LinearMove(x, y, z, feed *float64) string {
	parts := []string{"G01"}
	if x != nil {
		parts = append(parts, "X"+FormatCoordinate(*x))
	}
	if y != nil {
		parts = append(parts, "Y"+FormatCoordinate(*y))
	}
	if z != nil {
		parts = append(parts, "Z"+FormatCoordinate(*z))
	}
	if feed != nil {
		parts = append(parts, "F"+FormatFeed(*feed))
	}
	return strings.Join(parts, " ")
}

// ArcMove renders a G02/G03 move. direction must be "G02" or "G03". z, if
// given, makes the move helical (spiral descent while arcing).
func ArcMove(direction string, x, y, i, j float64, feed, z *float64) string {
	parts := []string{direction, "X" + FormatCoordinate(x), "Y" + FormatCoordinate(y)}
	if z != nil {
		parts = append(parts, "Z"+FormatCoordinate(*z))
	}
	parts = append(parts, "I"+FormatCoordinate(i), "J"+FormatCoordinate(j))
	if feed != nil {
		parts = append(parts, "F"+FormatFeed(*feed))
	}
	return strings.Join(parts, " ")
}

// SubroutineCall renders an M98 call, using Mach3's required
// hyphen-after-parenthesis syntax.
func SubroutineCall(filePath string, loopCount int) string {
	return fmt.Sprintf("M98 (-%s) L%d", filePath, loopCount)
}

// SubroutineEnd returns the lines that terminate a subroutine file: M99,
// then a bare % so the L parameter works.
func SubroutineEnd() []string {
	return []string{"M99", "%"}
}

var nonFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// SanitizeProjectName makes a project name safe to use as a path
// component: spaces become underscores, anything else non-alphanumeric
// is dropped, and the result is capped at 50 characters.
func SanitizeProjectName(name string) string {
	sanitized := strings.ReplaceAll(name, " ", "_")
	sanitized = nonFilenameChars.ReplaceAllString(sanitized, "")
	if len(sanitized) > 50 {
		sanitized = sanitized[:50]
	}
	return sanitized
}

// BuildSubroutinePath constructs the absolute Windows path an M98 call
// references, since the G-code this package emits always targets Mach3
// running on a PC.
func BuildSubroutinePath(basePath, projectName string, number int) string {
	path := fmt.Sprintf("%s\\%s\\%d.nc", basePath, projectName, number)
	return strings.ReplaceAll(path, "/", "\\")
}

var subroutineCallPattern = regexp.MustCompile(`M98 \(-.*\\(\d+)\.nc\) L(\d+)`)

// CountInvocations scans a main program's body for M98 calls and sums the
// L repeat count of every call to each subroutine number, for reporting
// how many times a shared subroutine actually runs. A subroutine number
// with no matching call (never expected, since every emitted subroutine
// is always invoked at least once) is simply absent from the result.
func CountInvocations(mainProgram string) map[int]int {
	counts := make(map[int]int)
	for _, match := range subroutineCallPattern.FindAllStringSubmatch(mainProgram, -1) {
		number, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		loops, err := strconv.Atoi(match[2])
		if err != nil {
			continue
		}
		counts[number] += loops
	}
	return counts
}

// rampFeedSteps are the 25/50/75% feed-ramp checkpoints a helical lead-in
// steps through as it establishes itself in material; the transition arc
// that follows completes the ramp to 100%.
var rampFeedSteps = [3]float64{0.25, 0.50, 0.75}

// RampedHelixFeed returns the feed rate for revolution rev (zero-indexed)
// of a totalRevolutions-revolution helical descent, ramping smoothly from
// plungeRate toward feedRate. A single-revolution descent uses 75%, a
// two-revolution descent uses 50% then 75%, and three or more use
// 25/50/75% with any extra revolutions held at 75%.
func RampedHelixFeed(rev, totalRevolutions int, plungeRate, feedRate float64) float64 {
	feedRange := feedRate - plungeRate

	var stepPct float64
	switch {
	case totalRevolutions == 1:
		stepPct = 0.75
	case totalRevolutions == 2:
		stepPct = rampFeedSteps[rev+1]
	default:
		stepIndex := rev
		if stepIndex > 2 {
			stepIndex = 2
		}
		stepPct = rampFeedSteps[stepIndex]
	}

	return plungeRate + feedRange*stepPct
}
