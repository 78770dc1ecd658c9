package gcode

import (
	"strings"
	"testing"

	"github.com/metafin/gpro/internal/model"
)

func TestAllocatorAssignsFromReservedRanges(t *testing.T) {
	a := NewAllocator()
	if got := a.Next("drill"); got != 1000 {
		t.Errorf("expected first drill number 1000, got %d", got)
	}
	if got := a.Next("drill"); got != 1001 {
		t.Errorf("expected second drill number 1001, got %d", got)
	}
	if got := a.Next("circular"); got != 1100 {
		t.Errorf("expected first circular number 1100, got %d", got)
	}
}

func TestWrapAppendsSubroutineEnd(t *testing.T) {
	got := Wrap([]string{"G01 X1.0000"})
	want := "G01 X1.0000\nM99\n%"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCutPreambleUsesRelativeDescent(t *testing.T) {
	lines := CutPreamble(0.1, 20)
	want := []string{"G91", "G01 Z-0.1000 F20.0", "G90"}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d: expected %q, got %q", i, w, lines[i])
		}
	}
}

func TestWithHoldTimeInsertsDwellAfterG91(t *testing.T) {
	lines := withHoldTime([]string{"G91", "G01 Z-0.1", "G90"}, 250)
	if lines[1] != "G04 P250" {
		t.Errorf("expected dwell as second line, got %v", lines)
	}
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
}

func TestCirclePassSubroutinePlungeEntryEmitsFullCircle(t *testing.T) {
	li := model.LeadIn{Kind: model.LeadInNone, ApproachAngle: 90}
	out := CirclePassSubroutine(1.0, 0.1, 10, 30, li, 0, 1.0)
	if !strings.Contains(out, "G02 I-1.0000 J0.0000 F30.0") {
		t.Errorf("expected a full circle at approach angle 90, got:\n%s", out)
	}
	if !strings.HasSuffix(out, "M99\n%") {
		t.Errorf("expected subroutine to end with M99/%%, got:\n%s", out)
	}
}

func TestCirclePassSubroutineRampEntryLeadsOutToLeadInPoint(t *testing.T) {
	// Approach angle 90 (user convention) points along +X, matching the
	// traditional 3-o'clock entry direction.
	li := model.LeadIn{Kind: model.LeadInRamp, Distance: 0.25, ApproachAngle: 90}
	out := CirclePassSubroutine(1.0, 0.1, 10, 30, li, 0, 1.0)
	if !strings.Contains(out, "G01 X0.2500 F30.0") {
		t.Errorf("expected a lead-out move of the ramp distance, got:\n%s", out)
	}
}

func TestHexagonPassSubroutineCutsAllSixVerticesAndCloses(t *testing.T) {
	verts := [6]model.Point2D{
		{X: 0, Y: 2}, {X: 1.7, Y: 1}, {X: 1.7, Y: -1},
		{X: 0, Y: -2}, {X: -1.7, Y: -1}, {X: -1.7, Y: 1},
	}
	li := model.LeadIn{Kind: model.LeadInNone}
	out := HexagonPassSubroutine(verts, 0.1, 10, 30, li, 0, 1.0)
	count := strings.Count(out, "G01 X")
	if count != 6 {
		t.Errorf("expected 5 vertex cuts plus 1 closing move (6 G01 X lines), got %d in:\n%s", count, out)
	}
}

func TestLinePassSubroutineHandlesStraightAndArcSegments(t *testing.T) {
	path := []model.LinePoint{
		{X: 0, Y: 0},
		{X: 10, Y: 0}, // straight
		{X: 10, Y: 10, Segment: model.SegmentArc, ArcCenterX: 10, ArcCenterY: 5, ArcDirection: model.ArcDirectionCCW},
	}
	li := model.LeadIn{Kind: model.LeadInNone}
	out := LinePassSubroutine(path, 0.1, 10, 30, li, 0)
	if !strings.Contains(out, "G01 X10.0000 Y0.0000 F30.0") {
		t.Errorf("expected a straight move, got:\n%s", out)
	}
	if !strings.Contains(out, "G03 X10.0000 Y10.0000") {
		t.Errorf("expected a CCW arc move, got:\n%s", out)
	}
}

func TestPeckDrillSubroutineMovesAlongAxis(t *testing.T) {
	out := PeckDrillSubroutine([]float64{0.05, 0.1, 0.15}, 8, 0.1, "x", 0.5)
	if !strings.Contains(out, "G00 X0.5000") {
		t.Errorf("expected a move along X, got:\n%s", out)
	}
	if strings.Count(out, "G01 Z") != 3 {
		t.Errorf("expected 3 peck plunges, got:\n%s", out)
	}
}
