package compensate

import (
	"math"
	"testing"

	"github.com/metafin/gpro/internal/model"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func square(side float64) []model.LinePoint {
	return []model.LinePoint{
		{X: 0, Y: 0},
		{X: side, Y: 0},
		{X: side, Y: side},
		{X: 0, Y: side},
		{X: 0, Y: 0},
	}
}

func TestCircleRadiusInteriorShrinksTowardCenter(t *testing.T) {
	r := CircleRadius(10, 2, model.CompensationInterior)
	if !near(r, 4) {
		t.Errorf("expected radius 4, got %v", r)
	}
}

func TestCircleRadiusExteriorGrows(t *testing.T) {
	r := CircleRadius(10, 2, model.CompensationExterior)
	if !near(r, 6) {
		t.Errorf("expected radius 6, got %v", r)
	}
}

func TestCircleRadiusNoneUnchanged(t *testing.T) {
	r := CircleRadius(10, 2, model.CompensationNone)
	if !near(r, 5) {
		t.Errorf("expected radius 5, got %v", r)
	}
}

func TestLineNoneReturnsPathUnchanged(t *testing.T) {
	path := square(10)
	out, err := Line(path, 0.25, model.CompensationNone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range path {
		if out[i].X != path[i].X || out[i].Y != path[i].Y {
			t.Errorf("point %d changed with none compensation", i)
		}
	}
}

func TestLineInteriorShrinksClosedSquare(t *testing.T) {
	path := square(10) // CCW winding
	out, err := Line(path, 1.0, model.CompensationInterior)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Interior compensation on a CCW square should shrink it inward by
	// the tool radius (0.5) on every side.
	for _, p := range out {
		if p.X < -1e-6 || p.X > 10+1e-6 || p.Y < -1e-6 || p.Y > 10+1e-6 {
			t.Fatalf("unexpected point outside original bounds: %+v", p)
		}
	}
	// The bottom edge should move up by 0.5.
	found := false
	for _, p := range out {
		if near(p.Y, 0.5) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a point at y=0.5 after interior shrink, got %+v", out)
	}
}

func TestLineExteriorGrowsClosedSquare(t *testing.T) {
	path := square(10)
	out, err := Line(path, 1.0, model.CompensationExterior)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, p := range out {
		if near(p.Y, -0.5) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a point at y=-0.5 after exterior growth, got %+v", out)
	}
}

func TestLineOpenPathStraightOffset(t *testing.T) {
	path := []model.LinePoint{{X: 0, Y: 0}, {X: 10, Y: 0}}
	out, err := Line(path, 1.0, model.CompensationInterior)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 points for an open 2-point path, got %d", len(out))
	}
}

func TestLineArcTooSmallForToolRadiusErrors(t *testing.T) {
	path := []model.LinePoint{
		{X: 1, Y: 0},
		{X: 0, Y: 1, Segment: model.SegmentArc, ArcCenterX: 0, ArcCenterY: 0, ArcDirection: model.ArcDirectionCCW},
	}
	_, err := Line(path, 10.0, model.CompensationInterior)
	if err == nil {
		t.Error("expected an error when tool radius exceeds arc radius")
	}
}
