package pattern

import (
	"testing"

	"github.com/metafin/gpro/internal/model"
)

func TestLinearExpandsAlongX(t *testing.T) {
	pts := Linear(1, 2, "x", 10, 3)
	want := []model.Point2D{{X: 1, Y: 2}, {X: 11, Y: 2}, {X: 21, Y: 2}}
	if len(pts) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(pts))
	}
	for i := range want {
		if pts[i] != want[i] {
			t.Errorf("point %d: expected %v, got %v", i, want[i], pts[i])
		}
	}
}

func TestLinearExpandsAlongY(t *testing.T) {
	pts := Linear(1, 2, "y", 5, 2)
	want := []model.Point2D{{X: 1, Y: 2}, {X: 1, Y: 7}}
	for i := range want {
		if pts[i] != want[i] {
			t.Errorf("point %d: expected %v, got %v", i, want[i], pts[i])
		}
	}
}

func TestGridIsRowMajor(t *testing.T) {
	pts := Grid(0, 0, 10, 20, 2, 2)
	want := []model.Point2D{
		{X: 0, Y: 0}, {X: 10, Y: 0},
		{X: 0, Y: 20}, {X: 10, Y: 20},
	}
	if len(pts) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(pts))
	}
	for i := range want {
		if pts[i] != want[i] {
			t.Errorf("point %d: expected %v, got %v", i, want[i], pts[i])
		}
	}
}

func TestGridRowsPreservesRowBoundaries(t *testing.T) {
	rows := GridRows(0, 0, 10, 20, 3, 2)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if len(rows[0]) != 3 || len(rows[1]) != 3 {
		t.Fatalf("expected 3 points per row, got %d and %d", len(rows[0]), len(rows[1]))
	}
	if rows[1][0].Y != 20 {
		t.Errorf("expected second row Y=20, got %v", rows[1][0].Y)
	}
}

func TestDrillsExpandsAllOperationKinds(t *testing.T) {
	ops := []model.DrillOperation{
		model.SingleDrill{X: 1, Y: 1},
		model.LinearDrillPattern{StartX: 0, StartY: 0, Axis: "x", Spacing: 5, Count: 2},
		model.GridDrillPattern{StartX: 0, StartY: 0, XSpacing: 5, YSpacing: 5, XCount: 2, YCount: 2},
	}
	points := Drills(ops)
	if len(points) != 1+2+4 {
		t.Fatalf("expected 7 drill points, got %d", len(points))
	}
}

func TestCirclesPreserveCompensationAndLeadIn(t *testing.T) {
	ops := []model.CircularCutOperation{
		model.LinearCirclePattern{
			StartCenterX: 0, StartCenterY: 0, Axis: "x", Spacing: 10, Count: 3,
			Diameter: 5, Compensation: model.CompensationExterior,
			LeadIn: model.LeadInSettings{Type: model.LeadInRequestRamp},
		},
	}
	circles := Circles(ops)
	if len(circles) != 3 {
		t.Fatalf("expected 3 circles, got %d", len(circles))
	}
	for _, c := range circles {
		if c.Diameter != 5 || c.Compensation != model.CompensationExterior {
			t.Errorf("expected diameter/compensation to carry through, got %+v", c)
		}
		if c.LeadIn.Type != model.LeadInRequestRamp {
			t.Errorf("expected lead-in settings to carry through, got %+v", c.LeadIn)
		}
	}
}

func TestAllPassesLineCutsThroughUnchanged(t *testing.T) {
	lineCuts := []model.LineCut{{Points: []model.LinePoint{{X: 1, Y: 1}, {X: 2, Y: 2}}}}
	expanded := All(model.Operations{LineCuts: lineCuts})
	if len(expanded.LineCuts) != 1 {
		t.Fatalf("expected 1 line cut, got %d", len(expanded.LineCuts))
	}
}
