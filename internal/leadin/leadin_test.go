package leadin

import (
	"math"
	"testing"

	"github.com/metafin/gpro/internal/model"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestDistanceUsesRampAngleTangent(t *testing.T) {
	d := Distance(45, 0.1)
	if !near(d, 0.1) {
		t.Errorf("expected 0.1 at a 45 degree ramp, got %v", d)
	}
}

func TestDistanceFallsBackWhenDegenerate(t *testing.T) {
	if d := Distance(0, 0.1); d != fallbackLeadInDistance {
		t.Errorf("expected fallback distance, got %v", d)
	}
	if d := Distance(45, 0); d != fallbackLeadInDistance {
		t.Errorf("expected fallback distance, got %v", d)
	}
}

func TestCirclePointAtZeroApproachIsAboveCenter(t *testing.T) {
	p := CirclePoint(model.Point2D{X: 1, Y: 1}, 2, 0.5, 0)
	if !near(p.X, 1) || !near(p.Y, 3.5) {
		t.Errorf("expected (1, 3.5), got %+v", p)
	}
}

func TestHexagonPointExtendsBackwardFromFirstEdge(t *testing.T) {
	verts := [6]model.Point2D{
		{X: 0, Y: 2}, {X: 1.5, Y: 1}, {X: 1.5, Y: -1},
		{X: 0, Y: -2}, {X: -1.5, Y: -1}, {X: -1.5, Y: 1},
	}
	p := HexagonPoint(verts, 1.0)
	// Direction v0->v1 is (1.5,-1) normalized; extending backward from v0
	// moves away from v1.
	if p.X >= verts[0].X {
		t.Errorf("expected lead-in point to extend away from v1, got %+v", p)
	}
}

func TestLinePointOpenPathExtendsBackward(t *testing.T) {
	path := []model.LinePoint{{X: 0, Y: 0}, {X: 10, Y: 0}}
	p := LinePoint(path, 1.0, model.CompensationNone)
	if !near(p.X, -1) || !near(p.Y, 0) {
		t.Errorf("expected (-1, 0), got %+v", p)
	}
}

func TestLinePointClosedInteriorOffsetsInsideCCWSquare(t *testing.T) {
	path := []model.LinePoint{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0},
	}
	p := LinePoint(path, 1.0, model.CompensationInterior)
	if !near(p.X, 0) || !near(p.Y, 1) {
		t.Errorf("expected (0, 1) offset inward from the first vertex, got %+v", p)
	}
}

func TestLinePointClosedExteriorOffsetsOutsideCCWSquare(t *testing.T) {
	path := []model.LinePoint{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0},
	}
	p := LinePoint(path, 1.0, model.CompensationExterior)
	if !near(p.X, 0) || !near(p.Y, -1) {
		t.Errorf("expected (0, -1) offset outward from the first vertex, got %+v", p)
	}
}

func TestHelixRadiusForCircleRejectsTinyFeature(t *testing.T) {
	if _, ok := HelixRadiusForCircle(0.05, 0.25); ok {
		t.Error("expected a tiny circle to reject helical entry")
	}
}

func TestHelixRadiusForCircleFitsInsideLargeFeature(t *testing.T) {
	r, ok := HelixRadiusForCircle(1.0, 0.25)
	if !ok {
		t.Fatal("expected a 1-inch radius circle to accept helical entry")
	}
	if r <= 0 || r >= 1.0 {
		t.Errorf("expected helix radius strictly inside the cut radius, got %v", r)
	}
}

func TestHelixRadiusForHexagonInteriorLeavesRoomForTool(t *testing.T) {
	r, ok := HelixRadiusForHexagon(2.0, 0.25, model.CompensationInterior)
	if !ok {
		t.Fatal("expected a 2-inch hexagon to accept helical entry")
	}
	if r <= 0 {
		t.Errorf("expected a positive helix radius, got %v", r)
	}
}

func TestRevolutionsRoundsUpAndIsAtLeastOne(t *testing.T) {
	if n := Revolutions(0.1, 0.04); n != 3 {
		t.Errorf("expected 3 revolutions, got %v", n)
	}
	if n := Revolutions(0.01, 0.04); n != 1 {
		t.Errorf("expected at least 1 revolution, got %v", n)
	}
	if n := Revolutions(0.1, 0); n != 1 {
		t.Errorf("expected 1 revolution when pitch is zero, got %v", n)
	}
}

func TestCircleFallsBackToRampWhenHelixTooSmall(t *testing.T) {
	settings := model.DefaultGenerationSettings()
	li := Circle(settings, model.Point2D{}, 0.05, 0.25, 0.1, model.LeadInSettings{})
	if li.Kind != model.LeadInRamp {
		t.Errorf("expected a ramp fallback, got %v", li.Kind)
	}
}

func TestCircleUsesHelicalWhenRequestedAndFeasible(t *testing.T) {
	settings := model.DefaultGenerationSettings()
	li := Circle(settings, model.Point2D{}, 1.0, 0.25, 0.1, model.LeadInSettings{})
	if li.Kind != model.LeadInHelical {
		t.Errorf("expected helical entry, got %v", li.Kind)
	}
	if li.ProfileTransition != model.TransitionArc {
		t.Errorf("expected an arc transition back to the profile, got %v", li.ProfileTransition)
	}
}

func TestCircleManualOverrideForcesNone(t *testing.T) {
	settings := model.DefaultGenerationSettings()
	override := model.LeadInSettings{Mode: model.LeadInModeManual, Type: model.LeadInRequestNone}
	li := Circle(settings, model.Point2D{}, 1.0, 0.25, 0.1, override)
	if li.Kind != model.LeadInNone {
		t.Errorf("expected none, got %v", li.Kind)
	}
}

func TestLineDowngradesHelicalRequestToRamp(t *testing.T) {
	settings := model.DefaultGenerationSettings()
	settings.LineLeadInType = model.LeadInRequestHelical
	path := []model.LinePoint{{X: 0, Y: 0}, {X: 10, Y: 0}}
	li := Line(settings, path, 0.1, model.CompensationNone, model.LeadInSettings{})
	if li.Kind != model.LeadInRamp {
		t.Errorf("expected line cuts to never resolve to helical, got %v", li.Kind)
	}
}

func approachAngle(deg float64) *model.UserAngle {
	a := model.UserAngle(deg)
	return &a
}

func TestHexagonUsesEdgeDirectionByDefault(t *testing.T) {
	settings := model.DefaultGenerationSettings()
	verts := [6]model.Point2D{
		{X: 0, Y: 2}, {X: 1.5, Y: 1}, {X: 1.5, Y: -1},
		{X: 0, Y: -2}, {X: -1.5, Y: -1}, {X: -1.5, Y: 1},
	}
	li := Hexagon(settings, verts, model.Point2D{}, 3.464, 0.25, 0.1, model.CompensationInterior, model.LeadInSettings{})
	want := HexagonPoint(verts, li.Distance)
	if !near(li.LeadInPoint.X, want.X) || !near(li.LeadInPoint.Y, want.Y) {
		t.Errorf("expected default edge-direction lead-in at %+v, got %+v", want, li.LeadInPoint)
	}
}

func TestHexagonApproachAngleOverridesToRadialFromCenter(t *testing.T) {
	settings := model.DefaultGenerationSettings()
	center := model.Point2D{X: 5, Y: 5}
	verts := [6]model.Point2D{
		{X: 5, Y: 7}, {X: 6.5, Y: 6}, {X: 6.5, Y: 4},
		{X: 5, Y: 3}, {X: 3.5, Y: 4}, {X: 3.5, Y: 6},
	}
	override := model.LeadInSettings{ApproachAngle: approachAngle(0)}
	li := Hexagon(settings, verts, center, 3.464, 0.25, 0.1, model.CompensationInterior, override)

	vertexDist := verts[0].Dist(center)
	want := CirclePoint(center, vertexDist, li.Distance, 0)
	if !near(li.LeadInPoint.X, want.X) || !near(li.LeadInPoint.Y, want.Y) {
		t.Errorf("expected radial lead-in at %+v, got %+v", want, li.LeadInPoint)
	}
}

func TestLineApproachAngleOverridesDefaultDirection(t *testing.T) {
	settings := model.DefaultGenerationSettings()
	path := []model.LinePoint{{X: 0, Y: 0}, {X: 10, Y: 0}}
	override := model.LeadInSettings{ApproachAngle: approachAngle(180)}
	li := Line(settings, path, 0.1, model.CompensationNone, override)

	defaultPoint := LinePoint(path, li.Distance, model.CompensationNone)
	if near(li.LeadInPoint.X, defaultPoint.X) && near(li.LeadInPoint.Y, defaultPoint.Y) {
		t.Errorf("expected approach angle to override the default backward extension, got %+v", li.LeadInPoint)
	}
	want := CirclePoint(model.Point2D{X: 0, Y: 0}, 0, li.Distance, 180)
	if !near(li.LeadInPoint.X, want.X) || !near(li.LeadInPoint.Y, want.Y) {
		t.Errorf("expected radial approach at %+v, got %+v", want, li.LeadInPoint)
	}
}
