package hexagon

import (
	"math"
	"testing"

	"github.com/metafin/gpro/internal/model"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestVerticesTopIsCenteredAboveCenter(t *testing.T) {
	verts := Vertices(10, 20, 2.0)
	top := verts[0]
	if !near(top.X, 10) {
		t.Errorf("expected top vertex X=10, got %v", top.X)
	}
	circumradius := 2.0 / sqrt3
	if !near(top.Y, 20+circumradius) {
		t.Errorf("expected top vertex Y=%v, got %v", 20+circumradius, top.Y)
	}
}

func TestVerticesAreEquidistantFromCenter(t *testing.T) {
	center := model.Point2D{X: 5, Y: 5}
	verts := Vertices(5, 5, 3.0)
	want := 3.0 / sqrt3
	for i, v := range verts {
		got := v.Dist(center)
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("vertex %d: expected radius %v, got %v", i, want, got)
		}
	}
}

func TestCompensatedVerticesNoneMatchesUncompensated(t *testing.T) {
	verts := Vertices(0, 0, 4.0)
	comp := CompensatedVertices(0, 0, 4.0, 0.25, model.CompensationNone)
	for i := range verts {
		if verts[i] != comp[i] {
			t.Errorf("vertex %d: expected %v, got %v", i, verts[i], comp[i])
		}
	}
}

func TestCompensatedVerticesInteriorMovesTowardCenter(t *testing.T) {
	center := model.Point2D{X: 0, Y: 0}
	uncompensated := Vertices(0, 0, 4.0)
	comp := CompensatedVertices(0, 0, 4.0, 0.5, model.CompensationInterior)
	for i := range uncompensated {
		before := uncompensated[i].Dist(center)
		after := comp[i].Dist(center)
		if after >= before {
			t.Errorf("vertex %d: expected interior compensation to move closer to center, before=%v after=%v", i, before, after)
		}
	}
}

func TestCompensatedVerticesExteriorMovesAwayFromCenter(t *testing.T) {
	center := model.Point2D{X: 0, Y: 0}
	uncompensated := Vertices(0, 0, 4.0)
	comp := CompensatedVertices(0, 0, 4.0, 0.5, model.CompensationExterior)
	for i := range uncompensated {
		before := uncompensated[i].Dist(center)
		after := comp[i].Dist(center)
		if after <= before {
			t.Errorf("vertex %d: expected exterior compensation to move away from center, before=%v after=%v", i, before, after)
		}
	}
}

func TestBoundsMatchesPointUpOrientation(t *testing.T) {
	minX, minY, maxX, maxY := Bounds(0, 0, 2.0)
	if !near(minX, -1) || !near(maxX, 1) {
		t.Errorf("expected X bounds [-1, 1], got [%v, %v]", minX, maxX)
	}
	circumradius := 2.0 / sqrt3
	if !near(minY, -circumradius) || !near(maxY, circumradius) {
		t.Errorf("expected Y bounds [%v, %v], got [%v, %v]", -circumradius, circumradius, minY, maxY)
	}
}
