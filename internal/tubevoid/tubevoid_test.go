package tubevoid

import (
	"testing"

	"github.com/metafin/gpro/internal/model"
)

func tubeStock() model.Stock {
	return model.Stock{Kind: model.StockTube, OuterWidth: 4, OuterHeight: 2, WallThickness: 0.25}
}

func TestBoundsOfInsetsByWallThickness(t *testing.T) {
	b := BoundsOf(tubeStock(), 10, 2)
	if b.MinX != 0.25 || b.MinY != 0.25 || b.MaxX != 9.75 || b.MaxY != 1.75 {
		t.Errorf("unexpected bounds: %+v", b)
	}
}

func TestFilterDrillPointsSeparatesVoidFromMaterial(t *testing.T) {
	b := Bounds{MinX: 0.25, MinY: 0.25, MaxX: 9.75, MaxY: 1.75}
	points := []model.Point2D{
		{X: 5, Y: 1},    // deep in void
		{X: 0.1, Y: 1},  // on the wall, not void
		{X: 0.3, Y: 1},  // in void but tool radius reaches the wall
	}
	valid, skipped := FilterDrillPoints(points, b, 0.1)
	if len(skipped) != 1 || skipped[0].X != 5 {
		t.Errorf("expected only the deep-void point skipped, got %+v", skipped)
	}
	if len(valid) != 2 {
		t.Errorf("expected 2 valid points, got %d", len(valid))
	}
}

func TestFilterCirclesUsesOuterRadius(t *testing.T) {
	b := Bounds{MinX: 0.25, MinY: 0.25, MaxX: 9.75, MaxY: 1.75}
	cuts := []model.ExpandedCircle{
		{CenterX: 5, CenterY: 1, Diameter: 0.5},
		{CenterX: 0.5, CenterY: 1, Diameter: 1.0}, // straddles the wall
	}
	valid, skipped := FilterCircles(cuts, b, 0.25)
	if len(skipped) != 1 || skipped[0].CenterX != 5 {
		t.Errorf("expected only the small centered circle skipped, got %+v", skipped)
	}
	if len(valid) != 1 {
		t.Errorf("expected 1 valid circle, got %d", len(valid))
	}
}

func TestFilterHexagonsUsesCircumradius(t *testing.T) {
	b := Bounds{MinX: 0.25, MinY: 0.25, MaxX: 9.75, MaxY: 1.75}
	cuts := []model.ExpandedHexagon{{CenterX: 5, CenterY: 1, FlatToFlat: 0.5}}
	valid, skipped := FilterHexagons(cuts, b, 0.1)
	if len(valid) != 0 || len(skipped) != 1 {
		t.Errorf("expected the centered hexagon skipped, got valid=%v skipped=%v", valid, skipped)
	}
}

func TestFilterSheetStockNeverFiltersAnything(t *testing.T) {
	ops := model.ExpandedOperations{DrillPoints: []model.Point2D{{X: 1, Y: 1}}}
	result := Filter(ops, model.Stock{Kind: model.StockSheet}, 10, 2, 0.25, 0.5)
	if len(result.Operations.DrillPoints) != 1 || len(result.SkippedDrills) != 0 {
		t.Errorf("expected sheet stock unfiltered, got %+v", result)
	}
}

func TestFilterTubeStockDropsVoidOperationsAndKeepsLineCutsUnfiltered(t *testing.T) {
	ops := model.ExpandedOperations{
		DrillPoints:   []model.Point2D{{X: 5, Y: 1}, {X: 0.1, Y: 1}},
		CircularCuts:  []model.ExpandedCircle{{CenterX: 5, CenterY: 1, Diameter: 0.5}},
		HexagonalCuts: []model.ExpandedHexagon{{CenterX: 5, CenterY: 1, FlatToFlat: 0.5}},
		LineCuts:      []model.LineCut{{Points: []model.LinePoint{{X: 5, Y: 1}}}},
	}
	result := Filter(ops, tubeStock(), 10, 2, 0.1, 0.25)

	if len(result.SkippedDrills) != 1 {
		t.Errorf("expected exactly 1 skipped drill point, got %d", len(result.SkippedDrills))
	}
	if len(result.SkippedCircles) != 1 {
		t.Errorf("expected the circle in the void skipped, got %d", len(result.SkippedCircles))
	}
	if len(result.SkippedHexagons) != 1 {
		t.Errorf("expected the hexagon in the void skipped, got %d", len(result.SkippedHexagons))
	}
	if len(result.Operations.LineCuts) != 1 {
		t.Errorf("expected line cuts to pass through unfiltered, got %d", len(result.Operations.LineCuts))
	}
}
