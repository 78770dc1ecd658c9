package corner

import (
	"testing"

	"github.com/metafin/gpro/internal/model"
)

func straightPath() []model.LinePoint {
	return []model.LinePoint{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 20, Y: 0},
	}
}

func rightAnglePath() []model.LinePoint {
	return []model.LinePoint{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 10},
	}
}

func TestIdentifyFindsNoCornersOnStraightPath(t *testing.T) {
	corners := Identify(straightPath(), DefaultAngleThreshold)
	if len(corners) != 0 {
		t.Errorf("expected no corners on a straight path, got %d", len(corners))
	}
}

func TestIdentifyFindsRightAngleCorner(t *testing.T) {
	corners := Identify(rightAnglePath(), DefaultAngleThreshold)
	if len(corners) != 1 {
		t.Fatalf("expected 1 corner, got %d", len(corners))
	}
	if corners[0].Angle < 89 || corners[0].Angle > 91 {
		t.Errorf("expected ~90 degree corner, got %v", corners[0].Angle)
	}
}

func TestIdentifyShortPathHasNoCorners(t *testing.T) {
	path := []model.LinePoint{{X: 0, Y: 0}, {X: 1, Y: 1}}
	if corners := Identify(path, DefaultAngleThreshold); len(corners) != 0 {
		t.Errorf("expected no corners for a 2-point path, got %d", len(corners))
	}
}

func TestFeedFactorTable(t *testing.T) {
	cases := []struct {
		angle float64
		want  float64
	}{
		{180, 1.0},
		{120, 1.0},
		{100, 0.75},
		{90, 0.75},
		{70, 0.50},
		{60, 0.50},
		{45, 0.40},
		{30, 0.40},
		{10, 0.30},
	}
	for _, c := range cases {
		if got := FeedFactor(c.angle); got != c.want {
			t.Errorf("FeedFactor(%v) = %v, want %v", c.angle, got, c.want)
		}
	}
}

func TestFeedFactorsByIndexMapsOnlyCorners(t *testing.T) {
	factors := FeedFactorsByIndex(rightAnglePath(), DefaultAngleThreshold)
	if len(factors) != 1 {
		t.Fatalf("expected 1 corner factor, got %d", len(factors))
	}
	if _, ok := factors[1]; !ok {
		t.Errorf("expected corner at index 1, got %+v", factors)
	}
}
