package trend

import (
	"errors"
	"math"
	"testing"

	"chartprep/domain/core"
	"chartprep/domain/shape"
)

func TestFit_ExactLinearData(t *testing.T) {
	points := []shape.Point{
		{X: 1, Y: 2, Category: "a"},
		{X: 2, Y: 4, Category: "a"},
		{X: 3, Y: 6, Category: "a"},
	}

	segments, err := New().Fit(points)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("Expected 1 segment, got %d", len(segments))
	}

	seg := segments[0]
	if math.Abs(seg.Slope-2.0) > 1e-9 {
		t.Errorf("Expected slope 2, got %f", seg.Slope)
	}
	if math.Abs(seg.Intercept) > 1e-9 {
		t.Errorf("Expected intercept 0, got %f", seg.Intercept)
	}
	if seg.XMin != 1 || seg.XMax != 3 {
		t.Errorf("Expected x range [1,3], got [%f,%f]", seg.XMin, seg.XMax)
	}
	if math.Abs(seg.YAtXMin-2.0) > 1e-9 || math.Abs(seg.YAtXMax-6.0) > 1e-9 {
		t.Errorf("Expected segment endpoints (2,6), got (%f,%f)", seg.YAtXMin, seg.YAtXMax)
	}
	if math.Abs(seg.RSquared-1.0) > 1e-9 {
		t.Errorf("Expected R²=1 for exact linear data, got %f", seg.RSquared)
	}
	if math.Abs(seg.Correlation-1.0) > 1e-9 {
		t.Errorf("Expected correlation 1, got %f", seg.Correlation)
	}
}

func TestFit_DegenerateCollinearX(t *testing.T) {
	points := []shape.Point{
		{X: 5, Y: 1, Category: "a"},
		{X: 5, Y: 2, Category: "a"},
		{X: 5, Y: 3, Category: "a"},
	}

	_, err := New().Fit(points)
	if !errors.Is(err, core.ErrDegenerateFit) {
		t.Errorf("Expected ErrDegenerateFit, got %v", err)
	}
}

func TestFit_SinglePointIsDegenerate(t *testing.T) {
	// One point has zero x spread, so the denominator is zero too.
	_, err := New().Fit([]shape.Point{{X: 1, Y: 1, Category: "a"}})
	if !errors.Is(err, core.ErrDegenerateFit) {
		t.Errorf("Expected ErrDegenerateFit for single point, got %v", err)
	}
}

func TestFit_CategoryOrderFollowsFirstOccurrence(t *testing.T) {
	points := []shape.Point{
		{X: 1, Y: 1, Category: "beta"},
		{X: 1, Y: 1, Category: "alpha"},
		{X: 2, Y: 2, Category: "beta"},
		{X: 2, Y: 3, Category: "alpha"},
	}

	segments, err := New().Fit(points)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(segments))
	}
	if segments[0].Category != "beta" || segments[1].Category != "alpha" {
		t.Errorf("Expected first-occurrence order [beta alpha], got [%s %s]", segments[0].Category, segments[1].Category)
	}
}

func TestFit_PerCategorySlopes(t *testing.T) {
	points := []shape.Point{
		// y = x
		{X: 0, Y: 0, Category: "up"},
		{X: 1, Y: 1, Category: "up"},
		{X: 2, Y: 2, Category: "up"},
		// y = -2x + 10
		{X: 0, Y: 10, Category: "down"},
		{X: 1, Y: 8, Category: "down"},
		{X: 2, Y: 6, Category: "down"},
	}

	segments, err := New().Fit(points)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	bySlope := map[string]float64{}
	for _, seg := range segments {
		bySlope[seg.Category] = seg.Slope
	}
	if math.Abs(bySlope["up"]-1.0) > 1e-9 {
		t.Errorf("Expected slope 1 for up, got %f", bySlope["up"])
	}
	if math.Abs(bySlope["down"]+2.0) > 1e-9 {
		t.Errorf("Expected slope -2 for down, got %f", bySlope["down"])
	}
}

func TestFit_NoisyDataStaysFinite(t *testing.T) {
	points := []shape.Point{
		{X: 1, Y: 2.1, Category: "a"},
		{X: 2, Y: 3.9, Category: "a"},
		{X: 3, Y: 6.2, Category: "a"},
		{X: 4, Y: 7.8, Category: "a"},
	}

	segments, err := New().Fit(points)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	seg := segments[0]
	if math.IsNaN(seg.Slope) || math.IsInf(seg.Slope, 0) {
		t.Errorf("Slope must be finite, got %f", seg.Slope)
	}
	if seg.RSquared < 0.9 {
		t.Errorf("Expected strong fit for near-linear data, got R²=%f", seg.RSquared)
	}
	t.Logf("Fit: slope=%.3f intercept=%.3f r²=%.3f", seg.Slope, seg.Intercept, seg.RSquared)
}

func TestFit_EmptyInput(t *testing.T) {
	_, err := New().Fit(nil)
	if !errors.Is(err, core.ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}
}
