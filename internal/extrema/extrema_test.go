package extrema

import (
	"errors"
	"testing"

	"chartprep/domain/core"
)

func TestExtract_TieBreakFirstOccurrence(t *testing.T) {
	values := []float64{3, 5, 5, 1}
	positions := []string{"a", "b", "c", "d"}

	points, err := Extract(values, positions)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if points.Max.Value != 5 || points.Max.Position != "b" {
		t.Errorf("Expected max (5, b), got (%f, %s)", points.Max.Value, points.Max.Position)
	}
	if points.Min.Value != 1 || points.Min.Position != "d" {
		t.Errorf("Expected min (1, d), got (%f, %s)", points.Min.Value, points.Min.Position)
	}
}

func TestExtract_SingleValue(t *testing.T) {
	points, err := Extract([]float64{7}, []string{"only"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if points.Max.Value != 7 || points.Min.Value != 7 {
		t.Errorf("Single value should be both max and min, got %f/%f", points.Max.Value, points.Min.Value)
	}
}

func TestExtract_NumericPositions(t *testing.T) {
	values := []float64{-2, 0, -5}
	positions := []float64{10, 20, 30}

	points, err := Extract(values, positions)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if points.Max.Position != 20 {
		t.Errorf("Expected max at position 20, got %f", points.Max.Position)
	}
	if points.Min.Position != 30 {
		t.Errorf("Expected min at position 30, got %f", points.Min.Position)
	}
}

func TestExtract_EmptyInput(t *testing.T) {
	_, err := Extract[string](nil, nil)
	if !errors.Is(err, core.ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}
}

func TestExtract_LengthMismatch(t *testing.T) {
	_, err := Extract([]float64{1, 2}, []string{"a"})
	if !errors.Is(err, core.ErrLengthMismatch) {
		t.Errorf("Expected ErrLengthMismatch, got %v", err)
	}
}

func TestExtractAll(t *testing.T) {
	series := map[string][]float64{
		"sales": {10, 20, 5},
		"costs": {5, 1, 5},
	}
	positions := []string{"Jan", "Feb", "Mar"}

	points, err := ExtractAll(series, positions)
	if err != nil {
		t.Fatalf("ExtractAll failed: %v", err)
	}

	if points["sales"].Max.Position != "Feb" {
		t.Errorf("Expected sales max at Feb, got %s", points["sales"].Max.Position)
	}
	if points["costs"].Min.Position != "Feb" {
		t.Errorf("Expected costs min at Feb, got %s", points["costs"].Min.Position)
	}
	// costs ties at 5 for Jan and Mar: first occurrence wins.
	if points["costs"].Max.Position != "Jan" {
		t.Errorf("Expected costs max at Jan (first occurrence), got %s", points["costs"].Max.Position)
	}
}

func TestExtractAll_PropagatesErrors(t *testing.T) {
	_, err := ExtractAll(map[string][]float64{"empty": {}}, []string{})
	if !errors.Is(err, core.ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}
}
