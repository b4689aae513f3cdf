package profile

import (
	"errors"
	"math"
	"testing"

	"chartprep/domain/core"
)

func TestProfile_SummaryStats(t *testing.T) {
	data := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	p, err := New().Profile("load", data)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}

	if p.Series != "load" {
		t.Errorf("Expected series name load, got %s", p.Series)
	}
	if p.Count != 8 {
		t.Errorf("Expected count 8, got %d", p.Count)
	}
	if math.Abs(p.Mean-5.0) > 1e-9 {
		t.Errorf("Expected mean 5, got %f", p.Mean)
	}
	if p.Min != 2 || p.Max != 9 {
		t.Errorf("Expected range [2,9], got [%f,%f]", p.Min, p.Max)
	}
	if math.Abs(p.Median-4.5) > 1e-9 {
		t.Errorf("Expected median 4.5, got %f", p.Median)
	}
	if p.Q25 > p.Median || p.Median > p.Q75 {
		t.Errorf("Quartiles out of order: q25=%f median=%f q75=%f", p.Q25, p.Median, p.Q75)
	}
}

func TestProfile_OutlierDetection(t *testing.T) {
	data := []float64{10, 11, 9, 10, 12, 10, 11, 9, 10, 1000}

	p, err := New().Profile("spiky", data)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if p.OutlierCount < 1 {
		t.Errorf("Expected at least one outlier, got %d", p.OutlierCount)
	}
	t.Logf("Profile: mean=%.2f stddev=%.2f outliers=%d", p.Mean, p.StdDev, p.OutlierCount)
}

func TestProfile_ConstantSeries(t *testing.T) {
	p, err := New().Profile("flat", []float64{3, 3, 3, 3})
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if p.StdDev != 0 {
		t.Errorf("Expected zero stddev, got %f", p.StdDev)
	}
	if p.Skewness != 0 {
		t.Errorf("Expected zero skewness for constant data, got %f", p.Skewness)
	}
	if math.IsNaN(p.Kurtosis) {
		t.Error("Kurtosis must not be NaN for constant data")
	}
}

func TestProfile_NormalityBounds(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	p, err := New().Profile("seq", data)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if p.NormalityP < 0 || p.NormalityP > 1 {
		t.Errorf("Normality p-value out of [0,1]: %f", p.NormalityP)
	}
}

func TestProfile_EmptyInput(t *testing.T) {
	_, err := New().Profile("empty", nil)
	if !errors.Is(err, core.ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}
}
