package reshape

import (
	"errors"
	"math"
	"testing"

	"chartprep/domain/core"
	"chartprep/domain/shape"
	"chartprep/domain/table"
)

func salesDataset() table.Dataset {
	return table.Dataset{Records: []table.Record{
		{"month": table.Text("Jan"), "sales": table.Number(10), "costs": table.Number(5)},
		{"month": table.Text("Feb"), "sales": table.Number(20), "costs": table.Number(1)},
		{"month": table.Text("Mar"), "sales": table.Number(5), "costs": table.Number(5)},
	}}
}

func TestReshape_TotalsInvariant(t *testing.T) {
	records, err := New().Reshape(salesDataset(), Config{
		CategoryField: "month",
		SeriesFields:  []string{"sales", "costs"},
		Options:       shape.DefaultOptions(),
	})
	if err != nil {
		t.Fatalf("Reshape failed: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	for _, record := range records {
		sum := 0.0
		for _, v := range record.Values {
			sum += v.Value
		}
		if math.Abs(sum-record.Total) > 1e-9 {
			t.Errorf("Record %s: sum of values %f != total %f", record.Key, sum, record.Total)
		}
	}
}

func TestReshape_SortOrder(t *testing.T) {
	reshaper := New()

	descending, err := reshaper.Reshape(salesDataset(), Config{
		CategoryField: "month",
		Options:       shape.Options{SortDescending: true},
	})
	if err != nil {
		t.Fatalf("Reshape failed: %v", err)
	}
	for i := 0; i+1 < len(descending); i++ {
		if descending[i].Total < descending[i+1].Total {
			t.Errorf("Descending order violated at %d: %f < %f", i, descending[i].Total, descending[i+1].Total)
		}
	}
	if descending[0].Key != "Feb" || descending[2].Key != "Mar" {
		t.Errorf("Expected Feb first and Mar last, got %s..%s", descending[0].Key, descending[2].Key)
	}

	ascending, err := reshaper.Reshape(salesDataset(), Config{
		CategoryField: "month",
		Options:       shape.Options{SortDescending: false},
	})
	if err != nil {
		t.Fatalf("Reshape failed: %v", err)
	}
	for i := 0; i+1 < len(ascending); i++ {
		if ascending[i].Total > ascending[i+1].Total {
			t.Errorf("Ascending order violated at %d: %f > %f", i, ascending[i].Total, ascending[i+1].Total)
		}
	}
}

func TestReshape_StackedCumulativeOffsets(t *testing.T) {
	records, err := New().Reshape(salesDataset(), Config{
		CategoryField: "month",
		SeriesFields:  []string{"sales", "costs"},
		Options:       shape.Options{Stacked: true, SortDescending: true},
	})
	if err != nil {
		t.Fatalf("Reshape failed: %v", err)
	}

	for _, record := range records {
		cumulative := 0.0
		for i, v := range record.Values {
			if math.Abs(v.PreviousCumulative-cumulative) > 1e-9 {
				t.Errorf("Record %s value %d: previous cumulative %f, expected %f", record.Key, i, v.PreviousCumulative, cumulative)
			}
			cumulative += v.Value
		}
		// Values sorted descending within the record.
		for i := 0; i+1 < len(record.Values); i++ {
			if record.Values[i].Value < record.Values[i+1].Value {
				t.Errorf("Record %s: series not sorted descending", record.Key)
			}
		}
	}
}

func TestReshape_StackedTieKeepsSeriesOrder(t *testing.T) {
	// Mar has sales == costs; the stable sort must keep the configured
	// series order for the tie.
	records, err := New().Reshape(salesDataset(), Config{
		CategoryField: "month",
		SeriesFields:  []string{"sales", "costs"},
		Options:       shape.Options{Stacked: true, SortDescending: true},
	})
	if err != nil {
		t.Fatalf("Reshape failed: %v", err)
	}

	var mar *shape.CategoryRecord
	for i := range records {
		if records[i].Key == "Mar" {
			mar = &records[i]
		}
	}
	if mar == nil {
		t.Fatal("Mar record missing")
	}
	if mar.Values[0].Series != "sales" || mar.Values[1].Series != "costs" {
		t.Errorf("Tie order broken: got %s, %s", mar.Values[0].Series, mar.Values[1].Series)
	}
}

func TestReshape_PercentageRoundTrip(t *testing.T) {
	records, err := New().Reshape(salesDataset(), Config{
		CategoryField: "month",
		Options:       shape.Options{Percentage: true, SortDescending: true},
	})
	if err != nil {
		t.Fatalf("Reshape failed: %v", err)
	}

	sum := 0.0
	for _, record := range records {
		for _, v := range record.Values {
			sum += v.Value
		}
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("Percentage values should sum to 1.0, got %f", sum)
	}
}

func TestReshape_NormalizedPerCategory(t *testing.T) {
	records, err := New().Reshape(salesDataset(), Config{
		CategoryField: "month",
		Options:       shape.Options{Normalized: true, SortDescending: true},
	})
	if err != nil {
		t.Fatalf("Reshape failed: %v", err)
	}

	for _, record := range records {
		sum := 0.0
		for _, v := range record.Values {
			sum += v.Value
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("Record %s: normalized values should sum to 1.0, got %f", record.Key, sum)
		}
	}
}

func TestReshape_InferredSeriesFields(t *testing.T) {
	// No explicit series: all numerical fields except the category.
	records, err := New().Reshape(salesDataset(), Config{
		CategoryField: "month",
		Options:       shape.DefaultOptions(),
	})
	if err != nil {
		t.Fatalf("Reshape failed: %v", err)
	}
	if len(records[0].Values) != 2 {
		t.Errorf("Expected 2 inferred series, got %d", len(records[0].Values))
	}
}

func TestReshape_ZeroGrandTotalFails(t *testing.T) {
	dataset := table.Dataset{Records: []table.Record{
		{"k": table.Text("a"), "v": table.Number(0)},
		{"k": table.Text("b"), "v": table.Number(0)},
	}}

	_, err := New().Reshape(dataset, Config{
		CategoryField: "k",
		Options:       shape.Options{Percentage: true, SortDescending: true},
	})
	if !errors.Is(err, core.ErrDivisionByZero) {
		t.Errorf("Expected ErrDivisionByZero, got %v", err)
	}

	_, err = New().Reshape(dataset, Config{
		CategoryField: "k",
		Options:       shape.Options{Normalized: true, SortDescending: true},
	})
	if !errors.Is(err, core.ErrDivisionByZero) {
		t.Errorf("Expected ErrDivisionByZero for zero category total, got %v", err)
	}
}

func TestReshape_EmptyDataset(t *testing.T) {
	_, err := New().Reshape(table.Dataset{}, Config{CategoryField: "month"})
	if !errors.Is(err, core.ErrEmptyDataset) {
		t.Errorf("Expected ErrEmptyDataset, got %v", err)
	}
}

func TestReshape_MissingField(t *testing.T) {
	dataset := table.Dataset{Records: []table.Record{
		{"month": table.Text("Jan"), "sales": table.Number(10)},
		{"month": table.Text("Feb")},
	}}
	_, err := New().Reshape(dataset, Config{
		CategoryField: "month",
		SeriesFields:  []string{"sales"},
		Options:       shape.DefaultOptions(),
	})
	if !errors.Is(err, core.ErrMissingField) {
		t.Errorf("Expected ErrMissingField, got %v", err)
	}
}

func TestReshape_InvalidFieldType(t *testing.T) {
	dataset := table.Dataset{Records: []table.Record{
		{"month": table.Text("Jan"), "sales": table.Number(10)},
		{"month": table.Text("Feb"), "sales": table.Text("lots")},
	}}
	_, err := New().Reshape(dataset, Config{
		CategoryField: "month",
		SeriesFields:  []string{"sales"},
		Options:       shape.DefaultOptions(),
	})
	if !errors.Is(err, core.ErrInvalidFieldType) {
		t.Errorf("Expected ErrInvalidFieldType, got %v", err)
	}
}

func TestReshape_DoesNotMutateInput(t *testing.T) {
	dataset := salesDataset()
	_, err := New().Reshape(dataset, Config{
		CategoryField: "month",
		Options:       shape.Options{Stacked: true, Percentage: true, SortDescending: true},
	})
	if err != nil {
		t.Fatalf("Reshape failed: %v", err)
	}

	if dataset.Records[0]["sales"].Number != 10 || dataset.Records[1]["sales"].Number != 20 {
		t.Error("Reshape mutated the source dataset")
	}
}
