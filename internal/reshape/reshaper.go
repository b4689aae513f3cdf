package reshape

import (
	"fmt"
	"sort"

	"chartprep/domain/core"
	"chartprep/domain/shape"
	"chartprep/domain/table"
)

// Reshaper converts a raw dataset plus a declarative configuration into
// per-category, per-series records ready for layout. It owns no state;
// Reshape is a pure function of (dataset, config).
type Reshaper struct{}

// New creates a new reshaper
func New() *Reshaper {
	return &Reshaper{}
}

// Config names the independent field and the dependent series to plot
type Config struct {
	// CategoryField is the independent/category axis field.
	CategoryField string
	// SeriesFields are the numerical fields to plot. Empty means "all
	// numerical fields except CategoryField", in lexicographic order.
	SeriesFields []string
	Options      shape.Options
}

// Reshape produces one CategoryRecord per input record, sorted by total.
// Percentage and normalized scaling never emit NaN: a zero grand total or
// zero category total fails with ErrDivisionByZero instead.
func (r *Reshaper) Reshape(dataset table.Dataset, cfg Config) ([]shape.CategoryRecord, error) {
	if dataset.IsEmpty() {
		return nil, core.ErrEmptyDataset
	}

	seriesFields, err := cfg.ResolveSeriesFields(dataset)
	if err != nil {
		return nil, err
	}

	keys, err := dataset.LabelColumn(cfg.CategoryField)
	if err != nil {
		return nil, err
	}

	// First pass: per-record per-series values and per-record totals.
	records := make([]shape.CategoryRecord, len(dataset.Records))
	for i, source := range dataset.Records {
		values := make([]shape.SeriesValue, len(seriesFields))
		total := 0.0
		for j, field := range seriesFields {
			value, ok := source[field]
			if !ok {
				return nil, core.NewMissingFieldError(field, i)
			}
			if !value.IsNumeric() {
				return nil, core.NewInvalidFieldTypeError(field, i, string(value.Type))
			}
			values[j] = shape.SeriesValue{Series: field, Value: value.Number}
			total += value.Number
		}
		records[i] = shape.CategoryRecord{Key: keys[i], Values: values, Total: total}
	}

	// Second pass: grand total, only when percentage scaling needs it.
	scale := 1.0
	if cfg.Options.Percentage {
		grandTotal := 0.0
		for _, record := range records {
			grandTotal += record.Total
		}
		if grandTotal == 0 {
			return nil, core.NewDivisionByZeroError("grand")
		}
		scale = 1.0 / grandTotal
	}

	for i := range records {
		record := &records[i]

		categoryScale := scale
		if cfg.Options.Normalized {
			if record.Total == 0 {
				return nil, core.NewDivisionByZeroError("category")
			}
			categoryScale /= record.Total
		}

		// Series within a record rank by descending value; stable so
		// equal values keep their configured series order.
		sort.SliceStable(record.Values, func(a, b int) bool {
			return record.Values[a].Value > record.Values[b].Value
		})

		cumulative := 0.0
		for j := range record.Values {
			sv := &record.Values[j]
			sv.Value *= categoryScale
			if cfg.Options.Stacked {
				sv.PreviousCumulative = cumulative
				cumulative += sv.Value
			}
		}
	}

	// Stable sort keeps input order for equal totals: source order is
	// significant in the data model.
	if cfg.Options.SortDescending {
		sort.SliceStable(records, func(a, b int) bool {
			return records[a].Total > records[b].Total
		})
	} else {
		sort.SliceStable(records, func(a, b int) bool {
			return records[a].Total < records[b].Total
		})
	}

	return records, nil
}

// ResolveSeriesFields applies the "all numerical fields except the
// category field" default when no explicit series selection is given
func (cfg Config) ResolveSeriesFields(dataset table.Dataset) ([]string, error) {
	if len(cfg.SeriesFields) > 0 {
		return cfg.SeriesFields, nil
	}
	numeric, err := dataset.NumericFields()
	if err != nil {
		return nil, err
	}
	var fields []string
	for _, field := range numeric {
		if field != cfg.CategoryField {
			fields = append(fields, field)
		}
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no numerical series fields besides %q", core.ErrMissingField, cfg.CategoryField)
	}
	return fields, nil
}
