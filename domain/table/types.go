package table

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"chartprep/domain/core"
)

// FieldType classifies a field as numerical or categorical
type FieldType string

const (
	FieldNumerical   FieldType = "numerical"
	FieldCategorical FieldType = "categorical"
)

// Value is a single cell: either a number or a category label.
type Value struct {
	Type   FieldType
	Number float64
	Text   string
}

// Number creates a numerical value
func Number(n float64) Value {
	return Value{Type: FieldNumerical, Number: n}
}

// Text creates a categorical value
func Text(s string) Value {
	return Value{Type: FieldCategorical, Text: s}
}

// IsNumeric returns true for numerical values
func (v Value) IsNumeric() bool {
	return v.Type == FieldNumerical
}

// Label returns the value rendered as a category label. Numerical values
// use the shortest representation that round-trips.
func (v Value) Label() string {
	if v.Type == FieldCategorical {
		return v.Text
	}
	return strconv.FormatFloat(v.Number, 'g', -1, 64)
}

// MarshalJSON emits numbers as JSON numbers and labels as JSON strings
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Type == FieldNumerical {
		return json.Marshal(v.Number)
	}
	return json.Marshal(v.Text)
}

// UnmarshalJSON accepts a JSON number or string
func (v *Value) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = Number(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Text(s)
		return nil
	}
	return fmt.Errorf("value must be a number or a string, got %s", string(data))
}

// Record maps field names to values. A record is one row of a dataset.
type Record map[string]Value

// Dataset is an ordered sequence of records. Order is significant: it
// determines default category ordering downstream.
type Dataset struct {
	ID      core.DatasetID `json:"id,omitempty"`
	Name    string         `json:"name,omitempty"`
	Records []Record       `json:"records"`
}

// New creates a dataset over the given records
func New(records []Record) Dataset {
	return Dataset{ID: core.DatasetID(core.NewID()), Records: records}
}

// Len returns the number of records
func (d Dataset) Len() int {
	return len(d.Records)
}

// IsEmpty reports whether the dataset has no records
func (d Dataset) IsEmpty() bool {
	return len(d.Records) == 0
}

// FieldTypes infers the classification of every field by sampling the
// first record. Classification is fixed for the lifetime of a dataset;
// consumers that pull whole columns enforce consistency across records.
func (d Dataset) FieldTypes() (map[string]FieldType, error) {
	if d.IsEmpty() {
		return nil, core.ErrEmptyDataset
	}
	types := make(map[string]FieldType, len(d.Records[0]))
	for field, value := range d.Records[0] {
		types[field] = value.Type
	}
	return types, nil
}

// NumericFields returns all numerical field names in lexicographic order.
// Map iteration order is not stable, so the sort keeps inference
// deterministic across runs.
func (d Dataset) NumericFields() ([]string, error) {
	types, err := d.FieldTypes()
	if err != nil {
		return nil, err
	}
	var fields []string
	for field, ft := range types {
		if ft == FieldNumerical {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)
	return fields, nil
}

// NumericColumn extracts one numerical field as a column, in record order.
// Every record must carry the field with a numeric value.
func (d Dataset) NumericColumn(field string) ([]float64, error) {
	if d.IsEmpty() {
		return nil, core.ErrEmptyDataset
	}
	column := make([]float64, len(d.Records))
	for i, record := range d.Records {
		value, ok := record[field]
		if !ok {
			return nil, core.NewMissingFieldError(field, i)
		}
		if !value.IsNumeric() {
			return nil, core.NewInvalidFieldTypeError(field, i, string(value.Type))
		}
		column[i] = value.Number
	}
	return column, nil
}

// LabelColumn extracts one field as category labels, in record order
func (d Dataset) LabelColumn(field string) ([]string, error) {
	if d.IsEmpty() {
		return nil, core.ErrEmptyDataset
	}
	labels := make([]string, len(d.Records))
	for i, record := range d.Records {
		value, ok := record[field]
		if !ok {
			return nil, core.NewMissingFieldError(field, i)
		}
		labels[i] = value.Label()
	}
	return labels, nil
}
