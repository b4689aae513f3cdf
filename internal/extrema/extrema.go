package extrema

import (
	"chartprep/domain/core"
	"chartprep/domain/shape"
)

// Extract locates the maximum and minimum of a series together with the
// independent-axis position each was observed at. Ties resolve to the
// first occurrence: the scan keeps only strictly-greater (or
// strictly-lesser) candidates.
func Extract[T any](values []float64, positions []T) (shape.CriticalPoints[T], error) {
	var out shape.CriticalPoints[T]

	if len(values) == 0 {
		return out, core.ErrEmptyInput
	}
	if len(values) != len(positions) {
		return out, core.ErrLengthMismatch
	}

	out.Max = shape.CriticalPoint[T]{Value: values[0], Position: positions[0]}
	out.Min = shape.CriticalPoint[T]{Value: values[0], Position: positions[0]}

	for i := 1; i < len(values); i++ {
		if values[i] > out.Max.Value {
			out.Max = shape.CriticalPoint[T]{Value: values[i], Position: positions[i]}
		}
		if values[i] < out.Min.Value {
			out.Min = shape.CriticalPoint[T]{Value: values[i], Position: positions[i]}
		}
	}

	return out, nil
}

// ExtractAll computes critical points for every series column, keyed by
// series name. Positions are shared across series (one per record).
func ExtractAll[T any](series map[string][]float64, positions []T) (map[string]shape.CriticalPoints[T], error) {
	out := make(map[string]shape.CriticalPoints[T], len(series))
	for name, values := range series {
		points, err := Extract(values, positions)
		if err != nil {
			return nil, err
		}
		out[name] = points
	}
	return out, nil
}
