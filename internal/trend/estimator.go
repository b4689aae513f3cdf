package trend

import (
	"chartprep/domain/core"
	"chartprep/domain/shape"

	"gonum.org/v1/gonum/stat"
)

// Estimator fits an ordinary least-squares line per category for
// scatter-style data, producing segments clipped to each category's
// observed x range. Pure function of its input; category order follows
// first occurrence in the point stream.
type Estimator struct{}

// New creates a new trend estimator
func New() *Estimator {
	return &Estimator{}
}

// accumulator carries the running sums an OLS fit needs
type accumulator struct {
	n                        int
	sumX, sumXX, sumY, sumXY float64
	xMin, xMax               float64
	xs, ys                   []float64
}

// Fit computes a TrendSegment per category. Collinear x within a
// category is a DegenerateFit error, never a NaN slope.
func (e *Estimator) Fit(points []shape.Point) ([]shape.TrendSegment, error) {
	if len(points) == 0 {
		return nil, core.ErrEmptyInput
	}

	groups := make(map[string]*accumulator)
	var order []string

	for _, p := range points {
		acc, ok := groups[p.Category]
		if !ok {
			acc = &accumulator{xMin: p.X, xMax: p.X}
			groups[p.Category] = acc
			order = append(order, p.Category)
		}
		acc.n++
		acc.sumX += p.X
		acc.sumXX += p.X * p.X
		acc.sumY += p.Y
		acc.sumXY += p.X * p.Y
		if p.X < acc.xMin {
			acc.xMin = p.X
		}
		if p.X > acc.xMax {
			acc.xMax = p.X
		}
		acc.xs = append(acc.xs, p.X)
		acc.ys = append(acc.ys, p.Y)
	}

	segments := make([]shape.TrendSegment, 0, len(order))
	for _, category := range order {
		acc := groups[category]
		n := float64(acc.n)

		denominator := acc.sumXX - acc.sumX*acc.sumX/n
		if denominator == 0 {
			return nil, core.NewDegenerateFitError(category)
		}

		slope := (acc.sumXY - acc.sumX*acc.sumY/n) / denominator
		intercept := (acc.sumY - slope*acc.sumX) / n

		segment := shape.TrendSegment{
			Category:  category,
			Slope:     slope,
			Intercept: intercept,
			XMin:      acc.xMin,
			XMax:      acc.xMax,
			YAtXMin:   slope*acc.xMin + intercept,
			YAtXMax:   slope*acc.xMax + intercept,
			N:         acc.n,
		}

		// Diagnostics need at least two points to mean anything.
		if acc.n >= 2 {
			segment.RSquared = stat.RSquared(acc.xs, acc.ys, nil, intercept, slope)
			segment.Correlation = stat.Correlation(acc.xs, acc.ys, nil)
		}

		segments = append(segments, segment)
	}

	return segments, nil
}
