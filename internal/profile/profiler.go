package profile

import (
	"math"

	"chartprep/domain/core"
	"chartprep/domain/shape"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Profiler summarizes series distributions for chart annotations
// (reference lines, outlier markers, normality hints)
type Profiler struct{}

// New creates a new profiler
func New() *Profiler {
	return &Profiler{}
}

// Profile computes the distribution summary for one series
func (p *Profiler) Profile(series string, data []float64) (shape.SeriesProfile, error) {
	if len(data) == 0 {
		return shape.SeriesProfile{}, core.ErrEmptyInput
	}

	mean, _ := stats.Mean(data)
	stdDev, _ := stats.StandardDeviation(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	median, _ := stats.Median(data)
	q25, _ := stats.Percentile(data, 25)
	q75, _ := stats.Percentile(data, 75)

	skewness := calculateSkewness(data, mean, stdDev)
	kurtosis := calculateKurtosis(data, mean, stdDev)
	isNormal, normalityP := testNormality(skewness, kurtosis, len(data))

	return shape.SeriesProfile{
		Series:       series,
		Count:        len(data),
		Mean:         mean,
		StdDev:       stdDev,
		Min:          min,
		Max:          max,
		Median:       median,
		Q25:          q25,
		Q75:          q75,
		Skewness:     skewness,
		Kurtosis:     kurtosis,
		IsNormal:     isNormal,
		NormalityP:   normalityP,
		OutlierCount: detectOutliers(data, q25, q75),
	}, nil
}

// calculateSkewness computes the adjusted Fisher-Pearson coefficient
func calculateSkewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sumCubedDeviations := 0.0

	for _, x := range data {
		deviation := (x - mean) / stdDev
		sumCubedDeviations += deviation * deviation * deviation
	}

	skewness := sumCubedDeviations / n
	correction := math.Sqrt(n*(n-1)) / (n - 2)
	return skewness * correction
}

// calculateKurtosis computes total (not excess) sample kurtosis
func calculateKurtosis(data []float64, mean, stdDev float64) float64 {
	if len(data) < 4 || stdDev == 0 {
		return 3.0 // Normal kurtosis
	}

	n := float64(len(data))
	sumFourthDeviations := 0.0

	for _, x := range data {
		deviation := (x - mean) / stdDev
		sumFourthDeviations += deviation * deviation * deviation * deviation
	}

	kurtosis := sumFourthDeviations / n

	// Bias correction for sample excess kurtosis
	if n > 3 {
		correction := (n - 1) / ((n - 2) * (n - 3))
		kurtosis = kurtosis*correction + 6/(n+1)
	}

	return kurtosis + 3
}

// testNormality runs a Jarque-Bera-like approximation over skewness and
// excess kurtosis, with p-values from the chi-square distribution
func testNormality(skewness, kurtosis float64, n int) (isNormal bool, pValue float64) {
	if n < 3 {
		return false, 1.0
	}

	excess := kurtosis - 3
	testStat := math.Abs(skewness) + math.Abs(excess)/2

	chiDist := distuv.ChiSquared{K: 2}
	pValue = 1 - chiDist.CDF(testStat*testStat)

	isNormal = pValue > 0.05
	return isNormal, pValue
}

// detectOutliers counts values outside the 1.5*IQR fence
func detectOutliers(data []float64, q25, q75 float64) int {
	iqr := q75 - q25
	lowerBound := q25 - 1.5*iqr
	upperBound := q75 + 1.5*iqr

	outlierCount := 0
	for _, x := range data {
		if x < lowerBound || x > upperBound {
			outlierCount++
		}
	}

	return outlierCount
}
