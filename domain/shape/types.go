package shape

import (
	"time"

	"chartprep/domain/core"
)

// Options controls how a dataset is reshaped for layout
type Options struct {
	// Stacked annotates each series value with the cumulative offset of
	// the series ranked above it. Unstacked output leaves offsets zero
	// and the renderer positions series side by side instead.
	Stacked bool `json:"stacked"`
	// Percentage divides every value by the grand total across the
	// entire dataset and all series.
	Percentage bool `json:"percentage"`
	// Normalized divides every value within a category by that
	// category's own total. Combines multiplicatively with Percentage.
	Normalized bool `json:"normalized"`
	// SortDescending orders records by descending total; false reverses.
	SortDescending bool `json:"sort_descending"`
}

// DefaultOptions returns the reshaper defaults: grouped output sorted
// by descending total
func DefaultOptions() Options {
	return Options{SortDescending: true}
}

// SeriesValue is one series contribution within a category
type SeriesValue struct {
	Series string  `json:"series"`
	Value  float64 `json:"value"`
	// PreviousCumulative is the sum of values over all series ranked
	// above this one in the same record. Zero when not stacked.
	PreviousCumulative float64 `json:"previous_cumulative"`
}

// CategoryRecord is one reshaped source record: the category key, the
// per-series values sorted by value descending, and the pre-scaling total
type CategoryRecord struct {
	Key    string        `json:"key"`
	Values []SeriesValue `json:"values"`
	Total  float64       `json:"total"`
}

// Point is a scatter observation belonging to a category
type Point struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Category string  `json:"category"`
}

// TrendSegment is an ordinary least-squares line for one category,
// clipped to the category's observed x range for overlay rendering
type TrendSegment struct {
	Category  string  `json:"category"`
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	XMin      float64 `json:"x_min"`
	XMax      float64 `json:"x_max"`
	YAtXMin   float64 `json:"y_at_x_min"`
	YAtXMax   float64 `json:"y_at_x_max"`
	// Fit diagnostics
	RSquared    float64 `json:"r_squared"`
	Correlation float64 `json:"correlation"`
	N           int     `json:"n"`
}

// CriticalPoint is an extreme value and the independent-axis position
// it was observed at
type CriticalPoint[T any] struct {
	Value    float64 `json:"value"`
	Position T       `json:"position"`
}

// CriticalPoints holds the per-series extremes. Derived, read-only,
// recomputed on demand.
type CriticalPoints[T any] struct {
	Max CriticalPoint[T] `json:"max"`
	Min CriticalPoint[T] `json:"min"`
}

// SeriesProfile summarizes the distribution of one numerical series
type SeriesProfile struct {
	Series       string  `json:"series"`
	Count        int     `json:"count"`
	Mean         float64 `json:"mean"`
	StdDev       float64 `json:"std_dev"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Median       float64 `json:"median"`
	Q25          float64 `json:"q25"`
	Q75          float64 `json:"q75"`
	Skewness     float64 `json:"skewness"`
	Kurtosis     float64 `json:"kurtosis"`
	IsNormal     bool    `json:"is_normal"`
	NormalityP   float64 `json:"normality_p"`
	OutlierCount int     `json:"outlier_count"`
}

// ChartData is the full analysis artifact handed to a renderer: reshaped
// records plus the optional trend, extrema and profile overlays
type ChartData struct {
	ID            core.ArtifactID                   `json:"id"`
	DatasetID     core.DatasetID                    `json:"dataset_id,omitempty"`
	CategoryField string                            `json:"category_field"`
	SeriesFields  []string                          `json:"series_fields"`
	Options       Options                           `json:"options"`
	Records       []CategoryRecord                  `json:"records"`
	Trends        []TrendSegment                    `json:"trends,omitempty"`
	Extrema       map[string]CriticalPoints[string] `json:"extrema,omitempty"`
	Profiles      []SeriesProfile                   `json:"profiles,omitempty"`
	CreatedAt     time.Time                         `json:"created_at"`
}
