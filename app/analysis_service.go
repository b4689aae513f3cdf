package app

import (
	"context"
	"time"

	"chartprep/domain/core"
	"chartprep/domain/shape"
	"chartprep/domain/table"
	"chartprep/internal"
	"chartprep/internal/errors"
	"chartprep/internal/extrema"
	"chartprep/internal/profile"
	"chartprep/internal/reshape"
	"chartprep/internal/trend"
	"chartprep/ports"

	"golang.org/x/sync/errgroup"
)

// AnalysisService runs the full data-preparation pipeline for one
// dataset: reshape, optional trend fit, extrema and profiles, then
// persists the resulting artifact.
type AnalysisService struct {
	reshaper  *reshape.Reshaper
	estimator *trend.Estimator
	profiler  *profile.Profiler
	artifacts ports.ArtifactRepository
	logger    *internal.Logger
}

// NewAnalysisService creates the service over an artifact store
func NewAnalysisService(artifacts ports.ArtifactRepository) *AnalysisService {
	return &AnalysisService{
		reshaper:  reshape.New(),
		estimator: trend.New(),
		profiler:  profile.New(),
		artifacts: artifacts,
		logger:    internal.DefaultLogger,
	}
}

// TrendRequest selects scatter-style trend fitting over two numerical
// fields grouped by a category field
type TrendRequest struct {
	XField        string `json:"x_field"`
	YField        string `json:"y_field"`
	CategoryField string `json:"category_field"`
}

// AnalysisRequest configures one pipeline run
type AnalysisRequest struct {
	CategoryField string        `json:"category_field"`
	SeriesFields  []string      `json:"series_fields,omitempty"`
	Options       shape.Options `json:"options"`
	Trend         *TrendRequest `json:"trend,omitempty"`
	WithExtrema   bool          `json:"with_extrema"`
	WithProfiles  bool          `json:"with_profiles"`
}

// Analyze runs the pipeline. The reshape, trend, extrema and profile
// computations are independent pure functions, so they run concurrently.
func (s *AnalysisService) Analyze(ctx context.Context, dataset table.Dataset, req AnalysisRequest) (*shape.ChartData, error) {
	if dataset.IsEmpty() {
		return nil, core.ErrEmptyDataset
	}

	cfg := reshape.Config{
		CategoryField: req.CategoryField,
		SeriesFields:  req.SeriesFields,
		Options:       req.Options,
	}
	seriesFields, err := cfg.ResolveSeriesFields(dataset)
	if err != nil {
		return nil, err
	}

	artifact := &shape.ChartData{
		ID:            core.ArtifactID(core.NewID()),
		DatasetID:     dataset.ID,
		CategoryField: req.CategoryField,
		SeriesFields:  seriesFields,
		Options:       req.Options,
		CreatedAt:     time.Now().UTC(),
	}

	var g errgroup.Group

	g.Go(func() error {
		records, err := s.reshaper.Reshape(dataset, cfg)
		if err != nil {
			return errors.Wrap(err, "reshape failed")
		}
		artifact.Records = records
		return nil
	})

	if req.Trend != nil {
		g.Go(func() error {
			points, err := s.buildPoints(dataset, *req.Trend)
			if err != nil {
				return errors.Wrap(err, "trend point extraction failed")
			}
			trends, err := s.estimator.Fit(points)
			if err != nil {
				return errors.Wrap(err, "trend fit failed")
			}
			artifact.Trends = trends
			return nil
		})
	}

	if req.WithExtrema {
		g.Go(func() error {
			positions, err := dataset.LabelColumn(req.CategoryField)
			if err != nil {
				return errors.Wrap(err, "extrema position extraction failed")
			}
			columns := make(map[string][]float64, len(seriesFields))
			for _, field := range seriesFields {
				column, err := dataset.NumericColumn(field)
				if err != nil {
					return errors.Wrapf(err, "extrema column %s failed", field)
				}
				columns[field] = column
			}
			points, err := extrema.ExtractAll(columns, positions)
			if err != nil {
				return errors.Wrap(err, "extrema extraction failed")
			}
			artifact.Extrema = points
			return nil
		})
	}

	if req.WithProfiles {
		g.Go(func() error {
			profiles := make([]shape.SeriesProfile, 0, len(seriesFields))
			for _, field := range seriesFields {
				column, err := dataset.NumericColumn(field)
				if err != nil {
					return errors.Wrapf(err, "profile column %s failed", field)
				}
				p, err := s.profiler.Profile(field, column)
				if err != nil {
					return errors.Wrapf(err, "profile %s failed", field)
				}
				profiles = append(profiles, p)
			}
			artifact.Profiles = profiles
			return nil
		})
	}

	// Each goroutine writes a distinct artifact field, so Wait is the
	// only synchronization needed.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if s.artifacts != nil {
		if err := s.artifacts.Save(ctx, artifact); err != nil {
			s.logger.Error("failed to persist artifact %s: %v", artifact.ID, err)
			return nil, errors.Wrap(err, "artifact save failed")
		}
	}

	s.logger.Debug("analysis %s complete: %d records, %d trends", artifact.ID, len(artifact.Records), len(artifact.Trends))
	return artifact, nil
}

// GetArtifact loads a previously computed artifact
func (s *AnalysisService) GetArtifact(ctx context.Context, id core.ArtifactID) (*shape.ChartData, error) {
	return s.artifacts.GetByID(ctx, id)
}

// ListArtifacts pages through stored artifacts, newest first
func (s *AnalysisService) ListArtifacts(ctx context.Context, limit, offset int) ([]*shape.ChartData, error) {
	return s.artifacts.List(ctx, limit, offset)
}

// buildPoints assembles scatter points from three dataset columns
func (s *AnalysisService) buildPoints(dataset table.Dataset, req TrendRequest) ([]shape.Point, error) {
	xs, err := dataset.NumericColumn(req.XField)
	if err != nil {
		return nil, err
	}
	ys, err := dataset.NumericColumn(req.YField)
	if err != nil {
		return nil, err
	}
	categories, err := dataset.LabelColumn(req.CategoryField)
	if err != nil {
		return nil, err
	}

	points := make([]shape.Point, len(xs))
	for i := range xs {
		points[i] = shape.Point{X: xs[i], Y: ys[i], Category: categories[i]}
	}
	return points, nil
}
