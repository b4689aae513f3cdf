package ports

import (
	"context"

	"chartprep/domain/core"
	"chartprep/domain/shape"
)

// ArtifactRepository stores computed chart data artifacts
type ArtifactRepository interface {
	Save(ctx context.Context, artifact *shape.ChartData) error
	GetByID(ctx context.Context, id core.ArtifactID) (*shape.ChartData, error)
	List(ctx context.Context, limit, offset int) ([]*shape.ChartData, error)
}
