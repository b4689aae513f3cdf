package memory

import (
	"context"
	"sort"
	"sync"

	"chartprep/domain/core"
	"chartprep/domain/shape"
	"chartprep/ports"
)

// artifactRepository is the in-memory ArtifactRepository used when no
// database is configured
type artifactRepository struct {
	mu        sync.RWMutex
	artifacts map[core.ArtifactID]*shape.ChartData
}

// NewArtifactRepository creates an empty in-memory artifact store
func NewArtifactRepository() ports.ArtifactRepository {
	return &artifactRepository{
		artifacts: make(map[core.ArtifactID]*shape.ChartData),
	}
}

func (r *artifactRepository) Save(ctx context.Context, artifact *shape.ChartData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *artifact
	r.artifacts[artifact.ID] = &copied
	return nil
}

func (r *artifactRepository) GetByID(ctx context.Context, id core.ArtifactID) (*shape.ChartData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	artifact, ok := r.artifacts[id]
	if !ok {
		return nil, core.ErrArtifactNotFound
	}
	copied := *artifact
	return &copied, nil
}

func (r *artifactRepository) List(ctx context.Context, limit, offset int) ([]*shape.ChartData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*shape.ChartData, 0, len(r.artifacts))
	for _, artifact := range r.artifacts {
		all = append(all, artifact)
	}
	// Newest first; IDs break ties so paging stays deterministic.
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}

	out := make([]*shape.ChartData, len(all))
	for i, artifact := range all {
		copied := *artifact
		out[i] = &copied
	}
	return out, nil
}
