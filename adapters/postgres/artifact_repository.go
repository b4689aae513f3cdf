package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"chartprep/domain/core"
	"chartprep/domain/shape"
	"chartprep/ports"

	"github.com/jmoiron/sqlx"
)

// artifactRepository implements the ArtifactRepository interface over
// Postgres, storing the computed payload as JSONB
type artifactRepository struct {
	db *sqlx.DB
}

// NewArtifactRepository creates a new artifact repository
func NewArtifactRepository(db *sqlx.DB) ports.ArtifactRepository {
	return &artifactRepository{db: db}
}

const artifactSchema = `CREATE TABLE IF NOT EXISTS chart_artifacts (
	id TEXT PRIMARY KEY,
	dataset_id TEXT,
	category_field TEXT NOT NULL,
	payload JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`

// EnsureSchema creates the artifact table when it does not exist yet
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, artifactSchema); err != nil {
		return fmt.Errorf("failed to create chart_artifacts table: %w", err)
	}
	return nil
}

// Save inserts or replaces an artifact
func (r *artifactRepository) Save(ctx context.Context, artifact *shape.ChartData) error {
	payload, err := json.Marshal(artifact)
	if err != nil {
		return fmt.Errorf("failed to marshal artifact payload: %w", err)
	}

	query := `INSERT INTO chart_artifacts (id, dataset_id, category_field, payload, created_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload`

	_, err = r.db.ExecContext(ctx, query,
		artifact.ID.String(), artifact.DatasetID.String(), artifact.CategoryField, payload, artifact.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact: %w", err)
	}
	return nil
}

// GetByID retrieves an artifact by its ID
func (r *artifactRepository) GetByID(ctx context.Context, id core.ArtifactID) (*shape.ChartData, error) {
	query := `SELECT payload FROM chart_artifacts WHERE id = $1`

	var payload []byte
	err := r.db.QueryRowContext(ctx, query, id.String()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrArtifactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load artifact %s: %w", id, err)
	}

	var artifact shape.ChartData
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return nil, fmt.Errorf("failed to unmarshal artifact %s: %w", id, err)
	}
	return &artifact, nil
}

// List returns artifacts ordered newest first
func (r *artifactRepository) List(ctx context.Context, limit, offset int) ([]*shape.ChartData, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT payload FROM chart_artifacts ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []*shape.ChartData
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan artifact row: %w", err)
		}
		var artifact shape.ChartData
		if err := json.Unmarshal(payload, &artifact); err != nil {
			return nil, fmt.Errorf("failed to unmarshal artifact row: %w", err)
		}
		artifacts = append(artifacts, &artifact)
	}
	return artifacts, rows.Err()
}
