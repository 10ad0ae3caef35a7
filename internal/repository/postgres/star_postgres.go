package postgres

import (
	"context"
	"database/sql"
	"time"

	"skystash/internal/model"
	"skystash/internal/repository"
)

// StarPostgres is a PostgreSQL implementation of repository.StarRepository.
type StarPostgres struct {
	db *sql.DB
}

// NewStarPostgres creates a new StarPostgres repository.
func NewStarPostgres(db *sql.DB) *StarPostgres {
	return &StarPostgres{db: db}
}

var _ repository.StarRepository = (*StarPostgres)(nil)

// Add inserts a star; the unique (user_id, node_id) index makes it idempotent.
func (r *StarPostgres) Add(ctx context.Context, userID, nodeID string, at time.Time) error {
	const q = `
		INSERT INTO stars (user_id, node_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, node_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, q, userID, nodeID, at)
	return err
}

// Remove deletes a star. Missing rows are not an error.
func (r *StarPostgres) Remove(ctx context.Context, userID, nodeID string) error {
	const q = `DELETE FROM stars WHERE user_id = $1 AND node_id = $2`
	_, err := r.db.ExecContext(ctx, q, userID, nodeID)
	return err
}

// ListNodes joins stars to nodes, newest star first. Stars pointing at missing,
// foreign, trashed or hidden nodes fall out of the join.
func (r *StarPostgres) ListNodes(ctx context.Context, userID string) ([]model.NodeView, error) {
	const q = hiddenCTE + `
		SELECT ` + nodeColumns + `, TRUE
		FROM stars s
		JOIN nodes n ON n.id = s.node_id
		WHERE s.user_id = $1 AND n.owner_id = $1
		  AND NOT EXISTS (SELECT 1 FROM hidden h WHERE h.id = n.id)
		ORDER BY s.created_at DESC, n.id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	return scanNodeViews(rows)
}
