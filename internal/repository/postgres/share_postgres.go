package postgres

import (
	"context"
	"database/sql"

	"skystash/internal/model"
	"skystash/internal/repository"
)

// SharePostgres is a PostgreSQL implementation of repository.ShareRepository.
type SharePostgres struct {
	db *sql.DB
}

// NewSharePostgres creates a new SharePostgres repository.
func NewSharePostgres(db *sql.DB) *SharePostgres {
	return &SharePostgres{db: db}
}

var _ repository.ShareRepository = (*SharePostgres)(nil)

// Upsert inserts a grant or updates the role of the existing (resource, grantee) grant.
func (r *SharePostgres) Upsert(ctx context.Context, s *model.Share) (*model.Share, error) {
	const q = `
		INSERT INTO shares (id, resource_id, grantee_user_id, role, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (resource_id, grantee_user_id) DO UPDATE SET role = EXCLUDED.role
		RETURNING id, resource_id, grantee_user_id, role, created_by, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		s.ID,
		s.ResourceID,
		s.GranteeUserID,
		s.Role,
		s.CreatedBy,
		s.CreatedAt,
	)
	var out model.Share
	if err := row.Scan(
		&out.ID,
		&out.ResourceID,
		&out.GranteeUserID,
		&out.Role,
		&out.CreatedBy,
		&out.CreatedAt,
	); err != nil {
		return nil, translateError(err)
	}
	return &out, nil
}

// Delete removes a grant created by createdBy.
func (r *SharePostgres) Delete(ctx context.Context, createdBy, id string) error {
	const q = `DELETE FROM shares WHERE id = $1 AND created_by = $2`
	_, err := r.db.ExecContext(ctx, q, id, createdBy)
	return err
}

// ListByResource returns the creator's grants on a resource.
func (r *SharePostgres) ListByResource(ctx context.Context, createdBy, resourceID string) ([]model.Share, error) {
	const q = `
		SELECT id, resource_id, grantee_user_id, role, created_by, created_at
		FROM shares
		WHERE resource_id = $1 AND created_by = $2
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, resourceID, createdBy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Share, 0)
	for rows.Next() {
		var s model.Share
		if err := rows.Scan(
			&s.ID,
			&s.ResourceID,
			&s.GranteeUserID,
			&s.Role,
			&s.CreatedBy,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
