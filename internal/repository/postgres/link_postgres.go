package postgres

import (
	"context"
	"database/sql"

	"skystash/internal/model"
	"skystash/internal/repository"
)

// LinkPostgres is a PostgreSQL implementation of repository.LinkRepository.
type LinkPostgres struct {
	db *sql.DB
}

// NewLinkPostgres creates a new LinkPostgres repository.
func NewLinkPostgres(db *sql.DB) *LinkPostgres {
	return &LinkPostgres{db: db}
}

var _ repository.LinkRepository = (*LinkPostgres)(nil)

const linkColumns = `id, resource_id, token, created_by, created_at`

func scanLink(row rowScanner) (*model.LinkShare, error) {
	var l model.LinkShare
	if err := row.Scan(&l.ID, &l.ResourceID, &l.Token, &l.CreatedBy, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

// Create inserts a link, returning the creator's existing link for the resource if there is one.
// The no-op DO UPDATE makes RETURNING yield the existing row on conflict.
func (r *LinkPostgres) Create(ctx context.Context, l *model.LinkShare) (*model.LinkShare, error) {
	const q = `
		INSERT INTO link_shares (id, resource_id, token, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (resource_id, created_by) DO UPDATE SET resource_id = EXCLUDED.resource_id
		RETURNING ` + linkColumns
	out, err := scanLink(r.db.QueryRowContext(ctx, q, l.ID, l.ResourceID, l.Token, l.CreatedBy, l.CreatedAt))
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// FindByResource returns the creator's link for a resource.
func (r *LinkPostgres) FindByResource(ctx context.Context, createdBy, resourceID string) (*model.LinkShare, error) {
	const q = `SELECT ` + linkColumns + ` FROM link_shares WHERE resource_id = $1 AND created_by = $2`
	return scanLink(r.db.QueryRowContext(ctx, q, resourceID, createdBy))
}

// FindByToken returns the link holding token.
func (r *LinkPostgres) FindByToken(ctx context.Context, token string) (*model.LinkShare, error) {
	const q = `SELECT ` + linkColumns + ` FROM link_shares WHERE token = $1`
	return scanLink(r.db.QueryRowContext(ctx, q, token))
}

// Delete removes a link created by createdBy.
func (r *LinkPostgres) Delete(ctx context.Context, createdBy, id string) error {
	const q = `DELETE FROM link_shares WHERE id = $1 AND created_by = $2`
	_, err := r.db.ExecContext(ctx, q, id, createdBy)
	return err
}
