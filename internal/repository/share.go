package repository

import (
	"context"

	"skystash/internal/model"
)

// ShareRepository stores user-to-user grants.
type ShareRepository interface {
	// Upsert inserts a grant, or updates the role of the existing grant for
	// the same (resource, grantee) pair. Returns the stored record.
	Upsert(ctx context.Context, s *model.Share) (*model.Share, error)

	// Delete removes a grant created by createdBy. Missing rows are not an error.
	Delete(ctx context.Context, createdBy, id string) error

	// ListByResource returns grants created by createdBy on resourceID, oldest first.
	ListByResource(ctx context.Context, createdBy, resourceID string) ([]model.Share, error)
}

// LinkRepository stores public link tokens.
type LinkRepository interface {
	// Create inserts a link. When the creator already has a link for the
	// resource, the existing one is returned unchanged.
	Create(ctx context.Context, l *model.LinkShare) (*model.LinkShare, error)

	// FindByResource returns the creator's link for a resource, or sql.ErrNoRows.
	FindByResource(ctx context.Context, createdBy, resourceID string) (*model.LinkShare, error)

	// FindByToken returns the link holding token, or sql.ErrNoRows.
	FindByToken(ctx context.Context, token string) (*model.LinkShare, error)

	// Delete removes a link created by createdBy. Missing rows are not an error.
	Delete(ctx context.Context, createdBy, id string) error
}
