package repository

import (
	"context"
	"time"

	"skystash/internal/model"
)

// StarRepository stores the (user, node) favorite relation.
// Node ids are weak references: no cascade, dangling stars are filtered on read.
type StarRepository interface {
	// Add inserts the pair; an existing pair is left untouched.
	Add(ctx context.Context, userID, nodeID string, at time.Time) error

	// Remove deletes the pair if present.
	Remove(ctx context.Context, userID, nodeID string) error

	// ListNodes resolves the user's stars to visible nodes owned by the user.
	ListNodes(ctx context.Context, userID string) ([]model.NodeView, error)
}
