package repository

import (
	"context"
	"time"

	"skystash/internal/model"
)

// NodeRepository defines data access for nodes using SQL queries only.
// Every lookup and mutation is scoped by owner; a node owned by someone else is
// indistinguishable from a missing one and yields sql.ErrNoRows.
type NodeRepository interface {
	// Create inserts a new node row and returns the stored record.
	Create(ctx context.Context, n *model.Node) (*model.Node, error)

	// FindByID returns a node owned by ownerID, trashed or not.
	FindByID(ctx context.Context, ownerID, id string) (*model.Node, error)

	// FindVisible returns a node owned by ownerID only when neither it nor any
	// ancestor is trashed; otherwise sql.ErrNoRows.
	FindVisible(ctx context.Context, ownerID, id string) (*model.Node, error)

	// Rename sets the name of a node in a single conditional update.
	Rename(ctx context.Context, ownerID, id, name string, at time.Time) (*model.Node, error)

	// Move sets the parent of a node in a single conditional update. A nil parentID moves it to the root.
	Move(ctx context.Context, ownerID, id string, parentID *string, at time.Time) (*model.Node, error)

	// SetTrashed marks or clears the soft-delete state of a node.
	SetTrashed(ctx context.Context, ownerID, id string, trashed bool, at time.Time) (*model.Node, error)

	// Delete permanently removes a node. It returns sql.ErrNoRows when nothing matched.
	Delete(ctx context.Context, ownerID, id string) error

	// ListChildren returns the visible direct children of parentID (roots when nil).
	// A node is visible when neither it nor any ancestor is trashed.
	ListChildren(ctx context.Context, ownerID string, parentID *string, sort Sort) ([]model.NodeView, error)

	// ListTrashed returns every trashed node of the owner, most recently trashed first.
	ListTrashed(ctx context.Context, ownerID string) ([]model.NodeView, error)

	// Search returns visible nodes whose name contains query, case-insensitively.
	Search(ctx context.Context, ownerID, query string) ([]model.NodeView, error)

	// ListRecent returns up to limit visible nodes, most recently updated first.
	ListRecent(ctx context.Context, ownerID string, limit int) ([]model.NodeView, error)
}

// SortField names a column drive listings may be ordered by.
type SortField string

const (
	SortByName      SortField = "name"
	SortBySize      SortField = "size"
	SortByUpdatedAt SortField = "updated_at"
	SortByCreatedAt SortField = "created_at"
	SortByMimeType  SortField = "mime_type"
)

// sortColumns maps every accepted SortField to its column.
var sortColumns = map[SortField]string{
	SortByName:      "name",
	SortBySize:      "size_bytes",
	"size_bytes":    "size_bytes",
	SortByUpdatedAt: "updated_at",
	SortByCreatedAt: "created_at",
	SortByMimeType:  "mime_type",
}

// Column returns the column for f and whether f is a known sort field.
func (f SortField) Column() (string, bool) {
	c, ok := sortColumns[f]
	return c, ok
}

// Sort orders a drive listing. Folders always come first; ties fall back to id.
type Sort struct {
	Field SortField
	Desc  bool
}
