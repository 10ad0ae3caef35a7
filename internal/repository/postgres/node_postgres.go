package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"skystash/internal/model"
	"skystash/internal/repository"
)

// NodePostgres is a PostgreSQL implementation of repository.NodeRepository.
// Mutations are single conditional statements keyed by (id, owner_id).
type NodePostgres struct {
	db *sql.DB
}

// NewNodePostgres creates a new NodePostgres repository.
func NewNodePostgres(db *sql.DB) *NodePostgres {
	return &NodePostgres{db: db}
}

var _ repository.NodeRepository = (*NodePostgres)(nil)

// hiddenCTE collects every node of owner $1 that is trashed or sits below a
// trashed folder. UNION deduplicates, so the recursion terminates even on
// malformed data.
const hiddenCTE = `
		WITH RECURSIVE hidden AS (
			SELECT id FROM nodes WHERE owner_id = $1 AND is_deleted
			UNION
			SELECT c.id FROM nodes c JOIN hidden h ON c.parent_id = h.id WHERE c.owner_id = $1
		)`

const starredExpr = `EXISTS (SELECT 1 FROM stars s WHERE s.node_id = n.id AND s.user_id = $1)`

// Create inserts a new node row and returns the stored record.
func (r *NodePostgres) Create(ctx context.Context, n *model.Node) (*model.Node, error) {
	const q = `
		INSERT INTO nodes AS n (id, owner_id, name, is_folder, parent_id, storage_key, mime_type,
			size_bytes, is_deleted, deleted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, NULL, $9, $9)
		RETURNING ` + nodeColumns
	row := r.db.QueryRowContext(ctx, q,
		n.ID,
		n.OwnerID,
		n.Name,
		n.IsFolder,
		n.ParentID,
		n.StorageKey,
		n.MimeType,
		n.SizeBytes,
		n.CreatedAt,
	)
	out, err := scanNode(row)
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// FindByID fetches a single node owned by ownerID.
func (r *NodePostgres) FindByID(ctx context.Context, ownerID, id string) (*model.Node, error) {
	const q = `
		SELECT ` + nodeColumns + `
		FROM nodes n
		WHERE n.id = $1 AND n.owner_id = $2
	`
	return scanNode(r.db.QueryRowContext(ctx, q, id, ownerID))
}

// FindVisible fetches a node that is active in the owner's drive view.
func (r *NodePostgres) FindVisible(ctx context.Context, ownerID, id string) (*model.Node, error) {
	const q = hiddenCTE + `
		SELECT ` + nodeColumns + `
		FROM nodes n
		WHERE n.owner_id = $1 AND n.id = $2
		  AND NOT EXISTS (SELECT 1 FROM hidden h WHERE h.id = n.id)
	`
	return scanNode(r.db.QueryRowContext(ctx, q, ownerID, id))
}

// Rename updates the name and updated_at of a node.
func (r *NodePostgres) Rename(ctx context.Context, ownerID, id, name string, at time.Time) (*model.Node, error) {
	const q = `
		UPDATE nodes AS n SET name = $3, updated_at = $4
		WHERE n.id = $1 AND n.owner_id = $2
		RETURNING ` + nodeColumns
	return scanNode(r.db.QueryRowContext(ctx, q, id, ownerID, name, at))
}

// Move updates the parent and updated_at of a node.
func (r *NodePostgres) Move(ctx context.Context, ownerID, id string, parentID *string, at time.Time) (*model.Node, error) {
	const q = `
		UPDATE nodes AS n SET parent_id = $3, updated_at = $4
		WHERE n.id = $1 AND n.owner_id = $2
		RETURNING ` + nodeColumns
	out, err := scanNode(r.db.QueryRowContext(ctx, q, id, ownerID, parentID, at))
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// SetTrashed soft-deletes or restores a node. Trashing an already trashed node
// keeps its original deleted_at.
func (r *NodePostgres) SetTrashed(ctx context.Context, ownerID, id string, trashed bool, at time.Time) (*model.Node, error) {
	const qTrash = `
		UPDATE nodes AS n SET is_deleted = TRUE, deleted_at = COALESCE(n.deleted_at, $3), updated_at = $3
		WHERE n.id = $1 AND n.owner_id = $2
		RETURNING ` + nodeColumns
	const qRestore = `
		UPDATE nodes AS n SET is_deleted = FALSE, deleted_at = NULL, updated_at = $3
		WHERE n.id = $1 AND n.owner_id = $2
		RETURNING ` + nodeColumns
	q := qRestore
	if trashed {
		q = qTrash
	}
	return scanNode(r.db.QueryRowContext(ctx, q, id, ownerID, at))
}

// Delete removes a node row. Descendants go with it through the parent_id foreign key.
func (r *NodePostgres) Delete(ctx context.Context, ownerID, id string) error {
	const q = `DELETE FROM nodes WHERE id = $1 AND owner_id = $2`
	res, err := r.db.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListChildren returns visible direct children, folders first.
func (r *NodePostgres) ListChildren(ctx context.Context, ownerID string, parentID *string, sort repository.Sort) ([]model.NodeView, error) {
	col, ok := sort.Field.Column()
	if !ok {
		return nil, fmt.Errorf("unsupported sort field %q", sort.Field)
	}
	dir := "ASC"
	if sort.Desc {
		dir = "DESC"
	}

	args := []any{ownerID}
	parentCond := "n.parent_id IS NULL"
	if parentID != nil {
		parentCond = "n.parent_id = $2"
		args = append(args, *parentID)
	}

	q := hiddenCTE + `
		SELECT ` + nodeColumns + `, ` + starredExpr + `
		FROM nodes n
		WHERE n.owner_id = $1 AND ` + parentCond + `
		  AND NOT EXISTS (SELECT 1 FROM hidden h WHERE h.id = n.id)
		ORDER BY n.is_folder DESC, n.` + col + ` ` + dir + `, n.id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return scanNodeViews(rows)
}

// ListTrashed returns trashed nodes ordered by deleted_at descending.
func (r *NodePostgres) ListTrashed(ctx context.Context, ownerID string) ([]model.NodeView, error) {
	const q = `
		SELECT ` + nodeColumns + `, ` + starredExpr + `
		FROM nodes n
		WHERE n.owner_id = $1 AND n.is_deleted
		ORDER BY n.deleted_at DESC, n.id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	return scanNodeViews(rows)
}

// Search matches names case-insensitively; wildcard characters in query match literally.
func (r *NodePostgres) Search(ctx context.Context, ownerID, query string) ([]model.NodeView, error) {
	const q = hiddenCTE + `
		SELECT ` + nodeColumns + `, ` + starredExpr + `
		FROM nodes n
		WHERE n.owner_id = $1 AND n.name ILIKE $2 ESCAPE '\'
		  AND NOT EXISTS (SELECT 1 FROM hidden h WHERE h.id = n.id)
		ORDER BY n.name ASC, n.id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, ownerID, containsPattern(query))
	if err != nil {
		return nil, err
	}
	return scanNodeViews(rows)
}

// ListRecent returns the most recently updated visible nodes.
func (r *NodePostgres) ListRecent(ctx context.Context, ownerID string, limit int) ([]model.NodeView, error) {
	const q = hiddenCTE + `
		SELECT ` + nodeColumns + `, ` + starredExpr + `
		FROM nodes n
		WHERE n.owner_id = $1
		  AND NOT EXISTS (SELECT 1 FROM hidden h WHERE h.id = n.id)
		ORDER BY n.updated_at DESC, n.id ASC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, q, ownerID, limit)
	if err != nil {
		return nil, err
	}
	return scanNodeViews(rows)
}
