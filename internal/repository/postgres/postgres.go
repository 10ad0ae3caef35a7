package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"skystash/internal/model"
	"skystash/internal/repository"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError maps driver constraint errors onto repository sentinels.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return repository.ErrConflict
		case pgForeignKeyViolation:
			return repository.ErrMissingReference
		}
	}
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

const nodeColumns = `n.id, n.owner_id, n.name, n.is_folder, n.parent_id, n.storage_key, n.mime_type,
		n.size_bytes, n.is_deleted, n.deleted_at, n.created_at, n.updated_at`

func scanNode(row rowScanner, extra ...any) (*model.Node, error) {
	var n model.Node
	dest := []any{
		&n.ID,
		&n.OwnerID,
		&n.Name,
		&n.IsFolder,
		&n.ParentID,
		&n.StorageKey,
		&n.MimeType,
		&n.SizeBytes,
		&n.IsDeleted,
		&n.DeletedAt,
		&n.CreatedAt,
		&n.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &n, nil
}

type rowsScanner interface {
	rowScanner
	Next() bool
	Err() error
	Close() error
}

func scanNodeViews(rows rowsScanner) ([]model.NodeView, error) {
	defer rows.Close()

	items := make([]model.NodeView, 0)
	for rows.Next() {
		var starred bool
		n, err := scanNode(rows, &starred)
		if err != nil {
			return nil, err
		}
		items = append(items, model.NodeView{Node: *n, IsStarred: starred})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s literally anywhere in a value.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
