package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is probed to decide whether the schema already exists.
const sentinelTable = "public.nodes"

var steps = []migrationStep{
	{
		Name: "create_extension_pgcrypto",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	},
	{
		Name: "create_table_nodes",
		SQL: `CREATE TABLE IF NOT EXISTS nodes (
  id          UUID        PRIMARY KEY DEFAULT gen_random_uuid(),
  owner_id    TEXT        NOT NULL,
  name        TEXT        NOT NULL CHECK (name <> ''),
  is_folder   BOOLEAN     NOT NULL,
  parent_id   UUID        REFERENCES nodes (id) ON DELETE CASCADE,
  storage_key TEXT        UNIQUE,
  mime_type   TEXT,
  size_bytes  BIGINT      CHECK (size_bytes >= 0),
  is_deleted  BOOLEAN     NOT NULL DEFAULT FALSE,
  deleted_at  TIMESTAMPTZ,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  CHECK (is_deleted = (deleted_at IS NOT NULL)),
  CHECK (NOT is_folder OR storage_key IS NULL)
);`,
	},
	{
		Name: "create_index_nodes_owner_parent",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_nodes_owner_parent ON nodes (owner_id, parent_id);`,
	},
	{
		Name: "create_index_nodes_owner_updated_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_nodes_owner_updated_at ON nodes (owner_id, updated_at DESC);`,
	},
	{
		Name: "create_index_nodes_owner_deleted",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_nodes_owner_deleted ON nodes (owner_id, deleted_at DESC) WHERE is_deleted;`,
	},
	{
		Name: "create_table_stars",
		SQL: `CREATE TABLE IF NOT EXISTS stars (
  user_id    TEXT        NOT NULL,
  node_id    UUID        NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (user_id, node_id)
);`,
	},
	{
		Name: "create_table_shares",
		SQL: `CREATE TABLE IF NOT EXISTS shares (
  id              UUID        PRIMARY KEY DEFAULT gen_random_uuid(),
  resource_id     UUID        NOT NULL,
  grantee_user_id TEXT        NOT NULL,
  role            TEXT        NOT NULL CHECK (role IN ('viewer', 'editor')),
  created_by      TEXT        NOT NULL,
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (resource_id, grantee_user_id)
);`,
	},
	{
		Name: "create_index_shares_created_by",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_shares_created_by ON shares (created_by, resource_id);`,
	},
	{
		Name: "create_table_link_shares",
		SQL: `CREATE TABLE IF NOT EXISTS link_shares (
  id          UUID        PRIMARY KEY DEFAULT gen_random_uuid(),
  resource_id UUID        NOT NULL,
  token       TEXT        NOT NULL UNIQUE,
  created_by  TEXT        NOT NULL,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (resource_id, created_by)
);`,
	},
}

// EnsureMigrated checks if the sentinel table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string) error {
	start := time.Now()
	log = log.Named("database").With(zap.String("db_host", dbHost))

	log.Info("db_migration_check", zap.String("status", "starting"))

	var exists bool
	query := "SELECT to_regclass($1) IS NOT NULL"
	if err := db.QueryRowContext(ctx, query, sentinelTable).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.String("error_message", fmt.Sprintf("failed to check sentinel table: %v", err)),
			zap.Duration("duration_ms", time.Since(start)),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("reason", "schema already exists, skipping migration"),
			zap.Duration("duration_ms", time.Since(start)),
		)
		return nil
	}

	log.Info("db_migration_start", zap.String("status", "in_progress"))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.String("error_message", err.Error()),
				zap.Duration("duration_ms", time.Since(start)),
				zap.Duration("step_duration_ms", time.Since(stepStart)),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Duration("step_duration_ms", time.Since(stepStart)),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Duration("duration_ms", time.Since(start)),
	)

	return nil
}
