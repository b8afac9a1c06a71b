package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Statements are run one by one; neither pgx nor sqlite3 accept a batch
// through ExecContext with placeholders, and mysql only with multiStatements.
var schemas = map[string][]string{
	"mysql": {
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(64) NOT NULL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			title VARCHAR(255) NOT NULL DEFAULT '',
			role VARCHAR(255) NOT NULL DEFAULT '',
			email VARCHAR(255) NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at DATETIME(6) NOT NULL,
			UNIQUE KEY uq_users_email (email)
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			stage VARCHAR(16) NOT NULL,
			deadline DATETIME(6) NOT NULL,
			created_at DATETIME(6) NOT NULL,
			updated_at DATETIME(6) NOT NULL,
			is_trashed BOOLEAN NOT NULL DEFAULT FALSE,
			version BIGINT NOT NULL DEFAULT 0,
			team JSON NOT NULL,
			subtasks JSON NOT NULL,
			documents JSON NOT NULL,
			activities JSON NOT NULL,
			KEY idx_tasks_trashed_created (is_trashed, created_at)
		)`,
		`CREATE TABLE IF NOT EXISTS task_subtasks (
			subtask_id VARCHAR(36) NOT NULL PRIMARY KEY,
			task_id VARCHAR(36) NOT NULL,
			is_trashed BOOLEAN NOT NULL DEFAULT FALSE,
			KEY idx_task_subtasks_task (task_id)
		)`,
		`CREATE TABLE IF NOT EXISTS task_team (
			task_id VARCHAR(36) NOT NULL,
			user_id VARCHAR(64) NOT NULL,
			PRIMARY KEY (task_id, user_id),
			KEY idx_task_team_user (user_id)
		)`,
	},
	"postgres": {
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(64) PRIMARY KEY,
			name TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL UNIQUE,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id VARCHAR(36) PRIMARY KEY,
			title TEXT NOT NULL,
			stage VARCHAR(16) NOT NULL,
			deadline TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			is_trashed BOOLEAN NOT NULL DEFAULT FALSE,
			version BIGINT NOT NULL DEFAULT 0,
			team TEXT NOT NULL,
			subtasks TEXT NOT NULL,
			documents TEXT NOT NULL,
			activities TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_trashed_created ON tasks (is_trashed, created_at)`,
		`CREATE TABLE IF NOT EXISTS task_subtasks (
			subtask_id VARCHAR(36) PRIMARY KEY,
			task_id VARCHAR(36) NOT NULL,
			is_trashed BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_task_subtasks_task ON task_subtasks (task_id)`,
		`CREATE TABLE IF NOT EXISTS task_team (
			task_id VARCHAR(36) NOT NULL,
			user_id VARCHAR(64) NOT NULL,
			PRIMARY KEY (task_id, user_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_task_team_user ON task_team (user_id)`,
	},
	"sqlite3": {
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL UNIQUE,
			is_admin BOOLEAN NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			stage TEXT NOT NULL,
			deadline DATETIME NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			is_trashed BOOLEAN NOT NULL DEFAULT 0,
			version INTEGER NOT NULL DEFAULT 0,
			team TEXT NOT NULL,
			subtasks TEXT NOT NULL,
			documents TEXT NOT NULL,
			activities TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_trashed_created ON tasks (is_trashed, created_at)`,
		`CREATE TABLE IF NOT EXISTS task_subtasks (
			subtask_id TEXT PRIMARY KEY,
			task_id TEXT NOT NULL,
			is_trashed BOOLEAN NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_task_subtasks_task ON task_subtasks (task_id)`,
		`CREATE TABLE IF NOT EXISTS task_team (
			task_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			PRIMARY KEY (task_id, user_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_task_team_user ON task_team (user_id)`,
	},
}

// Migrate creates the tables for the connection's dialect. It is idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	dialect := db.DriverName()
	if dialect == "pgx" {
		dialect = "postgres"
	}
	statements, ok := schemas[dialect]
	if !ok {
		return fmt.Errorf("no schema for driver %q", db.DriverName())
	}

	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i+1, err)
		}
	}
	zap.L().Info("database schema up to date",
		zap.String("driver", db.DriverName()),
		zap.Int("statements", len(statements)),
	)
	return nil
}
