package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent and
// portable between Postgres and SQLite.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Parent references are plain columns. Cascades are explicit deletes in the
// repository so a task keeps its stale taxonomy ids.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL,
		username      TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'user'
		              CHECK(role IN ('user','admin')),
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(username)`,

	`CREATE TABLE IF NOT EXISTS taxonomy_categories (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS taxonomy_types (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		category_id TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_taxonomy_types_category ON taxonomy_types(category_id)`,

	`CREATE TABLE IF NOT EXISTS taxonomy_items (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		type_id    TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_taxonomy_items_type ON taxonomy_items(type_id)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id                   TEXT PRIMARY KEY,
		title                TEXT NOT NULL,
		description          TEXT NOT NULL,
		status               TEXT NOT NULL DEFAULT 'todo'
		                     CHECK(status IN ('todo','in_progress','done')),
		assignee_id          TEXT,
		taxonomy_category_id TEXT,
		taxonomy_type_id     TEXT,
		taxonomy_item_id     TEXT,
		created_at           TEXT NOT NULL,
		updated_at           TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_created ON tasks(created_at)`,

	`CREATE TABLE IF NOT EXISTS task_notes (
		id         TEXT PRIMARY KEY,
		task_id    TEXT NOT NULL,
		position   INTEGER NOT NULL,
		body       TEXT NOT NULL,
		author_id  TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_task_notes_task ON task_notes(task_id)`,
}
