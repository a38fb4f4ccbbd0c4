package db

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS schedules (
		id            TEXT PRIMARY KEY,
		short_id      TEXT NOT NULL,
		name          TEXT NOT NULL,
		start_date    TEXT NOT NULL,
		end_date      TEXT NOT NULL,
		hours_per_day REAL NOT NULL DEFAULT 8 CHECK(hours_per_day > 0),
		work_days     TEXT NOT NULL DEFAULT '1,2,3,4,5',
		current_week_index INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_schedules_short_id ON schedules(short_id)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id          TEXT PRIMARY KEY,
		schedule_id TEXT NOT NULL REFERENCES schedules(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		position    INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_schedule ON tasks(schedule_id, position)`,

	`CREATE TABLE IF NOT EXISTS task_manpower (
		task_id    TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		week_index INTEGER NOT NULL CHECK(week_index >= 0),
		counts     TEXT NOT NULL DEFAULT '[]',
		updated_at TEXT NOT NULL,
		PRIMARY KEY (task_id, week_index)
	)`,
}

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
