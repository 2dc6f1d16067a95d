package db

import (
	"context"
	"fmt"

	"perftrack/internal/platform/config"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS employees (
    employee_id TEXT PRIMARY KEY,
    name TEXT NOT NULL
  )`,
	`CREATE TABLE IF NOT EXISTS goals (
    goal_id TEXT PRIMARY KEY,
    employee_id TEXT NOT NULL REFERENCES employees (employee_id),
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    due_date DATE NOT NULL,
    status TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
  )`,
	`CREATE INDEX IF NOT EXISTS goals_employee_id_idx ON goals (employee_id)`,
	`CREATE TABLE IF NOT EXISTS feedback (
    feedback_id TEXT PRIMARY KEY,
    from_employee_id TEXT NOT NULL REFERENCES employees (employee_id),
    to_employee_id TEXT NOT NULL REFERENCES employees (employee_id),
    feedback_text TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
  )`,
	`CREATE INDEX IF NOT EXISTS feedback_to_employee_idx ON feedback (to_employee_id, created_at DESC)`,
}

// go-sqlite3 only scans DATE/TIMESTAMP columns back into time.Time when the
// declared type says so.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS employees (
    employee_id TEXT PRIMARY KEY,
    name TEXT NOT NULL
  )`,
	`CREATE TABLE IF NOT EXISTS goals (
    goal_id TEXT PRIMARY KEY,
    employee_id TEXT NOT NULL REFERENCES employees (employee_id),
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    due_date DATE NOT NULL,
    status TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
  )`,
	`CREATE INDEX IF NOT EXISTS goals_employee_id_idx ON goals (employee_id)`,
	`CREATE TABLE IF NOT EXISTS feedback (
    feedback_id TEXT PRIMARY KEY,
    from_employee_id TEXT NOT NULL REFERENCES employees (employee_id),
    to_employee_id TEXT NOT NULL REFERENCES employees (employee_id),
    feedback_text TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
  )`,
	`CREATE INDEX IF NOT EXISTS feedback_to_employee_idx ON feedback (to_employee_id, created_at DESC)`,
}

// EnsureSchema creates the employees, goals and feedback tables when they are
// missing. Existing tables are left untouched.
func (d *DB) EnsureSchema(ctx context.Context) error {
	statements := postgresSchema
	if d.driver == config.DriverSQLite {
		statements = sqliteSchema
	}

	tx, err := d.SQL.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("schema statement %d failed: %w", i+1, err)
		}
	}
	return tx.Commit()
}
