// Package testutil provides shared helpers for tests that need a real store.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"perftrack/internal/platform/config"
	"perftrack/internal/platform/db"
)

// SQLiteConfig returns a config pointing at a temp-file SQLite database. The
// DSN carries no parameters; Connect enables foreign keys itself.
func SQLiteConfig(t *testing.T) config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "perftrack-test.db")
	return config.Config{
		Addr:            ":0",
		Environment:     "test",
		DatabaseDriver:  config.DriverSQLite,
		DatabaseURL:     "file:" + path,
		MaxOpenConns:    4,
		ConnMaxLifetime: time.Hour,
		BootstrapSchema: true,
		FrontendDir:     t.TempDir(),
		MaxBodyBytes:    1048576,
		MetricsEnabled:  true,
	}
}

// OpenSQLite opens a schema-bootstrapped SQLite store that is closed when the
// test ends.
func OpenSQLite(t *testing.T) *db.DB {
	t.Helper()
	store, err := db.Connect(SQLiteConfig(t))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return store
}

// InsertEmployee adds an employee row directly; the application never
// creates employees itself.
func InsertEmployee(t *testing.T, store *db.DB, id, name string) {
	t.Helper()
	if _, err := store.SQL.ExecContext(context.Background(), "INSERT INTO employees (employee_id, name) VALUES (?, ?)", id, name); err != nil {
		t.Fatalf("insert employee %s: %v", id, err)
	}
}
