package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/lookahead/internal/db"
)

// NewTestDB opens an in-memory database with all migrations applied. The
// pool holds one connection, so do not read through it while a transaction
// from the same pool is open.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openTestDB(t, db.MemoryPath)
}

// NewFileTestDB opens a migrated database file under t.TempDir. Use it when
// several connections must see the same data, as in concurrency tests.
func NewFileTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openTestDB(t, filepath.Join(t.TempDir(), "lookahead_test.db"))
}

func openTestDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	if err != nil {
		t.Fatalf("opening test database %s: %v", path, err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

var knownTables = map[string]bool{"schedules": true, "tasks": true, "task_manpower": true}

// CountRows returns the number of rows in one of the schedule tables.
func CountRows(t *testing.T, database *sql.DB, table string) int {
	t.Helper()
	if !knownTables[table] {
		t.Fatalf("CountRows: unknown table %q", table)
	}
	var n int
	if err := database.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
		t.Fatalf("counting %s: %v", table, err)
	}
	return n
}
