// Package testutil provides shared test helpers.
package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"maintlog/internal/db"
)

// SetupTestDB opens an in-memory SQLite database with foreign keys
// enabled and the real migrations applied, so tests run against the same
// schema as production.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open test DB: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// Every new connection to :memory: is a fresh empty database, so the
	// pool must stay on the single migrated connection.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate test DB: %v", err)
	}
	return conn
}
