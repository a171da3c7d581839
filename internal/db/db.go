// Package db opens the SQLite database and keeps its schema current.
package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// Open opens (creating if needed) the SQLite database at path, configures
// the connection pool, and applies all pending migrations. Safe to call on
// every process start.
func Open(path string) (*sql.DB, error) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	// _pragma is applied by the driver to every new connection, so the
	// whole pool gets WAL, the busy timeout, and foreign keys — a one-shot
	// Exec would configure only whichever connection it happened to use.
	dsn := path + sep + "_pragma=journal_mode(WAL)&_pragma=busy_timeout(10000)&_pragma=foreign_keys(1)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// SQLite handles one writer plus concurrent readers under WAL.
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(0)

	var fk int
	if err := conn.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil || fk != 1 {
		conn.Close()
		return nil, fmt.Errorf("foreign keys not enabled (pragma=%d): %v", fk, err)
	}

	if err := Migrate(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}
