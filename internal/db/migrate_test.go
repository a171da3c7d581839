package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openBare(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	conn.SetMaxOpenConns(1)
	return conn
}

func TestMigrateIsIdempotent(t *testing.T) {
	conn := openBare(t)

	require.NoError(t, Migrate(conn))

	// Data written between runs must survive a re-migration.
	_, err := conn.Exec("INSERT INTO work_logs (work_date, description) VALUES ('2025-01-01', 'check UPS')")
	require.NoError(t, err)

	require.NoError(t, Migrate(conn))

	var n int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM work_logs").Scan(&n))
	assert.Equal(t, 1, n)
}

func TestMigrateAddsEvolutionColumns(t *testing.T) {
	conn := openBare(t)
	require.NoError(t, Migrate(conn))

	for _, tc := range []struct{ table, column string }{
		{"work_logs", "branch"},
		{"work_logs", "assigned_by"},
		{"daily_checks", "created_at"},
	} {
		ok, err := hasColumn(conn, tc.table, tc.column)
		require.NoError(t, err)
		assert.True(t, ok, "%s.%s should exist", tc.table, tc.column)
	}

	ok, err := hasColumn(conn, "work_logs", "no_such_column")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDailyCheckUniqueIndex(t *testing.T) {
	conn := openBare(t)
	require.NoError(t, Migrate(conn))

	_, err := conn.Exec("INSERT INTO daily_checks (check_date, item_name, status) VALUES ('2025-01-01', 'UPS', 'normal')")
	require.NoError(t, err)

	_, err = conn.Exec("INSERT INTO daily_checks (check_date, item_name, status) VALUES ('2025-01-01', 'UPS', 'normal')")
	assert.Error(t, err, "duplicate (check_date, item_name) must be rejected")

	_, err = conn.Exec("INSERT INTO daily_checks (check_date, item_name, status) VALUES ('2025-01-02', 'UPS', 'normal')")
	assert.NoError(t, err, "same item on another day is fine")
}

func TestCameraCascadeDelete(t *testing.T) {
	conn := openBare(t)
	_, err := conn.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)
	require.NoError(t, Migrate(conn))

	res, err := conn.Exec("INSERT INTO switches (name) VALUES ('sw-1')")
	require.NoError(t, err)
	swID, _ := res.LastInsertId()

	_, err = conn.Exec("INSERT INTO cameras (switch_id, name, ip) VALUES (?, 'cam-1', '10.0.0.5')", swID)
	require.NoError(t, err)

	_, err = conn.Exec("DELETE FROM switches WHERE id=?", swID)
	require.NoError(t, err)

	var n int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM cameras").Scan(&n))
	assert.Equal(t, 0, n)
}
