package db

import (
	"database/sql"
	"fmt"
)

// schema contains the base tables. Everything is create-if-not-exists so
// the list can run on every start without touching existing data.
const schema = `
CREATE TABLE IF NOT EXISTS work_logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	work_date TEXT NOT NULL,
	category TEXT DEFAULT '',
	description TEXT NOT NULL,
	status TEXT DEFAULT 'done'
);

CREATE TABLE IF NOT EXISTS daily_checks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	check_date TEXT DEFAULT '',
	item_name TEXT DEFAULT '',
	status TEXT DEFAULT '',
	remark TEXT DEFAULT '',
	checked_by TEXT DEFAULT ''
);

CREATE TABLE IF NOT EXISTS inventory (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	item_name TEXT NOT NULL,
	category TEXT DEFAULT '',
	quantity INTEGER DEFAULT 0,
	location TEXT DEFAULT '',
	remark TEXT DEFAULT ''
);

CREATE TABLE IF NOT EXISTS switches (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT DEFAULT '',
	ip TEXT DEFAULT '',
	model TEXT DEFAULT '',
	ports INTEGER DEFAULT 0,
	location TEXT DEFAULT '',
	status TEXT DEFAULT '',
	remark TEXT DEFAULT ''
);

CREATE TABLE IF NOT EXISTS cameras (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	switch_id INTEGER NOT NULL REFERENCES switches(id) ON DELETE CASCADE,
	name TEXT DEFAULT '',
	ip TEXT DEFAULT ''
);

CREATE TABLE IF NOT EXISTS audit_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT DEFAULT 'system',
	action TEXT NOT NULL,
	module TEXT NOT NULL,
	record_id TEXT NOT NULL,
	summary TEXT DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// migration is a named schema step. Column additions check the catalog
// first instead of attempting the ALTER and swallowing "duplicate column"
// errors, so any failure that does surface is a real one.
type migration struct {
	name string
	run  func(*sql.DB) error
}

var migrations = []migration{
	{"base tables", func(conn *sql.DB) error {
		_, err := conn.Exec(schema)
		return err
	}},
	{"work_logs.branch", addColumn("work_logs", "branch", "TEXT DEFAULT ''")},
	{"work_logs.assigned_by", addColumn("work_logs", "assigned_by", "TEXT DEFAULT ''")},
	// Added as a plain column; the store stamps it at insert time (SQLite
	// cannot ADD COLUMN with a non-constant default).
	{"daily_checks.created_at", addColumn("daily_checks", "created_at", "TEXT DEFAULT ''")},
	{"daily_checks unique day/item", func(conn *sql.DB) error {
		_, err := conn.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_daily_checks_date_item
			ON daily_checks(check_date, item_name)`)
		return err
	}},
	{"cameras switch index", func(conn *sql.DB) error {
		_, err := conn.Exec(`CREATE INDEX IF NOT EXISTS idx_cameras_switch ON cameras(switch_id)`)
		return err
	}},
}

// Migrate applies all migrations in order. Any failure aborts startup.
func Migrate(conn *sql.DB) error {
	for _, m := range migrations {
		if err := m.run(conn); err != nil {
			return fmt.Errorf("migration %q: %w", m.name, err)
		}
	}
	return nil
}

func addColumn(table, column, decl string) func(*sql.DB) error {
	return func(conn *sql.DB) error {
		exists, err := hasColumn(conn, table, column)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		_, err = conn.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, decl))
		return err
	}
}

func hasColumn(conn *sql.DB, table, column string) (bool, error) {
	rows, err := conn.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
