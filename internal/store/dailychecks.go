package store

import (
	"database/sql"
	"time"

	"maintlog/internal/models"
)

const dailyCheckColumns = "id, check_date, item_name, status, remark, checked_by, COALESCE(created_at,'')"

func scanDailyCheck(row interface{ Scan(...interface{}) error }, c *models.DailyCheck) error {
	return row.Scan(&c.ID, &c.CheckDate, &c.ItemName, &c.Status, &c.Remark, &c.CheckedBy, &c.CreatedAt)
}

// CreateDailyCheck inserts a new daily check and returns its assigned id.
// A second check for the same (check_date, item_name) pair is rejected
// with ErrDuplicateCheck; the unique index does the guarding, so there is
// no check-then-act window.
func (s *Store) CreateDailyCheck(c models.DailyCheck) (int64, error) {
	if c.CreatedAt == "" {
		c.CreatedAt = time.Now().Format("2006-01-02 15:04:05")
	}
	res, err := s.db.Exec(
		"INSERT INTO daily_checks (check_date, item_name, status, remark, checked_by, created_at) VALUES (?,?,?,?,?,?)",
		c.CheckDate, c.ItemName, c.Status, c.Remark, c.CheckedBy, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateCheck
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	s.notify("dailycheck", ActionCreate, id)
	return id, nil
}

// GetDailyCheck fetches one daily check by id.
func (s *Store) GetDailyCheck(id int64) (models.DailyCheck, error) {
	var c models.DailyCheck
	err := scanDailyCheck(s.db.QueryRow("SELECT "+dailyCheckColumns+" FROM daily_checks WHERE id=?", id), &c)
	if err == sql.ErrNoRows {
		return c, ErrNotFound
	}
	return c, err
}

// UpdateDailyCheck overwrites the mutable fields of the daily check with
// the given id. Moving a check onto an already-checked (date, item) pair
// is rejected the same way as a duplicate insert.
func (s *Store) UpdateDailyCheck(id int64, c models.DailyCheck) error {
	res, err := s.db.Exec(
		"UPDATE daily_checks SET check_date=?, item_name=?, status=?, remark=?, checked_by=? WHERE id=?",
		c.CheckDate, c.ItemName, c.Status, c.Remark, c.CheckedBy, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateCheck
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	s.notify("dailycheck", ActionUpdate, id)
	return nil
}

// DeleteDailyCheck removes the daily check with the given id.
func (s *Store) DeleteDailyCheck(id int64) error {
	res, err := s.db.Exec("DELETE FROM daily_checks WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	s.notify("dailycheck", ActionDelete, id)
	return nil
}

// ListDailyChecks returns all daily checks, newest id first. date narrows
// the result to one calendar day when non-empty.
func (s *Store) ListDailyChecks(date string) ([]models.DailyCheck, error) {
	query := "SELECT " + dailyCheckColumns + " FROM daily_checks"
	var args []interface{}
	if date != "" {
		query += " WHERE check_date=?"
		args = append(args, date)
	}
	query += " ORDER BY id DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	checks := []models.DailyCheck{}
	for rows.Next() {
		var c models.DailyCheck
		if err := scanDailyCheck(rows, &c); err != nil {
			return nil, err
		}
		checks = append(checks, c)
	}
	return checks, rows.Err()
}

// DailyCheckStatusBreakdown groups all daily checks by their free-text
// status label and returns each label with its occurrence count.
func (s *Store) DailyCheckStatusBreakdown() ([]models.StatusCount, error) {
	rows, err := s.db.Query("SELECT status, COUNT(*) FROM daily_checks GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []models.StatusCount{}
	for rows.Next() {
		var sc models.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, sc)
	}
	return counts, rows.Err()
}
