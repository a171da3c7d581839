package store

import (
	"database/sql"

	"maintlog/internal/models"
)

const workLogColumns = "id, work_date, COALESCE(category,''), description, status, COALESCE(branch,''), COALESCE(assigned_by,'')"

func scanWorkLog(row interface{ Scan(...interface{}) error }, l *models.WorkLog) error {
	return row.Scan(&l.ID, &l.WorkDate, &l.Category, &l.Description, &l.Status, &l.Branch, &l.AssignedBy)
}

// CreateWorkLog inserts a new work log and returns its assigned id.
// Status defaults to done when empty.
func (s *Store) CreateWorkLog(l models.WorkLog) (int64, error) {
	if l.Status == "" {
		l.Status = models.StatusDone
	}
	res, err := s.db.Exec(
		"INSERT INTO work_logs (work_date, category, description, status, branch, assigned_by) VALUES (?,?,?,?,?,?)",
		l.WorkDate, l.Category, l.Description, l.Status, l.Branch, l.AssignedBy)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	s.notify("worklog", ActionCreate, id)
	return id, nil
}

// GetWorkLog fetches one work log by id.
func (s *Store) GetWorkLog(id int64) (models.WorkLog, error) {
	var l models.WorkLog
	err := scanWorkLog(s.db.QueryRow("SELECT "+workLogColumns+" FROM work_logs WHERE id=?", id), &l)
	if err == sql.ErrNoRows {
		return l, ErrNotFound
	}
	return l, err
}

// UpdateWorkLog overwrites all mutable fields of the work log with the
// given id. Status defaults to done when empty, same as create, so a row
// can never leave the status enum.
func (s *Store) UpdateWorkLog(id int64, l models.WorkLog) error {
	if l.Status == "" {
		l.Status = models.StatusDone
	}
	res, err := s.db.Exec(
		"UPDATE work_logs SET work_date=?, category=?, description=?, status=?, branch=?, assigned_by=? WHERE id=?",
		l.WorkDate, l.Category, l.Description, l.Status, l.Branch, l.AssignedBy, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	s.notify("worklog", ActionUpdate, id)
	return nil
}

// DeleteWorkLog removes the work log with the given id.
func (s *Store) DeleteWorkLog(id int64) error {
	res, err := s.db.Exec("DELETE FROM work_logs WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	s.notify("worklog", ActionDelete, id)
	return nil
}

// ListWorkLogs returns work logs matching every present filter, newest id
// first. Absent filter fields add no predicate at all.
func (s *Store) ListWorkLogs(f models.WorkLogFilter) ([]models.WorkLog, error) {
	query := "SELECT " + workLogColumns + " FROM work_logs WHERE 1=1"
	var args []interface{}

	if f.Date != "" {
		query += " AND work_date=?"
		args = append(args, f.Date)
	}
	if f.Status != "" {
		query += " AND status=?"
		args = append(args, f.Status)
	}
	if f.Category != "" {
		query += " AND category=?"
		args = append(args, f.Category)
	}
	if f.Keyword != "" {
		query += " AND (LOWER(category) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?))"
		kw := "%" + f.Keyword + "%"
		args = append(args, kw, kw)
	}
	query += " ORDER BY id DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []models.WorkLog{}
	for rows.Next() {
		var l models.WorkLog
		if err := scanWorkLog(rows, &l); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// WorkLogStatusCounts counts work logs per lifecycle status over the whole
// table, regardless of any active list filter.
func (s *Store) WorkLogStatusCounts() (models.WorkLogStatusCounts, error) {
	var c models.WorkLogStatusCounts
	rows, err := s.db.Query("SELECT status, COUNT(*) FROM work_logs GROUP BY status")
	if err != nil {
		return c, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return c, err
		}
		switch status {
		case models.StatusDone:
			c.Done = n
		case models.StatusInProgress:
			c.InProgress = n
		case models.StatusPending:
			c.Pending = n
		}
	}
	return c, rows.Err()
}
