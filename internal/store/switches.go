package store

import (
	"database/sql"

	"maintlog/internal/models"
)

const switchColumns = "id, name, ip, model, ports, location, status, remark"

func scanSwitch(row interface{ Scan(...interface{}) error }, sw *models.Switch) error {
	return row.Scan(&sw.ID, &sw.Name, &sw.IP, &sw.Model, &sw.Ports, &sw.Location, &sw.Status, &sw.Remark)
}

// CreateSwitch inserts a switch and its cameras in one transaction. Camera
// entries with an empty IP are dropped; the rest are inserted as children
// of the new switch.
func (s *Store) CreateSwitch(sw models.Switch) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO switches (name, ip, model, ports, location, status, remark) VALUES (?,?,?,?,?,?,?)",
		sw.Name, sw.IP, sw.Model, sw.Ports, sw.Location, sw.Status, sw.Remark)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err := insertCameras(tx, id, sw.Cameras); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	s.notify("switch", ActionCreate, id)
	return id, nil
}

// GetSwitch fetches one switch with its cameras.
func (s *Store) GetSwitch(id int64) (models.Switch, error) {
	var sw models.Switch
	err := scanSwitch(s.db.QueryRow("SELECT "+switchColumns+" FROM switches WHERE id=?", id), &sw)
	if err == sql.ErrNoRows {
		return sw, ErrNotFound
	}
	if err != nil {
		return sw, err
	}
	sw.Cameras, err = s.camerasFor(id)
	return sw, err
}

// GetCamera fetches one camera by id.
func (s *Store) GetCamera(id int64) (models.Camera, error) {
	var c models.Camera
	err := s.db.QueryRow("SELECT id, switch_id, name, ip FROM cameras WHERE id=?", id).
		Scan(&c.ID, &c.SwitchID, &c.Name, &c.IP)
	if err == sql.ErrNoRows {
		return c, ErrNotFound
	}
	return c, err
}

// UpdateSwitch overwrites the switch fields and replaces its camera set
// with the submitted one (same empty-IP filter as create). Replacement,
// not merge: existing cameras are deleted first, inside the same
// transaction.
func (s *Store) UpdateSwitch(id int64, sw models.Switch) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"UPDATE switches SET name=?, ip=?, model=?, ports=?, location=?, status=?, remark=? WHERE id=?",
		sw.Name, sw.IP, sw.Model, sw.Ports, sw.Location, sw.Status, sw.Remark, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec("DELETE FROM cameras WHERE switch_id=?", id); err != nil {
		return err
	}
	if err := insertCameras(tx, id, sw.Cameras); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.notify("switch", ActionUpdate, id)
	return nil
}

// DeleteSwitch removes the switch; the camera foreign key cascades.
func (s *Store) DeleteSwitch(id int64) error {
	res, err := s.db.Exec("DELETE FROM switches WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	s.notify("switch", ActionDelete, id)
	return nil
}

// ListSwitches returns all switches, newest id first, each with its
// cameras attached.
func (s *Store) ListSwitches() ([]models.Switch, error) {
	rows, err := s.db.Query("SELECT " + switchColumns + " FROM switches ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	switches := []models.Switch{}
	for rows.Next() {
		var sw models.Switch
		if err := scanSwitch(rows, &sw); err != nil {
			return nil, err
		}
		switches = append(switches, sw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	camRows, err := s.db.Query("SELECT id, switch_id, name, ip FROM cameras ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer camRows.Close()

	bySwitch := map[int64][]models.Camera{}
	for camRows.Next() {
		var c models.Camera
		if err := camRows.Scan(&c.ID, &c.SwitchID, &c.Name, &c.IP); err != nil {
			return nil, err
		}
		bySwitch[c.SwitchID] = append(bySwitch[c.SwitchID], c)
	}
	if err := camRows.Err(); err != nil {
		return nil, err
	}

	for i := range switches {
		if cams, ok := bySwitch[switches[i].ID]; ok {
			switches[i].Cameras = cams
		} else {
			switches[i].Cameras = []models.Camera{}
		}
	}
	return switches, nil
}

func (s *Store) camerasFor(switchID int64) ([]models.Camera, error) {
	rows, err := s.db.Query("SELECT id, switch_id, name, ip FROM cameras WHERE switch_id=? ORDER BY id", switchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cams := []models.Camera{}
	for rows.Next() {
		var c models.Camera
		if err := rows.Scan(&c.ID, &c.SwitchID, &c.Name, &c.IP); err != nil {
			return nil, err
		}
		cams = append(cams, c)
	}
	return cams, rows.Err()
}

func insertCameras(tx *sql.Tx, switchID int64, cams []models.Camera) error {
	for _, c := range cams {
		if c.IP == "" {
			continue
		}
		if _, err := tx.Exec("INSERT INTO cameras (switch_id, name, ip) VALUES (?,?,?)", switchID, c.Name, c.IP); err != nil {
			return err
		}
	}
	return nil
}
