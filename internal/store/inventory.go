package store

import (
	"database/sql"

	"maintlog/internal/models"
)

const inventoryColumns = "id, item_name, COALESCE(category,''), quantity, COALESCE(location,''), COALESCE(remark,'')"

func scanInventoryItem(row interface{ Scan(...interface{}) error }, i *models.InventoryItem) error {
	return row.Scan(&i.ID, &i.ItemName, &i.Category, &i.Quantity, &i.Location, &i.Remark)
}

// CreateInventoryItem inserts a new inventory item and returns its
// assigned id. An omitted quantity stays at the zero default.
func (s *Store) CreateInventoryItem(i models.InventoryItem) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO inventory (item_name, category, quantity, location, remark) VALUES (?,?,?,?,?)",
		i.ItemName, i.Category, i.Quantity, i.Location, i.Remark)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	s.notify("inventory", ActionCreate, id)
	return id, nil
}

// GetInventoryItem fetches one inventory item by id.
func (s *Store) GetInventoryItem(id int64) (models.InventoryItem, error) {
	var i models.InventoryItem
	err := scanInventoryItem(s.db.QueryRow("SELECT "+inventoryColumns+" FROM inventory WHERE id=?", id), &i)
	if err == sql.ErrNoRows {
		return i, ErrNotFound
	}
	return i, err
}

// UpdateInventoryItem overwrites all mutable fields of the item with the
// given id.
func (s *Store) UpdateInventoryItem(id int64, i models.InventoryItem) error {
	res, err := s.db.Exec(
		"UPDATE inventory SET item_name=?, category=?, quantity=?, location=?, remark=? WHERE id=?",
		i.ItemName, i.Category, i.Quantity, i.Location, i.Remark, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	s.notify("inventory", ActionUpdate, id)
	return nil
}

// DeleteInventoryItem removes the item with the given id.
func (s *Store) DeleteInventoryItem(id int64) error {
	res, err := s.db.Exec("DELETE FROM inventory WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	s.notify("inventory", ActionDelete, id)
	return nil
}

// ListInventory returns all inventory items, newest id first.
func (s *Store) ListInventory() ([]models.InventoryItem, error) {
	rows, err := s.db.Query("SELECT " + inventoryColumns + " FROM inventory ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.InventoryItem{}
	for rows.Next() {
		var i models.InventoryItem
		if err := scanInventoryItem(rows, &i); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
