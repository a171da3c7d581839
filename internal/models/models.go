// Package models defines the entities persisted by the store and the JSON
// shapes returned by the API.
package models

// APIResponse is the standard JSON envelope for all API responses.
type APIResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

// Meta contains pagination metadata.
type Meta struct {
	Total int `json:"total,omitempty"`
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
}

// Work log lifecycle statuses.
const (
	StatusDone       = "done"
	StatusInProgress = "in progress"
	StatusPending    = "pending"
)

// WorkLog is one maintenance task record. Edits overwrite in place; no
// history is kept.
type WorkLog struct {
	ID          int64  `json:"id"`
	WorkDate    string `json:"work_date"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Branch      string `json:"branch"`
	AssignedBy  string `json:"assigned_by"`
}

// WorkLogFilter holds the optional dashboard filters. Zero-valued fields
// are omitted from the predicate entirely. Keyword matches category OR
// description, case-insensitively.
type WorkLogFilter struct {
	Date     string
	Status   string
	Category string
	Keyword  string
}

// WorkLogStatusCounts are whole-table counts per lifecycle status,
// independent of any active filter.
type WorkLogStatusCounts struct {
	Done       int `json:"done"`
	InProgress int `json:"in_progress"`
	Pending    int `json:"pending"`
}

// DailyCheck is one routine inspection record. (check_date, item_name) is
// unique: the same item cannot be checked twice on one day.
type DailyCheck struct {
	ID        int64  `json:"id"`
	CheckDate string `json:"check_date"`
	ItemName  string `json:"item_name"`
	Status    string `json:"status"`
	Remark    string `json:"remark"`
	CheckedBy string `json:"checked_by"`
	CreatedAt string `json:"created_at"`
}

// StatusCount pairs a free-text daily-check status label with its
// occurrence count.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// InventoryItem is a stocked item. Quantity defaults to 0.
type InventoryItem struct {
	ID       int64  `json:"id"`
	ItemName string `json:"item_name"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
	Location string `json:"location"`
	Remark   string `json:"remark"`
}

// Switch is a network switch owning zero or more cameras. Deleting a
// switch deletes its cameras.
type Switch struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	IP       string   `json:"ip"`
	Model    string   `json:"model"`
	Ports    int      `json:"ports"`
	Location string   `json:"location"`
	Status   string   `json:"status"`
	Remark   string   `json:"remark"`
	Cameras  []Camera `json:"cameras"`
}

// Camera is a CCTV camera attached to a switch. Cameras with an empty IP
// are never persisted.
type Camera struct {
	ID       int64  `json:"id"`
	SwitchID int64  `json:"switch_id"`
	Name     string `json:"name"`
	IP       string `json:"ip"`
}

// AuditEntry is one row of the mutation audit trail.
type AuditEntry struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Action    string `json:"action"`
	Module    string `json:"module"`
	RecordID  string `json:"record_id"`
	Summary   string `json:"summary"`
	CreatedAt string `json:"created_at"`
}

// BackupInfo describes one dump file in the backup directory.
type BackupInfo struct {
	Filename  string `json:"filename"`
	Size      int64  `json:"size"`
	CreatedAt string `json:"created_at"`
}
