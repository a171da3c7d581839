// Package audit records who changed what. With no login model the actor is
// always "system", but the trail still answers when each record was
// touched and how.
package audit

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"maintlog/internal/models"
)

// Action constants.
const (
	ActionCreate  = "CREATE"
	ActionUpdate  = "UPDATE"
	ActionDelete  = "DELETE"
	ActionRestore = "RESTORE"
	ActionSeed    = "SEED"
)

// Log writes one audit entry. Audit failures are logged, never propagated;
// a missing trail entry must not fail the operation it describes.
func Log(db *sql.DB, logger *zap.Logger, action, module, recordID, summary string) {
	_, err := db.Exec(
		"INSERT INTO audit_log (username, action, module, record_id, summary) VALUES (?,?,?,?,?)",
		"system", action, module, recordID, summary)
	if err != nil && logger != nil {
		logger.Warn("audit log error", zap.Error(err))
	}
}

// Recent returns the newest limit audit entries.
func Recent(db *sql.DB, limit int) ([]models.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.Query(
		"SELECT id, username, action, module, record_id, COALESCE(summary,''), created_at FROM audit_log ORDER BY id DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	entries := []models.AuditEntry{}
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(&e.ID, &e.Username, &e.Action, &e.Module, &e.RecordID, &e.Summary, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
