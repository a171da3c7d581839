// Package admin exposes the backup, restore, seeding, and audit endpoints.
package admin

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"maintlog/internal/audit"
	"maintlog/internal/backup"
	"maintlog/internal/response"
	"maintlog/internal/seed"
	"maintlog/internal/store"
)

// Handler holds dependencies for admin handlers.
type Handler struct {
	Store  *store.Store
	Backup *backup.Driver
	Logger *zap.Logger
}

// CreateBackup handles POST /api/v1/admin/backups. Unlike the automatic
// post-mutation dumps, an explicit backup reports its failure.
func (h *Handler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	if err := h.Backup.Backup(); err != nil {
		response.Err(w, fmt.Sprintf("backup failed: %v", err), 500)
		return
	}
	response.JSON(w, map[string]string{"status": "ok"})
}

// ListBackups handles GET /api/v1/admin/backups.
func (h *Handler) ListBackups(w http.ResponseWriter, r *http.Request) {
	backups, err := h.Backup.List()
	if err != nil {
		response.Err(w, fmt.Sprintf("failed to list backups: %v", err), 500)
		return
	}
	response.JSON(w, backups)
}

// RestoreLatest handles POST /api/v1/admin/restore-latest. Restore is an
// explicit admin action; every failure is surfaced.
func (h *Handler) RestoreLatest(w http.ResponseWriter, r *http.Request) {
	filename, err := h.Backup.RestoreLatest()
	if err == backup.ErrNoBackups {
		response.Err(w, err.Error(), 404)
		return
	}
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	audit.Log(h.Store.DB(), h.Logger, audit.ActionRestore, "database", filename, "Restored database from "+filename)
	response.JSON(w, map[string]string{"status": "ok", "restored_from": filename})
}

type seedRequest struct {
	StartDate string         `json:"start_date"`
	EndDate   string         `json:"end_date"`
	Items     []string       `json:"items"`
	Anomalies []seed.Anomaly `json:"anomalies"`
}

// Seed handles POST /api/v1/admin/seed: bulk-insert synthetic daily
// checks over a date range. Duplicates from earlier runs are reported as
// skips.
func (h *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	var req seedRequest
	if err := response.DecodeBody(r, &req); err != nil {
		response.Err(w, "invalid body", 400)
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		response.Err(w, "start_date must be a valid date (YYYY-MM-DD)", 400)
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		response.Err(w, "end_date must be a valid date (YYYY-MM-DD)", 400)
		return
	}

	res, err := seed.DailyChecks(h.Store, start, end, req.Items, req.Anomalies)
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	audit.Log(h.Store.DB(), h.Logger, audit.ActionSeed, "dailycheck", "",
		fmt.Sprintf("Seeded %d daily checks (%d skipped)", res.Inserted, res.Skipped))
	response.JSON(w, res)
}

// AuditLog handles GET /api/v1/audit.
func (h *Handler) AuditLog(w http.ResponseWriter, r *http.Request) {
	entries, err := audit.Recent(h.Store.DB(), 200)
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	response.JSON(w, entries)
}
