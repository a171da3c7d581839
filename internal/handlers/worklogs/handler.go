// Package worklogs exposes the work log CRUD and dashboard endpoints.
package worklogs

import (
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"maintlog/internal/audit"
	"maintlog/internal/models"
	"maintlog/internal/response"
	"maintlog/internal/store"
	"maintlog/internal/validation"
)

// Handler holds dependencies for work log handlers.
type Handler struct {
	Store  *store.Store
	Logger *zap.Logger
}

// FilterFromQuery maps the optional query-string filters onto a store
// filter. Missing parameters stay zero and add no predicate.
func FilterFromQuery(r *http.Request) models.WorkLogFilter {
	q := r.URL.Query()
	return models.WorkLogFilter{
		Date:     q.Get("date"),
		Status:   q.Get("status"),
		Category: q.Get("category"),
		Keyword:  q.Get("q"),
	}
}

// List handles GET /api/v1/worklogs. A limit parameter switches the
// response to a paginated envelope; without it the whole filtered set is
// returned.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logs, err := h.Store.ListWorkLogs(FilterFromQuery(r))
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		response.JSON(w, logs)
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	total := len(logs)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	response.JSONMeta(w, logs[start:end], total, page, limit)
}

// Summary handles GET /api/v1/worklogs/summary.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Store.WorkLogStatusCounts()
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	response.JSON(w, counts)
}

// Dashboard handles GET /api/v1/dashboard: the filtered listing plus the
// whole-table status counts in one payload.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	logs, err := h.Store.ListWorkLogs(FilterFromQuery(r))
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	counts, err := h.Store.WorkLogStatusCounts()
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	response.JSON(w, map[string]interface{}{
		"logs":   logs,
		"counts": counts,
	})
}

// Get handles GET /api/v1/worklogs/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request, id int64) {
	l, err := h.Store.GetWorkLog(id)
	if err == store.ErrNotFound {
		response.Err(w, "not found", 404)
		return
	}
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	response.JSON(w, l)
}

func validateWorkLog(l models.WorkLog) *validation.ValidationErrors {
	ve := &validation.ValidationErrors{}
	validation.RequireField(ve, "work_date", l.WorkDate)
	validation.RequireField(ve, "description", l.Description)
	validation.ValidateDate(ve, "work_date", l.WorkDate)
	validation.ValidateEnum(ve, "status", l.Status, validation.ValidWorkLogStatuses)
	validation.ValidateMaxLength(ve, "description", l.Description, 10000)
	validation.ValidateMaxLength(ve, "category", l.Category, 255)
	validation.ValidateMaxLength(ve, "branch", l.Branch, 255)
	validation.ValidateMaxLength(ve, "assigned_by", l.AssignedBy, 255)
	return ve
}

// Create handles POST /api/v1/worklogs.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var l models.WorkLog
	if err := response.DecodeBody(r, &l); err != nil {
		response.Err(w, "invalid body", 400)
		return
	}
	if ve := validateWorkLog(l); ve.HasErrors() {
		response.Err(w, ve.Error(), 400)
		return
	}

	id, err := h.Store.CreateWorkLog(l)
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	l, _ = h.Store.GetWorkLog(id)
	audit.Log(h.Store.DB(), h.Logger, audit.ActionCreate, "worklog", fmt.Sprint(id), "Created work log for "+l.WorkDate)
	response.JSON(w, l)
}

// Update handles PUT /api/v1/worklogs/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request, id int64) {
	var l models.WorkLog
	if err := response.DecodeBody(r, &l); err != nil {
		response.Err(w, "invalid body", 400)
		return
	}
	if ve := validateWorkLog(l); ve.HasErrors() {
		response.Err(w, ve.Error(), 400)
		return
	}

	err := h.Store.UpdateWorkLog(id, l)
	if err == store.ErrNotFound {
		response.Err(w, "not found", 404)
		return
	}
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	l, _ = h.Store.GetWorkLog(id)
	audit.Log(h.Store.DB(), h.Logger, audit.ActionUpdate, "worklog", fmt.Sprint(id), "Updated work log")
	response.JSON(w, l)
}

// Delete handles DELETE /api/v1/worklogs/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, id int64) {
	err := h.Store.DeleteWorkLog(id)
	if err == store.ErrNotFound {
		response.Err(w, "not found", 404)
		return
	}
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	audit.Log(h.Store.DB(), h.Logger, audit.ActionDelete, "worklog", fmt.Sprint(id), "Deleted work log")
	response.JSON(w, map[string]string{"status": "ok"})
}
