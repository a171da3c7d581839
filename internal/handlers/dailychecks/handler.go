// Package dailychecks exposes the daily equipment check endpoints.
package dailychecks

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"maintlog/internal/audit"
	"maintlog/internal/models"
	"maintlog/internal/response"
	"maintlog/internal/store"
	"maintlog/internal/validation"
)

// Handler holds dependencies for daily check handlers.
type Handler struct {
	Store  *store.Store
	Logger *zap.Logger
}

// List handles GET /api/v1/daily-checks. An optional date parameter
// narrows the history to one day.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	checks, err := h.Store.ListDailyChecks(r.URL.Query().Get("date"))
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	response.JSON(w, checks)
}

// Summary handles GET /api/v1/daily-checks/summary: every distinct status
// label with its occurrence count.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Store.DailyCheckStatusBreakdown()
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	response.JSON(w, counts)
}

// Get handles GET /api/v1/daily-checks/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request, id int64) {
	c, err := h.Store.GetDailyCheck(id)
	if err == store.ErrNotFound {
		response.Err(w, "not found", 404)
		return
	}
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	response.JSON(w, c)
}

func validateDailyCheck(c models.DailyCheck) *validation.ValidationErrors {
	ve := &validation.ValidationErrors{}
	validation.RequireField(ve, "check_date", c.CheckDate)
	validation.RequireField(ve, "item_name", c.ItemName)
	validation.ValidateDate(ve, "check_date", c.CheckDate)
	validation.ValidateMaxLength(ve, "item_name", c.ItemName, 255)
	validation.ValidateMaxLength(ve, "status", c.Status, 100)
	validation.ValidateMaxLength(ve, "remark", c.Remark, 10000)
	validation.ValidateMaxLength(ve, "checked_by", c.CheckedBy, 255)
	return ve
}

// Create handles POST /api/v1/daily-checks. A check that already exists
// for the same day and item is declined with 409.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var c models.DailyCheck
	if err := response.DecodeBody(r, &c); err != nil {
		response.Err(w, "invalid body", 400)
		return
	}
	if ve := validateDailyCheck(c); ve.HasErrors() {
		response.Err(w, ve.Error(), 400)
		return
	}

	id, err := h.Store.CreateDailyCheck(c)
	if err == store.ErrDuplicateCheck {
		response.Err(w, err.Error(), 409)
		return
	}
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	c, _ = h.Store.GetDailyCheck(id)
	audit.Log(h.Store.DB(), h.Logger, audit.ActionCreate, "dailycheck", fmt.Sprint(id),
		fmt.Sprintf("Checked %s on %s", c.ItemName, c.CheckDate))
	response.JSON(w, c)
}

// Update handles PUT /api/v1/daily-checks/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request, id int64) {
	var c models.DailyCheck
	if err := response.DecodeBody(r, &c); err != nil {
		response.Err(w, "invalid body", 400)
		return
	}
	if ve := validateDailyCheck(c); ve.HasErrors() {
		response.Err(w, ve.Error(), 400)
		return
	}

	err := h.Store.UpdateDailyCheck(id, c)
	if err == store.ErrNotFound {
		response.Err(w, "not found", 404)
		return
	}
	if err == store.ErrDuplicateCheck {
		response.Err(w, err.Error(), 409)
		return
	}
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	c, _ = h.Store.GetDailyCheck(id)
	audit.Log(h.Store.DB(), h.Logger, audit.ActionUpdate, "dailycheck", fmt.Sprint(id), "Updated daily check")
	response.JSON(w, c)
}

// Delete handles DELETE /api/v1/daily-checks/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, id int64) {
	err := h.Store.DeleteDailyCheck(id)
	if err == store.ErrNotFound {
		response.Err(w, "not found", 404)
		return
	}
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	audit.Log(h.Store.DB(), h.Logger, audit.ActionDelete, "dailycheck", fmt.Sprint(id), "Deleted daily check")
	response.JSON(w, map[string]string{"status": "ok"})
}
