// Package inventory exposes the stocked-item CRUD endpoints.
package inventory

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

// Handler holds dependencies for inventory handlers.
type Handler struct {
	Store  *store.Store
	Logger *zap.Logger
}

// List handles GET /api/v1/inventory.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.ListInventory()
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	response.JSON(w, items)
}

// Get handles GET /api/v1/inventory/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request, id int64) {
	item, err := h.Store.GetInventoryItem(id)
	if err == store.ErrNotFound {
		response.Err(w, "not found", 404)
		return
	}
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	response.JSON(w, item)
}

func validateItem(i models.InventoryItem) *validation.ValidationErrors {
	ve := &validation.ValidationErrors{}
	validation.RequireField(ve, "item_name", i.ItemName)
	validation.ValidateMaxLength(ve, "item_name", i.ItemName, 255)
	validation.ValidateMaxLength(ve, "category", i.Category, 255)
	validation.ValidateMaxLength(ve, "location", i.Location, 255)
	validation.ValidateMaxLength(ve, "remark", i.Remark, 10000)
	if i.Quantity < 0 {
		ve.Add("quantity", "must be non-negative")
	}
	return ve
}

// Create handles POST /api/v1/inventory.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var item models.InventoryItem
	if err := response.DecodeBody(r, &item); err != nil {
		response.Err(w, "invalid body", 400)
		return
	}
	if ve := validateItem(item); ve.HasErrors() {
		response.Err(w, ve.Error(), 400)
		return
	}

	id, err := h.Store.CreateInventoryItem(item)
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	item, _ = h.Store.GetInventoryItem(id)
	audit.Log(h.Store.DB(), h.Logger, audit.ActionCreate, "inventory", fmt.Sprint(id), "Added "+item.ItemName)
	response.JSON(w, item)
}

// Update handles PUT /api/v1/inventory/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request, id int64) {
	var item models.InventoryItem
	if err := response.DecodeBody(r, &item); err != nil {
		response.Err(w, "invalid body", 400)
		return
	}
	if ve := validateItem(item); ve.HasErrors() {
		response.Err(w, ve.Error(), 400)
		return
	}

	err := h.Store.UpdateInventoryItem(id, item)
	if err == store.ErrNotFound {
		response.Err(w, "not found", 404)
		return
	}
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	item, _ = h.Store.GetInventoryItem(id)
	audit.Log(h.Store.DB(), h.Logger, audit.ActionUpdate, "inventory", fmt.Sprint(id), "Updated "+item.ItemName)
	response.JSON(w, item)
}

// Delete handles DELETE /api/v1/inventory/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, id int64) {
	err := h.Store.DeleteInventoryItem(id)
	if err == store.ErrNotFound {
		response.Err(w, "not found", 404)
		return
	}
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	audit.Log(h.Store.DB(), h.Logger, audit.ActionDelete, "inventory", fmt.Sprint(id), "Deleted inventory item")
	response.JSON(w, map[string]string{"status": "ok"})
}
