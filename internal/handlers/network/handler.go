// Package network exposes the switch and camera registry endpoints.
package network

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

// Handler holds dependencies for switch/camera handlers.
type Handler struct {
	Store  *store.Store
	Logger *zap.Logger
}

// switchRequest is the payload for create/update. Cameras can arrive as
// structured entries or as the legacy parallel name/ip lists; both are
// merged positionally and entries without an IP are dropped by the store.
type switchRequest struct {
	models.Switch
	CameraNames []string `json:"camera_names"`
	CameraIPs   []string `json:"camera_ips"`
}

func (req *switchRequest) toSwitch() models.Switch {
	sw := req.Switch
	for i, ip := range req.CameraIPs {
		var name string
		if i < len(req.CameraNames) {
			name = req.CameraNames[i]
		}
		sw.Cameras = append(sw.Cameras, models.Camera{Name: name, IP: ip})
	}
	return sw
}

func validateSwitch(sw models.Switch) *validation.ValidationErrors {
	ve := &validation.ValidationErrors{}
	validation.RequireField(ve, "name", sw.Name)
	validation.ValidateMaxLength(ve, "name", sw.Name, 255)
	validation.ValidateMaxLength(ve, "model", sw.Model, 255)
	validation.ValidateMaxLength(ve, "location", sw.Location, 255)
	validation.ValidateMaxLength(ve, "remark", sw.Remark, 10000)
	validation.ValidateIP(ve, "ip", sw.IP)
	validation.ValidateIntRange(ve, "ports", sw.Ports, 0, 1024)
	for i, c := range sw.Cameras {
		validation.ValidateIP(ve, fmt.Sprintf("cameras[%d].ip", i), c.IP)
	}
	return ve
}

// List handles GET /api/v1/switches.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	switches, err := h.Store.ListSwitches()
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	response.JSON(w, switches)
}

// Get handles GET /api/v1/switches/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request, id int64) {
	sw, err := h.Store.GetSwitch(id)
	if err == store.ErrNotFound {
		response.Err(w, "not found", 404)
		return
	}
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	response.JSON(w, sw)
}

// Create handles POST /api/v1/switches.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req switchRequest
	if err := response.DecodeBody(r, &req); err != nil {
		response.Err(w, "invalid body", 400)
		return
	}
	sw := req.toSwitch()
	if ve := validateSwitch(sw); ve.HasErrors() {
		response.Err(w, ve.Error(), 400)
		return
	}

	id, err := h.Store.CreateSwitch(sw)
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	sw, _ = h.Store.GetSwitch(id)
	audit.Log(h.Store.DB(), h.Logger, audit.ActionCreate, "switch", fmt.Sprint(id), "Added switch "+sw.Name)
	response.JSON(w, sw)
}

// Update handles PUT /api/v1/switches/{id}. The submitted camera list
// replaces the existing one.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request, id int64) {
	var req switchRequest
	if err := response.DecodeBody(r, &req); err != nil {
		response.Err(w, "invalid body", 400)
		return
	}
	sw := req.toSwitch()
	if ve := validateSwitch(sw); ve.HasErrors() {
		response.Err(w, ve.Error(), 400)
		return
	}

	err := h.Store.UpdateSwitch(id, sw)
	if err == store.ErrNotFound {
		response.Err(w, "not found", 404)
		return
	}
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	sw, _ = h.Store.GetSwitch(id)
	audit.Log(h.Store.DB(), h.Logger, audit.ActionUpdate, "switch", fmt.Sprint(id), "Updated switch "+sw.Name)
	response.JSON(w, sw)
}

// Delete handles DELETE /api/v1/switches/{id}. Cameras go with the switch.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, id int64) {
	err := h.Store.DeleteSwitch(id)
	if err == store.ErrNotFound {
		response.Err(w, "not found", 404)
		return
	}
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	audit.Log(h.Store.DB(), h.Logger, audit.ActionDelete, "switch", fmt.Sprint(id), "Deleted switch")
	response.JSON(w, map[string]string{"status": "ok"})
}
