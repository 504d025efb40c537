// README: Driver roster handlers for listing, creation and availability.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabdesk/internal/modules/fleet"
	"cabdesk/internal/types"
)

type DriverHandler struct {
	fleet *fleet.Service
}

func NewDriverHandler(svc *fleet.Service) *DriverHandler {
	return &DriverHandler{fleet: svc}
}

type createDriverReq struct {
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone"`
	VehicleClass  string `json:"vehicle_class" binding:"required"`
	VehicleNumber string `json:"vehicle_number"`
	Online        bool   `json:"online"`
}

type onlineReq struct {
	Online *bool `json:"online" binding:"required"`
}

func (h *DriverHandler) List(c *gin.Context) {
	drivers, err := h.fleet.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if drivers == nil {
		drivers = []fleet.Driver{}
	}
	writeJSON(c, http.StatusOK, map[string]any{"drivers": drivers})
}

func (h *DriverHandler) Create(c *gin.Context) {
	var req createDriverReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	d, err := h.fleet.Create(c.Request.Context(), fleet.CreateCommand{
		Name:          req.Name,
		Phone:         req.Phone,
		VehicleClass:  req.VehicleClass,
		VehicleNumber: req.VehicleNumber,
		Online:        req.Online,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, d)
}

func (h *DriverHandler) SetOnline(c *gin.Context) {
	var req onlineReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	d, err := h.fleet.SetOnline(c.Request.Context(), types.ID(c.Param("id")), *req.Online)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, d)
}

func (h *DriverHandler) Toggle(c *gin.Context) {
	d, err := h.fleet.Toggle(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, d)
}
