// README: Booking handlers for quote, create, lookup and status transitions.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabdesk/internal/modules/booking"
	"cabdesk/internal/types"
)

type BookingHandler struct {
	booking *booking.Service
}

func NewBookingHandler(svc *booking.Service) *BookingHandler {
	return &BookingHandler{booking: svc}
}

type quoteReq struct {
	Pickup       string `json:"pickup" binding:"required"`
	Drop         string `json:"drop" binding:"required"`
	Hint         string `json:"hint"`
	VehicleClass string `json:"vehicle_class" binding:"required"`
	AC           bool   `json:"ac"`
	Package      string `json:"package"`
}

type createBookingReq struct {
	CustomerName   string       `json:"customer_name" binding:"required"`
	CustomerPhone  string       `json:"customer_phone" binding:"required"`
	CustomerEmail  string       `json:"customer_email" binding:"omitempty,email"`
	Pickup         string       `json:"pickup" binding:"required"`
	Drop           string       `json:"drop" binding:"required"`
	Hint           string       `json:"hint"`
	PickupPoint    *types.Point `json:"pickup_point"`
	DropPoint      *types.Point `json:"drop_point"`
	VehicleClass   string       `json:"vehicle_class" binding:"required"`
	AC             bool         `json:"ac"`
	PassengerCount int          `json:"passenger_count" binding:"gte=0"`
	Package        string       `json:"package"`
}

type startReq struct {
	DriverID string `json:"driver_id" binding:"required"`
	OTP      string `json:"otp" binding:"required,len=4,numeric"`
}

type completeReq struct {
	DriverID string `json:"driver_id"`
}

type cancelReq struct {
	ActorType string `json:"actor_type" binding:"omitempty,oneof=customer driver admin system"`
	ActorID   string `json:"actor_id"`
	Reason    string `json:"reason"`
}

func (h *BookingHandler) Quote(c *gin.Context) {
	var req quoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	q, err := h.booking.Quote(c.Request.Context(), booking.QuoteCommand{
		Pickup:       req.Pickup,
		Drop:         req.Drop,
		Hint:         req.Hint,
		VehicleClass: req.VehicleClass,
		AC:           req.AC,
		Package:      req.Package,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, q)
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	b, err := h.booking.Create(c.Request.Context(), booking.CreateCommand{
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		CustomerEmail:  req.CustomerEmail,
		Pickup:         req.Pickup,
		Drop:           req.Drop,
		Hint:           req.Hint,
		PickupPoint:    req.PickupPoint,
		DropPoint:      req.DropPoint,
		VehicleClass:   req.VehicleClass,
		AC:             req.AC,
		PassengerCount: req.PassengerCount,
		Package:        req.Package,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, b)
}

func (h *BookingHandler) List(c *gin.Context) {
	f := booking.ListFilter{
		Status:   booking.Status(c.Query("status")),
		DriverID: types.ID(c.Query("driver_id")),
		Phone:    c.Query("phone"),
	}
	list, err := h.booking.List(c.Request.Context(), f)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if list == nil {
		list = []booking.Booking{}
	}
	writeJSON(c, http.StatusOK, map[string]any{"bookings": list})
}

func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.booking.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, b)
}

func (h *BookingHandler) Events(c *gin.Context) {
	events, err := h.booking.Events(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if events == nil {
		events = []booking.Event{}
	}
	writeJSON(c, http.StatusOK, map[string]any{"events": events})
}

func (h *BookingHandler) Accept(c *gin.Context) {
	id := c.Param("id")
	driverID := c.Query("driver_id")
	if driverID == "" {
		writeError(c, http.StatusBadRequest, "missing driver_id")
		return
	}
	err := h.booking.Accept(c.Request.Context(), booking.AcceptCommand{
		BookingID: types.ID(id),
		DriverID:  types.ID(driverID),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"status": booking.StatusAssigned})
}

func (h *BookingHandler) Start(c *gin.Context) {
	var req startReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	err := h.booking.Start(c.Request.Context(), booking.StartCommand{
		BookingID: types.ID(c.Param("id")),
		DriverID:  types.ID(req.DriverID),
		OTP:       req.OTP,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"status": booking.StatusOnTrip})
}

func (h *BookingHandler) Complete(c *gin.Context) {
	var req completeReq
	// The body is optional; admins complete without a driver id.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBindError(c, err)
			return
		}
	}
	err := h.booking.Complete(c.Request.Context(), booking.CompleteCommand{
		BookingID: types.ID(c.Param("id")),
		DriverID:  types.ID(req.DriverID),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"status": booking.StatusCompleted})
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	var req cancelReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBindError(c, err)
			return
		}
	}
	err := h.booking.Cancel(c.Request.Context(), booking.CancelCommand{
		BookingID: types.ID(c.Param("id")),
		ActorType: req.ActorType,
		ActorID:   types.ID(req.ActorID),
		Reason:    req.Reason,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"status": booking.StatusCancelled})
}
