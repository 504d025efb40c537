// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"cabdesk/internal/modules/booking"
	"cabdesk/internal/modules/fleet"
	"cabdesk/internal/modules/matching"
	"cabdesk/internal/modules/pricing"
	"cabdesk/internal/types"
)

type errorResponse struct {
	Error       string                `json:"error"`
	Remediation *matching.Remediation `json:"remediation,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeBindError reports a malformed body or a failed binding rule as 400.
func writeBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		writeError(c, http.StatusBadRequest, fmt.Sprintf("invalid %s", strings.ToLower(verrs[0].Field())))
		return
	}
	writeError(c, http.StatusBadRequest, "invalid json")
}

// writeServiceError maps module errors onto HTTP status codes.
func writeServiceError(c *gin.Context, err error) {
	var noDriver *booking.NoDriverError
	if errors.As(err, &noDriver) {
		writeJSON(c, http.StatusConflict, errorResponse{Error: noDriver.Error(), Remediation: &noDriver.Remediation})
		return
	}
	switch {
	case errors.Is(err, booking.ErrBadRequest),
		errors.Is(err, booking.ErrCapacityExceeded),
		errors.Is(err, fleet.ErrBadRequest),
		errors.Is(err, types.ErrUnknownVehicleClass),
		errors.Is(err, pricing.ErrUnknownVehicle),
		errors.Is(err, pricing.ErrUnknownPackage):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, booking.ErrNotFound), errors.Is(err, fleet.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, booking.ErrWrongDriver):
		writeError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, booking.ErrInvalidState),
		errors.Is(err, booking.ErrConflict),
		errors.Is(err, booking.ErrInvalidOTP),
		errors.Is(err, matching.ErrNoDriverAvailable):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, pricing.ErrEstimationFailed):
		writeError(c, http.StatusBadGateway, pricing.ErrEstimationFailed.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
