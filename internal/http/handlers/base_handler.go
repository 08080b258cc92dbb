// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"annadaan/internal/modules/location"
	"annadaan/internal/modules/tracking"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeTrackingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, tracking.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, tracking.ErrDonationNotFound), errors.Is(err, tracking.ErrVolunteerNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, tracking.ErrDonationNotPending),
		errors.Is(err, tracking.ErrVolunteerNotAvailable),
		errors.Is(err, tracking.ErrDonationNotInTransit),
		errors.Is(err, tracking.ErrInvalidTransition):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeLocationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, location.ErrPermissionDenied):
		writeError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, location.ErrPositionUnavailable), errors.Is(err, location.ErrTimeout):
		// Timeout degrades the same way as an unavailable provider.
		writeError(c, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
