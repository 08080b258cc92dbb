// README: Location handler exposing the provider position with address fallback.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"annadaan/internal/modules/location"
)

type LocationHandler struct {
	location *location.Service
}

func NewLocationHandler(svc *location.Service) *LocationHandler {
	return &LocationHandler{location: svc}
}

// Current returns the provider's position. When reverse geocoding is
// down the address field carries raw coordinates; when the provider
// itself is down the caller gets a 503 and shows no stale position.
func (h *LocationHandler) Current(c *gin.Context) {
	loc, err := h.location.Locate(c.Request.Context())
	if err != nil {
		writeLocationError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, loc)
}
