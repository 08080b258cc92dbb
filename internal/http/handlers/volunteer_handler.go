// README: Volunteer handlers for listing and location updates.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"annadaan/internal/modules/tracking"
	"annadaan/internal/types"
)

type VolunteerHandler struct {
	tracking *tracking.Service
}

func NewVolunteerHandler(svc *tracking.Service) *VolunteerHandler {
	return &VolunteerHandler{tracking: svc}
}

func (h *VolunteerHandler) List(c *gin.Context) {
	writeJSON(c, http.StatusOK, h.tracking.Snapshot().Volunteers)
}

type locationReq struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// UpdateLocation moves the volunteer and the live position on any
// in-flight donation they carry.
func (h *VolunteerHandler) UpdateLocation(c *gin.Context) {
	var req locationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	v, err := h.tracking.UpdateVolunteerLocation(c.Request.Context(), types.ID(c.Param("id")), types.Point{Lat: req.Lat, Lng: req.Lng})
	if err != nil {
		writeTrackingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, v)
}
