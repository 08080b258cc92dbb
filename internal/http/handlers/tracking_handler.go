// README: Tracking handlers for snapshot, selection and refresh.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"annadaan/internal/modules/tracking"
	"annadaan/internal/types"
)

type TrackingHandler struct {
	tracking *tracking.Service
}

func NewTrackingHandler(svc *tracking.Service) *TrackingHandler {
	return &TrackingHandler{tracking: svc}
}

// Snapshot returns a consistent copy of the full tracking state.
func (h *TrackingHandler) Snapshot(c *gin.Context) {
	writeJSON(c, http.StatusOK, h.tracking.Snapshot())
}

type selectReq struct {
	DonationID *string `json:"donation_id"`
}

// Select sets (or clears, with null) the focused donation.
func (h *TrackingHandler) Select(c *gin.Context) {
	var req selectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	var id *types.ID
	if req.DonationID != nil {
		v := types.ID(*req.DonationID)
		id = &v
	}
	if err := h.tracking.SelectDonation(id); err != nil {
		writeTrackingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"selected": req.DonationID})
}

// Refresh re-synchronizes with the external feed.
func (h *TrackingHandler) Refresh(c *gin.Context) {
	if err := h.tracking.Refresh(c.Request.Context()); err != nil {
		writeError(c, http.StatusServiceUnavailable, "refresh interrupted")
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"last_updated": h.tracking.Snapshot().LastUpdated})
}
