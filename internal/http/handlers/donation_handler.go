// README: Donation handlers for listing, submission, assignment and status.
package handlers

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"annadaan/internal/maps"
	"annadaan/internal/modules/location"
	"annadaan/internal/modules/matching"
	"annadaan/internal/modules/tracking"
	"annadaan/internal/types"
)

type DonationHandler struct {
	tracking *tracking.Service
	matching *matching.Service
	location *location.Service
	routes   *maps.RouteService
}

func NewDonationHandler(trackingSvc *tracking.Service, matchingSvc *matching.Service, locationSvc *location.Service, routeSvc *maps.RouteService) *DonationHandler {
	return &DonationHandler{tracking: trackingSvc, matching: matchingSvc, location: locationSvc, routes: routeSvc}
}

func (h *DonationHandler) List(c *gin.Context) {
	writeJSON(c, http.StatusOK, h.tracking.Snapshot().Donations)
}

func (h *DonationHandler) Get(c *gin.Context) {
	d, err := h.tracking.Donation(types.ID(c.Param("id")))
	if err != nil {
		writeTrackingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, d)
}

type createDonationReq struct {
	DonorName    string   `json:"donor_name"`
	FoodQuantity string   `json:"food_quantity"`
	EventType    string   `json:"event_type"`
	Description  string   `json:"description"`
	Lat          *float64 `json:"lat"`
	Lng          *float64 `json:"lng"`
	Address      string   `json:"address"`
	ExpiryTime   string   `json:"expiry_time"`
}

// Create accepts a donation submission. Coordinates win when supplied;
// otherwise the address is forward-geocoded, and a geocoding failure with
// no coordinates rejects the request rather than fabricating a location.
func (h *DonationHandler) Create(c *gin.Context) {
	var req createDonationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.DonorName == "" || req.FoodQuantity == "" {
		writeError(c, http.StatusBadRequest, "missing fields")
		return
	}

	var point types.Point
	switch {
	case req.Lat != nil && req.Lng != nil:
		point = types.Point{Lat: *req.Lat, Lng: *req.Lng}
	case req.Address != "" && h.location != nil:
		p, err := h.location.ResolveAddress(c.Request.Context(), req.Address)
		if err != nil {
			writeError(c, http.StatusBadRequest, "address could not be resolved; supply coordinates")
			return
		}
		point = p
	default:
		writeError(c, http.StatusBadRequest, "location required")
		return
	}

	expiry := time.Now().Add(4 * time.Hour)
	if req.ExpiryTime != "" {
		t, err := time.Parse(time.RFC3339, req.ExpiryTime)
		if err != nil {
			writeError(c, http.StatusBadRequest, "expiry_time must be RFC3339")
			return
		}
		expiry = t
	}

	d, err := h.tracking.AddDonation(c.Request.Context(), tracking.NewDonation{
		DonorName:    req.DonorName,
		FoodQuantity: req.FoodQuantity,
		EventType:    req.EventType,
		Description:  req.Description,
		Location:     point,
		Address:      req.Address,
		ExpiryTime:   expiry,
	})
	if err != nil {
		writeTrackingError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, d)
}

type assignReq struct {
	VolunteerID string `json:"volunteer_id"`
}

func (h *DonationHandler) Assign(c *gin.Context) {
	var req assignReq
	if err := c.ShouldBindJSON(&req); err != nil || req.VolunteerID == "" {
		writeError(c, http.StatusBadRequest, "volunteer_id required")
		return
	}
	d, err := h.tracking.AssignVolunteer(c.Request.Context(), types.ID(c.Param("id")), types.ID(req.VolunteerID))
	if err != nil {
		writeTrackingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, d)
}

type statusReq struct {
	Status string `json:"status"`
}

func (h *DonationHandler) UpdateStatus(c *gin.Context) {
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		writeError(c, http.StatusBadRequest, "status required")
		return
	}
	d, err := h.tracking.UpdateStatus(c.Request.Context(), types.ID(c.Param("id")), tracking.Status(req.Status))
	if err != nil {
		writeTrackingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, d)
}

// Candidates lists available volunteers ranked by distance to the
// donation's pickup point.
func (h *DonationHandler) Candidates(c *gin.Context) {
	ranked, err := h.matching.Candidates(types.ID(c.Param("id")))
	if err != nil {
		writeTrackingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, ranked)
}

type etaResponse struct {
	EtaMinutes int     `json:"eta_minutes"`
	DistanceKm float64 `json:"distance_km"`
	Source     string  `json:"source"`
}

// ETA reports the assigned courier's travel time to the pickup point.
// The Directions API is consulted when available; any route failure
// degrades to the speed heuristic instead of erroring out.
func (h *DonationHandler) ETA(c *gin.Context) {
	d, err := h.tracking.Donation(types.ID(c.Param("id")))
	if err != nil {
		writeTrackingError(c, err)
		return
	}
	if d.Volunteer == nil {
		writeTrackingError(c, tracking.ErrDonationNotPending)
		return
	}
	origin := d.Volunteer.CurrentLocation
	if origin == nil {
		writeError(c, http.StatusServiceUnavailable, "courier position unknown")
		return
	}

	resp := etaResponse{
		EtaMinutes: location.EstimatedTravelMinutes(*origin, d.Location),
		DistanceKm: location.DistanceKm(*origin, d.Location),
		Source:     "heuristic",
	}
	if h.routes != nil {
		if dur, _, err := h.routes.TravelEstimate(c.Request.Context(), *origin, d.Location); err == nil {
			resp.EtaMinutes = int(math.Ceil(dur.Minutes()))
			resp.Source = "route"
		}
	}
	writeJSON(c, http.StatusOK, resp)
}
