// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"annadaan/internal/http/handlers"
	"annadaan/internal/http/middleware"
	"annadaan/internal/maps"
	"annadaan/internal/modules/location"
	"annadaan/internal/modules/matching"
	"annadaan/internal/modules/tracking"
)

// NewRouter wires the command surface the UI talks to. locationSvc and
// routeSvc may be nil when no provider is configured; the affected
// routes then serve the degraded mode.
func NewRouter(
	trackingSvc *tracking.Service,
	matchingSvc *matching.Service,
	locationSvc *location.Service,
	routeSvc *maps.RouteService,
) http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	trackingHandler := handlers.NewTrackingHandler(trackingSvc)
	r.GET("/api/tracking", trackingHandler.Snapshot)
	r.POST("/api/tracking/select", trackingHandler.Select)
	r.POST("/api/tracking/refresh", trackingHandler.Refresh)

	donationHandler := handlers.NewDonationHandler(trackingSvc, matchingSvc, locationSvc, routeSvc)
	r.GET("/api/donations", donationHandler.List)
	r.POST("/api/donations", donationHandler.Create)
	r.GET("/api/donations/:id", donationHandler.Get)
	r.POST("/api/donations/:id/assign", donationHandler.Assign)
	r.POST("/api/donations/:id/status", donationHandler.UpdateStatus)
	r.GET("/api/donations/:id/candidates", donationHandler.Candidates)
	r.GET("/api/donations/:id/eta", donationHandler.ETA)

	volunteerHandler := handlers.NewVolunteerHandler(trackingSvc)
	r.GET("/api/volunteers", volunteerHandler.List)
	r.PUT("/api/volunteers/:id/location", volunteerHandler.UpdateLocation)

	if locationSvc != nil {
		locationHandler := handlers.NewLocationHandler(locationSvc)
		r.GET("/api/location/current", locationHandler.Current)
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
