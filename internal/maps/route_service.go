package maps

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"annadaan/internal/types"
)

// RouteService fetches driving estimates from the Google Maps Directions
// API. It is an optional enrichment over the haversine heuristic; ranking
// never depends on it.
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a new RouteService with the given API key.
func NewRouteService(apiKey string) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	return &RouteService{client: client}, nil
}

// TravelEstimate returns the driving duration and a human-readable
// distance from origin to destination.
func (s *RouteService) TravelEstimate(ctx context.Context, origin, destination types.Point) (time.Duration, string, error) {
	r := &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", origin.Lat, origin.Lng),
		Destination: fmt.Sprintf("%f,%f", destination.Lat, destination.Lng),
		Mode:        maps.TravelModeDriving,
		Region:      "IN", // bias results to India, the pilot region
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, "", fmt.Errorf("%w: no route found", ErrLookupFailed)
	}

	leg := routes[0].Legs[0]
	return leg.Duration, leg.Distance.HumanReadable, nil
}
