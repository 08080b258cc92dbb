package maps

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"googlemaps.github.io/maps"

	"annadaan/internal/types"
)

// ErrLoadFailed means the maps client could not be constructed at all;
// callers should fall back to the non-map view. ErrLookupFailed is a
// runtime failure of an individual request and only degrades that call.
var (
	ErrLoadFailed   = errors.New("maps client failed to load")
	ErrLookupFailed = errors.New("geocode lookup failed")
)

// GeocodeService handles forward and reverse geocoding through the Google
// Maps API. The underlying client is created once per service handle, on
// first use; a failed load is remembered and reported on every call.
type GeocodeService struct {
	apiKey string

	once    sync.Once
	client  *maps.Client
	initErr error
}

// NewGeocodeService creates a service for the given API key. The key is
// the single opaque provider credential; it is not validated here.
func NewGeocodeService(apiKey string) *GeocodeService {
	return &GeocodeService{apiKey: apiKey}
}

func (s *GeocodeService) ensureClient() (*maps.Client, error) {
	s.once.Do(func() {
		client, err := maps.NewClient(maps.WithAPIKey(s.apiKey))
		if err != nil {
			s.initErr = fmt.Errorf("%w: %v", ErrLoadFailed, err)
			return
		}
		s.client = client
	})
	return s.client, s.initErr
}

// Forward resolves free-text address into coordinates.
func (s *GeocodeService) Forward(ctx context.Context, address string) (types.Point, error) {
	client, err := s.ensureClient()
	if err != nil {
		return types.Point{}, err
	}
	results, err := client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return types.Point{}, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	if len(results) == 0 {
		return types.Point{}, fmt.Errorf("%w: no results for %q", ErrLookupFailed, address)
	}
	loc := results[0].Geometry.Location
	return types.Point{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// Reverse resolves coordinates into a formatted address.
func (s *GeocodeService) Reverse(ctx context.Context, p types.Point) (string, error) {
	client, err := s.ensureClient()
	if err != nil {
		return "", err
	}
	results, err := client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: p.Lat, Lng: p.Lng},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("%w: no address at %.6f,%.6f", ErrLookupFailed, p.Lat, p.Lng)
	}
	return results[0].FormattedAddress, nil
}
