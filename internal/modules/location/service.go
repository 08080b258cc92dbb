// README: Location service resolves positions and addresses with graceful fallback.
package location

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"annadaan/internal/types"
)

// Geocoder translates between addresses and coordinates. Both directions
// are best-effort; failures never abort the caller's primary flow.
type Geocoder interface {
	Forward(ctx context.Context, address string) (types.Point, error)
	Reverse(ctx context.Context, p types.Point) (string, error)
}

// Located is a position with a human-readable address. When geocoding is
// unavailable the address is the raw coordinate pair.
type Located struct {
	Position Position `json:"position"`
	Address  string   `json:"address"`
}

type Service struct {
	provider Provider
	geocoder Geocoder
	timeout  time.Duration
}

// NewService wires a provider with an optional geocoder. geocoder may be
// nil; positions then carry coordinate-formatted addresses.
func NewService(provider Provider, geocoder Geocoder, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{provider: provider, geocoder: geocoder, timeout: timeout}
}

// Locate returns the current position with its address. Provider errors
// surface as-is; geocoder errors degrade to raw coordinates.
func (s *Service) Locate(ctx context.Context) (Located, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	pos, err := s.provider.CurrentPosition(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Located{}, ErrTimeout
		}
		return Located{}, err
	}
	return Located{Position: pos, Address: s.addressFor(ctx, pos.Coord)}, nil
}

// ResolveAddress forward-geocodes free text. Empty result or geocoder
// failure is reported so the caller can fall back to manual coordinates.
func (s *Service) ResolveAddress(ctx context.Context, address string) (types.Point, error) {
	if s.geocoder == nil {
		return types.Point{}, ErrPositionUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.geocoder.Forward(ctx, address)
}

func (s *Service) addressFor(ctx context.Context, p types.Point) string {
	if s.geocoder != nil {
		if addr, err := s.geocoder.Reverse(ctx, p); err == nil && addr != "" {
			return addr
		} else if err != nil {
			log.Printf("location: reverse geocode failed, using coordinates: %v", err)
		}
	}
	return FormatCoordinates(p)
}

// FormatCoordinates renders a point the way the UI shows unresolved
// addresses.
func FormatCoordinates(p types.Point) string {
	return fmt.Sprintf("%.6f, %.6f", p.Lat, p.Lng)
}
