// README: Location provider contract (one-shot position + continuous watch).
package location

import (
	"context"
	"errors"
	"time"

	"annadaan/internal/types"
)

// Provider failure taxonomy. Callers treat ErrTimeout like
// ErrPositionUnavailable: degrade, never crash the tracking flow.
var (
	ErrPermissionDenied    = errors.New("location permission denied")
	ErrPositionUnavailable = errors.New("position unavailable")
	ErrTimeout             = errors.New("location request timed out")
)

// Position is a resolved geographic fix.
type Position struct {
	Coord      types.Point
	AccuracyM  float64
	RecordedAt time.Time
}

// Provider supplies the device/courier position. CurrentPosition must
// return within the provider's bounded timeout or fail with ErrTimeout.
// WatchPosition delivers updates until the returned cancel function is
// called or ctx ends; cancel must stop all further callbacks.
type Provider interface {
	CurrentPosition(ctx context.Context) (Position, error)
	WatchPosition(ctx context.Context, onUpdate func(Position), onErr func(error)) (cancel func())
}
