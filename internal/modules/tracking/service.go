// README: Tracking service; command layer over the store with simulated latency.
package tracking

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"annadaan/internal/types"
)

var (
	ErrDonationNotFound      = errors.New("donation not found")
	ErrVolunteerNotFound     = errors.New("volunteer not found")
	ErrDonationNotPending    = errors.New("donation is not pending")
	ErrVolunteerNotAvailable = errors.New("volunteer is not available")
	ErrDonationNotInTransit  = errors.New("donation is not in transit")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrBadRequest            = errors.New("bad request")
)

// Mirror receives best-effort copies of live courier positions, e.g. a
// Redis GEO set. Mirror failures are logged and never surfaced.
type Mirror interface {
	Publish(ctx context.Context, volunteerID types.ID, p types.Point) error
	Ping(ctx context.Context) error
}

// Config tunes the artificial latencies that emulate a remote backend.
// Zero values make operations complete synchronously (tests).
type Config struct {
	AssignLatency  time.Duration
	RefreshLatency time.Duration
}

type Service struct {
	store  *Store
	mirror Mirror
	cfg    Config

	now func() time.Time
}

func NewService(store *Store, mirror Mirror, cfg Config) *Service {
	return &Service{store: store, mirror: mirror, cfg: cfg, now: time.Now}
}

func (s *Service) Snapshot() Snapshot { return s.store.Snapshot() }

func (s *Service) Donation(id types.ID) (Donation, error) { return s.store.Donation(id) }

func (s *Service) Volunteer(id types.ID) (Volunteer, error) { return s.store.Volunteer(id) }

// SelectDonation records the UI focus. Pure presentation state; no
// business effect.
func (s *Service) SelectDonation(id *types.ID) error {
	return s.store.Select(id)
}

// AssignVolunteer links a volunteer to a pending donation. The operation
// waits out the configured latency first (cancellable via ctx), then
// mutates both entities atomically.
func (s *Service) AssignVolunteer(ctx context.Context, donationID, volunteerID types.ID) (Donation, error) {
	if err := wait(ctx, s.cfg.AssignLatency); err != nil {
		return Donation{}, err
	}
	d, err := s.store.Assign(donationID, volunteerID, s.now())
	if err != nil {
		return Donation{}, err
	}
	if d.Volunteer != nil && d.Volunteer.CurrentLocation != nil {
		s.publish(ctx, d.Volunteer.ID, *d.Volunteer.CurrentLocation)
	}
	return d, nil
}

// UpdateStatus advances the donation lifecycle. Only forward moves along
// assigned → in_transit → delivered are accepted; delivery releases the
// volunteer.
func (s *Service) UpdateStatus(ctx context.Context, donationID types.ID, to Status) (Donation, error) {
	if !ValidStatus(to) {
		return Donation{}, ErrBadRequest
	}
	return s.store.UpdateStatus(donationID, to, s.now())
}

// UpdateVolunteerLocation moves a volunteer and the live position on any
// in-flight donation they carry, in one step.
func (s *Service) UpdateVolunteerLocation(ctx context.Context, volunteerID types.ID, p types.Point) (Volunteer, error) {
	if !p.Valid() {
		return Volunteer{}, ErrBadRequest
	}
	v, err := s.store.UpdateVolunteerLocation(volunteerID, p, s.now())
	if err != nil {
		return Volunteer{}, err
	}
	s.publish(ctx, v.ID, p)
	return v, nil
}

// UpdateDeliveryPosition moves only the live courier position on an
// in-transit donation. Used by the simulated feed; the volunteer's idle
// location stays put.
func (s *Service) UpdateDeliveryPosition(ctx context.Context, donationID types.ID, p types.Point) (Donation, error) {
	if !p.Valid() {
		return Donation{}, ErrBadRequest
	}
	d, err := s.store.UpdateDeliveryPosition(donationID, p, s.now())
	if err != nil {
		return Donation{}, err
	}
	if d.Volunteer != nil {
		s.publish(ctx, d.Volunteer.ID, p)
	}
	return d, nil
}

// NewDonation carries the caller-supplied fields of a submission.
type NewDonation struct {
	DonorName    string
	FoodQuantity string
	EventType    string
	Description  string
	Location     types.Point
	Address      string
	ExpiryTime   time.Time
}

// AddDonation creates a pending donation with a generated ID.
func (s *Service) AddDonation(ctx context.Context, n NewDonation) (Donation, error) {
	if n.DonorName == "" || n.FoodQuantity == "" {
		return Donation{}, ErrBadRequest
	}
	if !n.Location.Valid() {
		return Donation{}, ErrBadRequest
	}
	now := s.now()
	d := &Donation{
		ID:           types.ID(uuid.NewString()),
		DonorName:    n.DonorName,
		FoodQuantity: n.FoodQuantity,
		EventType:    n.EventType,
		Description:  n.Description,
		Location:     n.Location,
		Address:      n.Address,
		ExpiryTime:   n.ExpiryTime,
		Status:       StatusPending,
		CreatedAt:    now,
	}
	s.store.AddDonation(d, now)
	return *d.clone(), nil
}

// Refresh re-synchronizes with the external feed. The mock feed is a
// no-op beyond the latency; only the last-updated marker moves, so
// concurrent local edits are never clobbered by stale data.
func (s *Service) Refresh(ctx context.Context) error {
	if err := wait(ctx, s.cfg.RefreshLatency); err != nil {
		return err
	}
	if s.mirror != nil {
		if err := s.mirror.Ping(ctx); err != nil {
			log.Printf("tracking: mirror unreachable during refresh: %v", err)
		}
	}
	s.store.Touch(s.now())
	return nil
}

func (s *Service) publish(ctx context.Context, id types.ID, p types.Point) {
	if s.mirror == nil {
		return
	}
	if err := s.mirror.Publish(ctx, id, p); err != nil {
		log.Printf("tracking: position mirror publish failed: %v", err)
	}
}

// wait sleeps for d unless ctx ends first.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
