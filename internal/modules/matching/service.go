// README: Matching service; runs the simulated live feed and auto-assignment.
package matching

import (
	"context"
	"log"
	"math/rand/v2"
	"time"

	"annadaan/internal/config"
	"annadaan/internal/modules/tracking"
	"annadaan/internal/types"
)

// Service drives the periodic tick that emulates server push: in-transit
// couriers drift a little every tick, and occasionally a pending donation
// gets auto-assigned to its nearest available volunteer. All mutations go
// through the tracking service's command path; there is no side door into
// the store.
type Service struct {
	tracking *tracking.Service
	cfg      config.SimulationConfig
	rng      *rand.Rand
}

// NewService builds the feed. rng is injected so ticks are reproducible;
// nil falls back to a seeded-from-config source (seed 0 means
// nondeterministic).
func NewService(trackingSvc *tracking.Service, cfg config.SimulationConfig, rng *rand.Rand) *Service {
	if rng == nil {
		seed := uint64(cfg.Seed)
		if seed == 0 {
			seed = rand.Uint64()
		}
		rng = rand.New(rand.NewPCG(seed, seed))
	}
	return &Service{tracking: trackingSvc, cfg: cfg, rng: rng}
}

// Candidates returns the ranked available volunteers for a donation.
func (s *Service) Candidates(donationID types.ID) ([]RankedVolunteer, error) {
	d, err := s.tracking.Donation(donationID)
	if err != nil {
		return nil, err
	}
	snap := s.tracking.Snapshot()
	return Rank(d, snap.Volunteers), nil
}

// RunScheduler ticks at the configured interval until ctx ends.
func (s *Service) RunScheduler(ctx context.Context) {
	interval := time.Duration(s.cfg.TickSeconds) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs one simulation step against the current snapshot.
func (s *Service) Tick(ctx context.Context) {
	snap := s.tracking.Snapshot()

	for _, d := range snap.Donations {
		if d.Status != tracking.StatusInTransit || d.Volunteer == nil || d.Volunteer.CurrentLocation == nil {
			continue
		}
		p := types.Point{
			Lat: d.Volunteer.CurrentLocation.Lat + (s.rng.Float64()-0.5)*s.cfg.JitterDegrees,
			Lng: d.Volunteer.CurrentLocation.Lng + (s.rng.Float64()-0.5)*s.cfg.JitterDegrees,
		}
		if _, err := s.tracking.UpdateDeliveryPosition(ctx, d.ID, p); err != nil {
			// The delivery may have completed between snapshot and write.
			log.Printf("matching: courier move skipped for %s: %v", d.ID, err)
		}
	}

	if s.rng.Float64() < s.cfg.AssignProbability {
		s.autoAssign(ctx, snap)
	}
}

// autoAssign picks a random pending donation and hands it to the nearest
// available volunteer through the regular assignment operation.
func (s *Service) autoAssign(ctx context.Context, snap tracking.Snapshot) {
	pending := make([]tracking.Donation, 0, len(snap.Donations))
	for _, d := range snap.Donations {
		if d.Status == tracking.StatusPending {
			pending = append(pending, d)
		}
	}
	if len(pending) == 0 {
		return
	}
	d := pending[s.rng.IntN(len(pending))]

	ranked := Rank(d, snap.Volunteers)
	if len(ranked) == 0 {
		return
	}
	if _, err := s.tracking.AssignVolunteer(ctx, d.ID, ranked[0].Volunteer.ID); err != nil {
		// Lost the race against a user-driven assignment; fine.
		log.Printf("matching: auto-assign skipped for %s: %v", d.ID, err)
	}
}
