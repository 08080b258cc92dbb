// README: In-memory tracking store; single owner of both entity collections.
package tracking

import (
	"sync"
	"time"

	"annadaan/internal/types"
)

// Store holds the authoritative donation and volunteer collections. Every
// mutation runs under one mutex so readers only ever observe fully
// applied assignments; all reads return deep copies. Insertion order is
// preserved so listings and ranking tie-breaks are deterministic.
type Store struct {
	mu sync.Mutex

	donations      map[types.ID]*Donation
	donationOrder  []types.ID
	volunteers     map[types.ID]*Volunteer
	volunteerOrder []types.ID

	selected    *types.ID
	lastUpdated time.Time
}

func NewStore() *Store {
	return &Store{
		donations:  make(map[types.ID]*Donation),
		volunteers: make(map[types.ID]*Volunteer),
	}
}

// Snapshot is a consistent copy of the whole tracking state.
type Snapshot struct {
	Donations   []Donation  `json:"donations"`
	Volunteers  []Volunteer `json:"volunteers"`
	Selected    *types.ID   `json:"selected,omitempty"`
	LastUpdated time.Time   `json:"last_updated"`
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Donations:   make([]Donation, 0, len(s.donationOrder)),
		Volunteers:  make([]Volunteer, 0, len(s.volunteerOrder)),
		LastUpdated: s.lastUpdated,
	}
	for _, id := range s.donationOrder {
		snap.Donations = append(snap.Donations, *s.donations[id].clone())
	}
	for _, id := range s.volunteerOrder {
		snap.Volunteers = append(snap.Volunteers, *s.volunteers[id].clone())
	}
	if s.selected != nil {
		sel := *s.selected
		snap.Selected = &sel
	}
	return snap
}

func (s *Store) Donation(id types.ID) (Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.donations[id]
	if !ok {
		return Donation{}, ErrDonationNotFound
	}
	return *d.clone(), nil
}

func (s *Store) Volunteer(id types.ID) (Volunteer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.volunteers[id]
	if !ok {
		return Volunteer{}, ErrVolunteerNotFound
	}
	return *v.clone(), nil
}

// Seed replaces the collections with the given session dataset.
func (s *Store) Seed(donations []*Donation, volunteers []*Volunteer, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.donations = make(map[types.ID]*Donation, len(donations))
	s.donationOrder = s.donationOrder[:0]
	for _, d := range donations {
		s.donations[d.ID] = d.clone()
		s.donationOrder = append(s.donationOrder, d.ID)
	}
	s.volunteers = make(map[types.ID]*Volunteer, len(volunteers))
	s.volunteerOrder = s.volunteerOrder[:0]
	for _, v := range volunteers {
		s.volunteers[v.ID] = v.clone()
		s.volunteerOrder = append(s.volunteerOrder, v.ID)
	}
	s.lastUpdated = now
}

// Select records the UI focus donation. id == nil clears the selection.
func (s *Store) Select(id *types.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == nil {
		s.selected = nil
		return nil
	}
	if _, ok := s.donations[*id]; !ok {
		return ErrDonationNotFound
	}
	sel := *id
	s.selected = &sel
	return nil
}

// Assign links a volunteer to a pending donation. All preconditions are
// checked and both entities mutated inside one critical section; on any
// failure nothing changes.
func (s *Store) Assign(donationID, volunteerID types.ID, now time.Time) (Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.donations[donationID]
	if !ok {
		return Donation{}, ErrDonationNotFound
	}
	v, ok := s.volunteers[volunteerID]
	if !ok {
		return Donation{}, ErrVolunteerNotFound
	}
	if d.Status != StatusPending {
		return Donation{}, ErrDonationNotPending
	}
	if !v.IsAvailable {
		return Donation{}, ErrVolunteerNotAvailable
	}

	eta := now.Add(30 * time.Minute)
	loc := v.Location
	d.Status = StatusAssigned
	d.Volunteer = &VolunteerSnapshot{
		ID:               v.ID,
		Name:             v.Name,
		Phone:            v.Phone,
		EstimatedArrival: &eta,
		CurrentLocation:  &loc,
	}
	v.IsAvailable = false
	v.ActiveDeliveries++
	s.lastUpdated = now

	return *d.clone(), nil
}

// UpdateStatus advances a donation along the forward-only state machine.
// Reaching delivered releases the assigned volunteer in the same critical
// section.
func (s *Store) UpdateStatus(donationID types.ID, to Status, now time.Time) (Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.donations[donationID]
	if !ok {
		return Donation{}, ErrDonationNotFound
	}
	// Assignment is its own operation; UpdateStatus never attaches or
	// detaches a volunteer.
	if to == StatusPending || to == StatusAssigned {
		return Donation{}, ErrInvalidTransition
	}
	if !CanTransition(d.Status, to) {
		return Donation{}, ErrInvalidTransition
	}

	d.Status = to
	if to == StatusDelivered && d.Volunteer != nil {
		if v, ok := s.volunteers[d.Volunteer.ID]; ok {
			if v.ActiveDeliveries > 0 {
				v.ActiveDeliveries--
			}
			if v.ActiveDeliveries == 0 {
				v.IsAvailable = true
			}
		}
	}
	s.lastUpdated = now

	return *d.clone(), nil
}

// UpdateVolunteerLocation moves a volunteer's idle position and, in the
// same critical section, the live position on every in-flight donation
// assigned to them.
func (s *Store) UpdateVolunteerLocation(volunteerID types.ID, p types.Point, now time.Time) (Volunteer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.volunteers[volunteerID]
	if !ok {
		return Volunteer{}, ErrVolunteerNotFound
	}
	v.Location = p
	for _, id := range s.donationOrder {
		d := s.donations[id]
		if d.Volunteer == nil || d.Volunteer.ID != volunteerID {
			continue
		}
		if d.Status == StatusAssigned || d.Status == StatusInTransit {
			loc := p
			d.Volunteer.CurrentLocation = &loc
		}
	}
	s.lastUpdated = now

	return *v.clone(), nil
}

// UpdateDeliveryPosition moves only the live courier position embedded in
// an in-transit donation. The volunteer's own idle location is untouched.
func (s *Store) UpdateDeliveryPosition(donationID types.ID, p types.Point, now time.Time) (Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.donations[donationID]
	if !ok {
		return Donation{}, ErrDonationNotFound
	}
	if d.Status != StatusInTransit || d.Volunteer == nil {
		return Donation{}, ErrDonationNotInTransit
	}
	loc := p
	d.Volunteer.CurrentLocation = &loc
	s.lastUpdated = now

	return *d.clone(), nil
}

// AddDonation inserts a fully formed donation record.
func (s *Store) AddDonation(d *Donation, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.donations[d.ID] = d.clone()
	s.donationOrder = append(s.donationOrder, d.ID)
	s.lastUpdated = now
}

// AddVolunteer registers a volunteer for the session.
func (s *Store) AddVolunteer(v *Volunteer, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.volunteers[v.ID] = v.clone()
	s.volunteerOrder = append(s.volunteerOrder, v.ID)
	s.lastUpdated = now
}

// Touch bumps the last-synchronized marker without writing entity state,
// so a refresh can never clobber local edits made while it was in flight.
func (s *Store) Touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUpdated = now
}
