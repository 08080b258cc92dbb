// README: Donation and Volunteer aggregates and the delivery status machine.
package tracking

import (
	"time"

	"annadaan/internal/types"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAssigned  Status = "assigned"
	StatusInTransit Status = "in_transit"
	StatusDelivered Status = "delivered"
)

// AllowedTransitions represents the delivery state flow as code.
// pending → assigned happens only through AssignVolunteer; UpdateStatus
// rejects it (and any backward or skipping write).
var AllowedTransitions = map[Status][]Status{
	StatusPending:   {StatusAssigned},
	StatusAssigned:  {StatusInTransit},
	StatusInTransit: {StatusDelivered},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is one of the four lifecycle states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusAssigned, StatusInTransit, StatusDelivered:
		return true
	}
	return false
}

// VolunteerSnapshot is the denormalized copy of a volunteer embedded in a
// donation at assignment time. CurrentLocation is the live delivery
// position and moves independently of the volunteer's idle location.
type VolunteerSnapshot struct {
	ID               types.ID     `json:"id"`
	Name             string       `json:"name"`
	Phone            string       `json:"phone"`
	EstimatedArrival *time.Time   `json:"estimated_arrival,omitempty"`
	CurrentLocation  *types.Point `json:"current_location,omitempty"`
}

type Donation struct {
	ID           types.ID           `json:"id"`
	DonorName    string             `json:"donor_name"`
	FoodQuantity string             `json:"food_quantity"`
	EventType    string             `json:"event_type"`
	Description  string             `json:"description"`
	Location     types.Point        `json:"location"`
	Address      string             `json:"address"`
	ExpiryTime   time.Time          `json:"expiry_time"`
	Status       Status             `json:"status"`
	Volunteer    *VolunteerSnapshot `json:"volunteer,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

type Volunteer struct {
	ID               types.ID    `json:"id"`
	Name             string      `json:"name"`
	Phone            string      `json:"phone"`
	Location         types.Point `json:"location"`
	IsAvailable      bool        `json:"is_available"`
	ActiveDeliveries int         `json:"active_deliveries"`
	Rating           float64     `json:"rating"`
}

// clone helpers keep store reads free of aliasing into owned state.

func (d *Donation) clone() *Donation {
	out := *d
	if d.Volunteer != nil {
		snap := *d.Volunteer
		if d.Volunteer.EstimatedArrival != nil {
			eta := *d.Volunteer.EstimatedArrival
			snap.EstimatedArrival = &eta
		}
		if d.Volunteer.CurrentLocation != nil {
			loc := *d.Volunteer.CurrentLocation
			snap.CurrentLocation = &loc
		}
		out.Volunteer = &snap
	}
	return &out
}

func (v *Volunteer) clone() *Volunteer {
	out := *v
	return &out
}
