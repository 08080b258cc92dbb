// README: Session seed dataset (Delhi pilot) used when no feed is configured.
package tracking

import (
	"time"

	"annadaan/internal/types"
)

// SeedData returns the mock Delhi session: four donations across all four
// lifecycle states and five volunteers. The data is internally consistent
// with the store invariants (a volunteer on an in-flight donation is
// unavailable; a delivered donation keeps its snapshot but its volunteer
// is released).
func SeedData(now time.Time) ([]*Donation, []*Volunteer) {
	eta1 := now.Add(30 * time.Minute)
	eta2 := now.Add(45 * time.Minute)

	donations := []*Donation{
		{
			ID:           "1",
			DonorName:    "Rajesh Kumar",
			FoodQuantity: "50-100 people",
			EventType:    "wedding",
			Description:  "Fresh vegetarian meals from wedding ceremony",
			Location:     types.Point{Lat: 28.6129, Lng: 77.2295},
			Address:      "Connaught Place, New Delhi",
			ExpiryTime:   now.Add(4 * time.Hour),
			Status:       StatusAssigned,
			Volunteer: &VolunteerSnapshot{
				ID:               "v1",
				Name:             "Priya Sharma",
				Phone:            "+91 98765 43210",
				EstimatedArrival: &eta1,
				CurrentLocation:  &types.Point{Lat: 28.62, Lng: 77.23},
			},
			CreatedAt: now.Add(-2 * time.Hour),
		},
		{
			ID:           "2",
			DonorName:    "Mumbai Caterers Ltd",
			FoodQuantity: "100+ people",
			EventType:    "corporate",
			Description:  "Mixed cuisine corporate lunch leftovers",
			Location:     types.Point{Lat: 28.5355, Lng: 77.391},
			Address:      "Sector 18, Noida",
			ExpiryTime:   now.Add(6 * time.Hour),
			Status:       StatusInTransit,
			Volunteer: &VolunteerSnapshot{
				ID:               "v2",
				Name:             "Amit Singh",
				Phone:            "+91 87654 32109",
				EstimatedArrival: &eta2,
				CurrentLocation:  &types.Point{Lat: 28.54, Lng: 77.385},
			},
			CreatedAt: now.Add(-1 * time.Hour),
		},
		{
			ID:           "3",
			DonorName:    "Golden Temple Restaurant",
			FoodQuantity: "25-50 people",
			EventType:    "pooja",
			Description:  "Traditional vegetarian feast from religious ceremony",
			Location:     types.Point{Lat: 28.6692, Lng: 77.4538},
			Address:      "Laxmi Nagar, Delhi",
			ExpiryTime:   now.Add(2 * time.Hour),
			Status:       StatusPending,
			CreatedAt:    now.Add(-30 * time.Minute),
		},
		{
			ID:           "4",
			DonorName:    "Delhi University",
			FoodQuantity: "100+ people",
			EventType:    "other",
			Description:  "Student event catering surplus",
			Location:     types.Point{Lat: 28.6863, Lng: 77.2217},
			Address:      "North Campus, Delhi University",
			ExpiryTime:   now.Add(8 * time.Hour),
			Status:       StatusDelivered,
			Volunteer: &VolunteerSnapshot{
				ID:    "v3",
				Name:  "Ravi Gupta",
				Phone: "+91 76543 21098",
			},
			CreatedAt: now.Add(-3 * time.Hour),
		},
	}

	volunteers := []*Volunteer{
		{ID: "v1", Name: "Priya Sharma", Phone: "+91 98765 43210", Location: types.Point{Lat: 28.62, Lng: 77.23}, IsAvailable: false, ActiveDeliveries: 1, Rating: 4.8},
		{ID: "v2", Name: "Amit Singh", Phone: "+91 87654 32109", Location: types.Point{Lat: 28.54, Lng: 77.385}, IsAvailable: false, ActiveDeliveries: 1, Rating: 4.6},
		{ID: "v3", Name: "Ravi Gupta", Phone: "+91 76543 21098", Location: types.Point{Lat: 28.6863, Lng: 77.2217}, IsAvailable: true, ActiveDeliveries: 0, Rating: 4.9},
		{ID: "v4", Name: "Sunita Devi", Phone: "+91 65432 10987", Location: types.Point{Lat: 28.6139, Lng: 77.209}, IsAvailable: true, ActiveDeliveries: 0, Rating: 4.7},
		{ID: "v5", Name: "Vikash Kumar", Phone: "+91 54321 09876", Location: types.Point{Lat: 28.5244, Lng: 77.1855}, IsAvailable: true, ActiveDeliveries: 0, Rating: 4.5},
	}

	return donations, volunteers
}
