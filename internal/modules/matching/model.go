// README: Ranked volunteer candidates for donation pickup.
package matching

import (
	"annadaan/internal/modules/location"
	"annadaan/internal/modules/tracking"
)

// RankedVolunteer annotates an available volunteer with its distance to a
// donation's pickup point.
type RankedVolunteer struct {
	Volunteer  tracking.Volunteer `json:"volunteer"`
	DistanceKm float64            `json:"distance_km"`
	EtaMinutes int                `json:"eta_minutes"`
}

// Rank filters the volunteer set down to available candidates and orders
// them by ascending distance to the donation's pickup point. The sort is
// stable: volunteers at equal distance keep their input order. Pure; no
// state is touched.
func Rank(d tracking.Donation, volunteers []tracking.Volunteer) []RankedVolunteer {
	ranked := make([]RankedVolunteer, 0, len(volunteers))
	for _, v := range volunteers {
		if !v.IsAvailable {
			continue
		}
		ranked = append(ranked, RankedVolunteer{
			Volunteer:  v,
			DistanceKm: location.DistanceKm(d.Location, v.Location),
			EtaMinutes: location.EstimatedTravelMinutes(d.Location, v.Location),
		})
	}
	location.SortByDistance(ranked, func(r RankedVolunteer) float64 { return r.DistanceKm })
	return ranked
}
