// Package location — geo_utils contains pure geographic computation helpers.
package location

import (
	"math"

	"annadaan/internal/types"
)

const earthRadiusKm = 6371.0

// averageSpeedKmh is the assumed courier travel speed in city traffic.
// EstimatedTravelMinutes is a display heuristic, not a routing result.
const averageSpeedKmh = 25.0

// DistanceKm returns the haversine great-circle distance in kilometres
// between two points specified in decimal degrees. NaN inputs propagate.
func DistanceKm(a, b types.Point) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// EstimatedTravelMinutes estimates door-to-door travel time between two
// points at averageSpeedKmh, rounded up to whole minutes.
func EstimatedTravelMinutes(a, b types.Point) int {
	km := DistanceKm(a, b)
	if math.IsNaN(km) {
		return 0
	}
	return int(math.Ceil(km / averageSpeedKmh * 60))
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// SortByDistance performs an insertion sort (fine for small N, and stable)
// on any slice where each element exposes a distance via the accessor.
// Equal distances keep their original relative order.
func SortByDistance[T any](items []T, dist func(T) float64) {
	for i := 1; i < len(items); i++ {
		key := items[i]
		j := i - 1
		for j >= 0 && dist(items[j]) > dist(key) {
			items[j+1] = items[j]
			j--
		}
		items[j+1] = key
	}
}
