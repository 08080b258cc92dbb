// README: Shared value types used across modules.
package types

import "math"

// ID identifies an entity (donation, volunteer) across the system.
type ID string

// Point is a geographic coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether both components are real numbers.
func (p Point) Valid() bool {
	return !math.IsNaN(p.Lat) && !math.IsNaN(p.Lng)
}
