// README: Redis GEO mirror of live volunteer positions.
package tracking

import (
	"context"

	"github.com/redis/go-redis/v9"

	"annadaan/internal/types"
)

const volunteerGeoKey = "tracking:volunteers"

// RedisMirror keeps an ephemeral copy of volunteer positions in a Redis
// GEO set so other consumers can run proximity queries. It is not a
// system of record; the in-memory store stays authoritative.
type RedisMirror struct {
	redis *redis.Client
}

func NewRedisMirror(client *redis.Client) *RedisMirror {
	return &RedisMirror{redis: client}
}

func (m *RedisMirror) Publish(ctx context.Context, volunteerID types.ID, p types.Point) error {
	return m.redis.GeoAdd(ctx, volunteerGeoKey, &redis.GeoLocation{
		Name:      string(volunteerID),
		Longitude: p.Lng,
		Latitude:  p.Lat,
	}).Err()
}

func (m *RedisMirror) Ping(ctx context.Context) error {
	return m.redis.Ping(ctx).Err()
}

// NearbyVolunteers returns volunteer IDs within radiusKm of p, nearest
// first, straight from the mirror.
func (m *RedisMirror) NearbyVolunteers(ctx context.Context, p types.Point, radiusKm float64) ([]types.ID, error) {
	results, err := m.redis.GeoSearch(ctx, volunteerGeoKey, &redis.GeoSearchQuery{
		Longitude:  p.Lng,
		Latitude:   p.Lat,
		Radius:     radiusKm,
		RadiusUnit: "km",
		Sort:       "ASC",
	}).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]types.ID, len(results))
	for i, r := range results {
		ids[i] = types.ID(r)
	}
	return ids, nil
}
