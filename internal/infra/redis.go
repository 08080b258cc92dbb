// README: Redis client initialization for the live-position GEO mirror.
package infra

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis returns a client for the position mirror. addr == "" means the
// mirror is disabled and callers get nil.
func NewRedis(addr string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 3 * time.Second,
		ReadTimeout: 2 * time.Second,
	})
}
