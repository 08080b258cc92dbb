// README: Deterministic stand-in provider for sessions without a real device fix.
package location

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"annadaan/internal/types"
)

// defaultBase is central Delhi, the platform's pilot city.
var defaultBase = types.Point{Lat: 28.6139, Lng: 77.2090}

// SimulatedProvider emits positions around a base point with a small
// random jitter. The random source is injected so tests are reproducible.
type SimulatedProvider struct {
	base      types.Point
	jitterDeg float64
	interval  time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulatedProvider(base types.Point, jitterDeg float64, interval time.Duration, rng *rand.Rand) *SimulatedProvider {
	if base == (types.Point{}) {
		base = defaultBase
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &SimulatedProvider{base: base, jitterDeg: jitterDeg, interval: interval, rng: rng}
}

func (p *SimulatedProvider) CurrentPosition(ctx context.Context) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, ErrTimeout
	}
	return p.next(), nil
}

// WatchPosition delivers a position every interval until cancel is called
// or ctx ends. cancel is idempotent and stops all further callbacks.
func (p *SimulatedProvider) WatchPosition(ctx context.Context, onUpdate func(Position), onErr func(error)) (cancel func()) {
	stop := make(chan struct{})
	var once sync.Once

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case <-ticker.C:
				onUpdate(p.next())
			}
		}
	}()

	return func() {
		once.Do(func() { close(stop) })
	}
}

func (p *SimulatedProvider) next() Position {
	p.mu.Lock()
	latJitter := (p.rng.Float64() - 0.5) * p.jitterDeg
	lngJitter := (p.rng.Float64() - 0.5) * p.jitterDeg
	p.mu.Unlock()

	return Position{
		Coord:      types.Point{Lat: p.base.Lat + latJitter, Lng: p.base.Lng + lngJitter},
		AccuracyM:  25,
		RecordedAt: time.Now(),
	}
}
