// README: Entry point; loads config, wires services, starts HTTP server and the simulated feed.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"annadaan/internal/config"
	httptransport "annadaan/internal/http"
	"annadaan/internal/infra"
	"annadaan/internal/maps"
	"annadaan/internal/modules/location"
	"annadaan/internal/modules/matching"
	"annadaan/internal/modules/tracking"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := tracking.NewStore()
	donations, volunteers := tracking.SeedData(time.Now())
	store.Seed(donations, volunteers, time.Now())

	var mirror tracking.Mirror
	if redisClient := infra.NewRedis(cfg.Redis.Addr); redisClient != nil {
		mirror = tracking.NewRedisMirror(redisClient)
	}

	trackingSvc := tracking.NewService(store, mirror, tracking.Config{
		AssignLatency:  time.Duration(cfg.Tracking.AssignLatencyMS) * time.Millisecond,
		RefreshLatency: time.Duration(cfg.Tracking.RefreshLatencyMS) * time.Millisecond,
	})

	matchingSvc := matching.NewService(trackingSvc, cfg.Simulation, nil)

	// Without an API key the geocoder and route service stay nil:
	// addresses degrade to raw coordinates and ETAs to the speed
	// heuristic. A route-service load failure degrades the same way.
	var geocoder location.Geocoder
	var routeSvc *maps.RouteService
	if cfg.Maps.APIKey != "" {
		geocoder = maps.NewGeocodeService(cfg.Maps.APIKey)
		rs, err := maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			log.Printf("route service unavailable, using heuristic ETAs: %v", err)
		} else {
			routeSvc = rs
		}
	}
	provider := location.NewSimulatedProvider(volunteers[0].Location, 0.001, 5*time.Second, nil)
	locationSvc := location.NewService(provider, geocoder, 10*time.Second)

	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: httptransport.NewRouter(trackingSvc, matchingSvc, locationSvc, routeSvc),
	}

	go matchingSvc.RunScheduler(ctx)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("annadaan-api listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
