// README: Config loader with env defaults for HTTP, Redis, Maps, and simulation settings.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type SimulationConfig struct {
	TickSeconds       int
	AssignProbability float64
	JitterDegrees     float64
	Seed              int64
}

type TrackingConfig struct {
	AssignLatencyMS  int
	RefreshLatencyMS int
}

type Config struct {
	HTTP struct {
		Addr string
	}
	Redis struct {
		// Addr empty disables the live-position mirror.
		Addr string
	}
	Maps struct {
		// APIKey empty disables geocoding; callers fall back to raw coordinates.
		APIKey string
	}
	Simulation SimulationConfig
	Tracking   TrackingConfig
}

func Load() (Config, error) {
	// Optional .env for local development; real env vars take precedence.
	_ = godotenv.Load()

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("ANNADAAN_HTTP_ADDR", ":8080")
	cfg.Redis.Addr = envOrDefault("ANNADAAN_REDIS_ADDR", "")
	cfg.Maps.APIKey = envOrDefault("GOOGLE_MAPS_API_KEY", "")
	cfg.Simulation.TickSeconds = envOrDefaultInt("ANNADAAN_SIM_TICK", 5)
	cfg.Simulation.AssignProbability = envOrDefaultFloat("ANNADAAN_SIM_ASSIGN_PROB", 0.1)
	cfg.Simulation.JitterDegrees = envOrDefaultFloat("ANNADAAN_SIM_JITTER_DEG", 0.001)
	cfg.Simulation.Seed = int64(envOrDefaultInt("ANNADAAN_SIM_SEED", 0))
	cfg.Tracking.AssignLatencyMS = envOrDefaultInt("ANNADAAN_ASSIGN_LATENCY_MS", 1000)
	cfg.Tracking.RefreshLatencyMS = envOrDefaultInt("ANNADAAN_REFRESH_LATENCY_MS", 1000)
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}
