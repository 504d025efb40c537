// README: Config loader with env defaults for HTTP, DB, Redis, matching, routing and AI settings.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type MatchingConfig struct {
	// ReservationTTL bounds how long a driver stays held by an unfinished booking.
	ReservationTTL time.Duration
}

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		// DSN empty means in-memory stores.
		DSN string
	}
	Redis struct {
		// Addr empty means in-memory reservations.
		Addr string
	}
	Matching MatchingConfig
	Route    struct {
		CacheTTL time.Duration
	}
	Log struct {
		Level string
	}
	AI struct {
		GeminiKey string
	}
	Maps struct {
		APIKey string
	}
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("CAB_HTTP_ADDR", ":8080")
	cfg.DB.DSN = os.Getenv("CAB_DB_DSN")
	cfg.Redis.Addr = os.Getenv("CAB_REDIS_ADDR")
	cfg.Matching.ReservationTTL = time.Duration(envOrDefaultInt("CAB_RESERVATION_TTL_MIN", 240)) * time.Minute
	cfg.Route.CacheTTL = time.Duration(envOrDefaultInt("CAB_ROUTE_CACHE_TTL_MIN", 60)) * time.Minute
	cfg.Log.Level = strings.ToUpper(envOrDefault("CAB_LOG_LEVEL", "INFO"))
	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.Maps.APIKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
