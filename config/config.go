package config

import (
	"os"
	"strconv"

	"app/forecast"
)

// Config struct holds application configuration
// This is a simple way to make config accessible globally.
// A more advanced approach might use dependency injection.
type Config struct {
	JWTSecret string

	// Forecast defaults, overridable per request via query parameters.
	DefaultHorizon int
	NumSamples     int
	RandomSeed     int64
	MinDemandDays  int
}

// AppConfig holds the application-wide configuration
var AppConfig Config

// Load populates AppConfig from the environment, falling back to the
// forecast package defaults for anything unset.
func Load() {
	AppConfig = Config{
		JWTSecret:      os.Getenv("JWT_SECRET"),
		DefaultHorizon: envInt("FORECAST_HORIZON", forecast.DefaultHorizon),
		NumSamples:     envInt("FORECAST_NUM_SAMPLES", forecast.DefaultNumSamples),
		RandomSeed:     int64(envInt("FORECAST_RANDOM_SEED", int(forecast.DefaultSeed))),
		MinDemandDays:  envInt("FORECAST_MIN_DAYS", forecast.MinDemandDays),
	}
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
