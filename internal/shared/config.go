package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"salon_site/internal/adapters/places"
	"salon_site/internal/adapters/sheets"
)

type Config struct {
	AppEnv          string
	HTTPAddr        string
	MetricsAddr     string
	PlacesAPIKey    string
	PlaceID         string
	PlacesBase      string
	PlacesLanguage  string
	PricesCSVURL    string
	PricesMaxAge    int
	UpstreamTimeout time.Duration
	UpstreamRPS     int
	RequestTimeout  time.Duration
}

// Load reads .env (if present) and then the process environment.
// Missing Places credentials are only warned about here; the reviews
// endpoint rejects each request until they are set.
func Load() Config {
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		MetricsAddr:     env("METRICS_ADDR", ""),
		PlacesAPIKey:    env("GOOGLE_MAPS_API_KEY", ""),
		PlaceID:         env("GOOGLE_PLACE_ID", ""),
		PlacesBase:      env("GOOGLE_PLACES_BASE_URL", places.DefaultBaseURL),
		PlacesLanguage:  env("GOOGLE_PLACES_LANGUAGE", "tr"),
		PricesCSVURL:    env("PRICES_CSV_URL", sheets.DefaultCSVURL),
		PricesMaxAge:    atoi("PRICES_CACHE_SECONDS", 3600),
		UpstreamTimeout: time.Duration(atoi("UPSTREAM_TIMEOUT_SECONDS", 5)) * time.Second,
		UpstreamRPS:     atoi("UPSTREAM_RPS", 5),
		RequestTimeout:  time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
	}
	if c.PlacesAPIKey == "" {
		log.Warn().Msg("GOOGLE_MAPS_API_KEY is empty")
	}
	if c.PlaceID == "" {
		log.Warn().Msg("GOOGLE_PLACE_ID is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
