package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/owm-client/internal/weather"
)

var validate = validator.New()

type AppConfig struct {
	OpenWeatherAPIKey string
	BaseURL           string `validate:"required,url"`

	// HTTPTimeout bounds each outbound request (0 = transport default, no timeout).
	HTTPTimeout time.Duration `validate:"gte=0"`

	// CityDirectoryFile replaces the built-in city table when set.
	CityDirectoryFile string

	// CircuitBreaker wraps the outbound transport in a circuit breaker.
	CircuitBreaker bool

	// PollInterval controls how often the poller fetches each location.
	PollInterval time.Duration `validate:"gte=0"`

	// Locations to poll.
	PollLocations []weather.Query

	// In-memory store retention.
	StoreMaxHistory int           `validate:"gte=0"` // max number of records per location (0 = unlimited)
	StoreMaxAge     time.Duration `validate:"gte=0"` // max age of records (0 = unlimited)

	Port string `validate:"required,numeric"`
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	if cfg.OpenWeatherAPIKey == "" {
		log.Printf("INFO: OPENWEATHER_API_KEY is empty; the provider will reject requests")
	}
	cfg.BaseURL = getenvDefault("OPENWEATHER_BASE_URL", weather.DefaultBaseURL)
	cfg.CityDirectoryFile = os.Getenv("CITY_DIRECTORY_FILE")
	cfg.CircuitBreaker = getenvBool("CIRCUIT_BREAKER", false)

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "0s"); err != nil {
		return nil, err
	}

	// Poller interval: default 15 minutes.
	if cfg.PollInterval, err = getenvDuration("POLL_INTERVAL", "15m"); err != nil {
		return nil, err
	}

	// Store retention.
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 96) // roughly 24h at 15-minute intervals
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "24h"); err != nil {
		return nil, err
	}
	cfg.Port = getenvDefault("PORT", "8080")

	cfg.PollLocations = parseLocations(os.Getenv("POLL_CITIES"))

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Directory returns the city directory selected by the configuration.
func (c *AppConfig) Directory() (weather.Directory, error) {
	if c.CityDirectoryFile == "" {
		return weather.DefaultDirectory(), nil
	}
	return weather.LoadDirectory(c.CityDirectoryFile)
}

// parseLocations splits a comma separated list. Numeric entries are location
// ids, anything else is a city name.
func parseLocations(raw string) []weather.Query {
	var locs []weather.Query
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, err := strconv.ParseUint(part, 10, 64); err == nil {
			locs = append(locs, weather.ByID{ID: part})
			continue
		}
		locs = append(locs, weather.ByCityName{Name: part})
	}
	return locs
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
