package config

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultServerAddr         = ":8080"
	defaultRateLimitPerMinute = 10
	minSessionSecretLen       = 32
)

// Config holds all configuration for the application.
type Config struct {
	APIBaseURL         string
	ServerAddr         string
	SessionSecret      string
	DisplayLocation    *time.Location
	ShowFetchErrors    bool
	RateLimitPerMinute int
}

// New loads configuration and exits the process if it is invalid.
func New() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	return cfg
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		APIBaseURL:         strings.TrimRight(strings.TrimSpace(getenv("API_BASE_URL")), "/"),
		ServerAddr:         getenv("SERVER_ADDR"),
		SessionSecret:      getenv("SESSION_SECRET"),
		RateLimitPerMinute: defaultRateLimitPerMinute,
	}

	var errs []error
	if cfg.APIBaseURL == "" {
		errs = append(errs, errors.New("API_BASE_URL is required"))
	}
	if len(cfg.SessionSecret) < minSessionSecretLen {
		errs = append(errs, fmt.Errorf("SESSION_SECRET must be at least %d bytes", minSessionSecretLen))
	}
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = defaultServerAddr
	}

	loc, err := loadLocation(getenv("DISPLAY_TIMEZONE"))
	if err != nil {
		errs = append(errs, err)
	}
	cfg.DisplayLocation = loc

	if v := getenv("SHOW_FETCH_ERRORS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("SHOW_FETCH_ERRORS: %w", err))
		}
		cfg.ShowFetchErrors = b
	}

	if v := getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("RATE_LIMIT_PER_MINUTE: %w", err))
		case n <= 0:
			errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE must be positive"))
		default:
			cfg.RateLimitPerMinute = n
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("DISPLAY_TIMEZONE: %w", err)
	}
	return loc, nil
}
