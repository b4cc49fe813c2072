package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	DBPath            string
	LogLevel          string
	Timezone          string
	MetadataBaseURL   string
	DealsBaseURL      string
	EnrichWorkerCount int
	EnrichQueueSize   int
	HTTPTimeout       time.Duration
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		DBPath:            envOr("DB_PATH", "file:gameshelf.db"),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		Timezone:          envOr("TIMEZONE", "Local"),
		MetadataBaseURL:   envOr("METADATA_BASE_URL", ""),
		DealsBaseURL:      envOr("DEALS_BASE_URL", ""),
		EnrichWorkerCount: envIntOr("ENRICH_WORKER_COUNT", 2),
		EnrichQueueSize:   envIntOr("ENRICH_QUEUE_SIZE", 32),
		HTTPTimeout:       envDurationOr("HTTP_TIMEOUT", 15*time.Second),
	}
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err))
	}
	for key, raw := range map[string]string{"METADATA_BASE_URL": c.MetadataBaseURL, "DEALS_BASE_URL": c.DealsBaseURL} {
		if raw == "" {
			continue
		}
		if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s must be an absolute URL (got %q)", key, raw))
		}
	}
	if c.EnrichWorkerCount < 1 {
		errs = append(errs, fmt.Errorf("ENRICH_WORKER_COUNT must be at least 1 (got %d)", c.EnrichWorkerCount))
	}
	if c.EnrichQueueSize < 1 {
		errs = append(errs, fmt.Errorf("ENRICH_QUEUE_SIZE must be at least 1 (got %d)", c.EnrichQueueSize))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, fmt.Errorf("HTTP_TIMEOUT must be positive (got %s)", c.HTTPTimeout))
	}
	return errors.Join(errs...)
}

// Location resolves the configured timezone. Empty and "Local" both mean
// the process's local zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
