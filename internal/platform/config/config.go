// Package config loads process-wide settings from the environment (and an optional .env file).
// Adapter-specific settings live next to their adapters (see jira.LoadConfig, alphavantage.LoadConfig).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingConfig is returned when required settings are absent.
var ErrMissingConfig = errors.New("missing required configuration")

type Config struct {
	AppEnv   string
	HTTPAddr string

	DashboardUsername     string
	DashboardPassword     string
	DashboardPasswordHash string

	TrackerRefresh time.Duration
	QuoteRefresh   time.Duration
	HTTPTimeout    time.Duration
	HTTPRetries    int

	RedisHost     string
	RedisPort     string
	RedisPassword string
	SnapshotTTL   time.Duration
}

// LoadDotEnv reads .env into the process environment if the file exists.
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load reads the configuration from environment variables, applying defaults.
func Load() Config {
	return Config{
		AppEnv:   getenv("APP_ENV", "dev"),
		HTTPAddr: getenv("HTTP_ADDR", "0.0.0.0:8080"),

		DashboardUsername:     os.Getenv("DASHBOARD_USERNAME"),
		DashboardPassword:     os.Getenv("DASHBOARD_PASSWORD"),
		DashboardPasswordHash: os.Getenv("DASHBOARD_PASSWORD_HASH"),

		TrackerRefresh: dur("TRACKER_REFRESH", 60*time.Second),
		QuoteRefresh:   dur("QUOTE_REFRESH", 180*time.Second),
		HTTPTimeout:    dur("HTTP_TIMEOUT", 15*time.Second),
		HTTPRetries:    atoi("HTTP_RETRIES", 2),

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getenv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		SnapshotTTL:   dur("SNAPSHOT_TTL", 24*time.Hour),
	}
}

// RedisEnabled reports whether a Redis snapshot store should be used.
func (c Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// RedisAddr returns host:port of the Redis server.
func (c Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// Validate checks the settings owned by this package plus the names in missing,
// which callers collect from adapter configs.
func (c Config) Validate(missing ...string) error {
	if c.DashboardUsername == "" {
		missing = append(missing, "DASHBOARD_USERNAME")
	}
	if c.DashboardPassword == "" && c.DashboardPasswordHash == "" {
		missing = append(missing, "DASHBOARD_PASSWORD (or DASHBOARD_PASSWORD_HASH)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
	}
	if c.TrackerRefresh <= 0 || c.QuoteRefresh <= 0 {
		return errors.New("refresh intervals must be positive")
	}
	return nil
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoi(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i < 0 {
		return def
	}
	return i
}

func dur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
