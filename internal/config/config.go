package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds environment-based settings
type Config struct {
	Environment   string
	ServerAddress string
	LogLevel      string

	LaunchAPIURL     string
	LaunchAPITimeout time.Duration
	SearchLimit      int

	RedisAddress  string
	RedisUsername string
	RedisPassword string
	CacheTTL      time.Duration

	DatabaseURL    string
	MigrationsPath string
	RecentLimit    int

	CORSOrigins []string
}

// Development reports whether APP_ENV is "development".
func (c *Config) Development() bool {
	return c.Environment == "development"
}

// Load reads configuration from environment variables, after loading a
// .env file from the working directory when one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Environment:    valueOr(getenv("APP_ENV"), "production"),
		ServerAddress:  valueOr(getenv("SERVER_ADDRESS"), ":8080"),
		LogLevel:       valueOr(getenv("LOG_LEVEL"), "info"),
		LaunchAPIURL:   valueOr(getenv("LAUNCH_API_URL"), "https://lldev.thespacedevs.com/2.2.0"),
		RedisAddress:   strings.TrimSpace(getenv("REDIS_ADDRESS")),
		RedisUsername:  getenv("REDIS_USERNAME"),
		RedisPassword:  getenv("REDIS_PASSWORD"),
		DatabaseURL:    strings.TrimSpace(getenv("DATABASE_URL")),
		MigrationsPath: valueOr(getenv("MIGRATIONS_PATH"), "./migrations"),
		CORSOrigins:    splitList(valueOr(getenv("CORS_ORIGINS"), "*")),
	}

	var err error
	if cfg.LaunchAPITimeout, err = duration(getenv, "LAUNCH_API_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = duration(getenv, "CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SearchLimit, err = positiveInt(getenv, "SEARCH_LIMIT", 10); err != nil {
		return nil, err
	}
	if cfg.RecentLimit, err = positiveInt(getenv, "RECENT_SEARCHES", 5); err != nil {
		return nil, err
	}

	if !strings.HasPrefix(cfg.LaunchAPIURL, "http://") && !strings.HasPrefix(cfg.LaunchAPIURL, "https://") {
		return nil, fmt.Errorf("LAUNCH_API_URL must be an http(s) url, got %q", cfg.LaunchAPIURL)
	}
	if cfg.DatabaseURL == "" {
		log.Debug().Msg("DATABASE_URL not set, search history disabled")
	}
	return cfg, nil
}

func valueOr(v, fallback string) string {
	if v = strings.TrimSpace(v); v == "" {
		return fallback
	}
	return v
}

func duration(getenv func(string) string, key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}
	return d, nil
}

func positiveInt(getenv func(string) string, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
