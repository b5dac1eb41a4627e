// Package config loads runtime configuration from the environment. The config
// value is constructed once at startup and passed into each component's
// constructor; nothing reads the environment after Load returns.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime configuration for the pipeline and its API server.
type Config struct {
	DatabaseURL string

	// Adzuna credentials. Empty credentials are not an error: the API adapter
	// degrades to a no-op.
	AdzunaAppID  string
	AdzunaAppKey string

	Port                int
	ScrapeIntervalHours int // 0 disables the scheduler
	UseBrowser          bool
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	port := 8080
	if s := os.Getenv("PORT"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("PORT must be a positive integer, got %q", s)
		}
		port = v
	}

	interval := 0
	if s := os.Getenv("SCRAPE_INTERVAL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("SCRAPE_INTERVAL_HOURS must be a non-negative integer, got %q", s)
		}
		interval = v
	}

	return &Config{
		DatabaseURL:         dbURL,
		AdzunaAppID:         os.Getenv("ADZUNA_APP_ID"),
		AdzunaAppKey:        os.Getenv("ADZUNA_APP_KEY"),
		Port:                port,
		ScrapeIntervalHours: interval,
		UseBrowser:          os.Getenv("USE_BROWSER") == "true",
	}, nil
}
