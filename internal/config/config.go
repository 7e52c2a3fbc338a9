package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

const (
	// DefaultQuakeFeedURL is the USGS summary feed of all earthquakes in the past seven days.
	DefaultQuakeFeedURL = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_week.geojson"
	// DefaultPlateFeedURL is the PB2002 plate model (Bird, 2003) as GeoJSON polygons.
	DefaultPlateFeedURL = "https://raw.githubusercontent.com/fraxen/tectonicplates/master/GeoJSON/PB2002_plates.json"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	QuakeFeedURL    string
	PlateFeedURL    string
	FetchTimeout    time.Duration
	DisplayTimezone *time.Location
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("FETCH_TIMEOUT", "15s"))
	if err != nil || fetchTimeout <= 0 {
		return nil, errors.New("invalid FETCH_TIMEOUT")
	}

	tzName := sharedcfg.EnvOrDefault("DISPLAY_TIMEZONE", "UTC")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_TIMEZONE %q: %w", tzName, err)
	}

	cfg := &Config{
		QuakeFeedURL:    sharedcfg.EnvOrDefault("QUAKE_FEED_URL", DefaultQuakeFeedURL),
		PlateFeedURL:    sharedcfg.EnvOrDefault("PLATE_FEED_URL", DefaultPlateFeedURL),
		FetchTimeout:    fetchTimeout,
		DisplayTimezone: loc,
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	if err := validateFeedURL("QUAKE_FEED_URL", cfg.QuakeFeedURL); err != nil {
		return nil, err
	}
	if err := validateFeedURL("PLATE_FEED_URL", cfg.PlateFeedURL); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateFeedURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid %s: scheme must be http or https", name)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid %s: missing host", name)
	}
	return nil
}
