// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ServeMode selects the surface the process exposes.
const (
	ServeModeStdio = "stdio"
	ServeModeHTTP  = "http"
)

// AppConfig holds everything the process needs. Base URLs are
// configurable so tests and local mirrors can stand in for the real
// providers.
type AppConfig struct {
	// ServeMode is "stdio" for the MCP tool surface (default) or "http"
	// for the REST surface.
	ServeMode string `envconfig:"SERVE_MODE" default:"stdio"`

	// Port is the HTTP listen port, used only in http mode.
	Port string `envconfig:"PORT" default:"8080"`

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	// UserAgent identifies this service to upstream providers. The NWS
	// API rejects requests without one.
	UserAgent string `envconfig:"USER_AGENT" default:"weather-marine-mcp/1.0 (github.com/dkhoward/weather-marine-mcp)"`

	GeocodingBaseURL string `envconfig:"GEOCODING_BASE_URL" default:"https://geocoding-api.open-meteo.com"`
	WeatherBaseURL   string `envconfig:"WEATHER_BASE_URL" default:"https://api.weather.gov"`
	MarineBaseURL    string `envconfig:"MARINE_BASE_URL" default:"https://marine-api.open-meteo.com"`
}

// Load reads configuration from the environment, honoring a .env file
// when one is present.
func Load() (*AppConfig, error) {
	// A missing .env file is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}

	if cfg.ServeMode != ServeModeStdio && cfg.ServeMode != ServeModeHTTP {
		return nil, fmt.Errorf("invalid SERVE_MODE %q: must be %q or %q", cfg.ServeMode, ServeModeStdio, ServeModeHTTP)
	}

	return &cfg, nil
}
