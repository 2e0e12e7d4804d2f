// Package service composes the geocoding resolver with the weather
// orchestrator and marine aggregator into the five named operations the
// tool and HTTP surfaces expose. Absent results become structured error
// payloads here; nothing below this layer returns an error to callers.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dkhoward/weather-marine-mcp/internal/geocode"
	"github.com/dkhoward/weather-marine-mcp/internal/marine"
	"github.com/dkhoward/weather-marine-mcp/internal/nws"
)

const (
	// MaxForecastDays bounds the marine forecast horizon; out-of-range
	// requests are clamped silently rather than rejected.
	MaxForecastDays     = 7
	defaultForecastDays = 7

	marineSuggestion = "Marine data is only available for ocean and coastal locations; try a coastal location."
)

// ErrorPayload is the structured failure shape returned to clients in
// place of a result.
type ErrorPayload struct {
	Error      bool   `json:"error"`
	Message    string `json:"message"`
	Location   string `json:"location,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Resolver resolves location text to coordinates.
type Resolver interface {
	Resolve(ctx context.Context, locationText string) (*geocode.GeoLocation, bool)
}

// WeatherOrchestrator runs the NWS point-based chains.
type WeatherOrchestrator interface {
	CurrentConditions(ctx context.Context, lat, lon float64) (*nws.CurrentConditionsResult, bool)
	Forecast(ctx context.Context, lat, lon float64) (*nws.ForecastResult, bool)
	RadarInfo(ctx context.Context, lat, lon float64) (*nws.RadarInfoResult, bool)
}

// MarineAggregator fetches marine conditions and forecasts.
type MarineAggregator interface {
	Current(ctx context.Context, lat, lon float64) (*marine.MarineConditionsResult, bool)
	Forecast(ctx context.Context, lat, lon float64, days int) (*marine.MarineForecastResult, bool)
}

// Service is stateless: every operation is a self-contained
// resolve-then-fetch chain with no shared mutable state across calls.
type Service struct {
	resolver Resolver
	weather  WeatherOrchestrator
	marine   MarineAggregator
	logger   *slog.Logger
}

// New creates a Service.
func New(resolver Resolver, weather WeatherOrchestrator, marineAgg MarineAggregator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		resolver: resolver,
		weather:  weather,
		marine:   marineAgg,
		logger:   logger,
	}
}

// CurrentConditions resolves the location and returns the latest nearby
// observation. The result's location field carries the resolver's display
// name, not the provider's relative-location string.
func (s *Service) CurrentConditions(ctx context.Context, location string) (*nws.CurrentConditionsResult, *ErrorPayload) {
	loc, ok := s.resolver.Resolve(ctx, location)
	if !ok {
		return nil, resolutionError(location)
	}

	res, ok := s.weather.CurrentConditions(ctx, loc.Latitude, loc.Longitude)
	if !ok {
		return nil, s.fail(weatherError(loc), "current conditions")
	}
	res.Location = loc.DisplayName()
	return res, nil
}

// Forecast resolves the location and returns the NWS period forecast.
func (s *Service) Forecast(ctx context.Context, location string) (*nws.ForecastResult, *ErrorPayload) {
	loc, ok := s.resolver.Resolve(ctx, location)
	if !ok {
		return nil, resolutionError(location)
	}

	res, ok := s.weather.Forecast(ctx, loc.Latitude, loc.Longitude)
	if !ok {
		return nil, s.fail(weatherError(loc), "forecast")
	}
	res.Location = loc.DisplayName()
	return res, nil
}

// RadarInfo resolves the location and returns radar station details and
// imagery URLs.
func (s *Service) RadarInfo(ctx context.Context, location string) (*nws.RadarInfoResult, *ErrorPayload) {
	loc, ok := s.resolver.Resolve(ctx, location)
	if !ok {
		return nil, resolutionError(location)
	}

	res, ok := s.weather.RadarInfo(ctx, loc.Latitude, loc.Longitude)
	if !ok {
		return nil, s.fail(weatherError(loc), "radar info")
	}
	return res, nil
}

// MarineConditions resolves the location and returns current marine
// conditions.
func (s *Service) MarineConditions(ctx context.Context, location string) (*marine.MarineConditionsResult, *ErrorPayload) {
	loc, ok := s.resolver.Resolve(ctx, location)
	if !ok {
		return nil, resolutionError(location)
	}

	res, ok := s.marine.Current(ctx, loc.Latitude, loc.Longitude)
	if !ok {
		return nil, s.fail(marineError(loc), "marine conditions")
	}
	res.Location = loc.DisplayName()
	return res, nil
}

// MarineForecast resolves the location and returns the marine forecast.
// days is clamped to [1, MaxForecastDays]; zero or negative values use the
// default horizon.
func (s *Service) MarineForecast(ctx context.Context, location string, days int) (*marine.MarineForecastResult, *ErrorPayload) {
	if days <= 0 {
		days = defaultForecastDays
	}
	if days > MaxForecastDays {
		days = MaxForecastDays
	}

	loc, ok := s.resolver.Resolve(ctx, location)
	if !ok {
		return nil, resolutionError(location)
	}

	res, ok := s.marine.Forecast(ctx, loc.Latitude, loc.Longitude, days)
	if !ok {
		return nil, s.fail(marineError(loc), "marine forecast")
	}
	res.Location = loc.DisplayName()
	return res, nil
}

func (s *Service) fail(p *ErrorPayload, operation string) *ErrorPayload {
	s.logger.Warn("operation returned no result", "operation", operation, "location", p.Location)
	return p
}

func resolutionError(location string) *ErrorPayload {
	return &ErrorPayload{
		Error:    true,
		Message:  fmt.Sprintf("could not resolve location %q", location),
		Location: location,
	}
}

func weatherError(loc *geocode.GeoLocation) *ErrorPayload {
	return &ErrorPayload{
		Error:    true,
		Message:  fmt.Sprintf("no weather data available for %s (%.4f, %.4f)", loc.DisplayName(), loc.Latitude, loc.Longitude),
		Location: loc.DisplayName(),
	}
}

func marineError(loc *geocode.GeoLocation) *ErrorPayload {
	return &ErrorPayload{
		Error:      true,
		Message:    fmt.Sprintf("no marine data available for %s (%.4f, %.4f)", loc.DisplayName(), loc.Latitude, loc.Longitude),
		Location:   loc.DisplayName(),
		Suggestion: marineSuggestion,
	}
}
