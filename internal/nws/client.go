// Package nws orchestrates the National Weather Service point-based lookup
// chains: point metadata, nearest observation station, latest observation,
// forecast periods, and radar station detail.
//
// Every public operation runs its chain fresh per call; point metadata is
// never cached across operations. Chains are strictly sequential because
// each stage's request comes from the previous stage's response, and they
// stop at the first absent stage.
package nws

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dkhoward/weather-marine-mcp/internal/units"
)

const (
	radarLoopURLTemplate   = "https://radar.weather.gov/ridge/standard/%s_loop.gif"
	radarStaticURLTemplate = "https://radar.weather.gov/ridge/standard/%s_0.gif"
)

// Fetcher is the HTTP-fetch capability the orchestrator depends on.
type Fetcher interface {
	GetJSON(ctx context.Context, rawURL string, out interface{}) error
}

// Orchestrator runs the NWS dependent-fetch chains. Failures at any stage
// are absorbed and logged; callers only see result-or-absent.
type Orchestrator struct {
	fetch   Fetcher
	baseURL string
	logger  *slog.Logger
}

// NewOrchestrator creates an Orchestrator against the given API base URL,
// e.g. "https://api.weather.gov".
func NewOrchestrator(fetch Fetcher, baseURL string, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		fetch:   fetch,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// CurrentConditions runs the point → station list → latest observation
// chain and normalizes the observation.
func (o *Orchestrator) CurrentConditions(ctx context.Context, lat, lon float64) (*CurrentConditionsResult, bool) {
	point, err := o.fetchPoint(ctx, lat, lon)
	if err != nil {
		o.logger.Warn("nws: point lookup failed", "op", "current_conditions", "lat", lat, "lon", lon, "error", err)
		return nil, false
	}
	if point.ObservationStations == "" {
		o.logger.Warn("nws: point metadata missing stations URL", "op", "current_conditions", "lat", lat, "lon", lon)
		return nil, false
	}

	var stations stationsResponse
	if err := o.fetch.GetJSON(ctx, point.ObservationStations, &stations); err != nil {
		o.logger.Warn("nws: station list fetch failed", "op", "current_conditions", "lat", lat, "lon", lon, "error", err)
		return nil, false
	}
	if len(stations.Features) == 0 {
		o.logger.Warn("nws: no observation stations for point", "op", "current_conditions", "lat", lat, "lon", lon)
		return nil, false
	}
	stationID := stations.Features[0].Properties.StationIdentifier
	if stationID == "" {
		o.logger.Warn("nws: first station has no identifier", "op", "current_conditions", "lat", lat, "lon", lon)
		return nil, false
	}

	obsURL := fmt.Sprintf("%s/stations/%s/observations/latest", o.baseURL, stationID)
	var obs observationResponse
	if err := o.fetch.GetJSON(ctx, obsURL, &obs); err != nil {
		o.logger.Warn("nws: latest observation fetch failed", "op", "current_conditions", "station", stationID, "error", err)
		return nil, false
	}

	result := normalizeObservation(obs.Properties)
	result.Station = stationID
	result.Location = relativeLocation(point)
	return result, true
}

// Forecast runs the point → forecast chain and maps each period 1:1 in
// provider order.
func (o *Orchestrator) Forecast(ctx context.Context, lat, lon float64) (*ForecastResult, bool) {
	point, err := o.fetchPoint(ctx, lat, lon)
	if err != nil {
		o.logger.Warn("nws: point lookup failed", "op", "forecast", "lat", lat, "lon", lon, "error", err)
		return nil, false
	}
	if point.Forecast == "" {
		o.logger.Warn("nws: point metadata missing forecast URL", "op", "forecast", "lat", lat, "lon", lon)
		return nil, false
	}

	var forecast forecastResponse
	if err := o.fetch.GetJSON(ctx, point.Forecast, &forecast); err != nil {
		o.logger.Warn("nws: forecast fetch failed", "op", "forecast", "lat", lat, "lon", lon, "error", err)
		return nil, false
	}

	result := &ForecastResult{
		Location: relativeLocation(point),
		Periods:  make([]ForecastPeriod, 0, len(forecast.Properties.Periods)),
	}
	for _, p := range forecast.Properties.Periods {
		result.Periods = append(result.Periods, normalizePeriod(p))
	}
	return result, true
}

// RadarInfo runs the point → radar station chain. The station-detail fetch
// is best effort: when it fails the operation still succeeds with the
// station identifier standing in for the display name and "Unknown" for
// status and mode.
func (o *Orchestrator) RadarInfo(ctx context.Context, lat, lon float64) (*RadarInfoResult, bool) {
	point, err := o.fetchPoint(ctx, lat, lon)
	if err != nil {
		o.logger.Warn("nws: point lookup failed", "op", "radar_info", "lat", lat, "lon", lon, "error", err)
		return nil, false
	}
	if point.RadarStation == "" {
		o.logger.Warn("nws: point metadata missing radar station", "op", "radar_info", "lat", lat, "lon", lon)
		return nil, false
	}
	stationID := point.RadarStation

	result := &RadarInfoResult{
		Station:        stationID,
		Name:           stationID,
		Status:         "Unknown",
		Mode:           "Unknown",
		LoopImageURL:   fmt.Sprintf(radarLoopURLTemplate, stationID),
		StaticImageURL: fmt.Sprintf(radarStaticURLTemplate, stationID),
	}

	detailURL := fmt.Sprintf("%s/radar/stations/%s", o.baseURL, stationID)
	var detail radarStationResponse
	if err := o.fetch.GetJSON(ctx, detailURL, &detail); err != nil {
		// Degraded but successful: the image URLs need only the identifier.
		o.logger.Debug("nws: radar station detail unavailable", "station", stationID, "error", err)
		return result, true
	}

	if detail.Properties.Name != "" {
		result.Name = detail.Properties.Name
	}
	if detail.Properties.RDA.Properties.OperabilityStatus != "" {
		result.Status = detail.Properties.RDA.Properties.OperabilityStatus
	}
	if detail.Properties.RDA.Properties.Mode != "" {
		result.Mode = detail.Properties.RDA.Properties.Mode
	}
	// Geometry coordinates are (longitude, latitude); swap into the output.
	if len(detail.Geometry.Coordinates) >= 2 {
		result.Longitude = units.Float(detail.Geometry.Coordinates[0])
		result.Latitude = units.Float(detail.Geometry.Coordinates[1])
	}
	return result, true
}

// fetchPoint retrieves grid metadata for a coordinate pair. This is the
// first stage of every chain.
func (o *Orchestrator) fetchPoint(ctx context.Context, lat, lon float64) (pointProperties, error) {
	pointURL := fmt.Sprintf("%s/points/%.4f,%.4f", o.baseURL, lat, lon)

	var resp pointResponse
	if err := o.fetch.GetJSON(ctx, pointURL, &resp); err != nil {
		return pointProperties{}, fmt.Errorf("fetching point metadata: %w", err)
	}
	return resp.Properties, nil
}

// relativeLocation renders the point's human-readable locality.
func relativeLocation(point pointProperties) string {
	city := point.RelativeLocation.Properties.City
	state := point.RelativeLocation.Properties.State
	switch {
	case city != "" && state != "":
		return fmt.Sprintf("%s, %s", city, state)
	case city != "":
		return city
	default:
		return state
	}
}
