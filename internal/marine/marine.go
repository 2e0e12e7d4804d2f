// Package marine aggregates ocean conditions from the Open-Meteo marine
// API. Current conditions come from one bulk variable request; forecasts
// request hourly and daily column-oriented time series that are transposed
// into row-oriented entries.
package marine

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/dkhoward/weather-marine-mcp/internal/units"
)

// currentVariables is the fixed bulk request for current conditions:
// wave, wind-wave, three swell tiers, sea level, sea-surface temperature,
// and ocean current.
var currentVariables = []string{
	"wave_height",
	"wave_direction",
	"wave_period",
	"wind_wave_height",
	"wind_wave_direction",
	"wind_wave_period",
	"wind_wave_peak_period",
	"swell_wave_height",
	"swell_wave_direction",
	"swell_wave_period",
	"swell_wave_peak_period",
	"secondary_swell_wave_height",
	"secondary_swell_wave_direction",
	"secondary_swell_wave_period",
	"tertiary_swell_wave_height",
	"tertiary_swell_wave_direction",
	"tertiary_swell_wave_period",
	"sea_level_height_msl",
	"invert_barometer_height",
	"sea_surface_temperature",
	"ocean_current_velocity",
	"ocean_current_direction",
}

var hourlyVariables = []string{
	"wave_height",
	"wave_direction",
	"wave_period",
	"wind_wave_height",
	"wind_wave_direction",
	"wind_wave_period",
	"swell_wave_height",
	"swell_wave_direction",
	"swell_wave_period",
	"sea_surface_temperature",
	"ocean_current_velocity",
	"ocean_current_direction",
}

var dailyVariables = []string{
	"wave_height_max",
	"wave_direction_dominant",
	"wave_period_max",
	"wind_wave_height_max",
	"wind_wave_direction_dominant",
	"wind_wave_period_max",
	"swell_wave_height_max",
	"swell_wave_direction_dominant",
	"swell_wave_period_max",
}

// Fetcher is the HTTP-fetch capability the aggregator depends on.
type Fetcher interface {
	GetJSON(ctx context.Context, rawURL string, out interface{}) error
}

// Aggregator issues bulk variable requests against the marine API and
// reshapes the responses. Failures are absorbed and logged; callers only
// see result-or-absent.
type Aggregator struct {
	fetch   Fetcher
	baseURL string
	logger  *slog.Logger
}

// NewAggregator creates an Aggregator against the given marine API base
// URL, e.g. "https://marine-api.open-meteo.com".
func NewAggregator(fetch Fetcher, baseURL string, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		fetch:   fetch,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

type currentBlock struct {
	Time                        string   `json:"time"`
	WaveHeight                  *float64 `json:"wave_height"`
	WaveDirection               *float64 `json:"wave_direction"`
	WavePeriod                  *float64 `json:"wave_period"`
	WindWaveHeight              *float64 `json:"wind_wave_height"`
	WindWaveDirection           *float64 `json:"wind_wave_direction"`
	WindWavePeriod              *float64 `json:"wind_wave_period"`
	WindWavePeakPeriod          *float64 `json:"wind_wave_peak_period"`
	SwellWaveHeight             *float64 `json:"swell_wave_height"`
	SwellWaveDirection          *float64 `json:"swell_wave_direction"`
	SwellWavePeriod             *float64 `json:"swell_wave_period"`
	SwellWavePeakPeriod         *float64 `json:"swell_wave_peak_period"`
	SecondarySwellWaveHeight    *float64 `json:"secondary_swell_wave_height"`
	SecondarySwellWaveDirection *float64 `json:"secondary_swell_wave_direction"`
	SecondarySwellWavePeriod    *float64 `json:"secondary_swell_wave_period"`
	TertiarySwellWaveHeight     *float64 `json:"tertiary_swell_wave_height"`
	TertiarySwellWaveDirection  *float64 `json:"tertiary_swell_wave_direction"`
	TertiarySwellWavePeriod     *float64 `json:"tertiary_swell_wave_period"`
	SeaLevelHeightMsl           *float64 `json:"sea_level_height_msl"`
	InvertBarometerHeight       *float64 `json:"invert_barometer_height"`
	SeaSurfaceTemperature       *float64 `json:"sea_surface_temperature"`
	OceanCurrentVelocity        *float64 `json:"ocean_current_velocity"`
	OceanCurrentDirection       *float64 `json:"ocean_current_direction"`
}

type hourlyBlock struct {
	Time                  []string   `json:"time"`
	WaveHeight            []*float64 `json:"wave_height"`
	WaveDirection         []*float64 `json:"wave_direction"`
	WavePeriod            []*float64 `json:"wave_period"`
	WindWaveHeight        []*float64 `json:"wind_wave_height"`
	WindWaveDirection     []*float64 `json:"wind_wave_direction"`
	WindWavePeriod        []*float64 `json:"wind_wave_period"`
	SwellWaveHeight       []*float64 `json:"swell_wave_height"`
	SwellWaveDirection    []*float64 `json:"swell_wave_direction"`
	SwellWavePeriod       []*float64 `json:"swell_wave_period"`
	SeaSurfaceTemperature []*float64 `json:"sea_surface_temperature"`
	OceanCurrentVelocity  []*float64 `json:"ocean_current_velocity"`
	OceanCurrentDirection []*float64 `json:"ocean_current_direction"`
}

type dailyBlock struct {
	Time                       []string   `json:"time"`
	WaveHeightMax              []*float64 `json:"wave_height_max"`
	WaveDirectionDominant      []*float64 `json:"wave_direction_dominant"`
	WavePeriodMax              []*float64 `json:"wave_period_max"`
	WindWaveHeightMax          []*float64 `json:"wind_wave_height_max"`
	WindWaveDirectionDominant  []*float64 `json:"wind_wave_direction_dominant"`
	WindWavePeriodMax          []*float64 `json:"wind_wave_period_max"`
	SwellWaveHeightMax         []*float64 `json:"swell_wave_height_max"`
	SwellWaveDirectionDominant []*float64 `json:"swell_wave_direction_dominant"`
	SwellWavePeriodMax         []*float64 `json:"swell_wave_period_max"`
}

type marineResponse struct {
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
	Timezone  string        `json:"timezone"`
	Current   *currentBlock `json:"current"`
	Hourly    *hourlyBlock  `json:"hourly"`
	Daily     *dailyBlock   `json:"daily"`
}

// MarineConditionsResult is the normalized current marine conditions.
// Heights carry meters and feet, temperature Celsius and Fahrenheit, and
// current velocity km/h and knots, each pair derived from one source value.
type MarineConditionsResult struct {
	Location string `json:"location"`
	Time     string `json:"time"`

	WaveHeightM   *float64 `json:"waveHeightM"`
	WaveHeightFt  *float64 `json:"waveHeightFt"`
	WaveDirection *float64 `json:"waveDirection"`
	WavePeriodS   *float64 `json:"wavePeriodS"`

	WindWaveHeightM     *float64 `json:"windWaveHeightM"`
	WindWaveHeightFt    *float64 `json:"windWaveHeightFt"`
	WindWaveDirection   *float64 `json:"windWaveDirection"`
	WindWavePeriodS     *float64 `json:"windWavePeriodS"`
	WindWavePeakPeriodS *float64 `json:"windWavePeakPeriodS"`

	SwellHeightM     *float64 `json:"swellHeightM"`
	SwellHeightFt    *float64 `json:"swellHeightFt"`
	SwellDirection   *float64 `json:"swellDirection"`
	SwellPeriodS     *float64 `json:"swellPeriodS"`
	SwellPeakPeriodS *float64 `json:"swellPeakPeriodS"`

	SecondarySwellHeightM   *float64 `json:"secondarySwellHeightM"`
	SecondarySwellHeightFt  *float64 `json:"secondarySwellHeightFt"`
	SecondarySwellDirection *float64 `json:"secondarySwellDirection"`
	SecondarySwellPeriodS   *float64 `json:"secondarySwellPeriodS"`

	TertiarySwellHeightM   *float64 `json:"tertiarySwellHeightM"`
	TertiarySwellHeightFt  *float64 `json:"tertiarySwellHeightFt"`
	TertiarySwellDirection *float64 `json:"tertiarySwellDirection"`
	TertiarySwellPeriodS   *float64 `json:"tertiarySwellPeriodS"`

	SeaLevelHeightM  *float64 `json:"seaLevelHeightM"`
	SeaLevelHeightFt *float64 `json:"seaLevelHeightFt"`

	InvertBarometerHeightM  *float64 `json:"invertBarometerHeightM"`
	InvertBarometerHeightFt *float64 `json:"invertBarometerHeightFt"`

	SeaSurfaceTempC *float64 `json:"seaSurfaceTempC"`
	SeaSurfaceTempF *float64 `json:"seaSurfaceTempF"`

	OceanCurrentVelocityKmh   *float64 `json:"oceanCurrentVelocityKmh"`
	OceanCurrentVelocityKnots *float64 `json:"oceanCurrentVelocityKnots"`
	OceanCurrentDirection     *float64 `json:"oceanCurrentDirection"`
}

// MarineHourlyEntry is one transposed hourly forecast row.
type MarineHourlyEntry struct {
	Time string `json:"time"`

	WaveHeightM   *float64 `json:"waveHeightM"`
	WaveHeightFt  *float64 `json:"waveHeightFt"`
	WaveDirection *float64 `json:"waveDirection"`
	WavePeriodS   *float64 `json:"wavePeriodS"`

	WindWaveHeightM   *float64 `json:"windWaveHeightM"`
	WindWaveHeightFt  *float64 `json:"windWaveHeightFt"`
	WindWaveDirection *float64 `json:"windWaveDirection"`
	WindWavePeriodS   *float64 `json:"windWavePeriodS"`

	SwellHeightM   *float64 `json:"swellHeightM"`
	SwellHeightFt  *float64 `json:"swellHeightFt"`
	SwellDirection *float64 `json:"swellDirection"`
	SwellPeriodS   *float64 `json:"swellPeriodS"`

	SeaSurfaceTempC *float64 `json:"seaSurfaceTempC"`
	SeaSurfaceTempF *float64 `json:"seaSurfaceTempF"`

	OceanCurrentVelocityKmh   *float64 `json:"oceanCurrentVelocityKmh"`
	OceanCurrentVelocityKnots *float64 `json:"oceanCurrentVelocityKnots"`
	OceanCurrentDirection     *float64 `json:"oceanCurrentDirection"`
}

// MarineDailyEntry is one transposed daily aggregate row.
type MarineDailyEntry struct {
	Date string `json:"date"`

	WaveHeightMaxM        *float64 `json:"waveHeightMaxM"`
	WaveHeightMaxFt       *float64 `json:"waveHeightMaxFt"`
	WaveDirectionDominant *float64 `json:"waveDirectionDominant"`
	WavePeriodMaxS        *float64 `json:"wavePeriodMaxS"`

	WindWaveHeightMaxM        *float64 `json:"windWaveHeightMaxM"`
	WindWaveHeightMaxFt       *float64 `json:"windWaveHeightMaxFt"`
	WindWaveDirectionDominant *float64 `json:"windWaveDirectionDominant"`
	WindWavePeriodMaxS        *float64 `json:"windWavePeriodMaxS"`

	SwellHeightMaxM        *float64 `json:"swellHeightMaxM"`
	SwellHeightMaxFt       *float64 `json:"swellHeightMaxFt"`
	SwellDirectionDominant *float64 `json:"swellDirectionDominant"`
	SwellPeriodMaxS        *float64 `json:"swellPeriodMaxS"`
}

// MarineForecastResult is the row-oriented marine forecast.
type MarineForecastResult struct {
	Location string              `json:"location"`
	Timezone string              `json:"timezone,omitempty"`
	Days     int                 `json:"days"`
	Hourly   []MarineHourlyEntry `json:"hourly"`
	Daily    []MarineDailyEntry  `json:"daily"`
}

// Current fetches the 22-variable current block. Absence of the current
// block in the response is a terminal no-result, never a partial one.
func (a *Aggregator) Current(ctx context.Context, lat, lon float64) (*MarineConditionsResult, bool) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", lat))
	params.Set("longitude", fmt.Sprintf("%f", lon))
	params.Set("current", strings.Join(currentVariables, ","))

	reqURL := fmt.Sprintf("%s/v1/marine?%s", a.baseURL, params.Encode())

	var resp marineResponse
	if err := a.fetch.GetJSON(ctx, reqURL, &resp); err != nil {
		a.logger.Warn("marine: current conditions fetch failed", "lat", lat, "lon", lon, "error", err)
		return nil, false
	}
	if resp.Current == nil {
		a.logger.Warn("marine: response has no current block", "lat", lat, "lon", lon)
		return nil, false
	}

	cur := resp.Current
	return &MarineConditionsResult{
		Location: fmt.Sprintf("%.4f, %.4f", lat, lon),
		Time:     cur.Time,

		WaveHeightM:   cur.WaveHeight,
		WaveHeightFt:  units.MetersToFeet(cur.WaveHeight),
		WaveDirection: cur.WaveDirection,
		WavePeriodS:   cur.WavePeriod,

		WindWaveHeightM:     cur.WindWaveHeight,
		WindWaveHeightFt:    units.MetersToFeet(cur.WindWaveHeight),
		WindWaveDirection:   cur.WindWaveDirection,
		WindWavePeriodS:     cur.WindWavePeriod,
		WindWavePeakPeriodS: cur.WindWavePeakPeriod,

		SwellHeightM:     cur.SwellWaveHeight,
		SwellHeightFt:    units.MetersToFeet(cur.SwellWaveHeight),
		SwellDirection:   cur.SwellWaveDirection,
		SwellPeriodS:     cur.SwellWavePeriod,
		SwellPeakPeriodS: cur.SwellWavePeakPeriod,

		SecondarySwellHeightM:   cur.SecondarySwellWaveHeight,
		SecondarySwellHeightFt:  units.MetersToFeet(cur.SecondarySwellWaveHeight),
		SecondarySwellDirection: cur.SecondarySwellWaveDirection,
		SecondarySwellPeriodS:   cur.SecondarySwellWavePeriod,

		TertiarySwellHeightM:   cur.TertiarySwellWaveHeight,
		TertiarySwellHeightFt:  units.MetersToFeet(cur.TertiarySwellWaveHeight),
		TertiarySwellDirection: cur.TertiarySwellWaveDirection,
		TertiarySwellPeriodS:   cur.TertiarySwellWavePeriod,

		SeaLevelHeightM:  cur.SeaLevelHeightMsl,
		SeaLevelHeightFt: units.MetersToFeet(cur.SeaLevelHeightMsl),

		InvertBarometerHeightM:  cur.InvertBarometerHeight,
		InvertBarometerHeightFt: units.MetersToFeet(cur.InvertBarometerHeight),

		SeaSurfaceTempC: cur.SeaSurfaceTemperature,
		SeaSurfaceTempF: units.CelsiusToFahrenheit(cur.SeaSurfaceTemperature),

		OceanCurrentVelocityKmh:   cur.OceanCurrentVelocity,
		OceanCurrentVelocityKnots: units.KmhToKnots(cur.OceanCurrentVelocity),
		OceanCurrentDirection:     cur.OceanCurrentDirection,
	}, true
}

// Forecast fetches hourly and daily column-oriented series for the given
// number of days and transposes them into row-oriented entries. days is
// passed through as-is; the caller-facing boundary owns clamping.
func (a *Aggregator) Forecast(ctx context.Context, lat, lon float64, days int) (*MarineForecastResult, bool) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", lat))
	params.Set("longitude", fmt.Sprintf("%f", lon))
	params.Set("hourly", strings.Join(hourlyVariables, ","))
	params.Set("daily", strings.Join(dailyVariables, ","))
	params.Set("forecast_days", fmt.Sprintf("%d", days))
	params.Set("timezone", "auto")

	reqURL := fmt.Sprintf("%s/v1/marine?%s", a.baseURL, params.Encode())

	var resp marineResponse
	if err := a.fetch.GetJSON(ctx, reqURL, &resp); err != nil {
		a.logger.Warn("marine: forecast fetch failed", "lat", lat, "lon", lon, "days", days, "error", err)
		return nil, false
	}
	if resp.Hourly == nil && resp.Daily == nil {
		a.logger.Warn("marine: response has neither hourly nor daily block", "lat", lat, "lon", lon)
		return nil, false
	}

	return &MarineForecastResult{
		Location: fmt.Sprintf("%.4f, %.4f", lat, lon),
		Timezone: resp.Timezone,
		Days:     days,
		Hourly:   transposeHourly(resp.Hourly),
		Daily:    transposeDaily(resp.Daily),
	}, true
}
