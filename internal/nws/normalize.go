package nws

import (
	"github.com/dkhoward/weather-marine-mcp/internal/units"
)

// normalizeObservation maps a raw NWS observation into the stable result
// shape. Upstream units are metric (temperatures in C, speeds in km/h,
// pressure in Pa, visibility in m); every imperial counterpart is derived
// independently from its source value.
func normalizeObservation(obs observationProperties) *CurrentConditionsResult {
	feelsLike := feelsLikeTemperature(obs)

	return &CurrentConditionsResult{
		Observed:        obs.Timestamp,
		Conditions:      obs.TextDescription,
		TemperatureC:    obs.Temperature.Value,
		TemperatureF:    units.CelsiusToFahrenheit(obs.Temperature.Value),
		FeelsLikeC:      feelsLike,
		FeelsLikeF:      units.CelsiusToFahrenheit(feelsLike),
		DewpointC:       obs.Dewpoint.Value,
		DewpointF:       units.CelsiusToFahrenheit(obs.Dewpoint.Value),
		HumidityPercent: obs.RelativeHumidity.Value,
		WindSpeed:       units.FormatMph(obs.WindSpeed.Value),
		WindGustMph:     units.KmhToMph(obs.WindGust.Value),
		WindDirection:   units.Cardinal(obs.WindDirection.Value),
		PressureHpa:     units.PascalsToHpa(obs.BarometricPressure.Value),
		PressureInHg:    units.PascalsToInHg(obs.BarometricPressure.Value),
		VisibilityKm:    units.MetersToKilometers(obs.Visibility.Value),
		VisibilityMi:    units.MetersToMiles(obs.Visibility.Value),
	}
}

// feelsLikeTemperature applies the precedence order wind chill, then heat
// index, then the raw temperature.
func feelsLikeTemperature(obs observationProperties) *float64 {
	if obs.WindChill.Value != nil {
		return obs.WindChill.Value
	}
	if obs.HeatIndex.Value != nil {
		return obs.HeatIndex.Value
	}
	return obs.Temperature.Value
}

// normalizePeriod maps one forecast period 1:1. Wind speed and direction
// stay as the provider's free-text strings.
func normalizePeriod(p forecastPeriodPayload) ForecastPeriod {
	return ForecastPeriod{
		Name:                p.Name,
		StartTime:           p.StartTime,
		EndTime:             p.EndTime,
		IsDaytime:           p.IsDaytime,
		Temperature:         p.Temperature,
		TemperatureUnit:     p.TemperatureUnit,
		PrecipitationChance: p.ProbabilityOfPrecipitation.Value,
		HumidityPercent:     p.RelativeHumidity.Value,
		WindSpeed:           p.WindSpeed,
		WindDirection:       p.WindDirection,
		ShortForecast:       p.ShortForecast,
		DetailedForecast:    p.DetailedForecast,
		Icon:                p.Icon,
	}
}
