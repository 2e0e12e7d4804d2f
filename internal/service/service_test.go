package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkhoward/weather-marine-mcp/internal/geocode"
	"github.com/dkhoward/weather-marine-mcp/internal/marine"
	"github.com/dkhoward/weather-marine-mcp/internal/nws"
)

type fakeResolver struct {
	loc *geocode.GeoLocation
}

func (f fakeResolver) Resolve(ctx context.Context, text string) (*geocode.GeoLocation, bool) {
	return f.loc, f.loc != nil
}

type fakeWeather struct {
	current  *nws.CurrentConditionsResult
	forecast *nws.ForecastResult
	radar    *nws.RadarInfoResult
}

func (f fakeWeather) CurrentConditions(ctx context.Context, lat, lon float64) (*nws.CurrentConditionsResult, bool) {
	return f.current, f.current != nil
}

func (f fakeWeather) Forecast(ctx context.Context, lat, lon float64) (*nws.ForecastResult, bool) {
	return f.forecast, f.forecast != nil
}

func (f fakeWeather) RadarInfo(ctx context.Context, lat, lon float64) (*nws.RadarInfoResult, bool) {
	return f.radar, f.radar != nil
}

type fakeMarine struct {
	current       *marine.MarineConditionsResult
	forecast      *marine.MarineForecastResult
	requestedDays int
}

func (f *fakeMarine) Current(ctx context.Context, lat, lon float64) (*marine.MarineConditionsResult, bool) {
	return f.current, f.current != nil
}

func (f *fakeMarine) Forecast(ctx context.Context, lat, lon float64, days int) (*marine.MarineForecastResult, bool) {
	f.requestedDays = days
	return f.forecast, f.forecast != nil
}

var destin = &geocode.GeoLocation{
	City:      "Destin",
	State:     "Florida",
	Country:   "United States",
	Latitude:  30.3935,
	Longitude: -86.4958,
	Timezone:  "America/Chicago",
}

func TestCurrentConditionsOverwritesLocation(t *testing.T) {
	svc := New(
		fakeResolver{loc: destin},
		fakeWeather{current: &nws.CurrentConditionsResult{Location: "Destin, FL", Station: "KDTS"}},
		&fakeMarine{},
		nil,
	)

	res, errPayload := svc.CurrentConditions(context.Background(), "32541")
	require.Nil(t, errPayload)
	assert.Equal(t, "Destin, Florida, United States", res.Location,
		"result location must carry the resolver's display name, not the provider's relative location")
	assert.Equal(t, "KDTS", res.Station)
}

func TestCurrentConditionsResolutionFailure(t *testing.T) {
	svc := New(fakeResolver{}, fakeWeather{}, &fakeMarine{}, nil)

	res, errPayload := svc.CurrentConditions(context.Background(), "nowhere at all")
	assert.Nil(t, res)
	require.NotNil(t, errPayload)
	assert.True(t, errPayload.Error)
	assert.Contains(t, errPayload.Message, "nowhere at all")
	assert.Empty(t, errPayload.Suggestion)
}

func TestCurrentConditionsUpstreamFailure(t *testing.T) {
	svc := New(fakeResolver{loc: destin}, fakeWeather{}, &fakeMarine{}, nil)

	res, errPayload := svc.CurrentConditions(context.Background(), "Destin")
	assert.Nil(t, res)
	require.NotNil(t, errPayload)
	assert.Contains(t, errPayload.Message, "Destin, Florida, United States")
	assert.Contains(t, errPayload.Message, "30.3935")
}

func TestMarineErrorCarriesSuggestion(t *testing.T) {
	svc := New(fakeResolver{loc: destin}, fakeWeather{}, &fakeMarine{}, nil)

	res, errPayload := svc.MarineConditions(context.Background(), "Destin")
	assert.Nil(t, res)
	require.NotNil(t, errPayload)
	assert.Contains(t, errPayload.Suggestion, "coastal location")
}

func TestMarineForecastClampsDays(t *testing.T) {
	cases := []struct {
		requested int
		want      int
	}{
		{0, 7},
		{-3, 7},
		{1, 1},
		{4, 4},
		{7, 7},
		{10, 7},
		{100, 7},
	}

	for _, tc := range cases {
		agg := &fakeMarine{forecast: &marine.MarineForecastResult{}}
		svc := New(fakeResolver{loc: destin}, fakeWeather{}, agg, nil)

		_, errPayload := svc.MarineForecast(context.Background(), "Destin", tc.requested)
		require.Nil(t, errPayload, "requested %d", tc.requested)
		assert.Equal(t, tc.want, agg.requestedDays, "requested %d", tc.requested)
	}
}

func TestMarineForecastOverwritesLocation(t *testing.T) {
	agg := &fakeMarine{forecast: &marine.MarineForecastResult{Location: "30.3935, -86.4958"}}
	svc := New(fakeResolver{loc: destin}, fakeWeather{}, agg, nil)

	res, errPayload := svc.MarineForecast(context.Background(), "32541", 3)
	require.Nil(t, errPayload)
	assert.Equal(t, "Destin, Florida, United States", res.Location)
}

func TestForecastAndRadar(t *testing.T) {
	svc := New(
		fakeResolver{loc: destin},
		fakeWeather{
			forecast: &nws.ForecastResult{Periods: []nws.ForecastPeriod{{Name: "Tonight"}}},
			radar:    &nws.RadarInfoResult{Station: "KEVX"},
		},
		&fakeMarine{},
		nil,
	)

	forecast, errPayload := svc.Forecast(context.Background(), "Destin")
	require.Nil(t, errPayload)
	assert.Equal(t, "Destin, Florida, United States", forecast.Location)
	require.Len(t, forecast.Periods, 1)

	radar, errPayload := svc.RadarInfo(context.Background(), "Destin")
	require.Nil(t, errPayload)
	assert.Equal(t, "KEVX", radar.Station)
}
