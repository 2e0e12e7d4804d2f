package marine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkhoward/weather-marine-mcp/internal/units"
	"github.com/dkhoward/weather-marine-mcp/internal/upstream"
)

func newAggregatorAgainst(t *testing.T, handler http.HandlerFunc) *Aggregator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := upstream.New("marine-test", srv.Client(), "weather-marine-mcp-test/1.0")
	return NewAggregator(client, srv.URL, nil)
}

func TestCurrentRequestsAllVariables(t *testing.T) {
	var requested string
	agg := newAggregatorAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Query().Get("current")
		_, _ = w.Write([]byte(`{"current":{
			"time":"2026-08-26T15:00",
			"wave_height":1.2,
			"wave_direction":190,
			"sea_surface_temperature":29.5,
			"ocean_current_velocity":3.0,
			"swell_wave_height":null
		}}`))
	})

	res, ok := agg.Current(context.Background(), 30.39, -86.5)
	require.True(t, ok)

	names := strings.Split(requested, ",")
	assert.Len(t, names, 22, "current request must enumerate the fixed variable set")
	assert.Contains(t, names, "tertiary_swell_wave_direction")
	assert.Contains(t, names, "invert_barometer_height")

	require.NotNil(t, res.WaveHeightM)
	assert.Equal(t, 1.2, *res.WaveHeightM)
	require.NotNil(t, res.WaveHeightFt)
	assert.InDelta(t, 3.937, *res.WaveHeightFt, 1e-3)

	require.NotNil(t, res.SeaSurfaceTempF)
	assert.InDelta(t, 85.1, *res.SeaSurfaceTempF, 1e-9)

	require.NotNil(t, res.OceanCurrentVelocityKnots)
	assert.InDelta(t, 1.619871, *res.OceanCurrentVelocityKnots, 1e-6)

	// Absent source means both derived fields are absent.
	assert.Nil(t, res.SwellHeightM)
	assert.Nil(t, res.SwellHeightFt)
	assert.Equal(t, "2026-08-26T15:00", res.Time)
}

func TestCurrentMissingBlockIsTerminal(t *testing.T) {
	agg := newAggregatorAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"latitude":45.0,"longitude":8.0}`))
	})

	res, ok := agg.Current(context.Background(), 45, 8)
	assert.False(t, ok, "missing current block is a terminal no-result")
	assert.Nil(t, res)
}

func TestCurrentUpstreamFailureAbsorbed(t *testing.T) {
	agg := newAggregatorAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	res, ok := agg.Current(context.Background(), 0, 0)
	assert.False(t, ok)
	assert.Nil(t, res)
}

func TestForecastVariableSets(t *testing.T) {
	var hourly, daily, forecastDays string
	agg := newAggregatorAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		hourly = r.URL.Query().Get("hourly")
		daily = r.URL.Query().Get("daily")
		forecastDays = r.URL.Query().Get("forecast_days")
		_, _ = w.Write([]byte(`{"timezone":"America/Chicago","hourly":{"time":[]},"daily":{"time":[]}}`))
	})

	res, ok := agg.Forecast(context.Background(), 30.39, -86.5, 3)
	require.True(t, ok)
	assert.Equal(t, "3", forecastDays)
	assert.Len(t, strings.Split(hourly, ","), 12)
	assert.Len(t, strings.Split(daily, ","), 9)
	for _, name := range strings.Split(daily, ",") {
		assert.True(t, strings.HasSuffix(name, "_max") || strings.HasSuffix(name, "_dominant"),
			"daily variables are _max/_dominant aggregates, got %q", name)
	}

	// Empty time sequences yield zero entries, not an error.
	assert.Empty(t, res.Hourly)
	assert.Empty(t, res.Daily)
	assert.Equal(t, "America/Chicago", res.Timezone)
}

func TestForecastTranspose(t *testing.T) {
	agg := newAggregatorAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"hourly":{
				"time":["2026-08-26T00:00","2026-08-26T01:00","2026-08-26T02:00","2026-08-26T03:00","2026-08-26T04:00"],
				"wave_height":[1.0,1.1,1.2],
				"wave_direction":[180,null,200,210,220],
				"sea_surface_temperature":[29.0,29.1,29.2,29.3,29.4]
			},
			"daily":{
				"time":["2026-08-26","2026-08-27"],
				"wave_height_max":[1.5],
				"swell_wave_direction_dominant":[190,195]
			}
		}`))
	})

	res, ok := agg.Forecast(context.Background(), 30.39, -86.5, 2)
	require.True(t, ok)

	// Entry count equals the time-sequence length.
	require.Len(t, res.Hourly, 5)
	require.Len(t, res.Daily, 2)

	// Short wave_height column (3 values vs 5 times) yields nulls at 3 and 4.
	require.NotNil(t, res.Hourly[2].WaveHeightM)
	assert.Equal(t, 1.2, *res.Hourly[2].WaveHeightM)
	assert.Nil(t, res.Hourly[3].WaveHeightM)
	assert.Nil(t, res.Hourly[3].WaveHeightFt)
	assert.Nil(t, res.Hourly[4].WaveHeightM)

	// Explicit nulls inside a column stay null.
	assert.Nil(t, res.Hourly[1].WaveDirection)
	require.NotNil(t, res.Hourly[2].WaveDirection)
	assert.Equal(t, 200.0, *res.Hourly[2].WaveDirection)

	// Columns never requested or returned are null across the board.
	assert.Nil(t, res.Hourly[0].SwellHeightM)
	assert.Nil(t, res.Hourly[0].OceanCurrentVelocityKnots)

	// Order matches provider order.
	assert.Equal(t, "2026-08-26T00:00", res.Hourly[0].Time)
	assert.Equal(t, "2026-08-26T04:00", res.Hourly[4].Time)

	// Daily short column padding.
	require.NotNil(t, res.Daily[0].WaveHeightMaxM)
	assert.InDelta(t, 4.92126, *res.Daily[0].WaveHeightMaxFt, 1e-5)
	assert.Nil(t, res.Daily[1].WaveHeightMaxM)
	require.NotNil(t, res.Daily[1].SwellDirectionDominant)
	assert.Equal(t, 195.0, *res.Daily[1].SwellDirectionDominant)
}

func TestTransposeNilBlocks(t *testing.T) {
	assert.Nil(t, transposeHourly(nil))
	assert.Nil(t, transposeDaily(nil))
}

func TestAtHelper(t *testing.T) {
	seq := []*float64{units.Float(1), nil, units.Float(3)}
	require.NotNil(t, at(seq, 0))
	assert.Nil(t, at(seq, 1))
	assert.Nil(t, at(seq, 3), "out-of-range index degrades to null, never panics")
	assert.Nil(t, at(nil, 0))
}
