package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkhoward/weather-marine-mcp/internal/upstream"
)

func newResolverAgainst(t *testing.T, handler http.HandlerFunc) (*Resolver, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client := upstream.New("geocoding-test", srv.Client(), "weather-marine-mcp-test/1.0")
	return NewResolver(client, srv.URL, nil), &calls
}

func TestResolveBlankInput(t *testing.T) {
	resolver, calls := newResolverAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, input := range []string{"", "   ", "\t\n"} {
		loc, ok := resolver.Resolve(context.Background(), input)
		assert.False(t, ok, "input %q", input)
		assert.Nil(t, loc)
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(calls), "blank input must not reach the provider")
}

func TestResolveFreeText(t *testing.T) {
	resolver, _ := newResolverAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Destin", r.URL.Query().Get("name"))
		assert.Equal(t, "1", r.URL.Query().Get("count"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"name":"Destin","latitude":30.3935,"longitude":-86.4958,
			 "country":"United States","admin1":"Florida","timezone":"America/Chicago"}
		]}`))
	})

	loc, ok := resolver.Resolve(context.Background(), "Destin")
	require.True(t, ok)
	assert.Equal(t, "Destin", loc.City)
	assert.Equal(t, "Florida", loc.State)
	assert.Equal(t, "United States", loc.Country)
	assert.Equal(t, "America/Chicago", loc.Timezone)
	assert.InDelta(t, 30.3935, loc.Latitude, 1e-6)
	assert.InDelta(t, -86.4958, loc.Longitude, 1e-6)
	assert.Equal(t, "Destin, Florida, United States", loc.DisplayName())
}

func TestResolveFreeTextNoResults(t *testing.T) {
	resolver, _ := newResolverAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	loc, ok := resolver.Resolve(context.Background(), "Nowheresville Qzx")
	assert.False(t, ok)
	assert.Nil(t, loc)
}

func TestResolvePostalExactMatch(t *testing.T) {
	resolver, _ := newResolverAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "32541", r.URL.Query().Get("name"))
		assert.Equal(t, "5", r.URL.Query().Get("count"))
		_, _ = w.Write([]byte(`{"results":[
			{"name":"Niceville","latitude":30.51,"longitude":-86.48,
			 "country":"United States","admin1":"Florida","postcodes":["32578"]},
			{"name":"Destin","latitude":30.3935,"longitude":-86.4958,
			 "country":"United States","admin1":"Florida","timezone":"America/Chicago",
			 "postcodes":["32540","32541"]}
		]}`))
	})

	loc, ok := resolver.Resolve(context.Background(), "32541")
	require.True(t, ok)
	assert.Equal(t, "Destin", loc.City, "candidate whose postcode list contains the query must win")
}

func TestResolvePostalPlusFourStripped(t *testing.T) {
	resolver, _ := newResolverAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "32541", r.URL.Query().Get("name"), "+4 suffix must be stripped before querying")
		_, _ = w.Write([]byte(`{"results":[
			{"name":"Destin","latitude":30.3935,"longitude":-86.4958,
			 "country":"United States","admin1":"Florida","postcodes":["32541"]}
		]}`))
	})

	loc, ok := resolver.Resolve(context.Background(), "32541-1234")
	require.True(t, ok)
	assert.Equal(t, "Destin", loc.City)
}

func TestResolvePostalFallbackToFirst(t *testing.T) {
	resolver, _ := newResolverAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[
			{"name":"Springfield","latitude":39.8,"longitude":-89.6,
			 "country":"United States","admin1":"Illinois","postcodes":["62701"]},
			{"name":"Springfield","latitude":37.2,"longitude":-93.3,
			 "country":"United States","admin1":"Missouri","postcodes":["65801"]}
		]}`))
	})

	loc, ok := resolver.Resolve(context.Background(), "99999")
	require.True(t, ok, "unconfirmed postal code still resolves to the first candidate")
	assert.Equal(t, "Illinois", loc.State)
}

func TestResolveUpstreamFailureAbsorbed(t *testing.T) {
	resolver, _ := newResolverAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	loc, ok := resolver.Resolve(context.Background(), "Destin")
	assert.False(t, ok, "transport failures surface as no result, not an error")
	assert.Nil(t, loc)
}

func TestDisplayNameWithoutState(t *testing.T) {
	loc := GeoLocation{City: "Hamburg", Country: "Germany"}
	assert.Equal(t, "Hamburg, Germany", loc.DisplayName())
}
