// Package geocode resolves free-text place names and US postal codes to
// geographic coordinates using the Open-Meteo geocoding API.
package geocode

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
)

// postalPattern matches a 5-digit US postal code with an optional +4 suffix.
var postalPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// GeoLocation is a resolved place. Latitude is in [-90, 90] and longitude
// in [-180, 180] as returned by the provider. Constructed once per
// resolution and never mutated afterward.
type GeoLocation struct {
	City      string  `json:"city"`
	State     string  `json:"state,omitempty"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone,omitempty"`
}

// DisplayName renders the location as "city, country", or
// "city, state, country" when a state is present.
func (g GeoLocation) DisplayName() string {
	if g.State == "" {
		return fmt.Sprintf("%s, %s", g.City, g.Country)
	}
	return fmt.Sprintf("%s, %s, %s", g.City, g.State, g.Country)
}

// Fetcher is the HTTP-fetch capability the resolver depends on.
// Satisfied by *upstream.Client; substituted in tests.
type Fetcher interface {
	GetJSON(ctx context.Context, rawURL string, out interface{}) error
}

// Resolver turns location text into a GeoLocation. All upstream and
// parsing failures are absorbed here: the resolver logs them and reports
// no result rather than returning an error.
type Resolver struct {
	fetch   Fetcher
	baseURL string
	logger  *slog.Logger
}

// NewResolver creates a Resolver against the given geocoding API base URL,
// e.g. "https://geocoding-api.open-meteo.com".
func NewResolver(fetch Fetcher, baseURL string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		fetch:   fetch,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

type geoResult struct {
	Name      string   `json:"name"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Country   string   `json:"country"`
	Admin1    string   `json:"admin1"`
	Timezone  string   `json:"timezone"`
	Postcodes []string `json:"postcodes"`
}

type searchResponse struct {
	Results []geoResult `json:"results"`
}

// Resolve classifies the input as a postal code or free text and resolves
// it to coordinates. The second return value is false when no location
// could be determined; blank input resolves to nothing without any
// upstream call.
func (r *Resolver) Resolve(ctx context.Context, locationText string) (*GeoLocation, bool) {
	query := strings.TrimSpace(locationText)
	if query == "" {
		r.logger.Debug("geocode: blank location input, nothing to resolve")
		return nil, false
	}

	if postalPattern.MatchString(query) {
		return r.resolvePostal(ctx, query)
	}
	return r.resolveName(ctx, query)
}

// resolveName queries the provider for the single best match by name.
func (r *Resolver) resolveName(ctx context.Context, name string) (*GeoLocation, bool) {
	resp, err := r.search(ctx, name, 1)
	if err != nil {
		r.logger.Warn("geocode: name lookup failed", "query", name, "error", err)
		return nil, false
	}
	if len(resp.Results) == 0 {
		r.logger.Info("geocode: no results", "query", name)
		return nil, false
	}
	loc := toGeoLocation(resp.Results[0])
	return &loc, true
}

// resolvePostal queries with count=5 because the postal-to-place mapping
// is ambiguous: the same 5-digit code can show up under several nearby
// places. The first candidate whose postcode list contains the queried
// code wins; when none confirms it, the first candidate is used rather
// than failing outright.
func (r *Resolver) resolvePostal(ctx context.Context, postal string) (*GeoLocation, bool) {
	code := postal
	if idx := strings.Index(code, "-"); idx >= 0 {
		code = code[:idx]
	}

	resp, err := r.search(ctx, code, 5)
	if err != nil {
		r.logger.Warn("geocode: postal lookup failed", "postal", code, "error", err)
		return nil, false
	}
	if len(resp.Results) == 0 {
		r.logger.Info("geocode: no results for postal code", "postal", code)
		return nil, false
	}

	for _, candidate := range resp.Results {
		for _, pc := range candidate.Postcodes {
			if pc == code {
				loc := toGeoLocation(candidate)
				return &loc, true
			}
		}
	}

	// No candidate confirmed the code; fall back to the provider's best match.
	r.logger.Debug("geocode: no exact postal match, using first candidate",
		"postal", code, "candidate", resp.Results[0].Name)
	loc := toGeoLocation(resp.Results[0])
	return &loc, true
}

func (r *Resolver) search(ctx context.Context, name string, count int) (*searchResponse, error) {
	params := url.Values{}
	params.Set("name", name)
	params.Set("count", fmt.Sprintf("%d", count))
	params.Set("language", "en")
	params.Set("format", "json")

	reqURL := fmt.Sprintf("%s/v1/search?%s", r.baseURL, params.Encode())

	var resp searchResponse
	if err := r.fetch.GetJSON(ctx, reqURL, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func toGeoLocation(res geoResult) GeoLocation {
	return GeoLocation{
		City:      res.Name,
		State:     res.Admin1,
		Country:   res.Country,
		Latitude:  res.Latitude,
		Longitude: res.Longitude,
		Timezone:  res.Timezone,
	}
}
