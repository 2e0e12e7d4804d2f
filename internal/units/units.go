// Package units provides unit and direction conversions for normalized
// weather and marine results. All conversion functions take and return
// pointers: a nil input always yields a nil output, so absent upstream
// values stay absent instead of collapsing to zero.
package units

import (
	"fmt"
	"math"
)

const (
	metersPerFoot = 3.28084
	kmhToKnots    = 0.539957
	kmhToMph      = 0.621371
	metersPerMile = 1609.344
	paToInHg      = 0.0002953
)

// compassPoints is the 16-point compass rose, indexed clockwise from north.
var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// CelsiusToFahrenheit converts a temperature in degrees Celsius.
func CelsiusToFahrenheit(c *float64) *float64 {
	if c == nil {
		return nil
	}
	f := *c*9/5 + 32
	return &f
}

// KmhToMph converts a speed in kilometers per hour to miles per hour.
func KmhToMph(v *float64) *float64 {
	if v == nil {
		return nil
	}
	mph := *v * kmhToMph
	return &mph
}

// KmhToKnots converts a speed in kilometers per hour to knots.
func KmhToKnots(v *float64) *float64 {
	if v == nil {
		return nil
	}
	kn := *v * kmhToKnots
	return &kn
}

// MetersToFeet converts a length in meters to feet.
func MetersToFeet(m *float64) *float64 {
	if m == nil {
		return nil
	}
	ft := *m * metersPerFoot
	return &ft
}

// MetersToMiles converts a distance in meters to statute miles.
func MetersToMiles(m *float64) *float64 {
	if m == nil {
		return nil
	}
	mi := *m / metersPerMile
	return &mi
}

// MetersToKilometers converts a distance in meters to kilometers.
func MetersToKilometers(m *float64) *float64 {
	if m == nil {
		return nil
	}
	km := *m / 1000
	return &km
}

// PascalsToHpa converts a pressure in pascals to hectopascals (millibars).
func PascalsToHpa(p *float64) *float64 {
	if p == nil {
		return nil
	}
	hpa := *p / 100
	return &hpa
}

// PascalsToInHg converts a pressure in pascals to inches of mercury.
func PascalsToInHg(p *float64) *float64 {
	if p == nil {
		return nil
	}
	inhg := *p * paToInHg
	return &inhg
}

// Cardinal maps a bearing in degrees to one of the 16 compass points.
// The mapping is cyclic: 0 and 360 both map to "N". Absent input yields
// absent output, never a default direction.
func Cardinal(degrees *float64) *string {
	if degrees == nil {
		return nil
	}
	// Round half to even so the 11.25 and 348.75 sector boundaries both
	// resolve to N.
	idx := int(math.RoundToEven(*degrees/22.5)) % 16
	if idx < 0 {
		idx += 16
	}
	point := compassPoints[idx]
	return &point
}

// FormatMph renders a speed given in km/h as a human-readable string such
// as "12.4 mph". Current-conditions wind speed is presented this way;
// the gust field stays numeric.
func FormatMph(kmh *float64) *string {
	mph := KmhToMph(kmh)
	if mph == nil {
		return nil
	}
	s := fmt.Sprintf("%.1f mph", *mph)
	return &s
}

// Float returns a pointer to v. Convenience for building test fixtures
// and literal measurements.
func Float(v float64) *float64 {
	return &v
}
