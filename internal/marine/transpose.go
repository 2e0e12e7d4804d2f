package marine

import "github.com/dkhoward/weather-marine-mcp/internal/units"

// at looks up index i in a parallel value sequence, substituting nil when
// the sequence is absent or shorter than the time axis. Misaligned columns
// degrade to nulls instead of erroring.
func at(seq []*float64, i int) *float64 {
	if i < len(seq) {
		return seq[i]
	}
	return nil
}

// transposeHourly turns the column-oriented hourly block into one row per
// time-axis entry. The entry count always equals the time-sequence length
// and provider ordering is preserved.
func transposeHourly(h *hourlyBlock) []MarineHourlyEntry {
	if h == nil {
		return nil
	}

	entries := make([]MarineHourlyEntry, 0, len(h.Time))
	for i, ts := range h.Time {
		waveHeight := at(h.WaveHeight, i)
		windWaveHeight := at(h.WindWaveHeight, i)
		swellHeight := at(h.SwellWaveHeight, i)
		sst := at(h.SeaSurfaceTemperature, i)
		currentVelocity := at(h.OceanCurrentVelocity, i)

		entries = append(entries, MarineHourlyEntry{
			Time: ts,

			WaveHeightM:   waveHeight,
			WaveHeightFt:  units.MetersToFeet(waveHeight),
			WaveDirection: at(h.WaveDirection, i),
			WavePeriodS:   at(h.WavePeriod, i),

			WindWaveHeightM:   windWaveHeight,
			WindWaveHeightFt:  units.MetersToFeet(windWaveHeight),
			WindWaveDirection: at(h.WindWaveDirection, i),
			WindWavePeriodS:   at(h.WindWavePeriod, i),

			SwellHeightM:   swellHeight,
			SwellHeightFt:  units.MetersToFeet(swellHeight),
			SwellDirection: at(h.SwellWaveDirection, i),
			SwellPeriodS:   at(h.SwellWavePeriod, i),

			SeaSurfaceTempC: sst,
			SeaSurfaceTempF: units.CelsiusToFahrenheit(sst),

			OceanCurrentVelocityKmh:   currentVelocity,
			OceanCurrentVelocityKnots: units.KmhToKnots(currentVelocity),
			OceanCurrentDirection:     at(h.OceanCurrentDirection, i),
		})
	}
	return entries
}

// transposeDaily turns the column-oriented daily block into one row per
// date.
func transposeDaily(d *dailyBlock) []MarineDailyEntry {
	if d == nil {
		return nil
	}

	entries := make([]MarineDailyEntry, 0, len(d.Time))
	for i, date := range d.Time {
		waveHeightMax := at(d.WaveHeightMax, i)
		windWaveHeightMax := at(d.WindWaveHeightMax, i)
		swellHeightMax := at(d.SwellWaveHeightMax, i)

		entries = append(entries, MarineDailyEntry{
			Date: date,

			WaveHeightMaxM:        waveHeightMax,
			WaveHeightMaxFt:       units.MetersToFeet(waveHeightMax),
			WaveDirectionDominant: at(d.WaveDirectionDominant, i),
			WavePeriodMaxS:        at(d.WavePeriodMax, i),

			WindWaveHeightMaxM:        windWaveHeightMax,
			WindWaveHeightMaxFt:       units.MetersToFeet(windWaveHeightMax),
			WindWaveDirectionDominant: at(d.WindWaveDirectionDominant, i),
			WindWavePeriodMaxS:        at(d.WindWavePeriodMax, i),

			SwellHeightMaxM:        swellHeightMax,
			SwellHeightMaxFt:       units.MetersToFeet(swellHeightMax),
			SwellDirectionDominant: at(d.SwellWaveDirectionDominant, i),
			SwellPeriodMaxS:        at(d.SwellWavePeriodMax, i),
		})
	}
	return entries
}
