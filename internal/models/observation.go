package models

import "time"

// DateLayout is the calendar-date format used on the wire (provider payloads,
// claim submissions, cache keys).
const DateLayout = "2006-01-02"

// Observation is a single point-in-time weather reading for a location.
// Immutable once fetched; numeric fields are already normalized from the
// provider's unit-suffixed strings.
type Observation struct {
	Location     string    `json:"location"`
	Date         time.Time `json:"date"`
	RainfallMM   float64   `json:"rainfallMm"`
	TemperatureC float64   `json:"temperatureC"`
	HumidityPct  float64   `json:"humidityPct"`
}

// HistoricalWindow is an ordered sequence of daily observations, oldest first.
// Days for which the provider had no data are absent, so a window may be
// shorter than the span that was requested.
type HistoricalWindow []Observation
