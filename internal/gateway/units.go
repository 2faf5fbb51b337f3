package gateway

import (
	"strconv"
	"strings"
)

// Unit tokens used by the weather provider's string fields.
const (
	UnitMillimeters = "mm"
	UnitCelsius     = "°"
	UnitPercent     = "%"
)

// ParseUnitValue extracts the numeric prefix of a unit-suffixed provider
// value ("12.3 mm", "18.0°C", "55%") as a float. A value that cannot be
// parsed degrades to 0.0 for that field only; corruption of one field must
// never fail the whole observation.
func ParseUnitValue(raw, unit string) float64 {
	s := raw
	if i := strings.Index(s, unit); i >= 0 {
		s = s[:i]
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0.0
	}
	return v
}

// FormatUnitValue renders a float back into the provider's unit-suffixed
// form. Formatting uses the shortest representation that round-trips, so
// ParseUnitValue(FormatUnitValue(v, u), u) == v.
func FormatUnitValue(v float64, unit string) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if unit == UnitPercent {
		return s + unit
	}
	if unit == UnitCelsius {
		return s + "°C"
	}
	return s + " " + unit
}
