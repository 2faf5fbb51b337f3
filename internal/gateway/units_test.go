package gateway

import "testing"

func TestParseUnitValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		unit string
		want float64
	}{
		{"rainfall with space", "12.3 mm", UnitMillimeters, 12.3},
		{"rainfall no space", "12.3mm", UnitMillimeters, 12.3},
		{"temperature", "18.0°C", UnitCelsius, 18.0},
		{"negative temperature", "-4.5°C", UnitCelsius, -4.5},
		{"humidity", "55%", UnitPercent, 55},
		{"bare number", "7.25", UnitMillimeters, 7.25},
		{"zero", "0 mm", UnitMillimeters, 0},
		{"corrupted degrades to zero", "N/A mm", UnitMillimeters, 0},
		{"empty degrades to zero", "", UnitMillimeters, 0},
		{"unit only degrades to zero", "mm", UnitMillimeters, 0},
		{"garbage degrades to zero", "??", UnitPercent, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseUnitValue(tt.raw, tt.unit); got != tt.want {
				t.Errorf("ParseUnitValue(%q, %q) = %v, want %v", tt.raw, tt.unit, got, tt.want)
			}
		})
	}
}

func TestFormatUnitValue_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		unit string
		want string
	}{
		{"rainfall", 12.3, UnitMillimeters, "12.3 mm"},
		{"temperature", 18, UnitCelsius, "18°C"},
		{"humidity", 55, UnitPercent, "55%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatUnitValue(tt.v, tt.unit)
			if got != tt.want {
				t.Errorf("FormatUnitValue(%v, %q) = %q, want %q", tt.v, tt.unit, got, tt.want)
			}
			if back := ParseUnitValue(got, tt.unit); back != tt.v {
				t.Errorf("round trip: ParseUnitValue(%q) = %v, want %v", got, back, tt.v)
			}
		})
	}
}
