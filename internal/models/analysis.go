package models

// RainfallStats are the base rainfall aggregates computed over a window.
type RainfallStats struct {
	Mean               float64 `json:"mean"`
	Median             float64 `json:"median"`
	Max                float64 `json:"max"`
	Std                float64 `json:"std"`
	Total              float64 `json:"total"`
	ConsecutiveDryDays int     `json:"consecutiveDryDays"`
}

// TemperatureStats are the base temperature aggregates computed over a window.
type TemperatureStats struct {
	Mean  float64 `json:"mean"`
	Max   float64 `json:"max"`
	Min   float64 `json:"min"`
	Range float64 `json:"range"`
}

// RainEventMetrics are derived metrics specific to rain and flood claims,
// computed from per-day rainfall totals.
type RainEventMetrics struct {
	PeakDailyRainfall        float64 `json:"peakDailyRainfall"`
	RainfallIntensity        float64 `json:"rainfallIntensity"` // mm/hour approximation (peak / 24)
	ExtremeRainfallThreshold float64 `json:"extremeRainfallThreshold"`
	DaysAboveNormal          int     `json:"daysAboveNormal"`
	TotalPeriodRainfall      float64 `json:"totalPeriodRainfall"`
}

// DroughtEventMetrics are derived metrics specific to drought claims.
type DroughtEventMetrics struct {
	DrySpellLength     int     `json:"drySpellLength"`
	TotalRainfall      float64 `json:"totalRainfall"`
	AvgDailyRainfall   float64 `json:"avgDailyRainfall"`
	DaysBelowThreshold int     `json:"daysBelowThreshold"`
	HumidityTrend      float64 `json:"humidityTrend"`
	TemperatureAnomaly float64 `json:"temperatureAnomaly"`
}

// AnalysisResult carries the aggregate statistics for a window plus at most
// one event-specific sub-record matching the claim's event type. Never
// mutated after creation.
type AnalysisResult struct {
	Rainfall     RainfallStats        `json:"rainfallStats"`
	Temperature  TemperatureStats     `json:"temperatureStats"`
	RainEvent    *RainEventMetrics    `json:"rainEvent,omitempty"`
	DroughtEvent *DroughtEventMetrics `json:"droughtEvent,omitempty"`
}
