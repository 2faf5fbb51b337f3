// Package analysis computes aggregate and event-specific statistics over a
// historical weather window.
package analysis

import (
	"errors"
	"sort"

	"github.com/agroshield/claim-validation-service/internal/models"
)

// DryDayThresholdMM is the rainfall under which a day counts as dry.
const DryDayThresholdMM = 0.1

// rollingDays is the trailing window used for the temperature anomaly.
const rollingDays = 7

// extremeRainfallPercentile is the daily-total percentile used as the
// extreme-rainfall threshold.
const extremeRainfallPercentile = 95

// ErrInsufficientData is returned only for an empty window. Any non-empty
// window, even a single day, is analyzed with whatever data exists.
var ErrInsufficientData = errors.New("insufficient data for analysis")

// Analyze computes base statistics over the window plus the event-specific
// metrics for the claim's event type. Event types other than rain, flood and
// drought produce no event-specific record.
func Analyze(win models.HistoricalWindow, eventType models.EventType) (models.AnalysisResult, error) {
	if len(win) == 0 {
		return models.AnalysisResult{}, ErrInsufficientData
	}

	rainfall := make([]float64, len(win))
	temperature := make([]float64, len(win))
	humidity := make([]float64, len(win))
	for i, obs := range win {
		rainfall[i] = obs.RainfallMM
		temperature[i] = obs.TemperatureC
		humidity[i] = obs.HumidityPct
	}

	result := models.AnalysisResult{
		Rainfall: models.RainfallStats{
			Mean:               mean(rainfall),
			Median:             median(rainfall),
			Max:                maxOf(rainfall),
			Std:                stddev(rainfall),
			Total:              sum(rainfall),
			ConsecutiveDryDays: longestRunBelow(rainfall, DryDayThresholdMM),
		},
		Temperature: models.TemperatureStats{
			Mean:  mean(temperature),
			Max:   maxOf(temperature),
			Min:   minOf(temperature),
			Range: maxOf(temperature) - minOf(temperature),
		},
	}

	switch eventType {
	case models.EventRain, models.EventFlood:
		m := analyzeRainfallEvent(win)
		result.RainEvent = &m
	case models.EventDrought:
		m := analyzeDroughtEvent(rainfall, temperature, humidity)
		result.DroughtEvent = &m
	}
	return result, nil
}

// analyzeRainfallEvent derives rain/flood metrics from per-day rainfall
// totals. Observations are grouped by calendar date so multiple readings on
// one day collapse into a single daily total.
func analyzeRainfallEvent(win models.HistoricalWindow) models.RainEventMetrics {
	byDate := make(map[string]float64)
	for _, obs := range win {
		byDate[obs.Date.Format(models.DateLayout)] += obs.RainfallMM
	}
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	dailyTotals := make([]float64, len(dates))
	for i, d := range dates {
		dailyTotals[i] = byDate[d]
	}

	peak := maxOf(dailyTotals)
	normal := mean(dailyTotals) + stddev(dailyTotals)
	above := 0
	for _, t := range dailyTotals {
		if t > normal {
			above++
		}
	}

	return models.RainEventMetrics{
		PeakDailyRainfall:        peak,
		RainfallIntensity:        peak / 24,
		ExtremeRainfallThreshold: percentile(dailyTotals, extremeRainfallPercentile),
		DaysAboveNormal:          above,
		TotalPeriodRainfall:      sum(dailyTotals),
	}
}

func analyzeDroughtEvent(rainfall, temperature, humidity []float64) models.DroughtEventMetrics {
	return models.DroughtEventMetrics{
		DrySpellLength:     longestRunBelow(rainfall, DryDayThresholdMM),
		TotalRainfall:      sum(rainfall),
		AvgDailyRainfall:   mean(rainfall),
		DaysBelowThreshold: countBelow(rainfall, DryDayThresholdMM),
		HumidityTrend:      meanDelta(humidity),
		TemperatureAnomaly: temperatureAnomaly(temperature),
	}
}

// temperatureAnomaly is the mean deviation of each day's temperature from
// its own trailing 7-day rolling mean. The first six days have no full
// window and contribute nothing to the mean rather than counting as zero.
func temperatureAnomaly(temps []float64) float64 {
	if len(temps) < rollingDays {
		return 0
	}
	var total float64
	var n int
	for i := rollingDays - 1; i < len(temps); i++ {
		rolling := mean(temps[i-rollingDays+1 : i+1])
		total += temps[i] - rolling
		n++
	}
	return total / float64(n)
}
