// Package classify maps derived weather metrics and claimed severity to a
// validation verdict. Pure functions, no side effects: identical inputs
// always produce the identical verdict string.
package classify

import "github.com/agroshield/claim-validation-service/internal/models"

// Rainfall intensity (mm/hour) above which a severe claim validates on
// intensity alone.
const highIntensityMMPerHour = 10

// Total period rainfall (mm) under which a drought claim may partially
// validate.
const lowTotalRainfallMM = 5

// Verdict applies the event-specific rule list to the analysis result.
// Rules are strictly ordered; the first match wins and no rule is
// re-evaluated after a match.
func Verdict(result models.AnalysisResult, eventType models.EventType, severity models.Severity) string {
	switch eventType {
	case models.EventRain, models.EventFlood:
		if result.RainEvent == nil {
			return models.StatusUnableInsufficientData
		}
		return rainfallVerdict(*result.RainEvent, severity)
	case models.EventDrought:
		if result.DroughtEvent == nil {
			return models.StatusUnableInsufficientData
		}
		return droughtVerdict(*result.DroughtEvent, severity)
	default:
		return models.StatusUnableUnknownEventType
	}
}

func rainfallVerdict(m models.RainEventMetrics, severity models.Severity) string {
	threshold := m.ExtremeRainfallThreshold
	switch {
	case m.PeakDailyRainfall > threshold*1.5:
		return models.StatusValidatedExtremeRainfall
	case m.PeakDailyRainfall > threshold && (severity == models.SeverityModerate || severity == models.SeveritySevere):
		return models.StatusValidatedSignificantRain
	case m.RainfallIntensity > highIntensityMMPerHour && severity == models.SeveritySevere:
		return models.StatusValidatedHighIntensityRain
	case m.PeakDailyRainfall > threshold*0.75:
		return models.StatusPartiallyValidatedRain
	default:
		return models.StatusInvalidRainBelowThreshold
	}
}

func droughtVerdict(m models.DroughtEventMetrics, severity models.Severity) string {
	switch {
	case m.DrySpellLength >= 14 && severity == models.SeveritySevere:
		return models.StatusValidatedSevereDrought
	case m.DrySpellLength >= 7 && m.DaysBelowThreshold >= 5:
		return models.StatusValidatedModerateDrought
	case m.TotalRainfall < lowTotalRainfallMM && m.DrySpellLength >= 5:
		return models.StatusPartiallyValidatedDrought
	default:
		return models.StatusInvalidDroughtIndicators
	}
}
