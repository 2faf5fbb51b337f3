package models

// Verdict strings returned by the classifier and engine. These are part of
// the API response contract; keep them stable.
const (
	StatusInvalidClaim     = "Invalid Claim"
	StatusUnableToValidate = "Unable to Validate"

	StatusValidatedExtremeRainfall   = "Validated - Extreme Rainfall Event"
	StatusValidatedSignificantRain   = "Validated - Significant Rainfall"
	StatusValidatedHighIntensityRain = "Validated - High Intensity Rainfall"
	StatusPartiallyValidatedRain     = "Partially Validated - Moderate Rainfall"
	StatusInvalidRainBelowThreshold  = "Invalid - Rainfall Below Expected Threshold"

	StatusValidatedSevereDrought    = "Validated - Severe Drought Conditions"
	StatusValidatedModerateDrought  = "Validated - Moderate Drought Conditions"
	StatusPartiallyValidatedDrought = "Partially Validated - Mild Drought Conditions"
	StatusInvalidDroughtIndicators  = "Invalid - Insufficient Drought Indicators"

	StatusUnableInsufficientData = "Unable to Validate - Insufficient Data"
	StatusUnableUnknownEventType = "Unable to Validate - Unknown Event Type"
)

// ValidationVerdict is the final outcome of validating one claim. Created
// once per engine call and returned to the caller; never persisted.
type ValidationVerdict struct {
	Status       string          `json:"validation_status"`
	ErrorMessage string          `json:"error_message,omitempty"`
	Analysis     *AnalysisResult `json:"historical_analysis,omitempty"`
	DataPeriod   string          `json:"data_period,omitempty"`
	Location     string          `json:"location,omitempty"`
}
