package models

import (
	"strings"
	"time"
)

// EventType classifies the weather event a claim asserts.
type EventType string

const (
	EventRain    EventType = "rain"
	EventFlood   EventType = "flood"
	EventDrought EventType = "drought"
	EventOther   EventType = "other"
)

// ParseEventType normalizes a raw event string to an EventType.
// Plural forms collapse to their singular event; anything unrecognized
// (storms, wildfires, free text) maps to EventOther.
func ParseEventType(s string) EventType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rain", "rains":
		return EventRain
	case "flood", "floods":
		return EventFlood
	case "drought", "droughts":
		return EventDrought
	default:
		return EventOther
	}
}

// Severity grades how strong the claimant says the event was.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
	SeverityUnknown  Severity = "unknown"
)

// ParseSeverity maps claimant wording onto the severity scale.
// Intensifiers (heavy, intense, strong, extreme) grade as severe,
// light grades as mild.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mild", "light":
		return SeverityMild
	case "moderate":
		return SeverityModerate
	case "severe", "heavy", "intense", "strong", "extreme":
		return SeveritySevere
	default:
		return SeverityUnknown
	}
}

// Claim is a structured assertion that a weather event affected a location
// on or around a date. Constructed by the extraction layer or supplied
// directly over the API; the engine re-validates required fields before use.
type Claim struct {
	Location       string
	Date           time.Time
	EventType      EventType
	Severity       Severity
	RequestedDays  int
	DateDescriptor string // e.g. "yesterday", "this month"; drives window sizing
	Text           string // original free text, when extracted
}
