// Package extract turns free-text claim descriptions ("heavy rain destroyed
// my crops yesterday in Lagos") into structured claims. The extractor is an
// explicitly constructed collaborator with no package-global state: build it
// once, reuse it across requests.
package extract

import (
	"strings"
	"time"

	"github.com/agroshield/claim-validation-service/internal/models"
)

// defaultDays is the lookback used when no time phrase matches.
const defaultDays = 7

// eventKeywords are the phrases recognized as event types, in match order.
// Words outside the rain/flood/drought core still match but classify as
// EventOther.
var eventKeywords = []string{
	"rains", "rain",
	"floods", "flood",
	"droughts", "drought",
	"storms", "storm",
	"hailstorm",
	"wildfires", "wildfire",
}

// severityKeywords are the phrases recognized as severity grades, in match
// order.
var severityKeywords = []string{
	"heavy", "mild", "severe", "intense", "light", "moderate", "strong", "extreme",
}

// timePhrase maps a relative time phrase to a lookback in days. Ordered:
// the first phrase found in the text wins.
type timePhrase struct {
	phrase string
	days   int
}

var timePhrases = []timePhrase{
	{"this month", 30},
	{"last month", 30},
	{"next month", 30},
	{"this week", 7},
	{"last week", 7},
	{"next week", 7},
	{"past week", 7},
	{"past few days", 3},
	{"last few days", 3},
	{"recently", 3},
	{"yesterday", 1},
	{"today", 1},
	{"tomorrow", 1},
}

// Extractor matches claim text against keyword tables and a location
// gazetteer. now supplies the base date for relative-date normalization.
type Extractor struct {
	locations []string
	now       func() time.Time
}

// New creates an Extractor over the given gazetteer. now may be nil, in
// which case time.Now is used.
func New(locations []string, now func() time.Time) *Extractor {
	if now == nil {
		now = time.Now
	}
	return &Extractor{locations: locations, now: now}
}

// Extract populates a Claim from free text. Unmatched fields keep their
// degraded defaults (EventOther, SeverityUnknown, empty location); the
// engine's own input validation decides whether the claim is usable.
func (e *Extractor) Extract(text string) models.Claim {
	lower := strings.ToLower(text)

	claim := models.Claim{
		Text:          text,
		EventType:     models.EventOther,
		Severity:      models.SeverityUnknown,
		RequestedDays: defaultDays,
	}

	for _, kw := range eventKeywords {
		if containsWord(lower, kw) {
			claim.EventType = models.ParseEventType(kw)
			break
		}
	}
	for _, kw := range severityKeywords {
		if containsWord(lower, kw) {
			claim.Severity = models.ParseSeverity(kw)
			break
		}
	}

	var descriptor string
	for _, tp := range timePhrases {
		if strings.Contains(lower, tp.phrase) {
			claim.RequestedDays = tp.days
			descriptor = tp.phrase
			break
		}
	}
	claim.DateDescriptor = descriptor
	claim.Date = e.normalizeDate(descriptor)

	for _, loc := range e.locations {
		if containsWord(lower, strings.ToLower(loc)) {
			claim.Location = loc
			break
		}
	}

	// Drought spans need a real lookback; a bare mention of "month" widens
	// the window the way the drought policy expects.
	if claim.EventType == models.EventDrought {
		if claim.RequestedDays < defaultDays {
			claim.RequestedDays = defaultDays
		}
		if strings.Contains(lower, "month") {
			claim.RequestedDays = 30
		}
	}

	// Single-day texts cannot support long-duration events.
	if claim.RequestedDays <= 1 && (claim.EventType == models.EventDrought || claim.EventType == models.EventFlood) {
		claim.EventType = models.EventOther
		claim.Severity = models.SeverityUnknown
	}

	return claim
}

// normalizeDate resolves a relative time phrase to an anchor date against
// the extractor's clock. Unknown phrases anchor on today.
func (e *Extractor) normalizeDate(descriptor string) time.Time {
	base := e.now().Truncate(24 * time.Hour)
	switch descriptor {
	case "yesterday":
		return base.AddDate(0, 0, -1)
	case "tomorrow":
		return base.AddDate(0, 0, 1)
	case "this month":
		return time.Date(base.Year(), base.Month(), 1, 0, 0, 0, 0, base.Location())
	case "last month":
		firstOfMonth := time.Date(base.Year(), base.Month(), 1, 0, 0, 0, 0, base.Location())
		return firstOfMonth.AddDate(0, -1, 0)
	case "next month":
		firstOfMonth := time.Date(base.Year(), base.Month(), 1, 0, 0, 0, 0, base.Location())
		return firstOfMonth.AddDate(0, 1, 0)
	default:
		return base
	}
}

// containsWord reports whether word appears in text on word boundaries, so
// "rain" does not match inside "grain".
func containsWord(text, word string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isWordRune(rune(text[start-1]))
		afterOK := end == len(text) || !isWordRune(rune(text[end]))
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
