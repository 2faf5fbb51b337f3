package extract

import (
	"testing"
	"time"

	"github.com/agroshield/claim-validation-service/internal/models"
)

var baseDate = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func newTestExtractor() *Extractor {
	return New([]string{"Lagos", "Kano", "Port Harcourt"}, func() time.Time { return baseDate })
}

func TestExtract_RainClaim(t *testing.T) {
	claim := newTestExtractor().Extract("Heavy rain destroyed my crops yesterday in Lagos")

	if claim.EventType != models.EventRain {
		t.Errorf("EventType = %q, want rain", claim.EventType)
	}
	if claim.Severity != models.SeveritySevere {
		t.Errorf("Severity = %q, want severe (heavy grades as severe)", claim.Severity)
	}
	if claim.Location != "Lagos" {
		t.Errorf("Location = %q, want Lagos", claim.Location)
	}
	if claim.DateDescriptor != "yesterday" {
		t.Errorf("DateDescriptor = %q, want yesterday", claim.DateDescriptor)
	}
	if want := baseDate.AddDate(0, 0, -1); !claim.Date.Equal(want) {
		t.Errorf("Date = %s, want %s", claim.Date, want)
	}
	if claim.RequestedDays != 1 {
		t.Errorf("RequestedDays = %d, want 1", claim.RequestedDays)
	}
}

func TestExtract_DroughtThisMonth(t *testing.T) {
	claim := newTestExtractor().Extract("Severe drought this month in Kano")

	if claim.EventType != models.EventDrought {
		t.Errorf("EventType = %q, want drought", claim.EventType)
	}
	if claim.Severity != models.SeveritySevere {
		t.Errorf("Severity = %q, want severe", claim.Severity)
	}
	if claim.RequestedDays != 30 {
		t.Errorf("RequestedDays = %d, want 30", claim.RequestedDays)
	}
	if want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC); !claim.Date.Equal(want) {
		t.Errorf("Date = %s, want first of month %s", claim.Date, want)
	}
}

func TestExtract_ShortTermFloodDegrades(t *testing.T) {
	// A single-day text cannot support a long-duration event.
	claim := newTestExtractor().Extract("flood today in Lagos")

	if claim.EventType != models.EventOther {
		t.Errorf("EventType = %q, want other (flood needs more than one day)", claim.EventType)
	}
	if claim.Severity != models.SeverityUnknown {
		t.Errorf("Severity = %q, want unknown", claim.Severity)
	}
}

func TestExtract_DroughtMinimumLookback(t *testing.T) {
	claim := newTestExtractor().Extract("mild drought recently in Kano")
	if claim.RequestedDays != 7 {
		t.Errorf("RequestedDays = %d, want 7 (drought floor)", claim.RequestedDays)
	}
}

func TestExtract_UnmatchedFieldsDegrade(t *testing.T) {
	claim := newTestExtractor().Extract("something odd happened")

	if claim.EventType != models.EventOther {
		t.Errorf("EventType = %q, want other", claim.EventType)
	}
	if claim.Severity != models.SeverityUnknown {
		t.Errorf("Severity = %q, want unknown", claim.Severity)
	}
	if claim.Location != "" {
		t.Errorf("Location = %q, want empty", claim.Location)
	}
	if !claim.Date.Equal(baseDate) {
		t.Errorf("Date = %s, want base date", claim.Date)
	}
	if claim.RequestedDays != 7 {
		t.Errorf("RequestedDays = %d, want default 7", claim.RequestedDays)
	}
}

func TestExtract_WordBoundaries(t *testing.T) {
	claim := newTestExtractor().Extract("the grain harvest was unrestrained")
	if claim.EventType != models.EventOther {
		t.Errorf("EventType = %q; \"rain\" must not match inside other words", claim.EventType)
	}
}

func TestExtract_MultiWordLocation(t *testing.T) {
	claim := newTestExtractor().Extract("storms hit Port Harcourt last week")
	if claim.Location != "Port Harcourt" {
		t.Errorf("Location = %q, want Port Harcourt", claim.Location)
	}
	if claim.EventType != models.EventOther {
		t.Errorf("EventType = %q, want other (storms are outside the core event set)", claim.EventType)
	}
	if claim.RequestedDays != 7 {
		t.Errorf("RequestedDays = %d, want 7", claim.RequestedDays)
	}
}
