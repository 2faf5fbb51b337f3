// Package engine orchestrates claim validation: input checks, window-size
// policy, window assembly, statistical analysis, and classification. Each
// stage is a possible terminal exit; data flows strictly downward.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/agroshield/claim-validation-service/internal/analysis"
	"github.com/agroshield/claim-validation-service/internal/classify"
	"github.com/agroshield/claim-validation-service/internal/models"
	"github.com/agroshield/claim-validation-service/internal/observability"
	"github.com/agroshield/claim-validation-service/internal/validation"
	"github.com/agroshield/claim-validation-service/internal/window"
)

const (
	// DefaultMinDroughtDays is the minimum lookback a drought claim must
	// request before the engine will evaluate it.
	DefaultMinDroughtDays = 7

	monthlyWindowDays   = 30
	yesterdayWindowDays = 2 // claim day plus the day before
	defaultWindowDays   = 1
)

// Engine validates claims against observed weather. Stateless between
// calls; safe for concurrent use.
type Engine struct {
	builder        *window.Builder
	minDroughtDays int
	maxWindowDays  int
	logger         *zap.Logger
}

// New creates an Engine. minDroughtDays <= 0 falls back to
// DefaultMinDroughtDays; maxWindowDays <= 0 disables the window cap.
func New(builder *window.Builder, minDroughtDays, maxWindowDays int, logger *zap.Logger) *Engine {
	if minDroughtDays <= 0 {
		minDroughtDays = DefaultMinDroughtDays
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		builder:        builder,
		minDroughtDays: minDroughtDays,
		maxWindowDays:  maxWindowDays,
		logger:         logger,
	}
}

// AnalyzeClaim validates one claim end to end. Every failure path returns a
// structured verdict; nothing here panics or surfaces a transport error to
// the caller.
func (e *Engine) AnalyzeClaim(ctx context.Context, claim models.Claim) models.ValidationVerdict {
	start := time.Now()

	if verdict, rejected := e.rejectInvalidInput(claim); rejected {
		observability.ObserveClaimValidated(verdict.Status, time.Since(start))
		return verdict
	}

	days := e.analysisPeriod(claim)
	win, err := e.builder.Build(ctx, claim.Location, claim.Date, days)
	if err != nil {
		e.logger.Warn("window build aborted", zap.String("location", claim.Location), zap.Error(err))
	}
	if len(win) == 0 {
		verdict := models.ValidationVerdict{
			Status:       models.StatusUnableToValidate,
			ErrorMessage: "No weather data available",
		}
		observability.ObserveClaimValidated(verdict.Status, time.Since(start))
		return verdict
	}

	result, err := analysis.Analyze(win, claim.EventType)
	if err != nil {
		// Analyze fails only on an empty window, which was handled above.
		verdict := models.ValidationVerdict{
			Status:       models.StatusUnableToValidate,
			ErrorMessage: "No weather data available",
		}
		observability.ObserveClaimValidated(verdict.Status, time.Since(start))
		return verdict
	}

	status := classify.Verdict(result, claim.EventType, claim.Severity)
	verdict := models.ValidationVerdict{
		Status:     status,
		Analysis:   &result,
		DataPeriod: fmt.Sprintf("%d days", len(win)),
		Location:   claim.Location,
	}

	e.logger.Info("claim validated",
		zap.String("location", claim.Location),
		zap.String("event_type", string(claim.EventType)),
		zap.String("severity", string(claim.Severity)),
		zap.Int("window_days", len(win)),
		zap.String("status", status))
	observability.ObserveClaimValidated(status, time.Since(start))
	return verdict
}

// rejectInvalidInput applies stage one of the state machine. A rejected
// claim produces an Invalid Claim verdict and zero provider calls.
func (e *Engine) rejectInvalidInput(claim models.Claim) (models.ValidationVerdict, bool) {
	if missing := validation.MissingClaimFields(claim); len(missing) > 0 {
		return models.ValidationVerdict{
			Status:       models.StatusInvalidClaim,
			ErrorMessage: "missing required claim fields: " + strings.Join(missing, ", "),
		}, true
	}
	if claim.EventType == models.EventDrought && claim.RequestedDays < e.minDroughtDays {
		return models.ValidationVerdict{
			Status:       models.StatusInvalidClaim,
			ErrorMessage: fmt.Sprintf("drought claims require minimum %d days of data", e.minDroughtDays),
		}, true
	}
	return models.ValidationVerdict{}, false
}

// analysisPeriod applies the window-size policy. Drought claims always get
// at least the drought minimum; "this month" descriptors widen to a month;
// "yesterday" covers the claim day plus the day before.
func (e *Engine) analysisPeriod(claim models.Claim) int {
	descriptor := strings.ToLower(strings.TrimSpace(claim.DateDescriptor))

	days := defaultWindowDays
	switch {
	case claim.EventType == models.EventDrought && descriptor == "this month":
		days = monthlyWindowDays
	case claim.EventType == models.EventDrought:
		days = claim.RequestedDays
		if days < e.minDroughtDays {
			days = e.minDroughtDays
		}
	case descriptor == "this month":
		days = monthlyWindowDays
	case descriptor == "yesterday":
		days = yesterdayWindowDays
	}

	if e.maxWindowDays > 0 && days > e.maxWindowDays {
		days = e.maxWindowDays
	}
	return days
}
