package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/agroshield/claim-validation-service/internal/engine"
	"github.com/agroshield/claim-validation-service/internal/extract"
	"github.com/agroshield/claim-validation-service/internal/gateway"
	"github.com/agroshield/claim-validation-service/internal/lifecycle"
	"github.com/agroshield/claim-validation-service/internal/models"
	"github.com/agroshield/claim-validation-service/internal/validation"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	engine         *engine.Engine
	gateway        gateway.WeatherGateway
	extractor      *extract.Extractor
	logger         *zap.Logger
	locationMaxLen int
	// cachePing, when set, is called to check cache reachability. Used when
	// the backend is memcached.
	cachePing func() error
}

// NewHandler returns a new Handler.
func NewHandler(eng *engine.Engine, gw gateway.WeatherGateway, extractor *extract.Extractor, logger *zap.Logger, locationMaxLen int, cachePing func() error) *Handler {
	if locationMaxLen <= 0 {
		locationMaxLen = 100
	}
	return &Handler{
		engine:         eng,
		gateway:        gw,
		extractor:      extractor,
		logger:         logger,
		locationMaxLen: locationMaxLen,
		cachePing:      cachePing,
	}
}

// weatherResponse is the provider-shaped lookup payload: numeric fields
// rendered back into their unit-suffixed string forms.
type weatherResponse struct {
	Location    string `json:"location"`
	Date        string `json:"date"`
	Rainfall    string `json:"rainfall"`
	Temperature string `json:"temperature"`
	Humidity    string `json:"humidity"`
}

// GetWeather handles GET /weather?location=...&date=YYYY-MM-DD&hour=0-23.
// Date defaults to today, hour to noon.
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request) {
	location, err := validation.ValidateLocation(r.URL.Query().Get("location"), h.locationMaxLen)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_LOCATION", err.Error())
		return
	}

	date := time.Now().Truncate(24 * time.Hour)
	if raw := r.URL.Query().Get("date"); raw != "" {
		date, err = time.Parse(models.DateLayout, raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "INVALID_DATE", "date must be YYYY-MM-DD")
			return
		}
	}

	hour := gateway.DefaultHour
	if raw := r.URL.Query().Get("hour"); raw != "" {
		hour, err = strconv.Atoi(raw)
		if err != nil || hour < 0 || hour > 23 {
			writeError(w, r, http.StatusBadRequest, "INVALID_HOUR", "hour must be an integer 0-23")
			return
		}
	}

	obs, err := h.gateway.Fetch(r.Context(), location, date, hour)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, weatherResponse{
		Location:    obs.Location,
		Date:        obs.Date.Format(models.DateLayout),
		Rainfall:    gateway.FormatUnitValue(obs.RainfallMM, gateway.UnitMillimeters),
		Temperature: gateway.FormatUnitValue(obs.TemperatureC, gateway.UnitCelsius),
		Humidity:    gateway.FormatUnitValue(obs.HumidityPct, gateway.UnitPercent),
	})
}

// validateClaimRequest accepts either free text or a structured claim.
type validateClaimRequest struct {
	Text           string `json:"text,omitempty"`
	Location       string `json:"location,omitempty"`
	Date           string `json:"date,omitempty"`
	EventType      string `json:"event_type,omitempty"`
	Severity       string `json:"severity,omitempty"`
	Days           int    `json:"days,omitempty"`
	DateDescriptor string `json:"date_descriptor,omitempty"`
}

// ValidateClaim handles POST /claims/validate. Verdicts are data, not
// transport errors: an invalid or unverifiable claim still returns 200 with
// its structured verdict.
func (h *Handler) ValidateClaim(w http.ResponseWriter, r *http.Request) {
	var req validateClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_REQUEST", "request body must be valid JSON")
		return
	}

	claim, err := h.buildClaim(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	verdict := h.engine.AnalyzeClaim(r.Context(), claim)
	writeJSON(w, http.StatusOK, verdict)
}

func (h *Handler) buildClaim(req validateClaimRequest) (models.Claim, error) {
	if req.Text != "" {
		return h.extractor.Extract(req.Text), nil
	}

	claim := models.Claim{
		Location:       req.Location,
		RequestedDays:  req.Days,
		DateDescriptor: req.DateDescriptor,
	}
	if req.Date != "" {
		date, err := time.Parse(models.DateLayout, req.Date)
		if err != nil {
			return models.Claim{}, errors.New("date must be YYYY-MM-DD")
		}
		claim.Date = date
	}
	// Absent enum fields stay zero so the engine reports them as missing;
	// present but unrecognized values degrade inside the parsers.
	if req.EventType != "" {
		claim.EventType = models.ParseEventType(req.EventType)
	}
	if req.Severity != "" {
		claim.Severity = models.ParseSeverity(req.Severity)
	}
	return claim, nil
}

// GetHealth handles GET /health.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	statusCode := http.StatusOK
	checks := make(map[string]string)

	if lifecycle.IsShuttingDown() {
		status = "shutting-down"
		statusCode = http.StatusServiceUnavailable
	} else {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if err := h.gateway.Ping(ctx); err != nil {
			checks["weatherProvider"] = "unhealthy"
			status = "degraded"
			statusCode = http.StatusServiceUnavailable
		} else {
			checks["weatherProvider"] = "healthy"
		}
		if h.cachePing != nil {
			if h.cachePing() == nil {
				checks["cache"] = "healthy"
			} else {
				checks["cache"] = "unhealthy"
			}
		}
	}

	writeJSON(w, statusCode, map[string]interface{}{
		"status":    status,
		"service":   "claim-validation-service",
		"checks":    checks,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// writeJSON writes a JSON response with the specified HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an error response in the standard error format with
// code, message, and requestId (correlation ID) if available.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	corrID := ""
	if v := r.Context().Value(correlationIDKey); v != nil {
		corrID, _ = v.(string)
	}
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":      code,
			"message":   message,
			"requestId": corrID,
		},
	})
}

// writeUpstreamError maps a gateway failure to a 503 response.
func writeUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, r, http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "Unable to fetch weather data")
	if logger := loggerFromContext(r.Context()); logger != nil {
		logger.Debug("upstream error", zap.Error(err))
	}
}
