package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/agroshield/claim-validation-service/internal/engine"
	"github.com/agroshield/claim-validation-service/internal/extract"
	"github.com/agroshield/claim-validation-service/internal/lifecycle"
	"github.com/agroshield/claim-validation-service/internal/models"
	"github.com/agroshield/claim-validation-service/internal/window"
)

// stubGateway serves a fixed observation, or a fixed error when err is set.
type stubGateway struct {
	obs     models.Observation
	err     error
	pingErr error
}

func (s *stubGateway) Fetch(ctx context.Context, location string, date time.Time, hour int) (models.Observation, error) {
	if s.err != nil {
		return models.Observation{}, s.err
	}
	obs := s.obs
	obs.Location = location
	obs.Date = date
	return obs, nil
}

func (s *stubGateway) Ping(ctx context.Context) error {
	return s.pingErr
}

func newTestHandler(gw *stubGateway) *Handler {
	logger := zap.NewNop()
	builder := window.NewBuilder(gw, 4, logger)
	eng := engine.New(builder, 7, 90, logger)
	extractor := extract.New([]string{"Lagos", "Kano"}, func() time.Time {
		return time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	})
	return NewHandler(eng, gw, extractor, logger, 100, nil)
}

func TestGetWeather_Success(t *testing.T) {
	gw := &stubGateway{obs: models.Observation{
		RainfallMM:   12.5,
		TemperatureC: 28.3,
		HumidityPct:  74,
	}}
	h := newTestHandler(gw)

	req := httptest.NewRequest(http.MethodGet, "/weather?location=Lagos&date=2024-03-15&hour=9", nil)
	w := httptest.NewRecorder()
	h.GetWeather(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", w.Code, w.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["location"] != "Lagos" {
		t.Errorf("location = %q, want Lagos", resp["location"])
	}
	if resp["date"] != "2024-03-15" {
		t.Errorf("date = %q, want 2024-03-15", resp["date"])
	}
	if resp["rainfall"] != "12.5 mm" {
		t.Errorf("rainfall = %q, want %q", resp["rainfall"], "12.5 mm")
	}
	if resp["temperature"] != "28.3°C" {
		t.Errorf("temperature = %q, want %q", resp["temperature"], "28.3°C")
	}
	if resp["humidity"] != "74%" {
		t.Errorf("humidity = %q, want %q", resp["humidity"], "74%")
	}
}

func TestGetWeather_BadInputs(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		wantCode string
	}{
		{"missing location", "/weather", "INVALID_LOCATION"},
		{"invalid location chars", "/weather?location=Lagos%3B+DROP", "INVALID_LOCATION"},
		{"bad date", "/weather?location=Lagos&date=15-03-2024", "INVALID_DATE"},
		{"bad hour", "/weather?location=Lagos&hour=24", "INVALID_HOUR"},
		{"non-numeric hour", "/weather?location=Lagos&hour=noon", "INVALID_HOUR"},
	}

	h := newTestHandler(&stubGateway{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			w := httptest.NewRecorder()
			h.GetWeather(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			var resp struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("error code = %q, want %q", resp.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestGetWeather_UpstreamFailure(t *testing.T) {
	h := newTestHandler(&stubGateway{err: errors.New("provider down")})

	req := httptest.NewRequest(http.MethodGet, "/weather?location=Lagos", nil)
	w := httptest.NewRecorder()
	h.GetWeather(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	if !strings.Contains(w.Body.String(), "UPSTREAM_UNAVAILABLE") {
		t.Errorf("body = %s, want UPSTREAM_UNAVAILABLE code", w.Body.String())
	}
}

func TestValidateClaim_StructuredBody(t *testing.T) {
	gw := &stubGateway{obs: models.Observation{
		RainfallMM:   80,
		TemperatureC: 26,
		HumidityPct:  90,
	}}
	h := newTestHandler(gw)

	body := `{"location":"Lagos","date":"2024-03-15","event_type":"rain","severity":"severe","days":3}`
	req := httptest.NewRequest(http.MethodPost, "/claims/validate", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ValidateClaim(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", w.Code, w.Body.String())
	}
	var verdict models.ValidationVerdict
	if err := json.Unmarshal(w.Body.Bytes(), &verdict); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if verdict.Status == "" {
		t.Fatal("verdict has empty validation_status")
	}
	if verdict.Analysis == nil {
		t.Error("expected historical_analysis in verdict")
	}
	if verdict.Location != "Lagos" {
		t.Errorf("location = %q, want Lagos", verdict.Location)
	}
}

func TestValidateClaim_FreeText(t *testing.T) {
	gw := &stubGateway{obs: models.Observation{
		RainfallMM:   60,
		TemperatureC: 27,
		HumidityPct:  88,
	}}
	h := newTestHandler(gw)

	body := `{"text":"Heavy rain destroyed my crops yesterday in Lagos"}`
	req := httptest.NewRequest(http.MethodPost, "/claims/validate", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ValidateClaim(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", w.Code, w.Body.String())
	}
	var verdict models.ValidationVerdict
	if err := json.Unmarshal(w.Body.Bytes(), &verdict); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if verdict.Location != "Lagos" {
		t.Errorf("location = %q, want Lagos", verdict.Location)
	}
}

func TestValidateClaim_IncompleteClaimIsVerdictNotError(t *testing.T) {
	h := newTestHandler(&stubGateway{})

	body := `{"location":"Lagos","date":"2024-03-15"}`
	req := httptest.NewRequest(http.MethodPost, "/claims/validate", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ValidateClaim(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (verdicts are data)", w.Code)
	}
	var verdict models.ValidationVerdict
	if err := json.Unmarshal(w.Body.Bytes(), &verdict); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if verdict.Status != models.StatusInvalidClaim {
		t.Errorf("status = %q, want %q", verdict.Status, models.StatusInvalidClaim)
	}
}

func TestValidateClaim_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"location":`},
		{"bad date", `{"location":"Lagos","date":"March 15"}`},
	}

	h := newTestHandler(&stubGateway{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/claims/validate", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.ValidateClaim(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestGetHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		h := newTestHandler(&stubGateway{})
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		h.GetHealth(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if !strings.Contains(w.Body.String(), `"status":"healthy"`) {
			t.Errorf("body = %s, want healthy", w.Body.String())
		}
	})

	t.Run("degraded when provider unreachable", func(t *testing.T) {
		h := newTestHandler(&stubGateway{pingErr: errors.New("connection refused")})
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		h.GetHealth(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", w.Code)
		}
		if !strings.Contains(w.Body.String(), `"status":"degraded"`) {
			t.Errorf("body = %s, want degraded", w.Body.String())
		}
	})

	t.Run("shutting down", func(t *testing.T) {
		lifecycle.SetShuttingDown(true)
		defer lifecycle.SetShuttingDown(false)

		h := newTestHandler(&stubGateway{})
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		h.GetHealth(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", w.Code)
		}
		if !strings.Contains(w.Body.String(), `"status":"shutting-down"`) {
			t.Errorf("body = %s, want shutting-down", w.Body.String())
		}
	})
}
