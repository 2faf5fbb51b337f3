package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/agroshield/claim-validation-service/internal/cache"
	"github.com/agroshield/claim-validation-service/internal/models"
	"github.com/agroshield/claim-validation-service/internal/observability"
)

// DefaultHour is the hour of day sampled when the caller does not specify one.
const DefaultHour = 12

// ErrDataUnavailable marks a day for which no observation could be obtained:
// transport failure, non-2xx response, or a malformed payload. Callers treat
// it as an absence, never as a fatal error, and must not retry.
var ErrDataUnavailable = errors.New("weather data unavailable")

// WeatherGateway fetches a single point-in-time observation for a location,
// date and hour.
type WeatherGateway interface {
	Fetch(ctx context.Context, location string, date time.Time, hour int) (models.Observation, error)
	Ping(ctx context.Context) error
}

// HTTPGateway wraps the external weather provider endpoint and normalizes
// its unit-suffixed string fields into floats. Observations are immutable
// once published, so successful fetches are kept in a cache-aside layer.
type HTTPGateway struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	client  *http.Client
	cache   cache.Cache
	ttl     time.Duration
	logger  *zap.Logger
}

// NewHTTPGateway creates a gateway against the provider base URL. apiKey may
// be empty when the provider does not require one. obsCache may be nil to
// disable caching.
func NewHTTPGateway(baseURL, apiKey string, timeout time.Duration, obsCache cache.Cache, ttl time.Duration, logger *zap.Logger) (*HTTPGateway, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("provider base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid provider URL: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
		cache:   obsCache,
		ttl:     ttl,
		logger:  logger,
	}, nil
}

// providerResponse is the provider's wire shape: unit-suffixed strings plus
// an error field signaling lookup failure.
type providerResponse struct {
	Location    string `json:"location"`
	Date        string `json:"date"`
	Rainfall    string `json:"rainfall"`
	Temperature string `json:"temperature"`
	Humidity    string `json:"humidity"`
	Error       string `json:"error"`
}

// Fetch returns the observation for one location/date/hour, or an error
// wrapping ErrDataUnavailable. Single-day failures are not retried; a failed
// day is an absence the caller drops from its window.
func (g *HTTPGateway) Fetch(ctx context.Context, location string, date time.Time, hour int) (models.Observation, error) {
	if hour < 0 || hour > 23 {
		hour = DefaultHour
	}
	key := cacheKey(location, date, hour)

	if g.cache != nil {
		cached, ok, err := g.cache.Get(ctx, key)
		if err != nil {
			observability.CacheErrorsTotal.WithLabelValues("get").Inc()
		} else if ok {
			observability.CacheHitsTotal.Inc()
			return cached, nil
		}
	}

	obs, err := g.callProvider(ctx, location, date, hour)
	if err != nil {
		return models.Observation{}, err
	}

	if g.cache != nil {
		if err := g.cache.Set(ctx, key, obs, g.ttl); err != nil {
			observability.CacheErrorsTotal.WithLabelValues("set").Inc()
			g.logger.Warn("observation cache set failed", zap.String("key", key), zap.Error(err))
		}
	}
	return obs, nil
}

func (g *HTTPGateway) callProvider(ctx context.Context, location string, date time.Time, hour int) (models.Observation, error) {
	start := time.Now()

	reqCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	req, err := g.buildRequest(reqCtx, location, date, hour)
	if err != nil {
		observability.ProviderCallsTotal.WithLabelValues("error").Inc()
		return models.Observation{}, fmt.Errorf("%w: build request: %v", ErrDataUnavailable, err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		duration := time.Since(start).Seconds()
		observability.ProviderCallsTotal.WithLabelValues("error").Inc()
		observability.ProviderCallDuration.WithLabelValues("error").Observe(duration)
		return models.Observation{}, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer resp.Body.Close()

	duration := time.Since(start).Seconds()
	status := statusLabel(resp.StatusCode)
	observability.ProviderCallsTotal.WithLabelValues(status).Inc()
	observability.ProviderCallDuration.WithLabelValues(status).Observe(duration)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.Observation{}, fmt.Errorf("%w: HTTP %d", ErrDataUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Observation{}, fmt.Errorf("%w: read body: %v", ErrDataUnavailable, err)
	}

	var payload providerResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.Observation{}, fmt.Errorf("%w: malformed payload: %v", ErrDataUnavailable, err)
	}
	if payload.Error != "" {
		return models.Observation{}, fmt.Errorf("%w: provider error: %s", ErrDataUnavailable, payload.Error)
	}

	return models.Observation{
		Location:     location,
		Date:         date,
		RainfallMM:   ParseUnitValue(payload.Rainfall, UnitMillimeters),
		TemperatureC: ParseUnitValue(payload.Temperature, UnitCelsius),
		HumidityPct:  ParseUnitValue(payload.Humidity, UnitPercent),
	}, nil
}

func (g *HTTPGateway) buildRequest(ctx context.Context, location string, date time.Time, hour int) (*http.Request, error) {
	u, err := url.Parse(g.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid provider URL: %w", err)
	}

	params := url.Values{}
	params.Set("location", location)
	params.Set("date", date.Format(models.DateLayout))
	params.Set("hour", strconv.Itoa(hour))
	if g.apiKey != "" {
		params.Set("key", g.apiKey)
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// Ping checks provider reachability for health reporting. Any HTTP response
// counts as reachable; only transport failures are errors.
func (g *HTTPGateway) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL, nil)
	if err != nil {
		return fmt.Errorf("build ping request: %w", err)
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("provider unreachable: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func cacheKey(location string, date time.Time, hour int) string {
	return strings.ToLower(strings.TrimSpace(location)) + "|" + date.Format(models.DateLayout) + "|" + strconv.Itoa(hour)
}

func statusLabel(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "success"
	case statusCode >= 400 && statusCode < 500:
		return "client_error"
	case statusCode >= 500:
		return "server_error"
	default:
		return "error"
	}
}
