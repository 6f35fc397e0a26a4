// Package remote fetches weather records from the observation network's HTTP
// API. Every call is bounded by a hard timeout and classified into the
// domain's failure taxonomy so the resolver can fall back to bundled data.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/vietmet/weathercore/internal/domain"
	"github.com/vietmet/weathercore/internal/observability"
)

// placeholderBaseURL is the sentinel some builds ship instead of a real
// endpoint; it disables remote access just like an empty value.
const placeholderBaseURL = "https://api.example.com"

// Client talks to the observation API. The zero timeout fields are invalid;
// use NewClient.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	breaker     *gobreaker.CircuitBreaker
	timeout     time.Duration
	bulkTimeout time.Duration
	metrics     *observability.Metrics
	logger      *slog.Logger
}

// NewClient creates an observation API client. timeout bounds point queries;
// bulkTimeout bounds list endpoints (points, overview, flood risk).
func NewClient(baseURL string, timeout, bulkTimeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "observation-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{},
		breaker:     breaker,
		timeout:     timeout,
		bulkTimeout: bulkTimeout,
		metrics:     metrics,
		logger:      logger,
	}
}

// Enabled reports whether a usable remote endpoint is configured: non-empty,
// not the placeholder, and carrying an http(s) scheme. A configuration check,
// not a liveness probe.
func (c *Client) Enabled() bool {
	return c.baseURL != "" &&
		c.baseURL != placeholderBaseURL &&
		strings.HasPrefix(c.baseURL, "http")
}

// Points fetches the known observation point list.
func (c *Client) Points(ctx context.Context) (*domain.PointsResponse, error) {
	return get[domain.PointsResponse](ctx, c, "/api/obs/latest", "points", c.bulkTimeout)
}

// Summary fetches the summary snapshot for one identifier.
func (c *Client) Summary(ctx context.Context, id string) (*domain.SummarySnapshot, error) {
	return get[domain.SummarySnapshot](ctx, c, "/api/obs/summary/"+id, "summary", c.timeout)
}

// Daily fetches the daily aggregate for one identifier and provider.
func (c *Client) Daily(ctx context.Context, id, provider string) (*domain.DailyAggregate, error) {
	path := fmt.Sprintf("/api/obs/daily/%s?provider=%s", id, provider)
	return get[domain.DailyAggregate](ctx, c, path, "daily", c.timeout)
}

// Timeseries fetches the per-timestep series for one identifier and provider
// over a look-back/look-ahead window of steps.
func (c *Client) Timeseries(ctx context.Context, id, provider string, back, fwd int) (*domain.TimeseriesSeries, error) {
	path := fmt.Sprintf("/api/obs/timeseries/%s?back=%d&fwd=%d&provider=%s", id, back, fwd, provider)
	return get[domain.TimeseriesSeries](ctx, c, path, "timeseries", c.timeout)
}

// Overview fetches the network-wide aggregate statistics.
func (c *Client) Overview(ctx context.Context) (*domain.Overview, error) {
	return get[domain.Overview](ctx, c, "/api/obs/overview", "overview", c.bulkTimeout)
}

// FloodRisk fetches the latest per-point flood risk list.
func (c *Client) FloodRisk(ctx context.Context) (*domain.FloodRiskList, error) {
	return get[domain.FloodRiskList](ctx, c, "/api/obs/flood_risk_latest", "flood_risk", c.bulkTimeout)
}

// get performs one bounded GET and decodes the body. The circuit breaker
// opens after repeated consecutive failures; an open breaker reads as a
// transport failure so callers fall back without waiting out the timeout.
func get[T any](ctx context.Context, c *Client, path, endpoint string, timeout time.Duration) (*T, error) {
	if !c.Enabled() {
		return nil, domain.ErrRemoteDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if reqErr != nil {
			return nil, reqErr
		}
		req.Header.Set("Accept", "application/json")

		resp, doErr := c.httpClient.Do(req)
		if doErr != nil {
			return nil, doErr
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &domain.TransportError{Status: resp.StatusCode}
		}

		var v T
		if decErr := json.NewDecoder(resp.Body).Decode(&v); decErr != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrParse, decErr)
		}
		return &v, nil
	})
	c.metrics.RemoteDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		err = classify(err, ctx)
		c.metrics.RemoteRequests.WithLabelValues(endpoint, outcome(err)).Inc()
		c.logger.Warn("remote fetch failed", "endpoint", endpoint, "error", err)
		return nil, err
	}

	c.metrics.RemoteRequests.WithLabelValues(endpoint, "success").Inc()
	return result.(*T), nil
}

// classify maps raw failures onto the domain taxonomy. Deadline expiry wins
// over whatever error the aborted transport reported.
func classify(err error, ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &domain.TransportError{Err: err}
	}
	var te *domain.TransportError
	if errors.As(err, &te) {
		return err
	}
	if errors.Is(err, domain.ErrParse) {
		return err
	}
	return &domain.TransportError{Err: err}
}

func outcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrTimeout):
		return "timeout"
	case errors.Is(err, domain.ErrParse):
		return "parse"
	default:
		return "transport"
	}
}
