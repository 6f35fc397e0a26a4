package remote

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietmet/weathercore/internal/domain"
	"github.com/vietmet/weathercore/internal/observability"
)

func testClient(baseURL string) *Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(baseURL, 2*time.Second, 5*time.Second, observability.NewMetricsForTesting(), logger)
}

func TestClient_Enabled(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    bool
	}{
		{"empty", "", false},
		{"placeholder", "https://api.example.com", false},
		{"non-http scheme", "ftp://api.weather.vn", false},
		{"https", "https://api.weather.vn", true},
		{"http", "http://localhost:9000", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, testClient(tt.baseURL).Enabled())
		})
	}
}

func TestClient_Summary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/obs/summary/pt-1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck
		w.Write([]byte(`{"found":true,"location":{"id":"pt-1","name":"Hà Nội"},"obs":{"valid_at":"2025-06-10T07:00:00Z","temp_c":30.4}}`))
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).Summary(context.Background(), "pt-1")
	require.NoError(t, err)
	assert.Equal(t, "pt-1", got.Location.ID)
	assert.InDelta(t, 30.4, got.Obs.TempC, 1e-9)
}

func TestClient_QueryParameters(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		//nolint:errcheck
		w.Write([]byte(`{"found":true}`))
	}))
	defer srv.Close()
	c := testClient(srv.URL)

	_, err := c.Daily(context.Background(), "pt-1", "XGBoost")
	require.NoError(t, err)
	assert.Equal(t, "/api/obs/daily/pt-1", gotPath)
	assert.Equal(t, "provider=XGBoost", gotQuery)

	_, err = c.Timeseries(context.Background(), "pt-1", "XGBoost", 48, 96)
	require.NoError(t, err)
	assert.Equal(t, "/api/obs/timeseries/pt-1", gotPath)
	assert.Equal(t, "back=48&fwd=96&provider=XGBoost", gotQuery)
}

func TestClient_Disabled(t *testing.T) {
	_, err := testClient("").Summary(context.Background(), "pt-1")
	assert.ErrorIs(t, err, domain.ErrRemoteDisabled)
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Summary(context.Background(), "pt-1")
	require.Error(t, err)

	var te *domain.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusBadGateway, te.Status)
}

func TestClient_ParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		//nolint:errcheck
		w.Write([]byte(`{"found": tru`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Summary(context.Background(), "pt-1")
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewClient(srv.URL, 20*time.Millisecond, 20*time.Millisecond, observability.NewMetricsForTesting(), logger)

	_, err := c.Summary(context.Background(), "pt-1")
	assert.ErrorIs(t, err, domain.ErrTimeout)
}

func TestClient_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	c := testClient(srv.URL)

	for i := 0; i < 6; i++ {
		//nolint:errcheck
		c.Summary(context.Background(), "pt-1")
	}

	// The sixth call must be rejected by the open breaker without
	// reaching the server.
	assert.Equal(t, 5, requests)

	var te *domain.TransportError
	_, err := c.Summary(context.Background(), "pt-1")
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 0, te.Status)
}
