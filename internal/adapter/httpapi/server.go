// Package httpapi exposes the normalized weather model over HTTP for display
// surfaces, plus health and metrics endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vietmet/weathercore/internal/domain"
	"github.com/vietmet/weathercore/internal/geoindex"
	"github.com/vietmet/weathercore/internal/resolver"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server routes display-surface requests to the geo index and resolver.
type Server struct {
	httpServer *http.Server
	resolver   *resolver.Resolver
	index      *geoindex.Index
	validate   *validator.Validate
	logger     *slog.Logger
}

// coordQuery carries the parsed lat/lon query parameters.
type coordQuery struct {
	Lat float64 `validate:"latitude"`
	Lon float64 `validate:"longitude"`
}

// NewServer creates the gateway with /v1 data routes and /healthz, /readyz,
// /metrics operational routes.
func NewServer(addr string, res *resolver.Resolver, index *geoindex.Index, ready ReadinessChecker, logger *slog.Logger) *Server {
	s := &Server{
		resolver: res,
		index:    index,
		validate: validator.New(),
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", handleReady(ready))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/weather", s.handleWeather)
		r.Get("/locations/search", s.handleSearch)
		r.Get("/locations/nearest", s.handleNearest)
		r.Get("/overview", s.handleOverview)
		r.Get("/flood-risk", s.handleFloodRisk)
	})

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleWeather resolves and returns the unified weather record. Callers
// supply either coordinates (resolved to the nearest known point) or an
// explicit location_id, plus an optional provider tag.
func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	provider := q.Get("provider")

	loc := domain.Location{ID: q.Get("location_id")}
	if lat, lon, ok, err := s.coords(q.Get("lat"), q.Get("lon")); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	} else if ok {
		loc.Latitude, loc.Longitude = lat, lon
	} else if loc.ID == "" {
		writeError(w, http.StatusBadRequest, "lat and lon, or location_id, are required")
		return
	}

	if loc.ID == "" {
		s.index.Load(r.Context())
		point, ok := s.index.Nearest(loc.Latitude, loc.Longitude)
		if ok {
			loc.ID = point.ID
			loc.City = point.Name
		}
		// An empty index is not an error here: the resolver will fall back
		// to the default identifier's data.
	}

	weather, err := s.resolver.Fetch(r.Context(), loc, provider)
	if err != nil {
		if errors.Is(err, domain.ErrDataUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "weather data unavailable")
			return
		}
		s.logger.Error("weather resolution failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, weather)
}

// handleSearch matches observation points by display name.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.index.Load(r.Context())
	matches := s.index.Search(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, map[string]any{
		"count": len(matches),
		"data":  matches,
	})
}

// handleNearest resolves a coordinate to the nearest known point.
func (s *Server) handleNearest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, lon, ok, err := s.coords(q.Get("lat"), q.Get("lon"))
	if err != nil || !ok {
		writeError(w, http.StatusBadRequest, "valid lat and lon are required")
		return
	}

	s.index.Load(r.Context())
	point, found := s.index.Nearest(lat, lon)
	if !found {
		writeError(w, http.StatusNotFound, "no observation points loaded")
		return
	}
	writeJSON(w, http.StatusOK, point)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.resolver.Overview(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "overview data unavailable")
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (s *Server) handleFloodRisk(w http.ResponseWriter, r *http.Request) {
	risks, err := s.resolver.FloodRisk(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "flood risk data unavailable")
		return
	}
	writeJSON(w, http.StatusOK, risks)
}

// coords parses and validates optional lat/lon parameters. ok is false when
// both are absent; an error means they were present but unusable.
func (s *Server) coords(latStr, lonStr string) (lat, lon float64, ok bool, err error) {
	if latStr == "" && lonStr == "" {
		return 0, 0, false, nil
	}
	lat, err = strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, false, errors.New("lat must be a number")
	}
	lon, err = strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, false, errors.New("lon must be a number")
	}
	if err := s.validate.Struct(coordQuery{Lat: lat, Lon: lon}); err != nil {
		return 0, 0, false, errors.New("lat/lon out of range")
	}
	return lat, lon, true, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
