// Package geoindex resolves arbitrary coordinates to known observation point
// identifiers. It stands in for reverse geocoding: the point list is loaded
// once per process and queried by great-circle distance or display name.
package geoindex

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/vietmet/weathercore/internal/domain"
	"github.com/vietmet/weathercore/internal/observability"
)

// PointLister fetches the known-point list from the network.
type PointLister interface {
	Enabled() bool
	Points(ctx context.Context) (*domain.PointsResponse, error)
}

// BundledPoints serves the bundled point list used when the network source is
// disabled or failing.
type BundledPoints interface {
	Points() *domain.PointsResponse
}

// Index is the process-lifetime observation point cache. The first Load wins,
// including a failed one: failure is cached as an empty list and not retried
// until Invalidate or process restart.
type Index struct {
	remote  PointLister
	bundled BundledPoints
	metrics *observability.Metrics
	logger  *slog.Logger

	mu     sync.Mutex
	loaded bool
	points []domain.ObservationPoint
}

// New creates an unloaded index.
func New(remote PointLister, bundled BundledPoints, metrics *observability.Metrics, logger *slog.Logger) *Index {
	return &Index{remote: remote, bundled: bundled, metrics: metrics, logger: logger}
}

// Load populates the point cache on first call and is a no-op afterwards.
// The mutex is held for the duration of the fetch, so concurrent first
// callers serialize and at most one load is ever in flight.
func (idx *Index) Load(ctx context.Context) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.loaded {
		return
	}
	idx.points = idx.fetch(ctx)
	idx.loaded = true
	idx.metrics.GeoIndexPoints.Set(float64(len(idx.points)))
	idx.logger.Info("geo index loaded", "points", len(idx.points))
}

func (idx *Index) fetch(ctx context.Context) []domain.ObservationPoint {
	if idx.remote.Enabled() {
		resp, err := idx.remote.Points(ctx)
		if err == nil && resp != nil {
			return resp.Data
		}
		idx.logger.Warn("remote point list unavailable, using bundled list", "error", err)
	}
	if resp := idx.bundled.Points(); resp != nil {
		return resp.Data
	}
	return nil
}

// Invalidate clears the cache so the next Load fetches again. The only way,
// short of a restart, to recover from a first load that cached empty.
func (idx *Index) Invalidate() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.loaded = false
	idx.points = nil
}

// Nearest returns the cached point closest to the query coordinate by
// haversine distance, or false if the cache is empty. Ties keep the earlier
// point in list order.
func (idx *Index) Nearest(lat, lon float64) (domain.ObservationPoint, bool) {
	idx.mu.Lock()
	points := idx.points
	idx.mu.Unlock()

	if len(points) == 0 {
		return domain.ObservationPoint{}, false
	}
	best := points[0]
	bestDist := haversineKm(lat, lon, best.Lat, best.Lon)
	for _, p := range points[1:] {
		if d := haversineKm(lat, lon, p.Lat, p.Lon); d < bestDist {
			best = p
			bestDist = d
		}
	}
	return best, true
}

// Search returns the cached points whose display name contains the query,
// case-insensitively, matching the query both as given and with internal
// whitespace stripped. Queries below one character return nothing.
func (idx *Index) Search(query string) []domain.ObservationPoint {
	if len(query) < 1 {
		return []domain.ObservationPoint{}
	}
	idx.metrics.GeoIndexSearches.Inc()

	lower := strings.ToLower(query)
	stripped := strings.ReplaceAll(lower, " ", "")

	idx.mu.Lock()
	points := idx.points
	idx.mu.Unlock()

	matches := []domain.ObservationPoint{}
	for _, p := range points {
		name := strings.ToLower(p.Name)
		if strings.Contains(name, lower) || strings.Contains(name, stripped) {
			matches = append(matches, p)
		}
	}
	return matches
}

const earthRadiusKm = 6371.0

// haversineKm computes the great-circle distance between two WGS-84
// coordinates in kilometres.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLon := rad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
