// Package static serves the bundled point-in-time snapshots used when the
// remote API is disabled or unreachable. The snapshots mirror each remote
// response shape for exactly one default identifier and provider.
package static

import (
	"embed"
	"encoding/json"
	"log/slog"

	"github.com/vietmet/weathercore/internal/domain"
)

//go:embed data/*.json
var dataFS embed.FS

// Source loads bundled JSON snapshots. Every accessor returns nil when its
// snapshot is absent or malformed, never a partial structure.
type Source struct {
	logger *slog.Logger
}

// NewSource creates a bundled-data source.
func NewSource(logger *slog.Logger) *Source {
	return &Source{logger: logger}
}

// Points returns the bundled observation point list.
func (s *Source) Points() *domain.PointsResponse {
	return load[domain.PointsResponse](s, "latest.json")
}

// Summary returns the bundled summary snapshot.
func (s *Source) Summary() *domain.SummarySnapshot {
	return load[domain.SummarySnapshot](s, "summary.json")
}

// Daily returns the bundled daily aggregate. The bundle carries a single
// provider variant; provider selection only applies to remote fetches.
func (s *Source) Daily() *domain.DailyAggregate {
	return load[domain.DailyAggregate](s, "daily.json")
}

// Timeseries returns the bundled timeseries.
func (s *Source) Timeseries() *domain.TimeseriesSeries {
	return load[domain.TimeseriesSeries](s, "timeseries.json")
}

// Overview returns the bundled network-wide aggregate.
func (s *Source) Overview() *domain.Overview {
	return load[domain.Overview](s, "overview.json")
}

// FloodRisk returns the bundled flood risk list.
func (s *Source) FloodRisk() *domain.FloodRiskList {
	return load[domain.FloodRiskList](s, "flood_risk_latest.json")
}

func load[T any](s *Source, name string) *T {
	raw, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		s.logger.Warn("bundled snapshot missing", "file", name, "error", err)
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.logger.Warn("bundled snapshot malformed", "file", name, "error", err)
		return nil
	}
	return &v
}
