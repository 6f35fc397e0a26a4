// Package resolver decides, per request and per data shape, whether weather
// records come from the remote API or the bundled snapshots, and merges the
// resolved shapes into the unified model.
//
// The policy, applied to summary, daily, and timeseries independently:
// remote first when configured, bundled data on any remote failure
// (disabled, timeout, transport, parse, identifier mismatch), and a record
// is only accepted when it names the requested or the default identifier.
// Summary is the one shape whose absence is fatal; before giving up the
// whole pipeline is retried once under the default identifier.
package resolver

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/vietmet/weathercore/internal/domain"
	"github.com/vietmet/weathercore/internal/observability"
)

// Timeseries look-back/look-ahead window, in steps.
const (
	timeseriesBack = 48
	timeseriesFwd  = 96
)

// RemoteSource fetches records from the observation API.
type RemoteSource interface {
	Enabled() bool
	Summary(ctx context.Context, id string) (*domain.SummarySnapshot, error)
	Daily(ctx context.Context, id, provider string) (*domain.DailyAggregate, error)
	Timeseries(ctx context.Context, id, provider string, back, fwd int) (*domain.TimeseriesSeries, error)
	Overview(ctx context.Context) (*domain.Overview, error)
	FloodRisk(ctx context.Context) (*domain.FloodRiskList, error)
}

// BundledSource serves the packaged snapshots.
type BundledSource interface {
	Summary() *domain.SummarySnapshot
	Daily() *domain.DailyAggregate
	Timeseries() *domain.TimeseriesSeries
	Overview() *domain.Overview
	FloodRisk() *domain.FloodRiskList
}

// Resolver orchestrates per-shape source selection and normalization.
type Resolver struct {
	remote    RemoteSource
	bundled   BundledSource
	defaultID string
	provider  string
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// New creates a resolver. defaultID is the identifier the bundled snapshots
// describe; provider is the forecast model used when a request names none.
func New(remote RemoteSource, bundled BundledSource, defaultID, provider string, metrics *observability.Metrics, logger *slog.Logger) *Resolver {
	return &Resolver{
		remote:    remote,
		bundled:   bundled,
		defaultID: defaultID,
		provider:  provider,
		metrics:   metrics,
		logger:    logger,
	}
}

// Fetch resolves the three shapes for a location and merges them. Only an
// unresolvable summary is an error; daily and timeseries degrade to absent.
func (r *Resolver) Fetch(ctx context.Context, loc domain.Location, provider string) (domain.UnifiedWeather, error) {
	start := time.Now()
	defer func() {
		r.metrics.ResolveDuration.Observe(time.Since(start).Seconds())
	}()

	if provider == "" {
		provider = r.provider
	}
	id := loc.ID
	if id == "" {
		id = r.defaultID
	}

	summary, daily, series := r.resolveAll(ctx, id, provider)
	if summary == nil && id != r.defaultID {
		r.logger.Info("no data for requested identifier, retrying with default",
			"requested", id, "default", r.defaultID)
		summary, daily, series = r.resolveAll(ctx, r.defaultID, provider)
	}
	if summary == nil {
		r.metrics.ResolveFailures.Inc()
		return domain.UnifiedWeather{}, domain.ErrDataUnavailable
	}

	return domain.Merge(loc, summary, daily, series), nil
}

// resolveAll runs the three shape resolutions concurrently. They are
// independent; each carries its own timeout and failing one never cancels
// the others.
func (r *Resolver) resolveAll(ctx context.Context, id, provider string) (*domain.SummarySnapshot, *domain.DailyAggregate, *domain.TimeseriesSeries) {
	var (
		wg      sync.WaitGroup
		summary *domain.SummarySnapshot
		daily   *domain.DailyAggregate
		series  *domain.TimeseriesSeries
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		summary = resolve(r, "summary", id,
			func() (*domain.SummarySnapshot, error) { return r.remote.Summary(ctx, id) },
			r.bundled.Summary,
			func(s *domain.SummarySnapshot) string { return s.Location.ID })
	}()
	go func() {
		defer wg.Done()
		daily = resolve(r, "daily", id,
			func() (*domain.DailyAggregate, error) { return r.remote.Daily(ctx, id, provider) },
			r.bundled.Daily,
			func(d *domain.DailyAggregate) string { return d.Location.ID })
	}()
	go func() {
		defer wg.Done()
		series = resolve(r, "timeseries", id,
			func() (*domain.TimeseriesSeries, error) {
				return r.remote.Timeseries(ctx, id, provider, timeseriesBack, timeseriesFwd)
			},
			r.bundled.Timeseries,
			func(t *domain.TimeseriesSeries) string { return t.Location.ID })
	}()
	wg.Wait()

	return summary, daily, series
}

// resolve applies the per-shape policy: remote when configured, bundled on
// any remote failure, and identifier acceptance on whichever record arrives.
// Returns nil when neither source yields an acceptable record.
func resolve[T any](r *Resolver, shape, id string, fromRemote func() (*T, error), fromBundled func() *T, recordID func(*T) string) *T {
	rec, err := fromRemote()
	if err == nil && rec == nil {
		// Nothing promises a non-nil record on a nil error; read it as a
		// malformed response.
		err = domain.ErrParse
	}
	if err == nil {
		if r.accepts(recordID(rec), id) {
			return rec
		}
		err = domain.ErrIdentifierMismatch
	}
	if !errors.Is(err, domain.ErrRemoteDisabled) {
		r.logger.Debug("remote record rejected, falling back",
			"shape", shape, "id", id, "error", err)
		r.metrics.ShapeFallbacks.WithLabelValues(shape).Inc()
	}

	if rec := fromBundled(); rec != nil && r.accepts(recordID(rec), id) {
		return rec
	}
	return nil
}

// accepts reports whether a record naming recID satisfies a request for
// reqID. The default identifier is always acceptable: the bundled snapshots
// describe it, and the API answers with it for unknown points.
func (r *Resolver) accepts(recID, reqID string) bool {
	return recID == reqID || recID == r.defaultID
}

// CheckReadiness reports whether at least one data source can serve a
// summary: a configured remote endpoint, or a bundled summary that parses.
func (r *Resolver) CheckReadiness(_ context.Context) error {
	if r.remote.Enabled() || r.bundled.Summary() != nil {
		return nil
	}
	return errors.New("no weather data source available")
}

// Overview returns the network-wide aggregate, remote first, bundled on
// failure. Pass-through: no normalization.
func (r *Resolver) Overview(ctx context.Context) (*domain.Overview, error) {
	if rec, err := r.remote.Overview(ctx); err == nil && rec != nil {
		return rec, nil
	} else if !errors.Is(err, domain.ErrRemoteDisabled) {
		r.metrics.ShapeFallbacks.WithLabelValues("overview").Inc()
	}
	if rec := r.bundled.Overview(); rec != nil {
		return rec, nil
	}
	return nil, domain.ErrDataUnavailable
}

// FloodRisk returns the latest flood risk list, remote first, bundled on
// failure. Pass-through: no normalization.
func (r *Resolver) FloodRisk(ctx context.Context) (*domain.FloodRiskList, error) {
	if rec, err := r.remote.FloodRisk(ctx); err == nil && rec != nil {
		return rec, nil
	} else if !errors.Is(err, domain.ErrRemoteDisabled) {
		r.metrics.ShapeFallbacks.WithLabelValues("flood_risk").Inc()
	}
	if rec := r.bundled.FloodRisk(); rec != nil {
		return rec, nil
	}
	return nil, domain.ErrDataUnavailable
}
