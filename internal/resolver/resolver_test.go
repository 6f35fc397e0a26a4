package resolver

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietmet/weathercore/internal/domain"
	"github.com/vietmet/weathercore/internal/observability"
)

const defaultID = "400a5792-7432-4ab5-a280-97dd91b21621"

type fakeRemote struct {
	enabled bool

	summary    *domain.SummarySnapshot
	summaryErr error
	daily      *domain.DailyAggregate
	dailyErr   error
	series     *domain.TimeseriesSeries
	seriesErr  error
	overview   *domain.Overview
	flood      *domain.FloodRiskList

	summaryCalls int
}

func (f *fakeRemote) Enabled() bool { return f.enabled }

func (f *fakeRemote) Summary(_ context.Context, _ string) (*domain.SummarySnapshot, error) {
	f.summaryCalls++
	if !f.enabled {
		return nil, domain.ErrRemoteDisabled
	}
	return f.summary, f.summaryErr
}

func (f *fakeRemote) Daily(_ context.Context, _, _ string) (*domain.DailyAggregate, error) {
	if !f.enabled {
		return nil, domain.ErrRemoteDisabled
	}
	return f.daily, f.dailyErr
}

func (f *fakeRemote) Timeseries(_ context.Context, _, _ string, _, _ int) (*domain.TimeseriesSeries, error) {
	if !f.enabled {
		return nil, domain.ErrRemoteDisabled
	}
	return f.series, f.seriesErr
}

func (f *fakeRemote) Overview(_ context.Context) (*domain.Overview, error) {
	if !f.enabled {
		return nil, domain.ErrRemoteDisabled
	}
	if f.overview == nil {
		return nil, domain.ErrParse
	}
	return f.overview, nil
}

func (f *fakeRemote) FloodRisk(_ context.Context) (*domain.FloodRiskList, error) {
	if !f.enabled {
		return nil, domain.ErrRemoteDisabled
	}
	if f.flood == nil {
		return nil, domain.ErrParse
	}
	return f.flood, nil
}

type fakeBundled struct {
	summary  *domain.SummarySnapshot
	daily    *domain.DailyAggregate
	series   *domain.TimeseriesSeries
	overview *domain.Overview
	flood    *domain.FloodRiskList
}

func (f *fakeBundled) Summary() *domain.SummarySnapshot     { return f.summary }
func (f *fakeBundled) Daily() *domain.DailyAggregate        { return f.daily }
func (f *fakeBundled) Timeseries() *domain.TimeseriesSeries { return f.series }
func (f *fakeBundled) Overview() *domain.Overview           { return f.overview }
func (f *fakeBundled) FloodRisk() *domain.FloodRiskList     { return f.flood }

func summaryFor(id string, temp float64) *domain.SummarySnapshot {
	return &domain.SummarySnapshot{
		Found:    true,
		Location: domain.PointRef{ID: id, Name: "Hà Nội", Lat: 21.0285, Lon: 105.8542},
		Obs: domain.Observation{
			ValidAt:       "2025-06-10T07:00:00Z",
			TempC:         temp,
			WindMS:        2.5,
			CloudcoverPct: 30,
		},
		Current: domain.SummaryText{SummaryText: "Trời nắng"},
	}
}

func newResolver(remote *fakeRemote, bundled *fakeBundled) *Resolver {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(remote, bundled, defaultID, "XGBoost", observability.NewMetricsForTesting(), logger)
}

func freezeAt(t *testing.T, at time.Time) {
	t.Helper()
	domain.SetClock(clockwork.NewFakeClockAt(at))
	t.Cleanup(func() { domain.SetClock(nil) })
}

func TestResolver_Fetch(t *testing.T) {
	freezeAt(t, time.Date(2025, 6, 10, 6, 30, 0, 0, time.UTC))

	t.Run("remote summary is used when it names the requested identifier", func(t *testing.T) {
		remote := &fakeRemote{enabled: true, summary: summaryFor("pt-1", 31.2)}
		bundled := &fakeBundled{summary: summaryFor(defaultID, 20)}
		r := newResolver(remote, bundled)

		got, err := r.Fetch(context.Background(), domain.Location{ID: "pt-1"}, "")
		require.NoError(t, err)
		assert.Equal(t, 31, got.Current.Temperature)
	})

	t.Run("bundled serves everything when remote is disabled", func(t *testing.T) {
		remote := &fakeRemote{enabled: false}
		bundled := &fakeBundled{summary: summaryFor(defaultID, 28.6)}
		r := newResolver(remote, bundled)

		got, err := r.Fetch(context.Background(), domain.Location{ID: defaultID}, "")
		require.NoError(t, err)
		assert.Equal(t, 29, got.Current.Temperature)
	})

	t.Run("remote failure falls back to bundled per shape", func(t *testing.T) {
		remote := &fakeRemote{
			enabled:    true,
			summaryErr: domain.ErrTimeout,
			daily: &domain.DailyAggregate{
				Found:    true,
				Location: domain.PointRef{ID: defaultID},
				Today:    "2025-06-10",
				Days: []domain.DayRecord{
					{Date: "2025-06-10", Kind: "today", TempMinC: 24, TempMaxC: 33},
				},
			},
			seriesErr: domain.ErrParse,
		}
		bundled := &fakeBundled{summary: summaryFor(defaultID, 30)}
		r := newResolver(remote, bundled)

		got, err := r.Fetch(context.Background(), domain.Location{ID: defaultID}, "")
		require.NoError(t, err)
		assert.Equal(t, 30, got.Current.Temperature)
		require.Len(t, got.Daily, 1)
		assert.Equal(t, 24, got.Daily[0].Low)
	})

	t.Run("nil remote record without an error degrades to bundled", func(t *testing.T) {
		// Every shape answers (nil, nil) here; that must read as a failed
		// remote resolution, not crash the fan-out.
		remote := &fakeRemote{enabled: true}
		bundled := &fakeBundled{summary: summaryFor(defaultID, 29.7)}
		r := newResolver(remote, bundled)

		got, err := r.Fetch(context.Background(), domain.Location{ID: defaultID}, "")
		require.NoError(t, err)
		assert.Equal(t, 30, got.Current.Temperature)
		assert.Empty(t, got.Daily)
		assert.Empty(t, got.Hourly)
	})

	t.Run("identifier mismatch rejects the remote record", func(t *testing.T) {
		remote := &fakeRemote{enabled: true, summary: summaryFor("someone-else", 99)}
		bundled := &fakeBundled{summary: summaryFor(defaultID, 27)}
		r := newResolver(remote, bundled)

		got, err := r.Fetch(context.Background(), domain.Location{ID: "pt-1"}, "")
		require.NoError(t, err)
		assert.Equal(t, 27, got.Current.Temperature)
	})

	t.Run("records naming the default identifier satisfy any request", func(t *testing.T) {
		remote := &fakeRemote{enabled: true, summary: summaryFor(defaultID, 26)}
		r := newResolver(remote, &fakeBundled{})

		got, err := r.Fetch(context.Background(), domain.Location{ID: "pt-1"}, "")
		require.NoError(t, err)
		assert.Equal(t, 26, got.Current.Temperature)
	})

	t.Run("missing summary retries once under the default identifier", func(t *testing.T) {
		remote := &fakeRemote{enabled: true, summaryErr: domain.ErrTimeout}
		bundled := &fakeBundled{summary: summaryFor(defaultID, 25)}
		r := newResolver(remote, bundled)

		got, err := r.Fetch(context.Background(), domain.Location{ID: "pt-1"}, "")
		require.NoError(t, err)
		assert.Equal(t, 25, got.Current.Temperature)
		assert.Equal(t, 2, remote.summaryCalls)
	})

	t.Run("no summary anywhere is fatal", func(t *testing.T) {
		remote := &fakeRemote{enabled: true, summaryErr: domain.ErrTimeout}
		r := newResolver(remote, &fakeBundled{})

		_, err := r.Fetch(context.Background(), domain.Location{ID: "pt-1"}, "")
		assert.ErrorIs(t, err, domain.ErrDataUnavailable)
	})

	t.Run("daily and timeseries absence degrades, never errors", func(t *testing.T) {
		remote := &fakeRemote{
			enabled:   true,
			summary:   summaryFor(defaultID, 30),
			dailyErr:  domain.ErrTimeout,
			seriesErr: domain.ErrTimeout,
		}
		r := newResolver(remote, &fakeBundled{})

		got, err := r.Fetch(context.Background(), domain.Location{ID: defaultID}, "")
		require.NoError(t, err)
		assert.Empty(t, got.Daily)
		assert.Empty(t, got.Hourly)
	})

	t.Run("empty location id resolves as the default", func(t *testing.T) {
		remote := &fakeRemote{enabled: false}
		bundled := &fakeBundled{summary: summaryFor(defaultID, 30)}
		r := newResolver(remote, bundled)

		got, err := r.Fetch(context.Background(), domain.Location{}, "")
		require.NoError(t, err)
		assert.Equal(t, defaultID, got.Location.ID)
		assert.Equal(t, 1, remote.summaryCalls)
	})
}

func TestResolver_Overview(t *testing.T) {
	t.Run("remote first", func(t *testing.T) {
		remote := &fakeRemote{enabled: true, overview: &domain.Overview{CountLocations: 63}}
		r := newResolver(remote, &fakeBundled{overview: &domain.Overview{CountLocations: 1}})

		got, err := r.Overview(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 63, got.CountLocations)
	})

	t.Run("bundled on failure", func(t *testing.T) {
		remote := &fakeRemote{enabled: true}
		r := newResolver(remote, &fakeBundled{overview: &domain.Overview{CountLocations: 1}})

		got, err := r.Overview(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, got.CountLocations)
	})

	t.Run("unavailable when neither source answers", func(t *testing.T) {
		r := newResolver(&fakeRemote{enabled: true}, &fakeBundled{})

		_, err := r.Overview(context.Background())
		assert.ErrorIs(t, err, domain.ErrDataUnavailable)
	})
}

func TestResolver_FloodRisk(t *testing.T) {
	remote := &fakeRemote{enabled: false}
	r := newResolver(remote, &fakeBundled{flood: &domain.FloodRiskList{Count: 2}})

	got, err := r.FloodRisk(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, got.Count)
}

func TestResolver_CheckReadiness(t *testing.T) {
	t.Run("ready with remote configured", func(t *testing.T) {
		r := newResolver(&fakeRemote{enabled: true}, &fakeBundled{})
		assert.NoError(t, r.CheckReadiness(context.Background()))
	})

	t.Run("ready with bundled summary only", func(t *testing.T) {
		r := newResolver(&fakeRemote{}, &fakeBundled{summary: summaryFor(defaultID, 30)})
		assert.NoError(t, r.CheckReadiness(context.Background()))
	})

	t.Run("not ready with neither", func(t *testing.T) {
		r := newResolver(&fakeRemote{}, &fakeBundled{})
		assert.Error(t, r.CheckReadiness(context.Background()))
	})
}
