// Command validate performs integrity checks on the bundled weather
// snapshots: identifier agreement with the default profile, parseable
// timestamps, timeseries step ordering, and recognized day kinds and alert
// levels. Run it after regenerating the bundle with cmd/snapshot.
//
// Usage:
//
//	go run ./cmd/validate [-default-id <identifier>]
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/vietmet/weathercore/internal/adapter/static"
	"github.com/vietmet/weathercore/internal/config"
	"github.com/vietmet/weathercore/internal/domain"
)

func main() {
	defaultID := flag.String("default-id", config.DefaultLocationID, "identifier the bundle must describe")
	flag.Parse()

	src := static.NewSource(slog.New(slog.NewTextHandler(io.Discard, nil)))

	var problems []string
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	points := src.Points()
	if points == nil {
		report("latest.json: missing or malformed")
	} else {
		if points.Count != len(points.Data) {
			report("latest.json: count %d does not match %d entries", points.Count, len(points.Data))
		}
		found := false
		for _, p := range points.Data {
			if p.ID == *defaultID {
				found = true
			}
			if p.Name == "" {
				report("latest.json: point %s has no display name", p.ID)
			}
		}
		if !found {
			report("latest.json: default identifier %s not in point list", *defaultID)
		}
	}

	summary := src.Summary()
	if summary == nil {
		report("summary.json: missing or malformed")
	} else {
		if summary.Location.ID != *defaultID {
			report("summary.json: identifier %s, want %s", summary.Location.ID, *defaultID)
		}
		if _, err := time.Parse(time.RFC3339, summary.Obs.ValidAt); err != nil {
			report("summary.json: obs.valid_at %q not RFC 3339", summary.Obs.ValidAt)
		}
		for i, h := range summary.Alerts.Hazards {
			switch h.Level {
			case "minor", "moderate", "severe", "extreme":
			default:
				report("summary.json: hazard %d has unrecognized level %q", i, h.Level)
			}
		}
	}

	daily := src.Daily()
	if daily == nil {
		report("daily.json: missing or malformed")
	} else {
		if daily.Location.ID != *defaultID {
			report("daily.json: identifier %s, want %s", daily.Location.ID, *defaultID)
		}
		todayCount := 0
		for i, day := range daily.Days {
			if _, err := time.Parse("2006-01-02", day.Date); err != nil {
				report("daily.json: day %d date %q not YYYY-MM-DD", i, day.Date)
			}
			switch day.Kind {
			case "past", "future":
			case "today":
				todayCount++
			default:
				report("daily.json: day %d has unrecognized kind %q", i, day.Kind)
			}
			if day.ObsHours+day.FcstHours+day.MissingHours != day.HourCount {
				report("daily.json: day %d hour counters do not sum to hour_count", i)
			}
		}
		if todayCount != 1 {
			report("daily.json: %d days tagged today, want exactly 1", todayCount)
		}
	}

	series := src.Timeseries()
	if series == nil {
		report("timeseries.json: missing or malformed")
	} else {
		if series.Location.ID != *defaultID {
			report("timeseries.json: identifier %s, want %s", series.Location.ID, *defaultID)
		}
		var prev time.Time
		for i, step := range series.Steps {
			t, err := time.Parse(time.RFC3339, step.ValidAt)
			if err != nil {
				report("timeseries.json: step %d valid_at %q not RFC 3339", i, step.ValidAt)
				continue
			}
			if i > 0 && !t.After(prev) {
				report("timeseries.json: step %d out of order (%s after %s)", i, step.ValidAt, prev.Format(time.RFC3339))
			}
			prev = t
		}
	}

	if src.Overview() == nil {
		report("overview.json: missing or malformed")
	}
	if risks := src.FloodRisk(); risks == nil {
		report("flood_risk_latest.json: missing or malformed")
	} else if risks.Count != len(risks.Data) {
		report("flood_risk_latest.json: count %d does not match %d entries", risks.Count, len(risks.Data))
	}

	// The bundle must merge cleanly whatever else holds.
	if summary != nil {
		unified := domain.Merge(domain.Location{ID: *defaultID}, summary, daily, series)
		if unified.LastUpdated == "" {
			report("merge: produced no last-updated timestamp")
		}
	}

	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintln(os.Stderr, "FAIL:", p)
		}
		os.Exit(1)
	}
	fmt.Println("bundle OK")
}
