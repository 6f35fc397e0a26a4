package domain

import (
	"fmt"
	"time"
)

// Placeholders for fields the upstream snapshots do not carry.
const (
	humidityPlaceholderPct  = 70
	visibilityPlaceholderKm = 10
	sunrisePlaceholder      = "06:00"
	sunsetPlaceholder       = "18:00"
)

// Display caps.
const (
	maxHourlyEntries = 24
	maxDailyEntries  = 7
)

// Merge reconciles the three upstream shapes into one UnifiedWeather record.
// Summary is required and drives current conditions and alerts; daily and
// series are enrichments and may be nil. Temperatures stay Celsius, wind
// speeds are converted to km/h.
func Merge(loc Location, summary *SummarySnapshot, daily *DailyAggregate, series *TimeseriesSeries) UnifiedWeather {
	obs := summary.Obs
	currentText := summary.Current.SummaryText
	todayText := summary.Today.SummaryText

	// A malformed observation timestamp cannot anchor the backfill scan;
	// skip it so the placeholders apply outright.
	backfill := series
	obsTime, err := time.Parse(time.RFC3339, obs.ValidAt)
	if err != nil {
		backfill = nil
	}

	out := UnifiedWeather{
		Location:            loc,
		Current:             mergeCurrent(obs, currentText, backfill, obsTime),
		Hourly:              mergeHourly(series),
		Daily:               mergeDaily(daily, series, todayText),
		Alerts:              mergeAlerts(summary.Alerts, obs.ValidAt, loc.City),
		LastUpdated:         obs.ValidAt,
		TodaySummary:        todayText,
		OverallAlertLevel:   summary.Alerts.OverallLevel,
		OverallAlertComment: summary.Alerts.OverallComment,
	}

	// The record's identifier is authoritative: under default-identifier
	// fallback it names the point the data actually describes.
	out.Location.ID = summary.Location.ID
	if out.Location.City == "" {
		out.Location.City = summary.Location.Name
	}
	return out
}

// mergeCurrent builds the current-conditions block from the summary
// observation, backfilling humidity and wind direction from the timeseries
// step nearest the observation timestamp.
func mergeCurrent(obs Observation, text string, series *TimeseriesSeries, obsTime time.Time) CurrentConditions {
	humidity := float64(humidityPlaceholderPct)
	windDir := 0.0
	if step := backfillStep(series, obs.ValidAt, obsTime); step != nil {
		if step.RelHumidityPct != nil {
			humidity = *step.RelHumidityPct
		}
		if step.WindDirDeg != nil {
			windDir = *step.WindDirDeg
		}
	}

	return CurrentConditions{
		Temperature:   roundInt(obs.TempC),
		FeelsLike:     roundInt(obs.TempC),
		Condition:     text,
		ConditionCode: ConditionCode(text),
		Humidity:      roundInt(humidity),
		WindSpeed:     roundInt(MsToKmh(obs.WindMS)),
		WindDirection: roundInt(windDir),
		Pressure:      roundInt(obs.SurfacePressureHpa),
		Visibility:    visibilityPlaceholderKm,
		UVIndex:       0,
		Icon:          ConditionIcon(text, obs.CloudcoverPct),
	}
}

// backfillStep finds the timeseries step to borrow humidity and wind
// direction from: the step whose timestamp equals the observation's, or the
// most recent step at or before it. Steps without a temperature reading are
// skipped.
func backfillStep(series *TimeseriesSeries, validAt string, obsTime time.Time) *TimeStep {
	if series == nil {
		return nil
	}
	for i := range series.Steps {
		step := &series.Steps[i]
		if step.ValidAt == validAt && step.TempC != nil {
			return step
		}
	}

	var best *TimeStep
	var bestTime time.Time
	for i := range series.Steps {
		step := &series.Steps[i]
		if step.TempC == nil {
			continue
		}
		t, err := time.Parse(time.RFC3339, step.ValidAt)
		if err != nil || t.After(obsTime) {
			continue
		}
		if best == nil || t.After(bestTime) {
			best = step
			bestTime = t
		}
	}
	return best
}

// mergeHourly builds the hourly list: steps with a temperature at or after
// now, in source order, capped at 24. Condition and icon derive from each
// step's own cloud cover, not from the summary narrative.
func mergeHourly(series *TimeseriesSeries) []HourlyEntry {
	hourly := []HourlyEntry{}
	if series == nil {
		return hourly
	}
	now := clock.Now()
	for _, step := range series.Steps {
		if step.TempC == nil {
			continue
		}
		t, err := time.Parse(time.RFC3339, step.ValidAt)
		if err != nil || t.Before(now) {
			continue
		}
		cover := floatOr(step.CloudcoverPct, 0)
		text := cloudcoverText(cover)
		hourly = append(hourly, HourlyEntry{
			Time:          step.ValidAt,
			Temperature:   roundInt(*step.TempC),
			Condition:     text,
			ConditionCode: ConditionCode(text),
			Icon:          ConditionIcon(text, cover),
			Precipitation: floatOr(step.PrecipMM, 0),
			WindSpeed:     MsToKmh(floatOr(step.WindMS, 0)),
			Humidity:      floatOr(step.RelHumidityPct, 0),
		})
		if len(hourly) == maxHourlyEntries {
			break
		}
	}
	return hourly
}

// mergeDaily builds the daily list from today/future day records, capped at
// 7. Today's entry carries the summary's narrative text; other days derive
// their condition from mean cloud cover. Each day's hourly breakdown is the
// timeseries steps falling on that date.
func mergeDaily(daily *DailyAggregate, series *TimeseriesSeries, todayText string) []DailyEntry {
	out := []DailyEntry{}
	if daily == nil {
		return out
	}
	for _, day := range daily.Days {
		if day.Kind != "today" && day.Kind != "future" {
			continue
		}
		text := cloudcoverText(day.CloudcoverMeanPct)
		if day.Kind == "today" && todayText != "" {
			text = todayText
		}
		out = append(out, DailyEntry{
			Date:          day.Date,
			DayName:       dayName(day.Date),
			High:          roundInt(day.TempMaxC),
			Low:           roundInt(day.TempMinC),
			Condition:     text,
			ConditionCode: ConditionCode(text),
			Icon:          ConditionIcon(text, day.CloudcoverMeanPct),
			Precipitation: day.PrecipSumMM,
			WindSpeed:     MsToKmh(day.WindMeanMS),
			Humidity:      humidityPlaceholderPct,
			Sunrise:       sunrisePlaceholder, // not in the aggregate; known gap
			Sunset:        sunsetPlaceholder,
			Hourly:        dayHourly(series, day.Date, text),
			Kind:          day.Kind,
			TempMean:      roundInt(day.TempMeanC),
			HourCount:     day.HourCount,
			ObsHours:      day.ObsHours,
			FcstHours:     day.FcstHours,
			MissingHours:  day.MissingHours,
		})
		if len(out) == maxDailyEntries {
			break
		}
	}
	return out
}

// dayHourly collects the timeseries steps whose date portion matches the
// given day, capped at 24. The day's condition text applies to every step.
func dayHourly(series *TimeseriesSeries, date, text string) []HourlyEntry {
	hourly := []HourlyEntry{}
	if series == nil {
		return hourly
	}
	for _, step := range series.Steps {
		if step.TempC == nil || len(step.ValidAt) < len(date) || step.ValidAt[:len(date)] != date {
			continue
		}
		cover := floatOr(step.CloudcoverPct, 0)
		hourly = append(hourly, HourlyEntry{
			Time:          step.ValidAt,
			Temperature:   roundInt(*step.TempC),
			Condition:     text,
			ConditionCode: ConditionCode(text),
			Icon:          ConditionIcon(text, cover),
			Precipitation: floatOr(step.PrecipMM, 0),
			WindSpeed:     MsToKmh(floatOr(step.WindMS, 0)),
			Humidity:      floatOr(step.RelHumidityPct, 0),
		})
		if len(hourly) == maxHourlyEntries {
			break
		}
	}
	return hourly
}

// mergeAlerts emits one alert per hazard, or a single synthesized alert from
// the overall level when there are no hazards but the level is not "none".
// Hazards carry no interval bounds upstream, so start and end both equal the
// observation timestamp.
func mergeAlerts(block AlertBlock, validAt, area string) []Alert {
	alerts := []Alert{}
	for i, hazard := range block.Hazards {
		alerts = append(alerts, Alert{
			ID:          fmt.Sprintf("alert_%d", i),
			Title:       fmt.Sprintf("%s warning", hazard.Type),
			Description: hazard.Comment,
			Severity:    mapSeverity(hazard.Level),
			Type:        "other",
			StartTime:   validAt,
			EndTime:     validAt,
			Area:        area,
			Urgency:     "expected",
		})
	}
	if len(alerts) == 0 && block.OverallComment != "" && block.OverallLevel != "none" {
		alerts = append(alerts, Alert{
			ID:          "overall_alert",
			Title:       "Weather advisory",
			Description: block.OverallComment,
			Severity:    mapSeverity(block.OverallLevel),
			Type:        "other",
			StartTime:   validAt,
			EndTime:     validAt,
			Area:        area,
			Urgency:     "expected",
		})
	}
	return alerts
}

// dayName renders a display name for a date: Today, Tomorrow, or the weekday.
func dayName(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	today := clock.Now().UTC().Truncate(24 * time.Hour)
	switch d.Sub(today) {
	case 0:
		return "Today"
	case 24 * time.Hour:
		return "Tomorrow"
	}
	return d.Weekday().String()
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
