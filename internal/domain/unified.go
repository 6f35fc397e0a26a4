package domain

// Severity is the four-level alert scale exposed to presentation.
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
	SeverityExtreme  Severity = "extreme"
)

// mapSeverity converts an upstream hazard or overall alert level to the
// Severity scale. Unrecognized levels default to minor.
func mapSeverity(level string) Severity {
	switch level {
	case "extreme":
		return SeverityExtreme
	case "severe":
		return SeveritySevere
	case "moderate":
		return SeverityModerate
	default:
		return SeverityMinor
	}
}

// CurrentConditions is the normalized "right now" block. Temperature is
// Celsius; wind speed is km/h. Fahrenheit conversion happens at presentation
// time only (see FormatTemp).
type CurrentConditions struct {
	Temperature   int    `json:"temperature"`
	FeelsLike     int    `json:"feels_like"`
	Condition     string `json:"condition"`
	ConditionCode string `json:"condition_code"`
	Humidity      int    `json:"humidity"`
	WindSpeed     int    `json:"wind_speed"`
	WindDirection int    `json:"wind_direction"`
	Pressure      int    `json:"pressure"`
	Visibility    int    `json:"visibility"`
	UVIndex       int    `json:"uv_index"`
	Icon          string `json:"icon"`
}

// HourlyEntry is one normalized hourly forecast step.
type HourlyEntry struct {
	Time          string  `json:"time"`
	Temperature   int     `json:"temperature"`
	Condition     string  `json:"condition"`
	ConditionCode string  `json:"condition_code"`
	Icon          string  `json:"icon"`
	Precipitation float64 `json:"precipitation"`
	WindSpeed     float64 `json:"wind_speed"`
	Humidity      float64 `json:"humidity"`
}

// DailyEntry is one normalized day of forecast, with its hourly breakdown and
// the data-completeness counters carried through from the daily aggregate.
type DailyEntry struct {
	Date          string        `json:"date"`
	DayName       string        `json:"day_name"`
	High          int           `json:"high"`
	Low           int           `json:"low"`
	Condition     string        `json:"condition"`
	ConditionCode string        `json:"condition_code"`
	Icon          string        `json:"icon"`
	Precipitation float64       `json:"precipitation"`
	WindSpeed     float64       `json:"wind_speed"`
	Humidity      int           `json:"humidity"`
	Sunrise       string        `json:"sunrise"`
	Sunset        string        `json:"sunset"`
	Hourly        []HourlyEntry `json:"hourly"`
	Kind          string        `json:"kind,omitempty"`
	TempMean      int           `json:"temp_mean,omitempty"`
	HourCount     int           `json:"hour_count,omitempty"`
	ObsHours      int           `json:"obs_hours,omitempty"`
	FcstHours     int           `json:"fcst_hours,omitempty"`
	MissingHours  int           `json:"missing_hours,omitempty"`
}

// Alert is one normalized weather alert. Hazards in the upstream snapshot
// carry no interval bounds, so StartTime and EndTime both equal the
// observation timestamp.
type Alert struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Type        string   `json:"type"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Area        string   `json:"area"`
	Urgency     string   `json:"urgency"`
}

// UnifiedWeather is the single model every display surface consumes.
type UnifiedWeather struct {
	Location            Location          `json:"location"`
	Current             CurrentConditions `json:"current"`
	Hourly              []HourlyEntry     `json:"hourly"`
	Daily               []DailyEntry      `json:"daily"`
	Alerts              []Alert           `json:"alerts"`
	LastUpdated         string            `json:"last_updated"`
	TodaySummary        string            `json:"today_summary,omitempty"`
	OverallAlertLevel   string            `json:"overall_alert_level,omitempty"`
	OverallAlertComment string            `json:"overall_alert_comment,omitempty"`
}
