// Package domain models the observation network's weather data and its
// normalization into the single record display surfaces consume.
//
// # Data Sources
//
// Three independently shaped records exist per observation point, correlated
// by an opaque identifier:
//
//   - Summary: one point-in-time observation (temperature, wind,
//     precipitation, cloud cover, pressure) plus free-text condition
//     narratives for "now" and "today" and an alert block.
//   - Daily aggregate: per-day rollups tagged past/today/future, with
//     min/max/mean temperature, precipitation sum, mean wind and cloud cover,
//     and hour-completeness counters (observed vs. forecast vs. missing).
//   - Timeseries: ordered per-timestep records tagged by provenance ("obs" or
//     a forecast model name), with nullable measurement fields. A nil field
//     means the instrument or model produced nothing for that step.
//
// Daily and timeseries records come in per-provider variants; the provider
// tag names the forecast model that produced the forecast portion.
//
// # Conventions
//
// Timestamps are RFC 3339 UTC strings and stay strings in the wire types;
// parsing happens during normalization. Daily dates are "YYYY-MM-DD".
// Temperatures are Celsius throughout the stored model; Fahrenheit exists
// only at presentation time via [FormatTemp]. Wind speeds arrive in m/s and
// are converted to km/h (×3.6) during normalization.
//
// Free-text summaries mix Vietnamese and English vocabulary. Condition codes
// and icons derive from an ordered keyword table (see [ConditionCode] and
// [ConditionIcon]); unmatched text falls back to partly-cloudy.
//
// Alert severity is a four-level scale (minor, moderate, severe, extreme);
// unrecognized upstream levels map to minor. Hazards carry no interval
// bounds, so alerts are instantaneous at the observation timestamp.
package domain
