package domain

// PointsResponse is the wire shape of the observation point list
// (GET /api/obs/latest and the bundled latest.json snapshot).
type PointsResponse struct {
	Count int                `json:"count"`
	Data  []ObservationPoint `json:"data"`
}

// ObservationPoint is one entry of the bounded known-point set. The ID is the
// opaque key that correlates summary, daily, and timeseries records.
type ObservationPoint struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Location identifies the place a caller wants weather for. ID is assigned
// lazily by the geo index when only coordinates are known; once set it is the
// key for all subsequent fetches.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Address   string  `json:"address,omitempty"`
	ID        string  `json:"location_id,omitempty"`
}

// PointRef is the location block embedded in every upstream record.
type PointRef struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Observation is the instantaneous reading inside a summary snapshot.
// Timestamps stay as the upstream RFC 3339 strings; parsing happens during
// normalization.
type Observation struct {
	ValidAt            string  `json:"valid_at"`
	TempC              float64 `json:"temp_c"`
	WindMS             float64 `json:"wind_ms"`
	PrecipMM           float64 `json:"precip_mm"`
	CloudcoverPct      float64 `json:"cloudcover_pct"`
	SurfacePressureHpa float64 `json:"surface_pressure_hpa"`
}

// SummaryText carries a free-text condition narrative.
type SummaryText struct {
	SummaryText string `json:"summary_text"`
}

// Hazard is one typed hazard entry in a summary's alert block.
type Hazard struct {
	Type    string `json:"type"`
	Level   string `json:"level"`
	Comment string `json:"comment"`
}

// AlertBlock is the alert section of a summary snapshot: an overall level and
// comment plus zero or more typed hazards.
type AlertBlock struct {
	OverallLevel   string   `json:"overall_level"`
	OverallComment string   `json:"overall_comment"`
	Hazards        []Hazard `json:"hazards"`
}

// SummarySnapshot is the single point-in-time record for one identifier
// (GET /api/obs/summary/{id} and the bundled summary.json).
type SummarySnapshot struct {
	Found    bool        `json:"found"`
	Location PointRef    `json:"location"`
	Obs      Observation `json:"obs"`
	Today    SummaryText `json:"today"`
	Current  SummaryText `json:"current"`
	Alerts   AlertBlock  `json:"alerts"`
}

// DayRecord is one day's rollup in a daily aggregate. Kind classifies the day
// relative to "now": "past", "today", or "future".
type DayRecord struct {
	Date              string  `json:"date"`
	Kind              string  `json:"kind"`
	HourCount         int     `json:"hour_count"`
	ObsHours          int     `json:"obs_hours"`
	FcstHours         int     `json:"fcst_hours"`
	MissingHours      int     `json:"missing_hours"`
	TempMinC          float64 `json:"temp_min_c"`
	TempMaxC          float64 `json:"temp_max_c"`
	TempMeanC         float64 `json:"temp_mean_c"`
	PrecipSumMM       float64 `json:"precip_sum_mm"`
	WindMeanMS        float64 `json:"wind_mean_ms"`
	CloudcoverMeanPct float64 `json:"cloudcover_mean_pct"`
}

// DailyAggregate is the multi-day rollup for one identifier
// (GET /api/obs/daily/{id}?provider=... and the bundled daily.json).
type DailyAggregate struct {
	Found       bool        `json:"found"`
	Location    PointRef    `json:"location"`
	Timezone    string      `json:"timezone,omitempty"`
	Today       string      `json:"today,omitempty"`
	Provider    string      `json:"provider,omitempty"`
	DaysBack    int         `json:"days_back,omitempty"`
	DaysForward int         `json:"days_forward,omitempty"`
	Days        []DayRecord `json:"days"`
}

// TimeStep is one per-timestep record in a timeseries. Source tags provenance:
// "obs" for observed steps, otherwise the forecast model name. Nil pointers
// mean the instrument or model produced no value for that step; such steps are
// excluded from display aggregation.
type TimeStep struct {
	ValidAt            string   `json:"valid_at"`
	Source             string   `json:"source"`
	TempC              *float64 `json:"temp_c"`
	WindMS             *float64 `json:"wind_ms"`
	PrecipMM           *float64 `json:"precip_mm"`
	RelHumidityPct     *float64 `json:"rel_humidity_pct"`
	WindDirDeg         *float64 `json:"wind_dir_deg"`
	CloudcoverPct      *float64 `json:"cloudcover_pct"`
	SurfacePressureHpa *float64 `json:"surface_pressure_hpa"`
}

// TimeseriesSeries is the ordered per-timestep record set for one identifier
// (GET /api/obs/timeseries/{id}?back=48&fwd=96&provider=... and timeseries.json).
type TimeseriesSeries struct {
	Found    bool       `json:"found"`
	Location PointRef   `json:"location"`
	Steps    []TimeStep `json:"steps"`
}

// FloodRiskEntry is one per-point flood risk record, passed through to
// presentation without normalization.
type FloodRiskEntry struct {
	LocationID  string   `json:"location_id"`
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lon"`
	ValidAt     string   `json:"valid_at"`
	ReliefM     *float64 `json:"relief_m"`
	Rain1hMM    float64  `json:"rain_1h_mm"`
	Rain3hMM    float64  `json:"rain_3h_mm"`
	EffRain1hMM float64  `json:"eff_rain_1h_mm"`
	EffRain3hMM float64  `json:"eff_rain_3h_mm"`
	RiskScore   float64  `json:"risk_score"`
	RiskLevel   string   `json:"risk_level"`
}

// FloodRiskList is the wire shape of GET /api/obs/flood_risk_latest.
type FloodRiskList struct {
	Count int              `json:"count"`
	Data  []FloodRiskEntry `json:"data"`
}

// OverviewExtreme names the hottest or coldest point in an overview.
type OverviewExtreme struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	TempC float64 `json:"temp_c"`
}

// OverviewTemp aggregates temperature statistics across all points.
type OverviewTemp struct {
	AvgC         float64         `json:"avg_c"`
	MaxC         float64         `json:"max_c"`
	MinC         float64         `json:"min_c"`
	Hottest      OverviewExtreme `json:"hottest"`
	Coldest      OverviewExtreme `json:"coldest"`
	HotCountGE35 int             `json:"hot_count_ge_35"`
	HotCountGE37 int             `json:"hot_count_ge_37"`
}

// OverviewRain aggregates precipitation counts across all points.
type OverviewRain struct {
	RainingCount   int `json:"raining_count"`
	HeavyRainCount int `json:"heavy_rain_count"`
}

// OverviewWind aggregates wind counts across all points.
type OverviewWind struct {
	StrongWindCount int `json:"strong_wind_count"`
}

// Overview is the network-wide aggregate (GET /api/obs/overview), passed
// through to presentation without normalization.
type Overview struct {
	ObsTime        string       `json:"obs_time"`
	CountLocations int          `json:"count_locations"`
	Temp           OverviewTemp `json:"temp"`
	Rain           OverviewRain `json:"rain"`
	Wind           OverviewWind `json:"wind"`
}
