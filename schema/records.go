package schema

import "time"

// TradeRecord is one row of trade-flow data as loaded from a dataset:
// a partner country's tonnage for a given month.
type TradeRecord struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"` // 1-12
	Partner string  `json:"partner"`
	Tons    float64 `json:"tons"`
}

// Date returns the record's month normalized to first-of-month UTC.
func (r TradeRecord) Date() time.Time {
	return MonthOf(r.Year, time.Month(r.Month))
}

// DatasetSummary holds headline figures for a filtered set of trade records.
type DatasetSummary struct {
	Records      int     `json:"records"`
	Partners     int     `json:"partners"`
	Months       int     `json:"months"`
	TotalTons    float64 `json:"total_tons"`
	MonthlyMean  float64 `json:"monthly_mean"`
	FirstPeriod  string  `json:"first_period"`
	LatestPeriod string  `json:"latest_period"`
}

// PartnerTotal is one partner's aggregate tonnage, used for summary tables.
type PartnerTotal struct {
	Partner string  `json:"partner"`
	Tons    float64 `json:"tons"`
	Share   float64 `json:"share"` // fraction of the filtered total
}

// RunRecord is a persisted pipeline run, as stored by the run store.
type RunRecord struct {
	RunID         int64      `json:"run_id"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	RunDurationMs int64      `json:"run_duration_ms"`
	Period        int        `json:"period"`
	Horizon       int        `json:"horizon"`
	Confidence    float64    `json:"confidence"`
	Model         string     `json:"model"`
	SeriesPoints  int        `json:"series_points"`
	AlertCount    int        `json:"alert_count"`
	ConfigParams  string     `json:"config_params"` // JSON-encoded invocation parameters
}

// StoreStatus reports the health and size of the run store.
type StoreStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int64            `json:"total_runs"`
	TotalAlerts   int64            `json:"total_alerts"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// StoredAlert is a persisted alert row tied to a pipeline run.
type StoredAlert struct {
	RunID    int64     `json:"run_id"`
	Time     time.Time `json:"time"`
	Severity string    `json:"severity"`
	Kind     string    `json:"kind"`
	Observed float64   `json:"observed"`
	Expected float64   `json:"expected"`
	Score    float64   `json:"score"`
}
