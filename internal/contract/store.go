package contract

import (
	"time"

	"tradescope/schema"
)

// RunStore persists pipeline runs and the alerts they raised. A store backed
// by NoneBackend accepts every call as a no-op so callers never branch on
// whether tracking is enabled.
type RunStore interface {
	// BeginRun creates a new run row and returns its unique ID.
	BeginRun(startTime time.Time, period, horizon int, confidence float64,
		model schema.Model, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data.
	EndRun(runID int64, endTime time.Time, seriesPoints, alertCount int) error

	// RecordAlerts stores the alerts raised by a run.
	RecordAlerts(runID int64, alerts []schema.Alert) error

	// GetAllRuns retrieves all runs, oldest first.
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAlerts retrieves the alerts stored for one run.
	GetAlerts(runID int64) ([]schema.StoredAlert, error)

	// GetStatus reports connection state and table sizes.
	GetStatus() (schema.StoreStatus, error)

	// Clear removes all stored runs and alerts.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}
