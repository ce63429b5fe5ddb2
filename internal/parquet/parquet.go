// Package parquet provides data structures and functions for exporting
// pipeline data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"tradescope/schema"
)

// PipelineRun represents a single pipeline run with metadata.
// This struct maps to the tradescope_runs database table.
type PipelineRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds
	RunDurationMs int64 `parquet:"run_duration_ms,snappy"`

	// Period is the seasonal cycle length used
	Period int32 `parquet:"period,snappy"`

	// Horizon is the number of months forecast
	Horizon int32 `parquet:"horizon,snappy"`

	// Confidence is the forecast confidence level
	Confidence float64 `parquet:"confidence,snappy"`

	// Model is the decomposition model used
	Model string `parquet:"model,snappy"`

	// SeriesPoints is the number of points in the prepared series
	SeriesPoints int32 `parquet:"series_points,snappy"`

	// AlertCount is the number of alerts the run raised
	AlertCount int32 `parquet:"alert_count,snappy"`

	// ConfigParams contains the JSON-encoded invocation parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// AlertRow represents a single alert raised by a run.
// This struct maps to the tradescope_alerts database table.
type AlertRow struct {
	// RunID references the parent run
	RunID int64 `parquet:"run_id,snappy"`

	// Time is the month the alert refers to
	Time time.Time `parquet:"alert_time,snappy"`

	// Severity is info, warning, or critical
	Severity string `parquet:"severity,snappy"`

	// Kind identifies the detection rule that fired
	Kind string `parquet:"kind,snappy"`

	// Observed is the observed value for the month
	Observed float64 `parquet:"observed,snappy"`

	// Expected is the model's expectation for the month
	Expected float64 `parquet:"expected,snappy"`

	// Score is the deviation magnitude
	Score float64 `parquet:"score,snappy"`
}

// ForecastRow is one projected month with confidence bounds.
type ForecastRow struct {
	Time  time.Time `parquet:"time,snappy"`
	Value float64   `parquet:"value,snappy"`
	Lower float64   `parquet:"lower,snappy"`
	Upper float64   `parquet:"upper,snappy"`
}

// DecompositionRow is one observed month with its components.
type DecompositionRow struct {
	Time     time.Time `parquet:"time,snappy"`
	Observed float64   `parquet:"observed,snappy"`
	Trend    float64   `parquet:"trend,snappy"`
	Seasonal float64   `parquet:"seasonal,snappy"`
	Residual float64   `parquet:"residual,snappy"`
}

// writeParquet writes any row type to a Parquet file using struct schema
// inference from the row's tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// WritePipelineRunsParquet writes a slice of PipelineRun structs to a Parquet file.
func WritePipelineRunsParquet(data []PipelineRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteAlertRowsParquet writes a slice of AlertRow structs to a Parquet file.
func WriteAlertRowsParquet(data []AlertRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteForecastRowsParquet writes a slice of ForecastRow structs to a Parquet file.
func WriteForecastRowsParquet(data []ForecastRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteDecompositionRowsParquet writes a slice of DecompositionRow structs to a Parquet file.
func WriteDecompositionRowsParquet(data []DecompositionRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertRunRecords converts schema.RunRecord to PipelineRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []PipelineRun {
	result := make([]PipelineRun, len(records))
	for i, record := range records {
		var params *string
		if record.ConfigParams != "" {
			p := record.ConfigParams
			params = &p
		}
		result[i] = PipelineRun{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			Period:        int32(record.Period),
			Horizon:       int32(record.Horizon),
			Confidence:    record.Confidence,
			Model:         record.Model,
			SeriesPoints:  int32(record.SeriesPoints),
			AlertCount:    int32(record.AlertCount),
			ConfigParams:  params,
		}
	}
	return result
}

// ConvertStoredAlerts converts schema.StoredAlert to AlertRow for Parquet export.
func ConvertStoredAlerts(records []schema.StoredAlert) []AlertRow {
	result := make([]AlertRow, len(records))
	for i, record := range records {
		result[i] = AlertRow{
			RunID:    record.RunID,
			Time:     record.Time,
			Severity: record.Severity,
			Kind:     record.Kind,
			Observed: record.Observed,
			Expected: record.Expected,
			Score:    record.Score,
		}
	}
	return result
}

// ConvertAlerts converts live schema.Alert values to AlertRow for Parquet export.
func ConvertAlerts(runID int64, alerts []schema.Alert) []AlertRow {
	result := make([]AlertRow, len(alerts))
	for i, a := range alerts {
		result[i] = AlertRow{
			RunID:    runID,
			Time:     a.Time,
			Severity: string(a.Severity),
			Kind:     string(a.Kind),
			Observed: a.Observed,
			Expected: a.Expected,
			Score:    a.Score,
		}
	}
	return result
}

// ConvertForecast converts a schema.Forecast to ForecastRow values.
func ConvertForecast(f *schema.Forecast) []ForecastRow {
	if f == nil {
		return nil
	}
	result := make([]ForecastRow, len(f.Points))
	for i, p := range f.Points {
		result[i] = ForecastRow{Time: p.Time, Value: p.Value, Lower: p.Lower, Upper: p.Upper}
	}
	return result
}

// ConvertDecomposition converts a schema.Decomposition to DecompositionRow values.
func ConvertDecomposition(d *schema.Decomposition) []DecompositionRow {
	if d == nil {
		return nil
	}
	result := make([]DecompositionRow, d.Len())
	for i := range result {
		result[i] = DecompositionRow{
			Time:     d.Series.Points[i].Time,
			Observed: d.Series.Points[i].Value,
			Trend:    d.Trend[i],
			Seasonal: d.Seasonal[i],
			Residual: d.Residual[i],
		}
	}
	return result
}
