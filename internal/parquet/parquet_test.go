package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradescope/schema"
)

func TestWriteAndReadAlertRows(t *testing.T) {
	alerts := []schema.Alert{
		{
			Time:     schema.MonthOf(2023, time.March),
			Severity: schema.SeverityCritical,
			Kind:     schema.ResidualOutlier,
			Observed: 900,
			Expected: 500,
			Score:    4.2,
		},
	}
	rows := ConvertAlerts(7, alerts)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(7), rows[0].RunID)
	assert.Equal(t, "critical", rows[0].Severity)

	path := filepath.Join(t.TempDir(), "alerts.parquet")
	require.NoError(t, WriteAlertRowsParquet(rows, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestConvertRunRecords(t *testing.T) {
	end := time.Now().UTC()
	records := []schema.RunRecord{
		{
			RunID:         3,
			StartTime:     end.Add(-time.Second),
			EndTime:       &end,
			RunDurationMs: 1000,
			Period:        12,
			Horizon:       6,
			Confidence:    0.95,
			Model:         "additive",
			SeriesPoints:  48,
			AlertCount:    2,
			ConfigParams:  `{"source":"trade.csv"}`,
		},
		{RunID: 4, StartTime: end, Period: 12, Horizon: 6, Confidence: 0.9, Model: "multiplicative"},
	}

	runs := ConvertRunRecords(records)
	require.Len(t, runs, 2)
	assert.Equal(t, int32(12), runs[0].Period)
	require.NotNil(t, runs[0].ConfigParams)
	assert.Contains(t, *runs[0].ConfigParams, "trade.csv")
	assert.Nil(t, runs[1].ConfigParams)

	path := filepath.Join(t.TempDir(), "runs.parquet")
	require.NoError(t, WritePipelineRunsParquet(runs, path))
}

func TestConvertForecastAndDecomposition(t *testing.T) {
	assert.Nil(t, ConvertForecast(nil))
	assert.Nil(t, ConvertDecomposition(nil))

	f := &schema.Forecast{
		Points: []schema.ForecastPoint{
			{Time: schema.MonthOf(2024, time.January), Value: 100, Lower: 90, Upper: 110},
		},
	}
	rows := ConvertForecast(f)
	require.Len(t, rows, 1)
	assert.Equal(t, 90.0, rows[0].Lower)

	d := &schema.Decomposition{
		Series: &schema.Series{
			Points: []schema.TimePoint{{Time: schema.MonthOf(2023, time.June), Value: 105}},
			Period: 12,
		},
		Trend:    []float64{100},
		Seasonal: []float64{5},
		Residual: []float64{0},
	}
	drows := ConvertDecomposition(d)
	require.Len(t, drows, 1)
	assert.Equal(t, 105.0, drows[0].Observed)
	assert.Equal(t, 100.0, drows[0].Trend)

	dir := t.TempDir()
	require.NoError(t, WriteForecastRowsParquet(rows, filepath.Join(dir, "forecast.parquet")))
	require.NoError(t, WriteDecompositionRowsParquet(drows, filepath.Join(dir, "decomp.parquet")))
}
