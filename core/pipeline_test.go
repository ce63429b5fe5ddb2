package core

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradescope/schema"
)

func TestRunInsufficientData(t *testing.T) {
	start := schema.MonthOf(2023, time.January)
	raw := monthlyPoints(start, 10, func(i int) float64 { return float64(i) })

	_, err := Run(raw, 12, 6, 0.95, schema.DefaultSensitivity(), schema.Additive)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestRunErrorPassthrough(t *testing.T) {
	start := schema.MonthOf(2023, time.January)
	raw := monthlyPoints(start, 36, func(i int) float64 { return 100 + float64(i) })

	tests := []struct {
		name       string
		period     int
		horizon    int
		confidence float64
		model      schema.Model
		wantErr    error
	}{
		{"bad period", 0, 6, 0.95, schema.Additive, ErrInvalidInput},
		{"bad model", 12, 6, 0.95, schema.Model("stl"), ErrInvalidModel},
		{"bad horizon", 12, 0, 0.95, schema.Additive, ErrInvalidHorizon},
		{"bad confidence", 12, 6, 1.5, schema.Additive, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(raw, tt.period, tt.horizon, tt.confidence, schema.DefaultSensitivity(), tt.model)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRunNoiseFreeSeries(t *testing.T) {
	raw := additiveSeries(48).Points

	res, err := Run(raw, 12, 12, 0.95, schema.DefaultSensitivity(), schema.Additive)
	require.NoError(t, err)
	require.NotNil(t, res.Decomposition)
	require.NotNil(t, res.Forecast)
	assert.Empty(t, res.Alerts)
	assert.Len(t, res.Forecast.Points, 12)
}

func TestRunDetectsInjectedSpike(t *testing.T) {
	raw := additiveSeries(60).Points
	spikeAt := 30
	raw[spikeAt].Value += 80

	res, err := Run(raw, 12, 6, 0.95, schema.DefaultSensitivity(), schema.Additive)
	require.NoError(t, err)
	require.Len(t, res.Alerts, 1)

	a := res.Alerts[0]
	assert.Equal(t, raw[spikeAt].Time, a.Time)
	assert.Equal(t, schema.ResidualOutlier, a.Kind)
	assert.Equal(t, schema.SeverityCritical, a.Severity)
}

// A spike contaminates the seasonal average for its own cycle position and
// mirrors a deviation onto the other occurrences of that position. Only the
// spiked month itself may alert.
func TestRunSingleSpikeRaisesExactlyOneAlert(t *testing.T) {
	raw := additiveSeries(36).Points
	spikeAt := 20
	raw[spikeAt].Value += 500

	res, err := Run(raw, 12, 6, 0.95, schema.DefaultSensitivity(), schema.Additive)
	require.NoError(t, err)
	require.Len(t, res.Alerts, 1)

	a := res.Alerts[0]
	assert.Equal(t, raw[spikeAt].Time, a.Time)
	assert.Equal(t, schema.ResidualOutlier, a.Kind)
	assert.Equal(t, schema.SeverityCritical, a.Severity)
	assert.Greater(t, a.Score, 3.0)
	assert.InDelta(t, raw[spikeAt].Value-500, a.Expected, 1.0)
}

func TestRunIdenticalInputsBitIdenticalOutputs(t *testing.T) {
	raw := noisySeries(60, 4).Points
	raw[25].Value += 120

	first, err := Run(raw, 12, 8, 0.95, schema.DefaultSensitivity(), schema.Additive)
	require.NoError(t, err)
	require.NotEmpty(t, first.Alerts)
	second, err := Run(raw, 12, 8, 0.95, schema.DefaultSensitivity(), schema.Additive)
	require.NoError(t, err)

	assert.True(t, reflect.DeepEqual(first, second))
	for k := range first.Forecast.Points {
		assert.Equal(t,
			math.Float64bits(first.Forecast.Points[k].Value),
			math.Float64bits(second.Forecast.Points[k].Value), "step %d", k+1)
	}
}

func TestRunForecastStartsAfterSeries(t *testing.T) {
	raw := additiveSeries(48).Points

	res, err := Run(raw, 12, 6, 0.90, schema.DefaultSensitivity(), schema.Additive)
	require.NoError(t, err)

	end := res.Decomposition.Series.End()
	for k, p := range res.Forecast.Points {
		assert.Equal(t, schema.AddMonths(end, k+1), p.Time)
	}
}

func TestRunMultiplicative(t *testing.T) {
	raw := multiplicativeSeries(60).Points

	res, err := Run(raw, 12, 6, 0.95, schema.DefaultSensitivity(), schema.Multiplicative)
	require.NoError(t, err)
	assert.Equal(t, schema.Multiplicative, res.Decomposition.Model)
	assert.Equal(t, schema.Multiplicative, res.Forecast.Model)
}
