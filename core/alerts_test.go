package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradescope/schema"
)

// flatDecomp hand-builds an additive decomposition with constant trend 100,
// no seasonality, and the given residuals, so the alert rules can be tested
// in isolation.
func flatDecomp(residuals []float64) *schema.Decomposition {
	n := len(residuals)
	start := schema.MonthOf(2022, time.January)
	points := make([]schema.TimePoint, n)
	trend := make([]float64, n)
	seasonal := make([]float64, n)
	for i := range points {
		points[i] = schema.TimePoint{Time: schema.AddMonths(start, i), Value: 100 + residuals[i]}
		trend[i] = 100
	}
	return &schema.Decomposition{
		Series:    &schema.Series{Points: points, Period: 1},
		Model:     schema.Additive,
		Trend:     trend,
		Seasonal:  seasonal,
		Residual:  residuals,
		Indices:   []float64{0},
		CoreStart: 0,
		CoreEnd:   n,
	}
}

func TestEvaluateNoiseFreeSeriesYieldsNoAlerts(t *testing.T) {
	d, err := Decompose(additiveSeries(48), schema.Additive)
	require.NoError(t, err)
	f, err := Project(d, 6, 0.95)
	require.NoError(t, err)

	alerts := Evaluate(d, f, schema.DefaultSensitivity())
	assert.Empty(t, alerts)
}

func TestEvaluateNilDecomposition(t *testing.T) {
	assert.Nil(t, Evaluate(nil, nil, schema.DefaultSensitivity()))
}

func TestEvaluateResidualSpike(t *testing.T) {
	residuals := []float64{0.1, -0.1, 0.1, -0.1, 0.1, -0.1, 0.1, -0.1, 0, 10}
	d := flatDecomp(residuals)

	alerts := Evaluate(d, nil, schema.DefaultSensitivity())
	require.Len(t, alerts, 1)

	a := alerts[0]
	assert.Equal(t, schema.ResidualOutlier, a.Kind)
	assert.Equal(t, schema.SeverityCritical, a.Severity)
	assert.Equal(t, d.Series.Points[9].Time, a.Time)
	assert.Equal(t, 110.0, a.Observed)
	assert.Equal(t, 100.0, a.Expected)
	assert.Greater(t, a.Score, 3.0)
}

func TestEvaluateSensitivityTiers(t *testing.T) {
	residuals := []float64{0.1, -0.1, 0.1, -0.1, 0.1, -0.1, 0.1, -0.1, 0, 10}
	d := flatDecomp(residuals)

	// Raising the critical threshold above the spike's score downgrades the
	// same deviation to a warning.
	alerts := Evaluate(d, nil, schema.Sensitivity{WarningZ: 2.0, CriticalZ: 10.0})
	require.Len(t, alerts, 1)
	assert.Equal(t, schema.SeverityWarning, alerts[0].Severity)
}

func TestEvaluateInvalidSensitivityFallsBack(t *testing.T) {
	residuals := []float64{0.1, -0.1, 0.1, -0.1, 0.1, -0.1, 0.1, -0.1, 0, 10}
	d := flatDecomp(residuals)

	withDefault := Evaluate(d, nil, schema.DefaultSensitivity())
	withInvalid := Evaluate(d, nil, schema.Sensitivity{WarningZ: -1, CriticalZ: 0})
	assert.Equal(t, withDefault, withInvalid)

	inverted := Evaluate(d, nil, schema.Sensitivity{WarningZ: 5, CriticalZ: 2})
	assert.Equal(t, withDefault, inverted)
}

func TestEvaluateForecastDeviationTiers(t *testing.T) {
	d := flatDecomp(make([]float64, 10))
	monthAt := func(i int) time.Time { return d.Series.Points[i].Time }

	f := &schema.Forecast{
		Model:      schema.Additive,
		Confidence: 0.95,
		Points: []schema.ForecastPoint{
			// Inside the interval: no alert.
			{Time: monthAt(5), Value: 100, Lower: 90, Upper: 110},
			// 0.4 widths below the lower bound: info.
			{Time: monthAt(6), Value: 110, Lower: 104, Upper: 114},
			// 1.0 width above the upper bound: warning.
			{Time: monthAt(7), Value: 85, Lower: 80, Upper: 90},
			// 2.0 widths above the upper bound: critical.
			{Time: monthAt(8), Value: 55, Lower: 50, Upper: 70},
			// Past the observed series: no overlap, no alert.
			{Time: schema.AddMonths(monthAt(9), 1), Value: 100, Lower: 90, Upper: 110},
		},
	}

	alerts := Evaluate(d, f, schema.DefaultSensitivity())
	require.Len(t, alerts, 3)

	assert.Equal(t, schema.SeverityInfo, alerts[0].Severity)
	assert.Equal(t, monthAt(6), alerts[0].Time)
	assert.InDelta(t, 0.4, alerts[0].Score, 1e-9)
	assert.Equal(t, 110.0, alerts[0].Expected)

	assert.Equal(t, schema.SeverityWarning, alerts[1].Severity)
	assert.InDelta(t, 1.0, alerts[1].Score, 1e-9)

	assert.Equal(t, schema.SeverityCritical, alerts[2].Severity)
	assert.InDelta(t, 2.0, alerts[2].Score, 1e-9)
	for _, a := range alerts {
		assert.Equal(t, schema.ForecastDeviation, a.Kind)
	}
}

func TestEvaluateOrdering(t *testing.T) {
	residuals := []float64{0.1, -0.1, 0.1, -0.1, 0.1, -0.1, 0.1, -0.1, 0, 10}
	d := flatDecomp(residuals)

	// A forecast miss at the same month as the residual spike, plus an
	// earlier one, to exercise both sort keys.
	f := &schema.Forecast{
		Model: schema.Additive,
		Points: []schema.ForecastPoint{
			{Time: d.Series.Points[9].Time, Value: 100, Lower: 98, Upper: 102},
			{Time: d.Series.Points[3].Time, Value: 100.1, Lower: 100.0, Upper: 100.2},
		},
	}

	alerts := Evaluate(d, f, schema.DefaultSensitivity())
	require.Len(t, alerts, 3)

	// Timestamps ascending.
	for i := 1; i < len(alerts); i++ {
		assert.False(t, alerts[i].Time.Before(alerts[i-1].Time))
	}
	// At the shared month the more severe alert comes first.
	assert.Equal(t, d.Series.Points[3].Time, alerts[0].Time)
	assert.Equal(t, d.Series.Points[9].Time, alerts[1].Time)
	assert.Equal(t, d.Series.Points[9].Time, alerts[2].Time)
	assert.GreaterOrEqual(t, alerts[1].Severity.Rank(), alerts[2].Severity.Rank())
}
