package core

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradescope/schema"
)

// seasonalCycle is a yearly pattern summing to zero, for additive fixtures.
var seasonalCycle = [12]float64{10, -10, 5, -5, 0, 0, 8, -8, 3, -3, 0, 0}

// additiveSeries builds a noise-free series of n months: linear trend plus
// the yearly cycle.
func additiveSeries(n int) *schema.Series {
	start := schema.MonthOf(2020, time.January)
	points := monthlyPoints(start, n, func(i int) float64 {
		return 100 + 2*float64(i) + seasonalCycle[i%12]
	})
	return &schema.Series{Points: points, Period: 12}
}

// multiplicativeSeries builds a noise-free positive series of n months:
// linear trend scaled by a yearly factor cycle averaging one.
func multiplicativeSeries(n int) *schema.Series {
	factors := [12]float64{1.10, 0.90, 1.05, 0.95, 1.00, 1.00, 1.08, 0.92, 1.03, 0.97, 1.00, 1.00}
	start := schema.MonthOf(2020, time.January)
	points := monthlyPoints(start, n, func(i int) float64 {
		return (200 + float64(i)) * factors[i%12]
	})
	return &schema.Series{Points: points, Period: 12}
}

func TestDecomposeValidation(t *testing.T) {
	tests := []struct {
		name    string
		series  *schema.Series
		model   schema.Model
		wantErr error
	}{
		{"nil series", nil, schema.Additive, ErrInvalidInput},
		{"empty series", &schema.Series{Period: 12}, schema.Additive, ErrInvalidInput},
		{"zero period", &schema.Series{Points: additiveSeries(24).Points, Period: 0}, schema.Additive, ErrInvalidInput},
		{"unknown model", additiveSeries(24), schema.Model("robust"), ErrInvalidModel},
		{"too short", additiveSeries(20), schema.Additive, ErrInsufficientData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decompose(tt.series, tt.model)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecomposeMultiplicativeRejectsNonPositive(t *testing.T) {
	s := multiplicativeSeries(36)
	s.Points[5].Value = 0
	_, err := Decompose(s, schema.Multiplicative)
	assert.ErrorIs(t, err, ErrInvalidModel)

	s.Points[5].Value = -3
	_, err = Decompose(s, schema.Multiplicative)
	assert.ErrorIs(t, err, ErrInvalidModel)
}

func TestDecomposeAdditiveRecoversComponents(t *testing.T) {
	s := additiveSeries(48)
	d, err := Decompose(s, schema.Additive)
	require.NoError(t, err)

	assert.Equal(t, 6, d.CoreStart)
	assert.Equal(t, 42, d.CoreEnd)

	// The centered moving average cancels the cycle exactly on noise-free
	// data, so core trend is the underlying line and residuals vanish.
	for i := d.CoreStart; i < d.CoreEnd; i++ {
		assert.InDelta(t, 100+2*float64(i), d.Trend[i], 1e-9, "trend at %d", i)
		assert.InDelta(t, 0, d.Residual[i], 1e-9, "residual at %d", i)
	}
	for pos, want := range seasonalCycle {
		assert.InDelta(t, want, d.Indices[pos], 1e-9, "index at %d", pos)
	}
}

func TestDecomposeIndicesNormalized(t *testing.T) {
	add, err := Decompose(additiveSeries(48), schema.Additive)
	require.NoError(t, err)
	sum := 0.0
	for _, v := range add.Indices {
		sum += v
	}
	assert.InDelta(t, 0, sum, 1e-9)

	mul, err := Decompose(multiplicativeSeries(48), schema.Multiplicative)
	require.NoError(t, err)
	mean := 0.0
	for _, v := range mul.Indices {
		mean += v
	}
	mean /= float64(len(mul.Indices))
	assert.InDelta(t, 1, mean, 1e-9)
}

func TestDecomposeReconstructionIdentity(t *testing.T) {
	add, err := Decompose(additiveSeries(48), schema.Additive)
	require.NoError(t, err)
	for i, p := range add.Series.Points {
		got := add.Trend[i] + add.Seasonal[i] + add.Residual[i]
		assert.InDelta(t, p.Value, got, 1e-9, "additive identity at %d", i)
	}

	mul, err := Decompose(multiplicativeSeries(48), schema.Multiplicative)
	require.NoError(t, err)
	for i, p := range mul.Series.Points {
		got := mul.Trend[i] * mul.Seasonal[i] * mul.Residual[i]
		assert.InDelta(t, p.Value, got, 1e-9, "multiplicative identity at %d", i)
	}
}

func TestDecomposeMultiplicativeApproximatesFactors(t *testing.T) {
	d, err := Decompose(multiplicativeSeries(60), schema.Multiplicative)
	require.NoError(t, err)
	factors := [12]float64{1.10, 0.90, 1.05, 0.95, 1.00, 1.00, 1.08, 0.92, 1.03, 0.97, 1.00, 1.00}
	for pos, want := range factors {
		assert.InDelta(t, want, d.Indices[pos], 0.02, "factor at %d", pos)
	}
	for i := d.CoreStart; i < d.CoreEnd; i++ {
		assert.InDelta(t, 1, d.Residual[i], 0.05, "residual at %d", i)
	}
}

func TestDecomposeEdgeTrendExtension(t *testing.T) {
	d, err := Decompose(additiveSeries(48), schema.Additive)
	require.NoError(t, err)
	for i := 0; i < d.CoreStart; i++ {
		assert.Equal(t, d.Trend[d.CoreStart], d.Trend[i])
	}
	for i := d.CoreEnd; i < d.Len(); i++ {
		assert.Equal(t, d.Trend[d.CoreEnd-1], d.Trend[i])
	}
	for i := range d.Trend {
		assert.False(t, math.IsNaN(d.Trend[i]))
	}
}

func TestDecomposeOddPeriod(t *testing.T) {
	cycle := [5]float64{4, -2, 1, -3, 0}
	start := schema.MonthOf(2022, time.January)
	points := monthlyPoints(start, 25, func(i int) float64 {
		return 50 + float64(i) + cycle[i%5]
	})
	d, err := Decompose(&schema.Series{Points: points, Period: 5}, schema.Additive)
	require.NoError(t, err)

	assert.Equal(t, 2, d.CoreStart)
	assert.Equal(t, 23, d.CoreEnd)
	for i := d.CoreStart; i < d.CoreEnd; i++ {
		assert.InDelta(t, 50+float64(i), d.Trend[i], 1e-9)
		assert.InDelta(t, 0, d.Residual[i], 1e-9)
	}
}
