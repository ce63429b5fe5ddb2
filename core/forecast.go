package core

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"tradescope/schema"
)

// Project extends a decomposition beyond the observed horizon. The trend is
// a least-squares line fitted over the core trend region, continued forward;
// the seasonal cycle repeats from where the series left off. Confidence
// bounds widen with the forecast step as z * sigma * sqrt(k), where sigma is
// the standard deviation of the in-sample fit errors, so uncertainty
// accumulates the way a random walk does.
func Project(d *schema.Decomposition, horizon int, confidence float64) (*schema.Forecast, error) {
	if d == nil || d.Series == nil || d.Len() == 0 {
		return nil, fmt.Errorf("%w: empty decomposition", ErrInvalidInput)
	}
	if horizon < 1 {
		return nil, fmt.Errorf("%w: horizon must be at least 1, got %d", ErrInvalidHorizon, horizon)
	}
	if confidence <= 0 || confidence >= 1 {
		return nil, fmt.Errorf("%w: confidence level must be in (0, 1), got %g", ErrInvalidInput, confidence)
	}

	n := d.Len()
	period := d.Series.Period

	// Fit the trend line over the core region only; edge-extended trend
	// values would flatten the slope.
	xs := make([]float64, 0, d.CoreEnd-d.CoreStart)
	ys := make([]float64, 0, d.CoreEnd-d.CoreStart)
	for i := d.CoreStart; i < d.CoreEnd; i++ {
		xs = append(xs, float64(i))
		ys = append(ys, d.Trend[i])
	}
	intercept, slope := stat.LinearRegression(xs, ys, nil, false)

	// In-sample fit errors in value units for both models, so bound widths
	// stay comparable across models. Edge slots carry an extended trend, not
	// a fitted one, so only the core region counts.
	fitErrs := make([]float64, 0, d.CoreEnd-d.CoreStart)
	for i := d.CoreStart; i < d.CoreEnd; i++ {
		fitErrs = append(fitErrs, d.Series.Points[i].Value-d.Fitted(i))
	}
	sigma := stat.StdDev(fitErrs, nil)
	if math.IsNaN(sigma) {
		sigma = 0
	}

	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile((1 + confidence) / 2)

	points := make([]schema.ForecastPoint, horizon)
	end := d.Series.End()
	for k := 1; k <= horizon; k++ {
		x := float64(n - 1 + k)
		trendVal := intercept + slope*x
		seasonalVal := d.Indices[(n-1+k)%period]

		var value float64
		if d.Model == schema.Multiplicative {
			value = trendVal * seasonalVal
		} else {
			value = trendVal + seasonalVal
		}

		margin := z * sigma * math.Sqrt(float64(k))
		points[k-1] = schema.ForecastPoint{
			Time:  schema.AddMonths(end, k),
			Value: value,
			Lower: value - margin,
			Upper: value + margin,
		}
	}

	return &schema.Forecast{
		Points:      points,
		Model:       d.Model,
		Confidence:  confidence,
		ResidualStd: sigma,
		Slope:       slope,
		Intercept:   intercept,
	}, nil
}
