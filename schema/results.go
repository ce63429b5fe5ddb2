package schema

import "time"

// Decomposition splits a Series into trend, seasonal, and residual components.
// The slices are indexed in lockstep with Series.Points, so for every point i
// the additive identity Value = Trend[i] + Seasonal[i] + Residual[i] holds
// exactly (multiplicative: Value = Trend[i] * Seasonal[i] * Residual[i]).
// A Decomposition is owned by the decomposer that produced it and is consumed
// read-only downstream.
type Decomposition struct {
	Series   *Series   `json:"series"`
	Model    Model     `json:"model"`
	Trend    []float64 `json:"trend"`
	Seasonal []float64 `json:"seasonal"`
	Residual []float64 `json:"residual"`

	// Indices holds one normalized seasonal index per position in the cycle,
	// summing to zero (additive) or averaging to one (multiplicative).
	Indices []float64 `json:"indices"`

	// CoreStart and CoreEnd bound the half-open index range [CoreStart,
	// CoreEnd) where the trend came from the centered moving average rather
	// than edge extension. Only core trend values feed seasonal estimation
	// and trend regression.
	CoreStart int `json:"core_start"`
	CoreEnd   int `json:"core_end"`
}

// Len returns the number of decomposed points.
func (d *Decomposition) Len() int {
	return len(d.Trend)
}

// Fitted returns trend + seasonal (additive) or trend * seasonal
// (multiplicative) at index i: the model's expectation for that point.
func (d *Decomposition) Fitted(i int) float64 {
	if d.Model == Multiplicative {
		return d.Trend[i] * d.Seasonal[i]
	}
	return d.Trend[i] + d.Seasonal[i]
}

// ForecastPoint is one projected observation beyond the input horizon.
// Lower <= Value <= Upper always holds.
type ForecastPoint struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
	Lower float64   `json:"lower"`
	Upper float64   `json:"upper"`
}

// Forecast projects a decomposed series forward with confidence bounds.
type Forecast struct {
	Points     []ForecastPoint `json:"points"`
	Model      Model           `json:"model"`
	Confidence float64         `json:"confidence"`

	// ResidualStd is the standard deviation of (observed - fitted) over the
	// input series; bound widths derive from it.
	ResidualStd float64 `json:"residual_std"`

	// Slope and Intercept describe the fitted trend line in units of value
	// per month, with x measured as the point index within the input series.
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// Alert flags a single anomalous observation or forecast miss. Alerts are
// derived facts, never mutated after creation.
type Alert struct {
	Time     time.Time `json:"time"`
	Severity Severity  `json:"severity"`
	Kind     AlertKind `json:"kind"`
	Observed float64   `json:"observed"`
	Expected float64   `json:"expected"`

	// Score is the deviation magnitude: residual z-score for
	// residual_outlier, bound-widths outside the interval for
	// forecast_deviation.
	Score float64 `json:"score"`
}

// Sensitivity holds the z-score thresholds for the residual outlier rule.
// 0 < WarningZ < CriticalZ must hold.
type Sensitivity struct {
	WarningZ  float64 `json:"warning_z"`
	CriticalZ float64 `json:"critical_z"`
}

// DefaultSensitivity returns the standard two/three sigma thresholds.
func DefaultSensitivity() Sensitivity {
	return Sensitivity{WarningZ: DefaultWarningZ, CriticalZ: DefaultCriticalZ}
}

// PipelineResult is the complete output of one pipeline invocation.
type PipelineResult struct {
	Decomposition *Decomposition `json:"decomposition"`
	Forecast      *Forecast      `json:"forecast"`
	Alerts        []Alert        `json:"alerts"`
}
