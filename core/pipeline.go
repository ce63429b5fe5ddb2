// Package core implements the trade series analysis pipeline: preparation,
// seasonal decomposition, trend forecasting, and anomaly alerting.
package core

import "tradescope/schema"

// Run executes the full pipeline in order: prepare, decompose, project,
// evaluate. The first stage to fail stops the run and its error comes back
// unchanged, so errors.Is matching works the same as calling the stage
// directly. The forecast evaluated here extends past the observed series, so
// the alerts of a fresh run come from the residual rule alone.
func Run(raw []schema.TimePoint, period, horizon int, confidence float64,
	sens schema.Sensitivity, model schema.Model) (*schema.PipelineResult, error) {
	series, err := Prepare(raw, period)
	if err != nil {
		return nil, err
	}
	decomp, err := Decompose(series, model)
	if err != nil {
		return nil, err
	}
	forecast, err := Project(decomp, horizon, confidence)
	if err != nil {
		return nil, err
	}
	alerts := Evaluate(decomp, forecast, sens)
	return &schema.PipelineResult{
		Decomposition: decomp,
		Forecast:      forecast,
		Alerts:        alerts,
	}, nil
}
