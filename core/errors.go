package core

import "errors"

// Sentinel errors for pipeline stages. The orchestrator never wraps or
// translates these, so callers can match them with errors.Is regardless of
// which stage failed.
var (
	// ErrInvalidInput means an input parameter is structurally unusable:
	// empty data, a non-positive period, all values missing, or a
	// confidence level outside (0, 1).
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientData means the series has fewer than two full seasonal
	// cycles of real observations.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidModel means the decomposition model is unknown, or the
	// series is incompatible with it (non-positive values under the
	// multiplicative model).
	ErrInvalidModel = errors.New("invalid model")

	// ErrInvalidHorizon means the forecast horizon is not positive.
	ErrInvalidHorizon = errors.New("invalid horizon")
)
