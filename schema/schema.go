// Package schema has configs, models and shared types for all parts of tradescope.
package schema

import "time"

// TimePoint is a single monthly observation in a trade series.
// Time is normalized to the first day of the month in UTC. Missing marks a
// calendar slot that had no observation before gap filling; the preprocessor
// replaces missing values by interpolation so downstream components never see
// them, but the flag is preserved so callers can tell observed from filled.
type TimePoint struct {
	Time    time.Time `json:"time"`
	Value   float64   `json:"value"`
	Missing bool      `json:"missing,omitempty"`
}

// Series is a fixed-frequency monthly sequence with strictly increasing,
// contiguous timestamps. Period is the seasonal cycle length in months
// (12 for yearly seasonality). A Series is never mutated after construction.
type Series struct {
	Points []TimePoint `json:"points"`
	Period int         `json:"period"`
}

// Len returns the number of points in the series.
func (s *Series) Len() int {
	return len(s.Points)
}

// Values returns a copy of the series values in timestamp order.
func (s *Series) Values() []float64 {
	vals := make([]float64, len(s.Points))
	for i, p := range s.Points {
		vals[i] = p.Value
	}
	return vals
}

// Start returns the timestamp of the first point, or the zero time for an
// empty series.
func (s *Series) Start() time.Time {
	if len(s.Points) == 0 {
		return time.Time{}
	}
	return s.Points[0].Time
}

// End returns the timestamp of the last point, or the zero time for an
// empty series.
func (s *Series) End() time.Time {
	if len(s.Points) == 0 {
		return time.Time{}
	}
	return s.Points[len(s.Points)-1].Time
}

// ObservedCount returns the number of points that carry a real observation
// rather than a gap-filled value.
func (s *Series) ObservedCount() int {
	n := 0
	for _, p := range s.Points {
		if !p.Missing {
			n++
		}
	}
	return n
}
