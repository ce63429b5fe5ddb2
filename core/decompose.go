package core

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"tradescope/schema"
)

// Decompose splits a prepared series into trend, seasonal, and residual
// components using classical decomposition. The trend comes from a centered
// moving average over one full cycle; the seasonal component averages the
// detrended values by position within the cycle and normalizes the indices;
// the residual is whatever remains.
//
// The moving average leaves half a cycle undefined at each edge. Those edge
// slots take the nearest core trend value so the reconstruction identity
// holds at every point, but only the core region feeds seasonal estimation
// and the forecast's trend regression.
func Decompose(s *schema.Series, model schema.Model) (*schema.Decomposition, error) {
	if s == nil || s.Len() == 0 {
		return nil, fmt.Errorf("%w: empty series", ErrInvalidInput)
	}
	period := s.Period
	if period < 1 {
		return nil, fmt.Errorf("%w: period must be at least 1, got %d", ErrInvalidInput, period)
	}
	if _, ok := schema.ValidModels[model]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidModel, model)
	}
	n := s.Len()
	if n < 2*period {
		return nil, fmt.Errorf("%w: need %d points for period %d, got %d",
			ErrInsufficientData, 2*period, period, n)
	}

	values := s.Values()
	if model == schema.Multiplicative {
		for i, v := range values {
			if v <= 0 {
				return nil, fmt.Errorf("%w: multiplicative model requires positive values, got %g at index %d",
					ErrInvalidModel, v, i)
			}
		}
	}

	trend, coreStart, coreEnd := centeredTrend(values, period)

	// Detrend over the core region only, then average by cycle position.
	indices := make([]float64, period)
	counts := make([]int, period)
	for i := coreStart; i < coreEnd; i++ {
		pos := i % period
		if model == schema.Multiplicative {
			indices[pos] += values[i] / trend[i]
		} else {
			indices[pos] += values[i] - trend[i]
		}
		counts[pos]++
	}
	for pos := range indices {
		if counts[pos] > 0 {
			indices[pos] /= float64(counts[pos])
		} else if model == schema.Multiplicative {
			indices[pos] = 1
		}
	}

	// Normalize so the indices sum to zero (additive) or average to one
	// (multiplicative) across the cycle.
	mean := stat.Mean(indices, nil)
	for pos := range indices {
		if model == schema.Multiplicative {
			indices[pos] /= mean
		} else {
			indices[pos] -= mean
		}
	}

	seasonal := make([]float64, n)
	residual := make([]float64, n)
	for i := range values {
		seasonal[i] = indices[i%period]
		if model == schema.Multiplicative {
			residual[i] = values[i] / (trend[i] * seasonal[i])
		} else {
			residual[i] = values[i] - trend[i] - seasonal[i]
		}
	}

	return &schema.Decomposition{
		Series:    s,
		Model:     model,
		Trend:     trend,
		Seasonal:  seasonal,
		Residual:  residual,
		Indices:   indices,
		CoreStart: coreStart,
		CoreEnd:   coreEnd,
	}, nil
}

// centeredTrend computes the centered moving average over one cycle. An even
// cycle uses a two-pass average where the endpoints get half weight, which
// keeps the window centered on the observation. Returns the trend slice plus
// the half-open core range where the average is defined; edge slots outside
// the core carry the nearest core value.
func centeredTrend(values []float64, period int) (trend []float64, coreStart, coreEnd int) {
	n := len(values)
	trend = make([]float64, n)
	half := period / 2

	if period == 1 {
		copy(trend, values)
		return trend, 0, n
	}

	coreStart = half
	coreEnd = n - half
	if period%2 == 0 {
		for i := coreStart; i < coreEnd; i++ {
			sum := 0.5*values[i-half] + 0.5*values[i+half]
			for j := i - half + 1; j < i+half; j++ {
				sum += values[j]
			}
			trend[i] = sum / float64(period)
		}
	} else {
		for i := coreStart; i < coreEnd; i++ {
			sum := 0.0
			for j := i - half; j <= i+half; j++ {
				sum += values[j]
			}
			trend[i] = sum / float64(period)
		}
	}

	for i := 0; i < coreStart; i++ {
		trend[i] = trend[coreStart]
	}
	for i := coreEnd; i < n; i++ {
		trend[i] = trend[coreEnd-1]
	}
	return trend, coreStart, coreEnd
}
