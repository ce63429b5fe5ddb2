package core

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"tradescope/schema"
)

// sigmaFloor is the residual spread below which the series is treated as
// noise-free and the residual rule stays silent. Additive deviations carry
// the data's units, so the floor scales with the value magnitude there;
// multiplicative deviations are already relative.
const sigmaFloor = 1e-12

// maxMaskPasses bounds the outlier masking loop in the residual rule.
const maxMaskPasses = 5

// maskGain is the spread shrink a trial mask must achieve to be accepted.
// Removing one point from ordinary noise barely moves the spread, so only a
// genuine contaminant clears this bar.
const maskGain = 0.5

// refitPasses bounds the fill refinement loop inside refitDeviations.
const refitPasses = 32

// Evaluate applies the alert rules to a decomposition and an optional
// forecast and returns the findings sorted by timestamp ascending, then
// severity descending. Invalid sensitivity thresholds fall back to the
// defaults rather than failing, so the pipeline always produces a result.
//
// The residual rule flags observations whose residual z-score crosses the
// sensitivity thresholds. The forecast rule compares observed values against
// a forecast's confidence bounds wherever their timestamps overlap, grading
// by how many bound widths the observation lands outside the interval.
func Evaluate(d *schema.Decomposition, f *schema.Forecast, sens schema.Sensitivity) []schema.Alert {
	if d == nil || d.Len() == 0 {
		return nil
	}
	if !(sens.WarningZ > 0 && sens.WarningZ < sens.CriticalZ) {
		sens = schema.DefaultSensitivity()
	}

	alerts := residualAlerts(d, sens)
	alerts = append(alerts, forecastAlerts(d, f)...)

	sort.SliceStable(alerts, func(i, j int) bool {
		if !alerts[i].Time.Equal(alerts[j].Time) {
			return alerts[i].Time.Before(alerts[j].Time)
		}
		if alerts[i].Severity != alerts[j].Severity {
			return alerts[i].Severity.Rank() > alerts[j].Severity.Rank()
		}
		return alerts[i].Kind < alerts[j].Kind
	})
	return alerts
}

// deviation measures a residual's distance from the model's neutral element.
func deviation(model schema.Model, residual float64) float64 {
	if model == schema.Multiplicative {
		return residual - 1
	}
	return residual
}

// expectedFrom recovers the fitted value a deviation was measured against.
func expectedFrom(model schema.Model, observed, dev float64) float64 {
	if model == schema.Multiplicative {
		return observed / (1 + dev)
	}
	return observed - dev
}

// residualAlerts flags points whose residual deviates from the model's
// neutral element by more than the sensitivity thresholds allow, measured in
// standard deviations of the residual spread. Edge slots outside the core
// trend region carry extension artifacts rather than real residuals, so the
// rule only considers the core.
//
// A single extreme observation contaminates its own fit: the seasonal average
// for its cycle position absorbs part of the deviation and mirrors the
// remainder onto the other occurrences of that position, so the raw scores
// flag the echoes alongside the spike. Critical candidates are therefore
// masked greedily. Each trial refits the components without the candidate,
// and the mask is kept only when it collapses the remaining spread, which
// singles out the contaminant over its echoes. The final scores come from the
// cleaned fit, where the injected point stands alone and the echoes score
// near zero.
func residualAlerts(d *schema.Decomposition, sens schema.Sensitivity) []schema.Alert {
	devs := make([]float64, d.Len())
	maxAbs := 0.0
	for i := d.CoreStart; i < d.CoreEnd; i++ {
		devs[i] = deviation(d.Model, d.Residual[i])
		maxAbs = math.Max(maxAbs, math.Abs(d.Series.Points[i].Value))
	}
	floor := sigmaFloor
	if d.Model == schema.Additive && maxAbs > 1 {
		floor *= maxAbs
	}

	sigma := stat.StdDev(devs[d.CoreStart:d.CoreEnd], nil)
	if math.IsNaN(sigma) || sigma < floor {
		return nil
	}

	masked := make([]bool, d.Len())
	for pass := 0; pass < maxMaskPasses; pass++ {
		best, bestSigma := -1, math.Inf(1)
		for i := d.CoreStart; i < d.CoreEnd; i++ {
			if masked[i] || math.Abs(devs[i]) < sens.CriticalZ*sigma {
				continue
			}
			masked[i] = true
			_, trial := refitDeviations(d, masked)
			masked[i] = false
			if !math.IsNaN(trial) && trial < bestSigma {
				best, bestSigma = i, trial
			}
		}
		if best < 0 || bestSigma >= sigma*maskGain {
			break
		}
		masked[best] = true
		devs, sigma = refitDeviations(d, masked)
		if math.IsNaN(sigma) || sigma < floor {
			sigma = floor
			break
		}
	}

	var alerts []schema.Alert
	for i := d.CoreStart; i < d.CoreEnd; i++ {
		score := math.Abs(devs[i]) / sigma
		var sev schema.Severity
		switch {
		case score >= sens.CriticalZ:
			sev = schema.SeverityCritical
		case score >= sens.WarningZ:
			sev = schema.SeverityWarning
		default:
			continue
		}
		alerts = append(alerts, schema.Alert{
			Time:     d.Series.Points[i].Time,
			Severity: sev,
			Kind:     schema.ResidualOutlier,
			Observed: d.Series.Points[i].Value,
			Expected: expectedFrom(d.Model, d.Series.Points[i].Value, devs[i]),
			Score:    score,
		})
	}
	return alerts
}

// refitDeviations re-estimates trend and seasonal components with the masked
// observations held out, then measures every core observation against the
// refit. Masked slots start as linear interpolations and are refined toward
// the fit on each pass, so the fill converges on trend plus seasonal and
// stops biasing the moving average. Only unmasked occurrences feed the
// seasonal averages, and the returned spread covers the unmasked core points
// only.
func refitDeviations(d *schema.Decomposition, masked []bool) ([]float64, float64) {
	values := d.Series.Values()
	period := d.Series.Period
	mult := d.Model == schema.Multiplicative

	filled := fillMasked(values, masked)
	indices := make([]float64, period)
	var trend []float64
	var coreStart, coreEnd int

	for pass := 0; pass < refitPasses; pass++ {
		trend, coreStart, coreEnd = centeredTrend(filled, period)

		sums := make([]float64, period)
		counts := make([]int, period)
		for i := coreStart; i < coreEnd; i++ {
			if masked[i] {
				continue
			}
			pos := i % period
			if mult {
				sums[pos] += values[i] / trend[i]
			} else {
				sums[pos] += values[i] - trend[i]
			}
			counts[pos]++
		}
		for pos := range indices {
			switch {
			case counts[pos] > 0:
				indices[pos] = sums[pos] / float64(counts[pos])
			case mult:
				indices[pos] = 1
			default:
				indices[pos] = 0
			}
		}
		mean := stat.Mean(indices, nil)
		for pos := range indices {
			if mult {
				indices[pos] /= mean
			} else {
				indices[pos] -= mean
			}
		}

		delta := 0.0
		for i := range filled {
			if !masked[i] {
				continue
			}
			fit := trend[i] + indices[i%period]
			if mult {
				fit = trend[i] * indices[i%period]
			}
			delta = math.Max(delta, math.Abs(fit-filled[i]))
			filled[i] = fit
		}
		if delta < 1e-9 {
			break
		}
	}

	devs := make([]float64, len(values))
	spread := make([]float64, 0, coreEnd-coreStart)
	for i := coreStart; i < coreEnd; i++ {
		if mult {
			devs[i] = values[i]/(trend[i]*indices[i%period]) - 1
		} else {
			devs[i] = values[i] - trend[i] - indices[i%period]
		}
		if !masked[i] {
			spread = append(spread, devs[i])
		}
	}
	return devs, stat.StdDev(spread, nil)
}

// fillMasked returns a copy of values with masked entries linearly
// interpolated from the nearest unmasked neighbors, mirroring the gap policy
// of Prepare. Leading or trailing masked runs carry the nearest unmasked
// value.
func fillMasked(values []float64, masked []bool) []float64 {
	filled := make([]float64, len(values))
	copy(filled, values)
	prev := -1
	for i := range values {
		if masked[i] {
			continue
		}
		if prev < 0 {
			for j := 0; j < i; j++ {
				filled[j] = values[i]
			}
		} else if i > prev+1 {
			step := (values[i] - values[prev]) / float64(i-prev)
			for j := prev + 1; j < i; j++ {
				filled[j] = values[prev] + step*float64(j-prev)
			}
		}
		prev = i
	}
	if prev >= 0 {
		for j := prev + 1; j < len(values); j++ {
			filled[j] = values[prev]
		}
	}
	return filled
}

// forecastAlerts checks observed values against forecast bounds where the
// timestamps coincide. An empty overlap, as with a forecast that extends past
// the observed series, yields nothing.
func forecastAlerts(d *schema.Decomposition, f *schema.Forecast) []schema.Alert {
	if f == nil || len(f.Points) == 0 {
		return nil
	}
	byMonth := make(map[int64]schema.TimePoint, d.Len())
	for _, p := range d.Series.Points {
		byMonth[p.Time.Unix()] = p
	}

	var alerts []schema.Alert
	for _, fp := range f.Points {
		obs, ok := byMonth[fp.Time.Unix()]
		if !ok || (obs.Value >= fp.Lower && obs.Value <= fp.Upper) {
			continue
		}
		width := math.Max(fp.Upper-fp.Lower, sigmaFloor)
		dist := fp.Lower - obs.Value
		if obs.Value > fp.Upper {
			dist = obs.Value - fp.Upper
		}
		score := dist / width

		var sev schema.Severity
		switch {
		case score < 0.5:
			sev = schema.SeverityInfo
		case score < 1.5:
			sev = schema.SeverityWarning
		default:
			sev = schema.SeverityCritical
		}
		alerts = append(alerts, schema.Alert{
			Time:     fp.Time,
			Severity: sev,
			Kind:     schema.ForecastDeviation,
			Observed: obs.Value,
			Expected: fp.Value,
			Score:    score,
		})
	}
	return alerts
}
