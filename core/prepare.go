package core

import (
	"fmt"
	"math"
	"sort"

	"tradescope/schema"
)

// Prepare turns raw monthly observations into a fixed-frequency Series ready
// for decomposition. It normalizes timestamps to first-of-month UTC,
// deduplicates (the last observation for a month wins), sorts ascending,
// fills calendar gaps, and interpolates missing values so every point in the
// result carries a usable value. Gap-filled and interpolated points keep
// Missing set so callers can tell them from real observations.
//
// Only real observations count toward the two-full-cycles minimum.
func Prepare(raw []schema.TimePoint, period int) (*schema.Series, error) {
	if period < 1 {
		return nil, fmt.Errorf("%w: period must be at least 1, got %d", ErrInvalidInput, period)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no observations", ErrInvalidInput)
	}

	// Dedup by normalized month, last observation wins. NaN values are
	// treated as missing observations for that month.
	byMonth := make(map[int64]schema.TimePoint, len(raw))
	for _, p := range raw {
		t := schema.NormalizeMonth(p.Time)
		missing := p.Missing || math.IsNaN(p.Value)
		byMonth[t.Unix()] = schema.TimePoint{Time: t, Value: p.Value, Missing: missing}
	}

	observed := make([]schema.TimePoint, 0, len(byMonth))
	for _, p := range byMonth {
		if !p.Missing {
			observed = append(observed, p)
		}
	}
	if len(observed) == 0 {
		return nil, fmt.Errorf("%w: all observations missing", ErrInvalidInput)
	}
	if len(observed) < 2*period {
		return nil, fmt.Errorf("%w: need %d observations for period %d, got %d",
			ErrInsufficientData, 2*period, period, len(observed))
	}
	sort.Slice(observed, func(i, j int) bool {
		return observed[i].Time.Before(observed[j].Time)
	})

	// Lay out a contiguous monthly grid from first to last observation and
	// place real observations on it.
	start := observed[0].Time
	end := observed[len(observed)-1].Time
	n := schema.MonthsBetween(start, end) + 1
	points := make([]schema.TimePoint, n)
	for i := range points {
		points[i] = schema.TimePoint{Time: schema.AddMonths(start, i), Missing: true}
	}
	for _, p := range observed {
		points[schema.MonthsBetween(start, p.Time)] = p
	}

	interpolateGaps(points)
	return &schema.Series{Points: points, Period: period}, nil
}

// interpolateGaps fills missing values linearly between the nearest observed
// neighbors. The first and last points are always observed by construction,
// so every gap has a neighbor on both sides.
func interpolateGaps(points []schema.TimePoint) {
	prev := 0
	for i := 1; i < len(points); i++ {
		if points[i].Missing {
			continue
		}
		if i > prev+1 {
			span := float64(i - prev)
			step := (points[i].Value - points[prev].Value) / span
			for j := prev + 1; j < i; j++ {
				points[j].Value = points[prev].Value + step*float64(j-prev)
			}
		}
		prev = i
	}
}
