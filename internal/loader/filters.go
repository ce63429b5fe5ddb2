package loader

import (
	"sort"
	"strings"
	"time"

	"tradescope/schema"
)

// Filter keeps the records matching all the given criteria. An empty slice
// for a criterion means no restriction on that dimension. Partner matching is
// case-insensitive.
func Filter(records []schema.TradeRecord, years []int, months []time.Month, partners []string) []schema.TradeRecord {
	yearSet := make(map[int]struct{}, len(years))
	for _, y := range years {
		yearSet[y] = struct{}{}
	}
	monthSet := make(map[time.Month]struct{}, len(months))
	for _, m := range months {
		monthSet[m] = struct{}{}
	}
	partnerSet := make(map[string]struct{}, len(partners))
	for _, p := range partners {
		partnerSet[strings.ToLower(p)] = struct{}{}
	}

	out := make([]schema.TradeRecord, 0, len(records))
	for _, r := range records {
		if len(yearSet) > 0 {
			if _, ok := yearSet[r.Year]; !ok {
				continue
			}
		}
		if len(monthSet) > 0 {
			if _, ok := monthSet[time.Month(r.Month)]; !ok {
				continue
			}
		}
		if len(partnerSet) > 0 {
			if _, ok := partnerSet[strings.ToLower(r.Partner)]; !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// Aggregate sums tonnage per calendar month across all partners and returns
// the points in timestamp order. Months absent from the records are simply
// absent here; gap handling belongs to the pipeline's preparation stage.
func Aggregate(records []schema.TradeRecord) []schema.TimePoint {
	totals := make(map[int64]float64)
	stamps := make(map[int64]time.Time)
	for _, r := range records {
		t := r.Date()
		totals[t.Unix()] += r.Tons
		stamps[t.Unix()] = t
	}

	points := make([]schema.TimePoint, 0, len(totals))
	for key, total := range totals {
		points = append(points, schema.TimePoint{Time: stamps[key], Value: total})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Time.Before(points[j].Time)
	})
	return points
}

// Summarize computes headline figures over a record set.
func Summarize(records []schema.TradeRecord) schema.DatasetSummary {
	if len(records) == 0 {
		return schema.DatasetSummary{}
	}

	partners := make(map[string]struct{})
	var total float64
	for _, r := range records {
		partners[strings.ToLower(r.Partner)] = struct{}{}
		total += r.Tons
	}

	points := Aggregate(records)
	first := points[0].Time
	last := points[len(points)-1].Time

	return schema.DatasetSummary{
		Records:      len(records),
		Partners:     len(partners),
		Months:       len(points),
		TotalTons:    total,
		MonthlyMean:  total / float64(len(points)),
		FirstPeriod:  first.Format("2006-01"),
		LatestPeriod: last.Format("2006-01"),
	}
}

// PartnerTotals ranks partners by total tonnage, descending, with ties broken
// by name so the ordering is stable. Limit <= 0 means no limit.
func PartnerTotals(records []schema.TradeRecord, limit int) []schema.PartnerTotal {
	byPartner := make(map[string]float64)
	var grand float64
	for _, r := range records {
		byPartner[r.Partner] += r.Tons
		grand += r.Tons
	}

	totals := make([]schema.PartnerTotal, 0, len(byPartner))
	for partner, tons := range byPartner {
		share := 0.0
		if grand > 0 {
			share = tons / grand
		}
		totals = append(totals, schema.PartnerTotal{Partner: partner, Tons: tons, Share: share})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Tons != totals[j].Tons {
			return totals[i].Tons > totals[j].Tons
		}
		return totals[i].Partner < totals[j].Partner
	})

	if limit > 0 && len(totals) > limit {
		totals = totals[:limit]
	}
	return totals
}
