package schema

import (
	"strconv"
	"strings"
	"time"
)

// MonthOf returns the first day of the given month at midnight UTC.
func MonthOf(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// NormalizeMonth truncates an arbitrary timestamp to first-of-month UTC.
func NormalizeMonth(t time.Time) time.Time {
	u := t.UTC()
	return MonthOf(u.Year(), u.Month())
}

// AddMonths advances a first-of-month timestamp by n calendar months.
func AddMonths(t time.Time, n int) time.Time {
	return t.AddDate(0, n, 0)
}

// MonthsBetween returns the number of calendar months from a to b.
// Both timestamps must already be month-normalized. Negative when b < a.
func MonthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()-a.Month())
}

// monthNames maps lowercased month names and common three-letter
// abbreviations to their calendar month.
var monthNames = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may": time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// ParseMonth parses a month given as a number ("1", "01") or a name
// ("January", "jan"). Returns 0 and false when the input is not a month.
func ParseMonth(raw string) (time.Month, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 12 {
			return time.Month(n), true
		}
		return 0, false
	}
	if m, ok := monthNames[s]; ok {
		return m, true
	}
	return 0, false
}
