package finder

import (
	"fmt"
	"regexp"
	"time"
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// ValidMonth reports whether s is a YYYY-MM token.
func ValidMonth(s string) bool {
	return monthPattern.MatchString(s)
}

// ExpandMonths returns every YYYY-MM token from the earlier to the later date,
// inclusive. The argument order does not matter.
func ExpandMonths(start, end time.Time) []string {
	if start.After(end) {
		start, end = end, start
	}

	y, m := start.Year(), int(start.Month())
	endY, endM := end.Year(), int(end.Month())

	var months []string
	for y < endY || (y == endY && m <= endM) {
		months = append(months, fmt.Sprintf("%04d-%02d", y, m))
		m++
		if m == 13 {
			y++
			m = 1
		}
	}
	return months
}

// ResolveWindow turns the time filter of a query into month prefixes.
// A nil result means no filter: every first-level directory is a candidate.
//
// An explicit month is used verbatim. Otherwise start and end must both be
// valid YYYY-MM-DD dates (2025-1-5 is accepted as well); if either is missing or malformed the filter is
// dropped rather than rejected.
func ResolveWindow(month, start, end string) []string {
	if month != "" {
		return []string{month}
	}
	if start == "" || end == "" {
		return nil
	}
	d1, err := time.Parse(dateLayout, start)
	if err != nil {
		return nil
	}
	d2, err := time.Parse(dateLayout, end)
	if err != nil {
		return nil
	}
	return ExpandMonths(d1, d2)
}
