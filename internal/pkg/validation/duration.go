package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DurationUnit is the unit of a free-text internship duration.
type DurationUnit int

const (
	UnitDays DurationUnit = iota
	UnitWeeks
	UnitMonths
)

// durationPattern accepts French and English unit spellings, e.g. "3 mois",
// "6 semaines", "90 jours", "2 months", "1 week", "10 days".
var durationPattern = regexp.MustCompile(`^(\d+)\s*(mois|months?|semaines?|weeks?|jours?|days?)\b`)

// ParseDuration parses a free-text duration like "3 mois" into a count and unit.
func ParseDuration(s string) (int, DurationUnit, error) {
	m := durationPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return 0, 0, fmt.Errorf("invalid duration format %q: use \"N mois\", \"N semaines\" or \"N jours\"", s)
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid duration count %q", m[1])
	}

	switch {
	case strings.HasPrefix(m[2], "mois"), strings.HasPrefix(m[2], "month"):
		return n, UnitMonths, nil
	case strings.HasPrefix(m[2], "semaine"), strings.HasPrefix(m[2], "week"):
		return n, UnitWeeks, nil
	default:
		return n, UnitDays, nil
	}
}

// ExpectedDays returns the nominal day count for a parsed duration
// (months count as 30 days, weeks as 7).
func ExpectedDays(n int, unit DurationUnit) int {
	switch unit {
	case UnitMonths:
		return n * 30
	case UnitWeeks:
		return n * 7
	default:
		return n
	}
}

// Tolerance returns the allowed deviation in days between the nominal duration
// and the actual start/end span: 5 days for months, 2 for weeks, exact for days.
func Tolerance(unit DurationUnit) int {
	switch unit {
	case UnitMonths:
		return 5
	case UnitWeeks:
		return 2
	default:
		return 0
	}
}

// CheckDurationSpan verifies that a free-text duration is consistent with the
// inclusive span between start and end dates.
func CheckDurationSpan(duration string, start, end time.Time) error {
	actual := int(end.Sub(start).Hours()/24) + 1
	if actual <= 0 {
		return fmt.Errorf("end date must be after the start date")
	}

	n, unit, err := ParseDuration(duration)
	if err != nil {
		return err
	}

	expected := ExpectedDays(n, unit)
	diff := actual - expected
	if diff < 0 {
		diff = -diff
	}
	if diff > Tolerance(unit) {
		return fmt.Errorf("duration %q does not match the %d day span between the start and end dates", duration, actual)
	}
	return nil
}
