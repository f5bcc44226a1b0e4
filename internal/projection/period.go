package projection

import (
	"fmt"
	"math"
	"time"
)

// MonthsBetween returns the number of calendar months from now until target,
// rounded up so that a partial month counts as a full period. It returns 0
// when target is not strictly after now.
func MonthsBetween(now, target time.Time) int {
	if !target.After(now) {
		return 0
	}
	months := wholeMonths(now, target)
	if now.AddDate(0, months, 0).Before(target) {
		months++
	}
	return months
}

// wholeMonths counts the calendar months that fit between now and target.
func wholeMonths(now, target time.Time) int {
	target = target.In(now.Location())
	months := (target.Year()-now.Year())*12 + int(target.Month()-now.Month())
	for months > 0 && now.AddDate(0, months, 0).After(target) {
		months--
	}
	return max(months, 0)
}

// FormatTimeLeft renders the remaining time as whole calendar months plus
// the leftover days, e.g. "12 mo", "2 mo 5 d" or "12 d".
func FormatTimeLeft(now, target time.Time) string {
	if !target.After(now) {
		return "0 d"
	}
	months := wholeMonths(now, target)
	rest := target.Sub(now.AddDate(0, months, 0))
	days := int(math.Ceil(rest.Hours() / 24))

	switch {
	case months == 0:
		return fmt.Sprintf("%d d", days)
	case days == 0:
		return fmt.Sprintf("%d mo", months)
	default:
		return fmt.Sprintf("%d mo %d d", months, days)
	}
}
