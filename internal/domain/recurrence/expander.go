package recurrence

import (
	"slices"
	"time"
)

// Rule is the date-selection part of a config.
type Rule struct {
	Pattern        Pattern
	StartDate      Date
	EndDate        Date
	Weekdays       []time.Weekday
	DayOfMonth     int
	Interval       int
	MaxOccurrences int
}

// Expand walks a cursor from max(today, StartDate) to min(EndDate, limit) and
// returns the qualifying dates in ascending order, at most MaxOccurrences of
// them. A zero limit means EndDate. Unsupported patterns yield nothing.
//
// Interval phases are anchored at StartDate, not at today, so the same rule
// selects the same dates no matter when it is expanded.
func Expand(rule Rule, today, limit Date) []Date {
	if rule.MaxOccurrences <= 0 || rule.Interval < 1 || !rule.Pattern.IsValid() {
		return nil
	}

	from := MaxDate(today, rule.StartDate)
	to := rule.EndDate
	if !limit.IsZero() {
		to = MinDate(to, limit)
	}

	var out []Date
	for cur := from; !cur.After(to); cur = cur.AddDays(1) {
		if rule.qualifies(cur) {
			out = append(out, cur)
			if len(out) == rule.MaxOccurrences {
				break
			}
		}
	}
	return out
}

func (r Rule) qualifies(d Date) bool {
	switch r.Pattern {
	case PatternWeekly:
		if !slices.Contains(r.Weekdays, d.Weekday()) {
			return false
		}
		weeks := d.DaysSince(r.StartDate) / 7
		return weeks%r.Interval == 0
	case PatternMonthly:
		// Months without DayOfMonth (31 in April, 30 in February) are skipped.
		if d.Day != r.DayOfMonth {
			return false
		}
		return d.MonthsSince(r.StartDate)%r.Interval == 0
	default:
		return false
	}
}
