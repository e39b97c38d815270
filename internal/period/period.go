package period

import (
	"fmt"
	"strings"
	"time"
)

// Period is a reporting period granularity.
type Period string

const (
	Week    Period = "week"    // Monday-Sunday
	Month   Period = "month"   // calendar month
	Quarter Period = "quarter" // calendar quarter
	Half    Period = "half"    // Jan 1-Jun 30 or Jul 1-Dec 31
	Year    Period = "year"    // calendar year
)

// Parse maps a request string onto a Period.
func Parse(s string) (Period, error) {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case Week:
		return Week, nil
	case Month:
		return Month, nil
	case Quarter:
		return Quarter, nil
	case Half:
		return Half, nil
	case Year:
		return Year, nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}

// Range is an inclusive time range from start-of-day to end-of-day.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the range, boundaries included.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Days returns the number of calendar days the range spans.
func (r Range) Days() int {
	start := startOfDay(r.Start)
	end := startOfDay(r.End)
	return int(end.Sub(start).Hours()/24) + 1
}

// Ranges pairs the current period with the immediately preceding comparable
// period.
type Ranges struct {
	Current  Range `json:"current"`
	Previous Range `json:"previous"`
}

// GetRanges computes the current range containing now and the preceding
// range of the same length class. The previous range is re-derived from a
// shifted anchor rather than shifting both timestamps, because month
// lengths vary. Pure given now; never reads the wall clock.
func GetRanges(p Period, now time.Time) Ranges {
	current := rangeFor(p, now)
	var anchor time.Time
	switch p {
	case Week:
		anchor = current.Start.AddDate(0, 0, -7)
	case Month:
		anchor = current.Start.AddDate(0, -1, 0)
	case Quarter:
		anchor = current.Start.AddDate(0, -3, 0)
	case Half:
		anchor = current.Start.AddDate(0, -6, 0)
	case Year:
		anchor = current.Start.AddDate(-1, 0, 0)
	default:
		anchor = current.Start.AddDate(0, -1, 0)
	}
	return Ranges{Current: current, Previous: rangeFor(p, anchor)}
}

// rangeFor derives the period bounds containing the anchor date.
func rangeFor(p Period, anchor time.Time) Range {
	switch p {
	case Week:
		start := startOfWeek(anchor)
		return Range{Start: start, End: endOfDay(start.AddDate(0, 0, 6))}
	case Quarter:
		q := (int(anchor.Month()) - 1) / 3
		start := time.Date(anchor.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, anchor.Location())
		return Range{Start: start, End: endOfDay(start.AddDate(0, 3, -1))}
	case Half:
		start := time.Date(anchor.Year(), time.January, 1, 0, 0, 0, 0, anchor.Location())
		if anchor.Month() >= time.July {
			start = time.Date(anchor.Year(), time.July, 1, 0, 0, 0, 0, anchor.Location())
		}
		return Range{Start: start, End: endOfDay(start.AddDate(0, 6, -1))}
	case Year:
		start := time.Date(anchor.Year(), time.January, 1, 0, 0, 0, 0, anchor.Location())
		return Range{Start: start, End: endOfDay(start.AddDate(1, 0, -1))}
	default: // Month
		start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		return Range{Start: start, End: endOfDay(start.AddDate(0, 1, -1))}
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// startOfWeek returns the Monday of t's ISO week.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}

// StartOfDay exposes day truncation for callers bucketing by calendar day.
func StartOfDay(t time.Time) time.Time { return startOfDay(t) }

// StartOfWeek exposes ISO-week truncation (Monday start).
func StartOfWeek(t time.Time) time.Time { return startOfWeek(t) }
