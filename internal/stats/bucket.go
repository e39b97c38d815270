package stats

import (
	"fmt"
	"time"

	"github.com/inverness4444/stresssense4-sub001/internal/period"
)

// Granularity is the bucket size used for trend series.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week" // ISO week, Monday start
	GranularityMonth Granularity = "month"
)

// GranularityFor picks a bucket size from the span of the requested range,
// keeping trend series readable: a 1-year view must not render 365 points.
func GranularityFor(r period.Range) Granularity {
	days := r.Days()
	if days <= 31 {
		return GranularityDay
	}
	if days <= 180 {
		return GranularityWeek
	}
	return GranularityMonth
}

// BucketStart truncates t to the start of its bucket.
func BucketStart(t time.Time, g Granularity) time.Time {
	switch g {
	case GranularityDay:
		return period.StartOfDay(t)
	case GranularityWeek:
		return period.StartOfWeek(t)
	default:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	}
}

// BucketKey returns the grouping key for t's bucket. Keys are internal and
// never shown to the consumer; labels are derived separately.
func BucketKey(t time.Time, g Granularity) string {
	switch g {
	case GranularityDay:
		return t.Format("2006-01-02")
	case GranularityWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	default:
		return t.Format("2006-01")
	}
}

// nextBucket steps to the start of the following bucket.
func nextBucket(t time.Time, g Granularity) time.Time {
	switch g {
	case GranularityDay:
		return t.AddDate(0, 0, 1)
	case GranularityWeek:
		return t.AddDate(0, 0, 7)
	default:
		return t.AddDate(0, 1, 0)
	}
}

// Accumulator is an immutable sum/count pair. Add returns a new value
// rather than mutating, so aggregation stays a pure fold over responses.
type Accumulator struct {
	Sum   float64
	Count int
}

// Add folds one value into the accumulator.
func (a Accumulator) Add(v float64) Accumulator {
	return Accumulator{Sum: a.Sum + v, Count: a.Count + 1}
}

// Avg returns the mean, or 0 for an empty accumulator. An empty aggregate
// is never divided.
func (a Accumulator) Avg() float64 {
	if a.Count == 0 {
		return 0
	}
	return a.Sum / float64(a.Count)
}

// addTo folds a value into a keyed accumulator map.
func addTo(m map[string]Accumulator, key string, v float64) {
	m[key] = m[key].Add(v)
}
