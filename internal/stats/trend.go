package stats

import (
	"fmt"
	"time"

	"github.com/inverness4444/stresssense4-sub001/internal/model"
	"github.com/inverness4444/stresssense4-sub001/internal/period"
)

var germanMonths = [...]string{
	"Jan", "Feb", "Mär", "Apr", "Mai", "Jun",
	"Jul", "Aug", "Sep", "Okt", "Nov", "Dez",
}

func monthAbbr(m time.Month, locale string) string {
	if locale == "de" {
		return germanMonths[int(m)-1]
	}
	return m.String()[:3]
}

// bucketLabel renders the human label for a bucket start date. Day and
// week buckets are labeled by their start day, month buckets by month and
// year.
func bucketLabel(t time.Time, g Granularity, locale string) string {
	if g == GranularityMonth {
		return fmt.Sprintf("%s %d", monthAbbr(t.Month(), locale), t.Year())
	}
	if locale == "de" {
		return fmt.Sprintf("%d. %s", t.Day(), monthAbbr(t.Month(), locale))
	}
	return fmt.Sprintf("%s %d", monthAbbr(t.Month(), locale), t.Day())
}

// BuildTrend turns bucket aggregates into a chronologically ordered,
// labeled series over the range. Buckets without data are skipped (series
// are sparse), but the endpoints are padded: when the first or last real
// point does not reach the range boundary, a synthetic boundary point
// carries the nearest real value so consumers rendering [start, end] always
// have defined endpoints.
func BuildTrend(buckets map[string]Accumulator, g Granularity, r period.Range, locale string) []model.TrendPoint {
	var points []model.TrendPoint

	first := BucketStart(r.Start, g)
	last := first
	for t := first; !t.After(r.End); t = nextBucket(t, g) {
		last = t
		acc, ok := buckets[BucketKey(t, g)]
		if !ok || acc.Count == 0 {
			continue
		}
		points = append(points, model.TrendPoint{
			Label: bucketLabel(t, g, locale),
			Value: Round1(acc.Avg()),
			Date:  t.Format("2006-01-02"),
		})
	}

	if len(points) == 0 {
		return points
	}

	if points[0].Date != first.Format("2006-01-02") {
		points = append([]model.TrendPoint{{
			Label: bucketLabel(first, g, locale),
			Value: points[0].Value,
			Date:  first.Format("2006-01-02"),
		}}, points...)
	}
	if points[len(points)-1].Date != last.Format("2006-01-02") {
		points = append(points, model.TrendPoint{
			Label: bucketLabel(last, g, locale),
			Value: points[len(points)-1].Value,
			Date:  last.Format("2006-01-02"),
		})
	}

	return points
}
