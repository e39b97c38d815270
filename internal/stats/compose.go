package stats

import (
	"math"

	"github.com/inverness4444/stresssense4-sub001/internal/model"
)

// Round1 rounds to one decimal. Displayed numbers are rounded exactly once
// at the output boundary; internal accumulation keeps full precision.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

var cardLabels = map[string]map[string]string{
	"en": {"overall": "Overall", "stress": "Stress", "engagement": "Engagement"},
	"de": {"overall": "Gesamt", "stress": "Stress", "engagement": "Engagement"},
}

func cardLabel(key, locale string) string {
	if labels, ok := cardLabels[locale]; ok {
		return labels[key]
	}
	return cardLabels["en"][key]
}

// delta computes the period-over-period change. A delta is reported only
// when both periods have data: a period with no historical baseline must
// never show a misleading swing.
func delta(current, previous model.IndexStat) (float64, model.Direction) {
	if current.Count == 0 || previous.Count == 0 {
		return 0, model.DirectionFlat
	}
	d := Round1(current.Avg - previous.Avg)
	switch {
	case d > 0:
		return d, model.DirectionUp
	case d < 0:
		return d, model.DirectionDown
	default:
		return 0, model.DirectionFlat
	}
}

// BuildComputedMetrics combines current- and previous-period aggregates
// into the displayable dashboard payload.
func BuildComputedMetrics(current, previous *model.StatsResult, locale string) *model.ComputedMetrics {
	out := &model.ComputedMetrics{}

	cards := []struct {
		key  string
		cur  model.IndexStat
		prev model.IndexStat
	}{
		{"overall", current.Overall, previous.Overall},
		{"stress", current.Stress, previous.Stress},
		{"engagement", current.Engagement, previous.Engagement},
	}
	for _, c := range cards {
		d, dir := delta(c.cur, c.prev)
		out.TopCards = append(out.TopCards, model.ComputedMetric{
			Key:         c.key,
			Label:       cardLabel(c.key, locale),
			AvgScore:    Round1(c.cur.Avg),
			Delta:       d,
			Direction:   dir,
			SampleSize:  c.cur.Count,
			TrendPoints: c.cur.Trend,
		})
	}

	for _, key := range model.CanonicalDrivers() {
		cur := current.DriverByKey(key)
		if cur == nil {
			continue
		}
		curStat := model.IndexStat{Avg: cur.Avg, Count: cur.Count}
		prevStat := model.IndexStat{}
		if prev := previous.DriverByKey(key); prev != nil {
			prevStat = model.IndexStat{Avg: prev.Avg, Count: prev.Count}
		}
		d, dir := delta(curStat, prevStat)
		info := model.InfoFor(key)
		out.Drivers = append(out.Drivers, model.ComputedDriver{
			Key:         key,
			Label:       info.Label,
			Description: info.Description,
			AvgScore:    Round1(cur.Avg),
			Delta:       d,
			Direction:   dir,
			SampleSize:  cur.Count,
			TrendPoints: cur.Trend,
		})
	}

	return out
}
