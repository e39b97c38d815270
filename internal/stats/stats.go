package stats

import (
	"github.com/inverness4444/stresssense4-sub001/internal/model"
	"github.com/inverness4444/stresssense4-sub001/internal/period"
	"github.com/inverness4444/stresssense4-sub001/internal/scoring"
)

// aggregation is the working state of one ComputeStatsForResponses call.
// All maps are keyed by bucket key; totals run over the whole range.
type aggregation struct {
	overallTotal   Accumulator // per-response means
	overallBuckets map[string]Accumulator

	flatTotal   Accumulator // every scored answer, incl. unknown driver
	flatBuckets map[string]Accumulator

	engTotal   Accumulator
	engBuckets map[string]Accumulator

	driverTotals  map[model.DriverKey]Accumulator
	driverBuckets map[model.DriverKey]map[string]Accumulator
}

func newAggregation() *aggregation {
	return &aggregation{
		overallBuckets: make(map[string]Accumulator),
		flatBuckets:    make(map[string]Accumulator),
		engBuckets:     make(map[string]Accumulator),
		driverTotals:   make(map[model.DriverKey]Accumulator),
		driverBuckets:  make(map[model.DriverKey]map[string]Accumulator),
	}
}

func (a *aggregation) addDriver(key model.DriverKey, bucket string, stress float64) {
	a.driverTotals[key] = a.driverTotals[key].Add(stress)
	buckets, ok := a.driverBuckets[key]
	if !ok {
		buckets = make(map[string]Accumulator)
		a.driverBuckets[key] = buckets
	}
	addTo(buckets, bucket, stress)
}

// ComputeStatsForResponses aggregates overall, stress, engagement and
// per-driver scores with trend series over the requested range. Responses
// outside the range or without a usable bucketing date are skipped.
// Deterministic: identical inputs produce identical output, and the only
// time source is the caller-supplied range.
func ComputeStatsForResponses(responses []*model.Response, questions map[string]*model.Question, locale string, r period.Range) *model.StatsResult {
	g := GranularityFor(r)
	agg := newAggregation()

	for _, resp := range responses {
		if resp == nil {
			continue
		}
		date, ok := resp.BucketDate()
		if !ok || !r.Contains(date) {
			continue
		}
		bucket := BucketKey(BucketStart(date, g), g)

		respScores := Accumulator{}
		for questionID, raw := range resp.Answers {
			scored := scoring.ScoreAnswer(raw, questions[questionID])
			if scored == nil {
				continue
			}
			agg.flatTotal = agg.flatTotal.Add(scored.StressScore)
			addTo(agg.flatBuckets, bucket, scored.StressScore)
			agg.addDriver(scored.DriverKey, bucket, scored.StressScore)
			if scoring.IsEngagementDimension(scored.Dimension) {
				agg.engTotal = agg.engTotal.Add(scored.EngagementScore)
				addTo(agg.engBuckets, bucket, scored.EngagementScore)
			}
			respScores = respScores.Add(scored.StressScore)
		}

		// Each response contributes one averaged overall data point,
		// distinct from the driver trends: "how did this respondent feel"
		// versus "how did each driver trend".
		if respScores.Count > 0 {
			agg.overallTotal = agg.overallTotal.Add(respScores.Avg())
			addTo(agg.overallBuckets, bucket, respScores.Avg())
		}
	}

	result := &model.StatsResult{
		Overall: model.IndexStat{
			Avg:   agg.overallTotal.Avg(),
			Count: agg.overallTotal.Count,
			Trend: BuildTrend(agg.overallBuckets, g, r, locale),
		},
		Stress: model.IndexStat{
			Avg:   blendedStress(agg.driverTotals, agg.flatTotal),
			Count: agg.flatTotal.Count,
			Trend: BuildTrend(stressBuckets(agg), g, r, locale),
		},
		Engagement: model.IndexStat{
			Avg:   agg.engTotal.Avg(),
			Count: agg.engTotal.Count,
			Trend: BuildTrend(agg.engBuckets, g, r, locale),
		},
	}

	for _, key := range model.CanonicalDrivers() {
		total := agg.driverTotals[key]
		result.Drivers = append(result.Drivers, model.DriverStat{
			Key:   key,
			Avg:   total.Avg(),
			Count: total.Count,
			Trend: BuildTrend(agg.driverBuckets[key], g, r, locale),
		})
	}
	if unknown := agg.driverTotals[model.DriverUnknown]; unknown.Count > 0 {
		result.Drivers = append(result.Drivers, model.DriverStat{
			Key:   model.DriverUnknown,
			Avg:   unknown.Avg(),
			Count: unknown.Count,
			Trend: BuildTrend(agg.driverBuckets[model.DriverUnknown], g, r, locale),
		})
	}

	return result
}

// blendedStress is the overall stress index: the mean of per-driver means,
// excluding unknown, so drivers with many questions cannot dominate. With
// zero classified drivers it falls back to the flat mean of all scored
// answers; with no scored answers at all it is 0.
func blendedStress(driverTotals map[model.DriverKey]Accumulator, flat Accumulator) float64 {
	blend := Accumulator{}
	for _, key := range model.CanonicalDrivers() {
		if total := driverTotals[key]; total.Count > 0 {
			blend = blend.Add(total.Avg())
		}
	}
	if blend.Count == 0 {
		return flat.Avg()
	}
	return blend.Avg()
}

// stressBuckets derives the per-bucket stress index the same way as the
// range-wide one: mean of driver means within the bucket, falling back to
// the bucket's flat mean. Each entry carries the blended level as a
// single-sample accumulator so the trend builder reads it back unchanged.
func stressBuckets(agg *aggregation) map[string]Accumulator {
	out := make(map[string]Accumulator, len(agg.flatBuckets))
	for bucket, flat := range agg.flatBuckets {
		blend := Accumulator{}
		for _, key := range model.CanonicalDrivers() {
			if acc, ok := agg.driverBuckets[key][bucket]; ok && acc.Count > 0 {
				blend = blend.Add(acc.Avg())
			}
		}
		if blend.Count == 0 {
			out[bucket] = Accumulator{Sum: flat.Avg(), Count: 1}
			continue
		}
		out[bucket] = Accumulator{Sum: blend.Avg(), Count: 1}
	}
	return out
}

// ComputeRunAverages scores one run's responses as a single bucket and
// returns the blended stress average, the engagement average, and the
// number of responses that contributed at least one scored answer. Used by
// the recompute job for run-level stored aggregates.
func ComputeRunAverages(responses []*model.Response, questions map[string]*model.Question) (stress, engagement float64, scored int) {
	flat := Accumulator{}
	eng := Accumulator{}
	driverTotals := make(map[model.DriverKey]Accumulator)

	for _, resp := range responses {
		if resp == nil {
			continue
		}
		contributed := false
		for questionID, raw := range resp.Answers {
			s := scoring.ScoreAnswer(raw, questions[questionID])
			if s == nil {
				continue
			}
			contributed = true
			flat = flat.Add(s.StressScore)
			driverTotals[s.DriverKey] = driverTotals[s.DriverKey].Add(s.StressScore)
			if scoring.IsEngagementDimension(s.Dimension) {
				eng = eng.Add(s.EngagementScore)
			}
		}
		if contributed {
			scored++
		}
	}

	return blendedStress(driverTotals, flat), eng.Avg(), scored
}
