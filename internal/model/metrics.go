package model

import "time"

// TrendPoint is one displayed point of a trend series. Points are sorted
// ascending by date and deduplicated by bucket.
type TrendPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"` // rounded to 1 decimal
	Date  string  `json:"date"`  // ISO date of the bucket start
}

// IndexStat is an aggregated top-level index (overall, stress, engagement)
// over one period. Count 0 means insufficient data, not a score of zero.
type IndexStat struct {
	Avg   float64      `json:"avg"`
	Count int          `json:"count"`
	Trend []TrendPoint `json:"trend"`
}

// DriverStat is the aggregate for one driver over one period.
type DriverStat struct {
	Key   DriverKey    `json:"key"`
	Avg   float64      `json:"avg"`
	Count int          `json:"count"`
	Trend []TrendPoint `json:"trend"`
}

// StatsResult holds all aggregates for one period. Overall is built from
// per-response means ("how did each respondent feel"); Stress is the
// driver-blended index ("how did each driver trend"). The two can diverge
// when driver coverage is uneven across responses and both are exposed.
type StatsResult struct {
	Overall    IndexStat    `json:"overall"`
	Stress     IndexStat    `json:"stress"`
	Engagement IndexStat    `json:"engagement"`
	Drivers    []DriverStat `json:"drivers"`
}

// DriverByKey returns the stat for a driver, or nil when absent.
func (s *StatsResult) DriverByKey(key DriverKey) *DriverStat {
	for i := range s.Drivers {
		if s.Drivers[i].Key == key {
			return &s.Drivers[i]
		}
	}
	return nil
}

// Direction of a period-over-period delta
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
)

// ComputedMetric is a top-level index ready for display binding.
type ComputedMetric struct {
	Key         string       `json:"key"`
	Label       string       `json:"label"`
	AvgScore    float64      `json:"avgScore"`
	Delta       float64      `json:"delta"`
	Direction   Direction    `json:"direction"`
	SampleSize  int          `json:"sampleSize"`
	TrendPoints []TrendPoint `json:"trendPoints"`
}

// ComputedDriver is a per-driver metric ready for display binding.
type ComputedDriver struct {
	Key         DriverKey    `json:"key"`
	Label       string       `json:"label"`
	Description string       `json:"description"`
	AvgScore    float64      `json:"avgScore"`
	Delta       float64      `json:"delta"`
	Direction   Direction    `json:"direction"`
	SampleSize  int          `json:"sampleSize"`
	TrendPoints []TrendPoint `json:"trendPoints"`
}

// ComputedMetrics is the full dashboard payload for one period comparison.
type ComputedMetrics struct {
	TopCards []ComputedMetric `json:"topCards"`
	Drivers  []ComputedDriver `json:"drivers"`
}

// RecomputeSummary reports what a recompute job touched, for operational
// visibility.
type RecomputeSummary struct {
	JobID            string    `json:"jobId"`
	QuestionsUpdated int       `json:"questionsUpdated"`
	RunsUpdated      int       `json:"runsUpdated"`
	RunsSkipped      int       `json:"runsSkipped"`
	TeamRowsUpdated  int       `json:"teamRowsUpdated"`
	TeamRowsCreated  int       `json:"teamRowsCreated"`
	StartedAt        time.Time `json:"startedAt"`
	FinishedAt       time.Time `json:"finishedAt"`
}
