package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inverness4444/stresssense4-sub001/internal/model"
	"github.com/inverness4444/stresssense4-sub001/internal/period"
)

func januaryRange() period.Range {
	return period.GetRanges(period.Month, time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)).Current
}

func scaleQuestion(id string, driver string) *model.Question {
	return &model.Question{
		ID:        id,
		Type:      model.QuestionTypeScale0to10,
		DriverKey: driver,
	}
}

func response(day int, answers map[string]any) *model.Response {
	return &model.Response{
		ID:          "r",
		TeamID:      "team-1",
		SubmittedAt: time.Date(2026, time.January, day, 10, 0, 0, 0, time.UTC),
		Answers:     answers,
	}
}

func TestComputeStatsEmptyInput(t *testing.T) {
	result := ComputeStatsForResponses(nil, nil, "en", januaryRange())

	assert.Equal(t, 0.0, result.Overall.Avg)
	assert.Equal(t, 0, result.Overall.Count)
	assert.Empty(t, result.Overall.Trend)
	assert.Equal(t, 0.0, result.Stress.Avg)
	assert.Equal(t, 0, result.Stress.Count)
	assert.Equal(t, 0.0, result.Engagement.Avg)
	assert.Equal(t, 0, result.Engagement.Count)

	require.Len(t, result.Drivers, 10)
	for _, d := range result.Drivers {
		assert.Equal(t, 0.0, d.Avg)
		assert.Equal(t, 0, d.Count)
		assert.Empty(t, d.Trend)
	}
}

// Three NEGATIVE-polarity 0-10 answers of 2, 8 and 5 on the same driver
// average to 5.0; as the only driver with data it also sets the index.
func TestComputeStatsSingleDriverScenario(t *testing.T) {
	questions := map[string]*model.Question{
		"q1": scaleQuestion("q1", "workload_deadlines"),
	}
	responses := []*model.Response{
		response(5, map[string]any{"q1": 2.0}),
		response(6, map[string]any{"q1": 8.0}),
		response(7, map[string]any{"q1": 5.0}),
	}

	result := ComputeStatsForResponses(responses, questions, "en", januaryRange())

	workload := result.DriverByKey(model.DriverWorkloadDeadlines)
	require.NotNil(t, workload)
	assert.InDelta(t, 5.0, workload.Avg, 1e-9)
	assert.Equal(t, 3, workload.Count)

	assert.InDelta(t, 5.0, result.Stress.Avg, 1e-9)
	assert.Equal(t, 3, result.Stress.Count)
	assert.InDelta(t, 5.0, result.Overall.Avg, 1e-9)
	assert.Equal(t, 3, result.Overall.Count)
}

// With only unknown-driver answers the blended index falls back to the
// flat mean rather than reporting zero.
func TestComputeStatsUnknownDriverFallback(t *testing.T) {
	questions := map[string]*model.Question{
		"q1": scaleQuestion("q1", "some_legacy_label"),
	}
	responses := []*model.Response{
		response(5, map[string]any{"q1": 4.0}),
		response(6, map[string]any{"q1": 8.0}),
	}

	result := ComputeStatsForResponses(responses, questions, "en", januaryRange())

	assert.InDelta(t, 6.0, result.Stress.Avg, 1e-9)
	assert.Equal(t, 2, result.Stress.Count)

	// unknown appears as an extra driver row but only when it has data
	require.Len(t, result.Drivers, 11)
	unknown := result.DriverByKey(model.DriverUnknown)
	require.NotNil(t, unknown)
	assert.InDelta(t, 6.0, unknown.Avg, 1e-9)
}

// The blended index weighs drivers equally no matter how many questions
// each one has.
func TestComputeStatsMeanOfDriverMeans(t *testing.T) {
	questions := map[string]*model.Question{
		"q1": scaleQuestion("q1", "workload_deadlines"),
		"q2": scaleQuestion("q2", "workload_deadlines"),
		"q3": scaleQuestion("q3", "workload_deadlines"),
		"q4": scaleQuestion("q4", "manager_support"),
	}
	responses := []*model.Response{
		response(5, map[string]any{"q1": 8.0, "q2": 8.0, "q3": 8.0, "q4": 2.0}),
	}

	result := ComputeStatsForResponses(responses, questions, "en", januaryRange())

	// workload mean 8, manager mean 2 -> blended 5; flat mean would be 6.5
	assert.InDelta(t, 5.0, result.Stress.Avg, 1e-9)
	assert.Equal(t, 4, result.Stress.Count)
	// the per-response overall uses the flat per-response mean
	assert.InDelta(t, 6.5, result.Overall.Avg, 1e-9)
	assert.Equal(t, 1, result.Overall.Count)
}

func TestComputeStatsEngagementAllowList(t *testing.T) {
	questions := map[string]*model.Question{
		"q1": {ID: "q1", Type: model.QuestionTypeScale0to10, DriverKey: "autonomy_control", Dimension: "engagement"},
		"q2": {ID: "q2", Type: model.QuestionTypeScale0to10, DriverKey: "workload_deadlines", Dimension: "workload"},
	}
	responses := []*model.Response{
		response(5, map[string]any{"q1": 3.0, "q2": 9.0}),
	}

	result := ComputeStatsForResponses(responses, questions, "en", januaryRange())

	// only q1 is on the engagement allow-list; NEGATIVE polarity inverts
	assert.Equal(t, 1, result.Engagement.Count)
	assert.InDelta(t, 7.0, result.Engagement.Avg, 1e-9)
}

func TestComputeStatsBucketBoundaries(t *testing.T) {
	r := januaryRange()
	questions := map[string]*model.Question{
		"q1": scaleQuestion("q1", "workload_deadlines"),
	}

	atStart := &model.Response{TeamID: "team-1", SubmittedAt: r.Start, Answers: map[string]any{"q1": 5.0}}
	atEnd := &model.Response{TeamID: "team-1", SubmittedAt: r.End, Answers: map[string]any{"q1": 5.0}}
	beforeStart := &model.Response{TeamID: "team-1", SubmittedAt: r.Start.Add(-time.Millisecond), Answers: map[string]any{"q1": 5.0}}
	afterEnd := &model.Response{TeamID: "team-1", SubmittedAt: r.End.Add(time.Millisecond), Answers: map[string]any{"q1": 5.0}}

	result := ComputeStatsForResponses([]*model.Response{atStart, atEnd, beforeStart, afterEnd}, questions, "en", r)
	assert.Equal(t, 2, result.Stress.Count)
}

func TestComputeStatsSkipsResponsesWithoutDate(t *testing.T) {
	questions := map[string]*model.Question{
		"q1": scaleQuestion("q1", "workload_deadlines"),
	}
	noDate := &model.Response{TeamID: "team-1", Answers: map[string]any{"q1": 5.0}}

	result := ComputeStatsForResponses([]*model.Response{noDate}, questions, "en", januaryRange())
	assert.Equal(t, 0, result.Stress.Count)
	assert.Equal(t, 0, result.Overall.Count)
}

func TestComputeStatsDailyRunPrefersRunDate(t *testing.T) {
	r := januaryRange()
	questions := map[string]*model.Question{
		"q1": scaleQuestion("q1", "workload_deadlines"),
	}
	run := &model.Run{
		ID:      "run-1",
		RunType: model.RunTypeDaily,
		RunDate: time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
	}
	// submitted just past midnight the next day; must still count toward
	// the run's intended day
	late := &model.Response{
		TeamID:      "team-1",
		RunID:       "run-1",
		Run:         run,
		SubmittedAt: time.Date(2026, time.January, 6, 0, 30, 0, 0, time.UTC),
		Answers:     map[string]any{"q1": 7.0},
	}

	result := ComputeStatsForResponses([]*model.Response{late}, questions, "en", r)
	require.NotEmpty(t, result.Stress.Trend)
	assert.Equal(t, "2026-01-05", firstRealPoint(result.Stress.Trend))
}

// firstRealPoint skips a possible synthetic boundary point and returns the
// date of the first data-carrying bucket.
func firstRealPoint(points []model.TrendPoint) string {
	if len(points) > 1 && points[0].Value == points[1].Value {
		return points[1].Date
	}
	return points[0].Date
}

func TestComputeStatsDeterministic(t *testing.T) {
	questions := map[string]*model.Question{
		"q1": scaleQuestion("q1", "workload_deadlines"),
		"q2": scaleQuestion("q2", "manager_support"),
	}
	responses := []*model.Response{
		response(3, map[string]any{"q1": 2.0, "q2": 9.0}),
		response(12, map[string]any{"q1": 6.0}),
		response(20, map[string]any{"q2": 4.0}),
	}

	first := ComputeStatsForResponses(responses, questions, "en", januaryRange())
	second := ComputeStatsForResponses(responses, questions, "en", januaryRange())
	assert.Equal(t, first, second)
}

func TestComputeRunAverages(t *testing.T) {
	questions := map[string]*model.Question{
		"q1": scaleQuestion("q1", "workload_deadlines"),
		"q2": {ID: "q2", Type: model.QuestionTypeScale0to10, DriverKey: "autonomy_control", Dimension: "engagement"},
	}
	responses := []*model.Response{
		response(5, map[string]any{"q1": 8.0, "q2": 4.0}),
		response(5, map[string]any{"q1": 2.0}),
		response(5, map[string]any{"q1": "not a number"}),
	}

	stress, engagement, scored := ComputeRunAverages(responses, questions)

	// workload mean 5, autonomy mean 4 -> blended 4.5
	assert.InDelta(t, 4.5, stress, 1e-9)
	// single engagement answer: 10-4
	assert.InDelta(t, 6.0, engagement, 1e-9)
	assert.Equal(t, 2, scored)
}

func TestComputeRunAveragesEmpty(t *testing.T) {
	stress, engagement, scored := ComputeRunAverages(nil, nil)
	assert.Equal(t, 0.0, stress)
	assert.Equal(t, 0.0, engagement)
	assert.Equal(t, 0, scored)
}
