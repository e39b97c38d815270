package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inverness4444/stresssense4-sub001/internal/model"
)

func scaleRun(id, teamID string, day int) *model.Run {
	return &model.Run{
		ID:      id,
		TeamID:  teamID,
		RunDate: time.Date(2026, time.January, day, 9, 0, 0, 0, time.UTC),
		RunType: model.RunTypeWeekly,
		Template: model.RunTemplate{
			Questions: []model.Question{
				{ID: "q1", Type: model.QuestionTypeScale0to10, DriverKey: "workload_deadlines"},
			},
		},
	}
}

func runResponse(teamID, runID string, value float64) *model.Response {
	return &model.Response{
		TeamID:      teamID,
		RunID:       runID,
		SubmittedAt: time.Date(2026, time.January, 5, 10, 0, 0, 0, time.UTC),
		Answers:     map[string]any{"q1": value},
	}
}

func newRecomputeFixture() (*RecomputeService, *mockQuestionRepo, *mockRunRepo, *mockResponseRepo, *mockTeamRepo) {
	questions := &mockQuestionRepo{questions: []*model.Question{
		{ID: "bq1", Type: model.QuestionTypeScale0to10, DriverKey: "workload"},
		{ID: "bq2", Type: model.QuestionTypeScale0to10, DriverKey: "legacy_misc"},
	}}
	runs := &mockRunRepo{runs: []*model.Run{scaleRun("run-1", "team-1", 5)}}
	responses := &mockResponseRepo{byRun: map[string][]*model.Response{
		"run-1": {
			runResponse("team-1", "run-1", 8.0),
			runResponse("team-1", "run-1", 3.0),
		},
	}}
	teams := newMockTeamRepo(&model.Team{ID: "team-1", Name: "Core", MemberCount: 4})

	svc := NewRecomputeService(questions, runs, responses, teams, zap.NewNop())
	return svc, questions, runs, responses, teams
}

func TestRecomputeRun(t *testing.T) {
	svc, _, runs, _, teams := newRecomputeFixture()

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, summary.JobID)
	assert.Equal(t, 2, summary.QuestionsUpdated)
	assert.Equal(t, 1, summary.RunsUpdated)
	assert.Equal(t, 0, summary.RunsSkipped)
	assert.Equal(t, 1, summary.TeamRowsCreated)
	assert.Equal(t, 0, summary.TeamRowsUpdated)

	run := runs.runs[0]
	assert.Equal(t, 5.5, run.AvgStress)
	assert.Equal(t, 0.0, run.AvgEngagement)
	assert.Equal(t, 2, run.ResponseCount)

	// 2 scored responses out of 4 members
	team := teams.teams["team-1"]
	assert.Equal(t, 5.5, team.CurrentStress)
	assert.Equal(t, 50.0, team.Participation)

	require.Len(t, teams.history, 1)
	for _, h := range teams.history {
		assert.Equal(t, "team-1", h.TeamID)
		assert.Equal(t, 5.5, h.AvgStress)
		assert.Equal(t, 50.0, h.Participation)
		assert.Equal(t, 2, h.ResponseCount)
		// history rows are keyed on the run's calendar day
		assert.Equal(t, time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC), h.PeriodDate)
	}
}

// Running twice on unchanged data must write the same values and create
// nothing new.
func TestRecomputeRunIdempotent(t *testing.T) {
	svc, questions, runs, _, teams := newRecomputeFixture()

	_, err := svc.Run(context.Background())
	require.NoError(t, err)
	firstStress := runs.runs[0].AvgStress
	firstWrites := questions.updates

	second, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, second.QuestionsUpdated)
	assert.Equal(t, firstWrites, questions.updates)
	assert.Equal(t, 1, second.RunsUpdated)
	assert.Equal(t, 0, second.TeamRowsCreated)
	assert.Equal(t, 1, second.TeamRowsUpdated)

	assert.Equal(t, firstStress, runs.runs[0].AvgStress)
	assert.Len(t, teams.history, 1)
}

func TestBackfillResolvesAliasesAndFlagsUnknowns(t *testing.T) {
	svc, questions, _, _, _ := newRecomputeFixture()

	summary := &model.RecomputeSummary{}
	require.NoError(t, svc.BackfillDriverMeta(context.Background(), summary))
	assert.Equal(t, 2, summary.QuestionsUpdated)

	aliased := questions.questions[0]
	assert.Equal(t, "workload_deadlines", aliased.DriverKey)
	assert.False(t, aliased.NeedsReview)
	assert.Equal(t, model.PolarityNegative, aliased.Polarity)

	unresolved := questions.questions[1]
	assert.Equal(t, "unknown", unresolved.DriverKey)
	assert.True(t, unresolved.NeedsReview)
}

// A failing run is logged and skipped; the rest of the job continues.
func TestRecomputeSkipsFailingRun(t *testing.T) {
	svc, _, runs, responses, _ := newRecomputeFixture()
	runs.runs = append(runs.runs, scaleRun("run-2", "team-1", 12))
	responses.byRun["run-2"] = []*model.Response{runResponse("team-1", "run-2", 6.0)}
	responses.failRun = "run-1"

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.RunsUpdated)
	assert.Equal(t, 1, summary.RunsSkipped)
}

func TestRecomputeSkipsRunsWithoutWorkToDo(t *testing.T) {
	svc, _, runs, responses, _ := newRecomputeFixture()

	// no responses at all
	runs.runs = append(runs.runs, scaleRun("run-empty", "team-1", 7))

	// responses but an empty template
	bare := scaleRun("run-bare", "team-1", 8)
	bare.Template = model.RunTemplate{}
	runs.runs = append(runs.runs, bare)
	responses.byRun["run-bare"] = []*model.Response{runResponse("team-1", "run-bare", 5.0)}

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.RunsUpdated)
	assert.Equal(t, 2, summary.RunsSkipped)
}

func TestRecomputeListFailuresAreFatal(t *testing.T) {
	svc, questions, runs, _, _ := newRecomputeFixture()

	questions.failList = true
	_, err := svc.Run(context.Background())
	assert.ErrorContains(t, err, "failed to list questions")

	questions.failList = false
	runs.failList = true
	_, err = svc.Run(context.Background())
	assert.ErrorContains(t, err, "failed to list runs")
}

func TestRecomputeWithoutTeamStoresRawCount(t *testing.T) {
	svc, _, _, _, teams := newRecomputeFixture()
	delete(teams.teams, "team-1")

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.RunsUpdated)

	// no member count to divide by; the scored-response count stands in
	assert.Equal(t, 2.0, teams.snapshots["team-1"])
}
