package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/inverness4444/stresssense4-sub001/internal/model"
)

var errStoreDown = errors.New("store unavailable")

type mockQuestionRepo struct {
	questions []*model.Question
	failList  bool
	updates   int
}

func (m *mockQuestionRepo) GetByID(_ context.Context, id string) (*model.Question, error) {
	for _, q := range m.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, nil
}

func (m *mockQuestionRepo) GetAll(_ context.Context) ([]*model.Question, error) {
	if m.failList {
		return nil, errStoreDown
	}
	return m.questions, nil
}

func (m *mockQuestionRepo) GetBySurveyID(_ context.Context, _ string) ([]*model.Question, error) {
	return nil, nil
}

func (m *mockQuestionRepo) UpdateDriverMeta(_ context.Context, id string, driverKey model.DriverKey, driverTag string, polarity model.Polarity, needsReview bool) error {
	for _, q := range m.questions {
		if q.ID != id {
			continue
		}
		q.DriverKey = string(driverKey)
		q.DriverTag = driverTag
		q.Polarity = polarity
		q.NeedsReview = needsReview
		m.updates++
		return nil
	}
	return fmt.Errorf("question %s not found", id)
}

type mockRunRepo struct {
	runs     []*model.Run
	failList bool
}

func (m *mockRunRepo) GetAll(_ context.Context) ([]*model.Run, error) {
	if m.failList {
		return nil, errStoreDown
	}
	return m.runs, nil
}

func (m *mockRunRepo) GetByTeamID(_ context.Context, teamID string) ([]*model.Run, error) {
	var out []*model.Run
	for _, run := range m.runs {
		if run.TeamID == teamID {
			out = append(out, run)
		}
	}
	return out, nil
}

func (m *mockRunRepo) UpdateAverages(_ context.Context, runID string, avgStress, avgEngagement float64, responseCount int) error {
	for _, run := range m.runs {
		if run.ID == runID {
			run.AvgStress = avgStress
			run.AvgEngagement = avgEngagement
			run.ResponseCount = responseCount
			return nil
		}
	}
	return fmt.Errorf("run %s not found", runID)
}

type mockResponseRepo struct {
	byRun   map[string][]*model.Response
	failRun string
}

func (m *mockResponseRepo) GetByRunID(_ context.Context, runID string) ([]*model.Response, error) {
	if runID == m.failRun {
		return nil, errStoreDown
	}
	return m.byRun[runID], nil
}

func (m *mockResponseRepo) GetByTeamAndRange(_ context.Context, teamID string, from, to time.Time) ([]*model.Response, error) {
	var out []*model.Response
	for _, responses := range m.byRun {
		for _, r := range responses {
			if r.TeamID != teamID || r.SubmittedAt.Before(from) || r.SubmittedAt.After(to) {
				continue
			}
			out = append(out, r)
		}
	}
	return out, nil
}

type mockTeamRepo struct {
	teams     map[string]*model.Team
	snapshots map[string]float64 // teamID -> last stored participation
	history   map[string]*model.TeamMetricsHistory
}

func newMockTeamRepo(teams ...*model.Team) *mockTeamRepo {
	m := &mockTeamRepo{
		teams:     map[string]*model.Team{},
		snapshots: map[string]float64{},
		history:   map[string]*model.TeamMetricsHistory{},
	}
	for _, t := range teams {
		m.teams[t.ID] = t
	}
	return m
}

func (m *mockTeamRepo) GetByID(_ context.Context, id string) (*model.Team, error) {
	return m.teams[id], nil
}

func (m *mockTeamRepo) UpsertSnapshot(_ context.Context, teamID string, stress, engagement, participation float64) error {
	if t, ok := m.teams[teamID]; ok {
		t.CurrentStress = stress
		t.CurrentEngagement = engagement
		t.Participation = participation
	}
	m.snapshots[teamID] = participation
	return nil
}

func (m *mockTeamRepo) UpsertMetricsHistory(_ context.Context, h *model.TeamMetricsHistory) (bool, error) {
	key := fmt.Sprintf("%s|%s", h.TeamID, h.PeriodDate.Format("2006-01-02"))
	_, existed := m.history[key]
	m.history[key] = h
	return !existed, nil
}

type mockMetricsCache struct {
	stored   map[string]*model.ComputedMetrics
	failRead bool
	gets     int
	sets     int
}

func newMockMetricsCache() *mockMetricsCache {
	return &mockMetricsCache{stored: map[string]*model.ComputedMetrics{}}
}

func (m *mockMetricsCache) key(teamID, periodKey string) string {
	return teamID + "|" + periodKey
}

func (m *mockMetricsCache) GetComputed(_ context.Context, teamID, periodKey string) (*model.ComputedMetrics, error) {
	m.gets++
	if m.failRead {
		return nil, errStoreDown
	}
	return m.stored[m.key(teamID, periodKey)], nil
}

func (m *mockMetricsCache) SetComputed(_ context.Context, teamID, periodKey string, metrics *model.ComputedMetrics) error {
	m.sets++
	m.stored[m.key(teamID, periodKey)] = metrics
	return nil
}

func (m *mockMetricsCache) Invalidate(_ context.Context, teamID string) error {
	for key := range m.stored {
		if len(key) >= len(teamID) && key[:len(teamID)] == teamID {
			delete(m.stored, key)
		}
	}
	return nil
}
