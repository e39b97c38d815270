package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/inverness4444/stresssense4-sub001/internal/cache"
	"github.com/inverness4444/stresssense4-sub001/internal/model"
	"github.com/inverness4444/stresssense4-sub001/internal/period"
	"github.com/inverness4444/stresssense4-sub001/internal/repository"
	"github.com/inverness4444/stresssense4-sub001/internal/stats"
)

// MetricsService serves live dashboard queries: period ranges, response
// loading, aggregation and composition, with a cache in front.
type MetricsService struct {
	questionRepo repository.QuestionRepo
	responseRepo repository.ResponseRepo
	runRepo      repository.RunRepo
	metricsCache cache.MetricsCache
	logger       *zap.Logger
}

// NewMetricsService creates a new metrics service. The cache may be nil;
// reads then always recompute.
func NewMetricsService(
	questionRepo repository.QuestionRepo,
	responseRepo repository.ResponseRepo,
	runRepo repository.RunRepo,
	metricsCache cache.MetricsCache,
	logger *zap.Logger,
) *MetricsService {
	return &MetricsService{
		questionRepo: questionRepo,
		responseRepo: responseRepo,
		runRepo:      runRepo,
		metricsCache: metricsCache,
		logger:       logger,
	}
}

// GetTeamMetrics returns the composed current-vs-previous dashboard
// metrics for a team. now is explicit so callers (and tests) control time.
func (s *MetricsService) GetTeamMetrics(ctx context.Context, teamID string, p period.Period, locale string, now time.Time) (*model.ComputedMetrics, error) {
	cacheKey := fmt.Sprintf("%s:%s", p, locale)
	if s.metricsCache != nil {
		cached, err := s.metricsCache.GetComputed(ctx, teamID, cacheKey)
		if err != nil {
			s.logger.Warn("metrics cache read failed", zap.String("teamId", teamID), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	ranges := period.GetRanges(p, now)
	questions, runs, err := s.loadLookups(ctx, teamID)
	if err != nil {
		return nil, err
	}

	current, err := s.statsForRange(ctx, teamID, ranges.Current, questions, runs, locale)
	if err != nil {
		return nil, err
	}
	previous, err := s.statsForRange(ctx, teamID, ranges.Previous, questions, runs, locale)
	if err != nil {
		return nil, err
	}

	computed := stats.BuildComputedMetrics(current, previous, locale)

	if s.metricsCache != nil {
		if err := s.metricsCache.SetComputed(ctx, teamID, cacheKey, computed); err != nil {
			s.logger.Warn("metrics cache write failed", zap.String("teamId", teamID), zap.Error(err))
		}
	}
	return computed, nil
}

// GetTeamTrends returns the raw current-period aggregates for a team,
// without the previous-period comparison.
func (s *MetricsService) GetTeamTrends(ctx context.Context, teamID string, p period.Period, locale string, now time.Time) (*model.StatsResult, error) {
	ranges := period.GetRanges(p, now)
	questions, runs, err := s.loadLookups(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return s.statsForRange(ctx, teamID, ranges.Current, questions, runs, locale)
}

func (s *MetricsService) loadLookups(ctx context.Context, teamID string) (map[string]*model.Question, map[string]*model.Run, error) {
	questionList, err := s.questionRepo.GetAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load questions: %w", err)
	}
	questions := make(map[string]*model.Question, len(questionList))
	for _, q := range questionList {
		questions[q.ID] = q
	}

	runList, err := s.runRepo.GetByTeamID(ctx, teamID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load runs: %w", err)
	}
	runs := make(map[string]*model.Run, len(runList))
	for _, run := range runList {
		runs[run.ID] = run
	}
	return questions, runs, nil
}

func (s *MetricsService) statsForRange(ctx context.Context, teamID string, r period.Range, questions map[string]*model.Question, runs map[string]*model.Run, locale string) (*model.StatsResult, error) {
	responses, err := s.responseRepo.GetByTeamAndRange(ctx, teamID, r.Start, r.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}
	for _, resp := range responses {
		if resp.RunID != "" {
			resp.Run = runs[resp.RunID]
		}
	}
	return stats.ComputeStatsForResponses(responses, questions, locale, r), nil
}
