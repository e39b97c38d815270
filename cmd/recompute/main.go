package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/inverness4444/stresssense4-sub001/internal/config"
	"github.com/inverness4444/stresssense4-sub001/internal/model"
	"github.com/inverness4444/stresssense4-sub001/internal/repository"
	"github.com/inverness4444/stresssense4-sub001/internal/service"
)

func main() {
	phase := flag.String("phase", "all", "which phase to run: backfill, recompute, or all")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("mongo connect", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)

	if err := mongoClient.Ping(ctx, nil); err != nil {
		logger.Fatal("mongo ping", zap.Error(err))
	}

	db := mongoClient.Database(cfg.MongoDB)
	questionRepo := repository.NewQuestionRepo(db)
	responseRepo := repository.NewResponseRepo(db)
	runRepo := repository.NewRunRepo(db)
	teamRepo := repository.NewTeamRepo(db)

	recomputeSvc := service.NewRecomputeService(questionRepo, runRepo, responseRepo, teamRepo, logger)

	switch *phase {
	case "all":
		summary, err := recomputeSvc.Run(ctx)
		if err != nil {
			logger.Fatal("recompute failed", zap.Error(err))
		}
		logSummary(logger, summary)
	case "backfill":
		summary := newSummary()
		if err := recomputeSvc.BackfillDriverMeta(ctx, summary); err != nil {
			logger.Fatal("backfill failed", zap.Error(err))
		}
		summary.FinishedAt = time.Now()
		logSummary(logger, summary)
	case "recompute":
		summary := newSummary()
		if err := recomputeSvc.RecomputeRuns(ctx, summary); err != nil {
			logger.Fatal("recompute failed", zap.Error(err))
		}
		summary.FinishedAt = time.Now()
		logSummary(logger, summary)
	default:
		logger.Fatal("unknown phase", zap.String("phase", *phase))
	}
}

func newSummary() *model.RecomputeSummary {
	return &model.RecomputeSummary{
		JobID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
}

func logSummary(logger *zap.Logger, s *model.RecomputeSummary) {
	logger.Info("job summary",
		zap.String("jobId", s.JobID),
		zap.Int("questionsUpdated", s.QuestionsUpdated),
		zap.Int("runsUpdated", s.RunsUpdated),
		zap.Int("runsSkipped", s.RunsSkipped),
		zap.Int("teamRowsUpdated", s.TeamRowsUpdated),
		zap.Int("teamRowsCreated", s.TeamRowsCreated),
		zap.Duration("took", s.FinishedAt.Sub(s.StartedAt)),
	)
}
