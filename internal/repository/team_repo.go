package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inverness4444/stresssense4-sub001/internal/model"
)

// TeamRepo handles MongoDB operations for teams and their metrics history
type TeamRepo interface {
	GetByID(ctx context.Context, id string) (*model.Team, error)
	UpsertSnapshot(ctx context.Context, teamID string, stress, engagement, participation float64) error
	// UpsertMetricsHistory creates or updates the history row for the
	// team+periodDate pair. Returns true when a new row was created.
	UpsertMetricsHistory(ctx context.Context, h *model.TeamMetricsHistory) (bool, error)
}

type teamRepo struct {
	teams   *mongo.Collection
	history *mongo.Collection
}

// NewTeamRepo creates a new team repository
func NewTeamRepo(db *mongo.Database) TeamRepo {
	return &teamRepo{
		teams:   db.Collection("teams"),
		history: db.Collection("team_metrics_history"),
	}
}

func (r *teamRepo) GetByID(ctx context.Context, id string) (*model.Team, error) {
	var team model.Team
	err := r.teams.FindOne(ctx, bson.M{"_id": id}).Decode(&team)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepo) UpsertSnapshot(ctx context.Context, teamID string, stress, engagement, participation float64) error {
	update := bson.M{"$set": bson.M{
		"currentStress":     stress,
		"currentEngagement": engagement,
		"participation":     participation,
		"updatedAt":         time.Now(),
	}}
	opts := options.Update().SetUpsert(true)
	_, err := r.teams.UpdateOne(ctx, bson.M{"_id": teamID}, update, opts)
	return err
}

func (r *teamRepo) UpsertMetricsHistory(ctx context.Context, h *model.TeamMetricsHistory) (bool, error) {
	filter := bson.M{"teamId": h.TeamID, "periodDate": h.PeriodDate}
	update := bson.M{"$set": bson.M{
		"teamId":        h.TeamID,
		"periodDate":    h.PeriodDate,
		"avgStress":     h.AvgStress,
		"avgEngagement": h.AvgEngagement,
		"participation": h.Participation,
		"responseCount": h.ResponseCount,
		"updatedAt":     time.Now(),
	}}
	opts := options.Update().SetUpsert(true)
	res, err := r.history.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}
