package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inverness4444/stresssense4-sub001/internal/model"
)

// RunRepo handles MongoDB operations for survey runs
type RunRepo interface {
	GetAll(ctx context.Context) ([]*model.Run, error)
	GetByTeamID(ctx context.Context, teamID string) ([]*model.Run, error)
	UpdateAverages(ctx context.Context, runID string, avgStress, avgEngagement float64, responseCount int) error
}

type runRepo struct {
	collection *mongo.Collection
}

// NewRunRepo creates a new run repository
func NewRunRepo(db *mongo.Database) RunRepo {
	return &runRepo{
		collection: db.Collection("runs"),
	}
}

func (r *runRepo) GetAll(ctx context.Context) ([]*model.Run, error) {
	// Sorted by run date so recompute processes history in order and the
	// team snapshot ends up reflecting the newest run
	opts := options.Find().SetSort(bson.D{{Key: "runDate", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var runs []*model.Run
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *runRepo) GetByTeamID(ctx context.Context, teamID string) ([]*model.Run, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"teamId": teamID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var runs []*model.Run
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *runRepo) UpdateAverages(ctx context.Context, runID string, avgStress, avgEngagement float64, responseCount int) error {
	update := bson.M{"$set": bson.M{
		"avgStress":     avgStress,
		"avgEngagement": avgEngagement,
		"responseCount": responseCount,
		"updatedAt":     time.Now(),
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": runID}, update)
	return err
}
