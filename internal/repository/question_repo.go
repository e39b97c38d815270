package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inverness4444/stresssense4-sub001/internal/model"
)

// QuestionRepo handles MongoDB operations for question metadata
type QuestionRepo interface {
	GetByID(ctx context.Context, id string) (*model.Question, error)
	GetAll(ctx context.Context) ([]*model.Question, error)
	GetBySurveyID(ctx context.Context, surveyID string) ([]*model.Question, error)
	UpdateDriverMeta(ctx context.Context, id string, driverKey model.DriverKey, driverTag string, polarity model.Polarity, needsReview bool) error
}

type questionRepo struct {
	collection *mongo.Collection
}

// NewQuestionRepo creates a new question repository
func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{
		collection: db.Collection("questions"),
	}
}

func (r *questionRepo) GetByID(ctx context.Context, id string) (*model.Question, error) {
	var question model.Question
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepo) GetAll(ctx context.Context) ([]*model.Question, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []*model.Question
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepo) GetBySurveyID(ctx context.Context, surveyID string) ([]*model.Question, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"surveyId": surveyID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []*model.Question
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepo) UpdateDriverMeta(ctx context.Context, id string, driverKey model.DriverKey, driverTag string, polarity model.Polarity, needsReview bool) error {
	update := bson.M{"$set": bson.M{
		"driverKey":   string(driverKey),
		"driverTag":   driverTag,
		"polarity":    string(polarity),
		"needsReview": needsReview,
		"updatedAt":   time.Now(),
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}
