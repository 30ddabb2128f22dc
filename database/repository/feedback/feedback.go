// File: database/repository/feedback/feedback.go
package feedbackRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/ajmal7799/FitStack-sub001/database"
	"github.com/ajmal7799/FitStack-sub001/models"
	"github.com/ajmal7799/FitStack-sub001/utils"
)

// ErrDuplicateSession reports a second feedback insert for the same session.
var ErrDuplicateSession = fmt.Errorf("feedback already exists for session")

// FeedbackRepository persists post-session ratings. One feedback per session,
// backed by a unique index on sessionId.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	ExistsBySessionID(ctx context.Context, sessionID string) (bool, error)
	ListByTrainerID(ctx context.Context, trainerID string) ([]models.Feedback, error)
}

type mongoFeedbackRepo struct {
	coll *mongo.Collection
}

// NewMongoFeedbackRepo constructs a new MongoDB FeedbackRepository.
func NewMongoFeedbackRepo() FeedbackRepository {
	r := &mongoFeedbackRepo{
		coll: database.DB().Collection("feedbacks"),
	}
	if err := r.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("feedback repo: could not ensure indexes", zap.Error(err))
	}
	return r
}

func (r *mongoFeedbackRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "sessionId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_session_id"),
		},
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("trainer_created_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create feedback indexes: %w", err)
	}
	return nil
}

// Create inserts a feedback record. A duplicate sessionId is reported as
// ErrDuplicateSession so the service can reject the second submission.
func (r *mongoFeedbackRepo) Create(ctx context.Context, feedback *models.Feedback) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if feedback.ID == "" {
		feedback.ID = uuid.New().String()
	}
	_, err := r.coll.InsertOne(ctx, feedback)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateSession
		}
		return err
	}
	return nil
}

func (r *mongoFeedbackRepo) ExistsBySessionID(ctx context.Context, sessionID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"sessionId": sessionID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *mongoFeedbackRepo) ListByTrainerID(ctx context.Context, trainerID string) ([]models.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"trainerId": trainerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var feedbacks []models.Feedback
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return nil, err
	}
	return feedbacks, nil
}
