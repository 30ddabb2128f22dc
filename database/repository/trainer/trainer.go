// File: database/repository/trainer/trainer.go
package trainerRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ajmal7799/FitStack-sub001/database"
	"github.com/ajmal7799/FitStack-sub001/models"
)

// TrainerRepository exposes the trainer reads the booking core needs plus the
// atomic rating increment owned by the feedback service.
type TrainerRepository interface {
	GetByID(ctx context.Context, trainerID string) (*models.Trainer, error)
	Exists(ctx context.Context, trainerID string) (bool, error)
	ApplyRatingIncrement(ctx context.Context, trainerID string, rating int) error
}

type mongoTrainerRepo struct {
	coll *mongo.Collection
}

// NewMongoTrainerRepo constructs a new MongoDB TrainerRepository.
func NewMongoTrainerRepo() TrainerRepository {
	return &mongoTrainerRepo{
		coll: database.DB().Collection("trainers"),
	}
}

func (r *mongoTrainerRepo) GetByID(ctx context.Context, trainerID string) (*models.Trainer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var trainer models.Trainer
	err := r.coll.FindOne(ctx, bson.M{"id": trainerID}).Decode(&trainer)
	if err != nil {
		return nil, err
	}
	return &trainer, nil
}

func (r *mongoTrainerRepo) Exists(ctx context.Context, trainerID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"id": trainerID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ApplyRatingIncrement folds one rating into the trainer's running aggregates
// in a single pipeline update: sum and count are incremented and the rounded
// average recomputed from the new values, so concurrent feedback submissions
// for the same trainer never lose an update.
func (r *mongoTrainerRepo) ApplyRatingIncrement(ctx context.Context, trainerID string, rating int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{
			{Key: "$set", Value: bson.D{
				{Key: "ratingSum", Value: bson.D{
					{Key: "$add", Value: bson.A{
						bson.D{{Key: "$ifNull", Value: bson.A{"$ratingSum", 0}}},
						rating,
					}},
				}},
				{Key: "ratingCount", Value: bson.D{
					{Key: "$add", Value: bson.A{
						bson.D{{Key: "$ifNull", Value: bson.A{"$ratingCount", 0}}},
						1,
					}},
				}},
			}},
		},
		bson.D{
			{Key: "$set", Value: bson.D{
				{Key: "averageRating", Value: bson.D{
					{Key: "$round", Value: bson.A{
						bson.D{{Key: "$divide", Value: bson.A{"$ratingSum", "$ratingCount"}}},
						2,
					}},
				}},
			}},
		},
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": trainerID}, pipeline)
	if err != nil {
		return fmt.Errorf("failed to apply rating increment: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
