// File: database/repository/session/crud.go
package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ajmal7799/FitStack-sub001/models"
)

func (r *mongoSessionRepo) Create(ctx context.Context, session *models.VideoSession) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	_, err := r.coll.InsertOne(ctx, session)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("session already exists for slot %s: %w", session.SlotID, err)
		}
		return err
	}
	return nil
}

func (r *mongoSessionRepo) GetByID(ctx context.Context, sessionID string) (*models.VideoSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var session models.VideoSession
	err := r.coll.FindOne(ctx, bson.M{"id": sessionID}).Decode(&session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *mongoSessionRepo) GetBySlotID(ctx context.Context, slotID string) (*models.VideoSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var session models.VideoSession
	err := r.coll.FindOne(ctx, bson.M{"slotId": slotID}).Decode(&session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *mongoSessionRepo) ListByParticipant(ctx context.Context, participantID string) ([]models.VideoSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"$or": []bson.M{
			{"userId": participantID},
			{"trainerId": participantID},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []models.VideoSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// FindExpired returns sessions whose window has elapsed without reaching a
// terminal state. The sweeper closes these one by one.
func (r *mongoSessionRepo) FindExpired(ctx context.Context, now time.Time) ([]models.VideoSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"endTime": bson.M{"$lt": now},
		"status": bson.M{"$in": []models.SessionStatus{
			models.SessionStatusWaiting,
			models.SessionStatusActive,
		}},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []models.VideoSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
