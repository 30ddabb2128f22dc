// File: database/repository/session/updates.go
package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ajmal7799/FitStack-sub001/models"
)

// joinPipeline builds the single aggregation-pipeline update applied when a
// participant joins: it sets the caller's join flag and, only when the
// session is still waiting and the other side is already present, flips
// status to active and stamps startedAt. Folding the check and the set into
// one pipeline makes the waiting->active edge fire at most once no matter how
// many join calls race on the document.
func joinPipeline(who Participant, now time.Time) mongo.Pipeline {
	joinField := "trainerJoined"
	otherField := "$userJoined"
	if who == ParticipantUser {
		joinField = "userJoined"
		otherField = "$trainerJoined"
	}

	bothPresent := bson.D{
		{Key: "$and", Value: bson.A{
			bson.D{{Key: "$eq", Value: bson.A{"$status", string(models.SessionStatusWaiting)}}},
			otherField,
		}},
	}

	return mongo.Pipeline{
		bson.D{
			{Key: "$set", Value: bson.D{
				{Key: joinField, Value: true},
				{Key: "status", Value: bson.D{
					{Key: "$cond", Value: bson.A{
						bothPresent,
						string(models.SessionStatusActive),
						"$status",
					}},
				}},
				{Key: "startedAt", Value: bson.D{
					{Key: "$cond", Value: bson.A{
						bothPresent,
						now,
						"$startedAt",
					}},
				}},
			}},
		},
	}
}

// RecordJoin applies the join pipeline to a live session and returns the
// post-update document. mongo.ErrNoDocuments means the session is missing or
// already terminal.
func (r *mongoSessionRepo) RecordJoin(ctx context.Context, slotID string, who Participant, now time.Time) (*models.VideoSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"slotId": slotID,
		"status": bson.M{"$in": []models.SessionStatus{
			models.SessionStatusWaiting,
			models.SessionStatusActive,
		}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var session models.VideoSession
	err := r.coll.FindOneAndUpdate(ctx, filter, joinPipeline(who, now), opts).Decode(&session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Close transitions a live session to completed or missed and stamps endedAt.
// The status guard keeps the sweep idempotent: a session already closed by a
// racing end call or an earlier sweep pass is left untouched.
func (r *mongoSessionRepo) Close(ctx context.Context, sessionID string, status models.SessionStatus, endedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id": sessionID,
		"status": bson.M{"$in": []models.SessionStatus{
			models.SessionStatusWaiting,
			models.SessionStatusActive,
		}},
	}
	update := bson.M{
		"$set": bson.M{
			"status":  status,
			"endedAt": endedAt,
		},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Cancel marks a live session cancelled on behalf of a participant.
func (r *mongoSessionRepo) Cancel(ctx context.Context, sessionID, cancelledBy, reason string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id": sessionID,
		"status": bson.M{"$in": []models.SessionStatus{
			models.SessionStatusWaiting,
			models.SessionStatusActive,
		}},
	}
	update := bson.M{
		"$set": bson.M{
			"status":             models.SessionStatusCancelled,
			"cancelledBy":        cancelledBy,
			"cancellationReason": reason,
			"cancelledAt":        at,
		},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to cancel session: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
