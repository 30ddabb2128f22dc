// File: database/repository/slot/queries.go
package slotRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ajmal7799/FitStack-sub001/models"
)

func (r *mongoSlotRepo) GetByTrainerID(ctx context.Context, trainerID string) ([]models.Slot, error) {
	return r.find(ctx, bson.M{"trainerId": trainerID})
}

// GetAvailableByTrainer lists a trainer's open slots starting at or after the
// given instant, ordered by start time for the trainee-facing view.
func (r *mongoSlotRepo) GetAvailableByTrainer(ctx context.Context, trainerID string, from time.Time) ([]models.Slot, error) {
	filter := bson.M{
		"trainerId":  trainerID,
		"slotStatus": models.SlotStatusAvailable,
		"startTime":  bson.M{"$gte": from},
	}
	return r.find(ctx, filter)
}

func (r *mongoSlotRepo) GetBookedByUser(ctx context.Context, userID string) ([]models.Slot, error) {
	return r.find(ctx, bson.M{"bookedBy": userID, "isBooked": true})
}

// FindOverlapping returns the trainer's live slots intersecting [start, end).
// Cancelled slots no longer block the window.
func (r *mongoSlotRepo) FindOverlapping(ctx context.Context, trainerID string, start, end time.Time) ([]models.Slot, error) {
	filter := bson.M{
		"trainerId":  trainerID,
		"slotStatus": bson.M{"$ne": models.SlotStatusCancelled},
		"startTime":  bson.M{"$lt": end},
		"endTime":    bson.M{"$gt": start},
	}
	return r.find(ctx, filter)
}

// CountUserBookingsInWindow counts a trainee's booked slots starting within
// [dayStart, dayEnd), backing the one-booking-per-day rule.
func (r *mongoSlotRepo) CountUserBookingsInWindow(ctx context.Context, userID string, dayStart, dayEnd time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"bookedBy": userID,
		"isBooked": true,
		"startTime": bson.M{
			"$gte": dayStart,
			"$lt":  dayEnd,
		},
	}
	return r.coll.CountDocuments(ctx, filter)
}

func (r *mongoSlotRepo) find(ctx context.Context, filter bson.M) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var slots []models.Slot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}
