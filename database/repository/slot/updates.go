// File: database/repository/slot/updates.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ajmal7799/FitStack-sub001/models"
)

// Claim atomically books an unbooked slot for the given trainee. The filter
// pins isBooked=false so that of any number of concurrent claims exactly one
// matches; the losers get mongo.ErrNoDocuments.
func (r *mongoSlotRepo) Claim(ctx context.Context, slotID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": slotID, "isBooked": false}
	update := bson.M{
		"$set": bson.M{
			"isBooked":   true,
			"bookedBy":   userID,
			"slotStatus": models.SlotStatusBooked,
		},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to claim slot: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// CloseBooked mirrors a session's terminal status onto its slot. The filter
// pins slotStatus=booked so repeated sweeps and racing end calls apply the
// transition at most once.
func (r *mongoSlotRepo) CloseBooked(ctx context.Context, slotID string, status models.SlotStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": slotID, "slotStatus": models.SlotStatusBooked}
	update := bson.M{"$set": bson.M{"slotStatus": status}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to close slot: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Cancel marks a booked slot cancelled with a reason.
func (r *mongoSlotRepo) Cancel(ctx context.Context, slotID, reason string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": slotID, "slotStatus": models.SlotStatusBooked}
	update := bson.M{
		"$set": bson.M{
			"slotStatus":         models.SlotStatusCancelled,
			"cancellationReason": reason,
			"cancelledAt":        at,
		},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to cancel slot: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
