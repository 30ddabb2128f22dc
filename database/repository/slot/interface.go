// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"
	"time"

	"github.com/ajmal7799/FitStack-sub001/database"
	"github.com/ajmal7799/FitStack-sub001/models"
	"github.com/ajmal7799/FitStack-sub001/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SlotRepository is the persistence boundary for trainer time slots. All
// state transitions go through conditional updates; a zero-match conditional
// update is reported as mongo.ErrNoDocuments and never silently dropped.
type SlotRepository interface {
	Create(ctx context.Context, slot *models.Slot) error
	CreateMany(ctx context.Context, slots []models.Slot) ([]string, error)
	GetByID(ctx context.Context, slotID string) (*models.Slot, error)
	GetByTrainerID(ctx context.Context, trainerID string) ([]models.Slot, error)
	GetAvailableByTrainer(ctx context.Context, trainerID string, from time.Time) ([]models.Slot, error)
	GetBookedByUser(ctx context.Context, userID string) ([]models.Slot, error)
	FindOverlapping(ctx context.Context, trainerID string, start, end time.Time) ([]models.Slot, error)
	CountUserBookingsInWindow(ctx context.Context, userID string, dayStart, dayEnd time.Time) (int64, error)
	Claim(ctx context.Context, slotID, userID string) error
	CloseBooked(ctx context.Context, slotID string, status models.SlotStatus) error
	Cancel(ctx context.Context, slotID, reason string, at time.Time) error
	DeleteUnbooked(ctx context.Context, trainerID, slotID string) error
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository.
func NewMongoSlotRepo() SlotRepository {
	r := &mongoSlotRepo{
		coll: database.DB().Collection("slots"),
	}
	if err := r.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("slot repo: could not ensure indexes", zap.Error(err))
	}
	return r
}
