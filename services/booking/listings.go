package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/ajmal7799/FitStack-sub001/models"
	"github.com/ajmal7799/FitStack-sub001/utils"
)

// signedURLTTL bounds how long a profile-image link stays valid.
const signedURLTTL = 15 * time.Minute

// GetTrainerSlots lists all of a trainer's slots, newest window first handled
// by the repository sort.
func (s *DefaultBookingService) GetTrainerSlots(ctx context.Context, trainerID string) ([]models.Slot, error) {
	slots, err := s.Slots.GetByTrainerID(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trainer slots: %w", err)
	}
	return slots, nil
}

// GetAvailableSlots is the trainee-facing listing of a trainer's open future
// slots, enriched with the trainer's public profile.
func (s *DefaultBookingService) GetAvailableSlots(ctx context.Context, trainerID string) ([]models.SlotDTO, error) {
	trainerDTO, err := s.trainerDTO(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	slots, err := s.Slots.GetAvailableByTrainer(ctx, trainerID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list available slots: %w", err)
	}

	dtos := make([]models.SlotDTO, len(slots))
	for i, slot := range slots {
		dtos[i] = models.SlotDTO{Slot: slot, Trainer: trainerDTO}
	}
	return dtos, nil
}

// GetUserBookings lists the slots a trainee has booked.
func (s *DefaultBookingService) GetUserBookings(ctx context.Context, userID string) ([]models.Slot, error) {
	slots, err := s.Slots.GetBookedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return slots, nil
}

// trainerDTO builds the public trainer view, served from the Redis cache when
// warm. Cache misses and failures fall through to the store.
func (s *DefaultBookingService) trainerDTO(ctx context.Context, trainerID string) (*models.TrainerDTO, error) {
	logger := utils.GetLogger()
	cacheKey := utils.TrainerCachePrefix + trainerID

	if utils.CacheClient != nil {
		if raw, err := utils.CacheClient.Get(ctx, cacheKey).Result(); err == nil {
			var dto models.TrainerDTO
			if err := json.Unmarshal([]byte(raw), &dto); err == nil {
				return &dto, nil
			}
			logger.Warn("booking: corrupt trainer cache entry", zap.String("trainerId", trainerID))
		}
	}

	trainer, err := s.Trainers.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFoundError("trainer not found")
		}
		return nil, fmt.Errorf("failed to load trainer: %w", err)
	}

	dto := &models.TrainerDTO{
		ID:            trainer.ID,
		Name:          trainer.Name,
		AverageRating: trainer.AverageRating,
		RatingCount:   trainer.RatingCount,
	}
	if s.Storage != nil && trainer.ProfileImage != "" {
		url, err := s.Storage.GetSecureDownloadURL(ctx, trainer.ProfileImage, signedURLTTL)
		if err != nil {
			logger.Warn("booking: failed to sign profile image URL",
				zap.String("trainerId", trainerID), zap.Error(err))
		} else {
			dto.ProfileImageURL = url
		}
	}

	if utils.CacheClient != nil {
		if raw, err := json.Marshal(dto); err == nil {
			if err := utils.CacheClient.Set(ctx, cacheKey, raw, utils.TrainerCacheTTL).Err(); err != nil {
				logger.Warn("booking: failed to cache trainer profile", zap.Error(err))
			}
		}
	}
	return dto, nil
}
