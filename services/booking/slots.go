package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ajmal7799/FitStack-sub001/models"
	"github.com/ajmal7799/FitStack-sub001/utils"
)

// CreateSlot opens a single 60-minute availability window for the trainer.
// The window must start in the future and may not overlap any existing
// non-cancelled slot of the same trainer.
func (s *DefaultBookingService) CreateSlot(ctx context.Context, trainerID string, start time.Time) (*models.Slot, error) {
	exists, err := s.Trainers.Exists(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up trainer: %w", err)
	}
	if !exists {
		return nil, utils.NotFoundError("trainer not found")
	}

	now := time.Now()
	if !start.After(now) {
		return nil, utils.InvalidInputError("slot start time must be in the future")
	}

	end := start.Add(SlotDuration)
	overlapping, err := s.Slots.FindOverlapping(ctx, trainerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to check slot overlap: %w", err)
	}
	if len(overlapping) > 0 {
		return nil, utils.ConflictError("slot overlaps an existing slot")
	}

	slot := &models.Slot{
		ID:         uuid.New().String(),
		TrainerID:  trainerID,
		StartTime:  start,
		EndTime:    end,
		SlotStatus: models.SlotStatusAvailable,
		CreatedAt:  now,
	}
	if err := s.Slots.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("failed to create slot: %w", err)
	}
	return slot, nil
}

// CreateRecurringSlots expands a date range into one candidate slot per
// matching weekday and inserts them as a batch. The overlap check runs over
// the full candidate set first: if any candidate collides with an existing
// slot, the whole batch is rejected and nothing is inserted.
func (s *DefaultBookingService) CreateRecurringSlots(ctx context.Context, trainerID string, req models.CreateRecurringSlotsRequest) ([]models.Slot, error) {
	exists, err := s.Trainers.Exists(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up trainer: %w", err)
	}
	if !exists {
		return nil, utils.NotFoundError("trainer not found")
	}

	from, err := time.Parse("2006-01-02", req.FromDate)
	if err != nil {
		return nil, utils.InvalidInputError("invalid fromDate, expected YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", req.ToDate)
	if err != nil {
		return nil, utils.InvalidInputError("invalid toDate, expected YYYY-MM-DD")
	}
	if to.Before(from) {
		return nil, utils.InvalidInputError("toDate must not be before fromDate")
	}
	if len(req.Weekdays) == 0 {
		return nil, utils.InvalidInputError("at least one weekday is required")
	}
	if req.StartHour < 0 || req.StartHour > 23 || req.StartMin < 0 || req.StartMin > 59 {
		return nil, utils.InvalidInputError("invalid start clock time")
	}

	wanted := make(map[time.Weekday]bool, len(req.Weekdays))
	for _, wd := range req.Weekdays {
		wanted[wd] = true
	}

	now := time.Now()
	var candidates []models.Slot
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if !wanted[day.Weekday()] {
			continue
		}
		start := time.Date(day.Year(), day.Month(), day.Day(), req.StartHour, req.StartMin, 0, 0, time.UTC)
		if !start.After(now) {
			// Past days inside the range are skipped rather than failing the batch.
			continue
		}
		candidates = append(candidates, models.Slot{
			ID:         uuid.New().String(),
			TrainerID:  trainerID,
			StartTime:  start,
			EndTime:    start.Add(SlotDuration),
			SlotStatus: models.SlotStatusAvailable,
			CreatedAt:  now,
		})
	}
	if len(candidates) == 0 {
		return nil, utils.InvalidInputError("date range produced no future slots")
	}

	// Batch precondition: every candidate must be clear of existing slots and
	// of the other candidates before anything is inserted.
	for i, cand := range candidates {
		overlapping, err := s.Slots.FindOverlapping(ctx, trainerID, cand.StartTime, cand.EndTime)
		if err != nil {
			return nil, fmt.Errorf("failed to check slot overlap: %w", err)
		}
		if len(overlapping) > 0 {
			return nil, utils.ConflictError(fmt.Sprintf("slot on %s overlaps an existing slot", cand.StartTime.Format("2006-01-02")))
		}
		for j := 0; j < i; j++ {
			if candidates[j].Overlaps(cand.StartTime, cand.EndTime) {
				return nil, utils.ConflictError("recurring slots overlap each other")
			}
		}
	}

	if _, err := s.Slots.CreateMany(ctx, candidates); err != nil {
		return nil, fmt.Errorf("failed to insert recurring slots: %w", err)
	}
	return candidates, nil
}

// DeleteSlot removes an unbooked slot. Only the owning trainer may delete,
// and a slot that has been claimed is no longer deletable.
func (s *DefaultBookingService) DeleteSlot(ctx context.Context, trainerID, slotID string) error {
	slot, err := s.Slots.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.NotFoundError("slot not found")
		}
		return fmt.Errorf("failed to load slot: %w", err)
	}
	if slot.TrainerID != trainerID {
		return utils.ForbiddenError("slot belongs to another trainer")
	}

	if err := s.Slots.DeleteUnbooked(ctx, trainerID, slotID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// The slot existed a moment ago, so the conditional delete lost to
			// a concurrent booking.
			return utils.ConflictError("slot has already been booked")
		}
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	return nil
}
