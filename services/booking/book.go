package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/ajmal7799/FitStack-sub001/models"
	"github.com/ajmal7799/FitStack-sub001/services/notification"
	"github.com/ajmal7799/FitStack-sub001/utils"
)

// reminderLead is how long before the session window a reminder fires.
const reminderLead = 10 * time.Minute

// BookSlot claims an available slot for the trainee and creates the paired
// video session. The claim itself is a single conditional update keyed on
// isBooked=false, so of any number of concurrent booking attempts exactly one
// wins; every loser gets a Conflict.
func (s *DefaultBookingService) BookSlot(ctx context.Context, userID, slotID string) (*models.VideoSession, error) {
	exists, err := s.Users.Exists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up trainee: %w", err)
	}
	if !exists {
		return nil, utils.NotFoundError("trainee not found")
	}

	slot, err := s.Slots.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFoundError("slot not found")
		}
		return nil, fmt.Errorf("failed to load slot: %w", err)
	}

	now := time.Now()
	if !now.Before(slot.StartTime) {
		return nil, utils.ForbiddenError("slot has already started")
	}
	if slot.IsBooked {
		return nil, utils.ConflictError("slot is already booked")
	}

	// One booking per trainee per calendar day, measured by the slot's start.
	dayStart := time.Date(slot.StartTime.Year(), slot.StartTime.Month(), slot.StartTime.Day(), 0, 0, 0, 0, slot.StartTime.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	count, err := s.Slots.CountUserBookingsInWindow(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to count existing bookings: %w", err)
	}
	if count > 0 {
		return nil, utils.ConflictError("you already have a booking on this day")
	}

	if err := s.Slots.Claim(ctx, slotID, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.ConflictError("slot was just booked by someone else")
		}
		return nil, fmt.Errorf("failed to claim slot: %w", err)
	}

	session := &models.VideoSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		TrainerID: slot.TrainerID,
		SlotID:    slot.ID,
		RoomID:    uuid.New().String(),
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Status:    models.SessionStatusWaiting,
		CreatedAt: now,
	}
	if err := s.Sessions.Create(ctx, session); err != nil {
		// The slot claim has already landed. There is no store-level
		// transaction spanning both writes, so this leaves a booked slot with
		// no session; flag it loudly for reconciliation.
		utils.GetLogger().Error("booking: slot claimed but session creation failed",
			zap.String("slotId", slot.ID),
			zap.String("userId", userID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create session for claimed slot %s: %w", slot.ID, err)
	}

	s.scheduleReminder(session)

	if s.Notifier != nil {
		s.Notifier.Notify(ctx, slot.TrainerID, notification.RoleTrainer, "session_booked",
			"New session booked",
			fmt.Sprintf("A trainee booked your %s slot", slot.StartTime.Format("Jan 2 15:04")),
			slot.ID)
	}

	return session, nil
}

func (s *DefaultBookingService) scheduleReminder(session *models.VideoSession) {
	if s.Reminders == nil {
		return
	}
	payload := models.ReminderPayload{
		SessionID: session.ID,
		SlotID:    session.SlotID,
		UserID:    session.UserID,
		TrainerID: session.TrainerID,
		StartTime: session.StartTime.Format(time.RFC3339),
	}
	processAt := session.StartTime.Add(-reminderLead)
	if err := s.Reminders.ScheduleSessionReminder(payload, processAt); err != nil {
		utils.GetLogger().Warn("booking: failed to schedule session reminder",
			zap.String("sessionId", session.ID),
			zap.Error(err))
	}
}
