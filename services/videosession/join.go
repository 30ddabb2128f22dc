package videosession

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	sessionRepo "github.com/ajmal7799/FitStack-sub001/database/repository/session"
	"github.com/ajmal7799/FitStack-sub001/models"
	"github.com/ajmal7799/FitStack-sub001/utils"
)

// Join records the caller's entry into the session and hands back the room ID
// for the real-time transport. The join flag and the waiting->active edge are
// applied in one conditional update, so the transition fires exactly once even
// when both participants join in the same instant.
func (s *DefaultVideoSessionService) Join(ctx context.Context, callerID, slotID string) (*models.JoinSessionResponse, error) {
	slot, err := s.Slots.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFoundError("slot not found")
		}
		return nil, fmt.Errorf("failed to load slot: %w", err)
	}
	if slot.SlotStatus != models.SlotStatusBooked {
		return nil, utils.NotFoundError("no live session for this slot")
	}

	now := time.Now()
	if now.Before(slot.StartTime.Add(-JoinWindowLead)) {
		return nil, utils.ForbiddenError("too early to join; the session has not opened yet")
	}
	if now.After(slot.EndTime) {
		return nil, utils.ForbiddenError("the session window has already closed")
	}

	// Identity is resolved against the slot's two bound parties, not a role
	// claim: the trainer is whoever owns the slot, the trainee is whoever
	// booked it.
	var who sessionRepo.Participant
	switch callerID {
	case slot.TrainerID:
		who = sessionRepo.ParticipantTrainer
	case slot.BookedBy:
		who = sessionRepo.ParticipantUser
	default:
		return nil, utils.ForbiddenError("you are not a participant of this session")
	}

	session, err := s.Sessions.RecordJoin(ctx, slotID, who, now)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFoundError("session not found")
		}
		return nil, fmt.Errorf("failed to record join: %w", err)
	}

	return &models.JoinSessionResponse{
		RoomID:    session.RoomID,
		Status:    session.Status,
		StartTime: session.StartTime,
		EndTime:   session.EndTime,
	}, nil
}
