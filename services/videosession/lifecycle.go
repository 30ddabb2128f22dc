package videosession

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/ajmal7799/FitStack-sub001/models"
	"github.com/ajmal7799/FitStack-sub001/services/notification"
	"github.com/ajmal7799/FitStack-sub001/utils"
)

// End closes a live session at a participant's request. A session that
// actually started ends completed; one that never started ends missed. The
// close is conditional on the session still being live, so a racing end call
// or sweep leaves exactly one winner.
func (s *DefaultVideoSessionService) End(ctx context.Context, callerID, slotID string) (*models.VideoSession, error) {
	session, err := s.participantSession(ctx, callerID, slotID)
	if err != nil {
		return nil, err
	}

	status := models.SessionStatusMissed
	if session.StartedAt != nil {
		status = models.SessionStatusCompleted
	}

	now := time.Now()
	if err := s.Sessions.Close(ctx, session.ID, status, now); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.ConflictError("session is already closed")
		}
		return nil, fmt.Errorf("failed to close session: %w", err)
	}
	s.mirrorSlotStatus(ctx, session.SlotID, models.SlotStatus(status))

	s.notifyCounterpart(ctx, session, callerID, "session_ended", "Session ended",
		"Your video session has ended")

	session.Status = status
	session.EndedAt = &now
	return session, nil
}

// Cancel voids a live session before its window closes and releases nothing:
// the slot is marked cancelled, not reopened.
func (s *DefaultVideoSessionService) Cancel(ctx context.Context, callerID, slotID, reason string) error {
	session, err := s.participantSession(ctx, callerID, slotID)
	if err != nil {
		return err
	}

	now := time.Now()
	if now.After(session.EndTime) {
		return utils.ForbiddenError("the session window has already closed")
	}

	if err := s.Sessions.Cancel(ctx, session.ID, callerID, reason, now); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.ConflictError("session is already closed")
		}
		return fmt.Errorf("failed to cancel session: %w", err)
	}
	if err := s.Slots.Cancel(ctx, session.SlotID, reason, now); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		utils.GetLogger().Warn("videosession: failed to mirror cancellation onto slot",
			zap.String("slotId", session.SlotID), zap.Error(err))
	}

	s.notifyCounterpart(ctx, session, callerID, "session_cancelled", "Session cancelled",
		"Your video session was cancelled")
	return nil
}

// Get returns session details to one of its participants.
func (s *DefaultVideoSessionService) Get(ctx context.Context, callerID, slotID string) (*models.VideoSession, error) {
	return s.participantSession(ctx, callerID, slotID)
}

// ListByParticipant lists every session the caller is a party to.
func (s *DefaultVideoSessionService) ListByParticipant(ctx context.Context, callerID string) ([]models.VideoSession, error) {
	sessions, err := s.Sessions.ListByParticipant(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

func (s *DefaultVideoSessionService) participantSession(ctx context.Context, callerID, slotID string) (*models.VideoSession, error) {
	session, err := s.Sessions.GetBySlotID(ctx, slotID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFoundError("session not found")
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if callerID != session.TrainerID && callerID != session.UserID {
		return nil, utils.ForbiddenError("you are not a participant of this session")
	}
	return session, nil
}

func (s *DefaultVideoSessionService) mirrorSlotStatus(ctx context.Context, slotID string, status models.SlotStatus) {
	if err := s.Slots.CloseBooked(ctx, slotID, status); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		utils.GetLogger().Warn("videosession: failed to mirror session status onto slot",
			zap.String("slotId", slotID), zap.Error(err))
	}
}

func (s *DefaultVideoSessionService) notifyCounterpart(ctx context.Context, session *models.VideoSession, callerID, typ, title, message string) {
	if s.Notifier == nil {
		return
	}
	recipient, role := session.UserID, notification.RoleUser
	if callerID == session.UserID {
		recipient, role = session.TrainerID, notification.RoleTrainer
	}
	s.Notifier.Notify(ctx, recipient, role, typ, title, message, session.SlotID)
}
