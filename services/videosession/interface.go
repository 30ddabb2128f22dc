package videosession

import (
	"context"
	"time"

	sessionRepo "github.com/ajmal7799/FitStack-sub001/database/repository/session"
	slotRepo "github.com/ajmal7799/FitStack-sub001/database/repository/slot"
	"github.com/ajmal7799/FitStack-sub001/models"
	"github.com/ajmal7799/FitStack-sub001/services/notification"
)

// JoinWindowLead is how early a participant may enter before the session
// window opens.
const JoinWindowLead = 5 * time.Minute

// VideoSessionService coordinates the two-party session state machine: each
// participant's join, the explicit end, cancellation, and detail reads.
type VideoSessionService interface {
	Join(ctx context.Context, callerID, slotID string) (*models.JoinSessionResponse, error)
	End(ctx context.Context, callerID, slotID string) (*models.VideoSession, error)
	Cancel(ctx context.Context, callerID, slotID, reason string) error
	Get(ctx context.Context, callerID, slotID string) (*models.VideoSession, error)
	ListByParticipant(ctx context.Context, callerID string) ([]models.VideoSession, error)
}

// DefaultVideoSessionService implements VideoSessionService.
type DefaultVideoSessionService struct {
	Sessions sessionRepo.SessionRepository
	Slots    slotRepo.SlotRepository
	Notifier notification.NotificationService
}
