package feedback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	feedbackRepo "github.com/ajmal7799/FitStack-sub001/database/repository/feedback"
	sessionRepo "github.com/ajmal7799/FitStack-sub001/database/repository/session"
	trainerRepo "github.com/ajmal7799/FitStack-sub001/database/repository/trainer"
	"github.com/ajmal7799/FitStack-sub001/models"
	"github.com/ajmal7799/FitStack-sub001/utils"
)

// ReasonFeedbackExists is the machine-readable discriminator for a second
// feedback submission on the same session.
const ReasonFeedbackExists = "FEEDBACK_ALREADY_EXISTS"

// FeedbackService accepts post-session ratings and maintains each trainer's
// running average.
type FeedbackService interface {
	Submit(ctx context.Context, userID string, req models.SubmitFeedbackRequest) (*models.Feedback, error)
	ListByTrainer(ctx context.Context, trainerID string) ([]models.Feedback, error)
}

// DefaultFeedbackService implements FeedbackService.
type DefaultFeedbackService struct {
	Feedbacks feedbackRepo.FeedbackRepository
	Sessions  sessionRepo.SessionRepository
	Trainers  trainerRepo.TrainerRepository
}

// Submit records one rating for a completed session. The unique sessionId
// index makes the insert the uniqueness gate: a duplicate submission is
// rejected before it can touch the trainer's aggregates. The aggregates
// themselves are folded in with a single atomic increment, so concurrent
// submissions across different sessions never lose an update.
func (s *DefaultFeedbackService) Submit(ctx context.Context, userID string, req models.SubmitFeedbackRequest) (*models.Feedback, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, utils.InvalidInputError("rating must be between 1 and 5")
	}

	session, err := s.Sessions.GetByID(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFoundError("session not found")
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.UserID != userID {
		return nil, utils.ForbiddenError("only the session's trainee may leave feedback")
	}
	if session.Status != models.SessionStatusCompleted {
		return nil, utils.ConflictError("feedback is only accepted for completed sessions")
	}

	fb := &models.Feedback{
		ID:        uuid.New().String(),
		SessionID: session.ID,
		UserID:    userID,
		TrainerID: session.TrainerID,
		Rating:    req.Rating,
		Review:    req.Review,
		CreatedAt: time.Now(),
	}
	if err := s.Feedbacks.Create(ctx, fb); err != nil {
		if errors.Is(err, feedbackRepo.ErrDuplicateSession) {
			return nil, utils.ConflictErrorWithReason(ReasonFeedbackExists, "feedback already submitted for this session")
		}
		return nil, fmt.Errorf("failed to store feedback: %w", err)
	}

	if err := s.Trainers.ApplyRatingIncrement(ctx, session.TrainerID, req.Rating); err != nil {
		return nil, fmt.Errorf("failed to update trainer rating: %w", err)
	}
	return fb, nil
}

// ListByTrainer returns a trainer's feedback, newest first.
func (s *DefaultFeedbackService) ListByTrainer(ctx context.Context, trainerID string) ([]models.Feedback, error) {
	feedbacks, err := s.Feedbacks.ListByTrainerID(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return feedbacks, nil
}
