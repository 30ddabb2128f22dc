package notification

import (
	"context"
	"time"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"

	"github.com/ajmal7799/FitStack-sub001/models"
	"github.com/ajmal7799/FitStack-sub001/utils"
)

// Notify stores the notification and pushes it to the recipient. Both steps
// are best-effort; the caller never sees a failure.
func (s *DefaultNotificationService) Notify(ctx context.Context, recipientID, role, typ, title, message, relatedID string) {
	logger := utils.GetLogger()

	n := &models.Notification{
		RecipientID: recipientID,
		Role:        role,
		Type:        typ,
		Title:       title,
		Message:     message,
		RelatedID:   relatedID,
		CreatedAt:   time.Now(),
	}
	if err := s.Repo.Insert(ctx, n); err != nil {
		logger.Warn("notification: failed to persist",
			zap.String("recipientId", recipientID),
			zap.String("type", typ),
			zap.Error(err))
	}

	token := s.lookupToken(ctx, recipientID, role)
	if token == "" {
		return
	}
	s.sendPush(ctx, token, title, message, map[string]string{
		"type":      typ,
		"role":      role,
		"relatedId": relatedID,
	})
}

func (s *DefaultNotificationService) lookupToken(ctx context.Context, recipientID, role string) string {
	logger := utils.GetLogger()

	switch role {
	case RoleTrainer:
		t, err := s.Trainers.GetByID(ctx, recipientID)
		if err != nil {
			logger.Warn("notification: trainer lookup failed", zap.String("trainerId", recipientID), zap.Error(err))
			return ""
		}
		return t.FCMToken
	case RoleUser:
		u, err := s.Users.GetByID(ctx, recipientID)
		if err != nil {
			logger.Warn("notification: user lookup failed", zap.String("userId", recipientID), zap.Error(err))
			return ""
		}
		return u.FCMToken
	default:
		logger.Warn("notification: unknown recipient role", zap.String("role", role))
		return ""
	}
}

func (s *DefaultNotificationService) sendPush(ctx context.Context, token, title, body string, data map[string]string) {
	if utils.FCMClient == nil {
		return
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		utils.GetLogger().Warn("notification: FCM send failed", zap.Error(err))
	}
}
