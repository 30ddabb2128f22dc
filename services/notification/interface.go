package notification

import (
	"context"

	notificationRepo "github.com/ajmal7799/FitStack-sub001/database/repository/notification"
	trainerRepo "github.com/ajmal7799/FitStack-sub001/database/repository/trainer"
	userRepo "github.com/ajmal7799/FitStack-sub001/database/repository/user"
)

// RoleUser and RoleTrainer identify the recipient side of a notification.
const (
	RoleUser    = "user"
	RoleTrainer = "trainer"
)

// NotificationService is the fire-and-forget notification sink. Delivery
// failure is logged and never propagated to the booking or joining path.
type NotificationService interface {
	Notify(ctx context.Context, recipientID, role, typ, title, message, relatedID string)
}

// DefaultNotificationService persists every notification and then attempts a
// best-effort FCM push to the recipient's registered device token.
type DefaultNotificationService struct {
	Repo     notificationRepo.NotificationRepository
	Users    userRepo.UserRepository
	Trainers trainerRepo.TrainerRepository
}
