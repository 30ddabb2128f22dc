package booking

import (
	"context"
	"time"

	sessionRepo "github.com/ajmal7799/FitStack-sub001/database/repository/session"
	slotRepo "github.com/ajmal7799/FitStack-sub001/database/repository/slot"
	trainerRepo "github.com/ajmal7799/FitStack-sub001/database/repository/trainer"
	userRepo "github.com/ajmal7799/FitStack-sub001/database/repository/user"
	"github.com/ajmal7799/FitStack-sub001/models"
	"github.com/ajmal7799/FitStack-sub001/services/notification"
	"github.com/ajmal7799/FitStack-sub001/services/storage"
)

// SlotDuration is the fixed length of every bookable slot.
const SlotDuration = 60 * time.Minute

// BookingService is the slot-booking engine: it owns slot creation with
// overlap rejection, the atomic slot claim, and creation of the paired
// video session.
type BookingService interface {
	CreateSlot(ctx context.Context, trainerID string, start time.Time) (*models.Slot, error)
	CreateRecurringSlots(ctx context.Context, trainerID string, req models.CreateRecurringSlotsRequest) ([]models.Slot, error)
	BookSlot(ctx context.Context, userID, slotID string) (*models.VideoSession, error)
	DeleteSlot(ctx context.Context, trainerID, slotID string) error
	GetTrainerSlots(ctx context.Context, trainerID string) ([]models.Slot, error)
	GetAvailableSlots(ctx context.Context, trainerID string) ([]models.SlotDTO, error)
	GetUserBookings(ctx context.Context, userID string) ([]models.Slot, error)
}

// ReminderScheduler queues a session-start reminder for later delivery.
// A scheduling failure never fails the booking.
type ReminderScheduler interface {
	ScheduleSessionReminder(payload models.ReminderPayload, processAt time.Time) error
}

// DefaultBookingService implements BookingService on the Mongo repositories.
type DefaultBookingService struct {
	Slots     slotRepo.SlotRepository
	Sessions  sessionRepo.SessionRepository
	Trainers  trainerRepo.TrainerRepository
	Users     userRepo.UserRepository
	Notifier  notification.NotificationService
	Reminders ReminderScheduler
	Storage   storage.StorageService
}
