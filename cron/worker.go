package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/ajmal7799/FitStack-sub001/config"
	"github.com/ajmal7799/FitStack-sub001/models"
	"github.com/ajmal7799/FitStack-sub001/services/notification"
	"github.com/ajmal7799/FitStack-sub001/utils"
)

// TypeSessionReminder is the asynq task type for session-start reminders.
const TypeSessionReminder = "session:reminder"

func reminderRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	}
}

// ReminderClient enqueues session reminders for delayed processing. It
// satisfies the booking service's ReminderScheduler.
type ReminderClient struct {
	client *asynq.Client
}

// NewReminderClient connects an enqueue client to the reminder queue.
func NewReminderClient() *ReminderClient {
	return &ReminderClient{client: asynq.NewClient(reminderRedisOpt())}
}

// ScheduleSessionReminder queues one reminder to fire at processAt. Reminders
// for sessions booked inside the lead window fire immediately.
func (c *ReminderClient) ScheduleSessionReminder(payload models.ReminderPayload, processAt time.Time) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal reminder payload: %w", err)
	}

	task := asynq.NewTask(TypeSessionReminder, raw)
	opts := []asynq.Option{asynq.MaxRetry(3)}
	if processAt.After(time.Now()) {
		opts = append(opts, asynq.ProcessAt(processAt))
	}
	if _, err := c.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}

// Close releases the underlying queue connection.
func (c *ReminderClient) Close() error {
	return c.client.Close()
}

// InitReminderWorker runs the asynq worker that delivers queued session
// reminders to both participants.
func InitReminderWorker(notifSvc notification.NotificationService) *asynq.Server {
	srv := asynq.NewServer(
		reminderRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSessionReminder, handleSessionReminder(notifSvc))

	go func() {
		utils.GetLogger().Info("reminder worker: starting")
		if err := srv.Run(mux); err != nil {
			utils.GetLogger().Error("reminder worker: stopped", zap.Error(err))
		}
	}()
	return srv
}

func handleSessionReminder(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("reminder worker: invalid payload", zap.Error(err))
			return err
		}

		message := fmt.Sprintf("Your video session starts at %s", p.StartTime)
		notifSvc.Notify(ctx, p.UserID, notification.RoleUser, "session_reminder",
			"Session starting soon", message, p.SlotID)
		notifSvc.Notify(ctx, p.TrainerID, notification.RoleTrainer, "session_reminder",
			"Session starting soon", message, p.SlotID)
		return nil
	}
}
