package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	sessionRepo "github.com/ajmal7799/FitStack-sub001/database/repository/session"
	"github.com/ajmal7799/FitStack-sub001/models"
	"github.com/ajmal7799/FitStack-sub001/utils"
)

// --- Mock repositories ---

type mockSlotRepo struct {
	createFn          func(ctx context.Context, slot *models.Slot) error
	createManyFn      func(ctx context.Context, slots []models.Slot) ([]string, error)
	getByIDFn         func(ctx context.Context, slotID string) (*models.Slot, error)
	getByTrainerFn    func(ctx context.Context, trainerID string) ([]models.Slot, error)
	getAvailableFn    func(ctx context.Context, trainerID string, from time.Time) ([]models.Slot, error)
	getBookedByUserFn func(ctx context.Context, userID string) ([]models.Slot, error)
	findOverlappingFn func(ctx context.Context, trainerID string, start, end time.Time) ([]models.Slot, error)
	countBookingsFn   func(ctx context.Context, userID string, dayStart, dayEnd time.Time) (int64, error)
	claimFn           func(ctx context.Context, slotID, userID string) error
	closeBookedFn     func(ctx context.Context, slotID string, status models.SlotStatus) error
	cancelFn          func(ctx context.Context, slotID, reason string, at time.Time) error
	deleteUnbookedFn  func(ctx context.Context, trainerID, slotID string) error
}

func (m *mockSlotRepo) Create(ctx context.Context, slot *models.Slot) error {
	return m.createFn(ctx, slot)
}
func (m *mockSlotRepo) CreateMany(ctx context.Context, slots []models.Slot) ([]string, error) {
	return m.createManyFn(ctx, slots)
}
func (m *mockSlotRepo) GetByID(ctx context.Context, slotID string) (*models.Slot, error) {
	return m.getByIDFn(ctx, slotID)
}
func (m *mockSlotRepo) GetByTrainerID(ctx context.Context, trainerID string) ([]models.Slot, error) {
	return m.getByTrainerFn(ctx, trainerID)
}
func (m *mockSlotRepo) GetAvailableByTrainer(ctx context.Context, trainerID string, from time.Time) ([]models.Slot, error) {
	return m.getAvailableFn(ctx, trainerID, from)
}
func (m *mockSlotRepo) GetBookedByUser(ctx context.Context, userID string) ([]models.Slot, error) {
	return m.getBookedByUserFn(ctx, userID)
}
func (m *mockSlotRepo) FindOverlapping(ctx context.Context, trainerID string, start, end time.Time) ([]models.Slot, error) {
	return m.findOverlappingFn(ctx, trainerID, start, end)
}
func (m *mockSlotRepo) CountUserBookingsInWindow(ctx context.Context, userID string, dayStart, dayEnd time.Time) (int64, error) {
	return m.countBookingsFn(ctx, userID, dayStart, dayEnd)
}
func (m *mockSlotRepo) Claim(ctx context.Context, slotID, userID string) error {
	return m.claimFn(ctx, slotID, userID)
}
func (m *mockSlotRepo) CloseBooked(ctx context.Context, slotID string, status models.SlotStatus) error {
	return m.closeBookedFn(ctx, slotID, status)
}
func (m *mockSlotRepo) Cancel(ctx context.Context, slotID, reason string, at time.Time) error {
	return m.cancelFn(ctx, slotID, reason, at)
}
func (m *mockSlotRepo) DeleteUnbooked(ctx context.Context, trainerID, slotID string) error {
	return m.deleteUnbookedFn(ctx, trainerID, slotID)
}

type mockSessionRepo struct {
	createFn func(ctx context.Context, session *models.VideoSession) error
}

func (m *mockSessionRepo) Create(ctx context.Context, session *models.VideoSession) error {
	return m.createFn(ctx, session)
}
func (m *mockSessionRepo) GetByID(ctx context.Context, sessionID string) (*models.VideoSession, error) {
	return nil, mongo.ErrNoDocuments
}
func (m *mockSessionRepo) GetBySlotID(ctx context.Context, slotID string) (*models.VideoSession, error) {
	return nil, mongo.ErrNoDocuments
}
func (m *mockSessionRepo) ListByParticipant(ctx context.Context, participantID string) ([]models.VideoSession, error) {
	return nil, nil
}
func (m *mockSessionRepo) FindExpired(ctx context.Context, now time.Time) ([]models.VideoSession, error) {
	return nil, nil
}
func (m *mockSessionRepo) RecordJoin(ctx context.Context, slotID string, who sessionRepo.Participant, now time.Time) (*models.VideoSession, error) {
	return nil, mongo.ErrNoDocuments
}
func (m *mockSessionRepo) Close(ctx context.Context, sessionID string, status models.SessionStatus, endedAt time.Time) error {
	return nil
}
func (m *mockSessionRepo) Cancel(ctx context.Context, sessionID, cancelledBy, reason string, at time.Time) error {
	return nil
}

type mockTrainerRepo struct {
	existsFn  func(ctx context.Context, trainerID string) (bool, error)
	getByIDFn func(ctx context.Context, trainerID string) (*models.Trainer, error)
}

func (m *mockTrainerRepo) GetByID(ctx context.Context, trainerID string) (*models.Trainer, error) {
	return m.getByIDFn(ctx, trainerID)
}
func (m *mockTrainerRepo) Exists(ctx context.Context, trainerID string) (bool, error) {
	return m.existsFn(ctx, trainerID)
}
func (m *mockTrainerRepo) ApplyRatingIncrement(ctx context.Context, trainerID string, rating int) error {
	return nil
}

type mockUserRepo struct {
	existsFn func(ctx context.Context, userID string) (bool, error)
}

func (m *mockUserRepo) GetByID(ctx context.Context, userID string) (*models.User, error) {
	return &models.User{ID: userID}, nil
}
func (m *mockUserRepo) Exists(ctx context.Context, userID string) (bool, error) {
	return m.existsFn(ctx, userID)
}

type mockNotifier struct {
	calls []string
}

func (m *mockNotifier) Notify(ctx context.Context, recipientID, role, typ, title, message, relatedID string) {
	m.calls = append(m.calls, typ+":"+recipientID)
}

type mockReminder struct {
	scheduled []models.ReminderPayload
	err       error
}

func (m *mockReminder) ScheduleSessionReminder(payload models.ReminderPayload, processAt time.Time) error {
	m.scheduled = append(m.scheduled, payload)
	return m.err
}

// --- Helpers ---

func trainerExists(ok bool) *mockTrainerRepo {
	return &mockTrainerRepo{
		existsFn: func(ctx context.Context, trainerID string) (bool, error) { return ok, nil },
	}
}

func userExists(ok bool) *mockUserRepo {
	return &mockUserRepo{
		existsFn: func(ctx context.Context, userID string) (bool, error) { return ok, nil },
	}
}

func futureSlot(trainerID string, startIn time.Duration) *models.Slot {
	start := time.Now().Add(startIn)
	return &models.Slot{
		ID:         "slot-1",
		TrainerID:  trainerID,
		StartTime:  start,
		EndTime:    start.Add(SlotDuration),
		SlotStatus: models.SlotStatusAvailable,
	}
}

// --- CreateSlot ---

func TestCreateSlot_Success(t *testing.T) {
	var created *models.Slot
	slots := &mockSlotRepo{
		findOverlappingFn: func(ctx context.Context, trainerID string, start, end time.Time) ([]models.Slot, error) {
			return nil, nil
		},
		createFn: func(ctx context.Context, slot *models.Slot) error {
			created = slot
			return nil
		},
	}
	svc := &DefaultBookingService{Slots: slots, Trainers: trainerExists(true)}

	start := time.Now().Add(2 * time.Hour)
	slot, err := svc.CreateSlot(context.Background(), "trainer-1", start)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "trainer-1", slot.TrainerID)
	assert.Equal(t, models.SlotStatusAvailable, slot.SlotStatus)
	assert.Equal(t, start.Add(SlotDuration), slot.EndTime)
	assert.False(t, slot.IsBooked)
}

func TestCreateSlot_Overlap_Conflict(t *testing.T) {
	slots := &mockSlotRepo{
		findOverlappingFn: func(ctx context.Context, trainerID string, start, end time.Time) ([]models.Slot, error) {
			return []models.Slot{{ID: "existing"}}, nil
		},
	}
	svc := &DefaultBookingService{Slots: slots, Trainers: trainerExists(true)}

	_, err := svc.CreateSlot(context.Background(), "trainer-1", time.Now().Add(2*time.Hour))

	require.Error(t, err)
	assert.Equal(t, utils.CodeConflict, utils.ErrorCode(err))
}

func TestCreateSlot_PastStart_InvalidInput(t *testing.T) {
	svc := &DefaultBookingService{Slots: &mockSlotRepo{}, Trainers: trainerExists(true)}

	_, err := svc.CreateSlot(context.Background(), "trainer-1", time.Now().Add(-time.Minute))

	require.Error(t, err)
	assert.Equal(t, utils.CodeInvalidInput, utils.ErrorCode(err))
}

func TestCreateSlot_UnknownTrainer_NotFound(t *testing.T) {
	svc := &DefaultBookingService{Slots: &mockSlotRepo{}, Trainers: trainerExists(false)}

	_, err := svc.CreateSlot(context.Background(), "nobody", time.Now().Add(time.Hour))

	require.Error(t, err)
	assert.Equal(t, utils.CodeNotFound, utils.ErrorCode(err))
}

// --- CreateRecurringSlots ---

func recurringRequest(from, to time.Time, weekdays ...time.Weekday) models.CreateRecurringSlotsRequest {
	return models.CreateRecurringSlotsRequest{
		FromDate:  from.Format("2006-01-02"),
		ToDate:    to.Format("2006-01-02"),
		Weekdays:  weekdays,
		StartHour: 12,
		StartMin:  0,
	}
}

func TestCreateRecurringSlots_Success(t *testing.T) {
	var inserted []models.Slot
	slots := &mockSlotRepo{
		findOverlappingFn: func(ctx context.Context, trainerID string, start, end time.Time) ([]models.Slot, error) {
			return nil, nil
		},
		createManyFn: func(ctx context.Context, batch []models.Slot) ([]string, error) {
			inserted = batch
			return make([]string, len(batch)), nil
		},
	}
	svc := &DefaultBookingService{Slots: slots, Trainers: trainerExists(true)}

	// Two full weeks ahead: every requested weekday appears twice.
	from := time.Now().AddDate(0, 0, 2)
	to := from.AddDate(0, 0, 13)
	req := recurringRequest(from, to, time.Monday, time.Wednesday)

	created, err := svc.CreateRecurringSlots(context.Background(), "trainer-1", req)

	require.NoError(t, err)
	assert.Len(t, created, 4)
	assert.Len(t, inserted, 4)
	for _, slot := range created {
		assert.Equal(t, models.SlotStatusAvailable, slot.SlotStatus)
		assert.Equal(t, SlotDuration, slot.EndTime.Sub(slot.StartTime))
		assert.Contains(t, []time.Weekday{time.Monday, time.Wednesday}, slot.StartTime.Weekday())
	}
}

func TestCreateRecurringSlots_AnyOverlap_FailsWholeBatch(t *testing.T) {
	overlapChecks := 0
	insertCalled := false
	slots := &mockSlotRepo{
		findOverlappingFn: func(ctx context.Context, trainerID string, start, end time.Time) ([]models.Slot, error) {
			overlapChecks++
			if overlapChecks == 2 {
				return []models.Slot{{ID: "existing"}}, nil
			}
			return nil, nil
		},
		createManyFn: func(ctx context.Context, batch []models.Slot) ([]string, error) {
			insertCalled = true
			return nil, nil
		},
	}
	svc := &DefaultBookingService{Slots: slots, Trainers: trainerExists(true)}

	from := time.Now().AddDate(0, 0, 2)
	to := from.AddDate(0, 0, 13)
	req := recurringRequest(from, to, time.Monday, time.Wednesday)

	_, err := svc.CreateRecurringSlots(context.Background(), "trainer-1", req)

	require.Error(t, err)
	assert.Equal(t, utils.CodeConflict, utils.ErrorCode(err))
	assert.False(t, insertCalled, "no partial application on overlap")
}

func TestCreateRecurringSlots_BadDates_InvalidInput(t *testing.T) {
	svc := &DefaultBookingService{Slots: &mockSlotRepo{}, Trainers: trainerExists(true)}

	req := models.CreateRecurringSlotsRequest{
		FromDate: "not-a-date",
		ToDate:   "2026-09-30",
		Weekdays: []time.Weekday{time.Monday},
	}
	_, err := svc.CreateRecurringSlots(context.Background(), "trainer-1", req)

	require.Error(t, err)
	assert.Equal(t, utils.CodeInvalidInput, utils.ErrorCode(err))
}

// --- BookSlot ---

func TestBookSlot_Success(t *testing.T) {
	slot := futureSlot("trainer-1", 3*time.Hour)
	var claimedBy string
	var createdSession *models.VideoSession

	slots := &mockSlotRepo{
		getByIDFn: func(ctx context.Context, slotID string) (*models.Slot, error) { return slot, nil },
		countBookingsFn: func(ctx context.Context, userID string, dayStart, dayEnd time.Time) (int64, error) {
			return 0, nil
		},
		claimFn: func(ctx context.Context, slotID, userID string) error {
			claimedBy = userID
			return nil
		},
	}
	sessions := &mockSessionRepo{
		createFn: func(ctx context.Context, session *models.VideoSession) error {
			createdSession = session
			return nil
		},
	}
	notifier := &mockNotifier{}
	reminder := &mockReminder{}

	svc := &DefaultBookingService{
		Slots:     slots,
		Sessions:  sessions,
		Trainers:  trainerExists(true),
		Users:     userExists(true),
		Notifier:  notifier,
		Reminders: reminder,
	}

	session, err := svc.BookSlot(context.Background(), "user-1", slot.ID)

	require.NoError(t, err)
	require.NotNil(t, createdSession)
	assert.Equal(t, "user-1", claimedBy)
	assert.Equal(t, models.SessionStatusWaiting, session.Status)
	assert.Equal(t, slot.ID, session.SlotID)
	assert.Equal(t, slot.StartTime, session.StartTime)
	assert.Equal(t, slot.EndTime, session.EndTime)
	assert.NotEmpty(t, session.RoomID)
	assert.False(t, session.TrainerJoined)
	assert.False(t, session.UserJoined)
	require.Len(t, reminder.scheduled, 1)
	assert.Equal(t, session.ID, reminder.scheduled[0].SessionID)
	assert.Equal(t, []string{"session_booked:trainer-1"}, notifier.calls)
}

func TestBookSlot_ConcurrentClaimLoser_Conflict(t *testing.T) {
	slot := futureSlot("trainer-1", 3*time.Hour)
	sessionCreated := false

	slots := &mockSlotRepo{
		getByIDFn: func(ctx context.Context, slotID string) (*models.Slot, error) { return slot, nil },
		countBookingsFn: func(ctx context.Context, userID string, dayStart, dayEnd time.Time) (int64, error) {
			return 0, nil
		},
		claimFn: func(ctx context.Context, slotID, userID string) error {
			// The conditional update matched zero documents: someone else won.
			return mongo.ErrNoDocuments
		},
	}
	sessions := &mockSessionRepo{
		createFn: func(ctx context.Context, session *models.VideoSession) error {
			sessionCreated = true
			return nil
		},
	}
	svc := &DefaultBookingService{
		Slots:    slots,
		Sessions: sessions,
		Trainers: trainerExists(true),
		Users:    userExists(true),
	}

	_, err := svc.BookSlot(context.Background(), "user-2", slot.ID)

	require.Error(t, err)
	assert.Equal(t, utils.CodeConflict, utils.ErrorCode(err))
	assert.False(t, sessionCreated, "loser must not create a session")
}

func TestBookSlot_AlreadyStarted_Forbidden(t *testing.T) {
	slot := futureSlot("trainer-1", -time.Minute)
	slots := &mockSlotRepo{
		getByIDFn: func(ctx context.Context, slotID string) (*models.Slot, error) { return slot, nil },
	}
	svc := &DefaultBookingService{Slots: slots, Users: userExists(true)}

	_, err := svc.BookSlot(context.Background(), "user-1", slot.ID)

	require.Error(t, err)
	assert.Equal(t, utils.CodeForbidden, utils.ErrorCode(err))
}

func TestBookSlot_SecondBookingSameDay_Conflict(t *testing.T) {
	slot := futureSlot("trainer-1", 3*time.Hour)
	slots := &mockSlotRepo{
		getByIDFn: func(ctx context.Context, slotID string) (*models.Slot, error) { return slot, nil },
		countBookingsFn: func(ctx context.Context, userID string, dayStart, dayEnd time.Time) (int64, error) {
			return 1, nil
		},
	}
	svc := &DefaultBookingService{Slots: slots, Users: userExists(true)}

	_, err := svc.BookSlot(context.Background(), "user-1", slot.ID)

	require.Error(t, err)
	assert.Equal(t, utils.CodeConflict, utils.ErrorCode(err))
}

func TestBookSlot_SlotNotFound(t *testing.T) {
	slots := &mockSlotRepo{
		getByIDFn: func(ctx context.Context, slotID string) (*models.Slot, error) {
			return nil, mongo.ErrNoDocuments
		},
	}
	svc := &DefaultBookingService{Slots: slots, Users: userExists(true)}

	_, err := svc.BookSlot(context.Background(), "user-1", "missing")

	require.Error(t, err)
	assert.Equal(t, utils.CodeNotFound, utils.ErrorCode(err))
}

func TestBookSlot_SessionCreateFailure_Surfaced(t *testing.T) {
	slot := futureSlot("trainer-1", 3*time.Hour)
	slots := &mockSlotRepo{
		getByIDFn: func(ctx context.Context, slotID string) (*models.Slot, error) { return slot, nil },
		countBookingsFn: func(ctx context.Context, userID string, dayStart, dayEnd time.Time) (int64, error) {
			return 0, nil
		},
		claimFn: func(ctx context.Context, slotID, userID string) error { return nil },
	}
	sessions := &mockSessionRepo{
		createFn: func(ctx context.Context, session *models.VideoSession) error {
			return errors.New("write failed")
		},
	}
	svc := &DefaultBookingService{
		Slots:    slots,
		Sessions: sessions,
		Trainers: trainerExists(true),
		Users:    userExists(true),
	}

	_, err := svc.BookSlot(context.Background(), "user-1", slot.ID)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "claimed slot")
}

// --- DeleteSlot ---

func TestDeleteSlot_Success(t *testing.T) {
	slot := futureSlot("trainer-1", time.Hour)
	slots := &mockSlotRepo{
		getByIDFn:        func(ctx context.Context, slotID string) (*models.Slot, error) { return slot, nil },
		deleteUnbookedFn: func(ctx context.Context, trainerID, slotID string) error { return nil },
	}
	svc := &DefaultBookingService{Slots: slots}

	err := svc.DeleteSlot(context.Background(), "trainer-1", slot.ID)

	assert.NoError(t, err)
}

func TestDeleteSlot_WrongOwner_Forbidden(t *testing.T) {
	slot := futureSlot("trainer-1", time.Hour)
	slots := &mockSlotRepo{
		getByIDFn: func(ctx context.Context, slotID string) (*models.Slot, error) { return slot, nil },
	}
	svc := &DefaultBookingService{Slots: slots}

	err := svc.DeleteSlot(context.Background(), "trainer-2", slot.ID)

	require.Error(t, err)
	assert.Equal(t, utils.CodeForbidden, utils.ErrorCode(err))
}

func TestDeleteSlot_AlreadyBooked_Conflict(t *testing.T) {
	slot := futureSlot("trainer-1", time.Hour)
	slots := &mockSlotRepo{
		getByIDFn: func(ctx context.Context, slotID string) (*models.Slot, error) { return slot, nil },
		deleteUnbookedFn: func(ctx context.Context, trainerID, slotID string) error {
			return mongo.ErrNoDocuments
		},
	}
	svc := &DefaultBookingService{Slots: slots}

	err := svc.DeleteSlot(context.Background(), "trainer-1", slot.ID)

	require.Error(t, err)
	assert.Equal(t, utils.CodeConflict, utils.ErrorCode(err))
}
