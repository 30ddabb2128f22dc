package cron

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
)

// --- Mock repositories ---

type mockSessionRepo struct {
	findExpiredFn func(ctx context.Context, now time.Time) ([]models.VideoSession, error)
	closeFn       func(ctx context.Context, sessionID string, status models.SessionStatus, endedAt time.Time) error
}

func (m *mockSessionRepo) Create(ctx context.Context, session *models.VideoSession) error {
	return nil
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
	return m.findExpiredFn(ctx, now)
}
func (m *mockSessionRepo) RecordJoin(ctx context.Context, slotID string, who sessionRepo.Participant, now time.Time) (*models.VideoSession, error) {
	return nil, mongo.ErrNoDocuments
}
func (m *mockSessionRepo) Close(ctx context.Context, sessionID string, status models.SessionStatus, endedAt time.Time) error {
	return m.closeFn(ctx, sessionID, status, endedAt)
}
func (m *mockSessionRepo) Cancel(ctx context.Context, sessionID, cancelledBy, reason string, at time.Time) error {
	return nil
}

type mockSlotRepo struct {
	closeBookedFn func(ctx context.Context, slotID string, status models.SlotStatus) error
}

func (m *mockSlotRepo) Create(ctx context.Context, slot *models.Slot) error { return nil }
func (m *mockSlotRepo) CreateMany(ctx context.Context, slots []models.Slot) ([]string, error) {
	return nil, nil
}
func (m *mockSlotRepo) GetByID(ctx context.Context, slotID string) (*models.Slot, error) {
	return nil, mongo.ErrNoDocuments
}
func (m *mockSlotRepo) GetByTrainerID(ctx context.Context, trainerID string) ([]models.Slot, error) {
	return nil, nil
}
func (m *mockSlotRepo) GetAvailableByTrainer(ctx context.Context, trainerID string, from time.Time) ([]models.Slot, error) {
	return nil, nil
}
func (m *mockSlotRepo) GetBookedByUser(ctx context.Context, userID string) ([]models.Slot, error) {
	return nil, nil
}
func (m *mockSlotRepo) FindOverlapping(ctx context.Context, trainerID string, start, end time.Time) ([]models.Slot, error) {
	return nil, nil
}
func (m *mockSlotRepo) CountUserBookingsInWindow(ctx context.Context, userID string, dayStart, dayEnd time.Time) (int64, error) {
	return 0, nil
}
func (m *mockSlotRepo) Claim(ctx context.Context, slotID, userID string) error { return nil }
func (m *mockSlotRepo) CloseBooked(ctx context.Context, slotID string, status models.SlotStatus) error {
	return m.closeBookedFn(ctx, slotID, status)
}
func (m *mockSlotRepo) Cancel(ctx context.Context, slotID, reason string, at time.Time) error {
	return nil
}
func (m *mockSlotRepo) DeleteUnbooked(ctx context.Context, trainerID, slotID string) error {
	return nil
}

// --- Fixtures ---

func expiredSession(id string, started bool) models.VideoSession {
	end := time.Now().Add(-time.Hour)
	s := models.VideoSession{
		ID:        id,
		SlotID:    "slot-" + id,
		StartTime: end.Add(-time.Hour),
		EndTime:   end,
		Status:    models.SessionStatusWaiting,
	}
	if started {
		startedAt := s.StartTime.Add(5 * time.Minute)
		s.Status = models.SessionStatusActive
		s.StartedAt = &startedAt
	}
	return s
}

// --- Tests ---

func TestSweep_ClosesExpiredSessions(t *testing.T) {
	closedStatuses := map[string]models.SessionStatus{}
	mirrored := map[string]models.SlotStatus{}

	sessions := &mockSessionRepo{
		findExpiredFn: func(ctx context.Context, now time.Time) ([]models.VideoSession, error) {
			return []models.VideoSession{
				expiredSession("a", true),  // started: should complete
				expiredSession("b", false), // never started: should miss
			}, nil
		},
		closeFn: func(ctx context.Context, sessionID string, status models.SessionStatus, endedAt time.Time) error {
			closedStatuses[sessionID] = status
			return nil
		},
	}
	slots := &mockSlotRepo{
		closeBookedFn: func(ctx context.Context, slotID string, status models.SlotStatus) error {
			mirrored[slotID] = status
			return nil
		},
	}
	sweeper := &Sweeper{Sessions: sessions, Slots: slots}

	closed := sweeper.Sweep(context.Background())

	assert.Equal(t, 2, closed)
	assert.Equal(t, models.SessionStatusCompleted, closedStatuses["a"])
	assert.Equal(t, models.SessionStatusMissed, closedStatuses["b"])
	assert.Equal(t, models.SlotStatusCompleted, mirrored["slot-a"])
	assert.Equal(t, models.SlotStatusMissed, mirrored["slot-b"])
}

func TestSweep_SecondRunIsNoOp(t *testing.T) {
	runs := 0
	sessions := &mockSessionRepo{
		findExpiredFn: func(ctx context.Context, now time.Time) ([]models.VideoSession, error) {
			runs++
			if runs == 1 {
				return []models.VideoSession{expiredSession("a", false)}, nil
			}
			// Already terminal: the guarded query no longer matches.
			return nil, nil
		},
		closeFn: func(ctx context.Context, sessionID string, status models.SessionStatus, endedAt time.Time) error {
			return nil
		},
	}
	slots := &mockSlotRepo{
		closeBookedFn: func(ctx context.Context, slotID string, status models.SlotStatus) error {
			return nil
		},
	}
	sweeper := &Sweeper{Sessions: sessions, Slots: slots}

	require.Equal(t, 1, sweeper.Sweep(context.Background()))
	assert.Equal(t, 0, sweeper.Sweep(context.Background()))
}

func TestSweep_RacingCloseIsSkipped(t *testing.T) {
	slotMirrored := false
	sessions := &mockSessionRepo{
		findExpiredFn: func(ctx context.Context, now time.Time) ([]models.VideoSession, error) {
			return []models.VideoSession{expiredSession("a", false)}, nil
		},
		closeFn: func(ctx context.Context, sessionID string, status models.SessionStatus, endedAt time.Time) error {
			// Closed by the end path between the query and this update.
			return mongo.ErrNoDocuments
		},
	}
	slots := &mockSlotRepo{
		closeBookedFn: func(ctx context.Context, slotID string, status models.SlotStatus) error {
			slotMirrored = true
			return nil
		},
	}
	sweeper := &Sweeper{Sessions: sessions, Slots: slots}

	closed := sweeper.Sweep(context.Background())

	assert.Equal(t, 0, closed)
	assert.False(t, slotMirrored, "a lost close must not touch the slot")
}

func TestSweep_OneFailureDoesNotAbortBatch(t *testing.T) {
	sessions := &mockSessionRepo{
		findExpiredFn: func(ctx context.Context, now time.Time) ([]models.VideoSession, error) {
			return []models.VideoSession{
				expiredSession("bad", false),
				expiredSession("good", true),
			}, nil
		},
		closeFn: func(ctx context.Context, sessionID string, status models.SessionStatus, endedAt time.Time) error {
			if sessionID == "bad" {
				return errors.New("transient store failure")
			}
			return nil
		},
	}
	slots := &mockSlotRepo{
		closeBookedFn: func(ctx context.Context, slotID string, status models.SlotStatus) error {
			return nil
		},
	}
	sweeper := &Sweeper{Sessions: sessions, Slots: slots}

	closed := sweeper.Sweep(context.Background())

	assert.Equal(t, 1, closed)
}

func TestSweep_QueryFailure_ReturnsZero(t *testing.T) {
	sessions := &mockSessionRepo{
		findExpiredFn: func(ctx context.Context, now time.Time) ([]models.VideoSession, error) {
			return nil, errors.New("store unavailable")
		},
	}
	sweeper := &Sweeper{Sessions: sessions, Slots: &mockSlotRepo{}}

	assert.Equal(t, 0, sweeper.Sweep(context.Background()))
}
