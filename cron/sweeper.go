package cron

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	sessionRepo "github.com/ajmal7799/FitStack-sub001/database/repository/session"
	slotRepo "github.com/ajmal7799/FitStack-sub001/database/repository/slot"
	"github.com/ajmal7799/FitStack-sub001/models"
	"github.com/ajmal7799/FitStack-sub001/utils"
)

// Sweeper force-closes sessions whose window elapsed without a natural end.
// Every per-session close is a conditional update guarded by the live-status
// precondition, so repeated or overlapping sweeps are harmless: a session
// already closed by an end call or an earlier pass simply does not match.
type Sweeper struct {
	Sessions sessionRepo.SessionRepository
	Slots    slotRepo.SlotRepository
	Interval time.Duration
}

// Run drives the sweep on a fixed cadence until the context is cancelled.
// One pass runs immediately on startup to catch sessions that expired while
// the process was down.
func (s *Sweeper) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = time.Hour
	}
	logger := utils.GetLogger()
	logger.Info("sweeper: starting", zap.Duration("interval", interval))

	s.Sweep(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("sweeper: stopping")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep performs one pass and returns how many sessions it closed. A failure
// on one session never aborts the batch; anything left unswept is picked up
// by the next run.
func (s *Sweeper) Sweep(ctx context.Context) int {
	logger := utils.GetLogger()
	now := time.Now()

	expired, err := s.Sessions.FindExpired(ctx, now)
	if err != nil {
		logger.Error("sweeper: failed to query expired sessions", zap.Error(err))
		return 0
	}
	if len(expired) == 0 {
		return 0
	}

	closed := 0
	for _, session := range expired {
		status := models.SessionStatusMissed
		if session.StartedAt != nil {
			status = models.SessionStatusCompleted
		}

		if err := s.Sessions.Close(ctx, session.ID, status, now); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				// Closed by the end path between the query and this update.
				continue
			}
			logger.Warn("sweeper: failed to close session",
				zap.String("sessionId", session.ID),
				zap.Error(err))
			continue
		}

		if err := s.Slots.CloseBooked(ctx, session.SlotID, models.SlotStatus(status)); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			logger.Warn("sweeper: failed to mirror status onto slot",
				zap.String("slotId", session.SlotID),
				zap.Error(err))
		}

		closed++
		logger.Info("sweeper: closed expired session",
			zap.String("sessionId", session.ID),
			zap.String("status", string(status)))
	}
	return closed
}
