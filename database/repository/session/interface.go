// File: database/repository/session/interface.go
package sessionRepo

import (
	"context"
	"time"

	"github.com/ajmal7799/FitStack-sub001/database"
	"github.com/ajmal7799/FitStack-sub001/models"
	"github.com/ajmal7799/FitStack-sub001/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Participant identifies which side of a session an update applies to.
type Participant string

const (
	ParticipantTrainer Participant = "trainer"
	ParticipantUser    Participant = "user"
)

// SessionRepository is the persistence boundary for video sessions. The
// waiting->active edge and every terminal transition are conditional updates;
// a zero-match update surfaces as mongo.ErrNoDocuments.
type SessionRepository interface {
	Create(ctx context.Context, session *models.VideoSession) error
	GetByID(ctx context.Context, sessionID string) (*models.VideoSession, error)
	GetBySlotID(ctx context.Context, slotID string) (*models.VideoSession, error)
	ListByParticipant(ctx context.Context, participantID string) ([]models.VideoSession, error)
	FindExpired(ctx context.Context, now time.Time) ([]models.VideoSession, error)
	RecordJoin(ctx context.Context, slotID string, who Participant, now time.Time) (*models.VideoSession, error)
	Close(ctx context.Context, sessionID string, status models.SessionStatus, endedAt time.Time) error
	Cancel(ctx context.Context, sessionID, cancelledBy, reason string, at time.Time) error
}

type mongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo constructs a new MongoDB SessionRepository.
func NewMongoSessionRepo() SessionRepository {
	r := &mongoSessionRepo{
		coll: database.DB().Collection("video_sessions"),
	}
	if err := r.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("session repo: could not ensure indexes", zap.Error(err))
	}
	return r
}
