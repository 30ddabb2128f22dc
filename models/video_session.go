package models

import "time"

// SessionStatus tracks a video session's state machine. Status only moves
// waiting -> active -> completed, or waiting/active -> missed/cancelled;
// it never regresses.
type SessionStatus string

const (
	SessionStatusWaiting   SessionStatus = "waiting"
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusMissed    SessionStatus = "missed"
	SessionStatusCancelled SessionStatus = "cancelled"
)

// Terminal reports whether the status admits no further transitions.
func (s SessionStatus) Terminal() bool {
	return s == SessionStatusCompleted || s == SessionStatusMissed || s == SessionStatusCancelled
}

// VideoSession is the paired live-meeting record for a booked slot, 1:1 with
// the slot it references. StartTime/EndTime are copied from the slot at
// creation and are the authoritative session window.
type VideoSession struct {
	ID                 string        `bson:"id" json:"id"`
	UserID             string        `bson:"userId" json:"userId"`
	TrainerID          string        `bson:"trainerId" json:"trainerId"`
	SlotID             string        `bson:"slotId" json:"slotId"`
	RoomID             string        `bson:"roomId" json:"roomId"`
	TrainerJoined      bool          `bson:"trainerJoined" json:"trainerJoined"`
	UserJoined         bool          `bson:"userJoined" json:"userJoined"`
	StartedAt          *time.Time    `bson:"startedAt,omitempty" json:"startedAt,omitempty"`
	EndedAt            *time.Time    `bson:"endedAt,omitempty" json:"endedAt,omitempty"`
	StartTime          time.Time     `bson:"startTime" json:"startTime"`
	EndTime            time.Time     `bson:"endTime" json:"endTime"`
	Status             SessionStatus `bson:"status" json:"status"`
	CancellationReason string        `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time    `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CancelledBy        string        `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"`
	CreatedAt          time.Time     `bson:"createdAt" json:"createdAt"`
}

// JoinSessionResponse is returned to a participant entering the session; the
// room ID is handed off to the real-time transport.
type JoinSessionResponse struct {
	RoomID    string        `json:"roomId"`
	Status    SessionStatus `json:"status"`
	StartTime time.Time     `json:"startTime"`
	EndTime   time.Time     `json:"endTime"`
}

// ReminderPayload is the asynq task body for a session-start reminder.
type ReminderPayload struct {
	SessionID string `json:"sessionId"`
	SlotID    string `json:"slotId"`
	UserID    string `json:"userId"`
	TrainerID string `json:"trainerId"`
	StartTime string `json:"startTime"`
}
