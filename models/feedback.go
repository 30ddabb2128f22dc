package models

import "time"

// Feedback is a trainee's post-session rating of a trainer. At most one
// feedback exists per session, enforced by a unique index on sessionId.
type Feedback struct {
	ID        string    `bson:"id" json:"id"`
	SessionID string    `bson:"sessionId" json:"sessionId"`
	UserID    string    `bson:"userId" json:"userId"`
	TrainerID string    `bson:"trainerId" json:"trainerId"`
	Rating    int       `bson:"rating" json:"rating"` // 1-5
	Review    string    `bson:"review,omitempty" json:"review,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// SubmitFeedbackRequest is the payload for submitting post-session feedback.
type SubmitFeedbackRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Review    string `json:"review"`
}
