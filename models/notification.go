package models

import "time"

// Notification is a persisted in-app notification. Delivery through FCM is
// best-effort; the stored record is the source of truth.
type Notification struct {
	ID          string    `bson:"id" json:"id"`
	RecipientID string    `bson:"recipientId" json:"recipientId"`
	Role        string    `bson:"role" json:"role"` // "user" or "trainer"
	Type        string    `bson:"type" json:"type"`
	Title       string    `bson:"title" json:"title"`
	Message     string    `bson:"message" json:"message"`
	RelatedID   string    `bson:"relatedId,omitempty" json:"relatedId,omitempty"`
	Read        bool      `bson:"read" json:"read"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
