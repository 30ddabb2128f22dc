package models

import "time"

// Trainer holds the trainer fields the booking engine reads and the running
// rating aggregates the feedback service maintains. Profile/verification CRUD
// lives outside this service.
type Trainer struct {
	ID            string    `bson:"id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	Email         string    `bson:"email" json:"email"`
	ProfileImage  string    `bson:"profileImage,omitempty" json:"profileImage,omitempty"` // object path, signed on read
	RatingSum     int       `bson:"ratingSum" json:"ratingSum"`
	RatingCount   int       `bson:"ratingCount" json:"ratingCount"`
	AverageRating float64   `bson:"averageRating" json:"averageRating"`
	FCMToken      string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// TrainerDTO is the public trainer view embedded in trainee-facing responses.
// ProfileImageURL carries a signed download URL when object storage is wired.
type TrainerDTO struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	ProfileImageURL string  `json:"profileImageUrl,omitempty"`
	AverageRating   float64 `json:"averageRating"`
	RatingCount     int     `json:"ratingCount"`
}
