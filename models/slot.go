package models

import "time"

// SlotStatus tracks a slot through its lifecycle. Terminal statuses are final;
// a booked slot is never reused.
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusBooked    SlotStatus = "booked"
	SlotStatusCompleted SlotStatus = "completed"
	SlotStatusMissed    SlotStatus = "missed"
	SlotStatusCancelled SlotStatus = "cancelled"
)

// Slot represents a trainer's offered time window. The interval is half-open:
// [StartTime, EndTime). No two slots of the same trainer may overlap.
type Slot struct {
	ID                 string     `bson:"id" json:"id"`
	TrainerID          string     `bson:"trainerId" json:"trainerId"`
	StartTime          time.Time  `bson:"startTime" json:"startTime"`
	EndTime            time.Time  `bson:"endTime" json:"endTime"`
	IsBooked           bool       `bson:"isBooked" json:"isBooked"`
	BookedBy           string     `bson:"bookedBy,omitempty" json:"bookedBy,omitempty"`
	SlotStatus         SlotStatus `bson:"slotStatus" json:"slotStatus"`
	CancellationReason string     `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CreatedAt          time.Time  `bson:"createdAt" json:"createdAt"`
}

// Overlaps reports whether the slot's interval intersects [start, end).
func (s Slot) Overlaps(start, end time.Time) bool {
	return s.StartTime.Before(end) && s.EndTime.After(start)
}

// CreateSlotRequest is the payload for creating a single slot.
type CreateSlotRequest struct {
	StartTime time.Time `json:"startTime" binding:"required"`
}

// CreateRecurringSlotsRequest defines a weekday-patterned batch of slots over
// a date range. Times use the trainer's submitted clock time on each matching day.
type CreateRecurringSlotsRequest struct {
	FromDate  string         `json:"fromDate" binding:"required"` // "2006-01-02"
	ToDate    string         `json:"toDate" binding:"required"`   // "2006-01-02"
	Weekdays  []time.Weekday `json:"weekdays" binding:"required"`
	StartHour int            `json:"startHour"`
	StartMin  int            `json:"startMin"`
}

// SlotDTO is the read-path view of a slot, optionally enriched with the
// trainer's public details for trainee-facing listings.
type SlotDTO struct {
	Slot
	Trainer *TrainerDTO `json:"trainer,omitempty"`
}
