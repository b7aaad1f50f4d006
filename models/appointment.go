package models

import "time"

// Appointment statuses. Pending is representable for a future hold layer;
// bookings currently commit directly to Confirmed.
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCancelled = "Cancelled"
)

// Appointment is a committed reservation of a time interval. For any two
// appointments with status Pending or Confirmed, the [Start, End) intervals
// on the same date never overlap. Rows are never deleted; cancellation is a
// status transition.
type Appointment struct {
	ID          string     `bson:"id" json:"id"`                   // UUID
	ClientPhone string     `bson:"client_phone" json:"client_phone"`
	ServiceID   string     `bson:"service_id" json:"service_id"`
	Date        string     `bson:"date" json:"date"`               // "2006-01-02", business-local
	Start       int        `bson:"start" json:"start"`             // minutes from midnight
	End         int        `bson:"end" json:"end"`                 // Start + service duration
	Status      string     `bson:"status" json:"status"`
	Notes       string     `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	CancelledAt *time.Time `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`
}

// Overlaps reports whether the appointment's interval intersects
// [start, end) on the same date.
func (a Appointment) Overlaps(date string, start, end int) bool {
	return a.Date == date && a.Start < end && start < a.End
}

// Active reports whether the appointment still holds its interval.
func (a Appointment) Active() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}
