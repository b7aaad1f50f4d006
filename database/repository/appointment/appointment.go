package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"salonassist/models"
)

// Sentinel errors surfaced by the appointment ledger.
var (
	// ErrOverlap means the requested interval intersects an existing
	// Pending or Confirmed appointment.
	ErrOverlap = errors.New("appointment interval overlaps an existing booking")
	// ErrNotFound means no appointment exists for the given id.
	ErrNotFound = errors.New("appointment not found")
	// ErrAlreadyCancelled means the appointment is already in the terminal
	// Cancelled state.
	ErrAlreadyCancelled = errors.New("appointment already cancelled")
)

// AppointmentRepository defines data access for the appointment ledger.
type AppointmentRepository interface {
	// GetByID retrieves an appointment by its unique id.
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// ListActiveByDate returns Pending/Confirmed appointments for a date,
	// ordered by start time.
	ListActiveByDate(ctx context.Context, date string) ([]models.Appointment, error)
	// ListUpcomingByClient returns a client's Pending/Confirmed appointments
	// on or after the given date.
	ListUpcomingByClient(ctx context.Context, phone, fromDate string) ([]models.Appointment, error)
	// InsertIfFree atomically re-validates that the appointment's interval is
	// free of Pending/Confirmed overlaps and inserts it. Returns ErrOverlap
	// without mutating the ledger when the interval is taken.
	InsertIfFree(ctx context.Context, appt *models.Appointment) error
	// Cancel transitions an appointment to Cancelled, freeing its interval.
	// The row is kept for the audit trail.
	Cancel(ctx context.Context, id string, at time.Time) error
}
